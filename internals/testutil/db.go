// file: internals/testutil/db.go
package testutil

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	reqModel "pustakaku_backend/internals/features/library/book_requests/model"
	bookModel "pustakaku_backend/internals/features/library/books/model"
	fineModel "pustakaku_backend/internals/features/library/fines/model"
	loanModel "pustakaku_backend/internals/features/library/loans/model"
	resModel "pustakaku_backend/internals/features/library/reservations/model"
	wishModel "pustakaku_backend/internals/features/library/wishlists/model"
	userModel "pustakaku_backend/internals/features/users/user/model"
)

// SetupDB membuka koneksi ke database test dari TEST_DATABASE_URL.
// Test di-skip kalau env belum diset, supaya `go test ./...` tetap hijau
// di mesin tanpa PostgreSQL.
func SetupDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL belum diset, skip test database")
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("gagal konek database test: %v", err)
	}

	// gen_random_uuid() butuh pgcrypto di Postgres < 13
	db.Exec("CREATE EXTENSION IF NOT EXISTS pgcrypto")

	if err := db.AutoMigrate(
		&userModel.UserModel{},
		&bookModel.BookModel{},
		&bookModel.BookCopyModel{},
		&loanModel.LoanModel{},
		&resModel.ReservationModel{},
		&fineModel.FineModel{},
		&wishModel.WishlistModel{},
		&reqModel.BookRequestModel{},
	); err != nil {
		t.Fatalf("gagal migrate schema test: %v", err)
	}

	CleanTables(t, db)
	return db
}

func CleanTables(t *testing.T, db *gorm.DB) {
	t.Helper()
	if err := db.Exec(
		"TRUNCATE TABLE fines, loans, reservations, wishlists, book_requests, book_copies, books, users RESTART IDENTITY CASCADE",
	).Error; err != nil {
		t.Fatalf("gagal truncate tabel test: %v", err)
	}
}

// =======================
// SEED HELPERS
// =======================

func CreateUser(t *testing.T, db *gorm.DB, role string) userModel.UserModel {
	t.Helper()
	user := userModel.UserModel{
		UserEmail:     fmt.Sprintf("user-%s@test.local", uuid.NewString()[:8]),
		UserPassword:  "rahasia123",
		UserFirstName: "Test",
		UserLastName:  "User",
		UserRole:      role,
		UserIsActive:  true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("gagal seed user: %v", err)
	}
	return user
}

func CreateInactiveUser(t *testing.T, db *gorm.DB) userModel.UserModel {
	t.Helper()
	user := CreateUser(t, db, "member")
	if err := db.Model(&userModel.UserModel{}).
		Where("user_id = ?", user.UserID).
		Update("user_is_active", false).Error; err != nil {
		t.Fatalf("gagal nonaktifkan user: %v", err)
	}
	user.UserIsActive = false
	return user
}

// CreateBook seed satu judul dengan n eksemplar available.
func CreateBook(t *testing.T, db *gorm.DB, copies int) (bookModel.BookModel, []bookModel.BookCopyModel) {
	t.Helper()
	book := bookModel.BookModel{
		BookTitle: "Laskar Pelangi",
		BookISBN:  fmt.Sprintf("TST-%s", uuid.NewString()[:13]),
	}
	if err := db.Create(&book).Error; err != nil {
		t.Fatalf("gagal seed buku: %v", err)
	}

	out := make([]bookModel.BookCopyModel, 0, copies)
	for i := 0; i < copies; i++ {
		copy := bookModel.BookCopyModel{
			BookCopyBookID:    book.BookID,
			BookCopyBarcode:   fmt.Sprintf("LIB-TST-%s", uuid.NewString()[:12]),
			BookCopyStatus:    bookModel.CopyStatusAvailable,
			BookCopyCondition: bookModel.CopyConditionGood,
		}
		if err := db.Create(&copy).Error; err != nil {
			t.Fatalf("gagal seed eksemplar: %v", err)
		}
		out = append(out, copy)
	}
	return book, out
}

// CreateActiveLoan seed pinjaman aktif langsung ke tabel (eksemplar ikut
// di-flip ke borrowed) dengan jatuh tempo tertentu.
func CreateActiveLoan(t *testing.T, db *gorm.DB, copyID, userID uuid.UUID, dueDate time.Time) loanModel.LoanModel {
	t.Helper()
	loan := loanModel.LoanModel{
		LoanBookCopyID:  copyID,
		LoanUserID:      userID,
		LoanStatus:      loanModel.LoanStatusActive,
		LoanBorrowedAt:  time.Now().AddDate(0, 0, -1),
		LoanDueDate:     dueDate,
		LoanMaxRenewals: loanModel.DefaultMaxRenewals,
	}
	if err := db.Create(&loan).Error; err != nil {
		t.Fatalf("gagal seed loan: %v", err)
	}
	if err := db.Model(&bookModel.BookCopyModel{}).
		Where("book_copy_id = ?", copyID).
		Update("book_copy_status", bookModel.CopyStatusBorrowed).Error; err != nil {
		t.Fatalf("gagal flip status eksemplar: %v", err)
	}
	return loan
}

// CreateReservation seed reservasi langsung ke tabel pada posisi tertentu.
func CreateReservation(t *testing.T, db *gorm.DB, bookID, userID uuid.UUID, status string, position int) resModel.ReservationModel {
	t.Helper()
	res := resModel.ReservationModel{
		ReservationBookID:        bookID,
		ReservationUserID:        userID,
		ReservationStatus:        status,
		ReservationQueuePosition: position,
		ReservationReservedAt:    time.Now(),
	}
	if err := db.Create(&res).Error; err != nil {
		t.Fatalf("gagal seed reservasi: %v", err)
	}
	return res
}

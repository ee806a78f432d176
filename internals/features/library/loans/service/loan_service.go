// file: internals/features/library/loans/service/loan_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pustakaku_backend/internals/configs"
	bookModel "pustakaku_backend/internals/features/library/books/model"
	fineModel "pustakaku_backend/internals/features/library/fines/model"
	loanModel "pustakaku_backend/internals/features/library/loans/model"
	helper "pustakaku_backend/internals/helpers"
	resModel "pustakaku_backend/internals/features/library/reservations/model"
	userModel "pustakaku_backend/internals/features/users/user/model"
)

/*
Inti sirkulasi: checkout, self-checkout, check-in, dan perpanjangan.
Setiap operasi jalan dalam SATU transaksi dengan row lock (FOR UPDATE)
pada baris yang diperebutkan, supaya dua request pada eksemplar yang sama
terserialisasi oleh database — yang kalah melihat status pasca-lock dan
gagal 409, bukan double-book.
*/

type LoanService struct {
	DB *gorm.DB
}

type CheckoutInput struct {
	BookCopyID  uuid.UUID
	UserID      uuid.UUID
	LibrarianID *uuid.UUID
	DueDate     *time.Time
}

type CheckinInput struct {
	BookCopyID  uuid.UUID
	LibrarianID *uuid.UUID
	Notes       *string
}

type CheckinResult struct {
	Loan *loanModel.LoanModel
	Fine *fineModel.FineModel
}

// =========================================================
// CHECKOUT (via petugas)
// =========================================================
func (s *LoanService) Checkout(ctx context.Context, in CheckoutInput) (*loanModel.LoanModel, error) {
	var loan *loanModel.LoanModel

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1) Lock eksemplar dulu — ini titik serialisasi antar checkout
		var copy bookModel.BookCopyModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&copy, "book_copy_id = ?", in.BookCopyID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Eksemplar tidak ditemukan")
			}
			return err
		}
		if copy.BookCopyStatus != bookModel.CopyStatusAvailable {
			return fiber.NewError(fiber.StatusConflict,
				fmt.Sprintf("Eksemplar sedang tidak tersedia (status: %s)", copy.BookCopyStatus))
		}

		// 2) Member harus ada & aktif
		if err := s.ensureBorrowerEligible(tx, in.UserID); err != nil {
			return err
		}

		// 3) Jatuh tempo: eksplisit dari petugas, atau default periode pinjam
		dueDate := time.Now().AddDate(0, 0, configs.LoanPeriodDays())
		if in.DueDate != nil {
			dueDate = *in.DueDate
		}

		// 4) Flip status + tulis loan dalam transaksi yang sama
		if err := tx.Model(&bookModel.BookCopyModel{}).
			Where("book_copy_id = ?", copy.BookCopyID).
			Update("book_copy_status", bookModel.CopyStatusBorrowed).Error; err != nil {
			return err
		}

		newLoan := loanModel.LoanModel{
			LoanBookCopyID:  copy.BookCopyID,
			LoanUserID:      in.UserID,
			LoanLibrarianID: in.LibrarianID,
			LoanStatus:      loanModel.LoanStatusActive,
			LoanBorrowedAt:  time.Now(),
			LoanDueDate:     dueDate,
			LoanMaxRenewals: loanModel.DefaultMaxRenewals,
		}
		if err := tx.Create(&newLoan).Error; err != nil {
			return err
		}

		// 5) Kalau member ini ternyata sedang antri/ready untuk buku yang sama,
		//    tutup reservasinya — checkout langsung sudah memuaskan antriannya.
		if err := s.fulfillUserReservation(tx, copy.BookCopyBookID, in.UserID); err != nil {
			return err
		}

		loan = &newLoan
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[LOAN] checkout loan_id=%s copy_id=%s user_id=%s", loan.LoanID, in.BookCopyID, in.UserID)
	return loan, nil
}

// =========================================================
// SELF-CHECKOUT (member pilih bukunya, sistem pilih eksemplar)
// =========================================================
func (s *LoanService) SelfCheckout(ctx context.Context, bookID, userID uuid.UUID) (*loanModel.LoanModel, error) {
	var loan *loanModel.LoanModel

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Ambil satu eksemplar available mana pun, langsung dikunci.
		var copy bookModel.BookCopyModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("book_copy_book_id = ? AND book_copy_status = ?", bookID, bookModel.CopyStatusAvailable).
			First(&copy).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusConflict, "Tidak ada eksemplar yang tersedia untuk dipinjam")
			}
			return err
		}

		if err := s.ensureBorrowerEligible(tx, userID); err != nil {
			return err
		}

		// Satu member satu pinjaman aktif per judul.
		var sameBookLoans int64
		if err := tx.Model(&loanModel.LoanModel{}).
			Joins("JOIN book_copies ON book_copies.book_copy_id = loans.loan_book_copy_id").
			Where("loans.loan_user_id = ? AND loans.loan_status = ? AND book_copies.book_copy_book_id = ?",
				userID, loanModel.LoanStatusActive, bookID).
			Count(&sameBookLoans).Error; err != nil {
			return err
		}
		if sameBookLoans > 0 {
			return fiber.NewError(fiber.StatusConflict, "Anda masih punya pinjaman aktif untuk buku ini")
		}

		if err := tx.Model(&bookModel.BookCopyModel{}).
			Where("book_copy_id = ?", copy.BookCopyID).
			Update("book_copy_status", bookModel.CopyStatusBorrowed).Error; err != nil {
			return err
		}

		newLoan := loanModel.LoanModel{
			LoanBookCopyID:  copy.BookCopyID,
			LoanUserID:      userID,
			LoanStatus:      loanModel.LoanStatusActive,
			LoanBorrowedAt:  time.Now(),
			LoanDueDate:     time.Now().AddDate(0, 0, configs.LoanPeriodDays()),
			LoanMaxRenewals: loanModel.DefaultMaxRenewals,
		}
		if err := tx.Create(&newLoan).Error; err != nil {
			return err
		}

		if err := s.fulfillUserReservation(tx, bookID, userID); err != nil {
			return err
		}

		loan = &newLoan
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[LOAN] self_checkout loan_id=%s book_id=%s user_id=%s", loan.LoanID, bookID, userID)
	return loan, nil
}

// =========================================================
// CHECK-IN
// =========================================================
func (s *LoanService) Checkin(ctx context.Context, in CheckinInput) (*CheckinResult, error) {
	result := &CheckinResult{}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock pinjaman aktif untuk eksemplar ini. Kalau tidak ada, itu error
		// — bukan no-op — karena di sinilah invariant satu-loan-aktif ditegakkan.
		var loan loanModel.LoanModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("loan_book_copy_id = ? AND loan_status = ?", in.BookCopyID, loanModel.LoanStatusActive).
			First(&loan).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Tidak ada pinjaman aktif untuk eksemplar ini")
			}
			return err
		}

		now := time.Now()
		isOverdue := loan.IsOverdueAt(now)

		updates := map[string]interface{}{
			"loan_status":      loanModel.LoanStatusReturned,
			"loan_returned_at": now,
		}
		if in.Notes != nil {
			updates["loan_notes"] = *in.Notes
		}
		if err := tx.Model(&loanModel.LoanModel{}).
			Where("loan_id = ?", loan.LoanID).
			Updates(updates).Error; err != nil {
			return err
		}
		loan.LoanStatus = loanModel.LoanStatusReturned
		loan.LoanReturnedAt = &now
		if in.Notes != nil {
			loan.LoanNotes = in.Notes
		}

		if err := tx.Model(&bookModel.BookCopyModel{}).
			Where("book_copy_id = ?", in.BookCopyID).
			Update("book_copy_status", bookModel.CopyStatusAvailable).Error; err != nil {
			return err
		}

		if isOverdue {
			amount := calcOverdueFine(now, loan.LoanDueDate)
			if amount > 0 {
				fine := fineModel.FineModel{
					FineLoanID: loan.LoanID,
					FineUserID: loan.LoanUserID,
					FineAmount: amount,
					FineReason: "Overdue return",
					FineStatus: fineModel.FineStatusPending,
				}
				if err := tx.Create(&fine).Error; err != nil {
					return err
				}
				result.Fine = &fine
			}
		}

		// Eksemplar baru saja bebas → tawarkan ke antrian terdepan.
		var copy bookModel.BookCopyModel
		if err := tx.First(&copy, "book_copy_id = ?", in.BookCopyID).Error; err != nil {
			return err
		}
		if err := s.processNextReservation(tx, copy.BookCopyBookID); err != nil {
			return err
		}

		result.Loan = &loan
		return nil
	})
	if err != nil {
		return nil, err
	}

	fineAmount := 0.0
	if result.Fine != nil {
		fineAmount = result.Fine.FineAmount
	}
	log.Printf("[LOAN] checkin loan_id=%s copy_id=%s fine=%.2f", result.Loan.LoanID, in.BookCopyID, fineAmount)
	return result, nil
}

// =========================================================
// PERPANJANGAN
// =========================================================
func (s *LoanService) Renew(ctx context.Context, loanID, userID uuid.UUID) (*loanModel.LoanModel, error) {
	var loan *loanModel.LoanModel

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Cari sekaligus by owner: pinjaman milik orang lain tidak terbedakan
		// dari yang tidak ada (404, bukan 403).
		var l loanModel.LoanModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("loan_id = ? AND loan_user_id = ? AND loan_status = ?",
				loanID, userID, loanModel.LoanStatusActive).
			First(&l).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Pinjaman aktif tidak ditemukan")
			}
			return err
		}

		if l.LoanRenewalCount >= l.LoanMaxRenewals {
			return fiber.NewError(fiber.StatusBadRequest, "Batas perpanjangan sudah tercapai")
		}

		now := time.Now()
		if now.After(l.LoanDueDate) {
			return fiber.NewError(fiber.StatusBadRequest, "Pinjaman sudah jatuh tempo, tidak bisa diperpanjang")
		}

		var copy bookModel.BookCopyModel
		if err := tx.First(&copy, "book_copy_id = ?", l.LoanBookCopyID).Error; err != nil {
			return err
		}

		// Ada yang mengantri → buku harus kembali dulu.
		var queued int64
		if err := tx.Model(&resModel.ReservationModel{}).
			Where("reservation_book_id = ? AND reservation_status IN ?",
				copy.BookCopyBookID,
				[]string{resModel.ReservationStatusPending, resModel.ReservationStatusReady}).
			Count(&queued).Error; err != nil {
			return err
		}
		if queued > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Buku sedang direservasi member lain")
		}

		// Jatuh tempo baru dihitung dari SEKARANG, bukan dari due date lama.
		newDueDate := now.AddDate(0, 0, configs.LoanPeriodDays())
		if err := tx.Model(&loanModel.LoanModel{}).
			Where("loan_id = ?", l.LoanID).
			Updates(map[string]interface{}{
				"loan_due_date":      newDueDate,
				"loan_renewal_count": gorm.Expr("loan_renewal_count + 1"),
			}).Error; err != nil {
			return err
		}
		l.LoanDueDate = newDueDate
		l.LoanRenewalCount++

		loan = &l
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[LOAN] renewed loan_id=%s renewal_count=%d", loan.LoanID, loan.LoanRenewalCount)
	return loan, nil
}

// =========================================================
// QUERY
// =========================================================

func (s *LoanService) GetUserLoans(ctx context.Context, userID uuid.UUID, status string) ([]loanModel.LoanModel, error) {
	q := s.DB.WithContext(ctx).
		Preload("BookCopy").Preload("BookCopy.Book").
		Where("loan_user_id = ?", userID).
		Order("loan_borrowed_at DESC")
	if status != "" {
		q = q.Where("loan_status = ?", status)
	}

	var loans []loanModel.LoanModel
	if err := q.Find(&loans).Error; err != nil {
		return nil, err
	}
	return loans, nil
}

func (s *LoanService) GetOverdueLoans(ctx context.Context) ([]loanModel.LoanModel, error) {
	var loans []loanModel.LoanModel
	if err := s.DB.WithContext(ctx).
		Preload("BookCopy").Preload("BookCopy.Book").
		Where("loan_status = ? AND loan_due_date < ?", loanModel.LoanStatusActive, time.Now()).
		Order("loan_due_date ASC").
		Find(&loans).Error; err != nil {
		return nil, err
	}
	return loans, nil
}

// =========================================================
// INTERNAL
// =========================================================

// Syarat pinjam: user ada, aktif, bebas denda pending, dan belum mencapai
// batas pinjaman aktif. Dipanggil di dalam transaksi checkout.
func (s *LoanService) ensureBorrowerEligible(tx *gorm.DB, userID uuid.UUID) error {
	var user userModel.UserModel
	if err := tx.First(&user, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Member tidak ditemukan")
		}
		return err
	}
	if !user.UserIsActive {
		return fiber.NewError(fiber.StatusUnauthorized, "Akun member sedang nonaktif")
	}

	var pendingFines int64
	if err := tx.Model(&fineModel.FineModel{}).
		Where("fine_user_id = ? AND fine_status = ?", userID, fineModel.FineStatusPending).
		Count(&pendingFines).Error; err != nil {
		return err
	}
	if pendingFines > 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Masih ada denda yang belum dibayar")
	}

	var activeLoans int64
	if err := tx.Model(&loanModel.LoanModel{}).
		Where("loan_user_id = ? AND loan_status = ?", userID, loanModel.LoanStatusActive).
		Count(&activeLoans).Error; err != nil {
		return err
	}
	maxLoans := configs.MaxActiveLoans()
	if activeLoans >= int64(maxLoans) {
		return fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("Batas maksimal %d pinjaman aktif sudah tercapai", maxLoans))
	}

	return nil
}

// Promosi antrian: reservasi PENDING terdepan jadi READY dengan masa ambil
// N hari. Status eksemplar TIDAK diubah — tetap available sampai member
// yang dinotifikasi benar-benar checkout (atau reservasinya kadaluarsa).
// Satu eksemplar bebas = maksimal satu promosi.
func (s *LoanService) processNextReservation(tx *gorm.DB, bookID uuid.UUID) error {
	var next resModel.ReservationModel
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("reservation_book_id = ? AND reservation_status = ?", bookID, resModel.ReservationStatusPending).
		Order("reservation_queue_position ASC").
		First(&next).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil // tidak ada yang mengantri
		}
		return err
	}

	now := time.Now()
	expiresAt := now.AddDate(0, 0, configs.ReservationHoldDays())
	if err := tx.Model(&resModel.ReservationModel{}).
		Where("reservation_id = ?", next.ReservationID).
		Updates(map[string]interface{}{
			"reservation_status":      resModel.ReservationStatusReady,
			"reservation_expires_at":  expiresAt,
			"reservation_notified_at": now,
		}).Error; err != nil {
		return err
	}

	log.Printf("[RESERVATION] ready reservation_id=%s user_id=%s", next.ReservationID, next.ReservationUserID)
	return nil
}

// Checkout langsung oleh member yang sedang antri (PENDING/READY) dianggap
// memenuhi reservasinya. Slot antrian yang ditinggalkan ditutup supaya
// posisi PENDING tetap padat 1..N.
func (s *LoanService) fulfillUserReservation(tx *gorm.DB, bookID, userID uuid.UUID) error {
	var res resModel.ReservationModel
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("reservation_book_id = ? AND reservation_user_id = ? AND reservation_status IN ?",
			bookID, userID,
			[]string{resModel.ReservationStatusPending, resModel.ReservationStatusReady}).
		First(&res).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	now := time.Now()
	if err := tx.Model(&resModel.ReservationModel{}).
		Where("reservation_id = ?", res.ReservationID).
		Updates(map[string]interface{}{
			"reservation_status":       resModel.ReservationStatusFulfilled,
			"reservation_fulfilled_at": now,
		}).Error; err != nil {
		return err
	}

	// Tutup gap di belakang posisi yang ditinggalkan.
	if err := tx.Model(&resModel.ReservationModel{}).
		Where("reservation_book_id = ? AND reservation_status = ? AND reservation_queue_position > ?",
			bookID, resModel.ReservationStatusPending, res.ReservationQueuePosition).
		Update("reservation_queue_position", gorm.Expr("reservation_queue_position - 1")).Error; err != nil {
		return err
	}

	log.Printf("[RESERVATION] fulfilled reservation_id=%s via direct checkout", res.ReservationID)
	return nil
}

// Denda lump-sum di saat pengembalian: ceiling hari telat × tarif harian,
// dibulatkan 2 desimal.
func calcOverdueFine(now, dueDate time.Time) float64 {
	return helper.CalculateFineAt(now, dueDate, helper.DefaultFinePerDay)
}

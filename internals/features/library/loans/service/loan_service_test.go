// file: internals/features/library/loans/service/loan_service_test.go
package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookModel "pustakaku_backend/internals/features/library/books/model"
	fineModel "pustakaku_backend/internals/features/library/fines/model"
	loanModel "pustakaku_backend/internals/features/library/loans/model"
	loanService "pustakaku_backend/internals/features/library/loans/service"
	resModel "pustakaku_backend/internals/features/library/reservations/model"
	"pustakaku_backend/internals/testutil"
)

func requireFiberStatus(t *testing.T, err error, status int) {
	t.Helper()
	require.Error(t, err)
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, status, fe.Code)
}

func TestCheckout_Success(t *testing.T) {
	db := testutil.SetupDB(t)
	svc := &loanService.LoanService{DB: db}

	member := testutil.CreateUser(t, db, "member")
	librarian := testutil.CreateUser(t, db, "librarian")
	_, copies := testutil.CreateBook(t, db, 1)

	loan, err := svc.Checkout(context.Background(), loanService.CheckoutInput{
		BookCopyID:  copies[0].BookCopyID,
		UserID:      member.UserID,
		LibrarianID: &librarian.UserID,
	})
	require.NoError(t, err)

	assert.Equal(t, loanModel.LoanStatusActive, loan.LoanStatus)
	assert.Equal(t, member.UserID, loan.LoanUserID)
	require.NotNil(t, loan.LoanLibrarianID)
	assert.Equal(t, librarian.UserID, *loan.LoanLibrarianID)

	// default jatuh tempo = 14 hari dari sekarang
	expected := time.Now().AddDate(0, 0, 14)
	assert.WithinDuration(t, expected, loan.LoanDueDate, time.Minute)

	var copy bookModel.BookCopyModel
	require.NoError(t, db.First(&copy, "book_copy_id = ?", copies[0].BookCopyID).Error)
	assert.Equal(t, bookModel.CopyStatusBorrowed, copy.BookCopyStatus)
}

func TestCheckout_CopyNotFound(t *testing.T) {
	db := testutil.SetupDB(t)
	svc := &loanService.LoanService{DB: db}
	member := testutil.CreateUser(t, db, "member")

	_, err := svc.Checkout(context.Background(), loanService.CheckoutInput{
		BookCopyID: uuid.New(),
		UserID:     member.UserID,
	})
	requireFiberStatus(t, err, fiber.StatusNotFound)
}

func TestCheckout_CopyNotAvailable(t *testing.T) {
	db := testutil.SetupDB(t)
	svc := &loanService.LoanService{DB: db}

	first := testutil.CreateUser(t, db, "member")
	second := testutil.CreateUser(t, db, "member")
	_, copies := testutil.CreateBook(t, db, 1)
	testutil.CreateActiveLoan(t, db, copies[0].BookCopyID, first.UserID, time.Now().AddDate(0, 0, 14))

	_, err := svc.Checkout(context.Background(), loanService.CheckoutInput{
		BookCopyID: copies[0].BookCopyID,
		UserID:     second.UserID,
	})
	requireFiberStatus(t, err, fiber.StatusConflict)
}

// Dua checkout pada eksemplar yang sama secara bersamaan: FOR UPDATE
// menyerialisasi keduanya, tepat satu berhasil dan satunya 409.
func TestCheckout_ConcurrentSameCopy(t *testing.T) {
	db := testutil.SetupDB(t)
	svc := &loanService.LoanService{DB: db}

	userA := testutil.CreateUser(t, db, "member")
	userB := testutil.CreateUser(t, db, "member")
	_, copies := testutil.CreateBook(t, db, 1)

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i, uid := range []uuid.UUID{userA.UserID, userB.UserID} {
		wg.Add(1)
		go func(i int, uid uuid.UUID) {
			defer wg.Done()
			_, errs[i] = svc.Checkout(context.Background(), loanService.CheckoutInput{
				BookCopyID: copies[0].BookCopyID,
				UserID:     uid,
			})
		}(i, uid)
	}
	wg.Wait()

	successes, conflicts := 0, 0
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		var fe *fiber.Error
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, fiber.StatusConflict, fe.Code)
		conflicts++
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, conflicts)

	var activeLoans int64
	require.NoError(t, db.Model(&loanModel.LoanModel{}).
		Where("loan_book_copy_id = ? AND loan_status = ?", copies[0].BookCopyID, loanModel.LoanStatusActive).
		Count(&activeLoans).Error)
	assert.EqualValues(t, 1, activeLoans)
}

func TestCheckout_BlockedByPendingFine(t *testing.T) {
	db := testutil.SetupDB(t)
	svc := &loanService.LoanService{DB: db}

	member := testutil.CreateUser(t, db, "member")
	other := testutil.CreateUser(t, db, "member")
	_, copies := testutil.CreateBook(t, db, 2)

	oldLoan := testutil.CreateActiveLoan(t, db, copies[0].BookCopyID, other.UserID, time.Now().AddDate(0, 0, 7))
	fine := fineModel.FineModel{
		FineLoanID: oldLoan.LoanID,
		FineUserID: member.UserID,
		FineAmount: 0.50,
		FineReason: "Overdue return",
		FineStatus: fineModel.FineStatusPending,
	}
	require.NoError(t, db.Create(&fine).Error)

	_, err := svc.Checkout(context.Background(), loanService.CheckoutInput{
		BookCopyID: copies[1].BookCopyID,
		UserID:     member.UserID,
	})
	requireFiberStatus(t, err, fiber.StatusBadRequest)
}

func TestCheckout_MaxActiveLoansReached(t *testing.T) {
	db := testutil.SetupDB(t)
	svc := &loanService.LoanService{DB: db}

	member := testutil.CreateUser(t, db, "member")
	_, copies := testutil.CreateBook(t, db, 6)
	for i := 0; i < 5; i++ {
		testutil.CreateActiveLoan(t, db, copies[i].BookCopyID, member.UserID, time.Now().AddDate(0, 0, 14))
	}

	_, err := svc.Checkout(context.Background(), loanService.CheckoutInput{
		BookCopyID: copies[5].BookCopyID,
		UserID:     member.UserID,
	})
	requireFiberStatus(t, err, fiber.StatusBadRequest)
}

func TestCheckout_InactiveMember(t *testing.T) {
	db := testutil.SetupDB(t)
	svc := &loanService.LoanService{DB: db}

	member := testutil.CreateInactiveUser(t, db)
	_, copies := testutil.CreateBook(t, db, 1)

	_, err := svc.Checkout(context.Background(), loanService.CheckoutInput{
		BookCopyID: copies[0].BookCopyID,
		UserID:     member.UserID,
	})
	requireFiberStatus(t, err, fiber.StatusUnauthorized)
}

func TestSelfCheckout_PicksAvailableCopy(t *testing.T) {
	db := testutil.SetupDB(t)
	svc := &loanService.LoanService{DB: db}

	member := testutil.CreateUser(t, db, "member")
	book, _ := testutil.CreateBook(t, db, 2)

	loan, err := svc.SelfCheckout(context.Background(), book.BookID, member.UserID)
	require.NoError(t, err)
	assert.Nil(t, loan.LoanLibrarianID)

	var copy bookModel.BookCopyModel
	require.NoError(t, db.First(&copy, "book_copy_id = ?", loan.LoanBookCopyID).Error)
	assert.Equal(t, book.BookID, copy.BookCopyBookID)
	assert.Equal(t, bookModel.CopyStatusBorrowed, copy.BookCopyStatus)
}

func TestSelfCheckout_NoAvailableCopies(t *testing.T) {
	db := testutil.SetupDB(t)
	svc := &loanService.LoanService{DB: db}

	holder := testutil.CreateUser(t, db, "member")
	member := testutil.CreateUser(t, db, "member")
	book, copies := testutil.CreateBook(t, db, 1)
	testutil.CreateActiveLoan(t, db, copies[0].BookCopyID, holder.UserID, time.Now().AddDate(0, 0, 14))

	_, err := svc.SelfCheckout(context.Background(), book.BookID, member.UserID)
	requireFiberStatus(t, err, fiber.StatusConflict)
}

func TestSelfCheckout_AlreadyBorrowingSameBook(t *testing.T) {
	db := testutil.SetupDB(t)
	svc := &loanService.LoanService{DB: db}

	member := testutil.CreateUser(t, db, "member")
	book, copies := testutil.CreateBook(t, db, 2)
	testutil.CreateActiveLoan(t, db, copies[0].BookCopyID, member.UserID, time.Now().AddDate(0, 0, 14))

	_, err := svc.SelfCheckout(context.Background(), book.BookID, member.UserID)
	requireFiberStatus(t, err, fiber.StatusConflict)
}

// Member yang sedang antri lalu checkout langsung: reservasinya fulfilled,
// antrian di belakangnya merapat.
func TestSelfCheckout_FulfillsOwnReservation(t *testing.T) {
	db := testutil.SetupDB(t)
	svc := &loanService.LoanService{DB: db}

	member := testutil.CreateUser(t, db, "member")
	waiting := testutil.CreateUser(t, db, "member")
	book, _ := testutil.CreateBook(t, db, 1)

	mine := testutil.CreateReservation(t, db, book.BookID, member.UserID, resModel.ReservationStatusPending, 1)
	behind := testutil.CreateReservation(t, db, book.BookID, waiting.UserID, resModel.ReservationStatusPending, 2)

	_, err := svc.SelfCheckout(context.Background(), book.BookID, member.UserID)
	require.NoError(t, err)

	var fulfilled resModel.ReservationModel
	require.NoError(t, db.First(&fulfilled, "reservation_id = ?", mine.ReservationID).Error)
	assert.Equal(t, resModel.ReservationStatusFulfilled, fulfilled.ReservationStatus)
	assert.NotNil(t, fulfilled.ReservationFulfilledAt)

	var shifted resModel.ReservationModel
	require.NoError(t, db.First(&shifted, "reservation_id = ?", behind.ReservationID).Error)
	assert.Equal(t, 1, shifted.ReservationQueuePosition)
}

func TestCheckin_OnTimeNoFine(t *testing.T) {
	db := testutil.SetupDB(t)
	svc := &loanService.LoanService{DB: db}

	member := testutil.CreateUser(t, db, "member")
	_, copies := testutil.CreateBook(t, db, 1)
	testutil.CreateActiveLoan(t, db, copies[0].BookCopyID, member.UserID, time.Now().AddDate(0, 0, 7))

	result, err := svc.Checkin(context.Background(), loanService.CheckinInput{
		BookCopyID: copies[0].BookCopyID,
	})
	require.NoError(t, err)
	assert.Equal(t, loanModel.LoanStatusReturned, result.Loan.LoanStatus)
	assert.NotNil(t, result.Loan.LoanReturnedAt)
	assert.Nil(t, result.Fine)

	var copy bookModel.BookCopyModel
	require.NoError(t, db.First(&copy, "book_copy_id = ?", copies[0].BookCopyID).Error)
	assert.Equal(t, bookModel.CopyStatusAvailable, copy.BookCopyStatus)
}

// Telat 2 jam = 1 hari denda = 0.50.
func TestCheckin_OverdueCreatesFine(t *testing.T) {
	db := testutil.SetupDB(t)
	svc := &loanService.LoanService{DB: db}

	member := testutil.CreateUser(t, db, "member")
	_, copies := testutil.CreateBook(t, db, 1)
	testutil.CreateActiveLoan(t, db, copies[0].BookCopyID, member.UserID, time.Now().Add(-2*time.Hour))

	result, err := svc.Checkin(context.Background(), loanService.CheckinInput{
		BookCopyID: copies[0].BookCopyID,
	})
	require.NoError(t, err)
	require.NotNil(t, result.Fine)
	assert.Equal(t, 0.50, result.Fine.FineAmount)
	assert.Equal(t, fineModel.FineStatusPending, result.Fine.FineStatus)
	assert.Equal(t, member.UserID, result.Fine.FineUserID)

	var count int64
	require.NoError(t, db.Model(&fineModel.FineModel{}).
		Where("fine_loan_id = ?", result.Loan.LoanID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCheckin_NoActiveLoan(t *testing.T) {
	db := testutil.SetupDB(t)
	svc := &loanService.LoanService{DB: db}

	_, copies := testutil.CreateBook(t, db, 1)

	_, err := svc.Checkin(context.Background(), loanService.CheckinInput{
		BookCopyID: copies[0].BookCopyID,
	})
	requireFiberStatus(t, err, fiber.StatusNotFound)
}

// Check-in mempromosikan antrian terdepan jadi READY dengan masa ambil
// 3 hari, tanpa mengubah status eksemplar (tetap available).
func TestCheckin_PromotesNextReservation(t *testing.T) {
	db := testutil.SetupDB(t)
	svc := &loanService.LoanService{DB: db}

	borrower := testutil.CreateUser(t, db, "member")
	first := testutil.CreateUser(t, db, "member")
	second := testutil.CreateUser(t, db, "member")
	book, copies := testutil.CreateBook(t, db, 1)
	testutil.CreateActiveLoan(t, db, copies[0].BookCopyID, borrower.UserID, time.Now().AddDate(0, 0, 7))

	resFirst := testutil.CreateReservation(t, db, book.BookID, first.UserID, resModel.ReservationStatusPending, 1)
	resSecond := testutil.CreateReservation(t, db, book.BookID, second.UserID, resModel.ReservationStatusPending, 2)

	_, err := svc.Checkin(context.Background(), loanService.CheckinInput{
		BookCopyID: copies[0].BookCopyID,
	})
	require.NoError(t, err)

	var promoted resModel.ReservationModel
	require.NoError(t, db.First(&promoted, "reservation_id = ?", resFirst.ReservationID).Error)
	assert.Equal(t, resModel.ReservationStatusReady, promoted.ReservationStatus)
	assert.Equal(t, 1, promoted.ReservationQueuePosition)
	require.NotNil(t, promoted.ReservationExpiresAt)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 3), *promoted.ReservationExpiresAt, time.Minute)
	assert.NotNil(t, promoted.ReservationNotifiedAt)

	// posisi 2 tetap pending di tempatnya
	var waiting resModel.ReservationModel
	require.NoError(t, db.First(&waiting, "reservation_id = ?", resSecond.ReservationID).Error)
	assert.Equal(t, resModel.ReservationStatusPending, waiting.ReservationStatus)
	assert.Equal(t, 2, waiting.ReservationQueuePosition)

	var copy bookModel.BookCopyModel
	require.NoError(t, db.First(&copy, "book_copy_id = ?", copies[0].BookCopyID).Error)
	assert.Equal(t, bookModel.CopyStatusAvailable, copy.BookCopyStatus)
}

func TestRenew_Success(t *testing.T) {
	db := testutil.SetupDB(t)
	svc := &loanService.LoanService{DB: db}

	member := testutil.CreateUser(t, db, "member")
	_, copies := testutil.CreateBook(t, db, 1)
	loan := testutil.CreateActiveLoan(t, db, copies[0].BookCopyID, member.UserID, time.Now().AddDate(0, 0, 3))

	renewed, err := svc.Renew(context.Background(), loan.LoanID, member.UserID)
	require.NoError(t, err)
	assert.Equal(t, 1, renewed.LoanRenewalCount)

	// jatuh tempo baru dihitung dari SEKARANG, bukan due date lama
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 14), renewed.LoanDueDate, time.Minute)
}

func TestRenew_LimitReached(t *testing.T) {
	db := testutil.SetupDB(t)
	svc := &loanService.LoanService{DB: db}

	member := testutil.CreateUser(t, db, "member")
	_, copies := testutil.CreateBook(t, db, 1)
	loan := testutil.CreateActiveLoan(t, db, copies[0].BookCopyID, member.UserID, time.Now().AddDate(0, 0, 3))
	require.NoError(t, db.Model(&loanModel.LoanModel{}).
		Where("loan_id = ?", loan.LoanID).
		Update("loan_renewal_count", loanModel.DefaultMaxRenewals).Error)

	_, err := svc.Renew(context.Background(), loan.LoanID, member.UserID)
	requireFiberStatus(t, err, fiber.StatusBadRequest)
}

func TestRenew_OverdueLoan(t *testing.T) {
	db := testutil.SetupDB(t)
	svc := &loanService.LoanService{DB: db}

	member := testutil.CreateUser(t, db, "member")
	_, copies := testutil.CreateBook(t, db, 1)
	loan := testutil.CreateActiveLoan(t, db, copies[0].BookCopyID, member.UserID, time.Now().Add(-time.Hour))

	_, err := svc.Renew(context.Background(), loan.LoanID, member.UserID)
	requireFiberStatus(t, err, fiber.StatusBadRequest)
}

func TestRenew_BlockedByQueue(t *testing.T) {
	db := testutil.SetupDB(t)
	svc := &loanService.LoanService{DB: db}

	member := testutil.CreateUser(t, db, "member")
	waiting := testutil.CreateUser(t, db, "member")
	book, copies := testutil.CreateBook(t, db, 1)
	loan := testutil.CreateActiveLoan(t, db, copies[0].BookCopyID, member.UserID, time.Now().AddDate(0, 0, 3))
	testutil.CreateReservation(t, db, book.BookID, waiting.UserID, resModel.ReservationStatusPending, 1)

	_, err := svc.Renew(context.Background(), loan.LoanID, member.UserID)
	requireFiberStatus(t, err, fiber.StatusBadRequest)
}

// Pinjaman milik orang lain tidak terbedakan dari yang tidak ada.
func TestRenew_OtherMembersLoan(t *testing.T) {
	db := testutil.SetupDB(t)
	svc := &loanService.LoanService{DB: db}

	owner := testutil.CreateUser(t, db, "member")
	intruder := testutil.CreateUser(t, db, "member")
	_, copies := testutil.CreateBook(t, db, 1)
	loan := testutil.CreateActiveLoan(t, db, copies[0].BookCopyID, owner.UserID, time.Now().AddDate(0, 0, 3))

	_, err := svc.Renew(context.Background(), loan.LoanID, intruder.UserID)
	requireFiberStatus(t, err, fiber.StatusNotFound)
}

func TestGetUserLoans_FilterByStatus(t *testing.T) {
	db := testutil.SetupDB(t)
	svc := &loanService.LoanService{DB: db}

	member := testutil.CreateUser(t, db, "member")
	_, copies := testutil.CreateBook(t, db, 2)
	testutil.CreateActiveLoan(t, db, copies[0].BookCopyID, member.UserID, time.Now().AddDate(0, 0, 7))
	returned := testutil.CreateActiveLoan(t, db, copies[1].BookCopyID, member.UserID, time.Now().AddDate(0, 0, 7))
	require.NoError(t, db.Model(&loanModel.LoanModel{}).
		Where("loan_id = ?", returned.LoanID).
		Update("loan_status", loanModel.LoanStatusReturned).Error)

	all, err := svc.GetUserLoans(context.Background(), member.UserID, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := svc.GetUserLoans(context.Background(), member.UserID, loanModel.LoanStatusActive)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestGetOverdueLoans(t *testing.T) {
	db := testutil.SetupDB(t)
	svc := &loanService.LoanService{DB: db}

	member := testutil.CreateUser(t, db, "member")
	_, copies := testutil.CreateBook(t, db, 2)
	testutil.CreateActiveLoan(t, db, copies[0].BookCopyID, member.UserID, time.Now().Add(-time.Hour))
	testutil.CreateActiveLoan(t, db, copies[1].BookCopyID, member.UserID, time.Now().AddDate(0, 0, 7))

	overdue, err := svc.GetOverdueLoans(context.Background())
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, copies[0].BookCopyID, overdue[0].LoanBookCopyID)
}

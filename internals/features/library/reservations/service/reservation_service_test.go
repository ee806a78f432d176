// file: internals/features/library/reservations/service/reservation_service_test.go
package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	resModel "pustakaku_backend/internals/features/library/reservations/model"
	resService "pustakaku_backend/internals/features/library/reservations/service"
	"pustakaku_backend/internals/testutil"
)

func requireFiberStatus(t *testing.T, err error, status int) {
	t.Helper()
	require.Error(t, err)
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, status, fe.Code)
}

func TestCreate_QueuePositionsSequential(t *testing.T) {
	db := testutil.SetupDB(t)
	svc := &resService.ReservationService{DB: db}

	holder := testutil.CreateUser(t, db, "member")
	book, copies := testutil.CreateBook(t, db, 1)
	testutil.CreateActiveLoan(t, db, copies[0].BookCopyID, holder.UserID, time.Now().AddDate(0, 0, 14))

	for want := 1; want <= 3; want++ {
		member := testutil.CreateUser(t, db, "member")
		res, err := svc.Create(context.Background(), book.BookID, member.UserID)
		require.NoError(t, err)
		assert.Equal(t, resModel.ReservationStatusPending, res.ReservationStatus)
		assert.Equal(t, want, res.ReservationQueuePosition)
	}
}

func TestCreate_BookStillAvailable(t *testing.T) {
	db := testutil.SetupDB(t)
	svc := &resService.ReservationService{DB: db}

	member := testutil.CreateUser(t, db, "member")
	book, _ := testutil.CreateBook(t, db, 1)

	_, err := svc.Create(context.Background(), book.BookID, member.UserID)
	requireFiberStatus(t, err, fiber.StatusBadRequest)
}

func TestCreate_DuplicateActiveReservation(t *testing.T) {
	db := testutil.SetupDB(t)
	svc := &resService.ReservationService{DB: db}

	holder := testutil.CreateUser(t, db, "member")
	member := testutil.CreateUser(t, db, "member")
	book, copies := testutil.CreateBook(t, db, 1)
	testutil.CreateActiveLoan(t, db, copies[0].BookCopyID, holder.UserID, time.Now().AddDate(0, 0, 14))

	_, err := svc.Create(context.Background(), book.BookID, member.UserID)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), book.BookID, member.UserID)
	requireFiberStatus(t, err, fiber.StatusConflict)
}

func TestCreate_BookNotFound(t *testing.T) {
	db := testutil.SetupDB(t)
	svc := &resService.ReservationService{DB: db}
	member := testutil.CreateUser(t, db, "member")

	_, err := svc.Create(context.Background(), uuid.New(), member.UserID)
	requireFiberStatus(t, err, fiber.StatusNotFound)
}

func TestCreate_InactiveMember(t *testing.T) {
	db := testutil.SetupDB(t)
	svc := &resService.ReservationService{DB: db}

	holder := testutil.CreateUser(t, db, "member")
	inactive := testutil.CreateInactiveUser(t, db)
	book, copies := testutil.CreateBook(t, db, 1)
	testutil.CreateActiveLoan(t, db, copies[0].BookCopyID, holder.UserID, time.Now().AddDate(0, 0, 14))

	_, err := svc.Create(context.Background(), book.BookID, inactive.UserID)
	requireFiberStatus(t, err, fiber.StatusNotFound)
}

// Batal di tengah antrian: posisi di belakang merapat, di depan tidak bergeser.
func TestCancel_ReindexesQueue(t *testing.T) {
	db := testutil.SetupDB(t)
	svc := &resService.ReservationService{DB: db}

	book, _ := testutil.CreateBook(t, db, 0)
	first := testutil.CreateUser(t, db, "member")
	second := testutil.CreateUser(t, db, "member")
	third := testutil.CreateUser(t, db, "member")

	resFirst := testutil.CreateReservation(t, db, book.BookID, first.UserID, resModel.ReservationStatusPending, 1)
	resSecond := testutil.CreateReservation(t, db, book.BookID, second.UserID, resModel.ReservationStatusPending, 2)
	resThird := testutil.CreateReservation(t, db, book.BookID, third.UserID, resModel.ReservationStatusPending, 3)

	cancelled, err := svc.Cancel(context.Background(), resSecond.ReservationID, second.UserID, nil)
	require.NoError(t, err)
	assert.Equal(t, resModel.ReservationStatusCancelled, cancelled.ReservationStatus)

	var front resModel.ReservationModel
	require.NoError(t, db.First(&front, "reservation_id = ?", resFirst.ReservationID).Error)
	assert.Equal(t, 1, front.ReservationQueuePosition)

	var moved resModel.ReservationModel
	require.NoError(t, db.First(&moved, "reservation_id = ?", resThird.ReservationID).Error)
	assert.Equal(t, 2, moved.ReservationQueuePosition)
}

func TestCancel_WithReasonStoresNotes(t *testing.T) {
	db := testutil.SetupDB(t)
	svc := &resService.ReservationService{DB: db}

	book, _ := testutil.CreateBook(t, db, 0)
	member := testutil.CreateUser(t, db, "member")
	res := testutil.CreateReservation(t, db, book.BookID, member.UserID, resModel.ReservationStatusPending, 1)

	reason := "Sudah dapat dari perpustakaan lain"
	cancelled, err := svc.Cancel(context.Background(), res.ReservationID, member.UserID, &reason)
	require.NoError(t, err)
	require.NotNil(t, cancelled.ReservationNotes)
	assert.Equal(t, reason, *cancelled.ReservationNotes)
}

// Reservasi orang lain = 404, bukan 403.
func TestCancel_OtherMembersReservation(t *testing.T) {
	db := testutil.SetupDB(t)
	svc := &resService.ReservationService{DB: db}

	book, _ := testutil.CreateBook(t, db, 0)
	owner := testutil.CreateUser(t, db, "member")
	intruder := testutil.CreateUser(t, db, "member")
	res := testutil.CreateReservation(t, db, book.BookID, owner.UserID, resModel.ReservationStatusPending, 1)

	_, err := svc.Cancel(context.Background(), res.ReservationID, intruder.UserID, nil)
	requireFiberStatus(t, err, fiber.StatusNotFound)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	db := testutil.SetupDB(t)
	svc := &resService.ReservationService{DB: db}

	book, _ := testutil.CreateBook(t, db, 0)
	member := testutil.CreateUser(t, db, "member")
	res := testutil.CreateReservation(t, db, book.BookID, member.UserID, resModel.ReservationStatusCancelled, 1)

	_, err := svc.Cancel(context.Background(), res.ReservationID, member.UserID, nil)
	requireFiberStatus(t, err, fiber.StatusNotFound)
}

// READY yang lewat masa ambil → expired, antrian PENDING di belakangnya
// merapat. Tidak ada promosi baru dari sweep.
func TestProcessExpired(t *testing.T) {
	db := testutil.SetupDB(t)
	svc := &resService.ReservationService{DB: db}

	book, _ := testutil.CreateBook(t, db, 0)
	expiredUser := testutil.CreateUser(t, db, "member")
	waiting := testutil.CreateUser(t, db, "member")

	res := testutil.CreateReservation(t, db, book.BookID, expiredUser.UserID, resModel.ReservationStatusReady, 1)
	past := time.Now().Add(-time.Hour)
	require.NoError(t, db.Model(&resModel.ReservationModel{}).
		Where("reservation_id = ?", res.ReservationID).
		Update("reservation_expires_at", past).Error)

	behind := testutil.CreateReservation(t, db, book.BookID, waiting.UserID, resModel.ReservationStatusPending, 2)

	count, err := svc.ProcessExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	var after resModel.ReservationModel
	require.NoError(t, db.First(&after, "reservation_id = ?", res.ReservationID).Error)
	assert.Equal(t, resModel.ReservationStatusExpired, after.ReservationStatus)

	var shifted resModel.ReservationModel
	require.NoError(t, db.First(&shifted, "reservation_id = ?", behind.ReservationID).Error)
	assert.Equal(t, resModel.ReservationStatusPending, shifted.ReservationStatus)
	assert.Equal(t, 1, shifted.ReservationQueuePosition)
}

func TestProcessExpired_ReadyStillValidUntouched(t *testing.T) {
	db := testutil.SetupDB(t)
	svc := &resService.ReservationService{DB: db}

	book, _ := testutil.CreateBook(t, db, 0)
	member := testutil.CreateUser(t, db, "member")

	res := testutil.CreateReservation(t, db, book.BookID, member.UserID, resModel.ReservationStatusReady, 1)
	future := time.Now().AddDate(0, 0, 2)
	require.NoError(t, db.Model(&resModel.ReservationModel{}).
		Where("reservation_id = ?", res.ReservationID).
		Update("reservation_expires_at", future).Error)

	count, err := svc.ProcessExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	var after resModel.ReservationModel
	require.NoError(t, db.First(&after, "reservation_id = ?", res.ReservationID).Error)
	assert.Equal(t, resModel.ReservationStatusReady, after.ReservationStatus)
}

func TestGetBookQueue_OrderedByPosition(t *testing.T) {
	db := testutil.SetupDB(t)
	svc := &resService.ReservationService{DB: db}

	book, _ := testutil.CreateBook(t, db, 0)
	first := testutil.CreateUser(t, db, "member")
	second := testutil.CreateUser(t, db, "member")
	done := testutil.CreateUser(t, db, "member")

	testutil.CreateReservation(t, db, book.BookID, second.UserID, resModel.ReservationStatusPending, 2)
	testutil.CreateReservation(t, db, book.BookID, first.UserID, resModel.ReservationStatusReady, 1)
	testutil.CreateReservation(t, db, book.BookID, done.UserID, resModel.ReservationStatusFulfilled, 1)

	queue, err := svc.GetBookQueue(context.Background(), book.BookID)
	require.NoError(t, err)
	require.Len(t, queue, 2)
	assert.Equal(t, first.UserID, queue[0].ReservationUserID)
	assert.Equal(t, second.UserID, queue[1].ReservationUserID)
}

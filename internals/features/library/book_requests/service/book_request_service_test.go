// file: internals/features/library/book_requests/service/book_request_service_test.go
package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	reqModel "pustakaku_backend/internals/features/library/book_requests/model"
	reqService "pustakaku_backend/internals/features/library/book_requests/service"
	"pustakaku_backend/internals/testutil"
)

func requireFiberStatus(t *testing.T, err error, status int) {
	t.Helper()
	require.Error(t, err)
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, status, fe.Code)
}

func TestCreate_Success(t *testing.T) {
	db := testutil.SetupDB(t)
	svc := &reqService.BookRequestService{DB: db}
	member := testutil.CreateUser(t, db, "member")

	author := "Pramoedya Ananta Toer"
	req, err := svc.Create(context.Background(), reqService.CreateInput{
		UserID: member.UserID,
		Title:  "Bumi Manusia",
		Author: &author,
	})
	require.NoError(t, err)
	assert.Equal(t, reqModel.RequestStatusPending, req.BookRequestStatus)
	assert.Equal(t, member.UserID, req.BookRequestUserID)
	assert.Nil(t, req.BookRequestProcessedAt)
}

func TestCreate_ISBNAlreadyInCatalog(t *testing.T) {
	db := testutil.SetupDB(t)
	svc := &reqService.BookRequestService{DB: db}

	member := testutil.CreateUser(t, db, "member")
	book, _ := testutil.CreateBook(t, db, 1)

	_, err := svc.Create(context.Background(), reqService.CreateInput{
		UserID: member.UserID,
		Title:  "Judul apa pun",
		ISBN:   &book.BookISBN,
	})
	requireFiberStatus(t, err, fiber.StatusConflict)
}

func TestCreate_PendingLimit(t *testing.T) {
	db := testutil.SetupDB(t)
	svc := &reqService.BookRequestService{DB: db}
	member := testutil.CreateUser(t, db, "member")

	for i := 0; i < reqService.MaxPendingRequests; i++ {
		_, err := svc.Create(context.Background(), reqService.CreateInput{
			UserID: member.UserID,
			Title:  fmt.Sprintf("Usulan ke-%d", i+1),
		})
		require.NoError(t, err)
	}

	_, err := svc.Create(context.Background(), reqService.CreateInput{
		UserID: member.UserID,
		Title:  "Usulan keenam",
	})
	requireFiberStatus(t, err, fiber.StatusBadRequest)
}

func TestProcess_Approve(t *testing.T) {
	db := testutil.SetupDB(t)
	svc := &reqService.BookRequestService{DB: db}

	member := testutil.CreateUser(t, db, "member")
	librarian := testutil.CreateUser(t, db, "librarian")

	req, err := svc.Create(context.Background(), reqService.CreateInput{
		UserID: member.UserID,
		Title:  "Cantik Itu Luka",
	})
	require.NoError(t, err)

	notes := "Masuk anggaran pengadaan kuartal depan"
	processed, err := svc.Process(context.Background(), req.BookRequestID, reqService.ProcessInput{
		Status:      reqModel.RequestStatusApproved,
		AdminNotes:  &notes,
		ProcessedBy: librarian.UserID,
	})
	require.NoError(t, err)
	assert.Equal(t, reqModel.RequestStatusApproved, processed.BookRequestStatus)
	require.NotNil(t, processed.BookRequestProcessedBy)
	assert.Equal(t, librarian.UserID, *processed.BookRequestProcessedBy)
	assert.NotNil(t, processed.BookRequestProcessedAt)
}

func TestProcess_AlreadyProcessed(t *testing.T) {
	db := testutil.SetupDB(t)
	svc := &reqService.BookRequestService{DB: db}

	member := testutil.CreateUser(t, db, "member")
	librarian := testutil.CreateUser(t, db, "librarian")

	req, err := svc.Create(context.Background(), reqService.CreateInput{
		UserID: member.UserID,
		Title:  "Perahu Kertas",
	})
	require.NoError(t, err)

	_, err = svc.Process(context.Background(), req.BookRequestID, reqService.ProcessInput{
		Status:      reqModel.RequestStatusRejected,
		ProcessedBy: librarian.UserID,
	})
	require.NoError(t, err)

	_, err = svc.Process(context.Background(), req.BookRequestID, reqService.ProcessInput{
		Status:      reqModel.RequestStatusApproved,
		ProcessedBy: librarian.UserID,
	})
	requireFiberStatus(t, err, fiber.StatusConflict)
}

func TestProcess_InvalidTargetStatus(t *testing.T) {
	db := testutil.SetupDB(t)
	svc := &reqService.BookRequestService{DB: db}
	librarian := testutil.CreateUser(t, db, "librarian")

	_, err := svc.Process(context.Background(), uuid.New(), reqService.ProcessInput{
		Status:      reqModel.RequestStatusPending,
		ProcessedBy: librarian.UserID,
	})
	requireFiberStatus(t, err, fiber.StatusBadRequest)
}

func TestProcess_NotFound(t *testing.T) {
	db := testutil.SetupDB(t)
	svc := &reqService.BookRequestService{DB: db}
	librarian := testutil.CreateUser(t, db, "librarian")

	_, err := svc.Process(context.Background(), uuid.New(), reqService.ProcessInput{
		Status:      reqModel.RequestStatusApproved,
		ProcessedBy: librarian.UserID,
	})
	requireFiberStatus(t, err, fiber.StatusNotFound)
}

func TestCancel(t *testing.T) {
	db := testutil.SetupDB(t)
	svc := &reqService.BookRequestService{DB: db}

	member := testutil.CreateUser(t, db, "member")
	req, err := svc.Create(context.Background(), reqService.CreateInput{
		UserID: member.UserID,
		Title:  "Supernova",
	})
	require.NoError(t, err)

	cancelled, err := svc.Cancel(context.Background(), req.BookRequestID, member.UserID)
	require.NoError(t, err)
	assert.Equal(t, reqModel.RequestStatusRejected, cancelled.BookRequestStatus)
	require.NotNil(t, cancelled.BookRequestAdminNotes)

	// batal kedua kali = 404 (sudah tidak pending)
	_, err = svc.Cancel(context.Background(), req.BookRequestID, member.UserID)
	requireFiberStatus(t, err, fiber.StatusNotFound)
}

// Usulan milik orang lain tidak terbedakan dari yang tidak ada.
func TestCancel_OtherMembersRequest(t *testing.T) {
	db := testutil.SetupDB(t)
	svc := &reqService.BookRequestService{DB: db}

	owner := testutil.CreateUser(t, db, "member")
	intruder := testutil.CreateUser(t, db, "member")
	req, err := svc.Create(context.Background(), reqService.CreateInput{
		UserID: owner.UserID,
		Title:  "Filosofi Teras",
	})
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), req.BookRequestID, intruder.UserID)
	requireFiberStatus(t, err, fiber.StatusNotFound)
}

func TestGetAllRequests_FilterByStatus(t *testing.T) {
	db := testutil.SetupDB(t)
	svc := &reqService.BookRequestService{DB: db}

	member := testutil.CreateUser(t, db, "member")
	librarian := testutil.CreateUser(t, db, "librarian")

	first, err := svc.Create(context.Background(), reqService.CreateInput{UserID: member.UserID, Title: "Buku A"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), reqService.CreateInput{UserID: member.UserID, Title: "Buku B"})
	require.NoError(t, err)

	_, err = svc.Process(context.Background(), first.BookRequestID, reqService.ProcessInput{
		Status:      reqModel.RequestStatusAcquired,
		ProcessedBy: librarian.UserID,
	})
	require.NoError(t, err)

	all, err := svc.GetAllRequests(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	acquired, err := svc.GetAllRequests(context.Background(), reqModel.RequestStatusAcquired)
	require.NoError(t, err)
	require.Len(t, acquired, 1)
	assert.Equal(t, first.BookRequestID, acquired[0].BookRequestID)
	require.NotNil(t, acquired[0].User)
	require.NotNil(t, acquired[0].Processor)
}

// file: internals/features/library/book_requests/service/book_request_service.go
package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	reqModel "pustakaku_backend/internals/features/library/book_requests/model"
	bookModel "pustakaku_backend/internals/features/library/books/model"
)

// Maksimal usulan pending per member.
const MaxPendingRequests = 5

type BookRequestService struct {
	DB *gorm.DB
}

type CreateInput struct {
	UserID uuid.UUID
	Title  string
	Author *string
	ISBN   *string
	Reason *string
}

type ProcessInput struct {
	Status      string
	AdminNotes  *string
	ProcessedBy uuid.UUID
}

// =========================================================
// CREATE
// =========================================================
func (s *BookRequestService) Create(ctx context.Context, in CreateInput) (*reqModel.BookRequestModel, error) {
	var request *reqModel.BookRequestModel

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Judul dengan ISBN yang sama sudah ada di katalog → tidak perlu diusulkan.
		if in.ISBN != nil && *in.ISBN != "" {
			var existing int64
			if err := tx.Model(&bookModel.BookModel{}).
				Where("book_isbn = ?", *in.ISBN).
				Count(&existing).Error; err != nil {
				return err
			}
			if existing > 0 {
				return fiber.NewError(fiber.StatusConflict, "Buku dengan ISBN ini sudah ada di katalog")
			}
		}

		var pending int64
		if err := tx.Model(&reqModel.BookRequestModel{}).
			Where("book_request_user_id = ? AND book_request_status = ?",
				in.UserID, reqModel.RequestStatusPending).
			Count(&pending).Error; err != nil {
			return err
		}
		if pending >= MaxPendingRequests {
			return fiber.NewError(fiber.StatusBadRequest, "Maksimal 5 usulan pending per member")
		}

		newReq := reqModel.BookRequestModel{
			BookRequestUserID: in.UserID,
			BookRequestTitle:  in.Title,
			BookRequestAuthor: in.Author,
			BookRequestISBN:   in.ISBN,
			BookRequestReason: in.Reason,
			BookRequestStatus: reqModel.RequestStatusPending,
		}
		if err := tx.Create(&newReq).Error; err != nil {
			return err
		}

		request = &newReq
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[BOOK_REQUEST] created request_id=%s user_id=%s title=%q",
		request.BookRequestID, in.UserID, in.Title)
	return request, nil
}

// =========================================================
// PROCESS (petugas)
// =========================================================
func (s *BookRequestService) Process(ctx context.Context, requestID uuid.UUID, in ProcessInput) (*reqModel.BookRequestModel, error) {
	switch in.Status {
	case reqModel.RequestStatusApproved, reqModel.RequestStatusRejected, reqModel.RequestStatusAcquired:
	default:
		return nil, fiber.NewError(fiber.StatusBadRequest, "Status tujuan tidak valid")
	}

	var request *reqModel.BookRequestModel

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock dulu: dua petugas memproses usulan yang sama harus terserialisasi.
		var req reqModel.BookRequestModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&req, "book_request_id = ?", requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Usulan buku tidak ditemukan")
			}
			return err
		}

		if req.BookRequestStatus != reqModel.RequestStatusPending {
			return fiber.NewError(fiber.StatusConflict, "Usulan sudah diproses")
		}

		now := time.Now()
		updates := map[string]interface{}{
			"book_request_status":       in.Status,
			"book_request_processed_by": in.ProcessedBy,
			"book_request_processed_at": now,
		}
		if in.AdminNotes != nil {
			updates["book_request_admin_notes"] = *in.AdminNotes
		}
		if err := tx.Model(&reqModel.BookRequestModel{}).
			Where("book_request_id = ?", req.BookRequestID).
			Updates(updates).Error; err != nil {
			return err
		}
		req.BookRequestStatus = in.Status
		req.BookRequestProcessedBy = &in.ProcessedBy
		req.BookRequestProcessedAt = &now
		if in.AdminNotes != nil {
			req.BookRequestAdminNotes = in.AdminNotes
		}

		request = &req
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[BOOK_REQUEST] processed request_id=%s status=%s by=%s",
		requestID, in.Status, in.ProcessedBy)
	return request, nil
}

// =========================================================
// CANCEL (member)
// =========================================================
// Usulan milik orang lain atau yang sudah diproses = 404.
func (s *BookRequestService) Cancel(ctx context.Context, requestID, userID uuid.UUID) (*reqModel.BookRequestModel, error) {
	var request *reqModel.BookRequestModel

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var req reqModel.BookRequestModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("book_request_id = ? AND book_request_user_id = ? AND book_request_status = ?",
				requestID, userID, reqModel.RequestStatusPending).
			First(&req).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Usulan pending tidak ditemukan")
			}
			return err
		}

		notes := "Dibatalkan oleh member"
		if err := tx.Model(&reqModel.BookRequestModel{}).
			Where("book_request_id = ?", req.BookRequestID).
			Updates(map[string]interface{}{
				"book_request_status":      reqModel.RequestStatusRejected,
				"book_request_admin_notes": notes,
			}).Error; err != nil {
			return err
		}
		req.BookRequestStatus = reqModel.RequestStatusRejected
		req.BookRequestAdminNotes = &notes

		request = &req
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[BOOK_REQUEST] cancelled request_id=%s user_id=%s", requestID, userID)
	return request, nil
}

// =========================================================
// QUERY
// =========================================================

func (s *BookRequestService) GetUserRequests(ctx context.Context, userID uuid.UUID) ([]reqModel.BookRequestModel, error) {
	var requests []reqModel.BookRequestModel
	if err := s.DB.WithContext(ctx).
		Where("book_request_user_id = ?", userID).
		Order("book_request_created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (s *BookRequestService) GetAllRequests(ctx context.Context, status string) ([]reqModel.BookRequestModel, error) {
	q := s.DB.WithContext(ctx).
		Preload("User").Preload("Processor").
		Order("book_request_created_at DESC")
	if status != "" {
		q = q.Where("book_request_status = ?", status)
	}

	var requests []reqModel.BookRequestModel
	if err := q.Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (s *BookRequestService) GetByID(ctx context.Context, requestID uuid.UUID) (*reqModel.BookRequestModel, error) {
	var req reqModel.BookRequestModel
	if err := s.DB.WithContext(ctx).
		Preload("User").Preload("Processor").
		First(&req, "book_request_id = ?", requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Usulan buku tidak ditemukan")
		}
		return nil, err
	}
	return &req, nil
}

// file: internals/features/library/fines/service/fine_service.go
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

	fineModel "pustakaku_backend/internals/features/library/fines/model"
)

type FineService struct {
	DB *gorm.DB
}

type PayInput struct {
	FineID uuid.UUID
	UserID uuid.UUID
	Amount float64
}

type WaiveInput struct {
	FineID   uuid.UUID
	WaivedBy uuid.UUID
	Reason   string
}

// =========================================================
// PAY
// =========================================================
// Pembayaran penuh → paid, sebagian → partial, lebih dari sisa → 400.
// Denda milik member lain = 404. Lock supaya dua pembayaran beruntun
// tidak menghitung sisa yang basi.
func (s *FineService) Pay(ctx context.Context, in PayInput) (*fineModel.FineModel, error) {
	var fine fineModel.FineModel

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("fine_id = ? AND fine_user_id = ?", in.FineID, in.UserID).
			First(&fine).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Denda tidak ditemukan")
			}
			return err
		}

		if fine.FineStatus != fineModel.FineStatusPending && fine.FineStatus != fineModel.FineStatusPartial {
			return fiber.NewError(fiber.StatusConflict, "Denda sudah diselesaikan")
		}

		newPaid := fine.FinePaidAmount + in.Amount
		if newPaid > fine.FineAmount {
			return fiber.NewError(fiber.StatusBadRequest, "Jumlah bayar melebihi sisa denda")
		}

		now := time.Now()
		updates := map[string]interface{}{
			"fine_paid_amount": newPaid,
		}
		if newPaid >= fine.FineAmount {
			updates["fine_status"] = fineModel.FineStatusPaid
			updates["fine_paid_at"] = now
			fine.FineStatus = fineModel.FineStatusPaid
			fine.FinePaidAt = &now
		} else {
			updates["fine_status"] = fineModel.FineStatusPartial
			fine.FineStatus = fineModel.FineStatusPartial
		}
		fine.FinePaidAmount = newPaid

		return tx.Model(&fineModel.FineModel{}).
			Where("fine_id = ?", fine.FineID).
			Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[FINE] payment fine_id=%s paid=%.2f status=%s", fine.FineID, fine.FinePaidAmount, fine.FineStatus)
	return &fine, nil
}

// =========================================================
// WAIVE (petugas)
// =========================================================
func (s *FineService) Waive(ctx context.Context, in WaiveInput) (*fineModel.FineModel, error) {
	var fine fineModel.FineModel

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&fine, "fine_id = ?", in.FineID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Denda tidak ditemukan")
			}
			return err
		}

		if fine.FineStatus == fineModel.FineStatusPaid || fine.FineStatus == fineModel.FineStatusWaived {
			return fiber.NewError(fiber.StatusConflict, "Denda sudah diselesaikan")
		}

		now := time.Now()
		fine.FineStatus = fineModel.FineStatusWaived
		fine.FineWaivedAt = &now
		fine.FineWaivedBy = &in.WaivedBy
		fine.FineWaiverReason = &in.Reason

		return tx.Model(&fineModel.FineModel{}).
			Where("fine_id = ?", fine.FineID).
			Updates(map[string]interface{}{
				"fine_status":        fineModel.FineStatusWaived,
				"fine_waived_at":     now,
				"fine_waived_by":     in.WaivedBy,
				"fine_waiver_reason": in.Reason,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[FINE] waived fine_id=%s by=%s", fine.FineID, in.WaivedBy)
	return &fine, nil
}

// =========================================================
// QUERY
// =========================================================

func (s *FineService) GetUserFines(ctx context.Context, userID uuid.UUID) ([]fineModel.FineModel, error) {
	var fines []fineModel.FineModel
	if err := s.DB.WithContext(ctx).
		Where("fine_user_id = ?", userID).
		Order("fine_created_at DESC").
		Find(&fines).Error; err != nil {
		return nil, err
	}
	return fines, nil
}

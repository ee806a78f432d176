// file: internals/features/library/reservations/service/reservation_service.go
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

	bookModel "pustakaku_backend/internals/features/library/books/model"
	resModel "pustakaku_backend/internals/features/library/reservations/model"
	userModel "pustakaku_backend/internals/features/users/user/model"
)

/*
Antrian reservasi per judul buku, FIFO. Posisi antrian PENDING selalu padat
1..N: setiap reservasi yang keluar dari antrian (batal, kadaluarsa, atau
terpenuhi) menutup gap dengan menggeser posisi di belakangnya.
Reindex selalu dilakukan setelah baris reservasinya dikunci, supaya dua
pembatalan beruntun tidak menghitung posisi basi.
*/

type ReservationService struct {
	DB *gorm.DB
}

// =========================================================
// CREATE
// =========================================================
func (s *ReservationService) Create(ctx context.Context, bookID, userID uuid.UUID) (*resModel.ReservationModel, error) {
	var reservation *resModel.ReservationModel

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var book bookModel.BookModel
		if err := tx.First(&book, "book_id = ?", bookID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Buku tidak ditemukan")
			}
			return err
		}

		var user userModel.UserModel
		if err := tx.First(&user, "user_id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Member tidak ditemukan")
			}
			return err
		}
		if !user.UserIsActive {
			return fiber.NewError(fiber.StatusNotFound, "Member tidak ditemukan")
		}

		// Satu member satu reservasi aktif per judul.
		var existing int64
		if err := tx.Model(&resModel.ReservationModel{}).
			Where("reservation_book_id = ? AND reservation_user_id = ? AND reservation_status IN ?",
				bookID, userID,
				[]string{resModel.ReservationStatusPending, resModel.ReservationStatusReady}).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return fiber.NewError(fiber.StatusConflict, "Anda sudah punya reservasi aktif untuk buku ini")
		}

		// Reservasi hanya untuk buku yang semua eksemplarnya sedang keluar.
		var availableCopies int64
		if err := tx.Model(&bookModel.BookCopyModel{}).
			Where("book_copy_book_id = ? AND book_copy_status = ?", bookID, bookModel.CopyStatusAvailable).
			Count(&availableCopies).Error; err != nil {
			return err
		}
		if availableCopies > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Buku masih tersedia, silakan langsung pinjam")
		}

		// Posisi = ekor antrian PENDING.
		var lastPosition int64
		if err := tx.Model(&resModel.ReservationModel{}).
			Where("reservation_book_id = ? AND reservation_status = ?", bookID, resModel.ReservationStatusPending).
			Select("COALESCE(MAX(reservation_queue_position), 0)").
			Scan(&lastPosition).Error; err != nil {
			return err
		}

		newRes := resModel.ReservationModel{
			ReservationBookID:        bookID,
			ReservationUserID:        userID,
			ReservationStatus:        resModel.ReservationStatusPending,
			ReservationQueuePosition: int(lastPosition) + 1,
			ReservationReservedAt:    time.Now(),
		}
		if err := tx.Create(&newRes).Error; err != nil {
			return err
		}

		reservation = &newRes
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[RESERVATION] created reservation_id=%s book_id=%s position=%d",
		reservation.ReservationID, bookID, reservation.ReservationQueuePosition)
	return reservation, nil
}

// =========================================================
// CANCEL
// =========================================================
func (s *ReservationService) Cancel(ctx context.Context, reservationID, userID uuid.UUID, reason *string) (*resModel.ReservationModel, error) {
	var reservation *resModel.ReservationModel

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lookup by owner: reservasi orang lain = 404.
		var res resModel.ReservationModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("reservation_id = ? AND reservation_user_id = ? AND reservation_status IN ?",
				reservationID, userID,
				[]string{resModel.ReservationStatusPending, resModel.ReservationStatusReady}).
			First(&res).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Reservasi aktif tidak ditemukan")
			}
			return err
		}

		updates := map[string]interface{}{
			"reservation_status": resModel.ReservationStatusCancelled,
		}
		if reason != nil {
			updates["reservation_notes"] = *reason
		}
		if err := tx.Model(&resModel.ReservationModel{}).
			Where("reservation_id = ?", res.ReservationID).
			Updates(updates).Error; err != nil {
			return err
		}
		res.ReservationStatus = resModel.ReservationStatusCancelled
		if reason != nil {
			res.ReservationNotes = reason
		}

		if err := s.reorderQueue(tx, res.ReservationBookID, res.ReservationQueuePosition); err != nil {
			return err
		}

		reservation = &res
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[RESERVATION] cancelled reservation_id=%s user_id=%s", reservationID, userID)
	return reservation, nil
}

// =========================================================
// EXPIRY SWEEP
// =========================================================
// Reservasi READY yang lewat masa ambil → expired, lalu antrian dirapatkan.
// TIDAK mempromosikan posisi berikutnya: READY yang kadaluarsa tidak pernah
// memegang eksemplar, jadi tidak ada eksemplar bebas untuk ditawarkan.
// Tiap reservasi diproses dalam transaksinya sendiri.
func (s *ReservationService) ProcessExpired(ctx context.Context) (int, error) {
	now := time.Now()

	var expired []resModel.ReservationModel
	if err := s.DB.WithContext(ctx).
		Where("reservation_status = ? AND reservation_expires_at < ?", resModel.ReservationStatusReady, now).
		Find(&expired).Error; err != nil {
		return 0, err
	}

	processed := 0
	for i := range expired {
		res := expired[i]
		err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			// Re-lock dan re-check: sweep bisa balapan dengan checkout/cancel.
			var locked resModel.ReservationModel
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("reservation_id = ? AND reservation_status = ?",
					res.ReservationID, resModel.ReservationStatusReady).
				First(&locked).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil // sudah berubah status, lewati
				}
				return err
			}

			if err := tx.Model(&resModel.ReservationModel{}).
				Where("reservation_id = ?", locked.ReservationID).
				Update("reservation_status", resModel.ReservationStatusExpired).Error; err != nil {
				return err
			}

			return s.reorderQueue(tx, locked.ReservationBookID, locked.ReservationQueuePosition)
		})
		if err != nil {
			log.Printf("[RESERVATION] expire err reservation_id=%s: %v", res.ReservationID, err)
			continue
		}
		processed++
	}

	if processed > 0 {
		log.Printf("[RESERVATION] expired_processed count=%d", processed)
	}
	return processed, nil
}

// =========================================================
// QUERY
// =========================================================

func (s *ReservationService) GetUserReservations(ctx context.Context, userID uuid.UUID) ([]resModel.ReservationModel, error) {
	var reservations []resModel.ReservationModel
	if err := s.DB.WithContext(ctx).
		Where("reservation_user_id = ?", userID).
		Order("reservation_reserved_at DESC").
		Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

func (s *ReservationService) GetBookQueue(ctx context.Context, bookID uuid.UUID) ([]resModel.ReservationModel, error) {
	var reservations []resModel.ReservationModel
	if err := s.DB.WithContext(ctx).
		Where("reservation_book_id = ? AND reservation_status IN ?",
			bookID,
			[]string{resModel.ReservationStatusPending, resModel.ReservationStatusReady}).
		Order("reservation_queue_position ASC").
		Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

// =========================================================
// INTERNAL
// =========================================================

// Geser semua PENDING di belakang posisi yang kosong, satu langkah ke depan.
func (s *ReservationService) reorderQueue(tx *gorm.DB, bookID uuid.UUID, vacatedPosition int) error {
	return tx.Model(&resModel.ReservationModel{}).
		Where("reservation_book_id = ? AND reservation_status = ? AND reservation_queue_position > ?",
			bookID, resModel.ReservationStatusPending, vacatedPosition).
		Update("reservation_queue_position", gorm.Expr("reservation_queue_position - 1")).Error
}

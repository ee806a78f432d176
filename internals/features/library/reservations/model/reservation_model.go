// file: internals/features/library/reservations/model/reservation_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ReservationStatusPending   = "pending"
	ReservationStatusReady     = "ready"
	ReservationStatusFulfilled = "fulfilled"
	ReservationStatusCancelled = "cancelled"
	ReservationStatusExpired   = "expired"
)

// Reservasi menunggu di level judul buku, bukan eksemplar tertentu.
// Invariant antrian: posisi reservasi PENDING per book_id selalu padat 1..N.
type ReservationModel struct {
	ReservationID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:reservation_id" json:"reservation_id"`

	ReservationBookID uuid.UUID `gorm:"type:uuid;not null;index;column:reservation_book_id" json:"reservation_book_id"`
	ReservationUserID uuid.UUID `gorm:"type:uuid;not null;index;column:reservation_user_id" json:"reservation_user_id"`

	ReservationStatus        string `gorm:"type:varchar(20);not null;default:'pending';index;column:reservation_status" json:"reservation_status"`
	ReservationQueuePosition int    `gorm:"not null;default:1;index;column:reservation_queue_position" json:"reservation_queue_position"`

	ReservationReservedAt  time.Time  `gorm:"type:timestamptz;not null;default:now();column:reservation_reserved_at" json:"reservation_reserved_at"`
	ReservationExpiresAt   *time.Time `gorm:"type:timestamptz;column:reservation_expires_at" json:"reservation_expires_at,omitempty"`
	ReservationFulfilledAt *time.Time `gorm:"type:timestamptz;column:reservation_fulfilled_at" json:"reservation_fulfilled_at,omitempty"`
	ReservationNotifiedAt  *time.Time `gorm:"type:timestamptz;column:reservation_notified_at" json:"reservation_notified_at,omitempty"`

	ReservationNotes *string `gorm:"type:text;column:reservation_notes" json:"reservation_notes,omitempty"`

	ReservationCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:reservation_created_at" json:"reservation_created_at"`
	ReservationUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:reservation_updated_at" json:"reservation_updated_at"`
}

func (ReservationModel) TableName() string { return "reservations" }

func (r *ReservationModel) IsActive() bool {
	return r.ReservationStatus == ReservationStatusPending ||
		r.ReservationStatus == ReservationStatusReady
}

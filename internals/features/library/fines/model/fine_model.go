// file: internals/features/library/fines/model/fine_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	FineStatusPending = "pending"
	FineStatusPaid    = "paid"
	FineStatusWaived  = "waived"
	FineStatusPartial = "partial"
)

// Denda dibuat sekali saat check-in terlambat. Member dengan denda pending
// diblokir dari checkout berikutnya.
type FineModel struct {
	FineID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:fine_id" json:"fine_id"`

	FineLoanID uuid.UUID `gorm:"type:uuid;not null;index;column:fine_loan_id" json:"fine_loan_id"`
	FineUserID uuid.UUID `gorm:"type:uuid;not null;index;column:fine_user_id" json:"fine_user_id"`

	FineAmount     float64 `gorm:"type:numeric(10,2);not null;column:fine_amount" json:"fine_amount"`
	FinePaidAmount float64 `gorm:"type:numeric(10,2);not null;default:0;column:fine_paid_amount" json:"fine_paid_amount"`
	FineReason     string  `gorm:"type:text;not null;column:fine_reason" json:"fine_reason"`

	FineStatus string `gorm:"type:varchar(20);not null;default:'pending';index;column:fine_status" json:"fine_status"`

	FineDueDate *time.Time `gorm:"type:timestamptz;column:fine_due_date" json:"fine_due_date,omitempty"`
	FinePaidAt  *time.Time `gorm:"type:timestamptz;column:fine_paid_at" json:"fine_paid_at,omitempty"`

	FineWaivedAt     *time.Time `gorm:"type:timestamptz;column:fine_waived_at" json:"fine_waived_at,omitempty"`
	FineWaivedBy     *uuid.UUID `gorm:"type:uuid;column:fine_waived_by" json:"fine_waived_by,omitempty"`
	FineWaiverReason *string    `gorm:"type:text;column:fine_waiver_reason" json:"fine_waiver_reason,omitempty"`

	FineNotes *string `gorm:"type:text;column:fine_notes" json:"fine_notes,omitempty"`

	FineCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:fine_created_at" json:"fine_created_at"`
	FineUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:fine_updated_at" json:"fine_updated_at"`
}

func (FineModel) TableName() string { return "fines" }

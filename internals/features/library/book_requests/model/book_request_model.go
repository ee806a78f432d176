// file: internals/features/library/book_requests/model/book_request_model.go
package model

import (
	"time"

	"github.com/google/uuid"

	userModel "pustakaku_backend/internals/features/users/user/model"
)

const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
	RequestStatusAcquired = "acquired"
)

// Usulan pengadaan judul dari member. Hanya status pending yang bisa
// diproses petugas atau dibatalkan member.
type BookRequestModel struct {
	BookRequestID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:book_request_id" json:"book_request_id"`

	BookRequestUserID uuid.UUID `gorm:"type:uuid;not null;index;column:book_request_user_id" json:"book_request_user_id"`

	BookRequestTitle  string  `gorm:"type:varchar(500);not null;column:book_request_title" json:"book_request_title"`
	BookRequestAuthor *string `gorm:"type:varchar(255);column:book_request_author" json:"book_request_author,omitempty"`
	BookRequestISBN   *string `gorm:"type:varchar(20);column:book_request_isbn" json:"book_request_isbn,omitempty"`
	BookRequestReason *string `gorm:"type:text;column:book_request_reason" json:"book_request_reason,omitempty"`

	BookRequestStatus string `gorm:"type:varchar(20);not null;default:'pending';index;column:book_request_status" json:"book_request_status"`

	BookRequestAdminNotes  *string    `gorm:"type:text;column:book_request_admin_notes" json:"book_request_admin_notes,omitempty"`
	BookRequestProcessedBy *uuid.UUID `gorm:"type:uuid;column:book_request_processed_by" json:"book_request_processed_by,omitempty"`
	BookRequestProcessedAt *time.Time `gorm:"type:timestamptz;column:book_request_processed_at" json:"book_request_processed_at,omitempty"`

	BookRequestCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:book_request_created_at" json:"book_request_created_at"`
	BookRequestUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:book_request_updated_at" json:"book_request_updated_at"`

	User      *userModel.UserModel `gorm:"foreignKey:BookRequestUserID;references:UserID" json:"user,omitempty"`
	Processor *userModel.UserModel `gorm:"foreignKey:BookRequestProcessedBy;references:UserID" json:"processor,omitempty"`
}

func (BookRequestModel) TableName() string { return "book_requests" }

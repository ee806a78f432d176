// file: internals/features/library/loans/model/loan_model.go
package model

import (
	"time"

	"github.com/google/uuid"

	bookModel "pustakaku_backend/internals/features/library/books/model"
)

const (
	LoanStatusActive   = "active"
	LoanStatusReturned = "returned"
	LoanStatusOverdue  = "overdue"
	LoanStatusLost     = "lost"
)

const DefaultMaxRenewals = 2

type LoanModel struct {
	LoanID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:loan_id" json:"loan_id"`

	LoanBookCopyID uuid.UUID `gorm:"type:uuid;not null;index;column:loan_book_copy_id" json:"loan_book_copy_id"`
	LoanUserID     uuid.UUID `gorm:"type:uuid;not null;index;column:loan_user_id" json:"loan_user_id"`
	// null untuk self-checkout
	LoanLibrarianID *uuid.UUID `gorm:"type:uuid;column:loan_librarian_id" json:"loan_librarian_id,omitempty"`

	LoanStatus string `gorm:"type:varchar(20);not null;default:'active';index;column:loan_status" json:"loan_status"`

	LoanBorrowedAt time.Time  `gorm:"type:timestamptz;not null;default:now();column:loan_borrowed_at" json:"loan_borrowed_at"`
	LoanDueDate    time.Time  `gorm:"type:timestamptz;not null;index;column:loan_due_date" json:"loan_due_date"`
	LoanReturnedAt *time.Time `gorm:"type:timestamptz;column:loan_returned_at" json:"loan_returned_at,omitempty"`

	LoanRenewalCount int `gorm:"not null;default:0;column:loan_renewal_count" json:"loan_renewal_count"`
	LoanMaxRenewals  int `gorm:"not null;default:2;column:loan_max_renewals" json:"loan_max_renewals"`

	LoanNotes *string `gorm:"type:text;column:loan_notes" json:"loan_notes,omitempty"`

	LoanCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:loan_created_at" json:"loan_created_at"`
	LoanUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:loan_updated_at" json:"loan_updated_at"`

	BookCopy *bookModel.BookCopyModel `gorm:"foreignKey:LoanBookCopyID;references:BookCopyID" json:"book_copy,omitempty"`
}

func (LoanModel) TableName() string { return "loans" }

func (l *LoanModel) IsOverdueAt(t time.Time) bool {
	return t.After(l.LoanDueDate)
}

// file: internals/features/library/loans/dto/loan_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	fineModel "pustakaku_backend/internals/features/library/fines/model"
	loanModel "pustakaku_backend/internals/features/library/loans/model"
)

/* =========================================================
   REQUEST
   ========================================================= */

type CheckoutRequest struct {
	BookCopyID uuid.UUID  `json:"book_copy_id" validate:"required"`
	UserID     uuid.UUID  `json:"user_id" validate:"required"`
	DueDate    *time.Time `json:"due_date,omitempty"`
}

type SelfCheckoutRequest struct {
	BookID uuid.UUID `json:"book_id" validate:"required"`
}

type CheckinRequest struct {
	BookCopyID uuid.UUID `json:"book_copy_id" validate:"required"`
	Notes      *string   `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

/* =========================================================
   RESPONSE
   ========================================================= */

type LoanResponse struct {
	LoanID          uuid.UUID  `json:"loan_id"`
	LoanBookCopyID  uuid.UUID  `json:"loan_book_copy_id"`
	LoanUserID      uuid.UUID  `json:"loan_user_id"`
	LoanLibrarianID *uuid.UUID `json:"loan_librarian_id,omitempty"`
	LoanStatus      string     `json:"loan_status"`

	LoanBorrowedAt time.Time  `json:"loan_borrowed_at"`
	LoanDueDate    time.Time  `json:"loan_due_date"`
	LoanReturnedAt *time.Time `json:"loan_returned_at,omitempty"`

	LoanRenewalCount int `json:"loan_renewal_count"`
	LoanMaxRenewals  int `json:"loan_max_renewals"`

	LoanNotes *string `json:"loan_notes,omitempty"`

	BookTitle   *string `json:"book_title,omitempty"`
	CopyBarcode *string `json:"copy_barcode,omitempty"`
}

type FineResponse struct {
	FineID     uuid.UUID `json:"fine_id"`
	FineLoanID uuid.UUID `json:"fine_loan_id"`
	FineAmount float64   `json:"fine_amount"`
	FineReason string    `json:"fine_reason"`
	FineStatus string    `json:"fine_status"`
}

type CheckinResponse struct {
	Loan LoanResponse  `json:"loan"`
	Fine *FineResponse `json:"fine,omitempty"`
}

/* =========================================================
   CONVERTER
   ========================================================= */

func ToLoanResponse(l *loanModel.LoanModel) LoanResponse {
	resp := LoanResponse{
		LoanID:           l.LoanID,
		LoanBookCopyID:   l.LoanBookCopyID,
		LoanUserID:       l.LoanUserID,
		LoanLibrarianID:  l.LoanLibrarianID,
		LoanStatus:       l.LoanStatus,
		LoanBorrowedAt:   l.LoanBorrowedAt,
		LoanDueDate:      l.LoanDueDate,
		LoanReturnedAt:   l.LoanReturnedAt,
		LoanRenewalCount: l.LoanRenewalCount,
		LoanMaxRenewals:  l.LoanMaxRenewals,
		LoanNotes:        l.LoanNotes,
	}
	if l.BookCopy != nil {
		resp.CopyBarcode = &l.BookCopy.BookCopyBarcode
		if l.BookCopy.Book != nil {
			resp.BookTitle = &l.BookCopy.Book.BookTitle
		}
	}
	return resp
}

func ToLoanResponses(loans []loanModel.LoanModel) []LoanResponse {
	out := make([]LoanResponse, 0, len(loans))
	for i := range loans {
		out = append(out, ToLoanResponse(&loans[i]))
	}
	return out
}

func ToFineResponse(f *fineModel.FineModel) *FineResponse {
	if f == nil {
		return nil
	}
	return &FineResponse{
		FineID:     f.FineID,
		FineLoanID: f.FineLoanID,
		FineAmount: f.FineAmount,
		FineReason: f.FineReason,
		FineStatus: f.FineStatus,
	}
}

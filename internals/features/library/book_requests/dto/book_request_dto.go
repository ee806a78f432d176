// file: internals/features/library/book_requests/dto/book_request_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	reqModel "pustakaku_backend/internals/features/library/book_requests/model"
)

/* =========================================================
   REQUEST
   ========================================================= */

type BookRequestCreateRequest struct {
	Title  string  `json:"title" validate:"required,max=500"`
	Author *string `json:"author,omitempty" validate:"omitempty,max=255"`
	ISBN   *string `json:"isbn,omitempty" validate:"omitempty,max=20"`
	Reason *string `json:"reason,omitempty" validate:"omitempty,max=2000"`
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func (r *BookRequestCreateRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Author = trimPtr(r.Author)
	r.ISBN = trimPtr(r.ISBN)
	r.Reason = trimPtr(r.Reason)
}

type BookRequestProcessRequest struct {
	Status     string  `json:"status" validate:"required,oneof=approved rejected acquired"`
	AdminNotes *string `json:"admin_notes,omitempty" validate:"omitempty,max=2000"`
}

func (r *BookRequestProcessRequest) Normalize() {
	r.Status = strings.ToLower(strings.TrimSpace(r.Status))
	r.AdminNotes = trimPtr(r.AdminNotes)
}

/* =========================================================
   RESPONSE
   ========================================================= */

type BookRequestResponse struct {
	BookRequestID uuid.UUID `json:"book_request_id"`

	BookRequestTitle  string  `json:"book_request_title"`
	BookRequestAuthor *string `json:"book_request_author,omitempty"`
	BookRequestISBN   *string `json:"book_request_isbn,omitempty"`
	BookRequestReason *string `json:"book_request_reason,omitempty"`

	BookRequestStatus string `json:"book_request_status"`

	BookRequestAdminNotes  *string    `json:"book_request_admin_notes,omitempty"`
	BookRequestProcessedAt *time.Time `json:"book_request_processed_at,omitempty"`

	BookRequestCreatedAt time.Time `json:"book_request_created_at"`

	RequesterName *string `json:"requester_name,omitempty"`
	ProcessorName *string `json:"processor_name,omitempty"`
}

func ToBookRequestResponse(r *reqModel.BookRequestModel) BookRequestResponse {
	resp := BookRequestResponse{
		BookRequestID:          r.BookRequestID,
		BookRequestTitle:       r.BookRequestTitle,
		BookRequestAuthor:      r.BookRequestAuthor,
		BookRequestISBN:        r.BookRequestISBN,
		BookRequestReason:      r.BookRequestReason,
		BookRequestStatus:      r.BookRequestStatus,
		BookRequestAdminNotes:  r.BookRequestAdminNotes,
		BookRequestProcessedAt: r.BookRequestProcessedAt,
		BookRequestCreatedAt:   r.BookRequestCreatedAt,
	}
	if r.User != nil {
		name := r.User.FullName()
		resp.RequesterName = &name
	}
	if r.Processor != nil {
		name := r.Processor.FullName()
		resp.ProcessorName = &name
	}
	return resp
}

func ToBookRequestResponses(list []reqModel.BookRequestModel) []BookRequestResponse {
	out := make([]BookRequestResponse, 0, len(list))
	for i := range list {
		out = append(out, ToBookRequestResponse(&list[i]))
	}
	return out
}

// file: internals/features/library/wishlists/dto/wishlist_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	bookModel "pustakaku_backend/internals/features/library/books/model"
	wishModel "pustakaku_backend/internals/features/library/wishlists/model"
)

/* =========================================================
   REQUEST
   ========================================================= */

type WishlistAddRequest struct {
	BookID   uuid.UUID `json:"book_id" validate:"required"`
	Notes    *string   `json:"notes,omitempty" validate:"omitempty,max=2000"`
	Priority *int      `json:"priority,omitempty" validate:"omitempty,min=0,max=10"`
}

func (r *WishlistAddRequest) Normalize() {
	if r.Notes != nil {
		v := strings.TrimSpace(*r.Notes)
		if v == "" {
			r.Notes = nil
		} else {
			r.Notes = &v
		}
	}
}

type WishlistPriorityRequest struct {
	Priority int `json:"priority" validate:"min=0,max=10"`
}

type WishlistNotesRequest struct {
	Notes string `json:"notes" validate:"required,max=2000"`
}

/* =========================================================
   RESPONSE
   ========================================================= */

type WishlistResponse struct {
	WishlistID       uuid.UUID `json:"wishlist_id"`
	WishlistBookID   uuid.UUID `json:"wishlist_book_id"`
	WishlistNotes    *string   `json:"wishlist_notes,omitempty"`
	WishlistPriority int       `json:"wishlist_priority"`

	WishlistCreatedAt time.Time `json:"wishlist_created_at"`

	BookTitle       *string `json:"book_title,omitempty"`
	BookAuthor      *string `json:"book_author,omitempty"`
	AvailableCopies *int    `json:"available_copies,omitempty"`
}

func ToWishlistResponse(w *wishModel.WishlistModel) WishlistResponse {
	resp := WishlistResponse{
		WishlistID:        w.WishlistID,
		WishlistBookID:    w.WishlistBookID,
		WishlistNotes:     w.WishlistNotes,
		WishlistPriority:  w.WishlistPriority,
		WishlistCreatedAt: w.WishlistCreatedAt,
	}
	if w.Book != nil {
		resp.BookTitle = &w.Book.BookTitle
		resp.BookAuthor = w.Book.BookAuthor
		available := 0
		for i := range w.Book.BookCopies {
			if w.Book.BookCopies[i].BookCopyStatus == bookModel.CopyStatusAvailable {
				available++
			}
		}
		resp.AvailableCopies = &available
	}
	return resp
}

func ToWishlistResponses(items []wishModel.WishlistModel) []WishlistResponse {
	out := make([]WishlistResponse, 0, len(items))
	for i := range items {
		out = append(out, ToWishlistResponse(&items[i]))
	}
	return out
}

// file: internals/features/library/wishlists/model/wishlist_model.go
package model

import (
	"time"

	"github.com/google/uuid"

	bookModel "pustakaku_backend/internals/features/library/books/model"
)

// Wishlist pribadi member: satu baris per (member, judul).
type WishlistModel struct {
	WishlistID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:wishlist_id" json:"wishlist_id"`

	WishlistUserID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uq_wishlist_user_book;column:wishlist_user_id" json:"wishlist_user_id"`
	WishlistBookID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uq_wishlist_user_book;column:wishlist_book_id" json:"wishlist_book_id"`

	WishlistNotes    *string `gorm:"type:text;column:wishlist_notes" json:"wishlist_notes,omitempty"`
	WishlistPriority int     `gorm:"not null;default:0;column:wishlist_priority" json:"wishlist_priority"`

	WishlistCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:wishlist_created_at" json:"wishlist_created_at"`
	WishlistUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:wishlist_updated_at" json:"wishlist_updated_at"`

	Book *bookModel.BookModel `gorm:"foreignKey:WishlistBookID;references:BookID" json:"book,omitempty"`
}

func (WishlistModel) TableName() string { return "wishlists" }

// file: internals/features/library/books/model/book_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type BookModel struct {
	BookID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:book_id" json:"book_id"`

	BookTitle  string  `gorm:"type:text;not null;column:book_title" json:"book_title"`
	BookAuthor *string `gorm:"type:text;column:book_author" json:"book_author,omitempty"`
	BookISBN   string  `gorm:"type:varchar(20);not null;uniqueIndex;column:book_isbn" json:"book_isbn"`
	BookDesc   *string `gorm:"type:text;column:book_desc" json:"book_desc,omitempty"`

	BookPublisher       *string `gorm:"type:text;column:book_publisher" json:"book_publisher,omitempty"`
	BookPublicationYear *int16  `gorm:"type:smallint;column:book_publication_year" json:"book_publication_year,omitempty"`
	BookLanguage        *string `gorm:"type:varchar(20);column:book_language" json:"book_language,omitempty"`
	BookPages           *int    `gorm:"column:book_pages" json:"book_pages,omitempty"`
	BookCoverImage      *string `gorm:"type:text;column:book_cover_image" json:"book_cover_image,omitempty"`

	// genre/tag bebas, disimpan JSONB
	BookMetadata datatypes.JSON `gorm:"type:jsonb;column:book_metadata" json:"book_metadata,omitempty"`

	BookCreatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();column:book_created_at" json:"book_created_at"`
	BookUpdatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();column:book_updated_at" json:"book_updated_at"`
	BookDeletedAt gorm.DeletedAt `gorm:"column:book_deleted_at;index" json:"book_deleted_at,omitempty"`

	// preload-only
	BookCopies []BookCopyModel `gorm:"foreignKey:BookCopyBookID;references:BookID" json:"book_copies,omitempty"`
}

func (BookModel) TableName() string { return "books" }

// file: internals/features/library/books/dto/book_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	model "pustakaku_backend/internals/features/library/books/model"
)

/* =========================================================
   QUERY (LIST)
   ========================================================= */

type BooksListQuery struct {
	Q       *string `query:"q"`        // cari di title/author/isbn
	Author  *string `query:"author"`   // filter ilike author
	OrderBy *string `query:"order_by"` // book_title|book_author|created_at
	Sort    *string `query:"sort"`     // asc|desc
}

/* =========================================================
   REQUEST
   ========================================================= */

type BookCreateRequest struct {
	BookTitle  string  `json:"book_title" validate:"required,min=1"`
	BookAuthor *string `json:"book_author,omitempty" validate:"omitempty,min=1"`
	BookISBN   string  `json:"book_isbn" validate:"required,min=10,max=17"`
	BookDesc   *string `json:"book_desc,omitempty"`

	BookPublisher       *string `json:"book_publisher,omitempty"`
	BookPublicationYear *int16  `json:"book_publication_year,omitempty"`
	BookLanguage        *string `json:"book_language,omitempty" validate:"omitempty,max=20"`
	BookPages           *int    `json:"book_pages,omitempty" validate:"omitempty,gt=0"`
	BookCoverImage      *string `json:"book_cover_image,omitempty" validate:"omitempty,url"`

	BookMetadata datatypes.JSON `json:"book_metadata,omitempty"`
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

func (r *BookCreateRequest) Normalize() {
	r.BookTitle = strings.TrimSpace(r.BookTitle)
	r.BookISBN = strings.TrimSpace(r.BookISBN)
	r.BookAuthor = trimPtr(r.BookAuthor)
	r.BookDesc = trimPtr(r.BookDesc)
	r.BookPublisher = trimPtr(r.BookPublisher)
	r.BookLanguage = trimPtr(r.BookLanguage)
	r.BookCoverImage = trimPtr(r.BookCoverImage)
}

func (r *BookCreateRequest) ToModel() *model.BookModel {
	return &model.BookModel{
		BookTitle:           r.BookTitle,
		BookAuthor:          r.BookAuthor,
		BookISBN:            r.BookISBN,
		BookDesc:            r.BookDesc,
		BookPublisher:       r.BookPublisher,
		BookPublicationYear: r.BookPublicationYear,
		BookLanguage:        r.BookLanguage,
		BookPages:           r.BookPages,
		BookCoverImage:      r.BookCoverImage,
		BookMetadata:        r.BookMetadata,
	}
}

type BookCopyCreateRequest struct {
	BookCopyBookID  uuid.UUID `json:"book_copy_book_id" validate:"required"`
	BookCopyBarcode *string   `json:"book_copy_barcode,omitempty" validate:"omitempty,min=4,max=50"`

	BookCopyCondition *string `json:"book_copy_condition,omitempty" validate:"omitempty,oneof=new good fair poor"`
	BookCopyLocation  *string `json:"book_copy_location,omitempty" validate:"omitempty,max=100"`
	BookCopyShelf     *string `json:"book_copy_shelf,omitempty" validate:"omitempty,max=50"`
	BookCopySection   *string `json:"book_copy_section,omitempty" validate:"omitempty,max=50"`
	BookCopyFloor     *string `json:"book_copy_floor,omitempty" validate:"omitempty,max=20"`

	BookCopyAcquisitionDate  *time.Time `json:"book_copy_acquisition_date,omitempty"`
	BookCopyAcquisitionPrice *float64   `json:"book_copy_acquisition_price,omitempty" validate:"omitempty,gte=0"`

	BookCopyNotes *string `json:"book_copy_notes,omitempty"`
}

type BookCopyUpdateRequest struct {
	// borrowed sengaja tidak bisa diset manual — hanya lewat sirkulasi
	BookCopyStatus    *string `json:"book_copy_status,omitempty" validate:"omitempty,oneof=available maintenance lost damaged"`
	BookCopyCondition *string `json:"book_copy_condition,omitempty" validate:"omitempty,oneof=new good fair poor"`
	BookCopyLocation  *string `json:"book_copy_location,omitempty" validate:"omitempty,max=100"`
	BookCopyShelf     *string `json:"book_copy_shelf,omitempty" validate:"omitempty,max=50"`
	BookCopyNotes     *string `json:"book_copy_notes,omitempty"`
}

/* =========================================================
   RESPONSE
   ========================================================= */

type BookResponse struct {
	BookID     uuid.UUID `json:"book_id"`
	BookTitle  string    `json:"book_title"`
	BookAuthor *string   `json:"book_author,omitempty"`
	BookISBN   string    `json:"book_isbn"`
	BookDesc   *string   `json:"book_desc,omitempty"`

	BookPublisher       *string `json:"book_publisher,omitempty"`
	BookPublicationYear *int16  `json:"book_publication_year,omitempty"`
	BookLanguage        *string `json:"book_language,omitempty"`
	BookPages           *int    `json:"book_pages,omitempty"`
	BookCoverImage      *string `json:"book_cover_image,omitempty"`

	BookMetadata datatypes.JSON `json:"book_metadata,omitempty"`

	TotalCopies     int `json:"total_copies"`
	AvailableCopies int `json:"available_copies"`

	BookCreatedAt time.Time `json:"book_created_at"`
}

func ToBookResponse(b *model.BookModel) BookResponse {
	resp := BookResponse{
		BookID:              b.BookID,
		BookTitle:           b.BookTitle,
		BookAuthor:          b.BookAuthor,
		BookISBN:            b.BookISBN,
		BookDesc:            b.BookDesc,
		BookPublisher:       b.BookPublisher,
		BookPublicationYear: b.BookPublicationYear,
		BookLanguage:        b.BookLanguage,
		BookPages:           b.BookPages,
		BookCoverImage:      b.BookCoverImage,
		BookMetadata:        b.BookMetadata,
		BookCreatedAt:       b.BookCreatedAt,
	}
	resp.TotalCopies = len(b.BookCopies)
	for i := range b.BookCopies {
		if b.BookCopies[i].BookCopyStatus == model.CopyStatusAvailable {
			resp.AvailableCopies++
		}
	}
	return resp
}

func ToBookResponses(books []model.BookModel) []BookResponse {
	out := make([]BookResponse, 0, len(books))
	for i := range books {
		out = append(out, ToBookResponse(&books[i]))
	}
	return out
}

type BookCopyResponse struct {
	BookCopyID     uuid.UUID `json:"book_copy_id"`
	BookCopyBookID uuid.UUID `json:"book_copy_book_id"`

	BookCopyBarcode   string `json:"book_copy_barcode"`
	BookCopyStatus    string `json:"book_copy_status"`
	BookCopyCondition string `json:"book_copy_condition"`

	BookCopyLocation *string `json:"book_copy_location,omitempty"`
	BookCopyShelf    *string `json:"book_copy_shelf,omitempty"`
	BookCopySection  *string `json:"book_copy_section,omitempty"`
	BookCopyFloor    *string `json:"book_copy_floor,omitempty"`

	BookCopyNotes *string `json:"book_copy_notes,omitempty"`
}

func ToBookCopyResponse(c *model.BookCopyModel) BookCopyResponse {
	return BookCopyResponse{
		BookCopyID:        c.BookCopyID,
		BookCopyBookID:    c.BookCopyBookID,
		BookCopyBarcode:   c.BookCopyBarcode,
		BookCopyStatus:    c.BookCopyStatus,
		BookCopyCondition: c.BookCopyCondition,
		BookCopyLocation:  c.BookCopyLocation,
		BookCopyShelf:     c.BookCopyShelf,
		BookCopySection:   c.BookCopySection,
		BookCopyFloor:     c.BookCopyFloor,
		BookCopyNotes:     c.BookCopyNotes,
	}
}

func ToBookCopyResponses(copies []model.BookCopyModel) []BookCopyResponse {
	out := make([]BookCopyResponse, 0, len(copies))
	for i := range copies {
		out = append(out, ToBookCopyResponse(&copies[i]))
	}
	return out
}

// file: internals/features/library/books/controller/books_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "pustakaku_backend/internals/features/library/books/dto"
	bookModel "pustakaku_backend/internals/features/library/books/model"
	helper "pustakaku_backend/internals/helpers"
)

type BooksController struct {
	DB *gorm.DB
}

func NewBooksController(db *gorm.DB) *BooksController {
	return &BooksController{DB: db}
}

var validate = validator.New()

// POST /api/a/books
func (h *BooksController) Create(c *fiber.Ctx) error {
	var p dto.BookCreateRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	p.Normalize()
	if err := validate.Struct(p); err != nil {
		return helper.ValidationError(c, err)
	}
	if !helper.IsValidISBN(p.BookISBN) {
		return helper.Error(c, fiber.StatusBadRequest, "ISBN tidak valid")
	}

	ent := p.ToModel()
	if err := h.DB.WithContext(c.Context()).Create(ent).Error; err != nil {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "book_isbn") || strings.Contains(msg, "duplicate") {
			return helper.Error(c, fiber.StatusConflict, "ISBN sudah terdaftar")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menyimpan buku")
	}

	return helper.JsonCreated(c, "Buku berhasil dibuat", dto.ToBookResponse(ent))
}

// GET /api/public/books
func (h *BooksController) List(c *fiber.Ctx) error {
	var q dto.BooksListQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Query tidak valid")
	}
	paging := helper.ResolvePaging(c, 20, 100)

	base := h.DB.WithContext(c.Context()).Model(&bookModel.BookModel{})
	if q.Q != nil && strings.TrimSpace(*q.Q) != "" {
		needle := "%" + strings.TrimSpace(*q.Q) + "%"
		base = base.Where("book_title ILIKE ? OR book_author ILIKE ? OR book_isbn ILIKE ?", needle, needle, needle)
	}
	if q.Author != nil && strings.TrimSpace(*q.Author) != "" {
		base = base.Where("book_author ILIKE ?", "%"+strings.TrimSpace(*q.Author)+"%")
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghitung buku")
	}

	orderBy := "book_created_at"
	if q.OrderBy != nil {
		switch *q.OrderBy {
		case "book_title", "book_author":
			orderBy = *q.OrderBy
		}
	}
	sort := "DESC"
	if q.Sort != nil && strings.EqualFold(*q.Sort, "asc") {
		sort = "ASC"
	}

	var books []bookModel.BookModel
	if err := base.
		Preload("BookCopies").
		Order(orderBy + " " + sort).
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&books).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil daftar buku")
	}

	resp := dto.ToBookResponses(books)
	return helper.SuccessWithPagination(c, "OK", resp, helper.BuildPagination(paging, total, len(resp)))
}

// GET /api/public/books/:id
func (h *BooksController) GetByID(c *fiber.Ctx) error {
	bookID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil || bookID == uuid.Nil {
		return helper.Error(c, fiber.StatusBadRequest, "book_id tidak valid")
	}

	var book bookModel.BookModel
	if err := h.DB.WithContext(c.Context()).
		Preload("BookCopies").
		First(&book, "book_id = ?", bookID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Buku tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil buku")
	}

	return helper.Success(c, "OK", dto.ToBookResponse(&book))
}

// file: internals/features/library/books/controller/book_copies_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dto "pustakaku_backend/internals/features/library/books/dto"
	bookModel "pustakaku_backend/internals/features/library/books/model"
	helper "pustakaku_backend/internals/helpers"
)

type BookCopiesController struct {
	DB *gorm.DB
}

func NewBookCopiesController(db *gorm.DB) *BookCopiesController {
	return &BookCopiesController{DB: db}
}

// POST /api/a/book-copies
func (h *BookCopiesController) Create(c *fiber.Ctx) error {
	var p dto.BookCopyCreateRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(p); err != nil {
		return helper.ValidationError(c, err)
	}

	var book bookModel.BookModel
	if err := h.DB.WithContext(c.Context()).
		First(&book, "book_id = ?", p.BookCopyBookID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Buku tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil buku")
	}

	barcode := helper.GenerateBarcode()
	if p.BookCopyBarcode != nil && strings.TrimSpace(*p.BookCopyBarcode) != "" {
		barcode = strings.ToUpper(strings.TrimSpace(*p.BookCopyBarcode))
	}

	ent := bookModel.BookCopyModel{
		BookCopyBookID:           p.BookCopyBookID,
		BookCopyBarcode:          barcode,
		BookCopyStatus:           bookModel.CopyStatusAvailable,
		BookCopyCondition:        bookModel.CopyConditionGood,
		BookCopyLocation:         p.BookCopyLocation,
		BookCopyShelf:            p.BookCopyShelf,
		BookCopySection:          p.BookCopySection,
		BookCopyFloor:            p.BookCopyFloor,
		BookCopyAcquisitionDate:  p.BookCopyAcquisitionDate,
		BookCopyAcquisitionPrice: p.BookCopyAcquisitionPrice,
		BookCopyNotes:            p.BookCopyNotes,
	}
	if p.BookCopyCondition != nil {
		ent.BookCopyCondition = *p.BookCopyCondition
	}

	if err := h.DB.WithContext(c.Context()).Create(&ent).Error; err != nil {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "book_copy_barcode") || strings.Contains(msg, "duplicate") {
			return helper.Error(c, fiber.StatusConflict, "Barcode sudah dipakai eksemplar lain")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menyimpan eksemplar")
	}

	return helper.JsonCreated(c, "Eksemplar berhasil ditambahkan", dto.ToBookCopyResponse(&ent))
}

// GET /api/public/books/:id/copies
func (h *BookCopiesController) ListByBook(c *fiber.Ctx) error {
	bookID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil || bookID == uuid.Nil {
		return helper.Error(c, fiber.StatusBadRequest, "book_id tidak valid")
	}

	var copies []bookModel.BookCopyModel
	if err := h.DB.WithContext(c.Context()).
		Where("book_copy_book_id = ?", bookID).
		Order("book_copy_barcode ASC").
		Find(&copies).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil daftar eksemplar")
	}

	return helper.Success(c, "OK", dto.ToBookCopyResponses(copies))
}

// PATCH /api/a/book-copies/:id
// Status borrowed tidak bisa diubah dari sini — eksemplar yang sedang
// dipinjam hanya berubah lewat check-in. Pakai lock supaya tidak balapan
// dengan transaksi sirkulasi.
func (h *BookCopiesController) Patch(c *fiber.Ctx) error {
	copyID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil || copyID == uuid.Nil {
		return helper.Error(c, fiber.StatusBadRequest, "book_copy_id tidak valid")
	}

	var p dto.BookCopyUpdateRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(p); err != nil {
		return helper.ValidationError(c, err)
	}

	tx := h.DB.WithContext(c.Context()).Begin()
	if tx.Error != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memulai transaksi")
	}
	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback().Error
		}
	}()

	var m bookModel.BookCopyModel
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, "book_copy_id = ?", copyID).Error; err != nil {
		_ = tx.Rollback().Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Eksemplar tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil eksemplar")
	}

	if p.BookCopyStatus != nil && m.BookCopyStatus == bookModel.CopyStatusBorrowed {
		_ = tx.Rollback().Error
		return helper.Error(c, fiber.StatusConflict, "Eksemplar sedang dipinjam; kembalikan dulu lewat check-in")
	}

	updates := map[string]interface{}{}
	if p.BookCopyStatus != nil {
		updates["book_copy_status"] = *p.BookCopyStatus
	}
	if p.BookCopyCondition != nil {
		updates["book_copy_condition"] = *p.BookCopyCondition
	}
	if p.BookCopyLocation != nil {
		updates["book_copy_location"] = *p.BookCopyLocation
	}
	if p.BookCopyShelf != nil {
		updates["book_copy_shelf"] = *p.BookCopyShelf
	}
	if p.BookCopyNotes != nil {
		updates["book_copy_notes"] = *p.BookCopyNotes
	}

	if len(updates) > 0 {
		if err := tx.Model(&bookModel.BookCopyModel{}).
			Where("book_copy_id = ?", m.BookCopyID).
			Updates(updates).Error; err != nil {
			_ = tx.Rollback().Error
			return helper.Error(c, fiber.StatusInternalServerError, "Gagal menyimpan perubahan eksemplar")
		}
	}

	if err := tx.Commit().Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal commit transaksi")
	}

	_ = h.DB.WithContext(c.Context()).First(&m, "book_copy_id = ?", m.BookCopyID).Error
	return helper.Success(c, "Eksemplar berhasil diperbarui", dto.ToBookCopyResponse(&m))
}

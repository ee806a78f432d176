// file: internals/features/library/wishlists/controller/wishlists_controller.go
package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "pustakaku_backend/internals/features/library/wishlists/dto"
	service "pustakaku_backend/internals/features/library/wishlists/service"
	helper "pustakaku_backend/internals/helpers"
)

type WishlistsController struct {
	DB      *gorm.DB
	Service *service.WishlistService
}

func NewWishlistsController(db *gorm.DB) *WishlistsController {
	return &WishlistsController{
		DB:      db,
		Service: &service.WishlistService{DB: db},
	}
}

var validate = validator.New()

// POST /api/u/wishlist
func (h *WishlistsController) Add(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var p dto.WishlistAddRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	p.Normalize()
	if err := validate.Struct(p); err != nil {
		return helper.ValidationError(c, err)
	}

	priority := 0
	if p.Priority != nil {
		priority = *p.Priority
	}

	item, err := h.Service.Add(c.Context(), service.AddInput{
		UserID:   userID,
		BookID:   p.BookID,
		Notes:    p.Notes,
		Priority: priority,
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonCreated(c, "Buku ditambahkan ke wishlist", dto.ToWishlistResponse(item))
}

// GET /api/u/wishlist
func (h *WishlistsController) MyWishlist(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	items, err := h.Service.GetUserWishlist(c.Context(), userID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil wishlist")
	}
	return helper.Success(c, "OK", dto.ToWishlistResponses(items))
}

// GET /api/u/wishlist/check/:bookId
func (h *WishlistsController) Check(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	bookID, err := uuid.Parse(strings.TrimSpace(c.Params("bookId")))
	if err != nil || bookID == uuid.Nil {
		return helper.Error(c, fiber.StatusBadRequest, "book_id tidak valid")
	}

	inWishlist, err := h.Service.IsInWishlist(c.Context(), userID, bookID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memeriksa wishlist")
	}
	return helper.Success(c, "OK", fiber.Map{"in_wishlist": inWishlist})
}

// DELETE /api/u/wishlist/:bookId
func (h *WishlistsController) Remove(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	bookID, err := uuid.Parse(strings.TrimSpace(c.Params("bookId")))
	if err != nil || bookID == uuid.Nil {
		return helper.Error(c, fiber.StatusBadRequest, "book_id tidak valid")
	}

	if err := h.Service.Remove(c.Context(), userID, bookID); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Buku dihapus dari wishlist", nil)
}

// PATCH /api/u/wishlist/:bookId/priority
func (h *WishlistsController) UpdatePriority(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	bookID, err := uuid.Parse(strings.TrimSpace(c.Params("bookId")))
	if err != nil || bookID == uuid.Nil {
		return helper.Error(c, fiber.StatusBadRequest, "book_id tidak valid")
	}

	var p dto.WishlistPriorityRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(p); err != nil {
		return helper.ValidationError(c, err)
	}

	item, err := h.Service.UpdatePriority(c.Context(), userID, bookID, p.Priority)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Prioritas wishlist diperbarui", dto.ToWishlistResponse(item))
}

// PATCH /api/u/wishlist/:bookId/notes
func (h *WishlistsController) UpdateNotes(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	bookID, err := uuid.Parse(strings.TrimSpace(c.Params("bookId")))
	if err != nil || bookID == uuid.Nil {
		return helper.Error(c, fiber.StatusBadRequest, "book_id tidak valid")
	}

	var p dto.WishlistNotesRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(p); err != nil {
		return helper.ValidationError(c, err)
	}

	item, err := h.Service.UpdateNotes(c.Context(), userID, bookID, strings.TrimSpace(p.Notes))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Catatan wishlist diperbarui", dto.ToWishlistResponse(item))
}

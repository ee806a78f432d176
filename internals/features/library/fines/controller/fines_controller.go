// file: internals/features/library/fines/controller/fines_controller.go
package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "pustakaku_backend/internals/features/library/fines/dto"
	service "pustakaku_backend/internals/features/library/fines/service"
	helper "pustakaku_backend/internals/helpers"
)

type FinesController struct {
	DB      *gorm.DB
	Service *service.FineService
}

func NewFinesController(db *gorm.DB) *FinesController {
	return &FinesController{
		DB:      db,
		Service: &service.FineService{DB: db},
	}
}

var validate = validator.New()

// GET /api/u/fines
func (h *FinesController) MyFines(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	fines, err := h.Service.GetUserFines(c.Context(), userID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil daftar denda")
	}

	return helper.Success(c, "OK", dto.ToFineResponses(fines))
}

// POST /api/u/fines/:id/pay
func (h *FinesController) Pay(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	fineID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil || fineID == uuid.Nil {
		return helper.Error(c, fiber.StatusBadRequest, "fine_id tidak valid")
	}

	var p dto.FinePayRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(p); err != nil {
		return helper.ValidationError(c, err)
	}

	fine, err := h.Service.Pay(c.Context(), service.PayInput{
		FineID: fineID,
		UserID: userID,
		Amount: p.Amount,
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.Success(c, "Pembayaran denda dicatat", dto.ToFineResponse(fine))
}

// POST /api/a/fines/:id/waive
func (h *FinesController) Waive(c *fiber.Ctx) error {
	librarianID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	fineID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil || fineID == uuid.Nil {
		return helper.Error(c, fiber.StatusBadRequest, "fine_id tidak valid")
	}

	var p dto.FineWaiveRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	p.Normalize()
	if err := validate.Struct(p); err != nil {
		return helper.ValidationError(c, err)
	}

	fine, err := h.Service.Waive(c.Context(), service.WaiveInput{
		FineID:   fineID,
		WaivedBy: librarianID,
		Reason:   p.Reason,
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.Success(c, "Denda dibebaskan", dto.ToFineResponse(fine))
}

// GET /api/a/users/:id/fines — denda seorang member, untuk meja sirkulasi
func (h *FinesController) UserFines(c *fiber.Ctx) error {
	targetID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil || targetID == uuid.Nil {
		return helper.Error(c, fiber.StatusBadRequest, "user_id tidak valid")
	}

	fines, err := h.Service.GetUserFines(c.Context(), targetID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil daftar denda")
	}

	return helper.Success(c, "OK", dto.ToFineResponses(fines))
}

// file: internals/features/library/book_requests/controller/book_requests_controller.go
package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "pustakaku_backend/internals/features/library/book_requests/dto"
	service "pustakaku_backend/internals/features/library/book_requests/service"
	helper "pustakaku_backend/internals/helpers"
)

type BookRequestsController struct {
	DB      *gorm.DB
	Service *service.BookRequestService
}

func NewBookRequestsController(db *gorm.DB) *BookRequestsController {
	return &BookRequestsController{
		DB:      db,
		Service: &service.BookRequestService{DB: db},
	}
}

var validate = validator.New()

// POST /api/u/book-requests
func (h *BookRequestsController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var p dto.BookRequestCreateRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	p.Normalize()
	if err := validate.Struct(p); err != nil {
		return helper.ValidationError(c, err)
	}
	if p.ISBN != nil && !helper.IsValidISBN(*p.ISBN) {
		return helper.Error(c, fiber.StatusBadRequest, "ISBN tidak valid")
	}

	req, err := h.Service.Create(c.Context(), service.CreateInput{
		UserID: userID,
		Title:  p.Title,
		Author: p.Author,
		ISBN:   p.ISBN,
		Reason: p.Reason,
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonCreated(c, "Usulan buku berhasil dikirim", dto.ToBookRequestResponse(req))
}

// GET /api/u/book-requests
func (h *BookRequestsController) MyRequests(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	list, err := h.Service.GetUserRequests(c.Context(), userID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil daftar usulan")
	}
	return helper.Success(c, "OK", dto.ToBookRequestResponses(list))
}

// POST /api/u/book-requests/:id/cancel
func (h *BookRequestsController) Cancel(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	requestID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil || requestID == uuid.Nil {
		return helper.Error(c, fiber.StatusBadRequest, "book_request_id tidak valid")
	}

	req, err := h.Service.Cancel(c.Context(), requestID, userID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Usulan dibatalkan", dto.ToBookRequestResponse(req))
}

// GET /api/a/book-requests?status=pending
func (h *BookRequestsController) List(c *fiber.Ctx) error {
	status := strings.ToLower(strings.TrimSpace(c.Query("status")))

	list, err := h.Service.GetAllRequests(c.Context(), status)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil daftar usulan")
	}
	return helper.Success(c, "OK", dto.ToBookRequestResponses(list))
}

// GET /api/a/book-requests/:id
func (h *BookRequestsController) GetByID(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil || requestID == uuid.Nil {
		return helper.Error(c, fiber.StatusBadRequest, "book_request_id tidak valid")
	}

	req, err := h.Service.GetByID(c.Context(), requestID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "OK", dto.ToBookRequestResponse(req))
}

// POST /api/a/book-requests/:id/process
func (h *BookRequestsController) Process(c *fiber.Ctx) error {
	processedBy, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	requestID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil || requestID == uuid.Nil {
		return helper.Error(c, fiber.StatusBadRequest, "book_request_id tidak valid")
	}

	var p dto.BookRequestProcessRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	p.Normalize()
	if err := validate.Struct(p); err != nil {
		return helper.ValidationError(c, err)
	}

	req, err := h.Service.Process(c.Context(), requestID, service.ProcessInput{
		Status:      p.Status,
		AdminNotes:  p.AdminNotes,
		ProcessedBy: processedBy,
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Usulan berhasil diproses", dto.ToBookRequestResponse(req))
}

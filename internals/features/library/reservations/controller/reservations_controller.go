// file: internals/features/library/reservations/controller/reservations_controller.go
package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "pustakaku_backend/internals/features/library/reservations/dto"
	service "pustakaku_backend/internals/features/library/reservations/service"
	helper "pustakaku_backend/internals/helpers"
)

type ReservationsController struct {
	DB      *gorm.DB
	Service *service.ReservationService
}

func NewReservationsController(db *gorm.DB) *ReservationsController {
	return &ReservationsController{
		DB:      db,
		Service: &service.ReservationService{DB: db},
	}
}

var validate = validator.New()

// POST /api/u/reservations
func (h *ReservationsController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var p dto.ReservationCreateRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(p); err != nil {
		return helper.ValidationError(c, err)
	}

	res, err := h.Service.Create(c.Context(), p.BookID, userID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonCreated(c, "Reservasi berhasil dibuat", dto.ToReservationResponse(res))
}

// POST /api/u/reservations/:id/cancel
func (h *ReservationsController) Cancel(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	reservationID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil || reservationID == uuid.Nil {
		return helper.Error(c, fiber.StatusBadRequest, "reservation_id tidak valid")
	}

	var p dto.ReservationCancelRequest
	// body opsional
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&p); err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
		}
		if err := validate.Struct(p); err != nil {
			return helper.ValidationError(c, err)
		}
	}
	p.Normalize()

	res, err := h.Service.Cancel(c.Context(), reservationID, userID, p.Reason)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.Success(c, "Reservasi dibatalkan", dto.ToReservationResponse(res))
}

// GET /api/u/reservations
func (h *ReservationsController) MyReservations(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	list, err := h.Service.GetUserReservations(c.Context(), userID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil daftar reservasi")
	}
	return helper.Success(c, "OK", dto.ToReservationResponses(list))
}

// GET /api/a/books/:id/reservations — antrian aktif satu judul
func (h *ReservationsController) BookQueue(c *fiber.Ctx) error {
	bookID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil || bookID == uuid.Nil {
		return helper.Error(c, fiber.StatusBadRequest, "book_id tidak valid")
	}

	list, err := h.Service.GetBookQueue(c.Context(), bookID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil antrian reservasi")
	}
	return helper.Success(c, "OK", dto.ToReservationResponses(list))
}

// POST /api/a/reservations/process-expired
// Endpoint manual untuk sweep yang sama dengan scheduler.
func (h *ReservationsController) ProcessExpired(c *fiber.Ctx) error {
	count, err := h.Service.ProcessExpired(c.Context())
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memproses reservasi kadaluarsa")
	}
	return helper.Success(c, "OK", fiber.Map{"processed": count})
}

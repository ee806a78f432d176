// file: internals/features/library/loans/controller/loans_controller.go
package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "pustakaku_backend/internals/features/library/loans/dto"
	service "pustakaku_backend/internals/features/library/loans/service"
	helper "pustakaku_backend/internals/helpers"
)

type LoansController struct {
	DB      *gorm.DB
	Service *service.LoanService
}

func NewLoansController(db *gorm.DB) *LoansController {
	return &LoansController{
		DB:      db,
		Service: &service.LoanService{DB: db},
	}
}

var validate = validator.New()

// POST /api/a/loans/checkout
// Checkout via meja sirkulasi: petugas memilihkan eksemplar spesifik.
func (h *LoansController) Checkout(c *fiber.Ctx) error {
	var p dto.CheckoutRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(p); err != nil {
		return helper.ValidationError(c, err)
	}

	librarianID := helper.GetLibrarianIDFromToken(c)

	loan, err := h.Service.Checkout(c.Context(), service.CheckoutInput{
		BookCopyID:  p.BookCopyID,
		UserID:      p.UserID,
		LibrarianID: librarianID,
		DueDate:     p.DueDate,
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonCreated(c, "Peminjaman berhasil dicatat", dto.ToLoanResponse(loan))
}

// POST /api/u/loans/self-checkout
// Member meminjam sendiri: sistem yang memilih eksemplar available.
func (h *LoansController) SelfCheckout(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var p dto.SelfCheckoutRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(p); err != nil {
		return helper.ValidationError(c, err)
	}

	loan, err := h.Service.SelfCheckout(c.Context(), p.BookID, userID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonCreated(c, "Peminjaman mandiri berhasil", dto.ToLoanResponse(loan))
}

// POST /api/a/loans/checkin
func (h *LoansController) Checkin(c *fiber.Ctx) error {
	var p dto.CheckinRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(p); err != nil {
		return helper.ValidationError(c, err)
	}

	librarianID := helper.GetLibrarianIDFromToken(c)

	result, err := h.Service.Checkin(c.Context(), service.CheckinInput{
		BookCopyID:  p.BookCopyID,
		LibrarianID: librarianID,
		Notes:       p.Notes,
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	resp := dto.CheckinResponse{
		Loan: dto.ToLoanResponse(result.Loan),
		Fine: dto.ToFineResponse(result.Fine),
	}
	msg := "Pengembalian berhasil dicatat"
	if result.Fine != nil {
		msg = "Pengembalian dicatat dengan denda keterlambatan"
	}
	return helper.Success(c, msg, resp)
}

// POST /api/u/loans/:id/renew
func (h *LoansController) Renew(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	loanID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil || loanID == uuid.Nil {
		return helper.Error(c, fiber.StatusBadRequest, "loan_id tidak valid")
	}

	loan, err := h.Service.Renew(c.Context(), loanID, userID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.Success(c, "Pinjaman berhasil diperpanjang", dto.ToLoanResponse(loan))
}

// GET /api/u/loans?status=active
func (h *LoansController) MyLoans(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	status := strings.TrimSpace(c.Query("status"))
	loans, err := h.Service.GetUserLoans(c.Context(), userID, status)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil daftar pinjaman")
	}

	return helper.Success(c, "OK", dto.ToLoanResponses(loans))
}

// GET /api/a/loans/overdue
func (h *LoansController) Overdue(c *fiber.Ctx) error {
	loans, err := h.Service.GetOverdueLoans(c.Context())
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil daftar keterlambatan")
	}
	return helper.Success(c, "OK", dto.ToLoanResponses(loans))
}

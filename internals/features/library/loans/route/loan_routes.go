// file: internals/features/library/loans/route/loan_routes.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "pustakaku_backend/internals/features/library/loans/controller"
	middlewares "pustakaku_backend/internals/middlewares"
)

// Self-service member.
func UserLoanRoutes(r fiber.Router, db *gorm.DB) {
	h := controller.NewLoansController(db)

	r.Get("/loans", h.MyLoans)
	r.Post("/loans/self-checkout", middlewares.CirculationRateLimiter(), h.SelfCheckout)
	r.Post("/loans/:id/renew", middlewares.CirculationRateLimiter(), h.Renew)
}

// Meja sirkulasi: librarian/admin.
func AdminLoanRoutes(r fiber.Router, db *gorm.DB) {
	h := controller.NewLoansController(db)

	r.Post("/loans/checkout", middlewares.CirculationRateLimiter(), h.Checkout)
	r.Post("/loans/checkin", middlewares.CirculationRateLimiter(), h.Checkin)
	r.Get("/loans/overdue", h.Overdue)
}

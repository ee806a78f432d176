// file: internals/features/library/reservations/route/reservation_routes.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "pustakaku_backend/internals/features/library/reservations/controller"
	middlewares "pustakaku_backend/internals/middlewares"
)

func UserReservationRoutes(r fiber.Router, db *gorm.DB) {
	h := controller.NewReservationsController(db)

	r.Get("/reservations", h.MyReservations)
	r.Post("/reservations", middlewares.CirculationRateLimiter(), h.Create)
	r.Post("/reservations/:id/cancel", middlewares.CirculationRateLimiter(), h.Cancel)
}

func AdminReservationRoutes(r fiber.Router, db *gorm.DB) {
	h := controller.NewReservationsController(db)

	r.Get("/books/:id/reservations", h.BookQueue)
	r.Post("/reservations/process-expired", h.ProcessExpired)
}

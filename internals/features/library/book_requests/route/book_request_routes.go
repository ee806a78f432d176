// file: internals/features/library/book_requests/route/book_request_routes.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "pustakaku_backend/internals/features/library/book_requests/controller"
)

func UserBookRequestRoutes(r fiber.Router, db *gorm.DB) {
	h := controller.NewBookRequestsController(db)

	r.Get("/book-requests", h.MyRequests)
	r.Post("/book-requests", h.Create)
	r.Post("/book-requests/:id/cancel", h.Cancel)
}

func AdminBookRequestRoutes(r fiber.Router, db *gorm.DB) {
	h := controller.NewBookRequestsController(db)

	r.Get("/book-requests", h.List)
	r.Get("/book-requests/:id", h.GetByID)
	r.Post("/book-requests/:id/process", h.Process)
}

// file: internals/features/library/fines/route/fine_routes.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "pustakaku_backend/internals/features/library/fines/controller"
)

func UserFineRoutes(r fiber.Router, db *gorm.DB) {
	h := controller.NewFinesController(db)

	r.Get("/fines", h.MyFines)
	r.Post("/fines/:id/pay", h.Pay)
}

func AdminFineRoutes(r fiber.Router, db *gorm.DB) {
	h := controller.NewFinesController(db)

	r.Get("/users/:id/fines", h.UserFines)
	r.Post("/fines/:id/waive", h.Waive)
}

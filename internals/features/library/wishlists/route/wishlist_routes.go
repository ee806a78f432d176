// file: internals/features/library/wishlists/route/wishlist_routes.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "pustakaku_backend/internals/features/library/wishlists/controller"
)

func UserWishlistRoutes(r fiber.Router, db *gorm.DB) {
	h := controller.NewWishlistsController(db)

	r.Get("/wishlist", h.MyWishlist)
	r.Post("/wishlist", h.Add)
	r.Get("/wishlist/check/:bookId", h.Check)
	r.Delete("/wishlist/:bookId", h.Remove)
	r.Patch("/wishlist/:bookId/priority", h.UpdatePriority)
	r.Patch("/wishlist/:bookId/notes", h.UpdateNotes)
}

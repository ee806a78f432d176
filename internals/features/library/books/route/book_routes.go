// file: internals/features/library/books/route/book_routes.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "pustakaku_backend/internals/features/library/books/controller"
)

// Katalog publik: browse tanpa login.
func PublicBookRoutes(r fiber.Router, db *gorm.DB) {
	books := controller.NewBooksController(db)
	copies := controller.NewBookCopiesController(db)

	r.Get("/books", books.List)
	r.Get("/books/:id", books.GetByID)
	r.Get("/books/:id/copies", copies.ListByBook)
}

// Pengelolaan katalog: librarian/admin.
func AdminBookRoutes(r fiber.Router, db *gorm.DB) {
	books := controller.NewBooksController(db)
	copies := controller.NewBookCopiesController(db)

	r.Post("/books", books.Create)
	r.Post("/book-copies", copies.Create)
	r.Patch("/book-copies/:id", copies.Patch)
}

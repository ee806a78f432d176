// file: internals/route/index.go
package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"pustakaku_backend/internals/constants"
	bookRequestRoutes "pustakaku_backend/internals/features/library/book_requests/route"
	bookRoutes "pustakaku_backend/internals/features/library/books/route"
	fineRoutes "pustakaku_backend/internals/features/library/fines/route"
	loanRoutes "pustakaku_backend/internals/features/library/loans/route"
	reservationRoutes "pustakaku_backend/internals/features/library/reservations/route"
	wishlistRoutes "pustakaku_backend/internals/features/library/wishlists/route"
	authMiddleware "pustakaku_backend/internals/middlewares/auth"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// ===================== PUBLIC =====================
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")
	bookRoutes.PublicBookRoutes(public, db)

	// ===================== PRIVATE (MEMBER) =====================
	log.Println("[INFO] Setting up PRIVATE (member) group...")
	private := app.Group("/api/u",
		authMiddleware.AuthMiddleware(db),
	)
	loanRoutes.UserLoanRoutes(private, db)
	reservationRoutes.UserReservationRoutes(private, db)
	fineRoutes.UserFineRoutes(private, db)
	wishlistRoutes.UserWishlistRoutes(private, db)
	bookRequestRoutes.UserBookRequestRoutes(private, db)

	// ===================== ADMIN (STAFF) =====================
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(
			constants.RoleErrorLibrarian("sirkulasi"),
			constants.StaffRoles...,
		),
	)
	bookRoutes.AdminBookRoutes(admin, db)
	loanRoutes.AdminLoanRoutes(admin, db)
	reservationRoutes.AdminReservationRoutes(admin, db)
	fineRoutes.AdminFineRoutes(admin, db)
	bookRequestRoutes.AdminBookRequestRoutes(admin, db)
}

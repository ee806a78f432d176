// file: internals/features/library/wishlists/service/wishlist_service.go
package service

import (
	"context"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	bookModel "pustakaku_backend/internals/features/library/books/model"
	wishModel "pustakaku_backend/internals/features/library/wishlists/model"
)

type WishlistService struct {
	DB *gorm.DB
}

type AddInput struct {
	UserID   uuid.UUID
	BookID   uuid.UUID
	Notes    *string
	Priority int
}

// =========================================================
// ADD
// =========================================================
func (s *WishlistService) Add(ctx context.Context, in AddInput) (*wishModel.WishlistModel, error) {
	var item *wishModel.WishlistModel

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var book bookModel.BookModel
		if err := tx.First(&book, "book_id = ?", in.BookID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Buku tidak ditemukan")
			}
			return err
		}

		var existing int64
		if err := tx.Model(&wishModel.WishlistModel{}).
			Where("wishlist_user_id = ? AND wishlist_book_id = ?", in.UserID, in.BookID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return fiber.NewError(fiber.StatusConflict, "Buku sudah ada di wishlist Anda")
		}

		newItem := wishModel.WishlistModel{
			WishlistUserID:   in.UserID,
			WishlistBookID:   in.BookID,
			WishlistNotes:    in.Notes,
			WishlistPriority: in.Priority,
		}
		if err := tx.Create(&newItem).Error; err != nil {
			return err
		}

		item = &newItem
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[WISHLIST] added wishlist_id=%s user_id=%s book_id=%s", item.WishlistID, in.UserID, in.BookID)
	return item, nil
}

// =========================================================
// REMOVE
// =========================================================
func (s *WishlistService) Remove(ctx context.Context, userID, bookID uuid.UUID) error {
	res := s.DB.WithContext(ctx).
		Where("wishlist_user_id = ? AND wishlist_book_id = ?", userID, bookID).
		Delete(&wishModel.WishlistModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Buku tidak ada di wishlist Anda")
	}

	log.Printf("[WISHLIST] removed user_id=%s book_id=%s", userID, bookID)
	return nil
}

// =========================================================
// QUERY
// =========================================================

// Urut prioritas tertinggi dulu, lalu yang terbaru.
func (s *WishlistService) GetUserWishlist(ctx context.Context, userID uuid.UUID) ([]wishModel.WishlistModel, error) {
	var items []wishModel.WishlistModel
	if err := s.DB.WithContext(ctx).
		Preload("Book").Preload("Book.BookCopies").
		Where("wishlist_user_id = ?", userID).
		Order("wishlist_priority DESC, wishlist_created_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *WishlistService) IsInWishlist(ctx context.Context, userID, bookID uuid.UUID) (bool, error) {
	var count int64
	if err := s.DB.WithContext(ctx).Model(&wishModel.WishlistModel{}).
		Where("wishlist_user_id = ? AND wishlist_book_id = ?", userID, bookID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// =========================================================
// UPDATE
// =========================================================

func (s *WishlistService) UpdatePriority(ctx context.Context, userID, bookID uuid.UUID, priority int) (*wishModel.WishlistModel, error) {
	return s.updateField(ctx, userID, bookID, map[string]interface{}{"wishlist_priority": priority})
}

func (s *WishlistService) UpdateNotes(ctx context.Context, userID, bookID uuid.UUID, notes string) (*wishModel.WishlistModel, error) {
	return s.updateField(ctx, userID, bookID, map[string]interface{}{"wishlist_notes": notes})
}

func (s *WishlistService) updateField(ctx context.Context, userID, bookID uuid.UUID, updates map[string]interface{}) (*wishModel.WishlistModel, error) {
	var item wishModel.WishlistModel
	if err := s.DB.WithContext(ctx).
		Where("wishlist_user_id = ? AND wishlist_book_id = ?", userID, bookID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Buku tidak ada di wishlist Anda")
		}
		return nil, err
	}

	if err := s.DB.WithContext(ctx).Model(&wishModel.WishlistModel{}).
		Where("wishlist_id = ?", item.WishlistID).
		Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := s.DB.WithContext(ctx).First(&item, "wishlist_id = ?", item.WishlistID).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

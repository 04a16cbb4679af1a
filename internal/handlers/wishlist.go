package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/dailycare/internal/middleware"
	"github.com/example/dailycare/internal/models"
)

// WishlistHandler manages the authenticated user's wishlist.
type WishlistHandler struct {
	db *gorm.DB
}

// NewWishlistHandler constructs WishlistHandler.
func NewWishlistHandler(db *gorm.DB) *WishlistHandler {
	return &WishlistHandler{db: db}
}

// ListWishlist returns the user's wishlist entries.
func (h *WishlistHandler) ListWishlist(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var items []models.WishlistItem
	if err := h.db.Preload("Product").
		Where("user_id = ?", user.ID).Find(&items).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": items})
}

type addWishlistRequest struct {
	ProductID string `json:"product_id"`
}

// AddToWishlist marks a product. Duplicate adds are rejected.
func (h *WishlistHandler) AddToWishlist(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req addWishlistRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}

	var product models.Product
	if err := h.db.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return err
	}

	var existing models.WishlistItem
	if err := h.db.Where("user_id = ? AND product_id = ?", user.ID, productID).
		First(&existing).Error; err == nil {
		return fiber.NewError(fiber.StatusBadRequest, "product already in wishlist")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	item := models.WishlistItem{UserID: user.ID, ProductID: productID}
	if err := h.db.Create(&item).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": item})
}

// RemoveFromWishlist unmarks a product by product ID.
func (h *WishlistHandler) RemoveFromWishlist(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	productID, err := uuid.Parse(c.Params("productId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}

	res := h.db.Where("user_id = ? AND product_id = ?", user.ID, productID).
		Delete(&models.WishlistItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "item not in wishlist")
	}

	return c.JSON(fiber.Map{"success": true, "message": "removed from wishlist"})
}

package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/dailycare/internal/middleware"
	"github.com/example/dailycare/internal/models"
)

// CartHandler manages the authenticated user's cart.
type CartHandler struct {
	db *gorm.DB
}

// NewCartHandler constructs CartHandler.
func NewCartHandler(db *gorm.DB) *CartHandler {
	return &CartHandler{db: db}
}

// ListCart returns all cart lines for the current user.
func (h *CartHandler) ListCart(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var items []models.CartItem
	if err := h.db.Preload("Product").
		Where("user_id = ?", user.ID).Find(&items).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": items})
}

type addCartRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// AddToCart adds a product to the cart. Adding a product that is
// already present increments its quantity instead of inserting a
// second row.
func (h *CartHandler) AddToCart(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req addCartRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	var product models.Product
	if err := h.db.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return err
	}

	var item models.CartItem
	err = h.db.Where("user_id = ? AND product_id = ?", user.ID, productID).
		First(&item).Error
	switch {
	case err == nil:
		item.Quantity += req.Quantity
		if err := h.db.Model(&item).Update("quantity", item.Quantity).Error; err != nil {
			return err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = models.CartItem{UserID: user.ID, ProductID: productID, Quantity: req.Quantity}
		if err := h.db.Create(&item).Error; err != nil {
			return err
		}
	default:
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": item})
}

type updateCartRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateCartItem sets a cart line's quantity. A quantity of zero or
// less removes the line.
func (h *CartHandler) UpdateCartItem(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req updateCartRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	var item models.CartItem
	if err := h.db.First(&item, "id = ? AND user_id = ?", id, user.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "cart item not found")
		}
		return err
	}

	if req.Quantity <= 0 {
		if err := h.db.Delete(&item).Error; err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "message": "item removed from cart"})
	}

	if err := h.db.Model(&item).Update("quantity", req.Quantity).Error; err != nil {
		return err
	}
	item.Quantity = req.Quantity

	return c.JSON(fiber.Map{"success": true, "data": item})
}

// RemoveFromCart deletes one cart line.
func (h *CartHandler) RemoveFromCart(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	res := h.db.Where("id = ? AND user_id = ?", id, user.ID).Delete(&models.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "cart item not found")
	}

	return c.JSON(fiber.Map{"success": true, "message": "removed from cart"})
}

// ClearCart deletes every cart line for the current user.
func (h *CartHandler) ClearCart(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	if err := h.db.Where("user_id = ?", user.ID).Delete(&models.CartItem{}).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "cart cleared"})
}

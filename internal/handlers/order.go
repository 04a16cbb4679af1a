package handlers

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/dailycare/internal/middleware"
	"github.com/example/dailycare/internal/models"
	"github.com/example/dailycare/internal/services"
	"github.com/example/dailycare/internal/utils"
)

// OrderHandler manages order endpoints.
type OrderHandler struct {
	db       *gorm.DB
	checkout *services.CheckoutService
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(db *gorm.DB, checkout *services.CheckoutService) *OrderHandler {
	return &OrderHandler{db: db, checkout: checkout}
}

type checkoutItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type checkoutRequest struct {
	Items           []checkoutItemRequest `json:"items,omitempty"`
	ShippingAddress json.RawMessage       `json:"shipping_address"`
	PaymentMethod   string                `json:"payment_method"`
}

// Checkout commits the caller's cart (or an explicit item list) into an
// order.
func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req checkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.PaymentMethod == "" {
		return fiber.NewError(fiber.StatusBadRequest, "payment_method is required")
	}

	items := make([]services.CheckoutItem, 0, len(req.Items))
	for _, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
		}
		if item.Quantity < 1 {
			return fiber.NewError(fiber.StatusBadRequest, "quantity must be at least 1")
		}
		items = append(items, services.CheckoutItem{ProductID: productID, Quantity: item.Quantity})
	}

	order, err := h.checkout.Checkout(user.ID, items, req.ShippingAddress, req.PaymentMethod)
	if err != nil {
		return mapServiceError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": order})
}

// ListOrders returns the authenticated user's orders, newest first.
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.Order{}).Where("user_id = ?", user.ID)

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var orders []models.Order
	if err := query.Preload("Items").
		Order("placed_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&orders).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    orders,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// GetOrder returns a single order owned by the authenticated user.
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var order models.Order
	if err := h.db.Preload("Items").
		First(&order, "id = ? AND user_id = ?", id, user.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": order})
}

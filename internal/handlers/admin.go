package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/dailycare/internal/middleware"
	"github.com/example/dailycare/internal/models"
	"github.com/example/dailycare/internal/services"
	"github.com/example/dailycare/internal/utils"
)

// AdminHandler serves the admin dashboard and moderation endpoints.
// All routes behind it require the admin flag.
type AdminHandler struct {
	db       *gorm.DB
	checkout *services.CheckoutService
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(db *gorm.DB, checkout *services.CheckoutService) *AdminHandler {
	return &AdminHandler{db: db, checkout: checkout}
}

// Stats returns dashboard counters.
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	var totalUsers, totalProducts, totalOrders, pendingOrders int64
	var totalRevenue float64

	if err := h.db.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
		return err
	}
	if err := h.db.Model(&models.Product{}).Count(&totalProducts).Error; err != nil {
		return err
	}
	if err := h.db.Model(&models.Order{}).Count(&totalOrders).Error; err != nil {
		return err
	}
	if err := h.db.Model(&models.Order{}).
		Where("status = ?", models.OrderStatusPending).
		Count(&pendingOrders).Error; err != nil {
		return err
	}
	if err := h.db.Model(&models.Order{}).
		Where("payment_status = ?", models.PaymentStatusCompleted).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&totalRevenue).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"total_users":    totalUsers,
		"total_products": totalProducts,
		"total_orders":   totalOrders,
		"total_revenue":  totalRevenue,
		"pending_orders": pendingOrders,
	})
}

// ListUsers returns all user accounts, paginated.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)

	var total int64
	if err := h.db.Model(&models.User{}).Count(&total).Error; err != nil {
		return err
	}

	var users []models.User
	if err := h.db.Order("created_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&users).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    users,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// ToggleUserAdmin flips a user's admin flag. Admins cannot change their
// own flag.
func (h *AdminHandler) ToggleUserAdmin(c *fiber.Ctx) error {
	admin, ok := middleware.GetCurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if id == admin.ID {
		return fiber.NewError(fiber.StatusBadRequest, "cannot modify your own admin status")
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "user not found")
		}
		return err
	}

	user.IsAdmin = !user.IsAdmin
	if err := h.db.Model(&user).Update("is_admin", user.IsAdmin).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "is_admin": user.IsAdmin})
}

// ToggleUserActive flips a user's active flag. Accounts are never hard
// deleted; this is the soft lifecycle.
func (h *AdminHandler) ToggleUserActive(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "user not found")
		}
		return err
	}

	user.IsActive = !user.IsActive
	if err := h.db.Model(&user).Update("is_active", user.IsActive).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "is_active": user.IsActive})
}

// ListAllOrders returns every order, optionally filtered by status.
func (h *AdminHandler) ListAllOrders(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.Order{})

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

type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus moves an order along its lifecycle.
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req updateOrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	order, err := h.checkout.UpdateOrderStatus(id, req.Status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return mapServiceError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": order})
}

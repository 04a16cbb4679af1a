package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/dailycare/internal/models"
	"github.com/example/dailycare/internal/utils"
)

// ProductHandler manages product endpoints.
type ProductHandler struct {
	db *gorm.DB
}

// NewProductHandler constructs ProductHandler.
func NewProductHandler(db *gorm.DB) *ProductHandler {
	return &ProductHandler{db: db}
}

// ListProducts returns active products with optional filters: category
// slug, product type, price range, name search and sort order.
func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.Product{}).Where("is_active = ?", true)

	if slug := c.Query("category"); slug != "" {
		var category models.Category
		if err := h.db.First(&category, "slug = ?", slug).Error; err == nil {
			query = query.Where("category_id = ?", category.ID)
		}
	}

	if productType := c.Query("product_type"); productType != "" {
		query = query.Where("product_type = ?", productType)
	}

	if minPrice := c.Query("min_price"); minPrice != "" {
		if parsed, err := strconv.ParseFloat(minPrice, 64); err == nil {
			query = query.Where("price >= ?", parsed)
		}
	}

	if maxPrice := c.Query("max_price"); maxPrice != "" {
		if parsed, err := strconv.ParseFloat(maxPrice, 64); err == nil {
			query = query.Where("price <= ?", parsed)
		}
	}

	if search := c.Query("search"); search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	switch c.Query("sort_by") {
	case "price_low":
		query = query.Order("price asc")
	case "price_high":
		query = query.Order("price desc")
	case "rating":
		query = query.Order("rating desc")
	case "newest":
		query = query.Order("created_at desc")
	default:
		query = query.Order("is_bestseller desc, created_at desc")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var products []models.Product
	if err := query.Preload("Category").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&products).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    products,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// ListBestsellers returns the bestseller shelf.
func (h *ProductHandler) ListBestsellers(c *fiber.Ctx) error {
	limit := utils.ParsePagination(c).Limit
	var products []models.Product
	if err := h.db.Where("is_active = ? AND is_bestseller = ?", true, true).
		Limit(limit).Find(&products).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": products})
}

// ListNewArrivals returns recently added products.
func (h *ProductHandler) ListNewArrivals(c *fiber.Ctx) error {
	limit := utils.ParsePagination(c).Limit
	var products []models.Product
	if err := h.db.Where("is_active = ? AND is_new = ?", true, true).
		Limit(limit).Find(&products).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": products})
}

// GetProductBySlug returns a single product by its slug.
func (h *ProductHandler) GetProductBySlug(c *fiber.Ctx) error {
	var product models.Product
	if err := h.db.Preload("Category").
		First(&product, "slug = ?", c.Params("slug")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": product})
}

// GetProduct returns a single product by ID.
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var product models.Product
	if err := h.db.Preload("Category").First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": product})
}

// CreateProduct persists a new product.
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var payload models.Product
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if payload.Name == "" || payload.Slug == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name and slug are required")
	}
	if payload.Price < 0 || payload.Stock < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "price and stock must be non-negative")
	}

	if err := h.db.Create(&payload).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": payload})
}

// UpdateProduct updates an existing product.
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var product models.Product
	if err := h.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return err
	}

	var payload models.Product
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	payload.ID = product.ID
	payload.CreatedAt = product.CreatedAt
	if err := h.db.Model(&product).Updates(payload).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": product})
}

// DeleteProduct removes a product from the catalog.
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	res := h.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "product not found")
	}

	return c.JSON(fiber.Map{"success": true})
}

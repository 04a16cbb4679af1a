package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Product is a catalog entry. Stock is the only field the checkout
// path mutates; everything else belongs to catalog administration.
type Product struct {
	BaseModel
	Name          string         `gorm:"index" json:"name"`
	Slug          string         `gorm:"uniqueIndex" json:"slug"`
	Description   string         `json:"description"`
	Price         float64        `json:"price"`
	OriginalPrice *float64       `json:"original_price,omitempty"`
	Image         string         `json:"image"`
	Images        pq.StringArray `gorm:"type:text[]" json:"images"`
	CategoryID    *uuid.UUID     `gorm:"type:uuid;index" json:"category_id"`
	Category      *Category      `json:"category,omitempty"`
	ProductType   string         `json:"product_type"`
	Rating        float64        `gorm:"default:0" json:"rating"`
	ReviewsCount  int            `gorm:"default:0" json:"reviews_count"`
	Stock         int            `gorm:"default:0" json:"stock"`
	IsNew         bool           `gorm:"default:false" json:"is_new"`
	IsBestseller  bool           `gorm:"default:false" json:"is_bestseller"`
	IsActive      bool           `gorm:"default:true" json:"is_active"`
	Ingredients   pq.StringArray `gorm:"type:text[]" json:"ingredients"`
	Benefits      pq.StringArray `gorm:"type:text[]" json:"benefits"`
}

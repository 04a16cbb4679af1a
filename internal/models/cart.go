package models

import "github.com/google/uuid"

// CartItem is one line of a user's cart. At most one row exists per
// (user, product); adding a product twice increments the quantity.
type CartItem struct {
	BaseModel
	UserID    uuid.UUID `gorm:"type:uuid;index:idx_cart_user_product,unique" json:"user_id"`
	ProductID uuid.UUID `gorm:"type:uuid;index:idx_cart_user_product,unique" json:"product_id"`
	Product   *Product  `json:"product,omitempty"`
	Quantity  int       `gorm:"default:1" json:"quantity"`
}

// WishlistItem marks a product a user wants to keep an eye on.
type WishlistItem struct {
	BaseModel
	UserID    uuid.UUID `gorm:"type:uuid;index:idx_wishlist_user_product,unique" json:"user_id"`
	ProductID uuid.UUID `gorm:"type:uuid;index:idx_wishlist_user_product,unique" json:"product_id"`
	Product   *Product  `json:"product,omitempty"`
}

package models

import (
	"time"
)

// User represents a store customer. Accounts are never hard-deleted;
// deactivation flips IsActive instead.
type User struct {
	BaseModel
	Email        string     `gorm:"uniqueIndex" json:"email"`
	PasswordHash string     `json:"-"`
	FullName     string     `json:"full_name"`
	Phone        *string    `gorm:"uniqueIndex" json:"phone,omitempty"`
	Address      string     `json:"address,omitempty"`
	IsActive     bool       `gorm:"default:true" json:"is_active"`
	IsAdmin      bool       `gorm:"default:false" json:"is_admin"`
	Orders       []Order    `json:"orders,omitempty"`
	CartItems    []CartItem `json:"cart_items,omitempty"`
}

// OneTimeCode is a single OTP challenge sent to a phone number.
// The phone column is unique, so at most one challenge row exists per
// phone; a new request replaces the row in place.
type OneTimeCode struct {
	BaseModel
	Phone     string     `gorm:"uniqueIndex" json:"phone"`
	Code      string     `json:"-"`
	ExpiresAt time.Time  `json:"expires_at"`
	Used      bool       `gorm:"default:false" json:"used"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
}

// Expired reports whether the code's validity window has passed.
func (c *OneTimeCode) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Order statuses. The lifecycle is forward-only: pending -> confirmed ->
// shipped -> delivered, with cancelled reachable from any non-terminal
// status. Delivered and cancelled are terminal.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// Payment statuses. Checkout records pending; no gateway integration
// updates it in this core.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
)

var orderTransitions = map[string][]string{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusShipped:   {OrderStatusDelivered, OrderStatusCancelled},
}

// ValidOrderStatus reports whether s names a known status.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Order is a committed checkout. TotalAmount is tax-inclusive.
type Order struct {
	BaseModel
	UserID          uuid.UUID       `gorm:"type:uuid;index" json:"user_id"`
	User            *User           `json:"user,omitempty"`
	Status          string          `gorm:"default:pending" json:"status"`
	TotalAmount     float64         `json:"total_amount"`
	ShippingAddress json.RawMessage `gorm:"type:jsonb" json:"shipping_address"`
	PaymentMethod   string          `json:"payment_method"`
	PaymentStatus   string          `gorm:"default:pending" json:"payment_status"`
	PlacedAt        time.Time       `json:"placed_at"`
	Items           []OrderItem     `json:"items,omitempty"`
}

// OrderItem freezes one order line. Price is the unit price at commit
// time and is never recomputed from the catalog.
type OrderItem struct {
	BaseModel
	OrderID   uuid.UUID `gorm:"type:uuid;index" json:"order_id"`
	ProductID uuid.UUID `gorm:"type:uuid;index" json:"product_id"`
	Product   *Product  `json:"product,omitempty"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"`
}

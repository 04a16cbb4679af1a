package services

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/dailycare/internal/models"
)

// TaxRate is the fixed surcharge applied to every order subtotal.
const TaxRate = 0.18

// CheckoutItem is one (product, quantity) pair to commit. Callers may
// pass an explicit list; otherwise the user's cart is used.
type CheckoutItem struct {
	ProductID uuid.UUID
	Quantity  int
}

// CheckoutService converts a cart into an order as a single atomic
// unit: stock validation, pricing, order creation, stock decrement and
// cart clearing either all happen or none do.
type CheckoutService struct {
	db       *gorm.DB
	telegram *TelegramService
}

// NewCheckoutService constructs a CheckoutService. telegram may be nil.
func NewCheckoutService(db *gorm.DB, telegram *TelegramService) *CheckoutService {
	return &CheckoutService{db: db, telegram: telegram}
}

// Checkout commits an order for the user. The actual stock reservation
// is a conditional decrement (stock = stock - n WHERE stock >= n) inside
// the transaction, so two concurrent checkouts racing for the same units
// can never both succeed: the loser's decrement matches zero rows and
// the whole transaction rolls back with an insufficient-stock error.
func (s *CheckoutService) Checkout(userID uuid.UUID, items []CheckoutItem, shippingAddress json.RawMessage, paymentMethod string) (*models.Order, error) {
	var order models.Order

	err := s.db.Transaction(func(tx *gorm.DB) error {
		lines := items
		if len(lines) == 0 {
			var cart []models.CartItem
			if err := tx.Where("user_id = ?", userID).Find(&cart).Error; err != nil {
				return err
			}
			for _, ci := range cart {
				lines = append(lines, CheckoutItem{ProductID: ci.ProductID, Quantity: ci.Quantity})
			}
		}

		if len(lines) == 0 {
			return ErrEmptyCart
		}

		var subtotal float64
		orderItems := make([]models.OrderItem, 0, len(lines))

		for _, line := range lines {
			var product models.Product
			if err := tx.First(&product, "id = ?", line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &ProductNotFoundError{ProductID: line.ProductID}
				}
				return err
			}

			if product.Stock < line.Quantity {
				return &InsufficientStockError{
					ProductID:   product.ID,
					ProductName: product.Name,
					Requested:   line.Quantity,
					Available:   product.Stock,
				}
			}

			// Price read at commit time; this is what gets frozen into
			// the order line.
			subtotal += product.Price * float64(line.Quantity)
			orderItems = append(orderItems, models.OrderItem{
				ProductID: product.ID,
				Quantity:  line.Quantity,
				Price:     product.Price,
			})
		}

		order = models.Order{
			UserID:          userID,
			Status:          models.OrderStatusPending,
			TotalAmount:     subtotal * (1 + TaxRate),
			ShippingAddress: shippingAddress,
			PaymentMethod:   paymentMethod,
			PaymentStatus:   models.PaymentStatusPending,
			PlacedAt:        time.Now(),
			Items:           orderItems,
		}

		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, line := range lines {
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", line.ProductID, line.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", line.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				// Lost the race since the validation read; abort the
				// whole transaction rather than oversell.
				var product models.Product
				if err := tx.First(&product, "id = ?", line.ProductID).Error; err != nil {
					return &ProductNotFoundError{ProductID: line.ProductID}
				}
				return &InsufficientStockError{
					ProductID:   product.ID,
					ProductName: product.Name,
					Requested:   line.Quantity,
					Available:   product.Stock,
				}
			}
		}

		return tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}

	if s.telegram != nil {
		if err := s.telegram.NotifyNewOrder(s.buildNotification(&order)); err != nil {
			log.Printf("[Checkout] Telegram notification failed: %v", err)
		}
	}

	return &order, nil
}

// UpdateOrderStatus moves an order along its lifecycle, rejecting
// unknown statuses and backward transitions. The update is conditional
// on the status it validated against, so concurrent updates cannot
// slip an illegal transition through.
func (s *CheckoutService) UpdateOrderStatus(orderID uuid.UUID, status string) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, &InvalidTransitionError{To: status}
	}

	var order models.Order
	if err := s.db.First(&order, "id = ?", orderID).Error; err != nil {
		return nil, err
	}

	if !models.CanTransition(order.Status, status) {
		return nil, &InvalidTransitionError{From: order.Status, To: status}
	}

	res := s.db.Model(&models.Order{}).
		Where("id = ? AND status = ?", orderID, order.Status).
		Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, &InvalidTransitionError{From: order.Status, To: status}
	}

	order.Status = status
	return &order, nil
}

func (s *CheckoutService) buildNotification(order *models.Order) OrderNotification {
	items := make([]OrderItemNotification, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemNotification{
			ProductID: item.ProductID.String(),
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	userName := ""
	var user models.User
	if err := s.db.First(&user, "id = ?", order.UserID).Error; err == nil {
		userName = user.FullName
	}

	return OrderNotification{
		OrderID:       order.ID.String(),
		Items:         items,
		TotalAmount:   order.TotalAmount,
		UserName:      userName,
		PaymentMethod: order.PaymentMethod,
		Status:        order.Status,
	}
}

package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
)

// TelegramService sends notifications to the store admin chat.
type TelegramService struct {
	botToken    string
	adminChatID string
}

// NewTelegramService creates a new TelegramService.
func NewTelegramService(botToken, adminChatID string) *TelegramService {
	return &TelegramService{
		botToken:    botToken,
		adminChatID: adminChatID,
	}
}

type telegramMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// SendMessage sends a message to specified chat.
func (s *TelegramService) SendMessage(chatID, text string) error {
	if s.botToken == "" {
		log.Println("[Telegram] Bot token not configured")
		return nil
	}

	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", s.botToken)

	msg := telegramMessage{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "HTML",
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		log.Printf("[Telegram] Failed to send message: %v", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[Telegram] Unexpected status: %d", resp.StatusCode)
		return fmt.Errorf("telegram returned status %d", resp.StatusCode)
	}

	return nil
}

// SendToAdmin sends a message to the admin chat.
func (s *TelegramService) SendToAdmin(text string) error {
	if s.adminChatID == "" {
		return nil
	}
	return s.SendMessage(s.adminChatID, text)
}

// OrderNotification contains order data for the admin notification.
type OrderNotification struct {
	OrderID       string
	Items         []OrderItemNotification
	TotalAmount   float64
	UserName      string
	PaymentMethod string
	Status        string
}

// OrderItemNotification contains one order line.
type OrderItemNotification struct {
	ProductID string
	Quantity  int
	Price     float64
}

// NotifyNewOrder sends notification about a freshly placed order.
func (s *TelegramService) NotifyNewOrder(order OrderNotification) error {
	if s.adminChatID == "" {
		return nil
	}

	var itemsList strings.Builder
	for i, item := range order.Items {
		itemsList.WriteString(fmt.Sprintf("%d. %s\n   %d x %.2f = %.2f\n",
			i+1,
			item.ProductID,
			item.Quantity,
			item.Price,
			item.Price*float64(item.Quantity),
		))
	}

	message := fmt.Sprintf(`<b>🛒 New order!</b>
<b>Order:</b> %s
<b>Customer:</b> %s
<b>Items:</b>
%s
<b>Total (incl. tax):</b> %.2f
<b>Payment:</b> %s
<b>Status:</b> %s`,
		order.OrderID,
		order.UserName,
		itemsList.String(),
		order.TotalAmount,
		order.PaymentMethod,
		order.Status,
	)

	return s.SendToAdmin(strings.TrimSpace(message))
}

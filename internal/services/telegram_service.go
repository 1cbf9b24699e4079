package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
)

// TelegramService sends order notifications to the manager chat.
type TelegramService struct {
	botToken      string
	managerChatID string
}

// NewTelegramService creates a new TelegramService.
func NewTelegramService(botToken, managerChatID string) *TelegramService {
	return &TelegramService{
		botToken:      botToken,
		managerChatID: managerChatID,
	}
}

type telegramMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// SendMessage sends a message to the specified chat.
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

// SendToManagers sends a message to the manager chat.
func (s *TelegramService) SendToManagers(text string) error {
	if s.managerChatID == "" {
		log.Println("[Telegram] Manager chat ID not configured")
		return nil
	}
	return s.SendMessage(s.managerChatID, text)
}

// OrderNotification contains order data for a Telegram notification.
type OrderNotification struct {
	OrderID       string
	CustomerName  string
	CustomerPhone string
	Items         []OrderItemNotification
	TotalAmount   float64
}

// OrderItemNotification contains order line data.
type OrderItemNotification struct {
	Name     string
	Quantity int
	Price    float64
}

// FormatPrice formats a ruble amount with thousand separators.
func FormatPrice(amount float64) string {
	intAmount := int64(amount)
	str := fmt.Sprintf("%d", intAmount)

	var result strings.Builder
	length := len(str)
	for i, digit := range str {
		if i > 0 && (length-i)%3 == 0 {
			result.WriteString(" ")
		}
		result.WriteRune(digit)
	}

	return result.String() + " ₽"
}

// NotifyNewOrder tells the manager chat about a newly placed order.
func (s *TelegramService) NotifyNewOrder(order OrderNotification) error {
	var sb strings.Builder
	sb.WriteString("<b>🆕 Новый заказ</b>\n\n")
	sb.WriteString(fmt.Sprintf("Заказ: <code>%s</code>\n", order.OrderID))
	if order.CustomerName != "" {
		sb.WriteString(fmt.Sprintf("Клиент: %s\n", order.CustomerName))
	}
	if order.CustomerPhone != "" {
		sb.WriteString(fmt.Sprintf("Телефон: %s\n", order.CustomerPhone))
	}
	sb.WriteString("\n<b>Состав заказа:</b>\n")
	for _, item := range order.Items {
		sb.WriteString(fmt.Sprintf("• %s × %d — %s\n", item.Name, item.Quantity, FormatPrice(item.Price*float64(item.Quantity))))
	}
	sb.WriteString(fmt.Sprintf("\n<b>Итого: %s</b>", FormatPrice(order.TotalAmount)))

	return s.SendToManagers(sb.String())
}

// NotifyOrderRejected tells the manager chat an assembler declined an order
// so it can be reassigned. The order itself is left untouched.
func (s *TelegramService) NotifyOrderRejected(orderID, assemblerName string) error {
	text := fmt.Sprintf(
		"<b>⚠️ Сборщик отклонил заказ</b>\n\nЗаказ: <code>%s</code>\nСборщик: %s\n\nТребуется переназначение.",
		orderID, assemblerName,
	)
	return s.SendToManagers(text)
}

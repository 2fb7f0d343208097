package services

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"warrantyportal/internal/models"
)

// TelegramNotifier pings an ops channel about new registrations.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramNotifier returns nil when the integration is not configured;
// callers treat a nil notifier as "disabled".
func NewTelegramNotifier(botToken string, chatID int64) *TelegramNotifier {
	if botToken == "" || chatID == 0 {
		return nil
	}
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		log.Printf("[tg][init] bot init failed, notifications disabled: %v", err)
		return nil
	}
	return &TelegramNotifier{bot: bot, chatID: chatID}
}

func (n *TelegramNotifier) NotifyRegistration(w *models.Warranty) error {
	if n == nil {
		return nil
	}
	text := fmt.Sprintf(
		"New warranty registration\nSerial: %s\nProduct: %s\nQty: %d\nCoverage: %s to %s",
		w.SerialNumber,
		w.ProductName,
		w.Quantity,
		w.PurchaseDate.Format("2006-01-02"),
		w.ExpiryDate.Format("2006-01-02"),
	)
	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	log.Printf("[tg][notify] registration serial=%s chatID=%d", w.SerialNumber, n.chatID)
	return nil
}

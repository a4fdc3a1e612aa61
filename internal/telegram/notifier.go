// Package telegram mirrors broadcast alerts to a Telegram chat, so rangers
// in the field see evacuation-style announcements without the web UI open.
package telegram

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/githubzohaib/Forest-MGT/internal/models"
)

// Notifier sends broadcast bodies to a single configured chat.
type Notifier struct {
	BotAPI *tgbotapi.BotAPI
	ChatID int64
}

// NewNotifier authenticates against the Bot API.
func NewNotifier(token string, chatID int64) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	bot.Debug = false
	log.Printf("Authorized on account %s", bot.Self.UserName)

	return &Notifier{BotAPI: bot, ChatID: chatID}, nil
}

// AnnounceBroadcast forwards one broadcast message. Best effort: delivery
// to Telegram is outside the message bus contract, so failures are only
// logged.
func (n *Notifier) AnnounceBroadcast(msg models.Message) {
	text := fmt.Sprintf("📢 HQ broadcast: %s", msg.Body)
	if _, err := n.BotAPI.Send(tgbotapi.NewMessage(n.ChatID, text)); err != nil {
		log.Printf("ERROR: Failed to mirror broadcast %d to Telegram: %v", msg.ID, err)
	}
}

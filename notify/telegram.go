package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram sends to a single operator chat. Reports use HTML markup, so
// every message goes out with ParseMode HTML.
type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegram(token string, chatID int64) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	return &Telegram{bot: bot, chatID: chatID}, nil
}

func (t *Telegram) Send(ctx context.Context, text string, silent bool) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableNotification = silent

	sent, err := t.bot.Send(msg)
	if err != nil {
		return 0, fmt.Errorf("telegram: sending: %w", err)
	}
	return sent.MessageID, nil
}

func (t *Telegram) Edit(ctx context.Context, messageID int, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	edit := tgbotapi.NewEditMessageText(t.chatID, messageID, text)
	edit.ParseMode = tgbotapi.ModeHTML
	if _, err := t.bot.Send(edit); err != nil {
		return fmt.Errorf("telegram: editing %d: %w", messageID, err)
	}
	return nil
}

func (t *Telegram) Pin(ctx context.Context, messageID int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	pin := tgbotapi.PinChatMessageConfig{
		ChatID:              t.chatID,
		MessageID:           messageID,
		DisableNotification: true,
	}
	if _, err := t.bot.Request(pin); err != nil {
		return fmt.Errorf("telegram: pinning %d: %w", messageID, err)
	}
	return nil
}

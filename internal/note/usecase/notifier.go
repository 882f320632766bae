package usecase

import (
	"context"

	"inkscan/pkg/telegram"
)

type telegramNotifier struct {
	bot    *telegram.Bot
	chatID int64
}

// NewTelegramNotifier sends processing notices to a fixed Telegram chat.
func NewTelegramNotifier(bot *telegram.Bot, chatID int64) Notifier {
	return &telegramNotifier{
		bot:    bot,
		chatID: chatID,
	}
}

func (n *telegramNotifier) Notify(_ context.Context, text string) error {
	return n.bot.SendMessage(n.chatID, text)
}

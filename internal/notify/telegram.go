package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/RamithaMN/job-scraper/internal/domain"
)

// TelegramNotifier sends a short per-job summary to a chat. Optional,
// alongside the webhook rather than instead of it.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegram(token string, chatID int64) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("init telegram bot: %w", err)
	}
	return &TelegramNotifier{bot: bot, chatID: chatID}, nil
}

func (t *TelegramNotifier) Notify(ctx context.Context, delta []domain.JobPosting, run RunMeta) error {
	header := tgbotapi.NewMessage(t.chatID,
		fmt.Sprintf("<b>%d new job postings</b> (%s)", len(delta), run.At.Format("2006-01-02 15:04")))
	header.ParseMode = tgbotapi.ModeHTML
	if _, err := t.bot.Send(header); err != nil {
		return err
	}

	for _, j := range delta {
		text := fmt.Sprintf(
			"<b>%s</b>\n🏢 %s\n📍 %s\n🔗 <a href=%q>%s</a>",
			j.Title, j.Company, j.Location, j.SourceURL, string(j.Platform),
		)
		msg := tgbotapi.NewMessage(t.chatID, text)
		msg.ParseMode = tgbotapi.ModeHTML
		if _, err := t.bot.Send(msg); err != nil {
			return err
		}
	}
	return nil
}

// Package telegram posts run summaries to a chat.
package telegram

import (
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"go-jobmarket-scraper/internal/config"
	"go-jobmarket-scraper/internal/runner"
)

// maxFailureLines caps the failure list; a bad run can fail hundreds of listings.
const maxFailureLines = 5

type Bot struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

func NewBot(cfg *config.Config) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}

	//turn this on in case of debug
	//api.Debug = true

	return &Bot{
		api:    api,
		chatID: cfg.TelegramChatID,
	}, nil
}

func escapeMarkdown(text string) string {
	replacer := strings.NewReplacer(
		"_", "\\_", "*", "\\*", "[", "\\[", "]", "\\]", "(", "\\(",
		")", "\\)", "~", "\\~", "`", "\\`", ">", "\\>", "#", "\\#",
		"+", "\\+", "-", "\\-", "=", "\\=", "|", "\\|", "{", "\\{",
		"}", "\\}", ".", "\\.", "!", "\\!",
	)
	return replacer.Replace(text)
}

// SummaryMessage renders s as MarkdownV2.
func SummaryMessage(board string, s *runner.Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "📊 *%s scrape finished*\n", escapeMarkdown(board))
	fmt.Fprintf(&b, "🆔 `%s`\n", s.RunID)
	fmt.Fprintf(&b, "⏱️ %s\n\n", escapeMarkdown(s.Duration().Round(time.Second).String()))

	for _, rs := range s.Roles {
		fmt.Fprintf(&b, "• %s: %d new, %d dup, %d failed\n",
			escapeMarkdown(rs.Role), rs.Inserted, rs.Duplicates, rs.Failed)
	}

	fmt.Fprintf(&b, "\n✅ *Total:* %d new of %d found", s.Total.Inserted, s.Total.Discovered)
	if s.Total.Skipped > 0 {
		fmt.Fprintf(&b, ", %d skipped", s.Total.Skipped)
	}
	b.WriteString("\n")

	if n := len(s.PageErrors); n > 0 {
		fmt.Fprintf(&b, "⚠️ %d search pages failed\n", n)
	}

	if len(s.Failures) > 0 {
		fmt.Fprintf(&b, "⚠️ %d listings failed:\n", len(s.Failures))
		for i, f := range s.Failures {
			if i == maxFailureLines {
				fmt.Fprintf(&b, "…and %d more\n", len(s.Failures)-maxFailureLines)
				break
			}
			fmt.Fprintf(&b, "  %s: %s\n", escapeMarkdown(f.Stage), escapeMarkdown(f.URL))
		}
	}
	return b.String()
}

func (b *Bot) SendSummary(board string, s *runner.Summary) error {
	msg := tgbotapi.NewMessage(b.chatID, SummaryMessage(board, s))
	msg.ParseMode = "MarkdownV2"
	msg.DisableWebPagePreview = true
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) SendError(err error) error {
	msg := tgbotapi.NewMessage(b.chatID, fmt.Sprintf("❌ Scrape failed: %v", err))
	_, sendErr := b.api.Send(msg)
	return sendErr
}

package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/sirupsen/logrus"

	"github.com/quitofx/newswindow/internal/database"
)

// SubscriberLister returns the chats registered for scheduled reports.
type SubscriberLister interface {
	ListActive(ctx context.Context) ([]database.Subscriber, error)
}

// Notifier delivers report text to Telegram chats, splitting long
// reports into chunks the transport accepts.
type Notifier struct {
	bot         *bot.Bot
	subscribers SubscriberLister
	// reportChatID always receives broadcasts, independent of the
	// subscriber registry. Zero disables it.
	reportChatID int64
	chunkLimit   int
}

// NewNotifier creates a notifier. b may be nil when Telegram is not
// configured; Broadcast then becomes a no-op.
func NewNotifier(b *bot.Bot, subscribers SubscriberLister, reportChatID int64, chunkLimit int) *Notifier {
	if chunkLimit <= 0 {
		chunkLimit = 1900
	}
	return &Notifier{
		bot:          b,
		subscribers:  subscribers,
		reportChatID: reportChatID,
		chunkLimit:   chunkLimit,
	}
}

// Broadcast sends the text to the configured report chat and every
// active subscriber. Per-chat failures are logged, not propagated, so
// one unreachable chat does not stop the rest.
func (n *Notifier) Broadcast(ctx context.Context, text string) error {
	if n.bot == nil {
		logrus.Debug("Telegram bot not configured, skipping broadcast")
		return nil
	}

	targets := map[int64]struct{}{}
	if n.reportChatID != 0 {
		targets[n.reportChatID] = struct{}{}
	}
	if n.subscribers != nil {
		subs, err := n.subscribers.ListActive(ctx)
		if err != nil {
			return fmt.Errorf("failed to list subscribers: %w", err)
		}
		for _, sub := range subs {
			targets[sub.ChatID] = struct{}{}
		}
	}

	for chatID := range targets {
		if err := n.Send(ctx, chatID, text); err != nil {
			logrus.WithError(err).WithField("chat_id", chatID).Error("Failed to deliver report")
		}
	}
	return nil
}

// Send delivers the text to one chat, chunk by chunk.
func (n *Notifier) Send(ctx context.Context, chatID int64, text string) error {
	for _, chunk := range ChunkMessage(text, n.chunkLimit) {
		_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   chunk,
		})
		if err != nil {
			return fmt.Errorf("failed to send telegram message: %w", err)
		}
	}
	return nil
}

// ChunkMessage splits text into chunks of at most limit characters by
// accumulating whole lines. A line is never split midway; a single
// line longer than the limit becomes its own oversized chunk rather
// than being broken.
func ChunkMessage(text string, limit int) []string {
	if text == "" {
		return nil
	}
	if limit <= 0 || len(text) <= limit {
		return []string{text}
	}

	var chunks []string
	var current strings.Builder
	for _, line := range strings.Split(text, "\n") {
		needed := len(line)
		if current.Len() > 0 {
			needed += current.Len() + 1
		}
		if current.Len() > 0 && needed > limit {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteByte('\n')
		}
		current.WriteString(line)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}

package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/sirupsen/logrus"

	"github.com/quitofx/newswindow/internal/config"
	"github.com/quitofx/newswindow/internal/database"
	"github.com/quitofx/newswindow/internal/services"
)

// SubscriberStore is the slice of the subscriber repository the
// command handlers need.
type SubscriberStore interface {
	Subscribe(ctx context.Context, chatID int64) (*database.Subscriber, error)
	Unsubscribe(ctx context.Context, chatID int64) error
}

// TelegramHandler handles Telegram webhook requests and bot commands.
type TelegramHandler struct {
	config      *config.TelegramConfig
	bot         *bot.Bot
	reports     ReportProvider
	subscribers SubscriberStore
	chunkLimit  int
}

// NewTelegramHandler creates a new Telegram handler. A missing or
// invalid bot configuration disables delivery instead of failing: the
// HTTP API keeps working without the chat surface.
func NewTelegramHandler(cfg *config.TelegramConfig, reports ReportProvider, subscribers SubscriberStore) *TelegramHandler {
	h := &TelegramHandler{
		config:      cfg,
		reports:     reports,
		subscribers: subscribers,
		chunkLimit:  1900,
	}
	if cfg == nil {
		return h
	}
	if cfg.ChunkLimit > 0 {
		h.chunkLimit = cfg.ChunkLimit
	}

	b, err := bot.New(cfg.BotToken, bot.WithDefaultHandler(func(ctx context.Context, b *bot.Bot, update *models.Update) {
		// Updates arrive through our webhook route, not this handler.
	}))
	if err != nil {
		logrus.WithError(err).Warn("Failed to create Telegram bot, chat delivery disabled")
		return h
	}

	h.bot = b
	return h
}

// Bot exposes the underlying bot for the notifier wiring.
func (h *TelegramHandler) Bot() *bot.Bot {
	return h.bot
}

// HandleWebhook processes incoming Telegram webhook requests.
func (h *TelegramHandler) HandleWebhook(c *gin.Context) {
	if h.bot == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Telegram bot not available"})
		return
	}

	var update models.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		logrus.WithError(err).Warn("Failed to parse Telegram update")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if err := h.ProcessUpdate(ctx, &update); err != nil {
			logrus.WithError(err).Error("Failed to process Telegram update")
		}
	}()

	// Always return 200 OK to acknowledge receipt
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ProcessUpdate routes one Telegram update to its command handler.
func (h *TelegramHandler) ProcessUpdate(ctx context.Context, update *models.Update) error {
	if update.Message == nil {
		return nil // Ignore non-message updates
	}

	message := update.Message
	if message.Chat.ID == 0 {
		return fmt.Errorf("invalid message: missing chat")
	}

	text := strings.TrimSpace(message.Text)
	if strings.HasPrefix(text, "/") {
		return h.handleCommand(ctx, message.Chat.ID, text)
	}

	return h.sendMessage(ctx, message.Chat.ID, "I work best with commands. Try /help to see what I can do.")
}

func (h *TelegramHandler) handleCommand(ctx context.Context, chatID int64, command string) error {
	now := time.Now().In(h.reports.Location())

	switch {
	case strings.HasPrefix(command, "/start"):
		return h.handleStartCommand(ctx, chatID)
	case strings.HasPrefix(command, "/stop"):
		return h.handleStopCommand(ctx, chatID)
	case strings.HasPrefix(command, "/today"):
		return h.sendReport(ctx, chatID, h.reports.DayReport(ctx, now))
	case strings.HasPrefix(command, "/tomorrow"):
		return h.sendReport(ctx, chatID, h.reports.DayReport(ctx, now.AddDate(0, 0, 1)))
	case strings.HasPrefix(command, "/week"):
		return h.sendReport(ctx, chatID, h.reports.WeekReport(ctx, now))
	case strings.HasPrefix(command, "/ping"):
		return h.sendMessage(ctx, chatID, "🏓 Pong!")
	case strings.HasPrefix(command, "/help"):
		return h.handleHelpCommand(ctx, chatID)
	default:
		return h.sendMessage(ctx, chatID, "Unknown command. Use /help to see available commands.")
	}
}

func (h *TelegramHandler) handleStartCommand(ctx context.Context, chatID int64) error {
	if h.subscribers != nil {
		if _, err := h.subscribers.Subscribe(ctx, chatID); err != nil {
			logrus.WithError(err).WithField("chat_id", chatID).Error("Failed to register subscriber")
			return h.sendMessage(ctx, chatID, "❌ Registration failed, please try again later.")
		}
	}

	msg := `👋 Welcome!

You'll now receive the scheduled trading-window reports:
• Every evening: tomorrow's report
• Once a week: the full week ahead

Commands:
/today - today's tradeable windows
/tomorrow - tomorrow's tradeable windows
/week - the week ahead
/stop - pause the scheduled reports`

	return h.sendMessage(ctx, chatID, msg)
}

func (h *TelegramHandler) handleStopCommand(ctx context.Context, chatID int64) error {
	if h.subscribers != nil {
		if err := h.subscribers.Unsubscribe(ctx, chatID); err != nil {
			logrus.WithError(err).WithField("chat_id", chatID).Error("Failed to unsubscribe chat")
			return h.sendMessage(ctx, chatID, "❌ Could not pause reports, please try again later.")
		}
	}

	return h.sendMessage(ctx, chatID, "⏸ Scheduled reports paused.\n\nUse /start to resume them.")
}

func (h *TelegramHandler) handleHelpCommand(ctx context.Context, chatID int64) error {
	msg := `🤖 Available commands:

/today - today's tradeable windows
/tomorrow - tomorrow's tradeable windows
/week - reports for the next 7 days
/start - subscribe to scheduled reports
/stop - pause scheduled reports
/ping - check the bot is alive
/help - show this help message`

	return h.sendMessage(ctx, chatID, msg)
}

// sendReport delivers report text in whole-line chunks so no chunk
// exceeds the transport's message-size limit.
func (h *TelegramHandler) sendReport(ctx context.Context, chatID int64, text string) error {
	for _, chunk := range services.ChunkMessage(text, h.chunkLimit) {
		if err := h.sendMessage(ctx, chatID, chunk); err != nil {
			return err
		}
	}
	return nil
}

func (h *TelegramHandler) sendMessage(ctx context.Context, chatID int64, text string) error {
	if h.bot == nil {
		return fmt.Errorf("telegram bot not available")
	}

	_, err := h.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		logrus.WithError(err).WithField("chat_id", chatID).Error("Failed to send message")
		return err
	}
	return nil
}

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quitofx/newswindow/internal/config"
)

func newDisabledTelegramHandler(t *testing.T) *TelegramHandler {
	t.Helper()
	loc, err := time.LoadLocation("America/Guayaquil")
	require.NoError(t, err)
	return NewTelegramHandler(nil, &stubReports{loc: loc}, nil)
}

func TestNewTelegramHandler_NilConfigDisablesBot(t *testing.T) {
	h := newDisabledTelegramHandler(t)

	assert.Nil(t, h.Bot())
}

func TestNewTelegramHandler_BadTokenDisablesBot(t *testing.T) {
	loc, err := time.LoadLocation("America/Guayaquil")
	require.NoError(t, err)

	h := NewTelegramHandler(&config.TelegramConfig{BotToken: ""}, &stubReports{loc: loc}, nil)

	assert.Nil(t, h.Bot())
}

func TestHandleWebhook_BotUnavailable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newDisabledTelegramHandler(t)

	router := gin.New()
	router.POST("/api/v1/telegram/webhook", h.HandleWebhook)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/telegram/webhook",
		strings.NewReader(`{"update_id":1}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestProcessUpdate_IgnoresNonMessageUpdates(t *testing.T) {
	h := newDisabledTelegramHandler(t)

	assert.NoError(t, h.ProcessUpdate(context.Background(), &models.Update{ID: 1}))
}

func TestProcessUpdate_RejectsMissingChat(t *testing.T) {
	h := newDisabledTelegramHandler(t)

	err := h.ProcessUpdate(context.Background(), &models.Update{
		Message: &models.Message{Text: "/today"},
	})

	assert.Error(t, err)
}

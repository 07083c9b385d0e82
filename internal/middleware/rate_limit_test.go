package middleware_test

import (
	"context"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/medgram/medgram/internal/config"
	"github.com/medgram/medgram/internal/middleware"
	"github.com/stretchr/testify/assert"
)

func messageFrom(userID, chatID int64) *models.Update {
	return &models.Update{
		Message: &models.Message{
			From: &models.User{ID: userID},
			Chat: models.Chat{ID: chatID},
		},
	}
}

func TestRateLimitPassesWithinBudget(t *testing.T) {
	limited := middleware.RateLimit(&config.Config{})
	passed := 0
	h := limited(func(context.Context, *bot.Bot, *models.Update) { passed++ })

	for i := 0; i < config.RateLimitPerMinute; i++ {
		h(context.Background(), nil, messageFrom(100500, 100500))
	}
	assert.Equal(t, config.RateLimitPerMinute, passed)
}

func TestRateLimitAdminBypassesBudget(t *testing.T) {
	limited := middleware.RateLimit(&config.Config{AdminIDs: []int64{42}})
	passed := 0
	h := limited(func(context.Context, *bot.Bot, *models.Update) { passed++ })

	// Well over budget; the admin branch returns before any counting, so
	// the nil bot is never touched.
	total := config.RateLimitPerMinute + 5
	for i := 0; i < total; i++ {
		h(context.Background(), nil, messageFrom(42, 42))
	}
	assert.Equal(t, total, passed)
}

func TestRateLimitIgnoresCallbacks(t *testing.T) {
	limited := middleware.RateLimit(&config.Config{})
	passed := 0
	h := limited(func(context.Context, *bot.Bot, *models.Update) { passed++ })

	update := &models.Update{CallbackQuery: &models.CallbackQuery{Data: "menu_chats"}}
	for i := 0; i < config.RateLimitPerMinute+5; i++ {
		h(context.Background(), nil, update)
	}
	assert.Equal(t, config.RateLimitPerMinute+5, passed)
}

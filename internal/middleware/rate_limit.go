package middleware

import (
	"context"
	"sync"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/medgram/medgram/internal/config"
)

type rateBucket struct {
	windowStart time.Time
	count       int
}

// RateLimit returns middleware enforcing a per-chat message budget per
// minute. Counters live in memory; a restart simply resets them. Admins are
// exempt.
func RateLimit(cfg *config.Config) bot.Middleware {
	var mu sync.Mutex
	buckets := make(map[int64]*rateBucket)

	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			// Only rate limit messages, not callbacks.
			if update.Message == nil {
				next(ctx, b, update)
				return
			}
			if update.Message.From != nil && cfg.IsAdmin(update.Message.From.ID) {
				next(ctx, b, update)
				return
			}

			chatID := update.Message.Chat.ID
			now := time.Now()

			mu.Lock()
			bucket, ok := buckets[chatID]
			if !ok || now.Sub(bucket.windowStart) >= time.Minute {
				bucket = &rateBucket{windowStart: now}
				buckets[chatID] = bucket
			}
			bucket.count++
			limited := bucket.count > config.RateLimitPerMinute
			mu.Unlock()

			if limited {
				b.SendMessage(ctx, &bot.SendMessageParams{
					ChatID: chatID,
					Text:   "⏳ Слишком много запросов. Подождите немного.",
				})
				return
			}

			next(ctx, b, update)
		}
	}
}

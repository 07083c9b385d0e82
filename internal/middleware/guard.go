package middleware

import (
	"context"
	"log/slog"
	"sync"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/medgram/medgram/internal/config"
)

// HealthChecker reports backend reachability.
type HealthChecker interface {
	CheckServerHealth(ctx context.Context) error
}

// Guard gates protected screens behind two sequential checks: backend
// reachability (checked once per guard, not per interaction) and an
// authenticated session. The guard only reads session state.
type Guard struct {
	health HealthChecker

	once    sync.Once
	healthy bool

	// Fallback screens, injected so the guard stays free of presentation.
	OnMaintenance     bot.HandlerFunc
	OnLoading         bot.HandlerFunc
	OnUnauthenticated bot.HandlerFunc
}

func NewGuard(health HealthChecker) *Guard {
	return &Guard{health: health}
}

// Healthy runs the reachability probe on first use and caches the verdict
// for the guard's lifetime. The probe gets its own shorter deadline so a
// hanging backend resolves to unreachable instead of parking the first
// interaction. A panicking checker counts as unreachable.
func (g *Guard) Healthy(ctx context.Context) bool {
	g.once.Do(func() {
		probeCtx, cancel := context.WithTimeout(ctx, config.HealthCheckTimeout)
		defer cancel()

		defer func() {
			if r := recover(); r != nil {
				slog.Error("health check panicked", "panic", r)
				g.healthy = false
			}
		}()
		err := g.health.CheckServerHealth(probeCtx)
		if err != nil {
			slog.Warn("backend health check failed", "error", err)
		}
		g.healthy = err == nil
	})
	return g.healthy
}

// Protect wraps a handler with the two gates. Order matters: reachability
// first, then the authentication decision, which is only acted on once the
// session has finished loading.
func (g *Guard) Protect(next bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		if !g.Healthy(ctx) {
			if g.OnMaintenance != nil {
				g.OnMaintenance(ctx, b, update)
			}
			return
		}

		sess := GetSession(ctx)
		if sess.IsLoading() {
			if g.OnLoading != nil {
				g.OnLoading(ctx, b, update)
			}
			return
		}
		if !sess.IsAuthenticated() {
			if g.OnUnauthenticated != nil {
				g.OnUnauthenticated(ctx, b, update)
			}
			return
		}

		next(ctx, b, update)
	}
}

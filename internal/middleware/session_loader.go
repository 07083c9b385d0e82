package middleware

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/medgram/medgram/internal/domain"
	"github.com/medgram/medgram/internal/session"
)

type ctxKey string

const (
	SessionKey  ctxKey = "session"
	IdentityKey ctxKey = "identity"
)

// GetSession extracts the restored session from context.
func GetSession(ctx context.Context) *session.Session {
	s, ok := ctx.Value(SessionKey).(*session.Session)
	if !ok {
		return nil
	}
	return s
}

// GetIdentity extracts the host-asserted identity from context.
func GetIdentity(ctx context.Context) *domain.Identity {
	id, ok := ctx.Value(IdentityKey).(*domain.Identity)
	if !ok {
		return nil
	}
	return id
}

// SessionLoader returns middleware that resolves the sender's identity and
// restores their session into the update context. Restore runs once per user
// per process; later updates reuse the cached session.
func SessionLoader(store *session.Store) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			from := senderOf(update)
			if from == nil {
				next(ctx, b, update)
				return
			}

			identity := &domain.Identity{
				ID:           from.ID,
				FirstName:    from.FirstName,
				LastName:     from.LastName,
				Username:     from.Username,
				LanguageCode: from.LanguageCode,
			}
			sess := store.Restore(ctx, from.ID, identity)

			ctx = context.WithValue(ctx, IdentityKey, identity)
			ctx = context.WithValue(ctx, SessionKey, sess)
			next(ctx, b, update)
		}
	}
}

func senderOf(update *models.Update) *models.User {
	if update.Message != nil {
		return update.Message.From
	}
	if update.CallbackQuery != nil {
		return &update.CallbackQuery.From
	}
	return nil
}

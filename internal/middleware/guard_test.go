package middleware_test

import (
	"context"
	"errors"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/medgram/medgram/internal/domain"
	"github.com/medgram/medgram/internal/middleware"
	"github.com/medgram/medgram/internal/session"
	"github.com/stretchr/testify/assert"
)

type fakeHealth struct {
	err   error
	calls int

	hadDeadline bool
}

func (f *fakeHealth) CheckServerHealth(ctx context.Context) error {
	f.calls++
	_, f.hadDeadline = ctx.Deadline()
	return f.err
}

func ctxWithSession(sess *session.Session) context.Context {
	return context.WithValue(context.Background(), middleware.SessionKey, sess)
}

func authenticatedSession() *session.Session {
	return &session.Session{
		TelegramID: 100500,
		User:       &domain.User{ID: 3, TelegramID: "100500"},
		State:      session.StateAuthenticated,
	}
}

type guardCalls struct {
	next, maintenance, loading, unauthenticated int
}

func newTestGuard(health *fakeHealth) (*middleware.Guard, *guardCalls, bot.HandlerFunc) {
	g := middleware.NewGuard(health)
	calls := &guardCalls{}
	g.OnMaintenance = func(context.Context, *bot.Bot, *models.Update) { calls.maintenance++ }
	g.OnLoading = func(context.Context, *bot.Bot, *models.Update) { calls.loading++ }
	g.OnUnauthenticated = func(context.Context, *bot.Bot, *models.Update) { calls.unauthenticated++ }
	protected := g.Protect(func(context.Context, *bot.Bot, *models.Update) { calls.next++ })
	return g, calls, protected
}

func TestGuardPassesAuthenticated(t *testing.T) {
	health := &fakeHealth{}
	_, calls, protected := newTestGuard(health)

	protected(ctxWithSession(authenticatedSession()), nil, &models.Update{})
	assert.Equal(t, 1, calls.next)
	assert.Zero(t, calls.maintenance)
}

func TestGuardHealthCheckedOnce(t *testing.T) {
	health := &fakeHealth{}
	_, calls, protected := newTestGuard(health)

	ctx := ctxWithSession(authenticatedSession())
	protected(ctx, nil, &models.Update{})
	protected(ctx, nil, &models.Update{})
	protected(ctx, nil, &models.Update{})

	assert.Equal(t, 1, health.calls, "reachability is probed once per guard")
	assert.Equal(t, 3, calls.next)
}

func TestGuardProbeHasOwnDeadline(t *testing.T) {
	health := &fakeHealth{}
	_, _, protected := newTestGuard(health)

	// The update context carries no deadline; the probe must add one so a
	// hanging backend cannot park the first interaction forever.
	protected(ctxWithSession(authenticatedSession()), nil, &models.Update{})
	assert.True(t, health.hadDeadline)
}

func TestGuardMaintenanceBlocksEverything(t *testing.T) {
	health := &fakeHealth{err: errors.New("backend down")}
	_, calls, protected := newTestGuard(health)

	protected(ctxWithSession(authenticatedSession()), nil, &models.Update{})
	assert.Equal(t, 1, calls.maintenance)
	assert.Zero(t, calls.next)
	assert.Zero(t, calls.unauthenticated, "auth gate must not run while unreachable")
}

func TestGuardLoadingSession(t *testing.T) {
	_, calls, protected := newTestGuard(&fakeHealth{})

	protected(ctxWithSession(&session.Session{State: session.StateRestoring}), nil, &models.Update{})
	assert.Equal(t, 1, calls.loading)
	assert.Zero(t, calls.next)
	assert.Zero(t, calls.unauthenticated, "a loading session is not an auth verdict")
}

func TestGuardMissingSessionIsLoading(t *testing.T) {
	_, calls, protected := newTestGuard(&fakeHealth{})

	protected(context.Background(), nil, &models.Update{})
	assert.Equal(t, 1, calls.loading)
}

func TestGuardAnonymousSession(t *testing.T) {
	_, calls, protected := newTestGuard(&fakeHealth{})

	protected(ctxWithSession(&session.Session{State: session.StateAnonymous}), nil, &models.Update{})
	assert.Equal(t, 1, calls.unauthenticated)
	assert.Zero(t, calls.next)
}

func TestGuardVerdictIsSticky(t *testing.T) {
	health := &fakeHealth{err: errors.New("down")}
	_, calls, protected := newTestGuard(health)

	ctx := ctxWithSession(authenticatedSession())
	protected(ctx, nil, &models.Update{})

	// Backend recovery is not observed by the same guard instance.
	health.err = nil
	protected(ctx, nil, &models.Update{})
	assert.Equal(t, 2, calls.maintenance)
	assert.Zero(t, calls.next)
}

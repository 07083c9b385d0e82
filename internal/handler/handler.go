package handler

import (
	"github.com/go-telegram/bot"
	"github.com/medgram/medgram/internal/api"
	"github.com/medgram/medgram/internal/config"
	"github.com/medgram/medgram/internal/middleware"
	"github.com/medgram/medgram/internal/service"
	"github.com/medgram/medgram/internal/session"
	"github.com/medgram/medgram/internal/webapp"
)

// Handler holds all dependencies needed by command and callback handlers.
type Handler struct {
	bot         *bot.Bot
	cfg         *config.Config
	api         *api.Client
	sessions    *session.Store
	bridge      *webapp.Bridge
	invite      *service.InviteService
	infoPages   *service.InfoPageService
	guard       *middleware.Guard
	forms       *FormStore
	botUsername string
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Bot         *bot.Bot
	Cfg         *config.Config
	API         *api.Client
	Sessions    *session.Store
	Bridge      *webapp.Bridge
	Invite      *service.InviteService
	InfoPages   *service.InfoPageService
	Guard       *middleware.Guard
	BotUsername string
}

// New creates a new Handler from the provided dependencies and installs the
// guard's fallback screens.
func New(deps Deps) *Handler {
	h := &Handler{
		bot:         deps.Bot,
		cfg:         deps.Cfg,
		api:         deps.API,
		sessions:    deps.Sessions,
		bridge:      deps.Bridge,
		invite:      deps.Invite,
		infoPages:   deps.InfoPages,
		guard:       deps.Guard,
		forms:       NewFormStore(),
		botUsername: deps.BotUsername,
	}

	h.guard.OnMaintenance = h.showMaintenance
	h.guard.OnLoading = h.showLoading
	h.guard.OnUnauthenticated = h.showOnboardingRedirect

	return h
}

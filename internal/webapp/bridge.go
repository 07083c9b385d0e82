// Package webapp wraps the host platform's web-app handshake: it verifies
// the signed init data, exposes the asserted identity and theme, and relays
// theme-change notifications. Absence or corruption of host data never
// propagates as an error; the bridge simply reports a nil identity.
package webapp

import (
	"sync"

	"github.com/medgram/medgram/internal/config"
	"github.com/medgram/medgram/internal/domain"
)

// Theme carries the host platform's theme tokens (colors as hex strings).
type Theme map[string]string

type Bridge struct {
	botToken string

	once sync.Once

	mu        sync.RWMutex
	identity  *domain.Identity
	theme     Theme
	ready     bool
	listeners map[int]func(Theme)
	nextID    int
}

func NewBridge(botToken string) *Bridge {
	return &Bridge{
		botToken:  botToken,
		theme:     Theme{},
		listeners: make(map[int]func(Theme)),
	}
}

// Init runs the handshake exactly once per bridge. A failed or absent init
// payload leaves the identity nil but still marks the bridge ready: "ready"
// means the handshake was attempted, not that an identity is available.
// There are no retries; a fresh bridge is the way to try again.
func (b *Bridge) Init(rawInitData string) {
	b.once.Do(func() {
		identity, theme, err := ParseInitData(rawInitData, b.botToken, config.InitDataMaxAge)

		b.mu.Lock()
		defer b.mu.Unlock()
		b.ready = true
		if err != nil {
			b.theme = Theme{}
			return
		}
		b.identity = identity
		b.theme = theme
	})
}

func (b *Bridge) Ready() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.ready
}

func (b *Bridge) Identity() *domain.Identity {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.identity
}

func (b *Bridge) Theme() Theme {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.theme
}

// OnThemeChanged registers a listener and returns its unsubscribe function.
func (b *Bridge) OnThemeChanged(fn func(Theme)) (unsubscribe func()) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.listeners[id] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.listeners, id)
		b.mu.Unlock()
	}
}

// SetTheme applies a theme update pushed by the host and notifies listeners.
func (b *Bridge) SetTheme(theme Theme) {
	b.mu.Lock()
	b.theme = theme
	listeners := make([]func(Theme), 0, len(b.listeners))
	for _, fn := range b.listeners {
		listeners = append(listeners, fn)
	}
	b.mu.Unlock()

	for _, fn := range listeners {
		fn(theme)
	}
}

// Package session owns the authenticated-identity lifecycle: restoring a
// session from durable state at startup, reconciling it against the host
// platform identity, remote re-validation, and persisting/clearing state on
// login and logout. No other component writes the persisted session keys.
package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"sync"

	"github.com/medgram/medgram/internal/domain"
	"github.com/medgram/medgram/internal/repository"
)

// Persisted key names, one record per user keyed by Telegram id.
const (
	KeyIsLogin        = "isLogin"
	KeyUser           = "user"
	KeyPhoneNumber    = "phoneNumber"
	KeyTelegramData   = "telegramData"
	KeyOnboardingSeen = "onboardingSeen"
	KeyLanguage       = "language"
)

// sessionKeys are the four keys cleared together on logout or any
// restore/reconciliation failure.
var sessionKeys = []string{KeyIsLogin, KeyUser, KeyPhoneNumber, KeyTelegramData}

type State int

const (
	StateUnknown State = iota
	StateRestoring
	StateAuthenticated
	StateAnonymous
)

// Session is the client-local record of the current user, independent of the
// host platform's identity assertion.
type Session struct {
	TelegramID  int64
	User        *domain.User
	PhoneNumber string
	State       State
}

func (s *Session) IsAuthenticated() bool {
	return s != nil && s.State == StateAuthenticated && s.User != nil
}

// IsLoading reports whether an authentication decision would still be
// provisional.
func (s *Session) IsLoading() bool {
	return s == nil || s.State == StateUnknown || s.State == StateRestoring
}

// Gateway is the slice of the backend the store needs for restore and login.
type Gateway interface {
	FindUserByTelegramID(ctx context.Context, telegramID string) (*domain.User, error)
	Login(ctx context.Context, phoneNumber string) (*domain.User, error)
}

type Store struct {
	state repository.StateRepository
	gw    Gateway

	mu       sync.Mutex
	sessions map[int64]*Session
}

func NewStore(state repository.StateRepository, gw Gateway) *Store {
	return &Store{
		state:    state,
		gw:       gw,
		sessions: make(map[int64]*Session),
	}
}

// Get returns the in-memory session for the user, or nil before the first
// restore.
func (s *Store) Get(telegramID int64) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[telegramID]
}

// Restore resolves the session for a user exactly once per process. Updates
// are dispatched concurrently, so a caller that arrives while another restore
// for the same user is in flight gets the same in-flight session (still in
// StateRestoring, which the guard treats as loading) rather than starting a
// second restore. The persisted host-identity snapshot is only trusted when
// its id matches the identity the host currently reports; with no live
// identity, a persisted authenticated flag plus a parseable user record is
// trusted without a network round-trip. Any failure on the verified path
// clears all session keys and yields an anonymous session.
func (s *Store) Restore(ctx context.Context, telegramID int64, identity *domain.Identity) *Session {
	s.mu.Lock()
	if existing, ok := s.sessions[telegramID]; ok {
		s.mu.Unlock()
		return existing
	}
	sess := &Session{TelegramID: telegramID, State: StateRestoring}
	s.sessions[telegramID] = sess
	s.mu.Unlock()

	phone := s.get(ctx, telegramID, KeyPhoneNumber)
	snapshot := s.get(ctx, telegramID, KeyTelegramData)
	savedUser := s.get(ctx, telegramID, KeyUser)
	loginFlag := s.get(ctx, telegramID, KeyIsLogin)

	switch {
	case phone != "" && snapshot != "" && identity != nil:
		var saved domain.Identity
		if err := json.Unmarshal([]byte(snapshot), &saved); err != nil || saved.ID != identity.ID {
			s.clearAndFinish(ctx, sess)
			return sess
		}
		if _, err := s.gw.FindUserByTelegramID(ctx, strconv.FormatInt(identity.ID, 10)); err != nil {
			s.clearAndFinish(ctx, sess)
			return sess
		}
		user, err := s.gw.Login(ctx, phone)
		if err != nil {
			s.clearAndFinish(ctx, sess)
			return sess
		}
		s.finishAuthenticated(ctx, sess, user, phone, identity)
		return sess

	case loginFlag == "true" && savedUser != "":
		var user domain.User
		if err := json.Unmarshal([]byte(savedUser), &user); err != nil {
			s.clearAndFinish(ctx, sess)
			return sess
		}
		s.mu.Lock()
		sess.User = &user
		sess.PhoneNumber = user.PhoneNumber
		sess.State = StateAuthenticated
		s.mu.Unlock()
		return sess

	default:
		s.mu.Lock()
		sess.State = StateAnonymous
		s.mu.Unlock()
		return sess
	}
}

// Login authenticates by phone number. Persisted state is only touched on
// success.
func (s *Store) Login(ctx context.Context, telegramID int64, phoneNumber string, identity *domain.Identity) (*domain.User, error) {
	user, err := s.gw.Login(ctx, phoneNumber)
	if err != nil {
		return nil, err
	}

	sess := &Session{
		TelegramID:  telegramID,
		User:        user,
		PhoneNumber: phoneNumber,
		State:       StateAuthenticated,
	}
	s.mu.Lock()
	s.sessions[telegramID] = sess
	s.mu.Unlock()

	s.persist(ctx, sess, identity)
	return user, nil
}

// Logout clears the in-memory session and every persisted session key.
// Nothing here can fail loudly: storage trouble is logged and swallowed.
func (s *Store) Logout(ctx context.Context, telegramID int64) {
	s.mu.Lock()
	s.sessions[telegramID] = &Session{TelegramID: telegramID, State: StateAnonymous}
	s.mu.Unlock()

	s.clear(ctx, telegramID)
}

// Refresh replaces the in-memory user record and its persisted copy after an
// out-of-band change such as an avatar update.
func (s *Store) Refresh(ctx context.Context, telegramID int64, user *domain.User) {
	s.mu.Lock()
	sess, ok := s.sessions[telegramID]
	if !ok || !sess.IsAuthenticated() {
		s.mu.Unlock()
		return
	}
	sess.User = user
	s.mu.Unlock()

	if raw, err := json.Marshal(user); err == nil {
		s.set(ctx, telegramID, KeyUser, string(raw))
	}
}

// OnboardingSeen and Language are auxiliary preference keys. They live next
// to the session keys but are not cleared on logout.

func (s *Store) OnboardingSeen(ctx context.Context, telegramID int64) bool {
	return s.get(ctx, telegramID, KeyOnboardingSeen) == "true"
}

func (s *Store) MarkOnboardingSeen(ctx context.Context, telegramID int64) {
	s.set(ctx, telegramID, KeyOnboardingSeen, "true")
}

func (s *Store) Language(ctx context.Context, telegramID int64) string {
	return s.get(ctx, telegramID, KeyLanguage)
}

func (s *Store) SetLanguage(ctx context.Context, telegramID int64, lang string) {
	s.set(ctx, telegramID, KeyLanguage, lang)
}

func (s *Store) finishAuthenticated(ctx context.Context, sess *Session, user *domain.User, phone string, identity *domain.Identity) {
	s.mu.Lock()
	sess.User = user
	sess.PhoneNumber = phone
	sess.State = StateAuthenticated
	s.mu.Unlock()

	s.persist(ctx, sess, identity)
}

func (s *Store) clearAndFinish(ctx context.Context, sess *Session) {
	s.clear(ctx, sess.TelegramID)
	s.mu.Lock()
	sess.User = nil
	sess.PhoneNumber = ""
	sess.State = StateAnonymous
	s.mu.Unlock()
}

func (s *Store) persist(ctx context.Context, sess *Session, identity *domain.Identity) {
	s.set(ctx, sess.TelegramID, KeyIsLogin, "true")
	if raw, err := json.Marshal(sess.User); err == nil {
		s.set(ctx, sess.TelegramID, KeyUser, string(raw))
	}
	s.set(ctx, sess.TelegramID, KeyPhoneNumber, sess.PhoneNumber)
	if identity != nil {
		if raw, err := json.Marshal(identity); err == nil {
			s.set(ctx, sess.TelegramID, KeyTelegramData, string(raw))
		}
	}
}

func (s *Store) clear(ctx context.Context, telegramID int64) {
	if err := s.state.Delete(ctx, telegramID, sessionKeys...); err != nil {
		slog.Debug("clear session state", "error", err, "telegram_id", telegramID)
	}
}

// get treats storage unavailability as absence of data.
func (s *Store) get(ctx context.Context, telegramID int64, key string) string {
	value, err := s.state.Get(ctx, telegramID, key)
	if err != nil {
		slog.Debug("read session state", "error", err, "key", key)
		return ""
	}
	return value
}

func (s *Store) set(ctx context.Context, telegramID int64, key, value string) {
	if err := s.state.Set(ctx, telegramID, key, value); err != nil {
		slog.Debug("write session state", "error", err, "key", key)
	}
}

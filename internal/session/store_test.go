package session_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/medgram/medgram/internal/domain"
	"github.com/medgram/medgram/internal/repository"
	"github.com/medgram/medgram/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	findErr  error
	loginErr error
	user     *domain.User

	findCalls  int
	loginCalls int
}

func (g *fakeGateway) FindUserByTelegramID(_ context.Context, _ string) (*domain.User, error) {
	g.findCalls++
	if g.findErr != nil {
		return nil, g.findErr
	}
	return g.user, nil
}

func (g *fakeGateway) Login(_ context.Context, _ string) (*domain.User, error) {
	g.loginCalls++
	if g.loginErr != nil {
		return nil, g.loginErr
	}
	return g.user, nil
}

func testUser() *domain.User {
	return &domain.User{
		ID:          3,
		TelegramID:  "100500",
		FirstName:   "Анна",
		PhoneNumber: "+77001234567",
		Role:        domain.RolePatient,
	}
}

func seedSession(t *testing.T, repo *repository.MemoryStateRepository, telegramID, identityID int64) {
	t.Helper()
	ctx := context.Background()

	userJSON, err := json.Marshal(testUser())
	require.NoError(t, err)
	snapshot, err := json.Marshal(&domain.Identity{ID: identityID, FirstName: "Анна"})
	require.NoError(t, err)

	require.NoError(t, repo.Set(ctx, telegramID, session.KeyIsLogin, "true"))
	require.NoError(t, repo.Set(ctx, telegramID, session.KeyUser, string(userJSON)))
	require.NoError(t, repo.Set(ctx, telegramID, session.KeyPhoneNumber, "+77001234567"))
	require.NoError(t, repo.Set(ctx, telegramID, session.KeyTelegramData, string(snapshot)))
}

func TestRestoreVerifiedPath(t *testing.T) {
	repo := repository.NewMemoryStateRepository()
	gw := &fakeGateway{user: testUser()}
	store := session.NewStore(repo, gw)
	seedSession(t, repo, 100500, 100500)

	sess := store.Restore(context.Background(), 100500, &domain.Identity{ID: 100500})
	require.True(t, sess.IsAuthenticated())
	assert.Equal(t, "+77001234567", sess.PhoneNumber)
	assert.Equal(t, 1, gw.findCalls)
	assert.Equal(t, 1, gw.loginCalls)
}

func TestRestoreSnapshotMismatchClearsEverything(t *testing.T) {
	repo := repository.NewMemoryStateRepository()
	gw := &fakeGateway{user: testUser()}
	store := session.NewStore(repo, gw)
	seedSession(t, repo, 100500, 999)

	sess := store.Restore(context.Background(), 100500, &domain.Identity{ID: 100500})
	assert.False(t, sess.IsAuthenticated())
	assert.False(t, sess.IsLoading())
	assert.Zero(t, gw.findCalls, "no network call for a mismatched snapshot")
	assert.Empty(t, repo.Keys(100500), "all session keys must be cleared")
}

func TestRestoreCachedPathSkipsNetwork(t *testing.T) {
	repo := repository.NewMemoryStateRepository()
	gw := &fakeGateway{user: testUser()}
	store := session.NewStore(repo, gw)
	ctx := context.Background()

	userJSON, err := json.Marshal(testUser())
	require.NoError(t, err)
	require.NoError(t, repo.Set(ctx, 100500, session.KeyIsLogin, "true"))
	require.NoError(t, repo.Set(ctx, 100500, session.KeyUser, string(userJSON)))

	// No live identity: the persisted record is trusted as-is.
	sess := store.Restore(ctx, 100500, nil)
	require.True(t, sess.IsAuthenticated())
	assert.Zero(t, gw.findCalls)
	assert.Zero(t, gw.loginCalls)
}

func TestRestoreCachedPathCorruptUserClears(t *testing.T) {
	repo := repository.NewMemoryStateRepository()
	store := session.NewStore(repo, &fakeGateway{})
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, 100500, session.KeyIsLogin, "true"))
	require.NoError(t, repo.Set(ctx, 100500, session.KeyUser, "{not json"))

	sess := store.Restore(ctx, 100500, nil)
	assert.False(t, sess.IsAuthenticated())
	assert.Empty(t, repo.Keys(100500))
}

func TestRestoreLoginFailureClears(t *testing.T) {
	repo := repository.NewMemoryStateRepository()
	gw := &fakeGateway{user: testUser(), loginErr: errors.New("login failed")}
	store := session.NewStore(repo, gw)
	seedSession(t, repo, 100500, 100500)

	sess := store.Restore(context.Background(), 100500, &domain.Identity{ID: 100500})
	assert.False(t, sess.IsAuthenticated())
	assert.Empty(t, repo.Keys(100500))
}

func TestRestoreEmptyStateIsAnonymous(t *testing.T) {
	repo := repository.NewMemoryStateRepository()
	gw := &fakeGateway{}
	store := session.NewStore(repo, gw)

	sess := store.Restore(context.Background(), 100500, &domain.Identity{ID: 100500})
	assert.False(t, sess.IsAuthenticated())
	assert.False(t, sess.IsLoading())
	assert.Zero(t, gw.loginCalls)
}

// blockingGateway parks Login until released so a second update can arrive
// while the first restore is still in flight.
type blockingGateway struct {
	user    *domain.User
	started chan struct{}
	release chan struct{}

	startOnce  sync.Once
	loginCalls atomic.Int32
}

func (g *blockingGateway) FindUserByTelegramID(_ context.Context, _ string) (*domain.User, error) {
	return g.user, nil
}

func (g *blockingGateway) Login(_ context.Context, _ string) (*domain.User, error) {
	g.loginCalls.Add(1)
	g.startOnce.Do(func() { close(g.started) })
	<-g.release
	return g.user, nil
}

func TestRestoreConcurrentUpdatesShareOneRestore(t *testing.T) {
	repo := repository.NewMemoryStateRepository()
	gw := &blockingGateway{
		user:    testUser(),
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	store := session.NewStore(repo, gw)
	seedSession(t, repo, 100500, 100500)

	first := make(chan *session.Session)
	go func() {
		first <- store.Restore(context.Background(), 100500, &domain.Identity{ID: 100500})
	}()
	<-gw.started

	// A second update for the same user mid-restore must not start another
	// restore; it gets the in-flight session, which reads as loading.
	second := store.Restore(context.Background(), 100500, &domain.Identity{ID: 100500})
	assert.True(t, second.IsLoading())

	close(gw.release)
	sess := <-first
	assert.Same(t, sess, second)
	assert.True(t, sess.IsAuthenticated())
	assert.Equal(t, int32(1), gw.loginCalls.Load())
}

func TestRestoreRunsOncePerUser(t *testing.T) {
	repo := repository.NewMemoryStateRepository()
	gw := &fakeGateway{user: testUser()}
	store := session.NewStore(repo, gw)
	seedSession(t, repo, 100500, 100500)

	first := store.Restore(context.Background(), 100500, &domain.Identity{ID: 100500})
	second := store.Restore(context.Background(), 100500, &domain.Identity{ID: 100500})
	assert.Same(t, first, second)
	assert.Equal(t, 1, gw.loginCalls)
}

func TestLoginPersistsSessionKeys(t *testing.T) {
	repo := repository.NewMemoryStateRepository()
	gw := &fakeGateway{user: testUser()}
	store := session.NewStore(repo, gw)
	ctx := context.Background()

	user, err := store.Login(ctx, 100500, "+77001234567", &domain.Identity{ID: 100500})
	require.NoError(t, err)
	assert.Equal(t, "Анна", user.FirstName)

	assert.ElementsMatch(t, []string{
		session.KeyIsLogin,
		session.KeyUser,
		session.KeyPhoneNumber,
		session.KeyTelegramData,
	}, repo.Keys(100500))
}

func TestLoginFailureLeavesStateUntouched(t *testing.T) {
	repo := repository.NewMemoryStateRepository()
	gw := &fakeGateway{loginErr: errors.New("wrong phone")}
	store := session.NewStore(repo, gw)

	_, err := store.Login(context.Background(), 100500, "+7700", nil)
	require.Error(t, err)
	assert.Empty(t, repo.Keys(100500))
}

func TestLogoutClearsSessionKeys(t *testing.T) {
	repo := repository.NewMemoryStateRepository()
	gw := &fakeGateway{user: testUser()}
	store := session.NewStore(repo, gw)
	ctx := context.Background()

	_, err := store.Login(ctx, 100500, "+77001234567", &domain.Identity{ID: 100500})
	require.NoError(t, err)

	store.Logout(ctx, 100500)
	assert.Empty(t, repo.Keys(100500))
	assert.False(t, store.Get(100500).IsAuthenticated())
}

func TestRestoreAfterLogoutIsAnonymous(t *testing.T) {
	repo := repository.NewMemoryStateRepository()
	gw := &fakeGateway{user: testUser()}
	ctx := context.Background()

	store := session.NewStore(repo, gw)
	_, err := store.Login(ctx, 100500, "+77001234567", &domain.Identity{ID: 100500})
	require.NoError(t, err)
	store.Logout(ctx, 100500)

	// A fresh store over the same persisted state models a process restart.
	restarted := session.NewStore(repo, gw)
	sess := restarted.Restore(ctx, 100500, &domain.Identity{ID: 100500})
	assert.False(t, sess.IsAuthenticated())
	assert.False(t, sess.IsLoading())
}

func TestLogoutKeepsPreferenceKeys(t *testing.T) {
	repo := repository.NewMemoryStateRepository()
	gw := &fakeGateway{user: testUser()}
	store := session.NewStore(repo, gw)
	ctx := context.Background()

	store.MarkOnboardingSeen(ctx, 100500)
	store.SetLanguage(ctx, 100500, "ru")
	_, err := store.Login(ctx, 100500, "+77001234567", nil)
	require.NoError(t, err)

	store.Logout(ctx, 100500)
	assert.True(t, store.OnboardingSeen(ctx, 100500))
	assert.Equal(t, "ru", store.Language(ctx, 100500))
}

func TestRefreshUpdatesUser(t *testing.T) {
	repo := repository.NewMemoryStateRepository()
	gw := &fakeGateway{user: testUser()}
	store := session.NewStore(repo, gw)
	ctx := context.Background()

	_, err := store.Login(ctx, 100500, "+77001234567", nil)
	require.NoError(t, err)

	updated := testUser()
	updated.PhotoURL = "https://backend.example/uploads/avatar.jpg"
	store.Refresh(ctx, 100500, updated)

	assert.Equal(t, updated.PhotoURL, store.Get(100500).User.PhotoURL)

	raw, err := repo.Get(ctx, 100500, session.KeyUser)
	require.NoError(t, err)
	var persisted domain.User
	require.NoError(t, json.Unmarshal([]byte(raw), &persisted))
	assert.Equal(t, updated.PhotoURL, persisted.PhotoURL)
}

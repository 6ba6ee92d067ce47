package session

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"
	"time"

	"myhair/internal/cache"
	apperrors "myhair/internal/errors"
	"myhair/internal/mocks"
	"myhair/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	amal = &model.Profile{ID: 7, Name: "Amal", Type: model.UserCoiffeur}
	sara = &model.Profile{ID: 1, Name: "Sara", Type: model.UserClient}
)

func unauthorized() error { return apperrors.NewAPIError(401, "Not authenticated") }

func unreachable() error {
	return apperrors.NetworkError("GET /api/auth/check", &net.OpError{Op: "dial", Err: errors.New("connection refused")})
}

type fixture struct {
	backend *mocks.MockBackend
	store   cache.Store
	cache   *cache.ProfileCache
	session *Store
	snaps   []Snapshot
	mu      sync.Mutex
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		backend: mocks.NewMockBackend(ctrl),
		store:   cache.NewMemoryStore(),
	}
	f.cache = cache.NewProfileCache(f.store)
	f.session = NewStore(f.backend, f.cache)
	f.session.OnChange(func(s Snapshot) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.snaps = append(f.snaps, s)
	})
	return f
}

func (f *fixture) snapshots() []Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Snapshot(nil), f.snaps...)
}

func (f *fixture) cached(t *testing.T) *model.Profile {
	t.Helper()
	p, err := f.cache.Load()
	require.NoError(t, err)
	return p
}

func countLoadingFlips(snaps []Snapshot) int {
	flips, prev := 0, true
	for _, s := range snaps {
		if prev && !s.Loading {
			flips++
		}
		prev = s.Loading
	}
	return flips
}

func TestNewStore_StartsLoading(t *testing.T) {
	f := newFixture(t)
	snap := f.session.Snapshot()
	assert.True(t, snap.Loading)
	assert.Nil(t, snap.User)
	assert.Equal(t, CauseBoot, snap.Cause)
}

func TestRestore_CachedStylistConfirmed(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.cache.Save(amal))
	f.backend.EXPECT().CheckSession(gomock.Any()).Return(amal.Clone(), nil)

	require.NoError(t, f.session.Restore(context.Background()))

	snaps := f.snapshots()
	require.Len(t, snaps, 2)
	assert.Equal(t, CauseCache, snaps[0].Cause, "cached profile is shown before the check")
	assert.True(t, snaps[0].Loading)
	assert.Equal(t, amal, snaps[0].User)
	assert.Equal(t, CauseRestore, snaps[1].Cause)
	assert.False(t, snaps[1].Loading)

	assert.True(t, f.session.User().IsStylist())
	assert.False(t, f.session.Loading())
	assert.Equal(t, amal, f.cached(t))
}

func TestRestore_ServerOverwritesCache(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.cache.Save(amal))
	renamed := &model.Profile{ID: 7, Name: "Amal B.", Type: model.UserCoiffeur, Image: "/a.png"}
	f.backend.EXPECT().CheckSession(gomock.Any()).Return(renamed, nil)

	require.NoError(t, f.session.Restore(context.Background()))
	assert.Equal(t, renamed, f.session.User())
	assert.Equal(t, renamed, f.cached(t))
}

func TestRestore_NoCacheUnauthorized(t *testing.T) {
	f := newFixture(t)
	f.backend.EXPECT().CheckSession(gomock.Any()).Return(nil, unauthorized())

	require.NoError(t, f.session.Restore(context.Background()))

	snap := f.session.Snapshot()
	assert.Nil(t, snap.User)
	assert.False(t, snap.Loading)
	assert.Nil(t, f.cached(t))
	assert.Equal(t, 1, countLoadingFlips(f.snapshots()))
}

func TestRestore_FailureClearsCachedUser(t *testing.T) {
	for name, err := range map[string]error{
		"network":      unreachable(),
		"unauthorized": unauthorized(),
	} {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			require.NoError(t, f.cache.Save(sara))
			f.backend.EXPECT().CheckSession(gomock.Any()).Return(nil, err)

			require.NoError(t, f.session.Restore(context.Background()))
			assert.Nil(t, f.session.User())
			assert.False(t, f.session.Loading())
			assert.Nil(t, f.cached(t))
		})
	}
}

func TestRestore_EmptyAnswerIsLoggedOut(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.cache.Save(sara))
	f.backend.EXPECT().CheckSession(gomock.Any()).Return(nil, nil)

	require.NoError(t, f.session.Restore(context.Background()))
	assert.Nil(t, f.session.User())
	assert.Nil(t, f.cached(t))
}

func TestRestore_CorruptCacheIsCleared(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.Set(cache.ProfileKey, "{not json"))
	f.backend.EXPECT().CheckSession(gomock.Any()).Return(nil, unauthorized())

	require.NoError(t, f.session.Restore(context.Background()))
	_, ok, _ := f.store.Get(cache.ProfileKey)
	assert.False(t, ok)
	for _, s := range f.snapshots() {
		assert.NotEqual(t, CauseCache, s.Cause)
	}
}

func TestRestore_OnlyOnce(t *testing.T) {
	f := newFixture(t)
	f.backend.EXPECT().CheckSession(gomock.Any()).Return(nil, unauthorized()).Times(1)

	require.NoError(t, f.session.Restore(context.Background()))
	assert.ErrorIs(t, f.session.Restore(context.Background()), ErrAlreadyRestored)
}

func TestLogin_Success(t *testing.T) {
	f := newFixture(t)
	f.backend.EXPECT().Login(gomock.Any(), "sara@client.com", "password").Return(sara.Clone(), nil)

	res := f.session.Login(context.Background(), "sara@client.com", "password")
	assert.True(t, res.Success)
	assert.Equal(t, sara, res.User)
	assert.Empty(t, res.Error)
	assert.Equal(t, sara, f.session.User())
	assert.Equal(t, sara, f.cached(t))
	assert.Equal(t, CauseLogin, f.session.Snapshot().Cause)
}

func TestLogin_InvalidCredentialsLeaveUserUntouched(t *testing.T) {
	f := newFixture(t)
	f.backend.EXPECT().Login(gomock.Any(), "sara@client.com", "password").Return(sara.Clone(), nil)
	f.backend.EXPECT().Login(gomock.Any(), "a@b.com", "wrong").Return(nil, apperrors.NewAPIError(401, "Invalid credentials"))

	f.session.Login(context.Background(), "sara@client.com", "password")
	before := len(f.snapshots())

	res := f.session.Login(context.Background(), "a@b.com", "wrong")
	assert.Equal(t, Result{Success: false, Error: "Invalid credentials", Kind: apperrors.KindAuth}, res)
	assert.Equal(t, sara, f.session.User())
	assert.Equal(t, sara, f.cached(t))
	assert.Len(t, f.snapshots(), before, "a failed login notifies nobody")
}

func TestLogin_Failures(t *testing.T) {
	tests := []struct {
		name   string
		user   *model.Profile
		err    error
		reason string
		kind   apperrors.Kind
	}{
		{"unreachable backend", nil, unreachable(), "Network error", apperrors.KindNetwork},
		{"error status without reason", nil, apperrors.NewAPIError(500, ""), "Network error", apperrors.KindNetwork},
		{"no profile in answer", nil, nil, "Unknown error", apperrors.KindUnknown},
		{"unexpected error", nil, errors.New("boom"), "Unknown error", apperrors.KindUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.backend.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Return(tt.user, tt.err)

			res := f.session.Login(context.Background(), "a@b.com", "pw")
			assert.False(t, res.Success)
			assert.Equal(t, tt.reason, res.Error)
			assert.Equal(t, tt.kind, res.Kind)
			assert.Nil(t, f.session.User())
		})
	}
}

func TestLogin_PanicBecomesResult(t *testing.T) {
	f := newFixture(t)
	f.backend.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, string, string) (*model.Profile, error) { panic("decoder exploded") })

	res := f.session.Login(context.Background(), "a@b.com", "pw")
	assert.False(t, res.Success)
	assert.Equal(t, "Unknown error", res.Error)
	assert.Equal(t, apperrors.KindUnknown, res.Kind)
	assert.Nil(t, f.session.User())
}

type explodingCache struct{ noCache }

func (explodingCache) Save(*model.Profile) error { panic("disk vanished") }

func TestLogin_CachePanicReleasesLock(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mocks.NewMockBackend(ctrl)
	backend.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Return(sara.Clone(), nil)
	s := NewStore(backend, explodingCache{})

	assert.PanicsWithValue(t, "disk vanished", func() {
		s.Login(context.Background(), "sara@client.com", "password")
	})

	done := make(chan Snapshot, 1)
	go func() { done <- s.Snapshot() }()
	select {
	case snap := <-done:
		require.NotNil(t, snap.User)
		assert.Equal(t, sara.ID, snap.User.ID)
	case <-time.After(time.Second):
		t.Fatal("store still locked after a panicking cache")
	}
}

func TestLogout_LocalWinsWhenBackendUnreachable(t *testing.T) {
	f := newFixture(t)
	f.backend.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Return(amal.Clone(), nil)
	f.backend.EXPECT().Logout(gomock.Any()).Return(unreachable())

	f.session.Login(context.Background(), "amal@salon.com", "password")
	f.session.Logout(context.Background())

	snap := f.session.Snapshot()
	assert.Nil(t, snap.User)
	assert.Equal(t, CauseLogout, snap.Cause)
	assert.Nil(t, f.cached(t))
}

// blockingCheck makes CheckSession wait until release is closed.
func blockingCheck(f *fixture, p *model.Profile, err error) (started, release chan struct{}) {
	started, release = make(chan struct{}), make(chan struct{})
	f.backend.EXPECT().CheckSession(gomock.Any()).DoAndReturn(func(context.Context) (*model.Profile, error) {
		close(started)
		<-release
		return p, err
	})
	return started, release
}

func restoreAsync(f *fixture) <-chan error {
	done := make(chan error, 1)
	go func() { done <- f.session.Restore(context.Background()) }()
	return done
}

func waitDone(t *testing.T, done <-chan error) {
	t.Helper()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("restore did not finish")
	}
}

func TestRestore_LateAnswerDoesNotOverwriteLogin(t *testing.T) {
	f := newFixture(t)
	started, release := blockingCheck(f, nil, unauthorized())
	f.backend.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Return(sara.Clone(), nil)

	done := restoreAsync(f)
	<-started
	res := f.session.Login(context.Background(), "sara@client.com", "password")
	require.True(t, res.Success)
	close(release)
	waitDone(t, done)

	snap := f.session.Snapshot()
	assert.Equal(t, sara, snap.User, "stale 401 is discarded")
	assert.False(t, snap.Loading, "loading still resolves")
	assert.Equal(t, sara, f.cached(t))
	assert.Equal(t, 1, countLoadingFlips(f.snapshots()))
}

func TestRestore_LateAnswerDoesNotOverwriteLogout(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.cache.Save(amal))
	started, release := blockingCheck(f, amal.Clone(), nil)
	f.backend.EXPECT().Logout(gomock.Any()).Return(nil)

	done := restoreAsync(f)
	<-started
	f.session.Logout(context.Background())
	close(release)
	waitDone(t, done)

	assert.Nil(t, f.session.User())
	assert.False(t, f.session.Loading())
	assert.Nil(t, f.cached(t))
}

func TestRestore_FailedLoginDoesNotInvalidateCheck(t *testing.T) {
	f := newFixture(t)
	started, release := blockingCheck(f, amal.Clone(), nil)
	f.backend.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, apperrors.NewAPIError(401, "Invalid credentials"))

	done := restoreAsync(f)
	<-started
	res := f.session.Login(context.Background(), "a@b.com", "wrong")
	require.False(t, res.Success)
	close(release)
	waitDone(t, done)

	assert.Equal(t, amal, f.session.User())
}

func TestRefresh(t *testing.T) {
	f := newFixture(t)
	f.backend.EXPECT().CheckSession(gomock.Any()).Return(nil, unauthorized())
	require.NoError(t, f.session.Restore(context.Background()))

	f.backend.EXPECT().CheckSession(gomock.Any()).Return(sara.Clone(), nil)
	f.session.Refresh(context.Background())
	snap := f.session.Snapshot()
	assert.Equal(t, sara, snap.User)
	assert.Equal(t, CauseRefresh, snap.Cause)
	assert.False(t, snap.Loading)
	assert.Equal(t, sara, f.cached(t))
}

func TestRefresh_DoesNotResolveLoading(t *testing.T) {
	f := newFixture(t)
	f.backend.EXPECT().CheckSession(gomock.Any()).Return(sara.Clone(), nil)

	f.session.Refresh(context.Background())
	assert.True(t, f.session.Loading())
	assert.Equal(t, sara, f.session.User())
}

func TestOnChange_Unsubscribe(t *testing.T) {
	f := newFixture(t)
	calls := 0
	cancel := f.session.OnChange(func(Snapshot) { calls++ })
	f.backend.EXPECT().Logout(gomock.Any()).Return(nil).Times(2)

	f.session.Logout(context.Background())
	cancel()
	f.session.Logout(context.Background())
	assert.Equal(t, 1, calls)
}

func TestSnapshot_IsACopy(t *testing.T) {
	f := newFixture(t)
	f.backend.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Return(sara.Clone(), nil)
	f.session.Login(context.Background(), "sara@client.com", "password")

	u := f.session.User()
	u.Name = "changed"
	assert.Equal(t, "Sara", f.session.User().Name)
}

func TestNewStore_NilCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mocks.NewMockBackend(ctrl)
	backend.EXPECT().CheckSession(gomock.Any()).Return(sara.Clone(), nil)

	s := NewStore(backend, nil)
	require.NoError(t, s.Restore(context.Background()))
	assert.Equal(t, sara, s.User())
}

// Package session owns the answer to "who is logged in".
//
// A Store resolves the session in two phases at boot: the locally cached
// profile is shown right away, then the backend's session check overwrites
// or clears it. Login and logout are explicit actions that always apply;
// restore and refresh are passive resolutions that are discarded when an
// explicit action completed while they were in flight.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	apperrors "myhair/internal/errors"
	"myhair/internal/model"
	"myhair/internal/telemetry"
)

// ErrAlreadyRestored is returned by a second call to Restore.
var ErrAlreadyRestored = errors.New("session already restored")

// Backend is the part of the API the store needs.
type Backend interface {
	// CheckSession returns the session's profile. A nil profile with a
	// nil error means the backend answered without one.
	CheckSession(ctx context.Context) (*model.Profile, error)
	Login(ctx context.Context, email, password string) (*model.Profile, error)
	Logout(ctx context.Context) error
}

// Cache persists the last known profile across restarts.
type Cache interface {
	Load() (*model.Profile, error)
	Save(p *model.Profile) error
	Clear() error
}

// Cause names the operation that produced a snapshot.
type Cause string

const (
	CauseBoot    Cause = "boot"
	CauseCache   Cause = "cache"
	CauseRestore Cause = "restore"
	CauseRefresh Cause = "refresh"
	CauseLogin   Cause = "login"
	CauseLogout  Cause = "logout"
)

// Snapshot is a consistent copy of the session state.
type Snapshot struct {
	User    *model.Profile
	Loading bool
	Cause   Cause
}

// Result is the outcome of Login. Error is a human-readable reason and is
// empty on success.
type Result struct {
	Success bool
	User    *model.Profile
	Error   string
	Kind    apperrors.Kind
}

// Store is the single owner of the session user. It is safe for
// concurrent use.
type Store struct {
	backend Backend
	cache   Cache
	logger  *slog.Logger

	mu         sync.Mutex
	user       *model.Profile
	loading    bool
	cause      Cause
	generation uint64
	restored   bool
	nextID     int
	listeners  map[int]func(Snapshot)
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the store's logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// NewStore creates a store in the loading state. A nil cache disables
// persistence.
func NewStore(backend Backend, cache Cache, opts ...Option) *Store {
	if cache == nil {
		cache = noCache{}
	}
	s := &Store{
		backend:   backend,
		cache:     cache,
		logger:    slog.Default(),
		loading:   true,
		cause:     CauseBoot,
		listeners: make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// User returns a copy of the session user, or nil.
func (s *Store) User() *model.Profile {
	return s.Snapshot().User
}

// Loading reports whether the boot resolution is still pending.
func (s *Store) Loading() bool {
	return s.Snapshot().Loading
}

// OnChange registers fn to run after every state change. fn runs on the
// goroutine that made the change, outside the store's lock. The returned
// func unregisters it.
func (s *Store) OnChange(fn func(Snapshot)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Restore runs the boot resolution. It must be called once; later calls
// return ErrAlreadyRestored and change nothing. Failures are not returned:
// they resolve to a logged-out session.
func (s *Store) Restore(ctx context.Context) error {
	s.mu.Lock()
	if s.restored {
		s.mu.Unlock()
		return ErrAlreadyRestored
	}
	s.restored = true
	s.mu.Unlock()

	cached, err := s.cache.Load()
	if err != nil {
		s.logger.Debug("discarding unreadable cached profile", "error", err)
		if err := s.cache.Clear(); err != nil {
			s.logger.Warn("failed to clear cached profile", "error", err)
		}
		cached = nil
	}

	s.mu.Lock()
	gen := s.generation
	var listeners []func(Snapshot)
	var snap Snapshot
	if cached != nil && gen == 0 && s.user == nil {
		s.user = cached
		s.cause = CauseCache
		snap, listeners = s.snapshotLocked(), s.listenersLocked()
	}
	s.mu.Unlock()
	notify(listeners, snap)

	s.resolve(ctx, gen, CauseRestore, true)
	return nil
}

// Refresh re-runs the session check without touching Loading.
func (s *Store) Refresh(ctx context.Context) {
	s.mu.Lock()
	gen := s.generation
	s.mu.Unlock()
	s.resolve(ctx, gen, CauseRefresh, false)
}

// resolve applies the backend's session check if no explicit action
// completed since gen was captured.
func (s *Store) resolve(ctx context.Context, gen uint64, cause Cause, finishLoading bool) {
	profile, err := s.backend.CheckSession(ctx)
	if err == nil && !profile.Valid() {
		profile = nil
	}

	snap, listeners, outcome := s.applyResolution(gen, profile, err, cause, finishLoading)

	telemetry.TrackSessionResolution(string(cause), outcome)
	notify(listeners, snap)
}

// applyResolution stores a session check result unless an explicit action
// bumped the generation since gen was captured.
func (s *Store) applyResolution(gen uint64, profile *model.Profile, err error, cause Cause, finishLoading bool) (Snapshot, []func(Snapshot), string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := false
	outcome := outcomeOf(profile, err)
	if s.generation != gen {
		outcome = "stale"
		telemetry.TrackStaleResponse()
		s.logger.Debug("discarding session check", "cause", cause, "error", fmt.Errorf("%w: generation %d, now %d", apperrors.ErrStaleResponse, gen, s.generation))
	} else {
		if err != nil {
			s.logger.Debug("session check failed, treating as logged out", "cause", cause, "kind", apperrors.Classify(err).String(), "error", err)
		}
		s.setUserLocked(profile.Clone(), cause)
		changed = true
	}
	if finishLoading && s.loading {
		s.loading = false
		changed = true
	}
	if !changed {
		return Snapshot{}, nil, outcome
	}
	return s.snapshotLocked(), s.listenersLocked(), outcome
}

// applyExplicit stores the result of a login or logout. Explicit actions
// always win, so the generation moves on.
func (s *Store) applyExplicit(p *model.Profile, cause Cause) (Snapshot, []func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.setUserLocked(p, cause)
	return s.snapshotLocked(), s.listenersLocked()
}

// backendLogin turns a panicking backend into an error.
func (s *Store) backendLogin(ctx context.Context, email, password string) (p *model.Profile, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("login panicked", "panic", r)
			p, err = nil, fmt.Errorf("login panicked: %v", r)
		}
	}()
	return s.backend.Login(ctx, email, password)
}

// Login authenticates against the backend. On failure the session is left
// untouched and the reason is in the result; a panicking backend is
// reported as an unknown failure.
func (s *Store) Login(ctx context.Context, email, password string) Result {
	profile, err := s.backendLogin(ctx, email, password)
	if err == nil && !profile.Valid() {
		err = errors.New("login answer carried no profile")
	}
	if err != nil {
		kind := apperrors.Classify(err)
		s.logger.Info("login failed", "kind", kind.String(), "error", err)
		telemetry.TrackSessionResolution(string(CauseLogin), "failed")
		return Result{Error: apperrors.Reason(err), Kind: kind}
	}

	snap, listeners := s.applyExplicit(profile.Clone(), CauseLogin)

	telemetry.TrackSessionResolution(string(CauseLogin), outcomeOf(profile, nil))
	notify(listeners, snap)
	return Result{Success: true, User: profile.Clone()}
}

// Logout tells the backend, then clears the session whatever it answered.
func (s *Store) Logout(ctx context.Context) {
	if err := s.backend.Logout(ctx); err != nil {
		s.logger.Info("backend logout failed, clearing local session anyway", "error", err)
	}

	snap, listeners := s.applyExplicit(nil, CauseLogout)

	telemetry.TrackSessionResolution(string(CauseLogout), "anonymous")
	notify(listeners, snap)
}

// setUserLocked updates the user and keeps the cache in step.
func (s *Store) setUserLocked(p *model.Profile, cause Cause) {
	s.user = p
	s.cause = cause
	var err error
	if p == nil {
		err = s.cache.Clear()
	} else {
		err = s.cache.Save(p)
	}
	if err != nil {
		s.logger.Warn("failed to update cached profile", "error", err)
	}
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{User: s.user.Clone(), Loading: s.loading, Cause: s.cause}
}

func (s *Store) listenersLocked() []func(Snapshot) {
	out := make([]func(Snapshot), 0, len(s.listeners))
	for i := 0; i < s.nextID; i++ {
		if fn, ok := s.listeners[i]; ok {
			out = append(out, fn)
		}
	}
	return out
}

func notify(listeners []func(Snapshot), snap Snapshot) {
	for _, fn := range listeners {
		fn(snap)
	}
}

func outcomeOf(p *model.Profile, err error) string {
	switch {
	case err != nil:
		return "failed"
	case p == nil:
		return "anonymous"
	default:
		return "authenticated"
	}
}

type noCache struct{}

func (noCache) Load() (*model.Profile, error) { return nil, nil }
func (noCache) Save(*model.Profile) error     { return nil }
func (noCache) Clear() error                  { return nil }

// Package session holds the single source of truth for who is logged in
// and what they may do. State changes only through the operations below;
// each one applies its result atomically after the network resolves, and
// every mutation of the in-memory state mirrors the durable credential
// store within the same operation.
package session

import (
	"context"
	"net/http"
	"sync"

	"github.com/quillforge/quill/internal/api"
	"github.com/quillforge/quill/internal/credstore"
	"github.com/quillforge/quill/internal/errors"
	"github.com/quillforge/quill/internal/log"
)

// Snapshot is an immutable view of the session state. Consumers re-read it
// whenever the store notifies them; they never observe a half-applied
// mutation.
type Snapshot struct {
	// Identity is the validated account, nil while unauthenticated
	Identity *api.User

	// AuthorProfile is the author application record, nil until the
	// account has applied
	AuthorProfile *api.AuthorProfile

	// Validating is true only during bootstrap or an explicit re-check
	Validating bool
}

// Authenticated reports whether a validated identity is present
func (s Snapshot) Authenticated() bool {
	return s.Identity != nil
}

// Approved reports whether the author application has been approved.
// This, not the account role, gates the dashboard.
func (s Snapshot) Approved() bool {
	return s.AuthorProfile != nil && s.AuthorProfile.Status == api.AuthorStatusApproved
}

// Store is the injectable session state container
type Store struct {
	client *api.Client
	creds  credstore.Store
	logger *log.Logger

	mu    sync.RWMutex
	state Snapshot

	subMu   sync.Mutex
	subs    map[int]func(Snapshot)
	nextSub int
}

// Option customizes a Store
type Option func(*Store)

// WithLogger sets the logger used by session operations
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New creates a session store over the given API client and credential
// store. The store starts unauthenticated and validating is off; call
// CheckAuth to bootstrap from any persisted credential.
func New(client *api.Client, creds credstore.Store, opts ...Option) *Store {
	s := &Store{
		client: client,
		creds:  creds,
		logger: log.DefaultLogger(),
		subs:   make(map[int]func(Snapshot)),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Snapshot returns the current session state
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Subscribe registers a listener invoked after every state change with the
// new snapshot. The returned function removes the listener.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

// setState replaces the session state and notifies subscribers
func (s *Store) setState(state Snapshot) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()

	s.subMu.Lock()
	listeners := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		listeners = append(listeners, fn)
	}
	s.subMu.Unlock()

	for _, fn := range listeners {
		fn(state)
	}
}

// Login authenticates with email and password. On success the credential
// pair is persisted and the identity set; the author profile is then
// fetched best-effort (an account that never applied simply has none).
// A rejected credential leaves the session untouched.
func (s *Store) Login(ctx context.Context, email, password string) error {
	result, err := s.client.Login(ctx, email, password)
	if err != nil {
		if api.IsStatus(err, http.StatusUnauthorized) || api.IsStatus(err, http.StatusBadRequest) {
			return errors.NewCredentialRejectedError(err)
		}
		return err
	}

	if err := s.creds.Save(credstore.Credentials{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		Email:        result.User.Email,
	}); err != nil {
		return err
	}

	profile := s.fetchProfileOrNone(ctx)

	s.setState(Snapshot{
		Identity:      &result.User,
		AuthorProfile: profile,
	})

	s.logger.Debug("session established", "user_id", result.User.ID)
	return nil
}

// Register creates an account and establishes a session exactly like
// Login, except no author profile fetch is attempted: none can exist yet.
func (s *Store) Register(ctx context.Context, req api.RegisterRequest) error {
	result, err := s.client.Register(ctx, req)
	if err != nil {
		if api.IsStatus(err, http.StatusBadRequest) || api.IsStatus(err, http.StatusConflict) {
			return errors.Wrap(errors.ErrCodeRegistrationFailed, "registration rejected", err)
		}
		return err
	}

	if err := s.creds.Save(credstore.Credentials{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		Email:        result.User.Email,
	}); err != nil {
		return err
	}

	s.setState(Snapshot{Identity: &result.User})

	s.logger.Debug("account registered", "user_id", result.User.ID)
	return nil
}

// Logout notifies the backend best-effort, then unconditionally clears the
// persisted credential and the in-memory session. Leaving the session must
// always succeed locally, whatever the network does.
func (s *Store) Logout(ctx context.Context) {
	creds, err := s.creds.Load()
	if err == nil && creds.RefreshToken != "" {
		if err := s.client.Logout(ctx, creds.RefreshToken); err != nil {
			s.logger.Debug("backend logout failed, clearing local session anyway", "error", err)
		}
	}

	if err := s.creds.Clear(); err != nil {
		s.logger.Warn("failed to clear persisted credentials", "error", err)
	}

	s.setState(Snapshot{})
}

// CheckAuth validates any persisted credential against the backend. With
// no credential it settles immediately to unauthenticated. On a rejected
// credential it clears the persisted pair and settles to unauthenticated.
// This is the only operation that toggles Validating, and Validating
// always settles to false.
func (s *Store) CheckAuth(ctx context.Context) {
	creds, err := s.creds.Load()
	if err != nil || creds.Empty() {
		if err != nil {
			s.logger.Warn("failed to load persisted credentials", "error", err)
		}
		s.setState(Snapshot{})
		return
	}

	s.setState(Snapshot{Validating: true})

	user, err := s.client.Me(ctx)
	if err != nil {
		s.logger.Debug("bootstrap validation failed", "error", err)
		if clearErr := s.creds.Clear(); clearErr != nil {
			s.logger.Warn("failed to clear persisted credentials", "error", clearErr)
		}
		s.setState(Snapshot{})
		return
	}

	profile := s.fetchProfileOrNone(ctx)

	s.setState(Snapshot{
		Identity:      user,
		AuthorProfile: profile,
	})
}

// ApplyAsAuthor submits an author application and stores the returned
// profile. On failure nothing is guessed: the state is left as it was and
// the error goes to the caller.
func (s *Store) ApplyAsAuthor(ctx context.Context, penName, bio string) (*api.AuthorProfile, error) {
	profile, err := s.client.Apply(ctx, penName, bio)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeApplyFailed, "author application failed", err)
	}

	s.mu.Lock()
	state := s.state
	s.mu.Unlock()
	state.AuthorProfile = profile
	s.setState(state)

	return profile, nil
}

// RefreshAuthorProfile re-fetches the author profile, mapping any failure
// to an absent profile
func (s *Store) RefreshAuthorProfile(ctx context.Context) {
	profile := s.fetchProfileOrNone(ctx)

	s.mu.Lock()
	state := s.state
	s.mu.Unlock()
	state.AuthorProfile = profile
	s.setState(state)
}

// ForceUnauthenticated drops the in-memory session. The transport calls
// this (through the application shell) after a failed token refresh has
// already cleared the persisted credentials.
func (s *Store) ForceUnauthenticated() {
	s.logger.Debug("session invalidated from transport")
	s.setState(Snapshot{})
}

// fetchProfileOrNone maps every profile-fetch failure, expected or not, to
// an absent profile. Having never applied is a normal state.
func (s *Store) fetchProfileOrNone(ctx context.Context) *api.AuthorProfile {
	profile, err := s.client.MyProfile(ctx)
	if err != nil {
		if err != api.ErrNoProfile {
			s.logger.Debug("author profile fetch failed", "error", err)
		}
		return nil
	}
	return profile
}

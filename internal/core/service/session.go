package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/envaplast/planta-cli/internal/core/domain"
	"github.com/envaplast/planta-cli/internal/core/ports"
)

// Session owns the process-wide authentication state. It is the only writer:
// every mutation goes through Bootstrap, Login, Logout or RefreshUser, and
// all four are serialized behind one mutex, so overlapping calls resolve as
// "last settled wins". Reads return copies.
type Session struct {
	mu      sync.Mutex
	user    *domain.User
	loading bool

	auth  ports.AuthClient
	store ports.CredentialStore
	log   zerolog.Logger
}

// NewSession creates a Session in its pre-bootstrap state: loading, no user.
func NewSession(auth ports.AuthClient, store ports.CredentialStore, log zerolog.Logger) *Session {
	return &Session{
		loading: true,
		auth:    auth,
		store:   store,
		log:     log,
	}
}

// User returns a copy of the current user, or nil when unauthenticated.
func (s *Session) User() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneUser(s.user)
}

// IsAuthenticated is derived state: true iff a user is present.
func (s *Session) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil
}

// IsLoading reports whether bootstrap or an auth operation is in flight.
func (s *Session) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Bootstrap restores a persisted session, if any. It never returns an error:
// whatever goes wrong, the session settles either authenticated or cleanly
// logged out, and loading ends. Intended to run once at startup.
func (s *Session) Bootstrap(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.loading = false }()

	token, err := s.store.Token(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("credential store unreadable, starting logged out")
		s.user = nil
		return
	}
	if token == "" {
		s.user = nil
		return
	}

	// A token exists: prefer the cached snapshot, fall back to the backend.
	if cached, err := s.store.UserSnapshot(ctx); err == nil && cached != nil {
		s.user = cached
		return
	}

	profile, err := s.auth.Profile(ctx)
	if err != nil {
		// Token present but unusable (expired, revoked, or the backend is
		// unreachable with nothing cached). Clear it rather than keeping a
		// half-session around.
		s.log.Info().Err(err).Msg("stored token rejected, clearing session")
		if lerr := s.auth.Logout(ctx); lerr != nil {
			s.log.Warn().Err(lerr).Msg("cleanup logout failed")
		}
		s.user = nil
		return
	}
	s.user = profile
}

// Login authenticates against the backend. On success the session becomes
// authenticated as the returned user; on failure the error is returned for
// the caller to display and the session is left unauthenticated.
func (s *Session) Login(ctx context.Context, email, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loading = true
	creds, err := s.auth.Login(ctx, email, password)
	s.loading = false
	if err != nil {
		s.user = nil
		return err
	}
	s.user = creds.User
	return nil
}

// Logout ends the session. Local state and stored credentials are always
// cleared, even when the backend notification fails; nothing is returned to
// the caller.
func (s *Session) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loading = true
	if err := s.auth.Logout(ctx); err != nil {
		s.log.Warn().Err(err).Msg("logout cleanup reported an error")
	}
	s.loading = false
	s.user = nil
}

// RefreshUser re-fetches the profile for the current session. A failure is
// returned but leaves the current user in place: a transient fetch error
// must not log anyone out.
func (s *Session) RefreshUser(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, err := s.auth.Profile(ctx)
	if err != nil {
		return err
	}
	s.user = profile
	return nil
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

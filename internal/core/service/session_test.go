package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/envaplast/planta-cli/internal/core/domain"
	"github.com/envaplast/planta-cli/internal/core/ports"
)

// memStore is an in-memory ports.CredentialStore.
type memStore struct {
	token string
	user  *domain.User
}

func (m *memStore) Token(context.Context) (string, error) { return m.token, nil }
func (m *memStore) UserSnapshot(context.Context) (*domain.User, error) {
	if m.user == nil {
		return nil, nil
	}
	u := *m.user
	return &u, nil
}
func (m *memStore) SetCredentials(_ context.Context, token string, user *domain.User) error {
	m.token, m.user = token, user
	return nil
}
func (m *memStore) Clear(context.Context) error {
	m.token, m.user = "", nil
	return nil
}

// stubAuth scripts the AuthClient responses and records calls. Logout also
// clears the store, matching the real client's contract.
type stubAuth struct {
	store *memStore

	loginCreds  *ports.Credentials
	loginErr    error
	profileUser *domain.User
	profileErr  error
	logoutErr   error

	logoutCalls int
}

func (s *stubAuth) Login(context.Context, string, string) (*ports.Credentials, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	_ = s.store.SetCredentials(context.Background(), s.loginCreds.Token, s.loginCreds.User)
	return s.loginCreds, nil
}

func (s *stubAuth) Logout(ctx context.Context) error {
	s.logoutCalls++
	_ = s.store.Clear(ctx)
	return s.logoutErr
}

func (s *stubAuth) Profile(context.Context) (*domain.User, error) {
	if s.profileErr != nil {
		return nil, s.profileErr
	}
	u := *s.profileUser
	return &u, nil
}

func (s *stubAuth) Refresh(context.Context) (*ports.Credentials, error) {
	return s.loginCreds, s.loginErr
}

func testUser() *domain.User {
	return &domain.User{ID: 7, Email: "op@planta.com", Nombre: "Op", Cargo: domain.CargoOperario, Activo: true}
}

func newTestSession(auth *stubAuth, store *memStore) *Session {
	return NewSession(auth, store, zerolog.Nop())
}

// checkInvariant asserts the derived-state rule at an observation point.
func checkInvariant(t *testing.T, s *Session) {
	t.Helper()
	if s.IsAuthenticated() != (s.User() != nil) {
		t.Fatalf("IsAuthenticated=%v but User=%v", s.IsAuthenticated(), s.User())
	}
}

func TestBootstrap_NoToken(t *testing.T) {
	store := &memStore{}
	s := newTestSession(&stubAuth{store: store}, store)

	if !s.IsLoading() {
		t.Fatalf("expected loading before bootstrap")
	}
	s.Bootstrap(context.Background())

	if s.IsLoading() {
		t.Fatalf("still loading after bootstrap")
	}
	if s.IsAuthenticated() {
		t.Fatalf("expected unauthenticated with empty store")
	}
	checkInvariant(t, s)
}

func TestBootstrap_CachedSnapshot(t *testing.T) {
	store := &memStore{token: "tok1", user: testUser()}
	auth := &stubAuth{store: store, profileErr: errors.New("must not be called")}
	s := newTestSession(auth, store)

	s.Bootstrap(context.Background())

	if !s.IsAuthenticated() {
		t.Fatalf("expected authenticated from cached snapshot")
	}
	if got := s.User(); got.ID != 7 {
		t.Fatalf("unexpected user: %+v", got)
	}
	checkInvariant(t, s)
}

func TestBootstrap_TokenWithoutSnapshot_FetchesProfile(t *testing.T) {
	store := &memStore{token: "tok1"}
	auth := &stubAuth{store: store, profileUser: testUser()}
	s := newTestSession(auth, store)

	s.Bootstrap(context.Background())

	if !s.IsAuthenticated() {
		t.Fatalf("expected authenticated via profile fetch")
	}
	checkInvariant(t, s)
}

func TestBootstrap_RejectedToken_ClearsAndSettles(t *testing.T) {
	store := &memStore{token: "expired"}
	auth := &stubAuth{store: store, profileErr: domain.ErrUnauthorized}
	s := newTestSession(auth, store)

	s.Bootstrap(context.Background())

	if s.IsLoading() {
		t.Fatalf("stuck loading after failed bootstrap")
	}
	if s.IsAuthenticated() {
		t.Fatalf("expected unauthenticated after rejected token")
	}
	if auth.logoutCalls != 1 {
		t.Fatalf("expected cleanup logout, got %d calls", auth.logoutCalls)
	}
	if store.token != "" || store.user != nil {
		t.Fatalf("expected cleared store, got token=%q user=%v", store.token, store.user)
	}
	checkInvariant(t, s)
}

func TestLogin_Success(t *testing.T) {
	store := &memStore{}
	auth := &stubAuth{store: store, loginCreds: &ports.Credentials{Token: "tok1", User: testUser()}}
	s := newTestSession(auth, store)
	s.Bootstrap(context.Background())

	if err := s.Login(context.Background(), "op@planta.com", "secret1"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if !s.IsAuthenticated() {
		t.Fatalf("expected authenticated after login")
	}
	if store.token != "tok1" {
		t.Fatalf("expected stored token, got %q", store.token)
	}
	checkInvariant(t, s)
}

func TestLogin_FailurePropagatesAndStaysUnauthenticated(t *testing.T) {
	store := &memStore{}
	wantErr := &domain.APIError{StatusCode: 401, Message: "Credenciales inválidas"}
	auth := &stubAuth{store: store, loginErr: wantErr}
	s := newTestSession(auth, store)
	s.Bootstrap(context.Background())

	err := s.Login(context.Background(), "op@planta.com", "wrong")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if s.IsAuthenticated() {
		t.Fatalf("expected unauthenticated after failed login")
	}
	checkInvariant(t, s)
}

func TestLogout_AlwaysClears(t *testing.T) {
	store := &memStore{token: "tok1", user: testUser()}
	auth := &stubAuth{store: store, logoutErr: domain.ErrTimeout}
	s := newTestSession(auth, store)
	s.Bootstrap(context.Background())

	if !s.IsAuthenticated() {
		t.Fatalf("precondition: authenticated")
	}

	s.Logout(context.Background())

	if s.IsAuthenticated() {
		t.Fatalf("expected unauthenticated after logout despite backend failure")
	}
	if store.token != "" || store.user != nil {
		t.Fatalf("expected cleared store after logout")
	}
	checkInvariant(t, s)
}

func TestRefreshUser_FailureKeepsUser(t *testing.T) {
	store := &memStore{token: "tok1", user: testUser()}
	auth := &stubAuth{store: store, profileErr: domain.ErrConnection}
	s := newTestSession(auth, store)
	s.Bootstrap(context.Background())

	err := s.RefreshUser(context.Background())
	if !errors.Is(err, domain.ErrConnection) {
		t.Fatalf("expected connection error, got %v", err)
	}
	if got := s.User(); got == nil || got.ID != 7 {
		t.Fatalf("expected user preserved after failed refresh, got %+v", got)
	}
	checkInvariant(t, s)
}

func TestRefreshUser_SuccessUpdatesInPlace(t *testing.T) {
	store := &memStore{token: "tok1", user: testUser()}
	updated := testUser()
	updated.Nombre = "Op Actualizado"
	auth := &stubAuth{store: store, profileUser: updated}
	s := newTestSession(auth, store)
	s.Bootstrap(context.Background())

	if err := s.RefreshUser(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if got := s.User(); got.Nombre != "Op Actualizado" {
		t.Fatalf("expected updated user, got %+v", got)
	}
	checkInvariant(t, s)
}

func TestUser_ReturnsCopy(t *testing.T) {
	store := &memStore{token: "tok1", user: testUser()}
	s := newTestSession(&stubAuth{store: store}, store)
	s.Bootstrap(context.Background())

	u := s.User()
	u.Cargo = domain.CargoGerente

	if s.User().Cargo != domain.CargoOperario {
		t.Fatalf("mutating the returned user leaked into the session")
	}
}

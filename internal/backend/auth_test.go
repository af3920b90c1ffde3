package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/envaplast/planta-cli/internal/core/domain"
)

var loginUser = domain.User{
	ID: 1, Email: "a@b.com", Nombre: "Ana", Cargo: domain.CargoOperario,
	Telefono: "3001234567", Activo: true,
}

func authBackend(t *testing.T, logoutStatus int) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "secret1" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"statusCode":401,"message":"Credenciales inválidas","error":"Unauthorized"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"access_token": "tok1", "user": loginUser})
	})
	mux.HandleFunc("POST /auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(logoutStatus)
		_, _ = w.Write([]byte(`{}`))
	})
	mux.HandleFunc("GET /auth/profile", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok1" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"statusCode":401,"message":"Token inválido","error":"Unauthorized"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(loginUser)
	})
	mux.HandleFunc("POST /auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"access_token": "tok2", "user": loginUser})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestLogin_PersistsAfterSuccess(t *testing.T) {
	srv := authBackend(t, http.StatusOK)
	store := &memStore{}
	svc := NewAuthService(newTestClient(srv.URL, store), store)

	creds, err := svc.Login(context.Background(), "a@b.com", "secret1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if creds.Token != "tok1" {
		t.Fatalf("token = %q", creds.Token)
	}
	if store.token != "tok1" {
		t.Fatalf("stored token = %q", store.token)
	}

	// Round-trip: the stored snapshot equals the user from the response.
	snapshot, _ := store.UserSnapshot(context.Background())
	if !reflect.DeepEqual(*snapshot, loginUser) {
		t.Fatalf("stored user %+v != response user %+v", *snapshot, loginUser)
	}
}

func TestLogin_FailurePersistsNothing(t *testing.T) {
	srv := authBackend(t, http.StatusOK)
	store := &memStore{token: "old", user: &domain.User{ID: 9}}
	svc := NewAuthService(newTestClient(srv.URL, store), store)

	_, err := svc.Login(context.Background(), "a@b.com", "wrong")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	// The prior session is untouched; the caller decides what to do with it.
	if store.token != "old" || store.user == nil {
		t.Fatalf("failed login must not touch the store, got token=%q", store.token)
	}
}

func TestLogout_ClearsEvenWhenServerFails(t *testing.T) {
	srv := authBackend(t, http.StatusInternalServerError)
	store := &memStore{token: "tok1", user: &loginUser}
	svc := NewAuthService(newTestClient(srv.URL, store), store)

	if err := svc.Logout(context.Background()); err != nil {
		t.Fatalf("logout must always succeed locally, got %v", err)
	}
	if store.token != "" || store.user != nil {
		t.Fatalf("expected cleared store, got token=%q user=%v", store.token, store.user)
	}
}

func TestLogout_WithoutTokenSkipsBackend(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	t.Cleanup(srv.Close)

	store := &memStore{}
	svc := NewAuthService(newTestClient(srv.URL, store), store)

	if err := svc.Logout(context.Background()); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if called {
		t.Fatalf("no request should be sent without a stored token")
	}
}

func TestProfile_RequiresToken(t *testing.T) {
	srv := authBackend(t, http.StatusOK)
	store := &memStore{}
	svc := NewAuthService(newTestClient(srv.URL, store), store)

	_, err := svc.Profile(context.Background())
	if !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestRefresh_OverwritesStoredCredentials(t *testing.T) {
	srv := authBackend(t, http.StatusOK)
	store := &memStore{token: "tok1", user: &loginUser}
	svc := NewAuthService(newTestClient(srv.URL, store), store)

	creds, err := svc.Refresh(context.Background())
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if creds.Token != "tok2" || store.token != "tok2" {
		t.Fatalf("expected rotated token, got creds=%q store=%q", creds.Token, store.token)
	}
}

func TestRefresh_RequiresToken(t *testing.T) {
	srv := authBackend(t, http.StatusOK)
	store := &memStore{}
	svc := NewAuthService(newTestClient(srv.URL, store), store)

	if _, err := svc.Refresh(context.Background()); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

package backend

import (
	"context"
	"net/http"

	"github.com/envaplast/planta-cli/internal/core/domain"
	"github.com/envaplast/planta-cli/internal/core/ports"
)

// AuthService implements ports.AuthClient against the backend's auth
// endpoints, persisting credentials through the configured store.
type AuthService struct {
	client *Client
	store  ports.CredentialStore
}

func NewAuthService(client *Client, store ports.CredentialStore) *AuthService {
	return &AuthService{client: client, store: store}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string       `json:"access_token"`
	User        *domain.User `json:"user"`
}

// Login exchanges credentials for a token and persists the pair. The store
// write happens only after a successful response; a failed login leaves any
// previously stored session untouched.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.Credentials, error) {
	var resp loginResponse
	err := s.client.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Body:   loginRequest{Email: email, Password: password},
	}, &resp)
	if err != nil {
		return nil, err
	}

	s.persist(ctx, resp)
	return &ports.Credentials{Token: resp.AccessToken, User: resp.User}, nil
}

// Logout notifies the backend when a token exists, then clears the stored
// credentials no matter what the backend said. The network outcome is logged
// and swallowed: logging out locally must always succeed.
func (s *AuthService) Logout(ctx context.Context) error {
	token, err := s.store.Token(ctx)
	if err != nil {
		s.client.log.Warn().Err(err).Msg("credential store read failed during logout")
	}
	if token != "" {
		err := s.client.Do(ctx, Request{
			Method:      http.MethodPost,
			Path:        "/auth/logout",
			RequireAuth: true,
		}, nil)
		if err != nil {
			s.client.log.Warn().Err(err).Msg("server-side logout failed, clearing locally anyway")
		}
	}

	if err := s.store.Clear(ctx); err != nil {
		s.client.log.Error().Err(err).Msg("clearing stored credentials failed")
	}
	return nil
}

// Profile fetches the current user. Requires a stored token.
func (s *AuthService) Profile(ctx context.Context) (*domain.User, error) {
	var user domain.User
	err := s.client.Do(ctx, Request{
		Method:      http.MethodGet,
		Path:        "/auth/profile",
		RequireAuth: true,
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Refresh trades the stored token for a fresh one and persists the result,
// same as a login.
func (s *AuthService) Refresh(ctx context.Context) (*ports.Credentials, error) {
	var resp loginResponse
	err := s.client.Do(ctx, Request{
		Method:      http.MethodPost,
		Path:        "/auth/refresh",
		RequireAuth: true,
	}, &resp)
	if err != nil {
		return nil, err
	}

	s.persist(ctx, resp)
	return &ports.Credentials{Token: resp.AccessToken, User: resp.User}, nil
}

// persist stores the credential pair. Storage is best-effort: a write
// failure is logged, not surfaced, so a successful login still logs in.
func (s *AuthService) persist(ctx context.Context, resp loginResponse) {
	if err := s.store.SetCredentials(ctx, resp.AccessToken, resp.User); err != nil {
		s.client.log.Error().Err(err).Msg("persisting credentials failed")
	}
}

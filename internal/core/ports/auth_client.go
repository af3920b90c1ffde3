package ports

import (
	"context"

	"github.com/envaplast/planta-cli/internal/core/domain"
)

// Credentials is the successful outcome of a login or token refresh.
type Credentials struct {
	Token string
	User  *domain.User
}

// AuthClient talks to the backend's auth endpoints. Login and Refresh
// persist the returned credential pair only after the backend call succeeds;
// on failure the previously stored pair is left untouched.
type AuthClient interface {
	Login(ctx context.Context, email, password string) (*Credentials, error)
	// Logout notifies the backend (best effort) and always clears the
	// local credential pair. It never reports the network outcome.
	Logout(ctx context.Context) error
	// Profile fetches the current user with the stored token. Fails with
	// domain.ErrNotAuthenticated when no token is stored.
	Profile(ctx context.Context) (*domain.User, error)
	Refresh(ctx context.Context) (*Credentials, error)
}

// RecordsClient talks to the production-records endpoints.
type RecordsClient interface {
	Create(ctx context.Context, req domain.CreateRegistroEnvase) (*domain.RegistroEnvase, error)
	List(ctx context.Context, q RegistrosQuery) (*domain.RegistrosPage, error)
	Get(ctx context.Context, id int) (*domain.RegistroEnvase, error)
}

// RegistrosQuery carries the list endpoint's query parameters. Zero values
// are omitted from the request so the backend applies its defaults.
type RegistrosQuery struct {
	Page       int
	Limit      int
	SortBy     string
	SortOrder  string
	UserID     int
	OperarioID int
	ProductoID int
}

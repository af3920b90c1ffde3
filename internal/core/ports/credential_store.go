package ports

import (
	"context"

	"github.com/envaplast/planta-cli/internal/core/domain"
)

// CredentialStore persists the two-entry session credential: the bearer
// token and a snapshot of the user it belongs to. Implementations must treat
// the pair atomically from the caller's point of view: SetCredentials writes
// both entries, Clear removes both. A store where only one of the two
// survives is resolved by the session layer as "logged out".
type CredentialStore interface {
	// Token returns the stored bearer token, or "" when absent.
	Token(ctx context.Context) (string, error)
	// UserSnapshot returns the stored user copy, or nil when absent or
	// undecodable.
	UserSnapshot(ctx context.Context) (*domain.User, error)
	// SetCredentials stores token and user together, replacing any
	// previous pair.
	SetCredentials(ctx context.Context, token string, user *domain.User) error
	// Clear removes both entries. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}

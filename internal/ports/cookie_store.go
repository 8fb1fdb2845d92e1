package ports

import (
	"context"

	"github.com/bnema/smart-image-cli/internal/domain"
)

type CookieStore interface {
	// Load returns domain.ErrCredentialsNotFound when nothing usable is persisted.
	Load(ctx context.Context) (domain.CredentialSet, error)
	Save(ctx context.Context, creds domain.CredentialSet) error
	Delete(ctx context.Context) error
	Exists() bool
}

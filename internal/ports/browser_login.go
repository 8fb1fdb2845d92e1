package ports

import (
	"context"

	"github.com/bnema/smart-image-cli/internal/domain"
)

type BrowserLogin interface {
	AcquireCredentials(ctx context.Context) (domain.CredentialSet, error)
	ResetProfile(ctx context.Context) error
	ProfileExists() bool
}

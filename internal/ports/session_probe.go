package ports

import (
	"context"

	"github.com/bnema/smart-image-cli/internal/domain"
)

type SessionProbe interface {
	// Ready never fails loudly; any failure reports false.
	Ready(ctx context.Context, creds domain.CredentialSet) bool
	AccessToken(ctx context.Context, creds domain.CredentialSet) (string, error)
}

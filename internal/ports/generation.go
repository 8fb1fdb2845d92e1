package ports

import (
	"context"

	"github.com/bnema/smart-image-cli/internal/domain"
)

type GenerationBackend interface {
	Generate(ctx context.Context, session domain.Session, prompt string) (domain.GenerationResult, error)
}

type ArtifactFetcher interface {
	Save(ctx context.Context, url, dir, filename string, creds domain.CredentialSet) (string, error)
}

type HistoryRepository interface {
	Append(ctx context.Context, record domain.GenerationRecord) error
	List(ctx context.Context) ([]domain.GenerationRecord, error)
	// AddSavedPath records a file written for the generation with the given id.
	AddSavedPath(ctx context.Context, id, path string) error
}

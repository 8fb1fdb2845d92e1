package domain

import (
	"context"
	"errors"
	"time"
)

// ImageCandidate is an image reference as found in a backend response.
type ImageCandidate struct {
	URL   string
	Title string
	Alt   string
}

type GenerationResult struct {
	Text   string
	Images []ImageCandidate
	Model  string
}

// SaveFunc writes the referenced artifact to dir/filename and returns the written path.
// A nil or empty override falls back to the credentials bound at decode time.
type SaveFunc func(ctx context.Context, dir, filename string, override CredentialSet) (string, error)

type ImageRef struct {
	URL   string
	Title string
	Alt   string

	save SaveFunc
}

func NewImageRef(candidate ImageCandidate, save SaveFunc) ImageRef {
	return ImageRef{
		URL:   candidate.URL,
		Title: candidate.Title,
		Alt:   candidate.Alt,
		save:  save,
	}
}

var errImageNotBound = errors.New("image reference has no bound save capability")

func (i ImageRef) Save(ctx context.Context, dir, filename string) (string, error) {
	return i.SaveWith(ctx, dir, filename, nil)
}

func (i ImageRef) SaveWith(ctx context.Context, dir, filename string, override CredentialSet) (string, error) {
	if i.save == nil {
		return "", errImageNotBound
	}

	return i.save(ctx, dir, filename, override)
}

type ResponseMetadata struct {
	// ID keys the generation in the history ledger.
	ID        string
	Model     string
	Timestamp time.Time
}

type DecodedResponse struct {
	Text     string
	Images   []ImageRef
	Metadata ResponseMetadata
}

type GenerationRecord struct {
	ID           string
	CreatedAt    time.Time
	Model        string
	PromptLength int
	Text         string
	ImageURLs    []string
	SavedPaths   []string
}

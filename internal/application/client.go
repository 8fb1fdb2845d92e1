package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bnema/smart-image-cli/internal/domain"
	"github.com/bnema/smart-image-cli/internal/ports"
)

// Client is the surface used by commands: ensure a session, generate, save images.
type Client struct {
	sessions *SessionService
	backend  ports.GenerationBackend
	fetcher  ports.ArtifactFetcher
	history  ports.HistoryRepository
	clock    ports.Clock
	logger   *zap.Logger
	newID    func() string
}

// NewClient wires the facade. history may be nil to skip the generation ledger.
func NewClient(sessions *SessionService, backend ports.GenerationBackend, fetcher ports.ArtifactFetcher, history ports.HistoryRepository, clock ports.Clock, logger *zap.Logger) *Client {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		sessions: sessions,
		backend:  backend,
		fetcher:  fetcher,
		history:  history,
		clock:    clock,
		logger:   logger.Named("client"),
		newID:    uuid.NewString,
	}
}

func (c *Client) EnsureSession(ctx context.Context) error {
	_, err := c.sessions.EnsureSession(ctx)
	return err
}

func (c *Client) Sessions() *SessionService {
	return c.sessions
}

// Generate submits prompt with the current session. Returned images save with
// the credentials that were active when the response was decoded.
func (c *Client) Generate(ctx context.Context, prompt string) (domain.DecodedResponse, error) {
	session := c.sessions.Session()
	if !session.Ready || session.AccessToken == "" {
		return domain.DecodedResponse{}, fmt.Errorf("generate: %w", domain.ErrNotInitialized)
	}

	c.logger.Info("generating", zap.Int("prompt_length", len(prompt)))

	result, err := c.backend.Generate(ctx, session, prompt)
	if err != nil {
		return domain.DecodedResponse{}, err
	}

	response := domain.DecodedResponse{
		Text: result.Text,
		Metadata: domain.ResponseMetadata{
			ID:        c.newID(),
			Model:     result.Model,
			Timestamp: c.clock.Now(),
		},
	}

	bound := session.Credentials
	response.Images = make([]domain.ImageRef, 0, len(result.Images))
	for _, candidate := range result.Images {
		response.Images = append(response.Images,
			domain.NewImageRef(candidate, c.saveFunc(response.Metadata.ID, candidate.URL, bound)))
	}

	c.logger.Info("generation complete",
		zap.String("id", response.Metadata.ID),
		zap.Int("images", len(response.Images)))

	c.record(ctx, prompt, response)

	return response, nil
}

// SaveArtifact writes image into dir/filename using the credentials bound at decode time.
func (c *Client) SaveArtifact(ctx context.Context, image domain.ImageRef, dir, filename string) (string, error) {
	path, err := image.Save(ctx, dir, filename)
	if err != nil {
		return "", fmt.Errorf("save artifact: %w", err)
	}

	return path, nil
}

func (c *Client) History(ctx context.Context) ([]domain.GenerationRecord, error) {
	if c.history == nil {
		return nil, nil
	}

	records, err := c.history.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}

	return records, nil
}

func (c *Client) saveFunc(generationID, imageURL string, bound domain.CredentialSet) domain.SaveFunc {
	return func(ctx context.Context, dir, filename string, override domain.CredentialSet) (string, error) {
		creds := bound
		if !override.Empty() {
			creds = override
		}

		path, err := c.fetcher.Save(ctx, imageURL, dir, filename, creds)
		if err != nil {
			return "", err
		}

		if c.history != nil {
			if err := c.history.AddSavedPath(ctx, generationID, path); err != nil {
				c.logger.Warn("could not record saved image", zap.String("id", generationID), zap.Error(err))
			}
		}

		return path, nil
	}
}

// record never fails the generation; the ledger is informational.
func (c *Client) record(ctx context.Context, prompt string, response domain.DecodedResponse) {
	if c.history == nil {
		return
	}

	urls := make([]string, 0, len(response.Images))
	for _, image := range response.Images {
		urls = append(urls, image.URL)
	}

	record := domain.GenerationRecord{
		ID:           response.Metadata.ID,
		CreatedAt:    response.Metadata.Timestamp,
		Model:        response.Metadata.Model,
		PromptLength: len(prompt),
		Text:         response.Text,
		ImageURLs:    urls,
	}
	if err := c.history.Append(ctx, record); err != nil {
		c.logger.Warn("could not record generation", zap.String("id", record.ID), zap.Error(err))
	}
}

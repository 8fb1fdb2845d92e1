package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/bnema/smart-image-cli/internal/domain"
	"github.com/bnema/smart-image-cli/internal/ports"
)

const (
	historyFileMode = 0o600
	historyDirMode  = 0o700
	tempFilePattern = ".history-*.toml.tmp"
)

var ErrGenerationNotFound = errors.New("generation not found")

// HistoryRepository keeps the generation ledger in a single TOML file.
type HistoryRepository struct {
	path string
	mu   *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.HistoryRepository = (*HistoryRepository)(nil)

func NewHistoryRepository(path string) (*HistoryRepository, error) {
	if path == "" {
		return nil, errors.New("history path is empty")
	}

	path, err := normalizePath(path)
	if err != nil {
		return nil, err
	}

	return &HistoryRepository{path: path, mu: lockForPath(path)}, nil
}

func (r *HistoryRepository) Path() string {
	return r.path
}

func (r *HistoryRepository) Append(ctx context.Context, record domain.GenerationRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	file.Generations = append(file.Generations, toSchema(record))

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *HistoryRepository) AddSavedPath(ctx context.Context, id, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	for i := range file.Generations {
		if file.Generations[i].ID != id {
			continue
		}
		file.Generations[i].SavedPaths = append(file.Generations[i].SavedPaths, path)
		return r.writeSchema(file)
	}

	return fmt.Errorf("%w: %s", ErrGenerationNotFound, id)
}

// List returns records oldest first.
func (r *HistoryRepository) List(ctx context.Context) ([]domain.GenerationRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	records := make([]domain.GenerationRecord, 0, len(file.Generations))
	for _, entry := range file.Generations {
		records = append(records, fromSchema(entry))
	}

	return records, nil
}

func (r *HistoryRepository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{Version: currentSchemaVersion}, nil
		}
		return fileSchema{}, fmt.Errorf("read history file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode history file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (r *HistoryRepository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode history file: %w", err)
	}

	return WriteFileAtomic(r.path, data, historyFileMode)
}

// WriteFileAtomic replaces path with data via a temp file in the same directory.
func WriteFileAtomic(path string, data []byte, mode os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, historyDirMode); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := tempFile.Chmod(mode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tempName, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}

	cleanup = false

	return nil
}

func normalizePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve history path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func toSchema(record domain.GenerationRecord) generationSchema {
	return generationSchema{
		ID:           record.ID,
		CreatedAt:    formatTime(record.CreatedAt),
		Model:        record.Model,
		PromptLength: record.PromptLength,
		Text:         record.Text,
		ImageURLs:    record.ImageURLs,
		SavedPaths:   record.SavedPaths,
	}
}

func fromSchema(entry generationSchema) domain.GenerationRecord {
	return domain.GenerationRecord{
		ID:           entry.ID,
		CreatedAt:    parseTime(entry.CreatedAt),
		Model:        entry.Model,
		PromptLength: entry.PromptLength,
		Text:         entry.Text,
		ImageURLs:    entry.ImageURLs,
		SavedPaths:   entry.SavedPaths,
	}
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.Format(time.RFC3339)
}

package toml

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/smart-image-cli/internal/domain"
)

func sampleRecord(id string) domain.GenerationRecord {
	return domain.GenerationRecord{
		ID:           id,
		CreatedAt:    time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC),
		Model:        "gemini-pro",
		PromptLength: 128,
		Text:         "Here is your cover.",
		ImageURLs:    []string{"https://lh3.googleusercontent.com/gg-dl/" + id},
	}
}

func TestHistoryRepositoryRoundTrip(t *testing.T) {
	t.Parallel()

	repo, err := NewHistoryRepository(filepath.Join(t.TempDir(), "history.toml"))
	require.NoError(t, err)

	first := sampleRecord("gen-1")
	second := sampleRecord("gen-2")
	second.Text = ""

	require.NoError(t, repo.Append(context.Background(), first))
	require.NoError(t, repo.Append(context.Background(), second))

	records, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.GenerationRecord{first, second}, records)
}

func TestHistoryRepositoryAddSavedPath(t *testing.T) {
	t.Parallel()

	repo, err := NewHistoryRepository(filepath.Join(t.TempDir(), "history.toml"))
	require.NoError(t, err)

	require.NoError(t, repo.Append(context.Background(), sampleRecord("gen-1")))
	require.NoError(t, repo.Append(context.Background(), sampleRecord("gen-2")))

	require.NoError(t, repo.AddSavedPath(context.Background(), "gen-2", "/out/a.png"))
	require.NoError(t, repo.AddSavedPath(context.Background(), "gen-2", "/out/b.png"))

	records, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Empty(t, records[0].SavedPaths)
	assert.Equal(t, []string{"/out/a.png", "/out/b.png"}, records[1].SavedPaths)

	err = repo.AddSavedPath(context.Background(), "missing", "/out/c.png")
	assert.ErrorIs(t, err, ErrGenerationNotFound)
}

func TestHistoryRepositoryWriteEnforcesPermissions(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "history.toml")
	repo, err := NewHistoryRepository(path)
	require.NoError(t, err)

	require.NoError(t, repo.Append(context.Background(), sampleRecord("gen-1")))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "version = 1")
	assert.Contains(t, string(data), "[[generations]]")

	leftovers, err := filepath.Glob(filepath.Join(filepath.Dir(path), ".history-*.toml.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestHistoryRepositoryMissingFileIsEmpty(t *testing.T) {
	t.Parallel()

	repo, err := NewHistoryRepository(filepath.Join(t.TempDir(), "history.toml"))
	require.NoError(t, err)

	records, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestHistoryRepositoryMalformedTOMLReturnsError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "history.toml")
	require.NoError(t, os.WriteFile(path, []byte("generations = [[[\n"), 0o600))

	repo, err := NewHistoryRepository(path)
	require.NoError(t, err)

	_, err = repo.List(context.Background())
	assert.ErrorContains(t, err, "decode history file")
}

func TestHistoryRepositoryFutureSchemaVersionReturnsError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "history.toml")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join([]string{
		"version = 999",
		"",
	}, "\n")), 0o600))

	repo, err := NewHistoryRepository(path)
	require.NoError(t, err)

	_, err = repo.List(context.Background())
	assert.ErrorContains(t, err, "unsupported history schema version")
}

func TestHistoryRepositoryCanceledContext(t *testing.T) {
	t.Parallel()

	repo, err := NewHistoryRepository(filepath.Join(t.TempDir(), "history.toml"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, repo.Append(ctx, sampleRecord("gen-1")), context.Canceled)
	_, err = repo.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, repo.Path())
}

func TestHistoryRepositoryConcurrentAppendsAcrossInstances(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "history.toml")

	const writers = 8
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()

			repo, err := NewHistoryRepository(path)
			if err != nil {
				errs <- err
				return
			}
			errs <- repo.Append(context.Background(), sampleRecord("gen-"+strconv.Itoa(i)))
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	repo, err := NewHistoryRepository(path)
	require.NoError(t, err)
	records, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, writers)
}

func TestNewHistoryRepositoryRejectsEmptyPath(t *testing.T) {
	t.Parallel()

	_, err := NewHistoryRepository("")
	assert.Error(t, err)
}

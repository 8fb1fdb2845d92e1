package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version     int                `toml:"version"`
	Generations []generationSchema `toml:"generations"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported history schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type generationSchema struct {
	ID           string   `toml:"id"`
	CreatedAt    string   `toml:"created_at"`
	Model        string   `toml:"model"`
	PromptLength int      `toml:"prompt_length"`
	Text         string   `toml:"text,omitempty"`
	ImageURLs    []string `toml:"image_urls,omitempty"`
	SavedPaths   []string `toml:"saved_paths,omitempty"`
}

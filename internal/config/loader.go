package config

import (
	"encoding/json"
	"fmt"
	"os"

	"rudder/internal/domain"
)

// marshalIndent and writeFile are used by WriteDefault; tests may replace to force errors.
var (
	marshalIndent = json.MarshalIndent
	writeFile     = os.WriteFile
)

// Default returns the built-in configuration used when no config file exists:
// no external tools, text logs at info level.
func Default() *domain.Config {
	return &domain.Config{
		ExternalTools: []string{},
		Infra:         domain.InfraConfig{LogFormat: "text", LogLevel: "info"},
	}
}

// WriteDefault writes the default Config to path (e.g. rudder.json).
// Parent directories are not created.
func WriteDefault(path string) error {
	data, err := marshalIndent(Default(), "", "  ")
	if err != nil {
		return err
	}
	return writeFile(path, data, 0644)
}

// Save marshals cfg and writes it to path, replacing any existing file.
func Save(path string, cfg *domain.Config) error {
	data, err := marshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return writeFile(path, data, 0644)
}

// Load reads path (e.g. rudder.json) and unmarshals into domain.Config.
// Returns an error if the file is missing or invalid JSON.
func Load(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}
	var c domain.Config
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("config parse: %w", err)
	}
	return &c, nil
}

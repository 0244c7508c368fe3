package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdidvp/visualkraft/internal/domain"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the project directory.
const FileName = ".visualkraft.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .visualkraft.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .visualkraft.yaml from projectPath.
// Returns DefaultConfig if the file does not exist.
func (l *YAMLLoader) Load(projectPath string) (domain.HarnessConfig, error) {
	return l.LoadFile(filepath.Join(projectPath, FileName))
}

// LoadFile reads an explicit config path. Keys present in the file override
// the defaults; absent keys keep them. Lists replace the default list.
func (l *YAMLLoader) LoadFile(path string) (domain.HarnessConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.HarnessConfig{}, err
	}

	cfg := domain.DefaultConfig()
	// Explicit weights replace the default map rather than merging into it.
	cfg.Weights = nil
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.HarnessConfig{}, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	if cfg.Weights == nil {
		cfg.Weights = domain.DefaultWeights()
	}

	if err := cfg.Validate(); err != nil {
		return domain.HarnessConfig{}, fmt.Errorf("invalid %s: %w", filepath.Base(path), err)
	}

	return cfg, nil
}

// Marshal renders cfg as YAML, used by `visualkraft init`.
func Marshal(cfg domain.HarnessConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}

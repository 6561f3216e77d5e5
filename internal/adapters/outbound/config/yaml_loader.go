package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cdkparity/cdkparity/internal/domain"
)

const fileName = ".cdkparity.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .cdkparity.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .cdkparity.yaml from root. Returns DefaultConfig if the file
// does not exist; explicit values override defaults field by field.
func (l *YAMLLoader) Load(root string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	data, err := os.ReadFile(filepath.Join(root, fileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return domain.Config{}, err
	}

	var override domain.Config
	if err := yaml.Unmarshal(data, &override); err != nil {
		return domain.Config{}, fmt.Errorf("parsing %s: %w", fileName, err)
	}

	cfg = mergeConfig(cfg, override)

	if err := cfg.Validate(); err != nil {
		return domain.Config{}, fmt.Errorf("invalid %s: %w", fileName, err)
	}
	return cfg, nil
}

// mergeConfig overlays explicit overrides on top of the defaults. Explicit
// (non-zero) values always win; variant entries replace the default variant
// wholesale.
func mergeConfig(base, override domain.Config) domain.Config {
	result := base

	for variant, vc := range override.Variants {
		result.Variants[variant] = vc
	}
	if len(override.SynthCommand) > 0 {
		result.SynthCommand = override.SynthCommand
	}
	if len(override.DeployCommand) > 0 {
		result.DeployCommand = override.DeployCommand
	}
	if len(override.DestroyCommand) > 0 {
		result.DestroyCommand = override.DestroyCommand
	}
	if override.OutputDir != "" {
		result.OutputDir = override.OutputDir
	}
	if override.TemplateSuffix != "" {
		result.TemplateSuffix = override.TemplateSuffix
	}
	if len(override.BuildSteps) > 0 {
		result.BuildSteps = override.BuildSteps
	}
	if len(override.Tools) > 0 {
		result.Tools = override.Tools
	}
	if override.TimeoutSeconds > 0 {
		result.TimeoutSeconds = override.TimeoutSeconds
	}

	return result
}

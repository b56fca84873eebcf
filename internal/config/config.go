// Package config provides configuration loading for ctxgen.
//
// Configuration comes from, highest precedence first: command-line flags
// set explicitly by the user, CTXGEN_* environment variables, the project
// file (.ctxgen.yaml) and defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fyrsmithlabs/ctxgen/internal/logging"
)

// DefaultFile is the project configuration file looked up in the working
// directory when no explicit path is given.
const DefaultFile = ".ctxgen.yaml"

// Secret scanning modes.
const (
	SecretsOff    = "off"
	SecretsWarn   = "warn"
	SecretsRedact = "redact"
)

// Config holds the complete ctxgen configuration.
type Config struct {
	ContextDir  string         `koanf:"context_dir"`
	OutputDir   string         `koanf:"output_dir"`
	OutputFiles []string       `koanf:"output_files"`
	Exclude     []string       `koanf:"exclude"`
	IgnoreFile  string         `koanf:"ignore_file"`
	Logging     logging.Config `koanf:"logging"`
	Secrets     SecretsConfig  `koanf:"secrets"`
	Watch       WatchConfig    `koanf:"watch"`
}

// SecretsConfig controls scanning of the generated document.
type SecretsConfig struct {
	Mode      string `koanf:"mode"`      // off | warn | redact
	Allowlist string `koanf:"allowlist"` // optional TOML allowlist path
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	Debounce Duration `koanf:"debounce"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		ContextDir:  ".context",
		OutputDir:   ".",
		OutputFiles: []string{"AGENTS.md", "CLAUDE.md"},
		Logging:     *logging.NewDefaultConfig(),
		Secrets: SecretsConfig{
			Mode: SecretsOff,
		},
		Watch: WatchConfig{
			Debounce: Duration(300 * time.Millisecond),
		},
	}
}

// Validate validates the configuration.
//
// Returns an error if:
//   - context or output directory is empty
//   - an output file name is empty, repeated or contains a path separator
//   - logging, secrets or watch settings are invalid
func (c *Config) Validate() error {
	if c.ContextDir == "" {
		return errors.New("context_dir cannot be empty")
	}
	if c.OutputDir == "" {
		return errors.New("output_dir cannot be empty")
	}

	if len(c.OutputFiles) == 0 {
		return errors.New("output_files cannot be empty")
	}
	seen := make(map[string]bool, len(c.OutputFiles))
	for _, name := range c.OutputFiles {
		if name == "" || name == "." || name == ".." {
			return fmt.Errorf("invalid output file name %q", name)
		}
		if strings.ContainsAny(name, `/\`) {
			return fmt.Errorf("output file name %q must not contain a path separator", name)
		}
		if seen[name] {
			return fmt.Errorf("duplicate output file name %q", name)
		}
		seen[name] = true
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}

	switch c.Secrets.Mode {
	case SecretsOff, SecretsWarn, SecretsRedact:
	default:
		return fmt.Errorf("secrets.mode must be one of off, warn, redact; got %q", c.Secrets.Mode)
	}

	if c.Watch.Debounce.Duration() <= 0 {
		return errors.New("watch.debounce must be positive")
	}

	return nil
}

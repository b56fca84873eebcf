package secrets

import (
	"fmt"
	"os"
	"regexp"

	"github.com/BurntSushi/toml"
)

// Allowlist contains content patterns excluded from secret detection.
type Allowlist struct {
	Regexes   []string // Content regex patterns to ignore
	StopWords []string // Findings containing any of these are ignored
}

// LoadAllowlist loads and validates an allowlist file. An empty path
// returns nil.
func LoadAllowlist(path string) (*Allowlist, error) {
	if path == "" {
		return nil, nil
	}

	var config struct {
		Allowlist struct {
			Regexes   []string
			StopWords []string `toml:"stopwords"`
		}
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrAllowlistNotFound, path)
		}
		return nil, err
	}

	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidTOML, path, err)
	}

	// Validate content regex patterns (fail-fast)
	for _, pattern := range config.Allowlist.Regexes {
		if _, err := regexp.Compile(pattern); err != nil {
			return nil, fmt.Errorf("%w: invalid content pattern '%s' in %s: %v",
				ErrInvalidRegex, pattern, path, err)
		}
	}

	return &Allowlist{
		Regexes:   config.Allowlist.Regexes,
		StopWords: config.Allowlist.StopWords,
	}, nil
}

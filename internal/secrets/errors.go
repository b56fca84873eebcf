package secrets

import "errors"

var (
	// ErrInvalidRegex indicates a regex pattern failed to compile.
	ErrInvalidRegex = errors.New("invalid regex pattern")

	// ErrInvalidTOML indicates a TOML file could not be parsed.
	ErrInvalidTOML = errors.New("invalid TOML format")

	// ErrAllowlistNotFound indicates an allowlist file was not found.
	ErrAllowlistNotFound = errors.New("allowlist file not found")

	// ErrUnknownMode indicates an unsupported guard mode.
	ErrUnknownMode = errors.New("unknown secrets mode")
)

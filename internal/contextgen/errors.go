package contextgen

import "errors"

// Context directory validation errors.
var (
	ErrContextDirMissing = errors.New("context directory does not exist")
	ErrContextDirNotDir  = errors.New("context path is not a directory")
)

// Generation errors.
var (
	ErrFileRead = errors.New("failed to read file")
	ErrNotText  = errors.New("file is not valid UTF-8 text")
)

// Output errors.
var (
	ErrOutputDirCreate = errors.New("failed to create output directory")
	ErrOutputWrite     = errors.New("failed to write output file")
	ErrNoOutputFiles   = errors.New("no output files configured")
)

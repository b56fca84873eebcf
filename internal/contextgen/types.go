package contextgen

import "context"

// DefaultOutputFiles are the file names the document is written to.
var DefaultOutputFiles = []string{"AGENTS.md", "CLAUDE.md"}

// SourceFile is a file read from the context directory.
type SourceFile struct {
	// RelPath is relative to the context directory, with forward slashes.
	RelPath string
	Content string
}

// ProcessedFile is a context file after fold substitution.
type ProcessedFile struct {
	Path     string
	Content  string
	HasFolds bool
}

// PathMatcher reports whether a path, split into its components relative to
// the context directory, is excluded from collection.
//
// It is satisfied by go-git's gitignore.Matcher.
type PathMatcher interface {
	Match(path []string, isDir bool) bool
}

// DocumentFilter post-processes the rendered document before it is written.
type DocumentFilter interface {
	Filter(ctx context.Context, doc string) (string, error)
}

// Options configures a Generator. It is passed by value and never mutated.
type Options struct {
	// ContextDir is the directory scanned for context files.
	ContextDir string

	// OutputDir receives the output files. Created if missing.
	OutputDir string

	// OutputFiles names the files written inside OutputDir.
	// Defaults to DefaultOutputFiles when empty.
	OutputFiles []string

	// Exclude skips matching entries during collection (nil = none).
	Exclude PathMatcher

	// Filters run over the rendered document in order.
	Filters []DocumentFilter
}

// Stats summarizes a generation pass.
type Stats struct {
	Files       int
	FoldedFiles int
	Folds       int
	Bytes       int
}

// Package ignore builds gitignore-style exclusion matchers for collecting
// context files.
package ignore

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// Parser reads gitignore-style files.
type Parser struct {
	// IgnoreFiles are read relative to the root passed to ParseDir.
	IgnoreFiles []string
}

// NewParser creates a new ignore file parser.
func NewParser(ignoreFiles ...string) *Parser {
	return &Parser{IgnoreFiles: ignoreFiles}
}

// ParseDir reads every ignore file under root and returns their patterns in
// order, with repeats reduced to their last occurrence. Missing files are skipped.
func (p *Parser) ParseDir(root string) ([]string, error) {
	var patterns []string

	for _, ignoreFile := range p.IgnoreFiles {
		if ignoreFile == "" {
			continue
		}
		filePatterns, err := parseFile(filepath.Join(root, ignoreFile))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		patterns = append(patterns, filePatterns...)
	}

	return deduplicate(patterns), nil
}

// parseFile reads a single gitignore-style file and returns patterns.
func parseFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var patterns []string
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		if pattern := parseLine(scanner.Text()); pattern != "" {
			patterns = append(patterns, pattern)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return patterns, nil
}

// parseLine parses a single line from a gitignore file.
// Returns empty string for comments and blank lines.
func parseLine(line string) string {
	line = strings.TrimSuffix(line, "\r")

	// Trailing spaces are dropped unless escaped.
	trimmed := strings.TrimRight(line, " \t")
	if strings.HasSuffix(trimmed, `\`) && len(trimmed) < len(line) {
		trimmed += " "
	}
	line = trimmed

	if line == "" || strings.HasPrefix(line, "#") {
		return ""
	}
	return line
}

// NewMatcher compiles patterns into a matcher. Paths passed to Match are
// split into components relative to the context directory. Returns nil when
// there are no patterns.
func NewMatcher(patterns []string) gitignore.Matcher {
	ps := make([]gitignore.Pattern, 0, len(patterns))
	for _, p := range patterns {
		if p = parseLine(p); p != "" {
			ps = append(ps, gitignore.ParsePattern(p, nil))
		}
	}
	if len(ps) == 0 {
		return nil
	}
	return gitignore.NewMatcher(ps)
}

// Build combines configured patterns with those read from ignoreFile (a path
// relative to root, may be empty). The ignore file itself is excluded too.
func Build(root string, patterns []string, ignoreFile string) (gitignore.Matcher, error) {
	all := append([]string{}, patterns...)

	if ignoreFile != "" {
		filePatterns, err := NewParser(ignoreFile).ParseDir(root)
		if err != nil {
			return nil, err
		}
		all = append(all, "/"+filepath.ToSlash(ignoreFile))
		all = append(all, filePatterns...)
	}

	return NewMatcher(deduplicate(all)), nil
}

// deduplicate removes repeated patterns, keeping the last occurrence of
// each. The last matching pattern decides, so an earlier copy never changes
// the result but a later one can.
func deduplicate(patterns []string) []string {
	last := make(map[string]int, len(patterns))
	for i, p := range patterns {
		last[p] = i
	}

	result := make([]string, 0, len(last))
	for i, p := range patterns {
		if last[p] == i {
			result = append(result, p)
		}
	}

	return result
}

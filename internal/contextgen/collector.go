package contextgen

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/ctxgen/internal/logging"
)

var errSymlinkLoop = errors.New("symlink loop")

// Collector reads every file under a context directory.
type Collector struct {
	exclude PathMatcher
	logger  *logging.Logger
}

// NewCollector creates a collector. exclude may be nil.
func NewCollector(exclude PathMatcher, logger *logging.Logger) *Collector {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Collector{
		exclude: exclude,
		logger:  logger.Named("collector"),
	}
}

// ValidateContextDir checks that dir exists and is a directory.
func ValidateContextDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: '%s'", ErrContextDirMissing, dir)
		}
		return fmt.Errorf("stat context directory '%s': %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: '%s'", ErrContextDirNotDir, dir)
	}
	return nil
}

// Collect walks root recursively, following symlinks, and returns every
// non-directory entry sorted by relative path.
//
// Entries that cannot be enumerated are skipped. A file that cannot be read,
// or is not valid UTF-8, fails the whole collection.
func (c *Collector) Collect(ctx context.Context, root string) ([]SourceFile, error) {
	var files []SourceFile
	if err := c.walk(ctx, root, root, make(map[string]struct{}), &files); err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].RelPath < files[j].RelPath
	})
	return files, nil
}

// walk descends into dir. ancestors holds the resolved paths of the
// directories on the current descent so symlink loops are cut.
func (c *Collector) walk(ctx context.Context, root, dir string, ancestors map[string]struct{}, files *[]SourceFile) error {
	real, err := filepath.EvalSymlinks(dir)
	if err != nil {
		c.skip(ctx, dir, err)
		return nil
	}
	if _, ok := ancestors[real]; ok {
		c.skip(ctx, dir, errSymlinkLoop)
		return nil
	}
	ancestors[real] = struct{}{}
	defer delete(ancestors, real)

	entries, err := os.ReadDir(dir)
	if err != nil {
		// ReadDir may return the entries read before the error.
		c.skip(ctx, dir, err)
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		// Stat follows symlinks, so linked directories are descended.
		info, err := os.Stat(path)
		if err != nil {
			c.skip(ctx, path, err)
			continue
		}

		rel := relativePath(root, path)
		if c.excluded(rel, info.IsDir()) {
			c.logger.Debug(ctx, "excluded", zap.String("path", rel))
			continue
		}

		if info.IsDir() {
			if err := c.walk(ctx, root, path, ancestors, files); err != nil {
				return err
			}
			continue
		}

		content, err := readText(path)
		if err != nil {
			return err
		}
		*files = append(*files, SourceFile{RelPath: rel, Content: content})
	}

	return nil
}

func (c *Collector) excluded(rel string, isDir bool) bool {
	if c.exclude == nil {
		return false
	}
	return c.exclude.Match(strings.Split(rel, "/"), isDir)
}

func (c *Collector) skip(ctx context.Context, path string, err error) {
	c.logger.Debug(ctx, "skipping entry", zap.String("path", path), zap.Error(err))
}

// relativePath strips root from path. If that fails the walked path is used.
func relativePath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	return filepath.ToSlash(rel)
}

// readText reads a whole file and requires it to be UTF-8.
func readText(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrFileRead, path, err)
	}
	if !utf8.Valid(content) {
		return "", fmt.Errorf("%w: %s: %w", ErrFileRead, path, ErrNotText)
	}
	return string(content), nil
}

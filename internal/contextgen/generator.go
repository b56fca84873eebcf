package contextgen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/ctxgen/internal/logging"
)

// Generator turns a context directory into the output document.
type Generator struct {
	opts      Options
	collector *Collector
	logger    *logging.Logger
}

// NewGenerator creates a generator for opts. logger may be nil.
func NewGenerator(opts Options, logger *logging.Logger) *Generator {
	if logger == nil {
		logger = logging.NewNop()
	}
	if len(opts.OutputFiles) == 0 {
		opts.OutputFiles = DefaultOutputFiles
	}
	return &Generator{
		opts:      opts,
		collector: NewCollector(opts.Exclude, logger),
		logger:    logger.Named("generator"),
	}
}

// Options returns the generator configuration.
func (g *Generator) Options() Options {
	return g.opts
}

// Generate collects, folds and renders the context directory.
func (g *Generator) Generate(ctx context.Context) (string, error) {
	doc, _, err := g.GenerateWithStats(ctx)
	return doc, err
}

// GenerateWithStats is Generate that also reports what was processed.
func (g *Generator) GenerateWithStats(ctx context.Context) (string, Stats, error) {
	var stats Stats

	sources, err := g.collector.Collect(ctx, g.opts.ContextDir)
	if err != nil {
		return "", stats, err
	}

	files := make([]ProcessedFile, 0, len(sources))
	for _, src := range sources {
		content, folds := processFolds(src.Content, src.RelPath)
		files = append(files, ProcessedFile{
			Path:     src.RelPath,
			Content:  content,
			HasFolds: folds > 0,
		})

		stats.Files++
		stats.Folds += folds
		if folds > 0 {
			stats.FoldedFiles++
		}
		g.logger.Debug(ctx, "processed file",
			zap.String("path", src.RelPath),
			zap.Int("bytes", len(src.Content)),
			zap.Int("folds", folds),
		)
	}

	doc := Render(files)
	for _, f := range g.opts.Filters {
		doc, err = f.Filter(ctx, doc)
		if err != nil {
			return "", stats, err
		}
	}
	stats.Bytes = len(doc)

	g.logger.Info(ctx, "generated context document",
		zap.Int("files", stats.Files),
		zap.Int("folded_files", stats.FoldedFiles),
		zap.Int("folds", stats.Folds),
		zap.Int("bytes", stats.Bytes),
	)
	return doc, stats, nil
}

// WriteOutputs writes doc to every output file, creating the output
// directory first. Existing files are overwritten.
func (g *Generator) WriteOutputs(ctx context.Context, doc string) error {
	return WriteOutputs(ctx, g.logger, g.opts.OutputDir, g.opts.OutputFiles, doc)
}

// WriteOutputs writes doc to each of names inside dir.
func WriteOutputs(ctx context.Context, logger *logging.Logger, dir string, names []string, doc string) error {
	if len(names) == 0 {
		return ErrNoOutputFiles
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrOutputDirCreate, dir, err)
	}

	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrOutputWrite, path, err)
		}
		logger.Debug(ctx, "wrote output file", zap.String("path", path))
	}
	return nil
}

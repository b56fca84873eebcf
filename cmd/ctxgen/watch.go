package main

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/ctxgen/internal/config"
	"github.com/fyrsmithlabs/ctxgen/internal/contextgen"
	"github.com/fyrsmithlabs/ctxgen/internal/logging"
	"github.com/fyrsmithlabs/ctxgen/internal/watch"
)

// watchAndRegenerate regenerates the outputs after every burst of changes
// under the context directory until ctx is cancelled. A failed pass is
// logged and watching continues. Each pass gets its own run ID.
func watchAndRegenerate(ctx context.Context, cfg *config.Config, gen *contextgen.Generator, logger *logging.Logger, out io.Writer) error {
	w, err := watch.New(cfg.ContextDir, cfg.Watch.Debounce.Duration(), logger)
	if err != nil {
		return err
	}
	defer w.Stop()

	// Writing the outputs must not trigger the next pass.
	outputs := make([]string, 0, len(cfg.OutputFiles))
	for _, name := range cfg.OutputFiles {
		outputs = append(outputs, filepath.Join(cfg.OutputDir, name))
	}
	w.Ignore(outputs...)

	if isWithin(cfg.ContextDir, cfg.OutputDir) {
		logger.Warn(ctx, "output directory is inside the context directory, output files are collected as context",
			zap.String("context_dir", cfg.ContextDir),
			zap.String("output_dir", cfg.OutputDir),
		)
	}

	if err := w.Start(ctx); err != nil {
		return err
	}
	logger.Info(ctx, "watching for changes", zap.String("dir", cfg.ContextDir))

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "stopped watching")
			return nil
		case <-w.Changes():
			passCtx := logging.WithRunID(ctx)
			if err := generate(passCtx, gen, out); err != nil {
				logger.Error(passCtx, "regeneration failed", zap.Error(err))
			}
		}
	}
}

// isWithin reports whether dir is parent or a directory below it.
func isWithin(parent, dir string) bool {
	absParent, err := filepath.Abs(parent)
	if err != nil {
		return false
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(absParent, absDir)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

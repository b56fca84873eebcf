// Package main implements the ctxgen CLI, which folds a directory of context
// documents into AGENTS.md and CLAUDE.md.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/ctxgen/internal/config"
	"github.com/fyrsmithlabs/ctxgen/internal/contextgen"
	"github.com/fyrsmithlabs/ctxgen/internal/ignore"
	"github.com/fyrsmithlabs/ctxgen/internal/logging"
	"github.com/fyrsmithlabs/ctxgen/internal/secrets"
)

// Version information, set via ldflags at build time.
var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// rootOptions holds the flag values of a single command invocation.
type rootOptions struct {
	configPath string
	contextDir string
	outputDir  string
	exclude    []string
	logLevel   string
	secrets    string
	watch      bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "ctxgen",
		Short: "Generate AGENTS.md and CLAUDE.md from a context directory",
		Long: `ctxgen reads every file under a context directory, replaces
<ctxgen:fold>...</ctxgen:fold> regions with short placeholders and writes the
combined document to AGENTS.md and CLAUDE.md.

Examples:
  # Generate from .context into the current directory
  ctxgen

  # Use a different context and output directory
  ctxgen -c docs/context -o build

  # Regenerate whenever the context directory changes
  ctxgen --watch`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, gitCommit, buildDate),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.contextDir, "context-dir", "c", ".context", "directory containing context files")
	flags.StringVarP(&opts.outputDir, "output-dir", "o", ".", "directory to write AGENTS.md and CLAUDE.md")
	flags.StringVar(&opts.configPath, "config", "", "config file (default .ctxgen.yaml if present)")
	flags.StringSliceVar(&opts.exclude, "exclude", nil, "gitignore-style pattern to skip (repeatable)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	flags.StringVar(&opts.secrets, "secrets", "", "secret scanning: off, warn, redact")
	flags.BoolVarP(&opts.watch, "watch", "w", false, "regenerate when the context directory changes")

	return cmd
}

func run(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	logger, err := logging.NewLoggerTo(&cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.WithLogger(logging.WithRunID(ctx), logger)

	if err := contextgen.ValidateContextDir(cfg.ContextDir); err != nil {
		return err
	}

	gen, err := newGenerator(cfg, logger)
	if err != nil {
		return err
	}

	if err := generate(ctx, gen, cmd.OutOrStdout()); err != nil {
		return err
	}

	if !opts.watch {
		return nil
	}
	return watchAndRegenerate(ctx, cfg, gen, logger, cmd.OutOrStdout())
}

// loadConfig reads the configuration and applies every flag the user set
// explicitly on top of it.
func loadConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("context-dir") {
		cfg.ContextDir = opts.contextDir
	}
	if flags.Changed("output-dir") {
		cfg.OutputDir = opts.outputDir
	}
	if flags.Changed("exclude") {
		cfg.Exclude = append(cfg.Exclude, opts.exclude...)
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = opts.logLevel
	}
	if flags.Changed("secrets") {
		cfg.Secrets.Mode = opts.secrets
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

func newGenerator(cfg *config.Config, logger *logging.Logger) (*contextgen.Generator, error) {
	exclude, err := ignore.Build(cfg.ContextDir, cfg.Exclude, cfg.IgnoreFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load exclude patterns: %w", err)
	}

	opts := contextgen.Options{
		ContextDir:  cfg.ContextDir,
		OutputDir:   cfg.OutputDir,
		OutputFiles: cfg.OutputFiles,
	}
	if exclude != nil {
		opts.Exclude = exclude
	}

	mode, err := secrets.ParseMode(cfg.Secrets.Mode)
	if err != nil {
		return nil, err
	}
	if mode != secrets.ModeOff {
		guard, err := secrets.NewGuard(mode, cfg.Secrets.Allowlist, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize secret scanning: %w", err)
		}
		opts.Filters = append(opts.Filters, guard)
	}

	return contextgen.NewGenerator(opts, logger), nil
}

// generate runs one full pass and prints the confirmation line.
func generate(ctx context.Context, gen *contextgen.Generator, out io.Writer) error {
	doc, err := gen.Generate(ctx)
	if err != nil {
		return fmt.Errorf("failed to generate context markdown: %w", err)
	}
	if err := gen.WriteOutputs(ctx, doc); err != nil {
		return fmt.Errorf("failed to write output files: %w", err)
	}

	opts := gen.Options()
	logging.FromContext(ctx).Debug(ctx, "outputs written", zap.Strings("files", opts.OutputFiles))
	fmt.Fprintf(out, "✓ Generated %s in %s\n", joinNames(opts.OutputFiles), opts.OutputDir)
	return nil
}

// joinNames renders names as "A", "A and B" or "A, B and C".
func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
}

// Package contextgen builds a single agent context document from a directory
// of context files.
//
// Generation runs in three steps:
//
//  1. Collect walks the context directory (descending through symlinks) and
//     reads every file as UTF-8 text.
//  2. ProcessFolds replaces each <ctxgen:fold>...</ctxgen:fold> region with a
//     placeholder naming how many lines were hidden and where they live.
//  3. Render wraps each file in a <file> block and joins the blocks with a
//     blank line.
//
// The resulting document is written verbatim to every configured output file
// (AGENTS.md and CLAUDE.md by default).
//
// # Usage
//
//	gen := contextgen.NewGenerator(contextgen.Options{
//	    ContextDir: ".context",
//	    OutputDir:  ".",
//	}, logger)
//	doc, err := gen.Generate(ctx)
//	if err != nil {
//	    return fmt.Errorf("failed to generate context markdown: %w", err)
//	}
//	if err := gen.WriteOutputs(ctx, doc); err != nil {
//	    return fmt.Errorf("failed to write output files: %w", err)
//	}
//
// # Determinism
//
// Files are ordered by relative path (byte order, forward slashes) after the
// walk, so two runs over the same tree produce byte-identical output.
//
// # Errors
//
// Read failures abort the run with ErrFileRead. Failures enumerating the tree
// (unreadable directories, dangling symlinks, symlink loops) only exclude the
// affected entry.
package contextgen

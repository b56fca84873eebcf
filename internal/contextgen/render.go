package contextgen

import (
	"strings"
)

const blockSeparator = "\n\n"

// RenderFile formats one file as a <file> block. The has_folds attribute is
// only present when the file had folds. Paths are quoted but not escaped.
func RenderFile(f ProcessedFile) string {
	var b strings.Builder
	b.WriteString(`<file path="`)
	b.WriteString(f.Path)
	b.WriteString(`"`)
	if f.HasFolds {
		b.WriteString(` has_folds="true"`)
	}
	b.WriteString(">\n")
	b.WriteString(strings.TrimSpace(f.Content))
	b.WriteString("\n</file>")
	return b.String()
}

// Render joins the blocks of files, in the given order, with a blank line.
func Render(files []ProcessedFile) string {
	blocks := make([]string, 0, len(files))
	for _, f := range files {
		blocks = append(blocks, RenderFile(f))
	}
	return strings.Join(blocks, blockSeparator)
}

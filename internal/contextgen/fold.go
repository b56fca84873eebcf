package contextgen

import (
	"fmt"
	"strings"
)

// Fold markers. Matching is literal and case-sensitive.
const (
	FoldOpenTag  = "<ctxgen:fold>"
	FoldCloseTag = "</ctxgen:fold>"
)

// PlaceholderPrefix starts every placeholder emitted for a fold.
const PlaceholderPrefix = "[Folded content:"

// ProcessFolds replaces every fold region in content with a placeholder that
// names the hidden line count, the source line range and pathLabel.
//
// Each opening tag pairs with the first closing tag after it. Text outside
// fold regions is copied byte-for-byte. An opening tag without a closing tag
// is left as literal text. The bool result reports whether any fold was
// replaced; when false the returned string equals content.
func ProcessFolds(content, pathLabel string) (string, bool) {
	out, n := processFolds(content, pathLabel)
	return out, n > 0
}

// processFolds is ProcessFolds returning the number of folds replaced.
func processFolds(content, pathLabel string) (string, int) {
	var (
		b     strings.Builder
		last  int // end of the previous region
		folds int
	)

	for {
		open := strings.Index(content[last:], FoldOpenTag)
		if open < 0 {
			break
		}
		innerStart := last + open + len(FoldOpenTag)

		closeIdx := strings.Index(content[innerStart:], FoldCloseTag)
		if closeIdx < 0 {
			// No closing tag after this opener means none after any later one.
			break
		}
		innerEnd := innerStart + closeIdx

		if folds == 0 {
			b.Grow(len(content))
		}
		b.WriteString(content[last : last+open])
		b.WriteString(placeholder(
			countLines(content[innerStart:innerEnd]),
			countLines(content[:innerStart])+1,
			countLines(content[:innerEnd]),
			pathLabel,
		))

		last = innerEnd + len(FoldCloseTag)
		folds++
	}

	if folds == 0 {
		return content, 0
	}
	b.WriteString(content[last:])
	return b.String(), folds
}

func placeholder(n, startLine, endLine int, pathLabel string) string {
	word := "lines"
	if n == 1 {
		word = "line"
	}
	return fmt.Sprintf("%s %d %s (lines %d-%d). Read '%s' for full content.]",
		PlaceholderPrefix, n, word, startLine, endLine, pathLabel)
}

// countLines counts newline-delimited lines. A trailing newline does not
// start a new line and the empty string has zero lines:
//
//	""      -> 0
//	"a"     -> 1
//	"a\n"   -> 1
//	"a\nb"  -> 2
//	"\n"    -> 1
func countLines(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}

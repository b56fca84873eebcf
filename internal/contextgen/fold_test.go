package contextgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProcessFolds_NoFolds(t *testing.T) {
	inputs := []string{
		"",
		"This is regular content\nwith no folds.",
		"trailing newline\n",
		"only an opener <ctxgen:fold> and nothing else",
		"only a closer </ctxgen:fold>",
		"closer before opener </ctxgen:fold> x <ctxgen:fold>",
		"wrong case <CTXGEN:FOLD>x</CTXGEN:FOLD>",
	}

	for _, in := range inputs {
		out, hasFolds := ProcessFolds(in, "test.txt")
		assert.Equal(t, in, out)
		assert.False(t, hasFolds, "input %q", in)
	}
}

func TestProcessFolds_SingleFold(t *testing.T) {
	content := "Before\n<ctxgen:fold>Hidden content</ctxgen:fold>\nAfter"

	out, hasFolds := ProcessFolds(content, "test.txt")

	assert.True(t, hasFolds)
	assert.Equal(t,
		"Before\n[Folded content: 1 line (lines 2-2). Read 'test.txt' for full content.]\nAfter",
		out)
	assert.NotContains(t, out, "Hidden content")
	assert.Contains(t, out, "Read 'test.txt'")
	assert.Contains(t, out, PlaceholderPrefix)
}

func TestProcessFolds_MultipleFolds(t *testing.T) {
	content := "Start\n<ctxgen:fold>First</ctxgen:fold>\nMiddle\n<ctxgen:fold>Second\nSecond b</ctxgen:fold>\nEnd"

	out, hasFolds := ProcessFolds(content, "notes/x.md")

	assert.True(t, hasFolds)
	assert.Equal(t,
		"Start\n"+
			"[Folded content: 1 line (lines 2-2). Read 'notes/x.md' for full content.]\n"+
			"Middle\n"+
			"[Folded content: 2 lines (lines 4-5). Read 'notes/x.md' for full content.]\n"+
			"End",
		out)
	assert.Equal(t, 2, strings.Count(out, PlaceholderPrefix))
	for _, hidden := range []string{"First", "Second"} {
		assert.NotContains(t, out, hidden)
	}
}

func TestProcessFolds_PreservesOrderOfVisibleText(t *testing.T) {
	content := "a<ctxgen:fold>1</ctxgen:fold>b<ctxgen:fold>2</ctxgen:fold>c<ctxgen:fold>3</ctxgen:fold>d"

	out, n := processFolds(content, "p")

	assert.Equal(t, 3, n)
	assert.Equal(t, 3, strings.Count(out, PlaceholderPrefix))
	ia, ib, ic, id := strings.Index(out, "a["), strings.Index(out, "]b["), strings.Index(out, "]c["), strings.Index(out, "]d")
	assert.True(t, ia == 0 && ia < ib && ib < ic && ic < id, "visible text out of order: %q", out)
}

func TestProcessFolds_NonGreedy(t *testing.T) {
	content := "<ctxgen:fold>a</ctxgen:fold>KEEP<ctxgen:fold>b</ctxgen:fold>"

	out, hasFolds := ProcessFolds(content, "f")

	assert.True(t, hasFolds)
	assert.Contains(t, out, "KEEP")
	assert.Equal(t, 2, strings.Count(out, PlaceholderPrefix))
}

func TestProcessFolds_MultilineLineNumbers(t *testing.T) {
	// Two folded lines between plain lines.
	content := "X\n<ctxgen:fold>a\nb</ctxgen:fold>\nY"

	out, _ := ProcessFolds(content, "a.txt")

	assert.Equal(t, "X\n[Folded content: 2 lines (lines 2-3). Read 'a.txt' for full content.]\nY", out)
}

func TestProcessFolds_FoldStartsMidLine(t *testing.T) {
	content := "line1\nprefix <ctxgen:fold>hidden\nmore</ctxgen:fold> suffix\nline3"

	out, _ := ProcessFolds(content, "m.md")

	// "prefix " counts as a whole line, so the range starts after it.
	assert.Equal(t,
		"line1\nprefix [Folded content: 2 lines (lines 3-3). Read 'm.md' for full content.] suffix\nline3",
		out)
}

func TestProcessFolds_EdgeCaseLineCounts(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		placeholder string
	}{
		{
			name:        "empty fold at start",
			content:     "<ctxgen:fold></ctxgen:fold>",
			placeholder: "[Folded content: 0 lines (lines 1-0). Read 'e' for full content.]",
		},
		{
			name:        "empty fold after a line",
			content:     "a\n<ctxgen:fold></ctxgen:fold>",
			placeholder: "[Folded content: 0 lines (lines 2-1). Read 'e' for full content.]",
		},
		{
			name:        "fold ending on newline",
			content:     "<ctxgen:fold>a\nb\n</ctxgen:fold>",
			placeholder: "[Folded content: 2 lines (lines 1-2). Read 'e' for full content.]",
		},
		{
			name:        "fold of a single newline",
			content:     "x\n<ctxgen:fold>\n</ctxgen:fold>",
			placeholder: "[Folded content: 1 line (lines 2-2). Read 'e' for full content.]",
		},
		{
			name:        "fold starting with newline",
			content:     "<ctxgen:fold>\nbody</ctxgen:fold>",
			placeholder: "[Folded content: 2 lines (lines 1-2). Read 'e' for full content.]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, hasFolds := ProcessFolds(tt.content, "e")
			assert.True(t, hasFolds)
			assert.Contains(t, out, tt.placeholder)
		})
	}
}

func TestProcessFolds_UnmatchedTrailingOpener(t *testing.T) {
	content := "<ctxgen:fold>x</ctxgen:fold> tail <ctxgen:fold>never closed"

	out, hasFolds := ProcessFolds(content, "u")

	assert.True(t, hasFolds)
	assert.True(t, strings.HasSuffix(out, " tail <ctxgen:fold>never closed"))
	assert.Equal(t, 1, strings.Count(out, PlaceholderPrefix))
}

func TestProcessFolds_NestedOpenerPairsWithFirstCloser(t *testing.T) {
	content := "<ctxgen:fold>a<ctxgen:fold>b</ctxgen:fold>c</ctxgen:fold>"

	out, _ := ProcessFolds(content, "n")

	assert.Equal(t, "[Folded content: 1 line (lines 1-1). Read 'n' for full content.]c</ctxgen:fold>", out)
}

func TestCountLines(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"a", 1},
		{"a\n", 1},
		{"a\nb", 2},
		{"a\nb\n", 2},
		{"\n", 1},
		{"\n\n", 2},
		{"a\r\nb", 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, countLines(tt.in), "countLines(%q)", tt.in)
	}
}

package secrets

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/fyrsmithlabs/ctxgen/internal/logging"
)

const openAIKey = "sk-proj-abc123def456ghi789jkl012mno345pqr678stu901xyz"

func TestParseMode(t *testing.T) {
	for _, s := range []string{"off", "warn", "redact"} {
		m, err := ParseMode(s)
		require.NoError(t, err)
		assert.Equal(t, Mode(s), m)
	}

	_, err := ParseMode("block")
	assert.True(t, errors.Is(err, ErrUnknownMode))
}

func TestNewGuard_UnknownMode(t *testing.T) {
	_, err := NewGuard(Mode("loud"), "", nil)
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestGuard_Off(t *testing.T) {
	g, err := NewGuard(ModeOff, "", nil)
	require.NoError(t, err)

	doc := "const key = \"" + openAIKey + "\""
	out, err := g.Filter(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, doc, out)
}

func TestGuard_NoSecrets(t *testing.T) {
	tl := logging.NewTestLogger()
	g, err := NewGuard(ModeRedact, "", tl.Logger)
	require.NoError(t, err)

	doc := "<file path=\"a.md\">\nplain notes\n</file>"
	out, err := g.Filter(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, doc, out)
	assert.Empty(t, tl.All())
}

func TestGuard_Warn(t *testing.T) {
	tl := logging.NewTestLogger()
	g, err := NewGuard(ModeWarn, "", tl.Logger)
	require.NoError(t, err)

	doc := "<file path=\"env.md\">\nconst apiKey = \"" + openAIKey + "\"\n</file>"
	out, err := g.Filter(context.Background(), doc)
	require.NoError(t, err)

	assert.Equal(t, doc, out, "warn mode must not modify the document")
	tl.AssertLogged(t, zapcore.WarnLevel, "possible secret")
	tl.AssertNotContains(t, openAIKey)
}

func TestGuard_Redact(t *testing.T) {
	tl := logging.NewTestLogger()
	g, err := NewGuard(ModeRedact, "", tl.Logger)
	require.NoError(t, err)

	doc := "<file path=\"env.md\">\nconst apiKey = \"" + openAIKey + "\"\n</file>"
	out, err := g.Filter(context.Background(), doc)
	require.NoError(t, err)

	assert.NotContains(t, out, openAIKey)
	assert.Contains(t, out, "[REDACTED:")
	assert.True(t, strings.HasPrefix(out, "<file path=\"env.md\">\n"))
	tl.AssertLogged(t, zapcore.InfoLevel, "redacted secrets")
	tl.AssertNotContains(t, openAIKey)
}

func TestNewGuard_BadAllowlist(t *testing.T) {
	path := writeAllowlist(t, "not = [valid")

	_, err := NewGuard(ModeWarn, path, nil)
	assert.ErrorIs(t, err, ErrInvalidTOML)
}

func TestRedact(t *testing.T) {
	content := "a=SECRETVALUE b=SECRET"
	findings := []Finding{
		{RuleID: "short", Match: "SECRET"},
		{RuleID: "long", Match: "SECRETVALUE"},
		{RuleID: "empty", Match: ""},
	}

	assert.Equal(t, "a=[REDACTED:long] b=[REDACTED:short]", Redact(content, findings))
}

package secrets

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/ctxgen/internal/logging"
)

// Mode selects what a Guard does with findings.
type Mode string

const (
	ModeOff    Mode = "off"
	ModeWarn   Mode = "warn"
	ModeRedact Mode = "redact"
)

// ParseMode validates a mode string.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeOff, ModeWarn, ModeRedact:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Guard checks a rendered document for secrets.
type Guard struct {
	mode     Mode
	detector *Detector
	logger   *logging.Logger
}

// NewGuard creates a guard. allowlistPath may be empty. The Gitleaks
// detector is only built when mode is not off.
func NewGuard(mode Mode, allowlistPath string, logger *logging.Logger) (*Guard, error) {
	if _, err := ParseMode(string(mode)); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	g := &Guard{mode: mode, logger: logger.Named("secrets")}
	if mode == ModeOff {
		return g, nil
	}

	allowlist, err := LoadAllowlist(allowlistPath)
	if err != nil {
		return nil, fmt.Errorf("loading allowlist: %w", err)
	}
	g.detector, err = NewDetector(allowlist)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Mode returns the guard mode.
func (g *Guard) Mode() Mode {
	return g.mode
}

// Filter implements contextgen.DocumentFilter.
func (g *Guard) Filter(ctx context.Context, doc string) (string, error) {
	if g.mode == ModeOff {
		return doc, nil
	}

	findings := g.detector.Detect(doc)
	for _, f := range findings {
		g.logger.Warn(ctx, "possible secret in context document",
			zap.String("rule", f.RuleID),
			zap.String("description", f.RuleDesc),
			zap.Int("line", f.Line),
		)
	}

	if g.mode != ModeRedact || len(findings) == 0 {
		return doc, nil
	}

	redacted := Redact(doc, findings)
	g.logger.Info(ctx, "redacted secrets", zap.Int("count", len(findings)))
	return redacted, nil
}

// Redact replaces every finding's secret with a [REDACTED:rule-id] marker.
// Longer secrets are replaced first so overlapping matches redact fully.
func Redact(content string, findings []Finding) string {
	sorted := make([]Finding, len(findings))
	copy(sorted, findings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].Match) > len(sorted[j].Match)
	})

	for _, f := range sorted {
		if f.Match == "" {
			continue
		}
		content = strings.ReplaceAll(content, f.Match, fmt.Sprintf("[REDACTED:%s]", f.RuleID))
	}
	return content
}

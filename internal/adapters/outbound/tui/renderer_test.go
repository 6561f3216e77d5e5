package tui_test

import (
	"bytes"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"

	"github.com/cdkparity/cdkparity/internal/adapters/outbound/tui"
	"github.com/cdkparity/cdkparity/internal/domain"
)

// ansiRe strips color codes so golden files stay stable across terminal
// profiles.
var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiRe.ReplaceAllString(s, "")
}

func TestRenderSummary_Clean(t *testing.T) {
	report := &domain.RunReport{
		Duration: 1500 * time.Millisecond,
		Synth: []domain.SynthOutcome{
			{Example: domain.ExampleRef{Name: "advanced"}, Success: true, Template: "{}"},
		},
		Comparisons: []domain.ComparisonOutcome{
			{Name: "advanced", Matched: true},
		},
	}

	g := goldie.New(t)
	g.Assert(t, "summary_clean", []byte(stripANSI(tui.RenderSummary(report))))
}

func TestRenderSummary_Failures(t *testing.T) {
	report := &domain.RunReport{
		Duration:   90 * time.Second,
		CommitHash: "0123456789abcdef0123456789abcdef01234567",
		PhaseNotes: []string{"deploy phase skipped (--skip-deploy)"},
		Synth: []domain.SynthOutcome{
			{
				Example: domain.ExampleRef{Variant: domain.VariantPython, RelPath: "python/advanced", Name: "advanced"},
				Success: false,
				Err:     "pip exploded",
			},
		},
		Comparisons: []domain.ComparisonOutcome{
			{Name: "advanced", Matched: false, Diff: "--- typescript\n+++ python\n"},
		},
	}

	g := goldie.New(t)
	g.Assert(t, "summary_failures", []byte(stripANSI(tui.RenderSummary(report))))
}

func TestRenderSummary_TruncatesLongSynthError(t *testing.T) {
	report := &domain.RunReport{
		Synth: []domain.SynthOutcome{
			{
				Example: domain.ExampleRef{Variant: domain.VariantTypeScript, RelPath: "typescript/advanced"},
				Success: false,
				Err:     strings.Repeat("x", 1000),
			},
		},
	}

	out := stripANSI(tui.RenderSummary(report))
	assert.Contains(t, out, strings.Repeat("x", 300)+"...")
	assert.NotContains(t, out, strings.Repeat("x", 400))
}

func TestRenderDiff_ColorsAndTruncates(t *testing.T) {
	var lines []string
	lines = append(lines, "--- typescript", "+++ python")
	for i := 0; i < 30; i++ {
		lines = append(lines, "+added", "-removed")
	}
	out := stripANSI(tui.RenderDiff(strings.Join(lines, "\n")))

	assert.Contains(t, out, "+added")
	assert.Contains(t, out, "-removed")
	assert.Contains(t, out, "more lines")
}

func TestConsoleSink_WholeLines(t *testing.T) {
	var buf bytes.Buffer
	sink := tui.NewConsoleSink(&buf)

	sink.Section("Phase 1")
	sink.Event(domain.SeveritySuccess, "Templates match")
	sink.Event(domain.SeverityError, "Templates differ")
	sink.Line("raw tool output")

	out := stripANSI(buf.String())
	assert.Contains(t, out, "Phase 1")
	assert.Contains(t, out, "✓ Templates match")
	assert.Contains(t, out, "✗ Templates differ")
	assert.Contains(t, out, "    raw tool output\n")
}

func TestPlainSink(t *testing.T) {
	var buf bytes.Buffer
	sink := tui.NewPlainSink(&buf)

	sink.Section("Phase 2")
	sink.Event(domain.SeverityWarn, "ghes: no Python template")
	sink.Line("streamed")

	assert.Equal(t, "== Phase 2 ==\n[warn] ghes: no Python template\n    streamed\n", buf.String())
}

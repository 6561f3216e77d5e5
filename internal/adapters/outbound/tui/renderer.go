package tui

import (
	"fmt"
	"strings"

	"github.com/cdkparity/cdkparity/internal/domain"
	"github.com/cdkparity/cdkparity/internal/domain/template"
)

// Display truncation limits. The structured report always retains the full
// text; these only bound terminal output.
const (
	diffDisplayLines     = 20
	synthErrDisplayChars = 300
	lifecycleTailChars   = 500
)

// RenderSummary formats the final run summary for terminal output.
func RenderSummary(report *domain.RunReport) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Summary") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	for _, note := range report.PhaseNotes {
		b.WriteString("  " + dimStyle.Render(note) + "\n")
	}
	if len(report.PhaseNotes) > 0 {
		b.WriteString("\n")
	}

	renderSynthErrors(&b, report.SynthErrors())
	renderMismatches(&b, report.Mismatches())
	renderLifecycleErrors(&b, "Deployment Errors", report.DeployErrors(), func(l domain.LifecycleOutcome) string { return l.DeployErr })
	renderLifecycleErrors(&b, "Destroy Errors", report.DestroyErrors(), func(l domain.LifecycleOutcome) string { return l.DestroyErr })

	if report.CommitHash != "" {
		hash := report.CommitHash
		if len(hash) > 7 {
			hash = hash[:7]
		}
		b.WriteString("  " + dimStyle.Render("commit "+hash) + "\n")
	}
	b.WriteString("  " + dimStyle.Render("total time "+domain.FormatDuration(report.Duration)) + "\n\n")

	if report.Failures() == 0 {
		b.WriteString("  " + passStyle.Render("✓ All checks passed") + "\n")
	} else {
		b.WriteString("  " + failStyle.Render(fmt.Sprintf("✗ %d error(s) found", report.Failures())) + "\n")
	}

	return b.String()
}

func renderSynthErrors(b *strings.Builder, errs []domain.SynthOutcome) {
	if len(errs) == 0 {
		return
	}
	b.WriteString("  " + failStyle.Render(fmt.Sprintf("Synthesis Errors: %d", len(errs))) + "\n")
	for _, s := range errs {
		b.WriteString("    " + failStyle.Render(fmt.Sprintf("- %s: %s", s.Example.Variant, s.Example.RelPath)) + "\n")
		b.WriteString("      " + dimStyle.Render(truncateHead(s.Err, synthErrDisplayChars)) + "\n")
	}
	b.WriteString("\n")
}

func renderMismatches(b *strings.Builder, mismatches []domain.ComparisonOutcome) {
	if len(mismatches) == 0 {
		return
	}
	b.WriteString("  " + failStyle.Render(fmt.Sprintf("Template Comparison Errors: %d", len(mismatches))) + "\n")
	for _, c := range mismatches {
		b.WriteString("    " + failStyle.Render(fmt.Sprintf("- %s: templates differ", c.Name)) + "\n")
	}
	b.WriteString("\n")
}

func renderLifecycleErrors(b *strings.Builder, title string, errs []domain.LifecycleOutcome, text func(domain.LifecycleOutcome) string) {
	if len(errs) == 0 {
		return
	}
	b.WriteString("  " + failStyle.Render(fmt.Sprintf("%s: %d", title, len(errs))) + "\n")
	for _, l := range errs {
		b.WriteString("    " + failStyle.Render("- "+l.Example.RelPath) + "\n")
		b.WriteString("      " + dimStyle.Render(truncateTail(text(l), lifecycleTailChars)) + "\n")
	}
	b.WriteString("\n")
}

// RenderDiff colors a unified diff for terminal display, truncated to the
// display line limit.
func RenderDiff(diff string) string {
	var b strings.Builder
	for _, line := range strings.Split(template.TruncateDiff(diff, diffDisplayLines), "\n") {
		switch {
		case strings.HasPrefix(line, "+"):
			b.WriteString("    " + passStyle.Render(line) + "\n")
		case strings.HasPrefix(line, "-"):
			b.WriteString("    " + failStyle.Render(line) + "\n")
		default:
			b.WriteString("    " + line + "\n")
		}
	}
	return b.String()
}

func truncateHead(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func truncateTail(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}

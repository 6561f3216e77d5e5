package template

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Compare canonicalizes both documents and checks them for exact equality.
// On mismatch it returns a unified line diff labeled with the two variant
// names. The full diff is always returned; callers truncate for display.
func Compare(a, b, labelA, labelB string) (matched bool, diff string) {
	ca := Canonicalize(a)
	cb := Canonicalize(b)

	if ca == cb {
		return true, ""
	}

	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(ca),
		B:        difflib.SplitLines(cb),
		FromFile: labelA,
		ToFile:   labelB,
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		// difflib only errors on writer failures, which strings.Builder
		// never produces; fall back to a minimal marker just in case.
		return false, fmt.Sprintf("--- %s\n+++ %s\n(diff generation failed: %v)\n", labelA, labelB, err)
	}
	return false, text
}

// TruncateDiff keeps the first maxLines lines of diff for display and notes
// how many were elided.
func TruncateDiff(diff string, maxLines int) string {
	lines := strings.Split(diff, "\n")
	if len(lines) <= maxLines {
		return diff
	}
	kept := strings.Join(lines[:maxLines], "\n")
	return fmt.Sprintf("%s\n... (%d more lines)", kept, len(lines)-maxLines)
}

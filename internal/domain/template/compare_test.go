package template_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdkparity/cdkparity/internal/domain/template"
)

func TestCompare_Reflexive(t *testing.T) {
	doc := `{"Resources":{"R1":{"Type":"X","Properties":{"A":1,"B":[1,2,3]}}}}`

	matched, diff := template.Compare(doc, doc, "typescript", "python")
	assert.True(t, matched)
	assert.Empty(t, diff)
}

func TestCanonicalize_Idempotent(t *testing.T) {
	doc := `{"b":2,"a":{"d":4,"c":3}}`

	once := template.Canonicalize(doc)
	twice := template.Canonicalize(once)
	assert.Equal(t, once, twice)
}

func TestCompare_KeyOrderInvariant(t *testing.T) {
	a := `{"Resources":{"R1":{"Type":"X","Properties":{"A":1,"B":2}}},"Outputs":{"O1":{"Value":"v"}}}`
	b := `{"Outputs":{"O1":{"Value":"v"}},"Resources":{"R1":{"Properties":{"B":2,"A":1},"Type":"X"}}}`

	matched, diff := template.Compare(a, b, "typescript", "python")
	assert.True(t, matched)
	assert.Empty(t, diff)
}

func TestCompare_SequenceOrderPreserved(t *testing.T) {
	a := `{"List":[1,2,3]}`
	b := `{"List":[3,2,1]}`

	matched, _ := template.Compare(a, b, "typescript", "python")
	assert.False(t, matched)
}

func TestCompare_Mismatch(t *testing.T) {
	a := `{"Resources":{"R1":{"Type":"X"}}}`
	b := `{"Resources":{"R1":{"Type":"Y"}}}`

	matched, diff := template.Compare(a, b, "typescript", "python")
	require.False(t, matched)

	assert.Contains(t, diff, "--- typescript")
	assert.Contains(t, diff, "+++ python")
	assert.Contains(t, diff, `-      "Type": "X"`)
	assert.Contains(t, diff, `+      "Type": "Y"`)
}

func TestCompare_UnparseableFallsBackToVerbatim(t *testing.T) {
	matched, _ := template.Compare("not json at all", "not json at all", "a", "b")
	assert.True(t, matched)

	matched, diff := template.Compare("not json", "also not json", "a", "b")
	assert.False(t, matched)
	assert.NotEmpty(t, diff)
}

func TestCanonicalize_UnparseableReturnsInput(t *testing.T) {
	raw := "{{{ broken"
	assert.Equal(t, raw, template.Canonicalize(raw))
}

func TestTruncateDiff(t *testing.T) {
	lines := make([]string, 30)
	for i := range lines {
		lines[i] = "line"
	}
	diff := strings.Join(lines, "\n")

	out := template.TruncateDiff(diff, 20)
	assert.Contains(t, out, "(10 more lines)")
	assert.Len(t, strings.Split(out, "\n"), 21)

	short := "a\nb"
	assert.Equal(t, short, template.TruncateDiff(short, 20))
}

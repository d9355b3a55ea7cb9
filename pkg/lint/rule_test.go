package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withRegistry(t *testing.T, rules ...RuleDef) {
	t.Helper()
	saved := GetAll()
	Clear()
	for _, r := range rules {
		Register(r)
	}
	t.Cleanup(func() {
		Clear()
		for _, r := range saved {
			Register(r)
		}
	})
}

func TestRegistry(t *testing.T) {
	withRegistry(t,
		RuleDef{ID: "TS02", Group: "ordering", Message: "second"},
		RuleDef{ID: "TS01", Group: "naming", Message: "first"},
		RuleDef{ID: "TS03", Group: "ordering", Message: "third"},
	)

	assert.Equal(t, 3, Count())

	all := GetAll()
	require.Len(t, all, 3)
	assert.Equal(t, []string{"TS01", "TS02", "TS03"}, []string{all[0].ID, all[1].ID, all[2].ID})

	rule, ok := GetByID("TS02")
	require.True(t, ok)
	assert.Equal(t, "second", rule.Message)

	_, ok = GetByID("NOPE")
	assert.False(t, ok)

	ordering := GetByGroup("ordering")
	require.Len(t, ordering, 2)
	assert.Equal(t, "TS02", ordering[0].ID)
	assert.Equal(t, "TS03", ordering[1].ID)

	assert.Equal(t, []string{"naming", "ordering"}, Groups())
}

func TestRegistry_ReplaceByID(t *testing.T) {
	withRegistry(t, RuleDef{ID: "TS01", Message: "old"})

	Register(RuleDef{ID: "TS01", Message: "new"})

	assert.Equal(t, 1, Count())
	rule, _ := GetByID("TS01")
	assert.Equal(t, "new", rule.Message)
}

func TestRuleDef_Warning(t *testing.T) {
	rule := RuleDef{ID: "TS01", Message: "Whitespace error", Severity: SeverityWarning}

	w := rule.Warning("\tnode  {", 12)

	assert.Equal(t, Warning{
		RuleID:   "TS01",
		Severity: SeverityWarning,
		Message:  "Whitespace error",
		Text:     "\tnode  {",
		Line:     12,
	}, w)
}

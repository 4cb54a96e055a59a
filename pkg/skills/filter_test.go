package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter(t *testing.T) {
	tests := []struct {
		name       string
		patterns   []string
		candidates []string
		expected   []string
	}{
		{
			name:       "no patterns disables everything",
			patterns:   nil,
			candidates: []string{"search", "browse"},
			expected:   []string{},
		},
		{
			name:       "wildcard enables everything",
			patterns:   []string{"*"},
			candidates: []string{"search", "browse"},
			expected:   []string{"search", "browse"},
		},
		{
			name:       "negation after wildcard disables matches",
			patterns:   []string{"*", "!secret-*"},
			candidates: []string{"search", "secret-files", "browse"},
			expected:   []string{"search", "browse"},
		},
		{
			name:       "later rule re-enables",
			patterns:   []string{"*", "!secret-*", "secret-audit"},
			candidates: []string{"search", "secret-audit", "secret-files"},
			expected:   []string{"search", "secret-audit"},
		},
		{
			name:       "exact enable only",
			patterns:   []string{"search"},
			candidates: []string{"search", "browse"},
			expected:   []string{"search"},
		},
		{
			name:       "negation without prior enable is a no-op",
			patterns:   []string{"!secret-*"},
			candidates: []string{"search", "secret-files"},
			expected:   []string{},
		},
		{
			name:       "pattern order decides state",
			patterns:   []string{"!search", "search"},
			candidates: []string{"search"},
			expected:   []string{"search"},
		},
		{
			name:       "output preserves candidate order",
			patterns:   []string{"*"},
			candidates: []string{"zeta", "alpha", "mid"},
			expected:   []string{"zeta", "alpha", "mid"},
		},
		{
			name:       "duplicate candidates dropped",
			patterns:   []string{"*"},
			candidates: []string{"search", "search", "browse"},
			expected:   []string{"search", "browse"},
		},
		{
			name:       "separator keeps namespaced skills out of bare wildcard",
			patterns:   []string{"*"},
			candidates: []string{"search", "plugin/deploy"},
			expected:   []string{"search"},
		},
		{
			name:       "namespaced pattern matches namespaced skills",
			patterns:   []string{"plugin/*"},
			candidates: []string{"search", "plugin/deploy", "plugin/rollback"},
			expected:   []string{"plugin/deploy", "plugin/rollback"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enabled, err := Filter(tt.patterns, tt.candidates)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, enabled)
		})
	}
}

func TestFilterCandidateOrderInsensitiveSet(t *testing.T) {
	patterns := []string{"*", "!secret-*", "secret-audit"}
	forward := []string{"alpha", "secret-audit", "secret-x", "beta"}
	reversed := []string{"beta", "secret-x", "secret-audit", "alpha"}

	enabledForward, err := Filter(patterns, forward)
	require.NoError(t, err)
	enabledReversed, err := Filter(patterns, reversed)
	require.NoError(t, err)

	assert.ElementsMatch(t, enabledForward, enabledReversed,
		"enabled set must not depend on candidate enumeration order")
}

func TestCompileRulesInvalidPattern(t *testing.T) {
	_, err := CompileRules([]string{"[unclosed"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[unclosed")

	_, err = CompileRules([]string{"!["})
	require.Error(t, err)
}

func TestRulesEnabled(t *testing.T) {
	rules, err := CompileRules([]string{"*", "!secret-*"})
	require.NoError(t, err)

	assert.True(t, rules.Enabled("search"))
	assert.False(t, rules.Enabled("secret-files"))
	assert.False(t, Rules(nil).Enabled("search"))
}

func TestRulePattern(t *testing.T) {
	rules, err := CompileRules([]string{"*", "!secret-*"})
	require.NoError(t, err)
	require.Len(t, rules, 2)

	assert.Equal(t, "*", rules[0].Pattern())
	assert.Equal(t, "!secret-*", rules[1].Pattern())
}

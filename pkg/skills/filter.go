package skills

import (
	"strings"

	"github.com/gobwas/glob"
	"github.com/pkg/errors"
)

// Rule is a single glob rule from a persona's skill list. A leading "!"
// negates the rule, disabling the skills it matches.
type Rule struct {
	pattern string
	negate  bool
	matcher glob.Glob
}

// Pattern returns the rule's original pattern string, including any "!".
func (r Rule) Pattern() string {
	if r.negate {
		return "!" + r.pattern
	}
	return r.pattern
}

// Rules is an ordered rule list. Rules are evaluated in declared order and
// the last rule matching a name decides its state; names matched by no rule
// are disabled.
type Rules []Rule

// CompileRules compiles an ordered pattern list into Rules. Globs use '/'
// as separator so namespaced skill names (plugin/skill) are not swallowed
// by a bare "*". A malformed glob fails the whole list.
func CompileRules(patterns []string) (Rules, error) {
	rules := make(Rules, 0, len(patterns))
	for _, p := range patterns {
		pattern := p
		negate := strings.HasPrefix(pattern, "!")
		if negate {
			pattern = pattern[1:]
		}
		matcher, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, errors.Wrapf(err, "invalid skill pattern '%s'", p)
		}
		rules = append(rules, Rule{pattern: pattern, negate: negate, matcher: matcher})
	}
	return rules, nil
}

// Enabled reports whether name is enabled by the rule list.
func (rs Rules) Enabled(name string) bool {
	enabled := false
	for _, r := range rs {
		if r.matcher.Match(name) {
			enabled = !r.negate
		}
	}
	return enabled
}

// Filter returns the candidates the rules enable, preserving candidate
// order and dropping duplicates. Pattern order decides enablement only,
// never output order.
func (rs Rules) Filter(candidates []string) []string {
	enabled := make([]string, 0, len(candidates))
	seen := make(map[string]bool, len(candidates))
	for _, name := range candidates {
		if seen[name] {
			continue
		}
		seen[name] = true
		if rs.Enabled(name) {
			enabled = append(enabled, name)
		}
	}
	return enabled
}

// Filter compiles patterns and filters candidates in one step.
func Filter(patterns, candidates []string) ([]string, error) {
	rules, err := CompileRules(patterns)
	if err != nil {
		return nil, err
	}
	return rules.Filter(candidates), nil
}

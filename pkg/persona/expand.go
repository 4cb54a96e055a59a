package persona

import (
	"os"
	"regexp"
	"strings"
)

// VarSource supplies values for ${NAME} references during expansion.
type VarSource interface {
	Get(name string) (string, bool)
}

// MapSource is a VarSource backed by a plain map.
type MapSource map[string]string

// Get returns the mapped value for name.
func (m MapSource) Get(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

// EnvSource is a VarSource backed by the process environment.
type EnvSource struct{}

// Get looks up name in the process environment.
func (EnvSource) Get(name string) (string, bool) {
	return os.LookupEnv(name)
}

// ChainSource consults its sources in order and returns the first hit.
type ChainSource []VarSource

// Get returns the value from the first source that has name.
func (c ChainSource) Get(name string) (string, bool) {
	for _, s := range c {
		if s == nil {
			continue
		}
		if v, ok := s.Get(name); ok {
			return v, true
		}
	}
	return "", false
}

var varPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Expand substitutes ${NAME} references in text with values from source.
// Expansion is a single pass: substituted text is not re-scanned, and a
// reference the source cannot satisfy is left verbatim so the author sees
// the gap. There is no escape syntax; "$$" passes through unchanged.
func Expand(text string, source VarSource) string {
	if source == nil || !strings.Contains(text, "${") {
		return text
	}
	return varPattern.ReplaceAllStringFunc(text, func(token string) string {
		name := token[2 : len(token)-1]
		if v, ok := source.Get(name); ok {
			return v
		}
		return token
	})
}

// ExpandMap applies Expand to every value of values, returning a new map.
// The input map is never mutated.
func ExpandMap(values map[string]string, source VarSource) map[string]string {
	out := make(map[string]string, len(values))
	for k, v := range values {
		out[k] = Expand(v, source)
	}
	return out
}

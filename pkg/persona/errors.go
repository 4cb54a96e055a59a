package persona

import (
	"fmt"
	"strings"
)

// CycleError reports an inheritance loop: an identity was revisited while
// walking parent links. Chain holds the identities visited before the repeat,
// in walk order (leaf first), so the loop is locatable without re-deriving it.
type CycleError struct {
	Repeated string
	Chain    []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cyclic inheritance: persona %q revisited (walked: %s)",
		e.Repeated, strings.Join(e.Chain, " -> "))
}

// UnresolvedParentError reports an extends reference that no loaded persona
// satisfies. Referrer is the persona that declared the reference.
type UnresolvedParentError struct {
	Missing  string
	Referrer string
	Chain    []string
}

func (e *UnresolvedParentError) Error() string {
	return fmt.Sprintf("persona %q extends unknown persona %q (walked: %s)",
		e.Referrer, e.Missing, strings.Join(e.Chain, " -> "))
}

// NoCommandError reports a persona whose inheritance chain defines no cmd at
// any level.
type NoCommandError struct {
	Name  string
	Chain []string
}

func (e *NoCommandError) Error() string {
	return fmt.Sprintf("persona %q has no cmd anywhere in its inheritance chain (%s)",
		e.Name, strings.Join(e.Chain, " -> "))
}

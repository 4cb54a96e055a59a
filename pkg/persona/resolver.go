package persona

import (
	"sort"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/persona-kit/persona/pkg/skills"
)

// Lookup maps a persona identity (its name) to a loaded definition.
type Lookup func(name string) (*Persona, bool)

// MapLookup adapts a loaded persona table to a Lookup.
func MapLookup(personas map[string]*Persona) Lookup {
	return func(name string) (*Persona, bool) {
		p, ok := personas[name]
		return p, ok
	}
}

// ResolveOptions carries the caller-supplied collaborators for resolution:
// the candidate skill universe and the process-level variable source. Both
// may be empty.
type ResolveOptions struct {
	Candidates []string
	Variables  VarSource
}

// Resolve flattens the inheritance chain of the named persona into a
// Resolved configuration. It walks extends links leaf-to-root through
// lookup, rejects cycles and dangling references, folds frontmatter fields
// root-to-leaf, filters the accumulated skill rules against the candidate
// universe, and expands ${VAR} references in env values and prompt text.
//
// Merge policy is per-field: cmd and prompt are override fields (a level
// that defines them replaces the accumulated value), env is a shallow
// key-by-key merge with leaf-most definitions winning, and skill rules
// concatenate ancestors-first so leaf rules are evaluated last. Inputs are
// never mutated, so distinct personas may be resolved concurrently over a
// shared table.
func Resolve(name string, lookup Lookup, opts ResolveOptions) (*Resolved, error) {
	chain, err := walkChain(name, lookup)
	if err != nil {
		return nil, err
	}

	res := &Resolved{
		Env:              make(map[string]string),
		InheritanceChain: make([]string, 0, len(chain)),
	}
	var rules []string
	for _, p := range chain {
		if p.Name != "" {
			res.Name = p.Name
		}
		if p.Description != "" {
			res.Description = p.Description
		}
		if p.Path != "" {
			res.Path = p.Path
		}
		if len(p.Cmd) > 0 {
			res.Cmd = append([]string(nil), p.Cmd...)
		}
		for k, v := range p.Env {
			res.Env[k] = v
		}
		rules = append(rules, p.Skills...)
		if p.Prompt != "" {
			res.Prompt = p.Prompt
		}
		res.InheritanceChain = append(res.InheritanceChain, p.Name)
	}

	if len(res.Cmd) == 0 {
		return nil, &NoCommandError{Name: name, Chain: res.InheritanceChain}
	}

	compiled, err := skills.CompileRules(rules)
	if err != nil {
		return nil, errors.Wrapf(err, "persona %q", name)
	}
	res.Skills = compiled.Filter(opts.Candidates)

	// The merged env is consulted before the caller's variables so personas
	// can reference their own environment. Prompt expansion sees the already
	// expanded env values.
	res.Env = ExpandMap(res.Env, ChainSource{MapSource(res.Env), opts.Variables})
	res.Prompt = Expand(res.Prompt, ChainSource{MapSource(res.Env), opts.Variables})

	return res, nil
}

// walkChain follows extends links from name to a root and returns the chain
// in root-to-leaf order. A revisited identity is a CycleError; a reference
// lookup cannot satisfy is an UnresolvedParentError.
func walkChain(name string, lookup Lookup) ([]*Persona, error) {
	var chain []*Persona
	var walked []string
	seen := make(map[string]bool)

	for current := name; ; {
		if seen[current] {
			return nil, &CycleError{Repeated: current, Chain: walked}
		}
		p, ok := lookup(current)
		if !ok {
			if len(walked) == 0 {
				return nil, errors.Errorf("persona %q not found", current)
			}
			return nil, &UnresolvedParentError{
				Missing:  current,
				Referrer: walked[len(walked)-1],
				Chain:    walked,
			}
		}
		seen[current] = true
		walked = append(walked, current)
		chain = append(chain, p)
		if p.Extends == "" {
			break
		}
		current = p.Extends
	}

	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, nil
}

// ResolveAll resolves every named persona, collecting per-persona failures
// instead of aborting on the first one. The returned map holds the personas
// that resolved; the returned error, if any, aggregates every failure.
// Names are processed in sorted order so error aggregation is deterministic.
func ResolveAll(names []string, lookup Lookup, opts ResolveOptions) (map[string]*Resolved, error) {
	ordered := append([]string(nil), names...)
	sort.Strings(ordered)

	resolved := make(map[string]*Resolved, len(ordered))
	var errs *multierror.Error
	for _, name := range ordered {
		r, err := Resolve(name, lookup, opts)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		resolved[name] = r
	}
	return resolved, errs.ErrorOrNil()
}

// Package persona implements declarative agent persona definitions and their
// inheritance resolution. A persona is a markdown file whose YAML frontmatter
// declares how to invoke an agent (command, environment, skill rules) and
// whose body is the agent's prompt. Personas may extend a parent persona;
// Resolve flattens the inheritance chain into a single executable
// configuration with deterministic merge semantics per field.
package persona

// Frontmatter holds the declared fields of a persona file.
type Frontmatter struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description,omitempty"`
	Cmd         []string          `yaml:"cmd,omitempty"`     // ordered command fallback list
	Env         map[string]string `yaml:"env,omitempty"`     // values may contain ${VAR} references
	Skills      []string          `yaml:"skills,omitempty"`  // ordered glob rules, "!" prefix negates
	Extends     string            `yaml:"extends,omitempty"` // parent persona name, empty for roots
}

// Persona is a loaded persona definition: frontmatter plus the file it came
// from and its prompt body. Instances are inputs to Resolve and are never
// mutated by it.
type Persona struct {
	Frontmatter
	Path   string // source file path
	Prompt string // raw templated prompt body
}

// Resolved is the output of resolving a persona's inheritance chain: every
// field merged root-to-leaf, skills filtered down to the enabled set, and
// ${VAR} references expanded in env values and prompt text.
type Resolved struct {
	Name             string            `json:"name" yaml:"name"`
	Description      string            `json:"description,omitempty" yaml:"description,omitempty"`
	Cmd              []string          `json:"cmd" yaml:"cmd"`
	Env              map[string]string `json:"env,omitempty" yaml:"env,omitempty"`
	Skills           []string          `json:"skills,omitempty" yaml:"skills,omitempty"`
	Prompt           string            `json:"prompt,omitempty" yaml:"prompt,omitempty"`
	Path             string            `json:"path" yaml:"path"`
	InheritanceChain []string          `json:"inheritanceChain" yaml:"inheritanceChain"`
}

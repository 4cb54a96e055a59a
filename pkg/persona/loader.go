package persona

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/parser"

	"github.com/persona-kit/persona/pkg/logger"
)

// Loader reads persona definitions from markdown files with YAML
// frontmatter. Directories are searched in order, so earlier directories
// take precedence for personas with the same name.
type Loader struct {
	personaDirs []string
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader) error

// WithPersonaDirs sets custom persona directories.
func WithPersonaDirs(dirs ...string) LoaderOption {
	return func(l *Loader) error {
		if len(dirs) == 0 {
			return errors.New("at least one persona directory must be specified")
		}
		l.personaDirs = dirs
		return nil
	}
}

// WithDefaultDirs sets the default persona directories (./personas,
// ~/.persona/personas).
func WithDefaultDirs() LoaderOption {
	return func(l *Loader) error {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return errors.Wrap(err, "failed to get user home directory")
		}
		l.personaDirs = []string{
			"./personas", // repository-specific (higher precedence)
			filepath.Join(homeDir, ".persona", "personas"),
		}
		return nil
	}
}

// NewLoader creates a persona loader with optional configuration.
func NewLoader(opts ...LoaderOption) (*Loader, error) {
	l := &Loader{}

	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, errors.Wrap(err, "failed to apply loader option")
		}
	}

	if len(l.personaDirs) == 0 {
		if err := WithDefaultDirs()(l); err != nil {
			return nil, errors.Wrap(err, "failed to apply default persona directories")
		}
	}

	return l, nil
}

// findPersonaFile searches for a persona file in the configured directories.
func (l *Loader) findPersonaFile(name string) (string, error) {
	possibleNames := []string{
		name + ".md",
		name,
	}

	for _, dir := range l.personaDirs {
		for _, fileName := range possibleNames {
			fullPath := filepath.Join(dir, fileName)
			if _, err := os.Stat(fullPath); err == nil {
				return fullPath, nil
			}
		}
	}

	return "", errors.Errorf("persona '%s' not found in directories: %v", name, l.personaDirs)
}

// parseFrontmatter extracts the YAML frontmatter and the prompt body from a
// persona markdown file.
func parseFrontmatter(content string) (Frontmatter, string, error) {
	var fm Frontmatter

	md := goldmark.New(
		goldmark.WithExtensions(meta.Meta),
	)

	var buf bytes.Buffer
	pctx := parser.NewContext()

	if err := md.Convert([]byte(content), &buf, parser.WithContext(pctx)); err != nil {
		return fm, content, errors.Wrap(err, "failed to convert markdown")
	}

	metaData := meta.Get(pctx)
	if metaData != nil {
		if name, ok := metaData["name"].(string); ok {
			fm.Name = name
		}
		if description, ok := metaData["description"].(string); ok {
			fm.Description = description
		}
		if extends, ok := metaData["extends"].(string); ok {
			fm.Extends = extends
		}
		if cmd := metaData["cmd"]; cmd != nil {
			fm.Cmd = parseStringArrayField(cmd)
		}
		if skillRules := metaData["skills"]; skillRules != nil {
			fm.Skills = parseStringArrayField(skillRules)
		}
		if env := metaData["env"]; env != nil {
			fm.Env = parseStringMapField(env)
		}
	}

	return fm, extractBodyContent(content), nil
}

// parseStringArrayField handles both []interface{} (YAML array) and string
// (single value) formats.
func parseStringArrayField(field interface{}) []string {
	switch v := field.(type) {
	case []interface{}:
		var result []string
		for _, item := range v {
			if str, ok := item.(string); ok {
				if trimmed := strings.TrimSpace(str); trimmed != "" {
					result = append(result, trimmed)
				}
			}
		}
		return result
	case string:
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return []string{trimmed}
		}
		return []string{}
	default:
		return []string{}
	}
}

// parseStringMapField converts a YAML mapping to map[string]string.
// goldmark-meta yields map[interface{}]interface{}; scalar values are
// stringified so numeric env values round-trip.
func parseStringMapField(field interface{}) map[string]string {
	result := make(map[string]string)
	switch v := field.(type) {
	case map[interface{}]interface{}:
		for key, value := range v {
			k, ok := key.(string)
			if !ok {
				continue
			}
			result[k] = stringifyScalar(value)
		}
	case map[string]interface{}:
		for k, value := range v {
			result[k] = stringifyScalar(value)
		}
	}
	return result
}

func stringifyScalar(value interface{}) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", value)
}

// extractBodyContent returns the markdown body after the YAML frontmatter.
func extractBodyContent(content string) string {
	if !strings.HasPrefix(content, "---") {
		return content
	}

	lines := strings.Split(content, "\n")
	frontmatterEnd := -1

	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			frontmatterEnd = i
			break
		}
	}

	if frontmatterEnd == -1 {
		return content
	}

	return strings.TrimLeft(strings.Join(lines[frontmatterEnd+1:], "\n"), "\n")
}

// Load loads a single persona by name.
func (l *Loader) Load(ctx context.Context, name string) (*Persona, error) {
	logger.G(ctx).WithField("persona", name).Debug("Loading persona")

	path, err := l.findPersonaFile(name)
	if err != nil {
		return nil, err
	}

	return l.loadFile(path, name)
}

func (l *Loader) loadFile(path, fallbackName string) (*Persona, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read persona file '%s'", path)
	}

	fm, prompt, err := parseFrontmatter(string(content))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse frontmatter in persona '%s'", path)
	}

	if fm.Name == "" {
		fm.Name = fallbackName
	}
	if fm.Name == "" {
		return nil, errors.Errorf("persona '%s' has no name in frontmatter", path)
	}

	return &Persona{
		Frontmatter: fm,
		Path:        path,
		Prompt:      strings.TrimSpace(prompt),
	}, nil
}

// LoadAll loads every persona from the configured directories, keyed by
// persona name. Files that fail to parse are skipped with a warning;
// when the same name appears in multiple directories the first directory
// wins.
func (l *Loader) LoadAll(ctx context.Context) (map[string]*Persona, error) {
	personas := make(map[string]*Persona)

	for _, dir := range l.personaDirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			logger.G(ctx).WithField("dir", dir).Debug("Persona directory not found, skipping")
			continue
		}

		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
				continue
			}

			fallback := strings.TrimSuffix(entry.Name(), ".md")
			p, err := l.loadFile(filepath.Join(dir, entry.Name()), fallback)
			if err != nil {
				logger.G(ctx).WithField("file", entry.Name()).WithError(err).Warn("Failed to load persona, skipping")
				continue
			}

			if existing, exists := personas[p.Name]; exists {
				logger.G(ctx).WithFields(map[string]interface{}{
					"persona": p.Name,
					"kept":    existing.Path,
					"ignored": p.Path,
				}).Warn("Duplicate persona name, keeping higher-precedence file")
				continue
			}
			personas[p.Name] = p
		}
	}

	logger.G(ctx).WithField("count", len(personas)).Debug("Loaded personas")
	return personas, nil
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/persona-kit/persona/pkg/persona"
	"github.com/persona-kit/persona/pkg/presenter"
)

type ResolveConfig struct {
	Format string
}

func NewResolveConfig() *ResolveConfig {
	return &ResolveConfig{
		Format: "text",
	}
}

var resolveCmd = &cobra.Command{
	Use:   "resolve [persona...]",
	Short: "Resolve personas into executable configurations",
	Long: `Resolve one or more personas by walking their inheritance chains and
merging commands, environment variables, skill rules, and prompt text.
With no arguments, every loaded persona is resolved. A persona that fails
to resolve never blocks the others; all failures are reported together.

Examples:
  persona resolve reviewer
  persona resolve reviewer researcher --format json
  persona resolve --format yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		config := getResolveConfigFromFlags(cmd)
		resolvePersonasCmd(cmd.Context(), args, config)
	},
}

func init() {
	defaults := NewResolveConfig()
	resolveCmd.Flags().StringP("format", "f", defaults.Format, "Output format (text, json, yaml)")
}

func getResolveConfigFromFlags(cmd *cobra.Command) *ResolveConfig {
	config := NewResolveConfig()
	if format, err := cmd.Flags().GetString("format"); err == nil {
		config.Format = format
	}
	return config
}

func resolvePersonasCmd(ctx context.Context, names []string, config *ResolveConfig) {
	ws, err := loadWorkspace(ctx)
	if err != nil {
		presenter.Error(err, "Failed to load persona workspace")
		os.Exit(1)
	}

	if len(names) == 0 {
		names = ws.names()
	}
	if len(names) == 0 {
		presenter.Warning("No personas found")
		return
	}

	resolved, resolveErr := persona.ResolveAll(names, ws.lookup, ws.opts)

	if len(resolved) > 0 {
		if err := printResolved(resolved, config.Format); err != nil {
			presenter.Error(err, "Failed to format output")
			os.Exit(1)
		}
	}

	if resolveErr != nil {
		presenter.Error(resolveErr, "Some personas failed to resolve")
		os.Exit(1)
	}
}

func printResolved(resolved map[string]*persona.Resolved, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(resolved, "", "  ")
		if err != nil {
			return errors.Wrap(err, "failed to marshal JSON")
		}
		fmt.Println(string(data))
	case "yaml":
		data, err := yaml.Marshal(resolved)
		if err != nil {
			return errors.Wrap(err, "failed to marshal YAML")
		}
		fmt.Print(string(data))
	case "text":
		names := make([]string, 0, len(resolved))
		for name := range resolved {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			printResolvedText(resolved[name])
		}
	default:
		return errors.Errorf("unknown output format '%s'", format)
	}
	return nil
}

func printResolvedText(r *persona.Resolved) {
	presenter.Section(r.Name)
	if r.Description != "" {
		presenter.Info(fmt.Sprintf("Description: %s", r.Description))
	}
	presenter.Info(fmt.Sprintf("Path:        %s", r.Path))
	presenter.Info(fmt.Sprintf("Chain:       %s", strings.Join(r.InheritanceChain, " -> ")))
	presenter.Info(fmt.Sprintf("Cmd:         %s", strings.Join(r.Cmd, ", ")))

	if len(r.Env) > 0 {
		keys := make([]string, 0, len(r.Env))
		for k := range r.Env {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		presenter.Info("Env:")
		for _, k := range keys {
			presenter.Info(fmt.Sprintf("  %s=%s", k, r.Env[k]))
		}
	}

	if len(r.Skills) > 0 {
		presenter.Info(fmt.Sprintf("Skills:      %s", strings.Join(r.Skills, ", ")))
	}

	if r.Prompt != "" {
		presenter.Info("Prompt:")
		for _, line := range strings.Split(r.Prompt, "\n") {
			presenter.Info("  " + line)
		}
	}
}

package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/persona-kit/persona/pkg/config"
	"github.com/persona-kit/persona/pkg/presenter"
	"github.com/persona-kit/persona/pkg/skills"
)

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "List the discovered skill universe",
	Long:  `List all skills found in the configured skill directories. These are the candidates persona skill rules filter against.`,
	Run: func(cmd *cobra.Command, _ []string) {
		listSkillsCmd(cmd.Context())
	},
}

func listSkillsCmd(_ context.Context) {
	cfg, err := config.Load()
	if err != nil {
		presenter.Error(err, "Failed to load configuration")
		os.Exit(1)
	}

	var opts []skills.Option
	if len(cfg.SkillDirs) > 0 {
		opts = append(opts, skills.WithSkillDirs(cfg.SkillDirs...))
	}
	discovery, err := skills.NewDiscovery(opts...)
	if err != nil {
		presenter.Error(err, "Failed to initialize skill discovery")
		os.Exit(1)
	}

	discovered, err := discovery.DiscoverSkills()
	if err != nil {
		presenter.Error(err, "Failed to discover skills")
		os.Exit(1)
	}

	if len(discovered) == 0 {
		presenter.Warning("No skills found")
		return
	}

	names := make([]string, 0, len(discovered))
	for name := range discovered {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDESCRIPTION\tDIRECTORY")
	for _, name := range names {
		s := discovered[name]
		fmt.Fprintf(w, "%s\t%s\t%s\n", s.Name, s.Description, s.Directory)
	}
	w.Flush()
}

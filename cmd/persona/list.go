package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/persona-kit/persona/pkg/presenter"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all loaded personas",
	Long:  `List all personas found in the configured persona directories with their parent and source path.`,
	Run: func(cmd *cobra.Command, _ []string) {
		listPersonasCmd(cmd.Context())
	},
}

func listPersonasCmd(ctx context.Context) {
	ws, err := loadWorkspace(ctx)
	if err != nil {
		presenter.Error(err, "Failed to load persona workspace")
		os.Exit(1)
	}

	if len(ws.personas) == 0 {
		presenter.Warning("No personas found")
		return
	}

	names := ws.names()
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tEXTENDS\tPATH\tDESCRIPTION")
	for _, name := range names {
		p := ws.personas[name]
		extends := p.Extends
		if extends == "" {
			extends = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Name, extends, p.Path, p.Description)
	}
	w.Flush()
}

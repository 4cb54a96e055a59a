package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/persona-kit/persona/pkg/persona"
	"github.com/persona-kit/persona/pkg/presenter"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate every loaded persona",
	Long: `Resolve every persona and report per-persona diagnostics. Cycles,
references to unknown parents, and chains without any cmd are reported
individually; one broken persona never hides problems in the others.`,
	Run: func(cmd *cobra.Command, _ []string) {
		validatePersonasCmd(cmd.Context())
	},
}

func validatePersonasCmd(ctx context.Context) {
	ws, err := loadWorkspace(ctx)
	if err != nil {
		presenter.Error(err, "Failed to load persona workspace")
		os.Exit(1)
	}

	names := ws.names()
	if len(names) == 0 {
		presenter.Warning("No personas found")
		return
	}
	sort.Strings(names)

	failed := 0
	for _, name := range names {
		if _, err := persona.Resolve(name, ws.lookup, ws.opts); err != nil {
			presenter.Error(err, fmt.Sprintf("Persona '%s'", name))
			failed++
			continue
		}
		presenter.Success(fmt.Sprintf("Persona '%s' OK", name))
	}

	if failed > 0 {
		presenter.Separator()
		presenter.Error(fmt.Errorf("%d of %d personas failed validation", failed, len(names)), "Validation")
		os.Exit(1)
	}
}

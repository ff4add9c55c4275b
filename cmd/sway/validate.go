package main

import (
	"fmt"

	"github.com/mark3labs/sway/internal/definition"
	"github.com/mark3labs/sway/internal/tui/theme"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <form.yaml>...",
	Short: "Check form definitions for errors",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	s := theme.Current().S()
	failed := 0
	for _, path := range args {
		def, err := definition.Load(path)
		if err != nil {
			failed++
			fmt.Printf("%s %s: %v\n", s.StatusError.Render("✗"), path, err)
			continue
		}
		fmt.Printf("%s %s: %q, %d steps\n", s.Status.Render("✓"), path, def.Name, len(def.Steps))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d definitions invalid", failed, len(args))
	}
	return nil
}

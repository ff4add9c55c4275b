package main

import (
	"fmt"

	"github.com/mark3labs/sway/internal/definition"
	"github.com/spf13/cobra"
)

var showFlags struct {
	style string
	plain bool
}

var showCmd = &cobra.Command{
	Use:   "show <form.yaml>",
	Short: "Print a form definition with defaults filled in",
	Long: `Load a form definition and print it back as YAML after defaults have
been applied, so you can see exactly which configuration a run will use.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().StringVar(&showFlags.style, "style", "monokai", "Syntax highlighting style")
	showCmd.Flags().BoolVar(&showFlags.plain, "plain", false, "Disable syntax highlighting")
}

func runShow(cmd *cobra.Command, args []string) error {
	def, err := definition.Load(args[0])
	if err != nil {
		return err
	}
	data, err := def.Marshal()
	if err != nil {
		return fmt.Errorf("failed to marshal definition: %w", err)
	}

	formatter := stdoutFormatter()
	if showFlags.plain {
		formatter = ""
	}
	fmt.Print(highlight(string(data), "yaml", formatter, showFlags.style))
	return nil
}

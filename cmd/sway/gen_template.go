package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/sway/internal/template"
	"github.com/spf13/cobra"
)

var genTemplateFlags struct {
	output string
	force  bool
}

var genTemplateCmd = &cobra.Command{
	Use:   "gen-template",
	Short: "Write the default summary template to a file",
	Long: `Write the built-in summary template to a file so it can be customised
and passed to 'sway run --summary' or set as a form's summary.`,
	RunE: runGenTemplate,
}

func init() {
	genTemplateCmd.Flags().StringVarP(&genTemplateFlags.output, "output", "o", "summary.md", "Output file")
	genTemplateCmd.Flags().BoolVarP(&genTemplateFlags.force, "force", "f", false, "Overwrite existing file")
}

func runGenTemplate(cmd *cobra.Command, args []string) error {
	if !genTemplateFlags.force && fileExists(genTemplateFlags.output) {
		return fmt.Errorf("%s already exists\n\nUse --force to overwrite", genTemplateFlags.output)
	}
	if err := os.WriteFile(genTemplateFlags.output, []byte(template.DefaultSummary), 0644); err != nil {
		return fmt.Errorf("failed to write template: %w", err)
	}
	fmt.Printf("Template written to: %s\n", genTemplateFlags.output)
	return nil
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/sway/internal/mcpserver"
	"github.com/mark3labs/sway/internal/tui/wizard"
	"github.com/spf13/cobra"
)

var runFlags struct {
	formFlags
	mcp     bool
	mcpAddr string
}

var runCmd = &cobra.Command{
	Use:   "run <form.yaml>",
	Short: "Fill in a form in the terminal",
	Long: `Run a form interactively, one step at a time.

Every answer and transition is journaled (unless journal is disabled in the
config) so the run can be inspected later with 'sway history'. With --mcp the
run is also exposed over MCP so an agent can read and drive it while you work.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVarP(&runFlags.run, "run", "r", "", "Run id (default: form name and start time)")
	runCmd.Flags().StringVarP(&runFlags.summary, "summary", "s", "", "Summary template file")
	runCmd.Flags().BoolVar(&runFlags.linear, "linear", false, "Only allow visiting steps in order")
	runCmd.Flags().BoolVar(&runFlags.mcp, "mcp", false, "Expose the run over MCP")
	runCmd.Flags().StringVar(&runFlags.mcpAddr, "mcp-addr", "", "MCP listen address (default: random loopback port)")
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	def, err := loadDefinition(args[0], runFlags.formFlags)
	if err != nil {
		return err
	}

	rt, err := startRun(ctx, def, args[0], runFlags.formFlags)
	if err != nil {
		return err
	}
	defer rt.Close()

	if runFlags.mcp {
		srv := mcpserver.New(rt.form, version)
		if _, err := srv.Start(ctx, runFlags.mcpAddr); err != nil {
			return fmt.Errorf("failed to start MCP server: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Stop(shutdownCtx)
		}()
		fmt.Fprintf(os.Stderr, "MCP server for run %s: %s\n", rt.form.RunID(), srv.URL())
	}

	res, err := wizard.Run(ctx, rt.form, wizard.Options{DataDir: cfg.DataDir})
	if err != nil {
		return err
	}

	if !res.Submitted {
		fmt.Printf("Run %s not submitted.\n", res.Run)
		return nil
	}
	fmt.Println(res.Summary)
	return nil
}

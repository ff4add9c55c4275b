package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/sway/internal/logger"
	"github.com/mark3labs/sway/internal/mcpserver"
	"github.com/mark3labs/sway/internal/navigator"
	"github.com/spf13/cobra"
)

var serveFlags struct {
	formFlags
	addr string
}

var serveCmd = &cobra.Command{
	Use:   "serve <form.yaml>",
	Short: "Run a form headless, driven over MCP",
	Long: `Start a form run without a terminal UI and expose it over MCP.

An agent reads the form with form-status, answers with form-set and moves
with form-next, form-previous and form-goto until it calls form-submit.`,
	Args: cobra.ExactArgs(1),
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveFlags.run, "run", "r", "", "Run id (default: form name and start time)")
	serveCmd.Flags().StringVarP(&serveFlags.summary, "summary", "s", "", "Summary template file")
	serveCmd.Flags().BoolVar(&serveFlags.linear, "linear", false, "Only allow visiting steps in order")
	serveCmd.Flags().StringVar(&serveFlags.addr, "addr", "", "Listen address (default: random loopback port)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	def, err := loadDefinition(args[0], serveFlags.formFlags)
	if err != nil {
		return err
	}

	rt, err := startRun(ctx, def, args[0], serveFlags.formFlags)
	if err != nil {
		return err
	}
	defer rt.Close()

	unsubscribe := rt.form.Subscribe(func(c navigator.Change) {
		if c.Kind == navigator.ChangeNavigated && c.Event != nil {
			logger.Info("Run %s: %s -> %s (%s)", rt.form.RunID(), c.Event.From, c.Event.To, c.Event.Direction)
		}
	})
	defer unsubscribe()

	srv := mcpserver.New(rt.form, version)
	if _, err := srv.Start(ctx, serveFlags.addr); err != nil {
		return fmt.Errorf("failed to start MCP server: %w", err)
	}
	fmt.Printf("Serving run %s of %q at %s\n", rt.form.RunID(), def.Name, srv.URL())
	fmt.Println("Press Ctrl+C to stop.")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		return err
	}
	if rt.form.Submitted() {
		fmt.Println(rt.form.Summary())
	}
	return nil
}

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/mark3labs/sway/internal/config"
	"github.com/mark3labs/sway/internal/logger"
	"github.com/mark3labs/sway/internal/tui/theme"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	logoText1 = "█▀▀ █ █ █ ▄▀█ █▄█"
	logoText2 = "▄▄█ ▀▄▀▄▀ █▀█  █ "
)

// Version set via ldflags during build
var version = "dev"

var (
	// v carries flag values into config loading so flags win over env and files.
	v   = viper.New()
	cfg = config.Default()
)

func main() {
	defer func() { _ = logger.Close() }()

	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:               "sway",
	Short:             "Multi-step forms in the terminal, driven by a step navigation engine",
	PersistentPreRunE: loadConfig,
}

// renderLogo creates the logo with gradient colors
func renderLogo() string {
	t := theme.NewCatppuccinMocha()
	line1 := theme.ApplyGradient(logoText1, t.Primary, t.Secondary)
	line2 := theme.ApplyGradient(logoText2, t.Primary, t.Secondary)
	return strings.Join([]string{line1, line2}, "\n")
}

func init() {
	rootCmd.Long = renderLogo() + `

sway runs multi-step forms described in YAML. Each form run walks a step
navigator: steps are validated before moving on, lifecycle hooks run on
enter, exit and submit, and every event is journaled to embedded NATS
JetStream so runs can be replayed later. A running form can also be driven
by an agent over MCP.`

	flags := rootCmd.PersistentFlags()
	flags.String("data-dir", "", "Data directory for the journal and UI state (default: .sway)")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	flags.String("log-file", "", "Write logs to this file")
	flags.String("theme", "", "Color theme")

	for key, flag := range map[string]string{
		"data_dir":  "data-dir",
		"log_level": "log-level",
		"log_file":  "log-file",
		"theme":     "theme",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(fmt.Sprintf("binding %s flag: %v", flag, err))
		}
	}

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(genTemplateCmd)
	rootCmd.AddCommand(setupCmd)
}

// loadConfig resolves the configuration and applies logging and theme.
func loadConfig(cmd *cobra.Command, args []string) error {
	loaded, err := config.LoadWith(v)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg = loaded

	if err := logger.Configure(cfg.LogLevel, cfg.LogFile); err != nil {
		return fmt.Errorf("failed to configure logging: %w", err)
	}
	if err := theme.Set(cfg.Theme); err != nil {
		logger.Warn("%v, using %s", err, theme.DefaultName)
		_ = theme.Set("")
	}
	logger.Debug("Config loaded: data_dir=%s journal=%v theme=%s", cfg.DataDir, cfg.Journal, cfg.Theme)
	return nil
}

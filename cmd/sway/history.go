package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/mark3labs/sway/internal/journal"
	"github.com/mark3labs/sway/internal/tui/theme"
	"github.com/spf13/cobra"
)

var historyFlags struct {
	diff  bool
	json  bool
	style string
}

var historyCmd = &cobra.Command{
	Use:   "history [run]",
	Short: "List recorded runs or show one of them",
	Long: `Without arguments, list every run recorded in the journal.

With a run id, show how that run moved between steps and the answers it
ended with. --diff prints what each step changed as a unified diff.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().BoolVarP(&historyFlags.diff, "diff", "d", false, "Show answer changes per step")
	historyCmd.Flags().BoolVar(&historyFlags.json, "json", false, "Print as JSON")
	historyCmd.Flags().StringVar(&historyFlags.style, "style", "monokai", "Syntax highlighting style for diffs")
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	events, store, err := openJournal(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = events.Close() }()

	if len(args) == 0 {
		runs, err := store.ListRuns(ctx)
		if err != nil {
			return fmt.Errorf("failed to list runs: %w", err)
		}
		if historyFlags.json {
			return printJSON(runs)
		}
		if len(runs) == 0 {
			fmt.Println("No runs recorded.")
			return nil
		}
		fmt.Println(runsTable(runs))
		return nil
	}

	run, err := store.LoadRun(ctx, args[0])
	if err != nil {
		return err
	}
	if historyFlags.json {
		return printJSON(run)
	}
	printRun(run)
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runsTable(runs []journal.RunInfo) string {
	t := theme.Current()
	header := lipgloss.NewStyle().Foreground(theme.HexToColor(t.Primary)).Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Foreground(theme.HexToColor(t.FgBase)).Padding(0, 1)

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.HexToColor(t.BgOverlay))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		}).
		Headers("RUN", "FORM", "STARTED", "UPDATED", "EVENTS", "SUBMITTED")
	for _, r := range runs {
		submitted := "no"
		if r.Submitted {
			submitted = "yes"
		}
		tbl.Row(r.ID, r.Form, formatTime(r.Started), formatTime(r.Updated), fmt.Sprint(r.Events), submitted)
	}
	return tbl.String()
}

func printRun(r *journal.Run) {
	s := theme.Current().S()

	fmt.Println(s.ModalTitle.Render(fmt.Sprintf("Run %s", r.ID)))
	fmt.Printf("Form:      %s\n", r.Form)
	fmt.Printf("Started:   %s\n", formatTime(r.Started))
	fmt.Printf("Updated:   %s\n", formatTime(r.Updated))
	fmt.Printf("Step:      %s\n", r.CurrentStep)
	if r.Submitted {
		fmt.Printf("Submitted: %s\n", formatTime(r.SubmittedAt))
	} else {
		fmt.Println("Submitted: no")
	}

	fmt.Println()
	fmt.Println(s.Label.Render("Transitions"))
	if len(r.Transitions) == 0 {
		fmt.Println("  none")
	}
	for _, ev := range r.Transitions {
		fmt.Printf("  %s  %s → %s (%s)\n", ev.Timestamp.Format(time.TimeOnly), ev.From, ev.To, ev.Direction)
	}

	if historyFlags.diff {
		formatter := stdoutFormatter()
		for _, d := range journal.StepDiffs(r) {
			fmt.Println()
			fmt.Println(s.Label.Render(fmt.Sprintf("#%d %s at %s", d.Snapshot.Seq, d.Snapshot.Type, d.Snapshot.Step)))
			fmt.Print(highlight(d.Diff, "diff", formatter, historyFlags.style))
		}
		return
	}

	fmt.Println()
	fmt.Println(s.Label.Render("Answers"))
	keys := make([]string, 0, len(r.Answers))
	for k := range r.Answers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("  %s: %s\n", k, strings.ReplaceAll(r.Answers[k], "\n", "\n    "))
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

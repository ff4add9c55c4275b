package journal

import (
	"sort"
	"strings"

	"github.com/aymanbagabas/go-udiff"
)

// AnswerDiff returns a unified diff between two sets of answers, rendered as
// sorted "key: value" lines. It returns "" when they are equal.
func AnswerDiff(before, after map[string]string) string {
	a, b := renderAnswers(before), renderAnswers(after)
	if a == b {
		return ""
	}
	return udiff.Unified("before", "after", a, b)
}

// StepDiffs returns the diff introduced by each snapshot of r, skipping
// snapshots that changed nothing.
func StepDiffs(r *Run) []StepDiff {
	var out []StepDiff
	prev := map[string]string{}
	for _, snap := range r.Snapshots {
		if d := AnswerDiff(prev, snap.Answers); d != "" {
			out = append(out, StepDiff{Snapshot: snap, Diff: d})
		}
		prev = snap.Answers
	}
	return out
}

// StepDiff pairs a snapshot with the change it introduced.
type StepDiff struct {
	Snapshot Snapshot
	Diff     string
}

func renderAnswers(answers map[string]string) string {
	keys := make([]string, 0, len(answers))
	for k := range answers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		v := strings.ReplaceAll(answers[k], "\n", "\\n")
		sb.WriteString(k + ": " + v + "\n")
	}
	return sb.String()
}

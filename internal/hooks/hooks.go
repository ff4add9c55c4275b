package hooks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/mark3labs/sway/internal/logger"
)

// AnswerEnvPrefix prefixes the environment variables that carry answers.
const AnswerEnvPrefix = "SWAY_ANSWER_"

// Variables holds template variables that can be expanded in hook commands.
type Variables struct {
	Form      string
	Step      string
	Direction string
	Answers   map[string]string
}

// Result is the outcome of one hook run. Output holds stdout, followed by
// stderr when present, or a failure note.
type Result struct {
	Output string
	OK     bool
}

// Execute runs a hook command and returns its output.
// Template variables in the command ({{form}}, {{step}}, {{direction}}) are
// expanded before execution and answers are exported as SWAY_ANSWER_<NAME>.
// Failures are reported in the result (graceful degradation); only context
// cancellation returns an error.
func Execute(ctx context.Context, hook *HookConfig, workDir string, vars Variables) (Result, error) {
	if hook == nil || hook.Command == "" {
		return Result{OK: true}, nil
	}

	command := expandVariables(hook.Command, vars)
	logger.Debug("Executing hook command: %s", command)

	timeout := hook.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	execCtx, cancel := context.WithTimeout(ctx, time.Duration(timeout)*time.Second)
	defer cancel()

	cmd := exec.CommandContext(execCtx, "sh", "-c", command)
	cmd.Dir = workDir
	cmd.Env = append(os.Environ(), answerEnv(vars)...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	if ctx.Err() != nil {
		return Result{}, ctx.Err()
	}

	if errors.Is(execCtx.Err(), context.DeadlineExceeded) {
		logger.Warn("Hook command timed out after %ds: %s", timeout, command)
		return Result{Output: fmt.Sprintf("[Hook timed out after %ds]\nPartial output:\n%s", timeout, stdout.String())}, nil
	}

	output := stdout.String()
	if stderr.Len() > 0 {
		output += "\n[stderr]\n" + stderr.String()
	}

	if err != nil {
		logger.Warn("Hook command failed: %v", err)
		return Result{Output: fmt.Sprintf("[Hook command failed: %v]\n%s", err, output)}, nil
	}

	logger.Debug("Hook executed successfully, output length: %d bytes", len(output))
	return Result{Output: output, OK: true}, nil
}

// expandVariables replaces {{variable}} placeholders in the command string.
func expandVariables(command string, vars Variables) string {
	r := strings.NewReplacer(
		"{{form}}", vars.Form,
		"{{step}}", vars.Step,
		"{{direction}}", vars.Direction,
	)
	return r.Replace(command)
}

// answerEnv returns answers as sorted KEY=value pairs.
func answerEnv(vars Variables) []string {
	env := make([]string, 0, len(vars.Answers)+3)
	env = append(env,
		"SWAY_FORM="+vars.Form,
		"SWAY_STEP="+vars.Step,
		"SWAY_DIRECTION="+vars.Direction,
	)
	keys := make([]string, 0, len(vars.Answers))
	for k := range vars.Answers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		env = append(env, EnvName(k)+"="+vars.Answers[k])
	}
	return env
}

// EnvName maps an answer key such as "contact.email" to SWAY_ANSWER_CONTACT_EMAIL.
func EnvName(key string) string {
	var b strings.Builder
	b.WriteString(AnswerEnvPrefix)
	for _, r := range key {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToUpper(r))
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

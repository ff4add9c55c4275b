package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/sway/internal/form"
)

// statusResult renders the form status as JSON.
func (s *Server) statusResult() *mcp.CallToolResult {
	data, err := json.MarshalIndent(s.form.Status(), "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode status: %v", err))
	}
	return mcp.NewToolResultText(string(data))
}

// errorResult reports a failed operation together with the resulting status
// so the caller can see what blocked it.
func (s *Server) errorResult(err error) *mcp.CallToolResult {
	msg := err.Error()
	var hint string
	switch {
	case errors.Is(err, form.ErrStepInvalid):
		hint = "fix the fields listed under errors, or call form-next with force=true"
	case errors.Is(err, form.ErrNotComplete):
		hint = "navigate to the last step and make it valid first"
	case errors.Is(err, form.ErrNotReachable):
		hint = "linear forms only allow visited steps and the next step"
	}
	if hint != "" {
		msg += " (" + hint + ")"
	}

	data, jerr := json.MarshalIndent(s.form.Status(), "", "  ")
	if jerr == nil {
		msg += "\n" + string(data)
	}
	return mcp.NewToolResultError(msg)
}

func stringArg(request mcp.CallToolRequest, name string) (string, bool) {
	args := request.GetArguments()
	if args == nil {
		return "", false
	}
	v, ok := args[name].(string)
	return v, ok
}

// handleStatus returns the form status.
func (s *Server) handleStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.statusResult(), nil
}

// handleNext advances, optionally bypassing the validity gate.
func (s *Server) handleNext(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	force := false
	if args := request.GetArguments(); args != nil {
		if v, ok := args["force"].(bool); ok {
			force = v
		}
	}

	next := s.form.Next
	if force {
		next = s.form.ForceNext
	}
	if err := next(ctx); err != nil {
		return s.errorResult(err), nil
	}
	return s.statusResult(), nil
}

// handlePrevious moves back one step.
func (s *Server) handlePrevious(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.form.Previous(ctx); err != nil {
		return s.errorResult(err), nil
	}
	return s.statusResult(), nil
}

// handleGoTo jumps to a step.
func (s *Server) handleGoTo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	step, ok := stringArg(request, "step")
	if !ok || strings.TrimSpace(step) == "" {
		return mcp.NewToolResultError("missing 'step' parameter"), nil
	}
	if err := s.form.GoTo(ctx, step); err != nil {
		return s.errorResult(err), nil
	}
	return s.statusResult(), nil
}

// handleSet stores one answer.
func (s *Server) handleSet(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	step, ok := stringArg(request, "step")
	if !ok || step == "" {
		return mcp.NewToolResultError("missing 'step' parameter"), nil
	}
	field, ok := stringArg(request, "field")
	if !ok || field == "" {
		return mcp.NewToolResultError("missing 'field' parameter"), nil
	}
	value, ok := stringArg(request, "value")
	if !ok {
		return mcp.NewToolResultError("missing 'value' parameter"), nil
	}

	if err := s.form.SetValue(ctx, step, field, value); err != nil {
		return s.errorResult(err), nil
	}
	return s.statusResult(), nil
}

// handleSubmit submits the form and returns the rendered summary.
func (s *Server) handleSubmit(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.form.Submit(ctx); err != nil {
		return s.errorResult(err), nil
	}
	return mcp.NewToolResultText(s.form.Summary()), nil
}

// handleReset resets the form.
func (s *Server) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.form.Reset(ctx)
	return s.statusResult(), nil
}

package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// registerTools registers the form tools with the MCP server.
func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool("form-status",
			mcp.WithDescription("Show the current step, progress, answers and validation errors of the form"),
		),
		s.handleStatus,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("form-next",
			mcp.WithDescription("Advance to the next step. Fails while the current step is invalid unless force is set"),
			mcp.WithBoolean("force",
				mcp.Description("Skip the validity check (default: false)")),
		),
		s.handleNext,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("form-previous",
			mcp.WithDescription("Go back to the previous step"),
		),
		s.handlePrevious,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("form-goto",
			mcp.WithDescription("Jump to a step by id. Linear forms only allow visited steps and the next step"),
			mcp.WithString("step", mcp.Required(),
				mcp.Description("Step id")),
		),
		s.handleGoTo,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("form-set",
			mcp.WithDescription("Set the answer of one field"),
			mcp.WithString("step", mcp.Required(),
				mcp.Description("Step id")),
			mcp.WithString("field", mcp.Required(),
				mcp.Description("Field name")),
			mcp.WithString("value", mcp.Required(),
				mcp.Description("New value; booleans are 'true' or 'false'")),
		),
		s.handleSet,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("form-submit",
			mcp.WithDescription("Submit the form. The last step must be current and valid"),
		),
		s.handleSubmit,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("form-reset",
			mcp.WithDescription("Discard all answers and return to the first step"),
		),
		s.handleReset,
	)
}

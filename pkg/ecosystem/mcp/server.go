// Package mcp exposes the strategy validator and store as MCP tools, so an
// agent loop can probe, diff, and persist candidate strategies the same way
// the CLI does.
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ormasoftchile/pitwall/pkg/store"
	"github.com/ormasoftchile/pitwall/pkg/validate"
)

// NewServer creates an MCP server with the pitwall tools registered.
// Store-backed tools operate on st; the validation tools are pure.
func NewServer(version string, st store.Store) *server.MCPServer {
	s := server.NewMCPServer(
		"pitwall",
		version,
		server.WithToolCapabilities(true),
	)

	h := &handlers{store: st, policy: validate.DefaultPolicy()}

	s.AddTool(
		mcp.NewTool("validate_strategy_yaml",
			mcp.WithDescription("Validate strategy YAML text against the strategy JSON schema. Returns 'OK' or an error report."),
			mcp.WithString("yaml_text", mcp.Required(), mcp.Description("The strategy document YAML text")),
		),
		h.validateSchema,
	)

	s.AddTool(
		mcp.NewTool("check_yaml_completeness",
			mcp.WithDescription("Cheap pre-check that the YAML has all required top-level sections and a non-empty stint list."),
			mcp.WithString("yaml_text", mcp.Required(), mcp.Description("The strategy document YAML text")),
		),
		h.checkCompleteness,
	)

	s.AddTool(
		mcp.NewTool("domain_validate_strategy",
			mcp.WithDescription("Domain-level validation (beyond schema) for race logic. Returns 'OK' or a multi-line report of errors/warnings."),
			mcp.WithString("yaml_text", mcp.Required(), mcp.Description("The strategy document YAML text")),
		),
		h.validateDomain,
	)

	s.AddTool(
		mcp.NewTool("diff_strategies",
			mcp.WithDescription("Unified diff between the baseline strategy and the provided YAML text."),
			mcp.WithString("new_yaml_text", mcp.Required(), mcp.Description("The candidate strategy YAML text")),
		),
		h.diff,
	)

	s.AddTool(
		mcp.NewTool("read_strategy_yaml",
			mcp.WithDescription("Return a stored strategy as YAML text. Defaults to 'default_strategy'."),
			mcp.WithString("strategy", mcp.Description("Strategy name (optional)")),
		),
		h.read,
	)

	s.AddTool(
		mcp.NewTool("read_strategy_schema",
			mcp.WithDescription("Return the JSON Schema used to validate strategy YAML."),
		),
		h.schema,
	)

	s.AddTool(
		mcp.NewTool("save_updated_strategy",
			mcp.WithDescription("Persist strategy YAML under its metadata.strategy_name (or 'default_strategy')."),
			mcp.WithString("yaml_text", mcp.Required(), mcp.Description("The strategy document YAML text")),
		),
		h.save,
	)

	s.AddTool(
		mcp.NewTool("list_strategies",
			mcp.WithDescription("List the names of all stored strategies."),
		),
		h.list,
	)

	return s
}

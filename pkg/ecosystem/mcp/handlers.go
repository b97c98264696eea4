package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ormasoftchile/pitwall/pkg/diffreport"
	"github.com/ormasoftchile/pitwall/pkg/store"
	"github.com/ormasoftchile/pitwall/pkg/strategy"
	"github.com/ormasoftchile/pitwall/pkg/validate"
)

type handlers struct {
	store  store.Store
	policy validate.Policy
}

// validateSchema implements the validate_strategy_yaml tool.
func (h *handlers) validateSchema(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, ok := yamlArg(req)
	if !ok {
		return errorResult("yaml_text argument is required"), nil
	}
	if err := validate.ValidateSchema(text); err != nil {
		return errorResult(err.Error()), nil
	}
	return textResult("OK"), nil
}

// checkCompleteness implements the check_yaml_completeness tool.
func (h *handlers) checkCompleteness(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, ok := yamlArg(req)
	if !ok {
		return errorResult("yaml_text argument is required"), nil
	}
	c := validate.CheckComplete(text)
	if !c.Complete() {
		return errorResult(c.Render()), nil
	}
	return textResult(c.Render()), nil
}

// validateDomain implements the domain_validate_strategy tool.
func (h *handlers) validateDomain(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, ok := yamlArg(req)
	if !ok {
		return errorResult("yaml_text argument is required"), nil
	}
	r := h.policy.ValidateDomain(text)
	if r.Blocking() {
		return errorResult(r.Render()), nil
	}
	return textResult(r.Render()), nil
}

// diff implements the diff_strategies tool: the stored baseline against a
// candidate document.
func (h *handlers) diff(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	candidate, _ := args["new_yaml_text"].(string)
	if candidate == "" {
		return errorResult("new_yaml_text argument is required"), nil
	}
	baseline, err := h.store.Load(ctx, store.DefaultName)
	if err != nil {
		return errorResult(fmt.Sprintf("load baseline: %s", err)), nil
	}
	return textResult(diffreport.Unified(baseline, candidate)), nil
}

// read implements the read_strategy_yaml tool.
func (h *handlers) read(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	name, _ := args["strategy"].(string)
	if name == "" {
		name = store.DefaultName
	}
	text, err := h.store.Load(ctx, name)
	if err != nil {
		return errorResult(err.Error()), nil
	}
	return textResult(text), nil
}

// schema implements the read_strategy_schema tool.
func (h *handlers) schema(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, err := strategy.GenerateJSONSchema()
	if err != nil {
		return errorResult(err.Error()), nil
	}
	return textResult(string(data)), nil
}

// save implements the save_updated_strategy tool. The document is stored
// under metadata.strategy_name, falling back to the baseline name, and is
// re-serialized so stored documents share one canonical form.
func (h *handlers) save(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, ok := yamlArg(req)
	if !ok {
		return errorResult("yaml_text argument is required"), nil
	}
	doc, err := strategy.Parse(text)
	if err != nil {
		return errorResult(fmt.Sprintf("ERROR saving strategy: %s", err)), nil
	}
	name := doc.Metadata.StrategyName
	if name == "" {
		name = store.DefaultName
	}
	canonical, err := strategy.Dump(doc)
	if err != nil {
		return errorResult(fmt.Sprintf("ERROR saving strategy: %s", err)), nil
	}
	if err := h.store.Save(ctx, name, canonical); err != nil {
		return errorResult(fmt.Sprintf("ERROR saving strategy: %s", err)), nil
	}
	return textResult(fmt.Sprintf("SAVED strategy %s to database.", name)), nil
}

// list implements the list_strategies tool.
func (h *handlers) list(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	names, err := h.store.List(ctx)
	if err != nil {
		return errorResult(err.Error()), nil
	}
	return textResult(strings.Join(names, "\n")), nil
}

func yamlArg(req mcp.CallToolRequest) (string, bool) {
	args := req.GetArguments()
	text, _ := args["yaml_text"].(string)
	return text, text != ""
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

func errorResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(msg),
		},
		IsError: true,
	}
}

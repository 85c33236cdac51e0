// Package mcptools exposes the methodology advisor as MCP tools.
//
// Each tool is a struct holding its dependencies, with Definition returning
// the mcp.Tool schema and Handle processing a call.
package mcptools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"methodology-advisor/internal/consultations"
	"methodology-advisor/internal/expert"
)

// RecommendTool handles the recommend_methodology MCP tool.
type RecommendTool struct {
	svc *consultations.Service
}

// NewRecommendTool creates a RecommendTool backed by svc.
func NewRecommendTool(svc *consultations.Service) *RecommendTool {
	return &RecommendTool{svc: svc}
}

// Definition returns the MCP tool definition for recommend_methodology.
func (t *RecommendTool) Definition() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(
			"Recommend a project management methodology from project attributes. " +
				"Every attribute is optional; omitted ones are reported back so the caller can ask for them.",
		),
	}
	for _, f := range expert.Fields {
		opts = append(opts, mcp.WithString(string(f), mcp.Description(fieldDescriptions[f])))
	}
	return mcp.NewTool("recommend_methodology", opts...)
}

var fieldDescriptions = map[expert.Field]string{
	expert.FieldSize:           "Project size: small, medium or large",
	expert.FieldComplexity:     "Complexity: low, medium or high",
	expert.FieldDeadline:       "Deadline: flexible, strict or no deadline",
	expert.FieldTeamExperience: "Team experience: low, medium or high",
	expert.FieldRisk:           "Risk level: low, medium or high",
}

// Handle processes the recommend_methodology tool call.
func (t *RecommendTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	fact, err := consultations.ParseAttributes(req.GetArguments())
	if err != nil {
		if errors.Is(err, expert.ErrInvalidFact) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("failed to read attributes: %v", err)), nil
	}

	c := t.svc.Recommend(ctx, fact, "")
	return mcp.NewToolResultText(consultations.RenderText(c)), nil
}

// RulesTool handles the list_rules MCP tool.
type RulesTool struct {
	svc *consultations.Service
}

// NewRulesTool creates a RulesTool backed by svc.
func NewRulesTool(svc *consultations.Service) *RulesTool {
	return &RulesTool{svc: svc}
}

// Definition returns the MCP tool definition for list_rules.
func (t *RulesTool) Definition() mcp.Tool {
	return mcp.NewTool("list_rules",
		mcp.WithDescription("List the advisor's rules in evaluation order with their conditions."),
	)
}

// Handle processes the list_rules tool call.
func (t *RulesTool) Handle(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var b strings.Builder
	for i, r := range t.svc.RuleSummaries() {
		fmt.Fprintf(&b, "%d. %s -> %s\n   when %s\n", i+1, r.Name, r.Approach, r.Pattern)
	}
	return mcp.NewToolResultText(b.String()), nil
}

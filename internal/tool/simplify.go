package tool

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hyperifyio/clauseease/internal/readability"
	"github.com/hyperifyio/clauseease/internal/simplify"
	"github.com/hyperifyio/clauseease/internal/workflow"
)

// MetadataSimplifyText describes the simplify_text tool.
var MetadataSimplifyText = &mcp.Tool{
	Name: "simplify_text",
	Description: "Rewrite contract or legal text in plainer language. " +
		"basic removes filler words, intermediate swaps formal vocabulary for everyday words, " +
		"advanced also rewrites legal boilerplate and shortens long sentences. " +
		"Returns the simplified text with readability scores before and after.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"text"},
		"properties": map[string]interface{}{
			"text": map[string]interface{}{
				"type":        "string",
				"description": "The text to simplify",
			},
			"level": map[string]interface{}{
				"type":        "string",
				"description": "Simplification level. Defaults to intermediate.",
				"enum":        []string{"basic", "intermediate", "advanced"},
			},
			"mode": map[string]interface{}{
				"type":        "string",
				"description": "rules for the deterministic rule pass, model to rewrite with the configured language model.",
				"enum":        []string{"rules", "model"},
			},
			"summarize": map[string]interface{}{
				"type":        "boolean",
				"description": "Also return an extractive summary of the simplified text.",
			},
		},
	},
}

// InputSimplifyText is the input for the SimplifyText tool.
type InputSimplifyText struct {
	Text      string `json:"text"`
	Level     string `json:"level"`
	Mode      string `json:"mode"`
	Summarize bool   `json:"summarize"`
}

// OutputSimplifyText is the output for the SimplifyText tool.
type OutputSimplifyText struct {
	Simplified  string             `json:"simplified"`
	Summary     string             `json:"summary,omitempty"`
	Level       string             `json:"level"`
	Mode        string             `json:"mode"`
	Before      readability.Scores `json:"before"`
	After       readability.Scores `json:"after"`
	BeforeGrade string             `json:"before_grade"`
	AfterGrade  string             `json:"after_grade"`
}

// SimplifyText simplifies the input text at the requested level.
func (t *Tools) SimplifyText(ctx context.Context, _ *mcp.CallToolRequest, input InputSimplifyText) (*mcp.CallToolResult, OutputSimplifyText, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, OutputSimplifyText{}, fmt.Errorf("text is required")
	}
	level := simplify.Intermediate
	if input.Level != "" {
		l, err := simplify.ParseLevel(input.Level)
		if err != nil {
			return nil, OutputSimplifyText{}, err
		}
		level = l
	}
	mode, err := workflow.ParseMode(input.Mode)
	if err != nil {
		return nil, OutputSimplifyText{}, err
	}
	res, err := t.engine().Simplify(ctx, workflow.SimplifyRequest{
		Text:      input.Text,
		Level:     level,
		Mode:      mode,
		Summarize: input.Summarize,
	})
	if err != nil {
		return nil, OutputSimplifyText{}, err
	}
	return nil, OutputSimplifyText{
		Simplified:  res.Simplified,
		Summary:     res.Summary,
		Level:       res.Level.String(),
		Mode:        string(res.Mode),
		Before:      res.Before,
		After:       res.After,
		BeforeGrade: res.BeforeGrade,
		AfterGrade:  res.AfterGrade,
	}, nil
}

package tool

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hyperifyio/clauseease/internal/workflow"
)

// MetadataSummarizeText describes the summarize_text tool.
var MetadataSummarizeText = &mcp.Tool{
	Name: "summarize_text",
	Description: "Summarize contract text. The hybrid method picks the most representative sentences " +
		"by TF-IDF salience, position and length and keeps them in document order. " +
		"The abstractive method asks the configured language model for a new summary.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"text"},
		"properties": map[string]interface{}{
			"text": map[string]interface{}{
				"type":        "string",
				"description": "The text to summarize",
			},
			"method": map[string]interface{}{
				"type":        "string",
				"description": "Summarization method. Defaults to hybrid.",
				"enum":        []string{"hybrid", "abstractive"},
			},
			"ratio": map[string]interface{}{
				"type":        "number",
				"description": "Fraction of sentences to keep for the hybrid method, in (0, 1]. Defaults to 0.4.",
			},
		},
	},
}

// InputSummarizeText is the input for the SummarizeText tool.
type InputSummarizeText struct {
	Text   string  `json:"text"`
	Method string  `json:"method"`
	Ratio  float64 `json:"ratio"`
}

// OutputSummarizeText is the output for the SummarizeText tool.
type OutputSummarizeText struct {
	Summary       string `json:"summary"`
	Method        string `json:"method"`
	SentenceCount int    `json:"sentence_count"`
	// Selected lists the kept sentence indexes for the hybrid method.
	Selected []int `json:"selected,omitempty"`
}

// SummarizeText summarizes the input text.
func (t *Tools) SummarizeText(ctx context.Context, _ *mcp.CallToolRequest, input InputSummarizeText) (*mcp.CallToolResult, OutputSummarizeText, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, OutputSummarizeText{}, fmt.Errorf("text is required")
	}
	method, err := workflow.ParseMethod(input.Method)
	if err != nil {
		return nil, OutputSummarizeText{}, err
	}
	res, err := t.engine().Summarize(ctx, workflow.SummarizeRequest{Text: input.Text, Method: method, Ratio: input.Ratio})
	if err != nil {
		return nil, OutputSummarizeText{}, err
	}
	return nil, OutputSummarizeText{
		Summary:       res.Summary,
		Method:        string(res.Method),
		SentenceCount: res.SentenceCount,
		Selected:      res.Selected,
	}, nil
}

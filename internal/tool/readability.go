package tool

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hyperifyio/clauseease/internal/readability"
)

// MetadataAnalyzeReadability describes the analyze_readability tool.
var MetadataAnalyzeReadability = &mcp.Tool{
	Name: "analyze_readability",
	Description: "Score how hard a text is to read. Returns Flesch Reading Ease, Flesch-Kincaid grade " +
		"and Gunning fog, their labels, and sentence, word and punctuation counts.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"text"},
		"properties": map[string]interface{}{
			"text": map[string]interface{}{
				"type":        "string",
				"description": "The text to analyze",
			},
		},
	},
}

// InputAnalyzeReadability is the input for the AnalyzeReadability tool.
type InputAnalyzeReadability struct {
	Text string `json:"text"`
}

// OutputAnalyzeReadability is the output for the AnalyzeReadability tool.
type OutputAnalyzeReadability struct {
	Scores           readability.Scores `json:"scores"`
	GradeLabel       string             `json:"grade_label"`
	EaseLabel        string             `json:"ease_label"`
	SentenceCount    int                `json:"sentence_count"`
	WordCount        int                `json:"word_count"`
	PunctuationCount int                `json:"punctuation_count"`
}

// AnalyzeReadability scores the input text.
func (t *Tools) AnalyzeReadability(_ context.Context, _ *mcp.CallToolRequest, input InputAnalyzeReadability) (*mcp.CallToolResult, OutputAnalyzeReadability, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, OutputAnalyzeReadability{}, fmt.Errorf("text is required")
	}
	rep, err := t.engine().Analyze(input.Text)
	if err != nil {
		return nil, OutputAnalyzeReadability{}, err
	}
	return nil, OutputAnalyzeReadability{
		Scores:           rep.Scores,
		GradeLabel:       rep.GradeLabel,
		EaseLabel:        rep.EaseLabel,
		SentenceCount:    rep.SentenceCount,
		WordCount:        rep.WordCount,
		PunctuationCount: rep.PunctuationCount,
	}, nil
}

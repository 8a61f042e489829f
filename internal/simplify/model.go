package simplify

import (
	"context"
	"fmt"
	"strings"

	"github.com/hyperifyio/clauseease/internal/budget"
	"github.com/hyperifyio/clauseease/internal/llm"
	"github.com/hyperifyio/clauseease/internal/prompt"
)

// ModelSimplifier runs the rule pass for a level and then asks a generative
// model to rewrite the result using that level's prompt profile.
type ModelSimplifier struct {
	Generator llm.Generator
	// Model is the backend model name, used to size the input window.
	Model string
}

// Simplify returns the model rewrite of text at level. Unknown levels return
// text unchanged without calling the model.
func (m *ModelSimplifier) Simplify(ctx context.Context, text string, level Level) (string, error) {
	if strings.TrimSpace(text) == "" {
		return EmptyInputMessage, nil
	}
	if !level.Valid() {
		return text, nil
	}
	if m == nil || m.Generator == nil {
		return "", llm.ErrNotConfigured
	}
	p := prompt.GetProfile(level.String())
	input := budget.FitPrompt(p.SystemPrompt, p.Render(Simplify(text, level)),
		budget.InputBudget(m.Model, p.MaxLength, p.InputTokens))
	out, err := m.Generator.Generate(ctx, llm.GenerateRequest{
		Prompt:       input,
		MaxLength:    p.MaxLength,
		MinLength:    p.MinLength,
		BeamCount:    p.BeamCount,
		SystemPrompt: p.SystemPrompt,
	})
	if err != nil {
		return "", fmt.Errorf("model simplify %s: %w", level, err)
	}
	return out, nil
}

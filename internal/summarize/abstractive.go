package summarize

import (
	"context"
	"fmt"
	"strings"

	"github.com/hyperifyio/clauseease/internal/budget"
	"github.com/hyperifyio/clauseease/internal/llm"
	"github.com/hyperifyio/clauseease/internal/prompt"
)

// EmptyInputMessage is returned by Abstractive when there is nothing to
// summarize.
const EmptyInputMessage = "Please provide text to summarize."

// Abstractive summarizes by asking a generative model to rewrite the text.
type Abstractive struct {
	Generator llm.Generator
	Model     string
	// Profile overrides the summary profile when its Prefix is set.
	Profile prompt.Profile
}

func (a *Abstractive) profile() prompt.Profile {
	if a.Profile.Prefix != "" {
		return a.Profile
	}
	return prompt.GetProfile(string(prompt.Summary))
}

// Summarize returns the model's summary of text.
func (a *Abstractive) Summarize(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return EmptyInputMessage, nil
	}
	if a == nil || a.Generator == nil {
		return "", llm.ErrNotConfigured
	}
	p := a.profile()
	input := budget.FitPrompt(p.SystemPrompt, p.Render(text), budget.InputBudget(a.Model, p.MaxLength, p.InputTokens))
	out, err := a.Generator.Generate(ctx, llm.GenerateRequest{
		Prompt:       input,
		MaxLength:    p.MaxLength,
		MinLength:    p.MinLength,
		BeamCount:    p.BeamCount,
		SystemPrompt: p.SystemPrompt,
	})
	if err != nil {
		return "", fmt.Errorf("abstractive summary: %w", err)
	}
	return out, nil
}

package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/hyperifyio/clauseease/internal/cache"
)

var (
	// ErrNotConfigured means no client or model name was supplied.
	ErrNotConfigured = errors.New("generator not configured")
	// ErrEmptyGeneration means the model returned no usable text.
	ErrEmptyGeneration = errors.New("model returned no text")
)

// GenerateRequest describes one text generation.
type GenerateRequest struct {
	Prompt string
	// MaxLength caps the output in tokens. Zero leaves the backend default.
	MaxLength int
	// MinLength asks for at least this many words. Zero disables.
	MinLength int
	// BeamCount is the number of candidates to request.
	BeamCount int
	// SystemPrompt replaces the generator's system message when set.
	SystemPrompt string
}

// Generator turns a prompt into text.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

const defaultSystemPrompt = "You rewrite legal and contract text for ordinary readers. " +
	"Keep every obligation, party, amount and date. Do not add advice or facts that are not in the input. " +
	"Reply with the rewritten text only."

// ChatGenerator implements Generator over a chat completion backend.
type ChatGenerator struct {
	Client Client
	Model  string
	// SystemPrompt, when non-empty, overrides the default system message for
	// requests that do not carry their own.
	SystemPrompt string
	Cache        *cache.LLMCache
}

// Generate requests BeamCount candidates and returns the first one that
// reaches MinLength words, or the longest candidate when none does.
func (g *ChatGenerator) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	if g == nil || g.Client == nil || strings.TrimSpace(g.Model) == "" {
		return "", ErrNotConfigured
	}
	system := g.systemPrompt(req)
	user := buildUserMessage(req)

	key := cache.KeyFrom(g.Model, fmt.Sprintf("%s\n\n%s\n\nmax=%d min=%d beams=%d", system, user, req.MaxLength, req.MinLength, req.BeamCount))
	if g.Cache != nil {
		if e, ok := g.Cache.GetEntry(ctx, key); ok {
			log.Debug().Str("model", g.Model).Msg("generation cache hit")
			return e.Text, nil
		}
	}

	n := req.BeamCount
	if n < 1 {
		n = 1
	}
	resp, err := g.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		MaxTokens:   req.MaxLength,
		Temperature: 0.2,
		N:           n,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	out := pickCandidate(resp.Choices, req.MinLength)
	if out == "" {
		return "", ErrEmptyGeneration
	}
	if g.Cache != nil {
		if err := g.Cache.SaveEntry(ctx, key, cache.Entry{Model: g.Model, Text: out}); err != nil {
			log.Warn().Err(err).Msg("generation cache save failed")
		}
	}
	return out, nil
}

func (g *ChatGenerator) systemPrompt(req GenerateRequest) string {
	if strings.TrimSpace(req.SystemPrompt) != "" {
		return req.SystemPrompt
	}
	if strings.TrimSpace(g.SystemPrompt) != "" {
		return g.SystemPrompt
	}
	return defaultSystemPrompt
}

func buildUserMessage(req GenerateRequest) string {
	if req.MinLength <= 0 {
		return req.Prompt
	}
	return fmt.Sprintf("%s\n\nWrite at least %d words.", req.Prompt, req.MinLength)
}

func pickCandidate(choices []openai.ChatCompletionChoice, minWords int) string {
	longest := ""
	for _, c := range choices {
		text := strings.TrimSpace(c.Message.Content)
		if text == "" {
			continue
		}
		if len(strings.Fields(text)) >= minWords {
			return text
		}
		if len(text) > len(longest) {
			longest = text
		}
	}
	return longest
}

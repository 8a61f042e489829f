package summarize

import (
	"context"
	"errors"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"github.com/hyperifyio/clauseease/internal/llm"
	"github.com/hyperifyio/clauseease/internal/prompt"
)

type fakeGenerator struct {
	last llm.GenerateRequest
	out  string
	err  error
}

func (f *fakeGenerator) Generate(_ context.Context, req llm.GenerateRequest) (string, error) {
	f.last = req
	return f.out, f.err
}

func TestAbstractive_UsesSummaryProfile(t *testing.T) {
	gen := &fakeGenerator{out: "The tenant pays rent; the landlord repairs."}
	a := &Abstractive{Generator: gen, Model: "gpt-4o"}
	got, err := a.Summarize(context.Background(), contract)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if got != gen.out {
		t.Fatalf("got %q", got)
	}
	if gen.last.MaxLength != 130 || gen.last.MinLength != 30 || gen.last.BeamCount != 4 {
		t.Fatalf("summary params not applied: %+v", gen.last)
	}
	if gen.last.SystemPrompt != prompt.GetProfile("summary").SystemPrompt {
		t.Fatalf("summary system prompt not passed: %q", gen.last.SystemPrompt)
	}
	if !strings.HasPrefix(gen.last.Prompt, "Summarize the key terms of this contract: This Agreement") {
		t.Fatalf("unexpected prompt %q", gen.last.Prompt)
	}
}

func TestAbstractive_EdgeCases(t *testing.T) {
	a := &Abstractive{}
	if got, err := a.Summarize(context.Background(), " "); err != nil || got != EmptyInputMessage {
		t.Fatalf("empty: %q, %v", got, err)
	}
	if _, err := a.Summarize(context.Background(), contract); !errors.Is(err, llm.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	a.Generator = &fakeGenerator{err: context.DeadlineExceeded}
	if _, err := a.Summarize(context.Background(), contract); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected wrapped deadline error, got %v", err)
	}
}

type chatRecorder struct {
	system string
}

func (c *chatRecorder) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	c.system = req.Messages[0].Content
	return openai.ChatCompletionResponse{Choices: []openai.ChatCompletionChoice{{
		Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: strings.Repeat("word ", 40)},
	}}}, nil
}

func TestAbstractive_SendsSummarySystemMessage(t *testing.T) {
	rec := &chatRecorder{}
	a := &Abstractive{Generator: &llm.ChatGenerator{Client: rec, Model: "m"}, Model: "m"}
	if _, err := a.Summarize(context.Background(), contract); err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if want := prompt.GetProfile("summary").SystemPrompt; rec.system != want {
		t.Fatalf("system message = %q, want %q", rec.system, want)
	}
}

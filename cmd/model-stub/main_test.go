package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hyperifyio/clauseease/internal/llm"
	"github.com/hyperifyio/clauseease/internal/simplify"
	"github.com/hyperifyio/clauseease/internal/summarize"
)

const clause = "The lessee shall pay the rent. Notwithstanding the foregoing, the lessor may terminate this agreement."

func newStub(t *testing.T) *llm.ChatGenerator {
	t.Helper()
	srv := httptest.NewServer(newMux("stub"))
	t.Cleanup(srv.Close)
	return &llm.ChatGenerator{
		Client: llm.NewOpenAIProvider(srv.URL+"/v1", "", srv.Client()),
		Model:  "stub",
	}
}

func TestStub_ListsModels(t *testing.T) {
	srv := httptest.NewServer(newMux("stub"))
	defer srv.Close()
	p := llm.NewOpenAIProvider(srv.URL+"/v1", "", srv.Client())
	models, err := p.ListModels(context.Background())
	if err != nil {
		t.Fatalf("ListModels: %v", err)
	}
	if len(models.Models) != 1 || models.Models[0].ID != "stub" {
		t.Fatalf("unexpected models %+v", models.Models)
	}
}

func TestStub_SimplifyMatchesRules(t *testing.T) {
	m := &simplify.ModelSimplifier{Generator: newStub(t), Model: "stub"}
	for _, level := range []simplify.Level{simplify.Basic, simplify.Intermediate, simplify.Advanced} {
		got, err := m.Simplify(context.Background(), clause, level)
		if err != nil {
			t.Fatalf("%s: %v", level, err)
		}
		// The simplifier sends the rule pass; the stub applies the rules again.
		want := simplify.Simplify(simplify.Simplify(clause, level), level)
		if got != want {
			t.Fatalf("%s: got %q, want %q", level, got, want)
		}
	}
}

func TestStub_Summary(t *testing.T) {
	a := &summarize.Abstractive{Generator: newStub(t), Model: "stub"}
	got, err := a.Summarize(context.Background(), clause)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if got == "" {
		t.Fatalf("empty summary")
	}
}

func TestStub_RejectsUnknownPrompt(t *testing.T) {
	srv := httptest.NewServer(newMux("stub"))
	defer srv.Close()
	body := strings.NewReader(`{"model":"stub","messages":[{"role":"user","content":"write a poem"}]}`)
	resp, err := http.Post(srv.URL+"/v1/chat/completions", "application/json", body)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", resp.StatusCode)
	}
}

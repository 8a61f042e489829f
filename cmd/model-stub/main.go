// Command model-stub is a deterministic OpenAI-compatible server for local
// runs and tests. It answers simplification prompts with the rule-based
// rewrite and summary prompts with the extractive summary.
package main

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/clauseease/internal/prompt"
	"github.com/hyperifyio/clauseease/internal/simplify"
	"github.com/hyperifyio/clauseease/internal/summarize"
)

type chatRequest struct {
	Model    string `json:"model"`
	N        int    `json:"n"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	model := os.Getenv("MODEL_ID")
	if strings.TrimSpace(model) == "" {
		model = "test-model"
	}
	addr := os.Getenv("ADDR")
	if strings.TrimSpace(addr) == "" {
		addr = ":8081"
	}

	log.Info().Str("addr", addr).Str("model", model).Msg("model-stub listening")
	if err := http.ListenAndServe(addr, newMux(model)); err != nil {
		log.Fatal().Err(err).Msg("listen")
	}
}

func newMux(model string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/models", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"data":   []map[string]any{{"id": model, "object": "model"}},
		})
	})
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		user := ""
		for _, m := range req.Messages {
			if m.Role == "user" {
				user = m.Content
			}
		}
		content, ok := answer(user)
		if !ok {
			http.Error(w, "unexpected prompt", http.StatusBadRequest)
			return
		}
		n := req.N
		if n < 1 {
			n = 1
		}
		choices := make([]map[string]any, n)
		for i := range choices {
			choices[i] = map[string]any{
				"index":         i,
				"finish_reason": "stop",
				"message":       map[string]string{"role": "assistant", "content": content},
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"object":  "chat.completion",
			"model":   req.Model,
			"choices": choices,
		})
	})
	return mux
}

// answer maps a rendered prompt back to its profile and produces a
// deterministic reply.
func answer(user string) (string, bool) {
	// Drop the trailing length instruction added for profiles with a minimum.
	if i := strings.LastIndex(user, "\n\nWrite at least "); i >= 0 {
		user = user[:i]
	}
	levels := map[prompt.Type]simplify.Level{
		prompt.Basic:        simplify.Basic,
		prompt.Intermediate: simplify.Intermediate,
		prompt.Advanced:     simplify.Advanced,
	}
	for kind, level := range levels {
		p := prompt.GetProfile(string(kind))
		if text, ok := strings.CutPrefix(user, p.Prefix); ok {
			return simplify.Simplify(text, level), true
		}
	}
	if text, ok := strings.CutPrefix(user, prompt.GetProfile(string(prompt.Summary)).Prefix); ok {
		out, err := summarize.Summarize(text, 0.3)
		if err != nil {
			return "", false
		}
		return out, true
	}
	return "", false
}

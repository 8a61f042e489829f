// Package budget estimates token counts and trims model input to fit a
// generation profile's input window.
package budget

import (
	"math"
	"strings"
	"unicode"
)

// EstimateTokensFromChars converts a character count into an estimated token
// count using a conservative heuristic (~4 chars per token in English). The
// result is always at least 1 when chars > 0.
func EstimateTokensFromChars(charCount int) int {
	if charCount <= 0 {
		return 0
	}
	return int(math.Ceil(float64(charCount) / 4.0))
}

// EstimateTokens returns the estimated token count of a string.
func EstimateTokens(s string) int {
	return EstimateTokensFromChars(len(s))
}

// EstimatePromptTokens estimates the tokens of a system plus user message.
func EstimatePromptTokens(system string, user string) int {
	return EstimateTokens(system) + EstimateTokens(user)
}

// ModelContextTokens returns an estimated maximum context window for a given
// model name. Unknown models fall back to a conservative default.
func ModelContextTokens(modelName string) int {
	name := strings.ToLower(strings.TrimSpace(modelName))
	if name == "" {
		return 4096
	}
	if v, ok := knownModelMax[name]; ok {
		return v
	}
	switch {
	case strings.HasSuffix(name, "128k"), strings.Contains(name, "-mini"):
		return 128_000
	case strings.HasSuffix(name, "32k"):
		return 32_768
	case strings.HasSuffix(name, "16k"):
		return 16_384
	}
	return 4096
}

var knownModelMax = map[string]int{
	"gpt-4o":                  128_000,
	"gpt-4o-mini":             128_000,
	"gpt-4-turbo":             128_000,
	"gpt-3.5-turbo":           16_384,
	"llama-3":                 8_192,
	"llama-3.1":               128_000,
	"mistral-7b":              32_768,
	"flan-t5-base":            512,
	"t5-small":                512,
	"bart-large-cnn":          1_024,
	"facebook/bart-large-cnn": 1_024,
}

// InputBudget returns how many prompt tokens may be sent to modelName while
// reserving reservedOutput tokens for the answer, capped at limit when
// limit > 0. The result is never negative.
func InputBudget(modelName string, reservedOutput int, limit int) int {
	if reservedOutput < 0 {
		reservedOutput = 0
	}
	n := ModelContextTokens(modelName) - reservedOutput
	if limit > 0 && (n > limit || n <= 0) {
		n = limit
	}
	if n < 0 {
		return 0
	}
	return n
}

// TruncateToTokens shortens s so its estimated token count is at most
// maxTokens, cutting at the last word boundary that fits. A non-positive
// maxTokens leaves s untouched.
func TruncateToTokens(s string, maxTokens int) string {
	if maxTokens <= 0 || EstimateTokens(s) <= maxTokens {
		return s
	}
	limit := maxTokens * 4
	if limit > len(s) {
		limit = len(s)
	}
	cut := strings.LastIndexFunc(s[:limit], unicode.IsSpace)
	if cut <= 0 {
		cut = limit
		for cut > 0 && !utf8Start(s[cut]) {
			cut--
		}
	}
	return strings.TrimSpace(s[:cut])
}

// FitPrompt trims user so that system and user together stay within
// maxTokens. The system message is never cut.
func FitPrompt(system, user string, maxTokens int) string {
	if maxTokens <= 0 || EstimatePromptTokens(system, user) <= maxTokens {
		return user
	}
	room := maxTokens - EstimateTokens(system)
	if room < 1 {
		room = 1
	}
	return TruncateToTokens(user, room)
}

func utf8Start(b byte) bool { return b&0xC0 != 0x80 }

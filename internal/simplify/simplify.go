// Package simplify rewrites contract text into plainer language, either with
// deterministic rules or through a generative model.
package simplify

import (
	"strings"

	"github.com/hyperifyio/clauseease/internal/preprocess"
)

// EmptyInputMessage is returned instead of a simplification when the input
// holds no text.
const EmptyInputMessage = "Please enter text to simplify."

const (
	// longSentenceFields is the field count above which Advanced truncates.
	longSentenceFields = 20
	// truncatedFields is how many leading fields a truncated sentence keeps.
	truncatedFields = 15
)

// Simplify applies the rule-based simplification for level. Unknown levels
// return text unchanged.
func Simplify(text string, level Level) string {
	if strings.TrimSpace(text) == "" {
		return EmptyInputMessage
	}
	switch level {
	case Basic:
		return basic(text)
	case Intermediate:
		return commonRules.Apply(text)
	case Advanced:
		return advanced(text)
	default:
		return text
	}
}

// basic drops stopwords from every sentence. Sentences made only of
// stopwords disappear.
func basic(text string) string {
	sentences := preprocess.Sentences(text)
	kept := make([]string, 0, len(sentences))
	for _, s := range sentences {
		words := preprocess.RemoveStopwords(preprocess.Words(s))
		if len(words) == 0 {
			continue
		}
		kept = append(kept, strings.Join(words, " "))
	}
	return preprocess.JoinSentences(kept)
}

func advanced(text string) string {
	text = deepRules.Apply(commonRules.Apply(text))
	sentences := preprocess.Sentences(text)
	out := make([]string, 0, len(sentences))
	for _, s := range sentences {
		out = append(out, compress(s))
	}
	return preprocess.JoinSentences(out)
}

// compress keeps sentences of up to longSentenceFields fields and cuts longer
// ones to their first truncatedFields fields followed by "...".
func compress(sentence string) string {
	fields := strings.Fields(sentence)
	if len(fields) <= longSentenceFields {
		return sentence
	}
	return strings.Join(fields[:truncatedFields], " ") + "..."
}

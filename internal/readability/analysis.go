package readability

import (
	"strings"
	"unicode"

	"github.com/hyperifyio/clauseease/internal/preprocess"
)

// EmptyInputMessage is shown when there is no text to analyze.
const EmptyInputMessage = "Please enter some text to analyze."

// Report is a full readability analysis of one text.
type Report struct {
	Scores           Scores         `json:"scores"`
	GradeLabel       string         `json:"grade_label"`
	EaseLabel        string         `json:"ease_label"`
	SentenceCount    int            `json:"sentence_count"`
	WordCount        int            `json:"word_count"`
	PunctuationCount int            `json:"punctuation_count"`
	Punctuation      map[string]int `json:"punctuation"`
	// Preprocessed is the lower-cased alphabetic words of the text with
	// stopwords removed.
	Preprocessed string   `json:"preprocessed"`
	Sentences    []string `json:"sentences"`
}

// Analyze scores text with s and gathers the word, sentence and punctuation
// statistics shown next to the scores.
func Analyze(s Scorer, text string) Report {
	if s == nil {
		s = Standard{}
	}
	scores := s.Score(text)
	r := Report{
		Scores:      scores,
		GradeLabel:  GradeLabel(scores.FleschKincaidGrade),
		EaseLabel:   EaseLabel(scores.FleschReadingEase),
		Punctuation: map[string]int{},
		Sentences:   preprocess.Sentences(text),
	}
	r.SentenceCount = len(r.Sentences)

	for _, ch := range text {
		if ch < unicode.MaxASCII && (unicode.IsPunct(ch) || unicode.IsSymbol(ch)) {
			r.PunctuationCount++
			r.Punctuation[string(ch)]++
		}
	}

	words := preprocess.Words(strings.ToLower(text))
	kept := make([]string, 0, len(words))
	for _, w := range words {
		if !isAlpha(w) {
			continue
		}
		r.WordCount++
		if !preprocess.IsStopword(w) {
			kept = append(kept, w)
		}
	}
	r.Preprocessed = strings.Join(kept, " ")
	return r
}

func isAlpha(w string) bool {
	for _, r := range w {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return w != ""
}

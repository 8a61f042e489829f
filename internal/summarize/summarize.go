// Package summarize produces summaries of contract text, either by selecting
// representative sentences or by asking a generative model.
package summarize

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/hyperifyio/clauseease/internal/preprocess"
)

// ErrInvalidRatio is returned when the compression ratio is not in (0, 1].
var ErrInvalidRatio = errors.New("compression ratio must be in (0, 1]")

// DefaultRatio is the fraction of sentences kept when callers have no
// preference.
const DefaultRatio = 0.4

// SentenceScore is the score breakdown of one sentence. Every signal is in
// [0,1].
type SentenceScore struct {
	Index    int     `json:"index"`
	Sentence string  `json:"sentence"`
	Lexical  float64 `json:"lexical"`
	Position float64 `json:"position"`
	Length   float64 `json:"length"`
	Total    float64 `json:"total"`
}

// Result is a summary together with the scores that produced it. Scores is
// empty when the text was too short to need scoring.
type Result struct {
	Summary  string          `json:"summary"`
	Scores   []SentenceScore `json:"scores,omitempty"`
	Selected []int           `json:"selected"`
}

// Summarizer selects sentences by a weighted blend of TF-IDF salience, lead
// position and closeness to the average sentence length.
type Summarizer struct {
	Weights Weights
}

// New returns a Summarizer using w, or an error when w is invalid.
func New(w Weights) (*Summarizer, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return &Summarizer{Weights: w}, nil
}

var defaultSummarizer = &Summarizer{Weights: DefaultWeights}

// Summarize is the hybrid extractive summary of text with DefaultWeights.
func Summarize(text string, ratio float64) (string, error) {
	return defaultSummarizer.Summarize(text, ratio)
}

// Summarize keeps floor(len(sentences)*ratio) sentences, at least one, and
// returns them in document order joined by single spaces. Texts of one or
// two sentences come back unchanged.
func (s *Summarizer) Summarize(text string, ratio float64) (string, error) {
	res, err := s.Extract(text, ratio)
	if err != nil {
		return "", err
	}
	return res.Summary, nil
}

// Extract is Summarize with the full score breakdown.
func (s *Summarizer) Extract(text string, ratio float64) (Result, error) {
	if math.IsNaN(ratio) || ratio <= 0 || ratio > 1 {
		return Result{}, fmt.Errorf("%w: got %v", ErrInvalidRatio, ratio)
	}
	if err := s.Weights.Validate(); err != nil {
		return Result{}, err
	}
	sentences := preprocess.Sentences(text)
	if len(sentences) <= 2 {
		idx := make([]int, len(sentences))
		for i := range idx {
			idx[i] = i
		}
		return Result{Summary: strings.Join(sentences, " "), Selected: idx}, nil
	}

	scores := s.Score(sentences)
	n := int(math.Floor(float64(len(sentences))*ratio + 1e-9))
	if n < 1 {
		n = 1
	}

	ranked := make([]SentenceScore, len(scores))
	copy(ranked, scores)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Total > ranked[j].Total })

	selected := make([]int, 0, n)
	for _, sc := range ranked[:n] {
		selected = append(selected, sc.Index)
	}
	sort.Ints(selected)

	parts := make([]string, len(selected))
	for i, idx := range selected {
		parts[i] = sentences[idx]
	}
	return Result{Summary: strings.Join(parts, " "), Scores: scores, Selected: selected}, nil
}

// Score computes the signal breakdown for every sentence, in document order.
func (s *Summarizer) Score(sentences []string) []SentenceScore {
	n := len(sentences)
	if n == 0 {
		return nil
	}
	lexical := minMax(tfidfSums(sentences))

	pos := make([]float64, n)
	for i := range pos {
		pos[i] = 1 / float64(i+1)
	}
	pos = minMax(pos)

	lengths := make([]float64, n)
	var total float64
	for i, sent := range sentences {
		lengths[i] = float64(preprocess.FieldCount(sent))
		total += lengths[i]
	}
	avg := total / float64(n)

	out := make([]SentenceScore, n)
	for i, sent := range sentences {
		length := 1.0
		if avg > 0 {
			length = math.Exp(-math.Abs(lengths[i]-avg) / avg)
		}
		out[i] = SentenceScore{
			Index:    i,
			Sentence: sent,
			Lexical:  lexical[i],
			Position: pos[i],
			Length:   length,
			Total:    s.Weights.Lexical*lexical[i] + s.Weights.Position*pos[i] + s.Weights.Length*length,
		}
	}
	return out
}

package summarize

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidWeights is returned when signal weights are negative or do not
// sum to 1.
var ErrInvalidWeights = errors.New("summary weights must be non-negative and sum to 1")

// Weights sets how much each signal contributes to a sentence's total score.
type Weights struct {
	Lexical  float64 `yaml:"lexical" json:"lexical"`
	Position float64 `yaml:"position" json:"position"`
	Length   float64 `yaml:"length" json:"length"`
}

// DefaultWeights favours lexical salience, then lead position, then length.
var DefaultWeights = Weights{Lexical: 0.5, Position: 0.3, Length: 0.2}

const weightTolerance = 1e-9

// Validate checks that every weight is non-negative and finite and that they
// sum to 1.
func (w Weights) Validate() error {
	for _, v := range []float64{w.Lexical, w.Position, w.Length} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %+v", ErrInvalidWeights, w)
		}
	}
	if math.Abs(w.Lexical+w.Position+w.Length-1) > weightTolerance {
		return fmt.Errorf("%w: %+v", ErrInvalidWeights, w)
	}
	return nil
}

func (w Weights) String() string {
	return fmt.Sprintf("%g,%g,%g", w.Lexical, w.Position, w.Length)
}

// ParseWeights reads "lexical,position,length", e.g. "0.5,0.3,0.2".
func ParseWeights(s string) (Weights, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return Weights{}, fmt.Errorf("%w: want three comma-separated values, got %q", ErrInvalidWeights, s)
	}
	var vals [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Weights{}, fmt.Errorf("%w: %q: %v", ErrInvalidWeights, p, err)
		}
		vals[i] = v
	}
	w := Weights{Lexical: vals[0], Position: vals[1], Length: vals[2]}
	return w, w.Validate()
}

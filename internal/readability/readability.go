// Package readability scores how hard a text is to read using the Flesch
// Reading Ease, Flesch-Kincaid grade and Gunning fog formulas.
package readability

import (
	"math"
	"strings"
	"unicode"

	"github.com/hyperifyio/clauseease/internal/preprocess"
)

// Scores holds the three readability metrics, rounded to two decimals.
type Scores struct {
	FleschReadingEase  float64 `json:"flesch_reading_ease"`
	FleschKincaidGrade float64 `json:"flesch_kincaid_grade"`
	GunningFog         float64 `json:"gunning_fog"`
}

// Scorer computes readability metrics for text.
type Scorer interface {
	Score(text string) Scores
}

// Standard implements Scorer with the textbook formulas and a vowel-group
// syllable heuristic.
type Standard struct{}

// Score returns zero scores for text without words.
func (Standard) Score(text string) Scores {
	c := count(text)
	if c.words == 0 {
		return Scores{}
	}
	wps := float64(c.words) / float64(c.sentences)
	spw := float64(c.syllables) / float64(c.words)
	return Scores{
		FleschReadingEase:  round2(206.835 - 1.015*wps - 84.6*spw),
		FleschKincaidGrade: round2(0.39*wps + 11.8*spw - 15.59),
		GunningFog:         round2(0.4 * (wps + 100*float64(c.complex)/float64(c.words))),
	}
}

type counts struct {
	sentences int
	words     int
	syllables int
	complex   int
}

func count(text string) counts {
	var c counts
	c.sentences = len(preprocess.Sentences(text))
	if c.sentences == 0 {
		c.sentences = 1
	}
	for _, w := range preprocess.Words(text) {
		n := Syllables(w)
		if n == 0 {
			continue
		}
		c.words++
		c.syllables += n
		if n >= 3 {
			c.complex++
		}
	}
	return c
}

// Syllables estimates the syllable count of a word by counting vowel groups,
// discounting a silent trailing "e". Words with letters count at least one;
// tokens without letters count zero.
func Syllables(word string) int {
	w := strings.ToLower(word)
	letters := make([]rune, 0, len(w))
	for _, r := range w {
		if unicode.IsLetter(r) {
			letters = append(letters, r)
		}
	}
	if len(letters) == 0 {
		return 0
	}
	n := 0
	prevVowel := false
	for _, r := range letters {
		v := isVowel(r)
		if v && !prevVowel {
			n++
		}
		prevVowel = v
	}
	l := len(letters)
	if l > 2 && letters[l-1] == 'e' && !isVowel(letters[l-2]) && letters[l-2] != 'l' && n > 1 {
		n--
	}
	if n == 0 {
		n = 1
	}
	return n
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// GradeLabel buckets a Flesch-Kincaid grade: up to 6 is "Easy", up to 8
// "Medium", up to 12 "Challenging" and anything higher "Very Difficult".
func GradeLabel(grade float64) string {
	switch {
	case grade <= 6:
		return "Easy"
	case grade <= 8:
		return "Medium"
	case grade <= 12:
		return "Challenging"
	default:
		return "Very Difficult"
	}
}

// EaseLabel buckets a Flesch Reading Ease score: above 60 is "Easy", above 30
// "Moderate", otherwise "Hard".
func EaseLabel(ease float64) string {
	switch {
	case ease > 60:
		return "Easy"
	case ease > 30:
		return "Moderate"
	default:
		return "Hard"
	}
}

// Delta is the change from one set of scores to another. A positive ease
// delta and negative grade and fog deltas mean the text got easier.
type Delta struct {
	FleschReadingEase  float64 `json:"flesch_reading_ease"`
	FleschKincaidGrade float64 `json:"flesch_kincaid_grade"`
	GunningFog         float64 `json:"gunning_fog"`
}

// Compare returns after minus before.
func Compare(before, after Scores) Delta {
	return Delta{
		FleschReadingEase:  round2(after.FleschReadingEase - before.FleschReadingEase),
		FleschKincaidGrade: round2(after.FleschKincaidGrade - before.FleschKincaidGrade),
		GunningFog:         round2(after.GunningFog - before.GunningFog),
	}
}

// Easier reports whether the delta shows an improvement in reading ease.
func (d Delta) Easier() bool { return d.FleschReadingEase > 0 }

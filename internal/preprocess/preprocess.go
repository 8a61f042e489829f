// Package preprocess turns raw contract text into sentences, word tokens and
// index terms. Every function here is pure and safe for concurrent use.
package preprocess

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

var paragraphBreak = regexp.MustCompile(`\n[ \t\r\f\v]*\n`)

var typographic = strings.NewReplacer(
	"\u2018", "'", "\u2019", "'", "\u201a", "'",
	"\u201c", `"`, "\u201d", `"`, "\u201e", `"`,
	"\u2013", "-", "\u2014", "-",
	"\u2026", "...",
	"\r\n", "\n", "\r", "\n",
	"\u200b", "",
)

// abbreviations never terminate a sentence even though they end in a period.
var abbreviations = map[string]struct{}{
	"mr.": {}, "mrs.": {}, "ms.": {}, "dr.": {}, "prof.": {}, "sr.": {}, "jr.": {}, "st.": {},
	"e.g.": {}, "i.e.": {}, "etc.": {}, "vs.": {}, "cf.": {}, "approx.": {},
	"no.": {}, "nos.": {}, "inc.": {}, "ltd.": {}, "co.": {}, "corp.": {}, "llc.": {},
	"sec.": {}, "art.": {}, "para.": {}, "cl.": {},
}

// Normalize applies NFKC compatibility folding and maps typographic quotes,
// dashes and ellipses to their ASCII forms. Line structure is preserved;
// runs of spaces and tabs inside a line collapse to one space.
func Normalize(text string) string {
	s := typographic.Replace(norm.NFKC.String(text))
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// Sentences splits text into its ordered sentences. A run of '.', '!' or '?'
// (plus any closing quotes or brackets) followed by whitespace or the end of
// the text ends a sentence, and so does a blank line. The terminal
// punctuation stays with its sentence. Known abbreviations such as "e.g." and
// "Dr." do not end a sentence.
func Sentences(text string) []string {
	if strings.TrimSpace(text) == "" {
		return []string{}
	}
	out := []string{}
	for _, para := range paragraphBreak.Split(text, -1) {
		out = appendSentences(out, para)
	}
	return out
}

func appendSentences(out []string, para string) []string {
	emit := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	start := 0
	for i := 0; i < len(para); {
		r, size := utf8.DecodeRuneInString(para[i:])
		if !isTerminal(r) {
			i += size
			continue
		}
		j := i + size
		for j < len(para) {
			next, n := utf8.DecodeRuneInString(para[j:])
			if !isTerminal(next) && !isCloser(next) {
				break
			}
			j += n
		}
		if j < len(para) {
			next, _ := utf8.DecodeRuneInString(para[j:])
			if !unicode.IsSpace(next) {
				i = j
				continue
			}
		}
		if r == '.' && j == i+size && isAbbreviation(para[start:j]) {
			i = j
			continue
		}
		emit(para[start:j])
		start = j
		i = j
	}
	emit(para[start:])
	return out
}

func isTerminal(r rune) bool { return r == '.' || r == '!' || r == '?' }

func isCloser(r rune) bool {
	switch r {
	case '"', '\'', ')', ']', '}':
		return true
	}
	return false
}

func isAbbreviation(segment string) bool {
	fields := strings.Fields(segment)
	if len(fields) == 0 {
		return false
	}
	last := strings.ToLower(strings.TrimLeft(fields[len(fields)-1], `"'([{`))
	_, ok := abbreviations[last]
	return ok
}

// Words returns the word tokens of s in order, case preserved. Punctuation is
// not returned. Apostrophes and hyphens between letters stay inside the word.
func Words(s string) []string {
	var words []string
	var cur strings.Builder
	runes := []rune(s)
	flush := func() {
		if cur.Len() > 0 {
			words = append(words, cur.String())
			cur.Reset()
		}
	}
	for i, r := range runes {
		switch {
		case isWordRune(r):
			cur.WriteRune(r)
		case (r == '\'' || r == '-') && cur.Len() > 0 && i+1 < len(runes) && isWordRune(runes[i+1]):
			cur.WriteRune(r)
		default:
			flush()
		}
	}
	flush()
	return words
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// Tokenize returns the word tokens of every sentence of text.
func Tokenize(text string) [][]string {
	sentences := Sentences(text)
	out := make([][]string, len(sentences))
	for i, s := range sentences {
		out[i] = Words(s)
	}
	return out
}

// Terms returns the lower-cased index terms of s: runs of at least two word
// characters. Stopwords are kept; callers filter with IsStopword.
func Terms(s string) []string {
	parts := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool { return !isWordRune(r) })
	out := parts[:0]
	for _, p := range parts {
		if utf8.RuneCountInString(p) >= 2 {
			out = append(out, p)
		}
	}
	return out
}

// FieldCount returns the number of whitespace-separated fields in s.
func FieldCount(s string) int {
	return len(strings.Fields(s))
}

// Capitalize upper-cases the first letter of s and leaves the rest untouched.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || unicode.IsUpper(r) {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// JoinSentences trims and capitalizes each sentence, drops empty ones and
// joins the rest with ". ". A sentence that already ends in terminal
// punctuation is followed by a single space instead.
func JoinSentences(sentences []string) string {
	var b strings.Builder
	first := true
	prevTerminated := false
	for _, s := range sentences {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if !first {
			if prevTerminated {
				b.WriteString(" ")
			} else {
				b.WriteString(". ")
			}
		}
		b.WriteString(Capitalize(s))
		last, _ := utf8.DecodeLastRuneInString(s)
		prevTerminated = isTerminal(last)
		first = false
	}
	return b.String()
}

package glossary

import (
	"regexp"
	"sort"
	"strings"
)

var (
	// "Tenant" means the person renting the premises.
	reMeans = regexp.MustCompile(`"([A-Z][A-Za-z0-9 \-]{1,60})"\s+(?:means|shall mean|refers to)\s+([^.;\n]{3,200})`)
	// ... this lease agreement (the "Agreement").
	reAlias = regexp.MustCompile(`([A-Za-z][A-Za-z0-9&/\-]*(?:\s+[A-Za-z][A-Za-z0-9&/\-]*){0,6})\s*\(\s*(?:the\s+|hereinafter\s+(?:the\s+)?)?"([A-Z][A-Za-z0-9 \-]{1,60})"\s*\)`)
	// Service Level Agreement (SLA)
	reAcronym = regexp.MustCompile(`\b([A-Za-z][A-Za-z0-9&/\-]+(?:\s+[A-Za-z][A-Za-z0-9&/\-]+){0,6})\s*\(([A-Z]{2,6})\)`)
)

// Definition is a term a contract defines for itself.
type Definition struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// DefinedTerms finds the terms a contract defines inline, such as
// `"Tenant" means ...`, `(the "Agreement")` and `Long Form (ACRO)`. The first
// definition of a term wins. Results are sorted by term.
func DefinedTerms(text string) []Definition {
	found := map[string]string{}
	add := func(term, def string) {
		term = strings.TrimSpace(term)
		def = cleanDefinition(def)
		if term == "" || def == "" {
			return
		}
		if _, ok := found[term]; !ok {
			found[term] = def
		}
	}
	for _, m := range reMeans.FindAllStringSubmatch(text, -1) {
		add(m[1], m[2])
	}
	for _, m := range reAlias.FindAllStringSubmatch(text, -1) {
		add(m[2], trailingTitleWords(m[1]))
	}
	for _, m := range reAcronym.FindAllStringSubmatch(text, -1) {
		long := trailingTitleWords(m[1])
		if strings.EqualFold(long, m[2]) {
			continue
		}
		add(m[2], long)
	}
	out := make([]Definition, 0, len(found))
	for k, v := range found {
		out = append(out, Definition{Term: k, Definition: v})
	}
	sort.Slice(out, func(i, j int) bool { return strings.ToLower(out[i].Term) < strings.ToLower(out[j].Term) })
	return out
}

func cleanDefinition(s string) string {
	s = strings.Trim(strings.TrimSpace(s), ":;,. ")
	return strings.Join(strings.Fields(s), " ")
}

// trailingTitleWords keeps the run of up to four capitalized words nearest
// the parenthesis so that filler like "entered into this" is dropped. When no
// capitalized word is present the phrase is returned unchanged.
func trailingTitleWords(s string) string {
	words := strings.Fields(s)
	start, count := len(words), 0
	for i := len(words) - 1; i >= 0 && count < 4; i-- {
		if !isTitleWord(words[i]) {
			break
		}
		start = i
		count++
	}
	if count == 0 {
		return strings.Join(words, " ")
	}
	return strings.Join(words[start:], " ")
}

func isTitleWord(w string) bool {
	if w == "" || w[0] < 'A' || w[0] > 'Z' {
		return false
	}
	return strings.ToUpper(w) != w
}

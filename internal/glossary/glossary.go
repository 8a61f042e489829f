// Package glossary explains legal terms found in contract text.
package glossary

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"
	yaml "gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// Glossary maps terms to their plain-language meaning. It is immutable after
// construction and safe for concurrent use.
type Glossary struct {
	entries map[string]string
	// keys are the terms ordered longest first so longer phrases win.
	keys    []string
	pattern *regexp.Regexp
}

// New builds a glossary from term/meaning pairs. Terms are matched without
// regard to case; blank terms are ignored.
func New(entries map[string]string) *Glossary {
	g := &Glossary{entries: map[string]string{}}
	for k, v := range entries {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		g.entries[strings.ToLower(k)] = strings.TrimSpace(v)
	}
	for k := range g.entries {
		g.keys = append(g.keys, k)
	}
	sort.Slice(g.keys, func(i, j int) bool {
		if len(g.keys[i]) != len(g.keys[j]) {
			return len(g.keys[i]) > len(g.keys[j])
		}
		return g.keys[i] < g.keys[j]
	})
	if len(g.keys) > 0 {
		alts := make([]string, len(g.keys))
		for i, k := range g.keys {
			alts[i] = regexp.QuoteMeta(k)
		}
		g.pattern = regexp.MustCompile(`(?i)\b(?:` + strings.Join(alts, "|") + `)\b`)
	}
	return g
}

// Default returns the built-in glossary of common contract terms.
func Default() *Glossary {
	g, err := parse(defaultYAML, ".yaml")
	if err != nil {
		panic(fmt.Sprintf("glossary: built-in data: %v", err))
	}
	return g
}

// Load reads a glossary from a YAML or JSON file of term: meaning pairs. A
// missing file yields an empty glossary and a warning.
func Load(path string) (*Glossary, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Warn().Str("path", path).Msg("glossary file not found; continuing without glossary")
			return New(nil), nil
		}
		return nil, fmt.Errorf("read glossary: %w", err)
	}
	return parse(b, filepath.Ext(path))
}

func parse(b []byte, ext string) (*Glossary, error) {
	var m map[string]string
	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(b, &m); err != nil {
			return nil, fmt.Errorf("parse glossary json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(b, &m); err != nil {
			return nil, fmt.Errorf("parse glossary yaml: %w", err)
		}
	}
	return New(m), nil
}

// Len returns the number of terms.
func (g *Glossary) Len() int {
	if g == nil {
		return 0
	}
	return len(g.entries)
}

// Meaning returns the meaning of term, ignoring case.
func (g *Glossary) Meaning(term string) (string, bool) {
	if g == nil {
		return "", false
	}
	v, ok := g.entries[strings.ToLower(strings.TrimSpace(term))]
	return v, ok
}

// Entry is one glossary term found in a text.
type Entry struct {
	Term    string `json:"term"`
	Meaning string `json:"meaning"`
	Count   int    `json:"count"`
}

// Terms lists the glossary terms that occur in text, in order of first
// appearance.
func (g *Glossary) Terms(text string) []Entry {
	if g == nil || g.pattern == nil {
		return nil
	}
	idx := map[string]int{}
	var out []Entry
	for _, m := range g.pattern.FindAllString(text, -1) {
		key := strings.ToLower(m)
		if i, ok := idx[key]; ok {
			out[i].Count++
			continue
		}
		idx[key] = len(out)
		out = append(out, Entry{Term: key, Meaning: g.entries[key], Count: 1})
	}
	return out
}

// Highlight HTML-escapes text and wraps every glossary term in a tooltip
// span carrying its meaning. Longer terms take precedence over shorter ones
// they contain.
func (g *Glossary) Highlight(text string) string {
	if g == nil || g.pattern == nil || text == "" {
		return html.EscapeString(text)
	}
	var b strings.Builder
	last := 0
	for _, loc := range g.pattern.FindAllStringIndex(text, -1) {
		b.WriteString(html.EscapeString(text[last:loc[0]]))
		term := text[loc[0]:loc[1]]
		b.WriteString(`<span class="tooltip"><b>`)
		b.WriteString(html.EscapeString(term))
		b.WriteString(`</b><span class="tooltiptext">`)
		b.WriteString(html.EscapeString(g.entries[strings.ToLower(term)]))
		b.WriteString(`</span></span>`)
		last = loc[1]
	}
	b.WriteString(html.EscapeString(text[last:]))
	return b.String()
}

package preprocess

import (
	"regexp"
)

// ReplacementRule maps a fixed phrase to its plainer replacement. Matching is
// case-insensitive and anchored on word boundaries; the replacement is
// inserted literally.
type ReplacementRule struct {
	Phrase      string
	Replacement string
}

// RuleSet is an ordered list of compiled replacement rules. It is read-only
// after construction and safe to share between goroutines.
type RuleSet struct {
	rules    []ReplacementRule
	patterns []*regexp.Regexp
}

// CompileRules compiles rules in declaration order.
func CompileRules(rules []ReplacementRule) *RuleSet {
	rs := &RuleSet{
		rules:    append([]ReplacementRule(nil), rules...),
		patterns: make([]*regexp.Regexp, len(rules)),
	}
	for i, r := range rules {
		rs.patterns[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(r.Phrase) + `\b`)
	}
	return rs
}

// Apply runs every rule over text in order. Later rules see the output of
// earlier ones.
func (rs *RuleSet) Apply(text string) string {
	if rs == nil {
		return text
	}
	for i, re := range rs.patterns {
		text = re.ReplaceAllLiteralString(text, rs.rules[i].Replacement)
	}
	return text
}

// Rules returns a copy of the rules in declaration order.
func (rs *RuleSet) Rules() []ReplacementRule {
	if rs == nil {
		return nil
	}
	return append([]ReplacementRule(nil), rs.rules...)
}

// ApplyRules compiles rules and applies them to text. Hot paths should
// compile once with CompileRules instead.
func ApplyRules(text string, rules []ReplacementRule) string {
	return CompileRules(rules).Apply(text)
}

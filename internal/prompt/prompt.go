// Package prompt holds the generation profiles used when text is handed to a
// model: the instruction prefix and the length and candidate settings for
// each simplification level and for abstractive summaries.
package prompt

import "strings"

// Type names a generation profile.
type Type string

const (
	Basic        Type = "basic"
	Intermediate Type = "intermediate"
	Advanced     Type = "advanced"
	Summary      Type = "summary"
)

// Profile defines how a prompt is built and how much the model may produce.
type Profile struct {
	Type         Type
	Prefix       string
	SystemPrompt string
	// MaxLength and MinLength bound the generated output; MaxLength is in
	// tokens and MinLength in words.
	MaxLength int
	MinLength int
	BeamCount int
	// InputTokens caps the prompt sent to the model.
	InputTokens int
}

// Render prefixes text with the profile's instruction.
func (p Profile) Render(text string) string {
	return p.Prefix + strings.TrimSpace(text)
}

// GetProfile returns the profile for kind. Unrecognized kinds get the
// Intermediate profile.
func GetProfile(kind string) Profile {
	switch Type(normalizeType(kind)) {
	case Basic:
		return basicProfile()
	case Advanced:
		return advancedProfile()
	case Summary:
		return summaryProfile()
	default:
		return intermediateProfile()
	}
}

func normalizeType(s string) string {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "basic", "beginner", "simple", "easy":
		return string(Basic)
	case "intermediate", "moderate", "standard", "":
		return string(Intermediate)
	case "advanced", "expert", "compress", "compressed":
		return string(Advanced)
	case "summary", "summarize", "abstractive", "abstract":
		return string(Summary)
	}
	if strings.Contains(v, "summar") {
		return string(Summary)
	}
	return string(Intermediate)
}

func basicProfile() Profile {
	return Profile{
		Type:   Basic,
		Prefix: "Simplify for a beginner reader: ",
		SystemPrompt: "You rewrite contract clauses for a beginner reader. Use short sentences and everyday words. " +
			"Keep every obligation, party, amount and date. Reply with the rewritten text only.",
		MaxLength:   512,
		BeamCount:   4,
		InputTokens: 512,
	}
}

func intermediateProfile() Profile {
	return Profile{
		Type:   Intermediate,
		Prefix: "Simplify and clarify: ",
		SystemPrompt: "You clarify contract clauses. Replace legal jargon with plain terms but keep the structure " +
			"and every obligation, party, amount and date. Reply with the rewritten text only.",
		MaxLength:   512,
		BeamCount:   4,
		InputTokens: 512,
	}
}

func advancedProfile() Profile {
	return Profile{
		Type:   Advanced,
		Prefix: "Simplify, compress and shorten: ",
		SystemPrompt: "You compress contract clauses into the fewest plain words that keep their meaning. " +
			"Keep every obligation, party, amount and date. Reply with the rewritten text only.",
		MaxLength:   150,
		BeamCount:   5,
		InputTokens: 512,
	}
}

func summaryProfile() Profile {
	return Profile{
		Type:   Summary,
		Prefix: "Summarize the key terms of this contract: ",
		SystemPrompt: "You summarize contracts for ordinary readers. Name the parties, what each must do, " +
			"amounts, deadlines and how the agreement ends. Reply with the summary only.",
		MaxLength:   130,
		MinLength:   30,
		BeamCount:   4,
		InputTokens: 1024,
	}
}

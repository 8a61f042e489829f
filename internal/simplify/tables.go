package simplify

import "github.com/hyperifyio/clauseease/internal/preprocess"

// CommonReplacements swaps formal vocabulary for everyday words. Applied at
// Intermediate and Advanced.
var CommonReplacements = []preprocess.ReplacementRule{
	{Phrase: "utilize", Replacement: "use"},
	{Phrase: "commence", Replacement: "start"},
	{Phrase: "terminate", Replacement: "end"},
	{Phrase: "endeavor", Replacement: "try"},
	{Phrase: "assistance", Replacement: "help"},
	{Phrase: "individuals", Replacement: "people"},
	{Phrase: "approximately", Replacement: "about"},
	{Phrase: "purchase", Replacement: "buy"},
	{Phrase: "objective", Replacement: "goal"},
	{Phrase: "requirement", Replacement: "need"},
	{Phrase: "consequently", Replacement: "so"},
	{Phrase: "therefore", Replacement: "so"},
	{Phrase: "subsequently", Replacement: "after"},
	{Phrase: "nevertheless", Replacement: "but"},
	{Phrase: "furthermore", Replacement: "also"},
	{Phrase: "in addition", Replacement: "also"},
	{Phrase: "in order to", Replacement: "to"},
	{Phrase: "in the event that", Replacement: "if"},
	{Phrase: "in accordance with", Replacement: "under"},
	{Phrase: "hereinafter", Replacement: "from now on"},
	{Phrase: "aforementioned", Replacement: "mentioned earlier"},
	{Phrase: "pursuant to", Replacement: "under"},
	{Phrase: "in witness whereof", Replacement: "to confirm this"},
}

// DeepReplacements rewrites legal boilerplate. Applied at Advanced only,
// after CommonReplacements.
var DeepReplacements = []preprocess.ReplacementRule{
	{Phrase: "the party of the first part", Replacement: "first person"},
	{Phrase: "the party of the second part", Replacement: "second person"},
	{Phrase: "shall", Replacement: "will"},
	{Phrase: "must", Replacement: "has to"},
	{Phrase: "prior to", Replacement: "before"},
	{Phrase: "at this point in time", Replacement: "now"},
}

var (
	commonRules = preprocess.CompileRules(CommonReplacements)
	deepRules   = preprocess.CompileRules(DeepReplacements)
)

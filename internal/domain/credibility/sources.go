package credibility

import (
	"strings"

	"github.com/bryanwahyu/verifact/internal/domain/analysis"
)

// MaxSources caps the sources attached to a fact-check.
const MaxSources = 6

type sourceCategory struct {
	name     string
	keywords []string
	sources  []analysis.SourceRef
}

// evaluated in order; every matching category contributes its sources
var sourceCategories = []sourceCategory{
	{
		name:     "health",
		keywords: []string{"vaccine", "vaccination", "covid", "coronavirus", "disease", "pandemic"},
		sources: []analysis.SourceRef{
			{Name: "World Health Organization", URL: "https://www.who.int", CredibilityNote: "UN agency coordinating international public health"},
			{Name: "Centers for Disease Control and Prevention", URL: "https://www.cdc.gov", CredibilityNote: "U.S. national public health agency"},
			{Name: "PubMed", URL: "https://pubmed.ncbi.nlm.nih.gov", CredibilityNote: "Peer-reviewed biomedical literature index run by the NIH"},
		},
	},
	{
		name:     "climate",
		keywords: []string{"climate", "weather", "temperature", "global warming"},
		sources: []analysis.SourceRef{
			{Name: "NASA Climate", URL: "https://climate.nasa.gov", CredibilityNote: "NASA portal for climate observations and research"},
			{Name: "NOAA", URL: "https://www.noaa.gov", CredibilityNote: "U.S. agency for weather, ocean and climate data"},
			{Name: "IPCC", URL: "https://www.ipcc.ch", CredibilityNote: "UN body assessing the science of climate change"},
		},
	},
	{
		name:     "civic",
		keywords: []string{"election", "vote", "voting", "ballot", "government"},
		sources: []analysis.SourceRef{
			{Name: "Vote.gov", URL: "https://vote.gov", CredibilityNote: "Official U.S. government voter information"},
			{Name: "U.S. Election Assistance Commission", URL: "https://www.eac.gov", CredibilityNote: "Independent federal election administration agency"},
			{Name: "Ballotpedia", URL: "https://ballotpedia.org", CredibilityNote: "Nonpartisan encyclopedia of elections and policy"},
		},
	},
}

var generalSources = []analysis.SourceRef{
	{Name: "Reuters Fact Check", URL: "https://www.reuters.com/fact-check", CredibilityNote: "Fact-checking unit of an international news agency"},
	{Name: "AP Fact Check", URL: "https://apnews.com/ap-fact-check", CredibilityNote: "Associated Press verification desk"},
	{Name: "Full Fact", URL: "https://fullfact.org", CredibilityNote: "Independent UK fact-checking charity"},
	{Name: "FactCheck.org", URL: "https://www.factcheck.org", CredibilityNote: "Nonpartisan project of the Annenberg Public Policy Center"},
	{Name: "Snopes", URL: "https://www.snopes.com", CredibilityNote: "Long-running fact-checking and rumor research site"},
}

// MatchSources returns category sources in category order followed by the
// general fact-checkers, truncated to MaxSources. Entries are not
// deduplicated, so a second matching category pushes the general tail out.
func MatchSources(content string) []analysis.SourceRef {
	lower := strings.ToLower(content)
	out := make([]analysis.SourceRef, 0, 3*len(sourceCategories)+len(generalSources))
	for _, c := range sourceCategories {
		if containsAny(lower, c.keywords) {
			out = append(out, c.sources...)
		}
	}
	out = append(out, generalSources...)
	if len(out) > MaxSources {
		out = out[:MaxSources]
	}
	return out
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

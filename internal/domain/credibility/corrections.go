package credibility

import "strings"

type topicRule struct {
	match func(lower string) bool
	text  string
}

func anyOf(words ...string) func(string) bool {
	return func(lower string) bool { return containsAny(lower, words) }
}

var (
	ruleVaccine  = anyOf("vaccine", "covid")
	ruleClimate  = anyOf("climate")
	ruleElection = anyOf("election", "vote")
	rule5G       = anyOf("5g", "radiation")
)

var explanations = []topicRule{
	{ruleVaccine, "Vaccines approved for public use go through multi-phase clinical trials and continuous safety monitoring. Health authorities such as the WHO and CDC report that serious side effects are rare and that the benefits of vaccination far outweigh the risks."},
	{ruleClimate, "The scientific consensus, summarised by the IPCC and national science agencies, is that the climate is warming and that human activity is the main cause. Claims contradicting this are not supported by the body of peer-reviewed evidence."},
	{ruleElection, "Election results are certified by independent officials and are subject to audits, recounts and court review. Claims of widespread fraud have repeatedly been investigated and not substantiated by election authorities."},
	{rule5G, "5G networks use non-ionizing radio waves at power levels within international safety limits. Health agencies have found no evidence that 5G causes illness or spreads disease."},
}

var corrections = []topicRule{
	{ruleVaccine, "Approved vaccines are rigorously tested and continuously monitored; they are safe and effective for the vast majority of people."},
	{ruleClimate, "Climate change is real, is driven mainly by human greenhouse gas emissions, and is supported by overwhelming scientific evidence."},
	{ruleElection, "Elections are protected by multiple verification, audit and certification steps, and there is no credible evidence of outcome-changing fraud."},
	{rule5G, "5G technology operates within established safety limits and has not been shown to harm human health."},
	{anyOf("bank", "withdraw"), "There is no official announcement restricting bank withdrawals; check your bank's official website or the central bank for accurate information."},
	{func(lower string) bool {
		return strings.Contains(lower, "government") && containsAny(lower, []string{"mandatory", "ban"})
	}, "No such government mandate or ban has been officially announced; new rules are published through official government channels."},
}

const (
	fallbackExplanation = "This claim is not supported by credible sources. Verify it through official channels and established fact-checking organizations before sharing."
	fallbackCorrection  = "No reliable evidence supports this claim. Please consult official sources for accurate information."
)

func firstMatch(rules []topicRule, content, fallback string) string {
	lower := strings.ToLower(content)
	for _, r := range rules {
		if r.match(lower) {
			return r.text
		}
	}
	return fallback
}

// Explain returns a factual explanation for the first matching topic.
func Explain(content string) string {
	return firstMatch(explanations, content, fallbackExplanation)
}

// Correct returns a corrected statement for the first matching topic.
func Correct(content string) string {
	return firstMatch(corrections, content, fallbackCorrection)
}

package credibility

import "github.com/bryanwahyu/verifact/internal/domain/analysis"

var recommendations = map[analysis.ContentType][3]string{
	analysis.ContentText: {
		"This content shows strong indicators of authenticity. Still verify important claims with trusted sources before sharing.",
		"Exercise caution: some credibility concerns were detected. Verify the claims with additional reputable sources before sharing.",
		"High risk of misinformation. Do not share this content until it has been verified by reliable fact-checking organizations.",
	},
	analysis.ContentURL: {
		"This link appears to come from a legitimate source. Continue to read critically and check the publication date.",
		"Be careful with this link: the site shows some risk signals. Confirm the story on a well-known news site before trusting it.",
		"Avoid this link. It shows several risk signals associated with phishing or unreliable sites; do not enter personal information.",
	},
	analysis.ContentMedia: {
		"No obvious manipulation indicators were found, but local media checks are limited. Confirm with the original source.",
		"This media may have been altered. Look for the original upload and compare it with coverage from reputable outlets.",
		"Treat this media as unverified. Use a professional forensic tool or reverse search before relying on it.",
	},
}

// Recommendation returns the advice for a content type and final score.
func Recommendation(ct analysis.ContentType, score int) string {
	set, ok := recommendations[ct]
	if !ok {
		set = recommendations[analysis.ContentText]
	}
	authentic, warning := analysis.Band(score)
	switch {
	case authentic:
		return set[0]
	case warning:
		return set[1]
	default:
		return set[2]
	}
}

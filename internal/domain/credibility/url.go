package credibility

import (
	"net"
	"net/url"
	"strings"
)

const (
	urlBaseline = 75
	urlMin      = 25
	urlMax      = 95
	urlJitter   = 5
)

var majorNewsDomains = []string{
	"reuters.com",
	"apnews.com",
	"bbc.com",
	"bbc.co.uk",
	"nytimes.com",
	"washingtonpost.com",
	"theguardian.com",
	"npr.org",
	"pbs.org",
	"cnn.com",
	"nbcnews.com",
	"cbsnews.com",
	"abcnews.go.com",
	"aljazeera.com",
	"bloomberg.com",
	"wsj.com",
	"ft.com",
	"economist.com",
	"dw.com",
	"france24.com",
	"cbc.ca",
	"abc.net.au",
}

var (
	phishingKeywords = []string{"login", "verify", "free", "gift", "prize", "winner", "account", "secure", "update", "bonus"}
	riskyTLDs        = []string{".win", ".xyz", ".top", ".click", ".loan", ".zip", ".tk", ".ru"}
)

// URLSignals are the three checks behind a URL score, in finding order.
type URLSignals struct {
	HTTPS      bool
	Recognized bool
	Phishing   bool
}

// InspectURL parses raw leniently; a missing scheme counts as plain HTTP.
func InspectURL(raw string) URLSignals {
	raw = strings.TrimSpace(raw)
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return URLSignals{Phishing: true}
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	return URLSignals{
		HTTPS:      strings.EqualFold(u.Scheme, "https"),
		Recognized: isMajorNewsDomain(host),
		Phishing:   looksLikePhishing(host, strings.ToLower(u.EscapedPath()+"?"+u.RawQuery)),
	}
}

func isMajorNewsDomain(host string) bool {
	for _, d := range majorNewsDomains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

func looksLikePhishing(host, rest string) bool {
	if host == "" || net.ParseIP(host) != nil {
		return true
	}
	if strings.Count(host, "-") >= 3 {
		return true
	}
	for _, tld := range riskyTLDs {
		if strings.HasSuffix(host, tld) {
			return true
		}
	}
	target := host + rest
	for _, k := range phishingKeywords {
		if strings.Contains(target, k) {
			return true
		}
	}
	return false
}

// Adjustment is the deterministic part of the URL score.
func (s URLSignals) Adjustment() int {
	adj := 0
	if !s.HTTPS {
		adj -= 15
	}
	if s.Recognized {
		adj += 10
	} else {
		adj -= 10
	}
	if s.Phishing {
		adj -= 25
	}
	return adj
}

// ScoreURL returns an authenticity score in [25, 95] for a link.
func ScoreURL(raw string, src Source) int {
	s := InspectURL(raw)
	return ClampScore(float64(urlBaseline+s.Adjustment())+jitter(src, urlJitter), urlMin, urlMax)
}

// FindingsForURL returns one finding per check followed by one filler.
func FindingsForURL(raw string) []string {
	s := InspectURL(raw)
	out := make([]string, 0, 4)
	if s.HTTPS {
		out = append(out, "The URL uses HTTPS encryption")
	} else {
		out = append(out, "The URL does not use HTTPS, so the connection is not encrypted")
	}
	if s.Recognized {
		out = append(out, "The domain belongs to a widely recognized news organization")
	} else {
		out = append(out, "The domain is not a widely recognized major news source")
	}
	if s.Phishing {
		out = append(out, "The URL contains suspicious patterns often used in phishing")
	} else {
		out = append(out, "No common phishing patterns detected in the URL")
	}
	out = append(out, "Verify the page content against other reputable outlets before sharing")
	return out
}

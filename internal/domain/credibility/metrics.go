package credibility

import "github.com/bryanwahyu/verifact/internal/domain/analysis"

type metricSpec struct {
	label  string
	spread float64
}

var (
	textMetrics = []metricSpec{
		{"Language Patterns", 8},
		{"Source Attribution", 12},
		{"Emotional Tone", 15},
		{"Factual Consistency", 10},
	}
	urlMetrics = []metricSpec{
		{"Domain Reputation", 10},
		{"Connection Security", 5},
		{"Content Credibility", 12},
		{"Phishing Risk", 15},
	}
	mediaMetrics = map[MediaKind][]metricSpec{
		MediaImage: {
			{"Pixel Consistency", 10},
			{"Metadata Integrity", 15},
			{"Compression Artifacts", 12},
			{"Deepfake Indicators", 20},
		},
		MediaVideo: {
			{"Frame Consistency", 12},
			{"Audio-Visual Sync", 15},
			{"Motion Artifacts", 18},
			{"Deepfake Indicators", 20},
		},
		MediaAudio: {
			{"Voice Consistency", 10},
			{"Spectral Analysis", 12},
			{"Background Noise", 15},
			{"Synthetic Speech Indicators", 20},
		},
		MediaOther: {
			{"File Integrity", 10},
			{"Metadata Consistency", 12},
			{"Format Analysis", 10},
			{"Manipulation Indicators", 15},
		},
	}
)

// ExpandMetrics fans a single score out into the four named metrics of the
// content type. Each metric is the score plus its own jitter, so the metrics
// are presentation only and carry no information beyond the score.
func ExpandMetrics(ct analysis.ContentType, kind MediaKind, score int, src Source) []analysis.DetectionMetric {
	specs := textMetrics
	switch ct {
	case analysis.ContentURL:
		specs = urlMetrics
	case analysis.ContentMedia:
		specs = mediaMetrics[kind]
		if specs == nil {
			specs = mediaMetrics[MediaOther]
		}
	}
	out := make([]analysis.DetectionMetric, 0, len(specs))
	for _, m := range specs {
		out = append(out, analysis.DetectionMetric{
			Label: m.label,
			Score: ClampScore(float64(score)+jitter(src, m.spread), 0, 100),
		})
	}
	return out
}

package credibility

import (
	"path"
	"strings"
)

// MediaKind enum
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
	MediaAudio MediaKind = "audio"
	MediaOther MediaKind = "other"
)

const (
	mediaBaseline = 70
	mediaMin      = 30
	mediaMax      = 95
)

var mediaExtensions = map[string]MediaKind{
	".jpg": MediaImage, ".jpeg": MediaImage, ".png": MediaImage, ".gif": MediaImage, ".webp": MediaImage, ".heic": MediaImage, ".bmp": MediaImage,
	".mp4": MediaVideo, ".mov": MediaVideo, ".avi": MediaVideo, ".mkv": MediaVideo, ".webm": MediaVideo,
	".mp3": MediaAudio, ".wav": MediaAudio, ".ogg": MediaAudio, ".m4a": MediaAudio, ".flac": MediaAudio,
}

// ClassifyMedia picks the media kind from the MIME type, then the file extension.
func ClassifyMedia(fileType, fileName string) MediaKind {
	ft := strings.ToLower(strings.TrimSpace(fileType))
	switch {
	case strings.HasPrefix(ft, "image"):
		return MediaImage
	case strings.HasPrefix(ft, "video"):
		return MediaVideo
	case strings.HasPrefix(ft, "audio"):
		return MediaAudio
	}
	if k, ok := mediaExtensions[strings.ToLower(path.Ext(fileName))]; ok {
		return k
	}
	return MediaOther
}

// jitter amplitude per media kind; video is wider because motion artifacts are
// less certain without frame analysis.
func (k MediaKind) spread() float64 {
	if k == MediaVideo {
		return 15
	}
	return 10
}

// ScoreMedia returns a score in [30, 95]. It stays near a neutral baseline:
// without forensic analysis it is a placeholder, not a verified signal.
func ScoreMedia(kind MediaKind, src Source) int {
	return ClampScore(mediaBaseline+jitter(src, kind.spread()), mediaMin, mediaMax)
}

var mediaFindings = map[MediaKind][]string{
	MediaImage: {
		"Image metadata could not be verified against the capture device",
		"No obvious copy-move or splicing regions were flagged by local checks",
		"Run a reverse image search to find earlier copies of this image",
	},
	MediaVideo: {
		"Frame-level consistency was not examined without forensic tooling",
		"Audio and lip movement alignment should be reviewed manually",
		"Search for the original upload to confirm the date and location",
	},
	MediaAudio: {
		"Voice characteristics were not compared against known recordings",
		"Background noise and cuts may indicate edited or synthetic speech",
		"Confirm the recording with the person or outlet it is attributed to",
	},
	MediaOther: {
		"The file type is not a recognized image, video or audio format",
		"File integrity could not be assessed locally",
		"Obtain the media from its original publisher where possible",
	},
}

// FindingsForMedia returns four findings; the last one states the limits of
// the local media score.
func FindingsForMedia(kind MediaKind) []string {
	base, ok := mediaFindings[kind]
	if !ok {
		base = mediaFindings[MediaOther]
	}
	out := make([]string, 0, 4)
	out = append(out, base...)
	out = append(out, "Local media scoring is a low-confidence placeholder and is not a substitute for forensic analysis")
	return out
}

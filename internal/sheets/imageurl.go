package sheets

import (
	"net/url"
	"regexp"
	"strings"
)

// Drive URL shapes an operator may paste into an image cell. All of
// them carry a file ID that can be rewritten to the thumbnail CDN.
var driveIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/file/d/([\w-]+)`),
	regexp.MustCompile(`/d/([\w-]+)`),
	regexp.MustCompile(`[?&]id=([\w-]+)`),
	regexp.MustCompile(`uc\?id=([\w-]+)`),
}

// ThumbnailURL builds the canonical Drive thumbnail URL for a file ID.
func ThumbnailURL(fileID string) string {
	return "https://drive.google.com/thumbnail?id=" + fileID + "&sz=w2048"
}

// CanonicalImageURL rewrites an image cell value into a servable URL.
// Drive share links in any known shape collapse to the thumbnail CDN;
// other absolute http(s) URLs pass through; anything else is treated
// as a file name relative to the configured image base.
func CanonicalImageURL(raw, imageBase string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	for _, pattern := range driveIDPatterns {
		if m := pattern.FindStringSubmatch(raw); m != nil {
			return ThumbnailURL(m[1])
		}
	}

	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}

	return imageBase + url.PathEscape(raw)
}

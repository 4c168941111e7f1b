package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractFacebookLinks(t *testing.T) {
	rows := []Row{
		{"url": "https://www.facebook.com/bakery/posts/123?ref=share"},
		{"fb": "https://fb.watch/xyz#top\nhttps://example.com/not-fb"},
		{"link": "https://www.facebook.com/bakery/posts/123"}, // dup after stripping query
		{"col0": "https://facebook.com/other; https://fb.watch/abc|https://fb.watch/abc"},
		{"notes": "https://facebook.com/ignored-field"},
	}

	links := ExtractFacebookLinks(rows)

	assert.Equal(t, []string{
		"https://www.facebook.com/bakery/posts/123",
		"https://fb.watch/xyz",
		"https://facebook.com/other",
		"https://fb.watch/abc",
	}, links)
}

func TestExtractFacebookLinksFieldPriority(t *testing.T) {
	// Only the first non-empty candidate cell per row is read.
	rows := []Row{{
		"url": "https://facebook.com/from-url",
		"fb":  "https://facebook.com/from-fb",
	}}

	assert.Equal(t, []string{"https://facebook.com/from-url"}, ExtractFacebookLinks(rows))
}

package sheets

import (
	"context"
	"regexp"
	"strings"
)

// Cell names tried, in priority order, when looking for post links in
// a Facebook tab row.
var facebookFields = []string{"url", "fb", "fb_url", "post", "link", "col0", "col1"}

var facebookRe = regexp.MustCompile(`(?i)facebook\.com|fb\.watch`)

// FacebookLinks fetches the Facebook tab and extracts post URLs.
func (c *Client) FacebookLinks(ctx context.Context, gid string) ([]string, error) {
	rows, err := c.CSVRows(ctx, gid)
	if err != nil {
		return nil, err
	}
	return ExtractFacebookLinks(rows), nil
}

// ExtractFacebookLinks pulls Facebook post URLs out of sheet rows. Each
// row contributes its first non-empty candidate cell, which may hold
// several URLs separated by newlines, commas, semicolons or pipes.
// Only facebook.com and fb.watch links are kept; query strings and
// fragments are stripped and duplicates removed, preserving order.
func ExtractFacebookLinks(rows []Row) []string {
	seen := make(map[string]struct{})
	var links []string

	for _, row := range rows {
		var cell string
		for _, field := range facebookFields {
			if v := row[field]; v != "" {
				cell = v
				break
			}
		}
		if cell == "" {
			continue
		}

		for _, candidate := range splitLinks(cell) {
			if !facebookRe.MatchString(candidate) {
				continue
			}
			normalized := stripQueryAndFragment(candidate)
			if _, dup := seen[normalized]; dup {
				continue
			}
			seen[normalized] = struct{}{}
			links = append(links, normalized)
		}
	}

	return links
}

func splitLinks(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '\n' || r == ',' || r == ';' || r == '|'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func stripQueryAndFragment(u string) string {
	if i := strings.IndexAny(u, "?#"); i >= 0 {
		u = u[:i]
	}
	return u
}

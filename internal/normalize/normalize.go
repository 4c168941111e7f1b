// Package normalize provides text folding and the permissive value
// parsing used when reading operator-maintained spreadsheet cells.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldChain decomposes to NFD and strips combining marks, so
// "Bánh Kem" folds to "banh kem". Transformers carry internal state,
// so a fresh chain is built per call.
func foldChain() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
}

var (
	truthyRe    = regexp.MustCompile(`(?i)^(1|true|yes|x)$`)
	extensionRe = regexp.MustCompile(`\.[^.]+$`)
	slugRe      = regexp.MustCompile(`[^a-z0-9]+`)
)

// Fold lowercases s, strips diacritic marks and trims whitespace.
// Used everywhere two operator-entered strings must compare equal.
func Fold(s string) string {
	folded, _, err := transform.String(foldChain(), strings.ToLower(s))
	if err != nil {
		// Transform only fails on malformed UTF-8; fall back to the
		// lowercased input so comparisons stay deterministic.
		return strings.TrimSpace(strings.ToLower(s))
	}
	return strings.TrimSpace(folded)
}

// FileKey folds a file name and drops its extension, producing the key
// a product name is matched against in the image index.
func FileKey(name string) string {
	folded, _, err := transform.String(foldChain(), strings.ToLower(name))
	if err != nil {
		folded = strings.ToLower(name)
	}
	return strings.TrimSpace(extensionRe.ReplaceAllString(folded, ""))
}

// Slug folds s and collapses runs of non-alphanumerics into hyphens.
func Slug(s string) string {
	return strings.Trim(slugRe.ReplaceAllString(Fold(s), "-"), "-")
}

// Bool reports whether a cell holds a truthy marker: 1, true, yes or x,
// case-insensitive. Everything else, including blank, is false.
func Bool(s string) bool {
	return truthyRe.MatchString(strings.TrimSpace(s))
}

// Number parses a cell permissively: every rune that is not a digit or
// a dot is discarded before parsing, so "100,000 đ" becomes 100000.
// Unparseable cells yield 0.
func Number(s string) float64 {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	n, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return n
}

// SplitList splits s on any of the separator runes, trims each piece
// and drops blanks. Order is preserved.
func SplitList(s, separators string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return strings.ContainsRune(separators, r)
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Pair is a key with an optional display label.
type Pair struct {
	Key   string
	Label string
}

// SplitPairs parses a "key|label" list separated by newlines or
// semicolons. A missing label falls back to the key.
func SplitPairs(s string) []Pair {
	entries := SplitList(s, "\n;")
	pairs := make([]Pair, 0, len(entries))
	for _, entry := range entries {
		key, label, found := strings.Cut(entry, "|")
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		label = strings.TrimSpace(label)
		if !found || label == "" {
			label = key
		}
		pairs = append(pairs, Pair{Key: key, Label: label})
	}
	return pairs
}

// ParsePriceTable parses a "key:value" list separated by commas or
// semicolons into a price map. Values go through Number.
func ParsePriceTable(s string) map[string]float64 {
	entries := SplitList(s, ",;")
	if len(entries) == 0 {
		return nil
	}
	prices := make(map[string]float64, len(entries))
	for _, entry := range entries {
		key, value, found := strings.Cut(entry, ":")
		key = strings.TrimSpace(key)
		if key == "" || !found {
			continue
		}
		prices[key] = Number(value)
	}
	if len(prices) == 0 {
		return nil
	}
	return prices
}

// StripQuotes removes one pair of surrounding single or double quotes.
func StripQuotes(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

package drive

import (
	"fmt"
	"strings"

	"github.com/storefrontapp/storefront-server/internal/normalize"
)

// ImageIndex maps folded, extension-stripped file names to thumbnail
// URLs. Multiple files folding to the same key keep their listing
// order, and keys remember insertion order so prefix matches are
// deterministic.
type ImageIndex struct {
	keys  []string
	byKey map[string][]string
}

// BuildIndex builds a fresh index from a Drive listing. The URL of
// each file carries a version parameter derived from its modification
// time, so re-uploaded images bust browser caches.
func BuildIndex(files []File) *ImageIndex {
	idx := &ImageIndex{
		byKey: make(map[string][]string, len(files)),
	}
	for _, f := range files {
		key := normalize.FileKey(f.Name)
		if key == "" {
			continue
		}
		if _, exists := idx.byKey[key]; !exists {
			idx.keys = append(idx.keys, key)
		}
		idx.byKey[key] = append(idx.byKey[key], thumbnailURL(f))
	}
	return idx
}

// Lookup resolves a product name to image URLs. An exact match on the
// folded name wins; otherwise the union of all keys extending the name
// with a space or hyphen separator, in index insertion order. No match
// returns nil.
func (idx *ImageIndex) Lookup(name string) []string {
	if idx == nil {
		return nil
	}
	folded := normalize.Fold(name)
	if folded == "" {
		return nil
	}

	if urls, ok := idx.byKey[folded]; ok {
		out := make([]string, len(urls))
		copy(out, urls)
		return out
	}

	var out []string
	spacePrefix := folded + " "
	hyphenPrefix := folded + "-"
	for _, key := range idx.keys {
		if strings.HasPrefix(key, spacePrefix) || strings.HasPrefix(key, hyphenPrefix) {
			out = append(out, idx.byKey[key]...)
		}
	}
	return out
}

// Len returns the number of distinct keys in the index.
func (idx *ImageIndex) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.keys)
}

func thumbnailURL(f File) string {
	return fmt.Sprintf("https://drive.google.com/thumbnail?id=%s&sz=w2048&v=%d", f.ID, f.ModifiedTime.Unix())
}

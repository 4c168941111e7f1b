package search

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/blevesearch/bleve/v2"
)

// mappingVersion is bumped whenever the index mapping changes in a way
// that requires a rebuild. The stored version is compared on open and a
// mismatch discards the index on disk; the next sync pass repopulates it.
const mappingVersion = "2"

const (
	indexDirName    = "search.bleve"
	versionFileName = "search.version"
)

// Index wraps a Bleve index over product documents.
type Index struct {
	index  bleve.Index
	logger *slog.Logger
	path   string
	mu     sync.RWMutex
}

// NewIndex opens or creates the product search index under dataPath.
func NewIndex(dataPath string, logger *slog.Logger) (*Index, error) {
	indexPath := filepath.Join(dataPath, indexDirName)
	versionPath := filepath.Join(dataPath, versionFileName)

	if needsRebuild(indexPath, versionPath) {
		logger.Info("search index mapping changed, rebuilding", "path", indexPath)
		if err := os.RemoveAll(indexPath); err != nil {
			return nil, fmt.Errorf("remove stale search index: %w", err)
		}
	}

	var index bleve.Index
	if _, err := os.Stat(indexPath); os.IsNotExist(err) {
		indexMapping, err := buildIndexMapping()
		if err != nil {
			return nil, err
		}
		index, err = bleve.New(indexPath, indexMapping)
		if err != nil {
			return nil, fmt.Errorf("create search index: %w", err)
		}
		if err := os.WriteFile(versionPath, []byte(mappingVersion), 0o644); err != nil {
			return nil, fmt.Errorf("write search index version: %w", err)
		}
	} else {
		index, err = bleve.Open(indexPath)
		if err != nil {
			return nil, fmt.Errorf("open search index: %w", err)
		}
	}

	count, _ := index.DocCount()
	logger.Info("search index ready", "path", indexPath, "documents", count)

	return &Index{
		index:  index,
		logger: logger,
		path:   indexPath,
	}, nil
}

// NewMemIndex creates an in-memory index. Used in tests.
func NewMemIndex(logger *slog.Logger) (*Index, error) {
	indexMapping, err := buildIndexMapping()
	if err != nil {
		return nil, err
	}
	index, err := bleve.NewMemOnly(indexMapping)
	if err != nil {
		return nil, fmt.Errorf("create in-memory search index: %w", err)
	}
	return &Index{index: index, logger: logger}, nil
}

func needsRebuild(indexPath, versionPath string) bool {
	if _, err := os.Stat(indexPath); os.IsNotExist(err) {
		return false
	}
	data, err := os.ReadFile(versionPath)
	if err != nil {
		return true
	}
	return string(data) != mappingVersion
}

const indexBatchSize = 500

// ReplaceAll reindexes the full product set, removing documents that no
// longer exist. The catalog is small enough that a full pass per sync
// is cheaper than diffing.
func (i *Index) ReplaceAll(docs []*Document) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	keep := make(map[string]bool, len(docs))
	for _, d := range docs {
		keep[d.ID] = true
	}

	stale, err := i.allDocIDs()
	if err != nil {
		return err
	}

	batch := i.index.NewBatch()
	flush := func() error {
		if batch.Size() == 0 {
			return nil
		}
		if err := i.index.Batch(batch); err != nil {
			return fmt.Errorf("index batch: %w", err)
		}
		batch = i.index.NewBatch()
		return nil
	}

	for _, id := range stale {
		if keep[id] {
			continue
		}
		batch.Delete(id)
		if batch.Size() >= indexBatchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}

	for _, d := range docs {
		if err := batch.Index(d.ID, d.ToMap()); err != nil {
			return fmt.Errorf("index document %s: %w", d.ID, err)
		}
		if batch.Size() >= indexBatchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}

	if err := flush(); err != nil {
		return err
	}

	i.logger.Debug("search index replaced", "documents", len(docs))
	return nil
}

func (i *Index) allDocIDs() ([]string, error) {
	var ids []string
	req := bleve.NewSearchRequest(bleve.NewMatchAllQuery())
	req.Size = 1000
	for {
		res, err := i.index.Search(req)
		if err != nil {
			return nil, fmt.Errorf("enumerate index: %w", err)
		}
		for _, hit := range res.Hits {
			ids = append(ids, hit.ID)
		}
		if uint64(len(ids)) >= res.Total || len(res.Hits) == 0 {
			return ids, nil
		}
		req.From += req.Size
	}
}

// DocumentCount returns the number of indexed products.
func (i *Index) DocumentCount() (uint64, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.index.DocCount()
}

// Close releases the underlying index.
func (i *Index) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.index.Close()
}

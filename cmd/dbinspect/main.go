// Package main provides a read-only inspector for the catalog cache.
//
// Opens the badger store directly and prints each collection's version
// counter, item count and raw size. Useful when debugging sync passes.
package main

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/dgraph-io/badger/v4"
)

var collections = []string{
	"products", "categories", "menu", "pages", "tags", "types", "levels", "fb_urls",
}

func main() {
	dbPath := os.Getenv("DATA_PATH")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to resolve home directory: %v", err)
		}
		dbPath = filepath.Join(home, "Storefront", "data")
	}
	dbPath = filepath.Join(dbPath, "cache")

	opts := badger.DefaultOptions(dbPath).
		WithReadOnly(true).
		WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open cache: %v", err)
	}
	defer db.Close()

	fmt.Println("=== Catalog Cache Inspection ===")
	fmt.Println()

	err = db.View(func(txn *badger.Txn) error {
		for _, name := range collections {
			version := readVersion(txn, name)
			count, size := readCollection(txn, name)
			fmt.Printf("%-12s version=%-6d items=%-5d size=%s\n",
				name, version, count, humanSize(size))
		}
		return nil
	})
	if err != nil {
		log.Fatalf("Error reading cache: %v", err)
	}
}

func readVersion(txn *badger.Txn, name string) uint64 {
	item, err := txn.Get([]byte("ver:" + name))
	if err != nil {
		return 0
	}
	var version uint64
	_ = item.Value(func(val []byte) error {
		if len(val) == 8 {
			version = binary.BigEndian.Uint64(val)
		}
		return nil
	})
	return version
}

func readCollection(txn *badger.Txn, name string) (count int, size int) {
	item, err := txn.Get([]byte("col:" + name))
	if err != nil {
		return 0, 0
	}
	_ = item.Value(func(val []byte) error {
		size = len(val)
		var items []json.RawMessage
		if err := json.Unmarshal(val, &items); err == nil {
			count = len(items)
		}
		return nil
	})
	return count, size
}

func humanSize(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1fMB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1fKB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%dB", n)
	}
}

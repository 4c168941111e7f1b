package store

import (
	"context"
	"encoding/binary"
	"encoding/json/v2"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// Get reads a collection. A collection that was never written returns
// an empty slice at version zero.
func Get[T any](ctx context.Context, s *Store, c Collection) ([]T, uint64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	var items []T
	var version uint64

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(valueKey(c))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &items)
		}); err != nil {
			return fmt.Errorf("decode collection %s: %w", c, err)
		}

		version, err = readVersion(txn, c)
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	if items == nil {
		items = []T{}
	}
	return items, version, nil
}

// Version reads a collection's current version without its value.
func (s *Store) Version(ctx context.Context, c Collection) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var version uint64
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		version, err = readVersion(txn, c)
		return err
	})
	return version, err
}

// Replace overwrites a collection unconditionally and bumps its
// version. Used by admin writes, where last write wins.
func Replace[T any](ctx context.Context, s *Store, c Collection, items []T) (uint64, error) {
	return replace(ctx, s, c, items, nil)
}

// ReplaceIfBaseline overwrites a collection only if its version still
// equals the baseline observed by the caller, returning ErrConflict
// otherwise. Used by sync commits so a refresh pass never clobbers an
// admin edit made while the pass was fetching.
func ReplaceIfBaseline[T any](ctx context.Context, s *Store, c Collection, items []T, baseline uint64) (uint64, error) {
	return replace(ctx, s, c, items, &baseline)
}

func replace[T any](ctx context.Context, s *Store, c Collection, items []T, baseline *uint64) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	value, err := json.Marshal(items)
	if err != nil {
		return 0, fmt.Errorf("encode collection %s: %w", c, err)
	}

	var next uint64
	err = s.db.Update(func(txn *badger.Txn) error {
		current, err := readVersion(txn, c)
		if err != nil {
			return err
		}
		if baseline != nil && current != *baseline {
			return fmt.Errorf("%w: %s at %d, baseline %d", ErrConflict, c, current, *baseline)
		}

		next = current + 1
		if err := txn.Set(valueKey(c), value); err != nil {
			return err
		}
		return txn.Set(versionKey(c), encodeVersion(next))
	})
	if err != nil {
		return 0, err
	}

	s.notify(c)
	return next, nil
}

func readVersion(txn *badger.Txn, c Collection) (uint64, error) {
	item, err := txn.Get(versionKey(c))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	var version uint64
	err = item.Value(func(val []byte) error {
		if len(val) != 8 {
			return fmt.Errorf("corrupt version for %s", c)
		}
		version = binary.BigEndian.Uint64(val)
		return nil
	})
	return version, err
}

func encodeVersion(v uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, v)
	return buf
}

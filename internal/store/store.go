// PlateScout - Restaurant Recommendation Service
// Copyright 2026 PlateScout Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/platescout/platescout

// Package store persists the validated restaurant dataset in BadgerDB so a
// restarting server can serve queries without re-reading the source file.
// The store holds exactly one dataset generation: ReplaceAll swaps the
// whole keyspace, and LoadAll returns records in their original ingest
// order.
package store

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/platescout/platescout/internal/restaurant"
)

// restaurantKeyPrefix namespaces dataset records. Keys are the prefix plus
// a zero-padded ingest sequence number, so Badger's lexicographic iteration
// yields records in ingest order.
const restaurantKeyPrefix = "restaurant:"

// Store is a BadgerDB-backed dataset store.
type Store struct {
	db *badger.DB
}

// Open opens the store at path. An empty path opens an in-memory store,
// used by tests and by deployments that only serve from the live snapshot.
func Open(path string) (*Store, error) {
	var opts badger.Options
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(path)
	}
	opts.Logger = nil // Suppress BadgerDB internal logs

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db: %w", err)
	}
	return &Store{db: db}, nil
}

// ReplaceAll atomically replaces the stored dataset with the given records.
// The previous generation is dropped first so removed restaurants do not
// linger across reloads.
func (s *Store) ReplaceAll(restaurants []restaurant.Restaurant) error {
	if err := s.db.DropPrefix([]byte(restaurantKeyPrefix)); err != nil {
		return fmt.Errorf("drop previous dataset: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		for i, r := range restaurants {
			data, err := json.Marshal(r)
			if err != nil {
				return fmt.Errorf("marshal restaurant %q: %w", r.Name, err)
			}
			key := []byte(fmt.Sprintf("%s%08d", restaurantKeyPrefix, i))
			if err := txn.Set(key, data); err != nil {
				return fmt.Errorf("set restaurant %q: %w", r.Name, err)
			}
		}
		return nil
	})
}

// LoadAll returns the stored dataset in ingest order. An empty store yields
// an empty slice, not an error.
func (s *Store) LoadAll() ([]restaurant.Restaurant, error) {
	var out []restaurant.Restaurant

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		prefix := []byte(restaurantKeyPrefix)
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var r restaurant.Restaurant
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &r)
			})
			if err != nil {
				return fmt.Errorf("unmarshal restaurant at %s: %w", it.Item().Key(), err)
			}
			out = append(out, r)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of stored restaurants without decoding values.
func (s *Store) Count() (int, error) {
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		prefix := []byte(restaurantKeyPrefix)
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Ping verifies the database accepts transactions. Used by the readiness
// probe.
func (s *Store) Ping() error {
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(restaurantKeyPrefix + "ping"))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("badger ping: %w", err)
	}
	return nil
}

// Close releases the database. Safe to call once after all readers stop.
func (s *Store) Close() error {
	return s.db.Close()
}

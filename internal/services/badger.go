package services

import (
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// InitBadger opens the embedded database in dir. An empty dir opens an
// in-memory database.
func InitBadger(dir string) (*badger.DB, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("error opening badger database: %w", err)
	}

	return db, nil
}

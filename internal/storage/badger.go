package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/lk16/reversi/internal/models"
)

const keyGamePrefix = "game/"

// BadgerStore keeps one JSON document per game in an embedded badger database.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore wraps an open database. The caller keeps ownership of db.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

func gameKey(id uuid.UUID) []byte {
	return []byte(keyGamePrefix + id.String())
}

// CreateGame stores a new game record.
func (s *BadgerStore) CreateGame(_ context.Context, record models.GameRecord) error {
	if record.Moves == nil {
		record.Moves = []models.MoveRecord{}
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return putRecord(txn, record)
	})
}

// AppendMove adds a move to the end of the game's move log.
func (s *BadgerStore) AppendMove(_ context.Context, id uuid.UUID, move models.MoveRecord) error {
	return s.update(id, func(record *models.GameRecord) {
		record.Moves = append(record.Moves, move)
	})
}

// DeleteLastMove removes the last move of the game's move log, if any.
func (s *BadgerStore) DeleteLastMove(_ context.Context, id uuid.UUID) error {
	return s.update(id, func(record *models.GameRecord) {
		if len(record.Moves) > 0 {
			record.Moves = record.Moves[:len(record.Moves)-1]
		}
	})
}

// LoadGame returns the game record.
func (s *BadgerStore) LoadGame(_ context.Context, id uuid.UUID) (models.GameRecord, error) {
	var record models.GameRecord

	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		record, err = getRecord(txn, id)
		return err
	})

	return record, err
}

// update runs a read-modify-write of a game record in a single transaction.
func (s *BadgerStore) update(id uuid.UUID, modify func(record *models.GameRecord)) error {
	return s.db.Update(func(txn *badger.Txn) error {
		record, err := getRecord(txn, id)
		if err != nil {
			return err
		}

		modify(&record)
		return putRecord(txn, record)
	})
}

func getRecord(txn *badger.Txn, id uuid.UUID) (models.GameRecord, error) {
	var record models.GameRecord

	item, err := txn.Get(gameKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return models.GameRecord{}, models.ErrGameNotFound
	}
	if err != nil {
		return models.GameRecord{}, fmt.Errorf("error getting game: %w", err)
	}

	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &record)
	})
	if err != nil {
		return models.GameRecord{}, fmt.Errorf("error decoding game: %w", err)
	}

	return record, nil
}

func putRecord(txn *badger.Txn, record models.GameRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("error marshaling game: %w", err)
	}

	return txn.Set(gameKey(record.ID), data)
}

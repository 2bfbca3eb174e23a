package games

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/lk16/reversi/internal/models"
)

// Store persists game records. Implementations return models.ErrGameNotFound
// for unknown ids and must be safe for concurrent use.
type Store interface {
	CreateGame(ctx context.Context, record models.GameRecord) error
	AppendMove(ctx context.Context, id uuid.UUID, move models.MoveRecord) error
	DeleteLastMove(ctx context.Context, id uuid.UUID) error
	LoadGame(ctx context.Context, id uuid.UUID) (models.GameRecord, error)
}

// MemoryStore keeps game records in process memory.
type MemoryStore struct {
	// records stores the underlying map
	records map[uuid.UUID]models.GameRecord

	// recordsMutex protects records
	recordsMutex sync.Mutex
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[uuid.UUID]models.GameRecord),
	}
}

func (s *MemoryStore) CreateGame(_ context.Context, record models.GameRecord) error {
	s.recordsMutex.Lock()
	defer s.recordsMutex.Unlock()

	record.Moves = slices.Clone(record.Moves)
	s.records[record.ID] = record
	return nil
}

func (s *MemoryStore) AppendMove(_ context.Context, id uuid.UUID, move models.MoveRecord) error {
	s.recordsMutex.Lock()
	defer s.recordsMutex.Unlock()

	record, ok := s.records[id]
	if !ok {
		return models.ErrGameNotFound
	}

	record.Moves = append(slices.Clip(record.Moves), move)
	s.records[id] = record
	return nil
}

func (s *MemoryStore) DeleteLastMove(_ context.Context, id uuid.UUID) error {
	s.recordsMutex.Lock()
	defer s.recordsMutex.Unlock()

	record, ok := s.records[id]
	if !ok {
		return models.ErrGameNotFound
	}

	if len(record.Moves) > 0 {
		record.Moves = slices.Clone(record.Moves[:len(record.Moves)-1])
	}
	s.records[id] = record
	return nil
}

func (s *MemoryStore) LoadGame(_ context.Context, id uuid.UUID) (models.GameRecord, error) {
	s.recordsMutex.Lock()
	defer s.recordsMutex.Unlock()

	record, ok := s.records[id]
	if !ok {
		return models.GameRecord{}, models.ErrGameNotFound
	}

	record.Moves = slices.Clone(record.Moves)
	return record, nil
}

package calls

import (
	"context"
	"sync"
)

// Store holds call records by call ID. Implementations must serialize
// updates to the same record; cross-record operations need no shared lock.
type Store interface {
	Get(ctx context.Context, callID string) (*Record, bool, error)
	Put(ctx context.Context, record *Record) error
	// Update applies fn to the stored record under the record's lock and
	// returns the updated copy, or ok=false if the record does not exist.
	Update(ctx context.Context, callID string, fn func(*Record)) (*Record, bool, error)
}

// MemoryStore keeps records in process memory. State is scoped to a single
// process lifetime; a restart loses all records.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]*Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]*Record)}
}

func (s *MemoryStore) Get(_ context.Context, callID string) (*Record, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[callID]
	if !ok {
		return nil, false, nil
	}
	return record.clone(), true, nil
}

func (s *MemoryStore) Put(_ context.Context, record *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[record.CallID] = record.clone()
	return nil
}

func (s *MemoryStore) Update(_ context.Context, callID string, fn func(*Record)) (*Record, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[callID]
	if !ok {
		return nil, false, nil
	}
	fn(record)
	return record.clone(), true, nil
}

// Clear removes all records. Useful for testing cleanup.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = make(map[string]*Record)
}

package session

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryStore is a map-backed Store used by tests and single-process
// development setups. Records are stored as serialized blobs so reads hand
// out independent copies, matching the durable store's semantics.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Record, error) {
	s.mu.Lock()
	blob, ok := s.data[id]
	s.mu.Unlock()
	if !ok {
		return nil, ErrNotFound
	}

	var rec Record
	if err := json.Unmarshal(blob, &rec); err != nil {
		return nil, err
	}
	rec.ID = id

	if rec.IsExpired() {
		// Lazy expiry: drop the dead row and report absence.
		s.mu.Lock()
		delete(s.data, id)
		s.mu.Unlock()
		return nil, ErrNotFound
	}
	return &rec, nil
}

func (s *MemoryStore) Put(_ context.Context, rec *Record) error {
	blob, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data[rec.ID] = blob
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.data, id)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) EnsureSchema(_ context.Context) error {
	return nil
}

// Len reports the number of stored records, expired or not. Test helper.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}

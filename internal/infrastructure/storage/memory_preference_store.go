package storage

import (
	"context"
	"sync"

	"mushroom-doctor/internal/domain/port"
)

// MemoryPreferenceStore хранит настройки в памяти процесса (до перезапуска).
type MemoryPreferenceStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryPreferenceStore() *MemoryPreferenceStore {
	return &MemoryPreferenceStore{values: make(map[string]string)}
}

func (s *MemoryPreferenceStore) Get(ctx context.Context, scope, name string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[scope+"/"+name]
	return v, ok, nil
}

func (s *MemoryPreferenceStore) Set(ctx context.Context, scope, name, value string) error {
	s.mu.Lock()
	s.values[scope+"/"+name] = value
	s.mu.Unlock()
	return nil
}

var _ port.PreferenceStore = (*MemoryPreferenceStore)(nil)

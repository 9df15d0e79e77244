package storage

import (
	"context"
	"sync"

	"mushroom-doctor/internal/domain/entity"
	"mushroom-doctor/internal/domain/port"
)

// MemorySessionRepository in-memory хранилище сессий
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*entity.Session
}

// NewMemorySessionRepository создаёт новое in-memory хранилище
func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{
		sessions: make(map[string]*entity.Session),
	}
}

// Find возвращает сессию по ключу
func (r *MemorySessionRepository) Find(ctx context.Context, key string) (*entity.Session, bool, error) {
	r.mu.RLock()
	session, exists := r.sessions[key]
	r.mu.RUnlock()

	return session, exists, nil
}

// Save сохраняет сессию
func (r *MemorySessionRepository) Save(ctx context.Context, session *entity.Session) error {
	r.mu.Lock()
	r.sessions[session.Key] = session
	r.mu.Unlock()

	return nil
}

// Delete удаляет сессию
func (r *MemorySessionRepository) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	delete(r.sessions, key)
	r.mu.Unlock()

	return nil
}

// Keys возвращает ключи всех сессий
func (r *MemorySessionRepository) Keys(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	keys := make([]string, 0, len(r.sessions))
	for k := range r.sessions {
		keys = append(keys, k)
	}
	r.mu.RUnlock()

	return keys, nil
}

// Проверка реализации интерфейса
var _ port.SessionRepository = (*MemorySessionRepository)(nil)

package port

import (
	"context"

	"mushroom-doctor/internal/domain/entity"
)

// SessionRepository интерфейс хранилища сессий
type SessionRepository interface {
	// Find возвращает сессию по ключу
	Find(ctx context.Context, key string) (*entity.Session, bool, error)

	// Save сохраняет сессию
	Save(ctx context.Context, session *entity.Session) error

	// Delete удаляет сессию
	Delete(ctx context.Context, key string) error

	// Keys возвращает ключи всех сессий
	Keys(ctx context.Context) ([]string, error)
}

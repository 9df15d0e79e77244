package port

import (
	"context"

	"mushroom-doctor/internal/domain/entity"
)

// InsightDescriber интерфейс генератора текстового анализа
type InsightDescriber interface {
	// Describe генерирует короткий анализ результата на языке пользователя
	Describe(ctx context.Context, lang entity.Language, class string, confidence float64) (string, error)
}

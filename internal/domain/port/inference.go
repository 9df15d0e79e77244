package port

import (
	"context"

	"mushroom-doctor/internal/domain/entity"
)

// InferenceClient интерфейс удалённого классификатора болезней
type InferenceClient interface {
	// Submit отправляет изображение и возвращает полностью разобранный ответ
	Submit(ctx context.Context, payload *entity.Payload) (*entity.InferenceResult, error)
}

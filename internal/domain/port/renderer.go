package port

import "mushroom-doctor/internal/domain/entity"

// OverlayRenderer интерфейс отрисовки рамок поверх превью
type OverlayRenderer interface {
	// Render рисует по рамке на каждую детекцию в размерах отображения
	Render(image []byte, detections []entity.Detection) (*entity.Overlay, error)
}

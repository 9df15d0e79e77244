package port

import (
	"context"
	"errors"
	"image"

	"mushroom-doctor/internal/domain/entity"
)

// ErrNoCaptureSupport возвращается платформой без API захвата видео.
var ErrNoCaptureSupport = errors.New("media capture is not supported")

// StreamConstraints — требования к открываемому потоку.
// Facing == "" означает любую доступную камеру.
type StreamConstraints struct {
	Facing entity.Facing
}

// MediaDevices интерфейс платформенного API захвата видео
type MediaDevices interface {
	// Supported сообщает, есть ли вообще возможность захвата
	Supported() bool

	// Open открывает поток по ограничениям
	Open(ctx context.Context, constraints StreamConstraints) (Stream, error)
}

// Stream — открытый видеопоток, владеющий аппаратным ресурсом.
type Stream interface {
	// Facing — направление фактически открытой камеры
	Facing() entity.Facing

	// Frame читает текущий кадр; nil или нулевой размер — кадра ещё нет
	Frame() (image.Image, error)

	// Stop останавливает все дорожки потока
	Stop()

	// ActiveTracks — число неостановленных дорожек
	ActiveTracks() int
}

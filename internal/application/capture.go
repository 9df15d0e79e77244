package app

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"net/http"

	"go.uber.org/zap"

	"mushroom-doctor/internal/domain/entity"
	"mushroom-doctor/internal/i18n"
)

const capturedFrameName = "capture.png"

// MaxImageSize — предел размера выбранного файла в байтах.
const MaxImageSize = 20 << 20

// CaptureService приводит файл пользователя или кадр камеры к единому Payload.
type CaptureService struct {
	cameras *CameraService
	logger  *zap.Logger
}

func NewCaptureService(cameras *CameraService, logger *zap.Logger) *CaptureService {
	return &CaptureService{cameras: cameras, logger: logger.Named("capture")}
}

// SelectFile делает файл текущим изображением. Открытая камера закрывается.
// Файл больше MaxImageSize отклоняется, прежнее изображение остаётся.
func (s *CaptureService) SelectFile(ctx context.Context, session *entity.Session, name, mimeType string, data []byte) error {
	if len(data) == 0 {
		session.Lock()
		session.View.SetNotice(entity.NoticePrompt, i18n.For(session.Language).NoImage)
		session.Unlock()
		return ErrEmptyImage
	}
	if len(data) > MaxImageSize {
		session.Lock()
		session.View.SetNotice(entity.NoticePrompt, i18n.For(session.Language).ImageTooLarge)
		session.Unlock()
		return fmt.Errorf("%w: %d bytes", ErrImageTooLarge, len(data))
	}

	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(data)
	}

	s.cameras.Close(session)

	s.replace(session, &entity.Payload{
		Name:     name,
		MIMEType: mimeType,
		Source:   entity.SourceFile,
		Data:     data,
	})
	return nil
}

// SelectFrame кодирует кадр в PNG и делает его текущим изображением.
func (s *CaptureService) SelectFrame(session *entity.Session, frame image.Image) error {
	if frame == nil || frame.Bounds().Empty() {
		return ErrEmptyImage
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, frame); err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}

	s.replace(session, &entity.Payload{
		Name:     capturedFrameName,
		MIMEType: "image/png",
		Source:   entity.SourceCamera,
		Data:     buf.Bytes(),
	})
	return nil
}

// CaptureFromCamera снимает кадр с камеры сессии (камера при этом закрывается).
func (s *CaptureService) CaptureFromCamera(ctx context.Context, session *entity.Session) error {
	frame, err := s.cameras.Capture(session)
	if err != nil {
		return err
	}
	return s.SelectFrame(session, frame)
}

// Payload возвращает текущее изображение сессии.
func (s *CaptureService) Payload(session *entity.Session) (*entity.Payload, error) {
	session.Lock()
	defer session.Unlock()

	if session.Payload.Empty() {
		return nil, ErrNoPayload
	}
	return session.Payload, nil
}

// replace заменяет превью и убирает прежний оверлей и результаты.
func (s *CaptureService) replace(session *entity.Session, payload *entity.Payload) {
	session.Lock()
	defer session.Unlock()

	session.Payload = payload
	session.ClearResults()
	session.View.PreviewVisible = true
	session.View.SetNotice(entity.NoticeInfo, i18n.For(session.Language).ImageSelected)

	s.logger.Debug("image selected",
		zap.String("session", session.Key),
		zap.String("source", string(payload.Source)),
		zap.String("mime", payload.MIMEType),
		zap.Int("bytes", len(payload.Data)),
	)
}

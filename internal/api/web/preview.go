package web

import (
	"bytes"
	"errors"
	"image/jpeg"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	app "mushroom-doctor/internal/application"
)

const (
	previewQuality = 70
	pongWait       = 60 * time.Second
	writeWait      = 5 * time.Second
)

// preview шлёт кадры открытой камеры сессии бинарными JPEG-сообщениями.
// Поток кадров заканчивается вместе с камерой.
func (s *Server) preview(c *gin.Context) {
	session := sessionFrom(c)

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade", zap.Error(err))
		return
	}
	defer conn.Close()

	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// клиент ничего не присылает, чтение нужно только чтобы заметить отключение
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(s.previewInterval)
	defer ticker.Stop()

	var buf bytes.Buffer
	for {
		select {
		case <-gone:
			return
		case <-c.Request.Context().Done():
			return
		case <-ticker.C:
		}

		frame, err := s.c.CameraService.Frame(session)
		switch {
		case errors.Is(err, app.ErrCameraNotReady):
			continue
		case err != nil:
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "camera closed"),
				time.Now().Add(writeWait))
			return
		}

		buf.Reset()
		if err := jpeg.Encode(&buf, frame, &jpeg.Options{Quality: previewQuality}); err != nil {
			s.logger.Warn("encode preview frame", zap.Error(err))
			continue
		}

		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.BinaryMessage, buf.Bytes()); err != nil {
			s.logger.Debug("preview client gone", zap.Error(err))
			return
		}
		// открытое превью держит сессию живой
		s.c.SessionService.Touch(session)
	}
}

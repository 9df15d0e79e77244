package web

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	app "mushroom-doctor/internal/application"
	"mushroom-doctor/internal/domain/entity"
)

type languageRequest struct {
	Language string `json:"language" binding:"required"`
}

// statusFor сопоставляет ошибку сценария с HTTP-статусом.
func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, app.ErrNoPayload),
		errors.Is(err, app.ErrEmptyImage),
		errors.Is(err, app.ErrUnknownLanguage):
		return http.StatusBadRequest
	case errors.Is(err, app.ErrImageTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, app.ErrInProgress),
		errors.Is(err, app.ErrCameraSwitchFailed),
		errors.Is(err, app.ErrCameraClosed),
		errors.Is(err, app.ErrCameraNotReady):
		return http.StatusConflict
	case errors.Is(err, app.ErrCameraUnsupported),
		errors.Is(err, app.ErrCameraNotAccessible):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

// respond отдаёт актуальное представление; при ошибке статус берётся из statusFor.
func (s *Server) respond(c *gin.Context, session *entity.Session, err error) {
	c.JSON(statusFor(err), s.c.SessionService.View(session))
}

func (s *Server) health(c *gin.Context) {
	inference := "unknown"
	if s.pinger != nil {
		inference = "ok"
		if err := s.pinger.Ping(c.Request.Context()); err != nil {
			s.logger.Warn("inference ping failed", zap.Error(err))
			inference = "unreachable"
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"inference": inference,
		"camera":    s.c.CameraService.Supported(),
	})
}

func (s *Server) getView(c *gin.Context) {
	s.respond(c, sessionFrom(c), nil)
}

// endSession — аналог перезагрузки страницы: камера закрывается, состояние забывается.
func (s *Server) endSession(c *gin.Context) {
	session := sessionFrom(c)
	if err := s.c.SessionService.End(c.Request.Context(), session.Key); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) setLanguage(c *gin.Context) {
	session := sessionFrom(c)

	var req languageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := s.c.LanguageService.Switch(c.Request.Context(), session, req.Language)
	s.respond(c, session, err)
}

func (s *Server) uploadImage(c *gin.Context) {
	session := sessionFrom(c)

	var (
		name     string
		mimeType string
		data     []byte
	)
	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		defer f.Close()

		// на байт больше предела: SelectFile отличит слишком большой файл от ровно MaxImageSize
		data, err = io.ReadAll(io.LimitReader(f, app.MaxImageSize+1))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		name = fh.Filename
		mimeType = fh.Header.Get("Content-Type")
	}

	err := s.c.CaptureService.SelectFile(c.Request.Context(), session, name, mimeType, data)
	s.respond(c, session, err)
}

func (s *Server) getImage(c *gin.Context) {
	payload, err := s.c.CaptureService.Payload(sessionFrom(c))
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	c.Data(http.StatusOK, payload.MIMEType, payload.Data)
}

func (s *Server) openCamera(c *gin.Context) {
	session := sessionFrom(c)

	facing, ok := entity.ParseFacing(c.Query("facing"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "facing must be user or environment"})
		return
	}

	err := s.c.CameraService.Open(c.Request.Context(), session, facing)
	s.respond(c, session, err)
}

func (s *Server) switchCamera(c *gin.Context) {
	session := sessionFrom(c)
	err := s.c.CameraService.Switch(c.Request.Context(), session)
	s.respond(c, session, err)
}

func (s *Server) captureCamera(c *gin.Context) {
	session := sessionFrom(c)
	err := s.c.CaptureService.CaptureFromCamera(c.Request.Context(), session)
	s.respond(c, session, err)
}

func (s *Server) closeCamera(c *gin.Context) {
	session := sessionFrom(c)
	s.c.CameraService.Close(session)
	s.respond(c, session, nil)
}

func (s *Server) predict(c *gin.Context) {
	session := sessionFrom(c)
	err := s.c.DiagnosisService.Predict(c.Request.Context(), session)
	s.respond(c, session, err)
}

func (s *Server) getOverlay(c *gin.Context) {
	session := sessionFrom(c)

	session.Lock()
	overlay := session.Overlay
	session.Unlock()

	if overlay == nil {
		c.Status(http.StatusNotFound)
		return
	}
	c.Data(http.StatusOK, "image/png", overlay.Image)
}

// Package web отдаёт представление страницы по HTTP и живое превью камеры по websocket.
package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"mushroom-doctor/internal/container"
	"mushroom-doctor/internal/domain/entity"
)

const (
	sessionCookie   = "session_id"
	sessionKeyValue = "session"

	defaultPreviewInterval = 100 * time.Millisecond
)

// Pinger проверяет доступность сервиса распознавания.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	c      *container.Container
	pinger Pinger
	logger *zap.Logger

	upgrader        websocket.Upgrader
	previewInterval time.Duration
}

// NewServer создаёт HTTP-фронтенд. pinger может быть nil.
func NewServer(c *container.Container, pinger Pinger, logger *zap.Logger) *Server {
	return &Server{
		c:      c,
		pinger: pinger,
		logger: logger.Named("web"),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		previewInterval: defaultPreviewInterval,
	}
}

// Run слушает addr до отмены контекста.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// Router собирает маршруты.
func (s *Server) Router() *gin.Engine {
	eng := gin.New()
	eng.Use(gin.Recovery(), s.requestLogger)

	eng.GET("/healthz", s.health)

	api := eng.Group("/api", s.sessionMiddleware)
	api.GET("/view", s.getView)
	api.DELETE("/session", s.endSession)
	api.PUT("/language", s.setLanguage)
	api.POST("/image", s.uploadImage)
	api.GET("/image", s.getImage)
	api.POST("/camera/open", s.openCamera)
	api.POST("/camera/switch", s.switchCamera)
	api.POST("/camera/capture", s.captureCamera)
	api.POST("/camera/close", s.closeCamera)
	api.POST("/predict", s.predict)
	api.GET("/overlay.png", s.getOverlay)

	eng.GET("/ws/preview", s.sessionMiddleware, s.preview)

	return eng
}

func (s *Server) requestLogger(c *gin.Context) {
	start := time.Now()
	c.Next()
	s.logger.Debug("request",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Int("status", c.Writer.Status()),
		zap.Duration("took", time.Since(start)),
	)
}

// sessionMiddleware находит сессию по cookie, при отсутствии выдаёт новый идентификатор.
func (s *Server) sessionMiddleware(c *gin.Context) {
	id, err := c.Cookie(sessionCookie)
	if err != nil {
		id = ""
	}
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(sessionCookie, id, 0, "/", "", false, true)
	}

	session, err := s.c.SessionService.Get(c.Request.Context(), webSessionKey(id))
	if err != nil {
		s.logger.Error("get session", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session unavailable"})
		return
	}

	c.Set(sessionKeyValue, session)
	c.Next()
}

func webSessionKey(id string) string {
	return "web:" + id
}

func sessionFrom(c *gin.Context) *entity.Session {
	return c.MustGet(sessionKeyValue).(*entity.Session)
}

package app

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"

	"go.uber.org/zap"

	"mushroom-doctor/internal/domain/entity"
	"mushroom-doctor/internal/domain/port"
	"mushroom-doctor/internal/i18n"
)

// CameraController владеет не более чем одним потоком.
// Состояния: closed -> opening -> open -> closed; switch оставляет open.
type CameraController struct {
	devices port.MediaDevices
	logger  *zap.Logger

	mu     sync.Mutex
	state  entity.CameraState
	stream port.Stream
	facing entity.Facing
}

func NewCameraController(devices port.MediaDevices, logger *zap.Logger) *CameraController {
	return &CameraController{
		devices: devices,
		logger:  logger,
		state:   entity.CameraClosed,
	}
}

func (c *CameraController) State() entity.CameraState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *CameraController) Facing() entity.Facing {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.facing
}

// ActiveTracks возвращает число живых дорожек текущего потока.
func (c *CameraController) ActiveTracks() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stream == nil {
		return 0
	}
	return c.stream.ActiveTracks()
}

// Open открывает камеру нужного направления; если её нет — любую доступную.
func (c *CameraController) Open(ctx context.Context, facing entity.Facing) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.openLocked(ctx, facing)
}

func (c *CameraController) openLocked(ctx context.Context, facing entity.Facing) error {
	if !c.devices.Supported() {
		c.closeLocked()
		return ErrCameraUnsupported
	}

	c.closeLocked()
	c.state = entity.CameraOpening

	stream, err := c.devices.Open(ctx, port.StreamConstraints{Facing: facing})
	if err != nil {
		if errors.Is(err, port.ErrNoCaptureSupport) {
			c.state = entity.CameraClosed
			return ErrCameraUnsupported
		}
		c.logger.Debug("preferred camera unavailable, trying any", zap.String("facing", string(facing)), zap.Error(err))
		stream, err = c.devices.Open(ctx, port.StreamConstraints{})
	}
	if err != nil {
		c.state = entity.CameraClosed
		return fmt.Errorf("%w: %w", ErrCameraNotAccessible, err)
	}

	c.stream = stream
	c.facing = stream.Facing()
	if c.facing == "" {
		c.facing = facing
	}
	c.state = entity.CameraOpen

	c.logger.Info("camera opened", zap.String("facing", string(c.facing)))
	return nil
}

// Switch переоткрывает камеру с противоположным направлением.
func (c *CameraController) Switch(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != entity.CameraOpen {
		return ErrCameraClosed
	}

	if err := c.openLocked(ctx, c.facing.Opposite()); err != nil {
		return fmt.Errorf("%w: %w", ErrCameraSwitchFailed, err)
	}
	return nil
}

// Capture читает текущий кадр и останавливает поток.
// Поток останавливается и тогда, когда кадра ещё нет: камеру нужно открыть заново.
func (c *CameraController) Capture() (image.Image, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	img, err := c.frameLocked()
	c.closeLocked()
	if err != nil {
		return nil, err
	}
	return img, nil
}

// Frame возвращает текущий кадр без остановки потока (живое превью).
func (c *CameraController) Frame() (image.Image, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frameLocked()
}

func (c *CameraController) frameLocked() (image.Image, error) {
	if c.state != entity.CameraOpen || c.stream == nil {
		return nil, ErrCameraClosed
	}

	img, err := c.stream.Frame()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCameraNotReady, err)
	}
	if img == nil || img.Bounds().Dx() == 0 || img.Bounds().Dy() == 0 {
		return nil, ErrCameraNotReady
	}
	return img, nil
}

// Close останавливает все дорожки; без активного потока ничего не делает.
func (c *CameraController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeLocked()
}

func (c *CameraController) closeLocked() {
	if c.stream != nil {
		c.stream.Stop()
		c.stream = nil
		c.logger.Info("camera closed")
	}
	c.state = entity.CameraClosed
}

// CameraService держит по контроллеру на сессию.
type CameraService struct {
	devices port.MediaDevices
	logger  *zap.Logger

	mu          sync.Mutex
	controllers map[string]*CameraController
}

func NewCameraService(devices port.MediaDevices, logger *zap.Logger) *CameraService {
	return &CameraService{
		devices:     devices,
		logger:      logger.Named("camera"),
		controllers: make(map[string]*CameraController),
	}
}

// Supported сообщает, есть ли на платформе захват видео.
func (s *CameraService) Supported() bool {
	return s.devices.Supported()
}

// Controller возвращает контроллер сессии, создавая его при необходимости.
func (s *CameraService) Controller(key string) *CameraController {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctrl, ok := s.controllers[key]
	if !ok {
		ctrl = NewCameraController(s.devices, s.logger.With(zap.String("session", key)))
		s.controllers[key] = ctrl
	}
	return ctrl
}

func (s *CameraService) lookup(key string) (*CameraController, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ctrl, ok := s.controllers[key]
	return ctrl, ok
}

// Open открывает камеру сессии и отражает результат в представлении.
func (s *CameraService) Open(ctx context.Context, session *entity.Session, facing entity.Facing) error {
	ctrl := s.Controller(session.Key)
	err := ctrl.Open(ctx, facing)
	s.reflect(session, ctrl, err)
	return err
}

// Switch переключает фронтальную и тыловую камеры.
func (s *CameraService) Switch(ctx context.Context, session *entity.Session) error {
	ctrl := s.Controller(session.Key)
	err := ctrl.Switch(ctx)
	s.reflect(session, ctrl, err)
	return err
}

// Capture снимает кадр; при успехе камера закрывается.
func (s *CameraService) Capture(session *entity.Session) (image.Image, error) {
	ctrl := s.Controller(session.Key)
	img, err := ctrl.Capture()
	s.reflect(session, ctrl, err)
	return img, err
}

// Frame отдаёт кадр для живого превью.
func (s *CameraService) Frame(session *entity.Session) (image.Image, error) {
	ctrl, ok := s.lookup(session.Key)
	if !ok {
		return nil, ErrCameraClosed
	}
	return ctrl.Frame()
}

// Close закрывает камеру сессии; повторный вызов безопасен.
func (s *CameraService) Close(session *entity.Session) {
	if ctrl, ok := s.lookup(session.Key); ok {
		ctrl.Close()
	}
	s.reflect(session, nil, nil)
}

// Release закрывает камеру и забывает контроллер сессии.
func (s *CameraService) Release(key string) {
	s.mu.Lock()
	ctrl, ok := s.controllers[key]
	delete(s.controllers, key)
	s.mu.Unlock()

	if ok {
		ctrl.Close()
	}
}

func (s *CameraService) reflect(session *entity.Session, ctrl *CameraController, err error) {
	session.Lock()
	defer session.Unlock()

	open := ctrl != nil && ctrl.State() == entity.CameraOpen
	session.View.CameraOpen = open
	if open {
		session.View.Facing = ctrl.Facing()
		session.SetState(entity.StateCamera)
	} else {
		session.View.Facing = ""
		if session.State == entity.StateCamera {
			session.SetState(entity.StateIdle)
		}
	}

	if err != nil {
		session.View.SetNotice(entity.NoticeDevice, cameraNotice(i18n.For(session.Language), err))
		s.logger.Warn("camera operation failed", zap.String("session", session.Key), zap.Error(err))
	} else if session.View.NoticeKind == entity.NoticeDevice {
		session.View.ClearNotice()
	}
}

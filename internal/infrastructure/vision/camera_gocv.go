//go:build gocv
// +build gocv

package vision

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"

	"gocv.io/x/gocv"

	"mushroom-doctor/internal/domain/entity"
	"mushroom-doctor/internal/domain/port"
)

// GoCVDevices открывает локальные камеры через OpenCV VideoCapture.
type GoCVDevices struct {
	FrontID int
	RearID  int
}

// NewGoCVDevices создаёт источник камер с индексами фронтальной и тыловой.
func NewGoCVDevices(frontID, rearID int) *GoCVDevices {
	return &GoCVDevices{FrontID: frontID, RearID: rearID}
}

// Supported всегда true: сборка с OpenCV.
func (d *GoCVDevices) Supported() bool {
	return true
}

type deviceCandidate struct {
	id     int
	facing entity.Facing
}

// Open открывает камеру нужного направления, без направления — первую доступную.
func (d *GoCVDevices) Open(ctx context.Context, c port.StreamConstraints) (port.Stream, error) {
	candidates := []deviceCandidate{
		{id: d.RearID, facing: entity.FacingEnvironment},
		{id: d.FrontID, facing: entity.FacingUser},
	}
	switch c.Facing {
	case entity.FacingEnvironment:
		candidates = candidates[:1]
	case entity.FacingUser:
		candidates = candidates[1:]
	}

	var lastErr error
	for _, cand := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		capture, err := gocv.OpenVideoCapture(cand.id)
		if err != nil {
			lastErr = fmt.Errorf("open device %d: %w", cand.id, err)
			continue
		}
		if !capture.IsOpened() {
			capture.Close()
			lastErr = fmt.Errorf("device %d is not opened", cand.id)
			continue
		}

		return newGoCVStream(capture, cand.facing), nil
	}

	if lastErr == nil {
		lastErr = errors.New("no camera devices configured")
	}
	return nil, lastErr
}

// goCVStream — один открытый VideoCapture и буфер кадра.
type goCVStream struct {
	mu      sync.Mutex
	capture *gocv.VideoCapture
	frame   gocv.Mat
	facing  entity.Facing
	stopped bool
}

func newGoCVStream(capture *gocv.VideoCapture, facing entity.Facing) *goCVStream {
	return &goCVStream{
		capture: capture,
		frame:   gocv.NewMat(),
		facing:  facing,
	}
}

func (s *goCVStream) Facing() entity.Facing {
	return s.facing
}

// Frame читает следующий кадр. Пустой кадр означает, что камера ещё не готова.
func (s *goCVStream) Frame() (image.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return nil, errors.New("stream is stopped")
	}
	if ok := s.capture.Read(&s.frame); !ok || s.frame.Empty() {
		return nil, nil
	}

	return s.frame.ToImage()
}

// Stop освобождает устройство; повторный вызов ничего не делает.
func (s *goCVStream) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}
	s.stopped = true
	s.capture.Close()
	s.frame.Close()
}

func (s *goCVStream) ActiveTracks() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return 0
	}
	return 1
}

var _ port.MediaDevices = (*GoCVDevices)(nil)

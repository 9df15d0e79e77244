//go:build !gocv
// +build !gocv

package vision

import (
	"context"

	"mushroom-doctor/internal/domain/port"
)

// GoCVDevices — заглушка без OpenCV: захват видео не поддерживается.
type GoCVDevices struct {
	FrontID int
	RearID  int
}

// NewGoCVDevices создаёт заглушку (без OpenCV).
func NewGoCVDevices(frontID, rearID int) *GoCVDevices {
	return &GoCVDevices{FrontID: frontID, RearID: rearID}
}

// Supported возвращает false, если сборка без тега gocv.
func (d *GoCVDevices) Supported() bool {
	return false
}

// Open возвращает ошибку, если сборка без тега gocv.
func (d *GoCVDevices) Open(ctx context.Context, c port.StreamConstraints) (port.Stream, error) {
	_ = ctx
	_ = c
	return nil, port.ErrNoCaptureSupport
}

var _ port.MediaDevices = (*GoCVDevices)(nil)

package app

import (
	"errors"

	"mushroom-doctor/internal/i18n"
)

// cameraNotice переводит ошибку камеры в сообщение пользователю.
func cameraNotice(t *i18n.Table, err error) string {
	switch {
	case errors.Is(err, ErrCameraUnsupported):
		return t.CameraUnsupported
	case errors.Is(err, ErrCameraSwitchFailed):
		return t.CameraSwitchFailed
	case errors.Is(err, ErrCameraNotReady):
		return t.CameraNotReady
	case errors.Is(err, ErrCameraClosed):
		return t.CameraClosed
	default:
		return t.CameraNotAccessible
	}
}

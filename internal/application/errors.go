package app

import "errors"

var (
	// ErrNoPayload — изображение не выбрано, запрос к модели не выполняется.
	ErrNoPayload = errors.New("no image selected")
	// ErrEmptyImage — выбран пустой файл или кадр.
	ErrEmptyImage = errors.New("image is empty")
	// ErrImageTooLarge — файл больше MaxImageSize.
	ErrImageTooLarge = errors.New("image exceeds size limit")
	// ErrInProgress — предыдущий запрос ещё не завершён.
	ErrInProgress = errors.New("prediction already in progress")
	// ErrUnknownLanguage — код языка не поддерживается.
	ErrUnknownLanguage = errors.New("unknown language")

	ErrCameraUnsupported   = errors.New("camera is not supported")
	ErrCameraNotAccessible = errors.New("camera not accessible")
	ErrCameraNotReady      = errors.New("camera not ready")
	ErrCameraClosed        = errors.New("camera is not open")
	ErrCameraSwitchFailed  = errors.New("camera switch failed")
)

package container

import (
	"go.uber.org/zap"

	app "mushroom-doctor/internal/application"
	"mushroom-doctor/internal/domain/port"
)

type Container struct {
	SessionService   *app.SessionService
	LanguageService  *app.LanguageService
	CameraService    *app.CameraService
	CaptureService   *app.CaptureService
	DiagnosisService *app.DiagnosisService
}

// Deps — внешние адаптеры, из которых собираются сервисы. Describer может быть nil.
type Deps struct {
	Sessions  port.SessionRepository
	Prefs     port.PreferenceStore
	Devices   port.MediaDevices
	Inference port.InferenceClient
	Renderer  port.OverlayRenderer
	Describer port.InsightDescriber
	Threshold float64
	Logger    *zap.Logger
}

func New(d Deps) *Container {
	languageService := app.NewLanguageService(d.Prefs, d.Logger)
	cameraService := app.NewCameraService(d.Devices, d.Logger)
	sessionService := app.NewSessionService(d.Sessions, languageService, cameraService, d.Logger)
	captureService := app.NewCaptureService(cameraService, d.Logger)
	diagnosisService := app.NewDiagnosisService(d.Inference, d.Renderer, d.Describer, d.Threshold, d.Logger)

	return &Container{
		SessionService:   sessionService,
		LanguageService:  languageService,
		CameraService:    cameraService,
		CaptureService:   captureService,
		DiagnosisService: diagnosisService,
	}
}

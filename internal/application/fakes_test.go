package app

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mushroom-doctor/internal/domain/entity"
	"mushroom-doctor/internal/domain/port"
	"mushroom-doctor/internal/infrastructure/storage"
	"mushroom-doctor/internal/infrastructure/vision"
)

type fakeStream struct {
	mu     sync.Mutex
	facing entity.Facing
	frame  image.Image
	stops  int
}

func (s *fakeStream) Facing() entity.Facing { return s.facing }

func (s *fakeStream) Frame() (image.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame, nil
}

func (s *fakeStream) Stop() {
	s.mu.Lock()
	s.stops++
	s.mu.Unlock()
}

func (s *fakeStream) ActiveTracks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stops > 0 {
		return 0
	}
	return 1
}

func (s *fakeStream) Stops() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stops
}

// fakeDevices имитирует платформу: набор доступных направлений и кадр.
type fakeDevices struct {
	mu        sync.Mutex
	supported bool
	available map[entity.Facing]bool
	frame     image.Image
	calls     []port.StreamConstraints
	opened    []*fakeStream
}

func newFakeDevices(facings ...entity.Facing) *fakeDevices {
	d := &fakeDevices{
		supported: true,
		available: make(map[entity.Facing]bool),
		frame:     solidImage(64, 48),
	}
	for _, f := range facings {
		d.available[f] = true
	}
	return d
}

func (d *fakeDevices) Supported() bool { return d.supported }

func (d *fakeDevices) Open(ctx context.Context, c port.StreamConstraints) (port.Stream, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.calls = append(d.calls, c)
	if !d.supported {
		return nil, port.ErrNoCaptureSupport
	}

	facing := c.Facing
	if facing != "" {
		if !d.available[facing] {
			return nil, errors.New("overconstrained")
		}
	} else {
		switch {
		case d.available[entity.FacingEnvironment]:
			facing = entity.FacingEnvironment
		case d.available[entity.FacingUser]:
			facing = entity.FacingUser
		default:
			return nil, errors.New("permission denied")
		}
	}

	s := &fakeStream{facing: facing, frame: d.frame}
	d.opened = append(d.opened, s)
	return s, nil
}

func (d *fakeDevices) last() *fakeStream {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.opened[len(d.opened)-1]
}

type fakeInference struct {
	mu      sync.Mutex
	calls   int
	result  *entity.InferenceResult
	err     error
	started chan struct{}
	release chan struct{}
}

func (f *fakeInference) Submit(ctx context.Context, payload *entity.Payload) (*entity.InferenceResult, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	return f.result, f.err
}

func (f *fakeInference) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeDescriber struct {
	err error
}

func (f *fakeDescriber) Describe(ctx context.Context, lang entity.Language, class string, confidence float64) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return string(lang) + ":" + class, nil
}

func solidImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.RGBA{R: 120, G: 90, B: 60, A: 255}}, image.Point{}, draw.Src)
	return img
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, solidImage(w, h)))
	return buf.Bytes()
}

// testEnv собирает сервисы на фейках и in-memory хранилищах.
type testEnv struct {
	prefs     *storage.MemoryPreferenceStore
	devices   *fakeDevices
	inference *fakeInference
	sessions  *SessionService
	language  *LanguageService
	cameras   *CameraService
	capture   *CaptureService
	diagnosis *DiagnosisService
}

func newTestEnv(describer port.InsightDescriber) *testEnv {
	logger := zap.NewNop()
	env := &testEnv{
		prefs:     storage.NewMemoryPreferenceStore(),
		devices:   newFakeDevices(entity.FacingUser, entity.FacingEnvironment),
		inference: &fakeInference{},
	}
	env.language = NewLanguageService(env.prefs, logger)
	env.cameras = NewCameraService(env.devices, logger)
	env.sessions = NewSessionService(storage.NewMemorySessionRepository(), env.language, env.cameras, logger)
	env.capture = NewCaptureService(env.cameras, logger)
	env.diagnosis = NewDiagnosisService(env.inference, vision.NewOverlayRenderer(200, 150), describer, DefaultConfidenceThreshold, logger)
	return env
}

func (e *testEnv) session(t *testing.T, key string) *entity.Session {
	t.Helper()
	s, err := e.sessions.Get(context.Background(), key)
	require.NoError(t, err)
	return s
}

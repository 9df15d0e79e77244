package telegram

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	app "mushroom-doctor/internal/application"
	"mushroom-doctor/internal/container"
	"mushroom-doctor/internal/domain/entity"
	"mushroom-doctor/internal/domain/port"
	"mushroom-doctor/internal/i18n"
	"mushroom-doctor/internal/infrastructure/storage"
	"mushroom-doctor/internal/infrastructure/vision"
)

type fakeAPI struct {
	mu      sync.Mutex
	sent    []tgbotapi.Chattable
	answers int
	fileURL string
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, nil
}

func (f *fakeAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.answers++
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeAPI) GetFileDirectURL(fileID string) (string, error) {
	return f.fileURL + "/" + fileID, nil
}

func (f *fakeAPI) texts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, c := range f.sent {
		switch m := c.(type) {
		case tgbotapi.MessageConfig:
			out = append(out, m.Text)
		case tgbotapi.PhotoConfig:
			out = append(out, "[photo] "+m.Caption)
		}
	}
	return out
}

func (f *fakeAPI) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = nil
}

type noCamera struct{}

func (noCamera) Supported() bool { return false }

func (noCamera) Open(ctx context.Context, c port.StreamConstraints) (port.Stream, error) {
	return nil, port.ErrNoCaptureSupport
}

type stubInference struct {
	calls  int
	result *entity.InferenceResult
}

func (s *stubInference) Submit(ctx context.Context, payload *entity.Payload) (*entity.InferenceResult, error) {
	s.calls++
	return s.result, nil
}

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

type harness struct {
	api       *fakeAPI
	bot       *Bot
	inference *stubInference
	prefs     *storage.MemoryPreferenceStore
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	img := testPNG(t, 400, 300)
	files := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(img)
	}))
	t.Cleanup(files.Close)

	h := &harness{
		api:       &fakeAPI{fileURL: files.URL},
		inference: &stubInference{},
		prefs:     storage.NewMemoryPreferenceStore(),
	}
	c := container.New(container.Deps{
		Sessions:  storage.NewMemorySessionRepository(),
		Prefs:     h.prefs,
		Devices:   noCamera{},
		Inference: h.inference,
		Renderer:  vision.NewOverlayRenderer(200, 150),
		Threshold: app.DefaultConfidenceThreshold,
		Logger:    zap.NewNop(),
	})
	h.bot = newBot(h.api, c, zap.NewNop())
	return h
}

func command(chatID int64, text string) *tgbotapi.Message {
	name, _, _ := strings.Cut(text, " ")
	return &tgbotapi.Message{
		Chat:     &tgbotapi.Chat{ID: chatID},
		Text:     text,
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(name)}},
	}
}

func callback(chatID int64, data string) *tgbotapi.CallbackQuery {
	return &tgbotapi.CallbackQuery{
		ID:      "cb",
		Data:    data,
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: chatID}},
	}
}

func TestBot_Start(t *testing.T) {
	h := newHarness(t)
	h.bot.handleMessage(context.Background(), command(1, "/start"))

	require.Len(t, h.api.sent, 1)
	msg, ok := h.api.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	require.Contains(t, msg.Text, i18n.For(entity.LanguageEnglish).DisclaimerContent)
	require.NotNil(t, msg.ReplyMarkup)
}

func TestBot_PredictWithoutImage(t *testing.T) {
	h := newHarness(t)
	h.bot.handleMessage(context.Background(), command(1, "/predict"))

	require.Equal(t, []string{"📸 " + i18n.For(entity.LanguageEnglish).NoImage}, h.api.texts())
	require.Zero(t, h.inference.calls)
}

func TestBot_PhotoThenPredict(t *testing.T) {
	h := newHarness(t)
	h.inference.result = &entity.InferenceResult{
		HasDetections: true,
		Detections:    []entity.Detection{{Class: "Wilt", Confidence: 0.92, Box: entity.Box{10, 10, 50, 50}}},
	}
	ctx := context.Background()

	h.bot.handleMessage(ctx, &tgbotapi.Message{
		Chat:  &tgbotapi.Chat{ID: 7},
		Photo: []tgbotapi.PhotoSize{{FileID: "small"}, {FileID: "large"}},
	})
	texts := h.api.texts()
	require.Len(t, texts, 1)
	require.Contains(t, texts[0], i18n.For(entity.LanguageEnglish).ImageSelected)

	h.api.reset()
	h.bot.handleCallback(ctx, callback(7, "predict"))

	texts = h.api.texts()
	require.Len(t, texts, 3)
	require.Contains(t, texts[0], i18n.For(entity.LanguageEnglish).Loading)
	require.Equal(t, "[photo] Results:", texts[1])
	require.Contains(t, texts[2], "Wilt: 92.00%")
	require.Equal(t, 1, h.inference.calls)
	require.Equal(t, 1, h.api.answers)
}

func TestBot_LanguageCallback(t *testing.T) {
	h := newHarness(t)
	h.bot.handleCallback(context.Background(), callback(3, "lang:fil"))

	texts := h.api.texts()
	require.Len(t, texts, 1)
	require.Contains(t, texts[0], "Filipino")

	v, ok, err := h.prefs.Get(context.Background(), sessionKey(3), entity.PreferenceKeyLanguage)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "fil", v)
}

func TestBot_LanguageCommandRejectsUnknown(t *testing.T) {
	h := newHarness(t)
	h.bot.handleMessage(context.Background(), command(3, "/lang xx"))

	msg, ok := h.api.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	require.NotNil(t, msg.ReplyMarkup)

	_, found, err := h.prefs.Get(context.Background(), sessionKey(3), entity.PreferenceKeyLanguage)
	require.NoError(t, err)
	require.False(t, found)
}

func TestBot_CameraUnsupported(t *testing.T) {
	h := newHarness(t)
	h.bot.handleMessage(context.Background(), command(5, "/camera rear"))

	require.Equal(t, []string{"📷 " + i18n.For(entity.LanguageEnglish).CameraUnsupported}, h.api.texts())
}

func TestBot_TextWithoutImage(t *testing.T) {
	h := newHarness(t)
	h.bot.handleMessage(context.Background(), &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 1}, Text: "hello"})

	require.Equal(t, []string{"📸 " + i18n.For(entity.LanguageEnglish).NoImage}, h.api.texts())
}

package telegram

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"io"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	app "mushroom-doctor/internal/application"
	"mushroom-doctor/internal/container"
	"mushroom-doctor/internal/domain/entity"
	"mushroom-doctor/internal/i18n"
)

// botAPI: методы *tgbotapi.BotAPI, нужные обработчикам.
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetFileDirectURL(fileID string) (string, error)
}

// Bot представляет Telegram-бота
type Bot struct {
	client *tgbotapi.BotAPI
	api    botAPI
	c      *container.Container
	http   *http.Client
	logger *zap.Logger
}

// NewBot создаёт нового бота
func NewBot(token string, c *container.Container, logger *zap.Logger) (*Bot, error) {
	client, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}

	logger.Info("authorized on account", zap.String("username", client.Self.UserName))

	b := newBot(client, c, logger)
	b.client = client
	return b, nil
}

func newBot(api botAPI, c *container.Container, logger *zap.Logger) *Bot {
	return &Bot{
		api:    api,
		c:      c,
		http:   &http.Client{},
		logger: logger.Named("telegram"),
	}
}

// Run запускает основной цикл обработки сообщений до отмены контекста.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.client.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.client.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			// долгий запрос к модели не должен задерживать другие чаты
			go b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	}
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	session, err := b.c.SessionService.Get(ctx, sessionKey(msg.Chat.ID))
	if err != nil {
		b.logger.Error("get session", zap.Int64("chat", msg.Chat.ID), zap.Error(err))
		return
	}

	// Обработка команд
	if msg.IsCommand() {
		b.handleCommand(ctx, msg, session)
		return
	}

	// Обработка фото
	if len(msg.Photo) > 0 {
		photo := msg.Photo[len(msg.Photo)-1]
		b.handleImage(ctx, msg.Chat.ID, session, photo.FileID, "photo.jpg", "image/jpeg")
		return
	}

	if doc := msg.Document; doc != nil && strings.HasPrefix(doc.MimeType, "image/") {
		b.handleImage(ctx, msg.Chat.ID, session, doc.FileID, doc.FileName, doc.MimeType)
		return
	}

	b.sendMessage(msg.Chat.ID, "📸 "+b.table(session).NoImage)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message, session *entity.Session) {
	chatID := msg.Chat.ID
	t := b.table(session)

	switch msg.Command() {
	case "start":
		view := b.c.SessionService.View(session)
		reply := tgbotapi.NewMessage(chatID, disclaimerText(view, t.Help))
		reply.ReplyMarkup = languageKeyboard(view.Language)
		b.send(reply)

	case "help":
		b.sendMessage(chatID, t.Help)

	case "lang":
		if code := strings.TrimSpace(msg.CommandArguments()); code != "" {
			b.switchLanguage(ctx, chatID, session, code)
			return
		}
		reply := tgbotapi.NewMessage(chatID, "🌐 "+t.LanguageTitle)
		reply.ReplyMarkup = languageKeyboard(b.language(session))
		b.send(reply)

	case "camera":
		b.openCamera(ctx, chatID, session, msg.CommandArguments())

	case "switch":
		b.cameraAction(ctx, chatID, session, cameraSwitch)

	case "capture":
		b.cameraAction(ctx, chatID, session, cameraCapture)

	case "close":
		b.cameraAction(ctx, chatID, session, cameraClose)

	case "predict":
		b.predict(ctx, chatID, session)

	case "cancel":
		b.c.SessionService.Cancel(ctx, session)
		b.sendMessage(chatID, "❌ "+t.ChooseImage)

	default:
		b.sendMessage(chatID, "❓ "+t.Help)
	}
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		b.logger.Warn("answer callback", zap.Error(err))
	}
	if cb.Message == nil {
		return
	}

	chatID := cb.Message.Chat.ID
	session, err := b.c.SessionService.Get(ctx, sessionKey(chatID))
	if err != nil {
		b.logger.Error("get session", zap.Int64("chat", chatID), zap.Error(err))
		return
	}

	action, arg := parseCallback(cb.Data)
	switch action {
	case callbackLang:
		b.switchLanguage(ctx, chatID, session, arg)
	case callbackPredict:
		b.predict(ctx, chatID, session)
	case callbackCamera:
		b.cameraAction(ctx, chatID, session, arg)
	default:
		b.logger.Debug("unknown callback", zap.String("data", cb.Data))
	}
}

func (b *Bot) switchLanguage(ctx context.Context, chatID int64, session *entity.Session, code string) {
	if err := b.c.LanguageService.Switch(ctx, session, code); err != nil {
		reply := tgbotapi.NewMessage(chatID, "❓ "+b.table(session).LanguageTitle)
		reply.ReplyMarkup = languageKeyboard(b.language(session))
		b.send(reply)
		return
	}

	view := b.c.SessionService.View(session)
	b.sendMessage(chatID, fmt.Sprintf("🌐 %s: %s", view.Labels[entity.LabelLanguage], languageNames[view.Language]))
}

// parseCameraArg принимает "front"/"rear" и значения facingMode.
func parseCameraArg(arg string) (entity.Facing, bool) {
	switch strings.ToLower(strings.TrimSpace(arg)) {
	case "front", "selfie":
		return entity.FacingUser, true
	case "rear", "back":
		return entity.FacingEnvironment, true
	}
	return entity.ParseFacing(strings.TrimSpace(arg))
}

func (b *Bot) openCamera(ctx context.Context, chatID int64, session *entity.Session, arg string) {
	facing, ok := parseCameraArg(arg)
	if !ok {
		facing = entity.FacingEnvironment
	}

	if err := b.c.CameraService.Open(ctx, session, facing); err != nil {
		b.sendNotice(chatID, session)
		return
	}
	b.sendPreview(chatID, session)
}

func (b *Bot) cameraAction(ctx context.Context, chatID int64, session *entity.Session, action string) {
	switch action {
	case cameraSwitch:
		if err := b.c.CameraService.Switch(ctx, session); err != nil {
			b.sendNotice(chatID, session)
			return
		}
		b.sendPreview(chatID, session)

	case cameraCapture:
		if err := b.c.CaptureService.CaptureFromCamera(ctx, session); err != nil {
			b.sendNotice(chatID, session)
			return
		}
		payload, err := b.c.CaptureService.Payload(session)
		if err != nil {
			b.sendNotice(chatID, session)
			return
		}
		view := b.c.SessionService.View(session)
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: payload.Name, Bytes: payload.Data})
		photo.Caption = noticeText(view)
		photo.ReplyMarkup = predictKeyboard(view)
		b.send(photo)

	case cameraClose:
		b.c.CameraService.Close(session)
		b.sendMessage(chatID, "📷 "+b.c.SessionService.View(session).Labels[entity.LabelCloseCamera]+" ✓")
	}
}

// sendPreview отправляет текущий кадр камеры с кнопками управления.
func (b *Bot) sendPreview(chatID int64, session *entity.Session) {
	view := b.c.SessionService.View(session)

	frame, err := b.c.CameraService.Frame(session)
	if err != nil {
		reply := tgbotapi.NewMessage(chatID, "📷 "+i18n.For(view.Language).CameraNotReady)
		reply.ReplyMarkup = cameraKeyboard(view)
		b.send(reply)
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, frame); err != nil {
		b.logger.Warn("encode preview", zap.Error(err))
		return
	}

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "preview.png", Bytes: buf.Bytes()})
	photo.Caption = "📷 " + string(view.Facing)
	photo.ReplyMarkup = cameraKeyboard(view)
	b.send(photo)
}

// handleImage скачивает присланное изображение и делает его текущим.
func (b *Bot) handleImage(ctx context.Context, chatID int64, session *entity.Session, fileID, name, mimeType string) {
	data, err := b.downloadFile(ctx, fileID)
	if err != nil {
		b.logger.Error("download image", zap.Int64("chat", chatID), zap.Error(err))
		b.sendMessage(chatID, "⚠️ "+b.table(session).Failure)
		return
	}

	if err := b.c.CaptureService.SelectFile(ctx, session, name, mimeType, data); err != nil {
		b.sendNotice(chatID, session)
		return
	}

	view := b.c.SessionService.View(session)
	reply := tgbotapi.NewMessage(chatID, noticeText(view))
	reply.ReplyMarkup = predictKeyboard(view)
	b.send(reply)
}

// predict запускает распознавание и отправляет результат.
func (b *Bot) predict(ctx context.Context, chatID int64, session *entity.Session) {
	if _, err := b.c.CaptureService.Payload(session); err == nil {
		b.sendMessage(chatID, "⏳ "+b.table(session).Loading)
	}

	if err := b.c.DiagnosisService.Predict(ctx, session); err != nil {
		b.logger.Debug("predict", zap.Int64("chat", chatID), zap.Error(err))
		b.sendNotice(chatID, session)
		return
	}

	view := b.c.SessionService.View(session)
	session.Lock()
	overlay := session.Overlay
	session.Unlock()

	if overlay != nil {
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "overlay.png", Bytes: overlay.Image})
		photo.Caption = view.ResultsTitle
		b.send(photo)
	}

	if text := resultsText(view, i18n.For(view.Language).Insight); text != "" {
		b.sendMessage(chatID, text)
		return
	}
	b.sendNotice(chatID, session)
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	fileURL, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := b.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, app.MaxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// sendNotice отправляет текущее сообщение представления, если оно есть.
func (b *Bot) sendNotice(chatID int64, session *entity.Session) {
	if text := noticeText(b.c.SessionService.View(session)); text != "" {
		b.sendMessage(chatID, text)
	}
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		b.logger.Warn("send message", zap.Error(err))
	}
}

func (b *Bot) language(session *entity.Session) entity.Language {
	return b.c.SessionService.View(session).Language
}

func (b *Bot) table(session *entity.Session) *i18n.Table {
	return i18n.For(b.language(session))
}

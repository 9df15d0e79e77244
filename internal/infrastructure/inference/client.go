package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"go.uber.org/zap"

	"mushroom-doctor/internal/domain/entity"
	"mushroom-doctor/internal/domain/port"
)

const (
	formField     = "file"
	maxErrorBody  = 512
	maxResponseSz = 8 << 20
)

// Client отправляет изображение во внешний сервис классификации.
// Ни повторов, ни собственного таймаута: запрос либо завершается целиком, либо ошибкой.
type Client struct {
	url    string
	http   *http.Client
	logger *zap.Logger
}

func NewClient(url string, logger *zap.Logger) *Client {
	return &Client{
		url:    url,
		http:   &http.Client{},
		logger: logger.Named("inference"),
	}
}

// WithHTTPClient подменяет транспорт (тесты, прокси).
func (c *Client) WithHTTPClient(h *http.Client) *Client {
	c.http = h
	return c
}

// Submit выполняет multipart POST с единственным полем file.
func (c *Client) Submit(ctx context.Context, payload *entity.Payload) (*entity.InferenceResult, error) {
	if payload.Empty() {
		return nil, fmt.Errorf("submit: empty payload")
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreatePart(filePartHeader(payload))
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(payload.Data); err != nil {
		return nil, fmt.Errorf("copy image data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSz))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	result, err := Decode(raw)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("inference response",
		zap.Int("predictions", len(result.Predictions)),
		zap.Int("detections", len(result.Detections)),
		zap.Int("payload_bytes", len(payload.Data)),
	)

	return result, nil
}

// Ping проверяет соседний эндпоинт /ping сервиса модели.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pingURL(c.url), nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Code: resp.StatusCode}
	}
	return nil
}

func pingURL(predictURL string) string {
	base := strings.TrimSuffix(strings.TrimRight(predictURL, "/"), "/predict")
	return base + "/ping"
}

func filePartHeader(p *entity.Payload) textproto.MIMEHeader {
	name := p.Name
	if name == "" {
		name = "image"
	}
	mime := p.MIMEType
	if mime == "" {
		mime = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, formField, escapeQuotes(name)))
	h.Set("Content-Type", mime)
	return h
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

// Decode разбирает и проверяет JSON ответа сервиса.
func Decode(raw []byte) (*entity.InferenceResult, error) {
	var dto responseDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return nil, &ParseError{Reason: "invalid json", Err: err}
	}
	return dto.validate()
}

var _ port.InferenceClient = (*Client)(nil)

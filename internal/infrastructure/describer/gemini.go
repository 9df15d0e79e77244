package describer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"mushroom-doctor/internal/domain/entity"
	"mushroom-doctor/internal/domain/port"
)

// GeminiDescriber пишет короткий анализ результата для грибовода.
// Клиент создаётся один раз и закрывается через Close.
type GeminiDescriber struct {
	Model string

	client *genai.Client
}

func NewGeminiDescriber(ctx context.Context, apiKey, model string) (*GeminiDescriber, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY is empty")
	}

	cl, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}

	return &GeminiDescriber{
		Model:  strings.TrimSpace(model),
		client: cl,
	}, nil
}

// Close освобождает соединение с Gemini.
func (g *GeminiDescriber) Close() error {
	return g.client.Close()
}

var languageNames = map[entity.Language]string{
	entity.LanguageEnglish:  "English",
	entity.LanguageFilipino: "Filipino (Tagalog)",
	entity.LanguageIlocano:  "Ilocano",
}

// Prompt собирает запрос к модели.
func Prompt(lang entity.Language, class string, confidence float64) string {
	name, ok := languageNames[lang]
	if !ok {
		name = languageNames[entity.DefaultLanguage]
	}

	return fmt.Sprintf(`You are an expert agricultural scientist.
Given the following prediction for an oyster mushroom photo:
Disease: %s
Confidence: %s

Write a short, 3-5 sentence analysis explaining the meaning of the result and suggest actions for the mushroom grower.
Keep it simple, clear, and reassuring. Answer in %s. Plain text only.`,
		class, entity.FormatConfidence(confidence), name)
}

// Describe вызывает Gemini один раз, без повторов.
func (g *GeminiDescriber) Describe(ctx context.Context, lang entity.Language, class string, confidence float64) (string, error) {
	m := g.client.GenerativeModel(g.Model)
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:     ptrFloat32(0.4),
		MaxOutputTokens: ptrInt32(300),
	}

	resp, err := m.GenerateContent(ctx, genai.Text(Prompt(lang, class, confidence)))
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	txt := strings.TrimSpace(firstText(resp))
	if txt == "" {
		return "", errors.New("gemini: empty response")
	}
	return txt, nil
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}

func ptrFloat32(v float32) *float32 { return &v }
func ptrInt32(v int32) *int32       { return &v }

var _ port.InsightDescriber = (*GeminiDescriber)(nil)

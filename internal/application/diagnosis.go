package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"mushroom-doctor/internal/domain/entity"
	"mushroom-doctor/internal/domain/port"
	"mushroom-doctor/internal/i18n"
)

// DefaultConfidenceThreshold — детекции ниже порога не показываются.
const DefaultConfidenceThreshold = 0.4

type DiagnosisService struct {
	client    port.InferenceClient
	renderer  port.OverlayRenderer
	describer port.InsightDescriber
	threshold float64
	logger    *zap.Logger
}

// NewDiagnosisService создаёт сервис, который отправляет изображение в модель и собирает результат.
// describer может быть nil.
func NewDiagnosisService(client port.InferenceClient, renderer port.OverlayRenderer, describer port.InsightDescriber, threshold float64, logger *zap.Logger) *DiagnosisService {
	return &DiagnosisService{
		client:    client,
		renderer:  renderer,
		describer: describer,
		threshold: threshold,
		logger:    logger.Named("diagnosis"),
	}
}

// outcome собирается вне блокировки сессии и применяется целиком.
type outcome struct {
	cards   []entity.ResultCard
	overlay *entity.Overlay
}

// Predict отправляет текущее изображение и рисует результат.
// Одновременно в сессии выполняется не более одного запроса.
func (s *DiagnosisService) Predict(ctx context.Context, session *entity.Session) error {
	session.Lock()
	t := i18n.For(session.Language)
	lang := session.Language

	if session.View.Loading {
		session.View.SetNotice(entity.NoticeInfo, t.InProgress)
		session.Unlock()
		return ErrInProgress
	}

	payload := session.Payload
	if payload.Empty() {
		session.View.SetNotice(entity.NoticePrompt, t.NoImage)
		session.Unlock()
		return ErrNoPayload
	}

	session.View.Loading = true
	session.View.PredictEnabled = false
	session.View.ClearNotice()
	session.SetState(entity.StateProcessing)
	session.Unlock()

	defer func() {
		session.Lock()
		session.View.Loading = false
		session.View.PredictEnabled = true
		if session.State == entity.StateProcessing {
			session.SetState(entity.StateIdle)
		}
		session.Unlock()
	}()

	result, err := s.client.Submit(ctx, payload)
	if err != nil {
		s.logger.Error("prediction failed", zap.String("session", session.Key), zap.Error(err))

		session.Lock()
		if session.Payload == payload {
			session.ClearResults()
			session.View.ResultsVisible = true
			session.View.SetNotice(entity.NoticeError, t.Failure)
		}
		session.Unlock()
		return fmt.Errorf("submit: %w", err)
	}

	out := s.build(ctx, lang, payload, result)

	session.Lock()
	defer session.Unlock()

	// Пока шёл запрос, пользователь выбрал другое изображение.
	if session.Payload != payload {
		return nil
	}

	session.ClearResults()
	session.View.Cards = out.cards
	session.View.ResultsVisible = len(out.cards) > 0
	session.Overlay = out.overlay
	session.View.HasOverlay = out.overlay != nil
	if len(out.cards) == 0 {
		session.View.SetNotice(entity.NoticeInfo, t.NoDetections)
	}

	return nil
}

func (s *DiagnosisService) build(ctx context.Context, lang entity.Language, payload *entity.Payload, result *entity.InferenceResult) outcome {
	t := i18n.For(lang)
	var out outcome

	if result.HasDetections {
		detections := entity.FilterDetections(result.Detections, s.threshold)
		if len(detections) == 0 {
			return out
		}

		for _, g := range entity.GroupByClass(detections) {
			card := newCard(t, g.Class, g.Confidence)
			card.Count = g.Count
			out.cards = append(out.cards, card)
		}

		if s.renderer != nil {
			overlay, err := s.renderer.Render(payload.Data, detections)
			if err != nil {
				s.logger.Warn("overlay skipped", zap.Error(err))
			} else {
				out.overlay = overlay
			}
		}
	} else {
		for _, p := range result.Predictions {
			out.cards = append(out.cards, newCard(t, p.Class, p.Confidence))
		}
	}

	s.describe(ctx, lang, out.cards)
	return out
}

func newCard(t *i18n.Table, class string, confidence float64) entity.ResultCard {
	return entity.ResultCard{
		Class:          class,
		Confidence:     confidence,
		ConfidenceText: entity.FormatConfidence(confidence),
		Severity:       entity.SeverityFor(confidence),
		Text:           t.Assessment(class, confidence),
	}
}

// describe дополняет карточки анализом от LLM; ошибки не мешают результату.
func (s *DiagnosisService) describe(ctx context.Context, lang entity.Language, cards []entity.ResultCard) {
	if s.describer == nil {
		return
	}
	for i := range cards {
		text, err := s.describer.Describe(ctx, lang, cards[i].Class, cards[i].Confidence)
		if err != nil {
			s.logger.Warn("insight skipped", zap.String("class", cards[i].Class), zap.Error(err))
			continue
		}
		cards[i].Insight = text
	}
}

package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"mushroom-doctor/internal/domain/entity"
	"mushroom-doctor/internal/domain/port"
	"mushroom-doctor/internal/i18n"
)

// LanguageService применяет язык к представлению и хранит выбор.
type LanguageService struct {
	prefs  port.PreferenceStore
	logger *zap.Logger
}

func NewLanguageService(prefs port.PreferenceStore, logger *zap.Logger) *LanguageService {
	return &LanguageService{prefs: prefs, logger: logger.Named("language")}
}

// Load читает сохранённый язык; нет значения или оно неизвестно — английский.
func (s *LanguageService) Load(ctx context.Context, scope string) entity.Language {
	v, ok, err := s.prefs.Get(ctx, scope, entity.PreferenceKeyLanguage)
	if err != nil {
		s.logger.Warn("read language preference", zap.String("scope", scope), zap.Error(err))
		return entity.DefaultLanguage
	}
	if !ok {
		return entity.DefaultLanguage
	}

	lang, ok := entity.ParseLanguage(v)
	if !ok {
		return entity.DefaultLanguage
	}
	return lang
}

// Apply перерисовывает статические надписи и заголовок результатов.
// Уже показанные карточки не трогаются. Вызывать под блокировкой сессии.
func (s *LanguageService) Apply(session *entity.Session) {
	t := i18n.For(session.Language)
	session.View.Language = session.Language
	session.View.Labels = t.Labels()
	session.View.ResultsTitle = t.Results
}

// Switch меняет язык сессии и сохраняет выбор под ключом lang.
func (s *LanguageService) Switch(ctx context.Context, session *entity.Session, code string) error {
	lang, ok := entity.ParseLanguage(code)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLanguage, code)
	}

	if err := s.prefs.Set(ctx, session.Key, entity.PreferenceKeyLanguage, string(lang)); err != nil {
		// Язык всё равно переключаем: хранилище влияет только на следующую загрузку.
		s.logger.Warn("persist language preference", zap.String("scope", session.Key), zap.Error(err))
	}

	session.Lock()
	session.Language = lang
	s.Apply(session)
	session.Unlock()

	return nil
}

package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"mushroom-doctor/internal/domain/entity"
	"mushroom-doctor/internal/domain/port"
)

type SessionService struct {
	repo     port.SessionRepository
	language *LanguageService
	cameras  *CameraService
	logger   *zap.Logger
	now      func() time.Time
}

func NewSessionService(repo port.SessionRepository, language *LanguageService, cameras *CameraService, logger *zap.Logger) *SessionService {
	return &SessionService{
		repo:     repo,
		language: language,
		cameras:  cameras,
		logger:   logger.Named("session"),
		now:      time.Now,
	}
}

// Get возвращает сессию, создавая новую с сохранённым языком ("загрузка страницы").
func (s *SessionService) Get(ctx context.Context, key string) (*entity.Session, error) {
	session, ok, err := s.repo.Find(ctx, key)
	if err != nil {
		return nil, err
	}
	if ok {
		s.Touch(session)
		return session, nil
	}

	session = entity.NewSession(key, s.language.Load(ctx, key))
	s.language.Apply(session)
	s.Touch(session)

	if err := s.repo.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Touch отмечает сессию активной.
func (s *SessionService) Touch(session *entity.Session) {
	session.Lock()
	session.LastSeen = s.now()
	session.Unlock()
}

// View возвращает копию текущего представления.
func (s *SessionService) View(session *entity.Session) entity.View {
	session.Lock()
	defer session.Unlock()
	return session.Snapshot()
}

// Cancel закрывает камеру и сбрасывает изображение и результаты.
func (s *SessionService) Cancel(ctx context.Context, session *entity.Session) {
	s.cameras.Close(session)

	session.Lock()
	session.Payload = nil
	session.ClearResults()
	session.View.PreviewVisible = false
	session.SetState(entity.StateIdle)
	session.Unlock()
}

// End освобождает камеру и забывает сессию.
func (s *SessionService) End(ctx context.Context, key string) error {
	s.cameras.Release(key)
	return s.repo.Delete(ctx, key)
}

// EvictIdle завершает сессии, к которым не обращались дольше idle.
// Сессии с запросом к модели в процессе не трогаются.
func (s *SessionService) EvictIdle(ctx context.Context, idle time.Duration) (int, error) {
	keys, err := s.repo.Keys(ctx)
	if err != nil {
		return 0, err
	}

	cutoff := s.now().Add(-idle)
	evicted := 0
	for _, key := range keys {
		session, ok, err := s.repo.Find(ctx, key)
		if err != nil {
			return evicted, err
		}
		if !ok {
			continue
		}

		session.Lock()
		stale := session.State != entity.StateProcessing && session.LastSeen.Before(cutoff)
		session.Unlock()
		if !stale {
			continue
		}

		if err := s.End(ctx, key); err != nil {
			return evicted, err
		}
		evicted++
	}
	return evicted, nil
}

// Janitor раз в interval выселяет простаивающие сессии до отмены ctx.
func (s *SessionService) Janitor(ctx context.Context, idle, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.EvictIdle(ctx, idle)
			if err != nil {
				s.logger.Warn("evict idle sessions", zap.Error(err))
				continue
			}
			if n > 0 {
				s.logger.Info("idle sessions evicted", zap.Int("count", n))
			}
		}
	}
}

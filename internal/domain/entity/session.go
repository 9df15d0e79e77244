package entity

import (
	"sync"
	"time"
)

// SessionState состояние сессии в диалоге
type SessionState string

const (
	StateIdle       SessionState = "idle"       // Ожидание изображения
	StateCamera     SessionState = "camera"     // Камера открыта
	StateProcessing SessionState = "processing" // Запрос к модели в процессе
)

// OverlayBox — нарисованная рамка в координатах отображаемого изображения.
type OverlayBox struct {
	Box   Box
	Label string
}

// Overlay — аннотированное превью.
type Overlay struct {
	Width  int          // отображаемая ширина
	Height int          // отображаемая высота
	Image  []byte       // PNG
	Boxes  []OverlayBox // по одной на каждую детекцию
}

// Session — состояние одной страницы (чат Telegram или веб-сессия).
type Session struct {
	Key      string
	Language Language
	State    SessionState
	Payload  *Payload
	Overlay  *Overlay
	View     View
	LastSeen time.Time // последнее обращение, по нему выселяются брошенные сессии

	mu sync.Mutex
}

// NewSession создаёт сессию с начальным состоянием
func NewSession(key string, lang Language) *Session {
	return &Session{
		Key:      key,
		Language: lang,
		State:    StateIdle,
		View: View{
			Language:       lang,
			Labels:         make(map[Label]string),
			PredictEnabled: true,
		},
	}
}

// Lock захватывает сессию на время изменения.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock освобождает сессию.
func (s *Session) Unlock() { s.mu.Unlock() }

// SetState обновляет состояние сессии
func (s *Session) SetState(state SessionState) {
	s.State = state
}

// ClearResults убирает оверлей, карточки и скрывает область результатов.
func (s *Session) ClearResults() {
	s.Overlay = nil
	s.View.Cards = nil
	s.View.ResultsVisible = false
	s.View.HasOverlay = false
	s.View.ClearNotice()
}

// Snapshot возвращает копию представления, безопасную для сериализации.
func (s *Session) Snapshot() View {
	v := s.View
	v.Labels = make(map[Label]string, len(s.View.Labels))
	for k, t := range s.View.Labels {
		v.Labels[k] = t
	}
	v.Cards = append([]ResultCard(nil), s.View.Cards...)
	return v
}

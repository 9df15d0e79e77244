package port

import "context"

// PreferenceStore долговременное хранилище пользовательских настроек.
// scope — ключ сессии (чат или браузер), name — фиксированное имя настройки.
type PreferenceStore interface {
	// Get возвращает значение; ok=false если значения нет
	Get(ctx context.Context, scope, name string) (value string, ok bool, err error)

	// Set записывает значение
	Set(ctx context.Context, scope, name, value string) error
}

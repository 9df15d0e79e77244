package entity

// Language — код языка интерфейса
type Language string

const (
	LanguageEnglish  Language = "en"
	LanguageFilipino Language = "fil"
	LanguageIlocano  Language = "ilo"

	DefaultLanguage = LanguageEnglish
)

// PreferenceKeyLanguage — фиксированное имя ключа в хранилище настроек.
const PreferenceKeyLanguage = "lang"

// Languages перечисляет поддерживаемые языки в порядке отображения.
func Languages() []Language {
	return []Language{LanguageEnglish, LanguageFilipino, LanguageIlocano}
}

// ParseLanguage проверяет код языка.
func ParseLanguage(code string) (Language, bool) {
	for _, l := range Languages() {
		if string(l) == code {
			return l, true
		}
	}
	return "", false
}

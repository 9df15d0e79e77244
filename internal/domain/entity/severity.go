package entity

// Severity — уровень совпадения, выбираемый по уверенности.
type Severity string

const (
	SeverityStrong   Severity = "strong"
	SeverityModerate Severity = "moderate"
	SeverityWeak     Severity = "weak"
)

// Пороги строгие: значения 0.85 и 0.6 попадают в нижний уровень.
const (
	StrongThreshold   = 0.85
	ModerateThreshold = 0.6
)

// SeverityFor возвращает уровень для уверенности в долях.
func SeverityFor(confidence float64) Severity {
	switch {
	case confidence > StrongThreshold:
		return SeverityStrong
	case confidence > ModerateThreshold:
		return SeverityModerate
	default:
		return SeverityWeak
	}
}

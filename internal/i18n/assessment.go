package i18n

import (
	"strings"

	"mushroom-doctor/internal/domain/entity"
)

// Label возвращает текст статической надписи.
func (t *Table) Label(l entity.Label) string {
	switch l {
	case entity.LabelDisclaimerTitle:
		return t.DisclaimerTitle
	case entity.LabelDisclaimerContent:
		return t.DisclaimerContent
	case entity.LabelUnderstand:
		return t.ButtonUnderstand
	case entity.LabelChooseImage:
		return t.ChooseImage
	case entity.LabelPredict:
		return t.PredictButton
	case entity.LabelLoading:
		return t.Loading
	case entity.LabelOpenCamera:
		return t.OpenCamera
	case entity.LabelSwitchCamera:
		return t.SwitchCamera
	case entity.LabelCapture:
		return t.Capture
	case entity.LabelCloseCamera:
		return t.CloseCamera
	case entity.LabelLanguage:
		return t.LanguageTitle
	}
	return ""
}

// Labels возвращает все статические надписи языка.
func (t *Table) Labels() map[entity.Label]string {
	labels := make(map[entity.Label]string, len(entity.StaticLabels()))
	for _, l := range entity.StaticLabels() {
		labels[l] = t.Label(l)
	}
	return labels
}

// Severity возвращает фразу для уровня совпадения.
func (t *Table) Severity(s entity.Severity) string {
	switch s {
	case entity.SeverityStrong:
		return t.SeverityStrong
	case entity.SeverityModerate:
		return t.SeverityModerate
	default:
		return t.SeverityWeak
	}
}

// Advice подбирает совет по точному имени класса.
func (t *Table) Advice(class string) string {
	switch class {
	case ClassBacterialBlotch:
		return t.AdviceBacterialBlotch
	case ClassDryBubble:
		return t.AdviceDryBubble
	case ClassHealthy:
		return t.AdviceHealthy
	case ClassTrichoderma:
		return t.AdviceTrichoderma
	case ClassWilt:
		return t.AdviceWilt
	default:
		return t.AdviceGeneric
	}
}

// Assessment собирает текст карточки: уровень, обнаруженный класс и совет.
func (t *Table) Assessment(class string, confidence float64) string {
	parts := []string{
		t.Severity(entity.SeverityFor(confidence)),
		t.BasedOnAnalysis,
		class,
		t.WasDetected,
		t.Advice(class),
	}
	return strings.Join(parts, " ")
}

package i18n

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"mushroom-doctor/internal/domain/entity"
)

func TestTables_AllStringsFilled(t *testing.T) {
	for _, lang := range entity.Languages() {
		require.True(t, Has(lang))
		v := reflect.ValueOf(*For(lang))
		for i := 0; i < v.NumField(); i++ {
			require.NotEmpty(t, v.Field(i).String(), "%s: %s", lang, v.Type().Field(i).Name)
		}
	}
}

func TestFor_UnknownFallsBackToEnglish(t *testing.T) {
	require.Same(t, For(entity.LanguageEnglish), For("ru"))
	require.False(t, Has("ru"))
}

func TestAdvice_KnownClasses(t *testing.T) {
	tbl := For(entity.LanguageEnglish)
	require.Equal(t, tbl.AdviceBacterialBlotch, tbl.Advice(ClassBacterialBlotch))
	require.Equal(t, tbl.AdviceDryBubble, tbl.Advice(ClassDryBubble))
	require.Equal(t, tbl.AdviceHealthy, tbl.Advice(ClassHealthy))
	require.Equal(t, tbl.AdviceTrichoderma, tbl.Advice(ClassTrichoderma))
	require.Equal(t, tbl.AdviceWilt, tbl.Advice(ClassWilt))
}

func TestAdvice_UnknownClassGetsGenericFallback(t *testing.T) {
	for _, lang := range entity.Languages() {
		tbl := For(lang)
		for _, class := range []string{"Cobweb", "wilt", "", "Bacterial blotch", "Green Mold"} {
			require.Equal(t, tbl.AdviceGeneric, tbl.Advice(class), "%s/%q", lang, class)
		}
	}
}

func TestSeverityText_Boundaries(t *testing.T) {
	tbl := For(entity.LanguageEnglish)
	require.Equal(t, tbl.SeverityModerate, tbl.Severity(entity.SeverityFor(0.85)))
	require.Equal(t, tbl.SeverityWeak, tbl.Severity(entity.SeverityFor(0.6)))
	require.Equal(t, tbl.SeverityStrong, tbl.Severity(entity.SeverityFor(0.92)))
}

func TestAssessment(t *testing.T) {
	tbl := For(entity.LanguageEnglish)
	text := tbl.Assessment(ClassWilt, 0.92)
	require.True(t, strings.HasPrefix(text, tbl.SeverityStrong))
	require.Contains(t, text, "Based on the analysis, signs of Wilt were detected.")
	require.True(t, strings.HasSuffix(text, tbl.AdviceWilt))
}

func TestLabels_CoverAllStaticLabels(t *testing.T) {
	for _, lang := range entity.Languages() {
		labels := For(lang).Labels()
		require.Len(t, labels, len(entity.StaticLabels()))
		for _, l := range entity.StaticLabels() {
			require.NotEmpty(t, labels[l], "%s: %s", lang, l)
		}
	}
	require.Equal(t, "Hulaan ang Sakit", For(entity.LanguageFilipino).Label(entity.LabelPredict))
}

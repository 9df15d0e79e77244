package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSeverityFor_Boundaries(t *testing.T) {
	tests := []struct {
		confidence float64
		expected   Severity
	}{
		{0.99, SeverityStrong},
		{0.8501, SeverityStrong},
		{0.85, SeverityModerate},
		{0.61, SeverityModerate},
		{0.6, SeverityWeak},
		{0.0, SeverityWeak},
	}

	for _, tt := range tests {
		require.Equal(t, tt.expected, SeverityFor(tt.confidence), "confidence %v", tt.confidence)
	}
}

func TestNewSession_DefaultState(t *testing.T) {
	s := NewSession("chat:10", LanguageFilipino)
	require.Equal(t, StateIdle, s.State)
	require.Equal(t, LanguageFilipino, s.View.Language)
	require.True(t, s.View.PredictEnabled)
	require.NotNil(t, s.View.Labels)
}

func TestSession_ClearResults(t *testing.T) {
	s := NewSession("k", LanguageEnglish)
	s.Overlay = &Overlay{Width: 10, Height: 10}
	s.View.Cards = []ResultCard{{Class: "Wilt"}}
	s.View.ResultsVisible = true
	s.View.HasOverlay = true
	s.View.SetNotice(NoticeError, "boom")

	s.ClearResults()
	require.Nil(t, s.Overlay)
	require.Empty(t, s.View.Cards)
	require.False(t, s.View.ResultsVisible)
	require.False(t, s.View.HasOverlay)
	require.Empty(t, s.View.Notice)
}

func TestSession_SnapshotIsDetached(t *testing.T) {
	s := NewSession("k", LanguageEnglish)
	s.View.Labels[LabelPredict] = "Predict Disease"
	v := s.Snapshot()
	v.Labels[LabelPredict] = "changed"
	require.Equal(t, "Predict Disease", s.View.Labels[LabelPredict])
}

func TestParseLanguageAndFacing(t *testing.T) {
	l, ok := ParseLanguage("ilo")
	require.True(t, ok)
	require.Equal(t, LanguageIlocano, l)
	_, ok = ParseLanguage("ru")
	require.False(t, ok)

	f, ok := ParseFacing("")
	require.True(t, ok)
	require.Equal(t, FacingEnvironment, f)
	require.Equal(t, FacingUser, f.Opposite())
	_, ok = ParseFacing("sideways")
	require.False(t, ok)
}

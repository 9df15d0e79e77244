package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBoxScale(t *testing.T) {
	b := Box{10, 10, 50, 50}
	s := b.Scale(0.5, 0.5)
	require.Equal(t, Box{5, 5, 25, 25}, s)
	require.Equal(t, 20.0, s.Width())
	require.Equal(t, 20.0, s.Height())
}

func TestFilterDetections_ThresholdInclusive(t *testing.T) {
	in := []Detection{
		{Class: "Wilt", Confidence: 0.39},
		{Class: "Wilt", Confidence: 0.4},
		{Class: "Healthy", Confidence: 0.9},
	}
	out := FilterDetections(in, 0.4)
	require.Len(t, out, 2)
	require.Equal(t, 0.4, out[0].Confidence)
	require.Equal(t, "Healthy", out[1].Class)
}

func TestFilterDetections_AllBelow(t *testing.T) {
	out := FilterDetections([]Detection{{Class: "Wilt", Confidence: 0.1}}, 0.4)
	require.Empty(t, out)
}

func TestGroupByClass_MeanInFirstSeenOrder(t *testing.T) {
	groups := GroupByClass([]Detection{
		{Class: "Trichoderma", Confidence: 0.5},
		{Class: "Wilt", Confidence: 0.9},
		{Class: "Trichoderma", Confidence: 0.7},
	})
	require.Len(t, groups, 2)
	require.Equal(t, "Trichoderma", groups[0].Class)
	require.Equal(t, 2, groups[0].Count)
	require.InDelta(t, 0.6, groups[0].Confidence, 1e-9)
	require.Equal(t, "Wilt", groups[1].Class)
	require.InDelta(t, 0.9, groups[1].Confidence, 1e-9)
}

func TestFormatConfidence(t *testing.T) {
	require.Equal(t, "92.00%", FormatConfidence(0.92))
	require.Equal(t, "50.00%", FormatConfidence(0.5))
}

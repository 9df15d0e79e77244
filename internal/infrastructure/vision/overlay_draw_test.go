//go:build !gocv
// +build !gocv

package vision

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"

	"mushroom-doctor/internal/domain/entity"
)

func TestOverlayRenderer_StrokesInsideBox(t *testing.T) {
	r := NewOverlayRenderer(200, 150)
	overlay, err := r.Render(greenPNG(t, 400, 300), []entity.Detection{
		{Class: "Wilt", Confidence: 0.92, Box: entity.Box{10, 10, 50, 50}},
	})
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(overlay.Image))
	require.NoError(t, err)

	// левая граница рамки
	edge := color.RGBAModel.Convert(img.At(5, 24)).(color.RGBA)
	require.Equal(t, r.BoxColor, edge)
}

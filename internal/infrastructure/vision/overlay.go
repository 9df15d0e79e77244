package vision

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"

	_ "golang.org/x/image/webp"

	"mushroom-doctor/internal/domain/entity"
	"mushroom-doctor/internal/domain/port"
)

// ErrNotLaidOut — отображаемый размер нулевой, рисовать нечего.
var ErrNotLaidOut = errors.New("preview has zero displayed size")

// ErrImageTooLarge — заявленные размеры изображения превышают MaxSourcePixels.
var ErrImageTooLarge = errors.New("image dimensions too large")

// MaxSourcePixels ограничивает площадь декодируемого превью.
const MaxSourcePixels = 50_000_000

// OverlayRenderer рисует рамки детекций поверх превью в размерах отображения.
type OverlayRenderer struct {
	MaxWidth   int
	MaxHeight  int
	Stroke     int
	BoxColor   color.RGBA
	LabelColor color.RGBA
}

// NewOverlayRenderer создаёт рендерер с окном отображения maxWidth×maxHeight.
func NewOverlayRenderer(maxWidth, maxHeight int) *OverlayRenderer {
	return &OverlayRenderer{
		MaxWidth:   maxWidth,
		MaxHeight:  maxHeight,
		Stroke:     2,
		BoxColor:   color.RGBA{R: 255, A: 255},
		LabelColor: color.RGBA{R: 255, G: 255, B: 255, A: 255},
	}
}

// DisplaySize вписывает естественный размер в окно, не увеличивая изображение.
func DisplaySize(natural image.Point, maxWidth, maxHeight int) image.Point {
	if natural.X <= 0 || natural.Y <= 0 {
		return image.Point{}
	}

	scale := 1.0
	if maxWidth > 0 && natural.X > maxWidth {
		scale = math.Min(scale, float64(maxWidth)/float64(natural.X))
	}
	if maxHeight > 0 && natural.Y > maxHeight {
		scale = math.Min(scale, float64(maxHeight)/float64(natural.Y))
	}

	return image.Pt(
		int(math.Round(float64(natural.X)*scale)),
		int(math.Round(float64(natural.Y)*scale)),
	)
}

// ScaleBox переводит рамку из естественных координат в отображаемые.
func ScaleBox(box entity.Box, natural, displayed image.Point) entity.Box {
	sx := float64(displayed.X) / float64(natural.X)
	sy := float64(displayed.Y) / float64(natural.Y)
	return box.Scale(sx, sy)
}

// checkSource читает только заголовок изображения и отказывает до декодирования,
// если площадь больше MaxSourcePixels.
func checkSource(data []byte) (image.Point, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return image.Point{}, fmt.Errorf("decode preview header: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return image.Point{}, ErrNotLaidOut
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxSourcePixels {
		return image.Point{}, fmt.Errorf("%w: %dx%d", ErrImageTooLarge, cfg.Width, cfg.Height)
	}
	return image.Pt(cfg.Width, cfg.Height), nil
}

// boxLabel — подпись рамки, например "Wilt 92.00%".
func boxLabel(d entity.Detection) string {
	return fmt.Sprintf("%s %s", d.Class, entity.FormatConfidence(d.Confidence))
}

func toRect(b entity.Box) image.Rectangle {
	return image.Rect(
		int(math.Round(b.XMin())),
		int(math.Round(b.YMin())),
		int(math.Round(b.XMax())),
		int(math.Round(b.YMax())),
	)
}

var _ port.OverlayRenderer = (*OverlayRenderer)(nil)

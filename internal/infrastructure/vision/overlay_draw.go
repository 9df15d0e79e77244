//go:build !gocv
// +build !gocv

package vision

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"

	"github.com/nfnt/resize"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"mushroom-doctor/internal/domain/entity"
)

const labelPadding = 2

// Render декодирует превью и рисует по рамке на каждую детекцию.
func (r *OverlayRenderer) Render(data []byte, detections []entity.Detection) (*entity.Overlay, error) {
	natural, err := checkSource(data)
	if err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode preview: %w", err)
	}

	return r.RenderAt(img, DisplaySize(natural, r.MaxWidth, r.MaxHeight), detections)
}

// RenderAt рисует оверлей для заданного отображаемого размера.
func (r *OverlayRenderer) RenderAt(img image.Image, displayed image.Point, detections []entity.Detection) (*entity.Overlay, error) {
	natural := img.Bounds().Size()
	if displayed.X <= 0 || displayed.Y <= 0 || natural.X <= 0 || natural.Y <= 0 {
		return nil, ErrNotLaidOut
	}

	canvas := image.NewRGBA(image.Rect(0, 0, displayed.X, displayed.Y))
	scaled := resize.Resize(uint(displayed.X), uint(displayed.Y), img, resize.Bilinear)
	draw.Draw(canvas, canvas.Bounds(), scaled, scaled.Bounds().Min, draw.Src)

	boxes := make([]entity.OverlayBox, 0, len(detections))
	for _, d := range detections {
		box := ScaleBox(d.Box, natural, displayed)
		label := boxLabel(d)

		rect := toRect(box)
		r.strokeRect(canvas, rect)
		r.drawLabel(canvas, rect, label)

		boxes = append(boxes, entity.OverlayBox{Box: box, Label: label})
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("encode overlay: %w", err)
	}

	return &entity.Overlay{
		Width:  displayed.X,
		Height: displayed.Y,
		Image:  buf.Bytes(),
		Boxes:  boxes,
	}, nil
}

// strokeRect рисует контур толщиной Stroke внутрь прямоугольника.
func (r *OverlayRenderer) strokeRect(dst *image.RGBA, rect image.Rectangle) {
	rect = rect.Intersect(dst.Bounds())
	if rect.Empty() {
		return
	}

	src := &image.Uniform{C: r.BoxColor}
	w := r.Stroke
	if w < 1 {
		w = 1
	}

	edges := []image.Rectangle{
		image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+w),
		image.Rect(rect.Min.X, rect.Max.Y-w, rect.Max.X, rect.Max.Y),
		image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+w, rect.Max.Y),
		image.Rect(rect.Max.X-w, rect.Min.Y, rect.Max.X, rect.Max.Y),
	}
	for _, e := range edges {
		draw.Draw(dst, e.Intersect(rect), src, image.Point{}, draw.Src)
	}
}

// drawLabel пишет подпись над рамкой, а если места нет, то внутри неё.
func (r *OverlayRenderer) drawLabel(dst *image.RGBA, rect image.Rectangle, label string) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  dst,
		Src:  &image.Uniform{C: r.LabelColor},
		Face: face,
	}

	textW := d.MeasureString(label).Ceil() + 2*labelPadding
	textH := face.Metrics().Height.Ceil() + labelPadding

	top := rect.Min.Y - textH
	if top < 0 {
		top = rect.Min.Y
	}
	bg := image.Rect(rect.Min.X, top, rect.Min.X+textW, top+textH).Intersect(dst.Bounds())
	if bg.Empty() {
		return
	}
	draw.Draw(dst, bg, &image.Uniform{C: r.BoxColor}, image.Point{}, draw.Src)

	d.Dot = fixed.P(bg.Min.X+labelPadding, top+face.Metrics().Ascent.Ceil())
	d.DrawString(label)
}

//go:build gocv
// +build gocv

package vision

import (
	"errors"
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"mushroom-doctor/internal/domain/entity"
)

const labelScale = 0.5

// Render декодирует превью в Mat и рисует рамки средствами OpenCV.
func (r *OverlayRenderer) Render(data []byte, detections []entity.Detection) (*entity.Overlay, error) {
	natural, err := checkSource(data)
	if err != nil {
		return nil, err
	}

	mat, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("decode preview: %w", err)
	}
	defer mat.Close()

	if mat.Empty() {
		return nil, errors.New("decode preview: empty image")
	}

	return r.renderMat(mat, DisplaySize(natural, r.MaxWidth, r.MaxHeight), detections)
}

// RenderAt рисует оверлей для заданного отображаемого размера.
func (r *OverlayRenderer) RenderAt(img image.Image, displayed image.Point, detections []entity.Detection) (*entity.Overlay, error) {
	if displayed.X <= 0 || displayed.Y <= 0 || img.Bounds().Empty() {
		return nil, ErrNotLaidOut
	}

	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("convert preview: %w", err)
	}
	defer mat.Close()

	return r.renderMat(mat, displayed, detections)
}

func (r *OverlayRenderer) renderMat(mat gocv.Mat, displayed image.Point, detections []entity.Detection) (*entity.Overlay, error) {
	natural := image.Pt(mat.Cols(), mat.Rows())
	if displayed.X <= 0 || displayed.Y <= 0 || natural.X <= 0 || natural.Y <= 0 {
		return nil, ErrNotLaidOut
	}

	canvas := gocv.NewMat()
	defer canvas.Close()
	gocv.Resize(mat, &canvas, displayed, 0, 0, gocv.InterpolationLinear)

	stroke := r.Stroke
	if stroke < 1 {
		stroke = 1
	}

	boxes := make([]entity.OverlayBox, 0, len(detections))
	for _, d := range detections {
		box := ScaleBox(d.Box, natural, displayed)
		label := boxLabel(d)

		rect := toRect(box)
		gocv.Rectangle(&canvas, rect, r.BoxColor, stroke)
		r.putLabel(&canvas, rect, label)

		boxes = append(boxes, entity.OverlayBox{Box: box, Label: label})
	}

	buf, err := gocv.IMEncode(gocv.PNGFileExt, canvas)
	if err != nil {
		return nil, fmt.Errorf("encode overlay: %w", err)
	}
	defer buf.Close()

	out := make([]byte, len(buf.GetBytes()))
	copy(out, buf.GetBytes())

	return &entity.Overlay{
		Width:  displayed.X,
		Height: displayed.Y,
		Image:  out,
		Boxes:  boxes,
	}, nil
}

// putLabel пишет подпись на плашке над рамкой, а если места нет, то внутри неё.
func (r *OverlayRenderer) putLabel(canvas *gocv.Mat, rect image.Rectangle, label string) {
	size := gocv.GetTextSize(label, gocv.FontHersheySimplex, labelScale, 1)

	top := rect.Min.Y - size.Y - 4
	if top < 0 {
		top = rect.Min.Y
	}
	bg := image.Rect(rect.Min.X, top, rect.Min.X+size.X+4, top+size.Y+4)
	gocv.Rectangle(canvas, bg, r.BoxColor, -1)
	gocv.PutText(canvas, label, image.Pt(bg.Min.X+2, bg.Max.Y-2), gocv.FontHersheySimplex, labelScale, r.LabelColor, 1)
}

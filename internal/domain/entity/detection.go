package entity

import "fmt"

// Box — рамка [xmin, ymin, xmax, ymax] в пикселях исходного изображения.
type Box [4]float64

func (b Box) XMin() float64 { return b[0] }
func (b Box) YMin() float64 { return b[1] }
func (b Box) XMax() float64 { return b[2] }
func (b Box) YMax() float64 { return b[3] }

// Width возвращает ширину рамки
func (b Box) Width() float64 { return b[2] - b[0] }

// Height возвращает высоту рамки
func (b Box) Height() float64 { return b[3] - b[1] }

// Scale масштабирует рамку независимо по каждой оси.
func (b Box) Scale(sx, sy float64) Box {
	return Box{b[0] * sx, b[1] * sy, b[2] * sx, b[3] * sy}
}

// Detection — одна рамка с классом болезни от сервиса инференса.
type Detection struct {
	Class      string  `json:"class"`
	Confidence float64 `json:"confidence"` // доля в [0,1], не проценты
	Box        Box     `json:"box"`
}

// Prediction — класс без рамки (ранний формат ответа).
type Prediction struct {
	Class      string  `json:"class"`
	Confidence float64 `json:"confidence"`
}

// InferenceResult — полностью разобранный ответ сервиса.
type InferenceResult struct {
	Predictions []Prediction `json:"predictions,omitempty"`
	Detections  []Detection  `json:"detections,omitempty"`
	// HasDetections отличает ответ с пустым detections от ответа в формате predictions.
	HasDetections bool `json:"-"`
}

// ClassGroup агрегирует детекции одного класса.
type ClassGroup struct {
	Class      string
	Confidence float64 // среднее арифметическое
	Count      int
}

// FilterDetections оставляет детекции с уверенностью не ниже порога.
func FilterDetections(detections []Detection, threshold float64) []Detection {
	filtered := make([]Detection, 0, len(detections))
	for _, d := range detections {
		if d.Confidence >= threshold {
			filtered = append(filtered, d)
		}
	}
	return filtered
}

// GroupByClass группирует детекции по классу в порядке первого появления.
func GroupByClass(detections []Detection) []ClassGroup {
	index := make(map[string]int)
	sums := make([]float64, 0)
	groups := make([]ClassGroup, 0)

	for _, d := range detections {
		i, ok := index[d.Class]
		if !ok {
			i = len(groups)
			index[d.Class] = i
			groups = append(groups, ClassGroup{Class: d.Class})
			sums = append(sums, 0)
		}
		sums[i] += d.Confidence
		groups[i].Count++
	}

	for i := range groups {
		groups[i].Confidence = sums[i] / float64(groups[i].Count)
	}

	return groups
}

// FormatConfidence переводит долю в строку процентов для отображения.
func FormatConfidence(confidence float64) string {
	return fmt.Sprintf("%.2f%%", confidence*100)
}

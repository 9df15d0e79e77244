package inference

import (
	"fmt"
	"math"

	"mushroom-doctor/internal/domain/entity"
)

type predictionDTO struct {
	Class      *string  `json:"class"`
	Confidence *float64 `json:"confidence"`
}

type detectionDTO struct {
	Class      *string   `json:"class"`
	Confidence *float64  `json:"confidence"`
	Box        []float64 `json:"box"`
}

type responseDTO struct {
	Predictions *[]predictionDTO `json:"predictions"`
	Detections  *[]detectionDTO  `json:"detections"`
}

// validate проверяет контракт ответа; detections важнее predictions.
func (r responseDTO) validate() (*entity.InferenceResult, error) {
	if r.Detections != nil {
		detections := make([]entity.Detection, 0, len(*r.Detections))
		for i, d := range *r.Detections {
			class, conf, err := checkLabel(d.Class, d.Confidence)
			if err != nil {
				return nil, &ParseError{Reason: fmt.Sprintf("detections[%d]: %s", i, err)}
			}
			box, err := checkBox(d.Box)
			if err != nil {
				return nil, &ParseError{Reason: fmt.Sprintf("detections[%d]: %s", i, err)}
			}
			detections = append(detections, entity.Detection{Class: class, Confidence: conf, Box: box})
		}
		return &entity.InferenceResult{Detections: detections, HasDetections: true}, nil
	}

	if r.Predictions != nil {
		predictions := make([]entity.Prediction, 0, len(*r.Predictions))
		for i, p := range *r.Predictions {
			class, conf, err := checkLabel(p.Class, p.Confidence)
			if err != nil {
				return nil, &ParseError{Reason: fmt.Sprintf("predictions[%d]: %s", i, err)}
			}
			predictions = append(predictions, entity.Prediction{Class: class, Confidence: conf})
		}
		return &entity.InferenceResult{Predictions: predictions}, nil
	}

	return nil, &ParseError{Reason: "neither predictions nor detections present"}
}

func checkLabel(class *string, confidence *float64) (string, float64, error) {
	if class == nil || *class == "" {
		return "", 0, fmt.Errorf("missing class")
	}
	if confidence == nil {
		return "", 0, fmt.Errorf("missing confidence")
	}
	c := *confidence
	if math.IsNaN(c) || c < 0 || c > 1 {
		return "", 0, fmt.Errorf("confidence %v outside [0,1]", c)
	}
	return *class, c, nil
}

func checkBox(raw []float64) (entity.Box, error) {
	if len(raw) != 4 {
		return entity.Box{}, fmt.Errorf("box must have 4 values, got %d", len(raw))
	}
	var box entity.Box
	for i, v := range raw {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return entity.Box{}, fmt.Errorf("box[%d] is not finite", i)
		}
		box[i] = v
	}
	if box.XMax() < box.XMin() || box.YMax() < box.YMin() {
		return entity.Box{}, fmt.Errorf("box %v is inverted", raw)
	}
	return box, nil
}

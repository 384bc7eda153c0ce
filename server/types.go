package server

import (
	"image"

	"github.com/PratikBhandari22398/uniform-ai-detection/service"
)

// Classifier is the single inference capability the handlers need.
type Classifier interface {
	Classify(img image.Image) (service.Prediction, error)
}

// DetectResponse is the success body of POST /api/detect. Timestamp is an
// ISO-8601 UTC instant ending in "Z".
type DetectResponse struct {
	Status     string  `json:"status"`
	Class      string  `json:"class"`
	Confidence float64 `json:"confidence"`
	Timestamp  string  `json:"timestamp"`
}

// ErrorResponse is the body for every non-2xx response.
type ErrorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

func errorBody(msg string) ErrorResponse {
	return ErrorResponse{Status: "error", Error: msg}
}

package service

import (
	ort "github.com/yalue/onnxruntime_go"
)

// Metadata is the JSON sidecar written next to the model by the export
// tooling. Decoded strictly so a genuinely wrong sidecar fails loudly.
type Metadata struct {
	ImageSize   int     `json:"image_size"`
	InputShape  []int64 `json:"input_shape"`
	OutputShape []int64 `json:"output_shape"`
}

// Prediction is the result of one forward pass: the arg-max class and its
// probability. Valid only for the request that produced it.
type Prediction struct {
	Class      string
	Confidence float64
}

type model struct {
	session *ort.AdvancedSession
	input   *ort.Tensor[float32]
	output  *ort.Tensor[float32]
}

// Classifier holds the label set, sidecar metadata and a pool of inference
// sessions. Labels and metadata are read-only after Load; each session is
// checked out exclusively for the duration of one forward pass.
type Classifier struct {
	pool   chan *model
	labels []string
	meta   Metadata
}

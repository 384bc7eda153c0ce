package service

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/PratikBhandari22398/uniform-ai-detection/config"
	ort "github.com/yalue/onnxruntime_go"
)

// Load reads the model, sidecar metadata and label file from the configured
// model directory and builds the session pool. A missing model or label file
// is a startup failure; the caller must not serve without a classifier.
func Load() (*Classifier, error) {
	cfg := config.C()
	modelPath := filepath.Join(cfg.ModelDir, cfg.ModelFileName)
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("model file not found: %s: %w", modelPath, err)
	}

	labelsPath := filepath.Join(cfg.ModelDir, cfg.ModelLabelsName)
	labels, err := ReadLabels(labelsPath)
	if err != nil {
		return nil, fmt.Errorf("labels file not found: %s: %w", labelsPath, err)
	}

	meta, err := LoadMetadata(filepath.Join(cfg.ModelDir, cfg.ModelMetaName))
	if err != nil {
		return nil, err
	}

	outLen := meta.OutputShape[len(meta.OutputShape)-1]
	if outLen != int64(len(labels)) {
		// Lookups past the label set fall back to the numeric index.
		slog.Warn("label count does not match model output length",
			slog.Int("labels", len(labels)),
			slog.Int64("outputs", outLen))
	}

	inputs, outputs, err := ort.GetInputOutputInfo(modelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get model input/output info: %w", err)
	}
	if len(inputs) == 0 || len(outputs) == 0 {
		return nil, fmt.Errorf("model has no usable input/output")
	}

	size := cfg.PoolSize
	if size < 1 {
		size = 1
	}
	pool := make(chan *model, size)
	for i := 0; i < size; i++ {
		m, err := newModel(modelPath, inputs[0].Name, outputs[0].Name, meta)
		if err != nil {
			return nil, err
		}
		pool <- m
	}

	return &Classifier{pool: pool, labels: labels, meta: meta}, nil
}

func newModel(modelPath, inputName, outputName string, meta Metadata) (*model, error) {
	inputTensor, err := ort.NewTensor(ort.NewShape(meta.InputShape...), make([]float32, tensorLen(meta.InputShape)))
	if err != nil {
		return nil, fmt.Errorf("failed to create input tensor: %w", err)
	}
	outputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(meta.OutputShape...))
	if err != nil {
		inputTensor.Destroy()
		return nil, fmt.Errorf("failed to create output tensor: %w", err)
	}

	opts, err := ort.NewSessionOptions()
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, fmt.Errorf("failed to create session options: %w", err)
	}
	defer opts.Destroy()

	session, err := ort.NewAdvancedSession(
		modelPath,
		[]string{inputName},
		[]string{outputName},
		[]ort.Value{inputTensor},
		[]ort.Value{outputTensor},
		opts,
	)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, fmt.Errorf("failed to create ONNX Runtime session: %w", err)
	}

	return &model{session: session, input: inputTensor, output: outputTensor}, nil
}

func tensorLen(shape []int64) int64 {
	n := int64(1)
	for _, d := range shape {
		n *= d
	}
	return n
}

// Classify runs one forward pass and returns the arg-max class and its
// probability. Labels and metadata are never written, so concurrent calls
// are safe; the session itself is exclusive while checked out of the pool.
func (c *Classifier) Classify(img image.Image) (Prediction, error) {
	inputData := Preprocess(img, c.meta.ImageSize)

	m := <-c.pool
	defer func() { c.pool <- m }()

	copy(m.input.GetData(), inputData)
	if err := m.session.Run(); err != nil {
		return Prediction{}, fmt.Errorf("inference failed: %w", err)
	}

	probs := m.output.GetData()
	idx, best := Argmax(probs)
	if idx < 0 {
		return Prediction{}, fmt.Errorf("model produced an empty output vector")
	}

	return Prediction{Class: c.Label(idx), Confidence: clamp01(float64(best))}, nil
}

// Label maps an output index to its class name, or the numeric index as a
// string when the index is outside the label set.
func (c *Classifier) Label(idx int) string {
	if idx >= 0 && idx < len(c.labels) {
		return c.labels[idx]
	}
	return strconv.Itoa(idx)
}

// Labels returns the label set.
func (c *Classifier) Labels() []string {
	return c.labels
}

// Close destroys the pooled sessions and their tensors.
func (c *Classifier) Close() {
	for i := 0; i < cap(c.pool); i++ {
		m := <-c.pool
		m.session.Destroy()
		m.input.Destroy()
		m.output.Destroy()
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

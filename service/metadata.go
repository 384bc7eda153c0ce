package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// Newer export tooling writes a "groups" key into the conv layer
// configuration. The strict sidecar decoder does not recognize it, so it is
// stripped before decoding. Other unknown keys still fail the decode.
const unrecognizedLayerKey = "groups"

// NormalizeLayerConfig returns a copy of cfg without the unrecognized layer
// key. A mapping that never contained the key is returned unchanged, so
// normalizing an already-normalized mapping is a no-op.
func NormalizeLayerConfig(cfg map[string]any) map[string]any {
	if cfg == nil {
		return nil
	}
	if _, ok := cfg[unrecognizedLayerKey]; !ok {
		return cfg
	}
	out := make(map[string]any, len(cfg))
	for k, v := range cfg {
		if k == unrecognizedLayerKey {
			continue
		}
		out[k] = v
	}
	return out
}

// LoadMetadata reads the model sidecar, normalizes the raw configuration
// mapping and strictly decodes it.
func LoadMetadata(path string) (Metadata, error) {
	var meta Metadata

	raw, err := os.ReadFile(path)
	if err != nil {
		return meta, fmt.Errorf("failed to read model metadata: %w", err)
	}

	var cfg map[string]any
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return meta, fmt.Errorf("failed to parse model metadata: %w", err)
	}
	cfg = NormalizeLayerConfig(cfg)

	normalized, err := json.Marshal(cfg)
	if err != nil {
		return meta, fmt.Errorf("failed to re-encode model metadata: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(normalized))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&meta); err != nil {
		return meta, fmt.Errorf("failed to decode model metadata: %w", err)
	}

	if meta.ImageSize <= 0 {
		return meta, fmt.Errorf("model metadata: image_size must be positive, got %d", meta.ImageSize)
	}
	if len(meta.InputShape) == 0 || len(meta.OutputShape) == 0 {
		return meta, fmt.Errorf("model metadata: input_shape and output_shape are required")
	}
	return meta, nil
}

package service

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestNormalizeLayerConfigStripsGroups(t *testing.T) {
	cfg := map[string]any{
		"image_size": float64(224),
		"groups":     float64(1),
	}
	got := NormalizeLayerConfig(cfg)
	if _, ok := got["groups"]; ok {
		t.Fatal("expected groups key to be stripped")
	}
	if got["image_size"] != float64(224) {
		t.Fatalf("expected other keys untouched, got %v", got)
	}
	if _, ok := cfg["groups"]; !ok {
		t.Fatal("input mapping must not be mutated")
	}
}

func TestNormalizeLayerConfigIdempotent(t *testing.T) {
	cfg := map[string]any{
		"image_size": float64(224),
		"groups":     float64(1),
	}
	once := NormalizeLayerConfig(cfg)
	twice := NormalizeLayerConfig(once)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("normalizing twice changed the mapping: %v vs %v", once, twice)
	}
}

func TestNormalizeLayerConfigNoopWithoutKey(t *testing.T) {
	cfg := map[string]any{"image_size": float64(224)}
	got := NormalizeLayerConfig(cfg)
	if !reflect.DeepEqual(got, cfg) {
		t.Fatalf("expected mapping unchanged, got %v", got)
	}
}

func writeMetadata(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMetadataStripsUnrecognizedKey(t *testing.T) {
	path := writeMetadata(t, `{
		"image_size": 224,
		"input_shape": [1, 224, 224, 3],
		"output_shape": [1, 2],
		"groups": 1
	}`)

	meta, err := LoadMetadata(path)
	if err != nil {
		t.Fatalf("expected metadata with groups key to load, got %v", err)
	}
	if meta.ImageSize != 224 {
		t.Fatalf("expected image size 224, got %d", meta.ImageSize)
	}
}

func TestLoadMetadataSameWithAndWithoutKey(t *testing.T) {
	clean := writeMetadata(t, `{"image_size": 224, "input_shape": [1, 224, 224, 3], "output_shape": [1, 2]}`)
	patched := writeMetadata(t, `{"image_size": 224, "input_shape": [1, 224, 224, 3], "output_shape": [1, 2], "groups": 1}`)

	cleanMeta, err := LoadMetadata(clean)
	if err != nil {
		t.Fatal(err)
	}
	patchedMeta, err := LoadMetadata(patched)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(cleanMeta, patchedMeta) {
		t.Fatalf("metadata differs: %+v vs %+v", cleanMeta, patchedMeta)
	}
}

func TestLoadMetadataRejectsOtherUnknownKeys(t *testing.T) {
	path := writeMetadata(t, `{"image_size": 224, "input_shape": [1, 224, 224, 3], "output_shape": [1, 2], "quantization": "int8"}`)
	if _, err := LoadMetadata(path); err == nil {
		t.Fatal("expected unknown key to fail the strict decode")
	}
}

func TestLoadMetadataMissingFile(t *testing.T) {
	if _, err := LoadMetadata(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing sidecar")
	}
}

func TestLoadMetadataValidation(t *testing.T) {
	path := writeMetadata(t, `{"image_size": 0, "input_shape": [1, 224, 224, 3], "output_shape": [1, 2]}`)
	if _, err := LoadMetadata(path); err == nil {
		t.Fatal("expected zero image_size to be rejected")
	}
}

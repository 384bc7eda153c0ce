package service

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	_ "github.com/gen2brain/avif"
	_ "golang.org/x/image/webp"

	"github.com/disintegration/imaging"
)

// ReadLabels parses a newline-delimited label file. Each non-empty line is
// one label; for "index label" formatted lines the text after the first
// space is the label.
func ReadLabels(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(b), "\n")
	var labels []string
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		if i := strings.Index(l, " "); i >= 0 {
			l = l[i+1:]
		}
		labels = append(labels, l)
	}
	return labels, nil
}

// Preprocess crops and resizes the image to size x size preserving aspect
// ratio, then scales pixels to [0,1] float32 in NHWC layout with a batch
// dimension of 1.
func Preprocess(img image.Image, size int) []float32 {
	fitted := imaging.Fill(img, size, size, imaging.Center, imaging.Lanczos)

	out := make([]float32, size*size*3)
	i := 0
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			r, g, b, _ := fitted.At(x, y).RGBA()
			out[i] = float32(r) / 65535.0
			out[i+1] = float32(g) / 65535.0
			out[i+2] = float32(b) / 65535.0
			i += 3
		}
	}
	return out
}

// Argmax returns the index and value of the largest element. Index -1 for
// an empty slice.
func Argmax(v []float32) (int, float32) {
	if len(v) == 0 {
		return -1, 0
	}
	idx := 0
	best := v[0]
	for i, x := range v[1:] {
		if x > best {
			best = x
			idx = i + 1
		}
	}
	return idx, best
}

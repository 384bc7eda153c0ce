package onnx

import (
	"log/slog"
	"os"
	"runtime"
	"sync"

	"github.com/PratikBhandari22398/uniform-ai-detection/config"
)

var pathOnce sync.Once
var libPath string

// LibPath resolves the ONNX Runtime shared library: config override first,
// then common install locations for the current OS.
func LibPath() string {
	pathOnce.Do(func() {
		libPath = loadLibPath()
		if libPath == "" {
			slog.Error("ONNX Runtime library path could not be determined for this OS")
		} else {
			slog.Info("Using ONNX Runtime library", slog.String("path", libPath))
		}
	})
	return libPath
}

func loadLibPath() string {
	if config.C().Libonnx != "" {
		return config.C().Libonnx
	}
	var candidates []string
	switch runtime.GOOS {
	case "linux":
		candidates = []string{
			"onnxlibs/libonnxruntime.so",
			"/usr/local/lib/libonnxruntime.so",
			"/usr/lib/libonnxruntime.so",
		}
	case "darwin":
		candidates = []string{
			"/usr/local/lib/libonnxruntime.dylib",
			"/opt/homebrew/lib/libonnxruntime.dylib",
		}
	default:
		return ""
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

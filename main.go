package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gin-gonic/gin"
	ort "github.com/yalue/onnxruntime_go"

	"github.com/PratikBhandari22398/uniform-ai-detection/config"
	"github.com/PratikBhandari22398/uniform-ai-detection/logging"
	"github.com/PratikBhandari22398/uniform-ai-detection/metrics"
	"github.com/PratikBhandari22398/uniform-ai-detection/onnx"
	"github.com/PratikBhandari22398/uniform-ai-detection/server"
	"github.com/PratikBhandari22398/uniform-ai-detection/service"
	"github.com/PratikBhandari22398/uniform-ai-detection/storage"
)

const serviceName = "uniform-ai-detection"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg := config.C()
	slog.SetDefault(logging.NewJSONLogger(serviceName, cfg.LogLevel))
	slog.Info("starting uniform detection service")

	ort.SetSharedLibraryPath(onnx.LibPath())
	if err := ort.InitializeEnvironment(); err != nil {
		slog.Error("Failed to initialize ONNX Runtime environment", slog.String("error", err.Error()))
		return
	}
	defer ort.DestroyEnvironment()

	// Missing model or label files must refuse to start.
	classifier, err := service.Load()
	if err != nil {
		slog.Error("Failed to load model", slog.String("error", err.Error()))
		return
	}
	defer classifier.Close()
	slog.Info("model loaded", slog.Any("labels", classifier.Labels()))

	// Store connectivity failure degrades to a disabled log, never a crash.
	detectionLog := storage.Connect(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoCollection)

	m := metrics.New(serviceName)
	srv := server.New(classifier, detectionLog, m)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.MaxMultipartMemory = 10 << 20
	r.Use(server.RequestID(), m.Middleware(), gin.Recovery())
	r.POST("/api/detect", srv.DetectHandler)
	r.GET("/health", srv.HealthHandler)
	r.GET("/metrics", gin.WrapH(m.Handler()))

	addr := cfg.Host + ":" + cfg.Port
	slog.Info("Listening on", slog.String("address", addr))
	go func() {
		if err := r.Run(addr); err != nil {
			slog.Error("Server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")
}

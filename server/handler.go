package server

import (
	"image"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/PratikBhandari22398/uniform-ai-detection/metrics"
	"github.com/PratikBhandari22398/uniform-ai-detection/storage"
)

const (
	errNoFileField = "No file field in request"
	errEmptyName   = "Empty filename"
)

// Server holds the request-handling dependencies. The classifier and
// detection log are injected so handlers are testable with fakes.
type Server struct {
	classifier Classifier
	log        storage.DetectionLog
	metrics    *metrics.Metrics
}

func New(classifier Classifier, log storage.DetectionLog, m *metrics.Metrics) *Server {
	return &Server{classifier: classifier, log: log, metrics: m}
}

// DetectHandler serves POST /api/detect: multipart field "file" holding the
// image bytes. Classification failures surface as 500; a failed detection
// log insert never does.
func (s *Server) DetectHandler(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(400, errorBody(errNoFileField))
		return
	}

	files := form.File["file"]
	if len(files) == 0 {
		// A file part without a filename is parsed as a plain value.
		if _, ok := form.Value["file"]; ok {
			c.JSON(400, errorBody(errEmptyName))
			return
		}
		c.JSON(400, errorBody(errNoFileField))
		return
	}
	fileHeader := files[0]
	if fileHeader.Filename == "" {
		c.JSON(400, errorBody(errEmptyName))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(500, errorBody(err.Error()))
		return
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		c.JSON(500, errorBody(err.Error()))
		return
	}

	start := time.Now()
	pred, err := s.classifier.Classify(img)
	if err != nil {
		slog.Error("classification failed",
			slog.String("request_id", c.GetString(requestIDKey)),
			slog.String("error", err.Error()))
		c.JSON(500, errorBody(err.Error()))
		return
	}
	if s.metrics != nil {
		s.metrics.ObserveInference(time.Since(start))
		s.metrics.ObserveDetection(pred.Class)
	}

	now := time.Now().UTC()
	rec := storage.DetectionRecord{
		RequestID:  c.GetString(requestIDKey),
		Class:      pred.Class,
		Confidence: pred.Confidence,
		Timestamp:  now,
	}
	if err := s.log.Insert(c.Request.Context(), rec); err != nil {
		// Persistence is best-effort; the response does not change.
		slog.Warn("failed to insert detection record",
			slog.String("request_id", rec.RequestID),
			slog.String("error", err.Error()))
		if s.metrics != nil {
			s.metrics.LogInsertFailed()
		}
	}

	c.JSON(200, DetectResponse{
		Status:     "success",
		Class:      pred.Class,
		Confidence: pred.Confidence,
		Timestamp:  now.Format(time.RFC3339),
	})
}

// HealthHandler serves GET /health.
func (s *Server) HealthHandler(c *gin.Context) {
	c.JSON(200, gin.H{"status": "healthy"})
}

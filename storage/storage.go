package storage

import (
	"context"
	"time"
)

// DetectionRecord is one persisted classification. Written once, never
// updated or deleted by this service.
type DetectionRecord struct {
	RequestID  string    `bson:"request_id,omitempty" json:"request_id,omitempty"`
	Class      string    `bson:"class" json:"class"`
	Confidence float64   `bson:"confidence" json:"confidence"`
	Timestamp  time.Time `bson:"timestamp" json:"timestamp"`
}

// DetectionLog persists detection records. Insert failures are the
// caller's to swallow: persistence is best-effort and must never fail a
// classification response.
type DetectionLog interface {
	Insert(ctx context.Context, rec DetectionRecord) error
}

type disabledLog struct{}

func (disabledLog) Insert(context.Context, DetectionRecord) error { return nil }

// Disabled returns a log whose inserts are no-ops, used for the whole
// process lifetime when the store is unreachable at startup.
func Disabled() DetectionLog {
	return disabledLog{}
}

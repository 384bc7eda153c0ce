package storage

import (
	"context"
	"testing"
	"time"
)

func TestDisabledInsertIsNoop(t *testing.T) {
	log := Disabled()
	rec := DetectionRecord{Class: "uniform", Confidence: 0.97, Timestamp: time.Now().UTC()}
	for i := 0; i < 3; i++ {
		if err := log.Insert(context.Background(), rec); err != nil {
			t.Fatalf("disabled log must never return an error, got %v", err)
		}
	}
}

func TestConnectWithBadURIDegradesToDisabled(t *testing.T) {
	log := Connect(context.Background(), "not-a-mongo-uri", "db", "col")
	if err := log.Insert(context.Background(), DetectionRecord{Class: "uniform"}); err != nil {
		t.Fatalf("degraded log must swallow inserts, got %v", err)
	}
}

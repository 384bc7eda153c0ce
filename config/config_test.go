package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MONGO_URI", "")
	t.Setenv("MONGO_DB_NAME", "")
	t.Setenv("MONGO_COLLECTION", "")
	t.Setenv("PORT", "")

	c := load()
	if c.MongoURI != "mongodb://localhost:27017/" {
		t.Fatalf("expected default mongo uri, got %q", c.MongoURI)
	}
	if c.MongoDB != "college_safety" {
		t.Fatalf("expected default database college_safety, got %q", c.MongoDB)
	}
	if c.MongoCollection != "detections" {
		t.Fatalf("expected default collection detections, got %q", c.MongoCollection)
	}
	if c.Port != "5000" {
		t.Fatalf("expected default port 5000, got %q", c.Port)
	}
	if c.PoolSize != 1 {
		t.Fatalf("expected default pool size 1, got %d", c.PoolSize)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://mongo.internal:27017/")
	t.Setenv("MONGO_DB_NAME", "campus")
	t.Setenv("MONGO_COLLECTION", "sightings")
	t.Setenv("PORT", "8080")

	c := load()
	if c.MongoURI != "mongodb://mongo.internal:27017/" {
		t.Fatalf("expected mongo uri override, got %q", c.MongoURI)
	}
	if c.MongoDB != "campus" {
		t.Fatalf("expected database override, got %q", c.MongoDB)
	}
	if c.MongoCollection != "sightings" {
		t.Fatalf("expected collection override, got %q", c.MongoCollection)
	}
	if c.Port != "8080" {
		t.Fatalf("expected port override, got %q", c.Port)
	}
}

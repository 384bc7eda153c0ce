package config

import (
	"os"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	LogLevel string `toml:"log_level"`
	Libonnx  string `toml:"libonnx"`

	// Number of pooled inference sessions. Each session owns its own
	// input/output tensors, so concurrent requests never share one.
	PoolSize int `toml:"pool_size"`

	ModelDir        string `toml:"model_dir"`
	ModelFileName   string `toml:"model_file_name"`
	ModelMetaName   string `toml:"model_meta_name"`
	ModelLabelsName string `toml:"model_labels_name"`

	MongoURI        string `toml:"mongo_uri"`
	MongoDB         string `toml:"mongo_db"`
	MongoCollection string `toml:"mongo_collection"`
}

var (
	cfg      Config
	loadOnce sync.Once
)

// C returns the process configuration: defaults, then config.toml if
// present, then environment overrides. Loaded once per process.
func C() Config {
	loadOnce.Do(func() {
		cfg = load()
	})
	return cfg
}

func load() Config {
	c := Config{
		Host:            "0.0.0.0",
		Port:            "5000",
		LogLevel:        "info",
		PoolSize:        1,
		ModelDir:        "models",
		ModelFileName:   "model.onnx",
		ModelMetaName:   "model.json",
		ModelLabelsName: "labels.txt",
		MongoURI:        "mongodb://localhost:27017/",
		MongoDB:         "college_safety",
		MongoCollection: "detections",
	}

	if _, err := os.Stat("config.toml"); err == nil {
		data, err := os.ReadFile("config.toml")
		if err != nil {
			panic(err)
		}
		if err := toml.Unmarshal(data, &c); err != nil {
			panic(err)
		}
	}

	overrideEnv(&c.Host, "HOST")
	overrideEnv(&c.Port, "PORT")
	overrideEnv(&c.LogLevel, "LOG_LEVEL")
	overrideEnv(&c.Libonnx, "ONNXRUNTIME_LIB")
	overrideEnv(&c.MongoURI, "MONGO_URI")
	overrideEnv(&c.MongoDB, "MONGO_DB_NAME")
	overrideEnv(&c.MongoCollection, "MONGO_COLLECTION")

	return c
}

func overrideEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

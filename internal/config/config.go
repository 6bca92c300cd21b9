package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kikitori/kikitori-backend/internal/platform/envutil"
)

type ServerConfig struct {
	Port        int      `yaml:"port"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// StorageConfig describes the audio artifact bucket and its write-side
// policy. The bucket itself is publicly readable; only the service
// identity writes to it.
type StorageConfig struct {
	AudioBucket         string   `yaml:"audio_bucket"`
	MaxObjectBytes      int64    `yaml:"max_object_bytes"`
	AllowedContentTypes []string `yaml:"allowed_content_types"`
}

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8080,
			CORSOrigins: []string{
				"http://localhost:3000",
				"http://localhost:5174",
			},
		},
		Storage: StorageConfig{
			AudioBucket:    "kikitori-audio",
			MaxObjectBytes: 50 << 20,
			AllowedContentTypes: []string{
				"audio/mpeg",
				"audio/mp4",
				"audio/wav",
				"audio/ogg",
				"audio/aac",
				"application/octet-stream",
			},
		},
	}
}

// Load reads the YAML config at path (optional) and applies env
// overrides on top. A missing path just yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.Server.Port = envutil.Int("SERVER_PORT", cfg.Server.Port)
	cfg.Storage.AudioBucket = envutil.String("AUDIO_GCS_BUCKET_NAME", cfg.Storage.AudioBucket)

	if cfg.Storage.MaxObjectBytes <= 0 {
		return nil, fmt.Errorf("storage.max_object_bytes must be positive")
	}
	if len(cfg.Storage.AllowedContentTypes) == 0 {
		return nil, fmt.Errorf("storage.allowed_content_types must not be empty")
	}
	return cfg, nil
}

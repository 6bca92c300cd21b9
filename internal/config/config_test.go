package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Fatalf("default port = %d", cfg.Server.Port)
	}
	if cfg.Storage.MaxObjectBytes != 50<<20 {
		t.Fatalf("default max object bytes = %d", cfg.Storage.MaxObjectBytes)
	}
	if len(cfg.Storage.AllowedContentTypes) == 0 {
		t.Fatalf("default content types empty")
	}
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := `
server:
  port: 9090
storage:
  audio_bucket: test-audio
  max_object_bytes: 1048576
  allowed_content_types: ["audio/mpeg"]
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("SERVER_PORT", "7070")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Fatalf("env override lost: port = %d", cfg.Server.Port)
	}
	if cfg.Storage.AudioBucket != "test-audio" {
		t.Fatalf("bucket = %q", cfg.Storage.AudioBucket)
	}
	if cfg.Storage.MaxObjectBytes != 1<<20 {
		t.Fatalf("max bytes = %d", cfg.Storage.MaxObjectBytes)
	}
}

func TestLoadRejectsBadPolicy(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := `
storage:
  max_object_bytes: -1
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("negative max_object_bytes should fail")
	}
}

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"edura/internal/platform/config"
)

func noEnv(string) (string, bool) { return "", false }

func TestDefaults(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cfg, err := config.New(config.Options{DataDir: dir, DotEnvPath: filepath.Join(dir, "missing.env"), LookupEnv: noEnv})
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.APIURL != config.DefaultAPIURL || cfg.AppName != "Edura" || cfg.AppVersion != "1.0.0" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Storage != config.StorageSQLite || cfg.RequestTimeout != config.DefaultRequestTimeout {
		t.Fatalf("unexpected storage defaults: %+v", cfg)
	}
	if cfg.DBPath != filepath.Join(dir, "edura.db") || cfg.SessionPath != filepath.Join(dir, "session.json") {
		t.Fatalf("unexpected derived paths: %+v", cfg)
	}
}

func TestLayeringFileDotEnvAndEnv(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	yaml := "api_url: https://file.example/api\napp_name: FromFile\nstorage: file\nrequest_timeout: 3s\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	dotEnv := filepath.Join(dir, ".env")
	if err := os.WriteFile(dotEnv, []byte("EDURA_APP_NAME=FromDotEnv\nEDURA_APP_VERSION=2.0.0\n"), 0o644); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}
	env := map[string]string{"EDURA_APP_VERSION": "3.1.0", "EDURA_LOG_LEVEL": "debug"}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	cfg, err := config.New(config.Options{DataDir: dir, DotEnvPath: dotEnv, LookupEnv: lookup})
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.APIURL != "https://file.example/api" {
		t.Fatalf("expected api url from file, got %s", cfg.APIURL)
	}
	if cfg.AppName != "FromDotEnv" {
		t.Fatalf("expected app name from .env, got %s", cfg.AppName)
	}
	if cfg.AppVersion != "3.1.0" || cfg.LogLevel != "debug" {
		t.Fatalf("expected env overrides, got %+v", cfg)
	}
	if cfg.Storage != config.StorageFile || cfg.RequestTimeout != 3*time.Second {
		t.Fatalf("expected file storage and 3s timeout, got %+v", cfg)
	}
	if got := cfg.WithAPIURL(" http://flag.example/api ").APIURL; got != "http://flag.example/api" {
		t.Fatalf("flag override not applied: %s", got)
	}
}

func TestRejectsInvalidValues(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	bad := func(key, val string) config.Options {
		return config.Options{DataDir: dir, DotEnvPath: filepath.Join(dir, "none"), LookupEnv: func(k string) (string, bool) {
			if k == key {
				return val, true
			}
			return "", false
		}}
	}
	if _, err := config.New(bad("EDURA_STORAGE", "redis")); err == nil {
		t.Fatalf("unknown storage should fail")
	}
	if _, err := config.New(bad("EDURA_REQUEST_TIMEOUT", "soon")); err == nil {
		t.Fatalf("bad timeout should fail")
	}
	if _, err := config.New(bad("EDURA_API_URL", "ftp://x")); err == nil {
		t.Fatalf("non-http api url should fail")
	}
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAPIURL         = "http://localhost:5000/api"
	DefaultAppName        = "Edura"
	DefaultAppVersion     = "1.0.0"
	DefaultLogLevel       = "info"
	DefaultRequestTimeout = 15 * time.Second

	StorageSQLite = "sqlite"
	StorageFile   = "file"
)

type Config struct {
	DataDir        string
	APIURL         string
	AppName        string
	AppVersion     string
	LogLevel       string
	Storage        string
	RequestTimeout time.Duration

	DBPath      string
	SessionPath string
	LogPath     string
}

// Options control where configuration is read from. Zero values mean: the
// user config dir, `.env` in the working directory and the process environment.
type Options struct {
	DataDir    string
	DotEnvPath string
	LookupEnv  func(string) (string, bool)
}

type fileConfig struct {
	APIURL         string `yaml:"api_url"`
	AppName        string `yaml:"app_name"`
	AppVersion     string `yaml:"app_version"`
	LogLevel       string `yaml:"log_level"`
	Storage        string `yaml:"storage"`
	RequestTimeout string `yaml:"request_timeout"`
}

// New resolves configuration in order: defaults, <data-dir>/config.yaml,
// .env file, process environment.
func New(opts Options) (Config, error) {
	dataDir := opts.DataDir
	if dataDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve config dir: %w", err)
		}
		dataDir = filepath.Join(base, "edura")
	}

	cfg := Config{
		DataDir:        dataDir,
		APIURL:         DefaultAPIURL,
		AppName:        DefaultAppName,
		AppVersion:     DefaultAppVersion,
		LogLevel:       DefaultLogLevel,
		Storage:        StorageSQLite,
		RequestTimeout: DefaultRequestTimeout,
	}

	if err := cfg.applyFile(filepath.Join(dataDir, "config.yaml")); err != nil {
		return Config{}, err
	}

	dotEnvPath := opts.DotEnvPath
	if dotEnvPath == "" {
		dotEnvPath = ".env"
	}
	dotEnv, err := readDotEnv(dotEnvPath)
	if err != nil {
		return Config{}, err
	}
	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	getenv := func(key string) string {
		if val, ok := lookup(key); ok && val != "" {
			return val
		}
		return dotEnv[key]
	}
	if err := cfg.applyEnv(getenv); err != nil {
		return Config{}, err
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	cfg.DBPath = filepath.Join(dataDir, "edura.db")
	cfg.SessionPath = filepath.Join(dataDir, "session.json")
	cfg.LogPath = filepath.Join(dataDir, "edura.log")
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}
	fc := fileConfig{}
	if err := yaml.Unmarshal(payload, &fc); err != nil {
		return fmt.Errorf("decode config file: %w", err)
	}
	set(&c.APIURL, fc.APIURL)
	set(&c.AppName, fc.AppName)
	set(&c.AppVersion, fc.AppVersion)
	set(&c.LogLevel, fc.LogLevel)
	set(&c.Storage, fc.Storage)
	if fc.RequestTimeout != "" {
		d, err := time.ParseDuration(fc.RequestTimeout)
		if err != nil {
			return fmt.Errorf("config request_timeout: %w", err)
		}
		c.RequestTimeout = d
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	set(&c.APIURL, getenv("EDURA_API_URL"))
	set(&c.AppName, getenv("EDURA_APP_NAME"))
	set(&c.AppVersion, getenv("EDURA_APP_VERSION"))
	set(&c.LogLevel, getenv("EDURA_LOG_LEVEL"))
	set(&c.Storage, getenv("EDURA_STORAGE"))
	if raw := getenv("EDURA_REQUEST_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("EDURA_REQUEST_TIMEOUT: %w", err)
		}
		c.RequestTimeout = d
	}
	return nil
}

// WithAPIURL overrides the API base URL, e.g. from a CLI flag.
func (c Config) WithAPIURL(raw string) Config {
	if strings.TrimSpace(raw) != "" {
		c.APIURL = strings.TrimSpace(raw)
	}
	return c
}

func (c Config) validate() error {
	switch c.Storage {
	case StorageSQLite, StorageFile:
	default:
		return fmt.Errorf("unknown storage %q (want %s|%s)", c.Storage, StorageSQLite, StorageFile)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive")
	}
	if !strings.HasPrefix(c.APIURL, "http://") && !strings.HasPrefix(c.APIURL, "https://") {
		return fmt.Errorf("api url must be http(s): %q", c.APIURL)
	}
	return nil
}

func readDotEnv(path string) (map[string]string, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return values, nil
}

func set(dst *string, val string) {
	if v := strings.TrimSpace(val); v != "" {
		*dst = v
	}
}

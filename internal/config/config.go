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
	defaultDataRelDir = ".chatguard"
	configFileName    = "config.yaml"
)

type APIConfig struct {
	BaseURL      string        `yaml:"base_url"`
	Timeout      time.Duration `yaml:"timeout"`
	ImageTimeout time.Duration `yaml:"image_timeout"`
	TextTimeout  time.Duration `yaml:"text_timeout"`
}

type StorageConfig struct {
	Dir string `yaml:"dir"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type Config struct {
	API     APIConfig     `yaml:"api"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	// Language overrides the persisted preference for this run when set.
	Language string `yaml:"language"`
}

// Load reads an optional .env file, the YAML config, then applies env
// overrides. An empty configPath means ~/.chatguard/config.yaml; a missing
// file is not an error.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}

	if configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		configPath = filepath.Join(home, defaultDataRelDir, configFileName)
	}

	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read config: %w", err)
	}

	applyEnvOverrides(cfg)
	cfg.SetDefaults()
	return cfg, nil
}

func (c *Config) SetDefaults() {
	if c.API.BaseURL == "" {
		c.API.BaseURL = "http://127.0.0.1:8000"
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = 180 * time.Second
	}
	if c.API.ImageTimeout == 0 {
		c.API.ImageTimeout = 120 * time.Second
	}
	if c.API.TextTimeout == 0 {
		c.API.TextTimeout = 10 * time.Second
	}
	if c.Storage.Dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			c.Storage.Dir = filepath.Join(home, defaultDataRelDir)
		} else {
			c.Storage.Dir = defaultDataRelDir
		}
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return errors.New("api.base_url cannot be empty")
	}
	if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		return fmt.Errorf("api.base_url must be an http(s) URL, got %q", c.API.BaseURL)
	}
	if c.API.Timeout <= 0 || c.API.ImageTimeout <= 0 || c.API.TextTimeout <= 0 {
		return errors.New("api timeouts must be positive")
	}
	if c.Language != "" && c.Language != "id" && c.Language != "en" {
		return fmt.Errorf("language must be id or en, got %q", c.Language)
	}
	return nil
}

func applyEnvOverrides(c *Config) {
	setString(&c.API.BaseURL, "CHATGUARD_API_URL")
	setDuration(&c.API.Timeout, "CHATGUARD_TIMEOUT")
	setString(&c.Storage.Dir, "CHATGUARD_DATA_DIR")
	setString(&c.Log.Level, "CHATGUARD_LOG_LEVEL")
	setString(&c.Language, "CHATGUARD_LANG")
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port       int           `yaml:"port"`
	APIBaseURL string        `yaml:"api_base_url"`
	// RenderWait bounds how long a page waits before showing the loading
	// state. The fetch dies with its request, so an upstream that is always
	// slower than this never settles; 0 waits for the fetch.
	RenderWait time.Duration `yaml:"render_wait"`
	LogLevel   string        `yaml:"log_level"`
	LogFormat  string        `yaml:"log_format"`
}

func defaults() *Config {
	return &Config{
		Port:       8080,
		APIBaseURL: "http://localhost:3000",
		LogLevel:   "info",
		LogFormat:  "json",
	}
}

// LoadConfig reads .env (if present), then the YAML file named by CONFIG_FILE,
// then the environment. Later sources win.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (cfg *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

func (cfg *Config) loadEnv() error {
	cfg.APIBaseURL = getEnv("API_BASE_URL", cfg.APIBaseURL)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("LOG_FORMAT", cfg.LogFormat)

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Port = port
	}

	if v := os.Getenv("RENDER_WAIT"); v != "" {
		wait, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid RENDER_WAIT %q: %w", v, err)
		}
		cfg.RenderWait = wait
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTPAddr          string        `yaml:"http_addr"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
	WSWriteTimeout    time.Duration `yaml:"ws_write_timeout"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// SeedDemo starts every new screen with the demo notes.
	SeedDemo bool `yaml:"seed_demo"`
}

func Defaults() Config {
	return Config{
		HTTPAddr:          ":8080",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   10 * time.Second,
		WSWriteTimeout:    10 * time.Second,
		LogLevel:          "info",
		LogFormat:         "json",
		SeedDemo:          true,
	}
}

// Load reads the environment on top of the defaults.
func Load() Config {
	return fromEnv(Defaults())
}

// LoadFile reads a YAML file on top of the defaults, then the environment on
// top of that. An empty path is the same as Load.
func LoadFile(path string) (Config, error) {
	cfg := Defaults()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	return fromEnv(cfg), nil
}

func fromEnv(def Config) Config {
	return Config{
		HTTPAddr:          getenv("HTTP_ADDR", def.HTTPAddr),
		ReadHeaderTimeout: getenvDuration("HTTP_READ_HEADER_TIMEOUT", def.ReadHeaderTimeout),
		ShutdownTimeout:   getenvDuration("SHUTDOWN_TIMEOUT", def.ShutdownTimeout),
		WSWriteTimeout:    getenvDuration("WS_WRITE_TIMEOUT", def.WSWriteTimeout),
		LogLevel:          getenv("LOG_LEVEL", def.LogLevel),
		LogFormat:         getenv("LOG_FORMAT", def.LogFormat),
		SeedDemo:          getenvBool("SEED_DEMO", def.SeedDemo),
	}
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getenvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getenvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

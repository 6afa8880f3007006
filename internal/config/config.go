package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config defines configuration for the goesmirror CLI.
type Config struct {
	MirrorDir  string   `yaml:"mirror_dir"`
	Products   []string `yaml:"products"`
	Satellites []string `yaml:"satellites"`
	Workers    int      `yaml:"workers"`
	S3         S3Config `yaml:"s3"`
}

// S3Config defines archive endpoint settings.
type S3Config struct {
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	Anonymous bool   `yaml:"anonymous"`
}

// Default returns a Config with sensible defaults: GOES-16, eight
// workers per hour partition, anonymous access to the public buckets.
func Default() Config {
	return Config{
		Satellites: []string{"16"},
		Workers:    8,
		S3: S3Config{
			Region:    "us-east-1",
			Anonymous: true,
		},
	}
}

// LoadFromFile loads configuration from a YAML file on top of the
// defaults.
func LoadFromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config file: %w", err)
	}

	if cfg.Workers <= 0 {
		return Config{}, fmt.Errorf("config: workers must be positive, got %d", cfg.Workers)
	}
	return cfg, nil
}

// LoadFromEnv overlays configuration from environment variables with the
// GOESMIRROR_ prefix. A .env file in the working directory is read first
// if present.
func (c *Config) LoadFromEnv() error {
	// Missing .env is the normal case.
	_ = godotenv.Load()

	if v := os.Getenv("GOESMIRROR_DIR"); v != "" {
		c.MirrorDir = v
	}
	if v := os.Getenv("GOESMIRROR_PRODUCTS"); v != "" {
		c.Products = splitList(v)
	}
	if v := os.Getenv("GOESMIRROR_SATELLITES"); v != "" {
		c.Satellites = splitList(v)
	}
	if v := os.Getenv("GOESMIRROR_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("config: invalid GOESMIRROR_WORKERS %q", v)
		}
		c.Workers = n
	}
	if v := os.Getenv("GOESMIRROR_S3_REGION"); v != "" {
		c.S3.Region = v
	}
	if v := os.Getenv("GOESMIRROR_S3_ENDPOINT"); v != "" {
		c.S3.Endpoint = v
	}
	if v := os.Getenv("GOESMIRROR_S3_ANONYMOUS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: invalid GOESMIRROR_S3_ANONYMOUS %q", v)
		}
		c.S3.Anonymous = b
	}
	return nil
}

// splitList splits a comma-separated list, trimming whitespace and
// dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

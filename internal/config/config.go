package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// Date is the settlement date to report, YYYY-MM-DD.
	// Defaults to yesterday (UTC): the most recent fully settled day.
	Date string `yaml:"date"`

	// TopK is the number of periods shown in the ranking.
	TopK int `yaml:"top_k"`

	// ElexonBaseURL overrides the public API, mainly for tests.
	ElexonBaseURL string `yaml:"elexon_base_url"`

	// OutputDir is where report artifacts are written.
	OutputDir string `yaml:"output_dir"`

	// CompleteDay backfills clock-change periods filed under adjacent
	// settlement dates.
	CompleteDay bool `yaml:"complete_day"`

	Log LogConfig `yaml:"log"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console or json
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads, defaults, and validates a YAML config. A .env file in the
// working directory is applied to the environment first; ELEXON_BASE_URL
// and LOG_LEVEL env vars override the file.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and defaults config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	_ = godotenv.Load()

	var c Config
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(raw, &c); err != nil {
			return nil, err
		}
	}
	if v := os.Getenv("ELEXON_BASE_URL"); v != "" {
		c.ElexonBaseURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	c.applyDefaults()
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Date == "" {
		c.Date = time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")
	}
	if c.TopK == 0 {
		c.TopK = 5
	}
	if c.OutputDir == "" {
		c.OutputDir = "results"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if _, err := time.Parse("2006-01-02", c.Date); err != nil {
		return fmt.Errorf("date must be YYYY-MM-DD: %w", err)
	}
	if c.TopK < 1 {
		return errors.New("top_k must be at least 1")
	}
	return nil
}

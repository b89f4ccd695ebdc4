// Package config loads run settings from YAML.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"careval/pkg/data"
	"careval/pkg/loader"
	"careval/pkg/render"
)

// ErrInvalid is returned by Validate for out-of-range settings.
var ErrInvalid = errors.New("config: invalid value")

// Config is the full run configuration. Fields absent from the file keep
// their Default value.
type Config struct {
	DatasetID int           `yaml:"dataset_id"`
	BaseURL   string        `yaml:"base_url"`
	OutputDir string        `yaml:"output_dir"`
	Timeout   time.Duration `yaml:"timeout"`
	RateLimit float64       `yaml:"rate_limit"`
	RateBurst int           `yaml:"rate_burst"`

	Render render.Config `yaml:"render"`
}

// Default is a single run over the car evaluation dataset writing the charts
// to ./plots.
func Default() Config {
	uci := data.DefaultUCIConfig()
	return Config{
		DatasetID: loader.DefaultDatasetID,
		BaseURL:   uci.BaseURL,
		OutputDir: "plots",
		Timeout:   uci.Timeout,
		RateLimit: uci.RateLimit,
		RateBurst: uci.RateBurst,
		Render:    render.DefaultConfig(),
	}
}

// Load reads path over the defaults. An empty path returns Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err = Decode(f)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads YAML from r over the defaults and validates the result.
// Unknown keys are an error.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks every field, including the render settings.
func (c Config) Validate() error {
	switch {
	case c.DatasetID <= 0:
		return fmt.Errorf("%w: dataset_id %d", ErrInvalid, c.DatasetID)
	case c.BaseURL == "":
		return fmt.Errorf("%w: base_url is empty", ErrInvalid)
	case c.OutputDir == "":
		return fmt.Errorf("%w: output_dir is empty", ErrInvalid)
	case c.Timeout <= 0:
		return fmt.Errorf("%w: timeout %s", ErrInvalid, c.Timeout)
	case c.RateLimit <= 0 || c.RateBurst <= 0:
		return fmt.Errorf("%w: rate %g burst %d", ErrInvalid, c.RateLimit, c.RateBurst)
	}
	return c.Render.Validate()
}

// UCI returns the repository client settings.
func (c Config) UCI() data.UCIConfig {
	return data.UCIConfig{
		BaseURL:   c.BaseURL,
		Timeout:   c.Timeout,
		RateLimit: c.RateLimit,
		RateBurst: c.RateBurst,
	}
}

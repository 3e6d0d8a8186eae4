package utils

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/pkg/errors"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the configuration for the game
type Config struct {
	Width               int           `json:"width"`
	Height              int           `json:"height"`
	TickInterval        time.Duration `json:"tick_interval"`
	Workers             int           `json:"workers"` // 0 means one per CPU
	MaxGenerations      int           `json:"max_generations"`
	StagnationThreshold int           `json:"stagnation_threshold"`
	// DrawableWidth and DrawableHeight bound the region a pointer may
	// select cells in; each cell spans DrawableWidth/Width by
	// DrawableHeight/Height.
	DrawableWidth  float64         `json:"drawable_width"`
	DrawableHeight float64         `json:"drawable_height"`
	Alive          []CellConfig    `json:"alive"`
	Patterns       []PatternConfig `json:"patterns"`
	// RandomDensity is the chance each cell starts alive, on top of Alive
	// and Patterns. Seed makes the fill reproducible; 0 seeds from the clock.
	RandomDensity float64 `json:"random_density"`
	Seed          int64   `json:"seed"`
	LogLevel      string  `json:"log_level"`
}

// CellConfig marks a single cell alive in the initial board.
type CellConfig struct {
	Row int `json:"row" hcl:"row"`
	Col int `json:"col" hcl:"col"`
}

// PatternConfig places a named pattern with its top-left corner at (Row, Col).
type PatternConfig struct {
	Name string `json:"name" hcl:"name,label"`
	Row  int    `json:"row" hcl:"row"`
	Col  int    `json:"col" hcl:"col"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Width:               60,
		Height:              30,
		TickInterval:        300 * time.Millisecond,
		Workers:             1,
		MaxGenerations:      1000,
		StagnationThreshold: 5,
		DrawableWidth:       800,
		DrawableHeight:      600,
		RandomDensity:       0.15,
		LogLevel:            "info",
	}
}

// Validate rejects configurations the engine cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return errors.Wrapf(ErrInvalidConfig, "grid must be at least 1x1, got %dx%d", c.Width, c.Height)
	case c.Workers < 0:
		return errors.Wrapf(ErrInvalidConfig, "workers must not be negative, got %d", c.Workers)
	case c.TickInterval <= 0:
		return errors.Wrapf(ErrInvalidConfig, "tick interval must be positive, got %s", c.TickInterval)
	case c.DrawableWidth <= 0 || c.DrawableHeight <= 0:
		return errors.Wrapf(ErrInvalidConfig, "drawable region must be positive, got %gx%g", c.DrawableWidth, c.DrawableHeight)
	case c.MaxGenerations < 0 || c.StagnationThreshold < 0:
		return errors.Wrap(ErrInvalidConfig, "generation limits must not be negative")
	case c.RandomDensity < 0 || c.RandomDensity > 1:
		return errors.Wrapf(ErrInvalidConfig, "random density must be within [0, 1], got %g", c.RandomDensity)
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}
	return nil
}

// LoadConfig loads configuration from a JSON or HCL file, chosen by
// extension. Fields the file leaves out keep their defaults.
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	var err error
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".hcl":
		config, err = loadHCLConfig(filename, config)
	default:
		config, err = loadJSONConfig(filename, config)
	}
	if err != nil {
		return config, err
	}

	if err = config.Validate(); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] %+v", filename)
	}
	return config, nil
}

func loadJSONConfig(filename string, config Config) (Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

// hclConfigFile mirrors Config for HCL files. Durations are written as
// strings such as "300ms".
type hclConfigFile struct {
	Width               *int            `hcl:"width,optional"`
	Height              *int            `hcl:"height,optional"`
	TickInterval        *string         `hcl:"tick_interval,optional"`
	Workers             *int            `hcl:"workers,optional"`
	MaxGenerations      *int            `hcl:"max_generations,optional"`
	StagnationThreshold *int            `hcl:"stagnation_threshold,optional"`
	DrawableWidth       *float64        `hcl:"drawable_width,optional"`
	DrawableHeight      *float64        `hcl:"drawable_height,optional"`
	RandomDensity       *float64        `hcl:"random_density,optional"`
	Seed                *int64          `hcl:"seed,optional"`
	LogLevel            *string         `hcl:"log_level,optional"`
	Alive               []CellConfig    `hcl:"alive,block"`
	Patterns            []PatternConfig `hcl:"pattern,block"`
}

func loadHCLConfig(filename string, config Config) (Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return config, errors.Wrapf(diags, "[LoadConfig] failed to parse file: %+v", filename)
	}

	var parsed hclConfigFile
	if diags = gohcl.DecodeBody(file.Body, nil, &parsed); diags.HasErrors() {
		return config, errors.Wrapf(diags, "[LoadConfig] failed to decode file: %+v", filename)
	}

	setIfPresent(&config.Width, parsed.Width)
	setIfPresent(&config.Height, parsed.Height)
	setIfPresent(&config.Workers, parsed.Workers)
	setIfPresent(&config.MaxGenerations, parsed.MaxGenerations)
	setIfPresent(&config.StagnationThreshold, parsed.StagnationThreshold)
	setIfPresent(&config.DrawableWidth, parsed.DrawableWidth)
	setIfPresent(&config.DrawableHeight, parsed.DrawableHeight)
	setIfPresent(&config.RandomDensity, parsed.RandomDensity)
	setIfPresent(&config.Seed, parsed.Seed)
	setIfPresent(&config.LogLevel, parsed.LogLevel)
	if parsed.TickInterval != nil {
		interval, err := time.ParseDuration(*parsed.TickInterval)
		if err != nil {
			return config, errors.Wrapf(err, "[LoadConfig] invalid tick_interval in file: %+v", filename)
		}
		config.TickInterval = interval
	}
	if len(parsed.Alive) > 0 {
		config.Alive = parsed.Alive
	}
	if len(parsed.Patterns) > 0 {
		config.Patterns = parsed.Patterns
	}

	return config, nil
}

func setIfPresent[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

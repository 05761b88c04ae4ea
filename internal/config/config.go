package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gorewood/shuffle/internal/format"
	"github.com/gorewood/shuffle/internal/measure"
	"github.com/gorewood/shuffle/internal/transform"
)

// Config holds the transformation defaults. Command-line flags override it.
type Config struct {
	Format          string  `yaml:"format" json:"format"`
	PreserveMargins bool    `yaml:"preserve_margins" json:"preserveMargins"`
	Width           float64 `yaml:"width" json:"width"`
	FontSize        float64 `yaml:"font_size" json:"fontSize"`
	Padding         float64 `yaml:"padding" json:"padding"`
	Compact         bool    `yaml:"compact" json:"compact"`
	Measure         string  `yaml:"measure" json:"measure"`
	Advance         float64 `yaml:"advance" json:"advance"`
	Font            string  `yaml:"font" json:"font,omitempty"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Format:   string(format.Markdown),
		FontSize: transform.DefaultFontSize,
		Measure:  string(measure.KindMonospace),
		Advance:  measure.DefaultAdvance,
	}
}

// Load reads a YAML config file over Defaults. A missing file is not an
// error. An empty path uses Path().
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path == "" {
		path = Path()
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Defaults(), fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Defaults(), fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from SHUFFLE_* environment variables.
func (c *Config) ApplyEnv() error {
	strs := []struct {
		key string
		dst *string
	}{
		{"SHUFFLE_FORMAT", &c.Format},
		{"SHUFFLE_MEASURE", &c.Measure},
		{"SHUFFLE_FONT", &c.Font},
	}
	for _, s := range strs {
		if v, ok := os.LookupEnv(s.key); ok && v != "" {
			*s.dst = v
		}
	}

	bools := []struct {
		key string
		dst *bool
	}{
		{"SHUFFLE_PRESERVE_MARGINS", &c.PreserveMargins},
		{"SHUFFLE_COMPACT", &c.Compact},
	}
	for _, b := range bools {
		v, ok := os.LookupEnv(b.key)
		if !ok || v == "" {
			continue
		}
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", b.key, err)
		}
		*b.dst = parsed
	}

	floats := []struct {
		key string
		dst *float64
	}{
		{"SHUFFLE_WIDTH", &c.Width},
		{"SHUFFLE_FONT_SIZE", &c.FontSize},
		{"SHUFFLE_PADDING", &c.Padding},
		{"SHUFFLE_ADVANCE", &c.Advance},
	}
	for _, f := range floats {
		v, ok := os.LookupEnv(f.key)
		if !ok || v == "" {
			continue
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("%s: %w", f.key, err)
		}
		*f.dst = parsed
	}

	return c.Validate()
}

// Validate rejects unknown formats, unknown measurers and negative sizes.
func (c Config) Validate() error {
	if _, ok := format.ParseKind(c.Format); !ok {
		return fmt.Errorf("unknown format %q", c.Format)
	}
	if _, ok := measure.ParseKind(c.Measure); !ok {
		return fmt.Errorf("unknown measure %q", c.Measure)
	}

	sizes := map[string]float64{
		"width":     c.Width,
		"font_size": c.FontSize,
		"padding":   c.Padding,
		"advance":   c.Advance,
	}
	for _, name := range []string{"width", "font_size", "padding", "advance"} {
		v := sizes[name]
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s must be a non-negative number (got %v)", name, v)
		}
	}
	return nil
}

// FormatKind returns the configured format resolved through its aliases.
func (c Config) FormatKind() format.Kind {
	kind, _ := format.ParseKind(c.Format)
	return kind
}

// Measurer builds the configured measurer.
func (c Config) Measurer() (measure.Measurer, error) {
	return measure.New(measure.Kind(c.Measure), measure.Options{
		Advance: c.Advance,
		Font:    c.Font,
		Cache:   true,
	})
}

// Request returns a transform.Request carrying the configured defaults.
func (c Config) Request() (transform.Request, error) {
	m, err := c.Measurer()
	if err != nil {
		return transform.Request{}, err
	}
	return transform.Request{
		Format:          c.FormatKind(),
		PreserveMargins: c.PreserveMargins,
		Compact:         c.Compact,
		RenderWidth:     c.Width,
		Padding:         c.Padding,
		FontSize:        c.FontSize,
		Measurer:        m,
	}, nil
}

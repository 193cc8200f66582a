// Package config loads quill's layered configuration: built-in defaults, an
// optional TOML file and QUILL_ environment variables, later layers winning.
//
// Environment variables use a double underscore for nesting, so
// QUILL_STYLE__BODY_SIZE=12 sets style.body_size.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"

	"github.com/tsawler/quill/model"
	"github.com/tsawler/quill/report"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "QUILL_"

// FileName is the config file looked up in the XDG config directories.
const FileName = "quill/config.toml"

// ErrInvalidConfig is returned when a loaded configuration cannot be used.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the effective configuration.
type Config struct {
	// Output is the path the report is written to.
	Output string `koanf:"output" toml:"output"`
	// Content is an optional YAML file replacing the built-in report text.
	Content string `koanf:"content" toml:"content"`
	Style   Style  `koanf:"style" toml:"style"`

	// File is the config file that was loaded, if any.
	File string `koanf:"-" toml:"-"`
}

// Style mirrors model.StyleConfig with the margin in centimeters.
type Style struct {
	FontFamily   string  `koanf:"font_family" toml:"font_family"`
	HeadingSize  float64 `koanf:"heading_size" toml:"heading_size"`
	SubtitleSize float64 `koanf:"subtitle_size" toml:"subtitle_size"`
	BodySize     float64 `koanf:"body_size" toml:"body_size"`
	LineSpacing  float64 `koanf:"line_spacing" toml:"line_spacing"`
	MarginCm     float64 `koanf:"margin_cm" toml:"margin_cm"`
	TableStyle   string  `koanf:"table_style" toml:"table_style"`
}

// Defaults returns the built-in configuration as a flat koanf map.
func Defaults() map[string]interface{} {
	s := model.DefaultStyle()
	return map[string]interface{}{
		"output":              report.OutputFile,
		"content":             "",
		"style.font_family":   s.FontFamily,
		"style.heading_size":  s.HeadingSize,
		"style.subtitle_size": s.SubtitleSize,
		"style.body_size":     s.BodySize,
		"style.line_spacing":  s.LineSpacing,
		"style.margin_cm":     s.Margin.Centimeters(),
		"style.table_style":   s.TableStyle,
	}
}

// Load builds the configuration. When path is empty the first
// quill/config.toml found in the XDG config directories is used, if any; an
// explicit path must exist.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	if path == "" {
		path = discover()
	} else if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
	}

	// 3. Environment
	err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	cfg.File = path

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps QUILL_STYLE__BODY_SIZE to style.body_size.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

func discover() string {
	path, err := xdg.SearchConfigFile(FileName)
	if err != nil {
		return ""
	}
	return path
}

// Validate checks that the configuration can drive a build.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Output) == "" {
		return fmt.Errorf("%w: output is empty", ErrInvalidConfig)
	}
	if c.Style.MarginCm < 0 {
		return fmt.Errorf("%w: style.margin_cm %v must not be negative", ErrInvalidConfig, c.Style.MarginCm)
	}
	if err := c.StyleConfig().Validate(); err != nil {
		return fmt.Errorf("%w: style: %v", ErrInvalidConfig, err)
	}
	return nil
}

// StyleConfig converts the style section for use with quill.WithStyle.
func (c *Config) StyleConfig() model.StyleConfig {
	return model.StyleConfig{
		FontFamily:   c.Style.FontFamily,
		HeadingSize:  c.Style.HeadingSize,
		SubtitleSize: c.Style.SubtitleSize,
		BodySize:     c.Style.BodySize,
		LineSpacing:  c.Style.LineSpacing,
		Margin:       model.Cm(c.Style.MarginCm),
		TableStyle:   c.Style.TableStyle,
	}
}

// Encode writes the configuration as TOML.
func (c *Config) Encode(w io.Writer) error {
	enc := gotoml.NewEncoder(w)
	return enc.Encode(c)
}

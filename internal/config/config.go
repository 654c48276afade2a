// Package config loads, validates, and persists YAML configuration for
// document generation.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/docfold/go-doc2pdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound    = errors.New("config file not found")
	ErrEmptyConfigName   = errors.New("config name cannot be empty")
	ErrConfigParse       = errors.New("failed to parse config")
	ErrFieldTooLong      = errors.New("field exceeds maximum length")
	ErrInvalidDepthValue = errors.New("invalid anchor depth value")
)

// Field length limits for multi-tenant safety.
const (
	MaxDateLength       = 30   // "2025-12-31" or "December 31, 2025"
	MaxStatusLength     = 50   // "DRAFT", "FINAL", "v1.2.3"
	MaxTextLength       = 500  // Footer/free-form text
	MaxTOCTitleLength   = 100  // TOC title
	MaxLinkTextLength   = 100  // Anchor link label
	MaxCSSClassLength   = 64   // Single CSS class name
	MaxStylePathLength  = 2048 // CSS file path
	MaxLocaleTagLength  = 10   // "en", "pt-BR"
	MaxLogFileLength    = 2048 // Log file path
	MaxDepthValueLength = 4    // "none" or a single digit
)

// Config holds all configuration for document generation.
type Config struct {
	Input       InputConfig       `yaml:"input"`
	Output      OutputConfig      `yaml:"output"`
	CSS         CSSConfig         `yaml:"css"`
	Page        PageConfig        `yaml:"page"`
	Footer      FooterConfig      `yaml:"footer"`
	TOC         TOCConfig         `yaml:"toc"`
	AnchorLinks AnchorLinksConfig `yaml:"anchorLinks"`
	Locale      string            `yaml:"locale"` // translation locale for generated text
	Logging     LoggingConfig     `yaml:"logging"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
}

// CSSConfig defines CSS styling options.
type CSSConfig struct {
	Path string `yaml:"path"` // CSS file appended to the generated stylesheet
}

// PageConfig defines PDF page settings.
type PageConfig struct {
	Size        string  `yaml:"size"`        // "letter", "a4", "legal" (default: "letter")
	Orientation string  `yaml:"orientation"` // "portrait", "landscape" (default: "portrait")
	Margin      float64 `yaml:"margin"`      // inches (default: 0.5)
}

// FooterConfig defines page footer options.
type FooterConfig struct {
	Enabled        bool   `yaml:"enabled"`
	Position       string `yaml:"position"` // "left", "center", "right" (default: "right")
	ShowPageNumber bool   `yaml:"showPageNumber"`
	Date           string `yaml:"date"`
	Status         string `yaml:"status"`
	Text           string `yaml:"text"`
}

// TOCConfig defines table of contents options.
type TOCConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Title    string `yaml:"title"`    // Empty = localized default title
	MaxDepth int    `yaml:"maxDepth"` // 1-6, default 3
}

// AnchorLinksConfig defines back-to-contents anchor link options.
// Depth accepts "none", "" (default), or "2".."6".
type AnchorLinksConfig struct {
	Enabled        bool   `yaml:"enabled"`
	Depth          string `yaml:"depth"`
	Text           string `yaml:"text"`      // Empty = localized default label
	Alignment      string `yaml:"alignment"` // "left", "center", "right" (default: "right")
	ContainerClass string `yaml:"containerClass"`
	LinkClass      string `yaml:"linkClass"`
	TextClass      string `yaml:"textClass"`
}

// LoggingConfig defines CLI logging options.
type LoggingConfig struct {
	Level string `yaml:"level"` // "none", "normal", "debug" (default: "normal")
	File  string `yaml:"file"`  // Empty = console only
	Mode  string `yaml:"mode"`  // "append", "overwrite" (default: "append")
}

// DepthValue parses the configured anchor depth string.
// Returns 0 for "" (caller default), -1 for "none", or the numeric value 2-6.
func (a AnchorLinksConfig) DepthValue() (int, error) {
	switch a.Depth {
	case "":
		return 0, nil
	case "none":
		return -1, nil
	}
	n, err := strconv.Atoi(a.Depth)
	if err != nil || n < 2 || n > 6 {
		return 0, fmt.Errorf("%w: %q (must be none or 2-6)", ErrInvalidDepthValue, a.Depth)
	}
	return n, nil
}

// Validate checks field lengths and enum values.
// Called automatically by Load, but available for consumers who construct
// Config manually.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"css.path", c.CSS.Path, MaxStylePathLength},
		{"footer.date", c.Footer.Date, MaxDateLength},
		{"footer.status", c.Footer.Status, MaxStatusLength},
		{"footer.text", c.Footer.Text, MaxTextLength},
		{"toc.title", c.TOC.Title, MaxTOCTitleLength},
		{"anchorLinks.depth", c.AnchorLinks.Depth, MaxDepthValueLength},
		{"anchorLinks.text", c.AnchorLinks.Text, MaxLinkTextLength},
		{"anchorLinks.containerClass", c.AnchorLinks.ContainerClass, MaxCSSClassLength},
		{"anchorLinks.linkClass", c.AnchorLinks.LinkClass, MaxCSSClassLength},
		{"anchorLinks.textClass", c.AnchorLinks.TextClass, MaxCSSClassLength},
		{"locale", c.Locale, MaxLocaleTagLength},
		{"logging.file", c.Logging.File, MaxLogFileLength},
	}
	for _, f := range fields {
		if len(f.value) > f.max {
			return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, f.name, len(f.value), f.max)
		}
	}

	if err := validateEnum("footer.position", c.Footer.Position, "left", "center", "right"); err != nil {
		return err
	}
	if err := validateEnum("anchorLinks.alignment", c.AnchorLinks.Alignment, "left", "center", "right"); err != nil {
		return err
	}
	if err := validateEnum("logging.level", c.Logging.Level, "none", "normal", "debug"); err != nil {
		return err
	}
	if err := validateEnum("logging.mode", c.Logging.Mode, "append", "overwrite"); err != nil {
		return err
	}

	if _, err := c.AnchorLinks.DepthValue(); err != nil {
		return err
	}

	if c.TOC.Enabled && c.TOC.MaxDepth != 0 {
		if c.TOC.MaxDepth < 1 || c.TOC.MaxDepth > 6 {
			return fmt.Errorf("toc.maxDepth: must be between 1 and 6, got %d", c.TOC.MaxDepth)
		}
	}

	return nil
}

// validateEnum checks that value is empty or one of the allowed values.
func validateEnum(name, value string, allowed ...string) error {
	if value == "" {
		return nil
	}
	for _, a := range allowed {
		if strings.ToLower(value) == a {
			return nil
		}
	}
	return fmt.Errorf("%s: invalid value %q (must be %s)", name, value, strings.Join(allowed, ", "))
}

// Default returns a neutral configuration: anchor links and TOC enabled with
// default depths, everything else off.
func Default() *Config {
	return &Config{
		TOC:         TOCConfig{Enabled: true},
		AnchorLinks: AnchorLinksConfig{Enabled: true},
		Locale:      "en",
		Logging:     LoggingConfig{Level: "normal"},
	}
}

// Load loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func Load(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if strings.ContainsAny(nameOrPath, "/\\") {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to path as YAML, creating parent directories
// as needed. Used by `config init` to produce a starter config.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	data, err := yamlutil.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// SearchPaths returns the locations tried for a config name, in order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "go-doc2pdf", name+ext))
		}
	}
	return paths
}

// resolveConfigPath searches for a config file by name in standard locations:
// current directory first, then ~/.config/go-doc2pdf/.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

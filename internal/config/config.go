package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dgallion1/mdtoc/internal/toc"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// HTTP API
	Port           string
	APIKey         string
	MaxUploadBytes int64

	// Batch refresh
	WorkerCount int

	// TOC rendering
	ListMarker  string
	IndentUnit  int
	QuoteLines  bool
	StartMarker string
	TitleLine   string
	EndMarker   string
	MaxDepth    int
}

// Load reads the configuration from the environment. If MDTOC_CONFIG names a
// YAML file, it is applied before the environment.
func Load() (Config, error) {
	return LoadFrom(os.Getenv("MDTOC_CONFIG"))
}

// LoadFrom is Load with an explicit YAML file path; "" means no file.
func LoadFrom(path string) (Config, error) {
	cfg := Defaults()
	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return cfg, err
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	d := toc.DefaultConfig()
	return Config{
		Port:           "8090",
		MaxUploadBytes: 10 << 20, // 10MB
		WorkerCount:    4,

		ListMarker:  d.ListMarker,
		IndentUnit:  d.IndentUnit,
		QuoteLines:  d.QuoteLines,
		StartMarker: d.StartMarker,
		TitleLine:   d.TitleLine,
		EndMarker:   d.EndMarker,
		MaxDepth:    d.MaxDepth,
	}
}

func (c *Config) applyEnv() {
	c.Port = envOr("PORT", c.Port)
	c.APIKey = envOr("MDTOC_API_KEY", c.APIKey)
	c.MaxUploadBytes = envInt64("MAX_UPLOAD_BYTES", c.MaxUploadBytes)
	c.WorkerCount = envInt("WORKER_COUNT", c.WorkerCount)

	c.ListMarker = envOr("MDTOC_LIST_MARKER", c.ListMarker)
	c.IndentUnit = envInt("MDTOC_INDENT_UNIT", c.IndentUnit)
	c.QuoteLines = envBool("MDTOC_QUOTE_LINES", c.QuoteLines)
	c.MaxDepth = envInt("MDTOC_MAX_DEPTH", c.MaxDepth)

	// Markers may be set to "" to disable them.
	c.StartMarker = envSet("MDTOC_START_MARKER", c.StartMarker)
	c.TitleLine = envSet("MDTOC_TITLE_LINE", c.TitleLine)
	c.EndMarker = envSet("MDTOC_END_MARKER", c.EndMarker)

	if c.WorkerCount <= 0 {
		c.WorkerCount = 4
	}
	if c.MaxUploadBytes <= 0 {
		c.MaxUploadBytes = 10 << 20
	}
}

// fileConfig is the YAML schema. Pointers distinguish "absent" from "empty".
type fileConfig struct {
	Server struct {
		Port           string `yaml:"port"`
		MaxUploadBytes int64  `yaml:"maxUploadBytes"`
	} `yaml:"server"`

	Workers int `yaml:"workers"`

	TOC struct {
		ListMarker  *string `yaml:"listMarker"`
		IndentUnit  *int    `yaml:"indentUnit"`
		QuoteLines  *bool   `yaml:"quoteLines"`
		StartMarker *string `yaml:"startMarker"`
		TitleLine   *string `yaml:"titleLine"`
		EndMarker   *string `yaml:"endMarker"`
		MaxDepth    *int    `yaml:"maxDepth"`
	} `yaml:"toc"`
}

// LoadFile overlays the settings present in a YAML file.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	return c.ApplyYAML(data)
}

// ApplyYAML overlays the settings present in a YAML document.
func (c *Config) ApplyYAML(data []byte) error {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	if fc.Server.Port != "" {
		c.Port = fc.Server.Port
	}
	if fc.Server.MaxUploadBytes > 0 {
		c.MaxUploadBytes = fc.Server.MaxUploadBytes
	}
	if fc.Workers > 0 {
		c.WorkerCount = fc.Workers
	}

	t := fc.TOC
	setString(&c.ListMarker, t.ListMarker)
	setString(&c.StartMarker, t.StartMarker)
	setString(&c.TitleLine, t.TitleLine)
	setString(&c.EndMarker, t.EndMarker)
	if t.IndentUnit != nil {
		c.IndentUnit = *t.IndentUnit
	}
	if t.QuoteLines != nil {
		c.QuoteLines = *t.QuoteLines
	}
	if t.MaxDepth != nil {
		c.MaxDepth = *t.MaxDepth
	}
	return nil
}

func (c Config) Validate() error {
	if c.ListMarker == "" {
		return fmt.Errorf("list marker is required")
	}
	if c.IndentUnit < 0 {
		return fmt.Errorf("indent unit must be non-negative, got %d", c.IndentUnit)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max depth must be non-negative, got %d", c.MaxDepth)
	}
	if c.StartMarker == "" && c.TitleLine == "" {
		return fmt.Errorf("a start marker or a title line is required to find the toc again")
	}
	for name, v := range map[string]string{
		"list marker":  c.ListMarker,
		"start marker": c.StartMarker,
		"title line":   c.TitleLine,
		"end marker":   c.EndMarker,
	} {
		if strings.ContainsAny(v, "\r\n") {
			return fmt.Errorf("%s must be a single line", name)
		}
	}
	if c.EndMarker != "" && c.EndMarker == c.StartMarker {
		return fmt.Errorf("end marker must differ from start marker")
	}
	return nil
}

// Render returns the rendering options as passed to the toc package.
func (c Config) Render() toc.RenderConfig {
	return toc.RenderConfig{
		ListMarker:  c.ListMarker,
		IndentUnit:  c.IndentUnit,
		QuoteLines:  c.QuoteLines,
		StartMarker: c.StartMarker,
		TitleLine:   c.TitleLine,
		EndMarker:   c.EndMarker,
		MaxDepth:    c.MaxDepth,
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envSet(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/reportgen/reportgen/core"
	"github.com/reportgen/reportgen/models"
)

// DefaultPaths are searched in order when no config path is given.
var DefaultPaths = []string{
	"config.yaml",
	"config.json",
	filepath.Join("reportgen", "config.json"),
}

// Output formats understood by the report handler.
const (
	FormatText     = "text"
	FormatHTML     = "html"
	FormatCSV      = "csv"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"

	// Stdout is the output path that writes to standard output.
	Stdout = "-"
)

var formats = map[string]struct{}{
	FormatText:     {},
	FormatHTML:     {},
	FormatCSV:      {},
	FormatJSON:     {},
	FormatMarkdown: {},
}

var ErrNoConfig = errors.New("no config file found")

// Config describes one report run: where records come from and how they are rendered.
type Config struct {
	Title   string         `yaml:"title,omitempty"`
	Sources []SourceConfig `yaml:"sources"`
	Outputs []OutputConfig `yaml:"outputs,omitempty"`
	Columns []string       `yaml:"columns,omitempty"`
	Log     LogConfig      `yaml:"log,omitempty"`
}

type SourceConfig struct {
	ID          string            `yaml:"id,omitempty"`
	Name        string            `yaml:"name,omitempty"`
	Type        string            `yaml:"type"`
	Location    string            `yaml:"location"`
	DataKey     string            `yaml:"data_key,omitempty"`
	Query       string            `yaml:"query,omitempty"`
	Credentials map[string]string `yaml:"credentials,omitempty"`
}

type OutputConfig struct {
	Format string `yaml:"format"`
	Path   string `yaml:"path,omitempty"`
}

type LogConfig struct {
	Level string `yaml:"level,omitempty"`
	File  string `yaml:"file,omitempty"`
}

// Load reads, defaults and validates a config file. JSON files load too.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Find returns path if set, otherwise the first default path that exists.
func Find(path string) (string, error) {
	if path != "" {
		return path, nil
	}

	for _, p := range DefaultPaths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrNoConfig, strings.Join(DefaultPaths, ", "))
}

func (c *Config) applyDefaults() {
	if len(c.Outputs) == 0 {
		c.Outputs = []OutputConfig{
			{Format: FormatHTML, Path: Stdout},
			{Format: FormatText, Path: Stdout},
		}
	}

	for i := range c.Outputs {
		c.Outputs[i].Format = strings.ToLower(strings.TrimSpace(c.Outputs[i].Format))
		if c.Outputs[i].Path == "" {
			c.Outputs[i].Path = Stdout
		}
	}

	for i := range c.Sources {
		c.Sources[i].Type = strings.ToLower(strings.TrimSpace(c.Sources[i].Type))
	}
}

func (c *Config) Validate() error {
	ids := make(map[string]struct{})
	for i, s := range c.Sources {
		if s.Type == "" {
			return fmt.Errorf("sources[%d]: type is required", i)
		}

		id := s.sourceID()
		if id == "" {
			continue
		}
		if _, ok := ids[id]; ok {
			return fmt.Errorf("sources[%d]: duplicate source id %q", i, id)
		}
		ids[id] = struct{}{}
	}

	for i, o := range c.Outputs {
		if _, ok := formats[o.Format]; !ok {
			return fmt.Errorf("outputs[%d]: unknown format %q", i, o.Format)
		}
	}

	return nil
}

// sourceID falls back to the source name so provenance reads naturally.
func (s *SourceConfig) sourceID() string {
	if s.ID != "" {
		return s.ID
	}
	return s.Name
}

func (s *SourceConfig) Params() *core.SourceParams {
	return &core.SourceParams{
		ID:          core.SourceID(s.sourceID()),
		Name:        s.Name,
		Type:        s.Type,
		Location:    s.Location,
		DataKey:     s.DataKey,
		Query:       s.Query,
		Credentials: s.Credentials,
	}
}

// SourceParams converts the configured sources, skipping the ones whose type
// isn't supported with a warning.
func (c *Config) SourceParams(supported func(typ string) bool, logger models.Logger) []*core.SourceParams {
	params := make([]*core.SourceParams, 0, len(c.Sources))
	for _, s := range c.Sources {
		if !supported(s.Type) {
			logger.Warnf("unknown source type %q for %q, skipping", s.Type, s.Location)
			continue
		}
		params = append(params, s.Params())
	}
	return params
}

// FormatterOptions returns the rendering options shared by all outputs.
func (c *Config) FormatterOptions() *core.FormatterOptions {
	return &core.FormatterOptions{
		Columns: c.Columns,
		Title:   c.Title,
	}
}

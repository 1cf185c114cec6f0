package dump

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/Carmen-Shannon/oxy-gltf/engine/loader"
	"github.com/pelletier/go-toml/v2"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Sections are the summary sections in print order.
var Sections = []string{
	"scenes", "nodes", "meshes", "materials", "textures", "images", "samplers",
	"animations", "skins", "buffers", "bufferViews", "accessors",
}

// Config holds all configuration options for a dump run
type Config struct {
	// Log level: debug, info, warn or error
	LogLevel string `toml:"log_level"`
	// Bytes fed to the parser per call by the scanner backend
	ChunkSize int `toml:"chunk_size"`
	// Fail on enumerated values that match no keyword
	StrictKeywords bool `toml:"strict_keywords"`
	// Number of files parsed at once; zero picks a default from the CPU count
	Workers int `toml:"workers"`
	// Keep running and re-print files when they change
	Watch bool `toml:"watch"`
	// Summary sections to print
	// If empty, every section is printed
	Sections []string `toml:"sections"`
	// Feeding strategy: "scanner" or "whole"
	Backend string `toml:"backend"`
	// Log parse throughput and memory statistics
	Profile bool `toml:"profile"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		LogLevel:  "info",
		ChunkSize: loader.DefaultChunkSize,
		Backend:   loader.BackendTypeScanner.String(),
	}
}

// LoadFile overlays the values set in a TOML file onto the config.
//
// Parameters:
//   - path: the TOML file to read
//
// Returns:
//   - error: error if the file cannot be read or decoded
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.LogLevel)
	}
	if c.ChunkSize < 1 {
		return fmt.Errorf("%w: chunk size must be positive, got %d", ErrInvalidConfig, c.ChunkSize)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidConfig, c.Workers)
	}
	if _, err := c.BackendType(); err != nil {
		return err
	}
	for _, s := range c.Sections {
		if !slices.Contains(Sections, s) {
			return fmt.Errorf("%w: unknown section %q", ErrInvalidConfig, s)
		}
	}
	return nil
}

// BackendType maps the Backend name to a loader backend.
func (c *Config) BackendType() (loader.LoaderBackendType, error) {
	switch strings.ToLower(c.Backend) {
	case "", loader.BackendTypeScanner.String():
		return loader.BackendTypeScanner, nil
	case loader.BackendTypeWhole.String():
		return loader.BackendTypeWhole, nil
	default:
		return 0, fmt.Errorf("%w: unknown backend %q", ErrInvalidConfig, c.Backend)
	}
}

// LoaderOptions converts the config into loader options.
func (c *Config) LoaderOptions() []loader.LoaderBuilderOption {
	policy := loader.KeywordLenient
	if c.StrictKeywords {
		policy = loader.KeywordStrict
	}
	return []loader.LoaderBuilderOption{
		loader.WithChunkSize(c.ChunkSize),
		loader.WithWorkers(c.Workers),
		loader.WithParserOptions(loader.WithKeywordPolicy(policy)),
	}
}

// Enabled reports whether a summary section should be printed.
func (c *Config) Enabled(section string) bool {
	return len(c.Sections) == 0 || slices.Contains(c.Sections, section)
}

// SetSections parses a comma separated section list, trimming spaces around names.
func (c *Config) SetSections(list string) {
	c.Sections = nil
	for _, s := range strings.Split(list, ",") {
		if s = strings.TrimSpace(s); s != "" {
			c.Sections = append(c.Sections, s)
		}
	}
}

package store

import (
	"log/slog"
	"os"

	"github.com/aretw0/tsnotebook/pkg/codec"
	"github.com/aretw0/tsnotebook/pkg/core"
)

const (
	// Extension is the file extension of JSON notebooks.
	Extension = ".tsqnb"
	// MarkdownExtension is the file extension of Markdown notebooks.
	MarkdownExtension = ".md"
	// DefaultPattern matches every notebook below the store root.
	DefaultPattern = "**/*" + Extension
)

// Config holds the store configuration.
type Config struct {
	Logger    *slog.Logger
	Formats   map[string]codec.Format
	Languages core.Languages
	Pattern   string
	FileMode  os.FileMode
}

// Option configures a Store.
type Option func(*Config)

// DefaultFormats returns the JSON and Markdown formats keyed by extension.
func DefaultFormats(opts ...codec.Option) map[string]codec.Format {
	return map[string]codec.Format{
		Extension:         codec.New(opts...),
		MarkdownExtension: codec.NewMarkdown(opts...),
	}
}

func defaultConfig() Config {
	return Config{
		Logger:    slog.Default(),
		Formats:   DefaultFormats(),
		Languages: core.DefaultLanguages(),
		Pattern:   DefaultPattern,
		FileMode:  0o644,
	}
}

// WithLogger sets the logger for the store.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		if logger != nil {
			c.Logger = logger
		}
	}
}

// WithFormats replaces the extension to format mapping.
func WithFormats(formats map[string]codec.Format) Option {
	return func(c *Config) {
		if len(formats) > 0 {
			c.Formats = formats
		}
	}
}

// WithLanguages sets the registry used to flag unknown code-cell languages.
func WithLanguages(langs core.Languages) Option {
	return func(c *Config) {
		c.Languages = langs
	}
}

// WithPattern sets the glob used when no pattern is given.
func WithPattern(pattern string) Option {
	return func(c *Config) {
		if pattern != "" {
			c.Pattern = pattern
		}
	}
}

// WithFileMode sets the permissions of newly written notebooks.
func WithFileMode(mode os.FileMode) Option {
	return func(c *Config) {
		c.FileMode = mode
	}
}

package platform

import (
	"log/slog"

	"github.com/aretw0/tsnotebook/pkg/codec"
)

// options holds the internal configuration for a Workspace.
type options struct {
	logger     *slog.Logger
	configPath string
	noConfig   bool
	observer   codec.Observer
	file       FileConfig
}

// Option defines a functional option for configuring a Workspace.
type Option func(*options)

func defaultOptions() *options {
	return &options{}
}

// WithLogger sets the logger for the workspace.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithConfigFile loads configuration from path instead of searching for
// ConfigFileName above the workspace root.
func WithConfigFile(path string) Option {
	return func(o *options) {
		o.configPath = path
	}
}

// WithoutConfigFile skips configuration file discovery.
func WithoutConfigFile() Option {
	return func(o *options) {
		o.noConfig = true
	}
}

// WithObserver registers an extra hook for dropped cells.
func WithObserver(obs codec.Observer) Option {
	return func(o *options) {
		o.observer = obs
	}
}

// WithLenient accepts comments and trailing commas in notebook files.
func WithLenient(lenient bool) Option {
	return func(o *options) {
		o.file.Lenient = &lenient
	}
}

// WithIndent pretty-prints saved notebooks.
func WithIndent(indent bool) Option {
	return func(o *options) {
		o.file.Indent = &indent
	}
}

// WithQueryLanguage overrides the default language of code cells.
func WithQueryLanguage(id string) Option {
	return func(o *options) {
		o.file.QueryLanguage = id
	}
}

// WithLanguages registers extra source languages.
func WithLanguages(ids ...string) Option {
	return func(o *options) {
		o.file.Languages = append(o.file.Languages, ids...)
	}
}

// WithPattern sets the default notebook glob.
func WithPattern(pattern string) Option {
	return func(o *options) {
		o.file.Pattern = pattern
	}
}

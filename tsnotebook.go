package tsnotebook

import (
	"log/slog"

	"github.com/aretw0/tsnotebook/internal/platform"
	"github.com/aretw0/tsnotebook/pkg/codec"
	"github.com/aretw0/tsnotebook/pkg/core"
)

// --- Types ---

// Cell is a public alias for a notebook cell.
type Cell = core.Cell

// Document is a public alias for a notebook.
type Document = core.Document

// Workspace is a public alias for a configured notebook directory.
type Workspace = platform.Workspace

// FormatError is returned when input is not a notebook at all.
type FormatError = core.FormatError

// ErrFormat matches every FormatError with errors.Is.
var ErrFormat = core.ErrFormat

const (
	CellKindCode   = core.CellKindCode
	CellKindMarkup = core.CellKindMarkup
)

// --- Configuration ---

// Option defines a functional option for configuring a Workspace.
type Option = platform.Option

// WithLogger sets the logger for the workspace.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithConfigFile loads configuration from an explicit path.
func WithConfigFile(path string) Option {
	return platform.WithConfigFile(path)
}

// WithoutConfigFile skips configuration file discovery.
func WithoutConfigFile() Option {
	return platform.WithoutConfigFile()
}

// WithObserver registers a hook for dropped cells.
func WithObserver(obs codec.Observer) Option {
	return platform.WithObserver(obs)
}

// WithLenient accepts comments and trailing commas in notebook files.
func WithLenient(lenient bool) Option {
	return platform.WithLenient(lenient)
}

// WithIndent pretty-prints saved notebooks.
func WithIndent(indent bool) Option {
	return platform.WithIndent(indent)
}

// WithLanguages registers extra source languages.
func WithLanguages(ids ...string) Option {
	return platform.WithLanguages(ids...)
}

// --- Factory ---

// New creates a Workspace rooted at path.
func New(path string, opts ...Option) (*Workspace, error) {
	return platform.New(path, opts...)
}

// --- Codec ---

var defaultCodec = codec.New()

// NewDefault returns the starter notebook.
func NewDefault() Document {
	return core.NewDefault()
}

// Encode serializes doc with the default codec.
func Encode(doc Document) ([]byte, error) {
	return defaultCodec.Encode(doc)
}

// Decode parses data with the default codec.
func Decode(data []byte) (Document, error) {
	return defaultCodec.Decode(data)
}

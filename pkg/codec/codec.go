// Package codec converts notebooks between their persisted forms and core.Document.
//
// The JSON codec is the notebook's native format. Decoding is total: structural
// problems yield a *core.FormatError, malformed cells are dropped one by one,
// and a document with nothing left falls back to core.NewDefault.
package codec

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/aretw0/tsnotebook/pkg/core"
)

// Format reads and writes notebooks in one on-disk representation.
type Format interface {
	// Parse converts raw bytes to a Document and reports what was dropped.
	Parse(data []byte) (core.Document, Report, error)
	// Serialize converts the Document to bytes.
	Serialize(doc core.Document) ([]byte, error)
}

// Codec is the JSON notebook codec. It holds only immutable configuration
// and is safe for concurrent use.
type Codec struct {
	logger   *slog.Logger
	observer Observer
	lenient  bool
	query    string
	markdown string
	indent   bool
}

// Option configures a Codec.
type Option func(*Codec)

// WithLogger sets the logger used for per-cell diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Codec) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithObserver registers a hook notified of every dropped cell.
func WithObserver(o Observer) Option {
	return func(c *Codec) {
		c.observer = o
	}
}

// WithLenient accepts comments and trailing commas in the input.
func WithLenient(lenient bool) Option {
	return func(c *Codec) {
		c.lenient = lenient
	}
}

// WithQueryLanguage overrides the language given to code cells without one.
func WithQueryLanguage(id string) Option {
	return func(c *Codec) {
		if id != "" {
			c.query = id
		}
	}
}

// WithMarkdownLanguage overrides the language of markup cells.
func WithMarkdownLanguage(id string) Option {
	return func(c *Codec) {
		if id != "" {
			c.markdown = id
		}
	}
}

// WithIndent makes Serialize pretty-print its output.
func WithIndent(indent bool) Option {
	return func(c *Codec) {
		c.indent = indent
	}
}

// New creates a JSON codec.
func New(opts ...Option) *Codec {
	c := &Codec{
		logger:   discardLogger,
		query:    core.QueryLanguageID,
		markdown: core.MarkdownLanguageID,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// discardLogger is used when no logger is configured.
var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// persistedCell is the on-disk shape of a cell. Field order is the wire order.
type persistedCell struct {
	Code     string `json:"code"`
	Language string `json:"language"`
	Kind     string `json:"kind"`
}

type persistedNotebook struct {
	Cells []persistedCell `json:"cells"`
}

// Encode serializes doc as compact JSON.
// The error is non-nil only if the standard encoder fails, which cannot happen
// for a Document built from strings.
func (c *Codec) Encode(doc core.Document) ([]byte, error) {
	return encode(doc, false)
}

// EncodeIndent serializes doc as JSON indented with two spaces.
func (c *Codec) EncodeIndent(doc core.Document) ([]byte, error) {
	return encode(doc, true)
}

// Serialize implements Format.
func (c *Codec) Serialize(doc core.Document) ([]byte, error) {
	return encode(doc, c.indent)
}

// Parse implements Format.
func (c *Codec) Parse(data []byte) (core.Document, Report, error) {
	return c.DecodeWithReport(data)
}

func encode(doc core.Document, indent bool) ([]byte, error) {
	payload := persistedNotebook{Cells: make([]persistedCell, 0, len(doc.Cells))}
	for _, cell := range doc.Cells {
		kind := "code"
		if cell.Kind == core.CellKindMarkup {
			kind = "markdown"
		}
		payload.Cells = append(payload.Cells, persistedCell{
			Code:     cell.Source,
			Language: cell.LanguageID,
			Kind:     kind,
		})
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(payload); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

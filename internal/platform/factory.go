package platform

import (
	"log/slog"

	"github.com/aretw0/introspection"

	"github.com/aretw0/tsnotebook/pkg/codec"
	"github.com/aretw0/tsnotebook/pkg/core"
	"github.com/aretw0/tsnotebook/pkg/store"
)

// Workspace wires the codecs and the store for one notebook directory.
type Workspace struct {
	Root       string
	ConfigPath string
	Config     FileConfig
	Languages  core.Languages
	Codec      *codec.Codec
	Markdown   *codec.Markdown
	Store      *store.Store
	Drops      *codec.DropCounter
	Logger     *slog.Logger
}

// New builds a Workspace rooted at root. Configuration precedence, lowest
// first: defaults, the configuration file, options.
func New(root string, opts ...Option) (*Workspace, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}

	path := o.configPath
	if path == "" && !o.noConfig {
		found, err := FindConfig(root)
		if err != nil {
			return nil, err
		}
		path = found
	}

	var cfg FileConfig
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
		logger.Debug("config loaded", "path", path)
	}
	cfg = merge(cfg, o.file)

	langs := core.DefaultLanguages().With(cfg.Languages...)
	if cfg.QueryLanguage != "" {
		langs.Query = cfg.QueryLanguage
	}
	if cfg.MarkdownLanguage != "" {
		langs.Markdown = cfg.MarkdownLanguage
	}

	drops := &codec.DropCounter{}
	codecOpts := []codec.Option{
		codec.WithLogger(logger),
		codec.WithObserver(codec.Observers(drops, o.observer)),
		codec.WithLenient(cfg.Lenient != nil && *cfg.Lenient),
		codec.WithIndent(cfg.Indent != nil && *cfg.Indent),
		codec.WithQueryLanguage(langs.Query),
		codec.WithMarkdownLanguage(langs.Markdown),
	}
	jsonCodec := codec.New(codecOpts...)
	markdown := codec.NewMarkdown(codecOpts...)

	st := store.New(root,
		store.WithLogger(logger),
		store.WithFormats(map[string]codec.Format{
			store.Extension:         jsonCodec,
			store.MarkdownExtension: markdown,
		}),
		store.WithLanguages(langs),
		store.WithPattern(cfg.Pattern),
	)

	return &Workspace{
		Root:       root,
		ConfigPath: path,
		Config:     cfg,
		Languages:  langs,
		Codec:      jsonCodec,
		Markdown:   markdown,
		Store:      st,
		Drops:      drops,
		Logger:     logger,
	}, nil
}

// merge overlays the fields set in over onto base.
func merge(base, over FileConfig) FileConfig {
	out := base
	if over.QueryLanguage != "" {
		out.QueryLanguage = over.QueryLanguage
	}
	if over.MarkdownLanguage != "" {
		out.MarkdownLanguage = over.MarkdownLanguage
	}
	if len(over.Languages) > 0 {
		out.Languages = append(append([]string(nil), base.Languages...), over.Languages...)
	}
	if over.Lenient != nil {
		out.Lenient = over.Lenient
	}
	if over.Indent != nil {
		out.Indent = over.Indent
	}
	if over.Pattern != "" {
		out.Pattern = over.Pattern
	}
	return out
}

// WorkspaceState exposes internal state for observability.
type WorkspaceState struct {
	Root       string `json:"root"`
	ConfigPath string `json:"config_path,omitempty"`
	Store      any    `json:"store"`
	Drops      any    `json:"drops"`
}

// State implements introspection.Introspectable.
func (w *Workspace) State() any {
	return WorkspaceState{
		Root:       w.Root,
		ConfigPath: w.ConfigPath,
		Store:      w.Store.State(),
		Drops:      w.Drops.State(),
	}
}

// ComponentType implements introspection.Component.
func (w *Workspace) ComponentType() string {
	return "workspace"
}

var _ introspection.Introspectable = (*Workspace)(nil)
var _ introspection.Component = (*Workspace)(nil)

// Package store reads and writes notebook files on disk.
package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/natefinch/atomic"

	"github.com/aretw0/tsnotebook/pkg/codec"
	"github.com/aretw0/tsnotebook/pkg/core"
)

// Store resolves notebook paths below a root directory and converts their
// contents with the format registered for the file extension.
type Store struct {
	Path   string
	config Config

	mu            sync.RWMutex
	watcherActive bool
	lastEvent     *time.Time
}

// Result is the outcome of opening one notebook.
type Result struct {
	Path     string
	Document core.Document
	Report   codec.Report
	// Unregistered holds the indexes of code cells whose language is not
	// in the configured registry.
	Unregistered []int
	Err          error
}

// OK reports whether the notebook decoded without structural errors.
func (r Result) OK() bool {
	return r.Err == nil
}

// New creates a store rooted at path.
func New(path string, opts ...Option) *Store {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Store{Path: path, config: cfg}
}

func (s *Store) abs(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(s.Path, path)
}

func (s *Store) format(path string) (codec.Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	f, ok := s.config.Formats[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrUnsupportedFile, path)
	}
	return f, nil
}

// Open reads and decodes the notebook at path. Structural decode errors are
// returned wrapped; the partially filled Result still carries the path.
func (s *Store) Open(ctx context.Context, path string) (Result, error) {
	res := Result{Path: path}
	if err := ctx.Err(); err != nil {
		return res, err
	}

	f, err := s.format(path)
	if err != nil {
		return res, err
	}

	data, err := os.ReadFile(s.abs(path))
	if err != nil {
		return res, fmt.Errorf("failed to read notebook: %w", err)
	}

	doc, report, err := f.Parse(data)
	res.Report = report
	if err != nil {
		return res, fmt.Errorf("failed to load notebook %s: %w", path, err)
	}
	res.Document = doc
	res.Unregistered = s.config.Languages.Unregistered(doc)

	if len(report.Dropped) > 0 {
		s.config.Logger.Debug("cells dropped", "path", path, "dropped", len(report.Dropped), "kept", report.Kept)
	}
	return res, nil
}

// Save encodes doc with the format for path and writes it atomically.
func (s *Store) Save(ctx context.Context, path string, doc core.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := s.format(path)
	if err != nil {
		return err
	}
	data, err := f.Serialize(doc)
	if err != nil {
		return fmt.Errorf("failed to encode notebook: %w", err)
	}

	target := s.abs(path)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	_, statErr := os.Stat(target)
	isNew := errors.Is(statErr, fs.ErrNotExist)

	if err := atomic.WriteFile(target, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write notebook: %w", err)
	}
	// atomic.WriteFile keeps the mode of an existing file but not of a new one.
	if isNew {
		if err := os.Chmod(target, s.config.FileMode); err != nil {
			return fmt.Errorf("failed to chmod notebook: %w", err)
		}
	}

	s.config.Logger.Debug("notebook saved", "path", path, "cells", doc.Len(), "bytes", len(data))
	return nil
}

// Create writes the starter notebook to path. It fails with core.ErrExists
// when the file is already there, unless force is set.
func (s *Store) Create(ctx context.Context, path string, force bool) (core.Document, error) {
	if !force {
		if _, err := os.Stat(s.abs(path)); err == nil {
			return core.Document{}, fmt.Errorf("%w: %s", core.ErrExists, path)
		}
	}
	doc := core.NewDefault()
	if err := s.Save(ctx, path, doc); err != nil {
		return core.Document{}, err
	}
	return doc, nil
}

// Convert reads src in its format and writes dst in the format for its extension.
func (s *Store) Convert(ctx context.Context, src, dst string) (Result, error) {
	res, err := s.Open(ctx, src)
	if err != nil {
		return res, err
	}
	if err := s.Save(ctx, dst, res.Document); err != nil {
		return res, err
	}
	return res, nil
}

// Resolve expands args into notebook paths relative to the root. Arguments
// naming an existing file are kept as is; anything else is a doublestar glob.
// With no arguments the configured pattern is used.
func (s *Store) Resolve(ctx context.Context, args ...string) ([]string, error) {
	if len(args) == 0 {
		args = []string{s.config.Pattern}
	}

	fsys := os.DirFS(s.Path)
	var out []string
	for _, arg := range args {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if info, err := os.Stat(s.abs(arg)); err == nil && !info.IsDir() {
			out = append(out, arg)
			continue
		}

		pattern := filepath.ToSlash(arg)
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid pattern %q", arg)
		}
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to glob %q: %w", arg, err)
		}
		for _, m := range matches {
			if _, err := s.format(m); err != nil {
				continue
			}
			out = append(out, filepath.FromSlash(m))
		}
	}

	slices.Sort(out)
	return slices.Compact(out), nil
}

// Check opens every notebook matched by args. Per-file failures are recorded
// in the results; only resolution errors are returned.
func (s *Store) Check(ctx context.Context, args ...string) ([]Result, error) {
	paths, err := s.Resolve(ctx, args...)
	if err != nil {
		return nil, err
	}
	results := make([]Result, 0, len(paths))
	for _, p := range paths {
		res, err := s.Open(ctx, p)
		if ctx.Err() != nil {
			return results, ctx.Err()
		}
		res.Err = err
		results = append(results, res)
	}
	return results, nil
}

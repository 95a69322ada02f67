package store

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/tsnotebook/pkg/codec"
	"github.com/aretw0/tsnotebook/pkg/core"
)

func newTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(t.TempDir(), append([]Option{WithLogger(logger)}, opts...)...)
}

func writeFile(t *testing.T, s *Store, rel, content string) {
	t.Helper()
	path := filepath.Join(s.Path, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestSaveAndOpen(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	doc := core.Document{Cells: []core.Cell{
		{Kind: core.CellKindMarkup, LanguageID: core.MarkdownLanguageID, Source: "notes"},
		{Kind: core.CellKindCode, LanguageID: "scm", Source: "(comment) @c"},
	}}

	require.NoError(t, s.Save(ctx, "nested/dir/a.tsqnb", doc))

	data, err := os.ReadFile(filepath.Join(s.Path, "nested", "dir", "a.tsqnb"))
	require.NoError(t, err)
	assert.Equal(t,
		`{"cells":[{"code":"notes","language":"markdown","kind":"markdown"},{"code":"(comment) @c","language":"scm","kind":"code"}]}`,
		string(data))

	res, err := s.Open(ctx, "nested/dir/a.tsqnb")
	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.Equal(t, doc, res.Document)
	assert.True(t, res.Report.Clean())
	assert.Empty(t, res.Unregistered)
}

func TestSaveFileMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not meaningful on windows")
	}
	s := newTestStore(t, WithFileMode(0o640))
	require.NoError(t, s.Save(context.Background(), "a.tsqnb", core.NewDefault()))

	info, err := os.Stat(filepath.Join(s.Path, "a.tsqnb"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())

	// Existing files keep their mode.
	require.NoError(t, os.Chmod(filepath.Join(s.Path, "a.tsqnb"), 0o600))
	require.NoError(t, s.Save(context.Background(), "a.tsqnb", core.NewDefault()))
	info, err = os.Stat(filepath.Join(s.Path, "a.tsqnb"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestOpenFormatError(t *testing.T) {
	s := newTestStore(t)
	writeFile(t, s, "bad.tsqnb", `{"foo":1}`)

	res, err := s.Open(context.Background(), "bad.tsqnb")
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrFormat))
	reason, ok := core.IsFormatError(err)
	require.True(t, ok)
	assert.Equal(t, core.ReasonMissingCells, reason)
	assert.Equal(t, "bad.tsqnb", res.Path)
}

func TestOpenEmptyFile(t *testing.T) {
	s := newTestStore(t)
	writeFile(t, s, "empty.tsqnb", "")

	res, err := s.Open(context.Background(), "empty.tsqnb")
	require.NoError(t, err)
	assert.Equal(t, core.NewDefault(), res.Document)
	assert.True(t, res.Report.Defaulted)
}

func TestOpenUnsupported(t *testing.T) {
	s := newTestStore(t)
	writeFile(t, s, "notes.txt", "hello")

	_, err := s.Open(context.Background(), "notes.txt")
	assert.True(t, errors.Is(err, core.ErrUnsupportedFile))
}

func TestOpenFlagsUnregisteredLanguages(t *testing.T) {
	s := newTestStore(t, WithLanguages(core.DefaultLanguages().With("haskell")))
	writeFile(t, s, "a.tsqnb", `{"cells":[
		{"code":"x","kind":"code","language":"cobol"},
		{"code":"y","kind":"code","language":"haskell"},
		{"code":"z","kind":"markdown"},
		{"code":"w","kind":"code","language":"brainfuck"}
	]}`)

	res, err := s.Open(context.Background(), "a.tsqnb")
	require.NoError(t, err)
	assert.Len(t, res.Document.Cells, 4)
	assert.Equal(t, []int{0, 3}, res.Unregistered)
}

func TestCreate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	doc, err := s.Create(ctx, "new.tsqnb", false)
	require.NoError(t, err)
	assert.Equal(t, core.NewDefault(), doc)

	_, err = s.Create(ctx, "new.tsqnb", false)
	assert.True(t, errors.Is(err, core.ErrExists))

	_, err = s.Create(ctx, "new.tsqnb", true)
	assert.NoError(t, err)

	res, err := s.Open(ctx, "new.tsqnb")
	require.NoError(t, err)
	assert.Equal(t, core.NewDefault(), res.Document)
}

func TestConvert(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	writeFile(t, s, "doc.md", "Intro\n\n```go\nfmt.Println()\n```\n")

	res, err := s.Convert(ctx, "doc.md", "doc.tsqnb")
	require.NoError(t, err)
	want := core.Document{Cells: []core.Cell{
		{Kind: core.CellKindMarkup, LanguageID: core.MarkdownLanguageID, Source: "Intro"},
		{Kind: core.CellKindCode, LanguageID: "go", Source: "fmt.Println()"},
	}}
	assert.Equal(t, want, res.Document)

	back, err := s.Open(ctx, "doc.tsqnb")
	require.NoError(t, err)
	assert.Equal(t, want, back.Document)

	_, err = s.Convert(ctx, "doc.tsqnb", "out.md")
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(s.Path, "out.md"))
	require.NoError(t, err)
	assert.Equal(t, "Intro\n\n```go\nfmt.Println()\n```\n", string(data))
}

func TestResolve(t *testing.T) {
	s := newTestStore(t)
	writeFile(t, s, "a.tsqnb", "")
	writeFile(t, s, "sub/b.tsqnb", "")
	writeFile(t, s, "sub/deep/c.tsqnb", "")
	writeFile(t, s, "sub/readme.txt", "")
	writeFile(t, s, "doc.md", "")
	ctx := context.Background()

	paths, err := s.Resolve(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"a.tsqnb",
		filepath.Join("sub", "b.tsqnb"),
		filepath.Join("sub", "deep", "c.tsqnb"),
	}, paths)

	paths, err = s.Resolve(ctx, "sub/*", "doc.md", "a.tsqnb", "a.tsqnb")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.tsqnb", "doc.md", filepath.Join("sub", "b.tsqnb")}, paths)

	_, err = s.Resolve(ctx, "[")
	assert.Error(t, err)
}

func TestCheck(t *testing.T) {
	counter := &codec.DropCounter{}
	s := newTestStore(t, WithFormats(DefaultFormats(codec.WithObserver(counter))))
	writeFile(t, s, "good.tsqnb", `{"cells":[{"code":"a","kind":"code"}]}`)
	writeFile(t, s, "partial.tsqnb", `{"cells":[{"code":"a","kind":"code"},{"kind":"code"}]}`)
	writeFile(t, s, "broken.tsqnb", `not json`)

	results, err := s.Check(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 3)

	byPath := map[string]Result{}
	for _, r := range results {
		byPath[r.Path] = r
	}
	assert.False(t, byPath["broken.tsqnb"].OK())
	assert.True(t, byPath["good.tsqnb"].Report.Clean())
	assert.Equal(t, []codec.Drop{{Index: 1, Reason: codec.DropMissingCode}}, byPath["partial.tsqnb"].Report.Dropped)
	assert.Equal(t, int64(1), counter.Snapshot().Total)
}

func TestCancelledContext(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.Save(ctx, "a.tsqnb", core.NewDefault()), context.Canceled)
	_, err := s.Open(ctx, "a.tsqnb")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestState(t *testing.T) {
	s := newTestStore(t)
	state, ok := s.State().(StoreState)
	require.True(t, ok)
	assert.Equal(t, s.Path, state.Path)
	assert.Equal(t, DefaultPattern, state.Pattern)
	assert.Equal(t, []string{".md", ".tsqnb"}, state.Formats)
	assert.Equal(t, "scm", state.Languages[0])
	assert.False(t, state.WatcherActive)
	assert.Equal(t, "notebook-store", s.ComponentType())
}

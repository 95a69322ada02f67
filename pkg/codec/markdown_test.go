package codec

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/tsnotebook/pkg/core"
)

func TestExportMarkdown(t *testing.T) {
	doc := core.Document{Cells: []core.Cell{
		markup("# Notes\n\nIntro."),
		code("javascript", "const x = 1;"),
		code("scm", "(identifier) @id\n"),
	}}

	want := "# Notes\n\nIntro.\n\n```javascript\nconst x = 1;\n```\n\n```scm\n(identifier) @id\n```\n"
	assert.Equal(t, want, string(ExportMarkdown(doc)))
}

func TestExportMarkdownLongFence(t *testing.T) {
	doc := core.Document{Cells: []core.Cell{code("markdown", "```go\nx\n```")}}
	assert.Equal(t, "````markdown\n```go\nx\n```\n````\n", string(ExportMarkdown(doc)))
}

func TestImportMarkdown(t *testing.T) {
	src := "# Notes\n\nIntro.\n\n```javascript\nconst x = 1;\n```\n\n- a\n- b\n\n> quote\n\n```\n(identifier) @id\n```\n"
	doc, err := ImportMarkdown([]byte(src))
	require.NoError(t, err)

	want := []core.Cell{
		markup("# Notes\n\nIntro."),
		code("javascript", "const x = 1;"),
		markup("- a\n- b\n\n> quote"),
		code("scm", "(identifier) @id"),
	}
	if diff := cmp.Diff(want, doc.Cells); diff != "" {
		t.Errorf("cells mismatch (-want +got):\n%s", diff)
	}
}

func TestMarkdownRoundTrip(t *testing.T) {
	doc := core.Document{Cells: []core.Cell{
		code("typescript", "let a: number = 1;\nlet b = `tpl`;"),
		markup("Between the cells."),
		code("scm", "```not a fence```"),
		code("python", "def f():\n    return 1"),
	}}
	m := NewMarkdown()

	data, err := m.Serialize(doc)
	require.NoError(t, err)
	got, report, err := m.Parse(data)
	require.NoError(t, err)
	assert.True(t, report.Clean())
	if diff := cmp.Diff(doc, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestMarkdownRoundTripSplitsEmbeddedFence(t *testing.T) {
	doc := core.Document{Cells: []core.Cell{markup("Example:\n\n```js\nfoo()\n```")}}

	got, err := ImportMarkdown(ExportMarkdown(doc))
	require.NoError(t, err)
	want := []core.Cell{markup("Example:"), code("js", "foo()")}
	if diff := cmp.Diff(want, got.Cells); diff != "" {
		t.Errorf("cells mismatch (-want +got):\n%s", diff)
	}
}

func TestImportMarkdownInfoString(t *testing.T) {
	doc, err := ImportMarkdown([]byte("```js title=example\nlet y;\n```\n"))
	require.NoError(t, err)
	assert.Equal(t, []core.Cell{code("js", "let y;")}, doc.Cells)
}

func TestImportMarkdownFallback(t *testing.T) {
	m := NewMarkdown()

	doc, report, err := m.Parse([]byte("  \n"))
	require.NoError(t, err)
	assert.Equal(t, core.NewDefault(), doc)
	assert.Equal(t, DefaultEmptyInput, report.DefaultReason)

	counter := &DropCounter{}
	m = NewMarkdown(WithObserver(counter))
	doc, report, err = m.Parse([]byte("```go\n```\n"))
	require.NoError(t, err)
	assert.Equal(t, core.NewDefault(), doc)
	assert.Equal(t, DefaultNoCells, report.DefaultReason)
	assert.Equal(t, []Drop{{Index: 0, Reason: DropEmptySource}}, report.Dropped)
	assert.Equal(t, int64(1), counter.Snapshot().ByReason[DropEmptySource])
}

func TestFenceFor(t *testing.T) {
	assert.Equal(t, "```", fenceFor("plain"))
	assert.Equal(t, "```", fenceFor("a `b` c"))
	assert.Equal(t, "````", fenceFor("```"))
	assert.Equal(t, "``````", fenceFor("x `````"))
}

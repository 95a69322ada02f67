package codec

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/aretw0/tsnotebook/pkg/core"
)

// The goldmark parser is configured once; Parse creates per-call state.
var (
	markdownOnce     sync.Once
	markdownInstance goldmark.Markdown
)

func getMarkdown() goldmark.Markdown {
	markdownOnce.Do(func() {
		markdownInstance = goldmark.New(goldmark.WithExtensions(extension.GFM))
	})
	return markdownInstance
}

// Markdown reads and writes notebooks as Markdown documents: fenced code
// blocks are code cells, everything between them is markup.
type Markdown struct {
	logger   *slog.Logger
	observer Observer
	query    string
	markdown string
}

// NewMarkdown creates a Markdown format. It accepts the same options as New;
// options that only concern JSON are ignored.
func NewMarkdown(opts ...Option) *Markdown {
	c := New(opts...)
	return &Markdown{
		logger:   c.logger,
		observer: c.observer,
		query:    c.query,
		markdown: c.markdown,
	}
}

// Serialize implements Format.
func (m *Markdown) Serialize(doc core.Document) ([]byte, error) {
	return ExportMarkdown(doc), nil
}

// ExportMarkdown renders doc as Markdown. Markup cells are written verbatim,
// code cells as fenced blocks tagged with their language.
//
// The output does not always import back to the same cells: trailing newlines
// of code sources are lost, adjacent markup cells merge into one, and a fenced
// block inside a markup cell comes back as a separate code cell.
func ExportMarkdown(doc core.Document) []byte {
	var buf bytes.Buffer
	for i, cell := range doc.Cells {
		if i > 0 {
			buf.WriteByte('\n')
		}
		source := strings.TrimRight(cell.Source, "\n")
		if cell.Kind == core.CellKindMarkup {
			buf.WriteString(source)
			buf.WriteByte('\n')
			continue
		}
		fence := fenceFor(source)
		buf.WriteString(fence)
		buf.WriteString(cell.LanguageID)
		buf.WriteByte('\n')
		buf.WriteString(source)
		buf.WriteByte('\n')
		buf.WriteString(fence)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// fenceFor returns a backtick fence longer than any backtick run in source.
func fenceFor(source string) string {
	longest, run := 0, 0
	for i := 0; i < len(source); i++ {
		if source[i] == '`' {
			run++
			longest = max(longest, run)
			continue
		}
		run = 0
	}
	return strings.Repeat("`", max(3, longest+1))
}

// ImportMarkdown parses src with the default languages.
func ImportMarkdown(src []byte) (core.Document, error) {
	doc, _, err := NewMarkdown().Parse(src)
	return doc, err
}

// Parse implements Format. Markdown has no structural failure mode, so the
// error is always nil; cells still pass the same invariant check as JSON.
func (m *Markdown) Parse(src []byte) (core.Document, Report, error) {
	if len(bytes.TrimSpace(src)) == 0 {
		return core.NewDefault(), Report{Defaulted: true, DefaultReason: DefaultEmptyInput}, nil
	}

	cands := m.split(src)
	report := Report{Total: len(cands)}
	cells := make([]core.Cell, 0, len(cands))
	for i, cand := range cands {
		cell, reason, ok := checkCell(cand)
		if !ok {
			d := Drop{Index: i, Reason: reason}
			report.Dropped = append(report.Dropped, d)
			m.logger.Debug("skipping markdown cell", "index", i, "reason", string(reason))
			if m.observer != nil {
				m.observer.OnDrop(d)
			}
			continue
		}
		cells = append(cells, cell)
	}
	report.Kept = len(cells)

	if len(cells) == 0 {
		report.Defaulted = true
		report.DefaultReason = DefaultNoCells
		return core.NewDefault(), report, nil
	}
	return core.Document{Cells: cells}, report, nil
}

// split walks the top-level blocks. Each fenced code block becomes a code
// candidate; each run of other blocks becomes one markup candidate holding
// the run's original text.
func (m *Markdown) split(src []byte) []candidate {
	root := getMarkdown().Parser().Parse(text.NewReader(src))

	var out []candidate
	var runStart, runStop int
	inRun := false
	flush := func() {
		if !inRun {
			return
		}
		body := strings.TrimRight(string(src[runStart:runStop]), " \t\r\n")
		out = append(out, candidate{kind: core.CellKindMarkup, language: m.markdown, source: body})
		inRun = false
	}

	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		if block, ok := n.(*ast.FencedCodeBlock); ok {
			flush()
			out = append(out, m.codeCandidate(block, src))
			continue
		}
		start, stop, ok := blockSpan(n)
		if !ok {
			continue
		}
		if !inRun {
			runStart = lineStart(src, start)
			inRun = true
		}
		runStop = lineEnd(src, stop)
	}
	flush()
	return out
}

func (m *Markdown) codeCandidate(block *ast.FencedCodeBlock, src []byte) candidate {
	language := string(block.Language(src))
	if language == "" {
		language = m.query
	}
	var code strings.Builder
	lines := block.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		code.Write(segment.Value(src))
	}
	return candidate{
		kind:     core.CellKindCode,
		language: language,
		source:   strings.TrimSuffix(code.String(), "\n"),
	}
}

// blockSpan returns the byte range covered by a block's own lines and its
// block descendants. Inline children are covered by their parent's lines.
func blockSpan(n ast.Node) (start, stop int, found bool) {
	if n.Type() != ast.TypeBlock {
		return 0, 0, false
	}
	if lines := n.Lines(); lines != nil && lines.Len() > 0 {
		start = lines.At(0).Start
		stop = lines.At(lines.Len() - 1).Stop
		found = true
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		s, e, ok := blockSpan(c)
		if !ok {
			continue
		}
		if !found || s < start {
			start = s
		}
		if !found || e > stop {
			stop = e
		}
		found = true
	}
	return start, stop, found
}

func lineStart(src []byte, pos int) int {
	return bytes.LastIndexByte(src[:pos], '\n') + 1
}

func lineEnd(src []byte, pos int) int {
	if pos > 0 && src[pos-1] == '\n' {
		return pos
	}
	if i := bytes.IndexByte(src[pos:], '\n'); i >= 0 {
		return pos + i
	}
	return len(src)
}

var (
	_ Format = (*Codec)(nil)
	_ Format = (*Markdown)(nil)
)

package core

import (
	"slices"
	"strings"
)

const (
	// QueryLanguageID identifies cells holding tree-sitter query syntax.
	QueryLanguageID = "scm"
	// MarkdownLanguageID is the fixed language of markup cells.
	MarkdownLanguageID = "markdown"
	// SampleLanguageID is the source language used by the starter notebook.
	SampleLanguageID = "javascript"
)

// SourceLanguages lists the grammars shipped with the notebook.
var SourceLanguages = []string{
	"c_sharp",
	"javascript",
	"typescript",
	"tsx",
	"python",
	"go",
	"rust",
	"java",
}

// Languages is the set of language identifiers accepted for code cells.
// The zero value is empty; use DefaultLanguages for the shipped set.
type Languages struct {
	Query    string
	Markdown string
	Source   []string
}

// DefaultLanguages returns the query language plus every shipped source grammar.
func DefaultLanguages() Languages {
	return Languages{
		Query:    QueryLanguageID,
		Markdown: MarkdownLanguageID,
		Source:   slices.Clone(SourceLanguages),
	}
}

// With returns a copy of l with extra source languages registered.
// Blank and duplicate identifiers are ignored.
func (l Languages) With(extra ...string) Languages {
	out := l
	out.Source = slices.Clone(l.Source)
	for _, id := range extra {
		id = strings.TrimSpace(id)
		if id == "" || slices.Contains(out.Source, id) || id == out.Query {
			continue
		}
		out.Source = append(out.Source, id)
	}
	return out
}

// IsCode reports whether id may tag a code cell.
func (l Languages) IsCode(id string) bool {
	if id == "" {
		return false
	}
	return id == l.Query || slices.Contains(l.Source, id)
}

// All returns the code-cell identifiers, query language first.
func (l Languages) All() []string {
	out := make([]string, 0, len(l.Source)+1)
	if l.Query != "" {
		out = append(out, l.Query)
	}
	return append(out, l.Source...)
}

// Unregistered returns the indexes of code cells whose language is not in l.
// Decoding keeps such cells; this is a diagnostic only.
func (l Languages) Unregistered(doc Document) []int {
	var idx []int
	for i, c := range doc.Cells {
		if c.Kind == CellKindCode && !l.IsCode(c.LanguageID) {
			idx = append(idx, i)
		}
	}
	return idx
}

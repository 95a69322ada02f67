package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDefault(t *testing.T) {
	doc := NewDefault()
	assert.Equal(t, 2, doc.Len())
	assert.Equal(t, Cell{Kind: CellKindCode, LanguageID: "javascript", Source: "const x = 1;"}, doc.Cells[0])
	assert.Equal(t, Cell{Kind: CellKindCode, LanguageID: "scm", Source: "(identifier) @identifier"}, doc.Cells[1])

	// Callers may mutate the result without affecting later calls.
	doc.Cells[0].Source = "changed"
	assert.Equal(t, "const x = 1;", NewDefault().Cells[0].Source)
}

func TestCellKindString(t *testing.T) {
	assert.Equal(t, "code", CellKindCode.String())
	assert.Equal(t, "markdown", CellKindMarkup.String())
	assert.Equal(t, "CellKind(0)", CellKind(0).String())
}

func TestLanguages(t *testing.T) {
	langs := DefaultLanguages()
	assert.True(t, langs.IsCode("scm"))
	assert.True(t, langs.IsCode("c_sharp"))
	assert.False(t, langs.IsCode("markdown"))
	assert.False(t, langs.IsCode(""))
	assert.Equal(t, "scm", langs.All()[0])

	extended := langs.With("haskell", " ", "go", "scm", "haskell")
	assert.Equal(t, append(append([]string(nil), SourceLanguages...), "haskell"), extended.Source)
	assert.False(t, langs.IsCode("haskell"), "With must not modify the receiver")
}

func TestUnregistered(t *testing.T) {
	doc := Document{Cells: []Cell{
		{Kind: CellKindCode, LanguageID: "python", Source: "x"},
		{Kind: CellKindCode, LanguageID: "cobol", Source: "x"},
		{Kind: CellKindMarkup, LanguageID: "markdown", Source: "x"},
		{Kind: CellKindCode, LanguageID: "scm", Source: "x"},
	}}
	assert.Equal(t, []int{1}, DefaultLanguages().Unregistered(doc))
}

func TestFormatError(t *testing.T) {
	err := fmt.Errorf("load: %w", &FormatError{Reason: ReasonMissingCells})
	assert.ErrorIs(t, err, ErrFormat)
	assert.Equal(t, "load: invalid notebook format: missing required `cells` property", err.Error())

	reason, ok := IsFormatError(err)
	assert.True(t, ok)
	assert.Equal(t, ReasonMissingCells, reason)

	_, ok = IsFormatError(errors.New("other"))
	assert.False(t, ok)

	cause := errors.New("unexpected EOF")
	wrapped := &FormatError{Reason: ReasonInvalidJSON, Err: cause}
	assert.ErrorIs(t, wrapped, cause)
	assert.Equal(t, "invalid notebook format: invalid JSON: unexpected EOF", wrapped.Error())
}

// Cell and Document are the central entities of the domain.
package core

import "fmt"

// CellKind distinguishes executable cells from prose.
type CellKind int

const (
	// CellKindMarkup holds prose rendered as markdown.
	CellKindMarkup CellKind = iota + 1
	// CellKindCode holds source text or a tree-sitter query.
	CellKindCode
)

// String returns the persisted name of the kind.
func (k CellKind) String() string {
	switch k {
	case CellKindCode:
		return "code"
	case CellKindMarkup:
		return "markdown"
	default:
		return fmt.Sprintf("CellKind(%d)", int(k))
	}
}

// MarshalText lets YAML and JSON renderers print the kind by name.
func (k CellKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Cell is one unit of a notebook: a block of code or markup tagged with a language.
type Cell struct {
	Kind       CellKind `json:"kind" yaml:"kind"`
	LanguageID string   `json:"language" yaml:"language"`
	Source     string   `json:"source" yaml:"source"`
}

// Valid reports whether the cell satisfies the decoded-cell invariant:
// non-empty source and non-empty language.
func (c Cell) Valid() bool {
	return c.Source != "" && c.LanguageID != ""
}

// Document is an ordered sequence of cells. It has no identity beyond its cells.
type Document struct {
	Cells []Cell `json:"cells" yaml:"cells"`
}

// Len returns the number of cells.
func (d Document) Len() int {
	return len(d.Cells)
}

// EventType represents the type of change observed on a notebook file.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change to a notebook file.
type Event struct {
	Type      EventType
	Path      string
	Timestamp int64 // Unix timestamp
}

// String implements fmt.Stringer.
func (e Event) String() string {
	return fmt.Sprintf("%s %s", e.Type, e.Path)
}

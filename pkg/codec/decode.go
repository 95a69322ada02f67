package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/tailscale/hujson"
	"golang.org/x/text/encoding/unicode"

	"github.com/aretw0/tsnotebook/pkg/core"
)

// candidate is a cell that passed structural mapping but not yet the
// invariant check. language stays untyped: a present, non-null `language`
// of the wrong JSON type is only rejected by checkCell.
type candidate struct {
	kind     core.CellKind
	language any
	source   string
}

// Decode converts data to a Document. Empty input yields the starter
// document; structural errors are returned as *core.FormatError.
func (c *Codec) Decode(data []byte) (core.Document, error) {
	doc, _, err := c.DecodeWithReport(data)
	return doc, err
}

// DecodeWithReport is Decode plus a summary of dropped cells.
func (c *Codec) DecodeWithReport(data []byte) (core.Document, Report, error) {
	c.logger.Debug("decoding notebook", "bytes", len(data))

	if len(data) == 0 {
		c.logger.Debug("empty content, using starter notebook")
		return core.NewDefault(), Report{Defaulted: true, DefaultReason: DefaultEmptyInput}, nil
	}

	raw, err := c.parseCells(data)
	if err != nil {
		c.logger.Debug("notebook rejected", "error", err)
		return core.Document{}, Report{}, err
	}

	report := Report{Total: len(raw)}
	cells := make([]core.Cell, 0, len(raw))
	for i, element := range raw {
		cand, reason, ok := c.mapCell(element)
		var cell core.Cell
		if ok {
			cell, reason, ok = checkCell(cand)
		}
		if !ok {
			c.drop(&report, Drop{Index: i, Reason: reason})
			continue
		}
		cells = append(cells, cell)
	}
	report.Kept = len(cells)

	if len(cells) == 0 {
		c.logger.Debug("no valid cells, using starter notebook", "total", report.Total)
		report.Defaulted = true
		report.DefaultReason = DefaultNoCells
		return core.NewDefault(), report, nil
	}

	c.logger.Debug("notebook decoded", "total", report.Total, "kept", report.Kept)
	return core.Document{Cells: cells}, report, nil
}

func (c *Codec) drop(report *Report, d Drop) {
	report.Dropped = append(report.Dropped, d)
	c.logger.Debug("skipping cell", "index", d.Index, "reason", string(d.Reason))
	if c.observer != nil {
		c.observer.OnDrop(d)
	}
}

// parseCells decodes the text, parses JSON and validates the root shape.
func (c *Codec) parseCells(data []byte) ([]any, error) {
	text, err := decodeText(data)
	if err != nil {
		return nil, &core.FormatError{Reason: core.ReasonInvalidJSON, Err: err}
	}

	if c.lenient {
		text, err = hujson.Standardize(text)
		if err != nil {
			return nil, &core.FormatError{Reason: core.ReasonInvalidJSON, Err: err}
		}
	}

	root, err := parseJSON(text)
	if err != nil {
		return nil, &core.FormatError{Reason: core.ReasonInvalidJSON, Err: err}
	}

	// Arrays and null are not objects here, so they get this reason rather
	// than a missing `cells` property.
	obj, ok := root.(map[string]any)
	if !ok {
		return nil, &core.FormatError{Reason: core.ReasonRootNotObject}
	}
	value, ok := obj["cells"]
	if !ok {
		return nil, &core.FormatError{Reason: core.ReasonMissingCells}
	}
	cells, ok := value.([]any)
	if !ok {
		return nil, &core.FormatError{
			Reason: core.ReasonCellsNotArray,
			Err:    fmt.Errorf("got %s", jsonTypeName(value)),
		}
	}
	return cells, nil
}

// decodeText strips a leading byte order mark and replaces ill-formed
// UTF-8 with U+FFFD.
func decodeText(data []byte) ([]byte, error) {
	return unicode.UTF8BOM.NewDecoder().Bytes(data)
}

// parseJSON parses exactly one JSON value. Numbers are kept as json.Number so
// that string coercion sees the literal.
func parseJSON(text []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(text))
	dec.UseNumber()

	var root any
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level value")
	}
	return root, nil
}

// mapCell is the structural stage: it rejects elements that are not cell
// objects and maps the rest to candidates.
func (c *Codec) mapCell(element any) (candidate, DropReason, bool) {
	obj, ok := element.(map[string]any)
	if !ok {
		return candidate{}, DropNotObject, false
	}
	code, ok := obj["code"]
	if !ok {
		return candidate{}, DropMissingCode, false
	}
	kind, ok := obj["kind"]
	if !ok {
		return candidate{}, DropMissingKind, false
	}

	cand := candidate{
		kind:     core.CellKindMarkup,
		language: c.markdown,
		source:   coerceString(code),
	}
	if s, _ := kind.(string); s == "code" {
		cand.kind = core.CellKindCode
		cand.language = c.query
		if lang, present := obj["language"]; present && lang != nil {
			cand.language = lang
		}
	}
	return cand, "", true
}

// checkCell is the invariant stage: source and language must be non-empty strings.
func checkCell(cand candidate) (core.Cell, DropReason, bool) {
	if cand.source == "" {
		return core.Cell{}, DropEmptySource, false
	}
	lang, ok := cand.language.(string)
	if !ok || lang == "" {
		return core.Cell{}, DropInvalidLanguage, false
	}
	return core.Cell{Kind: cand.kind, LanguageID: lang, Source: cand.source}, "", true
}

func jsonTypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case json.Number, float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

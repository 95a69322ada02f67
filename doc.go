// Package tsnotebook is the Composition Root for tree-sitter query notebooks.
//
// A notebook (`.tsqnb`) is a JSON document holding an ordered list of cells.
// Code cells carry source text in one of the supported grammars or a
// tree-sitter query; markup cells carry Markdown prose.
//
// Features:
//
//   - **Total decoding**: malformed cells are dropped individually, and a
//     notebook with nothing salvageable opens as the starter notebook.
//   - **Loud structural errors**: input that is not a notebook at all yields a
//     *core.FormatError naming the failed check.
//   - **Markdown interchange**: fenced code blocks map to code cells.
//   - **File tooling**: atomic saves, glob discovery and change watching.
//
// Usage:
//
//	doc, err := tsnotebook.Decode(data)
//	if errors.Is(err, tsnotebook.ErrFormat) {
//		// not a notebook
//	}
//
//	ws, err := tsnotebook.New("./notebooks", tsnotebook.WithLogger(logger))
//	res, err := ws.Store.Open(ctx, "queries.tsqnb")
package tsnotebook

package tsnotebook_test

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/aretw0/tsnotebook"
)

// Example_decode shows cell-level recovery: the second cell has no code and
// is dropped, the rest of the notebook survives.
func Example_decode() {
	doc, err := tsnotebook.Decode([]byte(`{"cells":[{"code":"(identifier) @id","kind":"code"},{"kind":"code"}]}`))
	if err != nil {
		log.Fatal(err)
	}
	for _, cell := range doc.Cells {
		fmt.Printf("%s %s: %s\n", cell.Kind, cell.LanguageID, cell.Source)
	}
	// Output:
	// code scm: (identifier) @id
}

// Example_formatError shows that input which is not a notebook fails loudly.
func Example_formatError() {
	_, err := tsnotebook.Decode([]byte(`{"cells":"x"}`))
	fmt.Println(errors.Is(err, tsnotebook.ErrFormat))
	fmt.Println(err)
	// Output:
	// true
	// invalid notebook format: `cells` is not an array: got string
}

// ExampleNew creates a notebook in a workspace and reads it back.
func ExampleNew() {
	dir, err := os.MkdirTemp("", "tsnotebook-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	ws, err := tsnotebook.New(dir, tsnotebook.WithoutConfigFile())
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	if _, err := ws.Store.Create(ctx, "starter.tsqnb", false); err != nil {
		log.Fatal(err)
	}
	res, err := ws.Store.Open(ctx, "starter.tsqnb")
	if err != nil {
		log.Fatal(err)
	}
	for _, cell := range res.Document.Cells {
		fmt.Printf("%s: %s\n", cell.LanguageID, cell.Source)
	}
	// Output:
	// javascript: const x = 1;
	// scm: (identifier) @identifier
}

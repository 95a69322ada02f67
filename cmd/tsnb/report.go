package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/aretw0/tsnotebook/pkg/codec"
	"github.com/aretw0/tsnotebook/pkg/core"
	"github.com/aretw0/tsnotebook/pkg/store"
)

var (
	okColor      = color.New(color.FgGreen, color.Bold)
	warnColor    = color.New(color.FgYellow, color.Bold)
	failColor    = color.New(color.FgRed, color.Bold)
	defaultColor = color.New(color.FgCyan, color.Bold)
)

// printResult writes one diagnostics block for a checked notebook.
func printResult(w io.Writer, res store.Result) {
	if !res.OK() {
		fmt.Fprintf(w, "%s %s: %v\n", failColor.Sprint("FAIL   "), res.Path, res.Err)
		return
	}

	r := res.Report
	switch {
	case r.Defaulted && r.DefaultReason == codec.DefaultEmptyInput:
		fmt.Fprintf(w, "%s %s: empty file, opens as the starter notebook\n", defaultColor.Sprint("DEFAULT"), res.Path)
	case r.Defaulted:
		fmt.Fprintf(w, "%s %s: no valid cells (%d dropped), opens as the starter notebook\n",
			defaultColor.Sprint("DEFAULT"), res.Path, len(r.Dropped))
	case len(r.Dropped) > 0:
		fmt.Fprintf(w, "%s %s: %d of %d cells dropped\n", warnColor.Sprint("WARN   "), res.Path, len(r.Dropped), r.Total)
	default:
		fmt.Fprintf(w, "%s %s (%d cells)\n", okColor.Sprint("OK     "), res.Path, r.Kept)
	}

	for _, d := range r.Dropped {
		fmt.Fprintf(w, "        cell %d: %s\n", d.Index, strings.ReplaceAll(string(d.Reason), "_", " "))
	}
	if !r.Defaulted {
		for _, i := range res.Unregistered {
			fmt.Fprintf(w, "        cell %d: unregistered language %q\n", i, res.Document.Cells[i].LanguageID)
		}
	}
}

// describeCell renders a one-line header for show.
func describeCell(i int, c core.Cell) string {
	return fmt.Sprintf("[%d] %s %s", i, c.Kind, c.LanguageID)
}

package core

const (
	sampleSource = "const x = 1;"
	sampleQuery  = "(identifier) @identifier"
)

// NewDefault returns the starter notebook: a sample source cell followed by a
// query cell that matches it. It is used for new files and as the fallback
// when nothing in a file can be salvaged.
func NewDefault() Document {
	return Document{
		Cells: []Cell{
			{Kind: CellKindCode, LanguageID: SampleLanguageID, Source: sampleSource},
			{Kind: CellKindCode, LanguageID: QueryLanguageID, Source: sampleQuery},
		},
	}
}

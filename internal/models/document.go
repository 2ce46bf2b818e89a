package models

// DocumentSection is one titled, ordered block of a composed document.
// Number is zero for unnumbered blocks (header, recital, signatures).
// The section model is layout-agnostic: the PDF, spreadsheet, and plain
// text renderers all consume the same slice.
type DocumentSection struct {
	Number int            `json:"number,omitempty"`
	Title  string         `json:"title,omitempty"`
	Body   string         `json:"body,omitempty"`
	Lines  []DocumentLine `json:"lines,omitempty"`
}

// DocumentLine is a single line inside a section, optionally part of an
// indexed sub-list (Index > 0) and optionally emphasized.
type DocumentLine struct {
	Index int    `json:"index,omitempty"`
	Text  string `json:"text"`
	Bold  bool   `json:"bold,omitempty"`
}

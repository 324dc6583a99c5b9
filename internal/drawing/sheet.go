package drawing

import (
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// PrinterConfig carries the sheet-level page settings consulted when
// exporting (page width and height, and whether the A3 edge limit
// applies), read from the active extract's configuration.
type PrinterConfig struct {
	PageWidth  float64
	PageHeight float64
	LimitA3    bool
}

// Sheet is an ordered sequence of drawables plus the active voice list and
// printer config (spec §3.6).
type Sheet struct {
	Drawables []Drawable
	Voices    []int
	Printer   PrinterConfig
}

// NewSheet returns an empty Sheet for the given active voices.
func NewSheet(voices []int, printer PrinterConfig) *Sheet {
	return &Sheet{Voices: voices, Printer: printer}
}

// Add appends d to the sheet and returns its index.
func (s *Sheet) Add(d Drawable) int {
	s.Drawables = append(s.Drawables, d)
	return len(s.Drawables) - 1
}

// MarshalJSON-compatible export used by cmd/zupfnoter and by renderer test
// fixtures; jsoniter is used for identical reasons to internal/config (spec
// SPEC_FULL.md ambient stack).
func (s *Sheet) ToJSON() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// FromJSON reconstructs a Sheet previously produced by ToJSON, used by test
// fixtures that compare against a golden rendering.
func FromJSON(data []byte) (*Sheet, error) {
	var s Sheet
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

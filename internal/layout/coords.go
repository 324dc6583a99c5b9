// Package layout implements the Layout Engine (C4): given a Song and an
// extract, it produces a drawing.Sheet (spec §4.4).
package layout

import "strconv"

// Default geometry constants, overridable per-extract through the
// configuration stack under "layout.<NAME>". Units are millimeters except
// where noted.
const (
	DefaultPitchOffset      = 0.0
	DefaultXSpacing         = 3.5
	DefaultXOffset          = 10.0
	DefaultBeatResolution   = 255.0
	DefaultEllipseSize      = 2.8
	DefaultYScale           = 4.0
	DefaultDrawingHeight    = 400.0
	DefaultPackMinIncrement = 0.3
	DefaultPackMaxSpread    = 12.0

	a3LeftMargin  = 5.0
	a3RightMargin = 415.0
)

// styleEntry is one DURATION_TO_STYLE row: the beat-compression size
// weight and the rendered fill/dotted style of a note bucket (spec
// §4.4.2-4.4.3).
type styleEntry struct {
	SizeWeight float64
	Filled     bool
	Dotted     bool
}

// DurationToStyle is keyed by bucket key "d<n>", with "err" as the
// fallback for an unrecognized bucket.
var DurationToStyle = map[string]styleEntry{
	"d1":  {SizeWeight: 4, Filled: false, Dotted: false},
	"d2":  {SizeWeight: 3, Filled: false, Dotted: false},
	"d3":  {SizeWeight: 3, Filled: false, Dotted: true},
	"d4":  {SizeWeight: 2, Filled: false, Dotted: false},
	"d6":  {SizeWeight: 2, Filled: false, Dotted: true},
	"d8":  {SizeWeight: 1.5, Filled: true, Dotted: false},
	"d12": {SizeWeight: 1.5, Filled: true, Dotted: true},
	"d16": {SizeWeight: 1, Filled: true, Dotted: false},
	"d24": {SizeWeight: 1, Filled: true, Dotted: true},
	"d32": {SizeWeight: 0.75, Filled: true, Dotted: false},
	"d48": {SizeWeight: 0.75, Filled: true, Dotted: true},
	"d64": {SizeWeight: 0.5, Filled: true, Dotted: false},
	"err": {SizeWeight: 2, Filled: false, Dotted: false},
}

// durationBucketKey turns a normalized duration into its DURATION_TO_STYLE
// key, falling back to "err" for a bucket the table does not cover.
func durationBucketKey(d int) string {
	key := "d" + strconv.Itoa(d)
	if _, ok := DurationToStyle[key]; ok {
		return key
	}
	return "err"
}

// Geometry bundles the resolved constants for one layout pass, read once
// from the configuration stack so every coordinate helper shares the same
// snapshot (spec §5: C4 never calls set/pop mid-render).
type Geometry struct {
	PitchOffset      float64
	XSpacing         float64
	XOffset          float64
	BeatResolution   float64
	EllipseSize      float64
	YScale           float64
	DrawingHeight    float64
	PackMinIncrement float64
	PackMaxSpread    float64
	LimitA3          bool
	BottomUp         bool
}

// PitchToX implements spec §4.4.1: x = (PITCH_OFFSET + p) * X_SPACING + X_OFFSET.
func (g Geometry) PitchToX(pitch int) float64 {
	return (g.PitchOffset + float64(pitch)) * g.XSpacing + g.XOffset
}

// NearA3Edge reports whether x falls within the shift zone near an A3
// sheet's horizontal edges (spec §4.4.3).
func (g Geometry) NearA3Edge(x float64) bool {
	return g.LimitA3 && (x < a3LeftMargin || x > a3RightMargin)
}

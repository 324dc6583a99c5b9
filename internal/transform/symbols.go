// Package transform implements the music transformer (C3): a per-voice
// state machine that consumes the symbol stream produced by
// internal/abcadapter and builds a harpnote.Song (spec §4.3).
package transform

// NoteRaw is the NOTE symbol payload the parser provides, carried in
// abcadapter.Symbol.Raw.
type NoteRaw struct {
	Pitches       []int // MIDI pitches; >1 means a chord (SynchPoint)
	Duration      int   // parser ticks (of ParserWholeTicks per whole note)
	TieForward    []bool
	SlurStartBits uint16 // one nibble per open slur, per spec §4.3.1
	SlurEndCount  int
	TupletP       float64
	Decorations   []string
	Annotations   []string // chord-annotation lines attached to this symbol
}

// RestRaw is the REST symbol payload.
type RestRaw struct {
	Duration    int
	Annotations []string
}

// BarRaw is the BAR symbol payload.
type BarRaw struct {
	BarType     string // e.g. "|", "|:", ":|", "|1", "|2", "::"
	RbStart     int    // volta-open marker (2 = opens)
	RbStop      int    // volta-close marker (2 = closes)
	Label       string // the volta bracket's label, if any
	Annotations []string
}

// MeterRaw is the METER symbol payload.
type MeterRaw struct {
	Num int
	Den int
}

// PartRaw is the PART symbol payload.
type PartRaw struct {
	Label string
}

const (
	// ParserWholeTicks is the parser's ticks-per-whole-note resolution.
	ParserWholeTicks = 1536
)

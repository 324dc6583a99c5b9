package layout

import "github.com/schollz/zupfnoter/internal/harpnote"

// SynchPair names two voice indices whose Playables should be
// cross-synchronized (spec §4.4.4).
type SynchPair struct {
	V1, V2 int
}

// BarNumbers configures which voices carry measure-count annotations and
// the text prefix placed before the number (spec §4.4.5).
type BarNumbers struct {
	Voices []int
	Prefix string
}

// StringNames configures the headline row of string-position labels (spec
// §4.4.5), one label per vertical strip in pitch order.
type StringNames struct {
	Text []string
}

// ExtractNote is a free-standing annotation at an absolute sheet position
// (spec §4.4.5).
type ExtractNote struct {
	Text string
	Pos  harpnote.Point
}

// Extract names one rendering configuration: which voices to lay out,
// which of those are subflowlines, which pairs cross-synchronize, and the
// annotation rows to add (spec §4.4).
type Extract struct {
	LayoutLines  []int
	SubflowLines map[int]bool
	SynchLines   []SynchPair
	BarNumbers   BarNumbers
	StringNames  StringNames
	Notes        []ExtractNote
}

// Package harpnote defines the Harpnote music model: the polymorphic music
// entities (spec §3.3), voices and songs (spec §3.4-3.5) that the
// transformer (internal/transform) builds and the layout engine
// (internal/layout) consumes.
//
// Notes form a doubly linked prev/next chain the way collidertracker links
// playback state across phrase rows, except here ownership is explicit:
// a Voice owns its entities in an ordered slice and prev/next links are
// indices into that slice (design note in spec §9), which sidesteps cycle
// management that real pointer cycles would require.
package harpnote

import "fmt"

// Kind tags which of the seven music-entity variants a MusicEntity is.
type Kind int

const (
	KindNote Kind = iota
	KindSynchPoint
	KindPause
	KindNoteBoundAnnotation
	KindMeasureStart
	KindNewPart
	KindGoto
)

func (k Kind) String() string {
	switch k {
	case KindNote:
		return "Note"
	case KindSynchPoint:
		return "SynchPoint"
	case KindPause:
		return "Pause"
	case KindNoteBoundAnnotation:
		return "NoteBoundAnnotation"
	case KindMeasureStart:
		return "MeasureStart"
	case KindNewPart:
		return "NewPart"
	case KindGoto:
		return "Goto"
	default:
		return "Unknown"
	}
}

// Origin back-references a music entity into the ABC source text.
// Invariant: 0 <= StartChar <= EndChar <= len(text). Origins are immutable
// once created.
type Origin struct {
	StartChar int
	EndChar   int
	RawRef    string
}

// NewOrigin validates and constructs an Origin.
func NewOrigin(startChar, endChar int, rawRef string) (Origin, error) {
	if startChar < 0 || startChar > endChar {
		return Origin{}, fmt.Errorf("harpnote: invalid origin range [%d,%d]", startChar, endChar)
	}
	return Origin{StartChar: startChar, EndChar: endChar, RawRef: rawRef}, nil
}

// ZnID returns the stable per-render identifier for a music entity at the
// given origin start and parser time: "<startChar>_<time>" (spec §9). It is
// the join key between entities, drawables and per-instance configuration
// overrides.
func ZnID(startChar, time int) string {
	return fmt.Sprintf("%d_%d", startChar, time)
}

// MusicEntity is implemented by all seven variants in the music model.
type MusicEntity interface {
	Kind() Kind
	Origin() Origin
	ZnID() string
	Visible() bool
	SetVisible(bool)
}

// Playable is implemented by the three variants that occupy time and
// space on the sheet: Note, SynchPoint and Pause. SynchPoint implements it
// as a capability shim rather than through inheritance: its timing, pitch,
// duration, part and variant accessors forward to its proxy note (the last
// constituent in declaration order), while SetBeat and SetMeasureStart
// apply to every constituent.
type Playable interface {
	MusicEntity
	Time() int
	Beat() float64
	SetBeat(float64)
	Pitch() int
	Duration() int
	MeasureStart() bool
	SetMeasureStart(bool)
	FirstInPart() bool
	SetFirstInPart(bool)
	Variant() int
}

// Decoration is a single ABC decoration mark (e.g. staccato, fermata)
// attached to a note.
type Decoration string

// Duration buckets accepted by the model: a power-of-two series clamped at
// the extremes, per spec §3.3.
var DurationBuckets = []int{1, 2, 3, 4, 6, 8, 12, 16, 24, 32, 48, 64}

// NormalizeDuration clamps d into the nearest accepted bucket, used by the
// transformer when normalizing parser ticks (spec §4.3.1).
func NormalizeDuration(d int) int {
	if d < DurationBuckets[0] {
		return DurationBuckets[0]
	}
	last := DurationBuckets[len(DurationBuckets)-1]
	if d > last {
		return last
	}
	best := DurationBuckets[0]
	bestDiff := abs(d - best)
	for _, b := range DurationBuckets[1:] {
		if diff := abs(d - b); diff < bestDiff {
			best, bestDiff = b, diff
		}
	}
	return best
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Shift is the horizontal nudge applied near the edge of an A3 sheet.
type Shift int

const (
	ShiftNone Shift = iota
	ShiftLeft
	ShiftRight
)

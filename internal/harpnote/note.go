package harpnote

import "github.com/schollz/zupfnoter/internal/zerr"

// Note is a single pitched, timed event. Prev/next pitch and prev/next
// playable form a doubly linked chain within a voice; here they are
// indices into the owning Voice.Entities slice (-1 meaning "none"), per
// the arena+index ownership design note in spec §9.
type Note struct {
	origin Origin
	znid   string

	time     int
	beat     float64
	visible  bool
	measure  bool
	firstPrt bool

	Pitch_    int
	Dur       int
	TieStart  bool
	TieEnd    bool
	SlurStart []int // open slur indices started at this note
	SlurEnd   int   // count of slurs closed at this note

	TupletFactor     float64
	TupletStart      bool
	TupletEnd        bool
	MeasureCount     int
	CountNote        string
	VariantNo        int // 0 = none, otherwise positive ordinal
	Decorations      []Decoration
	NoteShift        Shift

	PrevPitchIdx    int // index of previous Note by pitch chain, -1 if none
	NextPitchIdx    int
	PrevPlayableIdx int
	NextPlayableIdx int

	// NextFirstInPart records that the note immediately following this one
	// (by voice order) opens a new part, per spec §4.3.2 step 1.
	NextFirstInPart bool
}

// NewNote constructs a Note, validating the non-null-pitch invariant from
// spec §7 (InvariantViolation).
func NewNote(origin Origin, time int, pitch, dur int) (*Note, error) {
	if pitch < 0 {
		return nil, invariantNilPitch()
	}
	n := &Note{
		origin:          origin,
		znid:            ZnID(origin.StartChar, time),
		time:            time,
		visible:         true,
		Pitch_:          pitch,
		Dur:             dur,
		VariantNo:       0,
		PrevPitchIdx:    -1,
		NextPitchIdx:    -1,
		PrevPlayableIdx: -1,
		NextPlayableIdx: -1,
	}
	return n, nil
}

func (n *Note) Kind() Kind           { return KindNote }
func (n *Note) Origin() Origin       { return n.origin }
func (n *Note) ZnID() string         { return n.znid }
func (n *Note) Visible() bool        { return n.visible }
func (n *Note) SetVisible(v bool)    { n.visible = v }
func (n *Note) Time() int            { return n.time }
func (n *Note) Beat() float64        { return n.beat }
func (n *Note) SetBeat(b float64)    { n.beat = b }
func (n *Note) Pitch() int           { return n.Pitch_ }
func (n *Note) Duration() int        { return n.Dur }
func (n *Note) MeasureStart() bool   { return n.measure }
func (n *Note) SetMeasureStart(v bool) { n.measure = v }
func (n *Note) FirstInPart() bool    { return n.firstPrt }
func (n *Note) SetFirstInPart(v bool) { n.firstPrt = v }
func (n *Note) Variant() int         { return n.VariantNo }

// Pause is a rest: same shape as Note but pitched by surrounding context
// (spec §4.3.1).
type Pause struct {
	origin  Origin
	znid    string
	time    int
	beat    float64
	visible bool
	measure bool
	firstPrt bool

	Pitch_       int
	Dur          int
	CountNote    string
	VariantNo    int
	PrevPitchVal int // the previous playable's pitch, for repeat-end reset
}

func NewPause(origin Origin, time int, dur int) *Pause {
	return &Pause{
		origin:  origin,
		znid:    ZnID(origin.StartChar, time),
		time:    time,
		visible: true,
		Dur:     dur,
	}
}

func (p *Pause) Kind() Kind             { return KindPause }
func (p *Pause) Origin() Origin         { return p.origin }
func (p *Pause) ZnID() string           { return p.znid }
func (p *Pause) Visible() bool          { return p.visible }
func (p *Pause) SetVisible(v bool)      { p.visible = v }
func (p *Pause) Time() int              { return p.time }
func (p *Pause) Beat() float64          { return p.beat }
func (p *Pause) SetBeat(b float64)      { p.beat = b }
func (p *Pause) Pitch() int             { return p.Pitch_ }
func (p *Pause) Duration() int          { return p.Dur }
func (p *Pause) MeasureStart() bool     { return p.measure }
func (p *Pause) SetMeasureStart(v bool) { p.measure = v }
func (p *Pause) FirstInPart() bool      { return p.firstPrt }
func (p *Pause) SetFirstInPart(v bool)  { p.firstPrt = v }
func (p *Pause) Variant() int           { return p.VariantNo }

// SynchPoint is a set of >=2 Notes played simultaneously (a chord). It acts
// polymorphically as a Playable by delegating to its proxy note, the last
// note in declaration order.
type SynchPoint struct {
	origin  Origin
	znid    string
	visible bool

	Notes []*Note
}

// NewSynchPoint builds a SynchPoint from >=2 notes sharing the same time;
// the last note in declaration order becomes the proxy.
func NewSynchPoint(origin Origin, notes []*Note) (*SynchPoint, error) {
	if len(notes) < 2 {
		return nil, invariantTooFewNotes()
	}
	t := notes[0].Time()
	for _, n := range notes {
		if n.Time() != t {
			return nil, invariantSynchPointTimeMismatch()
		}
	}
	return &SynchPoint{
		origin:  origin,
		znid:    ZnID(origin.StartChar, t),
		visible: true,
		Notes:   notes,
	}, nil
}

func (s *SynchPoint) proxy() *Note { return s.Notes[len(s.Notes)-1] }

// Proxy exposes the chord's proxy note, the carrier of the arena-index
// prev/next pitch and prev/next playable chain (spec §3.3) for entities
// that wrap more than one Note.
func (s *SynchPoint) Proxy() *Note { return s.proxy() }

func (s *SynchPoint) Kind() Kind        { return KindSynchPoint }
func (s *SynchPoint) Origin() Origin    { return s.origin }
func (s *SynchPoint) ZnID() string      { return s.znid }
func (s *SynchPoint) Visible() bool     { return s.visible }
func (s *SynchPoint) SetVisible(v bool) { s.visible = v }
func (s *SynchPoint) Time() int         { return s.proxy().Time() }
func (s *SynchPoint) Beat() float64     { return s.proxy().Beat() }
func (s *SynchPoint) SetBeat(b float64) {
	// Setting beat on a chord propagates to every constituent note.
	for _, n := range s.Notes {
		n.SetBeat(b)
	}
}
func (s *SynchPoint) Pitch() int               { return s.proxy().Pitch() }
func (s *SynchPoint) Duration() int            { return s.proxy().Duration() }
func (s *SynchPoint) MeasureStart() bool       { return s.proxy().MeasureStart() }
func (s *SynchPoint) SetMeasureStart(v bool) {
	for _, n := range s.Notes {
		n.SetMeasureStart(v)
	}
}
func (s *SynchPoint) FirstInPart() bool      { return s.proxy().FirstInPart() }
func (s *SynchPoint) SetFirstInPart(v bool)  { s.proxy().SetFirstInPart(v) }
func (s *SynchPoint) Variant() int           { return s.proxy().Variant() }

func invariantNilPitch() error {
	return &zerr.InvariantViolation{Message: "note constructed with negative/null pitch"}
}
func invariantTooFewNotes() error {
	return &zerr.InvariantViolation{Message: "synch point requires at least 2 notes"}
}
func invariantSynchPointTimeMismatch() error {
	return &zerr.InvariantViolation{Message: "synch point notes do not share the same time"}
}

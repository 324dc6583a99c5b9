package transform

import "github.com/schollz/zupfnoter/internal/harpnote"

// variantEntry is one bracket of a variant-ending group: the first
// playable inside it (RBStart), the note that closes it (RBStop), and the flags
// driving jump synthesis (spec §4.3.3).
type variantEntry struct {
	RBStart    harpnote.Playable
	RBStop     harpnote.Playable
	Distance   []int
	RepeatEnd  bool
	IsFollowup bool
}

// nextNoteMarks are pending flags applied to the next playable produced,
// then cleared (spec §4.3 table).
type nextNoteMarks struct {
	measure        bool
	repeatStart    bool
	firstInPart    bool
	variantEnding  bool
	variantFollowup bool
	variantLabel   string
}

// voiceState is the mutable per-voice state reset at the start of every
// voice transform (spec §4.3 table).
type voiceState struct {
	measureCount     int
	measureStartTime int
	repetitionStack  []harpnote.Playable

	marks nextNoteMarks

	previousNote harpnote.Playable

	// prevIndexable/prevIndexableIdx track the last Note or SynchPoint
	// entity appended to the voice, for wiring the arena+index prev/next
	// pitch and prev/next playable chain (spec §3.3, §4.3.2 step 1). Pause
	// carries no such chain, so it is transparent to this tracking: a rest
	// does not break the pitch/playable link between the notes around it.
	prevIndexable    *harpnote.Note
	prevIndexableIdx int

	variantEndings [][]variantEntry
	variantNo      int

	tieStarted bool
	slurStack  []int

	tupletP float64
	countBy int
	wMeasure int

	// currentTime is the running tick clock for this voice, counted in
	// normalized 64th-note ticks (the duration bucket scale), not in raw
	// parser ticks: every NOTE/REST symbol is stamped with the accumulated
	// normalized duration of every symbol before it, then advances it by
	// its own normalized duration.
	currentTime int

	partTable map[int]string

	justCrossedRepeatEnd bool

	jumpTargets    map[string]harpnote.Playable
	pendingSources []pendingGotoSource
}

// pendingGotoSource is a note-bound "@<label>@<n>,<n>,<n>" annotation
// whose target may not have been registered yet (a ":<label>" marker
// appearing later in the voice); resolved once the whole voice has been
// scanned.
type pendingGotoSource struct {
	From     harpnote.Playable
	Label    string
	Distance []int
	Origin   harpnote.Origin
}

func newVoiceState(wMeasure, countBy int) *voiceState {
	return &voiceState{
		tupletP:          1,
		countBy:          countBy,
		wMeasure:         wMeasure,
		partTable:        map[int]string{},
		variantEndings:   [][]variantEntry{{}},
		jumpTargets:      map[string]harpnote.Playable{},
		prevIndexableIdx: -1,
	}
}

func (st *voiceState) currentVariantGroup() []variantEntry {
	return st.variantEndings[len(st.variantEndings)-1]
}

func (st *voiceState) setCurrentVariantGroup(g []variantEntry) {
	st.variantEndings[len(st.variantEndings)-1] = g
}

func (st *voiceState) openVariantGroup() {
	st.variantEndings = append(st.variantEndings, []variantEntry{})
}

func (st *voiceState) pushRepeat(p harpnote.Playable) {
	st.repetitionStack = append(st.repetitionStack, p)
}

func (st *voiceState) topRepeat() harpnote.Playable {
	if len(st.repetitionStack) == 0 {
		return nil
	}
	return st.repetitionStack[len(st.repetitionStack)-1]
}

func (st *voiceState) popRepeat() {
	if len(st.repetitionStack) > 0 {
		st.repetitionStack = st.repetitionStack[:len(st.repetitionStack)-1]
	}
}

func (st *voiceState) duplicateTopRepeat() {
	if len(st.repetitionStack) > 0 {
		st.pushRepeat(st.topRepeat())
	}
}

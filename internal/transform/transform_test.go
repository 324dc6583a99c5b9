package transform

import (
	"testing"

	"github.com/schollz/zupfnoter/internal/abcadapter"
	"github.com/schollz/zupfnoter/internal/config"
	"github.com/schollz/zupfnoter/internal/harpnote"
	"github.com/stretchr/testify/assert"
)

// chain builds a linked Symbol list from the given symbols, setting Next
// pointers in order; StartChar/EndChar are assigned sequentially so each
// symbol carries a distinct origin.
func chain(syms ...*abcadapter.Symbol) *abcadapter.Symbol {
	for i := 0; i < len(syms)-1; i++ {
		syms[i].Next = syms[i+1]
	}
	for i, s := range syms {
		s.StartChar = i * 2
		s.EndChar = i*2 + 1
	}
	return syms[0]
}

func noteSym(pitch int, dur int) *abcadapter.Symbol {
	return &abcadapter.Symbol{Kind: abcadapter.SymNOTE, Tag: "note", Raw: NoteRaw{Pitches: []int{pitch}, Duration: dur}}
}

func restSym(dur int) *abcadapter.Symbol {
	return &abcadapter.Symbol{Kind: abcadapter.SymREST, Tag: "rest", Raw: RestRaw{Duration: dur}}
}

func barSym(barType string) *abcadapter.Symbol {
	return &abcadapter.Symbol{Kind: abcadapter.SymBAR, Tag: "bar", Raw: BarRaw{BarType: barType}}
}

func partSym(label string) *abcadapter.Symbol {
	return &abcadapter.Symbol{Kind: abcadapter.SymPART, Tag: "part", Raw: PartRaw{Label: label}}
}

// TestTransformSimpleNoteSequence covers S1: a flat run of notes produces
// one Playable per note, in order, with no Goto entities synthesized.
func TestTransformSimpleNoteSequence(t *testing.T) {
	head := chain(noteSym(60, 384), noteSym(62, 384), noteSym(64, 384))

	tr := New(config.NewStack())
	song, errs := tr.Run(map[int]*abcadapter.Symbol{1: head})
	assert.Empty(t, errs)

	voice := song.Voices[1]
	assert.Len(t, voice.Playables(), 3)
	assert.Empty(t, voice.Gotos())

	pitches := []int{}
	for _, p := range voice.Playables() {
		pitches = append(pitches, p.Pitch())
	}
	assert.Equal(t, []int{60, 62, 64}, pitches)
}

// TestTransformChordProducesSynchPoint covers a multi-pitch NOTE symbol
// collapsing into one SynchPoint Playable proxying its last note.
func TestTransformChordProducesSynchPoint(t *testing.T) {
	chordSym := &abcadapter.Symbol{Kind: abcadapter.SymNOTE, Tag: "note", Raw: NoteRaw{Pitches: []int{60, 64, 67}, Duration: 384}}
	head := chain(chordSym)

	tr := New(config.NewStack())
	song, errs := tr.Run(map[int]*abcadapter.Symbol{1: head})
	assert.Empty(t, errs)

	playables := song.Voices[1].Playables()
	assert.Len(t, playables, 1)
	sp, ok := playables[0].(*harpnote.SynchPoint)
	assert.True(t, ok, "chord should produce a SynchPoint")
	assert.Equal(t, 67, sp.Pitch(), "proxy is the last-declared note")
}

// TestTransformRestInheritsPrecedingPitch covers §4.3.1 rest-positioning:
// with the default "previous" mode a rest takes the pitch of the preceding
// playable.
func TestTransformRestInheritsPrecedingPitch(t *testing.T) {
	head := chain(noteSym(65, 384), restSym(384))

	tr := New(config.NewStack())
	song, errs := tr.Run(map[int]*abcadapter.Symbol{1: head})
	assert.Empty(t, errs)

	playables := song.Voices[1].Playables()
	assert.Len(t, playables, 2)
	assert.Equal(t, 65, playables[1].Pitch())
}

// TestTransformLeadingRestInheritsFollowingPitch covers the case where no
// preceding playable exists: the rest falls back to the next note's pitch.
func TestTransformLeadingRestInheritsFollowingPitch(t *testing.T) {
	head := chain(restSym(384), noteSym(72, 384))

	tr := New(config.NewStack())
	song, errs := tr.Run(map[int]*abcadapter.Symbol{1: head})
	assert.Empty(t, errs)

	playables := song.Voices[1].Playables()
	assert.Equal(t, 72, playables[0].Pitch())
}

// TestTransformRepeatEndSynthesizesGoto covers a plain "A|:B:|" style repeat:
// the repeat-end bar synthesizes one Goto back to the repeat-start note.
func TestTransformRepeatEndSynthesizesGoto(t *testing.T) {
	head := chain(
		noteSym(60, 384),
		barSym("|:"),
		noteSym(62, 384),
		noteSym(64, 384),
		barSym(":|"),
	)

	tr := New(config.NewStack())
	song, errs := tr.Run(map[int]*abcadapter.Symbol{1: head})
	assert.Empty(t, errs)

	gotos := song.Voices[1].Gotos()
	assert.Len(t, gotos, 1)
	assert.Equal(t, 62, gotos[0].To.Pitch(), "goto targets the note immediately after the repeat-start bar")
	assert.Equal(t, 64, gotos[0].From.Pitch(), "goto originates at the note before the repeat-end bar")
	assert.True(t, gotos[0].Policy.IsRepeat)
}

// TestTransformChordAnnotationRegistersJumpTarget covers ":<label>" /
// "@<label>@n" chord annotations: a jump target registered on one note is
// resolved into a Goto once the source annotation is scanned.
func TestTransformChordAnnotationRegistersJumpTarget(t *testing.T) {
	target := noteSym(60, 384)
	target.Raw = NoteRaw{Pitches: []int{60}, Duration: 384, Annotations: []string{":coda"}}

	source := noteSym(67, 384)
	source.Raw = NoteRaw{Pitches: []int{67}, Duration: 384, Annotations: []string{"@coda@-10,10"}}

	head := chain(target, source)

	tr := New(config.NewStack())
	song, errs := tr.Run(map[int]*abcadapter.Symbol{1: head})
	assert.Empty(t, errs)

	gotos := song.Voices[1].Gotos()
	assert.Len(t, gotos, 1)
	assert.Equal(t, 67, gotos[0].From.Pitch())
	assert.Equal(t, 60, gotos[0].To.Pitch())
	assert.Equal(t, []int{-10, 10}, gotos[0].Policy.Distance)
}

// TestTransformMeasureStartFlagsFirstNoteOfBar ensures crossing a plain bar
// marks the following playable as a measure start.
func TestTransformMeasureStartFlagsFirstNoteOfBar(t *testing.T) {
	head := chain(noteSym(60, 384), barSym("|"), noteSym(62, 384))

	tr := New(config.NewStack())
	song, errs := tr.Run(map[int]*abcadapter.Symbol{1: head})
	assert.Empty(t, errs)

	playables := song.Voices[1].Playables()
	assert.False(t, playables[0].MeasureStart())
	assert.True(t, playables[1].MeasureStart())
}

// TestTransformVoiceZeroAliasIsSkippedAsSourceChain ensures the transformer
// never tries to process voiceChains[0] as an independent source (spec
// §3.4: voice 0 is an alias of voice 1, assigned once AddVoice runs).
func TestTransformVoiceZeroAliasIsSkippedAsSourceChain(t *testing.T) {
	head := chain(noteSym(60, 384))

	tr := New(config.NewStack())
	song, errs := tr.Run(map[int]*abcadapter.Symbol{0: head, 1: head})
	assert.Empty(t, errs)

	assert.Same(t, song.Voices[1], song.Voices[0], "index 0 aliases the same physical voice as index 1")
	assert.Len(t, song.BeatMaps, 2, "aliasing still yields a beat map entry per index")
}

// TestTransformPartLabelAttachesAtMatchingNote covers §4.3.2 steps 1-2: a
// PART symbol registers its label at the running tick clock, and the next
// note sharing that time is flagged firstInPart with a synthesized
// NoteBoundAnnotation carrying the label.
func TestTransformPartLabelAttachesAtMatchingNote(t *testing.T) {
	head := chain(partSym("B"), noteSym(60, 384), noteSym(62, 384))

	tr := New(config.NewStack())
	song, errs := tr.Run(map[int]*abcadapter.Symbol{1: head})
	assert.Empty(t, errs)

	voice := song.Voices[1]
	playables := voice.Playables()
	assert.True(t, playables[0].FirstInPart(), "first note after the PART symbol should open the part")
	assert.False(t, playables[1].FirstInPart())

	var found bool
	for _, ann := range voice.NoteBoundAnnotations() {
		if ann.Text == "B" {
			found = true
		}
	}
	assert.True(t, found, "part label should be synthesized as a NoteBoundAnnotation")
}

// TestTransformLinksPrevNextPitchAndPlayableChain covers the arena+index
// bidirectional chain (spec §3.3, §4.3.2 step 1): consecutive Note
// entities link PrevPitchIdx/NextPitchIdx and PrevPlayableIdx/
// NextPlayableIdx to each other's index within Voice.Entities, and the
// predecessor of a part-opening note records NextFirstInPart.
func TestTransformLinksPrevNextPitchAndPlayableChain(t *testing.T) {
	head := chain(noteSym(60, 384), partSym("B"), noteSym(62, 384))

	tr := New(config.NewStack())
	song, errs := tr.Run(map[int]*abcadapter.Symbol{1: head})
	assert.Empty(t, errs)

	voice := song.Voices[1]
	first, ok := voice.Entities[0].(*harpnote.Note)
	assert.True(t, ok)
	second, ok := voice.Entities[1].(*harpnote.Note)
	assert.True(t, ok)

	assert.Equal(t, -1, first.PrevPitchIdx)
	assert.Equal(t, 1, first.NextPitchIdx)
	assert.Equal(t, -1, first.PrevPlayableIdx)
	assert.Equal(t, 1, first.NextPlayableIdx)
	assert.True(t, first.NextFirstInPart, "predecessor of a part-opening note records NextFirstInPart")

	assert.Equal(t, 0, second.PrevPitchIdx)
	assert.Equal(t, -1, second.NextPitchIdx)
	assert.Equal(t, 0, second.PrevPlayableIdx)
	assert.Equal(t, -1, second.NextPlayableIdx)
}

package transform

import (
	"math"
	"strconv"

	"github.com/schollz/zupfnoter/internal/abcadapter"
	"github.com/schollz/zupfnoter/internal/harpnote"
	"github.com/schollz/zupfnoter/internal/zerr"
)

// normalizeDurationTicks converts a parser-resolution duration into the
// model's tick domain: clamp(1, round(rawDur/PARSER_WHOLE * shortestNote),
// 128), per spec §4.3.1. The caller then buckets the result with
// harpnote.NormalizeDuration.
func normalizeDurationTicks(rawDur, shortestNote int) int {
	d := int(math.Round(float64(rawDur) / float64(ParserWholeTicks) * float64(shortestNote)))
	if d < 1 {
		d = 1
	}
	if d > 128 {
		d = 128
	}
	return d
}

func toDecorations(raw []string) []harpnote.Decoration {
	out := make([]harpnote.Decoration, len(raw))
	for i, s := range raw {
		out[i] = harpnote.Decoration(s)
	}
	return out
}

func (t *Transformer) shortestNote() int {
	return confInt(t.conf, "SHORTEST_NOTE", 64)
}

func (t *Transformer) handleNote(sym *abcadapter.Symbol, voice *harpnote.Voice, st *voiceState) error {
	raw, ok := sym.Raw.(NoteRaw)
	if !ok {
		return transformErr("note symbol missing NoteRaw payload", sym, voice.Index)
	}
	if len(raw.Pitches) == 0 {
		return transformErr("note symbol carries no pitches", sym, voice.Index)
	}
	dur := harpnote.NormalizeDuration(normalizeDurationTicks(raw.Duration, t.shortestNote()))
	o := origin(sym)

	// time advances in 64th-note ticks (the same scale as the normalized
	// duration bucket), so 16 ticks make one layout beat (a quarter note).
	noteTime := st.currentTime
	st.currentTime += dur

	notes := make([]*harpnote.Note, 0, len(raw.Pitches))
	anyTieForward := false
	for i, pitch := range raw.Pitches {
		n, err := harpnote.NewNote(o, noteTime, pitch, dur)
		if err != nil {
			return err
		}
		n.TupletFactor = st.tupletP
		n.MeasureCount = st.measureCount
		n.Decorations = toDecorations(raw.Decorations)
		n.TieEnd = st.tieStarted
		if i < len(raw.TieForward) && raw.TieForward[i] {
			anyTieForward = true
		}
		notes = append(notes, n)
	}
	st.tieStarted = anyTieForward

	for nibble := uint(0); nibble < 4; nibble++ {
		if (raw.SlurStartBits>>(nibble*4))&0xF != 0 {
			st.slurStack = append(st.slurStack, int(nibble))
			for _, n := range notes {
				n.SlurStart = append(n.SlurStart, int(nibble))
			}
		}
	}
	for i := 0; i < raw.SlurEndCount && len(st.slurStack) > 0; i++ {
		st.slurStack = st.slurStack[:len(st.slurStack)-1]
	}
	if raw.TupletP != 0 {
		st.tupletP = raw.TupletP
	}

	var playable harpnote.Playable
	var idx int
	if len(notes) == 1 {
		playable = notes[0]
		idx = voice.Append(notes[0])
	} else {
		sp, err := harpnote.NewSynchPoint(o, notes)
		if err != nil {
			return err
		}
		playable = sp
		idx = voice.Append(sp)
	}

	if st.marks.measure {
		playable.SetMeasureStart(true)
	}

	playable.SetBeat(float64(noteTime) / 16)
	var beatErr error
	if noteTime%16 != 0 {
		beatErr = &zerr.LayoutWarning{Message: "fractional beat rounded down", StartChar: sym.StartChar, EndChar: sym.EndChar}
	}

	t.linkAndAnnotate(playable, idx, o, voice, st)
	t.scanChordAnnotations(raw.Annotations, playable, o, voice, st)
	return beatErr
}

func (t *Transformer) handleRest(sym *abcadapter.Symbol, voice *harpnote.Voice, st *voiceState) error {
	raw, ok := sym.Raw.(RestRaw)
	if !ok {
		return transformErr("rest symbol missing RestRaw payload", sym, voice.Index)
	}
	dur := harpnote.NormalizeDuration(normalizeDurationTicks(raw.Duration, t.shortestNote()))
	o := origin(sym)
	restTime := st.currentTime
	st.currentTime += dur
	pause := harpnote.NewPause(o, restTime, dur)

	prevPitch, havePrev := prevPlayablePitch(st.previousNote)
	nextPitch, haveNext := peekNextPitch(sym)

	mode := confString(t.conf, "restposition.default", "previous")
	switch mode {
	case "next":
		switch {
		case haveNext:
			pause.Pitch_ = nextPitch
		case havePrev:
			pause.Pitch_ = prevPitch
		}
	case "center":
		switch {
		case havePrev && haveNext:
			pause.Pitch_ = (prevPitch + nextPitch) / 2
		case havePrev:
			pause.Pitch_ = prevPitch
		case haveNext:
			pause.Pitch_ = nextPitch
		}
	default: // "previous"
		switch {
		case havePrev:
			pause.Pitch_ = prevPitch
		case haveNext:
			pause.Pitch_ = nextPitch
		}
	}
	pause.PrevPitchVal = prevPitch

	if st.justCrossedRepeatEnd && confString(t.conf, "restposition.repeatend", "") == "previous" {
		if prevPause, ok := st.previousNote.(*harpnote.Pause); ok {
			prevPause.Pitch_ = prevPause.PrevPitchVal
		}
	}
	st.justCrossedRepeatEnd = false

	if st.marks.measure {
		pause.SetMeasureStart(true)
	}

	pause.SetBeat(float64(restTime) / 16)
	var beatErr error
	if restTime%16 != 0 {
		beatErr = &zerr.LayoutWarning{Message: "fractional beat rounded down", StartChar: sym.StartChar, EndChar: sym.EndChar}
	}

	idx := voice.Append(pause)
	t.linkAndAnnotate(pause, idx, o, voice, st)
	t.scanChordAnnotations(raw.Annotations, pause, o, voice, st)
	return beatErr
}

func prevPlayablePitch(p harpnote.Playable) (int, bool) {
	if p == nil {
		return 0, false
	}
	return p.Pitch(), true
}

// peekNextPitch scans forward along the symbol chain for the next NOTE,
// returning its first (lowest-declared) pitch. BAR/METER/etc. symbols are
// skipped.
func peekNextPitch(sym *abcadapter.Symbol) (int, bool) {
	for s := sym.Next; s != nil; s = s.Next {
		if s.Kind == abcadapter.SymNOTE {
			if raw, ok := s.Raw.(NoteRaw); ok && len(raw.Pitches) > 0 {
				return raw.Pitches[0], true
			}
		}
	}
	return 0, false
}

// indexableNote returns the concrete *Note carrying the arena-index
// prev/next pitch and prev/next playable fields for p: itself for a Note,
// its proxy note for a SynchPoint, or nil for a Pause (which carries no
// such chain).
func indexableNote(p harpnote.Playable) *harpnote.Note {
	switch v := p.(type) {
	case *harpnote.Note:
		return v
	case *harpnote.SynchPoint:
		return v.Proxy()
	default:
		return nil
	}
}

// linkAndAnnotate applies §4.3.2 steps 1-3: prev/next linkage, part-name
// annotation synthesis, and pending nextNoteMarks consumption. idx is p's
// own index within voice.Entities, the value wired into the arena+index
// chain.
func (t *Transformer) linkAndAnnotate(p harpnote.Playable, idx int, o harpnote.Origin, voice *harpnote.Voice, st *voiceState) {
	prev := st.prevIndexable

	if cur := indexableNote(p); cur != nil {
		if prev != nil {
			cur.PrevPitchIdx = st.prevIndexableIdx
			cur.PrevPlayableIdx = st.prevIndexableIdx
			prev.NextPitchIdx = idx
			prev.NextPlayableIdx = idx
		}
		st.prevIndexable = cur
		st.prevIndexableIdx = idx
	}

	if label, ok := st.partTable[p.Time()]; ok {
		if prev != nil {
			prev.NextFirstInPart = true
		}
		p.SetFirstInPart(true)
		pos := confPoint(t.conf, "defaults.notebound.partname.pos", harpnote.Point{X: 0, Y: -10})
		confKey := "notebound.partname." + strconv.Itoa(voice.Index) + "." + p.ZnID()
		ann := harpnote.NewNoteBoundAnnotation(o, p, label, harpnote.StyleRegular, pos, confKey)
		voice.Append(ann)
	}

	if st.marks.repeatStart {
		st.pushRepeat(p)
		p.SetFirstInPart(true)
	}

	if st.marks.variantEnding {
		pos := confPoint(t.conf, "defaults.notebound.annotation.pos", harpnote.Point{X: 0, Y: -6})
		ann := harpnote.NewNoteBoundAnnotation(o, p, st.marks.variantLabel, harpnote.StyleRegular, pos, "")
		voice.Append(ann)
		grp := append(st.currentVariantGroup(), variantEntry{RBStart: p})
		st.setCurrentVariantGroup(grp)
	}

	if st.marks.variantFollowup && len(st.variantEndings) >= 2 {
		prevGroup := st.variantEndings[len(st.variantEndings)-2]
		if len(prevGroup) > 0 {
			prevGroup[len(prevGroup)-1].IsFollowup = true
			grp := append(st.currentVariantGroup(), variantEntry{RBStart: p, IsFollowup: true})
			st.setCurrentVariantGroup(grp)
		}
	}

	st.marks = nextNoteMarks{}
	st.previousNote = p
}

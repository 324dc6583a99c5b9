package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/schollz/zupfnoter/internal/config"
	"github.com/schollz/zupfnoter/internal/drawing"
	"github.com/schollz/zupfnoter/internal/harpnote"
)

func mustOrigin(t *testing.T, start, end int) harpnote.Origin {
	t.Helper()
	o, err := harpnote.NewOrigin(start, end, "")
	assert.NoError(t, err)
	return o
}

func addQuarterNotes(t *testing.T, v *harpnote.Voice, pitches ...int) {
	t.Helper()
	for i, pitch := range pitches {
		o := mustOrigin(t, i*4, i*4+1)
		n, err := harpnote.NewNote(o, i*16, pitch, 16)
		assert.NoError(t, err)
		n.SetBeat(float64(i))
		if i == 0 {
			n.SetMeasureStart(true)
		}
		v.Append(n)
	}
}

func ellipses(sheet *drawing.Sheet) []drawing.Drawable {
	var out []drawing.Drawable
	for _, d := range sheet.Drawables {
		if d.Kind == drawing.KindEllipse {
			out = append(out, d)
		}
	}
	return out
}

func TestLayoutPitchMonotonicity(t *testing.T) {
	v := harpnote.NewVoice(1, "melody")
	addQuarterNotes(t, v, 60, 64, 67)
	song := harpnote.NewSong()
	song.AddVoice(v)
	song.FinalizeBeatMaps()

	conf := config.NewStack()
	sheet, errs := Layout(song, conf, Extract{LayoutLines: []int{1}})
	assert.Empty(t, errs)

	notes := ellipses(sheet)
	assert.Len(t, notes, 3)
	for i := 1; i < len(notes); i++ {
		assert.Greater(t, notes[i].Center.X, notes[i-1].Center.X, "higher pitch must render further right")
	}
}

func TestLayoutBeatMonotonicity(t *testing.T) {
	v := harpnote.NewVoice(1, "melody")
	addQuarterNotes(t, v, 60, 60, 60, 60)
	song := harpnote.NewSong()
	song.AddVoice(v)
	song.FinalizeBeatMaps()

	conf := config.NewStack()
	sheet, errs := Layout(song, conf, Extract{LayoutLines: []int{1}})
	assert.Empty(t, errs)

	notes := ellipses(sheet)
	assert.Len(t, notes, 4)
	for i := 1; i < len(notes); i++ {
		assert.GreaterOrEqual(t, notes[i].Center.Y, notes[i-1].Center.Y, "beat must never move the note upward")
	}
}

func TestLayoutFitsDrawingHeight(t *testing.T) {
	v := harpnote.NewVoice(1, "melody")
	pitches := make([]int, 80)
	for i := range pitches {
		pitches[i] = 60
	}
	addQuarterNotes(t, v, pitches...)
	song := harpnote.NewSong()
	song.AddVoice(v)
	song.FinalizeBeatMaps()

	conf := config.NewStack()
	sheet, _ := Layout(song, conf, Extract{LayoutLines: []int{1}})
	g := ResolveGeometry(conf)
	for _, d := range ellipses(sheet) {
		assert.LessOrEqual(t, d.Center.Y, g.DrawingHeight+0.001)
	}
}

func TestLayoutChordSynchlineConnectsFirstAndLastNote(t *testing.T) {
	v := harpnote.NewVoice(1, "melody")
	o := mustOrigin(t, 0, 1)
	n1, err := harpnote.NewNote(o, 0, 60, 16)
	assert.NoError(t, err)
	n2, err := harpnote.NewNote(o, 0, 64, 16)
	assert.NoError(t, err)
	n3, err := harpnote.NewNote(o, 0, 67, 16)
	assert.NoError(t, err)
	sp, err := harpnote.NewSynchPoint(o, []*harpnote.Note{n1, n2, n3})
	assert.NoError(t, err)
	sp.SetBeat(0)
	v.Append(sp)

	song := harpnote.NewSong()
	song.AddVoice(v)
	song.FinalizeBeatMaps()

	conf := config.NewStack()
	sheet, errs := Layout(song, conf, Extract{LayoutLines: []int{1}})
	assert.Empty(t, errs)

	foundChordLine := false
	for _, d := range sheet.Drawables {
		if d.Kind == drawing.KindFlowLine && len(d.Path) == 2 {
			foundChordLine = true
		}
	}
	assert.True(t, foundChordLine, "a chord synchline must connect the chord's first and last rendered note")
}

func TestLayoutCrossVoiceSynchronizationEmitsDashedLine(t *testing.T) {
	v1 := harpnote.NewVoice(1, "melody")
	v2 := harpnote.NewVoice(2, "bass")
	o := mustOrigin(t, 0, 1)
	n1, err := harpnote.NewNote(o, 0, 72, 16)
	assert.NoError(t, err)
	n1.SetBeat(0)
	v1.Append(n1)
	n2, err := harpnote.NewNote(o, 0, 48, 16)
	assert.NoError(t, err)
	n2.SetBeat(0)
	v2.Append(n2)

	song := harpnote.NewSong()
	song.AddVoice(v1)
	song.AddVoice(v2)
	song.FinalizeBeatMaps()

	conf := config.NewStack()
	sheet, errs := Layout(song, conf, Extract{
		LayoutLines: []int{1, 2},
		SynchLines:  []SynchPair{{V1: 1, V2: 2}},
	})
	assert.Empty(t, errs)

	hasDashedCrossLine := false
	for _, d := range sheet.Drawables {
		if d.Kind == drawing.KindFlowLine && d.Dashed {
			hasDashedCrossLine = true
		}
	}
	assert.True(t, hasDashedCrossLine)
}

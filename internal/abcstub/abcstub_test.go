package abcstub

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/schollz/zupfnoter/internal/abcadapter"
	"github.com/schollz/zupfnoter/internal/transform"
)

func TestToSVGCapturesSingleVoiceChain(t *testing.T) {
	var captured *abcadapter.Symbol
	cb := abcadapter.Callbacks{
		GetAbcModel: func(tsFirst *abcadapter.Symbol, voiceTb []*abcadapter.Symbol, _, _ interface{}) {
			captured = voiceTb[1]
		},
	}
	stub := New(cb)
	stub.ToSVG("tune", "L:1/8\nCDE|z2|")

	assert.NotNil(t, captured)

	note := captured
	assert.Equal(t, abcadapter.SymNOTE, note.Kind)
	raw, ok := note.Raw.(transform.NoteRaw)
	assert.True(t, ok)
	assert.Equal(t, []int{60}, raw.Pitches)
	assert.Equal(t, transform.ParserWholeTicks/8, raw.Duration)

	bar := note.Next.Next.Next
	assert.Equal(t, abcadapter.SymBAR, bar.Kind)
	assert.Equal(t, "|", bar.Raw.(transform.BarRaw).BarType)

	rest := bar.Next
	assert.Equal(t, abcadapter.SymREST, rest.Kind)
	assert.Equal(t, transform.ParserWholeTicks/8*2, rest.Raw.(transform.RestRaw).Duration)
}

func TestToSVGAttachesQuotedAnnotationToFollowingNote(t *testing.T) {
	var captured *abcadapter.Symbol
	cb := abcadapter.Callbacks{
		GetAbcModel: func(tsFirst *abcadapter.Symbol, voiceTb []*abcadapter.Symbol, _, _ interface{}) {
			captured = voiceTb[1]
		},
	}
	stub := New(cb)
	stub.ToSVG("tune", `"#fingering"C`)

	assert.Equal(t, abcadapter.SymNOTE, captured.Kind)
	raw := captured.Raw.(transform.NoteRaw)
	assert.Equal(t, []string{"#fingering"}, raw.Annotations)
}

func TestToSVGParsesChord(t *testing.T) {
	var captured *abcadapter.Symbol
	cb := abcadapter.Callbacks{
		GetAbcModel: func(tsFirst *abcadapter.Symbol, voiceTb []*abcadapter.Symbol, _, _ interface{}) {
			captured = voiceTb[1]
		},
	}
	stub := New(cb)
	stub.ToSVG("tune", "[CEG]2")

	raw := captured.Raw.(transform.NoteRaw)
	assert.Equal(t, []int{60, 64, 67}, raw.Pitches)
	assert.Equal(t, transform.ParserWholeTicks/8*2, raw.Duration)
}

func TestGetTunesReturnsOneTune(t *testing.T) {
	stub := New(abcadapter.Callbacks{})
	assert.Len(t, stub.GetTunes(), 1)
}

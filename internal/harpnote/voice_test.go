package harpnote

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVoicePlayablesFiltersNonPlayableEntities(t *testing.T) {
	o, _ := NewOrigin(0, 1, "x")
	v := NewVoice(1, "voice-1")

	n1, _ := NewNote(o, 0, 60, 8)
	n2, _ := NewNote(o, 8, 62, 8)
	n1.SetBeat(0)
	n2.SetBeat(1)

	v.Append(n1)
	v.Append(NewNewPart(o, n1, "A"))
	v.Append(n2)

	assert.Len(t, v.Entities, 3)
	assert.Len(t, v.Playables(), 2)
}

func TestBuildBeatMapKeepsFirstPlayableAtEachBeat(t *testing.T) {
	o, _ := NewOrigin(0, 1, "x")
	v := NewVoice(1, "voice-1")

	n1, _ := NewNote(o, 0, 60, 8)
	n1.SetBeat(0)
	n2, _ := NewNote(o, 8, 62, 8)
	n2.SetBeat(0)
	n3, _ := NewNote(o, 16, 64, 8)
	n3.SetBeat(1)

	v.Append(n1)
	v.Append(n2)
	v.Append(n3)

	bm := v.BuildBeatMap()
	assert.Same(t, n1, bm[0])
	assert.Same(t, n3, bm[1])
}

func TestSongAddVoiceAliasesVoiceOne(t *testing.T) {
	s := NewSong()
	v1 := NewVoice(1, "voice-1")
	s.AddVoice(v1)

	assert.Same(t, v1, s.Voices[0])
	assert.Same(t, v1, s.Voices[1])
}

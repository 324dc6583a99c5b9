package player

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/schollz/zupfnoter/internal/harpnote"
)

func mustOrigin(t *testing.T, start, end int) harpnote.Origin {
	t.Helper()
	o, err := harpnote.NewOrigin(start, end, "")
	assert.NoError(t, err)
	return o
}

func TestBuildEventListPairsOnAndOffPerNote(t *testing.T) {
	v := harpnote.NewVoice(1, "melody")
	o := mustOrigin(t, 5, 6)
	n, err := harpnote.NewNote(o, 0, 64, 16)
	assert.NoError(t, err)
	v.Append(n)

	events := BuildEventList(v)
	assert.Len(t, events, 2)
	assert.True(t, events[0].On)
	assert.Equal(t, 0, events[0].Time)
	assert.Equal(t, 5, events[0].Index)
	assert.False(t, events[1].On)
	assert.Equal(t, 16, events[1].Time)
}

func TestBuildEventListSkipsRests(t *testing.T) {
	v := harpnote.NewVoice(1, "melody")
	o := mustOrigin(t, 0, 1)
	pause := harpnote.NewPause(o, 0, 16)
	v.Append(pause)

	events := BuildEventList(v)
	assert.Empty(t, events)
}

func TestPlayInvokesOnNoteForEveryEvent(t *testing.T) {
	v := harpnote.NewVoice(1, "melody")
	o := mustOrigin(t, 0, 1)
	n, err := harpnote.NewNote(o, 0, 60, 1)
	assert.NoError(t, err)
	v.Append(n)
	events := BuildEventList(v)

	p := NewPlayer(nil, 240, 0)
	var seen []bool
	err = p.Play(context.Background(), events, Callbacks{
		OnNote: func(index int, on bool, notes []uint8) {
			seen = append(seen, on)
		},
	})
	assert.NoError(t, err)
	assert.Equal(t, []bool{true, false}, seen)
}

func TestToMIDIBytesEncodesStatusByte(t *testing.T) {
	e := Event{On: true, Notes: []uint8{64}}
	msgs := e.ToMIDIBytes(2, 100)
	assert.Len(t, msgs, 1)
	assert.Equal(t, byte(0x92), msgs[0][0])
	assert.Equal(t, byte(64), msgs[0][1])
	assert.Equal(t, byte(100), msgs[0][2])
}

func TestValidPitchRejectsOutOfRange(t *testing.T) {
	assert.True(t, ValidPitch(0))
	assert.True(t, ValidPitch(127))
	assert.False(t, ValidPitch(128))
	assert.False(t, ValidPitch(-1))
}

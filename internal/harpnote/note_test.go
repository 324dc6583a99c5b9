package harpnote

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func mustOrigin(t *testing.T) Origin {
	t.Helper()
	o, err := NewOrigin(0, 1, "note")
	assert.NoError(t, err)
	return o
}

func TestNewNoteRejectsNegativePitch(t *testing.T) {
	_, err := NewNote(mustOrigin(t), 0, -1, 8)
	assert.Error(t, err)
}

func TestSynchPointRequiresTwoNotes(t *testing.T) {
	o := mustOrigin(t)
	n1, err := NewNote(o, 10, 60, 8)
	assert.NoError(t, err)

	_, err = NewSynchPoint(o, []*Note{n1})
	assert.Error(t, err)
}

func TestSynchPointRejectsMismatchedTime(t *testing.T) {
	o := mustOrigin(t)
	n1, _ := NewNote(o, 10, 60, 8)
	n2, _ := NewNote(o, 11, 64, 8)

	_, err := NewSynchPoint(o, []*Note{n1, n2})
	assert.Error(t, err)
}

func TestSynchPointDelegatesToProxyNote(t *testing.T) {
	o := mustOrigin(t)
	n1, _ := NewNote(o, 10, 60, 8)
	n2, _ := NewNote(o, 10, 64, 8)

	sp, err := NewSynchPoint(o, []*Note{n1, n2})
	assert.NoError(t, err)
	assert.Equal(t, 64, sp.Pitch(), "proxy is the last-declared note")
	assert.Equal(t, 10, sp.Time())

	sp.SetBeat(3.5)
	assert.Equal(t, 3.5, n1.Beat(), "SetBeat propagates to every constituent note")
	assert.Equal(t, 3.5, n2.Beat())
}

func TestPauseCarriesInferredPitch(t *testing.T) {
	p := NewPause(mustOrigin(t), 20, 4)
	p.Pitch_ = 67
	assert.Equal(t, 67, p.Pitch())
	assert.Equal(t, KindPause, p.Kind())
}

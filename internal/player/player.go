// Package player implements the player event list (spec §6): an opaque
// sequence of timed note events derived from a harpnote.Song, played back
// through a Callbacks trio (onend/onnote/errmsg) and mirrored out over OSC
// and raw MIDI bytes, the way the teacher drives its SuperCollider and
// hardware-MIDI collaborators.
package player

import (
	"context"
	"time"

	"github.com/hypebeast/go-osc/osc"

	"github.com/schollz/zupfnoter/internal/harpnote"
)

// Event is one scheduled note-on or note-off: Time is the accumulated
// 64th-note tick offset from the voice's start (the same tick domain
// internal/transform stamps onto every Playable), Index is the ABC
// character offset at which the originating note begins (spec §6:
// "downstream highlighting matches it against origin ranges"), and Notes
// carries one MIDI pitch per constituent note of a chord.
type Event struct {
	Time  int
	Index int
	On    bool
	Notes []uint8
}

// EventList is produced once per voice by BuildEventList and consumed by
// Play.
type EventList []Event

// BuildEventList walks a voice's Playables in time order and emits a
// note-on event at each one's start tick and a matching note-off event at
// start+duration (spec §6 "ToAudio module").
func BuildEventList(v *harpnote.Voice) EventList {
	var events EventList
	for _, p := range v.Playables() {
		if !p.Visible() {
			continue
		}
		notes := pitchesOf(p)
		if len(notes) == 0 {
			continue
		}
		idx := p.Time()
		startChar := 0
		if me, ok := p.(harpnote.MusicEntity); ok {
			startChar = me.Origin().StartChar
		}
		events = append(events, Event{Time: idx, Index: startChar, On: true, Notes: notes})
		events = append(events, Event{Time: idx + p.Duration(), Index: startChar, On: false, Notes: notes})
	}
	return events
}

// pitchesOf returns the MIDI pitches sounding at p, empty for a Pause
// (rests carry no note-on/off events).
func pitchesOf(p harpnote.Playable) []uint8 {
	switch n := p.(type) {
	case *harpnote.Note:
		return []uint8{uint8(n.Pitch())}
	case *harpnote.SynchPoint:
		out := make([]uint8, 0, len(n.Notes))
		for _, c := range n.Notes {
			out = append(out, uint8(c.Pitch()))
		}
		return out
	default:
		return nil
	}
}

// Callbacks mirrors the spec §6 playback component: onend, onnote(index,
// on, _), errmsg.
type Callbacks struct {
	OnNote func(index int, on bool, notes []uint8)
	OnEnd  func()
	ErrMsg func(err error)
}

// Player schedules an EventList against wall-clock time at a given tempo
// and channel, mirroring each event out over OSC when an OSC client is set,
// the way the teacher's Model drives SuperCollider from the note-on/off
// decision point. Player sends no MIDI itself; a caller's OnNote callback
// can forward events to a MIDIOut.
type Player struct {
	BPM     float64
	Channel uint8

	osc *osc.Client
}

// NewPlayer returns a Player. oscClient may be nil to disable OSC mirroring.
func NewPlayer(oscClient *osc.Client, bpm float64, channel uint8) *Player {
	return &Player{BPM: bpm, Channel: channel, osc: oscClient}
}

// tickDuration converts one 64th-note tick into wall-clock time at the
// player's BPM (16 ticks per quarter note, the same scale
// internal/transform stamps beats in).
func (p *Player) tickDuration() time.Duration {
	if p.BPM <= 0 {
		p.BPM = 120
	}
	beatMs := 60000.0 / p.BPM
	return time.Duration(beatMs/16*1000) * time.Microsecond
}

// Play walks events in Time order, sleeping between ticks and invoking
// cb.OnNote at each one, mirroring every event over OSC. It returns early
// if ctx is canceled.
func (p *Player) Play(ctx context.Context, events EventList, cb Callbacks) error {
	if len(events) == 0 {
		if cb.OnEnd != nil {
			cb.OnEnd()
		}
		return nil
	}
	tick := p.tickDuration()
	lastTime := 0
	for _, e := range events {
		wait := time.Duration(e.Time-lastTime) * tick
		lastTime = e.Time
		if wait > 0 {
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if cb.OnNote != nil {
			cb.OnNote(e.Index, e.On, e.Notes)
		}
		if err := p.sendOSC(e); err != nil && cb.ErrMsg != nil {
			cb.ErrMsg(err)
		}
	}
	if cb.OnEnd != nil {
		cb.OnEnd()
	}
	return nil
}

// sendOSC mirrors an Event as an OSC message on "/note/on" or "/note/off",
// carrying the origin character index and every sounding pitch, grounded
// on the teacher's osc.NewMessage/msg.Append/client.Send pattern.
func (p *Player) sendOSC(e Event) error {
	if p.osc == nil {
		return nil
	}
	addr := "/note/off"
	if e.On {
		addr = "/note/on"
	}
	msg := osc.NewMessage(addr)
	msg.Append(int32(e.Index))
	for _, n := range e.Notes {
		msg.Append(int32(n))
	}
	return p.osc.Send(msg)
}

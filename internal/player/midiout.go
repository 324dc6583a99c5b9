package player

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

var midiOutMutex sync.Mutex
var midiOutOpen = map[string]drivers.Out{}

// MIDIOut is a live hardware/virtual MIDI output port, the sink a Player
// sends Events to when playback should sound on real MIDI gear instead of
// (or in addition to) OSC — grounded on the teacher's midiconnector device
// wrapper, retargeted at this package's Event/EventList shapes.
type MIDIOut struct {
	name    string
	channel uint8
	notesOn map[uint8]uint8
}

// OpenMIDIOut resolves name against the system's available MIDI output
// ports (exact match, then prefix, then substring, matching the teacher's
// fallback order for renamed/rediscovered devices) and opens it. channel
// is the MIDI channel every Event is sent on.
func OpenMIDIOut(name string, channel uint8) (*MIDIOut, error) {
	resolved, err := resolveOutPortName(name)
	if err != nil {
		return nil, err
	}
	d := &MIDIOut{name: resolved, channel: channel, notesOn: map[uint8]uint8{}}

	midiOutMutex.Lock()
	defer midiOutMutex.Unlock()
	if _, ok := midiOutOpen[d.name]; ok {
		return d, nil
	}
	out, err := midi.FindOutPort(d.name)
	if err != nil {
		return nil, err
	}
	if err := out.Open(); err != nil {
		return nil, err
	}
	midiOutOpen[d.name] = out
	return d, nil
}

func resolveOutPortName(name string) (string, error) {
	return matchOutPortName(name, OutPorts())
}

// matchOutPortName finds name among candidates by exact match, then
// prefix, then substring, truncating name to its first three words first
// (ALSA/CoreMIDI often append instance suffixes past that point).
func matchOutPortName(name string, candidates []string) (string, error) {
	words := strings.Fields(name)
	if len(words) > 3 {
		words = words[:3]
	}
	truncated := strings.Join(words, " ")

	for _, n := range candidates {
		if strings.EqualFold(n, truncated) {
			return n, nil
		}
	}
	for _, n := range candidates {
		if strings.HasPrefix(strings.ToLower(n), strings.ToLower(truncated)) {
			return n, nil
		}
	}
	for _, n := range candidates {
		if strings.Contains(strings.ToLower(n), strings.ToLower(truncated)) {
			return n, nil
		}
	}
	return "", fmt.Errorf("could not find MIDI output port matching %q", name)
}

// OutPorts lists the names of every available MIDI output port.
func OutPorts() []string {
	var names []string
	for _, out := range midi.GetOutPorts() {
		names = append(names, out.String())
	}
	return names
}

// Send writes every message of e to the port, tracking sounding notes so
// Close can send matching note-offs.
func (d *MIDIOut) Send(e Event) error {
	midiOutMutex.Lock()
	out, ok := midiOutOpen[d.name]
	midiOutMutex.Unlock()
	if !ok {
		return fmt.Errorf("midi out port %q is not open", d.name)
	}
	for _, msg := range e.ToMIDIBytes(d.channel, 100) {
		if err := out.Send(msg); err != nil {
			log.Printf("midi out %s: %v", d.name, err)
			return err
		}
	}
	for _, n := range e.Notes {
		if e.On {
			d.notesOn[n] = 0
		} else {
			delete(d.notesOn, n)
		}
	}
	return nil
}

// Close sends a note-off for every note still sounding and releases the
// port.
func (d *MIDIOut) Close() error {
	for note := range d.notesOn {
		_ = d.Send(Event{On: false, Notes: []uint8{note}})
	}
	midiOutMutex.Lock()
	defer midiOutMutex.Unlock()
	if out, ok := midiOutOpen[d.name]; ok {
		err := out.Close()
		delete(midiOutOpen, d.name)
		return err
	}
	return nil
}

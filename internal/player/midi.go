package player

import "gitlab.com/gomidi/midi/v2"

// ToMIDIBytes renders an Event as one raw MIDI channel-voice message per
// sounding note: status byte 0x90|channel for note-on, 0x80|channel for
// note-off, note-off velocity always 0 — the byte layout
// MIDIOut.Send writes to a live output port.
func (e Event) ToMIDIBytes(channel, velocity uint8) []midi.Message {
	status := byte(0x80) | (channel & 0x0F)
	vel := byte(0)
	if e.On {
		status = byte(0x90) | (channel & 0x0F)
		vel = velocity
	}
	out := make([]midi.Message, 0, len(e.Notes))
	for _, n := range e.Notes {
		out = append(out, midi.Message{status, byte(n), vel})
	}
	return out
}

// ValidPitch reports whether p falls within the MIDI note range [0,127]
// (spec §7 InvariantViolation guards against out-of-range pitches at
// construction; this is the player-side re-check before wire encoding).
func ValidPitch(p int) bool {
	return p >= 0 && p <= 127
}

package player

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveOutPortNameExactMatch(t *testing.T) {
	names := []string{"USB MIDI Device", "Internal MIDI", "Bluetooth MIDI"}
	got, err := matchOutPortName("Internal MIDI", names)
	assert.NoError(t, err)
	assert.Equal(t, "Internal MIDI", got)
}

func TestResolveOutPortNamePrefixMatch(t *testing.T) {
	names := []string{"USB MIDI Device", "Internal MIDI"}
	got, err := matchOutPortName("usb", names)
	assert.NoError(t, err)
	assert.Equal(t, "USB MIDI Device", got)
}

func TestResolveOutPortNameNoMatch(t *testing.T) {
	names := []string{"USB MIDI Device", "Internal MIDI"}
	_, err := matchOutPortName("nonexistent", names)
	assert.Error(t, err)
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitSourceSeparatesConfigBlock(t *testing.T) {
	raw := "X:1\nK:C\nCDEF|\n%%%%zupfnoter.config\n{\"layout\": {\"BEAT_RESOLUTION\": 5}}"
	abcText, block, found := SplitSource(raw)
	assert.True(t, found)
	assert.Equal(t, "X:1\nK:C\nCDEF|\n", abcText)

	layer, err := DecodeLayer(block)
	assert.NoError(t, err)
	nested, ok := layer["layout"].(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, float64(5), nested["BEAT_RESOLUTION"])
}

func TestSplitSourceWithoutConfigBlock(t *testing.T) {
	raw := "X:1\nK:C\nCDEF|"
	abcText, block, found := SplitSource(raw)
	assert.False(t, found)
	assert.Equal(t, raw, abcText)
	assert.Equal(t, "", block)
}

func TestJoinSourceRoundTrips(t *testing.T) {
	layer := Map{"layout": Map{"BEAT_RESOLUTION": 5.0}}
	joined, err := JoinSource("X:1\nCDEF|", layer)
	assert.NoError(t, err)

	abcText, block, found := SplitSource(joined)
	assert.True(t, found)
	assert.Equal(t, "X:1\nCDEF|\n", abcText)

	decoded, err := DecodeLayer(block)
	assert.NoError(t, err)
	nested := decoded["layout"].(map[string]interface{})
	assert.Equal(t, 5.0, nested["BEAT_RESOLUTION"])
}

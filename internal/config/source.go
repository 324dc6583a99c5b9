package config

import (
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// sourceSeparator introduces the trailing configuration block appended to
// persisted ABC source (spec §6 "Source format"/"Persisted state").
const sourceSeparator = "%%%%zupfnoter.config"

// SplitSource separates raw persisted source into its ABC text and trailing
// JSON-like configuration block, if present. found is false when no
// separator line exists, in which case abcText is raw unchanged.
func SplitSource(raw string) (abcText string, configBlock string, found bool) {
	idx := strings.Index(raw, sourceSeparator)
	if idx < 0 {
		return raw, "", false
	}
	abcText = raw[:idx]
	configBlock = strings.TrimSpace(raw[idx+len(sourceSeparator):])
	return abcText, configBlock, true
}

// DecodeLayer parses a configuration block into a Map suitable for Stack.Push.
// An empty block decodes to an empty Map.
func DecodeLayer(configBlock string) (Map, error) {
	if strings.TrimSpace(configBlock) == "" {
		return Map{}, nil
	}
	var m Map
	if err := json.Unmarshal([]byte(configBlock), &m); err != nil {
		return nil, err
	}
	return m, nil
}

// JoinSource reassembles persisted source from ABC text and an encoded
// configuration layer, the inverse of SplitSource (spec §6 "Persisted
// state": "the ABC text with the configuration block appended").
func JoinSource(abcText string, layer Map) (string, error) {
	data, err := json.MarshalIndent(layer, "", "  ")
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString(abcText)
	if !strings.HasSuffix(abcText, "\n") {
		b.WriteString("\n")
	}
	b.WriteString(sourceSeparator)
	b.WriteString("\n")
	b.Write(data)
	return b.String(), nil
}

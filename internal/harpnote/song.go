package harpnote

// Song is the output of the music transformer (C3): an unordered set of
// voices plus metadata, a checksum over the source text, and one beat map
// per voice.
type Song struct {
	Voices    map[int]*Voice
	MetaData  map[string]string
	Checksum  string
	BeatMaps  map[int]BeatMap
	Warnings  []error
}

// NewSong returns an empty Song ready to receive voices from the
// transformer.
func NewSong() *Song {
	return &Song{
		Voices:   map[int]*Voice{},
		MetaData: map[string]string{},
		BeatMaps: map[int]BeatMap{},
	}
}

// AddVoice registers v under its own index, and — if v is voice 1 — also
// under index 0, aliasing it so configuration addressed at voice 0 reaches
// voice 1 (spec §3.4).
func (s *Song) AddVoice(v *Voice) {
	s.Voices[v.Index] = v
	if v.Index == 1 {
		s.Voices[0] = v
	}
}

// FinalizeBeatMaps rebuilds the per-voice beat map for every voice. Called
// once the transformer has finished assigning beats.
func (s *Song) FinalizeBeatMaps() {
	for idx, v := range s.Voices {
		s.BeatMaps[idx] = v.BuildBeatMap()
	}
}

// Warn appends a non-fatal warning (TransformError/LayoutWarning) to the
// song so it can be surfaced to the user without aborting the render.
func (s *Song) Warn(err error) {
	s.Warnings = append(s.Warnings, err)
}

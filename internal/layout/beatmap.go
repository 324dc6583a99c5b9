package layout

import (
	"sort"

	"github.com/schollz/zupfnoter/internal/harpnote"
)

// CompressionMap maps an original beat (the value read from Playable.Beat)
// to its layout-space compressed position, and records the largest
// compressed value seen (spec §4.4.2).
type CompressionMap struct {
	positions map[float64]float64
	ordered   []float64
	maxPos    float64
}

// At returns the compressed position for beat, linearly interpolating
// between the two bracketing known beats when beat itself was never a key
// (e.g. mid-chord alignment, spec §4.4.2 final paragraph).
func (m *CompressionMap) At(beat float64) float64 {
	if p, ok := m.positions[beat]; ok {
		return p
	}
	if len(m.ordered) == 0 {
		return 0
	}
	if beat <= m.ordered[0] {
		return m.positions[m.ordered[0]]
	}
	if beat >= m.ordered[len(m.ordered)-1] {
		return m.positions[m.ordered[len(m.ordered)-1]]
	}
	i := sort.SearchFloat64s(m.ordered, beat)
	lo, hi := m.ordered[i-1], m.ordered[i]
	loP, hiP := m.positions[lo], m.positions[hi]
	frac := (beat - lo) / (hi - lo)
	return loP + frac*(hiP-loP)
}

// MaxPos returns the largest compressed position recorded.
func (m *CompressionMap) MaxPos() float64 { return m.maxPos }

type beatEntry struct {
	beat         float64
	sizeWeight   float64
	measureStart bool
	firstInPart  bool
}

// BuildCompressionMap implements spec §4.4.2: a content-aware map from
// original beat to layout-space beat, built once per sheet across every
// voice named in layoutVoices. packMethod 2 yields the identity map;
// 0 and 1 run the weighted-increment algorithm (1 is reserved for a
// tighter variant never specified further upstream — see DESIGN.md's Open
// Question resolution — and is treated identically to 0).
func BuildCompressionMap(voices []*harpnote.Voice, g Geometry, packMethod int) *CompressionMap {
	byBeat := map[float64]*beatEntry{}
	for _, v := range voices {
		for _, p := range v.Playables() {
			if !p.Visible() {
				continue
			}
			b := p.Beat()
			e, ok := byBeat[b]
			if !ok {
				e = &beatEntry{beat: b}
				byBeat[b] = e
			}
			key := durationBucketKey(p.Duration())
			w := DurationToStyle[key].SizeWeight * g.BeatResolution
			if w > e.sizeWeight {
				e.sizeWeight = w
			}
			if p.MeasureStart() {
				e.measureStart = true
			}
			if p.FirstInPart() {
				e.firstInPart = true
			}
		}
	}

	beats := make([]float64, 0, len(byBeat))
	for b := range byBeat {
		beats = append(beats, b)
	}
	sort.Float64s(beats)

	m := &CompressionMap{positions: map[float64]float64{}, ordered: beats}
	if len(beats) == 0 {
		return m
	}

	if packMethod == 2 {
		for _, b := range beats {
			m.positions[b] = b
		}
		m.maxPos = beats[len(beats)-1]
		return m
	}

	scaledMinIncrement := g.PackMinIncrement * g.BeatResolution
	pos := 0.0
	m.positions[beats[0]] = pos
	lastSize := byBeat[beats[0]].sizeWeight

	for i := 1; i < len(beats); i++ {
		e := byBeat[beats[i]]
		defaultIncrement := (e.sizeWeight + lastSize) / 2
		increment := defaultIncrement
		if scaledMinIncrement > increment {
			increment = scaledMinIncrement
		}
		if e.measureStart {
			increment += increment / 4
		}
		if e.firstInPart {
			increment += defaultIncrement
		}
		pos += increment
		m.positions[beats[i]] = pos
		lastSize = e.sizeWeight
	}
	m.maxPos = pos
	return m
}

// BeatSpacing computes the millimeters-per-compressed-unit scale factor
// (spec §4.4.2): min(fullSpacing, packMaxSpread*Y_SCALE/BEAT_RESOLUTION),
// where fullSpacing fits the whole compressed range into the drawing
// height starting at startPos.
func BeatSpacing(g Geometry, maxCompressedBeat, startPos float64) float64 {
	if maxCompressedBeat <= 0 {
		return g.PackMaxSpread * g.YScale / g.BeatResolution
	}
	fullSpacing := (g.DrawingHeight - startPos) / maxCompressedBeat
	capped := g.PackMaxSpread * g.YScale / g.BeatResolution
	if fullSpacing < capped {
		return fullSpacing
	}
	return capped
}

package layout

import (
	"math"
	"sort"

	"github.com/schollz/zupfnoter/internal/config"
	"github.com/schollz/zupfnoter/internal/drawing"
	"github.com/schollz/zupfnoter/internal/harpnote"
)

// buildCrossSynchlines implements spec §4.4.4: for a pair of voices,
// match Playables at equal beats via the song's beat maps, then connect
// the pitch-nearest note pair of each matched chord with a dashed
// flowline.
func buildCrossSynchlines(song *harpnote.Song, pair SynchPair, pos *positionIndex, conf *config.Stack) []drawing.Drawable {
	bm1, ok1 := song.BeatMaps[pair.V1]
	bm2, ok2 := song.BeatMaps[pair.V2]
	if !ok1 || !ok2 {
		return nil
	}
	pal := loadPalette(conf)
	color := pal.forVariant(0)

	beats := make([]int, 0, len(bm1))
	for beat := range bm1 {
		if _, ok := bm2[beat]; ok {
			beats = append(beats, beat)
		}
	}
	sort.Ints(beats)

	var out []drawing.Drawable
	for _, beat := range beats {
		p1, p2 := bm1[beat], bm2[beat]
		n1, n2 := nearestPitchPair(p1, p2)
		from, fok := pos.centerOf(n1)
		to, tok := pos.centerOf(n2)
		if fok && tok {
			out = append(out, drawing.NewFlowLine(p1, from, to, true, false, color))
		}
	}
	return out
}

func notesOf(p harpnote.Playable) []harpnote.Playable {
	if sp, ok := p.(*harpnote.SynchPoint); ok {
		out := make([]harpnote.Playable, len(sp.Notes))
		for i, n := range sp.Notes {
			out[i] = n
		}
		return out
	}
	return []harpnote.Playable{p}
}

// nearestPitchPair chooses, from the cartesian product of p1's and p2's
// constituent notes, the pair minimizing pitch distance (spec §4.4.4).
func nearestPitchPair(p1, p2 harpnote.Playable) (harpnote.Playable, harpnote.Playable) {
	notes1 := notesOf(p1)
	notes2 := notesOf(p2)
	best1, best2 := notes1[0], notes2[0]
	bestDist := math.MaxFloat64
	for _, a := range notes1 {
		for _, b := range notes2 {
			d := math.Abs(float64(a.Pitch() - b.Pitch()))
			if d < bestDist {
				bestDist = d
				best1, best2 = a, b
			}
		}
	}
	return best1, best2
}

package layout

import "github.com/schollz/zupfnoter/internal/harpnote"

// Point is reused from harpnote so coordinate arithmetic stays in one type
// across transform, layout and drawing.
type Point = harpnote.Point

// renderedNote records where and how a single Note/Pause was drawn. Notes
// sharing a chord carry the same znid (spec §3.2's startChar+time key is
// shared across a SynchPoint's constituents), so entries are keyed by the
// concrete *harpnote.Note/*harpnote.Pause pointer rather than by znid.
type renderedNote struct {
	center Point
	filled bool
}

// positionIndex accumulates renderedNote entries across every voice in one
// layout pass.
type positionIndex struct {
	byEntity map[harpnote.MusicEntity]renderedNote
}

func newPositionIndex() *positionIndex {
	return &positionIndex{byEntity: map[harpnote.MusicEntity]renderedNote{}}
}

func (idx *positionIndex) set(e harpnote.MusicEntity, center Point, filled bool) {
	idx.byEntity[e] = renderedNote{center: center, filled: filled}
}

// centerOf resolves a Playable's rendered center, preferring the last
// (proxy) note of a SynchPoint, the one its Pitch()/Beat() delegate to.
func (idx *positionIndex) centerOf(p harpnote.Playable) (Point, bool) {
	var e harpnote.MusicEntity = p
	if sp, ok := p.(*harpnote.SynchPoint); ok && len(sp.Notes) > 0 {
		e = sp.Notes[len(sp.Notes)-1]
	}
	r, ok := idx.byEntity[e]
	return r.center, ok
}

package layout

import (
	"github.com/schollz/zupfnoter/internal/config"
	"github.com/schollz/zupfnoter/internal/drawing"
	"github.com/schollz/zupfnoter/internal/harpnote"
)

// buildFlowlines implements spec §4.4.3 step 2: a FlowLine between every
// pair of consecutive visible Playables in the voice, skipped when the
// destination is firstInPart. dashed when the voice is declared a
// subflowline voice; dotted when the destination ties back to its
// predecessor; solid otherwise.
func buildFlowlines(v *harpnote.Voice, pos *positionIndex, conf *config.Stack, dashed bool) []drawing.Drawable {
	var out []drawing.Drawable
	pal := loadPalette(conf)
	color := pal.forVariant(0)

	var prev harpnote.Playable
	for _, p := range v.Playables() {
		if !p.Visible() {
			continue
		}
		if prev != nil && !p.FirstInPart() {
			from, fok := pos.centerOf(prev)
			to, tok := pos.centerOf(p)
			if fok && tok {
				dotted := tiesBack(p)
				out = append(out, drawing.NewFlowLine(p, from, to, dashed, dotted, color))
			}
		}
		prev = p
	}
	return out
}

// tiesBack reports whether p is a tied continuation of its predecessor,
// drawn as a dotted flowline (spec §4.4.3 step 2).
func tiesBack(p harpnote.Playable) bool {
	switch n := p.(type) {
	case *harpnote.Note:
		return n.TieEnd
	case *harpnote.SynchPoint:
		for _, c := range n.Notes {
			if c.TieEnd {
				return true
			}
		}
	}
	return false
}

package layout

import (
	"strconv"

	"github.com/schollz/zupfnoter/internal/config"
	"github.com/schollz/zupfnoter/internal/drawing"
	"github.com/schollz/zupfnoter/internal/harpnote"
)

// buildNoteboundAnnotations implements spec §4.4.5 "Notebound
// annotations": position = companion.center + entity.position offset.
func buildNoteboundAnnotations(v *harpnote.Voice, pos *positionIndex, conf *config.Stack) []drawing.Drawable {
	var out []drawing.Drawable
	pal := loadPalette(conf)
	color := pal.forVariant(0)

	for _, a := range v.NoteBoundAnnotations() {
		center, ok := pos.centerOf(a.Companion)
		if !ok {
			continue
		}
		p := Point{X: center.X + a.Position.X, Y: center.Y + a.Position.Y}
		out = append(out, drawing.NewAnnotation(a, p, a.Text, string(a.Style), a.ConfKey, color))
	}
	return out
}

// buildBarNumbers implements spec §4.4.5 "Barnumbers": at every
// measureStart Playable of a voice listed in bn.Voices, an annotation
// "<prefix><measureCount>".
func buildBarNumbers(v *harpnote.Voice, bn BarNumbers, pos *positionIndex, conf *config.Stack) []drawing.Drawable {
	wanted := false
	for _, idx := range bn.Voices {
		if idx == v.Index {
			wanted = true
			break
		}
	}
	if !wanted {
		return nil
	}
	pal := loadPalette(conf)
	color := pal.forVariant(0)
	offset := confPoint(conf, "defaults.barnumbers.pos", Point{X: -2, Y: -3})

	var out []drawing.Drawable
	for _, e := range v.Entities {
		p, ok := e.(harpnote.Playable)
		if !ok || !p.MeasureStart() {
			continue
		}
		count := measureCountOf(p)
		if count == 0 {
			continue
		}
		center, ok := pos.centerOf(p)
		if !ok {
			continue
		}
		text := bn.Prefix + strconv.Itoa(count)
		at := Point{X: center.X + offset.X, Y: center.Y + offset.Y}
		out = append(out, drawing.NewAnnotation(p, at, text, "small", "", color))
	}
	return out
}

func measureCountOf(p harpnote.Playable) int {
	switch n := p.(type) {
	case *harpnote.Note:
		return n.MeasureCount
	case *harpnote.SynchPoint:
		if len(n.Notes) > 0 {
			return n.Notes[len(n.Notes)-1].MeasureCount
		}
	}
	return 0
}

// buildCountNotes implements spec §4.4.5 "Countnotes": at every Playable
// whose countNote is non-empty, an annotation of that text.
func buildCountNotes(v *harpnote.Voice, pos *positionIndex, conf *config.Stack) []drawing.Drawable {
	pal := loadPalette(conf)
	color := pal.forVariant(0)
	offset := confPoint(conf, "defaults.countnote.pos", Point{X: 0, Y: 4})

	var out []drawing.Drawable
	for _, e := range v.Entities {
		p, ok := e.(harpnote.Playable)
		if !ok {
			continue
		}
		text := countNoteOf(p)
		if text == "" {
			continue
		}
		center, ok := pos.centerOf(p)
		if !ok {
			continue
		}
		at := Point{X: center.X + offset.X, Y: center.Y + offset.Y}
		out = append(out, drawing.NewAnnotation(p, at, text, "small", "", color))
	}
	return out
}

func countNoteOf(p harpnote.Playable) string {
	switch n := p.(type) {
	case *harpnote.Note:
		return n.CountNote
	case *harpnote.Pause:
		return n.CountNote
	case *harpnote.SynchPoint:
		if len(n.Notes) > 0 {
			return n.Notes[len(n.Notes)-1].CountNote
		}
	}
	return ""
}

// buildStringNames implements spec §4.4.5 "String names": a headline
// annotation centered over each string's vertical strip.
func buildStringNames(names StringNames, g Geometry, headlineY float64) []drawing.Drawable {
	var out []drawing.Drawable
	for pitch, text := range names.Text {
		x := g.PitchToX(pitch)
		d := drawing.Drawable{
			Kind:    drawing.KindAnnotation,
			Visible: true,
			Center:  Point{X: x, Y: headlineY},
			Text:    text,
			Style:   "regular",
		}
		out = append(out, d)
	}
	return out
}

// buildExtractNotes implements spec §4.4.5 "Extract notes": free-standing
// annotations at absolute positions.
func buildExtractNotes(notes []ExtractNote) []drawing.Drawable {
	var out []drawing.Drawable
	for _, n := range notes {
		out = append(out, drawing.Drawable{
			Kind:    drawing.KindAnnotation,
			Visible: true,
			Center:  n.Pos,
			Text:    n.Text,
			Style:   "regular",
		})
	}
	return out
}

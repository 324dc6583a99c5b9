package layout

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/schollz/zupfnoter/internal/config"
	"github.com/schollz/zupfnoter/internal/drawing"
	"github.com/schollz/zupfnoter/internal/harpnote"
	"github.com/schollz/zupfnoter/internal/zerr"
)

// flagCount is the number of beam/flag strokes drawn on a note shorter
// than a quarter, keyed by its duration bucket (spec §4.4.3 "note flags").
var flagCount = map[string]int{
	"d8": 1, "d12": 1, "d16": 2, "d24": 2, "d32": 3, "d48": 3, "d64": 4,
}

type paletteColors struct {
	def, v1, v2 string
}

func loadPalette(conf *config.Stack) paletteColors {
	return paletteColors{
		def: confString(conf, "colors.default", "#000000"),
		v1:  confString(conf, "colors.variant1", "#ff0000"),
		v2:  confString(conf, "colors.variant2", "#0000ff"),
	}
}

func (pc paletteColors) forVariant(variant int) colorful.Color {
	return drawing.ColorForVariant(variant, pc.def, pc.v1, pc.v2)
}

// renderVoice implements spec §4.4.3 step 1: for every visible Playable in
// voice order, emit its ellipse(s)/rest glyph, measure bar-over and note
// flags, recording each rendered note's center in pos for the later
// flowline/synchline/jumpline passes.
func renderVoice(v *harpnote.Voice, g Geometry, cmap *CompressionMap, spacing, startPos float64, conf *config.Stack, pos *positionIndex, beaming bool) ([]drawing.Drawable, []error) {
	var out []drawing.Drawable
	var errs []error
	pal := loadPalette(conf)

	for _, e := range v.Entities {
		p, ok := e.(harpnote.Playable)
		if !ok || !p.Visible() {
			continue
		}
		y := layoutY(g, cmap, spacing, startPos, p.Beat())

		switch ent := e.(type) {
		case *harpnote.SynchPoint:
			var first, last Point
			for i, n := range ent.Notes {
				c := renderNote(n, g, y, pal, conf)
				out = append(out, c.drawable)
				pos.set(n, c.center, c.filled)
				if i == 0 {
					first = c.center
				}
				last = c.center
			}
			if len(ent.Notes) >= 2 {
				out = append(out, drawing.NewFlowLine(ent.Notes[len(ent.Notes)-1], first, last, false, false, pal.forVariant(0)))
			}
		case *harpnote.Note:
			c := renderNote(ent, g, y, pal, conf)
			out = append(out, c.drawable)
			pos.set(ent, c.center, c.filled)
		case *harpnote.Pause:
			x := shiftedX(g, g.PitchToX(ent.Pitch()), harpnote.ShiftNone)
			center := Point{X: x, Y: y}
			glyph := drawing.RestToGlyph[durationBucketKey(ent.Duration())]
			out = append(out, drawing.NewGlyph(ent, center, glyph, pal.forVariant(0)))
			pos.set(ent, center, false)
		default:
			continue
		}

		if center, ok := pos.centerOf(p); ok {
			if p.MeasureStart() {
				out = append(out, measureBar(p, g, center, pal.forVariant(0)))
			}
			if beaming {
				if n := flagCount[durationBucketKey(p.Duration())]; n > 0 {
					out = append(out, noteFlags(p, g, center, n, pal.forVariant(p.Variant())))
				}
			}
		}
	}
	return out, errs
}

// layoutY resolves a beat to its sheet-space y coordinate through the
// compression map, negating for bottomup voices (spec §4.4.1, §4.4.2).
func layoutY(g Geometry, cmap *CompressionMap, spacing, startPos float64, beat float64) float64 {
	y := startPos + cmap.At(beat)*spacing
	if g.BottomUp {
		return g.DrawingHeight - y
	}
	return y
}

// shiftedX applies the A3-edge inward shift and an explicit note-bound
// shift marker (spec §4.4.3 "Shift").
func shiftedX(g Geometry, x float64, shift harpnote.Shift) float64 {
	if g.NearA3Edge(x) {
		if x < a3LeftMargin {
			x += g.EllipseSize
		} else {
			x -= g.EllipseSize
		}
	}
	switch shift {
	case harpnote.ShiftLeft:
		x -= g.EllipseSize
	case harpnote.ShiftRight:
		x += g.EllipseSize
	}
	return x
}

type noteRender struct {
	drawable drawing.Drawable
	center   Point
	filled   bool
}

func renderNote(n *harpnote.Note, g Geometry, y float64, pal paletteColors, conf *config.Stack) noteRender {
	x := shiftedX(g, g.PitchToX(n.Pitch()), n.NoteShift)
	center := Point{X: x, Y: y}
	style := DurationToStyle[durationBucketKey(n.Duration())]
	size := g.EllipseSize * style.SizeWeight
	color := pal.forVariant(n.Variant())
	d := drawing.NewEllipse(n, center, size, style.Filled, style.Dotted, color)
	return noteRender{drawable: d, center: center, filled: style.Filled}
}

// measureBar draws the thin filled rectangle marking the start of a
// measure, above the note (or below in bottomup mode), as a one-segment
// filled Path (spec §4.4.3 "Measure bar-over").
func measureBar(p harpnote.Playable, g Geometry, center Point, color colorful.Color) drawing.Drawable {
	dy := -g.EllipseSize
	if g.BottomUp {
		dy = g.EllipseSize
	}
	half := g.XSpacing / 2
	cmds := []drawing.PathCmd{
		{Op: 'M', Args: []float64{center.X - half, center.Y + dy}},
		{Op: 'l', Args: []float64{2 * half, 0}},
	}
	return drawing.NewPath(p, cmds, true, color)
}

// noteFlags draws n beam/flag strokes off the note's stem (spec §4.4.3
// "Note flags").
func noteFlags(p harpnote.Playable, g Geometry, center Point, n int, color colorful.Color) drawing.Drawable {
	stemX := center.X + g.EllipseSize/2
	cmds := []drawing.PathCmd{{Op: 'M', Args: []float64{stemX, center.Y}}}
	for i := 0; i < n; i++ {
		cmds = append(cmds, drawing.PathCmd{Op: 'l', Args: []float64{g.EllipseSize / 2, -g.EllipseSize/2 - float64(i)*1.5}})
	}
	return drawing.NewPath(p, cmds, false, color)
}

func layoutWarning(message string, o harpnote.Origin) error {
	return &zerr.LayoutWarning{Message: message, StartChar: o.StartChar, EndChar: o.EndChar}
}

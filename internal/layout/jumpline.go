package layout

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/schollz/zupfnoter/internal/config"
	"github.com/schollz/zupfnoter/internal/drawing"
	"github.com/schollz/zupfnoter/internal/harpnote"
)

// buildJumplines implements spec §4.4.3 step 4: an L-shaped path per
// Goto, routed on a vertical corridor offset by (distance+0.5)*X_SPACING,
// terminated with a filled arrowhead at the destination.
func buildJumplines(v *harpnote.Voice, g Geometry, pos *positionIndex, conf *config.Stack) ([]drawing.Drawable, []error) {
	var out []drawing.Drawable
	var errs []error
	pal := loadPalette(conf)
	color := pal.forVariant(0)

	for _, goTo := range v.Gotos() {
		from, fok := pos.centerOf(goTo.From)
		to, tok := pos.centerOf(goTo.To)
		if !fok || !tok {
			errs = append(errs, layoutWarning("jumpline endpoint has no rendered position", goTo.Origin()))
			continue
		}

		fromSign := anchorSign(goTo.Policy.FromAnchor)
		toSign := anchorSign(goTo.Policy.ToAnchor)
		if g.BottomUp {
			fromSign, toSign = -fromSign, -toSign
		}

		corridorX := corridorOffset(from.X, goTo.SingleDistance(), g)

		p1 := Point{X: from.X, Y: from.Y + fromSign*g.EllipseSize}
		p2 := Point{X: corridorX, Y: p1.Y}
		p3 := Point{X: corridorX, Y: to.Y + toSign*g.EllipseSize}
		p4 := Point{X: to.X, Y: p3.Y}

		cmds := []drawing.PathCmd{
			{Op: 'M', Args: []float64{p1.X, p1.Y}},
			{Op: 'l', Args: []float64{p2.X - p1.X, p2.Y - p1.Y}},
			{Op: 'l', Args: []float64{p3.X - p2.X, p3.Y - p2.Y}},
			{Op: 'l', Args: []float64{p4.X - p3.X, p4.Y - p3.Y}},
		}
		path := drawing.NewPath(goTo, cmds, false, color)
		path.ConfKey = goTo.Policy.ConfKey
		out = append(out, path)
		out = append(out, arrowhead(goTo, to, toSign, g, color))
	}
	return out, errs
}

func anchorSign(a harpnote.Anchor) float64 {
	if a == harpnote.AnchorBefore {
		return -1
	}
	return 1
}

// corridorOffset places the jumpline's vertical segment to the right of
// the source note when distance is positive, to the left when negative
// (spec §4.4.3: "(distance + 0.5) x X_SPACING").
func corridorOffset(sourceX float64, distance int, g Geometry) float64 {
	return sourceX + (float64(distance)+0.5)*g.XSpacing
}

// arrowhead draws the filled triangle at a Goto's destination, pointing
// toward the destination note.
func arrowhead(goTo *harpnote.Goto, to Point, sign float64, g Geometry, color colorful.Color) drawing.Drawable {
	w := g.EllipseSize / 2
	tip := Point{X: to.X, Y: to.Y + sign*g.EllipseSize*0.3}
	cmds := []drawing.PathCmd{
		{Op: 'M', Args: []float64{tip.X - w, tip.Y + sign*g.EllipseSize*0.6}},
		{Op: 'l', Args: []float64{w, -sign * g.EllipseSize * 0.6}},
		{Op: 'l', Args: []float64{w, sign * g.EllipseSize * 0.6}},
		{Op: 'z'},
	}
	return drawing.NewPath(goTo, cmds, true, color)
}

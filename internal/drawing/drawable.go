// Package drawing implements the drawing model (C5): drawable factory
// helpers, a glyph catalog, the Sheet container, and a render-local
// collision detector (spec §3.6, §4.5).
package drawing

import (
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/schollz/zupfnoter/internal/harpnote"
)

// Kind tags which of the six drawable variants a Drawable is.
type Kind int

const (
	KindEllipse Kind = iota
	KindFlowLine
	KindPath
	KindAnnotation
	KindGlyph
	KindImage
)

// Point is reused from harpnote to keep Sheet-space and music-model offsets
// in the same coordinate type.
type Point = harpnote.Point

// Drawable is the common shape of every sheet-space rendering primitive
// (spec §3.6): a center/path, color, line width, visibility, a back-pointer
// to the music entity it was derived from, and an optional confKey for
// per-instance configuration override.
type Drawable struct {
	Kind      Kind
	Origin    MusicOrigin
	Color     colorful.Color
	LineWidth float64
	Visible   bool
	ConfKey   string

	// Geometry, populated according to Kind.
	Center Point      // Ellipse, Glyph, Annotation, Image
	Radius Point      // Ellipse: (rx, ry)
	Path   []PathCmd  // Path, FlowLine
	Dashed bool       // FlowLine
	Dotted bool       // Ellipse, FlowLine
	Filled bool       // Ellipse, Path (arrowhead)
	Text   string     // Annotation
	Style  string     // Annotation text style name
	Glyph  string     // Glyph name, keys into the glyph catalog
	Href   string     // Image
}

// MusicOrigin is the minimal back-pointer a Drawable needs into its source
// music entity: enough to resolve confKey overrides and hit-test against
// the ABC origin range, without drawing importing all of harpnote.
type MusicOrigin struct {
	ZnID      string
	StartChar int
	EndChar   int
}

func originOf(e harpnote.MusicEntity) MusicOrigin {
	o := e.Origin()
	return MusicOrigin{ZnID: e.ZnID(), StartChar: o.StartChar, EndChar: o.EndChar}
}

// PathCmd is one SVG-style path command: a letter ('M','l','L','z') and its
// numeric arguments, matching the spec's "M p1 l d1 l d2 l d3" jumpline
// shorthand (§4.4.3).
type PathCmd struct {
	Op   byte
	Args []float64
}

// NewEllipse returns a Drawable for a rendered Note/SynchPoint head,
// defaulting LineWidth from the filled/empty distinction (spec §4.4.3:
// thin when filled, medium otherwise).
func NewEllipse(e harpnote.MusicEntity, center Point, size float64, filled, dotted bool, color colorful.Color) Drawable {
	lw := 0.1
	if !filled {
		lw = 0.3
	}
	return Drawable{
		Kind:      KindEllipse,
		Origin:    originOf(e),
		Color:     color,
		LineWidth: lw,
		Visible:   true,
		Center:    center,
		Radius:    Point{X: size / 2, Y: size / 2},
		Filled:    filled,
		Dotted:    dotted,
	}
}

// NewGlyph returns a Drawable for a rest or other catalog glyph, looked up
// by name at render time (drawing does not bake in the path here; Sheet
// rendering consults Catalog).
func NewGlyph(e harpnote.MusicEntity, center Point, name string, color colorful.Color) Drawable {
	return Drawable{
		Kind:    KindGlyph,
		Origin:  originOf(e),
		Color:   color,
		Visible: true,
		Center:  center,
		Glyph:   name,
	}
}

// NewFlowLine returns a Drawable connecting two points, used for flowlines,
// chord synchlines and cross-voice synchlines (spec §4.4.3-4.4.4).
func NewFlowLine(e harpnote.MusicEntity, from, to Point, dashed, dotted bool, color colorful.Color) Drawable {
	return Drawable{
		Kind:      KindFlowLine,
		Origin:    originOf(e),
		Color:     color,
		LineWidth: 0.1,
		Visible:   true,
		Path:      []PathCmd{{Op: 'M', Args: []float64{from.X, from.Y}}, {Op: 'L', Args: []float64{to.X, to.Y}}},
		Dashed:    dashed,
		Dotted:    dotted,
	}
}

// NewPath returns a raw multi-segment Drawable, used for jumplines and note
// flags.
func NewPath(e harpnote.MusicEntity, cmds []PathCmd, filled bool, color colorful.Color) Drawable {
	return Drawable{
		Kind:      KindPath,
		Origin:    originOf(e),
		Color:     color,
		LineWidth: 0.1,
		Visible:   true,
		Path:      cmds,
		Filled:    filled,
	}
}

// NewAnnotation returns a Drawable for a piece of positioned text (spec
// §4.4.5): notebound annotations, barnumbers, countnotes, string names and
// extract notes are all represented this way.
func NewAnnotation(e harpnote.MusicEntity, center Point, text, style, confKey string, color colorful.Color) Drawable {
	return Drawable{
		Kind:    KindAnnotation,
		Origin:  originOf(e),
		Color:   color,
		Visible: true,
		Center:  center,
		Text:    text,
		Style:   style,
		ConfKey: confKey,
	}
}

// NewImage returns a Drawable referencing an external raster/vector asset
// (e.g. embedded standard-notation SVG fragments, spec §6 img_out).
func NewImage(e harpnote.MusicEntity, center Point, href string) Drawable {
	return Drawable{
		Kind:    KindImage,
		Origin:  originOf(e),
		Visible: true,
		Center:  center,
		Href:    href,
	}
}

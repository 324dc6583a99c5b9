package layout

import (
	"github.com/schollz/zupfnoter/internal/config"
	"github.com/schollz/zupfnoter/internal/drawing"
	"github.com/schollz/zupfnoter/internal/harpnote"
)

// ResolveGeometry reads the layout geometry constants from the
// configuration stack, falling back to the spec's defaults (spec §4.4.1).
func ResolveGeometry(conf *config.Stack) Geometry {
	return Geometry{
		PitchOffset:      confFloat(conf, "layout.PITCH_OFFSET", DefaultPitchOffset),
		XSpacing:         confFloat(conf, "layout.X_SPACING", DefaultXSpacing),
		XOffset:          confFloat(conf, "layout.X_OFFSET", DefaultXOffset),
		BeatResolution:   confFloat(conf, "layout.BEAT_RESOLUTION", DefaultBeatResolution),
		EllipseSize:      confFloat(conf, "layout.ELLIPSE_SIZE", DefaultEllipseSize),
		YScale:           confFloat(conf, "layout.Y_SCALE", DefaultYScale),
		DrawingHeight:    confFloat(conf, "layout.DRAWING_HEIGHT", DefaultDrawingHeight),
		PackMinIncrement: confFloat(conf, "packer.pack_min_increment", DefaultPackMinIncrement),
		PackMaxSpread:    confFloat(conf, "packer.pack_max_spread", DefaultPackMaxSpread),
		LimitA3:          confBool(conf, "layout.limit_a3", false),
		BottomUp:         confBool(conf, "layout.bottomup", false),
	}
}

// Layout implements the Layout Engine (C4, spec §4.4): given a Song, a
// configuration stack and an Extract, produce a Sheet. Errors returned
// are TransformError/LayoutWarning-shaped and non-fatal; the sheet is
// always usable even when some are present.
func Layout(song *harpnote.Song, conf *config.Stack, ex Extract) (*drawing.Sheet, []error) {
	var errs []error
	g := ResolveGeometry(conf)

	voices := make([]*harpnote.Voice, 0, len(ex.LayoutLines))
	for _, idx := range ex.LayoutLines {
		if v, ok := song.Voices[idx]; ok {
			voices = append(voices, v)
		}
	}

	packMethod := int(confFloat(conf, "packer.pack_method", 0))
	cmap := BuildCompressionMap(voices, g, packMethod)
	const startPos = 0.0
	spacing := BeatSpacing(g, cmap.MaxPos(), startPos)

	sheet := drawing.NewSheet(ex.LayoutLines, drawing.PrinterConfig{
		PageWidth:  a3RightMargin - a3LeftMargin,
		PageHeight: g.DrawingHeight,
		LimitA3:    g.LimitA3,
	})

	pos := newPositionIndex()

	for _, v := range voices {
		drawables, verrs := renderVoice(v, g, cmap, spacing, startPos, conf, pos, ex.SubflowLines[v.Index])
		errs = append(errs, verrs...)
		for _, d := range drawables {
			sheet.Add(d)
		}
	}

	for _, v := range voices {
		for _, d := range buildFlowlines(v, pos, conf, ex.SubflowLines[v.Index]) {
			sheet.Add(d)
		}
		jumps, jerrs := buildJumplines(v, g, pos, conf)
		errs = append(errs, jerrs...)
		for _, d := range jumps {
			sheet.Add(d)
		}
	}

	for _, pair := range ex.SynchLines {
		for _, d := range buildCrossSynchlines(song, pair, pos, conf) {
			sheet.Add(d)
		}
	}

	for _, v := range voices {
		for _, d := range buildNoteboundAnnotations(v, pos, conf) {
			sheet.Add(d)
		}
		for _, d := range buildBarNumbers(v, ex.BarNumbers, pos, conf) {
			sheet.Add(d)
		}
		for _, d := range buildCountNotes(v, pos, conf) {
			sheet.Add(d)
		}
	}
	if len(ex.StringNames.Text) > 0 {
		for _, d := range buildStringNames(ex.StringNames, g, a3LeftMargin) {
			sheet.Add(d)
		}
	}
	for _, d := range buildExtractNotes(ex.Notes) {
		sheet.Add(d)
	}

	maxY := 0.0
	for _, p := range pos.byEntity {
		if p.center.Y > maxY {
			maxY = p.center.Y
		}
	}
	if maxY > g.DrawingHeight {
		errs = append(errs, layoutWarning("sheet content exceeds DRAWING_HEIGHT", harpnote.Origin{}))
	}

	return sheet, errs
}

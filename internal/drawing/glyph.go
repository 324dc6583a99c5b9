package drawing

// Catalog maps a glyph name to its pre-computed path-command list, in a
// local coordinate space centered on the glyph's origin. Rest glyphs are
// keyed by REST_TO_GLYPH[d_k] (spec §4.4.3); fermata/emphasis glyphs are
// keyed by decoration name.
var Catalog = map[string][]PathCmd{
	"rest_whole":     {{Op: 'M', Args: []float64{-1.5, 0}}, {Op: 'l', Args: []float64{3, 0}}, {Op: 'l', Args: []float64{0, -1}}, {Op: 'l', Args: []float64{-3, 0}}, {Op: 'z'}},
	"rest_half":      {{Op: 'M', Args: []float64{-1.5, 0}}, {Op: 'l', Args: []float64{3, 0}}, {Op: 'l', Args: []float64{0, 1}}, {Op: 'l', Args: []float64{-3, 0}}, {Op: 'z'}},
	"rest_quarter":   {{Op: 'M', Args: []float64{0, -2}}, {Op: 'l', Args: []float64{-1, 1.5}}, {Op: 'l', Args: []float64{1, 1}}, {Op: 'l', Args: []float64{-1, 1.5}}},
	"rest_eighth":    {{Op: 'M', Args: []float64{0, -1.5}}, {Op: 'l', Args: []float64{1, 3}}, {Op: 'l', Args: []float64{-0.5, -1}}},
	"rest_sixteenth": {{Op: 'M', Args: []float64{0, -2}}, {Op: 'l', Args: []float64{1, 4}}, {Op: 'l', Args: []float64{-0.5, -1.5}}, {Op: 'l', Args: []float64{1, 2}}},

	"fermata":  {{Op: 'M', Args: []float64{-2, 0}}, {Op: 'l', Args: []float64{2, -2}}, {Op: 'l', Args: []float64{2, 2}}},
	"emphasis": {{Op: 'M', Args: []float64{-1, 1}}, {Op: 'l', Args: []float64{1, -2}}, {Op: 'l', Args: []float64{1, 2}}},
}

// GlyphFor resolves the catalog entry for name, falling back to the
// "err"-bucket glyph (spec §4.4.2's d_k fallback convention applied to
// glyph lookup) if name is unknown.
func GlyphFor(name string) []PathCmd {
	if g, ok := Catalog[name]; ok {
		return g
	}
	return Catalog["rest_quarter"]
}

// RestToGlyph maps a normalized duration bucket key ("d<n>") to the rest
// glyph drawn for it (spec §4.4.3 REST_TO_GLYPH table).
var RestToGlyph = map[string]string{
	"d1":  "rest_whole",
	"d2":  "rest_whole",
	"d3":  "rest_half",
	"d4":  "rest_half",
	"d6":  "rest_quarter",
	"d8":  "rest_quarter",
	"d12": "rest_eighth",
	"d16": "rest_eighth",
	"d24": "rest_sixteenth",
	"d32": "rest_sixteenth",
	"d48": "rest_sixteenth",
	"d64": "rest_sixteenth",
	"err": "rest_quarter",
}

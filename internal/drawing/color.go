package drawing

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// fallback is the color (black) that ResolveColor returns when a
// configuration string is missing or malformed, the same defensive pattern
// the teacher uses resolving level colors in internal/views.
var fallback, _ = colorful.Hex("#000000")

// ResolveColor parses hex into a colorful.Color, falling back to black on
// a malformed string rather than erroring: a bad color is a cosmetic
// defect, not a reason to abort a render.
func ResolveColor(hex string) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return fallback
	}
	return c
}

// ColorForVariant resolves the color_default/variant1/variant2 configured
// strings by a music entity's variant ordinal: 0 selects color_default, 1
// selects variant1, anything else (>=2) selects variant2.
func ColorForVariant(variant int, colorDefault, variant1, variant2 string) colorful.Color {
	switch variant {
	case 0:
		return ResolveColor(colorDefault)
	case 1:
		return ResolveColor(variant1)
	default:
		return ResolveColor(variant2)
	}
}

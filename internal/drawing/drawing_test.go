package drawing

import (
	"testing"

	"github.com/schollz/zupfnoter/internal/harpnote"
	"github.com/stretchr/testify/assert"
)

func testNote(t *testing.T) *harpnote.Note {
	t.Helper()
	o, err := harpnote.NewOrigin(0, 1, "note")
	assert.NoError(t, err)
	n, err := harpnote.NewNote(o, 0, 60, 8)
	assert.NoError(t, err)
	return n
}

func TestResolveColorFallsBackToBlackOnMalformedHex(t *testing.T) {
	c := ResolveColor("not-a-color")
	r, g, b := c.RGB255()
	assert.Equal(t, uint8(0), r)
	assert.Equal(t, uint8(0), g)
	assert.Equal(t, uint8(0), b)
}

func TestColorForVariantSelectsBySlot(t *testing.T) {
	c0 := ColorForVariant(0, "#FF0000", "#00FF00", "#0000FF")
	c1 := ColorForVariant(1, "#FF0000", "#00FF00", "#0000FF")
	c2 := ColorForVariant(5, "#FF0000", "#00FF00", "#0000FF")

	r, _, _ := c0.RGB255()
	assert.Equal(t, uint8(0xFF), r)

	_, g, _ := c1.RGB255()
	assert.Equal(t, uint8(0xFF), g)

	_, _, b := c2.RGB255()
	assert.Equal(t, uint8(0xFF), b)
}

func TestNewEllipseLineWidthReflectsFilled(t *testing.T) {
	n := testNote(t)
	filled := NewEllipse(n, Point{X: 1, Y: 2}, 3, true, false, fallback)
	empty := NewEllipse(n, Point{X: 1, Y: 2}, 3, false, false, fallback)

	assert.Less(t, filled.LineWidth, empty.LineWidth)
	assert.Equal(t, KindEllipse, filled.Kind)
	assert.Equal(t, n.ZnID(), filled.Origin.ZnID)
}

func TestGlyphForFallsBackOnUnknownName(t *testing.T) {
	assert.NotEmpty(t, GlyphFor("does-not-exist"))
	assert.Equal(t, Catalog["rest_quarter"], GlyphFor("does-not-exist"))
}

func TestDetectFindsOverlappingAnnotations(t *testing.T) {
	bounds := []AnnotationBounds{
		{Index: 0, Bounds: Rect{X: 0, Y: 0, W: 10, H: 10}},
		{Index: 1, Bounds: Rect{X: 5, Y: 5, W: 10, H: 10}},
		{Index: 2, Bounds: Rect{X: 100, Y: 100, W: 10, H: 10}},
	}
	collisions := Detect(bounds)
	assert.Len(t, collisions, 1)
	assert.Equal(t, Collision{A: 0, B: 1}, collisions[0])
}

func TestSheetJSONRoundTrip(t *testing.T) {
	n := testNote(t)
	sheet := NewSheet([]int{1}, PrinterConfig{PageWidth: 297, PageHeight: 420, LimitA3: true})
	sheet.Add(NewEllipse(n, Point{X: 10, Y: 20}, 2, true, false, fallback))

	data, err := sheet.ToJSON()
	assert.NoError(t, err)

	back, err := FromJSON(data)
	assert.NoError(t, err)
	assert.Len(t, back.Drawables, 1)
	assert.Equal(t, KindEllipse, back.Drawables[0].Kind)
}

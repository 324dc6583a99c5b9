package abcadapter

import (
	"testing"

	"github.com/schollz/zupfnoter/internal/zerr"
	"github.com/stretchr/testify/assert"
)

// fakeParser is a test double standing in for the real ABC engine: it
// drives the injected Callbacks the way the real parser would, so Adapter
// can be exercised without that external collaborator.
type fakeParser struct {
	cb Callbacks
}

func (f *fakeParser) ToSVG(name, abcText string) string {
	f.cb.ImgOut("<svg>")
	f.cb.AnnoStart("note", 0, 4, 1, 2, 3, 4, nil)
	f.cb.AnnoStop("note", 0, 4, 1, 2, 3, 4, nil)
	f.cb.ImgOut("</svg>")

	n2 := &Symbol{Kind: SymNOTE, Tag: "note", StartChar: 5, EndChar: 6}
	n1 := &Symbol{Kind: SymNOTE, Tag: "note", StartChar: 0, EndChar: 1, Next: n2}
	f.cb.GetAbcModel(n1, []*Symbol{n1, n1}, nil, nil)

	f.cb.ErrMsg("unexpected token", 2, 3)
	return svgResult
}

const svgResult = "<svg></svg>"

func (f *fakeParser) GetTunes() []Tune {
	return []Tune{{Info: map[string]string{"T": "Test Tune"}}}
}

func newFakeParser(cb Callbacks) Parser {
	return &fakeParser{cb: cb}
}

func TestProcessCapturesVoiceChainsSVGAndErrors(t *testing.T) {
	a := New(newFakeParser)
	res := a.Process("tune", "X:1\nK:C\nCDEF|")

	assert.Equal(t, svgResult, res.SVG)
	assert.Len(t, res.Errors, 1)
	assert.IsType(t, &zerr.ParseError{}, res.Errors[0])

	assert.Contains(t, res.Voices, 0)
	assert.Contains(t, res.Voices, 1)
	assert.NotSame(t, res.Voices[0], res.Voices[1], "each voice gets its own deep copy")

	head := res.Voices[0]
	assert.Equal(t, 0, head.StartChar)
	assert.NotNil(t, head.Next)
	assert.Equal(t, 5, head.Next.StartChar)
	assert.Nil(t, head.Next.Next)
}

func TestKindOfMapsKnownTagsCaseInsensitively(t *testing.T) {
	assert.Equal(t, SymBAR, KindOf("BAR"))
	assert.Equal(t, SymNOTE, KindOf("note"))
	assert.Equal(t, SymOther, KindOf("whatever"))
}

func TestPositionOfTracksLineAndColumn(t *testing.T) {
	text := "ab\ncd\nef"
	pos := PositionOf(text, 4) // 'd' on line 2
	assert.Equal(t, 2, pos.Line)
	assert.Equal(t, 2, pos.Column)
}

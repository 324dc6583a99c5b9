// Package abcadapter is a thin facade over the ABC-to-tune parser (spec
// §4.2, §6). The parser itself is an external black-box collaborator,
// specified here only as the Parser interface and its Callbacks — this
// package never parses ABC grammar, it only shapes the parser's callback
// stream into the per-voice symbol chains and error list the music
// transformer (internal/transform) consumes.
package abcadapter

import (
	"fmt"
	"strings"

	"github.com/schollz/zupfnoter/internal/zerr"
)

// SymbolKind is the stable small-integer tag for a parsed ABC element. Only
// the tags below are consumed downstream; every other raw tag passes
// through untouched as SymOther, with Tag preserving the original string.
type SymbolKind int

const (
	SymBAR SymbolKind = iota
	SymMETER
	SymKEY
	SymNOTE
	SymREST
	SymPART
	SymSTAVES
	SymTEMPO
	SymOther
)

var knownTags = map[string]SymbolKind{
	"bar":    SymBAR,
	"meter":  SymMETER,
	"key":    SymKEY,
	"note":   SymNOTE,
	"rest":   SymREST,
	"part":   SymPART,
	"staves": SymSTAVES,
	"tempo":  SymTEMPO,
}

// KindOf maps a raw parser tag string to its stable SymbolKind.
func KindOf(tag string) SymbolKind {
	if k, ok := knownTags[strings.ToLower(tag)]; ok {
		return k
	}
	return SymOther
}

// Position is a 1-based line/column pair.
type Position struct {
	Line   int
	Column int
}

// PositionOf scans text for newlines to turn a character offset into a
// line/column pair (spec §4.2).
func PositionOf(text string, charIdx int) Position {
	line, col := 1, 1
	for i, r := range text {
		if i >= charIdx {
			break
		}
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return Position{Line: line, Column: col}
}

// Symbol is one element of the parser's per-voice symbol stream. Raw holds
// the parser-specific payload (pitch list, bar_type string, tuplet info,
// ...), type-asserted by internal/transform according to Tag.
type Symbol struct {
	Kind      SymbolKind
	Tag       string // raw parser tag, preserved even for known kinds
	StartChar int
	EndChar   int
	Start     Position
	End       Position
	Next      *Symbol // per-voice chain pointer, captured at GetAbcModel time
	Raw       interface{}
}

// Callbacks mirrors the parser's callback surface (spec §6).
type Callbacks struct {
	ImgOut      func(svgFragment string)
	AnnoStart   func(kind string, startChar, endChar int, x, y, w, h float64, sym *Symbol)
	AnnoStop    func(kind string, startChar, endChar int, x, y, w, h float64, sym *Symbol)
	GetAbcModel func(tsFirst *Symbol, voiceTb []*Symbol, linesInfo interface{}, info interface{})
	ErrMsg      func(message string, line, col int)
}

// Tune is one parsed tune, as returned by Parser.GetTunes.
type Tune struct {
	Info map[string]string
}

// Parser is the external ABC-to-tune parser collaborator. An
// implementation is injected by the caller (e.g. a cgo or subprocess
// wrapper around a real ABC engine); this package only depends on the
// interface.
type Parser interface {
	ToSVG(name, abcText string) string
	GetTunes() []Tune
}

// NewParserFunc constructs a Parser wired to the given callbacks, mirroring
// "new Parser(callbacks)" from spec §6.
type NewParserFunc func(cb Callbacks) Parser

// PlaybackEvent is one entry of the player event list (spec §6): index is
// the ABC character offset at which the note begins.
type PlaybackEvent struct {
	Index int
	On    bool
}

// Adapter drives a Parser through one render and collects its output.
type Adapter struct {
	newParser NewParserFunc
}

// New returns an Adapter that will construct a fresh Parser (via
// newParser) for every call to Process.
func New(newParser NewParserFunc) *Adapter {
	return &Adapter{newParser: newParser}
}

// Result is everything C3 needs from one adapter invocation.
type Result struct {
	SVG    string
	Voices map[int]*Symbol // head of each voice's captured symbol chain
	Errors []error
}

// Process runs the parser over abcText and returns the captured per-voice
// symbol chains, the annotated SVG, and any parse errors.
func (a *Adapter) Process(name, abcText string) *Result {
	res := &Result{Voices: map[int]*Symbol{}}
	var svg strings.Builder

	cb := Callbacks{
		ImgOut: func(fragment string) {
			svg.WriteString(fragment)
		},
		AnnoStart: func(kind string, startChar, endChar int, x, y, w, h float64, sym *Symbol) {
			id := fmt.Sprintf("_%s_%d_%d_", kind, startChar, endChar)
			fmt.Fprintf(&svg, `<g class="%s">`, id)
			fmt.Fprintf(&svg, `<rect class="abcref" id="%s" x="%g" y="%g" width="%g" height="%g" fill="transparent" pointer-events="all"/>`, id, x, y, w, h)
		},
		AnnoStop: func(kind string, startChar, endChar int, x, y, w, h float64, sym *Symbol) {
			svg.WriteString("</g>")
		},
		GetAbcModel: func(tsFirst *Symbol, voiceTb []*Symbol, linesInfo interface{}, info interface{}) {
			// Capture now: the parser may clear or truncate its global
			// time-sorted chain once this callback returns (spec §4.2,
			// design note §9), so the per-voice chain is deep-copied here.
			for i, head := range voiceTb {
				res.Voices[i] = captureChain(head, abcText)
			}
		},
		ErrMsg: func(message string, line, col int) {
			res.Errors = append(res.Errors, &zerr.ParseError{Message: message, Line: line, Column: col})
		},
	}

	p := a.newParser(cb)
	res.SVG = p.ToSVG(name, abcText)
	p.GetTunes()
	return res
}

// captureChain deep-copies a parser-owned linked list of symbols into
// adapter-owned storage, assigning Start/End line/column along the way.
func captureChain(head *Symbol, text string) *Symbol {
	if head == nil {
		return nil
	}
	var first, prev *Symbol
	for s := head; s != nil; s = s.Next {
		cp := *s
		cp.Next = nil
		cp.Start = PositionOf(text, cp.StartChar)
		cp.End = PositionOf(text, cp.EndChar)
		if prev == nil {
			first = &cp
		} else {
			prev.Next = &cp
		}
		prev = &cp
	}
	return first
}

// Package abcstub is a minimal, deliberately incomplete ABC tokenizer
// implementing abcadapter.Parser. The real ABC engine is an external
// black-box collaborator per spec §6/§4.2 (the adapter depends only on
// the Parser interface); this package exists so cmd/zupfnoter has
// something to drive end to end without a cgo/subprocess dependency on a
// real engine. It understands a single voice of notes, rests, bars and
// quoted chord annotations — enough to exercise C2 through C4 on simple
// input, not the full ABC grammar.
package abcstub

import (
	"strconv"
	"strings"

	"github.com/schollz/zupfnoter/internal/abcadapter"
	"github.com/schollz/zupfnoter/internal/transform"
)

// pitchOf maps a bare ABC note letter to its natural MIDI pitch: uppercase
// C is middle C (60) and lowercase letters are the octave above. Octave
// marks (',' down, '\'' up) are applied by readOnePitch.
var pitchOf = map[byte]int{
	'C': 60, 'D': 62, 'E': 64, 'F': 65, 'G': 67, 'A': 69, 'B': 71,
	'c': 72, 'd': 74, 'e': 76, 'f': 77, 'g': 79, 'a': 81, 'b': 83,
}

// Stub implements abcadapter.Parser over a small fixed token grammar.
type Stub struct {
	cb abcadapter.Callbacks
}

// New satisfies abcadapter.NewParserFunc.
func New(cb abcadapter.Callbacks) abcadapter.Parser {
	return &Stub{cb: cb}
}

// ToSVG tokenizes abcText into a single voice's Symbol chain, invokes
// GetAbcModel once with it, and returns a placeholder SVG fragment via
// ImgOut (the real engine's standard-notation rendering is out of scope
// here).
func (s *Stub) ToSVG(name, abcText string) string {
	lUnit := 8 // default ABC default length: eighth notes
	var body strings.Builder
	for _, line := range strings.Split(abcText, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "L:"):
			lUnit = parseUnitLength(trimmed[2:])
		case len(trimmed) >= 2 && trimmed[1] == ':' &&
			((trimmed[0] >= 'A' && trimmed[0] <= 'Z') || (trimmed[0] >= 'a' && trimmed[0] <= 'z')):
			// other header lines (X:, T:, K:, M:, V:) carry no tokens
		default:
			body.WriteString(line)
			body.WriteString("\n")
		}
	}

	head := tokenize(body.String(), lUnit, s.cb.ErrMsg)
	if s.cb.GetAbcModel != nil {
		s.cb.GetAbcModel(head, []*abcadapter.Symbol{nil, head}, nil, nil)
	}
	if s.cb.ImgOut != nil {
		s.cb.ImgOut("<!-- abcstub: standard notation rendering not implemented -->")
	}
	return "<svg/>"
}

// GetTunes returns a single placeholder tune; abcstub does not track tune
// headers beyond what ToSVG consumes inline.
func (s *Stub) GetTunes() []abcadapter.Tune {
	return []abcadapter.Tune{{Info: map[string]string{}}}
}

func parseUnitLength(s string) int {
	s = strings.TrimSpace(s)
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return 8
	}
	den, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || den == 0 {
		return 8
	}
	return den
}

type tokenizer struct {
	text      string
	pos       int
	lUnit     int
	pending   []string // quoted annotations awaiting the next note/rest
	errmsg    func(msg string, line, col int)
	head, tail *abcadapter.Symbol
}

func tokenize(text string, lUnit int, errmsg func(string, int, int)) *abcadapter.Symbol {
	tk := &tokenizer{text: text, lUnit: lUnit, errmsg: errmsg}
	for tk.pos < len(tk.text) {
		c := tk.text[tk.pos]
		switch {
		case c == ' ' || c == '\n' || c == '\r' || c == '\t':
			tk.pos++
		case c == '"':
			tk.readAnnotation()
		case c == '|' || c == ':':
			tk.readBar()
		case c == 'z' || c == 'Z':
			tk.readRest()
		case c == '[':
			tk.readChord()
		case isNoteLetter(c):
			tk.readNote()
		default:
			tk.pos++
		}
	}
	return tk.head
}

func (tk *tokenizer) append(sym *abcadapter.Symbol) {
	if tk.head == nil {
		tk.head = sym
		tk.tail = sym
		return
	}
	tk.tail.Next = sym
	tk.tail = sym
}

func (tk *tokenizer) takePending() []string {
	p := tk.pending
	tk.pending = nil
	return p
}

func (tk *tokenizer) readAnnotation() {
	start := tk.pos
	tk.pos++ // opening quote
	for tk.pos < len(tk.text) && tk.text[tk.pos] != '"' {
		tk.pos++
	}
	if tk.pos < len(tk.text) {
		tk.pos++ // closing quote
	}
	text := tk.text[start+1 : min(tk.pos-1, len(tk.text))]
	tk.pending = append(tk.pending, text)
}

func (tk *tokenizer) readBar() {
	start := tk.pos
	for tk.pos < len(tk.text) && strings.ContainsRune("|:1234", rune(tk.text[tk.pos])) {
		tk.pos++
	}
	barType := tk.text[start:tk.pos]
	tk.append(&abcadapter.Symbol{
		Kind: abcadapter.SymBAR, Tag: "bar", StartChar: start, EndChar: tk.pos,
		Raw: transform.BarRaw{BarType: barType, Annotations: tk.takePending()},
	})
}

func (tk *tokenizer) readRest() {
	start := tk.pos
	tk.pos++
	mult := tk.readDurationMultiplier()
	dur := transform.ParserWholeTicks / tk.lUnit * mult.num / mult.den
	tk.append(&abcadapter.Symbol{
		Kind: abcadapter.SymREST, Tag: "rest", StartChar: start, EndChar: tk.pos,
		Raw: transform.RestRaw{Duration: dur, Annotations: tk.takePending()},
	})
}

func (tk *tokenizer) readNote() {
	start := tk.pos
	pitch := tk.readOnePitch()
	mult := tk.readDurationMultiplier()
	dur := transform.ParserWholeTicks / tk.lUnit * mult.num / mult.den
	tk.append(&abcadapter.Symbol{
		Kind: abcadapter.SymNOTE, Tag: "note", StartChar: start, EndChar: tk.pos,
		Raw: transform.NoteRaw{Pitches: []int{pitch}, Duration: dur, TieForward: []bool{false}, Annotations: tk.takePending()},
	})
}

func (tk *tokenizer) readChord() {
	start := tk.pos
	tk.pos++ // '['
	var pitches []int
	for tk.pos < len(tk.text) && tk.text[tk.pos] != ']' {
		if isNoteLetter(tk.text[tk.pos]) {
			pitches = append(pitches, tk.readOnePitch())
		} else {
			tk.pos++
		}
	}
	if tk.pos < len(tk.text) {
		tk.pos++ // ']'
	}
	mult := tk.readDurationMultiplier()
	dur := transform.ParserWholeTicks / tk.lUnit * mult.num / mult.den
	tieFwd := make([]bool, len(pitches))
	tk.append(&abcadapter.Symbol{
		Kind: abcadapter.SymNOTE, Tag: "note", StartChar: start, EndChar: tk.pos,
		Raw: transform.NoteRaw{Pitches: pitches, Duration: dur, TieForward: tieFwd, Annotations: tk.takePending()},
	})
}

// readOnePitch consumes one note letter plus its octave marks and
// accidental, returning its MIDI pitch.
func (tk *tokenizer) readOnePitch() int {
	accidental := 0
	for tk.pos < len(tk.text) && strings.ContainsRune("^_=", rune(tk.text[tk.pos])) {
		if tk.text[tk.pos] == '^' {
			accidental++
		} else if tk.text[tk.pos] == '_' {
			accidental--
		}
		tk.pos++
	}
	letter := tk.text[tk.pos]
	pitch := pitchOf[letter]
	tk.pos++
	for tk.pos < len(tk.text) {
		switch tk.text[tk.pos] {
		case '\'':
			pitch += 12
			tk.pos++
		case ',':
			pitch -= 12
			tk.pos++
		default:
			return pitch + accidental
		}
	}
	return pitch + accidental
}

type fraction struct{ num, den int }

// readDurationMultiplier parses an ABC length multiplier following a note
// or rest: digits, "/", "/digits", or a run of slashes (each halving).
func (tk *tokenizer) readDurationMultiplier() fraction {
	f := fraction{num: 1, den: 1}
	if tk.pos >= len(tk.text) {
		return f
	}
	if isDigit(tk.text[tk.pos]) {
		start := tk.pos
		for tk.pos < len(tk.text) && isDigit(tk.text[tk.pos]) {
			tk.pos++
		}
		n, _ := strconv.Atoi(tk.text[start:tk.pos])
		f.num = n
	}
	for tk.pos < len(tk.text) && tk.text[tk.pos] == '/' {
		tk.pos++
		if tk.pos < len(tk.text) && isDigit(tk.text[tk.pos]) {
			start := tk.pos
			for tk.pos < len(tk.text) && isDigit(tk.text[tk.pos]) {
				tk.pos++
			}
			n, _ := strconv.Atoi(tk.text[start:tk.pos])
			f.den *= n
		} else {
			f.den *= 2
		}
	}
	return f
}

func isNoteLetter(c byte) bool {
	_, ok := pitchOf[c]
	return ok || c == '^' || c == '_' || c == '='
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

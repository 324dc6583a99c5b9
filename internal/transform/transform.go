package transform

import (
	"fmt"
	"sort"

	"github.com/schollz/zupfnoter/internal/abcadapter"
	"github.com/schollz/zupfnoter/internal/config"
	"github.com/schollz/zupfnoter/internal/harpnote"
	"github.com/schollz/zupfnoter/internal/zerr"
)

// Transformer drives the per-voice state machine of spec §4.3 over the
// symbol streams produced by internal/abcadapter, consulting conf for
// rest-positioning, annotation templates and variant-jump distances.
type Transformer struct {
	conf *config.Stack
}

// New returns a Transformer consulting the given configuration stack.
func New(conf *config.Stack) *Transformer {
	return &Transformer{conf: conf}
}

// Run builds a harpnote.Song from the per-voice symbol chains captured by
// the ABC adapter. Errors accumulated along the way are both returned and
// attached to the resulting Song as warnings (TransformError/LayoutWarning
// never abort the render; the offending symbol is skipped and the error
// recorded).
func (t *Transformer) Run(voiceChains map[int]*abcadapter.Symbol) (*harpnote.Song, []error) {
	song := harpnote.NewSong()
	var errs []error

	indices := make([]int, 0, len(voiceChains))
	for idx := range voiceChains {
		if idx == 0 {
			continue // voice 0 is an alias of voice 1, never a source chain
		}
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	for _, idx := range indices {
		v, verrs := t.runVoice(idx, voiceChains[idx])
		song.AddVoice(v)
		errs = append(errs, verrs...)
	}

	song.FinalizeBeatMaps()
	for _, e := range errs {
		song.Warn(e)
	}
	return song, errs
}

func (t *Transformer) runVoice(index int, head *abcadapter.Symbol) (*harpnote.Voice, []error) {
	voice := harpnote.NewVoice(index, fmt.Sprintf("voice-%d", index))
	var errs []error

	wMeasure := ParserWholeTicks
	countBy := 4
	st := newVoiceState(wMeasure, countBy)

	for sym := head; sym != nil; sym = sym.Next {
		switch sym.Kind {
		case abcadapter.SymMETER:
			t.handleMeter(sym, st)
		case abcadapter.SymKEY, abcadapter.SymTEMPO, abcadapter.SymSTAVES:
			// side-effect free here: no downstream consumer needs key,
			// tempo or staves beyond pass-through.
		case abcadapter.SymPART:
			t.handlePart(sym, st)
		case abcadapter.SymNOTE:
			if err := t.handleNote(sym, voice, st); err != nil {
				errs = append(errs, err)
			}
		case abcadapter.SymREST:
			if err := t.handleRest(sym, voice, st); err != nil {
				errs = append(errs, err)
			}
		case abcadapter.SymBAR:
			if err := t.handleBar(sym, voice, st); err != nil {
				errs = append(errs, err)
			}
		default:
			// Unknown tags pass through untouched, per spec §4.2.
		}
	}

	errs = append(errs, t.synthesizeVariantJumps(voice, st)...)
	return voice, errs
}

func (t *Transformer) handleMeter(sym *abcadapter.Symbol, st *voiceState) {
	raw, ok := sym.Raw.(MeterRaw)
	if !ok || raw.Den == 0 {
		return
	}
	st.wMeasure = ParserWholeTicks * raw.Num / raw.Den
	st.countBy = raw.Den
}

func (t *Transformer) handlePart(sym *abcadapter.Symbol, st *voiceState) {
	raw, ok := sym.Raw.(PartRaw)
	if !ok {
		return
	}
	st.partTable[st.currentTime] = raw.Label
}

func origin(sym *abcadapter.Symbol) harpnote.Origin {
	o, err := harpnote.NewOrigin(sym.StartChar, sym.EndChar, sym.Tag)
	if err != nil {
		o = harpnote.Origin{StartChar: sym.StartChar, EndChar: sym.EndChar, RawRef: sym.Tag}
	}
	return o
}

func transformErr(msg string, sym *abcadapter.Symbol, voiceIdx int) error {
	return &zerr.TransformError{Message: msg, StartChar: sym.StartChar, EndChar: sym.EndChar, VoiceIndex: voiceIdx}
}

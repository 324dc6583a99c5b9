package transform

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/schollz/zupfnoter/internal/abcadapter"
	"github.com/schollz/zupfnoter/internal/harpnote"
)

var gotoDistanceAnnotation = regexp.MustCompile(`^@@(-?\d+)(?:,(-?\d+))?(?:,(-?\d+))?$`)

func parseGotoDistanceAnnotation(annotations []string) ([]int, bool) {
	for _, a := range annotations {
		if m := gotoDistanceAnnotation.FindStringSubmatch(a); m != nil {
			var out []int
			for _, g := range m[1:] {
				if g == "" {
					continue
				}
				n, _ := strconv.Atoi(g)
				out = append(out, n)
			}
			return out, true
		}
	}
	return nil, false
}

func (t *Transformer) handleBar(sym *abcadapter.Symbol, voice *harpnote.Voice, st *voiceState) error {
	raw, ok := sym.Raw.(BarRaw)
	if !ok {
		return transformErr("bar symbol missing BarRaw payload", sym, voice.Index)
	}

	isVolta := raw.RbStart != 0 || raw.RbStop != 0
	if !isVolta {
		st.marks.measure = true
		st.measureCount++
	}

	trailingColon := strings.HasSuffix(raw.BarType, ":")
	leadingColon := strings.HasPrefix(raw.BarType, ":")

	if trailingColon {
		st.marks.repeatStart = true
	}

	if raw.RbStart == 2 {
		st.variantNo++
		label := raw.Label
		if label == "" {
			label = strconv.Itoa(st.variantNo)
		}
		st.marks.variantEnding = true
		st.marks.variantLabel = label
	}

	if raw.RbStop == 2 {
		grp := st.currentVariantGroup()
		if len(grp) > 0 {
			grp[len(grp)-1].RBStop = st.previousNote
			if leadingColon {
				grp[len(grp)-1].RepeatEnd = true
				st.duplicateTopRepeat()
			}
			st.setCurrentVariantGroup(grp)
		}
		if raw.RbStart != 2 {
			st.marks.variantFollowup = true
			st.openVariantGroup()
		}
	}

	if leadingColon && raw.RbStop != 2 {
		target := st.topRepeat()
		if target != nil && st.previousNote != nil {
			distance := []int{2}
			if d, ok := parseGotoDistanceAnnotation(raw.Annotations); ok {
				distance = d
			}
			g := harpnote.NewGoto(origin(sym), st.previousNote, target, harpnote.GotoPolicy{
				IsRepeat:   true,
				Distance:   distance,
				FromAnchor: harpnote.AnchorAfter,
				ToAnchor:   harpnote.AnchorBefore,
			})
			voice.Append(g)
			if len(st.repetitionStack) > 1 {
				st.popRepeat()
			}
			st.justCrossedRepeatEnd = true
		}
	}

	return nil
}

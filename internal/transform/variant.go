package transform

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/schollz/zupfnoter/internal/harpnote"
)

var (
	jumpTargetRe  = regexp.MustCompile(`^:(\S+)$`)
	gotoSourceRe  = regexp.MustCompile(`^@([^@]+)@(-?\d+(?:,-?\d+)*)$`)
	hashRe        = regexp.MustCompile(`^#(.+)$`)
	bangRe        = regexp.MustCompile(`^!(.+)$`)
	leftRe        = regexp.MustCompile(`^<(.+)$`)
	rightRe       = regexp.MustCompile(`^>(.+)$`)
	posSuffixRe   = regexp.MustCompile(`^(.*)@(-?[0-9.]+),(-?[0-9.]+)$`)
)

// stripPosition splits a trailing "@x,y" suffix off text, returning the
// stripped text and the parsed position if present.
func stripPosition(text string) (string, harpnote.Point, bool) {
	if m := posSuffixRe.FindStringSubmatch(text); m != nil {
		x, _ := strconv.ParseFloat(m[2], 64)
		y, _ := strconv.ParseFloat(m[3], 64)
		return m[1], harpnote.Point{X: x, Y: y}, true
	}
	return text, harpnote.Point{}, false
}

// scanChordAnnotations implements §4.3.2 step 4: registers jump targets
// and sources, and synthesizes NoteBoundAnnotations for #/!/</> markers.
func (t *Transformer) scanChordAnnotations(annotations []string, p harpnote.Playable, o harpnote.Origin, voice *harpnote.Voice, st *voiceState) {
	defaultPos := confPoint(t.conf, "defaults.notebound.annotation.pos", harpnote.Point{X: 0, Y: -6})

	for _, a := range annotations {
		switch {
		case jumpTargetRe.MatchString(a):
			label := jumpTargetRe.FindStringSubmatch(a)[1]
			st.jumpTargets[label] = p

		case gotoSourceRe.MatchString(a):
			m := gotoSourceRe.FindStringSubmatch(a)
			label := m[1]
			var distance []int
			for _, ds := range strings.Split(m[2], ",") {
				n, _ := strconv.Atoi(ds)
				distance = append(distance, n)
			}
			st.pendingSources = append(st.pendingSources, pendingGotoSource{From: p, Label: label, Distance: distance, Origin: o})

		case hashRe.MatchString(a):
			t.appendAnnotation(voice, p, o, hashRe.FindStringSubmatch(a)[1], harpnote.StyleRegular, defaultPos, harpnote.ShiftNone, "")

		case bangRe.MatchString(a):
			t.appendAnnotation(voice, p, o, bangRe.FindStringSubmatch(a)[1], harpnote.StyleBold, defaultPos, harpnote.ShiftNone, "")

		case leftRe.MatchString(a):
			t.appendAnnotation(voice, p, o, leftRe.FindStringSubmatch(a)[1], harpnote.StyleRegular, defaultPos, harpnote.ShiftLeft, "")
			applyShift(p, harpnote.ShiftLeft)

		case rightRe.MatchString(a):
			t.appendAnnotation(voice, p, o, rightRe.FindStringSubmatch(a)[1], harpnote.StyleRegular, defaultPos, harpnote.ShiftRight, "")
			applyShift(p, harpnote.ShiftRight)
		}
	}
}

func applyShift(p harpnote.Playable, shift harpnote.Shift) {
	switch v := p.(type) {
	case *harpnote.Note:
		v.NoteShift = shift
	case *harpnote.SynchPoint:
		for _, n := range v.Notes {
			n.NoteShift = shift
		}
	}
}

func (t *Transformer) appendAnnotation(voice *harpnote.Voice, p harpnote.Playable, o harpnote.Origin, rawText string, style harpnote.AnnotationStyle, fallbackPos harpnote.Point, shift harpnote.Shift, confKey string) {
	text, pos, hasPos := stripPosition(rawText)
	if !hasPos {
		pos = fallbackPos
	}
	ann := harpnote.NewNoteBoundAnnotation(o, p, text, style, pos, confKey)
	ann.Shift = shift
	voice.Append(ann)
}

// resolvePendingGotos turns registered jump-target/source pairs into
// Goto entities, appended to the voice in source order.
func (t *Transformer) resolvePendingGotos(voice *harpnote.Voice, st *voiceState) {
	for _, ps := range st.pendingSources {
		target, ok := st.jumpTargets[ps.Label]
		if !ok {
			continue
		}
		g := harpnote.NewGoto(ps.Origin, ps.From, target, harpnote.GotoPolicy{
			Distance:   ps.Distance,
			FromAnchor: harpnote.AnchorAfter,
			ToAnchor:   harpnote.AnchorBefore,
		})
		voice.Append(g)
	}
}

// synthesizeVariantJumps implements §4.3.3: after all symbols of a voice
// have been processed, emit the Gotos implied by the recorded variant
// groups.
func (t *Transformer) synthesizeVariantJumps(voice *harpnote.Voice, st *voiceState) []error {
	t.resolvePendingGotos(voice, st)

	defaultDistance := confIntSlice(t.conf, "defaults.variant.distance", []int{-10, 10, 15})

	var errs []error
	for _, grp := range st.variantEndings {
		if len(grp) < 2 {
			continue
		}
		last := len(grp) - 1
		lastIsFollowup := grp[last].IsFollowup

		lastVariant := last
		if lastIsFollowup {
			lastVariant = last - 1
		}
		if lastVariant < 0 {
			continue
		}

		// Startlines: for every variant i >= 1 (except a trailing
		// followup), jump from the first variant's close to each later
		// variant's open.
		for i := 1; i <= lastVariant; i++ {
			if grp[i].RBStart == nil || grp[0].RBStop == nil {
				continue
			}
			g := harpnote.NewGoto(grp[0].RBStop.Origin(), grp[0].RBStop, grp[i].RBStart, harpnote.GotoPolicy{
				Distance:   []int{defaultDistance[0]},
				FromAnchor: harpnote.AnchorAfter,
				ToAnchor:   harpnote.AnchorBefore,
			})
			voice.Append(g)
		}

		// Endlines: every variant not marked repeatEnd, except the last,
		// jumps forward to the last variant's open.
		for i := 0; i < lastVariant; i++ {
			if grp[i].RepeatEnd || grp[i].RBStop == nil || grp[lastVariant].RBStart == nil {
				continue
			}
			dist := defaultDistance[0]
			if len(defaultDistance) > 1 {
				dist = defaultDistance[1]
			}
			g := harpnote.NewGoto(grp[i].RBStop.Origin(), grp[i].RBStop, grp[lastVariant].RBStart, harpnote.GotoPolicy{
				Distance:       []int{dist},
				VerticalAnchor: "to",
			})
			voice.Append(g)
		}

		// Followup: if the group ends with a followup entry, jump from
		// the last variant's close to the followup's start.
		if lastIsFollowup && grp[lastVariant].RBStop != nil && grp[last].RBStart != nil {
			dist := defaultDistance[0]
			if len(defaultDistance) > 2 {
				dist = defaultDistance[2]
			}
			g := harpnote.NewGoto(grp[lastVariant].RBStop.Origin(), grp[lastVariant].RBStop, grp[last].RBStart, harpnote.GotoPolicy{
				Distance: []int{dist},
			})
			voice.Append(g)
		}
	}
	return errs
}

package harpnote

// Point is a simple 2D offset or position in sheet-space millimeters.
type Point struct {
	X, Y float64
}

// AnnotationStyle names the text rendering style of a NoteBoundAnnotation.
type AnnotationStyle string

const (
	StyleRegular  AnnotationStyle = "regular"
	StyleBold     AnnotationStyle = "bold"
	StyleItalic   AnnotationStyle = "italic"
	StyleSmall    AnnotationStyle = "small"
)

// NoteBoundAnnotation attaches text to a companion Playable at an offset.
type NoteBoundAnnotation struct {
	origin  Origin
	znid    string
	visible bool

	Companion Playable
	Text      string
	Style     AnnotationStyle
	Position  Point
	ConfKey   string
	Shift     Shift
}

func NewNoteBoundAnnotation(origin Origin, companion Playable, text string, style AnnotationStyle, pos Point, confKey string) *NoteBoundAnnotation {
	return &NoteBoundAnnotation{
		origin:    origin,
		znid:      ZnID(origin.StartChar, companion.Time()),
		visible:   true,
		Companion: companion,
		Text:      text,
		Style:     style,
		Position:  pos,
		ConfKey:   confKey,
	}
}

func (a *NoteBoundAnnotation) Kind() Kind        { return KindNoteBoundAnnotation }
func (a *NoteBoundAnnotation) Origin() Origin    { return a.origin }
func (a *NoteBoundAnnotation) ZnID() string      { return a.znid }
func (a *NoteBoundAnnotation) Visible() bool     { return a.visible }
func (a *NoteBoundAnnotation) SetVisible(v bool) { a.visible = v }
func (a *NoteBoundAnnotation) Beat() float64 {
	if a.Companion == nil {
		return 0
	}
	return a.Companion.Beat()
}

// MeasureStart annotates a companion Playable as the first note of a
// measure. Beat is delegated to the companion.
type MeasureStart struct {
	origin       Origin
	znid         string
	visible      bool
	Companion    Playable
	MeasureCount int
}

func NewMeasureStart(origin Origin, companion Playable, measureCount int) *MeasureStart {
	return &MeasureStart{
		origin:       origin,
		znid:         ZnID(origin.StartChar, companion.Time()),
		visible:      true,
		Companion:    companion,
		MeasureCount: measureCount,
	}
}

func (m *MeasureStart) Kind() Kind        { return KindMeasureStart }
func (m *MeasureStart) Origin() Origin    { return m.origin }
func (m *MeasureStart) ZnID() string      { return m.znid }
func (m *MeasureStart) Visible() bool     { return m.visible }
func (m *MeasureStart) SetVisible(v bool) { m.visible = v }
func (m *MeasureStart) Beat() float64 {
	if m.Companion == nil {
		return 0
	}
	return m.Companion.Beat()
}

// NewPart annotates a companion Playable as the first note of a named part.
type NewPart struct {
	origin    Origin
	znid      string
	visible   bool
	Companion Playable
	Label     string
}

func NewNewPart(origin Origin, companion Playable, label string) *NewPart {
	return &NewPart{
		origin:    origin,
		znid:      ZnID(origin.StartChar, companion.Time()),
		visible:   true,
		Companion: companion,
		Label:     label,
	}
}

func (n *NewPart) Kind() Kind        { return KindNewPart }
func (n *NewPart) Origin() Origin    { return n.origin }
func (n *NewPart) ZnID() string      { return n.znid }
func (n *NewPart) Visible() bool     { return n.visible }
func (n *NewPart) SetVisible(v bool) { n.visible = v }
func (n *NewPart) Beat() float64 {
	if n.Companion == nil {
		return 0
	}
	return n.Companion.Beat()
}

// Anchor selects which side of a note a jumpline leaves from or arrives at.
type Anchor int

const (
	AnchorBefore Anchor = iota
	AnchorAfter
)

// GotoPolicy governs jump-line rendering for a single Goto.
type GotoPolicy struct {
	IsRepeat       bool
	Level          int
	Distance       []int // triple, e.g. [-10, 10, 15]; a single value is stored as a 1-element slice
	FromAnchor     Anchor
	ToAnchor       Anchor
	VerticalAnchor string // "", "from" or "to"
	ConfKey        string
}

// Goto is a jump from one Playable to another (repeat end, variant ending).
type Goto struct {
	origin  Origin
	znid    string
	visible bool

	From   Playable
	To     Playable
	Policy GotoPolicy
}

func NewGoto(origin Origin, from, to Playable, policy GotoPolicy) *Goto {
	t := 0
	if from != nil {
		t = from.Time()
	}
	return &Goto{
		origin:  origin,
		znid:    ZnID(origin.StartChar, t),
		visible: true,
		From:    from,
		To:      to,
		Policy:  policy,
	}
}

func (g *Goto) Kind() Kind        { return KindGoto }
func (g *Goto) Origin() Origin    { return g.origin }
func (g *Goto) ZnID() string      { return g.znid }
func (g *Goto) Visible() bool     { return g.visible }
func (g *Goto) SetVisible(v bool) { g.visible = v }

// SingleDistance returns the first configured distance, defaulting to 2
// per spec §4.3.1 ("distance is taken from an optional chord annotation...
// default [2]").
func (g *Goto) SingleDistance() int {
	if len(g.Policy.Distance) == 0 {
		return 2
	}
	return g.Policy.Distance[0]
}

package drawing

// Rect is an axis-aligned bounding box in sheet space, used only by the
// collision detector; Drawables themselves stay center/path based.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) overlaps(o Rect) bool {
	return r.X < o.X+o.W && r.X+r.W > o.X && r.Y < o.Y+o.H && r.Y+r.H > o.Y
}

// AnnotationBounds is the caller-supplied estimate of how much space an
// Annotation drawable occupies; the layout engine is responsible for
// measuring text extents, the collision detector only compares rectangles.
type AnnotationBounds struct {
	Index int
	Bounds Rect
}

// Collision is one pair of overlapping annotation drawables.
type Collision struct {
	A, B int // indices into the bounds slice passed to Detect
}

// Detect flags every pair of overlapping annotation bounding boxes,
// render-local per spec §5 ("the collision detector is render-local").
// O(n^2) is acceptable: a sheet carries at most a few hundred annotations.
func Detect(bounds []AnnotationBounds) []Collision {
	var out []Collision
	for i := 0; i < len(bounds); i++ {
		for j := i + 1; j < len(bounds); j++ {
			if bounds[i].Bounds.overlaps(bounds[j].Bounds) {
				out = append(out, Collision{A: bounds[i].Index, B: bounds[j].Index})
			}
		}
	}
	return out
}

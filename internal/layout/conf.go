package layout

import (
	"github.com/schollz/zupfnoter/internal/config"
	"github.com/schollz/zupfnoter/internal/harpnote"
)

func confGet(stack *config.Stack, path string) interface{} {
	v, err := stack.Get(path)
	if err != nil {
		return nil
	}
	return v
}

func confFloat(stack *config.Stack, path string, def float64) float64 {
	switch n := confGet(stack, path).(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return def
	}
}

func confBool(stack *config.Stack, path string, def bool) bool {
	if b, ok := confGet(stack, path).(bool); ok {
		return b
	}
	return def
}

func confString(stack *config.Stack, path string, def string) string {
	if s, ok := confGet(stack, path).(string); ok {
		return s
	}
	return def
}

func confPoint(stack *config.Stack, path string, def harpnote.Point) harpnote.Point {
	m, ok := confGet(stack, path).(config.Map)
	if !ok {
		return def
	}
	p := def
	if x, ok := m["x"]; ok {
		p.X = toFloat(x, p.X)
	}
	if y, ok := m["y"]; ok {
		p.Y = toFloat(y, p.Y)
	}
	return p
}

func toFloat(v interface{}, def float64) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return def
	}
}

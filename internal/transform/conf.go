package transform

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

func confInt(stack *config.Stack, path string, def int) int {
	v := confGet(stack, path)
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	default:
		return def
	}
}

func confFloat(stack *config.Stack, path string, def float64) float64 {
	v := confGet(stack, path)
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return def
	}
}

func confString(stack *config.Stack, path string, def string) string {
	v := confGet(stack, path)
	if s, ok := v.(string); ok {
		return s
	}
	return def
}

func confPoint(stack *config.Stack, path string, def harpnote.Point) harpnote.Point {
	v := confGet(stack, path)
	m, ok := v.(config.Map)
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

func confIntSlice(stack *config.Stack, path string, def []int) []int {
	v := confGet(stack, path)
	seq, ok := v.([]interface{})
	if !ok {
		return def
	}
	out := make([]int, 0, len(seq))
	for _, e := range seq {
		out = append(out, int(toFloat(e, 0)))
	}
	if len(out) == 0 {
		return def
	}
	return out
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

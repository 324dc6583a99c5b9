package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLayeringRestoresPriorValues(t *testing.T) {
	s := NewStack()
	s.Push(Map{"a": 1})
	before, _ := s.Get("a")

	s.Push(Map{"a": 2})
	s.Pop()
	after, _ := s.Get("a")

	assert.Equal(t, before, after)
}

func TestDeepMergeNonDestructive(t *testing.T) {
	s := NewStack()
	s.Push(Map{"x": Map{"y": 1, "z": 2}})
	afterA, _ := s.Get("")

	s.Push(Map{"x": Map{"y": 99}})
	s.Pop()
	afterPop, _ := s.Get("")

	assert.Equal(t, afterA, afterPop)

	// Re-pushing the override merges it over the lower layer's submap: y is
	// replaced, z is kept.
	s.Push(Map{"x": Map{"y": 99}})
	lower, _ := s.Get("", false)
	_ = lower
	y, _ := s.Get("x.y")
	assert.Equal(t, 99, y)
	z, _ := s.Get("x.z")
	assert.Equal(t, 2, z)
}

func TestCircularDependencyDetected(t *testing.T) {
	s := NewStack()
	s.Set("A", NewDeferred(func(s *Stack) interface{} {
		v, _ := s.Get("B")
		return v
	}))
	s.Set("B", NewDeferred(func(s *Stack) interface{} {
		v, _ := s.Get("A")
		return v
	}))

	_, err := s.Get("A")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "circular configuration dependency")
	assert.Contains(t, err.Error(), "A")
	assert.Contains(t, err.Error(), "B")
}

func TestPathSemanticsNumericSegmentsAddressSequences(t *testing.T) {
	s := NewStack()
	s.Set("x.0.y", 7)

	v, _ := s.Get("x.0.y")
	assert.Equal(t, 7, v)

	whole, _ := s.Get("x")
	seq, ok := whole.([]interface{})
	if assert.True(t, ok) {
		m, ok := seq[0].(Map)
		if assert.True(t, ok) {
			assert.Equal(t, 7, m["y"])
		}
	}
}

func TestDeferredResolutionIsCachedByIdentity(t *testing.T) {
	s := NewStack()
	calls := 0
	s.Set("lazy", NewDeferred(func(s *Stack) interface{} {
		calls++
		return 42
	}))

	v1, _ := s.Get("lazy")
	v2, _ := s.Get("lazy")
	assert.Equal(t, 42, v1)
	assert.Equal(t, 42, v2)
	assert.Equal(t, 1, calls)

	// Invalidated by any structural change.
	s.Push(Map{})
	v3, _ := s.Get("lazy")
	assert.Equal(t, 42, v3)
	assert.Equal(t, 2, calls)
}

func TestDeleteErasesKey(t *testing.T) {
	s := NewStack()
	s.Push(Map{"a": 1, "b": 2})
	s.Delete("a")
	v, _ := s.Get("a")
	assert.Nil(t, v)
	b, _ := s.Get("b")
	assert.Equal(t, 2, b)
}

func TestKeysPreOrder(t *testing.T) {
	s := NewStack()
	s.Push(Map{"a": Map{"b": 1}, "c": 2})
	keys := s.Keys()
	assert.Equal(t, []string{"a", "a.b", "c"}, keys)
}

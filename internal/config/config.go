// Package config implements the layered, lazily-resolved configuration
// stack described in spec §4.1: a stack of deep-merged mappings, addressed
// by dotted paths, with zero-argument deferred values resolved and cached
// on demand.
//
// Defaults, instrument presets, per-extract overrides and user edits
// compose as layers the same way collidertracker layers its settings
// structs, except here the merge itself is generic over an arbitrary
// mapping tree rather than a fixed struct.
package config

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/schollz/zupfnoter/internal/zerr"
)

// Map is a configuration mapping: string keys to scalars, sequences,
// further Maps, or Deferred values.
type Map = map[string]interface{}

var deferredSeq uint64

// DeferredFunc computes a configuration value on demand. It receives the
// Stack it is resolved against so it can read other paths (the mechanism
// that lets one setting be expressed as a function of another).
type DeferredFunc func(s *Stack) interface{}

// Deferred is a zero-argument producer of a configuration value, evaluated
// the first time it is read through Stack.Get and cached by identity
// thereafter (until the cache is invalidated by a structural change).
type Deferred struct {
	id uint64
	Fn DeferredFunc
}

// NewDeferred wraps fn as a Deferred value with a fresh identity.
func NewDeferred(fn DeferredFunc) Deferred {
	return Deferred{id: atomic.AddUint64(&deferredSeq, 1), Fn: fn}
}

// Stack is a stack of configuration layers. Layer 0 starts as the empty
// mapping and is never popped; Set at depth 1 writes into it.
type Stack struct {
	mu     sync.Mutex
	layers []Map

	cache     map[uint64]interface{}
	resolving []string
	cycleErr  error // first cycle found during the current outermost resolution
}

// NewStack returns a Stack with a single empty layer.
func NewStack() *Stack {
	return &Stack{
		layers: []Map{{}},
		cache:  map[uint64]interface{}{},
	}
}

// Depth returns the number of layers currently on the stack.
func (s *Stack) Depth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.layers)
}

// Push deep-merges m onto the current top layer and pushes the result as a
// new layer. The operands of the merge are never mutated: every merged
// value is deep-cloned, so earlier layers stay observably unchanged no
// matter what later Set calls do to the new top. Returns the new depth.
func (s *Stack) Push(m Map) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	top := s.layers[len(s.layers)-1]
	merged := deepMerge(top, m)
	s.layers = append(s.layers, merged)
	s.invalidateLocked()
	return len(s.layers)
}

// Pop removes the top layer and returns the new depth. Popping below depth
// 1 fails silently; layer 0 always remains.
func (s *Stack) Pop() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.layers) > 1 {
		s.layers = s.layers[:len(s.layers)-1]
		s.invalidateLocked()
	}
	return len(s.layers)
}

// ResetTo truncates the stack to the given depth (minimum 1).
func (s *Stack) ResetTo(level int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if level < 1 {
		level = 1
	}
	if level < len(s.layers) {
		s.layers = s.layers[:level]
		s.invalidateLocked()
	}
	return len(s.layers)
}

// invalidateLocked clears the resolution cache. Callers must hold s.mu.
func (s *Stack) invalidateLocked() {
	s.cache = map[uint64]interface{}{}
	s.resolving = nil
}

// Set writes value at the dotted path in the top layer, creating
// intermediate Maps or sequences as needed, and invalidates the resolution
// cache. A nil value deletes the path (Delete's implementation).
func (s *Stack) Set(path string, value interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	top := s.layers[len(s.layers)-1]
	segs := splitPath(path)
	s.layers[len(s.layers)-1] = setPath(top, segs, value).(Map)
	s.invalidateLocked()
}

// Delete removes the value at path; equivalent to Set(path, nil).
func (s *Stack) Delete(path string) {
	s.Set(path, nil)
}

// Get returns the value at the dotted path in the top layer. If path is
// empty the whole top layer is returned. When resolve is true (the
// default, if omitted), deferred values are invoked and cached, and
// mappings/sequences are resolved recursively.
//
// The mutex only guards the layer slice itself (Push/Pop/Set/ResetTo):
// resolution (including re-entrant calls a deferred value's Fn makes back
// into Get) runs unlocked, matching the single-threaded, cooperative
// render model of spec §5 — C3/C4 never call Set or Pop while a render, and
// therefore a resolution, is in flight.
func (s *Stack) Get(path string, resolve ...bool) (interface{}, error) {
	doResolve := true
	if len(resolve) > 0 {
		doResolve = resolve[0]
	}

	s.mu.Lock()
	top := s.layers[len(s.layers)-1]
	s.mu.Unlock()

	var raw interface{}
	var ok bool
	if path == "" {
		raw, ok = top, true
	} else {
		raw, ok = getRaw(top, splitPath(path))
	}
	if !ok {
		return nil, nil
	}
	if !doResolve {
		return raw, nil
	}
	return s.resolve(raw, path)
}

// Keys returns every dotted path to a leaf or non-leaf mapping in the top
// layer, pre-order, with map keys visited in lexical order and sequence
// indices in order.
func (s *Stack) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	collectKeys(s.layers[len(s.layers)-1], "", &out)
	return out
}

func collectKeys(v interface{}, prefix string, out *[]string) {
	switch t := v.(type) {
	case Map:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			p := join(prefix, k)
			*out = append(*out, p)
			collectKeys(t[k], p, out)
		}
	case []interface{}:
		for i, elem := range t {
			p := join(prefix, strconv.Itoa(i))
			*out = append(*out, p)
			collectKeys(elem, p, out)
		}
	}
}

func join(prefix, seg string) string {
	if prefix == "" {
		return seg
	}
	return prefix + "." + seg
}

func splitPath(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}

func isIndex(seg string) (int, bool) {
	n, err := strconv.Atoi(seg)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// getRaw navigates segs inside v without resolving deferred values,
// addressing sequence indices or map keys transparently.
func getRaw(v interface{}, segs []string) (interface{}, bool) {
	if len(segs) == 0 {
		return v, true
	}
	seg, rest := segs[0], segs[1:]
	switch t := v.(type) {
	case Map:
		child, ok := t[seg]
		if !ok {
			return nil, false
		}
		return getRaw(child, rest)
	case []interface{}:
		idx, ok := isIndex(seg)
		if !ok || idx >= len(t) {
			return nil, false
		}
		return getRaw(t[idx], rest)
	default:
		return nil, false
	}
}

// setPath returns a new container with value written at segs, creating
// intermediate containers as needed. The container kind for a freshly
// created intermediate is decided by the *next* segment: numeric segments
// address (and create) sequences, non-numeric segments address (and
// create) mappings.
func setPath(container interface{}, segs []string, value interface{}) interface{} {
	if len(segs) == 0 {
		return value
	}
	seg := segs[0]
	rest := segs[1:]

	if idx, ok := isIndex(seg); ok {
		var seq []interface{}
		if existing, ok := container.([]interface{}); ok {
			seq = append([]interface{}{}, existing...)
		}
		for len(seq) <= idx {
			seq = append(seq, nil)
		}
		if len(rest) == 0 && value == nil {
			seq[idx] = nil
			return trimTrailingNils(seq)
		}
		seq[idx] = setPath(seq[idx], rest, value)
		return seq
	}

	var m Map
	if existing, ok := container.(Map); ok {
		m = cloneMap(existing)
	} else {
		m = Map{}
	}
	if len(rest) == 0 && value == nil {
		delete(m, seg)
		return m
	}
	m[seg] = setPath(m[seg], rest, value)
	return m
}

func trimTrailingNils(seq []interface{}) []interface{} {
	for len(seq) > 0 && seq[len(seq)-1] == nil {
		seq = seq[:len(seq)-1]
	}
	return seq
}

// resolve evaluates deferred values and descends into mappings/sequences,
// detecting circular deferred dependencies along the way. path is the
// dotted path at which v was found, used for cycle detection and in error
// chains.
func (s *Stack) resolve(v interface{}, path string) (interface{}, error) {
	switch t := v.(type) {
	case Deferred:
		if cached, ok := s.cache[t.id]; ok {
			return cached, nil
		}
		for _, p := range s.resolving {
			if p == path {
				chain := append(append([]string{}, s.resolving...), path)
				err := &zerr.ConfigError{Chain: chain}
				if s.cycleErr == nil {
					s.cycleErr = err
				}
				return nil, err
			}
		}
		s.resolving = append(s.resolving, path)
		result := t.Fn(s)
		resolved, err := s.resolve(result, path)
		s.resolving = s.resolving[:len(s.resolving)-1]
		if err == nil && s.cycleErr != nil {
			// Fn cannot return an error, so a cycle closed by a Get inside
			// it is surfaced here instead of caching Fn's result.
			err = s.cycleErr
		}
		if len(s.resolving) == 0 {
			s.cycleErr = nil
		}
		if err != nil {
			return nil, err
		}
		s.cache[t.id] = resolved
		return resolved, nil
	case Map:
		out := Map{}
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			rv, err := s.resolve(t[k], join(path, k))
			if err != nil {
				return nil, err
			}
			out[k] = rv
		}
		return out, nil
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, elem := range t {
			rv, err := s.resolve(elem, join(path, strconv.Itoa(i)))
			if err != nil {
				return nil, err
			}
			out[i] = rv
		}
		return out, nil
	default:
		return v, nil
	}
}

func cloneMap(m Map) Map {
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = deepClone(v)
	}
	return out
}

func cloneSlice(sl []interface{}) []interface{} {
	out := make([]interface{}, len(sl))
	for i, v := range sl {
		out[i] = deepClone(v)
	}
	return out
}

// deepClone returns an independent copy of v: Maps and sequences are
// copied recursively, scalars and Deferred values (immutable, identity
// bearing) are returned as-is.
func deepClone(v interface{}) interface{} {
	switch t := v.(type) {
	case Map:
		return cloneMap(t)
	case []interface{}:
		return cloneSlice(t)
	default:
		return v
	}
}

// deepMerge merges src onto dst per spec §4.1: for keys present in both, if
// both values are Maps, recurse; otherwise src replaces dst wholesale
// (sequences, Deferred values, and scalars all replace rather than merge).
// A nil value in src erases the key. Neither operand is mutated; the
// result is an entirely fresh tree.
func deepMerge(dst, src Map) Map {
	out := cloneMap(dst)
	keys := make([]string, 0, len(src))
	for k := range src {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		sv := src[k]
		if sv == nil {
			delete(out, k)
			continue
		}
		if dv, ok := out[k]; ok {
			dstMap, dstIsMap := dv.(Map)
			srcMap, srcIsMap := sv.(Map)
			if dstIsMap && srcIsMap {
				out[k] = deepMerge(dstMap, srcMap)
				continue
			}
		}
		out[k] = deepClone(sv)
	}
	return out
}

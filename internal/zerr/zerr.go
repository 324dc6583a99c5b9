// Package zerr defines the error taxonomy produced by the rendering
// pipeline: parse errors from the ABC adapter, configuration errors from the
// config stack, transform warnings/errors from the music transformer,
// layout warnings from the transformer and layout engine, and invariant
// violations from the music model.
package zerr

import "fmt"

// ParseError reports a failure surfaced by the injected ABC parser.
type ParseError struct {
	Message string
	Line    int
	Column  int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d:%d: %s", e.Line, e.Column, e.Message)
}

// ConfigError reports a circular dependency among deferred configuration
// values. Chain lists the dotted paths visited, in resolution order, with
// the repeated path appended last.
type ConfigError struct {
	Chain []string
}

func (e *ConfigError) Error() string {
	s := "circular configuration dependency: "
	for i, p := range e.Chain {
		if i > 0 {
			s += " -> "
		}
		s += p
	}
	return s
}

// TransformError reports an unexpected symbol shape encountered while
// building the music model. The offending symbol is skipped; transformation
// continues with the next symbol.
type TransformError struct {
	Message    string
	StartChar  int
	EndChar    int
	VoiceIndex int
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("transform error in voice %d at [%d,%d]: %s", e.VoiceIndex, e.StartChar, e.EndChar, e.Message)
}

// LayoutWarning reports a non-fatal layout decision: an unsupported tuplet
// producing a non-integer beat, rounded down.
type LayoutWarning struct {
	Message   string
	StartChar int
	EndChar   int
}

func (e *LayoutWarning) Error() string {
	return fmt.Sprintf("layout warning at [%d,%d]: %s", e.StartChar, e.EndChar, e.Message)
}

// InvariantViolation reports a fatal defect in the music model itself, such
// as a note constructed with a null pitch.
type InvariantViolation struct {
	Message string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("invariant violation: %s", e.Message)
}

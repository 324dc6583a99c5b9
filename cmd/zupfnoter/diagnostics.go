package main

import (
	"fmt"
	"io"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"

	"github.com/schollz/zupfnoter/internal/zerr"
)

// printDiagnostics renders errs to w, one per line, colorized by severity
// the way the teacher's mixer view colorizes level bars: resolve a hex
// color, hand it to the active termenv profile, style the line with it.
func printDiagnostics(w io.Writer, errs []error) {
	profile := termenv.ColorProfile()
	for _, err := range errs {
		hex := severityColor(err)
		c, convErr := colorful.Hex(hex)
		if convErr != nil {
			fmt.Fprintln(w, err)
			continue
		}
		termColor := profile.Color(c.Hex())
		fmt.Fprintln(w, termenv.String(err.Error()).Foreground(termColor).String())
	}
}

// severityColor picks a hex color by error kind: parse/transform errors and
// invariant violations are hard failures (red), layout warnings are
// advisory (amber), and any other error is grey.
func severityColor(err error) string {
	if isHardError(err) {
		return "#ff4040"
	}
	switch err.(type) {
	case *zerr.LayoutWarning:
		return "#ffa500"
	default:
		return "#cccccc"
	}
}

// isHardError reports whether err should fail the command's exit code
// (parse/transform errors and invariant violations), as opposed to an
// advisory layout warning (spec §7: warnings never abort a render).
func isHardError(err error) bool {
	switch err.(type) {
	case *zerr.ParseError, *zerr.TransformError, *zerr.InvariantViolation:
		return true
	default:
		return false
	}
}

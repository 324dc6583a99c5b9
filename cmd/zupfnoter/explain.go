package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/schollz/zupfnoter/internal/harpnote"
)

func newExplainCmd() *cobra.Command {
	var extract string

	cmd := &cobra.Command{
		Use:   "explain <file.abc>",
		Short: "Render and print a beat/pitch trace for each extracted voice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines := parseExtract(extract)
			res, err := runPipeline(args[0], lines)
			if err != nil {
				return err
			}
			printDiagnostics(cmd.ErrOrStderr(), res.errs)

			out := cmd.OutOrStdout()
			for _, idx := range lines {
				v, ok := res.song.Voices[idx]
				if !ok {
					continue
				}
				fmt.Fprintf(out, "voice %d:\n", idx)
				for _, p := range v.Playables() {
					explainPlayable(out, p)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&extract, "extract", "1", "comma-separated voice indices to explain")
	return cmd
}

func explainPlayable(out io.Writer, p harpnote.Playable) {
	switch n := p.(type) {
	case *harpnote.Note:
		fmt.Fprintf(out, "  beat %6.2f  %-4s  dur %d\n", n.Beat(), pitchName(n.Pitch()), n.Duration())
	case *harpnote.SynchPoint:
		names := ""
		for i, c := range n.Notes {
			if i > 0 {
				names += ","
			}
			names += pitchName(c.Pitch())
		}
		fmt.Fprintf(out, "  beat %6.2f  [%s]  dur %d\n", n.Beat(), names, n.Duration())
	case *harpnote.Pause:
		fmt.Fprintf(out, "  beat %6.2f  rest  dur %d\n", n.Beat(), n.Duration())
	}
}

var noteLetters = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// pitchName renders a MIDI pitch as a letter name and octave, the standard
// convention where middle C (60) is C4.
func pitchName(pitch int) string {
	octave := pitch/12 - 1
	letter := noteLetters[((pitch%12)+12)%12]
	return fmt.Sprintf("%s%d", letter, octave)
}

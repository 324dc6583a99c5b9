package main

import (
	"context"
	"fmt"

	"github.com/hypebeast/go-osc/osc"
	"github.com/spf13/cobra"

	"github.com/schollz/zupfnoter/internal/player"
)

func newPlayCmd() *cobra.Command {
	var extract string
	var voice int
	var bpm float64
	var oscHost string
	var oscPort int
	var midiOutName string
	var channel int

	cmd := &cobra.Command{
		Use:   "play <file.abc>",
		Short: "Play one voice's event list over OSC and/or a MIDI output port",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := runPipeline(args[0], parseExtract(extract))
			if err != nil {
				return err
			}
			printDiagnostics(cmd.ErrOrStderr(), res.errs)

			v, ok := res.song.Voices[voice]
			if !ok {
				return fmt.Errorf("voice %d not found", voice)
			}
			events := player.BuildEventList(v)

			var oscClient *osc.Client
			if oscPort > 0 {
				oscClient = osc.NewClient(oscHost, oscPort)
			}
			p := player.NewPlayer(oscClient, bpm, uint8(channel))

			var midiOut *player.MIDIOut
			if midiOutName != "" {
				midiOut, err = player.OpenMIDIOut(midiOutName, uint8(channel))
				if err != nil {
					return err
				}
				defer midiOut.Close()
			}

			return p.Play(context.Background(), events, player.Callbacks{
				OnNote: func(index int, on bool, notes []uint8) {
					if midiOut != nil {
						_ = midiOut.Send(player.Event{Index: index, On: on, Notes: notes})
					}
				},
				ErrMsg: func(err error) {
					fmt.Fprintln(cmd.ErrOrStderr(), err)
				},
			})
		},
	}
	cmd.Flags().StringVar(&extract, "extract", "1", "comma-separated voice indices to lay out")
	cmd.Flags().IntVar(&voice, "voice", 1, "voice index to play")
	cmd.Flags().Float64Var(&bpm, "bpm", 120, "playback tempo in beats per minute")
	cmd.Flags().StringVar(&oscHost, "osc-host", "localhost", "OSC destination host")
	cmd.Flags().IntVar(&oscPort, "osc-port", 0, "OSC destination port (0 disables OSC)")
	cmd.Flags().StringVar(&midiOutName, "midi-out", "", "MIDI output port name (empty disables MIDI)")
	cmd.Flags().IntVar(&channel, "channel", 0, "MIDI channel")
	return cmd
}

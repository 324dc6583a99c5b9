package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRenderCmd() *cobra.Command {
	var extract string
	var out string

	cmd := &cobra.Command{
		Use:   "render <file.abc>",
		Short: "Render an ABC file to a harpnote Sheet and write it as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := runPipeline(args[0], parseExtract(extract))
			if err != nil {
				return err
			}
			printDiagnostics(cmd.ErrOrStderr(), res.errs)

			data, err := res.sheet.ToJSON()
			if err != nil {
				return fmt.Errorf("encoding sheet: %w", err)
			}
			if out == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			return os.WriteFile(out, data, 0644)
		},
	}
	cmd.Flags().StringVar(&extract, "extract", "1", "comma-separated voice indices to lay out")
	cmd.Flags().StringVar(&out, "out", "", "write the Sheet JSON to this path instead of stdout")
	return cmd
}

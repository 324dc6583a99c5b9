package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	var extract string

	cmd := &cobra.Command{
		Use:   "validate <file.abc>",
		Short: "Run the full pipeline and report parse/transform/layout diagnostics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := runPipeline(args[0], parseExtract(extract))
			if err != nil {
				return err
			}
			printDiagnostics(cmd.OutOrStdout(), res.errs)
			if hasHardError(res.errs) {
				return fmt.Errorf("%d diagnostic(s) found", len(res.errs))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&extract, "extract", "1", "comma-separated voice indices to validate")
	return cmd
}

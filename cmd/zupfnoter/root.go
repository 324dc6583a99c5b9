package main

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "zupfnoter",
		Short: "Render harp tablature sheets from ABC notation",
	}
	root.AddCommand(newRenderCmd(), newValidateCmd(), newExplainCmd(), newPlayCmd())
	return root
}

// parseExtract turns "1,2,3" into []int{1,2,3}, defaulting to voice 1 when
// empty.
func parseExtract(s string) []int {
	if strings.TrimSpace(s) == "" {
		return []int{1}
	}
	var out []int
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err == nil {
			out = append(out, n)
		}
	}
	if len(out) == 0 {
		return []int{1}
	}
	return out
}

func hasHardError(errs []error) bool {
	for _, e := range errs {
		if isHardError(e) {
			return true
		}
	}
	return false
}

// Command zupfnoter renders ABC notation into harp tablature sheets,
// driving the adapter, transformer and layout engine packages end to end
// (spec §9). Its ABC front end (internal/abcstub) is a minimal reference
// tokenizer, not the full ABC grammar the rest of the pipeline is written
// against.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/schollz/zupfnoter/internal/abcadapter"
	"github.com/schollz/zupfnoter/internal/abcstub"
	"github.com/schollz/zupfnoter/internal/config"
	"github.com/schollz/zupfnoter/internal/drawing"
	"github.com/schollz/zupfnoter/internal/harpnote"
	"github.com/schollz/zupfnoter/internal/layout"
	"github.com/schollz/zupfnoter/internal/transform"
)

// pipelineResult is everything a subcommand needs to report on or write out
// after driving C1 through C4 once.
type pipelineResult struct {
	song  *harpnote.Song
	sheet *drawing.Sheet
	errs  []error
}

// runPipeline reads abcPath, tokenizes it through abcstub, transforms it into
// a harpnote.Song and lays it out for the given extract lines, mirroring the
// wiring spec §9 describes between the adapter, transformer and layout
// engine.
func runPipeline(abcPath string, extractLines []int) (*pipelineResult, error) {
	raw, err := os.ReadFile(abcPath)
	if err != nil {
		return nil, err
	}

	abcText, configBlock, _ := config.SplitSource(string(raw))
	layer, err := config.DecodeLayer(configBlock)
	if err != nil {
		return nil, err
	}

	conf := config.NewStack()
	conf.Push(layer)

	adapter := abcadapter.New(abcstub.New)
	result := adapter.Process(abcPath, abcText)

	tr := transform.New(conf)
	song, terrs := tr.Run(result.Voices)

	ex := layout.Extract{LayoutLines: extractLines}
	sheet, lerrs := layout.Layout(song, conf, ex)

	var errs []error
	errs = append(errs, result.Errors...)
	errs = append(errs, terrs...)
	errs = append(errs, lerrs...)

	return &pipelineResult{song: song, sheet: sheet, errs: errs}, nil
}

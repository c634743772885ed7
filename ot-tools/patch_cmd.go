package main

import (
	"bufio"
	"os"

	"github.com/npillmayer/otfpatch/normalize"
	"github.com/npillmayer/otfpatch/otquery"
	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"
)

func runPatchCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	cfg := configure(args, flags)
	pterm.Info.Printf("patching %s to width %d\n", cfg.InputPath, cfg.TargetWidth)

	stdout := bufio.NewWriter(os.Stdout)
	result, err := normalize.Run(cfg, normalize.NewLineReporter(stdout))
	if ferr := stdout.Flush(); err == nil {
		err = ferr
	}
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
	pterm.Success.Printf("%d of %d glyphs changed, written to %s\n",
		result.Changed, result.Worthy, result.Output)

	// double-check the output with an independent parser
	v, err := otquery.Verify(mustReadFile(result.Output))
	if err != nil {
		pterm.Warning.Printf("patched font does not verify: %v\n", err)
		return
	}
	tracer().Infof("verified %s: %d glyphs, OS/2 version %d, monospace=%v",
		result.Output, v.NumGlyphs, v.OS2Version, v.IsMonospace)
}

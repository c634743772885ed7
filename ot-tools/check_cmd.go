package main

import (
	"fmt"
	"strings"

	"github.com/npillmayer/otfpatch/normalize"
	"github.com/npillmayer/otfpatch/otquery"
	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"
)

// runCheckCommand reads a font with go-text/typesetting and compares
// its metrics to what a patch run would produce.
func runCheckCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	cfg := configure(args, flags)
	path := mustLocateFont(cfg.InputPath)
	v, err := otquery.Verify(mustReadFile(path))
	if err != nil {
		fatalf("%v", err)
	}
	f := mustOpenFont(path)
	os2, hasOS2 := otquery.OS2Info(f.OTF)
	mismatches := f.Mismatches(cfg.TargetWidth)

	data := pterm.TableData{
		{"Property", "Value", "Expected"},
		{"Font", f.Name(), ""},
		{"Glyphs", fmt.Sprintf("%d", v.NumGlyphs), ""},
		{"Units per em", fmt.Sprintf("%d", v.Upem), ""},
		{"Tables", strings.Join(v.Tables, " "), ""},
		{"Width mismatches", fmt.Sprintf("%d", len(mismatches)), "0"},
		{"Monospace (advances)", fmt.Sprintf("%v", v.IsMonospace), ""},
		{"Fixed pitch (post)", fmt.Sprintf("%v", v.IsFixedPitch), fmt.Sprintf("%v", cfg.SetMonospaced)},
	}
	if hasOS2 {
		data = append(data,
			[]string{"OS/2 version", fmt.Sprintf("%d", os2.Version), fmt.Sprintf("%d", cfg.OS2Version)},
			[]string{"PANOSE", os2.PanoseString(), normalize.PanoseString(cfg.Panose)},
			[]string{"xAvgCharWidth", fmt.Sprintf("%d", v.XAvgCharWidth), ""},
		)
	} else {
		data = append(data, []string{"OS/2", "missing", "present"})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		fatalf("%v", err)
	}
	ok := len(mismatches) == 0 && hasOS2 && os2.Version == cfg.OS2Version && os2.Panose == cfg.Panose
	if ok {
		pterm.Success.Printf("%s is normalized to width %d\n", path, cfg.TargetWidth)
	} else {
		pterm.Warning.Printf("%s is not normalized to width %d\n", path, cfg.TargetWidth)
	}
}

package main

import (
	"fmt"
	"strings"

	"github.com/npillmayer/otfpatch/otquery"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"
)

func runWidthsCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing(testconfig.Conf{"tracing.adapter": "go"}, flags)
	fontPath := strings.TrimSpace(args["font"].Value)
	if fontPath == "" {
		fatalf("font path is required")
	}
	fontPath = mustLocateFont(fontPath)
	f := mustOpenFont(fontPath)

	if mustFlagBool(flags["histogram"], "histogram") {
		data := pterm.TableData{{"Width", "Glyphs"}}
		for _, wc := range otquery.WidthHistogram(f.OTF) {
			data = append(data, []string{fmt.Sprintf("%d", wc.Width), fmt.Sprintf("%d", wc.Glyphs)})
		}
		if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
			fatalf("%v", err)
		}
		return
	}
	target := mustFlagInt(flags["width"], "width")
	if target < 0 || target > 0xffff {
		fatalf("--width out of range: %d", target)
	}
	data := pterm.TableData{{"Glyph", "Name", "Advance", "Output"}}
	for _, g := range f.Glyphs() {
		if target > 0 && (!g.Worthy || int(g.Advance) == target) {
			continue
		}
		data = append(data, []string{
			fmt.Sprintf("%d", g.Index),
			g.Name,
			fmt.Sprintf("%d", g.Advance),
			fmt.Sprintf("%v", g.Worthy),
		})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		fatalf("%v", err)
	}
}

package main

import (
	"fmt"
	"strings"

	"github.com/npillmayer/otfpatch"
	"github.com/npillmayer/otfpatch/ot"
	"github.com/npillmayer/otfpatch/otquery"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/thatisuday/commando"
)

func runFontCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing(testconfig.Conf{"tracing.adapter": "go"}, flags)
	fontPath := strings.TrimSpace(args["font"].Value)
	if fontPath == "" {
		fatalf("font path is required")
	}
	fontPath = mustLocateFont(fontPath)
	otf := mustLoadFont(fontPath)

	fmt.Printf("Path: %s\n", fontPath)
	if otf.Header.IsCFF() {
		fmt.Println("Type: OpenType (CFF outlines)")
	} else {
		fmt.Println("Type: TrueType")
	}
	family, sub := otfpatch.FamilyName(otf)
	if family != "" {
		fmt.Printf("Family: %s\n", family)
	}
	if sub != "" {
		fmt.Printf("Subfamily: %s\n", sub)
	}
	if head, ok := otquery.HeadInfo(otf); ok {
		fmt.Printf("Revision: %s\n", head.FontRevisionString())
		fmt.Printf("Modified: %s\n", head.ModifiedTime().Format("2006-01-02 15:04:05"))
		fmt.Printf("Units per em: %d\n", head.UnitsPerEm)
	}
	fmt.Printf("Glyphs: %d\n", otf.NumGlyphs())

	tags := otf.TableTags()
	fmt.Printf("Tables (%d):", len(tags))
	for _, tag := range tags {
		fmt.Printf(" %s", tag.String())
	}
	fmt.Println()

	if m := otquery.FontMetrics(otf); m.UnitsPerEm > 0 {
		fmt.Printf("Metrics: ascent=%d descent=%d linegap=%d max-advance=%d\n",
			m.Ascent, m.Descent, m.LineGap, m.MaxAdvance)
	}
	if os2, ok := otquery.OS2Info(otf); ok {
		fmt.Printf("OS/2: version=%d size=%d avg-width=%d panose=%s vendor=%q\n",
			os2.Version, os2.Size, os2.XAvgCharWidth, os2.PanoseString(), os2.VendorID)
	}
	if post, ok := otquery.PostInfo(otf); ok {
		fmt.Printf("post: version=%#x italic-angle=%.2f fixed-pitch=%v\n",
			post.Version, post.ItalicAngle, post.IsFixedPitch)
	}

	errs := otf.Errors()
	warns := otf.Warnings()
	crit := otf.CriticalErrors()
	fmt.Printf("Issues: errors=%d warnings=%d critical=%d\n", len(errs), len(warns), len(crit))

	if len(args["tables"].Value) > 0 {
		printSelectedTables(otf, args["tables"].Value)
	}
	if mustFlagBool(flags["names"], "names") {
		for _, rec := range otquery.NameRecords(otf) {
			if rec.Decoded() {
				fmt.Printf("name %d (platform %d, encoding %d, language %#04x): %q\n",
					rec.Name, rec.Platform, rec.Encoding, rec.Language, rec.Value)
			}
		}
	}
	if mustFlagBool(flags["errors"], "errors") {
		for _, e := range errs {
			fmt.Printf("error: %s\n", e.Error())
		}
		for _, w := range warns {
			fmt.Printf("warning: %s\n", w.String())
		}
	}
}

func printSelectedTables(otf *ot.Font, raw string) {
	requested := splitCSVSpace(raw)
	for _, t := range requested {
		tagName := strings.TrimSpace(t)
		if tagName == "" {
			continue
		}
		tag := ot.T(tagName)
		table := otf.Table(tag)
		if table == nil {
			fmt.Printf("table %s: missing\n", tagName)
			continue
		}
		off, size := table.Extent()
		fmt.Printf("table %s: offset=%d size=%d checksum=%#08x\n",
			tagName, off, size, ot.Checksum(table.Binary()))
	}
}

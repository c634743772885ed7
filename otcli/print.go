package main

import (
	"fmt"

	"github.com/npillmayer/otfpatch/ot"
	"github.com/npillmayer/otfpatch/otquery"
	"github.com/pterm/pterm"
)

func printGlyph(intp *Intp, gid ot.GlyphIndex) {
	m := otquery.GlyphMetrics(intp.font.OTF, intp.font.SFNT, gid)
	name := otquery.GlyphName(intp.font.SFNT, gid)
	pterm.Printf("glyph %d %q\n", gid, name)
	data := [][]string{
		{"Advance", "LSB", "RSB", "BBox", "Outline"},
		{
			fmt.Sprintf("%d", m.Advance),
			fmt.Sprintf("%d", m.LSB),
			fmt.Sprintf("%d", m.RSB),
			fmt.Sprintf("(%d,%d)-(%d,%d)", m.BBox.MinX, m.BBox.MinY, m.BBox.MaxX, m.BBox.MaxY),
			fmt.Sprintf("%v", m.HasOutline),
		},
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printWidthHistogram(otf *ot.Font) {
	hist := otquery.WidthHistogram(otf)
	pterm.Printf("%d distinct advance widths\n", len(hist))
	data := [][]string{
		{"Width", "Glyphs"},
	}
	for _, wc := range hist {
		data = append(data, []string{fmt.Sprintf("%d", wc.Width), fmt.Sprintf("%d", wc.Glyphs)})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printOS2(info otquery.OS2TableInfo) {
	data := [][]string{
		{"Field", "Value"},
		{"version", fmt.Sprintf("%d", info.Version)},
		{"size", fmt.Sprintf("%d", info.Size)},
		{"xAvgCharWidth", fmt.Sprintf("%d", info.XAvgCharWidth)},
		{"usWeightClass", fmt.Sprintf("%d", info.WeightClass)},
		{"usWidthClass", fmt.Sprintf("%d", info.WidthClass)},
		{"panose", info.PanoseString()},
		{"achVendID", info.VendorID},
		{"fsSelection", fmt.Sprintf("%#04x", info.FsSelection)},
	}
	if info.Version >= 2 {
		data = append(data,
			[]string{"sxHeight", fmt.Sprintf("%d", info.XHeight)},
			[]string{"sCapHeight", fmt.Sprintf("%d", info.CapHeight)},
		)
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	if info.PanoseMonospaced() {
		pterm.Info.Println("PANOSE classifies the font as monospaced")
	}
}

func printHHea(hhea *ot.HHeaTable) {
	data := [][]string{
		{"Field", "Value"},
		{"ascender", fmt.Sprintf("%d", hhea.Ascender)},
		{"descender", fmt.Sprintf("%d", hhea.Descender)},
		{"lineGap", fmt.Sprintf("%d", hhea.LineGap)},
		{"advanceWidthMax", fmt.Sprintf("%d", hhea.AdvanceWidthMax)},
		{"minLeftSideBearing", fmt.Sprintf("%d", hhea.MinLeftSideBearing)},
		{"minRightSideBearing", fmt.Sprintf("%d", hhea.MinRightSideBearing)},
		{"xMaxExtent", fmt.Sprintf("%d", hhea.XMaxExtent)},
		{"numberOfHMetrics", fmt.Sprintf("%d", hhea.NumberOfHMetrics)},
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

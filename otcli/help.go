package main

import (
	"strings"

	"github.com/pterm/pterm"
)

func helpOp(intp *Intp, op *Op) (error, bool) {
	help(op.arg)
	return nil, false
}

func help(topic string) {
	tracer().Infof("help %v", topic)
	t := strings.ToLower(topic)
	switch t {
	case "os2", "os/2", "panose":
		pterm.Info.Println("OS/2")
		pterm.Println(`
	Table OS/2 holds metrics and classification data used by Windows.
	Patching sets its version (4 by default) and the 10-byte PANOSE
	classification. PANOSE entry 4 (proportion) = 9 marks a monospaced font.
	Upgrading from version 1 or lower adds sxHeight and sCapHeight,
	which are taken from the outlines of 'x' and 'H'.
	`)
	case "hmtx", "widths", "mismatch":
		pterm.Info.Println("Horizontal metrics")
		pterm.Println(`
	Table hmtx holds an advance width and a left side bearing per glyph.
	Trailing glyphs sharing the width of the last long record store their
	left side bearing only; hhea.numberOfHMetrics counts the long records.
	  widths            histogram of advance widths
	  mismatch:<width>  glyphs worth outputting with a different width
	`)
	default:
		pterm.Info.Println("Commands")
		pterm.Println(`
	  tables            list all tables of the font
	  table:<tag>       select a table; 'table' dumps its first bytes
	  glyph:<n|'c'>     metrics of a glyph, by index or character
	  widths            histogram of advance widths
	  mismatch:<width>  glyphs worth outputting with a different width
	  os2 | hhea | post print interpreted table fields
	  help:<topic>      topics: os2, hmtx
	  quit              leave (or <ctrl>D)
	Commands may be chained, separated by blanks.
	`)
	}
}

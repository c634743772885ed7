/*
Package ot provides access to the tables of an OpenType font and allows
re-writing a small set of them.

Intended audience for this package are applications which need to patch
metric information of an existing font file without touching its outlines:

▪︎ fixing advance widths of glyphs (table 'hmtx', with 'hhea' kept consistent)

▪︎ upgrading or re-classifying table 'OS/2' (version, PANOSE, x-height)

▪︎ flipping the fixed-pitch flag in table 'post'

Package `ot` will not interpret outline data. Tables 'glyf', 'loca', 'CFF ' and
every other table not listed above are carried over byte by byte when a font is
encoded again. Clients needing outline information should use
golang.org/x/image/font/sfnt on the same binary data.

Fonts are read with `Parse` and written with `Font.Encode`. Encoding recomputes
the table directory, table checksums and the 'head' checksum adjustment, so the
resulting binary is a valid SFNT stream even if tables changed their size.

# Status

No font collections nor variable fonts are supported.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package ot

/*
There are (at least) two Go packages around for parsing SFNT fonts:

▪ https://pkg.go.dev/golang.org/x/image/font/sfnt

▪ https://pkg.go.dev/github.com/go-text/typesetting/font/opentype

Both are read-only (go-text has a writer, but it neither pads tables nor
fixes the checksum adjustment). For patching we keep the approach of the Go
core team of holding the initial font binary in memory, and copy out only the
tables we are going to change.

// Valuable resource:
// https://docs.microsoft.com/en-us/typography/opentype/spec/otff
*/

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.opentype'
func tracer() tracing.Trace {
	return tracing.Select("font.opentype")
}

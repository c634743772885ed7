/*
Package normalize forces the glyphs of an OpenType font to a common advance
width.

A run opens a font, reports and overwrites every glyph width which differs
from the target width, sets OS/2 version and PANOSE classification, and writes
the result to an output directory:

	cfg := normalize.DefaultConfig()
	result, err := normalize.Run(cfg, normalize.NewLineReporter(os.Stdout))

The steps of Run are available separately. Querying for mismatches
(Font.Mismatches) does not change the font, and reporting is left to a
Reporter. Mutation (Font.SetWidths, Font.SetOS2) never writes anything except
the font's tables.

Glyphs which would not be output by a font editor (empty glyphs without any
advance) are never touched; see Font.Glyphs for the exact rule.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package normalize

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'otfpatch.normalize'
func tracer() tracing.Trace {
	return tracing.Select("otfpatch.normalize")
}

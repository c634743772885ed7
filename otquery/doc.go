/*
Package otquery answers read-only questions about OpenType fonts.

Queries work on an `ot.Font`, some of them additionally on a
golang.org/x/image/font/sfnt font over the same binary data, as outlines are
not interpreted by package ot. Function `Verify` cross-checks a font binary
with the independent parser of github.com/go-text/typesetting.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otquery

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'font.opentype'
func tracer() tracing.Trace {
	return tracing.Select("font.opentype")
}

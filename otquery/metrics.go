package otquery

import (
	"github.com/npillmayer/otfpatch/ot"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// --- Font Information -------------------------------------------------

// FontMetrics retrieves selected metrics of a font.
func FontMetrics(otf *ot.Font) FontMetricsInfo {
	metrics := FontMetricsInfo{}
	if otf == nil {
		return metrics
	}
	if hhea := otf.HHea; hhea != nil {
		metrics.Ascent = sfnt.Units(hhea.Ascender)
		metrics.Descent = sfnt.Units(hhea.Descender)
		metrics.LineGap = sfnt.Units(hhea.LineGap)
		metrics.MaxAdvance = sfnt.Units(hhea.AdvanceWidthMax)
	}
	if metrics.Ascent == 0 && metrics.Descent == 0 {
		if os2 := otf.OS2; os2 != nil {
			tracer().Debugf("OS/2")
			a := sfnt.Units(os2.TypoAscender)
			if a > metrics.Ascent {
				tracer().Debugf("override of ascent: %d -> %d", metrics.Ascent, a)
				metrics.Ascent = a
			}
			d := sfnt.Units(os2.TypoDescender)
			if d < metrics.Descent {
				tracer().Debugf("override of descent: %d -> %d", metrics.Descent, d)
				metrics.Descent = d
			}
		}
	}
	if otf.Head != nil { // Head is a required table
		metrics.UnitsPerEm = sfnt.Units(otf.Head.UnitsPerEm)
	}
	return metrics
}

// --- Glyph Routines --------------------------------------------------------

// GlyphIndex returns the glyph index for a give code-point.
// If the code-point cannot be found, 0 is returned.
//
// From the OpenType specification: character codes that do not correspond to any glyph in
// the font should be mapped to glyph index 0. The glyph at this location must be a special
// glyph representing a missing character, commonly known as '.notdef'.
func GlyphIndex(sf *sfnt.Font, codepoint rune) ot.GlyphIndex {
	if sf == nil {
		return 0
	}
	var buf sfnt.Buffer
	gid, err := sf.GlyphIndex(&buf, codepoint)
	if err != nil {
		return 0
	}
	return ot.GlyphIndex(gid)
}

// GlyphName returns the PostScript name of a glyph, if the font has one.
func GlyphName(sf *sfnt.Font, gid ot.GlyphIndex) string {
	if sf == nil {
		return ""
	}
	var buf sfnt.Buffer
	name, err := sf.GlyphName(&buf, sfnt.GlyphIndex(gid))
	if err != nil {
		return ""
	}
	return name
}

// GlyphMetrics retrieves metrics for a given glyph.
//
// Advance and left side bearing are taken from table 'hmtx' of otf. The bounding
// box is calculated from the glyph's outline in sf, which has to be a parse of the
// same font binary. sf may be nil, leaving the bounding box empty.
func GlyphMetrics(otf *ot.Font, sf *sfnt.Font, gid ot.GlyphIndex) GlyphMetricsInfo {
	metrics := GlyphMetricsInfo{}
	//
	// table HMtx: advance width and left side bearing
	if otf != nil && otf.HMtx != nil { // required table in OpenType
		if aw, lsb, ok := otf.HMtx.HMetrics(gid); ok {
			metrics.Advance = sfnt.Units(aw)
			metrics.LSB = sfnt.Units(lsb)
		}
	}
	//
	// outlines: bounding box
	if sf != nil && otf != nil && otf.Head != nil {
		var buf sfnt.Buffer
		ppem := fixed.Int26_6(otf.Head.UnitsPerEm) // yields values in font units
		segs, err := sf.LoadGlyph(&buf, sfnt.GlyphIndex(gid), ppem, nil)
		if err != nil {
			tracer().Debugf("cannot load glyph %d: %v", gid, err)
		} else if len(segs) > 0 {
			metrics.HasOutline = true
			bounds := segs.Bounds()
			// sfnt has the y-axis pointing down
			metrics.BBox = BoundingBox{
				MinX: sfnt.Units(bounds.Min.X),
				MinY: sfnt.Units(-bounds.Max.Y),
				MaxX: sfnt.Units(bounds.Max.X),
				MaxY: sfnt.Units(-bounds.Min.Y),
			}
		}
	}
	// RSB calculation: rsb = aw - (lsb + xMax - xMin)
	// From the spec:
	// If a glyph has no contours, xMax/xMin are not defined. The left side bearing indicated
	// in the 'hmtx' table for such glyphs should be zero.
	if metrics.HasOutline { // leave RSB for empty glyphs
		metrics.RSB = metrics.Advance - (metrics.LSB + metrics.BBox.Dx())
	}
	return metrics
}

// MinRightSideBearing returns the minimum right side bearing of all glyphs with
// contours, as required for field minRightSideBearing of table 'hhea'.
// If no glyph has contours, ok is false.
func MinRightSideBearing(otf *ot.Font, sf *sfnt.Font) (rsb int16, ok bool) {
	for g := 0; g < otf.NumGlyphs(); g++ {
		m := GlyphMetrics(otf, sf, ot.GlyphIndex(g))
		if !m.HasOutline {
			continue
		}
		if r := int16(m.RSB); !ok || r < rsb {
			rsb, ok = r, true
		}
	}
	return rsb, ok
}

// GlyphTop returns the top of the unscaled and unhinted bounding box of the
// glyph for code-point r, or 0 if the font has no such glyph.
// This is the way OS/2 fields sxHeight ('x') and sCapHeight ('H') are defined.
func GlyphTop(otf *ot.Font, sf *sfnt.Font, r rune) int16 {
	gid := GlyphIndex(sf, r)
	if gid == 0 {
		return 0
	}
	m := GlyphMetrics(otf, sf, gid)
	return int16(m.BBox.MaxY)
}

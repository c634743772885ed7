package normalize

import (
	"fmt"

	"github.com/npillmayer/otfpatch/otquery"
)

// SetOS2 sets version and PANOSE classification of table OS/2. Fonts without
// an OS/2 table get a new one.
//
// When the table is upgraded from a version below 2, fields sxHeight and
// sCapHeight are filled from the outlines of 'x' and 'H'. Derived metrics
// depending on glyph widths (OS/2 xAvgCharWidth, hhea minRightSideBearing) are
// recalculated, so SetOS2 should be called after SetWidths.
func (f *Font) SetOS2(version uint16, panose [10]byte) error {
	var old uint16
	os2 := f.OTF.OS2
	if os2 == nil {
		var err error
		if os2, err = f.OTF.AddOS2(version); err != nil {
			return fmt.Errorf("cannot create OS/2 table: %w", err)
		}
		tracer().Infof("font has no OS/2 table, created one with version %d", version)
		os2.SetXAvgCharWidth(f.OTF.HMtx.AverageAdvance())
	} else {
		old = os2.Version
		if err := os2.SetVersion(version); err != nil {
			return fmt.Errorf("cannot set OS/2 version: %w", err)
		}
	}
	if old < 2 && version >= 2 {
		xh := otquery.GlyphTop(f.OTF, f.SFNT, 'x')
		ch := otquery.GlyphTop(f.OTF, f.SFNT, 'H')
		tracer().Debugf("OS/2 upgrade: x-height = %d, cap-height = %d", xh, ch)
		os2.SetHeights(xh, ch)
	}
	os2.SetPanose(panose)
	f.updateDerivedMetrics()
	return nil
}

// updateDerivedMetrics recalculates metrics which depend on advance widths.
// hhea.advanceWidthMax and hhea.numberOfHMetrics are kept in sync by the
// encoder.
func (f *Font) updateDerivedMetrics() {
	if os2 := f.OTF.OS2; os2 != nil && os2.Version >= 3 {
		os2.SetXAvgCharWidth(f.OTF.HMtx.AverageAdvance())
	}
	if rsb, ok := otquery.MinRightSideBearing(f.OTF, f.SFNT); ok {
		f.OTF.HHea.SetMinRightSideBearing(rsb)
	}
}

// SetFixedPitch sets or clears the monospaced flag (post.isFixedPitch).
// Fonts without a post table are left alone.
func (f *Font) SetFixedPitch(fixed bool) {
	if post := f.OTF.Post; post != nil {
		post.SetFixedPitch(fixed)
		return
	}
	tracer().Infof("font has no post table, cannot set monospaced flag")
}

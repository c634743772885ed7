package ot

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// Code comment often will cite passage from the
// OpenType specification version 1.8.4;
// see https://docs.microsoft.com/en-us/typography/opentype/spec/.

// ---------------------------------------------------------------------------

// MaxGlyphCount is the maximum number of glyphs (glyph indices are uint16).
const MaxGlyphCount = 65536

// Checked arithmetic operations to prevent integer overflow

// checkedMulInt checks for overflow in multiplication of two non-negative integers
func checkedMulInt(a, b int) (int, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	if a < 0 || b < 0 || a > math.MaxInt/b {
		return 0, fmt.Errorf("integer overflow: %d * %d", a, b)
	}
	return a * b, nil
}

// checkedAddUint32 checks for overflow in addition of two uint32 values
func checkedAddUint32(a, b uint32) (uint32, error) {
	if a > math.MaxUint32-b {
		return 0, fmt.Errorf("integer overflow: %d + %d", a, b)
	}
	return a + b, nil
}

// ---------------------------------------------------------------------------

// Parse parses an OpenType font from a byte slice.
// An ot.Font needs ongoing access to the fonts byte-data after the Parse function returns.
// Its elements are assumed immutable while the ot.Font remains in use.
func Parse(font []byte) (*Font, error) {
	// https://www.microsoft.com/typography/otspec/otff.htm: Offset Table is 12 bytes.
	r := bytes.NewReader(font)
	h := FontHeader{}
	if err := binary.Read(r, binary.BigEndian, &h); err != nil {
		return nil, errFontFormat(fmt.Sprintf("cannot read font header: %v", err))
	}
	tracer().Debugf("header = %v, tag = %x|%s", h, h.FontType, Tag(h.FontType).String())

	// Create error collector for accumulating errors during parsing
	ec := &errorCollector{}

	if !(h.FontType == 0x4f54544f || // OTTO
		h.FontType == 0x00010000 || // TrueType
		h.FontType == 0x74727565) { // true
		return nil, ec.fail(T(""), "Header", fmt.Sprintf("font type not supported: %x", h.FontType), 0)
	}
	otf := &Font{Header: &h, tables: make(map[Tag]Table), sorted: true}
	src := binarySegm(font)
	// "The Offset Table is followed immediately by the Table Record entries …
	// sorted in ascending order by tag", 16 bytes each.
	tableRecordsSize, err := checkedMulInt(16, int(h.TableCount))
	if err != nil {
		return nil, ec.fail(T(""), "TableRecords", fmt.Sprintf("table count too large: %v", err), 12)
	}
	buf, err := src.view(12, tableRecordsSize)
	if err != nil {
		return nil, ec.fail(T(""), "TableRecords", "table record entries", 12)
	}
	for b, prevTag := buf, Tag(0); len(b) > 0; b = b[16:] {
		tag := MakeTag(b)
		if _, dup := otf.tables[tag]; dup {
			return nil, ec.fail(tag, "TableRecords", "duplicate table record", 12)
		}
		if tag < prevTag && otf.sorted {
			// Encode writes records in tag order
			ec.addWarning(tag, "table records not sorted by tag", 12)
			otf.sorted = false
		}
		prevTag = tag
		off, size := u32(b[8:12]), u32(b[12:16])
		if off&3 != 0 { // ignore checksums, but "all tables must begin on four byte boundries".
			return nil, ec.fail(tag, "Offset", "invalid table offset", off)
		}
		tableEnd, err := checkedAddUint32(off, size)
		if err != nil {
			return nil, ec.fail(tag, "Size", fmt.Sprintf("size calculation overflow: %v", err), off)
		}
		if off > uint32(len(src)) || tableEnd > uint32(len(src)) {
			return nil, ec.fail(tag, "Bounds",
				fmt.Sprintf("bounds [%d:%d] exceed font size %d", off, tableEnd, len(src)), off)
		}
		if otf.tables[tag], err = parseTable(tag, src[off:tableEnd], off, size, ec); err != nil {
			return nil, err
		}
	}
	if err := extractMetricsInfo(otf, ec); err != nil {
		return nil, err
	}
	if ec.hasErrors() {
		tracer().Infof("font has %d parsing issues", len(ec.errors))
	}
	// Transfer accumulated errors and warnings to the Font
	otf.parseErrors = ec.errors
	otf.parseWarnings = ec.warnings
	return otf, nil
}

// RequiredTables are the tables we need to patch a font's metrics.
// The OpenType spec additionally requires 'cmap', 'name', 'OS/2' and 'post',
// which we tolerate to be missing.
var RequiredTables = []string{
	"head", "hhea", "hmtx", "maxp",
}

// Consistency check and shortcuts to essential tables.
func extractMetricsInfo(otf *Font, ec *errorCollector) error {
	for _, tag := range RequiredTables {
		if otf.tables[T(tag)] == nil {
			return ec.fail(T(tag), "Missing", "missing required table", 0)
		}
	}
	for _, tag := range []string{"cmap", "name", "OS/2", "post"} {
		if otf.tables[T(tag)] == nil {
			ec.addWarning(T(tag), "missing table", 0)
		}
	}
	otf.Head = otf.tables[T("head")].Self().AsHead()
	otf.MaxP = otf.tables[T("maxp")].Self().AsMaxP()
	otf.HHea = otf.tables[T("hhea")].Self().AsHHea()
	otf.HMtx = otf.tables[T("hmtx")].Self().AsHMtx()
	if t := otf.tables[T("OS/2")]; t != nil {
		otf.OS2 = t.Self().AsOS2()
	}
	if t := otf.tables[T("post")]; t != nil {
		otf.Post = t.Self().AsPost()
	}
	if err := validateCrossTableConsistency(otf, ec); err != nil {
		return err
	}
	if err := otf.HMtx.parseAll(otf.MaxP.NumGlyphs, otf.HHea.NumberOfHMetrics); err != nil {
		return ec.fail(T("hmtx"), "Metrics", err.Error(), otf.HMtx.offset)
	}
	return nil
}

// validateCrossTableConsistency performs cross-table validation to ensure
// internal consistency between related tables.
func validateCrossTableConsistency(otf *Font, ec *errorCollector) error {
	numGlyphs := otf.MaxP.NumGlyphs
	if numGlyphs == 0 {
		return ec.fail(T("maxp"), "NumGlyphs", "font has no glyphs", otf.MaxP.offset)
	}
	// NumberOfHMetrics must not exceed numGlyphs, and there has to be at least one
	nhm := otf.HHea.NumberOfHMetrics
	if nhm == 0 || nhm > numGlyphs {
		return ec.fail(T("hhea"), "NumberOfHMetrics",
			fmt.Sprintf("value %d not in range 1…%d (maxp.NumGlyphs)", nhm, numGlyphs), otf.HHea.offset)
	}
	// hmtx contains NumberOfHMetrics longHorMetrics (4 bytes each) +
	// (numGlyphs - NumberOfHMetrics) leftSideBearings (2 bytes each)
	requiredSize := nhm*4 + (numGlyphs-nhm)*2
	if int(otf.HMtx.length) < requiredSize {
		if int(otf.HMtx.length) < nhm*4 {
			return ec.fail(T("hmtx"), "Size",
				fmt.Sprintf("table size %d insufficient for %d metrics", otf.HMtx.length, nhm), otf.HMtx.offset)
		}
		ec.addError(T("hmtx"), "Size",
			fmt.Sprintf("table size %d insufficient for %d glyphs (need %d)", otf.HMtx.length, numGlyphs, requiredSize),
			SeverityMinor, otf.HMtx.offset)
	}
	// Validate head.IndexToLocFormat consistency with loca table
	if loca := otf.Table(T("loca")); loca != nil {
		_, length := loca.Extent()
		var expected int
		switch otf.Head.IndexToLocFormat {
		case 0: // Short format: (numGlyphs + 1) * 2 bytes
			expected = (numGlyphs + 1) * 2
		case 1: // Long format: (numGlyphs + 1) * 4 bytes
			expected = (numGlyphs + 1) * 4
		default:
			return ec.fail(T("head"), "IndexToLocFormat",
				fmt.Sprintf("invalid value: %d (must be 0 or 1)", otf.Head.IndexToLocFormat), otf.Head.offset)
		}
		if int(length) < expected {
			return ec.fail(T("loca"), "Size",
				fmt.Sprintf("table size (%d) insufficient for %d glyphs (need %d)", length, numGlyphs, expected), 0)
		}
	} else if !otf.Header.IsCFF() && otf.Table(T("glyf")) != nil {
		return ec.fail(T("loca"), "Missing", "glyf table without loca table", 0)
	}
	tracer().Debugf("cross-table validation: maxp.NumGlyphs = %d", numGlyphs)
	return nil
}

func parseTable(t Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	switch t {
	case T("head"):
		return parseHead(t, b, offset, size, ec)
	case T("hhea"):
		return parseHHea(t, b, offset, size, ec)
	case T("hmtx"):
		return parseHMtx(t, b, offset, size, ec)
	case T("maxp"):
		return parseMaxP(t, b, offset, size, ec)
	case T("OS/2"):
		return parseOS2(t, b, offset, size, ec)
	case T("post"):
		return parsePost(t, b, offset, size, ec)
	}
	tracer().Debugf("font contains table (%s), will not be interpreted", t)
	return newTable(t, b, offset, size), nil
}

// --- Head table ------------------------------------------------------------

func parseHead(tag Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	if size < 54 {
		return nil, ec.fail(tag, "Size", fmt.Sprintf("head table too small: %d bytes (need 54)", size), offset)
	}
	t := newHeadTable(tag, b, offset, size)
	t.CheckSumAdjustment, _ = b.u32(headCheckSumAdjustmentOffset)
	t.Flags, _ = b.u16(16)      // flags
	t.UnitsPerEm, _ = b.u16(18) // units per em
	// IndexToLocFormat is needed to interpret the loca table:
	// 0 for short offsets, 1 for long
	t.IndexToLocFormat, _ = b.u16(50)
	if t.UnitsPerEm == 0 {
		return nil, ec.fail(tag, "UnitsPerEm", "units per em is 0", offset)
	}
	return t, nil
}

// --- MaxP table ------------------------------------------------------------

// This table establishes the memory requirements for this font. Fonts with CFF data
// must use Version 0.5 of this table, specifying only the numGlyphs field. Fonts
// with TrueType outlines must use Version 1.0 of this table, where all data is required.
func parseMaxP(tag Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	if size < 6 {
		return nil, ec.fail(tag, "Size", fmt.Sprintf("maxp table too small: %d bytes", size), offset)
	}
	t := newMaxPTable(tag, b, offset, size)
	n, _ := b.u16(4)
	t.NumGlyphs = int(n)
	return t, nil
}

// --- HHea table ------------------------------------------------------------

// This table contains information for horizontal layout. The last field,
// numberOfHMetrics, is needed to interpret table 'hmtx'.
func parseHHea(tag Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	tracer().Debugf("HHea table has size %d", size)
	if size < hheaTableSize {
		return nil, ec.fail(tag, "Size", fmt.Sprintf("hhea table too small: %d bytes (need 36)", size), offset)
	}
	t := newHHeaTable(tag, b, offset, size)
	t.decode()
	return t, nil
}

// --- HMtx table ------------------------------------------------------------

// Dependencies (taken from Apple Developer page about TrueType):
// The value of the numOfLongHorMetrics field is found in the 'hhea' (Horizontal Header)
// table. Fonts that lack an 'hhea' table must not have an 'hmtx' table.
// Other tables may have information duplicating data contained in the 'hmtx' table.
// For example, glyph metrics can also be found in the 'hdmx' (Horizontal Device Metrics)
// table. There is naturally no requirement that the ideal metrics of the 'hmtx' table
// be perfectly consistent with the device metrics found in other tables.
//
// Decoding of the metrics is deferred until 'hhea' and 'maxp' are known.
func parseHMtx(tag Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	if size == 0 {
		return nil, ec.fail(tag, "Size", "hmtx table is empty", offset)
	}
	return newHMtxTable(tag, b, offset, size), nil
}

// --- OS/2 table ------------------------------------------------------------

func parseOS2(tag Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	t := newOS2Table(tag, b, offset, size)
	if err := t.decode(); err != nil {
		return nil, ec.fail(tag, "Header", err.Error(), offset)
	}
	tracer().Debugf("OS/2 table version %d, %d bytes", t.Version, size)
	return t, nil
}

// --- Post table ------------------------------------------------------------

func parsePost(tag Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	if size < postHeaderSize {
		return nil, ec.fail(tag, "Size", fmt.Sprintf("post table too small: %d bytes (need 32)", size), offset)
	}
	t := newPostTable(tag, b, offset, size)
	t.decode()
	switch t.Version {
	case 0x00010000, 0x00020000, 0x00025000, 0x00030000:
	default:
		ec.addError(tag, "Version", fmt.Sprintf("unknown post table version %#x", t.Version), SeverityMinor, offset)
	}
	return t, nil
}

package ot

import (
	"fmt"
)

// --- Concrete table implementations ----------------------------------------

// HeadTable gives global information about the font.
// Only a small subset of fields are made public by HeadTable, as they are
// needed for consistency-checks and for encoding the font.
type HeadTable struct {
	tableBase
	Flags              uint16 // see https://docs.microsoft.com/en-us/typography/opentype/spec/head
	UnitsPerEm         uint16 // values 16 … 16384 are valid
	IndexToLocFormat   uint16 // needed to interpret loca table
	CheckSumAdjustment uint32 // as found in the font binary
}

// Offset of field checkSumAdjustment within table 'head'.
const headCheckSumAdjustmentOffset = 8

func newHeadTable(tag Tag, b binarySegm, offset, size uint32) *HeadTable {
	t := &HeadTable{}
	t.tableBase = makeTableBase(tag, b, offset, size)
	t.self = t
	return t
}

// MaxPTable establishes the memory requirements for this font.
// The 'maxp' table contains a count for the number of glyphs in the font.
// Whenever this value changes, other tables which depend on it should also be updated.
type MaxPTable struct {
	tableBase
	NumGlyphs int
}

func newMaxPTable(tag Tag, b binarySegm, offset, size uint32) *MaxPTable {
	t := &MaxPTable{}
	t.tableBase = makeTableBase(tag, b, offset, size)
	t.self = t
	return t
}

// --- hhea ------------------------------------------------------------------

// HHeaTable contains information for horizontal layout.
type HHeaTable struct {
	tableBase
	Ascender            int16
	Descender           int16
	LineGap             int16
	AdvanceWidthMax     uint16
	MinLeftSideBearing  int16
	MinRightSideBearing int16
	XMaxExtent          int16
	CaretSlopeRise      int16
	CaretSlopeRun       int16
	CaretOffset         int16
	NumberOfHMetrics    int
}

const hheaTableSize = 36

func newHHeaTable(tag Tag, b binarySegm, offset, size uint32) *HHeaTable {
	t := &HHeaTable{}
	t.tableBase = makeTableBase(tag, b, offset, size)
	t.self = t
	return t
}

func (t *HHeaTable) decode() {
	b := t.data
	t.Ascender = int16(b.U16(4))
	t.Descender = int16(b.U16(6))
	t.LineGap = int16(b.U16(8))
	t.AdvanceWidthMax = b.U16(10)
	t.MinLeftSideBearing = int16(b.U16(12))
	t.MinRightSideBearing = int16(b.U16(14))
	t.XMaxExtent = int16(b.U16(16))
	t.CaretSlopeRise = int16(b.U16(18))
	t.CaretSlopeRun = int16(b.U16(20))
	t.CaretOffset = int16(b.U16(22))
	t.NumberOfHMetrics = int(b.U16(34))
}

// SetMinRightSideBearing overrides the minimum right side bearing, which depends
// on glyph outlines and therefore has to be computed by the client.
func (t *HHeaTable) SetMinRightSideBearing(rsb int16) {
	if t.MinRightSideBearing != rsb {
		t.MinRightSideBearing = rsb
		t.dirty = true
	}
}

func (t *HHeaTable) encode() binarySegm {
	b := t.data.clone()
	putU16(b[4:], uint16(t.Ascender))
	putU16(b[6:], uint16(t.Descender))
	putU16(b[8:], uint16(t.LineGap))
	putU16(b[10:], t.AdvanceWidthMax)
	putU16(b[12:], uint16(t.MinLeftSideBearing))
	putU16(b[14:], uint16(t.MinRightSideBearing))
	putU16(b[16:], uint16(t.XMaxExtent))
	putU16(b[18:], uint16(t.CaretSlopeRise))
	putU16(b[20:], uint16(t.CaretSlopeRun))
	putU16(b[22:], uint16(t.CaretOffset))
	putU16(b[34:], uint16(t.NumberOfHMetrics))
	return b
}

// --- hmtx ------------------------------------------------------------------

// HMtxTable contains metric information for the horizontal layout each of the glyphs in
// the font. Each element in the contained hMetrics-array has two parts: the advance width
// and left side bearing. The value NumberOfHMetrics is taken from the `hhea` table. In
// a monospaced font, only one entry is required but that entry may not be omitted.
// Optionally, an array of left side bearings follows.
// The corresponding glyphs are assumed to have the same
// advance width as that found in the last entry in the hMetrics array. Since there
// must be a left side bearing and an advance width associated with each glyph in the font,
// the number of entries in this array is derived from the total number of glyphs in the
// font minus the value `HHea.NumberOfHMetrics`, which is copied into the
// HMtxTable for easier access.
type HMtxTable struct {
	tableBase
	NumberOfHMetrics int
	numGlyphs        int
	longMetrics      []HMetricRecord
	leftSideBearings []int16
}

// HMetricRecord is one long horizontal metric record from table hmtx.
type HMetricRecord struct {
	AdvanceWidth    uint16
	LeftSideBearing int16
}

func newHMtxTable(tag Tag, b binarySegm, offset, size uint32) *HMtxTable {
	t := &HMtxTable{}
	t.tableBase = makeTableBase(tag, b, offset, size)
	t.self = t
	return t
}

func (t *HMtxTable) parseAll(numGlyphs, numberOfHMetrics int) error {
	if t == nil {
		return nil
	}
	if numGlyphs < 0 {
		return fmt.Errorf("invalid glyph count %d", numGlyphs)
	}
	if numberOfHMetrics < 1 || numberOfHMetrics > numGlyphs {
		return fmt.Errorf("invalid numberOfHMetrics %d (numGlyphs=%d)", numberOfHMetrics, numGlyphs)
	}
	if numberOfHMetrics*4 > len(t.data) {
		return fmt.Errorf("hmtx table too small: need %d bytes, have %d", numberOfHMetrics*4, len(t.data))
	}
	longMetrics := make([]HMetricRecord, numberOfHMetrics)
	for i := 0; i < numberOfHMetrics; i++ {
		longMetrics[i] = HMetricRecord{
			AdvanceWidth:    u16(t.data[i*4:]),
			LeftSideBearing: int16(u16(t.data[i*4+2:])),
		}
	}
	// Some fonts in the wild omit the trailing left side bearings;
	// missing entries are read as 0.
	lsbCount := numGlyphs - numberOfHMetrics
	leftSideBearings := make([]int16, lsbCount)
	base := numberOfHMetrics * 4
	for i := 0; i < lsbCount; i++ {
		if lsb, err := t.data.u16(base + i*2); err == nil {
			leftSideBearings[i] = int16(lsb)
		}
	}
	t.NumberOfHMetrics = numberOfHMetrics
	t.numGlyphs = numGlyphs
	t.longMetrics = longMetrics
	t.leftSideBearings = leftSideBearings
	return nil
}

// LongMetrics returns a copy of all long horizontal metrics records.
func (t *HMtxTable) LongMetrics() []HMetricRecord {
	if t == nil || len(t.longMetrics) == 0 {
		return nil
	}
	metrics := make([]HMetricRecord, len(t.longMetrics))
	copy(metrics, t.longMetrics)
	return metrics
}

// GlyphCount returns the glyph count used when decoding this hmtx table.
func (t *HMtxTable) GlyphCount() int {
	if t == nil {
		return 0
	}
	return t.numGlyphs
}

// HMetrics returns the advance width and left side bearing for a glyph.
func (t *HMtxTable) HMetrics(g GlyphIndex) (uint16, int16, bool) {
	if t == nil || t.numGlyphs == 0 || int(g) >= t.numGlyphs {
		return 0, 0, false
	}
	if int(g) < len(t.longMetrics) {
		m := t.longMetrics[int(g)]
		return m.AdvanceWidth, m.LeftSideBearing, true
	}
	if len(t.longMetrics) == 0 {
		return 0, 0, false
	}
	i := int(g) - len(t.longMetrics)
	if i < 0 || i >= len(t.leftSideBearings) {
		return 0, 0, false
	}
	return t.longMetrics[len(t.longMetrics)-1].AdvanceWidth, t.leftSideBearings[i], true
}

// Advance returns the advance width of a glyph, or 0 if g is out of range.
func (t *HMtxTable) Advance(g GlyphIndex) uint16 {
	aw, _, _ := t.HMetrics(g)
	return aw
}

// SetAdvance sets the advance width of glyph g. The left side bearing is
// not changed. Returns false if g is out of range.
func (t *HMtxTable) SetAdvance(g GlyphIndex, width uint16) bool {
	if t == nil || int(g) >= t.numGlyphs {
		return false
	}
	if t.Advance(g) == width {
		return true
	}
	t.expand()
	t.longMetrics[int(g)].AdvanceWidth = width
	t.dirty = true
	return true
}

// expand converts every trailing left side bearing into a long metric record,
// so that every glyph may carry its own advance width.
func (t *HMtxTable) expand() {
	if len(t.leftSideBearings) == 0 {
		return
	}
	last := t.longMetrics[len(t.longMetrics)-1].AdvanceWidth
	for _, lsb := range t.leftSideBearings {
		t.longMetrics = append(t.longMetrics, HMetricRecord{
			AdvanceWidth:    last,
			LeftSideBearing: lsb,
		})
	}
	t.leftSideBearings = t.leftSideBearings[:0]
	t.NumberOfHMetrics = len(t.longMetrics)
}

// compact folds a run of trailing glyphs with an advance width equal to the last
// long metric record into the array of left side bearings. At least one long
// record is kept.
func (t *HMtxTable) compact() {
	t.expand()
	n := len(t.longMetrics)
	if n == 0 {
		return
	}
	last := t.longMetrics[n-1].AdvanceWidth
	k := n - 1
	for k > 0 && t.longMetrics[k-1].AdvanceWidth == last {
		k--
	}
	// glyphs k … n-1 share the same advance; glyph k keeps the long record
	lsbs := make([]int16, 0, n-k-1)
	for _, m := range t.longMetrics[k+1:] {
		lsbs = append(lsbs, m.LeftSideBearing)
	}
	t.longMetrics = t.longMetrics[:k+1]
	t.leftSideBearings = lsbs
	t.NumberOfHMetrics = len(t.longMetrics)
}

// MaxAdvance returns the maximum advance width over all glyphs.
func (t *HMtxTable) MaxAdvance() uint16 {
	var max uint16
	for _, m := range t.longMetrics {
		if m.AdvanceWidth > max {
			max = m.AdvanceWidth
		}
	}
	return max
}

// AverageAdvance returns the average advance width of all glyphs with non-zero
// width, as required for OS/2 field xAvgCharWidth from version 3 on.
func (t *HMtxTable) AverageAdvance() int16 {
	var sum, cnt int
	for g := 0; g < t.numGlyphs; g++ {
		if aw := t.Advance(GlyphIndex(g)); aw > 0 {
			sum += int(aw)
			cnt++
		}
	}
	if cnt == 0 {
		return 0
	}
	return int16((sum + cnt/2) / cnt)
}

func (t *HMtxTable) encode() binarySegm {
	t.compact()
	b := make(binarySegm, len(t.longMetrics)*4+len(t.leftSideBearings)*2)
	for i, m := range t.longMetrics {
		putU16(b[i*4:], m.AdvanceWidth)
		putU16(b[i*4+2:], uint16(m.LeftSideBearing))
	}
	base := len(t.longMetrics) * 4
	for i, lsb := range t.leftSideBearings {
		putU16(b[base+i*2:], uint16(lsb))
	}
	return b
}

// --- post ------------------------------------------------------------------

// PostTable contains additional information needed to use TrueType or OpenType
// fonts on PostScript printers. We only interpret the header.
type PostTable struct {
	tableBase
	Version            uint32
	ItalicAngle        float64 // counter-clockwise degrees from the vertical
	UnderlinePosition  int16
	UnderlineThickness int16
	IsFixedPitch       bool // set to true if the font is monospaced
}

const postHeaderSize = 32

func newPostTable(tag Tag, b binarySegm, offset, size uint32) *PostTable {
	t := &PostTable{}
	t.tableBase = makeTableBase(tag, b, offset, size)
	t.self = t
	return t
}

func (t *PostTable) decode() {
	b := t.data
	t.Version = b.U32(0)
	t.ItalicAngle = float64(int32(b.U32(4))) / 0x10000
	t.UnderlinePosition = int16(b.U16(8))
	t.UnderlineThickness = int16(b.U16(10))
	t.IsFixedPitch = b.U32(12) != 0
}

// SetFixedPitch sets or clears the monospaced flag of the font.
func (t *PostTable) SetFixedPitch(fixed bool) {
	if t.IsFixedPitch != fixed {
		t.IsFixedPitch = fixed
		t.dirty = true
	}
}

func (t *PostTable) encode() binarySegm {
	b := t.data.clone()
	var fp uint32
	if t.IsFixedPitch {
		fp = 1
	}
	putU32(b[12:], fp)
	return b
}

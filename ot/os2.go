package ot

import "fmt"

// OS2Table holds table 'OS/2' (OS/2 and Windows specific metrics).
//
// The table has grown over the years; its size depends on the version:
//
//	version 0   78 bytes (68 bytes for some old Apple fonts)
//	version 1   86 bytes (adds code page ranges)
//	version 2–4 96 bytes (adds x-height, cap-height, default/break char, max context)
//	version 5  100 bytes (adds optical point sizes)
//
// Fields not mentioned in OS2Table are kept as they are in the font.
type OS2Table struct {
	tableBase
	Version       uint16
	XAvgCharWidth int16
	WeightClass   uint16
	WidthClass    uint16
	FsType        uint16
	Panose        [10]byte
	VendorID      Tag
	FsSelection   uint16
	TypoAscender  int16
	TypoDescender int16
	TypoLineGap   int16
	WinAscent     uint16
	WinDescent    uint16
	XHeight       int16 // version ≥ 2
	CapHeight     int16 // version ≥ 2
	DefaultChar   uint16
	BreakChar     uint16
	MaxContext    uint16
	raw           [os2MaxSize]byte
	size          int
}

const (
	os2MinSize    = 68
	os2MaxSize    = 100
	os2PanoseAt   = 32
	os2XHeightAt  = 86
	os2VersionCap = 5
)

// OS2TableSize returns the size in bytes of an OS/2 table of a given version.
func OS2TableSize(version uint16) int {
	switch {
	case version == 0:
		return 78
	case version == 1:
		return 86
	case version <= 4:
		return 96
	}
	return 100
}

func newOS2Table(tag Tag, b binarySegm, offset, size uint32) *OS2Table {
	t := &OS2Table{}
	t.tableBase = makeTableBase(tag, b, offset, size)
	t.self = t
	return t
}

// AddOS2 creates table OS/2 with a given version for a font which lacks one.
// Weight and width class are set to regular and medium, vertical metrics are
// taken from table hhea. If the font already has an OS/2 table, it is returned
// unchanged.
func (otf *Font) AddOS2(version uint16) (*OS2Table, error) {
	if otf.OS2 != nil {
		return otf.OS2, nil
	}
	if version > os2VersionCap {
		return nil, fmt.Errorf("OS/2 table version %d not supported", version)
	}
	t := newOS2Table(T("OS/2"), nil, 0, 0)
	t.Version = version
	t.size = OS2TableSize(version)
	t.WeightClass = 400
	t.WidthClass = 5
	t.VendorID = T("    ")
	t.FsSelection = 0x0040 // REGULAR
	if hhea := otf.HHea; hhea != nil {
		t.TypoAscender = hhea.Ascender
		t.TypoDescender = hhea.Descender
		t.TypoLineGap = hhea.LineGap
		t.WinAscent = uint16(max(hhea.Ascender, 0))
		t.WinDescent = uint16(max(-hhea.Descender, 0))
	}
	if version >= 2 {
		t.BreakChar = 0x20
	}
	t.dirty = true
	otf.tables[t.name] = t
	otf.OS2 = t
	tracer().Debugf("created OS/2 table version %d, %d bytes", version, t.size)
	return t, nil
}

func (t *OS2Table) decode() error {
	b := t.data
	if len(b) < os2MinSize {
		return fmt.Errorf("OS/2 table too small: %d bytes", len(b))
	}
	t.size = copy(t.raw[:], b)
	t.Version = b.U16(0)
	if t.Version > os2VersionCap {
		return fmt.Errorf("OS/2 table version %d not supported", t.Version)
	}
	if t.Version >= 2 && t.size < OS2TableSize(2) {
		return fmt.Errorf("OS/2 table version %d with %d bytes", t.Version, t.size)
	}
	t.XAvgCharWidth = int16(b.U16(2))
	t.WeightClass = b.U16(4)
	t.WidthClass = b.U16(6)
	t.FsType = b.U16(8)
	copy(t.Panose[:], b[os2PanoseAt:os2PanoseAt+10])
	t.VendorID = Tag(b.U32(58))
	t.FsSelection = b.U16(62)
	t.TypoAscender = int16(b.U16(68))
	t.TypoDescender = int16(b.U16(70))
	t.TypoLineGap = int16(b.U16(72))
	t.WinAscent = b.U16(74)
	t.WinDescent = b.U16(76)
	if t.Version >= 2 {
		t.XHeight = int16(b.U16(86))
		t.CapHeight = int16(b.U16(88))
		t.DefaultChar = b.U16(90)
		t.BreakChar = b.U16(92)
		t.MaxContext = b.U16(94)
	}
	return nil
}

// SetVersion changes the table version. If the new version needs fields the
// font does not yet carry, they are initialized with zero, except for the break
// character, which defaults to space. Clients should set XHeight and
// CapHeight afterwards. Downgrading drops trailing fields.
func (t *OS2Table) SetVersion(version uint16) error {
	if version > os2VersionCap {
		return fmt.Errorf("OS/2 table version %d not supported", version)
	}
	if version == t.Version {
		return nil
	}
	if t.Version < 2 && version >= 2 {
		t.XHeight, t.CapHeight = 0, 0
		t.DefaultChar, t.BreakChar, t.MaxContext = 0, 0x20, 0
	}
	size := OS2TableSize(version)
	for i := t.size; i < size; i++ {
		t.raw[i] = 0
	}
	t.size = size
	tracer().Debugf("OS/2 version %d -> %d, %d bytes", t.Version, version, size)
	t.Version = version
	t.dirty = true
	return nil
}

// SetPanose sets the 10-byte PANOSE classification.
func (t *OS2Table) SetPanose(panose [10]byte) {
	if t.Panose != panose {
		t.Panose = panose
		t.dirty = true
	}
}

// SetXAvgCharWidth sets the average advance width.
func (t *OS2Table) SetXAvgCharWidth(w int16) {
	if t.XAvgCharWidth != w {
		t.XAvgCharWidth = w
		t.dirty = true
	}
}

// SetHeights sets fields sxHeight and sCapHeight. It is a no-op for tables
// with version < 2.
func (t *OS2Table) SetHeights(xHeight, capHeight int16) {
	if t.Version < 2 {
		return
	}
	if t.XHeight != xHeight || t.CapHeight != capHeight {
		t.XHeight, t.CapHeight = xHeight, capHeight
		t.dirty = true
	}
}

// Size returns the current byte size of the table.
func (t *OS2Table) Size() int {
	return t.size
}

func (t *OS2Table) encode() binarySegm {
	b := make(binarySegm, t.size)
	copy(b, t.raw[:t.size])
	putU16(b[0:], t.Version)
	putU16(b[2:], uint16(t.XAvgCharWidth))
	putU16(b[4:], t.WeightClass)
	putU16(b[6:], t.WidthClass)
	putU16(b[8:], t.FsType)
	copy(b[os2PanoseAt:], t.Panose[:])
	putU32(b[58:], uint32(t.VendorID))
	putU16(b[62:], t.FsSelection)
	if t.size < OS2TableSize(0) { // short Apple variant
		return b
	}
	putU16(b[68:], uint16(t.TypoAscender))
	putU16(b[70:], uint16(t.TypoDescender))
	putU16(b[72:], uint16(t.TypoLineGap))
	putU16(b[74:], t.WinAscent)
	putU16(b[76:], t.WinDescent)
	if t.Version >= 2 {
		putU16(b[os2XHeightAt:], uint16(t.XHeight))
		putU16(b[88:], uint16(t.CapHeight))
		putU16(b[90:], t.DefaultChar)
		putU16(b[92:], t.BreakChar)
		putU16(b[94:], t.MaxContext)
	}
	return b
}

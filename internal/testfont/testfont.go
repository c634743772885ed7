/*
Package testfont creates small synthetic TrueType fonts for tests.

Fonts are assembled from scratch, independent of package ot, so that
tests of the font encoder may compare against an independent source.
Every font carries the tables 'OS/2' (optional), 'cmap', 'glyf', 'head',
'hhea', 'hmtx', 'loca', 'maxp', 'name' and 'post', which is the minimum set
accepted by golang.org/x/image/font/sfnt and github.com/go-text/typesetting.
Glyph outlines are triangles.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package testfont

import (
	"encoding/binary"
	"math/bits"
	"sort"

	"golang.org/x/text/encoding/unicode"
)

// Glyph describes a glyph of a synthetic font.
type Glyph struct {
	Rune    rune   // code point to map to this glyph; 0 for unmapped glyphs
	Advance uint16 // advance width in font units
	Outline bool   // if false, the glyph is empty
	LSB     int16  // left edge of the outline
	Width   int16  // ink width of the outline; 0 means 500
	Height  int16  // top of the outline; 0 means 700
}

// Options control the assembly of a synthetic font.
type Options struct {
	UnitsPerEm  uint16 // 0 means 2048
	Glyphs      []Glyph
	OS2Version  uint16
	OmitOS2     bool
	Panose      [10]byte
	FixedPitch  bool   // post.isFixedPitch
	CompactHMtx bool   // fold trailing glyphs of equal width into the LSB array
	FamilyName  string // "" means "Test Sans"
	Unsorted    bool   // write table records in descending tag order
}

// Panose is the PANOSE classification used if Options.Panose is not set.
var Panose = [10]byte{2, 11, 6, 4, 2, 2, 2, 2, 2, 4}

// ScenarioGlyphs has three glyphs with outlines and advance widths
// 600, 1229 and 800, and an empty glyph with advance 0.
var ScenarioGlyphs = []Glyph{
	{Advance: 600, Outline: true, LSB: 50}, // .notdef
	{Rune: 'H', Advance: 1229, Outline: true, LSB: 100},
	{Rune: 'x', Advance: 800, Outline: true, LSB: 60, Height: 520},
	{Advance: 0},
}

// Scenario returns a font with glyphs ScenarioGlyphs and an OS/2 table
// of version 1.
func Scenario() []byte {
	return Build(Options{Glyphs: ScenarioGlyphs, OS2Version: 1})
}

// Build assembles a TrueType font.
func Build(opts Options) []byte {
	if opts.UnitsPerEm == 0 {
		opts.UnitsPerEm = 2048
	}
	if opts.FamilyName == "" {
		opts.FamilyName = "Test Sans"
	}
	if opts.Panose == [10]byte{} {
		opts.Panose = Panose
	}
	if len(opts.Glyphs) == 0 {
		opts.Glyphs = ScenarioGlyphs
	}
	opts.Glyphs = append([]Glyph(nil), opts.Glyphs...)
	for i := range opts.Glyphs {
		if opts.Glyphs[i].Width == 0 {
			opts.Glyphs[i].Width = 500
		}
		if opts.Glyphs[i].Height == 0 {
			opts.Glyphs[i].Height = 700
		}
	}
	glyf, loca, bbox := buildGlyf(opts.Glyphs)
	hmtx, nhm := buildHMtx(opts.Glyphs, opts.CompactHMtx)
	tables := map[string][]byte{
		"cmap": buildCmap(opts.Glyphs),
		"glyf": glyf,
		"head": buildHead(opts.UnitsPerEm, bbox),
		"hhea": buildHHea(opts.Glyphs, nhm, bbox),
		"hmtx": hmtx,
		"loca": loca,
		"maxp": buildMaxP(len(opts.Glyphs)),
		"name": buildName(opts.FamilyName),
		"post": buildPost(opts.FixedPitch),
	}
	if !opts.OmitOS2 {
		tables["OS/2"] = buildOS2(opts)
	}
	return assemble(tables, opts.Unsorted)
}

// --- Assembly --------------------------------------------------------------

func assemble(tables map[string][]byte, unsorted bool) []byte {
	tags := make([]string, 0, len(tables))
	for tag := range tables {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	if unsorted {
		sort.Sort(sort.Reverse(sort.StringSlice(tags)))
	}
	numTables := len(tags)
	sel := bits.Len(uint(numTables)) - 1
	out := make([]byte, 12+16*numTables)
	binary.BigEndian.PutUint32(out[0:], 0x00010000)
	binary.BigEndian.PutUint16(out[4:], uint16(numTables))
	binary.BigEndian.PutUint16(out[6:], uint16(1<<(sel+4)))
	binary.BigEndian.PutUint16(out[8:], uint16(sel))
	binary.BigEndian.PutUint16(out[10:], uint16(16*(numTables-1<<sel)))
	headAt := 0
	for i, tag := range tags {
		body := tables[tag]
		rec := out[12+16*i:]
		copy(rec[0:4], tag)
		binary.BigEndian.PutUint32(rec[4:], checksum(body))
		binary.BigEndian.PutUint32(rec[8:], uint32(len(out)))
		binary.BigEndian.PutUint32(rec[12:], uint32(len(body)))
		if tag == "head" {
			headAt = len(out)
		}
		out = append(out, body...)
		for len(out)%4 != 0 {
			out = append(out, 0)
		}
	}
	binary.BigEndian.PutUint32(out[headAt+8:], 0xB1B0AFBA-checksum(out))
	return out
}

func checksum(b []byte) uint32 {
	var sum uint32
	for i := 0; i < len(b); i += 4 {
		var w [4]byte
		copy(w[:], b[i:])
		sum += binary.BigEndian.Uint32(w[:])
	}
	return sum
}

// --- Tables ----------------------------------------------------------------

type bounds struct {
	xMin, yMin, xMax, yMax int16
	minRSB                 int16
}

// glyph data is 29 bytes per outline, padded to 32 to fit short loca offsets.
func buildGlyf(glyphs []Glyph) (glyf, loca []byte, bbox bounds) {
	be := binary.BigEndian
	loca = make([]byte, 2*(len(glyphs)+1))
	first := true
	for i, g := range glyphs {
		be.PutUint16(loca[2*i:], uint16(len(glyf)/2))
		if !g.Outline {
			continue
		}
		x0, x1, top := g.LSB, g.LSB+g.Width, g.Height
		b := make([]byte, 32)
		be.PutUint16(b[0:], 1) // numberOfContours
		be.PutUint16(b[2:], uint16(x0))
		be.PutUint16(b[4:], 0)
		be.PutUint16(b[6:], uint16(x1))
		be.PutUint16(b[8:], uint16(top))
		be.PutUint16(b[10:], 2) // endPtsOfContours[0]
		be.PutUint16(b[12:], 0) // instructionLength
		b[14], b[15], b[16] = 0x01, 0x01, 0x01
		half := g.Width / 2
		be.PutUint16(b[17:], uint16(x0))
		be.PutUint16(b[19:], uint16(half))
		be.PutUint16(b[21:], uint16(g.Width-half))
		be.PutUint16(b[23:], 0)
		be.PutUint16(b[25:], uint16(top))
		be.PutUint16(b[27:], uint16(-top))
		glyf = append(glyf, b...)
		rsb := int16(g.Advance) - x1
		if first {
			bbox = bounds{x0, 0, x1, top, rsb}
			first = false
			continue
		}
		bbox.xMin = min(bbox.xMin, x0)
		bbox.xMax = max(bbox.xMax, x1)
		bbox.yMax = max(bbox.yMax, top)
		bbox.minRSB = min(bbox.minRSB, rsb)
	}
	be.PutUint16(loca[2*len(glyphs):], uint16(len(glyf)/2))
	return glyf, loca, bbox
}

func buildHMtx(glyphs []Glyph, compact bool) ([]byte, int) {
	n := len(glyphs)
	nhm := n
	if compact {
		last := glyphs[n-1].Advance
		for nhm > 1 && glyphs[nhm-2].Advance == last {
			nhm--
		}
	}
	b := make([]byte, 4*nhm+2*(n-nhm))
	for i, g := range glyphs {
		lsb := int16(0)
		if g.Outline {
			lsb = g.LSB
		}
		if i < nhm {
			binary.BigEndian.PutUint16(b[4*i:], g.Advance)
			binary.BigEndian.PutUint16(b[4*i+2:], uint16(lsb))
		} else {
			binary.BigEndian.PutUint16(b[4*nhm+2*(i-nhm):], uint16(lsb))
		}
	}
	return b, nhm
}

func buildHead(upem uint16, bbox bounds) []byte {
	be := binary.BigEndian
	b := make([]byte, 54)
	be.PutUint32(b[0:], 0x00010000)  // version
	be.PutUint32(b[4:], 0x00010000)  // fontRevision
	be.PutUint32(b[12:], 0x5F0F3CF5) // magicNumber
	be.PutUint16(b[16:], 0x000B)     // flags
	be.PutUint16(b[18:], upem)
	be.PutUint16(b[36:], uint16(bbox.xMin))
	be.PutUint16(b[38:], uint16(bbox.yMin))
	be.PutUint16(b[40:], uint16(bbox.xMax))
	be.PutUint16(b[42:], uint16(bbox.yMax))
	be.PutUint16(b[46:], 8) // lowestRecPPEM
	be.PutUint16(b[48:], 2) // fontDirectionHint
	return b
}

func buildHHea(glyphs []Glyph, nhm int, bbox bounds) []byte {
	be := binary.BigEndian
	var maxAdv uint16
	for _, g := range glyphs {
		maxAdv = max(maxAdv, g.Advance)
	}
	b := make([]byte, 36)
	be.PutUint32(b[0:], 0x00010000)
	be.PutUint16(b[4:], 1600)
	be.PutUint16(b[6:], uint16(0xffff-448+1)) // -448
	be.PutUint16(b[10:], maxAdv)
	be.PutUint16(b[12:], uint16(bbox.xMin))
	be.PutUint16(b[14:], uint16(bbox.minRSB))
	be.PutUint16(b[16:], uint16(bbox.xMax))
	be.PutUint16(b[18:], 1) // caretSlopeRise
	be.PutUint16(b[34:], uint16(nhm))
	return b
}

func buildMaxP(numGlyphs int) []byte {
	be := binary.BigEndian
	b := make([]byte, 32)
	be.PutUint32(b[0:], 0x00010000)
	be.PutUint16(b[4:], uint16(numGlyphs))
	be.PutUint16(b[6:], 3)  // maxPoints
	be.PutUint16(b[8:], 1)  // maxContours
	be.PutUint16(b[14:], 2) // maxZones
	return b
}

func buildPost(fixedPitch bool) []byte {
	be := binary.BigEndian
	b := make([]byte, 32)
	be.PutUint32(b[0:], 0x00030000)
	be.PutUint16(b[8:], uint16(0xffff-100+1)) // underlinePosition -100
	be.PutUint16(b[10:], 50)
	if fixedPitch {
		be.PutUint32(b[12:], 1)
	}
	return b
}

func buildOS2(opts Options) []byte {
	be := binary.BigEndian
	size := 78
	switch {
	case opts.OS2Version == 1:
		size = 86
	case opts.OS2Version >= 2 && opts.OS2Version <= 4:
		size = 96
	case opts.OS2Version > 4:
		size = 100
	}
	b := make([]byte, size)
	be.PutUint16(b[0:], opts.OS2Version)
	be.PutUint16(b[2:], 600) // xAvgCharWidth
	be.PutUint16(b[4:], 700) // usWeightClass
	be.PutUint16(b[6:], 5)   // usWidthClass
	copy(b[32:42], opts.Panose[:])
	copy(b[58:62], "TEST")
	be.PutUint16(b[62:], 0x0020) // fsSelection: bold
	be.PutUint16(b[64:], 0x0020)
	be.PutUint16(b[66:], 0x007A)
	be.PutUint16(b[68:], 1600)
	be.PutUint16(b[70:], uint16(0xffff-448+1))
	be.PutUint16(b[74:], 1900)
	be.PutUint16(b[76:], 500)
	if size >= 86 {
		be.PutUint32(b[78:], 1) // ulCodePageRange1: Latin 1
	}
	if size >= 96 {
		be.PutUint16(b[86:], 520) // sxHeight
		be.PutUint16(b[88:], 700) // sCapHeight
		be.PutUint16(b[92:], 0x20)
	}
	return b
}

func buildCmap(glyphs []Glyph) []byte {
	type segment struct{ code, delta uint16 }
	var segs []segment
	for gid, g := range glyphs {
		if g.Rune > 0 && g.Rune < 0xffff {
			segs = append(segs, segment{uint16(g.Rune), uint16(gid) - uint16(g.Rune)})
		}
	}
	sort.Slice(segs, func(i, j int) bool { return segs[i].code < segs[j].code })
	segs = append(segs, segment{0xffff, 1})
	n := len(segs)
	sel := bits.Len(uint(n)) - 1
	searchRange := 2 * (1 << sel)
	be := binary.BigEndian
	sub := make([]byte, 16+8*n)
	be.PutUint16(sub[0:], 4)
	be.PutUint16(sub[2:], uint16(len(sub)))
	be.PutUint16(sub[6:], uint16(2*n))
	be.PutUint16(sub[8:], uint16(searchRange))
	be.PutUint16(sub[10:], uint16(sel))
	be.PutUint16(sub[12:], uint16(2*n-searchRange))
	for i, s := range segs {
		be.PutUint16(sub[14+2*i:], s.code)      // endCode
		be.PutUint16(sub[16+2*n+2*i:], s.code)  // startCode
		be.PutUint16(sub[16+4*n+2*i:], s.delta) // idDelta
	}
	b := make([]byte, 12, 12+len(sub))
	be.PutUint16(b[2:], 1)  // numTables
	be.PutUint16(b[4:], 3)  // platform Windows
	be.PutUint16(b[6:], 1)  // encoding Unicode BMP
	be.PutUint32(b[8:], 12) // offset
	return append(b, sub...)
}

func buildName(family string) []byte {
	enc := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewEncoder()
	fam, _ := enc.String(family)
	full, _ := enc.String(family + " Bold")
	strs := []string{fam, full}
	ids := []uint16{1, 4}
	be := binary.BigEndian
	count := len(strs)
	b := make([]byte, 6+12*count)
	be.PutUint16(b[2:], uint16(count))
	be.PutUint16(b[4:], uint16(6+12*count))
	var off int
	var storage []byte
	for i, s := range strs {
		rec := b[6+12*i:]
		be.PutUint16(rec[0:], 3)      // platformID
		be.PutUint16(rec[2:], 1)      // encodingID
		be.PutUint16(rec[4:], 0x0409) // languageID
		be.PutUint16(rec[6:], ids[i])
		be.PutUint16(rec[8:], uint16(len(s)))
		be.PutUint16(rec[10:], uint16(off))
		storage = append(storage, s...)
		off += len(s)
	}
	return append(b, storage...)
}

package otquery

import (
	"fmt"
	"sort"
	"strings"

	"github.com/npillmayer/otfpatch/ot"
)

// OS2TableInfo is a query view over the fields of table 'OS/2' which
// are relevant for spacing and classification of a font.
type OS2TableInfo struct {
	Version       uint16
	Size          int
	XAvgCharWidth int16
	WeightClass   uint16
	WidthClass    uint16
	Panose        [10]byte
	VendorID      string
	FsSelection   uint16
	XHeight       int16 // 0 for versions < 2
	CapHeight     int16 // 0 for versions < 2
}

// PanoseString formats the PANOSE classification as a comma separated list.
func (info OS2TableInfo) PanoseString() string {
	parts := make([]string, len(info.Panose))
	for i, p := range info.Panose {
		parts[i] = fmt.Sprint(p)
	}
	return strings.Join(parts, ",")
}

// PanoseMonospaced reports whether the PANOSE classification declares a
// monospaced Latin text face (family kind 2, proportion 9).
func (info OS2TableInfo) PanoseMonospaced() bool {
	return info.Panose[0] == 2 && info.Panose[3] == 9
}

// OS2Info returns information from table 'OS/2'.
// Returns (info, false) if the font has no OS/2 table.
func OS2Info(otf *ot.Font) (OS2TableInfo, bool) {
	var info OS2TableInfo
	if otf == nil || otf.OS2 == nil {
		return info, false
	}
	os2 := otf.OS2
	info.Version = os2.Version
	info.Size = os2.Size()
	info.XAvgCharWidth = os2.XAvgCharWidth
	info.WeightClass = os2.WeightClass
	info.WidthClass = os2.WidthClass
	info.Panose = os2.Panose
	info.VendorID = strings.TrimSpace(os2.VendorID.String())
	info.FsSelection = os2.FsSelection
	if os2.Version >= 2 {
		info.XHeight = os2.XHeight
		info.CapHeight = os2.CapHeight
	}
	return info, true
}

// PostTableInfo is a query view over the header of table 'post'.
type PostTableInfo struct {
	Version            uint32
	ItalicAngle        float64
	UnderlinePosition  int16
	UnderlineThickness int16
	IsFixedPitch       bool
}

// PostInfo returns information from table 'post'.
// Returns (info, false) if the font has no post table.
func PostInfo(otf *ot.Font) (PostTableInfo, bool) {
	if otf == nil || otf.Post == nil {
		return PostTableInfo{}, false
	}
	p := otf.Post
	return PostTableInfo{
		Version:            p.Version,
		ItalicAngle:        p.ItalicAngle,
		UnderlinePosition:  p.UnderlinePosition,
		UnderlineThickness: p.UnderlineThickness,
		IsFixedPitch:       p.IsFixedPitch,
	}, true
}

// WidthCount is an entry of a width histogram.
type WidthCount struct {
	Width  uint16
	Glyphs int
}

// WidthHistogram counts the glyphs per advance width, as found in table 'hmtx'.
// Entries are sorted by descending glyph count, then by width.
func WidthHistogram(otf *ot.Font) []WidthCount {
	if otf == nil || otf.HMtx == nil {
		return nil
	}
	counts := make(map[uint16]int)
	for g := 0; g < otf.NumGlyphs(); g++ {
		counts[otf.HMtx.Advance(ot.GlyphIndex(g))]++
	}
	hist := make([]WidthCount, 0, len(counts))
	for w, n := range counts {
		hist = append(hist, WidthCount{Width: w, Glyphs: n})
	}
	sort.Slice(hist, func(i, j int) bool {
		if hist[i].Glyphs != hist[j].Glyphs {
			return hist[i].Glyphs > hist[j].Glyphs
		}
		return hist[i].Width < hist[j].Width
	})
	return hist
}

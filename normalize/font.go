package normalize

import (
	"fmt"

	"github.com/npillmayer/otfpatch"
	"github.com/npillmayer/otfpatch/ot"
	"github.com/npillmayer/otfpatch/otquery"
	"golang.org/x/image/font/sfnt"
)

// Font is a font resource opened for patching. It is owned by a single run
// and mutated in place.
type Font struct {
	Path string
	OTF  *ot.Font   // tables, edited in place
	SFNT *sfnt.Font // outlines of the unpatched binary
	name string
}

// Glyph is a glyph of a font, as seen by the normalizer.
type Glyph struct {
	Index   ot.GlyphIndex
	Name    string // PostScript name, may be empty
	Advance uint16 // current advance width in font units
	Worthy  bool   // glyph is worth outputting
}

func (g Glyph) String() string {
	if g.Name != "" {
		return fmt.Sprintf("glyph %d (%s)", g.Index, g.Name)
	}
	return fmt.Sprintf("glyph %d", g.Index)
}

// Open loads a font from path.
func Open(path string) (*Font, error) {
	sf, err := otfpatch.LoadOpenTypeFont(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open font %s: %w", path, err)
	}
	f, err := fromScalable(sf)
	if err != nil {
		return nil, fmt.Errorf("cannot open font %s: %w", path, err)
	}
	return f, nil
}

// Parse creates a font resource from a font binary held in memory.
func Parse(data []byte) (*Font, error) {
	sf, err := otfpatch.ParseOpenTypeFont(data)
	if err != nil {
		return nil, err
	}
	return fromScalable(sf)
}

func fromScalable(sf *otfpatch.ScalableFont) (*Font, error) {
	otf, err := otfpatch.FromBinary(sf.Binary)
	if err != nil {
		return nil, err
	}
	if otf.HMtx == nil || otf.HHea == nil {
		return nil, fmt.Errorf("%w: no horizontal metrics", ot.ErrFontFormat)
	}
	f := &Font{
		Path: sf.Filepath,
		OTF:  otf,
		SFNT: sf.SFNT,
		name: sf.Fontname,
	}
	tracer().Infof("opened font %q with %d glyphs", f.Name(), otf.NumGlyphs())
	return f, nil
}

// Name returns the full name of the font, or its family name if the former
// is not present.
func (f *Font) Name() string {
	if f.name != "" {
		return f.name
	}
	family, _ := otfpatch.FamilyName(f.OTF)
	return family
}

// Glyphs returns all glyphs of the font in glyph index order.
//
// A glyph is worth outputting if it is the .notdef glyph (index 0), if it has
// an outline, or if it has a non-zero advance width (e.g., a space).
// Everything else is an empty placeholder a font editor would not write to a
// font file, and is ignored by the normalizer.
func (f *Font) Glyphs() []Glyph {
	n := f.OTF.NumGlyphs()
	glyphs := make([]Glyph, n)
	for i := 0; i < n; i++ {
		gid := ot.GlyphIndex(i)
		m := otquery.GlyphMetrics(f.OTF, f.SFNT, gid)
		glyphs[i] = Glyph{
			Index:   gid,
			Name:    otquery.GlyphName(f.SFNT, gid),
			Advance: f.OTF.HMtx.Advance(gid),
		}
		glyphs[i].Worthy = gid == 0 || m.HasOutline || glyphs[i].Advance != 0
	}
	return glyphs
}

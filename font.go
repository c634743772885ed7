/*
Package otfpatch patches the horizontal metrics of OpenType fonts.

Its main use case is turning a font with almost-monospaced glyphs into a
font where every glyph worth outputting has the same advance width, as is
required by terminal emulators and code editors. The program in
ot-tools does exactly this; package normalize holds the pipeline, package ot
the font model and encoder, and package otquery read-only queries.

There is a certain confusion with the nomenclature of typesetting. We will
stick to the following definitions:

▪︎ A "typeface" is a family of fonts. An example is "Helvetica".
This corresponds to a TrueType "collection" (*.ttc).

▪︎ A "scalable font" is a font, i.e. a variant of a typeface with a
certain weight, slant, etc.  An example is "Helvetica regular".

Please note that Go (Golang) does use the terms "font" and "face"
differently–actually more or less in an opposite manner.

# Status

Does not contain methods for font collections (*.ttc).

# Links

OpenType explained:
https://docs.microsoft.com/en-us/typography/opentype/

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otfpatch

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/otfpatch/ot"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font/sfnt"
)

// tracer writes to trace with key 'otfpatch'
func tracer() tracing.Trace {
	return tracing.Select("otfpatch")
}

// ScalableFont is an internal representation of an outline-font of type
// TTF of OTF.
type ScalableFont struct {
	Fontname string
	Filepath string     // file path
	Binary   []byte     // raw data
	SFNT     *sfnt.Font // the font's container, used for outline queries
}

// LoadOpenTypeFont loads an OpenType font (TTF or OTF) from a file.
func LoadOpenTypeFont(fontfile string) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, err
	}
	f, err := ParseOpenTypeFont(bytez)
	if err != nil {
		return nil, err
	}
	f.Filepath = fontfile
	return f, nil
}

// ParseOpenTypeFont loads an OpenType font (TTF or OTF) from memory.
func ParseOpenTypeFont(fbytes []byte) (f *ScalableFont, err error) {
	f = &ScalableFont{Binary: fbytes}
	if f.SFNT, err = sfnt.Parse(f.Binary); err != nil {
		// sfnt insists on a table directory sorted by tag
		sorted, serr := sortTableDirectory(fbytes)
		if serr != nil {
			return nil, err
		}
		if f.SFNT, err = sfnt.Parse(sorted); err != nil {
			return nil, err
		}
		f.Binary = sorted
	}
	if f.Fontname, err = f.SFNT.Name(nil, sfnt.NameIDFull); err == nil {
		tracer().Debugf("loaded and parsed SFNT %s", f.Fontname)
	}
	return f, nil
}

// sortTableDirectory re-encodes a font binary whose table records are not
// sorted by tag. Table contents are left untouched.
func sortTableDirectory(fbytes []byte) ([]byte, error) {
	otf, err := ot.Parse(fbytes)
	if err != nil {
		return nil, err
	}
	if otf.SortedDirectory() {
		return nil, errors.New("table directory is sorted")
	}
	tracer().Infof("font has an unsorted table directory, re-encoding it")
	return otf.Encode()
}

// LocateFont returns a path for a font file. If fontfile exists, it is
// returned as is. A bare file name (without directory) which cannot be found
// is looked up in the system font directories. If this fails as well, the
// original error is returned.
//
// Tools which only inspect fonts use LocateFont; the patch pipeline insists
// on an existing input path.
func LocateFont(fontfile string) (string, error) {
	_, err := os.Stat(fontfile)
	if err == nil || !errors.Is(err, fs.ErrNotExist) {
		return fontfile, err
	}
	if filepath.Base(fontfile) != fontfile {
		return fontfile, err
	}
	fpath, ferr := findfont.Find(fontfile) // try to find as system font
	if ferr != nil || fpath == "" {
		return fontfile, err
	}
	tracer().Debugf("%s is a system font: %s", fontfile, fpath)
	return fpath, nil
}

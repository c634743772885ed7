package otquery

import (
	"bytes"
	"fmt"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/font/opentype"
	"github.com/go-text/typesetting/font/opentype/tables"
)

// Verification holds what an independent OpenType parser reads from a font
// binary. It is used to double-check fonts after patching.
type Verification struct {
	NumGlyphs     int
	Upem          uint16
	Advances      []float32 // horizontal advance per glyph
	IsMonospace   bool      // fixed-pitch flag set or all non-zero advances equal
	IsFixedPitch  bool      // post.isFixedPitch
	HasOS2        bool
	OS2Version    uint16
	XAvgCharWidth uint16
	Tables        []string
}

// Verify parses a font binary with github.com/go-text/typesetting and
// collects metric information from it.
func Verify(data []byte) (Verification, error) {
	var v Verification
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return v, fmt.Errorf("font not accepted by go-text: %w", err)
	}
	ld, err := opentype.NewLoader(bytes.NewReader(data))
	if err != nil {
		return v, fmt.Errorf("font not accepted by go-text: %w", err)
	}
	for _, tag := range ld.Tables() {
		v.Tables = append(v.Tables, tag.String())
	}
	raw, err := ld.RawTable(opentype.MustNewTag("maxp"))
	if err != nil {
		return v, err
	}
	maxp, _, err := tables.ParseMaxp(raw)
	if err != nil {
		return v, err
	}
	v.NumGlyphs = int(maxp.NumGlyphs)
	v.Upem = face.Upem()
	v.IsMonospace = face.IsMonospace()
	v.Advances = make([]float32, v.NumGlyphs)
	for g := range v.Advances {
		v.Advances[g] = face.HorizontalAdvance(font.GID(g))
	}
	if raw, err = ld.RawTable(opentype.MustNewTag("post")); err == nil {
		if post, _, err := tables.ParsePost(raw); err == nil {
			v.IsFixedPitch = post.IsFixedPitch != 0
		}
	}
	if raw, err = ld.RawTable(opentype.MustNewTag("OS/2")); err == nil {
		if os2, _, err := tables.ParseOs2(raw); err == nil {
			v.HasOS2 = true
			v.OS2Version = os2.Version
			v.XAvgCharWidth = os2.XAvgCharWidth
		}
	}
	tracer().Debugf("go-text verified font: %d glyphs, %d tables", v.NumGlyphs, len(v.Tables))
	return v, nil
}

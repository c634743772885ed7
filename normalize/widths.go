package normalize

// Mismatch is a glyph worth outputting whose advance width differs from the
// target width.
type Mismatch struct {
	Glyph Glyph
	Width uint16 // advance width before patching
}

// Mismatches returns all glyphs worth outputting with an advance width other
// than target, in glyph index order. The font is not changed.
func (f *Font) Mismatches(target uint16) []Mismatch {
	var mm []Mismatch
	for _, g := range f.Glyphs() {
		if g.Worthy && g.Advance != target {
			mm = append(mm, Mismatch{Glyph: g, Width: g.Advance})
		}
	}
	return mm
}

// SetWidths sets the advance width of every glyph worth outputting to target.
// Other glyphs keep their width. Returns the number of glyphs changed.
func (f *Font) SetWidths(target uint16) int {
	changed := 0
	for _, g := range f.Glyphs() {
		if !g.Worthy {
			continue
		}
		if g.Advance != target {
			tracer().Debugf("%s: width %d -> %d", g, g.Advance, target)
			changed++
		}
		f.OTF.HMtx.SetAdvance(g.Index, target)
	}
	return changed
}

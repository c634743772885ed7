package normalize

import "fmt"

// Result summarizes a normalization run.
type Result struct {
	Output  string // path of the exported font
	Glyphs  int    // number of glyphs in the font
	Worthy  int    // number of glyphs worth outputting
	Changed int    // number of glyphs with a changed advance width
}

// Run opens the font at cfg.InputPath, sets the width of all glyphs worth
// outputting to cfg.TargetWidth, updates table OS/2 and exports the result
// to OutputPath(cfg). Every width mismatch is handed to reporter before the
// width is changed. reporter may be nil.
//
// Run stops at the first error. No file is written in this case.
func Run(cfg Config, reporter Reporter) (Result, error) {
	var result Result
	if err := cfg.Validate(); err != nil {
		return result, err
	}
	if reporter == nil {
		reporter = discard
	}
	f, err := Open(cfg.InputPath)
	if err != nil {
		return result, err
	}
	for _, g := range f.Glyphs() {
		result.Glyphs++
		if g.Worthy {
			result.Worthy++
		}
	}
	for _, m := range f.Mismatches(cfg.TargetWidth) {
		if err := reporter.Report(m); err != nil {
			return result, fmt.Errorf("cannot report width of %s: %w", m.Glyph, err)
		}
	}
	result.Changed = f.SetWidths(cfg.TargetWidth)
	if err := f.SetOS2(cfg.OS2Version, cfg.Panose); err != nil {
		return result, err
	}
	if cfg.SetMonospaced {
		f.SetFixedPitch(true)
	}
	if err := EnsureDir(cfg.OutputDir); err != nil {
		return result, err
	}
	out := OutputPath(cfg)
	if err := f.Export(out); err != nil {
		return result, err
	}
	result.Output = out
	tracer().Infof("%d of %d glyphs changed, output in %s", result.Changed, result.Worthy, out)
	return result, nil
}

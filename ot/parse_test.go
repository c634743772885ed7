package ot

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/npillmayer/otfpatch/internal/testfont"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestParseHeader(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	otf, err := Parse(testfont.Scenario())
	if err != nil {
		t.Fatal(err)
	}
	t.Logf("otf.header.tag = %x", otf.Header.FontType)
	if otf.Header.FontType != 0x00010000 {
		t.Fatalf("expected test font to be OT 0x0001000, is %x", otf.Header.FontType)
	}
	if otf.Header.IsCFF() {
		t.Error("expected test font not to be CFF")
	}
	if len(otf.TableTags()) != 10 {
		t.Errorf("expected test font to have 10 tables, has %d", len(otf.TableTags()))
	}
	if otf.TableTags()[0] != T("OS/2") {
		t.Errorf("expected tags to be sorted, first is %s", otf.TableTags()[0])
	}
}

func TestParseMetricTables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	otf, err := Parse(testfont.Scenario())
	if err != nil {
		t.Fatal(err)
	}
	if otf.NumGlyphs() != 4 {
		t.Errorf("expected 4 glyphs, have %d", otf.NumGlyphs())
	}
	if otf.Head.UnitsPerEm != 2048 {
		t.Errorf("expected units per em = 2048, is %d", otf.Head.UnitsPerEm)
	}
	if otf.HHea.NumberOfHMetrics != 4 || otf.HHea.AdvanceWidthMax != 1229 {
		t.Errorf("unexpected hhea: numberOfHMetrics = %d, advanceWidthMax = %d",
			otf.HHea.NumberOfHMetrics, otf.HHea.AdvanceWidthMax)
	}
	widths := []uint16{600, 1229, 800, 0}
	for gid, w := range widths {
		if aw := otf.HMtx.Advance(GlyphIndex(gid)); aw != w {
			t.Errorf("expected advance of glyph %d to be %d, is %d", gid, w, aw)
		}
	}
	if otf.OS2 == nil || otf.OS2.Version != 1 || otf.OS2.Size() != 86 {
		t.Fatalf("expected OS/2 table version 1 of 86 bytes, have %v", otf.OS2)
	}
	if otf.OS2.Panose != testfont.Panose {
		t.Errorf("expected PANOSE %v, is %v", testfont.Panose, otf.OS2.Panose)
	}
	if otf.OS2.VendorID.String() != "TEST" {
		t.Errorf("expected vendor ID TEST, is %s", otf.OS2.VendorID)
	}
	if otf.Post == nil || otf.Post.IsFixedPitch {
		t.Error("expected post table with isFixedPitch = 0")
	}
	if otf.Post.Version != 0x00030000 || otf.Post.UnderlinePosition != -100 {
		t.Errorf("unexpected post table header: %#x, %d", otf.Post.Version, otf.Post.UnderlinePosition)
	}
}

func TestParseCompactHMtx(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	otf := parseTestFont(t, testfont.Options{
		Glyphs: []testfont.Glyph{
			{Advance: 500, Outline: true},
			{Rune: 'a', Advance: 700, Outline: true, LSB: 10},
			{Rune: 'b', Advance: 700, Outline: true, LSB: 20},
			{Rune: 'c', Advance: 700, Outline: true, LSB: 30},
		},
		CompactHMtx: true,
	})
	if otf.HHea.NumberOfHMetrics != 2 {
		t.Errorf("expected numberOfHMetrics = 2, is %d", otf.HHea.NumberOfHMetrics)
	}
	aw, lsb, ok := otf.HMtx.HMetrics(3)
	if !ok || aw != 700 || lsb != 30 {
		t.Errorf("expected glyph 3 to have metrics (700, 30), have (%d, %d, %v)", aw, lsb, ok)
	}
	if _, _, ok := otf.HMtx.HMetrics(4); ok {
		t.Error("expected glyph 4 to be out of range")
	}
}

func TestParseWithoutOS2(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	otf := parseTestFont(t, testfont.Options{OmitOS2: true})
	if otf.OS2 != nil {
		t.Error("expected font without OS/2 table")
	}
	found := false
	for _, w := range otf.Warnings() {
		if w.Table == T("OS/2") {
			found = true
		}
	}
	if !found {
		t.Error("expected a warning about the missing OS/2 table")
	}
}

func TestParseUnsortedDirectory(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	otf := parseTestFont(t, testfont.Options{Glyphs: testfont.ScenarioGlyphs, OS2Version: 1, Unsorted: true})
	if otf.SortedDirectory() {
		t.Error("expected table directory to be reported as unsorted")
	}
	if len(otf.Warnings()) != 1 || otf.HasCriticalErrors() {
		t.Errorf("expected exactly one warning, have %v / %v", otf.Warnings(), otf.Errors())
	}
	if otf.NumGlyphs() != 4 || otf.HMtx.Advance(1) != 1229 || otf.OS2 == nil {
		t.Fatal("expected tables of unsorted font to be parsed")
	}
	out, err := otf.Encode()
	if err != nil {
		t.Fatal(err)
	}
	sorted, err := Parse(out)
	if err != nil {
		t.Fatal(err)
	}
	if !sorted.SortedDirectory() || len(sorted.Warnings()) != 0 {
		t.Errorf("expected encoded font to have a sorted directory, warnings = %v", sorted.Warnings())
	}
	if len(sorted.TableTags()) != len(otf.TableTags()) {
		t.Errorf("expected %d tables, have %d", len(otf.TableTags()), len(sorted.TableTags()))
	}
}

func TestParseMalformedInputs(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	font := testfont.Scenario()
	dirEntry := func(b []byte, tag string) []byte {
		n := int(binary.BigEndian.Uint16(b[4:]))
		for i := 0; i < n; i++ {
			rec := b[12+16*i:]
			if string(rec[:4]) == tag {
				return rec
			}
		}
		t.Fatalf("test font has no table %s", tag)
		return nil
	}
	t.Run("Empty", func(t *testing.T) {
		if _, err := Parse([]byte{}); !errors.Is(err, ErrFontFormat) {
			t.Errorf("expected ErrFontFormat for empty input, have %v", err)
		}
	})
	t.Run("FontCollection", func(t *testing.T) {
		b := append([]byte{}, font...)
		copy(b, "ttcf")
		if _, err := Parse(b); err == nil {
			t.Error("expected error for font collection")
		}
	})
	t.Run("TableOutOfBounds", func(t *testing.T) {
		b := append([]byte{}, font...)
		rec := dirEntry(b, "hmtx")
		binary.BigEndian.PutUint32(rec[12:], uint32(len(b)))
		if _, err := Parse(b); err == nil {
			t.Error("expected error for hmtx table exceeding the font")
		}
	})
	t.Run("MisalignedTable", func(t *testing.T) {
		b := append([]byte{}, font...)
		rec := dirEntry(b, "post")
		binary.BigEndian.PutUint32(rec[8:], binary.BigEndian.Uint32(rec[8:])+2)
		if _, err := Parse(b); err == nil {
			t.Error("expected error for misaligned table")
		}
	})
	t.Run("MissingHMtx", func(t *testing.T) {
		b := append([]byte{}, font...)
		rec := dirEntry(b, "hmtx")
		copy(rec, "hmtX") // still sorted: 'X' < 'l'
		if _, err := Parse(b); err == nil {
			t.Error("expected error for missing hmtx table")
		}
	})
	t.Run("DuplicateTable", func(t *testing.T) {
		b := append([]byte{}, font...)
		rec := dirEntry(b, "loca")
		copy(rec, "hmtx")
		if _, err := Parse(b); !errors.Is(err, ErrFontFormat) {
			t.Errorf("expected ErrFontFormat for duplicate table record, have %v", err)
		}
	})
	t.Run("NumberOfHMetricsTooLarge", func(t *testing.T) {
		b := append([]byte{}, font...)
		rec := dirEntry(b, "hhea")
		off := binary.BigEndian.Uint32(rec[8:])
		binary.BigEndian.PutUint16(b[off+34:], 5)
		if _, err := Parse(b); err == nil {
			t.Error("expected error for numberOfHMetrics > numGlyphs")
		}
	})
}

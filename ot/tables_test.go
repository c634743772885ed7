package ot

import (
	"testing"

	"github.com/npillmayer/otfpatch/internal/testfont"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHMtxSetAdvance(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	otf := parseTestFont(t, testfont.Options{
		Glyphs: []testfont.Glyph{
			{Advance: 500, Outline: true},
			{Rune: 'a', Advance: 700, Outline: true, LSB: 10},
			{Rune: 'b', Advance: 700, Outline: true, LSB: 20},
		},
		CompactHMtx: true,
	})
	hmtx := otf.HMtx
	require.Equal(t, 2, hmtx.NumberOfHMetrics)
	assert.True(t, hmtx.SetAdvance(1, 700), "setting an unchanged width succeeds")
	assert.False(t, hmtx.modified(), "unchanged width must not mark hmtx as modified")
	//
	assert.True(t, hmtx.SetAdvance(2, 900))
	assert.True(t, hmtx.modified())
	assert.Equal(t, 3, hmtx.NumberOfHMetrics, "setting a folded width expands hmtx")
	assert.Equal(t, uint16(900), hmtx.Advance(2))
	assert.Equal(t, uint16(700), hmtx.Advance(1))
	_, lsb, _ := hmtx.HMetrics(2)
	assert.Equal(t, int16(20), lsb)
	assert.False(t, hmtx.SetAdvance(3, 900), "glyph 3 is out of range")
	assert.Equal(t, uint16(900), hmtx.MaxAdvance())
}

func TestHMtxCompact(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	otf := parseTestFont(t, testfont.Options{
		Glyphs: []testfont.Glyph{
			{Advance: 1229, Outline: true},
			{Rune: 'a', Advance: 700, Outline: true},
			{Rune: 'b', Advance: 1229, Outline: true},
			{Rune: 'c', Advance: 1229, Outline: true},
		},
	})
	hmtx := otf.HMtx
	require.Equal(t, 4, hmtx.NumberOfHMetrics)
	b := hmtx.encode()
	assert.Equal(t, 3, hmtx.NumberOfHMetrics, "trailing equal widths are folded")
	assert.Len(t, b, 3*4+2)
	hmtx.SetAdvance(1, 1229)
	b = hmtx.encode()
	assert.Equal(t, 1, hmtx.NumberOfHMetrics)
	assert.Len(t, b, 4+3*2)
	for g := 0; g < 4; g++ {
		assert.Equal(t, uint16(1229), hmtx.Advance(GlyphIndex(g)))
	}
}

func TestHMtxAverageAdvance(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	otf := parseTestFont(t, testfont.Options{Glyphs: testfont.ScenarioGlyphs})
	// (600 + 1229 + 800) / 3, glyph with width 0 is not counted
	assert.Equal(t, int16(876), otf.HMtx.AverageAdvance())
}

func TestOS2Upgrade(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	otf := parseTestFont(t, testfont.Options{OS2Version: 1})
	os2 := otf.OS2
	require.NotNil(t, os2)
	require.NoError(t, os2.SetVersion(4))
	assert.Equal(t, 96, os2.Size())
	assert.Equal(t, uint16(0x20), os2.BreakChar)
	os2.SetHeights(520, 700)
	panose := [10]byte{2, 9, 6, 3, 0, 0, 0, 0, 0, 0}
	os2.SetPanose(panose)
	b := os2.encode()
	require.Len(t, b, 96)
	//
	reparsed := newOS2Table(T("OS/2"), b, 0, uint32(len(b)))
	require.NoError(t, reparsed.decode())
	assert.Equal(t, uint16(4), reparsed.Version)
	assert.Equal(t, panose, reparsed.Panose)
	assert.Equal(t, int16(520), reparsed.XHeight)
	assert.Equal(t, int16(700), reparsed.CapHeight)
	assert.Equal(t, os2.FsSelection, reparsed.FsSelection, "fields not touched are preserved")
	assert.Equal(t, os2.WinAscent, reparsed.WinAscent)
	assert.Equal(t, os2.Binary()[78:86], []byte(b[78:86]), "code page ranges are preserved")
	//
	assert.Error(t, os2.SetVersion(6))
}

func TestOS2HeightsIgnoredBelowVersion2(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	otf := parseTestFont(t, testfont.Options{OS2Version: 0})
	otf.OS2.SetHeights(520, 700)
	assert.False(t, otf.OS2.modified())
	assert.Equal(t, 78, otf.OS2.Size())
}

func TestAddOS2(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	otf := parseTestFont(t, testfont.Options{OmitOS2: true})
	require.Nil(t, otf.OS2)
	os2, err := otf.AddOS2(4)
	require.NoError(t, err)
	assert.Same(t, os2, otf.OS2)
	assert.NotNil(t, otf.Table(T("OS/2")))
	assert.Equal(t, 96, os2.Size())
	assert.Equal(t, uint16(400), os2.WeightClass)
	assert.Equal(t, int16(1600), os2.TypoAscender, "vertical metrics are taken from hhea")
	assert.Equal(t, uint16(448), os2.WinDescent)
	again, err := otf.AddOS2(1)
	require.NoError(t, err)
	assert.Same(t, os2, again, "an existing table is kept")
	//
	b, err := otf.Encode()
	require.NoError(t, err)
	reparsed, err := Parse(b)
	require.NoError(t, err)
	require.NotNil(t, reparsed.OS2)
	assert.Equal(t, uint16(4), reparsed.OS2.Version)
	assert.Equal(t, uint16(0x20), reparsed.OS2.BreakChar)
	assert.Equal(t, T("    "), reparsed.OS2.VendorID)
	assert.Empty(t, reparsed.Warnings(), "no table is missing")
	//
	_, err = parseTestFont(t, testfont.Options{OmitOS2: true}).AddOS2(6)
	assert.Error(t, err)
}

func TestPostFixedPitch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	otf := parseTestFont(t, testfont.Options{})
	post := otf.Post
	require.NotNil(t, post)
	post.SetFixedPitch(false)
	assert.False(t, post.modified())
	post.SetFixedPitch(true)
	assert.True(t, post.modified())
	b := post.encode()
	assert.Equal(t, uint32(1), u32(b[12:]))
}

package ot

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/otfpatch/internal/testfont"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/sfnt"
)

func TestEncodeUnmodifiedIsIdentical(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	src := testfont.Scenario()
	otf, err := Parse(src)
	require.NoError(t, err)
	out, err := otf.Encode()
	require.NoError(t, err)
	assert.True(t, bytes.Equal(src, out), "expected unmodified font to encode to identical bytes")
}

func TestEncodeChecksums(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	otf, err := Parse(testfont.Scenario())
	require.NoError(t, err)
	otf.HMtx.SetAdvance(0, 1229)
	otf.OS2.SetPanose([10]byte{2, 9, 6, 3})
	out, err := otf.Encode()
	require.NoError(t, err)
	//
	assert.Equal(t, uint32(checkSumMagic), Checksum(out), "whole-font checksum must equal magic")
	n := int(binary.BigEndian.Uint16(out[4:]))
	for i := 0; i < n; i++ {
		rec := out[12+16*i:]
		tag := MakeTag(rec[:4])
		off, size := binary.BigEndian.Uint32(rec[8:]), binary.BigEndian.Uint32(rec[12:])
		assert.Zero(t, off%4, "table %s not aligned", tag)
		data := append([]byte{}, out[off:off+size]...)
		if tag == T("head") {
			binary.BigEndian.PutUint32(data[headCheckSumAdjustmentOffset:], 0)
		}
		assert.Equal(t, binary.BigEndian.Uint32(rec[4:]), Checksum(data), "checksum of table %s", tag)
	}
}

func TestEncodeSyncsHHea(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	otf, err := Parse(testfont.Scenario())
	require.NoError(t, err)
	for g := 0; g < otf.NumGlyphs(); g++ {
		otf.HMtx.SetAdvance(GlyphIndex(g), 1300)
	}
	out, err := otf.Encode()
	require.NoError(t, err)
	//
	patched, err := Parse(out)
	require.NoError(t, err)
	assert.Equal(t, 1, patched.HHea.NumberOfHMetrics, "all-equal widths compact to one long metric")
	assert.Equal(t, uint16(1300), patched.HHea.AdvanceWidthMax)
	_, length := patched.HMtx.Extent()
	assert.Equal(t, uint32(4+2*3), length)
	for g := 0; g < patched.NumGlyphs(); g++ {
		assert.Equal(t, uint16(1300), patched.HMtx.Advance(GlyphIndex(g)))
	}
	// left side bearings survive compaction
	_, lsb, _ := patched.HMtx.HMetrics(2)
	assert.Equal(t, int16(60), lsb)
}

func TestEncodeKeepsUntouchedTables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	orig, err := Parse(testfont.Scenario())
	require.NoError(t, err)
	otf, err := Parse(testfont.Scenario())
	require.NoError(t, err)
	otf.HMtx.SetAdvance(1, 1000)
	out, err := otf.Encode()
	require.NoError(t, err)
	patched, err := Parse(out)
	require.NoError(t, err)
	//
	if diff := cmp.Diff(orig.TableTags(), patched.TableTags()); diff != "" {
		t.Errorf("table set changed (-want +got):\n%s", diff)
	}
	rewritten := map[Tag]bool{T("head"): true, T("hhea"): true, T("hmtx"): true}
	for _, tag := range orig.TableTags() {
		if rewritten[tag] {
			continue
		}
		want, got := orig.Table(tag).Binary(), patched.Table(tag).Binary()
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("table %s changed (-want +got):\n%s", tag, diff)
		}
	}
}

func TestEncodeAcceptedBySfnt(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	otf, err := Parse(testfont.Scenario())
	require.NoError(t, err)
	otf.HMtx.SetAdvance(2, 1229)
	require.NoError(t, otf.OS2.SetVersion(4))
	otf.OS2.SetHeights(520, 700)
	out, err := otf.Encode()
	require.NoError(t, err)
	//
	f, err := sfnt.Parse(out)
	require.NoError(t, err, "x/image/font/sfnt rejects encoded font")
	assert.Equal(t, 4, f.NumGlyphs())
	var buf bytes.Buffer
	n, err := otf.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(len(out)), n)
	assert.True(t, bytes.Equal(out, buf.Bytes()), "encoding twice yields identical bytes")
}

func TestEncodeEmptyFont(t *testing.T) {
	_, err := (&Font{}).Encode()
	assert.ErrorIs(t, err, ErrFontFormat)
}

func TestChecksumPadding(t *testing.T) {
	assert.Equal(t, uint32(0x01020304), Checksum([]byte{1, 2, 3, 4}))
	assert.Equal(t, uint32(0x01020304+0x05000000), Checksum([]byte{1, 2, 3, 4, 5}))
	assert.Equal(t, uint32(0), Checksum(nil))
}

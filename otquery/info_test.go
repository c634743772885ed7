package otquery

import (
	"testing"

	"github.com/npillmayer/otfpatch/internal/testfont"
	"github.com/npillmayer/otfpatch/ot"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/suite"
	"golang.org/x/image/font/sfnt"
)

// --- Test Suite Preparation ------------------------------------------------

type InfoTestEnviron struct {
	suite.Suite
	binary []byte
	otf    *ot.Font
	sf     *sfnt.Font
}

// listen for 'go test' command --> run test methods
func TestInfoFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	suite.Run(t, new(InfoTestEnviron))
}

// run once, before test suite methods
func (env *InfoTestEnviron) SetupSuite() {
	env.T().Log("Setting up test suite")
	tracing.Select("font.opentype").SetTraceLevel(tracing.LevelError)
	env.binary = testfont.Scenario()
	var err error
	env.otf, err = ot.Parse(env.binary)
	env.Require().NoError(err)
	env.sf, err = sfnt.Parse(env.binary)
	env.Require().NoError(err)
	tracing.Select("font.opentype").SetTraceLevel(tracing.LevelInfo)
}

// run once, after test suite methods
func (env *InfoTestEnviron) TearDownSuite() {
	env.T().Log("Tearing down test suite")
}

// --- Tests -----------------------------------------------------------------

func (env *InfoTestEnviron) TestNames() {
	names := make(map[sfnt.NameID]string)
	for id, s := range NamesRange(env.otf) {
		names[id] = s
	}
	env.T().Logf("names = %v", names)
	env.Equal("Test Sans", names[sfnt.NameIDFamily], "expected font family name 'Test Sans'")
	env.Equal("Test Sans Bold", names[sfnt.NameIDFull])
	//
	records := NameRecords(env.otf)
	env.Require().Len(records, 2)
	env.Equal(PlatformIDWindows, records[0].Platform)
	env.Equal(EncodingIDWindowsBMP, records[0].Encoding)
	env.Equal(uint16(0x0409), records[0].Language)
	env.True(records[1].Decoded())
	env.Nil(NameRecords(nil))
}

func (env *InfoTestEnviron) TestHeadInfo() {
	h, ok := HeadInfo(env.otf)
	env.Require().True(ok, "expected to decode table 'head'")

	headTable := env.otf.Table(ot.T("head")).Self().AsHead()
	env.Require().NotNil(headTable, "expected parsed HeadTable")

	env.Equal(headTable.Flags, h.Flags, "expected matching Flags")
	env.Equal(headTable.UnitsPerEm, h.UnitsPerEm, "expected matching UnitsPerEm")
	env.Equal(int16(headTable.IndexToLocFormat), h.IndexToLocFormat, "expected matching IndexToLocFormat")
	env.Equal(uint32(0x5F0F3CF5), h.MagicNumber, "expected OpenType head magic number")
	env.Equal("1.000", h.FontRevisionString())
	env.Equal(1904, h.CreatedTime().Year())
}

func (env *InfoTestEnviron) TestMaxPInfo() {
	m, ok := MaxPInfo(env.otf)
	env.Require().True(ok, "expected to decode table 'maxp'")

	maxpTable := env.otf.Table(ot.T("maxp")).Self().AsMaxP()
	env.Require().NotNil(maxpTable, "expected parsed MaxPTable")

	env.Equal(uint16(maxpTable.NumGlyphs), m.NumGlyphs, "expected matching numGlyphs")
	env.NotZero(m.VersionFixed, "expected maxp version to be set")
	env.True(m.HasExtendedProfile, "expected TrueType maxp profile")
}

func (env *InfoTestEnviron) TestFontMetrics() {
	m := FontMetrics(env.otf)
	env.Equal(sfnt.Units(2048), m.UnitsPerEm)
	env.Equal(sfnt.Units(1600), m.Ascent)
	env.Equal(sfnt.Units(-448), m.Descent)
	env.Equal(sfnt.Units(1229), m.MaxAdvance)
}

func (env *InfoTestEnviron) TestGlyphMetrics() {
	m := GlyphMetrics(env.otf, env.sf, 1) // 'H'
	env.True(m.HasOutline)
	env.Equal(sfnt.Units(1229), m.Advance)
	env.Equal(sfnt.Units(100), m.LSB)
	env.Equal(BoundingBox{MinX: 100, MinY: 0, MaxX: 600, MaxY: 700}, m.BBox)
	env.Equal(sfnt.Units(629), m.RSB)
	//
	empty := GlyphMetrics(env.otf, env.sf, 3)
	env.False(empty.HasOutline, "expected glyph 3 to have no outline")
	env.True(empty.BBox.IsEmpty())
	env.Zero(empty.Advance)
}

func (env *InfoTestEnviron) TestGlyphIndex() {
	env.Equal(ot.GlyphIndex(1), GlyphIndex(env.sf, 'H'))
	env.Equal(ot.GlyphIndex(2), GlyphIndex(env.sf, 'x'))
	env.Equal(ot.GlyphIndex(0), GlyphIndex(env.sf, 'Q'))
	env.Equal(ot.GlyphIndex(0), GlyphIndex(nil, 'H'))
}

func (env *InfoTestEnviron) TestGlyphTopAndRSB() {
	env.Equal(int16(700), GlyphTop(env.otf, env.sf, 'H'))
	env.Equal(int16(520), GlyphTop(env.otf, env.sf, 'x'))
	env.Equal(int16(0), GlyphTop(env.otf, env.sf, 'Q'))
	rsb, ok := MinRightSideBearing(env.otf, env.sf)
	env.True(ok)
	env.Equal(int16(50), rsb) // .notdef: 600 - (50 + 500)
}

func (env *InfoTestEnviron) TestOS2AndPostInfo() {
	os2, ok := OS2Info(env.otf)
	env.Require().True(ok)
	env.Equal(uint16(1), os2.Version)
	env.Equal(86, os2.Size)
	env.Equal("TEST", os2.VendorID)
	env.Equal("2,11,6,4,2,2,2,2,2,4", os2.PanoseString())
	env.False(os2.PanoseMonospaced())
	env.Zero(os2.XHeight, "x-height is not defined for OS/2 version 1")
	//
	post, ok := PostInfo(env.otf)
	env.Require().True(ok)
	env.False(post.IsFixedPitch)
	env.Equal(uint32(0x00030000), post.Version)
}

func (env *InfoTestEnviron) TestWidthHistogram() {
	hist := WidthHistogram(env.otf)
	env.Len(hist, 4)
	env.Equal(WidthCount{Width: 0, Glyphs: 1}, hist[0], "ties are sorted by width")
}

func (env *InfoTestEnviron) TestVerify() {
	v, err := Verify(env.binary)
	env.Require().NoError(err)
	env.Equal(4, v.NumGlyphs)
	env.Equal(uint16(2048), v.Upem)
	env.Equal([]float32{600, 1229, 800, 0}, v.Advances)
	env.False(v.IsFixedPitch)
	env.False(v.IsMonospace)
	env.True(v.HasOS2)
	env.Equal(uint16(1), v.OS2Version)
	env.Contains(v.Tables, "hmtx")
	//
	_, err = Verify([]byte("no font"))
	env.Error(err)
}

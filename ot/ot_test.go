package ot

import (
	"testing"

	"github.com/npillmayer/otfpatch/internal/testfont"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestTags(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	tag := Tag(0x636d6170)
	if tag.String() != "cmap" {
		t.Errorf("expected tag 0x636d6170 to be 'cmap', is %s", tag.String())
	}
	tag = MakeTag([]byte("cmap"))
	if tag.String() != "cmap" {
		t.Errorf("expected tag MakeTag(cmap) to be 'cmap', is %s", tag.String())
	}
	tag = T("cmap")
	if tag.String() != "cmap" {
		t.Errorf("expected tag T(cmap) to be 'cmap', is %s", tag.String())
	}
	if T("OS/2") != Tag(0x4f532f32) {
		t.Errorf("expected tag T(OS/2) to be 0x4f532f32, is %x", uint32(T("OS/2")))
	}
}

func TestTableName(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	tb := tableBase{}
	tb.name = 0x636d6170
	s := tb.Self().NameTag().String()
	if s != "cmap" {
		t.Errorf("expected table name to be cmap, is %v", s)
	}
}

func TestTableSelfConversion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	otf := parseTestFont(t, testfont.Options{OS2Version: 1})
	if otf.Table(T("hmtx")).Self().AsHMtx() == nil {
		t.Error("expected hmtx table to convert to HMtxTable")
	}
	if otf.Table(T("hmtx")).Self().AsOS2() != nil {
		t.Error("expected hmtx table not to convert to OS2Table")
	}
	if otf.Table(T("glyf")).Self().AsHead() != nil {
		t.Error("expected generic table not to convert to HeadTable")
	}
	if (TableSelf{}).AsPost() != nil {
		t.Error("expected empty TableSelf to convert to nil")
	}
}

// ---------------------------------------------------------------------------

func parseTestFont(t *testing.T, opts testfont.Options) *Font {
	t.Helper()
	level := tracer().GetTraceLevel()
	tracer().SetTraceLevel(tracing.LevelInfo)
	defer tracer().SetTraceLevel(level)
	//
	otf, err := Parse(testfont.Build(opts))
	if err != nil {
		t.Fatalf("cannot parse synthetic font: %v", err)
	}
	return otf
}

package ot

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/npillmayer/otfpatch/internal/testfont"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFailureIsFontFormat(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	font := testfont.Scenario()
	binary.BigEndian.PutUint32(font[0:], 0xdeadbeef)
	_, err := Parse(font)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFontFormat)
	var ferr FontError
	require.True(t, errors.As(err, &ferr), "parse failures carry location information")
	assert.Equal(t, "Header", ferr.Section)
	assert.Equal(t, SeverityCritical, ferr.Severity)
	assert.Contains(t, ferr.Error(), "[CRITICAL]")
	assert.Contains(t, ferr.Error(), "deadbeef")
}

func TestUnknownPostVersion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	font := testfont.Scenario()
	otf, err := Parse(font)
	require.NoError(t, err)
	require.Empty(t, otf.Errors())
	offset, _ := otf.Table(T("post")).Extent()
	binary.BigEndian.PutUint32(font[offset:], 0x00070000)
	//
	otf, err = Parse(font)
	require.NoError(t, err, "an unknown post version does not stop parsing")
	require.Len(t, otf.Errors(), 1)
	perr := otf.Errors()[0]
	assert.Equal(t, T("post"), perr.Table)
	assert.Equal(t, "Version", perr.Section)
	assert.Equal(t, SeverityMinor, perr.Severity)
	assert.Equal(t, offset, perr.Offset)
	assert.Contains(t, perr.Error(), "[MINOR] post/Version at offset")
	assert.Contains(t, perr.Error(), "0x70000")
	assert.False(t, otf.HasCriticalErrors())
	assert.Empty(t, otf.CriticalErrors())
	assert.ErrorIs(t, perr, ErrFontFormat)
}

func TestParseWarnings(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	otf, err := Parse(testfont.Build(testfont.Options{OmitOS2: true, Unsorted: true}))
	require.NoError(t, err)
	issues := make(map[string]FontWarning)
	for _, w := range otf.Warnings() {
		issues[w.Issue] = w
	}
	require.Contains(t, issues, "missing table")
	require.Contains(t, issues, "table records not sorted by tag")
	assert.Equal(t, "[WARNING] OS/2: missing table", issues["missing table"].String())
	assert.Contains(t, issues["table records not sorted by tag"].String(), "at offset 12")
	assert.Empty(t, otf.Errors(), "warnings are not errors")
}

func TestErrorCollectorFail(t *testing.T) {
	ec := &errorCollector{}
	assert.False(t, ec.hasErrors())
	ec.addError(T("hmtx"), "Size", "short table", SeverityMinor, 200)
	assert.True(t, ec.hasErrors())
	assert.False(t, ec.hasCriticalErrors())
	//
	err := ec.fail(T("head"), "UnitsPerEm", "units per em is 0", 300)
	assert.ErrorIs(t, err, ErrFontFormat)
	assert.EqualError(t, err, "[CRITICAL] head/UnitsPerEm at offset 300: units per em is 0")
	assert.True(t, ec.hasCriticalErrors())
	require.Len(t, ec.criticalErrors(), 1)
	assert.Equal(t, err, ec.criticalErrors()[0])
	assert.Len(t, ec.errors, 2)
	assert.False(t, ec.hasWarnings())
}

func TestErrorSeverityString(t *testing.T) {
	assert.Equal(t, "CRITICAL", SeverityCritical.String())
	assert.Equal(t, "MAJOR", SeverityMajor.String())
	assert.Equal(t, "MINOR", SeverityMinor.String())
	assert.Equal(t, "UNKNOWN", ErrorSeverity(7).String())
	e := FontError{Table: T("OS/2"), Section: "Version", Issue: "bad", Severity: SeverityMajor}
	assert.Equal(t, "[MAJOR] OS/2/Version: bad", e.Error())
}

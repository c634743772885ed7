package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"

	"github.com/npillmayer/otfpatch/ot"
	"github.com/npillmayer/otfpatch/otquery"
	"github.com/pterm/pterm"
)

func tableOp(intp *Intp, op *Op) (error, bool) {
	tag, ok := op.hasArg()
	if !ok {
		if err := intp.checkTable(); err != nil {
			return err, false
		}
		printTableDump(intp.table)
		return nil, false
	}
	if intp.table = intp.font.OTF.Table(ot.T(tag)); intp.table == nil {
		return errors.New("table not found in font"), false
	}
	tracer().Infof("setting table: %v", tag)
	off, size := intp.table.Extent()
	pterm.Printf("table %s at offset %d, %d bytes\n", tag, off, size)
	return nil, false
}

func tablesOp(intp *Intp, op *Op) (error, bool) {
	data := [][]string{
		{"Tag", "Offset", "Size", "Checksum"},
	}
	for _, tag := range intp.font.OTF.TableTags() {
		t := intp.font.OTF.Table(tag)
		off, size := t.Extent()
		data = append(data, []string{
			tag.String(),
			fmt.Sprintf("%d", off),
			fmt.Sprintf("%d", size),
			fmt.Sprintf("%#08x", ot.Checksum(t.Binary())),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil, false
}

func glyphOp(intp *Intp, op *Op) (error, bool) {
	arg, ok := op.hasArg()
	if !ok {
		return errors.New("glyph index or character required, e.g. glyph:12 or glyph:'x'"), false
	}
	var gid ot.GlyphIndex
	if len(arg) == 3 && arg[0] == '\'' && arg[2] == '\'' {
		gid = otquery.GlyphIndex(intp.font.SFNT, rune(arg[1]))
	} else if n, err := strconv.Atoi(arg); err == nil && n >= 0 && n < intp.font.OTF.NumGlyphs() {
		gid = ot.GlyphIndex(n)
	} else {
		return fmt.Errorf("invalid glyph: %v", arg), false
	}
	printGlyph(intp, gid)
	return nil, false
}

func widthsOp(intp *Intp, op *Op) (error, bool) {
	printWidthHistogram(intp.font.OTF)
	return nil, false
}

func mismatchOp(intp *Intp, op *Op) (error, bool) {
	target := 1229
	if arg, ok := op.hasArg(); ok {
		w, err := strconv.Atoi(arg)
		if err != nil || w <= 0 || w > 0xffff {
			return fmt.Errorf("invalid width: %v", arg), false
		}
		target = w
	}
	mm := intp.font.Mismatches(uint16(target))
	pterm.Printf("%d glyphs worth outputting have a width other than %d\n", len(mm), target)
	if len(mm) == 0 {
		return nil, false
	}
	data := [][]string{
		{"Glyph", "Name", "Width"},
	}
	for _, m := range mm {
		data = append(data, []string{
			fmt.Sprintf("%d", m.Glyph.Index),
			m.Glyph.Name,
			fmt.Sprintf("%d", m.Width),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil, false
}

func os2Op(intp *Intp, op *Op) (error, bool) {
	info, ok := otquery.OS2Info(intp.font.OTF)
	if !ok {
		return errors.New("font has no OS/2 table"), false
	}
	printOS2(info)
	return nil, false
}

func hheaOp(intp *Intp, op *Op) (error, bool) {
	hhea := intp.font.OTF.HHea
	if hhea == nil {
		return errors.New("font has no hhea table"), false
	}
	printHHea(hhea)
	return nil, false
}

func postOp(intp *Intp, op *Op) (error, bool) {
	info, ok := otquery.PostInfo(intp.font.OTF)
	if !ok {
		return errors.New("font has no post table"), false
	}
	pterm.Printf("post version %#x, italic angle %.2f, underline %d/%d, fixed pitch: %v\n",
		info.Version, info.ItalicAngle, info.UnderlinePosition, info.UnderlineThickness,
		info.IsFixedPitch)
	return nil, false
}

func printTableDump(t ot.Table) {
	b := t.Binary()
	if len(b) > 256 {
		b = b[:256]
	}
	pterm.Println(hex.Dump(b))
}

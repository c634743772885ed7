package ot

import (
	"fmt"
	"io"
	"math/bits"
)

// checkSumMagic is used to compute head.checkSumAdjustment:
// "To calculate the checkSum for the 'head' table which itself includes the
// checkSumAdjustment entry for the entire font, do the following: set the
// checkSumAdjustment to 0, calculate the checksum of all tables including the
// 'head' table and enter that value into the table directory, calculate the
// checksum for the entire font, subtract that value from 0xB1B0AFBA."
const checkSumMagic = 0xB1B0AFBA

// Encode serializes the font into the binary OpenType format.
//
// Tables which have been modified through their typed API are re-encoded,
// all other tables are copied byte-by-byte. The table directory, table
// checksums and head.checkSumAdjustment are re-calculated.
// If table 'hmtx' has been modified, fields numberOfHMetrics and
// advanceWidthMax in table 'hhea' are updated accordingly.
func (otf *Font) Encode() ([]byte, error) {
	if otf == nil || otf.Header == nil {
		return nil, errFontFormat("cannot encode empty font")
	}
	if len(otf.tables) == 0 || len(otf.tables) > 0xffff {
		return nil, errFontFormat(fmt.Sprintf("cannot encode font with %d tables", len(otf.tables)))
	}
	data := otf.syncTables()
	tags := otf.TableTags()
	numTables := len(tags)
	// "searchRange: Maximum power of 2 less than or equal to numTables, times 16"
	entrySelector := bits.Len(uint(numTables)) - 1
	searchRange := (1 << entrySelector) * 16
	rangeShift := numTables*16 - searchRange

	dirSize := 12 + 16*numTables
	size := dirSize
	for _, tag := range tags {
		size += padded(len(data[tag]))
	}
	out := make([]byte, size)
	putU32(out[0:], otf.Header.FontType)
	putU16(out[4:], uint16(numTables))
	putU16(out[6:], uint16(searchRange))
	putU16(out[8:], uint16(entrySelector))
	putU16(out[10:], uint16(rangeShift))

	headAt := -1
	offset := dirSize
	for i, tag := range tags {
		b := data[tag]
		if tag == T("head") {
			if len(b) < headCheckSumAdjustmentOffset+4 {
				return nil, errFontFormat("head table too small")
			}
			putU32(b[headCheckSumAdjustmentOffset:], 0)
			headAt = offset
		}
		rec := out[12+16*i:]
		putU32(rec[0:], uint32(tag))
		putU32(rec[4:], Checksum(b))
		putU32(rec[8:], uint32(offset))
		putU32(rec[12:], uint32(len(b)))
		copy(out[offset:], b)
		offset += padded(len(b))
	}
	if headAt >= 0 {
		adj := uint32(checkSumMagic) - Checksum(out)
		putU32(out[headAt+headCheckSumAdjustmentOffset:], adj)
		otf.Head.CheckSumAdjustment = adj
	}
	tracer().Debugf("encoded font with %d tables, %d bytes", numTables, len(out))
	return out, nil
}

// WriteTo encodes the font and writes it to w.
func (otf *Font) WriteTo(w io.Writer) (int64, error) {
	b, err := otf.Encode()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(b)
	return int64(n), err
}

// syncTables collects the current binary data of every table. Modified
// tables are encoded; the result never aliases the font's source bytes for
// table 'head', as its checksum field will be overwritten.
func (otf *Font) syncTables() map[Tag]binarySegm {
	if otf.HMtx != nil && otf.HMtx.modified() {
		hmtx := otf.HMtx.encode()
		otf.HHea.NumberOfHMetrics = otf.HMtx.NumberOfHMetrics
		otf.HHea.AdvanceWidthMax = otf.HMtx.MaxAdvance()
		otf.HHea.dirty = true
		otf.HMtx.data = hmtx
		otf.HMtx.length = uint32(len(hmtx))
		otf.HMtx.dirty = false
	}
	data := make(map[Tag]binarySegm, len(otf.tables))
	for tag, t := range otf.tables {
		if e, ok := t.(encodable); ok && e.modified() {
			data[tag] = e.encode()
			tracer().Debugf("table %s re-encoded, %d bytes", tag, len(data[tag]))
			continue
		}
		b := binarySegm(t.Binary())
		if tag == T("head") {
			b = b.clone()
		}
		data[tag] = b
	}
	return data
}

// Checksum calculates the OpenType checksum of a table or of a whole font:
// the sum of all big-endian uint32 words, with the data padded with zeros
// to a multiple of 4 bytes.
func Checksum(b []byte) uint32 {
	var sum uint32
	n := len(b) &^ 3
	for i := 0; i < n; i += 4 {
		sum += u32(b[i:])
	}
	if rest := len(b) - n; rest > 0 {
		var last [4]byte
		copy(last[:], b[n:])
		sum += u32(last[:])
	}
	return sum
}

func padded(n int) int {
	return (n + 3) &^ 3
}

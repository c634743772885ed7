package otquery

import (
	"encoding/binary"
	"iter"

	"github.com/npillmayer/otfpatch/ot"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/text/encoding/unicode"
)

// PlatformID is the platform of a name record.
type PlatformID uint16

// Platforms of name records. Macintosh names are listed but not decoded.
const (
	PlatformIDUnicode   PlatformID = 0
	PlatformIDMacintosh PlatformID = 1
	PlatformIDWindows   PlatformID = 3
)

// EncodingID is the platform-specific encoding of a name record.
type EncodingID uint16

// Encodings of name records with UTF-16BE strings.
const (
	EncodingIDUnicodeBMP EncodingID = 3 // platform Unicode
	EncodingIDWindowsBMP EncodingID = 1 // platform Windows
)

// NameRecord is an entry of table 'name'. Value is empty for records with an
// encoding we do not decode (e.g. Macintosh Roman or Windows Symbol).
type NameRecord struct {
	Platform PlatformID
	Encoding EncodingID
	Language uint16
	Name     sfnt.NameID
	Value    string
}

// Decoded reports whether the record's string has been decoded.
func (rec NameRecord) Decoded() bool {
	return rec.Value != ""
}

func (rec NameRecord) utf16() bool {
	return (rec.Platform == PlatformIDUnicode && rec.Encoding == EncodingIDUnicodeBMP) ||
		(rec.Platform == PlatformIDWindows && rec.Encoding == EncodingIDWindowsBMP)
}

// NameRecords returns all records of table 'name' in table order. Records
// pointing outside of the string storage are skipped. Returns nil if the font
// has no usable name table.
func NameRecords(otf *ot.Font) []NameRecord {
	if otf == nil {
		return nil
	}
	table := otf.Table(ot.T("name"))
	if table == nil {
		tracer().Debugf("font has no name table")
		return nil
	}
	b := table.Binary()
	if len(b) < 6 {
		tracer().Debugf("name table too short: %d bytes", len(b))
		return nil
	}
	count := int(binary.BigEndian.Uint16(b[2:]))
	storage := int(binary.BigEndian.Uint16(b[4:]))
	if 6+12*count > len(b) || storage > len(b) {
		tracer().Debugf("name table with %d records does not fit into %d bytes", count, len(b))
		return nil
	}
	dec := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
	records := make([]NameRecord, 0, count)
	for i := 0; i < count; i++ {
		r := b[6+12*i:]
		rec := NameRecord{
			Platform: PlatformID(binary.BigEndian.Uint16(r[0:])),
			Encoding: EncodingID(binary.BigEndian.Uint16(r[2:])),
			Language: binary.BigEndian.Uint16(r[4:]),
			Name:     sfnt.NameID(binary.BigEndian.Uint16(r[6:])),
		}
		start := storage + int(binary.BigEndian.Uint16(r[10:]))
		end := start + int(binary.BigEndian.Uint16(r[8:]))
		if end > len(b) {
			continue
		}
		if rec.utf16() {
			if s, err := dec.Bytes(b[start:end]); err == nil {
				rec.Value = string(s)
			}
		}
		records = append(records, rec)
	}
	return records
}

// NamesRange yields `(nameID, value)` pairs for every decoded record of table
// 'name'.
func NamesRange(otf *ot.Font) iter.Seq2[sfnt.NameID, string] {
	records := NameRecords(otf)
	return func(yield func(sfnt.NameID, string) bool) {
		for _, rec := range records {
			if !rec.Decoded() {
				continue
			}
			if !yield(rec.Name, rec.Value) {
				return
			}
		}
	}
}

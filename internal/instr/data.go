package instr

import "github.com/P4UL-M/copper/internal/diagnostics"

// DataWord is a data-segment declaration (spec §4.3): either a single
// VARIABLE or the header of an ARRAY of Length consecutive variables all
// initialized to Value. DataWord carries no opcode prefix of its own —
// its top bit alone (IsArray) discriminates the two layouts.
type DataWord struct {
	IsArray bool
	Name    int // VarId of the base variable
	Length  int // valid when IsArray; number of consecutive VarIds reserved
	Value   int // initial value (Word-width at runtime, 10-bit on the wire)
}

// Encode packs a DataWord per spec §4.3:
//
//	VARIABLE: 0 || name[10] || value[10] || 0[11]
//	ARRAY:    1 || name[10] || length[10] || value[10] || 0[1]
func (d DataWord) Encode() uint32 {
	if d.IsArray {
		return packBits(32, f(1, 1), f(10, uint32(d.Name)), f(10, uint32(d.Length)), f(10, uint32(d.Value)), f(1, 0))
	}
	return packBits(32, f(1, 0), f(10, uint32(d.Name)), f(10, uint32(d.Value)), f(11, 0))
}

// DecodeData is the inverse of Encode.
func DecodeData(word uint32) DataWord {
	isArray := unpackBits(word, 32, 1)[0] == 1
	if isArray {
		fields := unpackBits(word, 31, 10, 10, 10)
		return DataWord{IsArray: true, Name: int(fields[0]), Length: int(fields[1]), Value: int(fields[2])}
	}
	fields := unpackBits(word, 31, 10, 10)
	return DataWord{IsArray: false, Name: int(fields[0]), Value: int(fields[1])}
}

// Section distinguishes the DATA and CODE section markers of spec §4.3.
type Section uint8

const (
	SectionData Section = 0b00
	SectionCode Section = 0b01
)

// SectionMarker is the sentinel word that opens a section (spec §4.3 /
// §6): top 5 bits 11111, followed by a 2-bit category tag, zero-padded.
type SectionMarker struct {
	Section Section
}

func (m SectionMarker) Encode() uint32 {
	return packBits(32, f(5, uint32(sectionPrefix)), f(2, uint32(m.Section)), f(25, 0))
}

// IsSectionMarker reports whether word begins with the section-marker
// prefix, and if so decodes it.
func IsSectionMarker(word uint32, loc diagnostics.Location) (SectionMarker, bool, error) {
	if unpackOp(word) != sectionPrefix {
		return SectionMarker{}, false, nil
	}
	fields := unpackBits(word, 27, 2)
	switch Section(fields[0]) {
	case SectionData, SectionCode:
		return SectionMarker{Section: Section(fields[0])}, true, nil
	default:
		return SectionMarker{}, true, malformed(loc, "unknown section category %02b", fields[0])
	}
}

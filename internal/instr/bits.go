package instr

// packBits assembles a totalWidth-bit value (right-aligned in the returned
// uint32) from an ordered list of MSB-first fields. The fields must sum to
// totalWidth; every 32-bit word format in spec §4.3 — instructions, data
// words, section markers — is built from this one routine so the bit
// layout table stays the single source of truth (spec §9).
func packBits(totalWidth int, fields ...field) uint32 {
	word := uint32(0)
	shift := totalWidth
	for _, fl := range fields {
		shift -= fl.width
		mask := uint32(1)<<uint(fl.width) - 1
		word |= (fl.value & mask) << uint(shift)
	}
	return word
}

// unpackBits is the inverse of packBits: it slices totalWidth bits (taken
// from the low totalWidth bits of word) into fields of the given widths,
// in the same MSB-first order packBits used to assemble them.
func unpackBits(word uint32, totalWidth int, widths ...int) []uint32 {
	vals := make([]uint32, len(widths))
	shift := totalWidth
	for i, w := range widths {
		shift -= w
		mask := uint32(1)<<uint(w) - 1
		vals[i] = (word >> uint(shift)) & mask
	}
	return vals
}

// Package exporter implements the Exporter of spec §4.7: it replays a
// Loader Result's section Blocks and serializes one 32-bit big-endian
// word per section marker, data declaration, and code instruction.
package exporter

import (
	"encoding/binary"
	"io"

	"github.com/P4UL-M/copper/internal/instr"
	"github.com/P4UL-M/copper/internal/loader"
)

// Export writes res as a concatenation of big-endian 32-bit words — a
// legal ".bin" file (spec §6) — to w.
func Export(res *loader.Result, w io.Writer) error {
	for _, block := range res.Blocks {
		if err := writeWord(w, instr.SectionMarker{Section: block.Section}.Encode()); err != nil {
			return err
		}
		for _, d := range block.Data {
			dw := instr.DataWord{IsArray: d.Array, Name: d.Base, Length: d.Length, Value: int(d.Value)}
			if err := writeWord(w, dw.Encode()); err != nil {
				return err
			}
		}
		for _, ins := range block.Instrs {
			word, err := ins.Encode()
			if err != nil {
				return err
			}
			if err := writeWord(w, word); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeWord(w io.Writer, word uint32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], word)
	_, err := w.Write(buf[:])
	return err
}

package huffarc

import (
	"bytes"
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"
)

// Packed is a Huffman-coded bitstream.  Data holds every complete group of
// eight bits, first bit most significant; Tail holds the 0 to 7 bits left
// over at the end.
type Packed struct {
	Data []byte
	Tail Code
}

// BitLen returns the total number of bits in the stream.
func (p Packed) BitLen() uint64 {
	return uint64(len(p.Data))*8 + uint64(p.Tail.Size)
}

// Dump writes a programmer-readable debugging dump of the stream to the
// given writer.
func (p Packed) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Packed{\n")
	fmt.Fprintf(&buf, "\tBitLen() = %d\n", p.BitLen())
	for _, b := range p.Data {
		fmt.Fprintf(&buf, "\t%08b\n", b)
	}
	if p.Tail.Size != 0 {
		fmt.Fprintf(&buf, "\tTail = %s\n", p.Tail)
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// Encoder packs byte sequences using a fixed CodeTable.
type Encoder struct {
	table CodeTable
}

// Init initializes this Encoder.  The table must already be a valid prefix
// code; see CodeTable.Validate.
func (e *Encoder) Init(table CodeTable) {
	*e = Encoder{table: table}
}

// Table returns the CodeTable used by this Encoder.
func (e Encoder) Table() CodeTable {
	return e.table
}

// Encode returns the Code for one byte value.
func (e Encoder) Encode(b byte) Code {
	return e.table[b]
}

// Pack concatenates the code of each input byte, in order.  It fails with
// ErrNoCode if some input byte has no code.
func (e Encoder) Pack(data []byte) (Packed, error) {
	var w bitWriter
	w.out = make([]byte, 0, len(data)/2)
	for index, b := range data {
		hc := e.table[b]
		if hc.Size == 0 {
			return Packed{}, fmt.Errorf("byte value %d at offset %d: %w", b, index, ErrNoCode)
		}
		w.writeCode(hc)
	}
	return w.finish(), nil
}

// Pack is a convenience function that packs data with a one-off Encoder.
func Pack(data []byte, table CodeTable) (Packed, error) {
	var e Encoder
	e.Init(table)
	return e.Pack(data)
}

// type bitWriter {{{

// bitWriter accumulates bits MSB-first and flushes every complete byte.
// Between calls, fewer than 8 bits are pending.
type bitWriter struct {
	out   []byte
	bits  uint64
	nbits uint
}

func (w *bitWriter) writeCode(hc Code) {
	size := uint(hc.Size)
	for size != 0 {
		// At most 7 bits are pending, so 56 more always fit.
		n := min(size, 56)
		chunk := (hc.Bits >> (size - n)) & (uint64(1)<<n - 1)
		w.bits = w.bits<<n | chunk
		w.nbits += n
		size -= n

		for w.nbits >= 8 {
			w.nbits -= 8
			w.out = append(w.out, byte(w.bits>>w.nbits))
		}
		w.bits &= uint64(1)<<w.nbits - 1
	}
}

func (w *bitWriter) finish() Packed {
	assert.Assertf(w.nbits < 8, "%d bits pending, expected fewer than 8", w.nbits)
	return Packed{
		Data: w.out,
		Tail: MakeCode(byte(w.nbits), w.bits),
	}
}

// }}}

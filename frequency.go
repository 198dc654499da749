package huffarc

import (
	"bytes"
	"fmt"
	"io"
)

// FrequencyTable holds the number of occurrences of each byte value.
type FrequencyTable [256]uint64

// Count builds the FrequencyTable for a plain byte sequence.
func Count(data []byte) FrequencyTable {
	var freq FrequencyTable
	for _, b := range data {
		freq[b]++
	}
	return freq
}

// CountStream builds the FrequencyTable for a concatenated stream.
// Sentinels, and any other Symbol that is not a byte value, are skipped.
func CountStream(stream []Symbol) FrequencyTable {
	var freq FrequencyTable
	for _, s := range stream {
		if !s.IsByte() {
			continue
		}
		freq[s]++
	}
	return freq
}

// Used returns the number of byte values with a non-zero frequency.
func (freq *FrequencyTable) Used() int {
	var n int
	for _, f := range freq {
		if f != 0 {
			n++
		}
	}
	return n
}

// Total returns the sum of all frequencies, saturating at math.MaxUint64.
func (freq *FrequencyTable) Total() uint64 {
	var sum uint64
	for _, f := range freq {
		sum = addSaturating(sum, f)
	}
	return sum
}

// Symbols returns the byte values with a non-zero frequency, in ascending
// order.
func (freq *FrequencyTable) Symbols() []byte {
	out := make([]byte, 0, freq.Used())
	for value, f := range freq {
		if f != 0 {
			out = append(out, byte(value))
		}
	}
	return out
}

// Dump writes a programmer-readable debugging dump of the table to the given
// writer.  Byte values with a frequency of zero are omitted.
func (freq *FrequencyTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("FrequencyTable{\n")
	fmt.Fprintf(&buf, "\tUsed() = %d\n", freq.Used())
	fmt.Fprintf(&buf, "\tTotal() = %d\n", freq.Total())
	for value, f := range freq {
		if f != 0 {
			fmt.Fprintf(&buf, "\t[%d] = %d\n", value, f)
		}
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

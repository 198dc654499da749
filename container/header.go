package container

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/chronos-tachyon/huffarc"
)

const (
	// FileExt is the extension of a single-file artifact.
	FileExt = ".hmc"

	// FolderExt is the extension of a folder artifact.
	FolderExt = ".hmf"

	// FileTerminator ends the code table of a single-file artifact.
	FileTerminator = "--"

	// FolderTerminator ends the code table of a folder artifact, and follows
	// every member of a folder artifact.
	FolderTerminator = "=="

	// EscapeMarker separates the packed bytes of a payload from its literal
	// tail bits.
	EscapeMarker = "**"
)

func writeLine(w *bufio.Writer, line string) {
	w.WriteString(line)
	w.WriteByte('\n')
}

// writeTable writes one "<byteValue> <frequency> <code>" line per used byte
// value, in ascending order.
func writeTable(w *bufio.Writer, freq huffarc.FrequencyTable, codes huffarc.CodeTable) {
	var scratch []byte
	for _, value := range freq.Symbols() {
		scratch = strconv.AppendUint(scratch[:0], uint64(value), 10)
		scratch = append(scratch, ' ')
		scratch = strconv.AppendUint(scratch, freq[value], 10)
		scratch = append(scratch, ' ')
		scratch = append(scratch, codes[value].Text()...)
		scratch = append(scratch, '\n')
		w.Write(scratch)
	}
}

func writePayload(w *bufio.Writer, p huffarc.Packed) {
	w.Write(p.Data)
	if p.Tail.Size != 0 {
		w.WriteString(EscapeMarker)
		w.WriteString(p.Tail.Text())
	}
}

// reader walks an artifact held in memory.  Every read is bounds-checked
// against data.
type reader struct {
	data []byte
	off  int
	line int
}

// readLine returns the next line without its line ending.  It returns false
// if no complete line remains.
func (r *reader) readLine() (string, bool) {
	rest := r.data[r.off:]
	i := bytes.IndexByte(rest, '\n')
	if i < 0 {
		return "", false
	}
	r.off += i + 1
	r.line++
	return string(bytes.TrimSuffix(rest[:i], []byte{'\r'})), true
}

func (r *reader) expectLine(what string) (string, error) {
	line, ok := r.readLine()
	if !ok {
		return "", malformed("line %d: missing %s", r.line+1, what)
	}
	return line, nil
}

func (r *reader) readName(what string) (string, string, error) {
	name, err := r.expectLine(what + " name")
	if err != nil {
		return "", "", err
	}
	ext, err := r.expectLine(what + " extension")
	if err != nil {
		return "", "", err
	}
	if err := checkName(name, ext); err != nil {
		return "", "", fmt.Errorf("%w: line %d: %w", ErrMalformed, r.line, err)
	}
	return name, ext, nil
}

// readTable parses code table lines up to and including the terminator.
func (r *reader) readTable(terminator string) (huffarc.FrequencyTable, huffarc.CodeTable, error) {
	var freq huffarc.FrequencyTable
	var codes huffarc.CodeTable
	last := -1
	for {
		line, ok := r.readLine()
		if !ok {
			return freq, codes, malformed("missing %q header terminator", terminator)
		}
		if line == terminator {
			break
		}

		fields := strings.Split(line, " ")
		if len(fields) != 3 {
			return freq, codes, malformed("line %d: expected 3 fields, got %d", r.line, len(fields))
		}
		value, err := strconv.ParseUint(fields[0], 10, 8)
		if err != nil {
			return freq, codes, malformed("line %d: byte value %q: %v", r.line, fields[0], err)
		}
		if int(value) <= last {
			return freq, codes, malformed("line %d: byte value %d is not in ascending order", r.line, value)
		}
		f, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return freq, codes, malformed("line %d: frequency %q: %v", r.line, fields[1], err)
		}
		if f == 0 {
			return freq, codes, malformed("line %d: frequency of byte value %d is zero", r.line, value)
		}
		hc, err := huffarc.ParseCode(fields[2])
		if err != nil {
			return freq, codes, malformed("line %d: %v", r.line, err)
		}

		freq[value] = f
		codes[value] = hc
		last = int(value)
	}

	if err := codes.Validate(); err != nil {
		return freq, codes, fmt.Errorf("%w: code table: %w", ErrMalformed, err)
	}
	return freq, codes, nil
}

// readPayload reads exactly bits bits: bits/8 packed bytes, then, if a
// remainder exists, the escape marker and that many literal tail digits.
func (r *reader) readPayload(bits uint64, what string) (huffarc.Packed, error) {
	remain := uint64(len(r.data) - r.off)
	nbytes := bits / 8
	if nbytes > remain {
		return huffarc.Packed{}, malformed("%s: payload needs %d bytes at offset %d, only %d remain", what, nbytes, r.off, remain)
	}

	end := r.off + int(nbytes)
	p := huffarc.Packed{Data: bytes.Clone(r.data[r.off:end])}
	r.off = end

	tailSize := int(bits % 8)
	if tailSize == 0 {
		return p, nil
	}

	if !bytes.HasPrefix(r.data[r.off:], []byte(EscapeMarker)) {
		return huffarc.Packed{}, malformed("%s: missing %q escape marker at offset %d", what, EscapeMarker, r.off)
	}
	r.off += len(EscapeMarker)

	if len(r.data)-r.off < tailSize {
		return huffarc.Packed{}, malformed("%s: literal tail needs %d bits at offset %d", what, tailSize, r.off)
	}
	var tail huffarc.Code
	for _, ch := range r.data[r.off : r.off+tailSize] {
		switch ch {
		case '0':
			tail = tail.Append(0)
		case '1':
			tail = tail.Append(1)
		default:
			return huffarc.Packed{}, malformed("%s: literal tail contains %q", what, ch)
		}
	}
	r.off += tailSize
	p.Tail = tail
	return p, nil
}

func (r *reader) expectEOF() error {
	if extra := len(r.data) - r.off; extra != 0 {
		return malformed("%d unexpected bytes after payload at offset %d", extra, r.off)
	}
	return nil
}

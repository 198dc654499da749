package container

import (
	"bufio"
	"fmt"
	"io"

	"github.com/chronos-tachyon/huffarc"
)

// FileArtifact is the decoded form of a single-file artifact.
type FileArtifact struct {
	Name    string
	Ext     string
	Freq    huffarc.FrequencyTable
	Codes   huffarc.CodeTable
	Payload huffarc.Packed
}

// EncodeFile runs the whole compression pipeline over one file's contents:
// count, build the tree, generate codes, pack.
func EncodeFile(name, ext string, data []byte) (*FileArtifact, error) {
	if err := checkName(name, ext); err != nil {
		return nil, err
	}

	freq := huffarc.Count(data)
	codes, err := huffarc.NewCodeTable(freq)
	if err != nil {
		return nil, err
	}
	payload, err := huffarc.Pack(data, codes)
	if err != nil {
		return nil, err
	}
	return &FileArtifact{
		Name:    name,
		Ext:     ext,
		Freq:    freq,
		Codes:   codes,
		Payload: payload,
	}, nil
}

// Decode unpacks the payload.  The result must hold exactly as many bytes
// as the frequency table counts.
func (a *FileArtifact) Decode() ([]byte, error) {
	data, err := huffarc.Unpack(a.Payload, a.Codes)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if total := a.Freq.Total(); uint64(len(data)) != total {
		return nil, malformed("payload decodes to %d bytes, header counts %d", len(data), total)
	}
	return data, nil
}

// FileName returns the original file name, extension included.
func (a *FileArtifact) FileName() string {
	return a.Name + a.Ext
}

// WriteFile writes a single-file artifact.
func WriteFile(w io.Writer, a *FileArtifact) error {
	if err := checkName(a.Name, a.Ext); err != nil {
		return err
	}
	if err := a.Codes.Covers(a.Freq); err != nil {
		return err
	}
	if bits, expect := a.Payload.BitLen(), a.Codes.EncodedBits(a.Freq); bits != expect {
		return fmt.Errorf("payload holds %d bits, code table accounts for %d", bits, expect)
	}

	bw := bufio.NewWriter(w)
	writeLine(bw, a.Name)
	writeLine(bw, a.Ext)
	writeTable(bw, a.Freq, a.Codes)
	writeLine(bw, FileTerminator)
	writePayload(bw, a.Payload)
	return bw.Flush()
}

// ReadFile parses a single-file artifact.  The header is parsed in full
// before any payload byte is looked at.
func ReadFile(data []byte) (*FileArtifact, error) {
	r := &reader{data: data}

	name, ext, err := r.readName("file")
	if err != nil {
		return nil, err
	}
	freq, codes, err := r.readTable(FileTerminator)
	if err != nil {
		return nil, err
	}
	payload, err := r.readPayload(codes.EncodedBits(freq), "file")
	if err != nil {
		return nil, err
	}
	if err := r.expectEOF(); err != nil {
		return nil, err
	}

	return &FileArtifact{
		Name:    name,
		Ext:     ext,
		Freq:    freq,
		Codes:   codes,
		Payload: payload,
	}, nil
}

package archiver

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"path/filepath"

	"github.com/zeebo/blake3"

	"github.com/chronos-tachyon/huffarc"
	"github.com/chronos-tachyon/huffarc/container"
)

// Kind identifies the layout of an artifact.
type Kind byte

const (
	FileKind Kind = iota
	FolderKind
)

var kindNames = [...]string{
	FileKind:   "file",
	FolderKind: "folder",
}

// String returns "file" or "folder".
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", byte(k))
}

// KindOf picks the artifact layout from a path's extension.
func KindOf(path string) (Kind, error) {
	switch filepath.Ext(path) {
	case container.FileExt:
		return FileKind, nil
	case container.FolderExt:
		return FolderKind, nil
	default:
		return 0, fmt.Errorf("%s: unknown artifact extension, want %s or %s", path, container.FileExt, container.FolderExt)
	}
}

// Report describes the contents of one artifact.
type Report struct {
	Path    string
	Kind    Kind
	Name    string
	Freq    huffarc.FrequencyTable
	Codes   huffarc.CodeTable
	Entries []ReportEntry
}

// ReportEntry describes one stored file.  A single-file artifact has exactly
// one entry.
type ReportEntry struct {
	FileName    string
	PayloadBits uint64
	Size        int
	Digest      [32]byte
}

// Inspect reads an artifact, decodes everything in it, and reports on what
// it holds.  Nothing is written.
func (a *Archiver) Inspect(artifactPath string) (*Report, error) {
	kind, err := KindOf(artifactPath)
	if err != nil {
		return nil, err
	}

	r := &Report{Path: artifactPath, Kind: kind}
	switch kind {
	case FileKind:
		artifact, err := a.readFile(artifactPath)
		if err != nil {
			return nil, err
		}
		data, err := artifact.Decode()
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", artifactPath, err)
		}
		r.Name = artifact.FileName()
		r.Freq = artifact.Freq
		r.Codes = artifact.Codes
		r.Entries = []ReportEntry{newEntry(artifact.FileName(), artifact.Payload, data)}

	case FolderKind:
		artifact, err := a.readFolder(artifactPath)
		if err != nil {
			return nil, err
		}
		contents, err := artifact.Decode()
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", artifactPath, err)
		}
		r.Name = artifact.Name
		r.Freq = artifact.Freq
		r.Codes = artifact.Codes
		r.Entries = make([]ReportEntry, len(artifact.Members))
		for i := range artifact.Members {
			m := &artifact.Members[i]
			r.Entries[i] = newEntry(m.FileName(), m.Payload, contents[i])
		}
	}

	a.logger().Info("inspected artifact",
		"artifact", artifactPath,
		"kind", kind.String(),
		"entries", len(r.Entries),
		"symbols", r.Codes.Used())
	return r, nil
}

func newEntry(fileName string, payload huffarc.Packed, data []byte) ReportEntry {
	return ReportEntry{
		FileName:    fileName,
		PayloadBits: payload.BitLen(),
		Size:        len(data),
		Digest:      blake3.Sum256(data),
	}
}

// WriteTo writes a human-readable form of the report.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	bw := bufio.NewWriter(cw)

	fmt.Fprintf(bw, "artifact: %s\n", r.Path)
	fmt.Fprintf(bw, "kind:     %s\n", r.Kind)
	fmt.Fprintf(bw, "name:     %q\n", r.Name)
	fmt.Fprintf(bw, "symbols:  %d (code sizes %d..%d)\n", r.Codes.Used(), r.Codes.MinSize(), r.Codes.MaxSize())
	fmt.Fprintf(bw, "bytes:    %d\n", r.Freq.Total())
	bw.WriteString("\n")
	for _, e := range r.Entries {
		fmt.Fprintf(bw, "%s  %8d bytes  %10d bits  %q\n",
			hex.EncodeToString(e.Digest[:]), e.Size, e.PayloadBits, e.FileName)
	}
	bw.WriteString("\n")
	r.Codes.Dump(bw)

	err := bw.Flush()
	return cw.n, err
}

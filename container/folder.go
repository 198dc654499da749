package container

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/chronos-tachyon/huffarc"
)

// maxPreallocMembers caps how many members ReadFolder allocates room for
// before it has seen them.
const maxPreallocMembers = 1024

// Member is one file of a folder artifact.
type Member struct {
	Name    string
	Ext     string
	Payload huffarc.Packed
}

// FileName returns the member's file name, extension included.
func (m *Member) FileName() string {
	return m.Name + m.Ext
}

// MemberSource is one input file of EncodeFolder.
type MemberSource struct {
	Name string
	Ext  string
	Data []byte
}

// FolderArtifact is the decoded form of a folder artifact.  All members share
// one code table.
type FolderArtifact struct {
	Name    string
	Freq    huffarc.FrequencyTable
	Codes   huffarc.CodeTable
	Members []Member
}

// EncodeFolder builds one code table over the sentinel-separated
// concatenation of every member, then packs each member on its own.
func EncodeFolder(name string, sources []MemberSource) (*FolderArtifact, error) {
	if err := checkName(name, ""); err != nil {
		return nil, err
	}

	contents := make([][]byte, len(sources))
	for i, src := range sources {
		if err := checkName(src.Name, src.Ext); err != nil {
			return nil, fmt.Errorf("member %d: %w", i, err)
		}
		contents[i] = src.Data
	}

	freq := huffarc.CountStream(huffarc.Concat(contents...))
	codes, err := huffarc.NewCodeTable(freq)
	if err != nil {
		return nil, err
	}

	var e huffarc.Encoder
	e.Init(codes)
	members := make([]Member, len(sources))
	for i, src := range sources {
		payload, err := e.Pack(src.Data)
		if err != nil {
			return nil, fmt.Errorf("member %q: %w", src.Name+src.Ext, err)
		}
		members[i] = Member{Name: src.Name, Ext: src.Ext, Payload: payload}
	}

	return &FolderArtifact{
		Name:    name,
		Freq:    freq,
		Codes:   codes,
		Members: members,
	}, nil
}

// Decode unpacks every member, in order.  Together the members must hold
// exactly as many bytes as the shared frequency table counts.
func (a *FolderArtifact) Decode() ([][]byte, error) {
	d, err := huffarc.NewDecoder(a.Codes)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	out := make([][]byte, len(a.Members))
	var total uint64
	for i := range a.Members {
		m := &a.Members[i]
		data, err := d.Decode(m.Payload)
		if err != nil {
			return nil, fmt.Errorf("%w: member %q: %w", ErrMalformed, m.FileName(), err)
		}
		out[i] = data
		total += uint64(len(data))
	}

	if expect := a.Freq.Total(); total != expect {
		return nil, malformed("members decode to %d bytes, header counts %d", total, expect)
	}
	return out, nil
}

// WriteFolder writes a folder artifact.
func WriteFolder(w io.Writer, a *FolderArtifact) error {
	if err := checkName(a.Name, ""); err != nil {
		return err
	}
	if err := a.Codes.Covers(a.Freq); err != nil {
		return err
	}

	var bits uint64
	for i := range a.Members {
		m := &a.Members[i]
		if err := checkName(m.Name, m.Ext); err != nil {
			return fmt.Errorf("member %d: %w", i, err)
		}
		bits += m.Payload.BitLen()
	}
	if expect := a.Codes.EncodedBits(a.Freq); bits != expect {
		return fmt.Errorf("members hold %d bits, code table accounts for %d", bits, expect)
	}

	bw := bufio.NewWriter(w)
	writeLine(bw, a.Name)
	writeLine(bw, strconv.Itoa(len(a.Members)))
	writeTable(bw, a.Freq, a.Codes)
	writeLine(bw, FolderTerminator)
	for i := range a.Members {
		m := &a.Members[i]
		writeLine(bw, m.Name)
		writeLine(bw, m.Ext)
		writeLine(bw, strconv.FormatUint(m.Payload.BitLen(), 10))
		writePayload(bw, m.Payload)
		bw.WriteByte('\n')
		writeLine(bw, FolderTerminator)
	}
	return bw.Flush()
}

// ReadFolder parses a folder artifact.  The shared header is parsed once,
// then each member is read in order and its delimiters are checked.
func ReadFolder(data []byte) (*FolderArtifact, error) {
	r := &reader{data: data}

	name, err := r.expectLine("folder name")
	if err != nil {
		return nil, err
	}
	if err := checkName(name, ""); err != nil {
		return nil, fmt.Errorf("%w: line %d: %w", ErrMalformed, r.line, err)
	}

	countLine, err := r.expectLine("member count")
	if err != nil {
		return nil, err
	}
	count, err := strconv.Atoi(countLine)
	if err != nil || count < 0 {
		return nil, malformed("line %d: invalid member count %q", r.line, countLine)
	}

	freq, codes, err := r.readTable(FolderTerminator)
	if err != nil {
		return nil, err
	}

	members := make([]Member, 0, min(count, maxPreallocMembers))
	var bits uint64
	for i := 0; i < count; i++ {
		what := fmt.Sprintf("member %d", i)
		memberName, memberExt, err := r.readName(what)
		if err != nil {
			return nil, err
		}

		bitsLine, err := r.expectLine(what + " bit count")
		if err != nil {
			return nil, err
		}
		memberBits, err := strconv.ParseUint(bitsLine, 10, 64)
		if err != nil {
			return nil, malformed("line %d: invalid bit count %q", r.line, bitsLine)
		}

		payload, err := r.readPayload(memberBits, what)
		if err != nil {
			return nil, err
		}
		if line, ok := r.readLine(); !ok || line != "" {
			return nil, malformed("%s: missing line break after payload at offset %d", what, r.off)
		}
		if line, ok := r.readLine(); !ok || line != FolderTerminator {
			return nil, malformed("%s: missing %q delimiter", what, FolderTerminator)
		}

		members = append(members, Member{Name: memberName, Ext: memberExt, Payload: payload})
		bits += memberBits
	}
	if err := r.expectEOF(); err != nil {
		return nil, err
	}

	if expect := codes.EncodedBits(freq); bits != expect {
		return nil, malformed("members hold %d bits, code table accounts for %d", bits, expect)
	}

	return &FolderArtifact{
		Name:    name,
		Freq:    freq,
		Codes:   codes,
		Members: members,
	}, nil
}

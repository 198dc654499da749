package container

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func encodeFileArtifact(t *testing.T, name, ext string, data []byte) []byte {
	t.Helper()
	a, err := EncodeFile(name, ext, data)
	if err != nil {
		t.Fatalf("EncodeFile failed: %v", err)
	}
	var buf bytes.Buffer
	if err := WriteFile(&buf, a); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return buf.Bytes()
}

func TestWriteFile_Layout(t *testing.T) {
	actual := encodeFileArtifact(t, "data", ".txt", []byte("AAABC"))

	expect := strings.Join([]string{
		"data\n",
		".txt\n",
		"65 3 1\n",
		"66 1 00\n",
		"67 1 01\n",
		"--\n",
		"**1110001",
	}, "")
	if string(actual) != expect {
		t.Errorf("wrong output:\n\texpect: %q\n\tactual: %q", expect, actual)
	}
}

func TestWriteFile_Empty(t *testing.T) {
	actual := encodeFileArtifact(t, "empty", "", nil)
	if expect := "empty\n\n--\n"; string(actual) != expect {
		t.Errorf("wrong output:\n\texpect: %q\n\tactual: %q", expect, actual)
	}

	a, err := ReadFile(actual)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	data, err := a.Decode()
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("expected no bytes, got %d", len(data))
	}
}

func TestFile_RoundTrip(t *testing.T) {
	all := make([]byte, 256)
	for i := range all {
		all[i] = byte(i)
	}

	testData := map[string][]byte{
		"empty":     {},
		"single":    bytes.Repeat([]byte{'*'}, 13),
		"aligned":   bytes.Repeat([]byte{'-'}, 16),
		"all-256":   all,
		"markers":   []byte("**\n--\n==\r\n**0101"),
		"scenario":  []byte("AAABC"),
		"text":      []byte(strings.Repeat("it was the best of times, it was the worst of times\n", 20)),
		"binary-ff": bytes.Repeat([]byte{0xff, 0x00, 0x2a, 0x2a}, 100),
	}

	for name, input := range testData {
		t.Run(name, func(t *testing.T) {
			raw := encodeFileArtifact(t, "sample", ".bin", input)
			a, err := ReadFile(raw)
			if err != nil {
				t.Fatalf("ReadFile failed: %v", err)
			}
			if a.FileName() != "sample.bin" {
				t.Errorf("wrong file name %q", a.FileName())
			}
			actual, err := a.Decode()
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if !bytes.Equal(input, actual) {
				t.Errorf("round trip mismatch:\n\texpect: %q\n\tactual: %q", input, actual)
			}
		})
	}
}

func TestReadFile_CRLF(t *testing.T) {
	raw := "data\r\n.txt\r\n65 3 1\r\n66 1 00\r\n67 1 01\r\n--\r\n**1110001"
	a, err := ReadFile([]byte(raw))
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	actual, err := a.Decode()
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if string(actual) != "AAABC" {
		t.Errorf("expected %q, got %q", "AAABC", actual)
	}
}

func TestReadFile_Malformed(t *testing.T) {
	type testRow struct {
		name  string
		input string
	}

	testData := [...]testRow{
		{"no-name", ""},
		{"no-extension", "data\n"},
		{"no-terminator", "data\n.txt\n65 3 1\n"},
		{"two-fields", "data\n.txt\n65 3\n--\n"},
		{"four-fields", "data\n.txt\n65 3 1 1\n--\n"},
		{"value-out-of-range", "data\n.txt\n256 1 0\n--\n**0"},
		{"not-ascending", "data\n.txt\n66 1 0\n65 1 1\n--\n**01"},
		{"zero-frequency", "data\n.txt\n65 0 0\n--\n"},
		{"bad-code", "data\n.txt\n65 1 2\n--\n**0"},
		{"not-prefix-free", "data\n.txt\n65 1 0\n66 1 01\n--\n**001"},
		{"missing-marker", "data\n.txt\n65 3 1\n66 1 00\n67 1 01\n--\n1110001"},
		{"short-tail", "data\n.txt\n65 3 1\n66 1 00\n67 1 01\n--\n**111000"},
		{"bad-tail-digit", "data\n.txt\n65 3 1\n66 1 00\n67 1 01\n--\n**111000x"},
		{"trailing-bytes", "data\n.txt\n65 3 1\n66 1 00\n67 1 01\n--\n**1110001\n"},
		{"short-payload", "data\n.txt\n65 16 0\n--\n\x00"},
		{"path-in-name", "../etc\n.txt\n--\n"},
		{"mid-code", "data\n.txt\n65 1 0\n66 1 10\n67 1 11\n--\n**11111"},
	}

	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			a, err := ReadFile([]byte(row.input))
			if err == nil {
				_, err = a.Decode()
			}
			if !errors.Is(err, ErrMalformed) {
				t.Errorf("expected ErrMalformed, got %v", err)
			}
		})
	}
}

func TestWriteFile_InvalidName(t *testing.T) {
	for _, name := range []string{"", "a\nb", "dir/file", ".."} {
		if _, err := EncodeFile(name, "", []byte("x")); !errors.Is(err, ErrInvalidName) {
			t.Errorf("EncodeFile(%q): expected ErrInvalidName, got %v", name, err)
		}
	}
}

func TestSplitName(t *testing.T) {
	type testRow struct {
		input string
		name  string
		ext   string
	}

	testData := [...]testRow{
		{"report.txt", "report", ".txt"},
		{"archive.tar.gz", "archive.tar", ".gz"},
		{"README", "README", ""},
		{".bashrc", "", ".bashrc"},
		{"trailing.", "trailing", "."},
	}
	for _, row := range testData {
		t.Run(row.input, func(t *testing.T) {
			name, ext := SplitName(row.input)
			if name != row.name || ext != row.ext {
				t.Errorf("expected (%q, %q), got (%q, %q)", row.name, row.ext, name, ext)
			}
		})
	}
}

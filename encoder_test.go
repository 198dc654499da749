package huffarc

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func makeTestTable() CodeTable {
	var freq FrequencyTable
	copy(freq[:], []uint64{5, 9, 12, 13, 16, 45})
	table, err := NewCodeTable(freq)
	if err != nil {
		panic(err)
	}
	return table
}

func TestCodeTable_Dump(t *testing.T) {
	table := makeTestTable()

	expectDump := strings.Join([]string{
		"CodeTable{\n",
		"\tMinSize() = 1\n",
		"\tMaxSize() = 4\n",
		"\tEncode(0) = \"1100\"\n",
		"\tEncode(1) = \"1101\"\n",
		"\tEncode(2) = \"100\"\n",
		"\tEncode(3) = \"101\"\n",
		"\tEncode(4) = \"111\"\n",
		"\tEncode(5) = \"0\"\n",
		"}\n",
	}, "")

	var buf strings.Builder
	_, _ = table.Dump(&buf)
	actualDump := buf.String()

	if expectDump != actualDump {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expectDump, actualDump)
	}
}

func TestEncoder_Pack(t *testing.T) {
	type testRow struct {
		name   string
		input  []byte
		expect Packed
	}

	// "AAABC" with A=1, B=00, C=01 packs to 1110001: no whole byte, and a
	// seven-bit tail.
	var abc FrequencyTable
	abc['A'], abc['B'], abc['C'] = 3, 1, 1

	testData := [...]testRow{
		{
			name:   "empty",
			input:  []byte{},
			expect: Packed{Data: []byte{}},
		},
		{
			name:   "AAABC",
			input:  []byte("AAABC"),
			expect: Packed{Data: []byte{}, Tail: MakeCode(7, 0x71)},
		},
		{
			name:   "AAABCAAABC",
			input:  []byte("AAABCAAABC"),
			expect: Packed{Data: []byte{0xe3}, Tail: MakeCode(6, 0x31)},
		},
		{
			name:   "CCCCCCCCC",
			input:  []byte("CCCCCCCCC"),
			expect: Packed{Data: []byte{0x55, 0x55}, Tail: MakeCode(2, 0x1)},
		},
	}

	table, err := NewCodeTable(abc)
	if err != nil {
		t.Fatalf("NewCodeTable failed: %v", err)
	}

	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			actual, err := Pack(row.input, table)
			if err != nil {
				t.Fatalf("Pack failed: %v", err)
			}
			if !bytes.Equal(row.expect.Data, actual.Data) {
				t.Errorf("wrong data:\n\texpect: %x\n\tactual: %x", row.expect.Data, actual.Data)
			}
			if row.expect.Tail != actual.Tail {
				t.Errorf("wrong tail:\n\texpect: %s\n\tactual: %s", row.expect.Tail, actual.Tail)
			}
		})
	}
}

func TestEncoder_PackNoCode(t *testing.T) {
	table, err := NewCodeTable(Count([]byte("abc")))
	if err != nil {
		t.Fatalf("NewCodeTable failed: %v", err)
	}
	_, err = Pack([]byte("abcd"), table)
	if !errors.Is(err, ErrNoCode) {
		t.Errorf("expected ErrNoCode, got %v", err)
	}
}

func TestEncoder_PackSingleSymbol(t *testing.T) {
	input := bytes.Repeat([]byte{'z'}, 10)
	table, err := NewCodeTable(Count(input))
	if err != nil {
		t.Fatalf("NewCodeTable failed: %v", err)
	}
	if expect := MakeCode(1, 0); table['z'] != expect {
		t.Fatalf("wrong code: expected %s, got %s", expect, table['z'])
	}

	p, err := Pack(input, table)
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}
	if !bytes.Equal(p.Data, []byte{0x00}) {
		t.Errorf("wrong data: %x", p.Data)
	}
	if expect := MakeCode(2, 0); p.Tail != expect {
		t.Errorf("wrong tail: expected %s, got %s", expect, p.Tail)
	}
}

func TestEncoder_PackLongCodes(t *testing.T) {
	// Fibonacci frequencies produce a maximally unbalanced tree, so the
	// longest codes here are far wider than one byte.
	var freq FrequencyTable
	a, b := uint64(1), uint64(1)
	for value := 0; value < 40; value++ {
		freq[value] = a
		a, b = b, a+b
	}
	table, err := NewCodeTable(freq)
	if err != nil {
		t.Fatalf("NewCodeTable failed: %v", err)
	}
	if table.MaxSize() != 39 {
		t.Fatalf("expected MaxSize 39, got %d", table.MaxSize())
	}

	input := make([]byte, 0, 400)
	for i := 0; i < 10; i++ {
		for value := 0; value < 40; value++ {
			input = append(input, byte(value))
		}
	}
	p, err := Pack(input, table)
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}
	actual, err := Unpack(p, table)
	if err != nil {
		t.Fatalf("Unpack failed: %v", err)
	}
	if !bytes.Equal(input, actual) {
		t.Errorf("round trip mismatch")
	}
}

func TestPacked_Dump(t *testing.T) {
	p := Packed{Data: []byte{0xe3}, Tail: MakeCode(3, 0x5)}

	expectDump := strings.Join([]string{
		"Packed{\n",
		"\tBitLen() = 11\n",
		"\t11100011\n",
		"\tTail = \"101\"\n",
		"}\n",
	}, "")

	var buf strings.Builder
	_, _ = p.Dump(&buf)
	actualDump := buf.String()

	if expectDump != actualDump {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expectDump, actualDump)
	}
}

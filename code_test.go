package huffarc

import (
	"testing"
)

func TestCode_Text(t *testing.T) {
	type testRow struct {
		code   Code
		expect string
	}

	testData := [...]testRow{
		{MakeCode(0, 0), ""},
		{MakeCode(1, 0), "0"},
		{MakeCode(1, 1), "1"},
		{MakeCode(4, 0x3), "0011"},
		{MakeCode(7, 0x71), "1110001"},
	}
	for _, row := range testData {
		t.Run(row.expect, func(t *testing.T) {
			if actual := row.code.Text(); actual != row.expect {
				t.Errorf("expected %q, got %q", row.expect, actual)
			}
			if row.code.Size == 0 {
				return
			}
			parsed, err := ParseCode(row.expect)
			if err != nil {
				t.Fatalf("ParseCode failed: %v", err)
			}
			if parsed != row.code {
				t.Errorf("ParseCode(%q) = %#v, expected %#v", row.expect, parsed, row.code)
			}
		})
	}
}

func TestParseCode_Invalid(t *testing.T) {
	for _, input := range []string{"", "012", "1 0", "x"} {
		if _, err := ParseCode(input); err == nil {
			t.Errorf("ParseCode(%q) succeeded, expected an error", input)
		}
	}

	long := make([]byte, MaxCodeSize+1)
	for i := range long {
		long[i] = '1'
	}
	if _, err := ParseCode(string(long)); err == nil {
		t.Errorf("ParseCode accepted a %d-bit code", len(long))
	}
}

func TestCode_Bit(t *testing.T) {
	hc := MakeCode(5, 0x16) // 10110
	expect := []uint{1, 0, 1, 1, 0}
	for i, bit := range expect {
		if actual := hc.Bit(byte(i)); actual != bit {
			t.Errorf("Bit(%d): expected %d, got %d", i, bit, actual)
		}
	}
}

func TestCode_HasPrefix(t *testing.T) {
	hc := MakeCode(5, 0x16) // 10110
	if !hc.HasPrefix(MakeCode(2, 0x2)) {
		t.Errorf("expected %s to have prefix \"10\"", hc)
	}
	if hc.HasPrefix(MakeCode(2, 0x3)) {
		t.Errorf("expected %s not to have prefix \"11\"", hc)
	}
	if hc.HasPrefix(MakeCode(6, 0x2c)) {
		t.Errorf("a longer code cannot be a prefix")
	}
}

package huffarc

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxCodeSize is the maximum number of bits in a Code.
const MaxCodeSize = 64

// Code represents a sequence of bits.
type Code struct {
	// Size holds the number of valid bits.
	Size byte

	// Bits holds the actual values of the bits.  The first bit is the most
	// significant of the Size low-order bits.
	Bits uint64
}

// MakeCode is a convenience function that constructs a Code.
func MakeCode(size byte, bits uint64) Code {
	return Code{Size: size, Bits: bits}
}

// ParseCode parses the textual form produced by Code.Text.
func ParseCode(str string) (Code, error) {
	if len(str) == 0 {
		return Code{}, fmt.Errorf("invalid code %q: empty", str)
	}
	if len(str) > MaxCodeSize {
		return Code{}, fmt.Errorf("invalid code %q: %d bits, max %d", str, len(str), MaxCodeSize)
	}

	var hc Code
	for i := 0; i < len(str); i++ {
		switch str[i] {
		case '0':
			hc = hc.Append(0)
		case '1':
			hc = hc.Append(1)
		default:
			return Code{}, fmt.Errorf("invalid code %q: unexpected character %q at index %d", str, str[i], i)
		}
	}
	return hc, nil
}

// Append returns this Code with one more bit added at the end.
func (hc Code) Append(bit uint) Code {
	return Code{Size: hc.Size + 1, Bits: hc.Bits<<1 | uint64(bit&1)}
}

// Bit returns the i'th bit of this Code, counting from 0 at the first bit.
func (hc Code) Bit(i byte) uint {
	return uint(hc.Bits>>(hc.Size-1-i)) & 1
}

// HasPrefix returns true iff prefix is a prefix of this Code.
func (hc Code) HasPrefix(prefix Code) bool {
	if prefix.Size > hc.Size {
		return false
	}
	return hc.Bits>>(hc.Size-prefix.Size) == prefix.Bits
}

// Text returns the bits of this Code as the characters '0' and '1'.
func (hc Code) Text() string {
	if hc.Size == 0 {
		return ""
	}
	text := strconv.FormatUint(hc.Bits, 2)
	if pad := int(hc.Size) - len(text); pad > 0 {
		text = strings.Repeat("0", pad) + text
	}
	return text
}

// String returns the string representation of this Code.
func (hc Code) String() string {
	return strconv.Quote(hc.Text())
}

var _ fmt.Stringer = Code{}

package huffarc

// Symbol represents one element of a concatenated multi-file byte stream.
// Values 0 through 255 are byte values; Sentinel marks a member boundary.
type Symbol int32

// MaxByteSymbol is the largest Symbol that stands for a byte value.
const MaxByteSymbol = Symbol(255)

// Sentinel is the out-of-range Symbol placed after each member of a
// concatenated stream.  It is never counted and never encoded.
const Sentinel = Symbol(256)

// InvalidSymbol is returned by some functions to clearly indicate that no
// symbol is being returned.
const InvalidSymbol = Symbol(-1)

// IsByte returns true iff this Symbol stands for a byte value.
func (s Symbol) IsByte() bool {
	return s >= 0 && s <= MaxByteSymbol
}

// Concat joins the members into a single stream, with a Sentinel after each
// member (including the last one).
func Concat(members ...[]byte) []Symbol {
	var n int
	for _, member := range members {
		n += len(member) + 1
	}

	out := make([]Symbol, 0, n)
	for _, member := range members {
		for _, b := range member {
			out = append(out, Symbol(b))
		}
		out = append(out, Sentinel)
	}
	return out
}

// Split is the inverse of Concat.  A trailing run of bytes with no closing
// Sentinel becomes the final member.
func Split(stream []Symbol) [][]byte {
	var out [][]byte
	var current []byte
	open := false
	for _, s := range stream {
		switch {
		case s == Sentinel:
			out = append(out, current)
			current = nil
			open = false
		case s.IsByte():
			current = append(current, byte(s))
			open = true
		}
	}
	if open {
		out = append(out, current)
	}
	return out
}

package huffarc

import (
	"errors"
)

var (
	// ErrNoCode is returned when a byte value has no entry in the CodeTable.
	ErrNoCode = errors.New("huffarc: byte value has no code")

	// ErrCodeTooLong is returned when the prefix tree is deeper than
	// MaxCodeSize.
	ErrCodeTooLong = errors.New("huffarc: code exceeds maximum length")

	// ErrNotPrefixFree is returned when one code in a CodeTable is a prefix
	// of another.
	ErrNotPrefixFree = errors.New("huffarc: code table is not prefix-free")

	// ErrInvalidCode is returned when a bitstream contains a bit sequence
	// that no code starts with.
	ErrInvalidCode = errors.New("huffarc: bitstream contains an invalid code")

	// ErrTruncated is returned when a bitstream ends in the middle of a code.
	ErrTruncated = errors.New("huffarc: bitstream ends in the middle of a code")
)

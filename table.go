package huffarc

import (
	"bytes"
	"fmt"
	"io"
)

// CodeTable maps each byte value to its Code.  A Code with Size 0 means the
// byte value is unused.
type CodeTable [256]Code

// NewCodeTable builds the prefix tree for freq and generates its CodeTable.
func NewCodeTable(freq FrequencyTable) (CodeTable, error) {
	return Generate(BuildTree(freq))
}

// Generate walks the tree and assigns a Code to each leaf: a left edge
// appends bit 0, a right edge appends bit 1.  A tree made of one lone leaf
// assigns that leaf the one-bit code "0".  A nil tree yields an empty table.
//
func Generate(root *Node) (CodeTable, error) {
	var table CodeTable
	if root == nil {
		return table, nil
	}
	if root.IsLeaf() {
		table[root.Value] = MakeCode(1, 0)
		return table, nil
	}

	// Iterative DFS.  The left child is pushed last so that it is visited
	// first.

	type stackItem struct {
		node *Node
		code Code
	}

	stack := []stackItem{{node: root}}
	for len(stack) != 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if top.node.IsLeaf() {
			table[top.node.Value] = top.code
			continue
		}
		if top.code.Size >= MaxCodeSize {
			return CodeTable{}, fmt.Errorf("%w: tree is deeper than %d", ErrCodeTooLong, MaxCodeSize)
		}
		stack = append(stack,
			stackItem{node: top.node.Right, code: top.code.Append(1)},
			stackItem{node: top.node.Left, code: top.code.Append(0)})
	}
	return table, nil
}

// Used returns the number of byte values with a Code.
func (table *CodeTable) Used() int {
	var n int
	for _, hc := range table {
		if hc.Size != 0 {
			n++
		}
	}
	return n
}

// MinSize is the bit length of the shortest code, or 0 for an empty table.
func (table *CodeTable) MinSize() byte {
	var minSize byte
	for _, hc := range table {
		if hc.Size != 0 && (minSize == 0 || hc.Size < minSize) {
			minSize = hc.Size
		}
	}
	return minSize
}

// MaxSize is the bit length of the longest code.
func (table *CodeTable) MaxSize() byte {
	var maxSize byte
	for _, hc := range table {
		if hc.Size > maxSize {
			maxSize = hc.Size
		}
	}
	return maxSize
}

// Validate checks that the table is a prefix code.
func (table *CodeTable) Validate() error {
	_, err := NewDecoder(*table)
	return err
}

// Covers returns nil iff every byte value used in freq has a Code and every
// Code belongs to a used byte value.
func (table *CodeTable) Covers(freq FrequencyTable) error {
	for value := range table {
		hasCode := table[value].Size != 0
		hasFreq := freq[value] != 0
		switch {
		case hasFreq && !hasCode:
			return fmt.Errorf("byte value %d: %w", value, ErrNoCode)
		case hasCode && !hasFreq:
			return fmt.Errorf("byte value %d has code %s but a frequency of zero", value, table[value])
		}
	}
	return nil
}

// EncodedBits returns the total number of bits needed to encode input with
// the given frequencies, i.e. the sum of frequency × code length.  The sum
// saturates at math.MaxUint64.
func (table *CodeTable) EncodedBits(freq FrequencyTable) uint64 {
	var sum uint64
	for value, f := range freq {
		sum = addSaturating(sum, mulSaturating(f, uint64(table[value].Size)))
	}
	return sum
}

// Dump writes a programmer-readable debugging dump of the table to the given
// writer.
func (table *CodeTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("CodeTable{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", table.MinSize())
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", table.MaxSize())
	for value, hc := range table {
		if hc.Size != 0 {
			fmt.Fprintf(&buf, "\tEncode(%d) = %s\n", value, hc)
		}
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

package huffarc

import (
	"bytes"
	"fmt"
	"io"
)

// Decoder decodes bitstreams produced with a given CodeTable.  It walks a
// prefix tree one bit at a time, so decoding is linear in the number of
// bits no matter how many codes the table holds.
type Decoder struct {
	nodes   []decoderNode
	used    int
	minSize byte
	maxSize byte
}

// decoderNode is one node of the decoding tree.  Index 0 is always the
// root, so a child index of 0 means "no child".
type decoderNode struct {
	child [2]uint32
	value byte
	leaf  bool
}

// NewDecoder builds the decoding tree for a CodeTable.  It fails with
// ErrNotPrefixFree if some code is a prefix of another.
//
// Incomplete codes are permitted, since a table with one used byte value
// holds the single code "0" and nothing else.  Decode reports a bit
// sequence that falls outside every code as ErrInvalidCode.
//
func NewDecoder(table CodeTable) (*Decoder, error) {
	d := &Decoder{
		nodes:   make([]decoderNode, 1, 2*table.Used()+1),
		minSize: table.MinSize(),
		maxSize: table.MaxSize(),
	}

	for value, hc := range table {
		if hc.Size == 0 {
			continue
		}
		if err := d.insert(byte(value), hc); err != nil {
			return nil, err
		}
		d.used++
	}
	return d, nil
}

func (d *Decoder) insert(value byte, hc Code) error {
	var cur uint32
	for i := byte(0); i < hc.Size; i++ {
		if d.nodes[cur].leaf {
			other := d.nodes[cur].value
			return fmt.Errorf("%w: code for byte value %d is a prefix of code %s for byte value %d", ErrNotPrefixFree, other, hc, value)
		}
		bit := hc.Bit(i)
		next := d.nodes[cur].child[bit]
		if next == 0 {
			next = uint32(len(d.nodes))
			d.nodes = append(d.nodes, decoderNode{})
			d.nodes[cur].child[bit] = next
		}
		cur = next
	}

	node := &d.nodes[cur]
	if node.leaf {
		return fmt.Errorf("%w: byte values %d and %d share code %s", ErrNotPrefixFree, node.value, value, hc)
	}
	if node.child != [2]uint32{} {
		return fmt.Errorf("%w: code %s for byte value %d is a prefix of another code", ErrNotPrefixFree, hc, value)
	}
	node.leaf = true
	node.value = value
	return nil
}

// Decode reverses Encoder.Pack.  Every bit of the stream must belong to
// exactly one code: a bit sequence that matches no code fails with
// ErrInvalidCode, and a stream that ends mid-code fails with ErrTruncated.
func (d *Decoder) Decode(p Packed) ([]byte, error) {
	if p.Tail.Size >= 8 {
		return nil, fmt.Errorf("tail holds %d bits, expected fewer than 8", p.Tail.Size)
	}

	var out []byte
	if d.minSize != 0 {
		out = make([]byte, 0, p.BitLen()/uint64(d.minSize))
	}

	var cur uint32
	var offset uint64
	step := func(bit uint) error {
		next := d.nodes[cur].child[bit]
		if next == 0 {
			return fmt.Errorf("%w: at bit offset %d", ErrInvalidCode, offset)
		}
		if node := &d.nodes[next]; node.leaf {
			out = append(out, node.value)
			cur = 0
		} else {
			cur = next
		}
		offset++
		return nil
	}

	for _, b := range p.Data {
		for shift := 7; shift >= 0; shift-- {
			if err := step(uint(b>>shift) & 1); err != nil {
				return nil, err
			}
		}
	}
	for i := byte(0); i < p.Tail.Size; i++ {
		if err := step(p.Tail.Bit(i)); err != nil {
			return nil, err
		}
	}

	if cur != 0 {
		return nil, fmt.Errorf("%w: after %d bits", ErrTruncated, offset)
	}
	return out, nil
}

// Unpack is a convenience function that decodes p with a one-off Decoder.
func Unpack(p Packed, table CodeTable) ([]byte, error) {
	d, err := NewDecoder(table)
	if err != nil {
		return nil, err
	}
	return d.Decode(p)
}

// Used returns the number of byte values this Decoder can produce.
func (d *Decoder) Used() int {
	return d.used
}

// MinSize is the bit length of the shortest legal code.
func (d *Decoder) MinSize() byte {
	return d.minSize
}

// MaxSize is the bit length of the longest legal code.
func (d *Decoder) MaxSize() byte {
	return d.maxSize
}

// Dump writes a programmer-readable debugging dump of the Decoder's current
// state to the given writer.  Leaves are listed in depth-first order, left
// before right.
func (d *Decoder) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Decoder{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", d.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", d.maxSize)

	type stackItem struct {
		index uint32
		code  Code
	}

	stack := []stackItem{{index: 0}}
	for len(stack) != 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node := d.nodes[top.index]
		if node.leaf {
			fmt.Fprintf(&buf, "\tDecode(%s) = %d\n", top.code, node.value)
			continue
		}
		if right := node.child[1]; right != 0 {
			stack = append(stack, stackItem{right, top.code.Append(1)})
		}
		if left := node.child[0]; left != 0 {
			stack = append(stack, stackItem{left, top.code.Append(0)})
		}
	}

	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

package huffarc

import (
	"container/heap"

	"github.com/chronos-tachyon/assert"
)

// Node is one node of a Huffman prefix tree.  A leaf carries a byte value;
// an internal node carries exactly two children.
type Node struct {
	// Value is the byte value of a leaf.  It is meaningless for internal
	// nodes.
	Value byte

	// Freq is the combined frequency of every leaf under this node.
	Freq uint64

	Left  *Node
	Right *Node

	// order records when this node entered the heap, and breaks ties
	// between nodes of equal frequency.
	order int
}

// IsLeaf returns true iff this node has no children.
func (n *Node) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// BuildTree constructs the Huffman prefix tree for the given frequencies.
// It returns nil if every frequency is zero.
//
// One leaf is created per used byte value, in ascending byte-value order.
// The two lowest-frequency nodes are repeatedly removed and merged; the node
// removed first becomes the left child.  When two nodes have equal
// frequency, the one created earlier is removed first: leaves are created
// before any internal node, and each internal node is created after all of
// its descendants.
//
func BuildTree(freq FrequencyTable) *Node {
	h := nodeHeap{list: make([]*Node, 0, freq.Used())}
	var nextOrder int
	for value, f := range freq {
		if f == 0 {
			continue
		}
		h.list = append(h.list, &Node{Value: byte(value), Freq: f, order: nextOrder})
		nextOrder++
	}

	if len(h.list) == 0 {
		return nil
	}

	h.Init()
	for h.Len() > 1 {
		left := heap.Pop(&h).(*Node)
		right := heap.Pop(&h).(*Node)
		heap.Push(&h, &Node{
			Freq:  addSaturating(left.Freq, right.Freq),
			Left:  left,
			Right: right,
			order: nextOrder,
		})
		nextOrder++
	}

	root := heap.Pop(&h).(*Node)
	assert.Assertf(h.Len() == 0, "heap still holds %d nodes after popping the root", h.Len())
	assert.Assertf(nextOrder == 2*freq.Used()-1, "built %d nodes for %d leaves", nextOrder, freq.Used())
	return root
}

// type nodeHeap {{{

type nodeHeap struct {
	list []*Node
}

func (h *nodeHeap) Init() {
	heap.Init(h)
}

func (h *nodeHeap) Len() int {
	return len(h.list)
}

func (h *nodeHeap) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *nodeHeap) Less(i, j int) bool {
	a, b := h.list[i], h.list[j]
	if a.Freq != b.Freq {
		return a.Freq < b.Freq
	}
	return a.order < b.order
}

func (h *nodeHeap) Push(x interface{}) {
	h.list = append(h.list, x.(*Node))
}

func (h *nodeHeap) Pop() interface{} {
	last := len(h.list) - 1
	x := h.list[last]
	h.list[last] = nil
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*nodeHeap)(nil)

// }}}

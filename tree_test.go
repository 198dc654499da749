package huffarc

import (
	"math/rand/v2"
	"slices"
	"testing"
)

func TestBuildTree_Empty(t *testing.T) {
	if root := BuildTree(FrequencyTable{}); root != nil {
		t.Errorf("expected nil tree, got %+v", root)
	}
	table, err := NewCodeTable(FrequencyTable{})
	if err != nil {
		t.Fatalf("NewCodeTable failed: %v", err)
	}
	if table.Used() != 0 {
		t.Errorf("expected empty table, got %d codes", table.Used())
	}
}

func TestBuildTree_SingleSymbol(t *testing.T) {
	var freq FrequencyTable
	freq[42] = 7
	root := BuildTree(freq)
	if root == nil || !root.IsLeaf() || root.Value != 42 || root.Freq != 7 {
		t.Fatalf("expected a lone leaf for 42, got %+v", root)
	}
	table, err := Generate(root)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if expect := MakeCode(1, 0); table[42] != expect {
		t.Errorf("expected %s, got %s", expect, table[42])
	}
}

func TestBuildTree_TieBreak(t *testing.T) {
	// A=3, B=1, C=1: B and C merge first (B left, since it was created
	// first), then the merged node (2) is removed before A (3).
	var freq FrequencyTable
	freq['A'], freq['B'], freq['C'] = 3, 1, 1

	root := BuildTree(freq)
	if root.Freq != 5 {
		t.Errorf("expected root frequency 5, got %d", root.Freq)
	}
	if root.Right == nil || !root.Right.IsLeaf() || root.Right.Value != 'A' {
		t.Fatalf("expected A on the right of the root")
	}
	inner := root.Left
	if inner.Left.Value != 'B' || inner.Right.Value != 'C' {
		t.Errorf("expected B left and C right, got %d and %d", inner.Left.Value, inner.Right.Value)
	}

	table, err := Generate(root)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	for value, expect := range map[byte]string{'A': "1", 'B': "00", 'C': "01"} {
		if actual := table[value].Text(); actual != expect {
			t.Errorf("code for %q: expected %q, got %q", value, expect, actual)
		}
	}
	if bits := table.EncodedBits(freq); bits != 7 {
		t.Errorf("expected 7 encoded bits, got %d", bits)
	}
}

func TestBuildTree_Deterministic(t *testing.T) {
	var freq FrequencyTable
	for value := range freq {
		freq[value] = uint64(value % 4)
	}
	first, err := NewCodeTable(freq)
	if err != nil {
		t.Fatalf("NewCodeTable failed: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := NewCodeTable(freq)
		if err != nil {
			t.Fatalf("NewCodeTable failed: %v", err)
		}
		if again != first {
			t.Fatalf("run %d produced a different table", i)
		}
	}
}

// optimalCost computes the Huffman-optimal total bit length independently
// of BuildTree: it is the sum of the weights of every merged node.
func optimalCost(freq FrequencyTable) uint64 {
	var weights []uint64
	for _, f := range freq {
		if f != 0 {
			weights = append(weights, f)
		}
	}
	if len(weights) == 1 {
		return weights[0]
	}

	var cost uint64
	for len(weights) > 1 {
		slices.Sort(weights)
		merged := weights[0] + weights[1]
		cost += merged
		weights = append(weights[2:], merged)
	}
	return cost
}

func TestNewCodeTable_Properties(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for trial := 0; trial < 50; trial++ {
		var freq FrequencyTable
		used := 1 + rng.IntN(256)
		for i := 0; i < used; i++ {
			freq[rng.IntN(256)] = 1 + rng.Uint64N(1000)
		}

		table, err := NewCodeTable(freq)
		if err != nil {
			t.Fatalf("trial %d: NewCodeTable failed: %v", trial, err)
		}
		if err := table.Covers(freq); err != nil {
			t.Fatalf("trial %d: %v", trial, err)
		}

		for a, ca := range table {
			if ca.Size == 0 {
				continue
			}
			for b, cb := range table {
				if a != b && cb.Size != 0 && cb.HasPrefix(ca) {
					t.Fatalf("trial %d: code %s for %d is a prefix of %s for %d", trial, ca, a, cb, b)
				}
			}
		}

		if actual, expect := table.EncodedBits(freq), optimalCost(freq); actual != expect {
			t.Errorf("trial %d: expected optimal length %d, got %d", trial, expect, actual)
		}
	}
}

package archiver

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"path/filepath"

	"github.com/chronos-tachyon/huffarc/container"
	"github.com/chronos-tachyon/huffarc/internal/baseline"
)

// Comparison puts the size of a single-file artifact next to what the
// baseline compressors make of the same input.
type Comparison struct {
	Path     string
	Input    int
	Huffman  int
	Baseline baseline.Sizes
}

// Compare builds the artifact CompressFile would write for path, without
// writing it, and measures the baselines on the same input.
func (a *Archiver) Compare(path string) (*Comparison, error) {
	data, err := a.Source.ReadFile(path)
	if err != nil {
		return nil, err
	}

	name, ext := container.SplitName(filepath.Base(path))
	artifact, err := container.EncodeFile(name, ext, data)
	if err != nil {
		return nil, fmt.Errorf("compressing %s: %w", path, err)
	}
	var buf bytes.Buffer
	if err := container.WriteFile(&buf, artifact); err != nil {
		return nil, err
	}

	sizes, err := baseline.Measure(data)
	if err != nil {
		return nil, fmt.Errorf("measuring %s: %w", path, err)
	}

	c := &Comparison{
		Path:     path,
		Input:    len(data),
		Huffman:  buf.Len(),
		Baseline: sizes,
	}
	a.logger().Info("compared",
		"input", path,
		"input_bytes", c.Input,
		"huffman_bytes", c.Huffman,
		"zstd_bytes", c.Baseline.Zstd,
		"lz4_bytes", c.Baseline.LZ4)
	return c, nil
}

// WriteTo writes the comparison as a small table.
func (c *Comparison) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	bw := bufio.NewWriter(cw)

	row := func(label string, size int) {
		fmt.Fprintf(bw, "%-8s %10d  %6.3f\n", label, size, ratio(int64(size), int64(c.Input)))
	}
	fmt.Fprintf(bw, "%s\n", c.Path)
	row("input", c.Input)
	row("huffman", c.Huffman)
	row("zstd", c.Baseline.Zstd)
	row("lz4", c.Baseline.LZ4)

	err := bw.Flush()
	return cw.n, err
}

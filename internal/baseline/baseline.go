// Package baseline measures how general-purpose compressors do on the same
// input, so Huffman artifact sizes can be put in context.
package baseline

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Sizes holds the compressed size of one input under each baseline.
type Sizes struct {
	Zstd int
	LZ4  int
}

// zstdEncoder is safe for concurrent use and reused across calls.
var zstdEncoder *zstd.Encoder

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("baseline: zstd encoder initialization failed: " + err.Error())
	}
}

// Measure compresses data with each baseline and reports the sizes.
func Measure(data []byte) (Sizes, error) {
	lz4Size, err := LZ4(data)
	if err != nil {
		return Sizes{}, err
	}
	return Sizes{
		Zstd: Zstd(data),
		LZ4:  lz4Size,
	}, nil
}

// Zstd returns the size of data compressed with zstd at the default level.
func Zstd(data []byte) int {
	return len(zstdEncoder.EncodeAll(data, nil))
}

// LZ4 returns the size of data compressed as one LZ4 block.  Input that LZ4
// cannot shrink is reported at its original size, since it would be stored
// as is.
func LZ4(data []byte) (int, error) {
	destination := make([]byte, lz4.CompressBlockBound(len(data)))
	written, err := lz4.CompressBlock(data, destination, nil)
	if err != nil {
		return 0, fmt.Errorf("lz4 compress: %w", err)
	}
	if written == 0 || written >= len(data) {
		return len(data), nil
	}
	return written, nil
}

//go:build !unix

package diskio

import (
	"fmt"
	"os"
)

func mapFile(path string) (Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return byteMapping(data), nil
}

//go:build unix

package diskio

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

type fileMapping struct {
	data []byte
}

func (m *fileMapping) Bytes() []byte {
	return m.data
}

func (m *fileMapping) Close() error {
	if m.data == nil {
		return nil
	}
	err := unix.Munmap(m.data)
	m.data = nil
	if err != nil {
		return fmt.Errorf("unmapping: %w", err)
	}
	return nil
}

// mapFile maps the whole file read-only.  The descriptor is closed right
// away; the mapping stays valid until Close.
func mapFile(path string) (Mapping, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stating %s: %w", path, err)
	}
	size := info.Size()
	if size == 0 {
		// mmap rejects zero-length mappings.
		return byteMapping(nil), nil
	}
	if int64(int(size)) != size {
		return nil, fmt.Errorf("%s is too large to map (%d bytes)", path, size)
	}

	data, err := unix.Mmap(int(file.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("memory-mapping %s: %w", path, err)
	}
	return &fileMapping{data: data}, nil
}

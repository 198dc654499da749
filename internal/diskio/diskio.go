// Package diskio provides the filesystem collaborators of the archiver:
// reading raw file contents, listing the files of a directory, mapping an
// artifact into memory, and writing output files atomically.
package diskio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Source supplies input bytes.
type Source interface {
	// ReadFile returns the full contents of the named file.
	ReadFile(path string) ([]byte, error)

	// ListFiles returns the names of the regular files directly inside
	// dir, sorted by name.  Subdirectories and other entries are skipped.
	ListFiles(dir string) ([]string, error)

	// Map returns a read-only view of the named file.  The view must be
	// closed, and its bytes must not be used after Close.
	Map(path string) (Mapping, error)
}

// Mapping is a read-only view of a file's contents.
type Mapping interface {
	Bytes() []byte
	Close() error
}

// Sink receives output bytes.
type Sink interface {
	// MkdirAll creates dir and any missing parents.
	MkdirAll(dir string) error

	// WriteFile calls write with a writer for the named file.  The file
	// appears at path only if write and every following step succeed.
	WriteFile(path string, write func(io.Writer) error) error
}

// OS implements Source and Sink on the local filesystem.
type OS struct{}

var (
	_ Source = OS{}
	_ Sink   = OS{}
)

// ReadFile implements Source.
func (OS) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// ListFiles implements Source.
func (OS) ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// Map implements Source.
func (OS) Map(path string) (Mapping, error) {
	return mapFile(path)
}

// MkdirAll implements Sink.
func (OS) MkdirAll(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	return nil
}

// WriteFile implements Sink.  Output goes to a temporary file in the same
// directory, which is renamed over path once it is complete.
func (OS) WriteFile(path string, write func(io.Writer) error) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", path, err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if err := write(tmpFile); err != nil {
		tmpFile.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmpFile.Chmod(0o644); err != nil {
		tmpFile.Close()
		return fmt.Errorf("setting mode of %s: %w", path, err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp file for %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming temp file to %s: %w", path, err)
	}

	success = true
	return nil
}

// byteMapping is a Mapping over bytes that were read into memory.
type byteMapping []byte

func (m byteMapping) Bytes() []byte { return m }
func (m byteMapping) Close() error  { return nil }

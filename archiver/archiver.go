// Package archiver implements the four huffarc operations (compress a file,
// compress a folder, and decompress either kind of artifact) on top of the
// codec and container packages.
//
// An Archiver holds only its collaborators.  Each call builds its own
// frequency and code tables and drops them on return, so one Archiver may
// be reused for any number of sequential operations.  Concurrent calls are
// safe as long as the Source and Sink are.
package archiver

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/chronos-tachyon/huffarc/internal/diskio"
)

// Archiver runs compress and decompress operations.
type Archiver struct {
	// Source supplies input files and artifacts.
	Source diskio.Source

	// Sink receives artifacts and restored files.
	Sink diskio.Sink

	// Logger receives one record per completed operation, plus Debug
	// records for each stage.  Nil discards everything.
	Logger *slog.Logger

	// Exclude lists glob patterns of folder members to skip when
	// compressing a folder.
	Exclude []string
}

// New returns an Archiver that works on the local filesystem.
func New(logger *slog.Logger) *Archiver {
	return &Archiver{
		Source: diskio.OS{},
		Sink:   diskio.OS{},
		Logger: logger,
	}
}

func (a *Archiver) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.Logger
}

// excluded reports whether a folder member matches any Exclude pattern.
func (a *Archiver) excluded(name string) (bool, error) {
	for _, pattern := range a.Exclude {
		match, err := doublestar.Match(pattern, name)
		if err != nil {
			return false, fmt.Errorf("exclude pattern %q: %w", pattern, err)
		}
		if match {
			return true, nil
		}
	}
	return false, nil
}

// writeArtifact hands write to the Sink and returns the number of bytes it
// produced.
func (a *Archiver) writeArtifact(path string, write func(io.Writer) error) (int64, error) {
	var n int64
	err := a.Sink.WriteFile(path, func(w io.Writer) error {
		cw := &countingWriter{w: w}
		err := write(cw)
		n = cw.n
		return err
	})
	return n, err
}

// folderName returns the base name of a folder path, resolving "." and
// friends to the real directory name.
func folderName(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	return filepath.Base(abs), nil
}

func ratio(artifact, input int64) float64 {
	if input == 0 {
		return 0
	}
	return float64(artifact) / float64(input)
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

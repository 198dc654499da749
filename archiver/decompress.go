package archiver

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/chronos-tachyon/huffarc/container"
)

// DecompressFile restores the file stored in a single-file artifact into
// outDir, under the name recorded in the artifact's header.  It returns the
// restored file's path.
func (a *Archiver) DecompressFile(artifactPath, outDir string) (string, error) {
	log := a.logger()

	artifact, err := a.readFile(artifactPath)
	if err != nil {
		return "", err
	}
	data, err := artifact.Decode()
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", artifactPath, err)
	}

	outPath := filepath.Join(outDir, artifact.FileName())
	if err := a.Sink.WriteFile(outPath, writeBytes(data)); err != nil {
		return "", err
	}

	log.Info("decompressed file",
		"artifact", artifactPath,
		"output", outPath,
		"bytes", len(data))
	return outPath, nil
}

// DecompressFolder restores every member of a folder artifact into
// <outDir>/<folder>, where <folder> is the name recorded in the artifact's
// header.  Every member is decoded before anything is written.  It returns
// the restored folder's path.
func (a *Archiver) DecompressFolder(artifactPath, outDir string) (string, error) {
	log := a.logger()

	artifact, err := a.readFolder(artifactPath)
	if err != nil {
		return "", err
	}
	contents, err := artifact.Decode()
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", artifactPath, err)
	}

	folderPath := filepath.Join(outDir, artifact.Name)
	if err := a.Sink.MkdirAll(folderPath); err != nil {
		return "", err
	}

	var total int64
	for i := range artifact.Members {
		m := &artifact.Members[i]
		outPath := filepath.Join(folderPath, m.FileName())
		if err := a.Sink.WriteFile(outPath, writeBytes(contents[i])); err != nil {
			return "", err
		}
		log.Debug("restored member", "member", outPath, "bytes", len(contents[i]))
		total += int64(len(contents[i]))
	}

	log.Info("decompressed folder",
		"artifact", artifactPath,
		"output", folderPath,
		"members", len(artifact.Members),
		"bytes", total)
	return folderPath, nil
}

// readFile maps a single-file artifact and parses it.  The mapping is
// released before returning; the result holds no reference to it.
func (a *Archiver) readFile(artifactPath string) (*container.FileArtifact, error) {
	mapping, err := a.Source.Map(artifactPath)
	if err != nil {
		return nil, err
	}
	defer mapping.Close()

	artifact, err := container.ReadFile(mapping.Bytes())
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", artifactPath, err)
	}
	return artifact, nil
}

// readFolder is readFile for folder artifacts.
func (a *Archiver) readFolder(artifactPath string) (*container.FolderArtifact, error) {
	mapping, err := a.Source.Map(artifactPath)
	if err != nil {
		return nil, err
	}
	defer mapping.Close()

	artifact, err := container.ReadFolder(mapping.Bytes())
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", artifactPath, err)
	}
	return artifact, nil
}

func writeBytes(data []byte) func(io.Writer) error {
	return func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	}
}

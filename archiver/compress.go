package archiver

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/chronos-tachyon/huffarc/container"
)

// CompressFile compresses the file at path into <outDir>/<name>.hmc, where
// <name> is the file's base name without its extension.  It returns the
// artifact's path.
func (a *Archiver) CompressFile(path, outDir string) (string, error) {
	log := a.logger()

	data, err := a.Source.ReadFile(path)
	if err != nil {
		return "", err
	}
	log.Debug("read input", "path", path, "bytes", len(data))

	name, ext := container.SplitName(filepath.Base(path))
	artifact, err := container.EncodeFile(name, ext, data)
	if err != nil {
		return "", fmt.Errorf("compressing %s: %w", path, err)
	}
	log.Debug("built code table",
		"path", path,
		"symbols", artifact.Codes.Used(),
		"max_code_bits", artifact.Codes.MaxSize(),
		"payload_bits", artifact.Payload.BitLen())

	outPath := filepath.Join(outDir, name+container.FileExt)
	written, err := a.writeArtifact(outPath, func(w io.Writer) error {
		return container.WriteFile(w, artifact)
	})
	if err != nil {
		return "", err
	}

	log.Info("compressed file",
		"input", path,
		"artifact", outPath,
		"input_bytes", len(data),
		"artifact_bytes", written,
		"ratio", ratio(written, int64(len(data))))
	return outPath, nil
}

// CompressFolder compresses the regular files directly inside the folder at
// path into <outDir>/<folder>.hmf.  Members are stored in name order and
// share one code table.  It returns the artifact's path.
func (a *Archiver) CompressFolder(path, outDir string) (string, error) {
	log := a.logger()

	folder, err := folderName(path)
	if err != nil {
		return "", err
	}
	names, err := a.Source.ListFiles(path)
	if err != nil {
		return "", err
	}

	sources := make([]container.MemberSource, 0, len(names))
	var inputBytes int64
	for _, fileName := range names {
		skip, err := a.excluded(fileName)
		if err != nil {
			return "", err
		}
		if skip {
			log.Debug("excluded member", "folder", path, "member", fileName)
			continue
		}

		data, err := a.Source.ReadFile(filepath.Join(path, fileName))
		if err != nil {
			return "", err
		}
		name, ext := container.SplitName(fileName)
		sources = append(sources, container.MemberSource{Name: name, Ext: ext, Data: data})
		inputBytes += int64(len(data))
	}
	log.Debug("read members", "folder", path, "members", len(sources), "bytes", inputBytes)

	artifact, err := container.EncodeFolder(folder, sources)
	if err != nil {
		return "", fmt.Errorf("compressing %s: %w", path, err)
	}

	outPath := filepath.Join(outDir, folder+container.FolderExt)
	written, err := a.writeArtifact(outPath, func(w io.Writer) error {
		return container.WriteFolder(w, artifact)
	})
	if err != nil {
		return "", err
	}

	log.Info("compressed folder",
		"input", path,
		"artifact", outPath,
		"members", len(sources),
		"input_bytes", inputBytes,
		"artifact_bytes", written,
		"ratio", ratio(written, inputBytes))
	return outPath, nil
}

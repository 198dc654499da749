package container

import (
	"fmt"
	"strings"
)

// SplitName splits a file name at its last dot.  The extension keeps the
// dot; a name without a dot has an empty extension.
func SplitName(fileName string) (name, ext string) {
	i := strings.LastIndexByte(fileName, '.')
	if i < 0 {
		return fileName, ""
	}
	return fileName[:i], fileName[i:]
}

// checkName rejects names that cannot be stored on one header line or that
// would escape the output directory when restored.
func checkName(name, ext string) error {
	full := name + ext
	switch {
	case full == "":
		return fmt.Errorf("%w: empty", ErrInvalidName)
	case full == "." || full == "..":
		return fmt.Errorf("%w: %q", ErrInvalidName, full)
	case strings.ContainsAny(full, "\r\n"):
		return fmt.Errorf("%w: %q contains a line break", ErrInvalidName, full)
	case strings.ContainsAny(full, "/\\\x00"):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, full)
	}
	return nil
}

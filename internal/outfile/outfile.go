// Package outfile resolves and validates the save() built-in's output
// path, the same sandboxing concern as the teacher's pkg/vfs
// validFilename gate, generalized from a flat 8.3-style in-memory disk
// to a real nested directory tree under baseDir (§4.8).
package outfile

import (
	"errors"
	"path/filepath"
	"strings"
)

// ErrEscapesSandbox is returned when the requested path, once cleaned,
// would resolve outside baseDir.
var ErrEscapesSandbox = errors.New("outfile: path escapes sandbox")

// ErrInvalidName is returned when a path component contains characters
// outside the sandbox's allowed set.
var ErrInvalidName = errors.New("outfile: invalid filename")

// validComponent mirrors the teacher's validFilename regexp, generalized
// to permit the longer names and nested directory segments a real
// filesystem allows, while still excluding path-traversal tokens.
var validComponent = func(s string) bool {
	if s == "" || s == "." || s == ".." {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '_' || r == '-' || r == '.':
		default:
			return false
		}
	}
	return true
}

// Resolve cleans requested, rejects absolute paths and any ".." segment
// that would leave baseDir, validates each path component, and returns
// the absolute filesystem path to write.
func Resolve(baseDir, requested string) (string, error) {
	if requested == "" {
		return "", ErrInvalidName
	}
	if filepath.IsAbs(requested) {
		return "", ErrEscapesSandbox
	}

	cleaned := filepath.Clean(strings.ReplaceAll(requested, "\\", "/"))
	for _, part := range strings.Split(cleaned, "/") {
		if part == ".." {
			return "", ErrEscapesSandbox
		}
		if part == "" || part == "." {
			continue
		}
		if !validComponent(part) {
			return "", ErrInvalidName
		}
	}

	abs := filepath.Join(baseDir, cleaned)
	base, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}
	absClean, err := filepath.Abs(abs)
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(absClean, base+string(filepath.Separator)) && absClean != base {
		return "", ErrEscapesSandbox
	}
	return absClean, nil
}

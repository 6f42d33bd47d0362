// Package fileutil writes files atomically next to their destination.
package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const ownerReadWrite = 0o600

// TempContext holds state for an atomic file write operation.
type TempContext struct {
	Perm    os.FileMode
	TmpFile *os.File
	TmpName string
}

// NewTempContext creates a temp file in the directory of outPath.
// The permissions of like are carried over when it exists, otherwise the file is owner read/write.
// Caller must defer CleanupOnError.
func NewTempContext(like, outPath string) (*TempContext, error) {
	perm := os.FileMode(ownerReadWrite)

	info, err := os.Stat(like)

	switch {
	case err == nil:
		perm = info.Mode().Perm()
	case !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("getting file info for %q: %w", like, err)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(outPath), ".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("creating temporary file: %w", err)
	}

	return &TempContext{
		Perm:    perm,
		TmpFile: tmpFile,
		TmpName: tmpFile.Name(),
	}, nil
}

// CleanupOnError closes the temp file and removes it if the write failed.
func (tc *TempContext) CleanupOnError(errp *error) {
	tc.TmpFile.Close() //nolint:gosec // best-effort cleanup

	if *errp != nil {
		os.Remove(tc.TmpName) //nolint:gosec // best-effort cleanup
	}
}

// WriteFile writes data to outPath through a temp file and a rename, so readers never see a partial file.
// It returns the size of the written file.
func WriteFile(outPath, like string, data []byte) (size int64, err error) {
	tc, err := NewTempContext(like, outPath)
	if err != nil {
		return 0, fmt.Errorf("preparing atomic write: %w", err)
	}

	defer tc.CleanupOnError(&err)

	if _, err = tc.TmpFile.Write(data); err != nil {
		return 0, fmt.Errorf("writing content: %w", err)
	}

	if err = os.Chmod(tc.TmpName, tc.Perm); err != nil {
		return 0, fmt.Errorf("setting file permissions: %w", err)
	}

	if err = tc.TmpFile.Close(); err != nil {
		return 0, fmt.Errorf("closing temporary file: %w", err)
	}

	if err = os.Rename(tc.TmpName, outPath); err != nil {
		return 0, fmt.Errorf("renaming output file: %w", err)
	}

	info, err := os.Stat(outPath)
	if err != nil {
		return 0, fmt.Errorf("stat output %q: %w", outPath, err)
	}

	return info.Size(), nil
}

package logic

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/idelchi/formcipher/internal/config"
	"github.com/idelchi/formcipher/internal/form"
)

// ErrNoFiles is returned when no form files were found.
var ErrNoFiles = errors.New("no form files found")

// resolveFiles expands cfg.Files into form files.
// Files are added directly. Directories are walked: when encrypting, every
// form file without the encrypted suffix is selected; when decrypting, every
// file carrying it.
// Returns the selected files and the number of files scanned.
func resolveFiles(cfg *config.Config) (files []string, scanned int, err error) {
	seen := make(map[string]struct{})

	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}

		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, arg := range cfg.Files {
		arg = filepath.Clean(arg)

		info, err := os.Stat(arg)
		if err != nil {
			return nil, 0, fmt.Errorf("stat %q: %w", arg, err)
		}

		if !info.IsDir() {
			scanned++

			add(arg)

			continue
		}

		walked, total, err := walkDir(arg, selector(cfg))
		if err != nil {
			return nil, 0, err
		}

		scanned += total

		for _, path := range walked {
			add(path)
		}
	}

	if len(files) == 0 {
		return nil, scanned, fmt.Errorf("%w in %v", ErrNoFiles, cfg.Files)
	}

	return files, scanned, nil
}

// selector returns the predicate used for files found in directories.
func selector(cfg *config.Config) func(path string) bool {
	encrypted := func(path string) bool {
		return strings.HasSuffix(path, cfg.EncryptExt)
	}

	return func(path string) bool {
		if _, err := form.FormatOf(path); err != nil {
			return false
		}

		return encrypted(path) == cfg.Decrypt
	}
}

// walkDir walks root recursively, returning the files accepted by keep.
func walkDir(root string, keep func(string) bool) (files []string, total int, err error) {
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		total++

		if keep(path) {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("walking %q: %w", root, err)
	}

	return files, total, nil
}

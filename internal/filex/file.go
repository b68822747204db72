// Package filex contains filesystem helpers for materialising downloads.
package filex

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// maxNameAttempts bounds the "name (n).ext" probing in SaveUnique.
const maxNameAttempts = 1000

var (
	ErrInvalidName = errors.New("invalid file name")
	ErrNameTaken   = errors.New("no free file name")
)

// EnsureDir creates dir (relative paths resolve against the working
// directory) and returns its absolute path.
func EnsureDir(dir string) (string, error) {
	if !filepath.IsAbs(dir) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		dir = filepath.Join(cwd, dir)
	}

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// BaseName reduces a store-provided display name to a single path element.
func BaseName(name string) (string, error) {
	name = strings.ReplaceAll(name, `\`, "/")
	base := filepath.Base(filepath.Clean("/" + name))
	if base == "/" || base == "." || base == ".." {
		return "", ErrInvalidName
	}
	return base, nil
}

// candidateName returns name for n == 0 and "stem (n).ext" otherwise.
func candidateName(name string, n int) string {
	if n == 0 {
		return name
	}
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	if stem == "" {
		stem, ext = name, ""
	}
	return fmt.Sprintf("%s (%d)%s", stem, n, ext)
}

// SaveUnique streams r into dir under name. The bytes land in a temporary
// file first, which is then hard-linked to the first free candidate name,
// so a partially written download never appears under the final name and
// an existing file is never replaced. The temporary file is removed on
// every path.
func SaveUnique(dir, name string, r io.Reader) (path string, err error) {
	base, err := BaseName(name)
	if err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(dir, ".partial-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = io.Copy(tmp, r); err != nil {
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}

	for n := 0; n < maxNameAttempts; n++ {
		target := filepath.Join(dir, candidateName(base, n))
		// Link fails on an existing target, so a name is claimed atomically.
		linkErr := os.Link(tmpName, target)
		if errors.Is(linkErr, os.ErrExist) {
			continue
		}
		if linkErr != nil {
			err = fmt.Errorf("link to %s: %w", target, linkErr)
			return "", err
		}

		_ = os.Remove(tmpName)
		return target, nil
	}

	err = ErrNameTaken
	return "", err
}

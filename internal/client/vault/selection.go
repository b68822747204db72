package vault

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/filevault/internal/client/models"
)

var (
	ErrNoFileDropped = errors.New("no file dropped")
	ErrIsDirectory   = errors.New("is a directory")
)

// FromPicker builds a selection for a file chosen in a picker.
func FromPicker(path string) (models.Selection, error) {
	return fromPath(path, models.SourcePicker)
}

// FromDrop builds a selection from a drop event; the first path wins.
func FromDrop(paths []string) (models.Selection, error) {
	if len(paths) == 0 {
		return models.Selection{}, ErrNoFileDropped
	}
	return fromPath(paths[0], models.SourceDrop)
}

func fromPath(path string, source models.SelectionSource) (models.Selection, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return models.Selection{}, fmt.Errorf("select %s: %w", path, err)
	}
	if fi.IsDir() {
		return models.Selection{}, fmt.Errorf("select %s: %w", path, ErrIsDirectory)
	}

	open := func() (io.ReadCloser, error) { return os.Open(path) }
	return models.NewSelection(filepath.Base(path), fi.Size(), source, open), nil
}

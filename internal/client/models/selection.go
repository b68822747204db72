package models

import (
	"errors"
	"io"
)

var ErrEmptySelection = errors.New("no file selected")

// SelectionSource records how the user acquired a local file.
type SelectionSource string

const (
	SourcePicker SelectionSource = "picker"
	SourceDrop   SelectionSource = "drop"
)

// Opener returns a fresh reader over a selection's bytes.
type Opener func() (io.ReadCloser, error)

// Selection is a local file chosen for upload but not yet persisted.
// The zero value is the empty selection.
type Selection struct {
	Name   string
	Size   int64
	Source SelectionSource
	open   Opener
}

func NewSelection(name string, size int64, source SelectionSource, open Opener) Selection {
	return Selection{Name: name, Size: size, Source: source, open: open}
}

// IsZero reports whether s is the empty selection.
func (s Selection) IsZero() bool {
	return s.open == nil
}

// Open returns the selection's content. The caller closes the reader.
func (s Selection) Open() (io.ReadCloser, error) {
	if s.open == nil {
		return nil, ErrEmptySelection
	}
	return s.open()
}

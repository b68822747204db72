package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/filevault/internal/client/models"
)

var (
	// ErrConflict matches a create rejected because the file already exists.
	ErrConflict = errors.New("file already exists")

	ErrUnsupportedRef = errors.New("unsupported content ref")
	ErrInvalidRef     = errors.New("invalid content ref")
)

// duplicateMarker is what the store puts into a 400 body for a duplicate
// upload when it does not answer 409.
const duplicateMarker = "file already exists"

// FileStore is the contract the vault controller depends on.
type FileStore interface {
	List(ctx context.Context) ([]models.FileRecord, error)
	Create(ctx context.Context, sel models.Selection) error
	Fetch(ctx context.Context, contentRef string) (io.ReadCloser, error)
	Delete(ctx context.Context, id string) error
}

// ContentFetcher retrieves the bytes behind a content ref. The caller
// closes the returned reader.
type ContentFetcher interface {
	Fetch(ctx context.Context, ref string) (io.ReadCloser, error)
}

// StatusError is a non-2xx answer from the store.
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d %s", e.Op, e.StatusCode, http.StatusText(e.StatusCode))
}

// Is reports a match with ErrConflict for an explicit 409, and for a 400
// whose body carries the duplicate marker.
func (e *StatusError) Is(target error) bool {
	if target != ErrConflict {
		return false
	}
	switch e.StatusCode {
	case http.StatusConflict:
		return true
	case http.StatusBadRequest:
		return strings.Contains(strings.ToLower(e.Body), duplicateMarker)
	default:
		return false
	}
}

// IsConflict classifies a create failure as "already exists".
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

package vault

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/filevault/internal/client/models"
	"github.com/dmitrijs2005/filevault/internal/client/notify"
	"github.com/dmitrijs2005/filevault/internal/client/store"
	"github.com/dmitrijs2005/filevault/internal/logging"
)

// fakeStore is an in-memory file store. It rejects a second file with the
// same name using 409, like a store that deduplicates by name.
type fakeStore struct {
	store.FileStore

	mu       sync.Mutex
	records  []models.FileRecord
	contents map[string]string
	nextID   int

	listErr   error
	createErr error
	fetchErr  error
	deleteErr error

	// ignoreDelete acknowledges deletes without removing anything.
	ignoreDelete bool

	listCalls   int
	createCalls int
	deleteCalls int

	createStarted chan struct{}
	createRelease chan struct{}
	listHook      func(call int)

	closed int
}

func newFakeStore(records ...models.FileRecord) *fakeStore {
	fs := &fakeStore{contents: map[string]string{}}
	for _, r := range records {
		fs.records = append(fs.records, r)
		fs.contents[r.ContentRef] = "content of " + r.OriginalFilename
	}
	return fs
}

func (f *fakeStore) List(ctx context.Context) ([]models.FileRecord, error) {
	f.mu.Lock()
	f.listCalls++
	call := f.listCalls
	err := f.listErr
	out := append([]models.FileRecord{}, f.records...)
	hook := f.listHook
	f.mu.Unlock()

	if hook != nil {
		hook(call)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (f *fakeStore) Create(ctx context.Context, sel models.Selection) error {
	f.mu.Lock()
	f.createCalls++
	started, release := f.createStarted, f.createRelease
	f.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if release != nil {
		<-release
	}

	rc, err := sel.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	b, err := io.ReadAll(rc)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	for _, r := range f.records {
		if r.OriginalFilename == sel.Name {
			return &store.StatusError{Op: "create", StatusCode: http.StatusConflict}
		}
	}
	f.nextID++
	rec := models.FileRecord{
		ID:               fmt.Sprintf("id-%d", f.nextID),
		OriginalFilename: sel.Name,
		ContentRef:       fmt.Sprintf("/media/%d", f.nextID),
	}
	f.records = append(f.records, rec)
	f.contents[rec.ContentRef] = string(b)
	return nil
}

type trackedReader struct {
	io.Reader
	store *fakeStore
}

func (r *trackedReader) Close() error {
	r.store.mu.Lock()
	r.store.closed++
	r.store.mu.Unlock()
	return nil
}

func (f *fakeStore) Fetch(ctx context.Context, ref string) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	c, ok := f.contents[ref]
	if !ok {
		return nil, &store.StatusError{Op: "fetch", StatusCode: http.StatusNotFound}
	}
	return &trackedReader{Reader: strings.NewReader(c), store: f}, nil
}

func (f *fakeStore) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if f.ignoreDelete {
		return nil
	}
	for i, r := range f.records {
		if r.ID == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return &store.StatusError{Op: "delete", StatusCode: http.StatusNotFound}
}

func (f *fakeStore) calls() (list, create, del int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls, f.createCalls, f.deleteCalls
}

type fakeSaver struct {
	saved map[string]string
	err   error
}

func (s *fakeSaver) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if s.saved == nil {
		s.saved = map[string]string{}
	}
	s.saved[name] = string(b)
	return "/downloads/" + name, nil
}

var errNetwork = errors.New("dial tcp: connection refused")

func memSelection(name, content string) models.Selection {
	return models.NewSelection(name, int64(len(content)), models.SourcePicker, func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(content)), nil
	})
}

func newController(fs *fakeStore, saver Saver) *Controller {
	if saver == nil {
		saver = &fakeSaver{}
	}
	return New(fs, saver, notify.New(time.Hour), logging.Discard())
}

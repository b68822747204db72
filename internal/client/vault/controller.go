package vault

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/dmitrijs2005/filevault/internal/client/models"
	"github.com/dmitrijs2005/filevault/internal/client/notify"
	"github.com/dmitrijs2005/filevault/internal/client/store"
	"github.com/dmitrijs2005/filevault/internal/logging"
	"github.com/samber/lo"
)

// User-facing notification texts.
const (
	MsgFetchFailed    = "Failed to fetch files."
	MsgAlreadyExists  = "This file already exists."
	MsgUploadFailed   = "Upload failed."
	MsgDownloadFailed = "Download failed."
	MsgDeleteFailed   = "Delete failed."
)

var (
	ErrNothingSelected = errors.New("no file selected")
	ErrBusy            = errors.New("upload already in progress")
	ErrUnknownFile     = errors.New("unknown file id")
)

// Saver materialises downloaded bytes as a local file and returns its path.
type Saver interface {
	Save(ctx context.Context, name string, r io.Reader) (string, error)
}

// State is a point-in-time copy of the controller for rendering.
type State struct {
	Files           []models.FileRecord
	Filtered        []models.FileRecord
	Selection       models.Selection
	Busy            bool
	SearchTerm      string
	Notification    string
	HasNotification bool
}

type Controller struct {
	store store.FileStore
	saver Saver
	notes *notify.Notifier
	log   logging.Logger

	mu         sync.Mutex
	files      []models.FileRecord
	selection  models.Selection
	selGen     uint64
	busy       bool
	searchTerm string

	// refreshSeq orders List calls; appliedSeq is the newest one applied.
	refreshSeq uint64
	appliedSeq uint64
}

func New(fs store.FileStore, saver Saver, notes *notify.Notifier, log logging.Logger) *Controller {
	return &Controller{
		store: fs,
		saver: saver,
		notes: notes,
		log:   log,
		files: []models.FileRecord{},
	}
}

// RefreshList replaces the file list with the store's current answer. On
// failure the previous list stays and the fetch notification is shown.
// When refreshes overlap, an older answer never overwrites a newer one.
func (c *Controller) RefreshList(ctx context.Context) error {
	c.mu.Lock()
	c.refreshSeq++
	seq := c.refreshSeq
	c.mu.Unlock()

	records, err := c.store.List(ctx)
	if err != nil {
		c.log.Error(ctx, "list files failed", "error", err)
		c.notes.Set(MsgFetchFailed)
		return fmt.Errorf("refresh list: %w", err)
	}

	c.mu.Lock()
	if seq > c.appliedSeq {
		c.files = records
		c.appliedSeq = seq
	}
	c.mu.Unlock()

	c.log.Debug(ctx, "file list refreshed", "count", len(records))
	return nil
}

// SelectFile makes sel the pending selection and drops any visible error.
func (c *Controller) SelectFile(sel models.Selection) error {
	if sel.IsZero() {
		return ErrNothingSelected
	}

	c.mu.Lock()
	c.selection = sel
	c.selGen++
	c.mu.Unlock()

	c.notes.Clear()
	return nil
}

// SelectFromPicker is the file-picker entry into SelectFile.
func (c *Controller) SelectFromPicker(path string) error {
	sel, err := FromPicker(path)
	if err != nil {
		return err
	}
	return c.SelectFile(sel)
}

// SelectFromDrop is the drag-and-drop entry into SelectFile. Only the
// first dropped file is taken; an empty drop changes nothing.
func (c *Controller) SelectFromDrop(paths []string) error {
	sel, err := FromDrop(paths)
	if err != nil {
		return err
	}
	return c.SelectFile(sel)
}

// Upload sends the pending selection to the store. It refuses to start
// without a selection or while another upload is running. On success the
// selection is cleared (unless the user picked another file meanwhile)
// and the list is refreshed before busy drops.
func (c *Controller) Upload(ctx context.Context) error {
	c.mu.Lock()
	if c.selection.IsZero() {
		c.mu.Unlock()
		return ErrNothingSelected
	}
	if c.busy {
		c.mu.Unlock()
		return ErrBusy
	}
	c.busy = true
	sel, gen := c.selection, c.selGen
	c.mu.Unlock()

	c.notes.Clear()
	log := c.log.With("file", sel.Name, "size", sel.Size, "source", string(sel.Source))
	log.Info(ctx, "upload started")

	if err := c.store.Create(ctx, sel); err != nil {
		c.setBusy(false)
		if store.IsConflict(err) {
			log.Warn(ctx, "upload rejected as duplicate", "error", err)
			c.notes.Set(MsgAlreadyExists)
		} else {
			log.Error(ctx, "upload failed", "error", err)
			c.notes.Set(MsgUploadFailed)
		}
		return fmt.Errorf("upload %s: %w", sel.Name, err)
	}

	c.mu.Lock()
	if c.selGen == gen {
		c.selection = models.Selection{}
	}
	c.mu.Unlock()
	log.Info(ctx, "upload finished")

	_ = c.RefreshList(ctx)
	c.setBusy(false)
	return nil
}

func (c *Controller) setBusy(b bool) {
	c.mu.Lock()
	c.busy = b
	c.mu.Unlock()
}

// Download fetches rec's content and saves it under its original name.
// The fetched stream is closed on every path. Returns the saved path.
func (c *Controller) Download(ctx context.Context, rec models.FileRecord) (string, error) {
	log := c.log.With("id", rec.ID, "file", rec.OriginalFilename)

	rc, err := c.store.Fetch(ctx, rec.ContentRef)
	if err != nil {
		log.Error(ctx, "download fetch failed", "error", err)
		c.notes.Set(MsgDownloadFailed)
		return "", fmt.Errorf("download %s: %w", rec.ID, err)
	}
	defer rc.Close()

	path, err := c.saver.Save(ctx, rec.OriginalFilename, rc)
	if err != nil {
		log.Error(ctx, "download save failed", "error", err)
		c.notes.Set(MsgDownloadFailed)
		return "", fmt.Errorf("download %s: %w", rec.ID, err)
	}

	log.Info(ctx, "download saved", "path", path)
	return path, nil
}

// DownloadByID downloads the listed record with the given id.
func (c *Controller) DownloadByID(ctx context.Context, id string) (string, error) {
	rec, ok := c.lookup(id)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownFile, id)
	}
	return c.Download(ctx, rec)
}

// DeleteFile asks the store to remove id and refreshes on success. The
// local list is not touched before the store confirms.
func (c *Controller) DeleteFile(ctx context.Context, id string) error {
	if err := c.store.Delete(ctx, id); err != nil {
		c.log.Error(ctx, "delete failed", "id", id, "error", err)
		c.notes.Set(MsgDeleteFailed)
		return fmt.Errorf("delete %s: %w", id, err)
	}

	c.log.Info(ctx, "file deleted", "id", id)
	_ = c.RefreshList(ctx)
	return nil
}

func (c *Controller) SetSearchTerm(term string) {
	c.mu.Lock()
	c.searchTerm = term
	c.mu.Unlock()
}

// FilteredFiles is the list narrowed by the current search term.
func (c *Controller) FilteredFiles() []models.FileRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Filter(c.files, c.searchTerm)
}

// Files returns a copy of the last fetched list.
func (c *Controller) Files() []models.FileRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.FileRecord(nil), c.files...)
}

func (c *Controller) Selection() models.Selection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selection
}

func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// Notification returns the visible error message, if any.
func (c *Controller) Notification() (string, bool) {
	return c.notes.Current()
}

func (c *Controller) Snapshot() State {
	c.mu.Lock()
	st := State{
		Files:      append([]models.FileRecord(nil), c.files...),
		Filtered:   Filter(c.files, c.searchTerm),
		Selection:  c.selection,
		Busy:       c.busy,
		SearchTerm: c.searchTerm,
	}
	c.mu.Unlock()

	st.Notification, st.HasNotification = c.notes.Current()
	return st
}

func (c *Controller) lookup(id string) (models.FileRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return lo.Find(c.files, func(r models.FileRecord) bool { return r.ID == id })
}

// Filter keeps, in order, the records whose original filename contains
// term case-insensitively. An empty term keeps everything.
func Filter(files []models.FileRecord, term string) []models.FileRecord {
	needle := strings.ToLower(term)
	return lo.Filter(files, func(r models.FileRecord, _ int) bool {
		return strings.Contains(strings.ToLower(r.OriginalFilename), needle)
	})
}

package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/filevault/internal/buildinfo"
	"github.com/dmitrijs2005/filevault/internal/client/models"
	"github.com/dmitrijs2005/filevault/internal/logging"
	"github.com/dmitrijs2005/filevault/internal/netx"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const (
	headerRequestID = "X-Request-ID"
	formFieldFile   = "file"

	// sniffLen is how much of an upload is read ahead for type detection.
	sniffLen = 3072

	// DefaultHeaderTimeout bounds the wait for response headers.
	DefaultHeaderTimeout = 30 * time.Second
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// HTTPStore is a FileStore over the store's REST API.
type HTTPStore struct {
	baseURL   string
	client    *http.Client
	log       logging.Logger
	fetchers  map[string]ContentFetcher
	requestID func() string
	userAgent string
}

type Option func(*HTTPStore)

// NewHTTPClient returns a client that gives up when response headers take
// longer than headerTimeout. Bodies are not bounded by it, so large uploads
// and downloads are limited only by the request context.
func NewHTTPClient(headerTimeout time.Duration) *http.Client {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.ResponseHeaderTimeout = headerTimeout
	return &http.Client{Transport: tr}
}

func WithHTTPClient(c *http.Client) Option {
	return func(s *HTTPStore) { s.client = c }
}

func WithLogger(l logging.Logger) Option {
	return func(s *HTTPStore) { s.log = l }
}

// WithFetcher routes content refs with the given scheme to f.
func WithFetcher(scheme string, f ContentFetcher) Option {
	return func(s *HTTPStore) { s.fetchers[strings.ToLower(scheme)] = f }
}

// NewHTTPStore targets the API rooted at baseURL, e.g. http://localhost:5000/api.
func NewHTTPStore(baseURL string, opts ...Option) (*HTTPStore, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}

	s := &HTTPStore{
		baseURL:   u.String(),
		client:    NewHTTPClient(DefaultHeaderTimeout),
		log:       logging.Discard(),
		fetchers:  make(map[string]ContentFetcher),
		requestID: uuid.NewString,
		userAgent: buildinfo.UserAgent(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *HTTPStore) filesURL() string {
	return s.baseURL + "files/"
}

// do sends req and returns the response for 2xx answers. Any other answer
// is drained, closed and turned into a *StatusError.
func (s *HTTPStore) do(op string, req *http.Request) (*http.Response, error) {
	id := s.requestID()
	req.Header.Set(headerRequestID, id)
	req.Header.Set("User-Agent", s.userAgent)

	log := s.log.With("op", op, "request_id", id)
	ctx := req.Context()
	log.Debug(ctx, "store request", "method", req.Method, "url", req.URL.String())

	resp, err := s.client.Do(req)
	if err != nil {
		log.Warn(ctx, "store request failed", "error", err)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !netx.IsSuccess(resp.StatusCode) {
		body := netx.ReadErrorBody(resp)
		_ = resp.Body.Close()
		log.Warn(ctx, "store rejected request", "status", resp.StatusCode)
		return nil, &StatusError{Op: op, StatusCode: resp.StatusCode, Body: body}
	}

	log.Debug(ctx, "store response", "status", resp.StatusCode)
	return resp, nil
}

func (s *HTTPStore) List(ctx context.Context) ([]models.FileRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.filesURL(), nil)
	if err != nil {
		return nil, fmt.Errorf("list: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.do("list", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var records []models.FileRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("list: decode response: %w", err)
	}
	if records == nil {
		records = []models.FileRecord{}
	}
	return records, nil
}

func (s *HTTPStore) Create(ctx context.Context, sel models.Selection) error {
	body, contentType, err := encodeUpload(sel)
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}
	defer body.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.filesURL(), body)
	if err != nil {
		return fmt.Errorf("create: create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := s.do("create", req)
	if err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}

// encodeUpload streams sel as a multipart payload. The selection is opened
// and its leading bytes read up front to sniff the part's Content-Type; the
// rest is copied while the request body is consumed.
func encodeUpload(sel models.Selection) (io.ReadCloser, string, error) {
	rc, err := sel.Open()
	if err != nil {
		return nil, "", err
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(rc, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		_ = rc.Close()
		return nil, "", fmt.Errorf("read selection: %w", err)
	}
	head = head[:n]

	pr, pw := io.Pipe()
	w := multipart.NewWriter(pw)
	partType := mimetype.Detect(head).String()

	go func() {
		defer rc.Close()
		content := io.MultiReader(bytes.NewReader(head), rc)
		pw.CloseWithError(writeUpload(w, sel.Name, partType, content))
	}()

	return pr, w.FormDataContentType(), nil
}

func writeUpload(w *multipart.Writer, name, partType string, content io.Reader) error {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		formFieldFile, quoteEscaper.Replace(name)))
	h.Set("Content-Type", partType)

	part, err := w.CreatePart(h)
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return fmt.Errorf("write form file: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close multipart writer: %w", err)
	}
	return nil
}

func (s *HTTPStore) Fetch(ctx context.Context, contentRef string) (io.ReadCloser, error) {
	if contentRef == "" {
		return nil, fmt.Errorf("fetch: %w", ErrInvalidRef)
	}
	ref, err := netx.ResolveRef(s.baseURL, contentRef)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w: %v", ErrInvalidRef, err)
	}

	u, err := url.Parse(ref)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w: %v", ErrInvalidRef, err)
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme == "http" || scheme == "https" {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
		if err != nil {
			return nil, fmt.Errorf("fetch: create request: %w", err)
		}
		resp, err := s.do("fetch", req)
		if err != nil {
			return nil, err
		}
		return resp.Body, nil
	}

	f, ok := s.fetchers[scheme]
	if !ok {
		return nil, fmt.Errorf("fetch %q: %w", scheme, ErrUnsupportedRef)
	}
	s.log.Debug(ctx, "store fetch via fetcher", "scheme", scheme)
	rc, err := f.Fetch(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	return rc, nil
}

func (s *HTTPStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("delete: empty id")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, s.filesURL()+url.PathEscape(id), nil)
	if err != nil {
		return fmt.Errorf("delete: create request: %w", err)
	}

	resp, err := s.do("delete", req)
	if err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}

// Package netx holds HTTP helpers shared by the file store transports.
package netx

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// MaxErrorBody caps how much of a failed response body is kept.
const MaxErrorBody = 64 << 10

// IsSuccess reports whether code is a 2xx status.
func IsSuccess(code int) bool {
	return code >= http.StatusOK && code < http.StatusMultipleChoices
}

// ReadErrorBody drains up to MaxErrorBody bytes of resp.Body and returns
// them as a string. Read errors yield whatever was read so far.
func ReadErrorBody(resp *http.Response) string {
	if resp == nil || resp.Body == nil {
		return ""
	}
	b, _ := io.ReadAll(io.LimitReader(resp.Body, MaxErrorBody))
	return string(b)
}

// ResolveRef resolves ref against base. Absolute refs are returned as-is,
// host-relative and path-relative refs are joined with base.
func ResolveRef(base, ref string) (string, error) {
	r, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("parse ref %q: %w", ref, err)
	}
	if r.IsAbs() {
		return r.String(), nil
	}

	b, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base %q: %w", base, err)
	}
	return b.ResolveReference(r).String(), nil
}

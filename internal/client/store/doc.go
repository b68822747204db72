// Package store talks to the remote file store, the service of record for
// file bytes and metadata.
//
// # Operations
//
//   - List:   GET    {base}/files/         ordered JSON array of records
//   - Create: POST   {base}/files/         multipart, form field "file"
//   - Fetch:  GET    {contentRef}          raw bytes of one record
//   - Delete: DELETE {base}/files/{id}
//
// # Error Handling
//
// Any non-2xx answer surfaces as *StatusError carrying the status code and
// the (capped) response body. Whether a failed create means "the file is
// already there" is decided in one place, StatusError.Is with ErrConflict;
// callers use IsConflict.
//
// Content refs are opaque to callers. Fetch picks a transport by the ref's
// scheme: http(s) goes through the store's HTTP client, other schemes go
// through registered ContentFetchers such as S3Fetcher for s3:// refs.
package store

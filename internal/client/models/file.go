// Package models defines the records the vault client exchanges with the
// file store and the local selection awaiting upload.
package models

// FileRecord is a stored file as reported by the file store. The client
// never creates or edits records; they come from a list query only.
type FileRecord struct {
	ID               string `json:"id"`
	OriginalFilename string `json:"original_filename"`
	ContentRef       string `json:"file"`
}

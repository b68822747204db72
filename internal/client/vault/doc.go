// Package vault is the vault client controller: it owns the list of known
// files, the pending selection, the upload busy flag, the search term and
// the transient error slot, and drives the file store on user actions.
//
// # State rules
//
//   - The file list only changes by replacement with a fresh List result.
//     Nothing is inserted or removed locally; a delete is visible once the
//     following refresh confirms it.
//   - A failed refresh keeps the last known good list.
//   - Upload is the only guarded operation: while busy, further uploads are
//     refused without contacting the store. Download and delete run freely.
//   - Every failure lands in the notifier with a fixed user-facing text and
//     leaves the rest of the state untouched. Nothing is retried.
//
// The mutex is never held across a store call, so search and selection
// stay usable while a request is in flight.
package vault

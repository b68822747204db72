// Package cli provides the interactive vault client.
//
// It wires configuration, the file store transport, the notifier and the
// vault controller, then runs a REPL whose commands map one-to-one onto
// controller operations: select/drop a file, upload, list, search,
// refresh, download, delete and status.
//
// Uploads run in the background so the prompt stays usable; the busy
// guard in the controller refuses overlapping uploads. Error notifications
// are printed the moment they are raised, also from a background upload,
// and `status` repeats the one still visible.
//
// The REPL is started via App.Run(ctx, in), which blocks until the user
// exits and in-flight uploads finish.
package cli

// Package buildinfo exposes build metadata injected with -ldflags, e.g.
//
//	go build -ldflags "-X github.com/dmitrijs2005/filevault/internal/buildinfo.Version=v1.0.0"
package buildinfo

import (
	"fmt"
	"io"
)

var (
	Version = "N/A"
	Date    = "N/A"
	Commit  = "N/A"
)

// PrintBuildData writes version, date and commit to w.
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", Version)
	fmt.Fprintf(w, "Build date: %s\n", Date)
	fmt.Fprintf(w, "Build commit: %s\n", Commit)
}

// UserAgent is the User-Agent the client sends to the file store.
func UserAgent() string {
	return "filevault-client/" + Version
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/filevault/internal/client/models"
	"github.com/dmitrijs2005/filevault/internal/client/vault"
	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
)

var errUsage = errors.New("usage")

func (a *App) Select(ctx context.Context, args []string) error {
	if len(args) != 1 {
		a.printf("Usage: select <path>\n")
		return errUsage
	}
	if err := a.vault.SelectFromPicker(args[0]); err != nil {
		a.printf("Cannot select file: %v\n", err)
		return err
	}
	a.printf("Selected %s\n", a.vault.Selection().Name)
	return nil
}

// Drop takes the first dropped path. A drop without paths is ignored.
func (a *App) Drop(ctx context.Context, args []string) error {
	err := a.vault.SelectFromDrop(args)
	if errors.Is(err, vault.ErrNoFileDropped) {
		return nil
	}
	if err != nil {
		a.printf("Cannot select file: %v\n", err)
		return err
	}
	a.printf("Selected %s\n", a.vault.Selection().Name)
	return nil
}

// Upload starts the upload in the background. Precondition failures are
// reported synchronously.
func (a *App) Upload(ctx context.Context) error {
	sel := a.vault.Selection()
	if sel.IsZero() {
		a.printf("Nothing selected\n")
		return vault.ErrNothingSelected
	}
	if a.vault.Busy() {
		a.printf("Upload already in progress\n")
		return vault.ErrBusy
	}

	a.printf("Uploading %s...\n", sel.Name)
	a.uploads.Add(1)
	go func() {
		defer a.uploads.Done()
		err := a.vault.Upload(ctx)
		switch {
		case err == nil:
			a.printf("Uploaded %s\n", sel.Name)
		case errors.Is(err, vault.ErrBusy):
			a.printf("Upload already in progress\n")
		}
	}()
	return nil
}

func (a *App) List(ctx context.Context) error {
	a.renderFiles(a.vault.FilteredFiles())
	return nil
}

// Search sets the search term to the joined args (empty clears it) and
// lists the matching files.
func (a *App) Search(ctx context.Context, args []string) error {
	a.vault.SetSearchTerm(strings.Join(args, " "))
	return a.List(ctx)
}

func (a *App) Refresh(ctx context.Context) error {
	if err := a.vault.RefreshList(ctx); err != nil {
		return err
	}
	return a.List(ctx)
}

func (a *App) Download(ctx context.Context, args []string) error {
	if len(args) != 1 {
		a.printf("Usage: download <id>\n")
		return errUsage
	}
	path, err := a.vault.DownloadByID(ctx, args[0])
	if errors.Is(err, vault.ErrUnknownFile) {
		a.printf("No file with id %s\n", args[0])
		return err
	}
	if err != nil {
		return err
	}
	a.printf("Saved to %s\n", path)
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		a.printf("Usage: delete <id>\n")
		return errUsage
	}
	if err := a.vault.DeleteFile(ctx, args[0]); err != nil {
		return err
	}
	a.printf("Deleted %s\n", args[0])
	return nil
}

func (a *App) Status(ctx context.Context) error {
	st := a.vault.Snapshot()

	selected := "none"
	if !st.Selection.IsZero() {
		selected = fmt.Sprintf("%s (%d bytes, %s)", st.Selection.Name, st.Selection.Size, st.Selection.Source)
	}
	a.printf("Selected:  %s\n", selected)
	a.printf("Uploading: %t\n", st.Busy)
	a.printf("Files:     %d (%d shown)\n", len(st.Files), len(st.Filtered))
	if st.SearchTerm != "" {
		a.printf("Search:    %q\n", st.SearchTerm)
	}
	if st.HasNotification {
		a.printf("Error:     %s\n", color.Red.Sprint(st.Notification))
	}
	return nil
}

// onNotification prints a message as soon as it is raised, including from
// a background upload. Expiry and clearing print nothing.
func (a *App) onNotification(msg string, active bool) {
	if active {
		a.printf("%s\n", color.Red.Sprint(msg))
	}
}

func (a *App) renderFiles(files []models.FileRecord) {
	if len(files) == 0 {
		a.printf("No files\n")
		return
	}

	a.outMu.Lock()
	defer a.outMu.Unlock()

	table := tablewriter.NewWriter(a.out)
	table.SetHeader([]string{"ID", "Kind", "Name"})
	table.SetAutoWrapText(false)
	for _, f := range files {
		table.Append([]string{f.ID, string(models.KindOf(f.OriginalFilename)), f.OriginalFilename})
	}
	table.Render()
}

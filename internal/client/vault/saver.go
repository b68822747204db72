package vault

import (
	"context"
	"io"

	"github.com/dmitrijs2005/filevault/internal/filex"
)

// DirSaver saves downloads into Dir, never overwriting an existing file.
type DirSaver struct {
	Dir string
}

func (s DirSaver) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	dir, err := filex.EnsureDir(s.Dir)
	if err != nil {
		return "", err
	}
	return filex.SaveUnique(dir, name, r)
}

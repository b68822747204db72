package filex

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) func() {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	return func() { _ = os.Chdir(old) }
}

func TestEnsureDir_CreatesDirectoryInCWD(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	got, err := EnsureDir("downloads")
	require.NoError(t, err)

	want := filepath.Join(tmp, "downloads")
	require.Equal(t, want, got)

	fi, err := os.Stat(want)
	require.NoError(t, err)
	require.True(t, fi.IsDir(), "should create a directory")

	if runtime.GOOS != "windows" {
		perm := fi.Mode().Perm()
		require.Equal(t, os.FileMode(0o700), perm&0o700)
	}
}

func TestEnsureDir_AbsoluteAndIdempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	first, err := EnsureDir(dir)
	require.NoError(t, err)
	second, err := EnsureDir(dir)
	require.NoError(t, err)

	require.Equal(t, dir, first)
	require.Equal(t, first, second)
}

func TestEnsureDir_FailsIfFileWithSameNameExists(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	require.NoError(t, os.WriteFile("downloads", []byte("x"), 0o660))

	_, err := EnsureDir("downloads")
	require.Error(t, err, "should fail when a file exists with the same name")
}

func TestBaseName(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "report.pdf", want: "report.pdf"},
		{in: "../../etc/passwd", want: "passwd"},
		{in: `C:\Users\me\notes.txt`, want: "notes.txt"},
		{in: "", wantErr: true},
		{in: "..", wantErr: true},
		{in: "/", wantErr: true},
	}
	for _, tt := range tests {
		got, err := BaseName(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidName, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestCandidateName(t *testing.T) {
	assert.Equal(t, "report.pdf", candidateName("report.pdf", 0))
	assert.Equal(t, "report (1).pdf", candidateName("report.pdf", 1))
	assert.Equal(t, "archive.tar (2).gz", candidateName("archive.tar.gz", 2))
	assert.Equal(t, ".env (1)", candidateName(".env", 1))
	assert.Equal(t, "README (3)", candidateName("README", 3))
}

func TestSaveUnique_WritesAndAvoidsOverwrite(t *testing.T) {
	dir := t.TempDir()

	p1, err := SaveUnique(dir, "report.pdf", strings.NewReader("one"))
	require.NoError(t, err)
	p2, err := SaveUnique(dir, "report.pdf", strings.NewReader("two"))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "report.pdf"), p1)
	assert.Equal(t, filepath.Join(dir, "report (1).pdf"), p2)

	b, err := os.ReadFile(p1)
	require.NoError(t, err)
	assert.Equal(t, "one", string(b))
	b, err = os.ReadFile(p2)
	require.NoError(t, err)
	assert.Equal(t, "two", string(b))

	assertNoPartials(t, dir)
}

func TestSaveUnique_ConcurrentSavesNeverShareAName(t *testing.T) {
	dir := t.TempDir()
	const n = 16

	paths := make([]string, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			paths[i], errs[i] = SaveUnique(dir, "report.pdf", strings.NewReader(fmt.Sprint("content ", i)))
		}(i)
	}
	wg.Wait()

	seen := map[string]bool{}
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		require.False(t, seen[paths[i]], "duplicate path %s", paths[i])
		seen[paths[i]] = true

		b, err := os.ReadFile(paths[i])
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprint("content ", i), string(b))
	}
	assertNoPartials(t, dir)
}

func TestSaveUnique_SkipsExistingEntries(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	dir := t.TempDir()

	require.NoError(t, os.Symlink(filepath.Join(dir, "missing"), filepath.Join(dir, "report.pdf")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "report (1).pdf"), []byte("keep"), 0o600))

	p, err := SaveUnique(dir, "report.pdf", strings.NewReader("new"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "report (2).pdf"), p)

	fi, err := os.Lstat(filepath.Join(dir, "report.pdf"))
	require.NoError(t, err)
	assert.NotZero(t, fi.Mode()&os.ModeSymlink)

	b, err := os.ReadFile(filepath.Join(dir, "report (1).pdf"))
	require.NoError(t, err)
	assert.Equal(t, "keep", string(b))
	assertNoPartials(t, dir)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestSaveUnique_RemovesTempOnFailure(t *testing.T) {
	dir := t.TempDir()

	_, err := SaveUnique(dir, "report.pdf", failingReader{})
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSaveUnique_InvalidName(t *testing.T) {
	dir := t.TempDir()

	_, err := SaveUnique(dir, "..", strings.NewReader("x"))
	require.ErrorIs(t, err, ErrInvalidName)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func assertNoPartials(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasPrefix(e.Name(), ".partial-"), "leftover temp file %s", e.Name())
	}
}

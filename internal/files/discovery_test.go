package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindRawFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"ex2.dat", "ex1.dat", "notes.md", "book.xlsx"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.dat"), 0755))

	d := NewDiscovery(dir)
	found, err := d.FindRawFiles(".")
	require.NoError(t, err)

	names := make([]string, 0, len(found))
	for _, f := range found {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"book.xlsx", "ex1.dat", "ex2.dat"}, names, "sorted, directories and non-raw files excluded")
	assert.NotZero(t, found[0].Size)
}

func TestFindRawFiles_AbsoluteDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ex1.dat"), []byte("x"), 0644))

	d := NewDiscovery("/elsewhere")
	found, err := d.FindRawFiles(dir)
	require.NoError(t, err)
	assert.Len(t, found, 1)
}

func TestFindRawFiles_MissingDir(t *testing.T) {
	d := NewDiscovery(t.TempDir())
	_, err := d.FindRawFiles("absent")
	require.Error(t, err)
}

func TestCountRawFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ex1.dat"), []byte("x"), 0644))

	d := NewDiscovery(dir)
	n, err := d.CountRawFiles(".")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

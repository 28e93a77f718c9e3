package resolver

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "dscat/internal/errors"
)

func TestResolve(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "lvq-pak"), 0755))

	r := New(root)
	dir, err := r.Resolve("lvq-pak")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "lvq-pak"), dir)
}

func TestResolve_Alias(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "lvq_pak-3.1"), 0755))

	r := New(root, WithAlias("lvq-pak", "lvq_pak-3.1"))
	dir, err := r.Resolve("lvq-pak")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "lvq_pak-3.1"), dir)
}

func TestResolve_Missing(t *testing.T) {
	r := New(t.TempDir())

	_, err := r.Resolve("absent")
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrTypeNotFound, appErr.Type)
}

func TestResolve_NotADirectory(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "flat"), []byte("x"), 0644))

	_, err := New(root).Resolve("flat")
	require.Error(t, err)
	var appErr *apperrors.AppError
	assert.False(t, errors.As(err, &appErr), "a non-directory is an I/O problem, not a lookup miss")
}

func TestInventory(t *testing.T) {
	root := t.TempDir()
	srcDir := filepath.Join(root, "lvq-pak")
	require.NoError(t, os.MkdirAll(srcDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "ex1.dat"), []byte("1 2\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "readme.md"), []byte("x"), 0644))

	inv, err := New(root).Inventory("lvq-pak")
	require.NoError(t, err)
	require.Len(t, inv, 1)
	assert.Equal(t, "ex1.dat", inv[0].Name)
}

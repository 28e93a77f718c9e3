package catalogstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dscat/internal/catalog"
	apperrors "dscat/internal/errors"
	"dscat/internal/sources/lvqpak"
	"dscat/internal/sources/workbook"
)

func testFactories() map[string]Factory {
	return map[string]Factory{
		lvqpak.ExtractorID:   func() catalog.Extractor { return lvqpak.New() },
		workbook.ExtractorID: func() catalog.Extractor { return workbook.New() },
	}
}

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "catalog.yml"))

	doc, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, doc.Sources)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "catalog.yml")
	store := NewStore(path)

	doc := &Document{Sources: []Binding{
		{Name: "lvq-pak", Dir: "lvq_pak-3.1", Extractor: lvqpak.ExtractorID},
		{Name: "reports", Extractor: workbook.ExtractorID},
	}}
	require.NoError(t, store.Save(doc))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, doc.Sources, loaded.Sources)
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yml")
	require.NoError(t, os.WriteFile(path, []byte("sources: [broken"), 0644))

	_, err := NewStore(path).Load()
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrTypeStorage, appErr.Type)
}

func TestApply(t *testing.T) {
	root := t.TempDir()
	abs := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "lvq_pak-3.1"), 0755))
	require.NoError(t, os.Mkdir(filepath.Join(root, "reports"), 0755))

	reg := catalog.NewRegistry()
	doc := &Document{Sources: []Binding{
		{Name: "lvq-pak", Dir: "lvq_pak-3.1", Extractor: lvqpak.ExtractorID},
		{Name: "reports", Extractor: workbook.ExtractorID},
		{Name: "absolute", Dir: abs, Extractor: workbook.ExtractorID},
	}}

	require.NoError(t, Apply(doc, reg, testFactories(), root))

	assert.Equal(t, []string{"lvq-pak", "reports", "absolute"}, reg.List())

	src, err := reg.Get("lvq-pak")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "lvq_pak-3.1"), src.Dir)
	assert.Equal(t, lvqpak.ExtractorID, src.Extractor.ID())

	src, err = reg.Get("reports")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "reports"), src.Dir, "empty dir defaults to the source name")

	src, err = reg.Get("absolute")
	require.NoError(t, err)
	assert.Equal(t, abs, src.Dir)
}

func TestApply_RebindsExisting(t *testing.T) {
	dir := t.TempDir()
	reg := catalog.NewRegistry()
	require.NoError(t, reg.Register("lvq-pak", "/old", workbook.New()))

	doc := &Document{Sources: []Binding{
		{Name: "lvq-pak", Dir: dir, Extractor: lvqpak.ExtractorID},
	}}
	require.NoError(t, Apply(doc, reg, testFactories(), t.TempDir()))

	src, err := reg.Get("lvq-pak")
	require.NoError(t, err)
	assert.Equal(t, dir, src.Dir)
	assert.Equal(t, lvqpak.ExtractorID, src.Extractor.ID())
}

func TestApply_MissingDirectory(t *testing.T) {
	reg := catalog.NewRegistry()
	doc := &Document{Sources: []Binding{
		{Name: "ghost", Extractor: lvqpak.ExtractorID},
	}}

	err := Apply(doc, reg, testFactories(), t.TempDir())
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrTypeNotFound, appErr.Type)
	assert.False(t, reg.Has("ghost"), "a source with no raw directory must not bind")
}

func TestApply_UnknownExtractor(t *testing.T) {
	reg := catalog.NewRegistry()
	doc := &Document{Sources: []Binding{{Name: "x", Extractor: "nope"}}}

	err := Apply(doc, reg, testFactories(), t.TempDir())
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrTypeConfig, appErr.Type)
}

func TestApply_EmptyName(t *testing.T) {
	reg := catalog.NewRegistry()
	doc := &Document{Sources: []Binding{{Extractor: lvqpak.ExtractorID}}}

	err := Apply(doc, reg, testFactories(), t.TempDir())
	require.Error(t, err)
}

func TestSnapshot(t *testing.T) {
	reg := catalog.NewRegistry()
	require.NoError(t, reg.Register("lvq-pak", "/data/lvq", lvqpak.New()))
	require.NoError(t, reg.Register("reports", "/data/reports", workbook.New()))

	doc, err := Snapshot(reg)
	require.NoError(t, err)

	assert.Equal(t, []Binding{
		{Name: "lvq-pak", Dir: "/data/lvq", Extractor: lvqpak.ExtractorID},
		{Name: "reports", Dir: "/data/reports", Extractor: workbook.ExtractorID},
	}, doc.Sources)
}

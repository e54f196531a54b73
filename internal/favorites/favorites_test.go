package favorites

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileIsEmptyState(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "favorites.json"))

	st, err := s.Load()
	require.NoError(t, err)
	assert.NotNil(t, st.Folders)
	assert.NotNil(t, st.Items)
	assert.Empty(t, st.Folders)
	assert.Empty(t, st.Items)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "nested", "favorites.json"))

	folder := NewFolder("snippets")
	st := State{
		Folders: []Folder{folder},
		Items: []Item{
			NewItem("text", "hello", folder.ID),
			NewItem("image", "data:image/png;base64,AAAA", ""),
		},
	}
	require.NoError(t, s.Save(st))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, st, got)
}

func TestSave_ReplacesWholeDocument(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "favorites.json"))

	require.NoError(t, s.Save(State{Items: []Item{NewItem("text", "old", "")}}))
	require.NoError(t, s.Save(State{Folders: []Folder{}, Items: []Item{}}))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, got.Items)
}

func TestSave_LeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(filepath.Join(dir, "favorites.json"))
	require.NoError(t, s.Save(State{}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "favorites.json", entries[0].Name())
}

func TestLoad_CorruptFileIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "favorites.json")
	require.NoError(t, os.WriteFile(path, []byte("{nope"), 0o644))

	_, err := NewStore(path).Load()
	assert.Error(t, err)
}

func TestNewItem_UniqueIDs(t *testing.T) {
	a := NewItem("text", "x", "")
	b := NewItem("text", "x", "")
	assert.NotEqual(t, a.ID, b.ID)
}

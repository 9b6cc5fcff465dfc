package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/revelaction/concord/corpus"
	"github.com/revelaction/concord/errs"
	"github.com/revelaction/concord/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestTextStoreReadsDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "moby.txt", "Call me Ishmael.")
	writeFile(t, dir, "emma.txt", "Emma Woodhouse, handsome, clever, and rich")
	writeFile(t, dir, "notes.md", "ignored")
	writeFile(t, dir, LabelsFile, "moby: [melville, novel]\nemma: [austen, novel]\n")

	s, err := NewTextStore(dir)
	require.NoError(t, err)

	list, err := s.List("")
	require.NoError(t, err)
	require.Len(t, list, 2)
	// file name order
	assert.Equal(t, "emma", list[0].Name)
	assert.Equal(t, "moby", list[1].Name)
	assert.Empty(t, list[1].Content)

	moby, err := s.Read(1)
	require.NoError(t, err)
	assert.Equal(t, "Call me Ishmael.", moby.Content)
	assert.Equal(t, []string{"melville", "novel"}, moby.Labels)

	list, err = s.List("mel")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 1, list[0].Id)

	labels, err := s.Labels("")
	require.NoError(t, err)
	assert.Equal(t, []string{"austen", "melville", "novel"}, labels)

	_, err = s.Read(2)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestTextStorePreload(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "first")
	writeFile(t, dir, "b.txt", "second")

	s, err := NewTextStore(dir)
	require.NoError(t, err)

	var seen []string
	err = s.Preload("", func(current, total int, name string) {
		assert.Equal(t, 2, total)
		seen = append(seen, name)
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, seen)

	// contents survive the removal of the files
	require.NoError(t, os.Remove(filepath.Join(dir, "a.txt")))
	a, err := s.Read(0)
	require.NoError(t, err)
	assert.Equal(t, "first", a.Content)
}

func TestTextStoreWrite(t *testing.T) {
	dir := t.TempDir()
	s, err := NewTextStore(dir)
	require.NoError(t, err)

	require.NoError(t, s.Write(corpus.Text{Name: "moby", Content: "whale", Labels: []string{"melville"}}))

	err = s.Write(corpus.Text{Name: "moby", Content: "again"})
	assert.True(t, errs.IsInput(err))

	err = s.Write(corpus.Text{Name: "../escape", Content: "x"})
	assert.True(t, errs.IsInput(err))

	// a fresh store sees the written text and its labels
	reopened, err := NewTextStore(dir)
	require.NoError(t, err)

	c, err := storage.Load(reopened, "")
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())

	moby, err := c.ByName("moby")
	require.NoError(t, err)
	assert.Equal(t, "whale", moby.Content)
	assert.Equal(t, []string{"melville"}, moby.Labels)
}

func TestNewTextStoreMissingDir(t *testing.T) {
	_, err := NewTextStore(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestNewTextStoreBadLabels(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, LabelsFile, "moby: [unclosed\n")
	_, err := NewTextStore(dir)
	assert.Error(t, err)
}

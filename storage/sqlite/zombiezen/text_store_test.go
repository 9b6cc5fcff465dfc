package zombiezen

import (
	"path/filepath"
	"testing"

	"github.com/revelaction/concord/corpus"
	"github.com/revelaction/concord/errs"
	"github.com/revelaction/concord/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *TextStore {
	t.Helper()
	pool, err := NewPool(filepath.Join(t.TempDir(), "corpus.db"))
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })
	return NewTextStore(pool)
}

func TestTextStoreRoundTrip(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.Write(corpus.Text{Name: "moby", Content: "Call me Ishmael.", Labels: []string{"melville", "novel"}}))
	require.NoError(t, s.Write(corpus.Text{Name: "emma", Content: "Emma Woodhouse"}))

	list, err := s.List("")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, corpus.Text{Id: 0, Name: "moby", Labels: []string{"melville", "novel"}}, list[0])
	assert.Equal(t, corpus.Text{Id: 1, Name: "emma"}, list[1])

	emma, err := s.Read(1)
	require.NoError(t, err)
	assert.Equal(t, "Emma Woodhouse", emma.Content)

	_, err = s.Read(2)
	assert.ErrorIs(t, err, errs.ErrNotFound)
	_, err = s.Read(-1)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestTextStoreDuplicate(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Write(corpus.Text{Name: "moby", Content: "a"}))

	err := s.Write(corpus.Text{Name: "moby", Content: "b"})
	require.Error(t, err)
	assert.True(t, errs.IsInput(err))

	list, err := s.List("")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestTextStoreLabels(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Write(corpus.Text{Name: "moby", Content: "a", Labels: []string{"melville", "novel"}}))
	require.NoError(t, s.Write(corpus.Text{Name: "emma", Content: "b", Labels: []string{"austen", "novel"}}))

	labels, err := s.Labels("")
	require.NoError(t, err)
	assert.Equal(t, []string{"austen", "melville", "novel"}, labels)

	labels, err = s.Labels("ville")
	require.NoError(t, err)
	assert.Equal(t, []string{"melville"}, labels)

	c, err := storage.Load(s, "austen")
	require.NoError(t, err)
	assert.Equal(t, []string{"emma"}, c.Names())
}

func TestTextStoreReadAll(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Write(corpus.Text{Name: "moby", Content: "Call me Ishmael.", Labels: []string{"melville"}}))
	require.NoError(t, s.Write(corpus.Text{Name: "emma", Content: "Emma Woodhouse", Labels: []string{"austen"}}))
	require.NoError(t, s.Write(corpus.Text{Name: "persuasion", Content: "Sir Walter Elliot", Labels: []string{"austen"}}))

	texts, err := s.ReadAll("austen")
	require.NoError(t, err)
	assert.Equal(t, []corpus.Text{
		{Id: 1, Name: "emma", Content: "Emma Woodhouse", Labels: []string{"austen"}},
		{Id: 2, Name: "persuasion", Content: "Sir Walter Elliot", Labels: []string{"austen"}},
	}, texts)

	// ids agree with Read
	for _, want := range texts {
		got, err := s.Read(want.Id)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

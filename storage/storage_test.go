package storage

import (
	"testing"

	"github.com/revelaction/concord/corpus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchLabel(t *testing.T) {
	labels := []string{"melville", "novel"}
	assert.True(t, MatchLabel(labels, ""))
	assert.True(t, MatchLabel(labels, "vel"))
	assert.False(t, MatchLabel(labels, "austen"))
	assert.False(t, MatchLabel(nil, "x"))
}

func TestUniqueLabels(t *testing.T) {
	texts := []corpus.Text{
		{Labels: []string{"novel", "melville"}},
		{Labels: []string{"novel", "austen"}},
		{},
	}
	assert.Equal(t, []string{"austen", "melville", "novel"}, UniqueLabels(texts, ""))
	assert.Equal(t, []string{"novel"}, UniqueLabels(texts, "nov"))
	assert.Empty(t, UniqueLabels(texts, "zzz"))
}

type memReader struct {
	texts []corpus.Text
	reads int
}

func (m *memReader) List(labelMatch string) ([]corpus.Text, error) {
	out := []corpus.Text{}
	for _, t := range m.texts {
		if MatchLabel(t.Labels, labelMatch) {
			out = append(out, corpus.Text{Id: t.Id, Name: t.Name, Labels: t.Labels})
		}
	}
	return out, nil
}

func (m *memReader) Read(id int) (corpus.Text, error) {
	m.reads++
	return m.texts[id], nil
}

func (m *memReader) Labels(pattern string) ([]string, error) {
	return UniqueLabels(m.texts, pattern), nil
}

type bulkReader struct {
	memReader
}

func (b *bulkReader) ReadAll(labelMatch string) ([]corpus.Text, error) {
	out := []corpus.Text{}
	for _, t := range b.texts {
		if MatchLabel(t.Labels, labelMatch) {
			out = append(out, t)
		}
	}
	return out, nil
}

func memTexts() []corpus.Text {
	return []corpus.Text{
		{Id: 0, Name: "moby", Content: "Call me Ishmael.", Labels: []string{"melville"}},
		{Id: 1, Name: "emma", Content: "Emma Woodhouse", Labels: []string{"austen"}},
	}
}

func TestLoadReadsEachText(t *testing.T) {
	r := &memReader{texts: memTexts()}

	c, err := Load(r, "austen")
	require.NoError(t, err)
	assert.Equal(t, []string{"emma"}, c.Names())
	assert.Equal(t, 1, r.reads)
}

func TestLoadBulkReader(t *testing.T) {
	r := &bulkReader{memReader{texts: memTexts()}}

	c, err := Load(r, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"moby", "emma"}, c.Names())
	assert.Zero(t, r.reads)
}

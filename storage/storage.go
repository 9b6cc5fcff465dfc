package storage

import (
	"sort"
	"strings"

	"github.com/revelaction/concord/corpus"
)

// TextReader defines read operations for text storage
type TextReader interface {
	// List returns the metadata (Id, Name, Labels) of the texts, ordered by
	// id. If labelMatch is not empty, only texts with at least one label
	// containing the string are returned. Content is not loaded.
	List(labelMatch string) ([]corpus.Text, error)

	// Read returns a text, with its content, by id
	Read(id int) (corpus.Text, error)

	// Labels returns all unique labels, sorted alphabetically.
	// If pattern is not empty, it returns labels that contain the pattern.
	Labels(pattern string) ([]string, error)
}

// TextWriter defines write operations for text storage
type TextWriter interface {
	// Write persists a text. The name must be unique in the repository.
	Write(t corpus.Text) error
}

// TextRepository combines read and write operations
type TextRepository interface {
	TextReader
	TextWriter
}

// Preloader defines an optional capability for repositories that require
// or support eager loading of data into memory.
type Preloader interface {
	Preload(labelMatch string, cb func(current, total int, name string)) error
}

// BulkReader is an optional capability for repositories that read all the
// matching texts, with content, at once.
type BulkReader interface {
	// ReadAll returns the texts matching labelMatch, as List does, with
	// their content.
	ReadAll(labelMatch string) ([]corpus.Text, error)
}

// Load reads the texts matching labelMatch into a new Corpus, in id order.
// A BulkReader is read at once, other readers one Read per listed text.
func Load(r TextReader, labelMatch string) (*corpus.Corpus, error) {
	texts, err := readTexts(r, labelMatch)
	if err != nil {
		return nil, err
	}

	c := &corpus.Corpus{}
	for _, t := range texts {
		if _, err := c.Add(t.Name, t.Content, t.Labels...); err != nil {
			return nil, err
		}
	}

	return c, nil
}

func readTexts(r TextReader, labelMatch string) ([]corpus.Text, error) {
	if b, ok := r.(BulkReader); ok {
		return b.ReadAll(labelMatch)
	}

	list, err := r.List(labelMatch)
	if err != nil {
		return nil, err
	}

	texts := make([]corpus.Text, len(list))
	for i, meta := range list {
		if texts[i], err = r.Read(meta.Id); err != nil {
			return nil, err
		}
	}
	return texts, nil
}

// MatchLabel reports whether one of labels contains labelMatch. An empty
// labelMatch matches every text.
func MatchLabel(labels []string, labelMatch string) bool {
	if labelMatch == "" {
		return true
	}

	for _, l := range labels {
		if strings.Contains(l, labelMatch) {
			return true
		}
	}
	return false
}

// UniqueLabels returns the sorted unique labels of texts containing pattern.
func UniqueLabels(texts []corpus.Text, pattern string) []string {
	seen := map[string]bool{}
	labels := []string{}
	for _, t := range texts {
		for _, l := range t.Labels {
			if seen[l] || !strings.Contains(l, pattern) {
				continue
			}
			seen[l] = true
			labels = append(labels, l)
		}
	}

	sort.Strings(labels)
	return labels
}

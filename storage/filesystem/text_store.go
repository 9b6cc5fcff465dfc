package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/revelaction/concord/corpus"
	"github.com/revelaction/concord/errs"
	"github.com/revelaction/concord/storage"
	"gopkg.in/yaml.v3"
)

const (
	textExt = ".txt"

	// LabelsFile maps text names to labels.
	LabelsFile = "labels.yaml"
)

// TextStore reads and writes a directory of plain text files. The text
// name is the file name without the .txt extension; ids follow the file
// name order.
type TextStore struct {
	dir string

	texts  []corpus.Text
	loaded []bool
}

var _ storage.TextRepository = (*TextStore)(nil)
var _ storage.Preloader = (*TextStore)(nil)

// NewTextStore lists the .txt files of dir. Contents are read on demand or
// by Preload.
func NewTextStore(dir string) (*TextStore, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	labels, err := readLabels(dir)
	if err != nil {
		return nil, err
	}

	s := &TextStore{dir: dir}
	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != textExt {
			continue
		}

		name := strings.TrimSuffix(file.Name(), textExt)
		s.texts = append(s.texts, corpus.Text{
			Id:     len(s.texts),
			Name:   name,
			Labels: labels[name],
		})
		s.loaded = append(s.loaded, false)
	}

	return s, nil
}

// Preload reads the contents of the texts matching labelMatch.
func (s *TextStore) Preload(labelMatch string, cb func(current, total int, name string)) error {
	total := len(s.texts)
	for i := range s.texts {
		t := &s.texts[i]

		if cb != nil {
			cb(i+1, total, t.Name)
		}

		if !storage.MatchLabel(t.Labels, labelMatch) {
			continue
		}

		if err := s.load(i); err != nil {
			return err
		}
	}

	return nil
}

func (s *TextStore) List(labelMatch string) ([]corpus.Text, error) {
	list := []corpus.Text{}
	for _, t := range s.texts {
		if !storage.MatchLabel(t.Labels, labelMatch) {
			continue
		}

		t.Content = ""
		list = append(list, t)
	}
	return list, nil
}

func (s *TextStore) Read(id int) (corpus.Text, error) {
	if id < 0 || id >= len(s.texts) {
		return corpus.Text{}, errs.NotFound("text id %d", id)
	}

	if err := s.load(id); err != nil {
		return corpus.Text{}, err
	}
	return s.texts[id], nil
}

func (s *TextStore) Labels(pattern string) ([]string, error) {
	return storage.UniqueLabels(s.texts, pattern), nil
}

// Write creates <name>.txt and records the labels in labels.yaml.
func (s *TextStore) Write(t corpus.Text) error {
	if t.Name == "" || strings.ContainsAny(t.Name, `/\`) {
		return errs.Inputf("filesystem write", "invalid text name %q", t.Name)
	}

	path := filepath.Join(s.dir, t.Name+textExt)
	if _, err := os.Stat(path); err == nil {
		return errs.Inputf("filesystem write", "text %q already exists", t.Name)
	}

	if err := os.WriteFile(path, []byte(t.Content), 0o644); err != nil {
		return fmt.Errorf("IO error: %w", err)
	}

	stored := corpus.Text{
		Id:      len(s.texts),
		Name:    t.Name,
		Labels:  append([]string(nil), t.Labels...),
		Content: t.Content,
	}
	s.texts = append(s.texts, stored)
	s.loaded = append(s.loaded, true)

	if len(t.Labels) == 0 {
		return nil
	}
	return s.writeLabels()
}

func (s *TextStore) load(id int) error {
	if s.loaded[id] {
		return nil
	}

	t := &s.texts[id]
	content, err := ReadText(filepath.Join(s.dir, t.Name+textExt))
	if err != nil {
		return err
	}

	t.Content = content
	s.loaded[id] = true
	return nil
}

func (s *TextStore) writeLabels() error {
	labels := map[string][]string{}
	for _, t := range s.texts {
		if len(t.Labels) > 0 {
			labels[t.Name] = t.Labels
		}
	}

	data, err := yaml.Marshal(labels)
	if err != nil {
		return fmt.Errorf("YAML encoding error: %w", err)
	}

	if err := os.WriteFile(filepath.Join(s.dir, LabelsFile), data, 0o644); err != nil {
		return fmt.Errorf("IO error: %w", err)
	}
	return nil
}

func readLabels(dir string) (map[string][]string, error) {
	data, err := os.ReadFile(filepath.Join(dir, LabelsFile))
	if errors.Is(err, fs.ErrNotExist) {
		return map[string][]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("IO error: %w", err)
	}

	labels := map[string][]string{}
	if err := yaml.Unmarshal(data, &labels); err != nil {
		return nil, fmt.Errorf("YAML decoding error in %s: %w", LabelsFile, err)
	}
	return labels, nil
}

// ReadText reads a text file. Invalid UTF-8 is reported by the tokenizer,
// not here.
func ReadText(path string) (string, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("IO error: %w", err)
	}
	return string(f), nil
}

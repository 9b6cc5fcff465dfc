package corpus

import (
	"strconv"
	"strings"

	"github.com/revelaction/concord/errs"
)

// Text is a document of the corpus.
type Text struct {
	// Id is the index of the text in its corpus, starting at 0.
	Id int `json:"id"`

	// Name is unique inside a corpus.
	Name string `json:"name"`

	Labels []string `json:"labels,omitempty"`

	// The unmodified content
	Content string `json:"content"`
}

// HasLabels reports whether every label in want is contained in one of the
// text labels. An empty want always matches.
func (t Text) HasLabels(want []string) bool {
	for _, label := range want {
		found := false
		for _, l := range t.Labels {
			if strings.Contains(l, label) {
				found = true
				break
			}
		}

		if !found {
			return false
		}
	}

	return true
}

// Corpus is an ordered collection of Text with unique names.
//
// Texts keep insertion order. A Corpus is built once and then read; derived
// corpora (segments, label filters) are new values.
type Corpus struct {
	texts  []Text
	byName map[string]int
}

// New returns a Corpus with the given texts. Ids are reassigned in order.
func New(texts ...Text) (*Corpus, error) {
	c := &Corpus{byName: make(map[string]int, len(texts))}
	for _, t := range texts {
		if _, err := c.Add(t.Name, t.Content, t.Labels...); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// FromStrings returns a Corpus naming each content "text1", "text2", ...
func FromStrings(contents ...string) *Corpus {
	c := &Corpus{byName: make(map[string]int, len(contents))}
	for i, content := range contents {
		// names are unique by construction
		_, _ = c.Add(defaultName(i), content)
	}

	return c
}

// Add appends a text. An empty name gets the default "text<n>" name.
func (c *Corpus) Add(name, content string, labels ...string) (Text, error) {
	if c.byName == nil {
		c.byName = map[string]int{}
	}

	if name == "" {
		name = defaultName(len(c.texts))
	}

	if _, ok := c.byName[name]; ok {
		return Text{}, errs.Inputf("corpus add", "duplicate text name %q", name)
	}

	t := Text{
		Id:      len(c.texts),
		Name:    name,
		Labels:  append([]string(nil), labels...),
		Content: content,
	}
	c.texts = append(c.texts, t)
	c.byName[name] = t.Id
	return t, nil
}

// Len returns the number of texts.
func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}
	return len(c.texts)
}

// Text returns the text with the given id.
func (c *Corpus) Text(id int) (Text, error) {
	if id < 0 || id >= c.Len() {
		return Text{}, errs.NotFound("text id %d (corpus has %d texts)", id, c.Len())
	}
	return c.texts[id], nil
}

// ByName returns the text with the given name.
func (c *Corpus) ByName(name string) (Text, error) {
	id, ok := c.byName[name]
	if !ok {
		return Text{}, errs.NotFound("text %q", name)
	}
	return c.texts[id], nil
}

// Texts returns the texts in insertion order. The slice is a copy.
func (c *Corpus) Texts() []Text {
	if c == nil {
		return nil
	}
	out := make([]Text, len(c.texts))
	copy(out, c.texts)
	return out
}

// Names returns the text names in insertion order.
func (c *Corpus) Names() []string {
	names := make([]string, 0, c.Len())
	for _, t := range c.Texts() {
		names = append(names, t.Name)
	}
	return names
}

// Filter returns a new Corpus with the texts matching all labels.
func (c *Corpus) Filter(labels []string) *Corpus {
	sub := &Corpus{byName: map[string]int{}}
	for _, t := range c.Texts() {
		if !t.HasLabels(labels) {
			continue
		}
		_, _ = sub.Add(t.Name, t.Content, t.Labels...)
	}
	return sub
}

func defaultName(i int) string {
	return "text" + strconv.Itoa(i+1)
}

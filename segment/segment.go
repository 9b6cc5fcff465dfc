// Package segment splits texts into ordered sub-texts, at the matches of a
// delimiter regular expression or at sentence boundaries.
package segment

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/revelaction/concord/corpus"
	"github.com/revelaction/concord/errs"
	"github.com/rivo/uniseg"
)

// Segment is a part of a text.
type Segment struct {
	// Index is the position of the segment in its text, starting at 0. The
	// segment at 0 holds the content before the first delimiter.
	Index int `json:"index"`

	// Delimiter is the text matched by the pattern that opens the segment.
	// Empty for the leading segment.
	Delimiter string `json:"delimiter,omitempty"`

	Content string `json:"content"`
}

// Options controls the segment content.
type Options struct {
	// KeepDelimiter prepends the delimiter match to the segment content.
	KeepDelimiter bool

	// Trim removes leading and trailing white space from the content.
	Trim bool
}

// Compile compiles a delimiter pattern. Empty patterns, malformed patterns
// and patterns that match the empty string are input errors.
func Compile(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, errs.Input("segment", "empty delimiter pattern")
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errs.WrapInput("segment", "malformed delimiter pattern", err)
	}

	if re.MatchString("") {
		return nil, errs.Inputf("segment", "delimiter pattern %q matches the empty string", pattern)
	}

	return re, nil
}

// Text splits content at each match of pattern.
//
// The result has one leading segment with the content before the first
// match (possibly empty) followed by one segment per match. Without
// matches the result is a single segment equal to content.
func Text(content, pattern string, opts Options) ([]Segment, error) {
	re, err := Compile(pattern)
	if err != nil {
		return nil, err
	}

	return Split(content, re, opts), nil
}

// Split is Text with a compiled delimiter.
func Split(content string, re *regexp.Regexp, opts Options) []Segment {
	locs := re.FindAllStringIndex(content, -1)

	segments := make([]Segment, 0, len(locs)+1)

	first := len(content)
	if len(locs) > 0 {
		first = locs[0][0]
	}
	segments = append(segments, newSegment(0, "", content[:first], opts))

	for i, loc := range locs {
		end := len(content)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}

		delim := content[loc[0]:loc[1]]
		segments = append(segments, newSegment(i+1, delim, content[loc[1]:end], opts))
	}

	return segments
}

// Corpus returns a new corpus with one text per segment of each text of c.
// Derived texts are named "<name>.<n>", n starting at 1, and keep the
// parent labels. c is not modified.
func Corpus(c *corpus.Corpus, pattern string, opts Options) (*corpus.Corpus, error) {
	re, err := Compile(pattern)
	if err != nil {
		return nil, err
	}

	out := &corpus.Corpus{}
	for _, t := range c.Texts() {
		for _, seg := range Split(t.Content, re, opts) {
			name := t.Name + "." + strconv.Itoa(seg.Index+1)
			if _, err := out.Add(name, seg.Content, t.Labels...); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}

// Sentences splits content at Unicode sentence boundaries. White space only
// sentences are skipped and sentences are trimmed.
func Sentences(content string) []Segment {
	segments := []Segment{}
	state := -1
	var sentence string
	for len(content) > 0 {
		sentence, content, state = uniseg.FirstSentenceInString(content, state)
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		segments = append(segments, Segment{Index: len(segments), Content: sentence})
	}

	return segments
}

func newSegment(index int, delim, content string, opts Options) Segment {
	if opts.KeepDelimiter {
		content = delim + content
	}

	if opts.Trim {
		content = strings.TrimSpace(content)
	}

	return Segment{Index: index, Delimiter: delim, Content: content}
}

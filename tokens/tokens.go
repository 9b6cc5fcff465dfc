// Package tokens splits texts into word tokens on Unicode word boundaries
// and applies the token level transformations: punctuation, number and
// symbol removal, lowercasing, stopword removal and stemming.
package tokens

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kljensen/snowball/english"
	"github.com/revelaction/concord/corpus"
	"github.com/revelaction/concord/errs"
	"github.com/rivo/uniseg"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Options is the tokenization policy. A corpus is always tokenized with a
// single Options value.
type Options struct {
	// RemovePunct drops tokens made only of punctuation marks.
	RemovePunct bool `yaml:"removePunct" json:"remove_punct"`

	// RemoveNumbers drops numeric tokens ("1851", "3.14", "1,000").
	RemoveNumbers bool `yaml:"removeNumbers" json:"remove_numbers"`

	// RemoveSymbols drops tokens made only of symbols ("$", "+", "©").
	RemoveSymbols bool `yaml:"removeSymbols" json:"remove_symbols"`

	Lowercase bool `yaml:"lowercase" json:"lowercase"`

	// KeepAcronyms leaves all upper-case tokens unchanged when lowercasing.
	KeepAcronyms bool `yaml:"keepAcronyms" json:"keep_acronyms"`

	// RemoveStopwords drops EnglishStopwords (compared case-insensitively).
	RemoveStopwords bool `yaml:"stopwords" json:"stopwords"`

	// Stem applies the Snowball English stemmer.
	Stem bool `yaml:"stem" json:"stem"`
}

// Sequence is the ordered list of tokens of one text. The position of a
// token is its index.
type Sequence []string

// Document is the token sequence of a corpus text.
type Document struct {
	Id     int      `json:"id"`
	Name   string   `json:"name"`
	Tokens Sequence `json:"tokens"`
}

// Tokenize splits s into tokens following opts. The empty string yields an
// empty sequence. Invalid UTF-8 is an input error.
func Tokenize(s string, opts Options) (Sequence, error) {
	if !utf8.ValidString(s) {
		return nil, errs.Input("tokenize", "text is not valid UTF-8")
	}

	seq := Sequence{}
	state := -1
	var word string
	for len(s) > 0 {
		word, s, state = uniseg.FirstWordInString(s, state)

		switch {
		case isSpace(word):
			continue
		case opts.RemovePunct && isPunct(word):
			continue
		case opts.RemoveSymbols && isSymbol(word):
			continue
		case opts.RemoveNumbers && isNumber(word):
			continue
		}

		seq = append(seq, word)
	}

	if opts.Lowercase {
		seq = seq.Lower(opts.KeepAcronyms)
	}

	if opts.RemoveStopwords {
		seq = seq.Remove(EnglishStopwords)
	}

	if opts.Stem {
		seq = seq.Stem()
	}

	return seq, nil
}

// TokenizeText tokenizes a corpus text. A nil text is an input error.
func TokenizeText(t *corpus.Text, opts Options) (Document, error) {
	if t == nil {
		return Document{}, errs.Input("tokenize", "nil text")
	}

	seq, err := Tokenize(t.Content, opts)
	if err != nil {
		return Document{}, err
	}

	return Document{Id: t.Id, Name: t.Name, Tokens: seq}, nil
}

// Lower lowercases the whole text. With keepAcronyms, words that are
// entirely upper-case are left unchanged. Lower is idempotent.
func Lower(s string, keepAcronyms bool) string {
	if !keepAcronyms {
		return lower(s)
	}

	var b strings.Builder
	b.Grow(len(s))
	state := -1
	var word string
	for len(s) > 0 {
		word, s, state = uniseg.FirstWordInString(s, state)
		if isAcronym(word) {
			b.WriteString(word)
			continue
		}
		b.WriteString(lower(word))
	}

	return b.String()
}

// Lower returns a new sequence with lowercased tokens.
func (s Sequence) Lower(keepAcronyms bool) Sequence {
	out := make(Sequence, len(s))
	for i, tok := range s {
		if keepAcronyms && isAcronym(tok) {
			out[i] = tok
			continue
		}
		out[i] = lower(tok)
	}
	return out
}

// Remove returns a new sequence without the tokens in set. Tokens are
// compared lowercased.
func (s Sequence) Remove(set map[string]struct{}) Sequence {
	out := make(Sequence, 0, len(s))
	for _, tok := range s {
		if _, ok := set[lower(tok)]; ok {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// Keep returns a new sequence with only the tokens in set.
func (s Sequence) Keep(set map[string]struct{}) Sequence {
	out := make(Sequence, 0, len(s))
	for _, tok := range s {
		if _, ok := set[tok]; ok {
			out = append(out, tok)
		}
	}
	return out
}

// Stem returns a new sequence with Snowball English stems. Punctuation and
// numbers pass through.
func (s Sequence) Stem() Sequence {
	out := make(Sequence, len(s))
	for i, tok := range s {
		if !hasLetter(tok) {
			out[i] = tok
			continue
		}
		out[i] = english.Stem(tok, false)
	}
	return out
}

// Ngrams returns the n-grams of the sequence joined by sep. n < 1 or n
// greater than the sequence length yields an empty sequence.
func (s Sequence) Ngrams(n int, sep string) Sequence {
	if n < 1 || n > len(s) {
		return Sequence{}
	}

	out := make(Sequence, 0, len(s)-n+1)
	for i := 0; i+n <= len(s); i++ {
		out = append(out, strings.Join(s[i:i+n], sep))
	}
	return out
}

// Types returns the distinct tokens in first-seen order.
func (s Sequence) Types() []string {
	seen := make(map[string]struct{}, len(s))
	types := []string{}
	for _, tok := range s {
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		types = append(types, tok)
	}
	return types
}

func lower(s string) string {
	// a Caser keeps state and is not safe for concurrent use
	return cases.Lower(language.Und).String(s)
}

func isSpace(s string) bool {
	return strings.TrimFunc(s, unicode.IsSpace) == ""
}

func isPunct(s string) bool {
	return allRunes(s, unicode.IsPunct)
}

func isSymbol(s string) bool {
	return allRunes(s, unicode.IsSymbol)
}

// isNumber reports whether s contains a digit and only digits or the
// separators UAX #29 keeps inside numbers.
func isNumber(s string) bool {
	hasDigit := false
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case r == '.' || r == ',' || r == '\'' || r == '_':
		default:
			return false
		}
	}
	return hasDigit
}

// isAcronym reports whether s has at least two letters and no lower-case
// letter.
func isAcronym(s string) bool {
	letters := 0
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			letters++
		}
	}
	return letters >= 2
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func allRunes(s string, f func(rune) bool) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !f(r) {
			return false
		}
	}
	return true
}

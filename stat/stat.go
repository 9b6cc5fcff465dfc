package stat

import (
	"github.com/revelaction/concord/corpus"
	"github.com/revelaction/concord/segment"
	"github.com/revelaction/concord/tokens"
)

// Handler aggregates text statistics over a corpus.
type Handler struct {
	opts  tokens.Options
	stats Stats
	types map[string]struct{}
}

// TextStats are the counts of one text.
type TextStats struct {
	Name      string `json:"name"`
	Tokens    int    `json:"tokens"`
	Types     int    `json:"types"`
	Sentences int    `json:"sentences"`
}

// Stats are the corpus counts. NumTypes counts distinct tokens over the
// whole corpus.
type Stats struct {
	NumTexts          int `json:"num_texts"`
	NumTokens         int `json:"num_tokens"`
	NumTypes          int `json:"num_types"`
	NumSentences      int `json:"num_sentences"`
	TokensPerTextMean int `json:"tokens_per_text_mean"`

	// TokensPerTextDis maps a token count to the number of texts with it.
	TokensPerTextDis map[int]int `json:"tokens_per_text_dis"`

	Texts []TextStats `json:"texts"`
}

func (h *Handler) Get() Stats {
	return h.stats
}

// NewHandler returns a Handler counting tokens as tokenized with opts.
func NewHandler(opts tokens.Options) *Handler {
	stats := Stats{TokensPerTextDis: map[int]int{}}
	return &Handler{
		opts:  opts,
		stats: stats,
		types: map[string]struct{}{},
	}
}

// Aggregate adds the counts of t.
func (h *Handler) Aggregate(t corpus.Text) error {
	seq, err := tokens.Tokenize(t.Content, h.opts)
	if err != nil {
		return err
	}

	ts := TextStats{
		Name:      t.Name,
		Tokens:    len(seq),
		Types:     len(seq.Types()),
		Sentences: len(segment.Sentences(t.Content)),
	}

	for _, tok := range seq {
		h.types[tok] = struct{}{}
	}

	h.stats.Texts = append(h.stats.Texts, ts)
	h.stats.NumTexts++
	h.stats.NumTokens += ts.Tokens
	h.stats.NumSentences += ts.Sentences
	h.stats.NumTypes = len(h.types)
	h.stats.TokensPerTextDis[ts.Tokens]++
	h.stats.TokensPerTextMean = h.stats.NumTokens / h.stats.NumTexts

	return nil
}

// Summarize returns the statistics of every text of c.
func Summarize(c *corpus.Corpus, opts tokens.Options) (Stats, error) {
	h := NewHandler(opts)
	for _, t := range c.Texts() {
		if err := h.Aggregate(t); err != nil {
			return Stats{}, err
		}
	}
	return h.Get(), nil
}

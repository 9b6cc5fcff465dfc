// Package kwic finds keywords in context: the positions of a pattern in
// token sequences together with the surrounding tokens.
package kwic

import (
	"context"
	"runtime"

	"github.com/revelaction/concord/errs"
	"github.com/revelaction/concord/logging"
	"github.com/revelaction/concord/tokens"
	"golang.org/x/sync/errgroup"
)

// Match is one occurrence of the pattern.
type Match struct {
	DocId   int    `json:"doc_id"`
	DocName string `json:"doc_name"`

	// From and To are the 0-based positions of the first and last matched
	// tokens.
	From int `json:"from"`
	To   int `json:"to"`

	Pre     []string `json:"pre"`
	Keyword []string `json:"keyword"`
	Post    []string `json:"post"`

	// DocLength is the number of tokens of the document.
	DocLength int `json:"doc_length"`
}

// RelativePosition is From normalized by the document length, in [0, 1).
func (m Match) RelativePosition() float64 {
	if m.DocLength == 0 {
		return 0
	}
	return float64(m.From) / float64(m.DocLength)
}

// Result holds the matches of a search, ordered by document (input order)
// and then by position.
type Result struct {
	Pattern Pattern `json:"pattern"`
	Window  int     `json:"window"`
	Matches []Match `json:"matches"`

	// Docs are the names of the searched documents, in input order.
	Docs []string `json:"docs"`

	// DocMatches is the number of matches per searched document, in Docs
	// order.
	DocMatches []int `json:"doc_matches"`

	// IsMultiDocument is set when more than one document was searched. A
	// single document result is meant for absolute positions, a multi
	// document one for positions relative to each document length.
	IsMultiDocument bool `json:"is_multi_document"`
}

// Point is a match position for a lexical dispersion plot.
type Point struct {
	DocId    int     `json:"doc_id"`
	DocName  string  `json:"doc_name"`
	Position int     `json:"position"`
	Relative float64 `json:"relative"`
}

// Dispersion returns one point per match.
func (r *Result) Dispersion() []Point {
	points := make([]Point, len(r.Matches))
	for i, m := range r.Matches {
		points[i] = Point{
			DocId:    m.DocId,
			DocName:  m.DocName,
			Position: m.From,
			Relative: m.RelativePosition(),
		}
	}
	return points
}

// Counts returns the number of matches per searched document, in Docs order.
func (r *Result) Counts() []int {
	counts := make([]int, len(r.Docs))
	copy(counts, r.DocMatches)
	return counts
}

// Search scans docs for p with the default Compiler, returning window
// tokens of context on each side.
func Search(docs []tokens.Document, p Pattern, window int) (*Result, error) {
	return defaultCompiler.Search(docs, p, window)
}

// SearchText tokenizes text with opts and searches it as a single document.
func SearchText(text string, p Pattern, window int, opts tokens.Options) (*Result, error) {
	seq, err := tokens.Tokenize(text, opts)
	if err != nil {
		return nil, err
	}

	return Search([]tokens.Document{{Name: "text1", Tokens: seq}}, p, window)
}

// SearchCorpus is SearchCorpus of the default Compiler.
func SearchCorpus(ctx context.Context, docs []tokens.Document, p Pattern, window int) (*Result, error) {
	return defaultCompiler.SearchCorpus(ctx, docs, p, window)
}

// Search scans docs for p, returning window tokens of context on each side.
func (c *Compiler) Search(docs []tokens.Document, p Pattern, window int) (*Result, error) {
	return c.SearchCorpus(context.Background(), docs, p, window)
}

// SearchCorpus is Search with documents scanned concurrently. Matches are
// assembled in input document order.
func (c *Compiler) SearchCorpus(ctx context.Context, docs []tokens.Document, p Pattern, window int) (*Result, error) {
	if window < 0 {
		return nil, errs.Inputf("kwic", "negative window %d", window)
	}

	m, err := c.Compile(p)
	if err != nil {
		return nil, err
	}

	perDoc := make([][]Match, len(docs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i := range docs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			perDoc[i] = searchDoc(docs[i], m, window)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{
		Pattern:         p,
		Window:          window,
		Matches:         []Match{},
		Docs:            make([]string, len(docs)),
		DocMatches:      make([]int, len(docs)),
		IsMultiDocument: len(docs) > 1,
	}

	for i, d := range docs {
		res.Docs[i] = d.Name
		res.DocMatches[i] = len(perDoc[i])
		res.Matches = append(res.Matches, perDoc[i]...)
	}

	logging.WithComponent("kwic").Debug("search done", "pattern", p.Value, "type", p.Type.String(), "docs", len(docs), "matches", len(res.Matches))
	return res, nil
}

// searchDoc returns the non overlapping matches of m in doc.
func searchDoc(doc tokens.Document, m Matcher, window int) []Match {
	toks := doc.Tokens
	span := m.Span()

	var matches []Match
	for i := 0; i+span <= len(toks); {
		if !m.MatchAt(toks, i) {
			i++
			continue
		}

		end := i + span
		matches = append(matches, Match{
			DocId:     doc.Id,
			DocName:   doc.Name,
			From:      i,
			To:        end - 1,
			Pre:       clone(toks[max(0, i-window):i]),
			Keyword:   clone(toks[i:end]),
			Post:      clone(toks[end:min(len(toks), end+window)]),
			DocLength: len(toks),
		})
		i = end
	}

	return matches
}

func clone(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}

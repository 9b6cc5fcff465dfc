// Package dfm builds document-feature matrices: documents as rows, distinct
// features (terms) as columns and counts, or weighted counts, as cells.
//
// Columns are ordered by first occurrence, scanning documents in input
// order and tokens in sequence order. A Matrix is never modified after
// construction: weighting, scaling and selection return new matrices.
package dfm

import (
	"context"
	"math"
	"sort"

	"github.com/revelaction/concord/corpus"
	"github.com/revelaction/concord/errs"
	"github.com/revelaction/concord/logging"
	"github.com/revelaction/concord/tokens"
)

// Matrix is a sparse document-feature matrix. Absent cells are zero.
type Matrix struct {
	docNames []string
	docIds   []int

	features []string
	index    map[string]int

	// rows[d] maps a column index to a non zero value
	rows []map[int]float64

	// counts are the unweighted rows. Weight always starts from them.
	counts []map[int]float64

	scheme Scheme
}

// FeatureValue is a feature with its (summed) value.
type FeatureValue struct {
	Feature string  `json:"feature"`
	Value   float64 `json:"value"`
}

// Build counts the tokens of each document.
func Build(docs []tokens.Document) *Matrix {
	m := &Matrix{
		docNames: make([]string, len(docs)),
		docIds:   make([]int, len(docs)),
		index:    map[string]int{},
		rows:     make([]map[int]float64, len(docs)),
		counts:   make([]map[int]float64, len(docs)),
		scheme:   Count,
	}

	for d, doc := range docs {
		m.docNames[d] = doc.Name
		m.docIds[d] = doc.Id
		row := map[int]float64{}
		for _, tok := range doc.Tokens {
			col, ok := m.index[tok]
			if !ok {
				col = len(m.features)
				m.index[tok] = col
				m.features = append(m.features, tok)
			}
			row[col]++
		}
		m.rows[d] = row
		m.counts[d] = row
	}

	logging.WithComponent("dfm").Debug("dfm built", "docs", m.NDoc(), "features", m.NFeat())
	return m
}

// FromCorpus tokenizes every text of c with opts and counts the tokens.
func FromCorpus(ctx context.Context, c *corpus.Corpus, opts tokens.Options) (*Matrix, error) {
	docs, err := tokens.Corpus(ctx, c, opts)
	if err != nil {
		return nil, err
	}
	return Build(docs), nil
}

// NDoc returns the number of documents (rows).
func (m *Matrix) NDoc() int {
	return len(m.rows)
}

// NFeat returns the number of features (columns).
func (m *Matrix) NFeat() int {
	return len(m.features)
}

// Scheme returns the weighting applied to the counts.
func (m *Matrix) Scheme() Scheme {
	return m.scheme
}

// Features returns the column names.
func (m *Matrix) Features() []string {
	return append([]string(nil), m.features...)
}

// DocNames returns the row names.
func (m *Matrix) DocNames() []string {
	return append([]string(nil), m.docNames...)
}

// DocIds returns the corpus ids of the rows.
func (m *Matrix) DocIds() []int {
	return append([]int(nil), m.docIds...)
}

// HasFeature reports whether feature is a column.
func (m *Matrix) HasFeature(feature string) bool {
	_, ok := m.index[feature]
	return ok
}

// Value returns the cell of document row doc and feature. Unknown features
// and out of range rows read as zero.
func (m *Matrix) Value(doc int, feature string) float64 {
	col, ok := m.index[feature]
	if !ok || doc < 0 || doc >= len(m.rows) {
		return 0
	}
	return m.rows[doc][col]
}

// Column returns the values of feature for every document. An unknown
// feature yields a zero filled column.
func (m *Matrix) Column(feature string) []float64 {
	out := make([]float64, len(m.rows))
	col, ok := m.index[feature]
	if !ok {
		return out
	}

	for d, row := range m.rows {
		out[d] = row[col]
	}
	return out
}

// Row returns the values of document row doc, in column order.
func (m *Matrix) Row(doc int) ([]float64, error) {
	if doc < 0 || doc >= len(m.rows) {
		return nil, errs.Inputf("dfm row", "document index %d out of range (%d documents)", doc, len(m.rows))
	}

	out := make([]float64, len(m.features))
	for col, v := range m.rows[doc] {
		out[col] = v
	}
	return out, nil
}

// RowByName returns the row of the document named name.
func (m *Matrix) RowByName(name string) ([]float64, error) {
	for d, n := range m.docNames {
		if n == name {
			return m.Row(d)
		}
	}
	return nil, errs.NotFound("document %q", name)
}

// Dense returns the matrix as rows of values in column order.
func (m *Matrix) Dense() [][]float64 {
	out := make([][]float64, len(m.rows))
	for d := range m.rows {
		// d is always in range
		out[d], _ = m.Row(d)
	}
	return out
}

// RowSums returns the total of each row. For a count matrix this is the
// number of tokens of each document.
func (m *Matrix) RowSums() []float64 {
	out := make([]float64, len(m.rows))
	for d, row := range m.rows {
		out[d] = sumRow(row)
	}
	return out
}

// ColSums returns the total of each column.
func (m *Matrix) ColSums() []float64 {
	out := make([]float64, len(m.features))
	for _, row := range m.rows {
		for col, v := range row {
			out[col] += v
		}
	}
	return out
}

// DocFreq returns the number of documents with a non zero value for each
// column.
func (m *Matrix) DocFreq() []int {
	out := make([]int, len(m.features))
	for _, row := range m.rows {
		for col, v := range row {
			if v != 0 {
				out[col]++
			}
		}
	}
	return out
}

// TopFeatures returns the n features with the highest column sums. Ties keep
// column order. n < 1 or greater than NFeat returns every feature.
func (m *Matrix) TopFeatures(n int) []FeatureValue {
	sums := m.ColSums()
	top := make([]FeatureValue, len(sums))
	for col, v := range sums {
		top[col] = FeatureValue{Feature: m.features[col], Value: v}
	}

	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Value > top[j].Value
	})

	if n > 0 && n < len(top) {
		top = top[:n]
	}
	return top
}

// Select returns a matrix with only the given features, in column order.
// Unknown features are ignored.
func (m *Matrix) Select(features []string) *Matrix {
	keep := map[int]bool{}
	for _, f := range features {
		if col, ok := m.index[f]; ok {
			keep[col] = true
		}
	}
	return m.subset(func(col int) bool { return keep[col] })
}

// Remove returns a matrix without the given features.
func (m *Matrix) Remove(features []string) *Matrix {
	drop := map[int]bool{}
	for _, f := range features {
		if col, ok := m.index[f]; ok {
			drop[col] = true
		}
	}
	return m.subset(func(col int) bool { return !drop[col] })
}

// Trim returns a matrix with the features whose column sum, on the current
// values, is at least minCount.
func (m *Matrix) Trim(minCount float64) *Matrix {
	sums := m.ColSums()
	return m.subset(func(col int) bool { return sums[col] >= minCount })
}

// subset copies the matrix keeping the columns for which keep is true.
func (m *Matrix) subset(keep func(col int) bool) *Matrix {
	out := m.emptyCopy()

	remap := make(map[int]int, len(m.features))
	for col, f := range m.features {
		if !keep(col) {
			continue
		}
		remap[col] = len(out.features)
		out.index[f] = len(out.features)
		out.features = append(out.features, f)
	}

	for d := range m.rows {
		out.rows[d] = remapRow(m.rows[d], remap)
		out.counts[d] = remapRow(m.counts[d], remap)
	}

	return out
}

func remapRow(row map[int]float64, remap map[int]int) map[int]float64 {
	nr := make(map[int]float64, len(row))
	for col, v := range row {
		if nc, ok := remap[col]; ok {
			nr[nc] = v
		}
	}
	return nr
}

// emptyCopy returns a matrix with the same documents and scheme, and no
// feature.
func (m *Matrix) emptyCopy() *Matrix {
	return &Matrix{
		docNames: m.DocNames(),
		docIds:   m.DocIds(),
		index:    map[string]int{},
		rows:     make([]map[int]float64, len(m.rows)),
		counts:   make([]map[int]float64, len(m.rows)),
		scheme:   m.scheme,
	}
}

// Ratio divides a by b elementwise. x/0 is +Inf (or -Inf) and 0/0 is NaN.
// Slices of different length are an input error.
func Ratio(a, b []float64) ([]float64, error) {
	if len(a) != len(b) {
		return nil, errs.Inputf("dfm ratio", "length mismatch %d != %d", len(a), len(b))
	}

	out := make([]float64, len(a))
	for i := range a {
		switch {
		case b[i] != 0:
			out[i] = a[i] / b[i]
		case a[i] == 0:
			out[i] = math.NaN()
		default:
			out[i] = math.Inf(sign(a[i]))
		}
	}
	return out, nil
}

func sign(x float64) int {
	if x < 0 {
		return -1
	}
	return 1
}

func sumRow(row map[int]float64) float64 {
	// sum in column order for deterministic floating point results
	cols := make([]int, 0, len(row))
	for col := range row {
		cols = append(cols, col)
	}
	sort.Ints(cols)

	total := 0.0
	for _, col := range cols {
		total += row[col]
	}
	return total
}

package stat

import (
	"github.com/revelaction/concord/dfm"
)

// FeatureFrequency is a row of a frequency table.
type FeatureFrequency struct {
	Feature   string  `json:"feature"`
	Frequency float64 `json:"frequency"`

	// Rank starts at 1. Tied frequencies share the lowest rank.
	Rank    int `json:"rank"`
	DocFreq int `json:"docfreq"`
}

// Frequency returns the n most frequent features of m. n < 1 returns all
// of them. Ties keep the matrix column order.
func Frequency(m *dfm.Matrix, n int) []FeatureFrequency {
	docFreq := m.DocFreq()
	col := make(map[string]int, m.NFeat())
	for i, f := range m.Features() {
		col[f] = i
	}

	top := m.TopFeatures(n)
	out := make([]FeatureFrequency, len(top))
	for i, fv := range top {
		rank := i + 1
		if i > 0 && fv.Value == top[i-1].Value {
			rank = out[i-1].Rank
		}

		out[i] = FeatureFrequency{
			Feature:   fv.Feature,
			Frequency: fv.Value,
			Rank:      rank,
			DocFreq:   docFreq[col[fv.Feature]],
		}
	}
	return out
}

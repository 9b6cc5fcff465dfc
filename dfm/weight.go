package dfm

import (
	"math"
	"strings"

	"github.com/revelaction/concord/errs"
)

// Scheme is a weighting of the cell counts.
type Scheme int

const (
	// Count keeps the values.
	Count Scheme = iota

	// RelFreq divides each cell by its row total.
	RelFreq

	// PropMax divides each cell by its row maximum.
	PropMax

	// Boolean sets each non zero cell to 1.
	Boolean

	// LogCount replaces each non zero cell x by 1 + log10(x).
	LogCount
)

var schemeNames = map[string]Scheme{
	"count":    Count,
	"prop":     RelFreq,
	"relfreq":  RelFreq,
	"propmax":  PropMax,
	"boolean":  Boolean,
	"logcount": LogCount,
}

// SupportedSchemes returns the scheme names.
func SupportedSchemes() []string {
	return []string{"count", "prop", "propmax", "boolean", "logcount"}
}

func (s Scheme) String() string {
	names := SupportedSchemes()
	if int(s) < 0 || int(s) >= len(names) {
		return "unknown"
	}
	return names[s]
}

// ParseScheme returns the scheme named name ("relFreq" is an alias of
// "prop").
func ParseScheme(name string) (Scheme, error) {
	s, ok := schemeNames[strings.ToLower(name)]
	if !ok {
		return Count, errs.Inputf("dfm weight", "unknown scheme %q, allowed values are %s", name, strings.Join(SupportedSchemes(), ", "))
	}
	return s, nil
}

type weightConfig struct {
	multiplier float64
}

// WeightOption configures Weight.
type WeightOption func(*weightConfig)

// WithMultiplier scales the weighted values by k (100 for percentages).
func WithMultiplier(k float64) WeightOption {
	return func(c *weightConfig) {
		c.multiplier = k
	}
}

// Weight returns a new matrix with the scheme applied to the counts of
// every row, whatever the current weighting of m. Rows with a zero total
// (or maximum) stay zero.
func (m *Matrix) Weight(scheme Scheme, opts ...WeightOption) *Matrix {
	cfg := weightConfig{multiplier: 1}
	for _, opt := range opts {
		opt(&cfg)
	}

	out := m.sameColumns()
	out.scheme = scheme

	for d, row := range m.counts {
		nr := make(map[int]float64, len(row))

		var denom float64
		switch scheme {
		case RelFreq:
			denom = sumRow(row)
		case PropMax:
			denom = maxRow(row)
		}

		for col, v := range row {
			var w float64
			switch scheme {
			case RelFreq, PropMax:
				if denom == 0 {
					continue
				}
				w = v / denom
			case Boolean:
				if v != 0 {
					w = 1
				}
			case LogCount:
				if v > 0 {
					w = 1 + math.Log10(v)
				}
			default:
				w = v
			}

			w *= cfg.multiplier
			if w != 0 {
				nr[col] = w
			}
		}
		out.rows[d] = nr
	}

	return out
}

// Scale returns a new matrix with every current cell multiplied by k. The
// scheme is kept.
func (m *Matrix) Scale(k float64) *Matrix {
	out := m.sameColumns()
	for d, row := range m.rows {
		nr := make(map[int]float64, len(row))
		for col, v := range row {
			if w := v * k; w != 0 {
				nr[col] = w
			}
		}
		out.rows[d] = nr
	}
	return out
}

// sameColumns returns a matrix with the columns and counts of m and no
// weighted rows.
func (m *Matrix) sameColumns() *Matrix {
	out := m.emptyCopy()
	out.features = m.Features()
	for f, col := range m.index {
		out.index[f] = col
	}
	copy(out.counts, m.counts)
	return out
}

func maxRow(row map[int]float64) float64 {
	top := 0.0
	for _, v := range row {
		if v > top {
			top = v
		}
	}
	return top
}

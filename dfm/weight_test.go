package dfm

import (
	"testing"

	"github.com/revelaction/concord/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-9

func assertDenseInDelta(t *testing.T, want, got [][]float64) {
	t.Helper()
	require.Len(t, got, len(want))
	for d := range want {
		require.Len(t, got[d], len(want[d]))
		for col := range want[d] {
			assert.InDelta(t, want[d][col], got[d][col], tolerance, "cell %d,%d", d, col)
		}
	}
}

func TestWeightRelFreqRowsSumToOne(t *testing.T) {
	m := Build(docs("the whale the sea the end", "a b c", "", "x x"))
	w := m.Weight(RelFreq)

	assert.Equal(t, RelFreq, w.Scheme())
	for d, sum := range w.RowSums() {
		if d == 2 {
			assert.Equal(t, 0.0, sum, "empty document stays a zero row")
			continue
		}
		assert.InDelta(t, 1.0, sum, tolerance)
	}

	assert.InDelta(t, 0.5, w.Value(0, "the"), tolerance)

	// input unmodified
	assert.Equal(t, 3.0, m.Value(0, "the"))
	assert.Equal(t, Count, m.Scheme())
}

func TestWeightRelFreqPercent(t *testing.T) {
	m := Build(docs("a a b b"))
	w := m.Weight(RelFreq, WithMultiplier(100))
	assert.InDelta(t, 50.0, w.Value(0, "a"), tolerance)
	assert.InDelta(t, 100.0, w.RowSums()[0], tolerance)
}

func TestWeightRelFreqIdempotent(t *testing.T) {
	m := Build(docs("a b b c c c", "d e", "f"))
	once := m.Weight(RelFreq)
	twice := once.Weight(RelFreq)
	assertDenseInDelta(t, once.Dense(), twice.Dense())
}

func TestScaleAssociative(t *testing.T) {
	m := Build(docs("a b b c c c", "d e e"))

	assertDenseInDelta(t, m.Scale(6).Dense(), m.Scale(2).Scale(3).Dense())
	assertDenseInDelta(t,
		m.Weight(RelFreq, WithMultiplier(100)).Dense(),
		m.Weight(RelFreq, WithMultiplier(10)).Scale(10).Dense(),
	)

	assert.Equal(t, RelFreq, m.Weight(RelFreq).Scale(3).Scheme())
}

func TestWeightSchemes(t *testing.T) {
	m := Build(docs("a a a a a a a a a a b", ""))

	assertDenseInDelta(t, [][]float64{{1, 0.1}, {0, 0}}, m.Weight(PropMax).Dense())
	assertDenseInDelta(t, [][]float64{{1, 1}, {0, 0}}, m.Weight(Boolean).Dense())
	assertDenseInDelta(t, [][]float64{{2, 1}, {0, 0}}, m.Weight(LogCount).Dense())
	assertDenseInDelta(t, [][]float64{{10, 1}, {0, 0}}, m.Weight(Count).Dense())
}

func TestParseScheme(t *testing.T) {
	for _, name := range SupportedSchemes() {
		s, err := ParseScheme(name)
		require.NoError(t, err)
		assert.Equal(t, name, s.String())
	}

	s, err := ParseScheme("relFreq")
	require.NoError(t, err)
	assert.Equal(t, RelFreq, s)

	_, err = ParseScheme("tfidf")
	assert.True(t, errs.IsInput(err))
}

func TestWeightStartsFromCounts(t *testing.T) {
	m := Build(docs("a a b b", "c"))

	back := m.Weight(RelFreq).Weight(Count)
	assert.Equal(t, Count, back.Scheme())
	assert.Equal(t, m.Dense(), back.Dense())
	assert.Equal(t, []float64{4, 1}, back.RowSums())
	assert.Equal(t, m, back)

	fromPercent := m.Weight(RelFreq, WithMultiplier(100)).Weight(LogCount)
	assertDenseInDelta(t, m.Weight(LogCount).Dense(), fromPercent.Dense())
	assert.InDelta(t, 1.30103, fromPercent.Value(0, "a"), 1e-5)
}

func TestWeightAfterSubset(t *testing.T) {
	m := Build(docs("a a b c", "b"))

	w := m.Weight(RelFreq).Select([]string{"a", "b"}).Weight(Count)
	assert.Equal(t, []string{"a", "b"}, w.Features())
	assertDenseInDelta(t, [][]float64{{2, 1}, {0, 1}}, w.Dense())
}

func TestScaleKeepsCounts(t *testing.T) {
	m := Build(docs("a a b b"))

	scaled := m.Weight(RelFreq).Scale(100)
	assert.InDelta(t, 50.0, scaled.Value(0, "a"), tolerance)
	assert.Equal(t, RelFreq, scaled.Scheme())
	assert.Equal(t, 2.0, scaled.Weight(Count).Value(0, "a"))
}

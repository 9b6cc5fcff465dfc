package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/revelaction/concord/corpus"
	"github.com/revelaction/concord/errs"
	"github.com/revelaction/concord/kwic"
	"github.com/revelaction/concord/stat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCorpusDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"moby.txt":    "Call me Ishmael. The whale, the white whale!",
		"emma.txt":    "Emma Woodhouse, handsome, clever, and rich",
		"labels.yaml": "moby: [melville, novel]\nemma: [austen, novel]\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, stderr bytes.Buffer
	err := newApp(UI{Out: &out, Err: &stderr}).Run(append([]string{"concord"}, args...))
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "concord version dev (commit: none)\n", out)
}

func TestLs(t *testing.T) {
	dir := newCorpusDir(t)

	out, err := run(t, "--corpus", dir, "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "emma")
	assert.Contains(t, out, "melville, novel")

	out, err = run(t, "--corpus", dir, "ls", "--labels-only")
	require.NoError(t, err)
	assert.Equal(t, "🏷  austen\n🏷  melville\n🏷  novel\n", out)
}

func TestLsUnknownRepository(t *testing.T) {
	_, err := run(t, "--corpus", filepath.Join(t.TempDir(), "missing"), "ls")
	assert.Error(t, err)
}

func TestTokens(t *testing.T) {
	dir := newCorpusDir(t)

	out, err := run(t, "--corpus", dir, "tokens", "--doc", "0")
	require.NoError(t, err)
	assert.Equal(t, "📖 emma (6): emma woodhouse handsome clever and rich\n", out)

	out, err = run(t, "--corpus", dir, "tokens", "--doc", "0", "--keep-case", "--ngrams", "2")
	require.NoError(t, err)
	assert.Equal(t, "📖 emma (5): Emma_Woodhouse Woodhouse_handsome handsome_clever clever_and and_rich\n", out)

	_, err = run(t, "--corpus", dir, "tokens", "--doc", "7")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestSegment(t *testing.T) {
	dir := newCorpusDir(t)

	out, err := run(t, "--corpus", dir, "segment", "--doc", "1", "--pattern", `\.`)
	require.NoError(t, err)
	assert.Equal(t, "[moby.1] Call me Ishmael\n[moby.2] The whale, the white whale!\n", out)

	out, err = run(t, "--corpus", dir, "segment", "--doc", "1")
	require.NoError(t, err)
	assert.Equal(t, "[moby.1] Call me Ishmael.\n[moby.2] The whale, the white whale!\n", out)

	_, err = run(t, "--corpus", dir, "segment", "--pattern", "(")
	assert.True(t, errs.IsInput(err))
}

func TestKWIC(t *testing.T) {
	dir := newCorpusDir(t)

	out, err := run(t, "--corpus", dir, "kwic", "--window", "1", "--render", "keyword", "whale")
	require.NoError(t, err)
	assert.Equal(t, "[moby, 4] whale\n[moby, 7] whale\n", out)

	out, err = run(t, "--corpus", dir, "kwic", "--type", "glob", "--render", "aggr", "--no-prefix", "wh*")
	require.NoError(t, err)
	assert.Equal(t, "whale\nwhite\n", out)
}

func TestKWICCaseSensitive(t *testing.T) {
	dir := newCorpusDir(t)

	// the tokens are lowercased, so is the value
	out, err := run(t, "--corpus", dir, "kwic", "--case-sensitive", "--render", "keyword", "Whale")
	require.NoError(t, err)
	assert.Equal(t, "[moby, 4] whale\n[moby, 7] whale\n", out)

	out, err = run(t, "--corpus", dir, "kwic", "--case-sensitive", "--keep-case", "--render", "keyword", "Whale")
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = run(t, "--corpus", dir, "kwic", "--case-sensitive", "--keep-case", "--render", "keyword", "Ishmael")
	require.NoError(t, err)
	assert.Equal(t, "[moby, 2] Ishmael\n", out)
}

func TestKWICJSON(t *testing.T) {
	dir := newCorpusDir(t)

	out, err := run(t, "--corpus", dir, "--format", "json", "kwic", "--window", "1", "the whale")
	require.NoError(t, err)

	var matches []kwic.Match
	require.NoError(t, json.Unmarshal([]byte(out), &matches))
	require.Len(t, matches, 1)
	assert.Equal(t, 3, matches[0].From)
	assert.Equal(t, 4, matches[0].To)
	assert.Equal(t, []string{"ishmael"}, matches[0].Pre)
	assert.Equal(t, []string{"the"}, matches[0].Post)
}

func TestKWICErrors(t *testing.T) {
	dir := newCorpusDir(t)

	_, err := run(t, "--corpus", dir, "kwic")
	assert.True(t, errs.IsInput(err))

	_, err = run(t, "--corpus", dir, "kwic", "--type", "wildcard", "x")
	assert.True(t, errs.IsInput(err))

	_, err = run(t, "--corpus", dir, "kwic", "--window", "-1", "x")
	assert.True(t, errs.IsInput(err))
}

func TestKWICLabels(t *testing.T) {
	dir := newCorpusDir(t)

	out, err := run(t, "--corpus", dir, "--labels", "austen", "kwic", "--render", "keyword", "whale")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestDFMJSON(t *testing.T) {
	dir := newCorpusDir(t)

	out, err := run(t, "--corpus", dir, "--format", "json", "dfm", "--features", "whale,the")
	require.NoError(t, err)

	var m matrixJSON
	require.NoError(t, json.Unmarshal([]byte(out), &m))
	assert.Equal(t, "count", m.Scheme)
	assert.Equal(t, []string{"emma", "moby"}, m.Docs)
	assert.Equal(t, []string{"the", "whale"}, m.Features)
	assert.Equal(t, [][]float64{{0, 0}, {2, 2}}, m.Values)
}

func TestDFMWeight(t *testing.T) {
	dir := newCorpusDir(t)

	out, err := run(t, "--corpus", dir, "--format", "json", "dfm", "--weight", "prop", "--multiplier", "100")
	require.NoError(t, err)

	var m matrixJSON
	require.NoError(t, json.Unmarshal([]byte(out), &m))
	assert.Equal(t, "prop", m.Scheme)
	for _, row := range m.Values {
		sum := 0.0
		for _, v := range row {
			sum += v
		}
		assert.InDelta(t, 100, sum, 1e-9)
	}

	_, err = run(t, "--corpus", dir, "dfm", "--weight", "tfidf")
	assert.True(t, errs.IsInput(err))
}

func TestDFMTable(t *testing.T) {
	dir := newCorpusDir(t)

	out, err := run(t, "--corpus", dir, "dfm", "--max-features", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "woodhouse")
	assert.Contains(t, out, "2 documents, 12 features (count)")

	out, err = run(t, "--corpus", dir, "dfm", "--top", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "the")
	assert.NotContains(t, out, "whale")
}

func TestFreq(t *testing.T) {
	dir := newCorpusDir(t)

	out, err := run(t, "--corpus", dir, "--format", "json", "freq", "--top", "3")
	require.NoError(t, err)

	var freq []stat.FeatureFrequency
	require.NoError(t, json.Unmarshal([]byte(out), &freq))
	require.Len(t, freq, 3)
	assert.Equal(t, stat.FeatureFrequency{Feature: "the", Frequency: 2, Rank: 1, DocFreq: 1}, freq[0])
	assert.Equal(t, stat.FeatureFrequency{Feature: "whale", Frequency: 2, Rank: 1, DocFreq: 1}, freq[1])
	assert.Equal(t, 3, freq[2].Rank)
}

func TestSummary(t *testing.T) {
	dir := newCorpusDir(t)

	out, err := run(t, "--corpus", dir, "--format", "json", "summary")
	require.NoError(t, err)

	var stats stat.Stats
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	assert.Equal(t, 2, stats.NumTexts)
	assert.Equal(t, 14, stats.NumTokens)
	assert.Equal(t, 3, stats.NumSentences)

	out, err = run(t, "--corpus", dir, "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "2 texts, 14 tokens")
}

func TestImport(t *testing.T) {
	dir := newCorpusDir(t)
	db := filepath.Join(t.TempDir(), "corpus.db")

	out, err := run(t, "import", "--from", dir, "--to", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Successfully imported 2 texts")

	out, err = run(t, "--corpus", db, "--format", "json", "ls")
	require.NoError(t, err)

	var texts []corpus.Text
	require.NoError(t, json.Unmarshal([]byte(out), &texts))
	require.Len(t, texts, 2)
	assert.Equal(t, "emma", texts[0].Name)
	assert.Equal(t, []string{"melville", "novel"}, texts[1].Labels)

	out, err = run(t, "--corpus", db, "kwic", "--render", "keyword", "--no-prefix", "ishmael")
	require.NoError(t, err)
	assert.Equal(t, "ishmael\n", out)

	// names are unique in a repository
	_, err = run(t, "import", "--from", dir, "--to", db)
	assert.True(t, errs.IsInput(err))
}

func TestImportMissingFlags(t *testing.T) {
	_, err := run(t, "import")
	assert.Error(t, err)
}

func TestBash(t *testing.T) {
	out, err := run(t, "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "complete -o bashdefault -o default -F _concord_autocomplete concord")
}

func TestBashCompletionListsCommands(t *testing.T) {
	out, err := run(t, "--generate-bash-completion")
	require.NoError(t, err)
	assert.Contains(t, out, "kwic")
	assert.Contains(t, out, "dfm")
}

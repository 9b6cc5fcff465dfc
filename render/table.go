package render

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/revelaction/concord/dfm"
	"github.com/revelaction/concord/stat"
)

// Table renders rows under headers with rounded borders. aligns sets the
// alignment of the first columns, the others are left aligned.
func Table(headers []string, rows [][]string, aligns []text.Align) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] != text.AlignDefault {
			align = aligns[i]
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

// DFM writes the matrix as a table, documents as rows. maxFeat limits the
// columns to the first features (0 for all).
func DFM(w io.Writer, m *dfm.Matrix, maxFeat int) {
	features := m.Features()
	if maxFeat > 0 && maxFeat < len(features) {
		features = features[:maxFeat]
	}

	headers := append([]string{"doc"}, features...)
	aligns := []text.Align{text.AlignLeft}
	for range features {
		aligns = append(aligns, text.AlignRight)
	}

	names := m.DocNames()
	dense := m.Dense()
	rows := make([][]string, len(dense))
	for d, values := range dense {
		row := []string{names[d]}
		for col := range features {
			row = append(row, FormatValue(values[col]))
		}
		rows[d] = row
	}

	fmt.Fprintln(w, Table(headers, rows, aligns))
	fmt.Fprintf(w, "%d documents, %d features (%s)\n", m.NDoc(), m.NFeat(), m.Scheme())
}

// Frequency writes a frequency table.
func Frequency(w io.Writer, freq []stat.FeatureFrequency) {
	rows := make([][]string, len(freq))
	for i, f := range freq {
		rows[i] = []string{f.Feature, FormatValue(f.Frequency), strconv.Itoa(f.Rank), strconv.Itoa(f.DocFreq)}
	}

	fmt.Fprintln(w, Table(
		[]string{"feature", "frequency", "rank", "docfreq"},
		rows,
		[]text.Align{text.AlignLeft, text.AlignRight, text.AlignRight, text.AlignRight},
	))
}

// Summary writes the per text statistics and the corpus totals.
func Summary(w io.Writer, stats stat.Stats) {
	rows := make([][]string, 0, len(stats.Texts)+1)
	for _, ts := range stats.Texts {
		rows = append(rows, []string{ts.Name, strconv.Itoa(ts.Types), strconv.Itoa(ts.Tokens), strconv.Itoa(ts.Sentences)})
	}

	fmt.Fprintln(w, Table(
		[]string{"text", "types", "tokens", "sentences"},
		rows,
		[]text.Align{text.AlignLeft, text.AlignRight, text.AlignRight, text.AlignRight},
	))
	fmt.Fprintf(w, "%d texts, %d tokens, %d types, %d sentences, %d tokens per text\n",
		stats.NumTexts, stats.NumTokens, stats.NumTypes, stats.NumSentences, stats.TokensPerTextMean)
}

// FormatValue prints counts as integers and weights with up to 4 decimals.
func FormatValue(v float64) string {
	if v == math.Trunc(v) && !math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	s := strconv.FormatFloat(v, 'f', 4, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	return s
}

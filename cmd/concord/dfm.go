package main

import (
	"fmt"
	"strings"

	"github.com/revelaction/concord/config"
	"github.com/revelaction/concord/dfm"
	"github.com/revelaction/concord/logging"
	"github.com/revelaction/concord/render"
	"github.com/urfave/cli/v2"
)

func matrixFlags() []cli.Flag {
	return append(tokenFlags(),
		&cli.StringFlag{Name: "weight", Usage: "weighting scheme: " + strings.Join(dfm.SupportedSchemes(), ", ")},
		&cli.Float64Flag{Name: "multiplier", Usage: "scale factor applied after weighting"},
		&cli.StringSliceFlag{Name: "features", Usage: "keep only these features"},
		&cli.StringSliceFlag{Name: "remove", Usage: "remove these features"},
		&cli.Float64Flag{Name: "min-count", Usage: "remove features with a lower total"},
	)
}

// buildMatrix builds the dfm of the loaded corpus and applies the subset and
// weighting flags. Subsets are taken on counts, before weighting.
func buildMatrix(c *cli.Context, cfg *config.Config, ui UI) (*dfm.Matrix, error) {
	if s := c.String("weight"); s != "" {
		cfg.Weight.Scheme = s
	}
	if c.IsSet("multiplier") {
		cfg.Weight.Multiplier = c.Float64("multiplier")
	}

	scheme, err := cfg.Scheme()
	if err != nil {
		return nil, err
	}

	cp, err := loadCorpus(c, cfg, ui)
	if err != nil {
		return nil, err
	}

	m, err := dfm.FromCorpus(c.Context, cp, tokenOptions(c, cfg))
	if err != nil {
		return nil, err
	}

	if f := c.StringSlice("features"); len(f) > 0 {
		m = m.Select(f)
	}
	if f := c.StringSlice("remove"); len(f) > 0 {
		m = m.Remove(f)
	}
	if c.IsSet("min-count") {
		m = m.Trim(c.Float64("min-count"))
	}

	if scheme != dfm.Count || cfg.Weight.Multiplier != 1 {
		m = m.Weight(scheme, dfm.WithMultiplier(cfg.Weight.Multiplier))
	}

	logging.WithComponent("cli").Info("dfm built", "docs", m.NDoc(), "features", m.NFeat(), "scheme", m.Scheme().String())
	return m, nil
}

// matrixJSON is the json shape of a dfm: one dense row per document.
type matrixJSON struct {
	Scheme   string      `json:"scheme"`
	Docs     []string    `json:"docs"`
	Features []string    `json:"features"`
	Values   [][]float64 `json:"values"`
}

func dfmCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "dfm",
		Usage: "build the document-feature matrix of the texts",
		Flags: append(matrixFlags(),
			&cli.IntFlag{Name: "max-features", Value: 10, Usage: "print at most `N` feature columns, 0 for all"},
			&cli.IntFlag{Name: "top", Usage: "print the `N` features with the largest totals instead"},
		),
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c, ui)
			if err != nil {
				return err
			}

			m, err := buildMatrix(c, cfg, ui)
			if err != nil {
				return err
			}

			if n := c.Int("top"); n > 0 {
				top := m.TopFeatures(n)
				if isJSON(c) {
					return render.NewJSONRenderer(ui.Out).Render(top)
				}
				rows := make([][]string, len(top))
				for i, fv := range top {
					rows[i] = []string{fv.Feature, render.FormatValue(fv.Value)}
				}
				fmt.Fprintln(ui.Out, render.Table([]string{"feature", m.Scheme().String()}, rows, nil))
				return nil
			}

			if isJSON(c) {
				return render.NewJSONRenderer(ui.Out).Render(matrixJSON{
					Scheme:   m.Scheme().String(),
					Docs:     m.DocNames(),
					Features: m.Features(),
					Values:   m.Dense(),
				})
			}

			render.DFM(ui.Out, m, c.Int("max-features"))
			return nil
		},
	}
}

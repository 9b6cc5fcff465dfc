package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/revelaction/concord/errs"
	"github.com/revelaction/concord/kwic"
	"github.com/revelaction/concord/logging"
	"github.com/revelaction/concord/render"
	"github.com/revelaction/concord/tokens"
	"github.com/urfave/cli/v2"
)

func kwicCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "kwic",
		Usage:     "search a pattern and print each match in its context",
		ArgsUsage: "PATTERN",
		Flags: append(tokenFlags(),
			&cli.StringFlag{Name: "type", Usage: "pattern value type: fixed, glob or regex"},
			&cli.IntFlag{Name: "window", Usage: "number of context tokens on each side"},
			&cli.BoolFlag{Name: "case-sensitive", Usage: "match the case of the pattern"},
			&cli.StringFlag{Name: "render", Value: render.Defaultformat, Usage: "match format: kwic, keyword or aggr"},
			&cli.BoolFlag{Name: "no-prefix", Usage: "do not print the text name and position"},
			&cli.BoolFlag{Name: "dispersion", Usage: "print the relative match positions per text"},
		),
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return errs.Input("kwic", "no pattern given")
			}

			cfg, err := loadConfig(c, ui)
			if err != nil {
				return err
			}

			if t := c.String("type"); t != "" {
				cfg.KWIC.ValueType = t
			}
			if c.IsSet("window") {
				cfg.KWIC.Window = c.Int("window")
			}
			if c.Bool("case-sensitive") {
				cfg.KWIC.IgnoreCase = false
			}

			p, err := cfg.Pattern(strings.Join(c.Args().Slice(), " "))
			if err != nil {
				return err
			}

			cp, err := loadCorpus(c, cfg, ui)
			if err != nil {
				return err
			}

			opts := tokenOptions(c, cfg)
			docs, err := tokens.Corpus(c.Context, cp, opts)
			if err != nil {
				return err
			}

			if opts.Lowercase {
				p = p.Lowered(opts.KeepAcronyms)
				if p.Type == kwic.Regex && !p.IgnoreCase {
					logging.WithComponent("kwic").Warn("tokens are lowercased, a case sensitive regex only matches lowercase text", "pattern", p.Value)
				}
			}

			res, err := cfg.Compiler().SearchCorpus(c.Context, docs, p, cfg.KWIC.Window)
			if err != nil {
				return err
			}

			if c.Bool("dispersion") {
				return printDispersion(c, ui, res)
			}

			if isJSON(c) {
				return render.NewJSONRenderer(ui.Out).Match(res)
			}

			r := newRenderer(c, ui)
			r.Format = c.String("render")
			r.HasPrefix = !c.Bool("no-prefix")
			r.Match(res)
			return nil
		},
	}
}

func printDispersion(c *cli.Context, ui UI, res *kwic.Result) error {
	points := res.Dispersion()
	if isJSON(c) {
		return render.NewJSONRenderer(ui.Out).Render(points)
	}

	rows := make([][]string, len(points))
	for i, p := range points {
		rows[i] = []string{p.DocName, fmt.Sprintf("%d", p.Position), render.FormatValue(p.Relative)}
	}
	fmt.Fprintln(ui.Out, render.Table([]string{"text", "position", "relative"}, rows, []text.Align{text.AlignLeft, text.AlignRight, text.AlignRight}))
	return nil
}

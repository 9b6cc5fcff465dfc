package main

import (
	"github.com/revelaction/concord/render"
	"github.com/revelaction/concord/stat"
	"github.com/urfave/cli/v2"
)

func summaryCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "summary",
		Usage: "print the number of tokens, types and sentences per text",
		Flags: tokenFlags(),
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c, ui)
			if err != nil {
				return err
			}

			cp, err := loadCorpus(c, cfg, ui)
			if err != nil {
				return err
			}

			stats, err := stat.Summarize(cp, tokenOptions(c, cfg))
			if err != nil {
				return err
			}

			if isJSON(c) {
				return render.NewJSONRenderer(ui.Out).Render(stats)
			}

			render.Summary(ui.Out, stats)
			return nil
		},
	}
}

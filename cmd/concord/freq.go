package main

import (
	"github.com/revelaction/concord/render"
	"github.com/revelaction/concord/stat"
	"github.com/urfave/cli/v2"
)

func freqCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "freq",
		Usage: "print the feature frequency table",
		Flags: append(matrixFlags(),
			&cli.IntFlag{Name: "top", Value: 20, Usage: "print the `N` most frequent features, 0 for all"},
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

			freq := stat.Frequency(m, c.Int("top"))
			if isJSON(c) {
				return render.NewJSONRenderer(ui.Out).Render(freq)
			}

			render.Frequency(ui.Out, freq)
			return nil
		},
	}
}

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/revelaction/concord/render"
	"github.com/urfave/cli/v2"
)

func lsCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "ls",
		Usage: "list the texts of the repository",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "labels-only", Usage: "list the unique labels instead"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c, ui)
			if err != nil {
				return err
			}

			repo, closeRepo, err := NewTextRepository(cfg.Corpus.Path)
			if err != nil {
				return err
			}
			defer closeRepo()

			if c.Bool("labels-only") {
				labels, err := repo.Labels(c.String("labels"))
				if err != nil {
					return err
				}
				if isJSON(c) {
					return render.NewJSONRenderer(ui.Out).Render(labels)
				}
				for _, l := range labels {
					fmt.Fprintf(ui.Out, "🏷  %s\n", l)
				}
				return nil
			}

			texts, err := repo.List(c.String("labels"))
			if err != nil {
				return err
			}

			if isJSON(c) {
				return render.NewJSONRenderer(ui.Out).Render(texts)
			}

			rows := make([][]string, len(texts))
			for i, t := range texts {
				rows[i] = []string{strconv.Itoa(t.Id), t.Name, strings.Join(t.Labels, ", ")}
			}
			fmt.Fprintln(ui.Out, render.Table([]string{"id", "name", "labels"}, rows, nil))
			return nil
		},
	}
}

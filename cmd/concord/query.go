package main

import (
	"github.com/revelaction/concord/kwic"
	"github.com/revelaction/concord/query"
	"github.com/revelaction/concord/tokens"
	"github.com/urfave/cli/v2"
)

func queryCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "query",
		Usage: "search the texts interactively",
		Flags: tokenFlags(),
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c, ui)
			if err != nil {
				return err
			}

			vt, err := kwic.ParseValueType(cfg.KWIC.ValueType)
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

			// now present the REPL
			h := query.NewHandler(docs, newRenderer(c, ui))
			h.Out = ui.Out
			h.Type = vt
			h.IgnoreCase = cfg.KWIC.IgnoreCase
			h.Window = cfg.KWIC.Window
			h.Compiler = cfg.Compiler()
			h.TokenOptions = opts
			return h.Run()
		},
	}
}

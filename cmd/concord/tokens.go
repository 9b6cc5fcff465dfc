package main

import (
	"fmt"
	"strings"

	"github.com/revelaction/concord/config"
	"github.com/revelaction/concord/corpus"
	"github.com/revelaction/concord/render"
	"github.com/revelaction/concord/tokens"
	"github.com/urfave/cli/v2"
)

// tokenFlags override the configured tokenization policy.
func tokenFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{Name: "keep-punct", Usage: "keep punctuation tokens"},
		&cli.BoolFlag{Name: "no-numbers", Usage: "remove number tokens"},
		&cli.BoolFlag{Name: "no-symbols", Usage: "remove symbol tokens"},
		&cli.BoolFlag{Name: "keep-case", Usage: "do not lowercase"},
		&cli.BoolFlag{Name: "acronyms", Usage: "keep all uppercase tokens when lowercasing"},
		&cli.BoolFlag{Name: "stopwords", Usage: "remove English stopwords"},
		&cli.BoolFlag{Name: "stem", Usage: "reduce tokens to their English stem"},
	}
}

func tokenOptions(c *cli.Context, cfg *config.Config) tokens.Options {
	opts := cfg.TokenOptions()
	if c.Bool("keep-punct") {
		opts.RemovePunct = false
	}
	if c.Bool("no-numbers") {
		opts.RemoveNumbers = true
	}
	if c.Bool("no-symbols") {
		opts.RemoveSymbols = true
	}
	if c.Bool("keep-case") {
		opts.Lowercase = false
	}
	if c.Bool("acronyms") {
		opts.KeepAcronyms = true
	}
	if c.Bool("stopwords") {
		opts.RemoveStopwords = true
	}
	if c.Bool("stem") {
		opts.Stem = true
	}
	return opts
}

// selectText restricts cp to the text named or numbered by the --doc flag.
func selectText(c *cli.Context, cp *corpus.Corpus) (*corpus.Corpus, error) {
	if !c.IsSet("doc") {
		return cp, nil
	}

	t, err := cp.Text(c.Int("doc"))
	if err != nil {
		return nil, err
	}
	return corpus.New(t)
}

func tokensCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "tokens",
		Usage: "print the tokens of the texts",
		Flags: append(tokenFlags(),
			&cli.IntFlag{Name: "doc", Usage: "only the text with `ID`"},
			&cli.IntFlag{Name: "ngrams", Value: 1, Usage: "print `N`-grams joined by _"},
		),
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c, ui)
			if err != nil {
				return err
			}

			cp, err := loadCorpus(c, cfg, ui)
			if err != nil {
				return err
			}

			cp, err = selectText(c, cp)
			if err != nil {
				return err
			}

			docs, err := tokens.Corpus(c.Context, cp, tokenOptions(c, cfg))
			if err != nil {
				return err
			}

			if n := c.Int("ngrams"); n > 1 {
				for i := range docs {
					docs[i].Tokens = docs[i].Tokens.Ngrams(n, "_")
				}
			}

			if isJSON(c) {
				return render.NewJSONRenderer(ui.Out).Render(docs)
			}

			for _, d := range docs {
				fmt.Fprintf(ui.Out, "📖 %s (%d): %s\n", d.Name, len(d.Tokens), strings.Join(d.Tokens, " "))
			}
			return nil
		},
	}
}

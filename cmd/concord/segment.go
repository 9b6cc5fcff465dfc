package main

import (
	"fmt"

	"github.com/revelaction/concord/corpus"
	"github.com/revelaction/concord/render"
	"github.com/revelaction/concord/segment"
	"github.com/urfave/cli/v2"
)

func segmentCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "segment",
		Usage: "split the texts at a delimiter pattern, or at sentence boundaries",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "pattern", Usage: "delimiter regular expression `RE`; sentences when empty"},
			&cli.IntFlag{Name: "doc", Usage: "only the text with `ID`"},
			&cli.BoolFlag{Name: "keep-delimiter", Usage: "prepend the delimiter match to each segment"},
			&cli.BoolFlag{Name: "trim", Value: true, Usage: "trim white space around segments"},
		},
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

			segmented, err := segmentCorpus(cp, c.String("pattern"), segment.Options{
				KeepDelimiter: c.Bool("keep-delimiter"),
				Trim:          c.Bool("trim"),
			})
			if err != nil {
				return err
			}

			if isJSON(c) {
				return render.NewJSONRenderer(ui.Out).Render(segmented.Texts())
			}

			for _, t := range segmented.Texts() {
				fmt.Fprintf(ui.Out, "[%s] %s\n", t.Name, t.Content)
			}
			return nil
		},
	}
}

// segmentCorpus segments at pattern, or at sentence boundaries when pattern
// is empty.
func segmentCorpus(cp *corpus.Corpus, pattern string, opts segment.Options) (*corpus.Corpus, error) {
	if pattern != "" {
		return segment.Corpus(cp, pattern, opts)
	}

	out := &corpus.Corpus{}
	for _, t := range cp.Texts() {
		for _, s := range segment.Sentences(t.Content) {
			if _, err := out.Add(fmt.Sprintf("%s.%d", t.Name, s.Index+1), s.Content, t.Labels...); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

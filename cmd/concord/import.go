package main

import (
	"fmt"

	"github.com/gosuri/uiprogress"
	"github.com/revelaction/concord/storage/filesystem"
	"github.com/revelaction/concord/storage/sqlite/zombiezen"
	"github.com/urfave/cli/v2"
)

func importCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "copy a directory of .txt files into a SQLite repository",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "from", Required: true, Usage: "source `DIR`"},
			&cli.StringFlag{Name: "to", Required: true, Usage: "destination SQLite `FILE`"},
		},
		Action: func(c *cli.Context) error {
			if _, err := loadConfig(c, ui); err != nil {
				return err
			}
			return importTexts(c.String("from"), c.String("to"), ui)
		},
	}
}

func importTexts(from, to string, ui UI) error {
	src, err := filesystem.NewTextStore(from)
	if err != nil {
		return err
	}

	pool, err := zombiezen.NewPool(to)
	if err != nil {
		return err
	}
	defer pool.Close()

	dst := zombiezen.NewTextStore(pool)

	fmt.Fprintf(ui.Out, "Reading texts from %s...\n", from)
	texts, err := src.List("")
	if err != nil {
		return err
	}

	var bar *uiprogress.Bar
	if isTerminal(ui.Err) {
		progress := uiprogress.New()
		progress.SetOut(ui.Err)
		progress.Start()
		defer progress.Stop()

		bar = progress.AddBar(len(texts))
		bar.AppendCompleted()
		bar.PrependElapsed()
	}

	count := 0
	for _, meta := range texts {
		t, err := src.Read(meta.Id)
		if err != nil {
			return fmt.Errorf("failed to read text %s: %w", meta.Name, err)
		}

		if err := dst.Write(t); err != nil {
			return fmt.Errorf("failed to write text %s: %w", meta.Name, err)
		}
		count++

		if bar != nil {
			bar.Incr()
		}
	}

	fmt.Fprintf(ui.Out, "Successfully imported %d texts from %s to %s\n", count, from, to)
	return nil
}

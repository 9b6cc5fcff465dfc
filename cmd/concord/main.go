package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
)

// BuildTag and BuildCommit are set at link time.
var (
	BuildTag    = "dev"
	BuildCommit = "none"
)

// UI contains the output streams for the application.
// Used for injecting buffers during testing.
type UI struct {
	Out io.Writer
	Err io.Writer
}

func main() {
	ui := UI{Out: os.Stdout, Err: os.Stderr}

	if err := newApp(ui).Run(os.Args); err != nil {
		fprintErr(ui.Err, err)
		os.Exit(1)
	}
}

func fprintErr(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "concord: %v\n", err)
}

func newApp(ui UI) *cli.App {
	return &cli.App{
		Name:      "concord",
		Usage:     "tokenize texts, search keywords in context and build document-feature matrices",
		Version:   BuildTag,
		Writer:    ui.Out,
		ErrWriter: ui.Err,

		EnableBashCompletion: true,
		// errors are printed by main
		ExitErrHandler: func(*cli.Context, error) {},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "YAML configuration `FILE`",
				EnvVars: []string{"CONCORD_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "corpus",
				Usage: "text repository: a directory of .txt files or a SQLite `PATH`",
			},
			&cli.StringFlag{
				Name:  "labels",
				Usage: "only texts with a label containing `MATCH`",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
			},
			&cli.StringFlag{
				Name:  "format",
				Value: "text",
				Usage: "output format: text or json",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "do not color the output",
			},
		},
		Commands: []*cli.Command{
			importCommand(ui),
			lsCommand(ui),
			tokensCommand(ui),
			segmentCommand(ui),
			kwicCommand(ui),
			dfmCommand(ui),
			freqCommand(ui),
			summaryCommand(ui),
			queryCommand(ui),
			versionCommand(ui),
			bashCommand(ui),
		},
	}
}

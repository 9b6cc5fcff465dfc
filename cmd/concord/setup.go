package main

import (
	"fmt"
	"io"
	"os"

	"github.com/gosuri/uiprogress"
	"github.com/mattn/go-isatty"
	"github.com/revelaction/concord/config"
	"github.com/revelaction/concord/corpus"
	"github.com/revelaction/concord/logging"
	"github.com/revelaction/concord/render"
	"github.com/revelaction/concord/storage"
	"github.com/revelaction/concord/storage/filesystem"
	"github.com/revelaction/concord/storage/sqlite/zombiezen"
	"github.com/urfave/cli/v2"
)

// loadConfig reads the configuration, applies the global flags and sets up
// logging on ui.Err.
func loadConfig(c *cli.Context, ui UI) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}

	if p := c.String("corpus"); p != "" {
		cfg.Corpus.Path = p
	}

	if l := c.String("log-level"); l != "" {
		cfg.Logging.Level = l
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format, ui.Err)
	logging.WithComponent("cli").Info("command start", "command", c.Command.Name, "corpus", cfg.Corpus.Path)
	return cfg, nil
}

// NewTextRepository opens a directory store for a directory path, and a
// SQLite store otherwise. The returned function releases the repository.
func NewTextRepository(path string) (storage.TextRepository, func() error, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("repository not found: %s", path)
	}

	if info.IsDir() {
		s, err := filesystem.NewTextStore(path)
		if err != nil {
			return nil, nil, err
		}
		return s, func() error { return nil }, nil
	}

	pool, err := zombiezen.NewPool(path)
	if err != nil {
		return nil, nil, err
	}
	return zombiezen.NewTextStore(pool), pool.Close, nil
}

// loadCorpus reads the texts of the configured repository matching the
// --labels flag.
func loadCorpus(c *cli.Context, cfg *config.Config, ui UI) (*corpus.Corpus, error) {
	repo, closeRepo, err := NewTextRepository(cfg.Corpus.Path)
	if err != nil {
		return nil, err
	}
	defer closeRepo()

	labelMatch := c.String("labels")

	if p, ok := repo.(storage.Preloader); ok {
		if err := preload(p, labelMatch, ui); err != nil {
			return nil, err
		}
	}

	return storage.Load(repo, labelMatch)
}

func preload(p storage.Preloader, labelMatch string, ui UI) error {
	if !isTerminal(ui.Err) {
		return p.Preload(labelMatch, nil)
	}

	progress := uiprogress.New()
	progress.SetOut(ui.Err)
	progress.Start()
	defer progress.Stop()

	var bar *uiprogress.Bar
	var current string
	return p.Preload(labelMatch, func(n, total int, name string) {
		if bar == nil {
			bar = progress.AddBar(total)
			bar.AppendCompleted()
			bar.PrependElapsed()
			// Append text name to the progress bar
			bar.AppendFunc(func(b *uiprogress.Bar) string {
				return current
			})
		}
		current = name
		bar.Incr()
	})
}

func newRenderer(c *cli.Context, ui UI) *render.Renderer {
	r := render.NewRenderer()
	r.W = ui.Out
	r.HasColor = !c.Bool("no-color") && isTerminal(ui.Out)
	return r
}

func isJSON(c *cli.Context) bool {
	return c.String("format") == "json"
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

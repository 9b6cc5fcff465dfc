package tokens

import (
	"context"
	"runtime"

	"github.com/revelaction/concord/corpus"
	"github.com/revelaction/concord/logging"
	"golang.org/x/sync/errgroup"
)

// Corpus tokenizes every text of c with the same opts. Texts are processed
// concurrently; the documents are returned in corpus order.
func Corpus(ctx context.Context, c *corpus.Corpus, opts Options) ([]Document, error) {
	texts := c.Texts()
	docs := make([]Document, len(texts))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i := range texts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			doc, err := TokenizeText(&texts[i], opts)
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	logging.WithComponent("tokens").Debug("corpus tokenized", "texts", len(docs))
	return docs, nil
}


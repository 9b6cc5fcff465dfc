package zombiezen

import (
	"context"
	"fmt"
	"strings"

	"github.com/revelaction/concord/corpus"
	"github.com/revelaction/concord/errs"
	"github.com/revelaction/concord/storage"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// TextStore keeps texts in the texts table. Text ids are the 0-based
// position in rowid order.
type TextStore struct {
	pool *sqlitex.Pool
}

var _ storage.TextRepository = (*TextStore)(nil)
var _ storage.BulkReader = (*TextStore)(nil)

func NewTextStore(pool *sqlitex.Pool) *TextStore {
	return &TextStore{pool: pool}
}

func (h *TextStore) List(labelMatch string) ([]corpus.Text, error) {
	return h.scan("SELECT name, labels FROM texts ORDER BY id", labelMatch)
}

// ReadAll returns the texts matching labelMatch with their content, in a
// single query.
func (h *TextStore) ReadAll(labelMatch string) ([]corpus.Text, error) {
	return h.scan("SELECT name, labels, content FROM texts ORDER BY id", labelMatch)
}

// scan runs query, selecting name, labels and optionally content, and
// numbers the rows in order.
func (h *TextStore) scan(query, labelMatch string) ([]corpus.Text, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	texts := []corpus.Text{}
	idx := 0
	err = sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			t := corpus.Text{
				Id:     idx,
				Name:   stmt.ColumnText(0),
				Labels: splitLabels(stmt.ColumnText(1)),
			}
			if stmt.ColumnCount() > 2 {
				t.Content = stmt.ColumnText(2)
			}
			idx++

			if storage.MatchLabel(t.Labels, labelMatch) {
				texts = append(texts, t)
			}
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return texts, nil
}

func (h *TextStore) Read(id int) (corpus.Text, error) {
	if id < 0 {
		return corpus.Text{}, errs.NotFound("text id %d", id)
	}

	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return corpus.Text{}, err
	}
	defer h.pool.Put(conn)

	t := corpus.Text{Id: id}
	found := false

	err = sqlitex.Execute(conn, "SELECT name, labels, content FROM texts ORDER BY id LIMIT 1 OFFSET ?", &sqlitex.ExecOptions{
		Args: []interface{}{id},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			found = true
			t.Name = stmt.ColumnText(0)
			t.Labels = splitLabels(stmt.ColumnText(1))
			t.Content = stmt.ColumnText(2)
			return nil
		},
	})
	if err != nil {
		return corpus.Text{}, err
	}
	if !found {
		return corpus.Text{}, errs.NotFound("text id %d", id)
	}

	return t, nil
}

func (h *TextStore) Labels(pattern string) ([]string, error) {
	texts, err := h.List("")
	if err != nil {
		return nil, err
	}
	return storage.UniqueLabels(texts, pattern), nil
}

func (h *TextStore) Write(t corpus.Text) (err error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	// Start Transaction
	defer sqlitex.Save(conn)(&err)

	err = sqlitex.Execute(conn, "INSERT INTO texts (name, labels, content) VALUES (?, ?, ?)", &sqlitex.ExecOptions{
		Args: []interface{}{t.Name, strings.Join(t.Labels, ","), t.Content},
	})
	if sqlite.ErrCode(err) == sqlite.ResultConstraintUnique {
		return errs.Inputf("sqlite write", "text %q already exists", t.Name)
	}
	if err != nil {
		return fmt.Errorf("failed to insert text: %w", err)
	}

	return nil
}

func splitLabels(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

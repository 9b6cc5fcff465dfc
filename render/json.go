package render

import (
	"encoding/json"
	"io"

	"github.com/revelaction/concord/kwic"
)

// JSONRenderer writes results as JSON to a writer.
type JSONRenderer struct {
	W io.Writer
}

// NewJSONRenderer creates a JSONRenderer writing to w.
func NewJSONRenderer(w io.Writer) *JSONRenderer {
	return &JSONRenderer{W: w}
}

// Match serializes the matches of a kwic result as a JSON array.
func (r *JSONRenderer) Match(res *kwic.Result) error {
	matches := []kwic.Match{}
	if res != nil && res.Matches != nil {
		matches = res.Matches
	}
	return r.Render(matches)
}

// Render serializes any value, indented.
func (r *JSONRenderer) Render(v any) error {
	enc := json.NewEncoder(r.W)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

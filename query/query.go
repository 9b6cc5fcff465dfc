package query

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/c-bata/go-prompt"
	"github.com/revelaction/concord/errs"
	"github.com/revelaction/concord/kwic"
	"github.com/revelaction/concord/render"
	"github.com/revelaction/concord/tokens"
)

const (
	completionThreshold = 2

	maxSuggestions = 12

	// commandPrefix is the character in the prompt that prefixes a command
	commandPrefix = "/"
)

// Handler runs an interactive keyword in context session over a tokenized
// corpus.
type Handler struct {
	Docs     []tokens.Document
	Renderer *render.Renderer

	// Type, IgnoreCase and Window are the session search settings, changed
	// with the /fixed, /glob, /regex, /case and /window commands.
	Type       kwic.ValueType
	IgnoreCase bool
	Window     int

	Compiler *kwic.Compiler

	// TokenOptions is the policy Docs were tokenized with. Case sensitive
	// values are lowercased when it lowercases.
	TokenOptions tokens.Options

	Out io.Writer

	vocabulary []string
}

func NewHandler(docs []tokens.Document, r *render.Renderer) *Handler {
	return &Handler{
		Docs:       docs,
		Renderer:   r,
		IgnoreCase: true,
		Window:     5,
		Compiler:   kwic.NewCompiler(kwic.DefaultCacheSize),
		Out:        os.Stdout,
		vocabulary: vocabulary(docs),
	}
}

// Run reads queries until quit.
func (h *Handler) Run() error {

	fmt.Fprintln(h.Out, "🔑 Ctrl+X: Toggle prefix, Ctrl+F: next Format, /glob /regex /fixed /case /window N, 🔧 quit")

	// initialize prompt history
	history := []string{}

	for {

		in := prompt.Input("      🔎 ", h.completer,
			prompt.OptionTitle("concord query"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionMaxSuggestion(maxSuggestions),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionHistory(history),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlF,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.NextFormat()
					fmt.Fprintln(h.Out, "Format set to: "+h.Renderer.Format)
				}}),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlX,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.NextPrefix()
					fmt.Fprintln(h.Out, "Prefix set to "+fmt.Sprintf("%t", h.Renderer.HasPrefix))
				}}),
		)

		if in == "quit" {
			return nil
		}

		if strings.TrimSpace(in) == "" {
			continue
		}

		history = append(history, in)

		if err := h.Eval(in); err != nil {
			h.Renderer.Error(err)
		}
	}
}

// Eval executes one prompt line: a command or a search.
func (h *Handler) Eval(in string) error {
	p, isSearch, err := h.parse(in)
	if err != nil {
		return err
	}

	if !isSearch {
		fmt.Fprintf(h.Out, "type %s, ignore case %t, window %d\n", h.Type, h.IgnoreCase, h.Window)
		return nil
	}

	res, err := h.Compiler.Search(h.Docs, p, h.Window)
	if err != nil {
		return err
	}

	h.Renderer.Match(res)
	fmt.Fprintf(h.Out, "%d matches\n", len(res.Matches))
	return nil
}

// parse interprets a prompt line. A line starting with a value type command
// followed by a value searches with that type once. A command alone changes
// the session settings, and isSearch is false.
func (h *Handler) parse(in string) (p kwic.Pattern, isSearch bool, err error) {
	in = strings.TrimSpace(in)
	if in == "" {
		return p, false, errs.Input("query", "empty query")
	}

	p = kwic.Pattern{Type: h.Type, IgnoreCase: h.IgnoreCase}

	if !strings.HasPrefix(in, commandPrefix) {
		p.Value = in
		return h.lowered(p), true, nil
	}

	cmd, rest, _ := strings.Cut(in[len(commandPrefix):], " ")
	rest = strings.TrimSpace(rest)

	switch cmd {
	case "case":
		h.IgnoreCase = !h.IgnoreCase
		return p, false, nil

	case "window":
		w, err := strconv.Atoi(rest)
		if err != nil || w < 0 {
			return p, false, errs.Inputf("query", "invalid window %q", rest)
		}
		h.Window = w
		return p, false, nil
	}

	vt, err := kwic.ParseValueType(cmd)
	if err != nil {
		return p, false, errs.Inputf("query", "unknown command %q", commandPrefix+cmd)
	}

	if rest == "" {
		h.Type = vt
		return p, false, nil
	}

	p.Type = vt
	p.Value = rest
	return h.lowered(p), true, nil
}

func (h *Handler) lowered(p kwic.Pattern) kwic.Pattern {
	if !h.TokenOptions.Lowercase {
		return p
	}
	return p.Lowered(h.TokenOptions.KeepAcronyms)
}

func (h *Handler) completer(in prompt.Document) []prompt.Suggest {
	return h.suggest(in.GetWordBeforeCursor(), in.TextBeforeCursor())
}

func (h *Handler) suggest(word, line string) []prompt.Suggest {
	s := []prompt.Suggest{}

	if line == word && strings.HasPrefix(word, commandPrefix) {
		for _, c := range commands() {
			if strings.HasPrefix(c.Text, word) {
				s = append(s, c)
			}
		}
		return s
	}

	if len(word) < completionThreshold {
		return s
	}

	for _, v := range h.vocabulary {
		if strings.HasPrefix(v, word) {
			s = append(s, prompt.Suggest{Text: v})
			if len(s) == maxSuggestions {
				break
			}
		}
	}

	return s
}

func commands() []prompt.Suggest {
	s := []prompt.Suggest{}
	for _, vt := range kwic.SupportedValueTypes() {
		s = append(s, prompt.Suggest{Text: commandPrefix + vt, Description: "search " + vt + " values"})
	}
	s = append(s,
		prompt.Suggest{Text: commandPrefix + "case", Description: "toggle ignore case"},
		prompt.Suggest{Text: commandPrefix + "window", Description: "set the context window"},
	)
	return s
}

// vocabulary returns the sorted distinct tokens of docs.
func vocabulary(docs []tokens.Document) []string {
	seen := map[string]struct{}{}
	for _, d := range docs {
		for _, tok := range d.Tokens {
			seen[tok] = struct{}{}
		}
	}

	v := make([]string, 0, len(seen))
	for tok := range seen {
		v = append(v, tok)
	}
	sort.Strings(v)
	return v
}

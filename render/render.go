package render

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/revelaction/concord/kwic"
	"github.com/rivo/uniseg"
)

const (
	Defaultformat = "kwic"
)

var (
	Red       = "\033[1;31m"
	Off       = "\033[0m"
	Yellow256 = "\033[1;38;5;130m"
	Grey256   = "\033[1;38;5;145m"
	Green256  = "\033[1;38;5;70m"
)

func SupportedFormats() []string {
	return []string{"kwic", "keyword", "aggr"}
}

type Renderer struct {
	W io.Writer

	HasColor bool

	HasPrefix bool

	// Format determines the format of a match line
	//
	// kwic: pre context, keyword and post context aligned on the keyword
	// keyword: only the matched tokens
	// aggr: the distinct keywords with their number of matches
	Format string

	// Width is the number of characters of the pre and post context
	// columns in the kwic format. 0 means no alignment.
	Width int
}

func NewRenderer() *Renderer {
	return &Renderer{W: os.Stdout, HasPrefix: true, Format: Defaultformat, Width: 40}
}

// Match writes one line per match of the result.
func (r *Renderer) Match(res *kwic.Result) {
	// if aggr format, we collect the keywords here
	aggregated := map[string]int{}

	for _, m := range res.Matches {
		keyword := strings.Join(m.Keyword, " ")

		var text string
		switch r.Format {
		case "keyword":
			text = r.color(keyword)
		case "aggr":
			aggregated[keyword]++
			continue
		default:
			text = r.line(m)
		}

		fmt.Fprintf(r.W, "%s%s\n", r.prefix(m), text)
	}

	if r.Format == "aggr" {
		r.aggr(aggregated)
	}
}

func (r *Renderer) line(m kwic.Match) string {
	pre := strings.Join(m.Pre, " ")
	post := strings.Join(m.Post, " ")
	keyword := strings.Join(m.Keyword, " ")

	if r.Width > 0 {
		pre = alignRight(pre, r.Width)
		post = alignLeft(post, r.Width)
	}

	return fmt.Sprintf("%s | %s | %s", pre, r.color(keyword), post)
}

func (r *Renderer) prefix(m kwic.Match) string {
	if !r.HasPrefix {
		return ""
	}

	name := m.DocName
	if r.HasColor {
		name = Grey256 + name + Off
	}

	pos := fmt.Sprintf("%d", m.From)
	if m.To != m.From {
		pos = fmt.Sprintf("%d:%d", m.From, m.To)
	}
	return fmt.Sprintf("[%s, %s] ", name, pos)
}

func (r *Renderer) color(s string) string {
	if !r.HasColor {
		return s
	}
	return Green256 + s + Off
}

// aggr writes the aggregated keywords, most frequent first, then shortest.
func (r *Renderer) aggr(agg map[string]int) {
	// flatten map to use sortSlice
	sl := []struct {
		Num     int
		Keyword string
	}{}

	for keyword, n := range agg {
		sl = append(sl, struct {
			Num     int
			Keyword string
		}{n, keyword})
	}

	sort.SliceStable(sl, func(i, j int) bool {
		if sl[i].Num != sl[j].Num {
			return sl[i].Num > sl[j].Num
		}

		if len(sl[i].Keyword) != len(sl[j].Keyword) {
			return len(sl[i].Keyword) < len(sl[j].Keyword)
		}

		return sl[i].Keyword < sl[j].Keyword
	})

	var prefix string
	for _, s := range sl {
		if r.HasPrefix {
			prefix = fmt.Sprintf("[%5d] ✍  ", s.Num)
			if r.HasColor {
				prefix = Yellow256 + prefix + Off
			}
		}

		fmt.Fprintf(r.W, "%s%s\n", prefix, r.color(s.Keyword))
	}
}

// Error writes err as an error line.
func (r *Renderer) Error(err error) {
	msg := "Error: " + err.Error()
	if r.HasColor {
		msg = Red + msg + Off
	}
	fmt.Fprintln(r.W, msg)
}

// NextFormat sets the Renderer Format option to a different one, following
// the SupportedFormats() order.
func (r *Renderer) NextFormat() {
	supported := SupportedFormats()
	for i, format := range supported {
		if format == r.Format {
			r.Format = supported[(i+1)%len(supported)]
			return
		}
	}

	r.Format = supported[0]
}

func (r *Renderer) NextPrefix() {
	// toggle
	r.HasPrefix = !r.HasPrefix
}

// alignRight pads s on the left to width terminal cells, cutting whole
// grapheme clusters from its start if wider.
func alignRight(s string, width int) string {
	w := uniseg.StringWidth(s)
	for w > width {
		var cw int
		_, s, cw, _ = uniseg.FirstGraphemeClusterInString(s, -1)
		w -= cw
	}
	return strings.Repeat(" ", width-w) + s
}

// alignLeft pads s on the right to width terminal cells, cutting whole
// grapheme clusters from its end if wider.
func alignLeft(s string, width int) string {
	var b strings.Builder
	w, state := 0, -1
	for len(s) > 0 {
		var cluster string
		var cw int
		cluster, s, cw, state = uniseg.FirstGraphemeClusterInString(s, state)
		if w+cw > width {
			break
		}
		b.WriteString(cluster)
		w += cw
	}
	return b.String() + strings.Repeat(" ", width-w)
}

package kwic

import (
	"regexp"
	"regexp/syntax"
	"strings"
	"unicode"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/revelaction/concord/errs"
	"github.com/revelaction/concord/tokens"
)

// DefaultCacheSize is the number of compiled patterns kept by the default
// Compiler.
const DefaultCacheSize = 128

// maxSpaceRange bounds the character class ranges checked rune by rune for
// white space. The widest white space range, U+2000-U+200A, is shorter.
const maxSpaceRange = 16

// ValueType selects how a pattern value is interpreted.
type ValueType int

const (
	Fixed ValueType = iota
	Glob
	Regex
)

// SupportedValueTypes returns the value type names, in ValueType order.
func SupportedValueTypes() []string {
	return []string{"fixed", "glob", "regex"}
}

func (v ValueType) String() string {
	names := SupportedValueTypes()
	if int(v) < 0 || int(v) >= len(names) {
		return "unknown"
	}
	return names[v]
}

// MarshalText encodes the value type by name.
func (v ValueType) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText decodes a value type name.
func (v *ValueType) UnmarshalText(text []byte) error {
	vt, err := ParseValueType(string(text))
	if err != nil {
		return err
	}
	*v = vt
	return nil
}

// ParseValueType returns the ValueType named s.
func ParseValueType(s string) (ValueType, error) {
	for i, name := range SupportedValueTypes() {
		if strings.EqualFold(s, name) {
			return ValueType(i), nil
		}
	}
	return Fixed, errs.Inputf("kwic", "unknown value type %q, allowed values are %s", s, strings.Join(SupportedValueTypes(), ", "))
}

// Pattern is a search pattern. The Type is resolved once by Compile.
//
// Fixed and Glob values containing white space are phrases: every part
// matches one consecutive token. A Regex value spanning several tokens
// (parts separated by anything matching only white space) is matched
// against the space joined tokens.
type Pattern struct {
	Type       ValueType `json:"type"`
	Value      string    `json:"value"`
	IgnoreCase bool      `json:"ignore_case"`
}

// Lowered adapts a case sensitive Fixed or Glob pattern to lowercased
// tokens: the value is lowercased as tokens.Lower does. Regex and ignore
// case patterns are returned unchanged.
func (p Pattern) Lowered(keepAcronyms bool) Pattern {
	if p.IgnoreCase || p.Type == Regex {
		return p
	}
	p.Value = tokens.Lower(p.Value, keepAcronyms)
	return p
}

// Matcher is a compiled Pattern.
type Matcher interface {
	// Span is the number of tokens covered by a match.
	Span() int

	// MatchAt reports whether the pattern matches toks starting at i.
	MatchAt(toks []string, i int) bool
}

// Compiler compiles patterns and keeps the most recently used ones. It is
// safe for concurrent use.
type Compiler struct {
	cache *lru.Cache[Pattern, Matcher]
}

// NewCompiler returns a Compiler caching size patterns. A size below 1
// uses DefaultCacheSize.
func NewCompiler(size int) *Compiler {
	if size < 1 {
		size = DefaultCacheSize
	}
	// New only fails for a non positive size
	cache, _ := lru.New[Pattern, Matcher](size)
	return &Compiler{cache: cache}
}

var defaultCompiler = NewCompiler(DefaultCacheSize)

// Compile compiles p with the default Compiler.
func Compile(p Pattern) (Matcher, error) {
	return defaultCompiler.Compile(p)
}

// Compile returns the Matcher of p. Empty or malformed patterns are input
// errors.
func (c *Compiler) Compile(p Pattern) (Matcher, error) {
	if m, ok := c.cache.Get(p); ok {
		return m, nil
	}

	m, err := compile(p)
	if err != nil {
		return nil, err
	}

	c.cache.Add(p, m)
	return m, nil
}

// Len returns the number of cached patterns.
func (c *Compiler) Len() int {
	return c.cache.Len()
}

func compile(p Pattern) (Matcher, error) {
	if strings.TrimSpace(p.Value) == "" {
		return nil, errs.Input("kwic", "empty pattern")
	}

	switch p.Type {
	case Fixed:
		parts := strings.Fields(p.Value)
		pm := phraseMatcher{parts: make([]func(string) bool, len(parts))}
		for i, part := range parts {
			pm.parts[i] = fixedPart(part, p.IgnoreCase)
		}
		return pm, nil

	case Glob:
		parts := strings.Fields(p.Value)
		pm := phraseMatcher{parts: make([]func(string) bool, len(parts))}
		for i, part := range parts {
			re, err := regexp.Compile(globToRegexp(part, p.IgnoreCase))
			if err != nil {
				return nil, errs.WrapInput("kwic", "malformed glob pattern", err)
			}
			pm.parts[i] = re.MatchString
		}
		return pm, nil

	case Regex:
		expr := "^(?:" + p.Value + ")$"
		if p.IgnoreCase {
			expr = "(?i)" + expr
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, errs.WrapInput("kwic", "malformed regex pattern", err)
		}
		span, err := regexSpan(p.Value)
		if err != nil {
			return nil, err
		}
		return regexMatcher{re: re, span: span}, nil
	}

	return nil, errs.Inputf("kwic", "unknown value type %d", p.Type)
}

// phraseMatcher matches one token per part.
type phraseMatcher struct {
	parts []func(string) bool
}

func (m phraseMatcher) Span() int {
	return len(m.parts)
}

func (m phraseMatcher) MatchAt(toks []string, i int) bool {
	if i < 0 || i+len(m.parts) > len(toks) {
		return false
	}

	for j, match := range m.parts {
		if !match(toks[i+j]) {
			return false
		}
	}
	return true
}

// regexMatcher matches the space joined window of span tokens.
type regexMatcher struct {
	re   *regexp.Regexp
	span int
}

func (m regexMatcher) Span() int {
	return m.span
}

func (m regexMatcher) MatchAt(toks []string, i int) bool {
	if i < 0 || i+m.span > len(toks) {
		return false
	}

	if m.span == 1 {
		return m.re.MatchString(toks[i])
	}
	return m.re.MatchString(strings.Join(toks[i:i+m.span], " "))
}

func fixedPart(part string, ignoreCase bool) func(string) bool {
	if ignoreCase {
		return func(tok string) bool { return strings.EqualFold(tok, part) }
	}
	return func(tok string) bool { return tok == part }
}

// globToRegexp translates a glob: '*' is any run of characters, '?' is
// one character, everything else is literal. The result is anchored.
func globToRegexp(glob string, ignoreCase bool) string {
	var b strings.Builder
	if ignoreCase {
		b.WriteString("(?i)")
	}
	b.WriteString("^")
	for _, r := range glob {
		switch r {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")
	return b.String()
}

// regexSpan counts the tokens a regex covers: one plus the number of token
// separators. A separator is a run of sub expressions that can only match
// white space, however it is spelled (' ', \s, [ ], \x20, \t, \p{Zs}).
// Top level alternatives must cover the same number of tokens.
func regexSpan(expr string) (int, error) {
	re, err := syntax.Parse(expr, syntax.Perl)
	if err != nil {
		return 0, errs.WrapInput("kwic", "malformed regex pattern", err)
	}

	for re.Op == syntax.OpCapture {
		re = re.Sub[0]
	}

	if re.Op != syntax.OpAlternate {
		return spanOf(re)
	}

	span := 0
	for i, alt := range re.Sub {
		n, err := spanOf(alt)
		if err != nil {
			return 0, err
		}
		if i > 0 && n != span {
			return 0, errs.Inputf("kwic", "regex alternatives cover %d and %d tokens", span, n)
		}
		span = n
	}
	return span, nil
}

// spanOf counts the separators between token parts of re.
func spanOf(re *syntax.Regexp) (int, error) {
	items, err := spaceItems(re)
	if err != nil {
		return 0, err
	}

	span := 1
	seenToken, inSep := false, false
	for _, space := range items {
		if space {
			inSep = true
			continue
		}
		if inSep && seenToken {
			span++
		}
		seenToken, inSep = true, false
	}
	return span, nil
}

// spaceItems flattens the concatenation re into the sequence of its parts,
// true for a part that only matches white space.
func spaceItems(re *syntax.Regexp) ([]bool, error) {
	switch re.Op {
	case syntax.OpConcat:
		var out []bool
		for _, sub := range re.Sub {
			items, err := spaceItems(sub)
			if err != nil {
				return nil, err
			}
			out = append(out, items...)
		}
		return out, nil

	case syntax.OpCapture:
		return spaceItems(re.Sub[0])

	case syntax.OpLiteral:
		out := make([]bool, len(re.Rune))
		for i, r := range re.Rune {
			out[i] = unicode.IsSpace(r)
		}
		return out, nil

	case syntax.OpEmptyMatch, syntax.OpBeginLine, syntax.OpEndLine,
		syntax.OpBeginText, syntax.OpEndText, syntax.OpWordBoundary, syntax.OpNoWordBoundary:
		return nil, nil

	case syntax.OpAlternate:
		if !onlySpace(re) && containsSpace(re) {
			return nil, errs.Input("kwic", "white space inside a nested regex alternation")
		}
	}

	return []bool{onlySpace(re)}, nil
}

// onlySpace reports whether every string re matches is white space.
func onlySpace(re *syntax.Regexp) bool {
	switch re.Op {
	case syntax.OpLiteral:
		for _, r := range re.Rune {
			if !unicode.IsSpace(r) {
				return false
			}
		}
		return len(re.Rune) > 0

	case syntax.OpCharClass:
		for i := 0; i+1 < len(re.Rune); i += 2 {
			lo, hi := re.Rune[i], re.Rune[i+1]
			if hi-lo > maxSpaceRange {
				return false
			}
			for r := lo; r <= hi; r++ {
				if !unicode.IsSpace(r) {
					return false
				}
			}
		}
		return len(re.Rune) > 0

	case syntax.OpStar, syntax.OpPlus, syntax.OpQuest, syntax.OpRepeat, syntax.OpCapture:
		return onlySpace(re.Sub[0])

	case syntax.OpConcat, syntax.OpAlternate:
		for _, sub := range re.Sub {
			if !onlySpace(sub) {
				return false
			}
		}
		return len(re.Sub) > 0
	}

	return false
}

// containsSpace reports whether some part of re only matches white space.
func containsSpace(re *syntax.Regexp) bool {
	if onlySpace(re) {
		return true
	}
	if re.Op == syntax.OpLiteral {
		for _, r := range re.Rune {
			if unicode.IsSpace(r) {
				return true
			}
		}
	}
	for _, sub := range re.Sub {
		if containsSpace(sub) {
			return true
		}
	}
	return false
}

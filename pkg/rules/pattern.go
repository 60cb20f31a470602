package rules

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// Pattern matches directory-entry basenames. Matching is anchored (the whole
// name must match), case-sensitive, and never crosses a path separator.
//
// Syntax:
//   - literal names compare by string equality
//   - `*` matches any sequence of characters, including none
//   - `(a|b|c)` matches any one of the literal alternatives
//   - `{a, b, c}` is accepted as input and normalized to the group form
//
// There is no `**`; patterns apply to a single name, never to a path.
type Pattern struct {
	src     string
	matcher glob.Glob
}

// CompilePattern normalizes and compiles a pattern source.
func CompilePattern(src string) (Pattern, error) {
	norm, err := normalizePattern(src)
	if err != nil {
		return Pattern{}, fmt.Errorf("pattern %q: %w", src, err)
	}
	if !strings.ContainsAny(norm, "*()") {
		return Pattern{src: norm}, nil
	}
	globSrc, err := toGlobSource(norm)
	if err != nil {
		return Pattern{}, fmt.Errorf("pattern %q: %w", src, err)
	}
	m, err := glob.Compile(globSrc)
	if err != nil {
		return Pattern{}, fmt.Errorf("pattern %q: %w", src, err)
	}
	return Pattern{src: norm, matcher: m}, nil
}

// MustPattern compiles a pattern and panics on error. For static rule tables.
func MustPattern(src string) Pattern {
	p, err := CompilePattern(src)
	if err != nil {
		panic(err)
	}
	return p
}

// Match reports whether name matches the pattern.
func (p Pattern) Match(name string) bool {
	if p.matcher == nil {
		return name == p.src
	}
	return p.matcher.Match(name)
}

// IsLiteral reports whether the pattern is a plain name with no wildcards.
func (p Pattern) IsLiteral() bool {
	return p.matcher == nil
}

// String returns the normalized pattern source.
func (p Pattern) String() string {
	return p.src
}

// normalizePattern trims and rewrites a pattern into its canonical form:
// brace alternation becomes group form, a bare `*.*` collapses to `*`,
// and a leading-dot extension shorthand gains its implicit `*`.
func normalizePattern(src string) (string, error) {
	s := strings.TrimSpace(src)
	if s == "" {
		return "", errors.New("empty pattern")
	}
	if strings.ContainsRune(s, '/') {
		return "", errors.New("patterns match basenames and must not contain '/'")
	}
	if strings.ContainsAny(s, "{}") {
		var err error
		s, err = bracesToGroups(s)
		if err != nil {
			return "", err
		}
	}
	if s == "*.*" {
		return "*", nil
	}
	if strings.HasPrefix(s, ".") && !strings.Contains(s, "*") {
		s = "*" + s
	}
	return s, nil
}

// bracesToGroups rewrites `{a, b}` alternation into `(a|b)` form,
// trimming whitespace around the alternatives.
func bracesToGroups(s string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '}' {
			return "", errors.New("unmatched '}'")
		}
		if c != '{' {
			b.WriteByte(c)
			continue
		}
		end := strings.IndexByte(s[i+1:], '}')
		if end < 0 {
			return "", errors.New("unterminated '{' alternation")
		}
		body := s[i+1 : i+1+end]
		if strings.ContainsRune(body, '{') {
			return "", errors.New("nested '{' alternation")
		}
		parts := strings.Split(body, ",")
		for j := range parts {
			parts[j] = strings.TrimSpace(parts[j])
		}
		b.WriteByte('(')
		b.WriteString(strings.Join(parts, "|"))
		b.WriteByte(')')
		i += end + 1
	}
	return b.String(), nil
}

// toGlobSource translates a normalized pattern into gobwas/glob syntax:
// alternation groups become brace sets and literal runs are quoted so only
// our own metacharacters stay special.
func toGlobSource(norm string) (string, error) {
	var b strings.Builder
	i := 0
	for i < len(norm) {
		switch norm[i] {
		case '*':
			b.WriteByte('*')
			i++
		case '(':
			end := strings.IndexByte(norm[i+1:], ')')
			if end < 0 {
				return "", errors.New("unterminated alternation group")
			}
			body := norm[i+1 : i+1+end]
			if body == "" {
				return "", errors.New("empty alternation group")
			}
			if strings.ContainsAny(body, "*(") {
				return "", errors.New("alternation groups may contain only literal alternatives")
			}
			alts := strings.Split(body, "|")
			b.WriteByte('{')
			for j, alt := range alts {
				if alt == "" {
					return "", errors.New("empty alternative in group")
				}
				if j > 0 {
					b.WriteByte(',')
				}
				b.WriteString(glob.QuoteMeta(alt))
			}
			b.WriteByte('}')
			i += end + 2
		case ')':
			return "", errors.New("unmatched ')'")
		default:
			j := i
			for j < len(norm) && norm[j] != '*' && norm[j] != '(' && norm[j] != ')' {
				j++
			}
			b.WriteString(glob.QuoteMeta(norm[i:j]))
			i = j
		}
	}
	return b.String(), nil
}

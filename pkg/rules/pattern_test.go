package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompilePatternNormalization(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{name: "literal unchanged", src: "f3", want: "f3"},
		{name: "whitespace trimmed", src: "  *.png  ", want: "*.png"},
		{name: "braces become group", src: "*.{svg, jpg, png}", want: "*.(svg|jpg|png)"},
		{name: "star dot star collapses", src: "*.*", want: "*"},
		{name: "extension shorthand", src: ".png", want: "*.png"},
		{name: "extension shorthand with group", src: ".(png|jpg)", want: "*.(png|jpg)"},
		{name: "prefixed star dot star kept", src: "folder2-*.*", want: "folder2-*.*"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := CompilePattern(tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.String())
		})
	}
}

func TestCompilePatternErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "empty", src: ""},
		{name: "blank", src: "   "},
		{name: "path separator", src: "a/b"},
		{name: "unterminated group", src: "(a|b"},
		{name: "unmatched close", src: "a)"},
		{name: "empty group", src: "x()"},
		{name: "empty alternative", src: "(a||b)"},
		{name: "wildcard inside group", src: "(*|a)"},
		{name: "unterminated brace", src: "x{a,b"},
		{name: "unmatched close brace", src: "a}b"},
		{name: "nested brace", src: "{a,{b}}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CompilePattern(tt.src)
			assert.Error(t, err)
		})
	}
}

func TestPatternMatch(t *testing.T) {
	tests := []struct {
		pattern string
		name    string
		want    bool
	}{
		{"f3", "f3", true},
		{"f3", "f3-extra", false},
		{"*.png", "a.png", true},
		{"*.png", ".png", true},
		{"*.png", "a.PNG", false},
		{"*.png", "a.pngx", false},
		{"*.png", "png", false},
		{"*.(svg|jpg|png)", "b.jpg", true},
		{"*.(svg|jpg|png)", "x.svg", true},
		{"*.(svg|jpg|png)", "b.gif", false},
		{"*.{svg, jpg, png}", "c.png", true},
		{"*.*", "anything", true},
		{"*.*", "with.dot", true},
		{"folder2-*.*", "folder2-x.txt", true},
		{"folder2-*.*", "folder2-.x", true},
		{"folder2-*.*", "folder2-x", false},
		{"folder2-*.*", "other.txt", false},
		{"f3-*", "f3-extra", true},
		{"f3-*", "f3-", true},
		{"f3-*", "f3", false},
		{"cmd-*.sh", "cmd-build.sh", true},
		{"cmd-*.sh", "cmd.sh", false},
		// Only `*` and groups are metacharacters; glob specials in names
		// stay literal.
		{"a?b", "a?b", true},
		{"a?b", "axb", false},
		{"*[1]", "copy[1]", true},
		{"*[1]", "copy1", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.name, func(t *testing.T) {
			p, err := CompilePattern(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Match(tt.name))
		})
	}
}

func TestPatternIsLiteral(t *testing.T) {
	lit, err := CompilePattern("photos")
	require.NoError(t, err)
	assert.True(t, lit.IsLiteral())

	glob, err := CompilePattern("f3-*")
	require.NoError(t, err)
	assert.False(t, glob.IsLiteral())

	group, err := CompilePattern("(a|b)")
	require.NoError(t, err)
	assert.False(t, group.IsLiteral())
	assert.True(t, group.Match("a"))
	assert.True(t, group.Match("b"))
	assert.False(t, group.Match("c"))
}

func TestMustPatternPanics(t *testing.T) {
	assert.NotPanics(t, func() { MustPattern("*.png") })
	assert.Panics(t, func() { MustPattern("(broken") })
}

package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSet(t *testing.T) {
	set, err := NewSet("top", []Def{
		{
			Name:          "top",
			RequiredDirs:  []string{"src"},
			RequiredFiles: []string{"README.md"},
			AllowedFiles:  []string{"*.md"},
			Children: []ChildDef{
				{Match: "src", Rule: "src"},
				{Match: "pkg-*", Rule: "src"},
			},
		},
		{Name: "src", AllowedFiles: []string{"*.go"}},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, set.Len())
	assert.Equal(t, []string{"src", "top"}, set.Names())
	assert.Equal(t, "top", set.Root().Name())

	src, ok := set.Get("src")
	require.True(t, ok)
	assert.Equal(t, "src", src.Name())

	_, ok = set.Get("missing")
	assert.False(t, ok)
}

func TestNewSetErrors(t *testing.T) {
	tests := []struct {
		name    string
		root    string
		defs    []Def
		wantErr string
	}{
		{
			name:    "no rules",
			root:    "top",
			defs:    nil,
			wantErr: "no rules",
		},
		{
			name:    "empty rule name",
			root:    "top",
			defs:    []Def{{Name: "  "}},
			wantErr: "empty name",
		},
		{
			name:    "duplicate rule name",
			root:    "top",
			defs:    []Def{{Name: "top"}, {Name: "top"}},
			wantErr: "duplicate rule name",
		},
		{
			name:    "undefined root",
			root:    "top",
			defs:    []Def{{Name: "other"}},
			wantErr: `root rule "top"`,
		},
		{
			name: "unknown child rule",
			root: "top",
			defs: []Def{
				{Name: "top", Children: []ChildDef{{Match: "a", Rule: "nope"}}},
			},
			wantErr: "unknown rule",
		},
		{
			name: "bad allowed pattern",
			root: "top",
			defs: []Def{{Name: "top", AllowedFiles: []string{"(a|"}}},
			wantErr: "allowed file",
		},
		{
			name:    "required name with wildcard",
			root:    "top",
			defs:    []Def{{Name: "top", RequiredDirs: []string{"f*"}}},
			wantErr: "must be a literal",
		},
		{
			name: "duplicate fixed binding",
			root: "top",
			defs: []Def{
				{Name: "top", Children: []ChildDef{
					{Match: "a", Rule: "leaf"},
					{Match: "a", Rule: "leaf"},
				}},
				{Name: "leaf"},
			},
			wantErr: "duplicate fixed binding",
		},
		{
			name: "duplicate pattern binding",
			root: "top",
			defs: []Def{
				{Name: "top", Children: []ChildDef{
					{Match: "a-*", Rule: "leaf"},
					{Match: "a-*", Rule: "leaf"},
				}},
				{Name: "leaf"},
			},
			wantErr: "duplicate pattern binding",
		},
		{
			name: "cycle",
			root: "a",
			defs: []Def{
				{Name: "a", Children: []ChildDef{{Match: "b", Rule: "b"}}},
				{Name: "b", Children: []ChildDef{{Match: "a", Rule: "a"}}},
			},
			wantErr: "rule cycle",
		},
		{
			name: "self cycle",
			root: "a",
			defs: []Def{
				{Name: "a", Children: []ChildDef{{Match: "a", Rule: "a"}}},
			},
			wantErr: "rule cycle",
		},
		{
			name: "unreachable rule",
			root: "top",
			defs: []Def{
				{Name: "top"},
				{Name: "orphan"},
			},
			wantErr: "not reachable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSet(tt.root, tt.defs)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRuleAllows(t *testing.T) {
	set, err := NewSet("top", []Def{
		{
			Name:          "top",
			AllowedDirs:   []string{"build-*"},
			AllowedFiles:  []string{"*.md"},
			RequiredDirs:  []string{"src"},
			RequiredFiles: []string{"go.mod"},
			Children: []ChildDef{
				{Match: "src", Rule: "leaf"},
				{Match: "gen-*", Rule: "leaf"},
			},
		},
		{Name: "leaf"},
	})
	require.NoError(t, err)
	top := set.Root()

	// Allowed-dir patterns.
	assert.True(t, top.AllowsDir("build-linux"))
	// Required dirs are automatically allowed.
	assert.True(t, top.AllowsDir("src"))
	// Child bindings are automatically allowed, fixed and pattern alike.
	assert.True(t, top.AllowsDir("gen-models"))
	assert.False(t, top.AllowsDir("stray"))

	assert.True(t, top.AllowsFile("notes.md"))
	// Required files are automatically allowed.
	assert.True(t, top.AllowsFile("go.mod"))
	assert.False(t, top.AllowsFile("stray.txt"))
}

func TestSetWalk(t *testing.T) {
	set, err := NewSet("top", []Def{
		{Name: "top", Children: []ChildDef{
			{Match: "fixed", Rule: "mid"},
			{Match: "var-*", Rule: "leaf"},
		}},
		{Name: "mid", Children: []ChildDef{{Match: "inner", Rule: "leaf"}}},
		{Name: "leaf"},
	})
	require.NoError(t, err)

	type visit struct {
		label string
		depth int
		rule  string
	}
	var got []visit
	set.Walk(func(label string, depth int, r *Rule) {
		got = append(got, visit{label, depth, r.Name()})
	})

	want := []visit{
		{".", 0, "top"},
		{"fixed", 1, "mid"},
		{"fixed/inner", 2, "leaf"},
		{"var-*", 1, "leaf"},
	}
	assert.Equal(t, want, got)
}

func TestBuiltin(t *testing.T) {
	set := Builtin()
	require.NotNil(t, set)
	assert.Equal(t, "root", set.Root().Name())
	assert.Equal(t, 7, set.Len())

	folder3, ok := set.Get("folder3")
	require.True(t, ok)
	assert.Equal(t, []string{"f3"}, folder3.RequiredDirs())

	// f3 and f3-* share one rule.
	bindings := folder3.Bindings()
	require.Len(t, bindings, 2)
	assert.True(t, bindings[0].IsFixed())
	assert.False(t, bindings[1].IsFixed())
	assert.Same(t, bindings[0].Rule(), bindings[1].Rule())

	var labels []string
	set.Walk(func(label string, _ int, _ *Rule) {
		labels = append(labels, label)
	})
	assert.Contains(t, labels, "folder1/pngs")
	assert.Contains(t, labels, "folder3/f3-*")
}

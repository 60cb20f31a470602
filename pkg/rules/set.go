package rules

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
)

// Def declares one rule for NewSet. Child bindings reference other defs by
// name, so the same rule can govern several bindings.
type Def struct {
	Name          string
	AllowedDirs   []string
	AllowedFiles  []string
	RequiredDirs  []string
	RequiredFiles []string
	Children      []ChildDef
	AllowExtra    bool
}

// ChildDef binds a child name (literal or pattern) to the rule that governs
// matching subdirectories.
type ChildDef struct {
	Match string
	Rule  string
}

// Set is a compiled, immutable rule set with one designated root rule.
type Set struct {
	root  *Rule
	rules map[string]*Rule
	names []string
}

// NewSet compiles rule definitions into an immutable Set and validates the
// structural invariants: unique names, resolvable child references, compiled
// patterns, no duplicate bindings within a rule, and a cycle-free binding
// graph in which every rule is reachable from the root.
func NewSet(root string, defs []Def) (*Set, error) {
	if len(defs) == 0 {
		return nil, errors.New("rule set has no rules")
	}

	compiled := make(map[string]*Rule, len(defs))
	for _, def := range defs {
		name := strings.TrimSpace(def.Name)
		if name == "" {
			return nil, errors.New("rule with empty name")
		}
		if _, dup := compiled[name]; dup {
			return nil, fmt.Errorf("duplicate rule name %q", name)
		}

		r := &Rule{name: name, allowExtra: def.AllowExtra}
		for _, src := range def.AllowedDirs {
			p, err := CompilePattern(src)
			if err != nil {
				return nil, fmt.Errorf("rule %q: allowed directory: %w", name, err)
			}
			r.allowedDirs = append(r.allowedDirs, p)
		}
		for _, src := range def.AllowedFiles {
			p, err := CompilePattern(src)
			if err != nil {
				return nil, fmt.Errorf("rule %q: allowed file: %w", name, err)
			}
			r.allowedFiles = append(r.allowedFiles, p)
		}
		var err error
		if r.requiredDirs, err = literalNames(name, "required directory", def.RequiredDirs); err != nil {
			return nil, err
		}
		if r.requiredFiles, err = literalNames(name, "required file", def.RequiredFiles); err != nil {
			return nil, err
		}
		compiled[name] = r
	}

	// Bindings resolve in a second pass so defs may reference each other in
	// any order.
	for _, def := range defs {
		r := compiled[strings.TrimSpace(def.Name)]
		seenFixed := make(map[string]bool)
		seenPattern := make(map[string]bool)
		for _, child := range def.Children {
			p, err := CompilePattern(child.Match)
			if err != nil {
				return nil, fmt.Errorf("rule %q: child binding: %w", r.name, err)
			}
			target, ok := compiled[child.Rule]
			if !ok {
				return nil, fmt.Errorf("rule %q: child %q references unknown rule %q", r.name, child.Match, child.Rule)
			}
			if p.IsLiteral() {
				if seenFixed[p.String()] {
					return nil, fmt.Errorf("rule %q: duplicate fixed binding %q", r.name, p.String())
				}
				seenFixed[p.String()] = true
			} else {
				if seenPattern[p.String()] {
					return nil, fmt.Errorf("rule %q: duplicate pattern binding %q", r.name, p.String())
				}
				seenPattern[p.String()] = true
			}
			r.bindings = append(r.bindings, Binding{match: p, rule: target})
		}
	}

	rootRule, ok := compiled[root]
	if !ok {
		return nil, fmt.Errorf("root rule %q is not defined", root)
	}

	reached, err := checkAcyclic(rootRule)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(compiled))
	for name := range compiled {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if !reached[name] {
			return nil, fmt.Errorf("rule %q is not reachable from root %q", name, root)
		}
	}

	return &Set{root: rootRule, rules: compiled, names: names}, nil
}

// MustNewSet is NewSet for static rule tables; it panics on error.
func MustNewSet(root string, defs []Def) *Set {
	s, err := NewSet(root, defs)
	if err != nil {
		panic(err)
	}
	return s
}

// Root returns the designated entry rule.
func (s *Set) Root() *Rule {
	return s.root
}

// Get looks up a rule by name.
func (s *Set) Get(name string) (*Rule, bool) {
	r, ok := s.rules[name]
	return r, ok
}

// Names returns all rule names in lexicographic order.
func (s *Set) Names() []string {
	return slices.Clone(s.names)
}

// Len returns the number of rules in the set.
func (s *Set) Len() int {
	return len(s.rules)
}

// Walk visits every binding path depth-first starting at the root, in
// declaration order. fn receives the slash-joined path label ("." for the
// root), the nesting depth, and the governing rule. A rule bound from
// several places is visited once per path label.
func (s *Set) Walk(fn func(label string, depth int, r *Rule)) {
	var walk func(label string, depth int, r *Rule)
	walk = func(label string, depth int, r *Rule) {
		fn(label, depth, r)
		for _, b := range r.bindings {
			next := b.Name()
			if label != "." {
				next = label + "/" + b.Name()
			}
			walk(next, depth+1, b.rule)
		}
	}
	walk(".", 0, s.root)
}

func literalNames(rule, field string, names []string) ([]string, error) {
	var out []string
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || strings.ContainsAny(n, "*(){}|") {
			return nil, fmt.Errorf("rule %q: %s name %q must be a literal", rule, field, n)
		}
		out = append(out, n)
	}
	return out, nil
}

// checkAcyclic runs a depth-first search over child bindings, tracking the
// recursion stack so a cycle is reported with its path. Returns the set of
// rule names reachable from the root.
func checkAcyclic(root *Rule) (map[string]bool, error) {
	visited := make(map[string]bool)
	stack := make(map[string]bool)
	var path []string

	var visit func(r *Rule) error
	visit = func(r *Rule) error {
		visited[r.name] = true
		stack[r.name] = true
		path = append(path, r.name)
		for _, b := range r.bindings {
			child := b.rule
			if stack[child.name] {
				start := slices.Index(path, child.name)
				cycle := append(slices.Clone(path[start:]), child.name)
				return fmt.Errorf("rule cycle: %s", strings.Join(cycle, " -> "))
			}
			if !visited[child.name] {
				if err := visit(child); err != nil {
					return err
				}
			}
		}
		stack[r.name] = false
		path = path[:len(path)-1]
		return nil
	}

	if err := visit(root); err != nil {
		return nil, err
	}
	return visited, nil
}

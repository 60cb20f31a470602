// Package rules defines the directory-structure rule model: immutable rules
// describing one directory's permitted and required contents, connected by
// child bindings into a DAG that mirrors the expected tree shape.
//
// Rules are data, constructed once via NewSet and never mutated afterwards.
// Traversal lives in pkg/checker; this package only answers questions about
// names ("is this file allowed here", "which rule governs this child").
package rules

// Binding attaches a child rule to subdirectories of its parent. A fixed
// binding names one exact subdirectory; a pattern binding applies to every
// subdirectory whose name matches, except names claimed by a fixed binding.
type Binding struct {
	match Pattern
	rule  *Rule
}

// Match reports whether a subdirectory name selects this binding.
func (b Binding) Match(name string) bool {
	return b.match.Match(name)
}

// IsFixed reports whether the binding names one exact subdirectory.
func (b Binding) IsFixed() bool {
	return b.match.IsLiteral()
}

// Name returns the normalized binding source (the literal name, or the
// pattern text for pattern bindings).
func (b Binding) Name() string {
	return b.match.String()
}

// Rule returns the child rule the binding applies.
func (b Binding) Rule() *Rule {
	return b.rule
}

// Pattern returns the compiled binding pattern.
func (b Binding) Pattern() Pattern {
	return b.match
}

// Rule describes the expected contents of one directory: which child names
// are allowed, which are required, and which rules govern subdirectories.
type Rule struct {
	name          string
	allowedDirs   []Pattern
	allowedFiles  []Pattern
	requiredDirs  []string
	requiredFiles []string
	bindings      []Binding
	allowExtra    bool
}

// Name returns the unique rule name.
func (r *Rule) Name() string {
	return r.name
}

// RequiredDirs returns the literal subdirectory names that must exist.
func (r *Rule) RequiredDirs() []string {
	return r.requiredDirs
}

// RequiredFiles returns the literal file names that must exist.
func (r *Rule) RequiredFiles() []string {
	return r.requiredFiles
}

// Bindings returns the child bindings in declaration order.
func (r *Rule) Bindings() []Binding {
	return r.bindings
}

// AllowExtra reports whether this rule tolerates unlisted entries regardless
// of the traversal options.
func (r *Rule) AllowExtra() bool {
	return r.allowExtra
}

// AllowedDirPatterns returns the allowed-directory pattern sources.
func (r *Rule) AllowedDirPatterns() []string {
	return patternSources(r.allowedDirs)
}

// AllowedFilePatterns returns the allowed-file pattern sources.
func (r *Rule) AllowedFilePatterns() []string {
	return patternSources(r.allowedFiles)
}

// AllowsDir reports whether a subdirectory with the given name is permitted.
// Required directories and child bindings count as allowed: listing a child
// once is enough.
func (r *Rule) AllowsDir(name string) bool {
	for _, p := range r.allowedDirs {
		if p.Match(name) {
			return true
		}
	}
	for _, n := range r.requiredDirs {
		if n == name {
			return true
		}
	}
	for _, b := range r.bindings {
		if b.Match(name) {
			return true
		}
	}
	return false
}

// AllowsFile reports whether a file with the given name is permitted.
// Required files count as allowed.
func (r *Rule) AllowsFile(name string) bool {
	for _, p := range r.allowedFiles {
		if p.Match(name) {
			return true
		}
	}
	for _, n := range r.requiredFiles {
		if n == name {
			return true
		}
	}
	return false
}

func patternSources(ps []Pattern) []string {
	if len(ps) == 0 {
		return nil
	}
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.String()
	}
	return out
}

// Package checker validates a filesystem tree against a rule set. Traversal
// is a single-threaded depth-first walk that stops at the first violation:
// the error returned by Check is the one diagnostic a run produces.
package checker

import (
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/dirlint/dirlint/pkg/rules"
)

// MarkerFile is the basename reserved to mark a directory as governed by the
// tool. It is always excluded from content checks and never parsed.
const MarkerFile = ".dirlint"

// DefaultIgnore returns the basenames excluded from enumeration at every
// level: version-control metadata and the marker file.
func DefaultIgnore() []string {
	return []string{".git", MarkerFile}
}

// Options configure one validation run.
type Options struct {
	// AllowExtraEverywhere disables all unexpected-entry errors.
	AllowExtraEverywhere bool
	// StrictRoot makes the traversal root as strict as nested directories.
	// When false, unlisted entries at the root are tolerated.
	StrictRoot bool
	// Ignore lists extra basenames to exclude from enumeration, merged with
	// DefaultIgnore.
	Ignore []string
	// Logger receives traversal diagnostics. Nil discards them.
	Logger *slog.Logger
}

// Check validates the tree rooted at root against the rule set. It returns
// nil when the tree conforms, or the first *Violation encountered. The
// filesystem is only read, never modified.
func Check(root string, set *rules.Set, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	ignore := make(map[string]bool, len(opts.Ignore)+2)
	for _, name := range DefaultIgnore() {
		ignore[name] = true
	}
	for _, name := range opts.Ignore {
		ignore[name] = true
	}

	run := &run{root: root, opts: opts, ignore: ignore, logger: logger}
	if err := run.checkDir(set.Root(), "."); err != nil {
		return err
	}
	logger.Info("tree conforms", "root", root, "rules", set.Len())
	return nil
}

type run struct {
	root   string
	opts   Options
	ignore map[string]bool
	logger *slog.Logger
}

// checkDir applies one rule to one directory, then recurses into child
// bindings. rel is slash-separated and relative to the run root.
func (c *run) checkDir(r *rules.Rule, rel string) error {
	c.logger.Debug("checking directory", "path", rel, "rule", r.Name())

	abs := filepath.Join(c.root, filepath.FromSlash(rel))
	if st, err := os.Stat(abs); err != nil || !st.IsDir() {
		return &Violation{Kind: KindMissingDirectory, Path: rel, Rule: r.Name()}
	}

	for _, name := range r.RequiredDirs() {
		if st, err := os.Stat(filepath.Join(abs, name)); err != nil || !st.IsDir() {
			return &Violation{Kind: KindMissingRequiredDirectory, Path: joinRel(rel, name), Rule: r.Name()}
		}
	}
	for _, name := range r.RequiredFiles() {
		if st, err := os.Stat(filepath.Join(abs, name)); err != nil || st.IsDir() {
			return &Violation{Kind: KindMissingRequiredFile, Path: joinRel(rel, name), Rule: r.Name()}
		}
	}

	// os.ReadDir sorts by name, which fixes the traversal order and makes
	// the first failure reproducible.
	entries, err := os.ReadDir(abs)
	if err != nil {
		return &Violation{Kind: KindMissingDirectory, Path: rel, Rule: r.Name()}
	}
	var dirNames, fileNames []string
	for _, e := range entries {
		if c.ignore[e.Name()] {
			continue
		}
		if e.IsDir() {
			dirNames = append(dirNames, e.Name())
		} else {
			fileNames = append(fileNames, e.Name())
		}
	}

	tolerant := c.opts.AllowExtraEverywhere || r.AllowExtra() ||
		(rel == "." && !c.opts.StrictRoot)
	if !tolerant {
		for _, name := range dirNames {
			if !r.AllowsDir(name) {
				return &Violation{Kind: KindUnexpectedDirectory, Path: joinRel(rel, name), Rule: r.Name()}
			}
		}
		for _, name := range fileNames {
			if !r.AllowsFile(name) {
				return &Violation{Kind: KindUnexpectedFile, Path: joinRel(rel, name), Rule: r.Name()}
			}
		}
	}

	// Fixed bindings recurse first, in declaration order. A fixed child that
	// is absent is skipped here; whether it had to exist was decided by the
	// required-directory check above.
	claimed := make(map[string]bool)
	hasPatterns := false
	for _, b := range r.Bindings() {
		if !b.IsFixed() {
			hasPatterns = true
			continue
		}
		claimed[b.Name()] = true
	}
	for _, b := range r.Bindings() {
		if !b.IsFixed() || !slices.Contains(dirNames, b.Name()) {
			continue
		}
		if err := c.checkDir(b.Rule(), joinRel(rel, b.Name())); err != nil {
			return err
		}
	}

	if !hasPatterns {
		return nil
	}

	// Pattern sweep: every remaining subdirectory matching exactly one
	// pattern binding is validated against that binding's rule. Two matches
	// are a configuration error surfaced before recursing into either.
	for _, name := range dirNames {
		if claimed[name] {
			continue
		}
		var matched rules.Binding
		found := false
		for _, b := range r.Bindings() {
			if b.IsFixed() || !b.Match(name) {
				continue
			}
			if found {
				return &Violation{Kind: KindAmbiguousRule, Path: joinRel(rel, name), Rule: r.Name()}
			}
			matched, found = b, true
		}
		if !found {
			continue
		}
		if err := c.checkDir(matched.Rule(), joinRel(rel, name)); err != nil {
			return err
		}
	}
	return nil
}

func joinRel(rel, name string) string {
	if rel == "." {
		return name
	}
	return rel + "/" + name
}

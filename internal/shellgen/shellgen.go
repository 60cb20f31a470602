// Package shellgen compiles a rule set into a standalone bash verifier.
//
// The generated script needs nothing but bash: it walks "${1:-.}" the
// same way the checker does, prints one diagnostic line to stderr and
// exits 1 on the first violation, and prints "dirlint: ok" on success.
// Options are baked into the script at generation time.
package shellgen

import (
	"fmt"
	"strings"

	"github.com/dirlint/dirlint/pkg/checker"
	"github.com/dirlint/dirlint/pkg/rules"
)

// Options control the behavior baked into the generated script.
type Options struct {
	AllowExtraEverywhere bool
	StrictRoot           bool
	// Ignore lists extra basenames to skip, in addition to the
	// checker defaults.
	Ignore []string
}

// Generate renders set as a bash script validating the directory given
// as the script's first argument.
func Generate(set *rules.Set, opts Options) string {
	g := &generator{set: set, opts: opts, ids: make(map[string]int)}
	return g.run()
}

type generator struct {
	set  *rules.Set
	opts Options
	b    strings.Builder

	// ids numbers rules in depth-first discovery order from the root.
	// A rule bound in several places compiles to one function.
	ids   map[string]int
	order []*rules.Rule
}

func (g *generator) line(format string, args ...any) {
	if len(args) > 0 {
		format = fmt.Sprintf(format, args...)
	}
	g.b.WriteString(format)
	g.b.WriteByte('\n')
}

func (g *generator) run() string {
	g.number(g.set.Root())

	g.header()
	g.helpers()
	for _, r := range g.order {
		g.ruleArrays(r)
		g.ruleFunc(r)
	}
	g.line(`rule_%d "."`, g.ids[g.set.Root().Name()])
	g.line("")
	g.line(`echo "dirlint: ok"`)
	return g.b.String()
}

func (g *generator) number(r *rules.Rule) {
	if _, ok := g.ids[r.Name()]; ok {
		return
	}
	g.ids[r.Name()] = len(g.order) + 1
	g.order = append(g.order, r)
	for _, bd := range r.Bindings() {
		g.number(bd.Rule())
	}
}

func (g *generator) header() {
	g.line("#!/usr/bin/env bash")
	g.line("set -euo pipefail")
	g.line("shopt -s extglob")
	g.line("")
	g.line(`ROOT="${1:-.}"`)
	g.line("ALLOW_EXTRA_EVERYWHERE=%s", bashBool(g.opts.AllowExtraEverywhere))
	g.line("STRICT_ROOT=%s", bashBool(g.opts.StrictRoot))
	g.line("")

	ignore := checker.DefaultIgnore()
	for _, name := range g.opts.Ignore {
		if !contains(ignore, name) {
			ignore = append(ignore, name)
		}
	}
	g.line(bashArray("IGNORE_BASENAMES", ignore))
	g.line("")
}

func (g *generator) helpers() {
	g.line(`fail() {
  echo "dirlint: $*" >&2
  exit 1
}

join_rel() {
  local rel="$1" name="$2"
  if [[ "$rel" == "." ]]; then
    echo "$name"
  else
    echo "$rel/$name"
  fi
}

is_ignored() {
  local base="$1"
  local pat
  for pat in "${IGNORE_BASENAMES[@]}"; do
    [[ "$base" == "$pat" ]] && return 0
  done
  return 1
}

matches_any() {
  local name="$1"; shift
  local pat
  for pat in "$@"; do
    [[ "$name" == $pat ]] && return 0
  done
  return 1
}

check_dir() {
  local rel="$1"
  local allowed_dirs_var="$2"
  local allowed_files_var="$3"
  local required_dirs_var="$4"
  local required_files_var="$5"
  local allow_extra="$6"

  local path="$ROOT/$rel"
  [[ -d "$path" ]] || fail "missing directory: $rel"

  local allowed_dirs allowed_files required_dirs required_files
  eval "allowed_dirs=(\"\${${allowed_dirs_var}[@]}\")"
  eval "allowed_files=(\"\${${allowed_files_var}[@]}\")"
  eval "required_dirs=(\"\${${required_dirs_var}[@]}\")"
  eval "required_files=(\"\${${required_files_var}[@]}\")"

  local req
  for req in "${required_dirs[@]}"; do
    [[ -d "$path/$req" ]] || fail "missing required directory: $(join_rel "$rel" "$req")"
  done

  for req in "${required_files[@]}"; do
    [[ -f "$path/$req" ]] || fail "missing required file: $(join_rel "$rel" "$req")"
  done

  [[ "$allow_extra" == "1" ]] && return 0

  shopt -s nullglob dotglob
  local entries=("$path"/*)
  shopt -u dotglob

  local entry base
  for entry in "${entries[@]}"; do
    base="${entry##*/}"
    is_ignored "$base" && continue

    if [[ -d "$entry" ]]; then
      matches_any "$base" "${allowed_dirs[@]}" || fail "unexpected directory: $(join_rel "$rel" "$base")"
    else
      matches_any "$base" "${allowed_files[@]}" || fail "unexpected file: $(join_rel "$rel" "$base")"
    fi
  done
  return 0
}
`)
}

// ruleArrays emits the allowed and required name arrays for one rule.
func (g *generator) ruleArrays(r *rules.Rule) {
	id := g.ids[r.Name()]

	var allowedDirs []string
	for _, p := range r.AllowedDirPatterns() {
		allowedDirs = appendUnique(allowedDirs, toExtglob(p))
	}
	for _, name := range r.RequiredDirs() {
		allowedDirs = appendUnique(allowedDirs, extglobQuote(name))
	}
	for _, bd := range r.Bindings() {
		allowedDirs = appendUnique(allowedDirs, toExtglob(bd.Pattern()))
	}

	var allowedFiles []string
	for _, p := range r.AllowedFilePatterns() {
		allowedFiles = appendUnique(allowedFiles, toExtglob(p))
	}
	for _, name := range r.RequiredFiles() {
		allowedFiles = appendUnique(allowedFiles, extglobQuote(name))
	}

	g.line(bashArray(fmt.Sprintf("ALLOWED_DIRS_%d", id), allowedDirs))
	g.line(bashArray(fmt.Sprintf("ALLOWED_FILES_%d", id), allowedFiles))
	g.line(bashArray(fmt.Sprintf("REQUIRED_DIRS_%d", id), r.RequiredDirs()))
	g.line(bashArray(fmt.Sprintf("REQUIRED_FILES_%d", id), r.RequiredFiles()))
	g.line("")
}

// ruleFunc emits the per-rule traversal function: validate the directory,
// then recurse through fixed bindings and the pattern sweep.
func (g *generator) ruleFunc(r *rules.Rule) {
	id := g.ids[r.Name()]

	g.line("rule_%d() {", id)
	g.line(`  local rel="$1"`)
	g.line("  local allow_extra=%s", bashBool(r.AllowExtra()))
	g.line(`  if [[ "$ALLOW_EXTRA_EVERYWHERE" == "1" ]]; then allow_extra=1; fi`)
	g.line(`  if [[ "$rel" == "." ]] && [[ "$STRICT_ROOT" != "1" ]]; then allow_extra=1; fi`)
	g.line(`  check_dir "$rel" ALLOWED_DIRS_%d ALLOWED_FILES_%d REQUIRED_DIRS_%d REQUIRED_FILES_%d "$allow_extra"`, id, id, id, id)

	var fixed, patterns []rules.Binding
	for _, bd := range r.Bindings() {
		if bd.IsFixed() {
			fixed = append(fixed, bd)
		} else {
			patterns = append(patterns, bd)
		}
	}

	if len(fixed) > 0 || len(patterns) > 0 {
		g.line(`  local path="$ROOT/$rel"`)
	}

	for _, bd := range fixed {
		childID := g.ids[bd.Rule().Name()]
		g.line(`  if [[ -d "$path/%s" ]]; then`, bd.Name())
		g.line(`    rule_%d "$(join_rel "$rel" %s)"`, childID, bashQuote(bd.Name()))
		g.line("  fi")
	}

	if len(patterns) > 0 {
		g.line("  shopt -s nullglob dotglob")
		g.line(`  local entries=("$path"/*)`)
		g.line("  shopt -u dotglob")
		g.line("  local entry base matched")
		g.line(`  for entry in "${entries[@]}"; do`)
		g.line(`    [[ -d "$entry" ]] || continue`)
		g.line(`    base="${entry##*/}"`)
		g.line(`    is_ignored "$base" && continue`)

		if len(fixed) > 0 {
			g.line(`    case "$base" in`)
			for _, bd := range fixed {
				g.line("      %s) continue ;;", bashQuote(bd.Name()))
			}
			g.line("    esac")
		}

		// Every pattern is tested before recursing so an ambiguous
		// name fails without validating either candidate.
		g.line(`    matched=""`)
		for _, bd := range patterns {
			childID := g.ids[bd.Rule().Name()]
			g.line(`    if [[ "$base" == %s ]]; then`, toExtglob(bd.Pattern()))
			g.line(`      if [[ -n "$matched" ]]; then`)
			g.line(`        fail "ambiguous directory rule for: $(join_rel "$rel" "$base")"`)
			g.line("      fi")
			g.line("      matched=rule_%d", childID)
			g.line("    fi")
		}
		g.line(`    if [[ -n "$matched" ]]; then`)
		g.line(`      "$matched" "$(join_rel "$rel" "$base")"`)
		g.line("    fi")
		g.line("  done")
	}

	g.line("}")
	g.line("")
}

func bashBool(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

// bashQuote single-quotes s for safe use in bash.
func bashQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}

// bashArray renders a quoted array literal. Quoting at assignment keeps
// pattern entries from expanding against the working directory; matching
// context decides whether a value is treated as a glob.
func bashArray(name string, items []string) string {
	if len(items) == 0 {
		return name + "=()"
	}
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = bashQuote(s)
	}
	return name + "=(" + strings.Join(quoted, " ") + ")"
}

func appendUnique(items []string, s string) []string {
	if contains(items, s) {
		return items
	}
	return append(items, s)
}

func contains(items []string, s string) bool {
	for _, it := range items {
		if it == s {
			return true
		}
	}
	return false
}

// extglobSpecial are the characters with meaning in bash pattern
// matching under extglob.
const extglobSpecial = `\*?[]()|+@!`

// extglobQuote backslash-escapes s so bash matches it literally.
func extglobQuote(s string) string {
	var b strings.Builder
	for _, c := range s {
		if strings.ContainsRune(extglobSpecial, c) {
			b.WriteByte('\\')
		}
		b.WriteRune(c)
	}
	return b.String()
}

// toExtglob translates a compiled pattern into bash extglob syntax:
// `*` stays a wildcard and `(a|b)` groups become `@(a|b)`.
func toExtglob(p rules.Pattern) string {
	src := p.String()
	if p.IsLiteral() {
		return extglobQuote(src)
	}
	var b strings.Builder
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '*':
			b.WriteByte('*')
		case '(':
			// Group syntax was validated when the pattern compiled.
			end := strings.IndexByte(src[i+1:], ')')
			alts := strings.Split(src[i+1:i+1+end], "|")
			for j := range alts {
				alts[j] = extglobQuote(alts[j])
			}
			b.WriteString("@(" + strings.Join(alts, "|") + ")")
			i += end + 1
		default:
			b.WriteString(extglobQuote(string(src[i])))
		}
	}
	return b.String()
}

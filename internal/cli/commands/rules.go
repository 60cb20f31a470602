package commands

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dirlint/dirlint/internal/cli/output"
	"github.com/dirlint/dirlint/pkg/rules"
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Format string // Output format
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [rule-name]",
		Short: "List the built-in structural rules",
		Long: `List the rules compiled into the binary, or show one rule in detail.

Each rule describes the expected contents of one directory: which child
names are required, which are allowed, and which rules govern
subdirectories. Fixed bindings attach a rule to one exact name; pattern
bindings apply it to every matching sibling not claimed by a fixed
binding.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # List all rules
  dirlint rules

  # Show one rule in detail
  dirlint rules folder3

  # Output as JSON
  dirlint rules --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return showRule(cmd, args[0], opts)
			}
			return listRules(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json, markdown")

	return cmd
}

// RuleInfo is the JSON shape of one rule.
type RuleInfo struct {
	Name          string        `json:"name"`
	AllowedDirs   []string      `json:"allowed_dirs,omitempty"`
	AllowedFiles  []string      `json:"allowed_files,omitempty"`
	RequiredDirs  []string      `json:"required_dirs,omitempty"`
	RequiredFiles []string      `json:"required_files,omitempty"`
	AllowExtra    bool          `json:"allow_extra"`
	Children      []BindingInfo `json:"children,omitempty"`
}

// BindingInfo describes one child binding of a rule.
type BindingInfo struct {
	Match string `json:"match"`
	Kind  string `json:"kind"` // "fixed" or "pattern"
	Rule  string `json:"rule"`
}

// RulesOutput is the JSON output for the rules listing.
type RulesOutput struct {
	Root  string     `json:"root"`
	Count int        `json:"count"`
	Rules []RuleInfo `json:"rules"`
}

func listRules(cmd *cobra.Command, opts *RulesOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	// Override renderer if format flag is set
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	set := rules.Builtin()

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return listRulesJSON(r, set)
	case output.ModeMarkdown:
		return listRulesMarkdown(r, set)
	default:
		return listRulesText(r, set)
	}
}

func showRule(cmd *cobra.Command, name string, opts *RulesOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	// Override renderer if format flag is set
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	set := rules.Builtin()
	rule, ok := set.Get(name)
	if !ok {
		return fmt.Errorf("rule %q not found\nHint: known rules are %s", name, strings.Join(set.Names(), ", "))
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(ruleInfo(rule))
	case output.ModeMarkdown:
		return showRuleMarkdown(r, rule)
	default:
		return showRuleText(r, rule)
	}
}

func ruleInfo(r *rules.Rule) RuleInfo {
	info := RuleInfo{
		Name:          r.Name(),
		AllowedDirs:   r.AllowedDirPatterns(),
		AllowedFiles:  r.AllowedFilePatterns(),
		RequiredDirs:  r.RequiredDirs(),
		RequiredFiles: r.RequiredFiles(),
		AllowExtra:    r.AllowExtra(),
	}
	for _, b := range r.Bindings() {
		info.Children = append(info.Children, BindingInfo{
			Match: b.Name(),
			Kind:  bindingKind(b),
			Rule:  b.Rule().Name(),
		})
	}
	return info
}

func bindingKind(b rules.Binding) string {
	if b.IsFixed() {
		return "fixed"
	}
	return "pattern"
}

// listRulesText renders the rule table for terminals.
func listRulesText(r *output.Renderer, set *rules.Set) error {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render(fmt.Sprintf("Structural Rules (%d)", set.Len())))
	r.Println("")

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Rule", "Required", "Allowed", "Children", "Extra OK"})

	for _, name := range set.Names() {
		rule, _ := set.Get(name)
		info := ruleInfo(rule)

		label := info.Name
		if rule == set.Root() {
			label += " (root)"
		}
		t.AppendRow(table.Row{
			label,
			joinOrDash(append(suffixSlash(info.RequiredDirs), info.RequiredFiles...)),
			joinOrDash(append(suffixSlash(info.AllowedDirs), info.AllowedFiles...)),
			joinOrDash(childLabels(info.Children)),
			yesNo(info.AllowExtra),
		})
	}
	t.Render()

	r.Println("")
	r.Println(styles.Muted.Render("Use 'dirlint rules <name>' for detail"))
	r.Println("")

	return nil
}

// listRulesMarkdown renders the rule listing for pipes and docs.
func listRulesMarkdown(r *output.Renderer, set *rules.Set) error {
	r.Println(output.FormatHeader(1, "Structural Rules"))
	r.Println("")

	for _, name := range set.Names() {
		rule, _ := set.Get(name)
		info := ruleInfo(rule)

		label := info.Name
		if rule == set.Root() {
			label += " (root)"
		}
		r.Println(output.FormatHeader(2, label))
		if required := append(suffixSlash(info.RequiredDirs), info.RequiredFiles...); len(required) > 0 {
			r.Println(output.FormatKeyValue("Required", strings.Join(required, ", ")))
		}
		if allowed := append(suffixSlash(info.AllowedDirs), info.AllowedFiles...); len(allowed) > 0 {
			r.Println(output.FormatKeyValue("Allowed", strings.Join(allowed, ", ")))
		}
		if len(info.Children) > 0 {
			r.Println(output.FormatKeyValue("Children", strings.Join(childLabels(info.Children), ", ")))
		}
		r.Println(output.FormatKeyValue("Extra OK", yesNo(info.AllowExtra)))
		r.Println("")
	}

	return nil
}

func listRulesJSON(r *output.Renderer, set *rules.Set) error {
	out := RulesOutput{
		Root:  set.Root().Name(),
		Count: set.Len(),
	}
	for _, name := range set.Names() {
		rule, _ := set.Get(name)
		out.Rules = append(out.Rules, ruleInfo(rule))
	}
	return r.JSON(out)
}

// showRuleText renders one rule in detail.
func showRuleText(r *output.Renderer, rule *rules.Rule) error {
	styles := r.Styles()
	info := ruleInfo(rule)
	titleCaser := cases.Title(language.English)

	r.Println("")
	r.Println(styles.Header1.Render(info.Name))
	r.Println("")

	r.Printf("  %s: %s\n", styles.Bold.Render("Extra tolerated"), yesNo(info.AllowExtra))
	r.Println("")

	if required := append(suffixSlash(info.RequiredDirs), info.RequiredFiles...); len(required) > 0 {
		r.Println(styles.Bold.Render("Required"))
		for _, name := range required {
			r.Println("  " + name)
		}
		r.Println("")
	}

	if allowed := append(suffixSlash(info.AllowedDirs), info.AllowedFiles...); len(allowed) > 0 {
		r.Println(styles.Bold.Render("Allowed"))
		for _, pat := range allowed {
			r.Println("  " + pat)
		}
		r.Println("")
	}

	if len(info.Children) > 0 {
		r.Println(styles.Bold.Render("Children"))
		for _, c := range info.Children {
			r.Printf("  %-8s %s -> %s\n", titleCaser.String(c.Kind), c.Match, c.Rule)
		}
		r.Println("")
	}

	return nil
}

// showRuleMarkdown renders one rule in detail for pipes and docs.
func showRuleMarkdown(r *output.Renderer, rule *rules.Rule) error {
	info := ruleInfo(rule)

	r.Println(output.FormatHeader(1, info.Name))
	r.Println("")
	r.Println(output.FormatKeyValue("Extra tolerated", yesNo(info.AllowExtra)))
	if required := append(suffixSlash(info.RequiredDirs), info.RequiredFiles...); len(required) > 0 {
		r.Println(output.FormatKeyValue("Required", strings.Join(required, ", ")))
	}
	if allowed := append(suffixSlash(info.AllowedDirs), info.AllowedFiles...); len(allowed) > 0 {
		r.Println(output.FormatKeyValue("Allowed", strings.Join(allowed, ", ")))
	}
	for _, c := range info.Children {
		r.Println(output.FormatKeyValue(c.Kind+" child", fmt.Sprintf("%s -> %s", c.Match, c.Rule)))
	}
	r.Println("")

	return nil
}

// Helper functions

func childLabels(children []BindingInfo) []string {
	var labels []string
	for _, c := range children {
		labels = append(labels, fmt.Sprintf("%s -> %s", c.Match, c.Rule))
	}
	return labels
}

// suffixSlash marks directory names the way listings show them.
func suffixSlash(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		out = append(out, n+"/")
	}
	return out
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

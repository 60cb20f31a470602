// Package output renders command output in text, markdown, and JSON modes.
//
// A Renderer is constructed once per command invocation and owns the
// destination writers. Text mode may use color when attached to a
// terminal; markdown and JSON output never carry escape sequences, so
// they are safe to pipe.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Mode selects the output format of a Renderer.
type Mode string

// OutputMode is an alias for Mode.
type OutputMode = Mode

const (
	// ModeAuto picks text on a terminal and markdown otherwise.
	ModeAuto Mode = "auto"
	// ModeText is human-oriented output, colored when on a terminal.
	ModeText Mode = "text"
	// ModeMarkdown is plain markdown suitable for piping into files.
	ModeMarkdown Mode = "markdown"
	// ModeJSON is machine-readable output.
	ModeJSON Mode = "json"
)

// ParseMode validates a mode string from configuration or flags.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeAuto, ModeText, ModeMarkdown, ModeJSON:
		return Mode(s), nil
	case "md":
		return ModeMarkdown, nil
	}
	return "", fmt.Errorf("invalid output mode %q (valid: auto, text, markdown, json)", s)
}

// Renderer writes formatted command output.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	isTTY  bool
	styles *Styles
}

// NewRenderer creates a Renderer, detecting whether out is a terminal.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	isTTY := false
	if f, ok := out.(*os.File); ok {
		isTTY = term.IsTerminal(int(f.Fd()))
	}
	return NewRendererWithTTY(out, errOut, isTTY, mode)
}

// NewRendererWithTTY creates a Renderer with an explicit TTY state.
// Tests use this to exercise both terminal and piped behavior.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode Mode) *Renderer {
	r := &Renderer{
		out:    out,
		errOut: errOut,
		mode:   mode,
		isTTY:  isTTY,
	}
	colored := isTTY && r.EffectiveMode() == ModeText && !termenv.EnvNoColor()
	r.styles = newStyles(colored)
	return r
}

// EffectiveMode resolves ModeAuto against the TTY state.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if r.isTTY {
		return ModeText
	}
	return ModeMarkdown
}

// IsTTY reports whether the output writer is a terminal.
func (r *Renderer) IsTTY() bool { return r.isTTY }

// Writer returns the destination for primary output.
func (r *Renderer) Writer() io.Writer { return r.out }

// ErrWriter returns the destination for diagnostics.
func (r *Renderer) ErrWriter() io.Writer { return r.errOut }

// Styles returns the style set matching the renderer's color state.
func (r *Renderer) Styles() *Styles { return r.styles }

// Println writes a line to the primary output.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

// Printf writes formatted text to the primary output.
func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.out, format, a...)
}

// Header writes a section header at the given level.
func (r *Renderer) Header(level int, text string) {
	if r.EffectiveMode() == ModeMarkdown {
		r.Println(FormatHeader(level, text))
		return
	}
	style := r.styles.Header2
	if level <= 1 {
		style = r.styles.Header1
	}
	r.Println(style.Render(text))
}

// Success writes a success line.
func (r *Renderer) Success(msg string) {
	r.Println(r.styles.Success.Render("✓") + " " + msg)
}

// Warning writes a warning line.
func (r *Renderer) Warning(msg string) {
	r.Println(r.styles.Warning.Render("!") + " " + msg)
}

// Muted writes a secondary, de-emphasized line.
func (r *Renderer) Muted(msg string) {
	r.Println(r.styles.Muted.Render(msg))
}

// StatusLine writes an indented per-item status line, with an optional
// note after the name.
func (r *Renderer) StatusLine(name, status, note string) {
	var mark string
	switch status {
	case "success", "ok":
		mark = r.styles.Success.Render("✓")
	case "error", "failed":
		mark = r.styles.Error.Render("✗")
	case "warning":
		mark = r.styles.Warning.Render("!")
	case "skipped":
		mark = r.styles.Muted.Render("-")
	default:
		mark = "•"
	}
	line := "  " + mark + " " + name
	if note != "" {
		line += " " + r.styles.Muted.Render("("+note+")")
	}
	r.Println(line)
}

// JSON writes v to the primary output as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

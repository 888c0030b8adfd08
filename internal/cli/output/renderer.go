// Package output provides rendering for CLI command results. A Renderer
// adapts to its destination: styled text on a terminal, markdown when
// piped, machine-readable JSON on request.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Mode selects the output format.
type Mode string

// Output modes.
const (
	ModeAuto     Mode = "auto"
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	bannerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

// Renderer writes command output in the selected mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	styled bool
}

// NewRenderer creates a renderer. ModeAuto resolves to text when out is
// a terminal and markdown otherwise.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	if mode == "" {
		mode = ModeAuto
	}
	styled := false
	if mode == ModeAuto {
		if isTerminal(out) {
			mode = ModeText
			styled = termenv.EnvColorProfile() != termenv.Ascii
		} else {
			mode = ModeMarkdown
		}
	} else if mode == ModeText {
		styled = isTerminal(out) && termenv.EnvColorProfile() != termenv.Ascii
	}
	return &Renderer{out: out, errOut: errOut, mode: mode, styled: styled}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Mode returns the resolved output mode.
func (r *Renderer) Mode() Mode { return r.mode }

// IsJSON reports whether the renderer is in JSON mode. Commands use it
// to suppress human-oriented chatter.
func (r *Renderer) IsJSON() bool { return r.mode == ModeJSON }

// Println writes a plain line.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

// Printf writes formatted plain output.
func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.out, format, a...)
}

// Success writes a confirmation line.
func (r *Renderer) Success(msg string) {
	r.styledLine(successStyle, "✓ "+msg)
}

// Warning writes a warning line.
func (r *Renderer) Warning(msg string) {
	r.styledLine(warnStyle, "! "+msg)
}

// Error writes an error line to the error stream.
func (r *Renderer) Error(msg string) {
	line := "✗ " + msg
	if r.styled {
		line = errorStyle.Render(line)
	}
	_, _ = fmt.Fprintln(r.errOut, line)
}

// Banner writes a prominent line announcing a long-running step.
func (r *Renderer) Banner(msg string) {
	r.styledLine(bannerStyle, msg)
}

// Dim writes a de-emphasized line.
func (r *Renderer) Dim(msg string) {
	r.styledLine(dimStyle, msg)
}

func (r *Renderer) styledLine(style lipgloss.Style, line string) {
	if r.styled {
		line = style.Render(line)
	}
	_, _ = fmt.Fprintln(r.out, line)
}

// StatusLine writes a name/status pair, e.g. for health checks.
func (r *Renderer) StatusLine(name, status, detail string) {
	mark := "•"
	style := dimStyle
	switch status {
	case "success", "pass", "ok":
		mark, style = "✓", successStyle
	case "warn", "warning":
		mark, style = "!", warnStyle
	case "error", "fail", "failed":
		mark, style = "✗", errorStyle
	}
	if r.styled {
		mark = style.Render(mark)
	}
	if detail != "" {
		_, _ = fmt.Fprintf(r.out, "%s %s: %s\n", mark, name, detail)
		return
	}
	_, _ = fmt.Fprintf(r.out, "%s %s\n", mark, name)
}

// Table renders headers and rows; markdown mode emits a markdown table.
func (r *Renderer) Table(headers []string, rows [][]string) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)

	headerRow := make(table.Row, len(headers))
	for i, h := range headers {
		headerRow[i] = h
	}
	t.AppendHeader(headerRow)

	for _, row := range rows {
		tr := make(table.Row, len(row))
		for i, cell := range row {
			tr[i] = cell
		}
		t.AppendRow(tr)
	}

	if r.mode == ModeMarkdown {
		t.RenderMarkdown()
		return
	}
	t.Render()
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

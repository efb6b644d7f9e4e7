package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"mojomls/internal/diag"
	"mojomls/internal/source"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	infoColor = color.New(color.FgCyan, color.Bold)
	noteColor = color.New(color.FgBlue)
	caretTint = color.New(color.FgGreen)
)

// Pretty formats diagnostics for a terminal. Call bag.Sort() first for a
// deterministic order. Each diagnostic prints as
//
//	path:line:col: SEVERITY CODE: message
//
// followed by the source line with a caret underline, then its notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for i := range bag.Items() {
		d := &bag.Items()[i]
		printHeader(w, fs, d.Primary, severityLabel(d.Severity, opts.Color), d.Code.ID(), d.Message, opts)
		printContext(w, fs, d.Primary, opts)
		if opts.ShowNotes {
			for _, n := range d.Notes {
				printHeader(w, fs, n.Span, paint(opts.Color, noteColor, "note"), d.Code.ID(), n.Msg, opts)
				printContext(w, fs, n.Span, opts)
			}
		}
	}
}

func severityLabel(sev diag.Severity, colored bool) string {
	switch sev {
	case diag.SevError:
		return paint(colored, errColor, "error")
	case diag.SevWarning:
		return paint(colored, warnColor, "warning")
	default:
		return paint(colored, infoColor, "info")
	}
}

func paint(enabled bool, c *color.Color, s string) string {
	if !enabled {
		return s
	}
	return c.Sprint(s)
}

func printHeader(w io.Writer, fs *source.FileSet, sp source.Span, sev, code, msg string, opts PrettyOpts) {
	f := fs.Get(sp.File)
	if f == nil {
		fmt.Fprintf(w, "%s %s: %s\n", sev, code, msg)
		return
	}
	start, _ := fs.Resolve(sp)
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", f.Path, start.Line, start.Col, sev, code, msg)
}

// printContext shows the primary line with a caret underline, plus up to
// opts.Context surrounding lines. Widths are measured with runewidth so the
// carets line up under wide characters.
func printContext(w io.Writer, fs *source.FileSet, sp source.Span, opts PrettyOpts) {
	f := fs.Get(sp.File)
	if f == nil {
		return
	}
	start, end := fs.Resolve(sp)

	firstLine := int(start.Line) - opts.Context
	if firstLine < 1 {
		firstLine = 1
	}
	for ln := firstLine; ln < int(start.Line); ln++ {
		fmt.Fprintf(w, "%5d | %s\n", ln, f.GetLine(uint32(ln)))
	}

	lineText := f.GetLine(start.Line)
	fmt.Fprintf(w, "%5d | %s\n", start.Line, lineText)

	startCol := int(start.Col)
	if startCol < 1 {
		startCol = 1
	}
	prefix := lineText
	if startCol-1 <= len(lineText) {
		prefix = lineText[:startCol-1]
	}
	pad := strings.Repeat(" ", runewidth.StringWidth(prefix))

	marked := 1
	if end.Line == start.Line && int(end.Col) > startCol {
		upto := int(end.Col) - 1
		if upto > len(lineText) {
			upto = len(lineText)
		}
		marked = runewidth.StringWidth(lineText[startCol-1 : upto])
		if marked < 1 {
			marked = 1
		}
	}
	carets := "^" + strings.Repeat("~", marked-1)
	fmt.Fprintf(w, "      | %s%s\n", pad, paint(opts.Color, caretTint, carets))

	totalLines := len(f.LineIdx) + 1
	lastLine := int(start.Line) + opts.Context
	if lastLine > totalLines {
		lastLine = totalLines
	}
	for ln := int(start.Line) + 1; ln <= lastLine; ln++ {
		fmt.Fprintf(w, "%5d | %s\n", ln, f.GetLine(uint32(ln)))
	}
}

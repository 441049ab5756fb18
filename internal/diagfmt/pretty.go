package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"declc/internal/diag"
	"declc/internal/source"
)

type palette struct {
	err, warn, info, loc, note, caret *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:   color.New(color.FgRed, color.Bold),
		warn:  color.New(color.FgYellow, color.Bold),
		info:  color.New(color.FgCyan, color.Bold),
		loc:   color.New(color.Bold),
		note:  color.New(color.FgBlue),
		caret: color.New(color.FgGreen, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.loc, p.note, p.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty prints each diagnostic of bag as
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//
// followed by the offending line with a ^~~~ underline, then its notes.
// bag is expected to be sorted.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	items := bag.Items()
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}
	for _, d := range items {
		start, _ := fs.Resolve(d.Primary)
		fmt.Fprintf(w, "%s: %s %s: %s\n",
			p.loc.Sprintf("%s:%d:%d", formatPath(fs, d.Primary, opts.PathMode), start.Line, start.Col),
			p.severity(d.Severity).Sprint(d.Severity.String()),
			d.Code.ID(),
			d.Message)
		writeContext(w, p, fs, d.Primary)
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			ns, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", p.note.Sprint("note:"),
				formatPath(fs, n.Span, opts.PathMode), ns.Line, ns.Col, n.Msg)
		}
	}
	if hidden := bag.Len() - len(items); hidden > 0 {
		fmt.Fprintf(w, "... %d more diagnostics not shown\n", hidden)
	}
}

func writeContext(w io.Writer, p palette, fs *source.FileSet, span source.Span) {
	f := fs.Get(span.File)
	if f == nil || len(f.Content) == 0 {
		return
	}
	start, end := fs.Resolve(span)
	line := strings.TrimRight(f.GetLine(start.Line), "\r")
	if line == "" {
		return
	}
	width := 1
	if end.Line == start.Line && end.Col > start.Col {
		width = int(end.Col - start.Col)
	}
	pad := strings.Repeat(" ", int(start.Col)-1)
	fmt.Fprintf(w, "  %s\n  %s%s\n", line, pad, p.caret.Sprint("^"+strings.Repeat("~", width-1)))
}

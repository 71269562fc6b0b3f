package diagnostics

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// ColorMode controls when the reporter emits ANSI colors.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Reporter renders an ordered sequence of diagnostics to a writer.
type Reporter struct {
	out      io.Writer
	errColor *color.Color
	wrnColor *color.Color
	locColor *color.Color
}

func NewReporter(out io.Writer, mode ColorMode) *Reporter {
	r := &Reporter{
		out:      out,
		errColor: color.New(color.FgRed, color.Bold),
		wrnColor: color.New(color.FgYellow, color.Bold),
		locColor: color.New(color.FgCyan),
	}
	useColor := mode == ColorAlways
	if mode == ColorAuto {
		if f, ok := out.(*os.File); ok {
			useColor = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
	}
	if !useColor {
		r.errColor.DisableColor()
		r.wrnColor.DisableColor()
		r.locColor.DisableColor()
	}
	return r
}

// Report prints every diagnostic in order and returns the number of fatal ones.
func (r *Reporter) Report(diags []*DiagnosticError) int {
	fatal := 0
	for _, d := range diags {
		c := r.errColor
		if d.Severity == SeverityWarning {
			c = r.wrnColor
		} else {
			fatal++
		}
		c.Fprintf(r.out, "%s[%s]", d.Severity, d.Code)
		fmt.Fprintf(r.out, ": %s\n", d.Message)
		if d.Token.Line > 0 {
			file := d.File
			if file == "" {
				file = "<input>"
			}
			r.locColor.Fprintf(r.out, "  --> %s:%d:%d\n", file, d.Token.Line, d.Token.Column)
		}
	}
	return fatal
}

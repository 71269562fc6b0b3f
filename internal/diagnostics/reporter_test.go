package diagnostics_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/funvibe/funcase/internal/diagnostics"
	"github.com/funvibe/funcase/internal/token"
)

func loc(line, col int) token.Token {
	return token.Token{Line: line, Column: col}
}

func TestReportCountsFatalDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	r := diagnostics.NewReporter(&buf, diagnostics.ColorNever)

	fatal := r.Report([]*diagnostics.DiagnosticError{
		diagnostics.NewError(diagnostics.ErrM001, loc(3, 5), "match is not exhaustive"),
		diagnostics.NewWarning(diagnostics.ErrM002, loc(4, 9), "clause can never match"),
		diagnostics.NewError(diagnostics.ErrD001, loc(1, 1), "duplicate constructor Cons"),
	})
	if fatal != 2 {
		t.Errorf("fatal count = %d, want 2", fatal)
	}
}

func TestReportRendersCodeSeverityAndLocation(t *testing.T) {
	var buf bytes.Buffer
	r := diagnostics.NewReporter(&buf, diagnostics.ColorNever)

	d := diagnostics.NewError(diagnostics.ErrM001, loc(12, 7), "match is not exhaustive: missing Nil")
	d.File = "main.fc"
	r.Report([]*diagnostics.DiagnosticError{d})

	out := buf.String()
	if !strings.Contains(out, "error[M001]: match is not exhaustive: missing Nil") {
		t.Errorf("missing header line in %q", out)
	}
	if !strings.Contains(out, "--> main.fc:12:7") {
		t.Errorf("missing location line in %q", out)
	}
}

func TestReportLabelsWarnings(t *testing.T) {
	var buf bytes.Buffer
	r := diagnostics.NewReporter(&buf, diagnostics.ColorNever)

	r.Report([]*diagnostics.DiagnosticError{
		diagnostics.NewWarning(diagnostics.ErrM002, loc(2, 3), "clause can never match"),
	})
	if !strings.Contains(buf.String(), "warning[M002]") {
		t.Errorf("warning not labeled: %q", buf.String())
	}
}

func TestReportOmitsLocationWithoutAToken(t *testing.T) {
	var buf bytes.Buffer
	r := diagnostics.NewReporter(&buf, diagnostics.ColorNever)

	r.Report([]*diagnostics.DiagnosticError{
		diagnostics.NewError(diagnostics.ErrP001, token.Token{}, "unexpected end of input"),
	})
	if strings.Contains(buf.String(), "-->") {
		t.Errorf("location printed for a zero token: %q", buf.String())
	}
}

func TestFileFallsBackToPlaceholder(t *testing.T) {
	var buf bytes.Buffer
	r := diagnostics.NewReporter(&buf, diagnostics.ColorNever)

	r.Report([]*diagnostics.DiagnosticError{
		diagnostics.NewError(diagnostics.ErrP001, loc(1, 2), "unexpected token"),
	})
	if !strings.Contains(buf.String(), "--> <input>:1:2") {
		t.Errorf("placeholder file missing: %q", buf.String())
	}
}

func TestColorNeverEmitsNoEscapeCodes(t *testing.T) {
	var buf bytes.Buffer
	r := diagnostics.NewReporter(&buf, diagnostics.ColorNever)

	r.Report([]*diagnostics.DiagnosticError{
		diagnostics.NewError(diagnostics.ErrM001, loc(1, 1), "match is not exhaustive"),
	})
	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("escape codes in plain output: %q", buf.String())
	}
}

func TestDiagnosticErrorString(t *testing.T) {
	d := diagnostics.NewError(diagnostics.ErrD002, loc(5, 10), "constructor Cons expects 2 sub-patterns, got 1")
	want := "error[D002]: 5:10: constructor Cons expects 2 sub-patterns, got 1"
	if d.Error() != want {
		t.Errorf("Error() = %q, want %q", d.Error(), want)
	}
}

// Package diagnostics defines the error taxonomy shared by every stage of
// the transformation pipeline. Compile-time diagnostics carry a code, a
// severity and a source location; fatal diagnostics abort the unit,
// warnings are collected and surfaced alongside a successful result.
package diagnostics

import (
	"fmt"

	"github.com/funvibe/funcase/internal/token"
)

type ErrorCode string

const (
	// Parser
	ErrP001 ErrorCode = "P001" // unexpected token
	ErrP002 ErrorCode = "P002" // no prefix parse function
	ErrP003 ErrorCode = "P003" // malformed declaration

	// Data declarations
	ErrD001 ErrorCode = "D001" // duplicate constructor
	ErrD002 ErrorCode = "D002" // arity mismatch
	ErrD003 ErrorCode = "D003" // unknown constructor reference

	// Match compilation
	ErrM001 ErrorCode = "M001" // non-exhaustive match
	ErrM002 ErrorCode = "M002" // redundant clause (warning)
	ErrM003 ErrorCode = "M003" // inconsistent or-pattern bindings
)

type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// DiagnosticError is a single diagnostic record. It implements error so
// that compiler stages can return it directly.
type DiagnosticError struct {
	Code     ErrorCode
	Severity Severity
	Token    token.Token
	Message  string
	File     string
}

func (d *DiagnosticError) Error() string {
	loc := ""
	if d.Token.Line > 0 {
		loc = fmt.Sprintf("%d:%d: ", d.Token.Line, d.Token.Column)
	}
	return fmt.Sprintf("%s[%s]: %s%s", d.Severity, d.Code, loc, d.Message)
}

// NewError creates a fatal diagnostic at the given token.
func NewError(code ErrorCode, tok token.Token, format string, args ...interface{}) *DiagnosticError {
	return &DiagnosticError{
		Code:     code,
		Severity: SeverityError,
		Token:    tok,
		Message:  fmt.Sprintf(format, args...),
	}
}

// NewWarning creates a non-fatal diagnostic at the given token.
func NewWarning(code ErrorCode, tok token.Token, format string, args ...interface{}) *DiagnosticError {
	return &DiagnosticError{
		Code:     code,
		Severity: SeverityWarning,
		Token:    tok,
		Message:  fmt.Sprintf(format, args...),
	}
}

// HasFatal reports whether any diagnostic in the list is an error.
func HasFatal(diags []*DiagnosticError) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Package driver wires the front end and the transformation stages into a
// single entry point. Stage order matters: adt populates the registry and
// must run first; tco must see match arms as tail positions, so it runs
// before match lowers them into loops.
package driver

import (
	"os"

	"github.com/funvibe/funcase/internal/adt"
	"github.com/funvibe/funcase/internal/ast"
	"github.com/funvibe/funcase/internal/config"
	"github.com/funvibe/funcase/internal/diagnostics"
	"github.com/funvibe/funcase/internal/lexer"
	"github.com/funvibe/funcase/internal/match"
	"github.com/funvibe/funcase/internal/parser"
	"github.com/funvibe/funcase/internal/pipeline"
	"github.com/funvibe/funcase/internal/tco"
	"github.com/funvibe/funcase/internal/variant"

	"github.com/google/uuid"
)

// Result is the outcome of transforming one compilation unit. Program is
// nil when Fatal is set: a unit with errors yields no tree at all, never a
// partially transformed one.
type Result struct {
	Program     *ast.Program
	UnitID      uuid.UUID
	Diagnostics []*diagnostics.DiagnosticError
	Fatal       bool
}

// Transform parses and transforms one source unit against the shared
// registry. Parse errors stop the pipeline before any stage runs; stage
// diagnostics are aggregated across all stages before the fatal decision.
func Transform(filePath, source string, reg *variant.Registry, cfg *config.Config) *Result {
	ctx := pipeline.NewContext(filePath, source, reg, cfg)

	l := lexer.New(source)
	p := parser.New(l)
	prog := p.ParseProgram()
	prog.File = filePath
	ctx.AddAll(p.Errors())

	res := &Result{UnitID: ctx.UnitID}
	if ctx.HasFatal() {
		res.Diagnostics = ctx.Diagnostics
		res.Fatal = true
		return res
	}

	ctx.AstRoot = prog
	ctx = pipeline.New(
		&adt.Processor{},
		&tco.Processor{},
		&match.Processor{},
	).Run(ctx)

	res.Diagnostics = ctx.Diagnostics
	if ctx.HasFatal() {
		res.Fatal = true
		return res
	}
	res.Program = ctx.AstRoot.(*ast.Program)
	return res
}

// TransformFile reads and transforms a source file.
func TransformFile(path string, reg *variant.Registry, cfg *config.Config) (*Result, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Transform(path, string(src), reg, cfg), nil
}

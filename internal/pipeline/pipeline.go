package pipeline

import (
	"github.com/funvibe/funcase/internal/ast"
	"github.com/funvibe/funcase/internal/config"
	"github.com/funvibe/funcase/internal/diagnostics"
	"github.com/funvibe/funcase/internal/variant"

	"github.com/google/uuid"
)

// Context carries one compilation unit through the processor chain.
type Context struct {
	UnitID   uuid.UUID
	FilePath string
	Source   string

	AstRoot  ast.Node
	Registry *variant.Registry
	Config   *config.Config

	Diagnostics []*diagnostics.DiagnosticError
}

func NewContext(filePath, source string, registry *variant.Registry, cfg *config.Config) *Context {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Context{
		UnitID:   uuid.New(),
		FilePath: filePath,
		Source:   source,
		Registry: registry,
		Config:   cfg,
	}
}

// AddError records a fatal diagnostic for this unit.
func (c *Context) AddError(d *diagnostics.DiagnosticError) {
	d.File = c.FilePath
	c.Diagnostics = append(c.Diagnostics, d)
}

// AddAll records a batch of diagnostics in order.
func (c *Context) AddAll(diags []*diagnostics.DiagnosticError) {
	for _, d := range diags {
		c.AddError(d)
	}
}

// HasFatal reports whether any fatal diagnostic was produced so far.
// With warnings_as_errors set, warnings count as fatal too.
func (c *Context) HasFatal() bool {
	if c.Config != nil && c.Config.WarningsAsErrors && len(c.Diagnostics) > 0 {
		return true
	}
	return diagnostics.HasFatal(c.Diagnostics)
}

// Processor is a single transformation stage.
type Processor interface {
	Process(ctx *Context) *Context
}

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline. Stages keep running after errors so a single
// pass can aggregate diagnostics from every stage; callers decide on
// HasFatal whether the transformed tree may be used.
func (p *Pipeline) Run(initialCtx *Context) *Context {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
	}
	return ctx
}

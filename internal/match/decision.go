package match

import (
	"fmt"
	"sort"
	"strings"

	"github.com/funvibe/funcase/internal/ast"
	"github.com/funvibe/funcase/internal/variant"
)

// The decision tree is built once per match expression by classic matrix
// decomposition: clauses form rows, undetermined sub-pattern positions form
// columns, and each step partitions the rows on the constructor required at
// the leftmost position the first row determines. Wildcards and variables
// match every tag and are replicated into every partition. The tree is used
// for exhaustiveness and redundancy analysis, then discarded — emission
// works from the clause list directly (first match wins is a binding
// contract, so emitted code tests clauses strictly in order).

type decisionNode interface{ decisionNode() }

// leafNode: the first row matched. If the clause is guarded the guard may
// still fail at runtime, so the leaf keeps the tree for the remaining rows
// as fallback; a guarded clause never satisfies exhaustiveness on its own.
type leafNode struct {
	clause   int
	guarded  bool
	fallback decisionNode
}

// switchNode dispatches on the constructor tag at one field path.
type switchNode struct {
	path  []int
	spec  *variant.VariantSpec
	cases map[string]decisionNode // keyed by constructor name
	def   decisionNode            // nil when every tag is covered
}

// testNode compares the value at a field path against one literal.
type testNode struct {
	path    []int
	literal interface{}
	match   decisionNode
	fail    decisionNode
}

// failNode marks a hole: some runtime value reaches this point with no
// matching clause.
type failNode struct {
	missing []string
}

func (*leafNode) decisionNode()   {}
func (*switchNode) decisionNode() {}
func (*testNode) decisionNode()   {}
func (*failNode) decisionNode()   {}

// row is one (possibly or-expanded) clause of the matrix. All rows of a
// clause share the clause index.
type row struct {
	pats    []ast.Pattern
	clause  int
	guarded bool
}

type treeBuilder struct {
	reg     *variant.Registry
	used    map[int]bool
	missing map[string]bool
}

func newTreeBuilder(reg *variant.Registry) *treeBuilder {
	return &treeBuilder{
		reg:     reg,
		used:    make(map[int]bool),
		missing: make(map[string]bool),
	}
}

// missingList returns the uncovered shapes in stable order.
func (b *treeBuilder) missingList() []string {
	out := make([]string, 0, len(b.missing))
	for m := range b.missing {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

func isIrrefutable(p ast.Pattern) bool {
	switch p.(type) {
	case *ast.WildcardPattern, *ast.IdentifierPattern:
		return true
	}
	return false
}

// build constructs the decision tree for the given rows over parallel
// occurrence paths.
func (b *treeBuilder) build(rows []row, paths [][]int) decisionNode {
	if len(rows) == 0 {
		b.missing["_"] = true
		return &failNode{missing: []string{"_"}}
	}

	first := rows[0]
	col := -1
	for i, p := range first.pats {
		if !isIrrefutable(p) {
			col = i
			break
		}
	}

	if col == -1 {
		// First row matches unconditionally (up to its guard).
		b.used[first.clause] = true
		leaf := &leafNode{clause: first.clause, guarded: first.guarded}
		if first.guarded {
			leaf.fallback = b.build(rows[1:], paths)
		}
		return leaf
	}

	switch pat := first.pats[col].(type) {
	case *ast.ConstructorPattern:
		return b.buildSwitch(rows, paths, col, pat)
	case *ast.LiteralPattern:
		return b.buildTest(rows, paths, col, pat)
	default:
		// Or-patterns are expanded before the matrix is built.
		panic(fmt.Sprintf("match: unexpected pattern %T in decision matrix", pat))
	}
}

func (b *treeBuilder) buildSwitch(rows []row, paths [][]int, col int, first *ast.ConstructorPattern) decisionNode {
	ctor, _ := b.reg.LookupConstructor(first.Name.Value)
	spec := ctor.Type()

	node := &switchNode{path: paths[col], spec: spec, cases: make(map[string]decisionNode)}

	// Collect the constructors tested at this column, in first-appearance
	// order for deterministic diagnostics.
	var order []string
	seen := make(map[string]bool)
	mixed := false
	for _, r := range rows {
		cp, ok := r.pats[col].(*ast.ConstructorPattern)
		if !ok {
			continue
		}
		if !seen[cp.Name.Value] {
			seen[cp.Name.Value] = true
			order = append(order, cp.Name.Value)
		}
		if c, ok := b.reg.LookupConstructor(cp.Name.Value); ok && c.Type() != spec {
			mixed = true
		}
	}

	for _, name := range order {
		c, _ := b.reg.LookupConstructor(name)
		node.cases[name] = b.build(b.specialize(rows, paths, col, c))
	}

	defRows, defPaths := defaultMatrix(rows, paths, col)

	// Coverage: matching is runtime-tag-based, so a column that mixes
	// constructors of different types can only be exhausted by a default.
	var uncovered []string
	if mixed {
		uncovered = []string{"_"}
	} else {
		for _, c := range spec.Constructors {
			if !seen[c.Name] {
				uncovered = append(uncovered, c.Name)
			}
		}
	}

	if len(uncovered) > 0 {
		if len(defRows) == 0 {
			for _, name := range uncovered {
				b.missing[name] = true
			}
			node.def = &failNode{missing: uncovered}
		} else {
			node.def = b.build(defRows, defPaths)
		}
	}
	return node
}

func (b *treeBuilder) buildTest(rows []row, paths [][]int, col int, first *ast.LiteralPattern) decisionNode {
	node := &testNode{path: paths[col], literal: first.Value}

	var matchRows, failRows []row
	for _, r := range rows {
		switch p := r.pats[col].(type) {
		case *ast.LiteralPattern:
			if p.Value == first.Value {
				nr := r
				nr.pats = replaceAt(r.pats, col, &ast.WildcardPattern{Token: p.Token})
				matchRows = append(matchRows, nr)
			} else {
				failRows = append(failRows, r)
			}
		default:
			// Irrefutable and constructor rows survive on both sides.
			if isIrrefutable(p) {
				matchRows = append(matchRows, r)
			}
			failRows = append(failRows, r)
		}
	}

	node.match = b.build(matchRows, paths)
	// Literals never satisfy exhaustiveness: the literal domain is treated
	// as open, so the fail branch must be covered by the remaining rows.
	node.fail = b.build(failRows, paths)
	return node
}

// specialize keeps the rows compatible with constructor c at column col and
// expands that column into c's fields.
func (b *treeBuilder) specialize(rows []row, paths [][]int, col int, c *variant.ConstructorSpec) ([]row, [][]int) {
	newPaths := make([][]int, 0, len(paths)-1+c.Arity)
	newPaths = append(newPaths, paths[:col]...)
	for j := 0; j < c.Arity; j++ {
		sub := make([]int, len(paths[col])+1)
		copy(sub, paths[col])
		sub[len(paths[col])] = j
		newPaths = append(newPaths, sub)
	}
	newPaths = append(newPaths, paths[col+1:]...)

	var out []row
	for _, r := range rows {
		switch p := r.pats[col].(type) {
		case *ast.ConstructorPattern:
			if p.Name.Value != c.Name {
				continue
			}
			out = append(out, row{pats: expandAt(r.pats, col, p.Elements), clause: r.clause, guarded: r.guarded})
		case *ast.LiteralPattern:
			continue
		default: // wildcard, variable
			subs := make([]ast.Pattern, c.Arity)
			for j := range subs {
				subs[j] = &ast.WildcardPattern{Token: p.GetToken()}
			}
			out = append(out, row{pats: expandAt(r.pats, col, subs), clause: r.clause, guarded: r.guarded})
		}
	}
	return out, newPaths
}

// defaultMatrix keeps the rows that match any tag at column col and drops
// the column.
func defaultMatrix(rows []row, paths [][]int, col int) ([]row, [][]int) {
	newPaths := make([][]int, 0, len(paths)-1)
	newPaths = append(newPaths, paths[:col]...)
	newPaths = append(newPaths, paths[col+1:]...)

	var out []row
	for _, r := range rows {
		if !isIrrefutable(r.pats[col]) {
			continue
		}
		pats := make([]ast.Pattern, 0, len(r.pats)-1)
		pats = append(pats, r.pats[:col]...)
		pats = append(pats, r.pats[col+1:]...)
		out = append(out, row{pats: pats, clause: r.clause, guarded: r.guarded})
	}
	return out, newPaths
}

func replaceAt(pats []ast.Pattern, col int, p ast.Pattern) []ast.Pattern {
	out := make([]ast.Pattern, len(pats))
	copy(out, pats)
	out[col] = p
	return out
}

func expandAt(pats []ast.Pattern, col int, subs []ast.Pattern) []ast.Pattern {
	out := make([]ast.Pattern, 0, len(pats)-1+len(subs))
	out = append(out, pats[:col]...)
	out = append(out, subs...)
	out = append(out, pats[col+1:]...)
	return out
}

func describeMissing(missing []string) string {
	if len(missing) == 1 && missing[0] == "_" {
		return "not all values are covered"
	}
	return "uncovered constructors: " + strings.Join(missing, ", ")
}

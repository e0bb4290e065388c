// Package rename implements the renamer/collector described by
// SPEC_FULL.md §4.3: it builds the dependency graph over a module's
// top-level value declarations, finds its strongly connected components
// (Tarjan), and emits them in reverse-topological order so
// internal/elaborate can generalize each group (a mutually recursive
// binding clique) before moving on to the next.
//
// Grounded structurally on the teacher's internal/elaborate/scc.go
// SCC-over-declarations pass (Tarjan, reverse-topological emission), but
// built over surface value declarations instead of AILANG's core-expression
// graph, since the teacher infers everything inline and has no
// signature-driven renamer of its own.
package rename

import (
	"sort"

	"github.com/karolisr/hindley/internal/ast"
)

// Binding is one top-level value declaration the renamer tracks: either a
// FunBind or a PatBind. The parser does not merge clauses, so each
// equation of a multi-clause function is a separate FunBind here.
type Binding struct {
	Names []string // names this binding introduces (>1 only for a PatBind tuple pattern)
	Decl  ast.Decl
	HasSig bool
}

// Group is one strongly connected component of the binding graph, in the
// order its members should be generalized together.
type Group struct {
	Bindings []*Binding
}

// Collect partitions m's top-level FunBind/PatBind declarations into SCC
// groups, in reverse-topological (dependency-first) order.
func Collect(m *ast.Module) []Group {
	sigs := map[string]bool{}
	for _, d := range m.Decls {
		if sig, ok := d.(*ast.TypeSigDecl); ok {
			for _, n := range sig.Names {
				sigs[n] = true
			}
		}
	}

	var bindings []*Binding
	nameOwner := map[string]*Binding{}
	for _, d := range m.Decls {
		switch decl := d.(type) {
		case *ast.FunBind:
			b := &Binding{Names: []string{decl.Name}, Decl: decl, HasSig: sigs[decl.Name]}
			bindings = append(bindings, b)
			nameOwner[decl.Name] = b
		case *ast.PatBind:
			names := patternVars(decl.Lhs)
			hasSig := false
			for _, n := range names {
				if sigs[n] {
					hasSig = true
				}
			}
			b := &Binding{Names: names, Decl: decl, HasSig: hasSig}
			bindings = append(bindings, b)
			for _, n := range names {
				nameOwner[n] = b
			}
		}
	}

	g := newGraph(bindings)
	for _, b := range bindings {
		refs := referencedNames(b.Decl)
		for name := range refs {
			target, ok := nameOwner[name]
			if !ok || target == b {
				continue
			}
			// Signature-breaks-cycle rule: an edge into an explicitly
			// signatured binding is dropped, since that binding's type is
			// already fixed and doesn't need to be inferred together with
			// its callers. This also guarantees every SCC containing a
			// signatured binding is a singleton (spec §4.3's explicit
			// splitting rule falls out of this for free).
			if target.HasSig {
				continue
			}
			g.addEdge(b, target)
		}
	}

	order := g.sccs()
	groups := make([]Group, len(order))
	for i, comp := range order {
		groups[i] = Group{Bindings: comp}
	}
	return groups
}

func patternVars(p ast.Pattern) []string {
	var out []string
	var walk func(ast.Pattern)
	walk = func(p ast.Pattern) {
		switch pp := p.(type) {
		case *ast.VarPattern:
			out = append(out, pp.Name)
		case *ast.AsPattern:
			out = append(out, pp.Name)
			walk(pp.Pattern)
		case *ast.ConstructorPattern:
			for _, a := range pp.Args {
				walk(a)
			}
		case *ast.TuplePattern:
			for _, e := range pp.Elements {
				walk(e)
			}
		case *ast.ListPattern:
			for _, e := range pp.Elements {
				walk(e)
			}
		case *ast.ConsPattern:
			walk(pp.Head)
			walk(pp.Tail)
		case *ast.LazyPattern:
			walk(pp.Pattern)
		case *ast.BangPattern:
			walk(pp.Pattern)
		case *ast.SigPattern:
			walk(pp.Pattern)
		}
	}
	walk(p)
	sort.Strings(out)
	return out
}

// referencedNames collects every unqualified Var name mentioned anywhere in
// decl's right-hand side(s), guards, and where-clauses — an over-approx of
// free variables (it doesn't subtract out locally lambda/let/case-bound
// names), which is sound for edge-building purposes: a spurious edge to an
// unrelated top-level binding of the same name as a local only ever merges
// two groups that could otherwise stay separate, never drops a real one.
func referencedNames(d ast.Decl) map[string]bool {
	refs := map[string]bool{}
	var walkExpr func(ast.Expr)
	var walkDecl func(ast.Decl)

	walkExpr = func(e ast.Expr) {
		if e == nil {
			return
		}
		switch ex := e.(type) {
		case *ast.Var:
			if ex.Name.Qualifier == "" {
				refs[ex.Name.Text] = true
			}
		case *ast.InfixExp:
			for _, o := range ex.Operands {
				walkExpr(o)
			}
			for _, op := range ex.Operators {
				refs[op.Text] = true
			}
		case *ast.BinOp:
			refs[ex.Op.Text] = true
			walkExpr(ex.Left)
			walkExpr(ex.Right)
		case *ast.UnOp:
			walkExpr(ex.Operand)
		case *ast.App:
			walkExpr(ex.Func)
			walkExpr(ex.Arg)
		case *ast.Lambda:
			walkExpr(ex.Body)
		case *ast.Let:
			for _, d := range ex.Decls {
				walkDecl(d)
			}
			walkExpr(ex.Body)
		case *ast.If:
			walkExpr(ex.Cond)
			walkExpr(ex.Then)
			walkExpr(ex.Else)
		case *ast.Case:
			walkExpr(ex.Scrutinee)
			for _, alt := range ex.Alts {
				for _, g := range alt.Guards {
					walkExpr(g.Guard)
					walkExpr(g.Body)
				}
				for _, d := range alt.Where {
					walkDecl(d)
				}
			}
		case *ast.Tuple:
			for _, el := range ex.Elements {
				walkExpr(el)
			}
		case *ast.List:
			for _, el := range ex.Elements {
				walkExpr(el)
			}
		case *ast.Annot:
			walkExpr(ex.Expr)
		}
	}

	walkDecl = func(d ast.Decl) {
		switch dd := d.(type) {
		case *ast.FunBind:
			for _, g := range dd.Guards {
				walkExpr(g.Guard)
				walkExpr(g.Body)
			}
			for _, w := range dd.Where {
				walkDecl(w)
			}
		case *ast.PatBind:
			for _, g := range dd.Guards {
				walkExpr(g.Guard)
				walkExpr(g.Body)
			}
			for _, w := range dd.Where {
				walkDecl(w)
			}
		}
	}

	walkDecl(d)
	return refs
}

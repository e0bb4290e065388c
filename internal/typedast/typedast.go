// Package typedast is the elaborated program: every surface expression
// annotated with its monomorphic type, plus the dictionary-passing nodes
// (DictAbs/DictApp/DictVar) and GenBind nodes introduced by
// internal/elaborate's generalization step.
//
// Grounded on the teacher's internal/typedast/typed_ast.go typed-node
// hierarchy (a TypedExpr embedded in every node, a TypedNode interface),
// generalized from the teacher's interface{}-typed Type/Core fields to
// this module's own types.Type, and extended with GenBind and the
// dictionary nodes spec.md §3 names.
package typedast

import (
	"fmt"
	"strings"

	"github.com/karolisr/hindley/internal/token"
	"github.com/karolisr/hindley/internal/types"
)

// Node is implemented by every elaborated node.
type Node interface {
	GetPos() token.Pos
	GetType() types.Type
	GetID() uint64
	String() string
}

// Base carries the fields every elaborated expression shares. ID is a
// unique node identifier assigned during inference (internal/elaborate's
// InferenceContext.freshID), used to key the dictionary-resolution pass
// the same way the teacher keys resolved constraints by Core node ID.
type Base struct {
	ID   uint64
	Pos  token.Pos
	Type types.Type
}

func (b Base) GetPos() token.Pos   { return b.Pos }
func (b Base) GetType() types.Type { return b.Type }
func (b Base) GetID() uint64       { return b.ID }

// Var is a reference to a value bound in GVE/LVE/CVE.
type Var struct {
	Base
	Name string
}

func (v *Var) String() string { return fmt.Sprintf("%s : %s", v.Name, v.Type) }

// Lit is a literal, still opaque (IntLit/FracLit/CharLit/StringLit — no
// list-of-Char desugaring, per DESIGN.md's Open Question decision).
type Lit struct {
	Base
	Kind  int // mirrors ast.LitKind
	Value string
}

func (l *Lit) String() string { return l.Value }

// Lambda is an elaborated single-parameter abstraction; a surface
// multi-parameter lambda/equation desugars to nested Lambdas.
type Lambda struct {
	Base
	Param Pattern
	Body  Node
}

func (l *Lambda) String() string { return fmt.Sprintf("(\\%s -> %s)", l.Param, l.Body) }

// App is function application.
type App struct {
	Base
	Func Node
	Arg  Node
}

func (a *App) String() string { return fmt.Sprintf("(%s %s)", a.Func, a.Arg) }

// If is a conditional.
type If struct {
	Base
	Cond Node
	Then Node
	Else Node
}

func (i *If) String() string { return fmt.Sprintf("if %s then %s else %s", i.Cond, i.Then, i.Else) }

// Case is pattern matching over a scrutinee.
type Case struct {
	Base
	Scrutinee Node
	Alts      []CaseAlt
}

type CaseAlt struct {
	Pattern Pattern
	Guard   Node // nil for an unconditional alternative
	Body    Node
}

func (c *Case) String() string { return fmt.Sprintf("case %s of {...}", c.Scrutinee) }

// Tuple is an elaborated tuple construction.
type Tuple struct {
	Base
	Elements []Node
}

func (t *Tuple) String() string { return "(...)" }

// ListLit is an elaborated list construction.
type ListLit struct {
	Base
	Elements []Node
}

func (l *ListLit) String() string { return "[...]" }

// GenBind is a let-generalized binding: its Scheme is the generalized
// (possibly qualified) type, and DictParams names the evidence parameters
// the elaborator inserted for each constraint in Scheme — only a GenBind
// carries a Scheme, mirroring the teacher's TypedLet ("only here!") note.
type GenBind struct {
	Pos        token.Pos
	Name       string
	Scheme     *types.Scheme
	DictParams []string
	Value      Node
}

func (g *GenBind) GetPos() token.Pos   { return g.Pos }
func (g *GenBind) GetType() types.Type { return g.Scheme.Type }
func (g *GenBind) String() string {
	return fmt.Sprintf("%s :: %s = %s", g.Name, schemeString(g.Scheme), g.Value)
}

func schemeString(s *types.Scheme) string {
	var b strings.Builder
	if len(s.Vars) > 0 {
		fmt.Fprintf(&b, "forall %s. ", strings.Join(s.Vars, " "))
	}
	if len(s.Constraints) > 0 {
		parts := make([]string, len(s.Constraints))
		for i, c := range s.Constraints {
			parts[i] = c.String()
		}
		fmt.Fprintf(&b, "(%s) => ", strings.Join(parts, ", "))
	}
	b.WriteString(s.Type.String())
	return b.String()
}

// Let is a non-generalized local binding group (the monomorphism
// restriction forced simple, unqualified bindings) wrapping a body.
type Let struct {
	Base
	Bindings []*GenBind
	Body     Node
}

func (l *Let) String() string { return fmt.Sprintf("let {...} in %s", l.Body) }

// DictVar references an evidence value bound by a surrounding DictAbs — a
// class dictionary passed in as an ordinary (invisible to the surface
// syntax) function parameter.
type DictVar struct {
	Base
	Name string
}

func (d *DictVar) String() string { return "$" + d.Name }

// DictAbs abstracts Body over one evidence parameter per constraint in
// Constraints — the elaboration of a `Scheme.Constraints`-qualified
// binding into dictionary-passing style.
type DictAbs struct {
	Base
	Params []string
	Body   Node
}

func (d *DictAbs) String() string {
	return fmt.Sprintf("(\\$%s -> %s)", strings.Join(d.Params, " $"), d.Body)
}

// DictApp applies Func to one resolved evidence term per constraint the
// elaborator discharged at this use site (built from class/instance method
// tables during constraint resolution, not left to runtime dispatch).
type DictApp struct {
	Base
	Func Node
	Args []Node
}

func (d *DictApp) String() string { return fmt.Sprintf("(%s $%v)", d.Func, d.Args) }

// DictInstance is the evidence for one resolved `Class Type` constraint: a
// reference to the instance's method table, built during elaboration and
// passed as a DictApp argument.
type DictInstance struct {
	Base
	Class string
	TypeHead string
}

func (d *DictInstance) String() string { return fmt.Sprintf("$dict(%s,%s)", d.Class, d.TypeHead) }

// ---------------------------------------------------------------------
// Elaborated patterns
// ---------------------------------------------------------------------

type Pattern interface {
	fmt.Stringer
	GetType() types.Type
	patternNode()
}

type PatBase struct {
	Type types.Type
}

func (p PatBase) GetType() types.Type { return p.Type }

type VarPattern struct {
	PatBase
	Name string
}

func (p *VarPattern) patternNode()  {}
func (p *VarPattern) String() string { return p.Name }

type WildcardPattern struct{ PatBase }

func (p *WildcardPattern) patternNode()  {}
func (p *WildcardPattern) String() string { return "_" }

type LitPattern struct {
	PatBase
	Value string
}

func (p *LitPattern) patternNode()  {}
func (p *LitPattern) String() string { return p.Value }

type ConstructorPattern struct {
	PatBase
	Name string
	Args []Pattern
}

func (p *ConstructorPattern) patternNode()  {}
func (p *ConstructorPattern) String() string {
	return fmt.Sprintf("%s %v", p.Name, p.Args)
}

type TuplePattern struct {
	PatBase
	Elements []Pattern
}

func (p *TuplePattern) patternNode()  {}
func (p *TuplePattern) String() string { return "(...)" }

// InstanceMethod is one elaborated instance method body, checked against
// its class signature specialized to the instance head but not otherwise
// bound in any environment — dispatch is resolved entirely at each call
// site by DictInstance, not by looking a method up on TypeHead at runtime.
type InstanceMethod struct {
	Pos      token.Pos
	Class    string
	TypeHead string
	Name     string
	Value    Node
}

func (m *InstanceMethod) String() string {
	return fmt.Sprintf("instance %s %s { %s = %s }", m.Class, m.TypeHead, m.Name, m.Value)
}

// Program is the fully elaborated module: top-level bindings in
// dependency-first order, matching internal/rename's group emission, plus
// every instance method body checked along the way.
type Program struct {
	Binds     []*GenBind
	Instances []*InstanceMethod
}

func (p *Program) String() string {
	var b strings.Builder
	for _, bind := range p.Binds {
		b.WriteString(bind.String())
		b.WriteByte('\n')
	}
	for _, inst := range p.Instances {
		b.WriteString(inst.String())
		b.WriteByte('\n')
	}
	return b.String()
}

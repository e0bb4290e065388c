// Package ast defines the surface syntax tree produced by internal/parser.
package ast

import (
	"fmt"
	"strings"

	"github.com/karolisr/hindley/internal/token"
)

// Node is implemented by every AST node.
type Node interface {
	String() string
	Position() token.Pos
}

// Name is a possibly-qualified identifier as written in source.
type Name struct {
	Qualifier string // "" if unqualified
	Text      string
}

func (n Name) String() string {
	if n.Qualifier == "" {
		return n.Text
	}
	return n.Qualifier + "." + n.Text
}

// ---------------------------------------------------------------------
// Module
// ---------------------------------------------------------------------

// Module is the root of a parsed source file.
type Module struct {
	Pos      token.Pos
	Name     string
	Exports  []string // nil means "export everything"
	Imports  []*Import
	Decls    []Decl
	Fixities []*FixityDecl
	Default  *DefaultDecl // module-level `default (...)`, nil if absent
}

func (m *Module) String() string   { return fmt.Sprintf("module %s", m.Name) }
func (m *Module) Position() token.Pos { return m.Pos }

type Import struct {
	Pos       token.Pos
	Module    string
	Qualified bool
	As        string // alias, "" if none
	Names     []string
	Hiding    bool
}

func (i *Import) String() string    { return fmt.Sprintf("import %s", i.Module) }
func (i *Import) Position() token.Pos { return i.Pos }

// ---------------------------------------------------------------------
// Declarations
// ---------------------------------------------------------------------

// Decl is implemented by every top-level declaration.
type Decl interface {
	Node
	declNode()
}

// FixityDecl records a user-declared operator fixity (infixl/infixr/infix).
type FixityDecl struct {
	Pos       token.Pos
	Assoc     Assoc
	Precedence int
	Ops       []string
}

type Assoc int

const (
	AssocNone Assoc = iota
	AssocLeft
	AssocRight
)

func (a Assoc) String() string {
	switch a {
	case AssocLeft:
		return "infixl"
	case AssocRight:
		return "infixr"
	default:
		return "infix"
	}
}

func (f *FixityDecl) declNode()        {}
func (f *FixityDecl) Position() token.Pos { return f.Pos }
func (f *FixityDecl) String() string {
	return fmt.Sprintf("fixity %v %d %s", f.Assoc, f.Precedence, strings.Join(f.Ops, ", "))
}

// DefaultDecl is a module-level `default (T1, T2, ...)` declaration
// overriding the built-in [Int, Double] numeric-defaulting fallback list.
type DefaultDecl struct {
	Pos   token.Pos
	Types []Type
}

func (d *DefaultDecl) declNode()        {}
func (d *DefaultDecl) Position() token.Pos { return d.Pos }
func (d *DefaultDecl) String() string      { return "default (...)" }

// TypeSigDecl is a standalone `name :: Type` signature.
type TypeSigDecl struct {
	Pos   token.Pos
	Names []string
	Type  Type
}

func (d *TypeSigDecl) declNode()        {}
func (d *TypeSigDecl) Position() token.Pos { return d.Pos }
func (d *TypeSigDecl) String() string {
	return fmt.Sprintf("%s :: %s", strings.Join(d.Names, ", "), d.Type)
}

// FunBind is one equation of a (possibly multi-clause) function/value
// binding: `name pat1 pat2 = expr [where decls]`.
type FunBind struct {
	Pos     token.Pos
	Name    string
	Params  []Pattern
	Guards  []GuardedRHS // len==1 with Guard==nil for an unconditional RHS
	Where   []Decl
}

// GuardedRHS is one `| cond = expr` alternative, or the single unconditional
// `= expr` alternative when Guard is nil.
type GuardedRHS struct {
	Guard Expr // nil for an unconditional binding
	Body  Expr
}

func (d *FunBind) declNode()        {}
func (d *FunBind) Position() token.Pos { return d.Pos }
func (d *FunBind) String() string      { return fmt.Sprintf("%s = ...", d.Name) }

// PatBind is a pattern binding, e.g. `(x, y) = pair`.
type PatBind struct {
	Pos    token.Pos
	Lhs    Pattern
	Guards []GuardedRHS
	Where  []Decl
}

func (d *PatBind) declNode()        {}
func (d *PatBind) Position() token.Pos { return d.Pos }
func (d *PatBind) String() string      { return fmt.Sprintf("%s = ...", d.Lhs) }

// DataDecl declares an algebraic data type.
type DataDecl struct {
	Pos          token.Pos
	Name         string
	TyVars       []string
	Constructors []*ConstructorDecl
	Deriving     []string
}

func (d *DataDecl) declNode()        {}
func (d *DataDecl) Position() token.Pos { return d.Pos }
func (d *DataDecl) String() string      { return fmt.Sprintf("data %s", d.Name) }

// ConstructorDecl is one data-constructor alternative.
type ConstructorDecl struct {
	Pos    token.Pos
	Name   string
	Fields []FieldDecl
	Record bool // true if declared with record `{ ... }` syntax
}

// FieldDecl is one constructor argument; Strict marks a `!` annotation and
// Name is non-empty only for record-syntax fields.
type FieldDecl struct {
	Name   string // "" for positional fields
	Type   Type
	Strict bool
}

// NewtypeDecl declares a `newtype`, which is a DataDecl restricted to
// exactly one constructor with exactly one field (enforced by the parser).
type NewtypeDecl struct {
	Pos         token.Pos
	Name        string
	TyVars      []string
	Constructor *ConstructorDecl
	Deriving    []string
}

func (d *NewtypeDecl) declNode()        {}
func (d *NewtypeDecl) Position() token.Pos { return d.Pos }
func (d *NewtypeDecl) String() string      { return fmt.Sprintf("newtype %s", d.Name) }

// TypeSynonymDecl declares a `type Name vars = Type` synonym.
type TypeSynonymDecl struct {
	Pos    token.Pos
	Name   string
	TyVars []string
	RHS    Type
}

func (d *TypeSynonymDecl) declNode()        {}
func (d *TypeSynonymDecl) Position() token.Pos { return d.Pos }
func (d *TypeSynonymDecl) String() string      { return fmt.Sprintf("type %s", d.Name) }

// ClassDecl declares a type class.
type ClassDecl struct {
	Pos         token.Pos
	Supers      []ClassConstraint
	Name        string
	TyVar       string
	Signatures  []*TypeSigDecl
	Defaults    []*FunBind
}

func (d *ClassDecl) declNode()        {}
func (d *ClassDecl) Position() token.Pos { return d.Pos }
func (d *ClassDecl) String() string      { return fmt.Sprintf("class %s %s", d.Name, d.TyVar) }

// ClassConstraint is one `Class TypeVar` (or, for multi-param extensions,
// `Class Type...`) appearing in a context.
type ClassConstraint struct {
	Pos   token.Pos
	Class string
	Args  []Type
}

func (c ClassConstraint) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s %s", c.Class, strings.Join(parts, " "))
}

// InstanceDecl declares a class instance.
type InstanceDecl struct {
	Pos     token.Pos
	Context []ClassConstraint // instance context, e.g. `(Eq a) => ...`
	Class   string
	Head    Type // the instance head, e.g. `[a]` or `Maybe a`
	Methods []*FunBind
}

func (d *InstanceDecl) declNode()        {}
func (d *InstanceDecl) Position() token.Pos { return d.Pos }
func (d *InstanceDecl) String() string      { return fmt.Sprintf("instance %s %s", d.Class, d.Head) }

// ---------------------------------------------------------------------
// Types
// ---------------------------------------------------------------------

// Type is implemented by every surface type-expression node.
type Type interface {
	Node
	typeNode()
}

type TypeVar struct {
	Pos  token.Pos
	Name string
}

func (t *TypeVar) typeNode()          {}
func (t *TypeVar) Position() token.Pos { return t.Pos }
func (t *TypeVar) String() string      { return t.Name }

type TypeCon struct {
	Pos  token.Pos
	Name string
}

func (t *TypeCon) typeNode()          {}
func (t *TypeCon) Position() token.Pos { return t.Pos }
func (t *TypeCon) String() string      { return t.Name }

type TypeApp struct {
	Pos  token.Pos
	Func Type
	Arg  Type
}

func (t *TypeApp) typeNode()          {}
func (t *TypeApp) Position() token.Pos { return t.Pos }
func (t *TypeApp) String() string      { return fmt.Sprintf("(%s %s)", t.Func, t.Arg) }

// FuncType is `A -> B`.
type FuncType struct {
	Pos    token.Pos
	Domain Type
	Range  Type
}

func (t *FuncType) typeNode()          {}
func (t *FuncType) Position() token.Pos { return t.Pos }
func (t *FuncType) String() string      { return fmt.Sprintf("(%s -> %s)", t.Domain, t.Range) }

type TupleType struct {
	Pos     token.Pos
	Elements []Type
}

func (t *TupleType) typeNode()          {}
func (t *TupleType) Position() token.Pos { return t.Pos }
func (t *TupleType) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.String()
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, ", "))
}

type ListType struct {
	Pos     token.Pos
	Element Type
}

func (t *ListType) typeNode()          {}
func (t *ListType) Position() token.Pos { return t.Pos }
func (t *ListType) String() string      { return fmt.Sprintf("[%s]", t.Element) }

// ForallType is an explicit `forall a b. Context => Type` quantification,
// the surface form of a type signature's generalized scheme.
type ForallType struct {
	Pos    token.Pos
	TyVars []string
	Body   Type
}

func (t *ForallType) typeNode()          {}
func (t *ForallType) Position() token.Pos { return t.Pos }
func (t *ForallType) String() string {
	return fmt.Sprintf("forall %s. %s", strings.Join(t.TyVars, " "), t.Body)
}

// ConstrainedType is `Context => Type`.
type ConstrainedType struct {
	Pos     token.Pos
	Context []ClassConstraint
	Body    Type
}

func (t *ConstrainedType) typeNode()          {}
func (t *ConstrainedType) Position() token.Pos { return t.Pos }
func (t *ConstrainedType) String() string {
	parts := make([]string, len(t.Context))
	for i, c := range t.Context {
		parts[i] = c.String()
	}
	return fmt.Sprintf("(%s) => %s", strings.Join(parts, ", "), t.Body)
}

// StrictType is `!T`, a strictness-annotated constructor field type.
type StrictType struct {
	Pos  token.Pos
	Elem Type
}

func (t *StrictType) typeNode()          {}
func (t *StrictType) Position() token.Pos { return t.Pos }
func (t *StrictType) String() string      { return "!" + t.Elem.String() }

// LazyType is `~T`, an explicit laziness annotation (the default for
// ordinary fields, meaningful only where a strict context would otherwise
// be inferred, e.g. inside a `newtype` or a bang-pattern context).
type LazyType struct {
	Pos  token.Pos
	Elem Type
}

func (t *LazyType) typeNode()          {}
func (t *LazyType) Position() token.Pos { return t.Pos }
func (t *LazyType) String() string      { return "~" + t.Elem.String() }

// ---------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------

// Expr is implemented by every surface expression node.
type Expr interface {
	Node
	exprNode()
}

type Var struct {
	Pos  token.Pos
	Name Name
}

func (e *Var) exprNode()          {}
func (e *Var) Position() token.Pos { return e.Pos }
func (e *Var) String() string      { return e.Name.String() }

type LitKind int

const (
	LitInt LitKind = iota
	LitFrac
	LitChar
	LitString
)

type Lit struct {
	Pos   token.Pos
	Kind  LitKind
	Value string
}

func (e *Lit) exprNode()          {}
func (e *Lit) Position() token.Pos { return e.Pos }
func (e *Lit) String() string      { return e.Value }

// InfixExp is a flat chain of operands and operators produced directly by
// the parser, before fixity resolution rebuilds it into a left-leaning
// App/BinOp tree (spec §4.1's deferred-fixity-resolution requirement).
type InfixExp struct {
	Pos       token.Pos
	Operands  []Expr
	Operators []Name // len(Operators) == len(Operands)-1
}

func (e *InfixExp) exprNode()          {}
func (e *InfixExp) Position() token.Pos { return e.Pos }
func (e *InfixExp) String() string      { return "infix-chain" }

// BinOp is a resolved binary operator application (post fixity resolution).
type BinOp struct {
	Pos   token.Pos
	Op    Name
	Left  Expr
	Right Expr
}

func (e *BinOp) exprNode()          {}
func (e *BinOp) Position() token.Pos { return e.Pos }
func (e *BinOp) String() string      { return fmt.Sprintf("(%s %s %s)", e.Left, e.Op, e.Right) }

// UnOp is unary negation, the one Haskell prefix operator.
type UnOp struct {
	Pos     token.Pos
	Op      string
	Operand Expr
}

func (e *UnOp) exprNode()          {}
func (e *UnOp) Position() token.Pos { return e.Pos }
func (e *UnOp) String() string      { return e.Op + e.Operand.String() }

type App struct {
	Pos  token.Pos
	Func Expr
	Arg  Expr
}

func (e *App) exprNode()          {}
func (e *App) Position() token.Pos { return e.Pos }
func (e *App) String() string      { return fmt.Sprintf("(%s %s)", e.Func, e.Arg) }

type Lambda struct {
	Pos    token.Pos
	Params []Pattern
	Body   Expr
}

func (e *Lambda) exprNode()          {}
func (e *Lambda) Position() token.Pos { return e.Pos }
func (e *Lambda) String() string      { return fmt.Sprintf("\\%v -> %s", e.Params, e.Body) }

type Let struct {
	Pos   token.Pos
	Decls []Decl
	Body  Expr
}

func (e *Let) exprNode()          {}
func (e *Let) Position() token.Pos { return e.Pos }
func (e *Let) String() string      { return fmt.Sprintf("let ... in %s", e.Body) }

type If struct {
	Pos  token.Pos
	Cond Expr
	Then Expr
	Else Expr
}

func (e *If) exprNode()          {}
func (e *If) Position() token.Pos { return e.Pos }
func (e *If) String() string      { return fmt.Sprintf("if %s then %s else %s", e.Cond, e.Then, e.Else) }

type Case struct {
	Pos       token.Pos
	Scrutinee Expr
	Alts      []CaseAlt
}

type CaseAlt struct {
	Pattern Pattern
	Guards  []GuardedRHS
	Where   []Decl
}

func (e *Case) exprNode()          {}
func (e *Case) Position() token.Pos { return e.Pos }
func (e *Case) String() string      { return fmt.Sprintf("case %s of ...", e.Scrutinee) }

type Tuple struct {
	Pos      token.Pos
	Elements []Expr
}

func (e *Tuple) exprNode()          {}
func (e *Tuple) Position() token.Pos { return e.Pos }
func (e *Tuple) String() string      { return "(...)" }

type List struct {
	Pos      token.Pos
	Elements []Expr
}

func (e *List) exprNode()          {}
func (e *List) Position() token.Pos { return e.Pos }
func (e *List) String() string      { return "[...]" }

// Annot is `expr :: Type`, an explicit type annotation.
type Annot struct {
	Pos  token.Pos
	Expr Expr
	Type Type
}

func (e *Annot) exprNode()          {}
func (e *Annot) Position() token.Pos { return e.Pos }
func (e *Annot) String() string      { return fmt.Sprintf("(%s :: %s)", e.Expr, e.Type) }

// ---------------------------------------------------------------------
// Patterns
// ---------------------------------------------------------------------

// Pattern is implemented by every surface pattern node.
type Pattern interface {
	Node
	patternNode()
}

type VarPattern struct {
	Pos  token.Pos
	Name string
}

func (p *VarPattern) patternNode()       {}
func (p *VarPattern) Position() token.Pos { return p.Pos }
func (p *VarPattern) String() string      { return p.Name }

type WildcardPattern struct {
	Pos token.Pos
}

func (p *WildcardPattern) patternNode()       {}
func (p *WildcardPattern) Position() token.Pos { return p.Pos }
func (p *WildcardPattern) String() string      { return "_" }

type LitPattern struct {
	Pos   token.Pos
	Kind  LitKind
	Value string
}

func (p *LitPattern) patternNode()       {}
func (p *LitPattern) Position() token.Pos { return p.Pos }
func (p *LitPattern) String() string      { return p.Value }

type ConstructorPattern struct {
	Pos  token.Pos
	Name string
	Args []Pattern
}

func (p *ConstructorPattern) patternNode()       {}
func (p *ConstructorPattern) Position() token.Pos { return p.Pos }
func (p *ConstructorPattern) String() string      { return fmt.Sprintf("%s %v", p.Name, p.Args) }

type TuplePattern struct {
	Pos      token.Pos
	Elements []Pattern
}

func (p *TuplePattern) patternNode()       {}
func (p *TuplePattern) Position() token.Pos { return p.Pos }
func (p *TuplePattern) String() string      { return "(...)" }

type ListPattern struct {
	Pos      token.Pos
	Elements []Pattern
}

func (p *ListPattern) patternNode()       {}
func (p *ListPattern) Position() token.Pos { return p.Pos }
func (p *ListPattern) String() string      { return "[...]" }

// ConsPattern is `x : xs`.
type ConsPattern struct {
	Pos  token.Pos
	Head Pattern
	Tail Pattern
}

func (p *ConsPattern) patternNode()       {}
func (p *ConsPattern) Position() token.Pos { return p.Pos }
func (p *ConsPattern) String() string      { return fmt.Sprintf("(%s : %s)", p.Head, p.Tail) }

// AsPattern is `name@pattern`.
type AsPattern struct {
	Pos     token.Pos
	Name    string
	Pattern Pattern
}

func (p *AsPattern) patternNode()       {}
func (p *AsPattern) Position() token.Pos { return p.Pos }
func (p *AsPattern) String() string      { return fmt.Sprintf("%s@%s", p.Name, p.Pattern) }

// LazyPattern is `~pattern`, an irrefutable pattern.
type LazyPattern struct {
	Pos     token.Pos
	Pattern Pattern
}

func (p *LazyPattern) patternNode()       {}
func (p *LazyPattern) Position() token.Pos { return p.Pos }
func (p *LazyPattern) String() string      { return "~" + p.Pattern.String() }

// BangPattern is `!pattern`, a strict-evaluation annotation.
type BangPattern struct {
	Pos     token.Pos
	Pattern Pattern
}

func (p *BangPattern) patternNode()       {}
func (p *BangPattern) Position() token.Pos { return p.Pos }
func (p *BangPattern) String() string      { return "!" + p.Pattern.String() }

// SigPattern is `pattern :: Type`.
type SigPattern struct {
	Pos     token.Pos
	Pattern Pattern
	Type    Type
}

func (p *SigPattern) patternNode()       {}
func (p *SigPattern) Position() token.Pos { return p.Pos }
func (p *SigPattern) String() string      { return fmt.Sprintf("(%s :: %s)", p.Pattern, p.Type) }

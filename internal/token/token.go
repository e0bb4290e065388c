// Package token defines the lexical token kinds and source positions shared
// by the lexer and parser.
package token

import "fmt"

// Pos is a single point in a source file, 1-indexed.
type Pos struct {
	File   string
	Line   int
	Column int
}

func (p Pos) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Span covers a contiguous range of source between Start and End.
type Span struct {
	Start Pos
	End   Pos
}

func (s Span) String() string { return s.Start.String() }

// Kind identifies the lexical class of a Token.
type Kind int

const (
	ILLEGAL Kind = iota
	EOF

	// identifiers and literals
	VARID  // foo, camelCase
	CONID  // Foo, Maybe
	VARSYM // +, ==, <>
	CONSYM // :, :+:
	INT
	FLOAT
	CHAR
	STRING

	// reserved words
	KwCase
	KwClass
	KwData
	KwDefault
	KwDeriving
	KwDo
	KwElse
	KwForall
	KwIf
	KwImport
	KwIn
	KwInfix
	KwInfixl
	KwInfixr
	KwInstance
	KwLet
	KwModule
	KwNewtype
	KwOf
	KwThen
	KwType
	KwWhere
	KwUnderscore // standalone "_"

	// reserved operators
	OpDotDot  // ..
	OpColon2  // ::
	OpEquals  // =
	OpBackslash
	OpPipe    // |
	OpLArrow  // <-
	OpRArrow  // ->
	OpAt      // @
	OpTilde   // ~
	OpBang    // ! (strictness annotation)
	OpDoubleArrow // =>

	// punctuation
	LParen
	RParen
	LBracket
	RBracket
	LBrace
	RBrace
	Comma
	Semi // explicit ';'

	// layout (virtual, inserted by the lexer — Haskell 2010 §9.3/L-function)
	VLBrace // vocurly
	VRBrace // vccurly
	VSemi   // virtual ';'

	COMMENT
)

var names = map[Kind]string{
	ILLEGAL: "ILLEGAL", EOF: "EOF",
	VARID: "VARID", CONID: "CONID", VARSYM: "VARSYM", CONSYM: "CONSYM",
	INT: "INT", FLOAT: "FLOAT", CHAR: "CHAR", STRING: "STRING",
	KwCase: "case", KwClass: "class", KwData: "data", KwDefault: "default",
	KwDeriving: "deriving", KwDo: "do", KwElse: "else", KwForall: "forall",
	KwIf: "if", KwImport: "import", KwIn: "in", KwInfix: "infix",
	KwInfixl: "infixl", KwInfixr: "infixr", KwInstance: "instance",
	KwLet: "let", KwModule: "module", KwNewtype: "newtype", KwOf: "of",
	KwThen: "then", KwType: "type", KwWhere: "where", KwUnderscore: "_",
	OpDotDot: "..", OpColon2: "::", OpEquals: "=", OpBackslash: "\\",
	OpPipe: "|", OpLArrow: "<-", OpRArrow: "->", OpAt: "@", OpTilde: "~",
	OpBang: "!", OpDoubleArrow: "=>",
	LParen: "(", RParen: ")", LBracket: "[", RBracket: "]",
	LBrace: "{", RBrace: "}", Comma: ",", Semi: ";",
	VLBrace: "{v}", VRBrace: "}v", VSemi: ";v",
	COMMENT: "COMMENT",
}

func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Keywords maps reserved identifiers to their keyword kind (Haskell 2010 §2.4).
var Keywords = map[string]Kind{
	"case": KwCase, "class": KwClass, "data": KwData, "default": KwDefault,
	"deriving": KwDeriving, "do": KwDo, "else": KwElse, "forall": KwForall,
	"if": KwIf, "import": KwImport, "in": KwIn, "infix": KwInfix,
	"infixl": KwInfixl, "infixr": KwInfixr, "instance": KwInstance,
	"let": KwLet, "module": KwModule, "newtype": KwNewtype, "of": KwOf,
	"then": KwThen, "type": KwType, "where": KwWhere, "_": KwUnderscore,
}

// ReservedOps maps reserved operator spellings to their kind.
var ReservedOps = map[string]Kind{
	"..": OpDotDot, "::": OpColon2, "=": OpEquals, "\\": OpBackslash,
	"|": OpPipe, "<-": OpLArrow, "->": OpRArrow, "@": OpAt, "~": OpTilde,
	"!": OpBang, "=>": OpDoubleArrow,
}

// Token is a single lexeme with its source span.
type Token struct {
	Kind    Kind
	Literal string
	Span    Span
}

func (t Token) String() string {
	switch t.Kind {
	case VARID, CONID, VARSYM, CONSYM, INT, FLOAT, CHAR, STRING:
		return fmt.Sprintf("%s(%q)", t.Kind, t.Literal)
	default:
		return t.Kind.String()
	}
}

// IsLayoutKeyword reports whether kw opens an implicit layout block
// (Haskell 2010 §9.3, the L function's "let/where/do/of" list).
func IsLayoutKeyword(k Kind) bool {
	switch k {
	case KwLet, KwWhere, KwDo, KwOf:
		return true
	default:
		return false
	}
}

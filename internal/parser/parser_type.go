package parser

import (
	"github.com/karolisr/hindley/internal/ast"
	"github.com/karolisr/hindley/internal/token"
)

// parseType parses a full type expression: an optional `forall`, an
// optional context, and a chain of arrow-separated btypes.
func (p *Parser) parseType() ast.Type {
	pos := p.cur().Span.Start
	if p.at(token.KwForall) {
		p.advance()
		var vars []string
		for p.at(token.VARID) {
			vars = append(vars, p.advance().Literal)
		}
		p.expectDot()
		body := p.parseType()
		return &ast.ForallType{Pos: pos, TyVars: vars, Body: body}
	}
	if ctx, ok := p.tryParseContext(); ok {
		body := p.parseArrowType()
		return &ast.ConstrainedType{Pos: pos, Context: ctx, Body: body}
	}
	return p.parseArrowType()
}

// expectDot consumes the `.` that ends a `forall a b.` quantifier; the
// lexer scans a bare dot as a VARSYM (it doubles as composition elsewhere).
func (p *Parser) expectDot() {
	if p.at(token.VARSYM) && p.cur().Literal == "." {
		p.advance()
		return
	}
	p.errorf("expected '.' after forall quantifier")
}

// tryParseContext looks ahead for a `(...)  =>` or single-constraint `C a
// =>` prefix and consumes it only if the arrow is actually present.
func (p *Parser) tryParseContext() ([]ast.ClassConstraint, bool) {
	save := p.pos
	if p.at(token.LParen) {
		depth := 0
		i := p.pos
		for i < len(p.toks) {
			switch p.toks[i].Kind {
			case token.LParen:
				depth++
			case token.RParen:
				depth--
				if depth == 0 {
					i++
					goto check
				}
			}
			i++
		}
	check:
		if i < len(p.toks) && p.toks[i].Kind == token.OpDoubleArrow {
			p.advance()
			var cs []ast.ClassConstraint
			for !p.at(token.RParen) && !p.at(token.EOF) {
				cs = append(cs, p.parseOneConstraint())
				if p.at(token.Comma) {
					p.advance()
				}
			}
			p.expect(token.RParen)
			p.expect(token.OpDoubleArrow)
			return cs, true
		}
		p.pos = save
		return nil, false
	}
	if p.at(token.CONID) && p.peekAt(1).Kind == token.VARID && p.peekAt(2).Kind == token.OpDoubleArrow {
		c := p.parseOneConstraint()
		p.expect(token.OpDoubleArrow)
		return []ast.ClassConstraint{c}, true
	}
	return nil, false
}

// parseArrowType parses a right-associative chain of btypes separated by `->`.
func (p *Parser) parseArrowType() ast.Type {
	pos := p.cur().Span.Start
	lhs := p.parseBType()
	if p.at(token.OpRArrow) {
		p.advance()
		rhs := p.parseArrowType()
		return &ast.FuncType{Pos: pos, Domain: lhs, Range: rhs}
	}
	return lhs
}

// parseBType parses a chain of type applications: `atype atype ...`.
func (p *Parser) parseBType() ast.Type {
	pos := p.cur().Span.Start
	t := p.parseAType()
	for p.startsAType() {
		arg := p.parseAType()
		t = &ast.TypeApp{Pos: pos, Func: t, Arg: arg}
	}
	return t
}

// parseAType parses one atomic type: a variable, constructor, parenthesized
// type/tuple, list type, or a strict/lazy annotation.
func (p *Parser) parseAType() ast.Type {
	pos := p.cur().Span.Start
	switch p.cur().Kind {
	case token.VARID:
		return &ast.TypeVar{Pos: pos, Name: p.advance().Literal}
	case token.CONID:
		return &ast.TypeCon{Pos: pos, Name: p.advance().Literal}
	case token.OpBang:
		p.advance()
		return &ast.StrictType{Pos: pos, Elem: p.parseAType()}
	case token.OpTilde:
		p.advance()
		return &ast.LazyType{Pos: pos, Elem: p.parseAType()}
	case token.LBracket:
		p.advance()
		if p.at(token.RBracket) {
			p.advance()
			return &ast.TypeCon{Pos: pos, Name: "[]"}
		}
		elem := p.parseType()
		p.expect(token.RBracket)
		return &ast.ListType{Pos: pos, Element: elem}
	case token.LParen:
		p.advance()
		if p.at(token.RParen) {
			p.advance()
			return &ast.TypeCon{Pos: pos, Name: "()"}
		}
		if p.at(token.OpRArrow) {
			p.advance()
			p.expect(token.RParen)
			return &ast.TypeCon{Pos: pos, Name: "->"}
		}
		first := p.parseType()
		if p.at(token.Comma) {
			elems := []ast.Type{first}
			for p.at(token.Comma) {
				p.advance()
				elems = append(elems, p.parseType())
			}
			p.expect(token.RParen)
			return &ast.TupleType{Pos: pos, Elements: elems}
		}
		p.expect(token.RParen)
		return first
	default:
		p.errorf("expected a type, got %s", p.cur().Kind)
		p.advance()
		return &ast.TypeCon{Pos: pos, Name: "<error>"}
	}
}

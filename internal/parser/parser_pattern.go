package parser

import (
	"github.com/karolisr/hindley/internal/ast"
	"github.com/karolisr/hindley/internal/token"
)

// parsePattern parses a full pattern, including an optional `:` cons chain
// and trailing `:: Type` signature, per original_source/parser.hh's
// handling of `~`/`!` pattern modifiers and as-patterns.
func (p *Parser) parsePattern() ast.Pattern {
	pos := p.cur().Span.Start
	lhs := p.parseConsPattern()
	if p.at(token.OpColon2) {
		p.advance()
		ty := p.parseType()
		return &ast.SigPattern{Pos: pos, Pattern: lhs, Type: ty}
	}
	return lhs
}

func (p *Parser) parseConsPattern() ast.Pattern {
	pos := p.cur().Span.Start
	lhs := p.parseAppPattern()
	if p.at(token.CONSYM) && p.cur().Literal == ":" {
		p.advance()
		rhs := p.parseConsPattern()
		return &ast.ConsPattern{Pos: pos, Head: lhs, Tail: rhs}
	}
	return lhs
}

// parseAppPattern parses `Con pat1 pat2 ...` (a constructor applied to
// atomic patterns) or falls through to a single atomic pattern.
func (p *Parser) parseAppPattern() ast.Pattern {
	pos := p.cur().Span.Start
	if p.at(token.CONID) {
		name := p.advance().Literal
		var args []ast.Pattern
		for p.startsAPattern() {
			args = append(args, p.parseAPattern())
		}
		if len(args) == 0 {
			return &ast.ConstructorPattern{Pos: pos, Name: name}
		}
		return &ast.ConstructorPattern{Pos: pos, Name: name, Args: args}
	}
	return p.parseAPattern()
}

func (p *Parser) startsAPattern() bool {
	switch p.cur().Kind {
	case token.VARID, token.CONID, token.INT, token.FLOAT, token.CHAR, token.STRING,
		token.LParen, token.LBracket, token.KwUnderscore, token.OpTilde, token.OpBang:
		return true
	default:
		return false
	}
}

// parseAPattern parses one atomic pattern: a variable (possibly an
// as-pattern), wildcard, literal, parenthesized/tuple pattern, list
// pattern, bare constructor, or a `~`/`!` modified sub-pattern.
func (p *Parser) parseAPattern() ast.Pattern {
	pos := p.cur().Span.Start
	switch p.cur().Kind {
	case token.VARID:
		name := p.advance().Literal
		if p.at(token.OpAt) {
			p.advance()
			inner := p.parseAPattern()
			return &ast.AsPattern{Pos: pos, Name: name, Pattern: inner}
		}
		return &ast.VarPattern{Pos: pos, Name: name}
	case token.KwUnderscore:
		p.advance()
		return &ast.WildcardPattern{Pos: pos}
	case token.CONID:
		name := p.advance().Literal
		return &ast.ConstructorPattern{Pos: pos, Name: name}
	case token.INT:
		return &ast.LitPattern{Pos: pos, Kind: ast.LitInt, Value: p.advance().Literal}
	case token.FLOAT:
		return &ast.LitPattern{Pos: pos, Kind: ast.LitFrac, Value: p.advance().Literal}
	case token.CHAR:
		return &ast.LitPattern{Pos: pos, Kind: ast.LitChar, Value: p.advance().Literal}
	case token.STRING:
		return &ast.LitPattern{Pos: pos, Kind: ast.LitString, Value: p.advance().Literal}
	case token.OpTilde:
		p.advance()
		return &ast.LazyPattern{Pos: pos, Pattern: p.parseAPattern()}
	case token.OpBang:
		p.advance()
		return &ast.BangPattern{Pos: pos, Pattern: p.parseAPattern()}
	case token.LBracket:
		p.advance()
		var elems []ast.Pattern
		for !p.at(token.RBracket) && !p.at(token.EOF) {
			elems = append(elems, p.parsePattern())
			if p.at(token.Comma) {
				p.advance()
			}
		}
		p.expect(token.RBracket)
		return &ast.ListPattern{Pos: pos, Elements: elems}
	case token.LParen:
		p.advance()
		if p.at(token.RParen) {
			p.advance()
			return &ast.ConstructorPattern{Pos: pos, Name: "()"}
		}
		first := p.parsePattern()
		if p.at(token.Comma) {
			elems := []ast.Pattern{first}
			for p.at(token.Comma) {
				p.advance()
				elems = append(elems, p.parsePattern())
			}
			p.expect(token.RParen)
			return &ast.TuplePattern{Pos: pos, Elements: elems}
		}
		p.expect(token.RParen)
		return first
	default:
		p.errorf("expected a pattern, got %s", p.cur().Kind)
		p.advance()
		return &ast.WildcardPattern{Pos: pos}
	}
}

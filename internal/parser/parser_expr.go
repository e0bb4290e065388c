package parser

import (
	"github.com/karolisr/hindley/internal/ast"
	"github.com/karolisr/hindley/internal/token"
)

// parseExpr parses a full expression, including a trailing `:: Type`
// annotation, and resolves any operator chain against the parser's fixity
// table (spec §4.1's deferred-fixity-resolution requirement: the chain is
// built flat first via parseOpChain, then rebuilt into a BinOp tree here).
// Resolution happens eagerly per expression against whatever fixities have
// been declared so far in this left-to-right pass; a fixity declared later
// in the module than its first use falls back to defaultFixity for that
// earlier use, which is a simplification of Haskell's true module-wide
// fixity scoping.
func (p *Parser) parseExpr() ast.Expr {
	pos := p.cur().Span.Start
	e := p.parseOpChain()
	if p.at(token.OpColon2) {
		p.advance()
		ty := p.parseType()
		return &ast.Annot{Pos: pos, Expr: e, Type: ty}
	}
	return e
}

// parseOpChain parses a flat operand/operator chain and immediately
// resolves it via resolveFixity against the fixities known at this point
// of the parse (see parseExpr).
func (p *Parser) parseOpChain() ast.Expr {
	pos := p.cur().Span.Start
	operands := []ast.Expr{p.parseUnary()}
	var ops []ast.Name
	for p.startsOperator() {
		ops = append(ops, p.parseExprOperatorName())
		operands = append(operands, p.parseUnary())
	}
	if len(ops) == 0 {
		return operands[0]
	}
	chain := &ast.InfixExp{Pos: pos, Operands: operands, Operators: ops}
	return p.resolveFixity(chain)
}

func (p *Parser) startsOperator() bool {
	switch p.cur().Kind {
	case token.VARSYM, token.CONSYM:
		return true
	default:
		return false
	}
}

func (p *Parser) parseExprOperatorName() ast.Name {
	lit := p.advance().Literal
	return ast.Name{Text: lit}
}

// resolveFixity rebuilds a flat InfixExp into a BinOp tree by precedence
// climbing over the operand/operator chain, consulting the parser's
// fixity table (builtins plus any fixity declarations seen so far) for
// each operator's precedence and associativity.
func (p *Parser) resolveFixity(chain *ast.InfixExp) ast.Expr {
	c := &fixityClimber{p: p, operands: chain.Operands, ops: chain.Operators}
	return c.climb(c.next(), 0)
}

type fixityClimber struct {
	p        *Parser
	operands []ast.Expr
	ops      []ast.Name
	opIdx    int
}

func (c *fixityClimber) next() ast.Expr {
	e := c.operands[0]
	c.operands = c.operands[1:]
	return e
}

func (c *fixityClimber) peekOp() (ast.Name, fixity, bool) {
	if c.opIdx >= len(c.ops) {
		return ast.Name{}, fixity{}, false
	}
	op := c.ops[c.opIdx]
	return op, c.p.fixityOf(op.Text), true
}

func (c *fixityClimber) climb(lhs ast.Expr, minPrec int) ast.Expr {
	for {
		op, f, ok := c.peekOp()
		if !ok || f.prec < minPrec {
			return lhs
		}
		c.opIdx++
		rhs := c.next()
		for {
			_, fNext, ok := c.peekOp()
			if !ok {
				break
			}
			if fNext.prec > f.prec || (fNext.prec == f.prec && fNext.assoc == right) {
				rhs = c.climb(rhs, fNext.prec)
				continue
			}
			break
		}
		lhs = &ast.BinOp{Pos: lhs.Position(), Op: op, Left: lhs, Right: rhs}
	}
}

func (p *Parser) fixityOf(op string) fixity {
	if f, ok := p.fixities[op]; ok {
		return f
	}
	return defaultFixity
}

// parseUnary handles prefix `-`, Haskell's one prefix operator, then falls
// through to function application.
func (p *Parser) parseUnary() ast.Expr {
	pos := p.cur().Span.Start
	if p.at(token.VARSYM) && p.cur().Literal == "-" {
		p.advance()
		operand := p.parseUnary()
		return &ast.UnOp{Pos: pos, Op: "-", Operand: operand}
	}
	return p.parseAppExpr()
}

// parseAppExpr parses a chain of atomic-expression applications.
func (p *Parser) parseAppExpr() ast.Expr {
	pos := p.cur().Span.Start
	e := p.parseAExpr()
	for p.startsAExpr() {
		arg := p.parseAExpr()
		e = &ast.App{Pos: pos, Func: e, Arg: arg}
	}
	return e
}

func (p *Parser) startsAExpr() bool {
	switch p.cur().Kind {
	case token.VARID, token.CONID, token.INT, token.FLOAT, token.CHAR, token.STRING,
		token.LParen, token.LBracket, token.KwLet, token.KwIf, token.KwCase, token.KwDo, token.OpBackslash:
		return true
	default:
		return false
	}
}

// parseAExpr parses one atomic expression.
func (p *Parser) parseAExpr() ast.Expr {
	pos := p.cur().Span.Start
	switch p.cur().Kind {
	case token.VARID:
		return &ast.Var{Pos: pos, Name: p.parseQualifiableName()}
	case token.CONID:
		return &ast.Var{Pos: pos, Name: p.parseQualifiableName()}
	case token.INT:
		return &ast.Lit{Pos: pos, Kind: ast.LitInt, Value: p.advance().Literal}
	case token.FLOAT:
		return &ast.Lit{Pos: pos, Kind: ast.LitFrac, Value: p.advance().Literal}
	case token.CHAR:
		return &ast.Lit{Pos: pos, Kind: ast.LitChar, Value: p.advance().Literal}
	case token.STRING:
		return &ast.Lit{Pos: pos, Kind: ast.LitString, Value: p.advance().Literal}
	case token.OpBackslash:
		return p.parseLambda()
	case token.KwLet:
		return p.parseLet()
	case token.KwIf:
		return p.parseIf()
	case token.KwCase:
		return p.parseCase()
	case token.LBracket:
		return p.parseListExpr()
	case token.LParen:
		return p.parseParenExpr()
	default:
		p.errorf("expected an expression, got %s", p.cur().Kind)
		p.advance()
		return &ast.Var{Pos: pos, Name: ast.Name{Text: "<error>"}}
	}
}

// parseQualifiableName parses `Name` or `Qualifier.name`; the lexer already
// resolves the qualifier/text split for CONID-prefixed qualified names
// (see lexer.scanConid), so a single VARID/CONID token already carries the
// full literal and this just wraps it.
func (p *Parser) parseQualifiableName() ast.Name {
	lit := p.advance().Literal
	return ast.Name{Text: lit}
}

func (p *Parser) parseLambda() ast.Expr {
	pos := p.cur().Span.Start
	p.advance() // '\'
	var params []ast.Pattern
	for p.startsAPattern() {
		params = append(params, p.parseAPattern())
	}
	p.expect(token.OpRArrow)
	body := p.parseExpr()
	return &ast.Lambda{Pos: pos, Params: params, Body: body}
}

func (p *Parser) parseLet() ast.Expr {
	pos := p.cur().Span.Start
	p.advance() // 'let'
	decls := p.parseDeclBlock()
	p.expect(token.KwIn)
	body := p.parseExpr()
	return &ast.Let{Pos: pos, Decls: decls, Body: body}
}

func (p *Parser) parseIf() ast.Expr {
	pos := p.cur().Span.Start
	p.advance() // 'if'
	cond := p.parseExpr()
	p.consumeStmtEnd()
	p.expect(token.KwThen)
	then := p.parseExpr()
	p.consumeStmtEnd()
	p.expect(token.KwElse)
	els := p.parseExpr()
	return &ast.If{Pos: pos, Cond: cond, Then: then, Else: els}
}

func (p *Parser) parseCase() ast.Expr {
	pos := p.cur().Span.Start
	p.advance() // 'case'
	scrut := p.parseExpr()
	p.expect(token.KwOf)
	p.consumeOpenBrace()
	var alts []ast.CaseAlt
	for !p.at(token.VRBrace) && !p.at(token.RBrace) && !p.at(token.EOF) {
		if p.at(token.VSemi) || p.at(token.Semi) {
			p.advance()
			continue
		}
		alts = append(alts, p.parseCaseAlt())
	}
	p.consumeCloseBrace()
	return &ast.Case{Pos: pos, Scrutinee: scrut, Alts: alts}
}

func (p *Parser) parseCaseAlt() ast.CaseAlt {
	pat := p.parsePattern()
	guards := p.parseCaseGuardedRHS()
	where := p.parseWhereClause()
	p.consumeStmtEnd()
	return ast.CaseAlt{Pattern: pat, Guards: guards, Where: where}
}

// parseCaseGuardedRHS is parseGuardedRHS with `->` in place of the
// top-level `=` that separates function-binding guards from their bodies.
func (p *Parser) parseCaseGuardedRHS() []ast.GuardedRHS {
	var rhss []ast.GuardedRHS
	if p.at(token.OpRArrow) {
		p.advance()
		rhss = append(rhss, ast.GuardedRHS{Body: p.parseExpr()})
		return rhss
	}
	for p.at(token.OpPipe) {
		p.advance()
		guard := p.parseExpr()
		p.expect(token.OpRArrow)
		body := p.parseExpr()
		rhss = append(rhss, ast.GuardedRHS{Guard: guard, Body: body})
	}
	return rhss
}

func (p *Parser) parseListExpr() ast.Expr {
	pos := p.cur().Span.Start
	p.advance() // '['
	var elems []ast.Expr
	for !p.at(token.RBracket) && !p.at(token.EOF) {
		elems = append(elems, p.parseExpr())
		if p.at(token.Comma) {
			p.advance()
		}
	}
	p.expect(token.RBracket)
	return &ast.List{Pos: pos, Elements: elems}
}

func (p *Parser) parseParenExpr() ast.Expr {
	pos := p.cur().Span.Start
	p.advance() // '('
	if p.at(token.RParen) {
		p.advance()
		return &ast.Var{Pos: pos, Name: ast.Name{Text: "()"}}
	}
	if p.startsOperator() {
		op := p.advance().Literal
		p.expect(token.RParen)
		return &ast.Var{Pos: pos, Name: ast.Name{Text: op}}
	}
	first := p.parseExpr()
	if p.at(token.Comma) {
		elems := []ast.Expr{first}
		for p.at(token.Comma) {
			p.advance()
			elems = append(elems, p.parseExpr())
		}
		p.expect(token.RParen)
		return &ast.Tuple{Pos: pos, Elements: elems}
	}
	p.expect(token.RParen)
	return first
}

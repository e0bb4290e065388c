package parser

import (
	"github.com/karolisr/hindley/internal/ast"
	"github.com/karolisr/hindley/internal/token"
)

// parseTopDecl dispatches on the current token to the right declaration
// parser. Returns nil (after recording a ParseError and resyncing) if the
// current token starts nothing recognizable.
func (p *Parser) parseTopDecl(m *ast.Module) ast.Decl {
	switch p.cur().Kind {
	case token.KwData:
		return p.parseDataDecl()
	case token.KwNewtype:
		return p.parseNewtypeDecl()
	case token.KwType:
		return p.parseTypeSynonymDecl()
	case token.KwClass:
		return p.parseClassDecl()
	case token.KwInstance:
		return p.parseInstanceDecl()
	case token.KwDefault:
		d := p.parseDefaultDecl()
		m.Default = d
		return nil
	case token.KwInfixl, token.KwInfixr, token.KwInfix:
		f := p.parseFixityDecl()
		m.Fixities = append(m.Fixities, f)
		for _, op := range f.Ops {
			p.fixities[op] = fixity{prec: f.Precedence, assoc: assocOf(f.Assoc)}
		}
		return nil
	case token.VARID, token.LParen:
		return p.parseValueDeclOrSig()
	default:
		p.errorf("unexpected token %s at top level", p.cur().Kind)
		p.skipToBoundary()
		return nil
	}
}

func assocOf(a ast.Assoc) assoc {
	switch a {
	case ast.AssocLeft:
		return left
	case ast.AssocRight:
		return right
	default:
		return none
	}
}

func (p *Parser) parseFixityDecl() *ast.FixityDecl {
	pos := p.cur().Span.Start
	var a ast.Assoc
	switch p.advance().Kind {
	case token.KwInfixl:
		a = ast.AssocLeft
	case token.KwInfixr:
		a = ast.AssocRight
	default:
		a = ast.AssocNone
	}
	prec := 9
	if p.at(token.INT) {
		prec = parseIntLiteral(p.advance().Literal)
	}
	var ops []string
	for {
		ops = append(ops, p.parseOperatorName())
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	p.consumeStmtEnd()
	return &ast.FixityDecl{Pos: pos, Assoc: a, Precedence: prec, Ops: ops}
}

func (p *Parser) parseOperatorName() string {
	switch p.cur().Kind {
	case token.VARSYM, token.CONSYM:
		return p.advance().Literal
	case token.OpColon2, token.OpEquals, token.OpPipe, token.OpLArrow, token.OpRArrow, token.OpAt, token.OpTilde, token.OpBang, token.OpDoubleArrow, token.OpDotDot, token.OpBackslash:
		return p.advance().Kind.String()
	default:
		p.errorf("expected an operator")
		return ""
	}
}

func (p *Parser) parseDefaultDecl() *ast.DefaultDecl {
	pos := p.cur().Span.Start
	p.advance() // 'default'
	p.expect(token.LParen)
	var ts []ast.Type
	for !p.at(token.RParen) && !p.at(token.EOF) {
		ts = append(ts, p.parseType())
		if p.at(token.Comma) {
			p.advance()
		}
	}
	p.expect(token.RParen)
	p.consumeStmtEnd()
	return &ast.DefaultDecl{Pos: pos, Types: ts}
}

// parseValueDeclOrSig disambiguates `name :: Type` from a function/pattern
// binding by scanning ahead for `::` before any `=`/`|`.
func (p *Parser) parseValueDeclOrSig() ast.Decl {
	if p.looksLikeSignature() {
		return p.parseTypeSigDecl()
	}
	return p.parseBinding()
}

func (p *Parser) looksLikeSignature() bool {
	if !p.at(token.VARID) {
		return false
	}
	i := 1
	for p.peekAt(i).Kind == token.Comma {
		if p.peekAt(i+1).Kind != token.VARID {
			return false
		}
		i += 2
	}
	return p.peekAt(i).Kind == token.OpColon2
}

func (p *Parser) parseTypeSigDecl() *ast.TypeSigDecl {
	pos := p.cur().Span.Start
	var names []string
	names = append(names, p.expect(token.VARID).Literal)
	for p.at(token.Comma) {
		p.advance()
		names = append(names, p.expect(token.VARID).Literal)
	}
	p.expect(token.OpColon2)
	ty := p.parseType()
	p.consumeStmtEnd()
	return &ast.TypeSigDecl{Pos: pos, Names: names, Type: ty}
}

// parseBinding parses one equation of a function binding (`name pat* =
// rhs`) or a pattern binding (`pattern = rhs`), including guards and an
// optional where-clause.
func (p *Parser) parseBinding() ast.Decl {
	pos := p.cur().Span.Start
	if p.at(token.VARID) && p.startsFunctionBinding() {
		name := p.advance().Literal
		var params []ast.Pattern
		for !p.at(token.OpEquals) && !p.at(token.OpPipe) && !p.at(token.EOF) {
			params = append(params, p.parseAPattern())
		}
		guards := p.parseGuardedRHS()
		where := p.parseWhereClause()
		p.consumeStmtEnd()
		return &ast.FunBind{Pos: pos, Name: name, Params: params, Guards: guards, Where: where}
	}
	lhs := p.parsePattern()
	guards := p.parseGuardedRHS()
	where := p.parseWhereClause()
	p.consumeStmtEnd()
	return &ast.PatBind{Pos: pos, Lhs: lhs, Guards: guards, Where: where}
}

// startsFunctionBinding reports whether the VARID at the cursor begins a
// FunBind: `f x = ...` and a plain `x = ...` (a FunBind with no
// parameters) both do; `x@p = ...`, `x : xs = ...` and `x :: T` do not.
func (p *Parser) startsFunctionBinding() bool {
	k := p.peekAt(1).Kind
	switch k {
	case token.OpAt, token.CONSYM, token.OpColon2:
		return false
	default:
		return true
	}
}

func (p *Parser) parseGuardedRHS() []ast.GuardedRHS {
	var rhss []ast.GuardedRHS
	if p.at(token.OpEquals) {
		p.advance()
		rhss = append(rhss, ast.GuardedRHS{Body: p.parseExpr()})
		return rhss
	}
	for p.at(token.OpPipe) {
		p.advance()
		guard := p.parseExpr()
		p.expect(token.OpEquals)
		body := p.parseExpr()
		rhss = append(rhss, ast.GuardedRHS{Guard: guard, Body: body})
	}
	return rhss
}

func (p *Parser) parseWhereClause() []ast.Decl {
	if !p.at(token.KwWhere) {
		return nil
	}
	p.advance()
	return p.parseDeclBlock()
}

// parseDeclBlock parses a `{ decl ; decl ; ... }` block (virtual or
// explicit), used by where/let/class/instance bodies.
func (p *Parser) parseDeclBlock() []ast.Decl {
	p.consumeOpenBrace()
	var decls []ast.Decl
	dummyModule := &ast.Module{}
	for !p.at(token.VRBrace) && !p.at(token.RBrace) && !p.at(token.EOF) {
		if p.at(token.VSemi) || p.at(token.Semi) {
			p.advance()
			continue
		}
		before := p.pos
		d := p.parseTopDecl(dummyModule)
		if d != nil {
			decls = append(decls, d)
		}
		if p.pos == before {
			p.advance()
		}
	}
	p.consumeCloseBrace()
	return decls
}

func (p *Parser) parseDataDecl() *ast.DataDecl {
	pos := p.cur().Span.Start
	p.advance() // 'data'
	name := p.expect(token.CONID).Literal
	var tyVars []string
	for p.at(token.VARID) {
		tyVars = append(tyVars, p.advance().Literal)
	}
	var ctors []*ast.ConstructorDecl
	if p.at(token.OpEquals) {
		p.advance()
		ctors = append(ctors, p.parseConstructor())
		for p.at(token.OpPipe) {
			p.advance()
			ctors = append(ctors, p.parseConstructor())
		}
	}
	deriving := p.parseDerivingClause()
	p.consumeStmtEnd()
	return &ast.DataDecl{Pos: pos, Name: name, TyVars: tyVars, Constructors: ctors, Deriving: deriving}
}

func (p *Parser) parseNewtypeDecl() *ast.NewtypeDecl {
	pos := p.cur().Span.Start
	p.advance() // 'newtype'
	name := p.expect(token.CONID).Literal
	var tyVars []string
	for p.at(token.VARID) {
		tyVars = append(tyVars, p.advance().Literal)
	}
	p.expect(token.OpEquals)
	ctor := p.parseConstructor()
	deriving := p.parseDerivingClause()
	p.consumeStmtEnd()
	return &ast.NewtypeDecl{Pos: pos, Name: name, TyVars: tyVars, Constructor: ctor, Deriving: deriving}
}

func (p *Parser) parseDerivingClause() []string {
	if !p.at(token.KwDeriving) {
		return nil
	}
	p.advance()
	var names []string
	if p.at(token.LParen) {
		p.advance()
		for !p.at(token.RParen) && !p.at(token.EOF) {
			names = append(names, p.expect(token.CONID).Literal)
			if p.at(token.Comma) {
				p.advance()
			}
		}
		p.expect(token.RParen)
	} else {
		names = append(names, p.expect(token.CONID).Literal)
	}
	return names
}

func (p *Parser) parseConstructor() *ast.ConstructorDecl {
	pos := p.cur().Span.Start
	name := p.expect(token.CONID).Literal
	if p.at(token.LBrace) {
		p.advance()
		var fields []ast.FieldDecl
		for !p.at(token.RBrace) && !p.at(token.EOF) {
			fieldNames := []string{p.expect(token.VARID).Literal}
			for p.at(token.Comma) {
				save := p.pos
				p.advance()
				if p.at(token.VARID) {
					fieldNames = append(fieldNames, p.advance().Literal)
					continue
				}
				p.pos = save
				break
			}
			p.expect(token.OpColon2)
			ty, strict := p.parseFieldType()
			for _, fn := range fieldNames {
				fields = append(fields, ast.FieldDecl{Name: fn, Type: ty, Strict: strict})
			}
			if p.at(token.Comma) {
				p.advance()
			}
		}
		p.expect(token.RBrace)
		return &ast.ConstructorDecl{Pos: pos, Name: name, Fields: fields, Record: true}
	}
	var fields []ast.FieldDecl
	for p.startsAType() {
		ty, strict := p.parseFieldType()
		fields = append(fields, ast.FieldDecl{Type: ty, Strict: strict})
	}
	return &ast.ConstructorDecl{Pos: pos, Name: name, Fields: fields}
}

// parseFieldType parses one constructor-argument type, honoring a leading
// `!` strictness annotation per original_source/parser.hh.
func (p *Parser) parseFieldType() (ast.Type, bool) {
	if p.at(token.OpBang) {
		p.advance()
		return p.parseAType(), true
	}
	return p.parseAType(), false
}

func (p *Parser) startsAType() bool {
	switch p.cur().Kind {
	case token.VARID, token.CONID, token.LParen, token.LBracket, token.OpBang:
		return true
	default:
		return false
	}
}

func (p *Parser) parseTypeSynonymDecl() *ast.TypeSynonymDecl {
	pos := p.cur().Span.Start
	p.advance() // 'type'
	name := p.expect(token.CONID).Literal
	var tyVars []string
	for p.at(token.VARID) {
		tyVars = append(tyVars, p.advance().Literal)
	}
	p.expect(token.OpEquals)
	rhs := p.parseType()
	p.consumeStmtEnd()
	return &ast.TypeSynonymDecl{Pos: pos, Name: name, TyVars: tyVars, RHS: rhs}
}

func (p *Parser) parseClassDecl() *ast.ClassDecl {
	pos := p.cur().Span.Start
	p.advance() // 'class'
	supers := p.parseOptionalContext()
	name := p.expect(token.CONID).Literal
	tyVar := p.expect(token.VARID).Literal
	decl := &ast.ClassDecl{Pos: pos, Supers: supers, Name: name, TyVar: tyVar}
	if p.at(token.KwWhere) {
		p.advance()
		for _, d := range p.parseDeclBlock() {
			switch dd := d.(type) {
			case *ast.TypeSigDecl:
				decl.Signatures = append(decl.Signatures, dd)
			case *ast.FunBind:
				decl.Defaults = append(decl.Defaults, dd)
			}
		}
	}
	return decl
}

func (p *Parser) parseInstanceDecl() *ast.InstanceDecl {
	pos := p.cur().Span.Start
	p.advance() // 'instance'
	ctx := p.parseOptionalContext()
	class := p.expect(token.CONID).Literal
	head := p.parseAType()
	decl := &ast.InstanceDecl{Pos: pos, Context: ctx, Class: class, Head: head}
	if p.at(token.KwWhere) {
		p.advance()
		for _, d := range p.parseDeclBlock() {
			if fb, ok := d.(*ast.FunBind); ok {
				decl.Methods = append(decl.Methods, fb)
			}
		}
	}
	return decl
}

// parseOptionalContext parses a `(C1 a, C2 b) =>` or single-constraint `C a
// =>` prefix, returning nil if no context is present (i.e. the next `=>`
// never occurs before a CONID/VARID head).
func (p *Parser) parseOptionalContext() []ast.ClassConstraint {
	save := p.pos
	var cs []ast.ClassConstraint
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
					goto checkArrow
				}
			}
			i++
		}
	checkArrow:
		if i < len(p.toks) && p.toks[i].Kind == token.OpDoubleArrow {
			p.advance() // '('
			for !p.at(token.RParen) && !p.at(token.EOF) {
				cs = append(cs, p.parseOneConstraint())
				if p.at(token.Comma) {
					p.advance()
				}
			}
			p.expect(token.RParen)
			p.expect(token.OpDoubleArrow)
			return cs
		}
		p.pos = save
		return nil
	}
	if p.at(token.CONID) && p.peekAt(1).Kind == token.VARID && p.peekAt(2).Kind == token.OpDoubleArrow {
		cs = append(cs, p.parseOneConstraint())
		p.expect(token.OpDoubleArrow)
		return cs
	}
	return nil
}

func (p *Parser) parseOneConstraint() ast.ClassConstraint {
	pos := p.cur().Span.Start
	class := p.expect(token.CONID).Literal
	var args []ast.Type
	for p.at(token.VARID) || p.at(token.LParen) {
		args = append(args, p.parseAType())
	}
	return ast.ClassConstraint{Pos: pos, Class: class, Args: args}
}

func parseIntLiteral(lit string) int {
	n := 0
	for _, r := range lit {
		n = n*10 + int(r-'0')
	}
	return n
}

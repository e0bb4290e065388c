package lexer

import "github.com/karolisr/hindley/internal/token"

// applyLayout implements a pragmatic subset of the Haskell 2010 §9.3 layout
// algorithm: it inserts vocurly/vccurly/virtual-semicolon tokens around the
// blocks opened by let/where/do/of, using each line-initial token's column
// as the indentation reference.
//
// The full algorithm's parse-error(t) rule (close an implicit context when
// the token stream would otherwise fail to parse) is approximated here:
// `)`, `]` and `,` close the implicit contexts opened inside the innermost
// unclosed bracket, `in` closes the innermost implicit context, and
// `then`/`else` close the implicit contexts opened since their `if`. This
// covers the common "let ... in ..." and "if ... then ... else ..." one-
// liners without requiring the parser to drive the layout resolver.
//
// A module without a `module ... where` header has no enclosing context;
// there a line starting at the first token's column is preceded by a
// virtual semicolon, separating top-level declarations.
func applyLayout(raw []rawToken) []token.Token {
	var out []token.Token
	var stack []int  // indentation column per implicit context; explicit marked by -1
	var opened []int // bracket depth at which each stack entry was pushed
	depth := 0       // ( and [ not yet closed
	var ifs []int    // len(stack) at each `if` whose `else` has not been seen

	closeImplicit := func() {
		if n := len(stack); n > 0 && stack[n-1] != -1 {
			out = append(out, token.Token{Kind: token.VRBrace, Literal: "}v"})
			stack = stack[:n-1]
			opened = opened[:n-1]
		}
	}

	bareTopCol := 0
	if len(raw) > 0 && raw[0].tok.Kind != token.KwModule && raw[0].tok.Kind != token.LBrace {
		bareTopCol = raw[0].tok.Span.Start.Column
	}

	pendingLayout := false // previous token was a layout keyword
	for i := 0; i < len(raw); i++ {
		rt := raw[i]
		t := rt.tok

		if t.Kind == token.EOF {
			for len(stack) > 0 {
				closeImplicit()
			}
			out = append(out, t)
			break
		}

		if pendingLayout {
			pendingLayout = false
			if t.Kind == token.LBrace {
				stack = append(stack, -1)
				opened = append(opened, depth)
				out = append(out, t)
				continue
			}
			col := t.Span.Start.Column
			if top := topCol(stack); len(stack) > 0 && col <= top {
				// empty block: insert empty {}
				out = append(out, token.Token{Kind: token.VLBrace, Literal: "{v}"})
				out = append(out, token.Token{Kind: token.VRBrace, Literal: "}v"})
			} else {
				stack = append(stack, col)
				opened = append(opened, depth)
				out = append(out, token.Token{Kind: token.VLBrace, Literal: "{v}"})
			}
			out = append(out, t)
			if token.IsLayoutKeyword(t.Kind) {
				pendingLayout = true
			}
			continue
		}

		if rt.newLine && len(stack) > 0 {
			col := t.Span.Start.Column
			for {
				top := topCol(stack)
				if top == -1 || col > top {
					break
				}
				if col == top {
					out = append(out, token.Token{Kind: token.VSemi, Literal: ";v"})
					break
				}
				closeImplicit()
				if len(stack) == 0 {
					break
				}
			}
		}
		if rt.newLine && len(stack) == 0 && i > 0 && t.Span.Start.Column == bareTopCol {
			out = append(out, token.Token{Kind: token.VSemi, Literal: ";v"})
		}

		switch t.Kind {
		case token.KwIf:
			ifs = append(ifs, len(stack))
		case token.KwThen, token.KwElse:
			if n := len(ifs); n > 0 {
				for len(stack) > ifs[n-1] && stack[len(stack)-1] != -1 {
					closeImplicit()
				}
				if t.Kind == token.KwElse {
					ifs = ifs[:n-1]
				}
			} else {
				closeImplicit()
			}
		case token.KwIn:
			closeImplicit()
		case token.LParen, token.LBracket:
			depth++
		case token.RParen, token.RBracket, token.Comma:
			for n := len(stack); depth > 0 && n > 0 && stack[n-1] != -1 && opened[n-1] >= depth; n = len(stack) {
				closeImplicit()
			}
			if t.Kind != token.Comma && depth > 0 {
				depth--
			}
		}

		out = append(out, t)
		if token.IsLayoutKeyword(t.Kind) {
			pendingLayout = true
		}
	}
	return out
}

func topCol(stack []int) int {
	if len(stack) == 0 {
		return -1
	}
	return stack[len(stack)-1]
}

// Tokenize normalizes, scans, and layout-processes src, returning the final
// token stream the parser consumes (ending in an EOF token).
func Tokenize(file string, src []byte) ([]token.Token, error) {
	normalized := Normalize(src)
	raw, err := scanAll(file, normalized)
	if err != nil {
		return nil, err
	}
	return applyLayout(raw), nil
}

// Package parser implements the drawing language's recursive-descent
// parser, grounded on the teacher's cascaded precedence methods
// (pkg/compiler/parser.go's parseLogicalOr/.../parsePrimary chain) but
// collapsed into a single precedence-climbing core (§4.3) and extended
// with typo-tolerant recovery and fix-it synthesis that the teacher's
// plain fmt.Errorf parser never needed.
package parser

import (
	"strconv"
	"strings"

	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/ast"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/diag"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/ident"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/lexer"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/span"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/token"
)

// Parser consumes tokens from a Lexer and builds an AST.
//
// Grammar (§4.3):
//
//	program    := stmt*
//	stmt       := ';' | assign_stmt | for_stmt | expr ';'
//	assign     := lhs_var 'is' expr ';'
//	for_stmt   := 'for' var ('from' expr)? 'to' expr ('step' expr)? (stmt | '{' stmt+ '}')
//	expr       := precedence-climbing over +, -, *, /, **, unary +/-, parens, calls, tuples, literals
//	tuple_expr := '(' expr (',' expr)+ ')'
//	call       := identifier '(' (expr (',' expr)*)? ')'
type Parser struct {
	lx    *lexer.Lexer
	diags *diag.Engine

	parenDepth int
	braceDepth int
}

func New(lx *lexer.Lexer, diags *diag.Engine) *Parser {
	return &Parser{lx: lx, diags: diags}
}

// ParseProgram parses the whole token stream into a statement list.
// Parsing is total: malformed input yields a (possibly partial)
// statement list plus diagnostics (§4.3 "Outputs").
func (p *Parser) ParseProgram() []ast.Stmt {
	var stmts []ast.Stmt
	for p.cur().Kind != token.EOF {
		before := p.cur()
		s := p.parseStmt()
		if s != nil {
			stmts = append(stmts, s)
		}
		// Guard against a statement parser that made no progress at all,
		// which would otherwise spin forever on pathological input.
		if p.cur() == before && p.cur().Kind != token.EOF {
			p.consume()
		}
	}
	return stmts
}

func (p *Parser) cur() token.Token    { return p.lx.Peek(0) }
func (p *Parser) peekAt(k int) token.Token { return p.lx.Peek(k) }
func (p *Parser) consume() token.Token { return p.lx.Consume() }

// varName renders the canonical name a Var/assignment-target node should
// bind under: keywords normalize to their lower-case spelling (§8's
// "idempotence of spelling normalization for keywords"); ordinary
// identifiers keep their exact, case-sensitive lexeme.
func varName(tok token.Token) string {
	if token.IsKeyword(tok.Kind) {
		return token.Canonical(tok.Kind)
	}
	return tok.Lexeme
}

func isVarStart(k token.Kind) bool {
	switch k {
	case token.Identifier, token.KwOrigin, token.KwScale, token.KwRot, token.KwT:
		return true
	default:
		return false
	}
}

// ---- statements ----

func (p *Parser) parseStmt() ast.Stmt {
	tok := p.cur()

	if tok.Kind == token.Semicolon {
		p.consume()
		return &ast.EmptyStmt{Sp: span.Of(tok.Start, tok.End)}
	}
	if tok.Kind == token.KwFor {
		return p.parseFor()
	}
	if isVarStart(tok.Kind) && p.looksLikeAssign() {
		return p.parseAssign()
	}
	return p.parseExprStmt()
}

// looksLikeAssign decides, from the current and next token alone (no
// backtracking needed), whether `stmt` should be parsed as an assignment:
// the token after a var-start token is either 'is' outright or a
// plausible typo for it.
func (p *Parser) looksLikeAssign() bool {
	next := p.peekAt(1)
	if next.Kind == token.KwIs {
		return true
	}
	return isKeywordTypo(next, "is")
}

func (p *Parser) parseAssign() ast.Stmt {
	lhsTok := p.consume()
	lhs := &ast.VarExpr{Sp: span.Of(lhsTok.Start, lhsTok.End), Name: varName(lhsTok)}

	isTok := p.cur()
	var isSpan span.Span
	if isTok.Kind == token.KwIs {
		p.consume()
		isSpan = span.Of(isTok.Start, isTok.End)
	} else {
		// looksLikeAssign only committed us here because this was a
		// recognized typo for 'is'; correct it in place.
		p.emitKeywordTypo(isTok, "is")
		p.consume()
		isSpan = span.Of(isTok.Start, isTok.End)
	}

	rhs := p.parseExpr()
	semiSpan := p.expectSemicolon()
	return &ast.AssignStmt{
		Sp:       span.Of(lhsTok.Start, semiSpan.End),
		Lhs:      lhs,
		IsSpan:   isSpan,
		Rhs:      rhs,
		SemiSpan: semiSpan,
	}
}

func (p *Parser) parseFor() ast.Stmt {
	forTok := p.consume() // 'for'

	varTok := p.cur()
	if !isVarStart(varTok.Kind) {
		p.diags.Error(diag.KindErrExpectedToken, varTok.Start, varTok.End).ArgString("a loop variable").Finish()
		p.skipUntil(token.Semicolon, token.LBrace)
		return &ast.ForStmt{Sp: span.Of(forTok.Start, varTok.End), Var: &ast.VarExpr{Sp: span.Of(varTok.Start, varTok.Start)}, To: &ast.ErrorExpr{Sp: span.Of(varTok.Start, varTok.Start)}}
	}
	p.consume()
	loopVar := &ast.VarExpr{Sp: span.Of(varTok.Start, varTok.End), Name: varName(varTok)}

	var fromExpr ast.Expr
	if p.cur().Kind == token.KwFrom || isKeywordTypo(p.cur(), "from") {
		if p.cur().Kind != token.KwFrom {
			p.emitKeywordTypo(p.cur(), "from")
		}
		p.consume()
		fromExpr = p.parseExpr()
	}

	p.expectKeyword(token.KwTo, "to")
	toExpr := p.parseExpr()

	var stepExpr ast.Expr
	if p.cur().Kind == token.KwStep || isKeywordTypo(p.cur(), "step") {
		if p.cur().Kind != token.KwStep {
			p.emitKeywordTypo(p.cur(), "step")
		}
		p.consume()
		stepExpr = p.parseExpr()
	}

	body := p.parseBody()
	end := forTok.End
	if len(body) > 0 {
		end = body[len(body)-1].Span().End
	}
	return &ast.ForStmt{
		Sp:   span.Of(forTok.Start, end),
		Var:  loopVar,
		From: fromExpr,
		To:   toExpr,
		Step: stepExpr,
		Body: body,
	}
}

// parseBody parses either a single statement or a brace-delimited block
// of one-or-more statements (§4.3 grammar: `(stmt | '{' stmt+ '}')`).
func (p *Parser) parseBody() []ast.Stmt {
	if p.cur().Kind != token.LBrace {
		return []ast.Stmt{p.parseStmt()}
	}
	open := p.consume()
	p.braceDepth++
	var stmts []ast.Stmt
	for p.cur().Kind != token.RBrace && p.cur().Kind != token.EOF {
		before := p.cur()
		stmts = append(stmts, p.parseStmt())
		if p.cur() == before && p.cur().Kind != token.EOF {
			p.consume()
		}
	}
	if p.cur().Kind == token.RBrace {
		p.consume()
	} else {
		p.diags.Error(diag.KindErrExpectedToken, p.cur().Start, p.cur().End).ArgString("'}'").Finish()
		p.diags.Note(diag.KindNoteMatchingBracket, open.Start, open.End).ArgString("{").Finish()
	}
	p.braceDepth--
	return stmts
}

func (p *Parser) parseExprStmt() ast.Stmt {
	start := p.cur().Start
	x := p.parseExpr()
	semiSpan := p.expectSemicolon()
	return &ast.ExprStmt{Sp: span.Of(start, semiSpan.End), X: x, SemiSpan: semiSpan}
}

// expectKeyword consumes kw if present, applying typo recovery; otherwise
// emits "expected <canonical>" and leaves the token stream unconsumed for
// the caller's normal recovery.
func (p *Parser) expectKeyword(kw token.Kind, canonical string) {
	tok := p.cur()
	if tok.Kind == kw {
		p.consume()
		return
	}
	if isKeywordTypo(tok, canonical) {
		p.emitKeywordTypo(tok, canonical)
		p.consume()
		return
	}
	p.diags.Error(diag.KindErrExpectedToken, tok.Start, tok.End).ArgString("'" + canonical + "'").Finish()
}

// expectSemicolon implements §4.3's semicolon recovery: an exact match
// consumes it; a recognized typo (':' or '.' mistaken for ';') is
// corrected with a replacement fix-it; otherwise a missing semicolon is
// reported with an insert-after-previous-token fix-it and the offending
// token is left unconsumed, so parsing proceeds as if the semicolon had
// been present at the previous token's end.
func (p *Parser) expectSemicolon() span.Span {
	tok := p.cur()
	if tok.Kind == token.Semicolon {
		p.consume()
		return span.Of(tok.Start, tok.End)
	}
	if tok.Kind == token.Unknown && (tok.Lexeme == ":" || tok.Lexeme == ".") {
		p.diags.Error(diag.KindErrExpectedToken, tok.Start, tok.End).
			ArgString("';'").Replace(tok.Start, tok.End, ";").Finish()
		p.consume()
		return span.Of(tok.Start, tok.End)
	}

	prev := p.lx.Prev()
	insertAt := prev.End - 1
	if insertAt < prev.Start {
		insertAt = prev.Start
	}
	b := p.diags.Error(diag.KindErrMissingSemicolon, tok.Start, tok.Start)
	b.ArgString(prev.Lexeme)
	if prev.Lexeme != "" {
		b.InsertAfter(insertAt, ";")
	}
	b.Finish()
	return span.Of(tok.Start, tok.Start)
}

// ---- expressions ----

type opInfo struct {
	prec     int
	rightAssoc bool
}

func binaryOp(k token.Kind) (opInfo, bool) {
	switch k {
	case token.Plus, token.Minus:
		return opInfo{prec: 10}, true
	case token.Star, token.Slash:
		return opInfo{prec: 20}, true
	case token.StarStar:
		return opInfo{prec: 40, rightAssoc: true}, true
	default:
		return opInfo{}, false
	}
}

const unaryPrec = 30

func (p *Parser) parseExpr() ast.Expr { return p.parseExprPrec(0) }

// parseExprPrec is the precedence-climbing core shared by every operator
// level (§4.3's table): it climbs binary operators whose precedence is
// >= minPrec, recursing with prec+1 for left-associative operators and
// prec for right-associative ones, exactly matching the spec's tie-break
// rule.
func (p *Parser) parseExprPrec(minPrec int) ast.Expr {
	lhs := p.parseUnary()
	for {
		tok := p.cur()
		info, ok := binaryOp(tok.Kind)
		if !ok && tok.Kind == token.Unknown && tok.Lexeme == "\\" {
			// '\' is a recognized typo for '/' (§4.3 rule (a)).
			info, ok = binaryOp(token.Slash)
			if info.prec >= minPrec {
				p.diags.Error(diag.KindErrExpectedToken, tok.Start, tok.End).
					ArgString("'/'").Replace(tok.Start, tok.End, "/").Finish()
				tok.Kind = token.Slash
			}
		}
		if !ok || info.prec < minPrec {
			break
		}
		p.consume()
		nextMin := info.prec + 1
		if info.rightAssoc {
			nextMin = info.prec
		}
		rhs := p.parseExprPrec(nextMin)
		lhs = &ast.BinaryExpr{Sp: span.Of(lhs.Span().Start, rhs.Span().End), Op: tok.Kind, Lhs: lhs, Rhs: rhs}
	}
	return lhs
}

func (p *Parser) parseUnary() ast.Expr {
	tok := p.cur()
	if tok.Kind == token.Plus || tok.Kind == token.Minus {
		p.consume()
		operand := p.parseExprPrec(unaryPrec)
		return &ast.UnaryExpr{Sp: span.Of(tok.Start, operand.Span().End), Op: tok.Kind, Operand: operand}
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() ast.Expr {
	tok := p.cur()
	switch {
	case tok.Kind == token.Number:
		p.consume()
		if _, err := strconv.ParseFloat(tok.Lexeme, 64); err != nil {
			// Only overflow is possible here: the lexer already restricted
			// the lexeme to digits and at most one '.', so this can only be
			// a magnitude even a float64 can't represent.
			p.diags.Error(diag.KindErrConstantTooLarge, tok.Start, tok.End).ArgString(tok.Lexeme).Finish()
		}
		return &ast.NumExpr{Sp: span.Of(tok.Start, tok.End), Text: tok.Lexeme, HadDot: strings.Contains(tok.Lexeme, ".")}
	case tok.Kind == token.String:
		p.consume()
		return &ast.StrExpr{Sp: span.Of(tok.Start, tok.End), Value: tok.Lexeme}
	case isVarStart(tok.Kind) || tok.Kind == token.KwDraw:
		p.consume()
		if p.cur().Kind == token.LParen {
			return p.parseCall(tok)
		}
		return &ast.VarExpr{Sp: span.Of(tok.Start, tok.End), Name: varName(tok)}
	case tok.Kind == token.LParen:
		return p.parseParenOrTuple()
	default:
		p.diags.Error(diag.KindErrExpectedExpression, tok.Start, tok.End).Finish()
		return &ast.ErrorExpr{Sp: span.Of(tok.Start, tok.Start)}
	}
}

func (p *Parser) parseCall(nameTok token.Token) ast.Expr {
	open := p.consume() // '('
	p.parenDepth++
	var args []ast.Expr
	if p.cur().Kind != token.RParen {
		args = append(args, p.parseExpr())
		for p.cur().Kind == token.Comma {
			p.consume()
			args = append(args, p.parseExpr())
		}
	}
	end := p.expectCloseParen(open)
	p.parenDepth--
	return &ast.CallExpr{Sp: span.Of(nameTok.Start, end), Name: varName(nameTok), Args: args}
}

func (p *Parser) parseParenOrTuple() ast.Expr {
	open := p.consume() // '('
	p.parenDepth++
	first := p.parseExpr()
	if p.cur().Kind == token.Comma {
		elems := []ast.Expr{first}
		for p.cur().Kind == token.Comma {
			p.consume()
			elems = append(elems, p.parseExpr())
		}
		end := p.expectCloseParen(open)
		p.parenDepth--
		return &ast.TupleExpr{Sp: span.Of(open.Start, end), Elems: elems}
	}
	p.expectCloseParen(open)
	p.parenDepth--
	return first
}

// expectCloseParen consumes a ')' if present; otherwise emits the
// boundary-test pair from §8 — "expected ')'" plus a note pointing back
// at the unmatched '(' — and recovers by skipping to the next plausible
// synchronization point.
func (p *Parser) expectCloseParen(open token.Token) int {
	tok := p.cur()
	if tok.Kind == token.RParen {
		return p.consume().End
	}
	p.diags.Error(diag.KindErrExpectedToken, tok.Start, tok.End).ArgString("')'").Finish()
	p.diags.Note(diag.KindNoteMatchingBracket, open.Start, open.End).ArgString("(").Finish()
	p.skipUntil(token.RParen, token.Semicolon)
	if p.cur().Kind == token.RParen {
		return p.consume().End
	}
	return tok.Start
}

// skipUntil advances the token stream until one of stopKinds is reached
// (without consuming it) or EOF, descending into nested bracket pairs
// rather than stopping on a stop-kind token that belongs to a nested
// construct (§4.3's skip_until helper).
func (p *Parser) skipUntil(stopKinds ...token.Kind) {
	depth := 0
	for {
		tok := p.cur()
		if tok.Kind == token.EOF {
			return
		}
		if depth == 0 {
			for _, sk := range stopKinds {
				if tok.Kind == sk {
					return
				}
			}
			if tok.Kind == token.RParen || tok.Kind == token.RBrace {
				return
			}
		}
		switch tok.Kind {
		case token.LParen, token.LBrace:
			depth++
		case token.RParen, token.RBrace:
			if depth > 0 {
				depth--
			}
		}
		p.consume()
	}
}

// ---- typo detection (§4.3) ----

// isKeywordTypo implements rule (b): the current token is a plain
// identifier whose case-insensitive Levenshtein distance to the expected
// keyword is <= 3 and strictly less than both lengths.
func isKeywordTypo(tok token.Token, expected string) bool {
	if tok.Kind != token.Identifier {
		return false
	}
	d := ident.Distance(tok.Lexeme, expected)
	return d <= 3 && d < len(tok.Lexeme) && d < len(expected)
}

func (p *Parser) emitKeywordTypo(tok token.Token, expected string) {
	p.diags.Error(diag.KindErrExpectedToken, tok.Start, tok.End).
		ArgString("'" + expected + "'").
		Replace(tok.Start, tok.End, expected).
		Finish()
}

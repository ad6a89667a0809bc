// Package lexer tokenizes drawing-language source, grounded on the
// teacher's peek/peek2/advance scanning discipline (pkg/compiler/lexer.go)
// but generalized from rune positions to byte offsets (to match the AST's
// byte-range model, §3) and extended with multi-token look-ahead and a
// line-oriented recovery primitive (§4.2).
package lexer

import (
	"strings"

	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/diag"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/source"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/token"
)

// Lexer produces tokens from a source buffer on demand, caching a FIFO of
// look-ahead tokens so the parser can inspect several tokens before
// deciding how to proceed.
type Lexer struct {
	buf   *source.Buffer
	src   []byte
	pos   int
	diags *diag.Engine

	lookahead []token.Token
	prev      token.Token
	havePrev  bool
}

// New creates a Lexer over buf, reporting lexical diagnostics through diags.
func New(buf *source.Buffer, diags *diag.Engine) *Lexer {
	return &Lexer{buf: buf, src: buf.Bytes(), diags: diags}
}

// Peek returns the kth look-ahead token (0 = the next token to be
// consumed) without consuming it, extending the cache if needed (§4.2).
func (l *Lexer) Peek(k int) token.Token {
	for len(l.lookahead) <= k {
		l.lookahead = append(l.lookahead, l.scanOne())
	}
	return l.lookahead[k]
}

// Current is shorthand for Peek(0).
func (l *Lexer) Current() token.Token { return l.Peek(0) }

// Consume discards the current front of the stream and returns it,
// retaining it as Prev() for column anchoring (§4.2).
func (l *Lexer) Consume() token.Token {
	tok := l.Peek(0)
	l.lookahead = l.lookahead[1:]
	l.prev = tok
	l.havePrev = true
	return tok
}

// Prev returns the most recently consumed token. Before any token has been
// consumed it returns the zero Token.
func (l *Lexer) Prev() token.Token { return l.prev }

// AdvanceToEOL discards all cached tokens and repositions the cursor to the
// character after the next '\n' from the current position, preserving Prev
// for column anchoring during recovery (§4.2).
func (l *Lexer) AdvanceToEOL() {
	l.lookahead = nil
	for l.pos < len(l.src) && l.src[l.pos] != '\n' {
		l.pos++
	}
	if l.pos < len(l.src) {
		l.pos++ // skip the newline itself
	}
}

func (l *Lexer) peekByte(offset int) byte {
	if l.pos+offset >= len(l.src) {
		return 0
	}
	return l.src[l.pos+offset]
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n', '\v', '\f':
		return true
	default:
		return false
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_'
}

func isAlnum(b byte) bool { return isAlpha(b) || isDigit(b) }

// skipTrivia consumes whitespace, NUL bytes (warning), and `//`/`--`
// comments until real content or EOF is reached.
func (l *Lexer) skipTrivia() {
	for l.pos < len(l.src) {
		b := l.src[l.pos]
		switch {
		case b == 0:
			l.diags.Warning(diag.KindWarnNullChar, l.pos, l.pos+1).Finish()
			l.pos++
		case isSpace(b):
			l.pos++
		case b == '/' && l.peekByte(1) == '/':
			l.skipLineComment()
		case b == '-' && l.peekByte(1) == '-':
			l.skipLineComment()
		default:
			return
		}
	}
}

func (l *Lexer) skipLineComment() {
	for l.pos < len(l.src) && l.src[l.pos] != '\n' {
		l.pos++
	}
}

// scanOne lexes exactly one token starting at the current cursor.
func (l *Lexer) scanOne() token.Token {
	l.skipTrivia()

	start := l.pos
	if l.pos >= len(l.src) {
		return token.Token{Kind: token.EOF, Start: start, End: start, Lexeme: ""}
	}

	b := l.src[l.pos]

	switch {
	case isAlpha(b):
		return l.scanIdentifier()
	case isDigit(b):
		return l.scanNumber()
	case b == '"':
		return l.scanString()
	}

	l.pos++
	switch b {
	case ';':
		return l.make(token.Semicolon, start)
	case '(':
		return l.make(token.LParen, start)
	case ')':
		return l.make(token.RParen, start)
	case '{':
		return l.make(token.LBrace, start)
	case '}':
		return l.make(token.RBrace, start)
	case ',':
		return l.make(token.Comma, start)
	case '+':
		return l.make(token.Plus, start)
	case '-':
		return l.make(token.Minus, start)
	case '/':
		return l.make(token.Slash, start)
	case '*':
		if l.pos < len(l.src) && l.src[l.pos] == '*' {
			l.pos++
			return token.Token{Kind: token.StarStar, Start: start, End: l.pos, Lexeme: "**"}
		}
		return l.make(token.Star, start)
	case ':', '.', '\\':
		// Reserved, undiagnosed Unknown tokens: the parser's typo recovery
		// (§4.3 rule (a)) inspects these lexemes directly — ':' or '.' for
		// a mistyped ';', '\' for '/' — and emits its own "expected X"
		// diagnostic with a replacement fix-it, so the lexer must not
		// pre-empt that with its own error here. A '.' in place of ',' is
		// not corrected: it ends a tuple or argument list like any other
		// unexpected token.
		return token.Token{Kind: token.Unknown, Start: start, End: l.pos, Lexeme: string(b)}
	default:
		l.diags.Error(diag.KindErrInvalidChar, start, start+1).ArgChar(rune(b)).Finish()
		return token.Token{Kind: token.Unknown, Start: start, End: l.pos, Lexeme: string(b)}
	}
}

func (l *Lexer) make(kind token.Kind, start int) token.Token {
	return token.Token{Kind: kind, Start: start, End: l.pos, Lexeme: string(l.src[start:l.pos])}
}

func (l *Lexer) scanIdentifier() token.Token {
	start := l.pos
	for l.pos < len(l.src) && isAlnum(l.src[l.pos]) {
		l.pos++
	}
	lexeme := string(l.src[start:l.pos])
	kind := token.Identifier
	if kw, ok := token.Keywords[strings.ToLower(lexeme)]; ok {
		kind = kw
	}
	return token.Token{Kind: kind, Start: start, End: l.pos, Lexeme: lexeme}
}

// scanNumber lexes `digit+ ('.' digit*)?`. No exponent, no sign (§3/§4.2):
// unary +/- is handled by the parser as an operator, not here.
func (l *Lexer) scanNumber() token.Token {
	start := l.pos
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}
	if l.pos < len(l.src) && l.src[l.pos] == '.' {
		l.pos++
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
	}
	return l.make(token.Number, start)
}

var simpleEscapes = map[byte]byte{
	'\'': '\'',
	'"':  '"',
	'?':  '?',
	'\\': '\\',
	'a':  '\a',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'v':  '\v',
}

// scanString lexes a `"…"` literal with C-style backslash escapes. An
// unknown `\x` warns and yields `x` verbatim; an unterminated string warns
// and ends the token at the line break (§4.2).
func (l *Lexer) scanString() token.Token {
	start := l.pos
	l.pos++ // opening quote
	var val []byte
	for l.pos < len(l.src) {
		b := l.src[l.pos]
		if b == '"' {
			l.pos++
			return token.Token{Kind: token.String, Start: start, End: l.pos, Lexeme: string(val)}
		}
		if b == '\n' {
			l.diags.Warning(diag.KindWarnUnterminatedStr, start, l.pos).Finish()
			return token.Token{Kind: token.String, Start: start, End: l.pos, Lexeme: string(val)}
		}
		if b == '\\' && l.pos+1 < len(l.src) {
			esc := l.src[l.pos+1]
			if repl, ok := simpleEscapes[esc]; ok {
				val = append(val, repl)
				l.pos += 2
				continue
			}
			if esc == '\n' {
				// Don't swallow the line break into the escape; fall
				// through to the unterminated-string path above.
				l.diags.Warning(diag.KindWarnUnterminatedStr, start, l.pos).Finish()
				return token.Token{Kind: token.String, Start: start, End: l.pos, Lexeme: string(val)}
			}
			l.diags.Warning(diag.KindWarnUnknownEscape, l.pos, l.pos+2).ArgChar(rune(esc)).Finish()
			val = append(val, esc)
			l.pos += 2
			continue
		}
		val = append(val, b)
		l.pos++
	}
	l.diags.Warning(diag.KindWarnUnterminatedStr, start, l.pos).Finish()
	return token.Token{Kind: token.String, Start: start, End: l.pos, Lexeme: string(val)}
}

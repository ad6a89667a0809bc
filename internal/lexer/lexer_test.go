package lexer

import (
	"testing"

	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/diag"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/source"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/token"
)

func lexAll(t *testing.T, src string) ([]token.Token, *diag.CollectingReporter) {
	buf := source.New("t.draw", []byte(src))
	rep := &diag.CollectingReporter{}
	eng := diag.NewEngine(buf, rep)
	lx := New(buf, eng)

	var toks []token.Token
	for {
		tok := lx.Consume()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return toks, rep
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestLex_BasicTokens(t *testing.T) {
	toks, rep := lexAll(t, "origin is (1, 2);")
	want := []token.Kind{
		token.KwOrigin, token.KwIs, token.LParen, token.Number, token.Comma,
		token.Number, token.RParen, token.Semicolon, token.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %v, want %v", i, got[i], want[i])
		}
	}
	if len(rep.Diagnostics) != 0 {
		t.Errorf("unexpected diagnostics: %v", rep.Diagnostics)
	}
}

func TestLex_KeywordsCaseInsensitive(t *testing.T) {
	toks, _ := lexAll(t, "ORIGIN Origin oRiGiN")
	for i, tok := range toks[:3] {
		if tok.Kind != token.KwOrigin {
			t.Errorf("token %d kind = %v, want KwOrigin", i, tok.Kind)
		}
	}
}

func TestLex_NumberWithDot(t *testing.T) {
	toks, _ := lexAll(t, "3.14 5 5.")
	want := []string{"3.14", "5", "5."}
	for i, w := range want {
		if toks[i].Lexeme != w {
			t.Errorf("token %d lexeme = %q, want %q", i, toks[i].Lexeme, w)
		}
	}
}

func TestLex_StringEscapes(t *testing.T) {
	toks, rep := lexAll(t, `"a\nb\tc"`)
	if toks[0].Lexeme != "a\nb\tc" {
		t.Errorf("lexeme = %q", toks[0].Lexeme)
	}
	if len(rep.Diagnostics) != 0 {
		t.Errorf("unexpected diagnostics: %v", rep.Diagnostics)
	}
}

func TestLex_UnknownEscapeWarns(t *testing.T) {
	toks, rep := lexAll(t, `"a\qb"`)
	if toks[0].Lexeme != "aqb" {
		t.Errorf("lexeme = %q, want %q", toks[0].Lexeme, "aqb")
	}
	if rep.WarningCount() != 1 {
		t.Errorf("warning count = %d, want 1", rep.WarningCount())
	}
}

func TestLex_UnterminatedStringWarns(t *testing.T) {
	toks, rep := lexAll(t, "\"abc\ndraw")
	if toks[0].Kind != token.String || toks[0].Lexeme != "abc" {
		t.Errorf("token = %+v", toks[0])
	}
	if rep.WarningCount() != 1 {
		t.Errorf("warning count = %d, want 1", rep.WarningCount())
	}
	// Lexing must continue after the unterminated string.
	if toks[1].Kind != token.KwDraw {
		t.Errorf("next token kind = %v, want KwDraw", toks[1].Kind)
	}
}

func TestLex_CommentStyles(t *testing.T) {
	toks, _ := lexAll(t, "draw(1,2); // comment\n-- also a comment\nfor")
	var kept []token.Kind
	for _, tok := range toks {
		kept = append(kept, tok.Kind)
	}
	want := []token.Kind{
		token.KwDraw, token.LParen, token.Number, token.Comma, token.Number,
		token.RParen, token.Semicolon, token.KwFor, token.EOF,
	}
	if len(kept) != len(want) {
		t.Fatalf("got %v, want %v", kept, want)
	}
	for i := range want {
		if kept[i] != want[i] {
			t.Errorf("token %d = %v, want %v", i, kept[i], want[i])
		}
	}
}

func TestLex_NullByteWarnsAndSkips(t *testing.T) {
	// The NUL byte terminates the in-progress identifier scan (it is not an
	// identifier character), so "a" and "b" lex as two separate tokens once
	// the NUL itself is skipped with a warning.
	toks, rep := lexAll(t, "a\x00b")
	if len(toks) != 3 {
		t.Fatalf("got %d tokens: %v", len(toks), toks)
	}
	if toks[0].Lexeme != "a" || toks[1].Lexeme != "b" {
		t.Errorf("lexemes = %q, %q", toks[0].Lexeme, toks[1].Lexeme)
	}
	if rep.WarningCount() != 1 {
		t.Errorf("warning count = %d, want 1", rep.WarningCount())
	}
}

func TestLex_InvalidCharacterIsError(t *testing.T) {
	_, rep := lexAll(t, "@")
	if rep.ErrorCount() != 1 {
		t.Errorf("error count = %d, want 1", rep.ErrorCount())
	}
}

func TestLex_TypoPunctuationIsUnknownWithoutDiagnostic(t *testing.T) {
	// ':', '.', and '\' are reserved for the parser's typo recovery and
	// must not raise their own lexical diagnostic.
	for _, src := range []string{":", ".", "\\"} {
		toks, rep := lexAll(t, src)
		if toks[0].Kind != token.Unknown || toks[0].Lexeme != src {
			t.Errorf("src %q: token = %+v", src, toks[0])
		}
		if rep.ErrorCount() != 0 || rep.WarningCount() != 0 {
			t.Errorf("src %q: unexpected diagnostics: %v", src, rep.Diagnostics)
		}
	}
}

func TestPeek_LookAhead(t *testing.T) {
	buf := source.New("t.draw", []byte("a is 1;"))
	eng := diag.NewEngine(buf, &diag.CollectingReporter{})
	lx := New(buf, eng)

	if lx.Peek(0).Kind != token.Identifier {
		t.Errorf("Peek(0) = %v", lx.Peek(0).Kind)
	}
	if lx.Peek(1).Kind != token.KwIs {
		t.Errorf("Peek(1) = %v", lx.Peek(1).Kind)
	}
	if lx.Peek(2).Kind != token.Number {
		t.Errorf("Peek(2) = %v", lx.Peek(2).Kind)
	}
	// Peeking must not consume.
	if lx.Consume().Kind != token.Identifier {
		t.Errorf("Consume() after Peek should still return identifier first")
	}
	if lx.Prev().Kind != token.Identifier {
		t.Errorf("Prev() = %v, want Identifier", lx.Prev().Kind)
	}
}

func TestAdvanceToEOL(t *testing.T) {
	buf := source.New("t.draw", []byte("a garbage !! tokens\nfor i"))
	eng := diag.NewEngine(buf, &diag.CollectingReporter{})
	lx := New(buf, eng)

	lx.Consume() // "a"
	lx.AdvanceToEOL()
	tok := lx.Consume()
	if tok.Kind != token.KwFor {
		t.Errorf("after AdvanceToEOL, Consume() = %v, want KwFor", tok.Kind)
	}
}

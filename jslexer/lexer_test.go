package jslexer

import "testing"

func TestLexerBasic(t *testing.T) {
	input := `const x = 42;`

	l := New(input)

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{CONST, "const"},
		{IDENT, "x"},
		{ASSIGN, "="},
		{NUMBER, "42"},
		{SEMICOLON, ";"},
		{EOF, ""},
	}

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%v, got=%v", i, tt.expectedType, tok.Type)
		}

		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestLexerImportExportPunctuation(t *testing.T) {
	input := `import { a as b } from "./m";
export default function f<T>(): void {}`

	l := New(input)

	var got []TokenType
	for {
		tok := l.NextToken()
		if tok.Type == EOF {
			break
		}

		got = append(got, tok.Type)
	}

	want := []TokenType{
		IMPORT, LBRACE, IDENT, AS, IDENT, RBRACE, FROM, STRING, SEMICOLON,
		EXPORT, DEFAULT, FUNCTION, IDENT, LT, IDENT, GT, LPAREN, RPAREN, COLON, VOID, LBRACE, RBRACE,
	}

	if len(got) != len(want) {
		t.Fatalf("token count mismatch: got %d, want %d (%v)", len(got), len(want), got)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token[%d]: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexerTemplateLiteralIsOneToken(t *testing.T) {
	input := "const s = `hello ${name} { } world`;"

	l := New(input)
	l.NextToken() // const
	l.NextToken() // s
	l.NextToken() // =

	tok := l.NextToken()
	if tok.Type != TEMPLATE {
		t.Fatalf("expected TEMPLATE, got %v", tok.Type)
	}

	if tok.Literal != "hello ${name} { } world" {
		t.Fatalf("unexpected template contents: %q", tok.Literal)
	}
}

func TestLexerArrowAndNullishCoalescing(t *testing.T) {
	input := `(x) => x ?? 1`

	l := New(input)

	var got []TokenType
	for {
		tok := l.NextToken()
		if tok.Type == EOF {
			break
		}

		got = append(got, tok.Type)
	}

	want := []TokenType{LPAREN, IDENT, RPAREN, ARROW, IDENT, NULLISH, NUMBER}
	if len(got) != len(want) {
		t.Fatalf("token count mismatch: got %d, want %d (%v)", len(got), len(want), got)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token[%d]: got %v, want %v", i, got[i], want[i])
		}
	}
}

package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nefkit/go-star/internal/token"
)

func TestNext(t *testing.T) {
	input := `data_Demo
# deposited 2024-01-15
_title  'free text'
_count  ?
loop_
   _x
   _y
   1.5  .
stop_
save_About
   _note  "say 'hi'"
save_
;
first line
second line
;
$other_frame
[vector]
GLOBAL_
data_
'unclosed
`

	expectedTokens := []struct {
		expectedType    token.Type
		expectedLiteral string
	}{
		{token.DATABLOCK, "data_Demo"},
		{token.COMMENT, "# deposited 2024-01-15"},
		{token.DATANAME, "_title"},
		{token.SQUOTESTRING, "free text"},
		{token.DATANAME, "_count"},
		{token.UNKNOWN, "?"},
		{token.LOOP, "loop_"},
		{token.DATANAME, "_x"},
		{token.DATANAME, "_y"},
		{token.STRING, "1.5"},
		{token.NULL, "."},
		{token.STOP, "stop_"},
		{token.SAVEFRAME, "save_About"},
		{token.DATANAME, "_note"},
		{token.DQUOTESTRING, "say 'hi'"},
		{token.SAVEFRAME, "save_"},
		{token.MULTILINE, "\nfirst line\nsecond line"},
		{token.SAVEFRAMEREF, "$other_frame"},
		{token.BRACKET, "[vector]"},
		{token.GLOBAL, "GLOBAL_"},
		{token.BADCONSTRUCT, "data_"},
		{token.BADTOKEN, "'unclosed"},
		{token.EOF, ""},
	}

	l := New(input)

	for i, tt := range expectedTokens {
		tok := l.Next()
		require.Equal(t, tt.expectedType, tok.Type, "test[%d] - wrong token type", i)
		require.Equal(t, tt.expectedLiteral, tok.Literal, "test[%d] - wrong literal", i)
	}
}

func TestNextKeywords(t *testing.T) {
	tests := []struct {
		input    string
		expected token.Type
	}{
		{"DATA_demo", token.DATABLOCK},
		{"Save_shifts", token.SAVEFRAME},
		{"SAVE_", token.SAVEFRAME},
		{"Loop_", token.LOOP},
		{"STOP_", token.STOP},
		{"Global_", token.GLOBAL},
		{"global_x", token.BADCONSTRUCT},
		{"stop_now", token.BADCONSTRUCT},
		{"loop_9", token.BADCONSTRUCT},
		{"data_", token.BADCONSTRUCT},
		{"DATA_", token.BADCONSTRUCT},
		{"_chem_comp.id", token.DATANAME},
		{"_", token.BADTOKEN},
		{"$", token.BADTOKEN},
		{"$frame", token.SAVEFRAMEREF},
		{".", token.NULL},
		{"?", token.UNKNOWN},
		{"[vec", token.BRACKET},
		{"]end", token.BRACKET},
		{"plain", token.STRING},
		{"abc#def", token.STRING},
		{"1.5e-7", token.STRING},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok := New(tt.input).Next()
			require.Equal(t, tt.expected, tok.Type)
			require.Equal(t, tt.input, tok.Literal)
		})
	}
}

func TestNextQuoting(t *testing.T) {
	type tok struct {
		typ     token.Type
		literal string
	}
	tests := []struct {
		name     string
		input    string
		expected []tok
	}{
		{"empty single", "''", []tok{{token.SQUOTESTRING, ""}}},
		{"lone quote content", "'''", []tok{{token.SQUOTESTRING, "'"}}},
		{"inner quotes kept", "'it''s here'", []tok{{token.SQUOTESTRING, "it''s here"}}},
		{"double holding singles", `"say 'what'"`, []tok{{token.DQUOTESTRING, "say 'what'"}}},
		{"closes at whitespace", "'abc def' ghi", []tok{{token.SQUOTESTRING, "abc def"}, {token.STRING, "ghi"}}},
		{"unterminated", "'abc", []tok{{token.BADTOKEN, "'abc"}}},
		{"reopened after close", "'abc'def ghi", []tok{{token.BADTOKEN, "'abc'def"}, {token.STRING, "ghi"}}},
		{"newline breaks quote", "'abc\ndef'", []tok{{token.BADTOKEN, "'abc"}, {token.STRING, "def'"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.input)
			for i, want := range tt.expected {
				tok := l.Next()
				require.Equal(t, want.typ, tok.Type, "token[%d] - wrong type", i)
				require.Equal(t, want.literal, tok.Literal, "token[%d] - wrong literal", i)
			}
			require.Equal(t, token.EOF, l.Next().Type)
		})
	}
}

func TestNextMultiline(t *testing.T) {
	type tok struct {
		typ     token.Type
		literal string
	}
	tests := []struct {
		name     string
		input    string
		expected []tok
	}{
		{"basic", ";abc\n;", []tok{{token.MULTILINE, "abc"}}},
		{"empty", ";\n;", []tok{{token.MULTILINE, ""}}},
		{"leading newline kept", ";\nabc\n;", []tok{{token.MULTILINE, "\nabc"}}},
		{"crlf separator", ";abc\r\n;", []tok{{token.MULTILINE, "abc"}}},
		{"carriage return in content", ";ab\r\r\n;", []tok{{token.MULTILINE, "ab\r"}}},
		{"mid-line semicolon kept", ";abc; def\nmore\n;", []tok{{token.MULTILINE, "abc; def\nmore"}}},
		{"closing needs whitespace", ";abc\n;x\n;", []tok{{token.MULTILINE, "abc\n;x"}}},
		{"unterminated", ";abc def", []tok{{token.BADTOKEN, ";abc"}, {token.STRING, "def"}}},
		{"not at line start", "x ;abc", []tok{{token.STRING, "x"}, {token.STRING, ";abc"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.input)
			for i, want := range tt.expected {
				tok := l.Next()
				require.Equal(t, want.typ, tok.Type, "token[%d] - wrong type", i)
				require.Equal(t, want.literal, tok.Literal, "token[%d] - wrong literal", i)
			}
			require.Equal(t, token.EOF, l.Next().Type)
		})
	}
}

func TestNextPositions(t *testing.T) {
	input := "data_a\n;\nx\n;\n  _tag value"

	l := New(input)

	tok := l.Next()
	require.Equal(t, token.DATABLOCK, tok.Type)
	require.Equal(t, 1, tok.Line)
	require.Equal(t, 1, tok.Column)

	tok = l.Next()
	require.Equal(t, token.MULTILINE, tok.Type)
	require.Equal(t, 2, tok.Line)
	require.Equal(t, 1, tok.Column)

	tok = l.Next()
	require.Equal(t, token.DATANAME, tok.Type)
	require.Equal(t, 5, tok.Line)
	require.Equal(t, 3, tok.Column)

	tok = l.Next()
	require.Equal(t, token.STRING, tok.Type)
	require.Equal(t, 5, tok.Line)
	require.Equal(t, 8, tok.Column)

	require.Equal(t, token.EOF, l.Next().Type)
}

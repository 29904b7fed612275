package lexer

import (
	"strings"

	"github.com/nefkit/go-star/internal/token"
)

// Lexer holds the state for tokenizing STAR source text.
//
// Tokens are produced lazily in a single forward pass; the stream cannot
// be restarted. Every span of input classifies as some token, so the
// lexer itself never fails: malformed input comes out as BADTOKEN or
// BADCONSTRUCT and is rejected by the parser.
type Lexer struct {
	input     string
	pos       int
	line      int
	lineStart int // offset of the first byte of the current line
}

// New creates and returns a new Lexer over input.
func New(input string) *Lexer {
	return &Lexer{input: input, line: 1}
}

// Next scans the input and returns the next token, or an EOF token once
// the input is exhausted.
func (l *Lexer) Next() token.Token {
	l.skipWhitespace()

	tok := token.Token{Line: l.line, Column: l.pos - l.lineStart + 1}
	if l.pos >= len(l.input) {
		tok.Type = token.EOF
		return tok
	}

	atLineStart := l.pos == 0 || l.input[l.pos-1] == '\n'
	ch := l.input[l.pos]

	switch {
	case ch == ';' && atLineStart:
		if lit, end, ok := l.scanMultiline(); ok {
			tok.Type = token.MULTILINE
			tok.Literal = lit
			l.advanceTo(end)
			return tok
		}
	case ch == '#':
		lit, end := l.scanComment()
		tok.Type = token.COMMENT
		tok.Literal = lit
		l.advanceTo(end)
		return tok
	case ch == '\'' || ch == '"':
		if lit, end, ok := l.scanQuoted(ch); ok {
			if ch == '\'' {
				tok.Type = token.SQUOTESTRING
			} else {
				tok.Type = token.DQUOTESTRING
			}
			tok.Literal = lit
			l.advanceTo(end)
			return tok
		}
	}

	// Not a comment and not a well-formed quoted or multiline string:
	// take the whole whitespace-delimited field and classify it.
	field := l.field()
	tok.Type = classify(field, ch, atLineStart)
	tok.Literal = field
	l.advanceTo(l.pos + len(field))
	return tok
}

// classify maps a whitespace-delimited field to its token type. The
// checks mirror the alternation order of the STAR grammar in the
// International Tables for Crystallography volume G section 2.1;
// privileged keywords are matched case-insensitively.
func classify(field string, first byte, atLineStart bool) token.Type {
	switch {
	case strings.EqualFold(field, "global_"):
		return token.GLOBAL
	case foldPrefix(field, "save_"):
		return token.SAVEFRAME
	case first == '$' && len(field) > 1:
		return token.SAVEFRAMEREF
	case strings.EqualFold(field, "stop_"):
		return token.STOP
	case foldPrefix(field, "data_") && len(field) > len("data_"):
		return token.DATABLOCK
	case strings.EqualFold(field, "loop_"):
		return token.LOOP
	case foldPrefix(field, "global_"), foldPrefix(field, "stop_"),
		strings.EqualFold(field, "data_"), foldPrefix(field, "loop_"):
		return token.BADCONSTRUCT
	case first == '_' && len(field) > 1:
		return token.DATANAME
	case field == ".":
		return token.NULL
	case field == "?":
		return token.UNKNOWN
	case first == '[' || first == ']':
		return token.BRACKET
	case first == '\'' || first == '"' || first == '_' || first == '$',
		first == ';' && atLineStart:
		return token.BADTOKEN
	default:
		return token.STRING
	}
}

// scanMultiline matches a ;-delimited text block. The opening ; sits at
// a true line start; the block closes at the next line whose leading ;
// is followed by whitespace or end of input. The newline (or CRLF)
// immediately before the closing ; is not part of the literal.
func (l *Lexer) scanMultiline() (lit string, end int, ok bool) {
	for j := l.pos + 1; j < len(l.input); j++ {
		if l.input[j] != ';' || l.input[j-1] != '\n' {
			continue
		}
		if j+1 < len(l.input) && !isSpace(l.input[j+1]) {
			continue
		}
		contentEnd := j - 1
		if contentEnd > l.pos+1 && l.input[contentEnd-1] == '\r' {
			contentEnd--
		}
		return l.input[l.pos+1 : contentEnd], j + 1, true
	}
	return "", 0, false
}

// scanComment reads from # to the end of the line. The # is part of the
// literal; a trailing \r is not.
func (l *Lexer) scanComment() (string, int) {
	end := l.pos
	for end < len(l.input) && l.input[end] != '\n' {
		end++
	}
	lit := l.input[l.pos:end]
	if len(lit) > 0 && lit[len(lit)-1] == '\r' {
		lit = lit[:len(lit)-1]
	}
	return lit, end
}

// scanQuoted matches a quoted string on a single line. The string
// closes at the first quote character followed by whitespace or end of
// input, so embedded quotes not followed by whitespace are literal
// content. The quotes are stripped from the literal.
func (l *Lexer) scanQuoted(quote byte) (lit string, end int, ok bool) {
	for i := l.pos + 1; i < len(l.input); i++ {
		switch l.input[i] {
		case '\n':
			return "", 0, false
		case quote:
			if i+1 >= len(l.input) || isSpace(l.input[i+1]) {
				return l.input[l.pos+1 : i], i + 1, true
			}
		}
	}
	return "", 0, false
}

// field returns the maximal run of non-whitespace bytes at the current
// position.
func (l *Lexer) field() string {
	i := l.pos
	for i < len(l.input) && !isSpace(l.input[i]) {
		i++
	}
	return l.input[l.pos:i]
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) && isSpace(l.input[l.pos]) {
		if l.input[l.pos] == '\n' {
			l.line++
			l.lineStart = l.pos + 1
		}
		l.pos++
	}
}

// advanceTo moves the scan position forward to end, keeping line
// accounting straight across any newlines in between.
func (l *Lexer) advanceTo(end int) {
	for i := l.pos; i < end; i++ {
		if l.input[i] == '\n' {
			l.line++
			l.lineStart = i + 1
		}
	}
	l.pos = end
}

func foldPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

package cas

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ============================================================
// Lexer
// ============================================================

type tokenType int

const (
	tokNumber tokenType = iota
	tokIdent
	tokPlus
	tokMinus
	tokMult
	tokDivide
	tokPower
	tokOParen
	tokCParen
)

var tokenNames = map[tokenType]string{
	tokNumber: "number",
	tokIdent:  "identifier",
	tokPlus:   "'+'",
	tokMinus:  "'-'",
	tokMult:   "'*'",
	tokDivide: "'/'",
	tokPower:  "'**'",
	tokOParen: "'('",
	tokCParen: "')'",
}

func (t tokenType) String() string { return tokenNames[t] }

type token struct {
	typ   tokenType
	value string
	pos   int
}

// ParseError reports a malformed expression and the byte offset where the
// problem was found.
type ParseError struct {
	Pos int
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d: %s", e.Pos, e.Msg)
}

type lexer struct {
	input      string
	tokens     []token
	err        *ParseError
	start, pos int
	width      int
}

type lexStateFn func(l *lexer) lexStateFn

const eof rune = 0

const (
	numeric    = "0123456789"
	alphabetic = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// lex splits input into tokens, stopping at the first error.
func lex(input string) ([]token, error) {
	l := &lexer{input: input}
	for state := lexWS; state != nil; {
		state = state(l)
	}
	if l.err != nil {
		return nil, l.err
	}
	return l.tokens, nil
}

// States

func lexWS(l *lexer) lexStateFn {
	for unicode.IsSpace(l.next()) {
	}
	l.backup()
	l.ignore()

	ru := l.peek()
	switch {
	case ru == eof:
		return nil
	case strings.ContainsRune(numeric+".", ru):
		return lexNumber
	case strings.ContainsRune(alphabetic+"_", ru):
		return lexIdentifier
	}

	ru = l.next()
	switch ru {
	case '+':
		l.emit(tokPlus)
	case '-':
		l.emit(tokMinus)
	case '*':
		if l.accept("*") {
			l.emit(tokPower)
		} else {
			l.emit(tokMult)
		}
	case '/':
		l.emit(tokDivide)
	case '(':
		l.emit(tokOParen)
	case ')':
		l.emit(tokCParen)
	case '^':
		return l.errorf("unexpected '^', use '**' for powers")
	default:
		return l.errorf("unexpected character %q", ru)
	}
	return lexWS
}

func lexNumber(l *lexer) lexStateFn {
	digits := l.acceptRun(numeric)
	if l.accept(".") {
		digits += l.acceptRun(numeric)
	}
	if digits == 0 {
		return l.errorf("bad number syntax %q", l.current())
	}
	// An exponent needs digits after the optional sign, otherwise the 'e'
	// belongs to whatever follows.
	mark := l.pos
	if l.accept("eE") {
		l.accept("+-")
		if l.acceptRun(numeric) == 0 {
			l.pos = mark
		}
	}
	if ru := l.peek(); ru != eof && strings.ContainsRune(alphabetic+numeric+"_.", ru) {
		l.next()
		return l.errorf("bad number syntax %q", l.current())
	}
	l.emit(tokNumber)
	return lexWS
}

func lexIdentifier(l *lexer) lexStateFn {
	l.acceptRun(alphabetic + numeric + "_")
	l.emit(tokIdent)
	return lexWS
}

// Helpers

func (l *lexer) current() string { return l.input[l.start:l.pos] }

func (l *lexer) emit(t tokenType) {
	l.tokens = append(l.tokens, token{typ: t, value: l.current(), pos: l.start})
	l.ignore()
}

func (l *lexer) errorf(format string, args ...interface{}) lexStateFn {
	l.err = &ParseError{Pos: l.start, Msg: fmt.Sprintf(format, args...)}
	return nil
}

func (l *lexer) next() rune {
	if l.pos >= len(l.input) {
		l.width = 0
		return eof
	}
	var ru rune
	ru, l.width = utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += l.width
	return ru
}

func (l *lexer) backup() { l.pos -= l.width }

func (l *lexer) peek() rune {
	ru := l.next()
	l.backup()
	return ru
}

func (l *lexer) ignore() { l.start = l.pos }

func (l *lexer) accept(valid string) bool {
	if strings.ContainsRune(valid, l.next()) {
		return true
	}
	l.backup()
	return false
}

// acceptRun consumes runes from valid and returns how many it took.
func (l *lexer) acceptRun(valid string) int {
	n := 0
	for strings.ContainsRune(valid, l.next()) {
		n++
	}
	l.backup()
	return n
}

package lexer

import (
	"errors"
	"fmt"
	"io"
	"unicode"
	"unicode/utf8"
)

type TokenType string

const (
	TokenTypeName       TokenType = "NAME"
	TokenTypeNumber     TokenType = "NUMBER"
	TokenTypeParenClose TokenType = "PAREN_CLOSE"
	TokenTypeParenOpen  TokenType = "PAREN_OPEN"
	TokenTypeString     TokenType = "STRING"
)

var (
	ErrInvalidCharacter   = errors.New("invalid character")
	ErrRuneInvalid        = errors.New("decode rune: invalid rune")
	ErrUnterminatedString = errors.New("unterminated string")
)

type Point struct {
	Line   int
	Column int
}

// Error reports the character the lexer stopped at and where it was found.
type Error struct {
	Err      error
	Char     rune
	Position Point
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %v: %q", e.Position.Line, e.Position.Column, e.Err, e.Char)
}

func (e *Error) Unwrap() error {
	return e.Err
}

type Token struct {
	Type  TokenType
	Value string
}

type Lexer struct {
	input    []byte
	point    Point
	position int
}

func NewLexer(input string) *Lexer {
	return &Lexer{
		input:    []byte(input),
		point:    Point{Line: 1, Column: 1},
		position: 0,
	}
}

// Tokenize reads the whole input. It either returns every token or the first
// error, never a prefix of the token stream.
func Tokenize(input string) ([]*Token, error) {
	lex := NewLexer(input)

	tokens := make([]*Token, 0)
	for {
		token, err := lex.ReadToken()
		if err == io.EOF {
			return tokens, nil
		}
		if err != nil {
			return nil, err
		}

		tokens = append(tokens, token)
	}
}

// ReadToken returns the next token or io.EOF once the input is exhausted.
func (l *Lexer) ReadToken() (*Token, error) {
	if err := l.advanceWhitespace(); err != nil {
		return nil, err
	}

	r, _, err := l.peek()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, err
	}

	switch {
	case r == '(':
		return l.readParen(TokenTypeParenOpen)

	case r == ')':
		return l.readParen(TokenTypeParenClose)

	case isDigit(r):
		return l.readNumber()

	case isNameCharacter(r):
		return l.readName()

	case isStringDelimiter(r):
		return l.readString()
	}

	return nil, l.newError(ErrInvalidCharacter, r)
}

func (l *Lexer) advanceWhitespace() error {
	for {
		r, _, err := l.peek()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		if !unicode.IsSpace(r) {
			return nil
		}

		_, _ = l.read()

		if r == '\n' {
			l.point.Line++
			l.point.Column = 1
		}
	}
}

func (l *Lexer) readParen(tokenType TokenType) (*Token, error) {
	r, err := l.read()
	invariant(err != nil, "readParen: unexpected read() error when consuming first character")

	token := Token{
		Type:  tokenType,
		Value: string(r),
	}

	return &token, nil
}

func (l *Lexer) readName() (*Token, error) {
	value, err := l.readRun(isNameCharacter)
	if err != nil {
		return nil, err
	}

	token := Token{
		Type:  TokenTypeName,
		Value: value,
	}

	return &token, nil
}

func (l *Lexer) readNumber() (*Token, error) {
	value, err := l.readRun(isDigit)
	if err != nil {
		return nil, err
	}

	token := Token{
		Type:  TokenTypeNumber,
		Value: value,
	}

	return &token, nil
}

// readRun consumes runes for as long as accept holds. The caller guarantees
// the first rune is accepted.
func (l *Lexer) readRun(accept func(rune) bool) (string, error) {
	r, err := l.read()
	invariant(err != nil, "readRun: unexpected read() error when consuming first character")
	invariant(!accept(r), "readRun: first character is not valid")

	value := []rune{r}

	for {
		r, _, err := l.peek()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		if !accept(r) {
			break
		}

		_, err = l.read()
		invariant(err != nil, "readRun: unexpected read() error after peek()")

		value = append(value, r)
	}

	return string(value), nil
}

func (l *Lexer) readString() (*Token, error) {
	startPoint := l.point

	// discard the opening quote
	r, err := l.read()
	invariant(err != nil, "readString: unexpected read() error when consuming first character")
	invariant(!isStringDelimiter(r), "readString: first character is not valid")

	value := []rune{}

	for {
		r, err := l.read()
		if err == io.EOF {
			return nil, &Error{Err: ErrUnterminatedString, Char: '"', Position: startPoint}
		}
		if err != nil {
			return nil, err
		}

		if isStringDelimiter(r) {
			break
		}

		if r == '\n' {
			l.point.Line++
			l.point.Column = 1
		}

		value = append(value, r)
	}

	token := Token{
		Type:  TokenTypeString,
		Value: string(value),
	}

	return &token, nil
}

func (l *Lexer) newError(err error, r rune) error {
	return &Error{
		Err:      err,
		Char:     r,
		Position: l.point,
	}
}

func (l *Lexer) peek() (rune, int, error) {
	if l.position >= len(l.input) {
		return 0, 0, io.EOF
	}

	r, size := utf8.DecodeRune(l.input[l.position:])
	if r == utf8.RuneError && size <= 1 {
		return 0, 0, l.newError(ErrRuneInvalid, utf8.RuneError)
	}

	return r, size, nil
}

func (l *Lexer) read() (rune, error) {
	r, size, err := l.peek()
	if err != nil {
		return 0, err
	}

	l.position += size
	l.point.Column++

	return r, nil
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isNameCharacter(r rune) bool {
	return unicode.IsLetter(r)
}

func isStringDelimiter(r rune) bool {
	return r == '"'
}

func invariant(assertion bool, message string) {
	if assertion {
		panic(message)
	}
}

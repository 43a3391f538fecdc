package lexer_test

import (
	"fmt"
	"io"
	"testing"

	"github.com/artuross/tinycompiler/internal/compiler/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexer(t *testing.T) {
	t.Run("single token", func(t *testing.T) {
		type testCase struct {
			name  string
			input string
			token *lexer.Token
		}

		testCases := []testCase{
			{
				name:  "paren open",
				input: "(",
				token: &lexer.Token{Type: lexer.TokenTypeParenOpen, Value: "("},
			},
			{
				name:  "paren close",
				input: ")",
				token: &lexer.Token{Type: lexer.TokenTypeParenClose, Value: ")"},
			},
			{
				name:  "name",
				input: "add",
				token: &lexer.Token{Type: lexer.TokenTypeName, Value: "add"},
			},
			{
				name:  "name / unicode letters",
				input: "größe",
				token: &lexer.Token{Type: lexer.TokenTypeName, Value: "größe"},
			},
			{
				name:  "number",
				input: "12",
				token: &lexer.Token{Type: lexer.TokenTypeNumber, Value: "12"},
			},
			{
				name:  "number / leading zeros",
				input: "007",
				token: &lexer.Token{Type: lexer.TokenTypeNumber, Value: "007"},
			},
			{
				name:  "string",
				input: `"hello world"`,
				token: &lexer.Token{Type: lexer.TokenTypeString, Value: "hello world"},
			},
			{
				name:  "string / empty",
				input: `""`,
				token: &lexer.Token{Type: lexer.TokenTypeString, Value: ""},
			},
			{
				name:  "string / keeps other characters",
				input: `"a*b (c)"`,
				token: &lexer.Token{Type: lexer.TokenTypeString, Value: "a*b (c)"},
			},
			{
				name:  "surrounding whitespace",
				input: " \t42\n",
				token: &lexer.Token{Type: lexer.TokenTypeNumber, Value: "42"},
			},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				lex := lexer.NewLexer(tc.input)

				tokens := make([]*lexer.Token, 0)

				index := 0
				for {
					token, err := lex.ReadToken()
					if err == io.EOF {
						break
					}
					require.NoError(t, err, "error when reading token %d", index)

					tokens = append(tokens, token)

					index++
				}

				require.Equal(t, 1, len(tokens), "incorrect number of tokens")

				assert.Equal(t, tc.token, tokens[0])
			})
		}
	})

	t.Run("expression", func(t *testing.T) {
		tokens, err := lexer.Tokenize("(add 2 (subtract 4 2))")
		require.NoError(t, err)

		expected := []*lexer.Token{
			{Type: lexer.TokenTypeParenOpen, Value: "("},
			{Type: lexer.TokenTypeName, Value: "add"},
			{Type: lexer.TokenTypeNumber, Value: "2"},
			{Type: lexer.TokenTypeParenOpen, Value: "("},
			{Type: lexer.TokenTypeName, Value: "subtract"},
			{Type: lexer.TokenTypeNumber, Value: "4"},
			{Type: lexer.TokenTypeNumber, Value: "2"},
			{Type: lexer.TokenTypeParenClose, Value: ")"},
			{Type: lexer.TokenTypeParenClose, Value: ")"},
		}

		assert.Equal(t, expected, tokens)
	})

	t.Run("adjacent runs", func(t *testing.T) {
		tokens, err := lexer.Tokenize(`(concat"a"12b)`)
		require.NoError(t, err)

		expected := []*lexer.Token{
			{Type: lexer.TokenTypeParenOpen, Value: "("},
			{Type: lexer.TokenTypeName, Value: "concat"},
			{Type: lexer.TokenTypeString, Value: "a"},
			{Type: lexer.TokenTypeNumber, Value: "12"},
			{Type: lexer.TokenTypeName, Value: "b"},
			{Type: lexer.TokenTypeParenClose, Value: ")"},
		}

		assert.Equal(t, expected, tokens)
	})

	t.Run("empty input", func(t *testing.T) {
		tokens, err := lexer.Tokenize("   ")
		require.NoError(t, err)
		assert.Empty(t, tokens)
	})
}

func TestLexer_Errors(t *testing.T) {
	type testCase struct {
		input    string
		err      error
		char     rune
		position lexer.Point
	}

	testCases := []testCase{
		{
			input:    "(add 2 (subtract 4 * 2))",
			err:      lexer.ErrInvalidCharacter,
			char:     '*',
			position: lexer.Point{Line: 1, Column: 20},
		},
		{
			input:    "(add\n  2 -1)",
			err:      lexer.ErrInvalidCharacter,
			char:     '-',
			position: lexer.Point{Line: 2, Column: 5},
		},
		{
			input:    `(print "hello)`,
			err:      lexer.ErrUnterminatedString,
			char:     '"',
			position: lexer.Point{Line: 1, Column: 8},
		},
		{
			input:    "(add_one 1)",
			err:      lexer.ErrInvalidCharacter,
			char:     '_',
			position: lexer.Point{Line: 1, Column: 5},
		},
	}

	for index, tc := range testCases {
		t.Run(fmt.Sprintf("%d - %s", index, tc.input), func(t *testing.T) {
			tokens, err := lexer.Tokenize(tc.input)
			require.Error(t, err)
			assert.Nil(t, tokens)

			assert.ErrorIs(t, err, tc.err)

			var lexErr *lexer.Error
			require.ErrorAs(t, err, &lexErr)
			assert.Equal(t, tc.char, lexErr.Char)
			assert.Equal(t, tc.position, lexErr.Position)
		})
	}
}

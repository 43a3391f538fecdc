package dump_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/artuross/tinycompiler/internal/compiler"
	"github.com/artuross/tinycompiler/internal/compiler/dump"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compile(t *testing.T, input string) *compiler.Result {
	t.Helper()

	result, err := compiler.New().Compile(context.Background(), input)
	require.NoError(t, err)

	return result
}

func TestParseEmit(t *testing.T) {
	for _, value := range []string{"ast", "code", "target", "tokens"} {
		emit, err := dump.ParseEmit(value)
		require.NoError(t, err)
		assert.Equal(t, dump.Emit(value), emit)
	}

	_, err := dump.ParseEmit("asm")
	assert.ErrorIs(t, err, dump.ErrUnknownEmit)
}

func TestWrite(t *testing.T) {
	result := compile(t, `(add 2 (concat "a"))`)

	t.Run("code", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, dump.Write(&buf, dump.EmitCode, result))

		assert.Equal(t, "add(2, concat(\"a\"));\n", buf.String())
	})

	t.Run("tokens", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, dump.Write(&buf, dump.EmitTokens, result))

		expected := `PAREN_OPEN "("
NAME "add"
NUMBER "2"
PAREN_OPEN "("
NAME "concat"
STRING "a"
PAREN_CLOSE ")"
PAREN_CLOSE ")"
`
		assert.Equal(t, expected, buf.String())
	})

	t.Run("ast", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, dump.Write(&buf, dump.EmitAST, result))

		out := buf.String()
		assert.Contains(t, out, "ast.CallExpression")
		assert.Contains(t, out, `"add"`)
		assert.Contains(t, out, "ast.StringLiteral")
	})

	t.Run("target", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, dump.Write(&buf, dump.EmitTarget, result))

		out := buf.String()
		assert.Contains(t, out, "targetast.ExpressionStatement")
		assert.Contains(t, out, "targetast.CallExpression")
		assert.Contains(t, out, `"concat"`)
	})

	t.Run("unknown", func(t *testing.T) {
		var buf bytes.Buffer
		err := dump.Write(&buf, dump.Emit("asm"), result)
		assert.ErrorIs(t, err, dump.ErrUnknownEmit)
		assert.Empty(t, buf.String())
	})
}

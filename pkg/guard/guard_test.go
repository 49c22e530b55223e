package guard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendril-lang/tendril/pkg/guard"
	"github.com/tendril-lang/tendril/pkg/value"
)

func evalStr(t *testing.T, src string, bindings map[string]value.Value, root value.Value) (value.Value, error) {
	t.Helper()
	expr, err := guard.Parse(src)
	require.NoError(t, err)
	return guard.Eval(expr, &guard.Env{Bindings: bindings, Root: root})
}

func TestEvalArithmeticAndComparison(t *testing.T) {
	out, err := evalStr(t, `$age >= 18 && $age < 65`, map[string]value.Value{"age": value.Number(30)}, value.Null())
	require.NoError(t, err)
	b, ok := out.AsBool()
	require.True(t, ok)
	assert.True(t, b)
}

func TestEvalOrShortCircuitsWithoutEvaluatingRight(t *testing.T) {
	// $missing is unbound; if || evaluated the right side this would error.
	out, err := evalStr(t, `true || $missing == 1`, nil, value.Null())
	require.NoError(t, err)
	b, _ := out.AsBool()
	assert.True(t, b)
}

func TestEvalAndShortCircuits(t *testing.T) {
	out, err := evalStr(t, `false && $missing == 1`, nil, value.Null())
	require.NoError(t, err)
	b, _ := out.AsBool()
	assert.False(t, b)
}

func TestEvalStringConcatenation(t *testing.T) {
	out, err := evalStr(t, `$a + $b`, map[string]value.Value{
		"a": value.String("foo"),
		"b": value.String("bar"),
	}, value.Null())
	require.NoError(t, err)
	s, ok := out.AsString()
	require.True(t, ok)
	assert.Equal(t, "foobar", s)
}

func TestEvalUnboundVariableErrors(t *testing.T) {
	_, err := evalStr(t, `$nope == 1`, nil, value.Null())
	assert.Error(t, err)
}

func TestEvalBuiltins(t *testing.T) {
	env := map[string]value.Value{
		"n": value.Number(5),
		"s": value.String("hello"),
	}
	out, err := evalStr(t, `number($n) && string($s) && size($s) == 5`, env, value.Null())
	require.NoError(t, err)
	b, _ := out.AsBool()
	assert.True(t, b)
}

func TestEvalRootSentinel(t *testing.T) {
	root := value.MustFromGo(map[string]any{"k": "v"})
	out, err := evalStr(t, `size(_) == 1`, nil, root)
	require.NoError(t, err)
	b, _ := out.AsBool()
	assert.True(t, b)
}

func TestEvalDivisionByZero(t *testing.T) {
	_, err := evalStr(t, `10 % 0`, nil, value.Null())
	assert.Error(t, err)
}

func TestFreeVarsInFirstOccurrenceOrder(t *testing.T) {
	expr, err := guard.Parse(`$b > 0 && $a > 0 && $b < 10`)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, guard.FreeVars(expr))
}

func TestParseRejectsMalformedExpression(t *testing.T) {
	_, err := guard.Parse(`$a ==`)
	assert.Error(t, err)
}

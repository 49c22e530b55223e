package litparse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendril-lang/tendril/pkg/litparse"
)

func TestUnquoteStringResolvesEscapes(t *testing.T) {
	out, err := litparse.UnquoteString(`"a\nb\tc\"d\\e"`)
	require.NoError(t, err)
	assert.Equal(t, "a\nb\tc\"d\\e", out)
}

func TestUnquoteStringResolvesUnicodeEscape(t *testing.T) {
	out, err := litparse.UnquoteString("\"\\u00e9\"")
	require.NoError(t, err)
	assert.Equal(t, "é", out)
}

func TestUnquoteStringRejectsMissingQuotes(t *testing.T) {
	_, err := litparse.UnquoteString(`abc`)
	assert.Error(t, err)
}

func TestUnquoteStringRejectsDanglingEscape(t *testing.T) {
	_, err := litparse.UnquoteString(`"abc\`)
	assert.Error(t, err)
}

func TestUnquoteStringRejectsUnknownEscape(t *testing.T) {
	_, err := litparse.UnquoteString(`"\q"`)
	assert.Error(t, err)
}

func TestParseNumber(t *testing.T) {
	n, err := litparse.ParseNumber("3.14")
	require.NoError(t, err)
	assert.Equal(t, 3.14, n)

	_, err = litparse.ParseNumber("not-a-number")
	assert.Error(t, err)
}

func TestParseRegexSplitsBodyAndFlags(t *testing.T) {
	// Only an escaped '/' is unescaped here; other escapes (like \.) pass
	// through untouched for the regex engine itself to interpret.
	body, flags, err := litparse.ParseRegex(`/^[a-z]+\.com$/i`)
	require.NoError(t, err)
	assert.Equal(t, `^[a-z]+\.com$`, body)
	assert.Equal(t, "i", flags)
}

func TestParseRegexHandlesEscapedSlashInBody(t *testing.T) {
	body, flags, err := litparse.ParseRegex(`/a\/b/`)
	require.NoError(t, err)
	assert.Equal(t, "a/b", body)
	assert.Equal(t, "", flags)
}

func TestParseRegexRejectsUnterminated(t *testing.T) {
	_, _, err := litparse.ParseRegex(`/abc`)
	assert.Error(t, err)
}

package grammar

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/gorgo/lr"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(tokens []Token) []TokType {
	k := make([]TokType, len(tokens))
	for i, t := range tokens {
		k[i] = t.Kind
	}
	return k
}

func TestTokenizeKinds(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lumen.grammar")
	defer teardown()
	//
	tokens, err := Tokenize(`FIXTURE PAR_4W54 8 ["A","B"] x.y: (1.5) = < > + - * /`)
	require.NoError(t, err)
	expected := []TokType{
		FIXTURE, IDENT, NUMBER, LSQUARE, STRING, COMMA, STRING, RSQUARE,
		IDENT, DOT, IDENT, COLON, LPAREN, NUMBER, RPAREN,
		OP, OP, OP, OP, OP, OP, OP,
	}
	if diff := cmp.Diff(expected, kinds(tokens)); diff != "" {
		t.Errorf("token kinds mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, `"A"`, tokens[4].Text)
	assert.Equal(t, "1.5", tokens[13].Text)
}

func TestKeywordFolding(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lumen.grammar")
	defer teardown()
	//
	tokens, err := Tokenize("cue Foo Start wait Interval")
	require.NoError(t, err)
	assert.Equal(t, []TokType{CUE, IDENT, START, WAIT, INTERVAL}, kinds(tokens))
	assert.Equal(t, "CUE", tokens[0].Text)
	assert.Equal(t, "Foo", tokens[1].Text)
	assert.Equal(t, "START", tokens[2].Text)
	assert.True(t, tokens[4].Kind.IsKeyword())
	assert.False(t, tokens[1].Kind.IsKeyword())
}

func TestTokenPositions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lumen.grammar")
	defer teardown()
	//
	tokens, err := Tokenize("CUE x START\n  IN a, \"ä\" b")
	require.NoError(t, err)
	require.Len(t, tokens, 8)
	assert.Equal(t, 2, tokens[3].Line)
	assert.Equal(t, 3, tokens[3].Column)
	assert.Equal(t, lr.Span{4, 5}, tokens[1].Span)
	// columns count runes, not bytes
	assert.Equal(t, 13, tokens[7].Column)
}

func TestWhitespaceAndComments(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lumen.grammar")
	defer teardown()
	//
	src := "# a comment\r\nCUE\t x # trailing\n"
	tokens, err := Tokenize(src)
	require.NoError(t, err)
	assert.Equal(t, []TokType{CUE, IDENT}, kinds(tokens))
	tokens, err = Tokenize(src, WithComments(true))
	require.NoError(t, err)
	assert.Equal(t, []TokType{COMMENT, CUE, IDENT, COMMENT}, kinds(tokens))
	assert.Equal(t, "# trailing", tokens[3].Text)
}

func TestLexError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lumen.grammar")
	defer teardown()
	//
	_, err := Tokenize("CUE a START\n  \"ä\" @")
	var lexErr *LexError
	require.True(t, errors.As(err, &lexErr), "expected a LexError, have %v", err)
	assert.Equal(t, '@', lexErr.Char)
	assert.Equal(t, 2, lexErr.Line)
	assert.Equal(t, 7, lexErr.Column)
	//
	tz, err := NewTokenizer("a ;")
	require.NoError(t, err)
	_, err = tz.Next()
	require.NoError(t, err)
	_, err1 := tz.Next()
	_, err2 := tz.Next()
	assert.Error(t, err1)
	assert.Equal(t, err1, err2, "tokenizer should be stuck at the error")
}

func TestTokenizerDeterminism(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lumen.grammar")
	defer teardown()
	//
	for _, src := range []string{sampleCue, sampleSetting, sampleShow} {
		t1, err := Tokenize(src)
		require.NoError(t, err)
		t2, err := Tokenize(src)
		require.NoError(t, err)
		if diff := cmp.Diff(t1, t2); diff != "" {
			t.Errorf("re-lexing differs:\n%s", diff)
		}
	}
}

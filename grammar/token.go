package grammar

import (
	"fmt"

	"github.com/npillmayer/gorgo/lr"
)

// TokType is the kind of a token.
type TokType int

// Token kinds of the lighting DSL. Keyword kinds follow FirstKeyword.
const (
	EOF TokType = iota
	IDENT
	NUMBER
	STRING
	OP // one of + - * / = < >
	DOT
	COLON
	LBRACE
	RBRACE
	LSQUARE
	RSQUARE
	LPAREN
	RPAREN
	COMMA
	NEWLINE
	COMMENT
	CUE
	IN
	FUNC
	INTERVAL
	DIMMER
	COLOR
	STROBE
	OTHERS
	START
	END
	LIBS
	FIXTURE
	PATCH
	GROUP
	SETTING
	PLAYBACK
	SHOW
	WAIT
)

// FirstKeyword is the first keyword token kind.
const FirstKeyword = CUE

var tokTypeNames = [...]string{
	EOF:      "EOF",
	IDENT:    "ID",
	NUMBER:   "NUMBER",
	STRING:   "STRING",
	OP:       "OP",
	DOT:      "DOT",
	COLON:    "COLON",
	LBRACE:   "LBRACE",
	RBRACE:   "RBRACE",
	LSQUARE:  "LSQUARE",
	RSQUARE:  "RSQUARE",
	LPAREN:   "LPAREN",
	RPAREN:   "RPAREN",
	COMMA:    "COMMA",
	NEWLINE:  "NEWLINE",
	COMMENT:  "COMMENT",
	CUE:      "CUE",
	IN:       "IN",
	FUNC:     "FUNC",
	INTERVAL: "INTERVAL",
	DIMMER:   "DIMMER",
	COLOR:    "COLOR",
	STROBE:   "STROBE",
	OTHERS:   "OTHERS",
	START:    "START",
	END:      "END",
	LIBS:     "LIBS",
	FIXTURE:  "FIXTURE",
	PATCH:    "PATCH",
	GROUP:    "GROUP",
	SETTING:  "SETTING",
	PLAYBACK: "PLAYBACK",
	SHOW:     "SHOW",
	WAIT:     "WAIT",
}

func (t TokType) String() string {
	if t >= 0 && int(t) < len(tokTypeNames) {
		return tokTypeNames[t]
	}
	return fmt.Sprintf("TokType(%d)", int(t))
}

// IsKeyword is true for reserved words.
func (t TokType) IsKeyword() bool {
	return t >= FirstKeyword && int(t) < len(tokTypeNames)
}

// keywords maps upper-case keyword text to its token kind.
var keywords = func() map[string]TokType {
	m := make(map[string]TokType)
	for t := FirstKeyword; int(t) < len(tokTypeNames); t++ {
		m[tokTypeNames[t]] = t
	}
	return m
}()

// Keyword checks if upper-cased text s is a keyword.
func Keyword(s string) (TokType, bool) {
	t, ok := keywords[s]
	return t, ok
}

// Token is a lexeme of the DSL, positioned by 1-based line and column
// (columns count runes). Span holds the byte offsets of the lexeme.
// Keyword tokens carry their upper-cased text.
type Token struct {
	Kind   TokType
	Text   string
	Line   int
	Column int
	Span   lr.Span
}

// Is checks kind and, if text is non-empty, the token text.
func (t Token) Is(kind TokType, text string) bool {
	return t.Kind == kind && (text == "" || t.Text == text)
}

func (t Token) String() string {
	if t.Kind == NEWLINE {
		return fmt.Sprintf("(NEWLINE,'\\n')@%d:%d", t.Line, t.Column)
	}
	return fmt.Sprintf("(%s,'%s')@%d:%d", t.Kind, t.Text, t.Line, t.Column)
}

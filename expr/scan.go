package expr

import (
	"errors"
	"fmt"
	"sync"
	"unicode/utf8"

	lex "github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

type tokType int

const (
	tokEOF tokType = iota
	tokNumber
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokPow
	tokSlash
	tokLParen
	tokRParen
	tokComma
)

var tokNames = [...]string{
	tokEOF:    "end of formula",
	tokNumber: "number",
	tokIdent:  "name",
	tokPlus:   "'+'",
	tokMinus:  "'-'",
	tokStar:   "'*'",
	tokPow:    "'**'",
	tokSlash:  "'/'",
	tokLParen: "'('",
	tokRParen: "')'",
	tokComma:  "','",
}

func (t tokType) String() string {
	return tokNames[t]
}

type token struct {
	kind tokType
	text string
	pos  int
}

var (
	formulaLexer    *lex.Lexer
	formulaLexerErr error
	formulaLexOnce  sync.Once
)

func lexer() (*lex.Lexer, error) {
	formulaLexOnce.Do(func() {
		lexer := lex.NewLexer()
		lexer.Add([]byte(`([0-9]+(\.[0-9]*)?|\.[0-9]+)((e|E)(\+|\-)?[0-9]+)?`), makeToken(tokNumber))
		lexer.Add([]byte(`[A-Za-z_][A-Za-z0-9_]*`), makeToken(tokIdent))
		lexer.Add([]byte(`\+`), makeToken(tokPlus))
		lexer.Add([]byte(`\-`), makeToken(tokMinus))
		lexer.Add([]byte(`\*`), makeToken(tokStar))
		lexer.Add([]byte(`\*\*`), makeToken(tokPow))
		lexer.Add([]byte(`/`), makeToken(tokSlash))
		lexer.Add([]byte(`\(`), makeToken(tokLParen))
		lexer.Add([]byte(`\)`), makeToken(tokRParen))
		lexer.Add([]byte(`,`), makeToken(tokComma))
		lexer.Add([]byte(`( |\t|\r|\n)+`), func(*lex.Scanner, *machines.Match) (interface{}, error) {
			return nil, nil
		})
		if err := lexer.CompileDFA(); err != nil {
			formulaLexerErr = err
			return
		}
		formulaLexer = lexer
	})
	return formulaLexer, formulaLexerErr
}

func makeToken(t tokType) lex.Action {
	return func(s *lex.Scanner, m *machines.Match) (interface{}, error) {
		return token{kind: t, text: string(m.Bytes), pos: m.TC}, nil
	}
}

// scan splits a formula into tokens, terminated by a tokEOF token.
func scan(formula string) ([]token, error) {
	lexer, err := lexer()
	if err != nil {
		return nil, err
	}
	scanner, err := lexer.Scanner([]byte(formula))
	if err != nil {
		return nil, err
	}
	var tokens []token
	for tok, err, eos := scanner.Next(); !eos; tok, err, eos = scanner.Next() {
		if err != nil {
			var ui *machines.UnconsumedInput
			if errors.As(err, &ui) {
				r, _ := utf8.DecodeRuneInString(formula[ui.StartTC:])
				return nil, &Error{
					Formula: formula,
					Pos:     ui.StartTC,
					Detail:  fmt.Sprintf("unexpected character %q", r),
					Err:     ErrSyntax,
				}
			}
			return nil, err
		}
		tokens = append(tokens, tok.(token))
	}
	return append(tokens, token{kind: tokEOF, pos: len(formula)}), nil
}

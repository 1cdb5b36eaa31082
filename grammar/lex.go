package grammar

/*
BSD License

Copyright (c) 2019–21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.  */

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"unicode/utf8"

	"github.com/npillmayer/gorgo/lr"
	"github.com/npillmayer/lumen/trace"
	lex "github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// The lexmachine DFA is compiled once and shared by all tokenizers.
// Scanners created from it are independent of each other.
var (
	dslLexer    *lex.Lexer
	dslLexerErr error
	dslLexOnce  sync.Once
)

func dslLexmachine() (*lex.Lexer, error) {
	dslLexOnce.Do(func() {
		lexer := lex.NewLexer()
		lexer.Add([]byte(`[0-9]+(\.[0-9]*)?`), makeToken(NUMBER))
		lexer.Add([]byte(`[A-Za-z_][A-Za-z0-9_]*`), makeToken(IDENT))
		lexer.Add([]byte(`[\+\-\*/=<>]`), makeToken(OP))
		lexer.Add([]byte(`\.`), makeToken(DOT))
		lexer.Add([]byte(`:`), makeToken(COLON))
		lexer.Add([]byte(`\{`), makeToken(LBRACE))
		lexer.Add([]byte(`\}`), makeToken(RBRACE))
		lexer.Add([]byte(`\[`), makeToken(LSQUARE))
		lexer.Add([]byte(`\]`), makeToken(RSQUARE))
		lexer.Add([]byte(`,`), makeToken(COMMA))
		lexer.Add([]byte(`\(`), makeToken(LPAREN))
		lexer.Add([]byte(`\)`), makeToken(RPAREN))
		lexer.Add([]byte(`"[^"]*"`), makeToken(STRING))
		lexer.Add([]byte(`\n`), makeToken(NEWLINE))
		lexer.Add([]byte(`#[^\n]*`), makeToken(COMMENT))
		lexer.Add([]byte(`( |\t|\r)+`), skip)
		if err := lexer.CompileDFA(); err != nil {
			dslLexerErr = err
			return
		}
		dslLexer = lexer
	})
	return dslLexer, dslLexerErr
}

func makeToken(t TokType) lex.Action {
	return func(s *lex.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(int(t), string(m.Bytes), m), nil
	}
}

func skip(*lex.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// --- Tokenizer -------------------------------------------------------------

// Tokenizer produces the tokens of a DSL source. It holds the lexer context
// of one tokenization run and must not be shared.
type Tokenizer struct {
	src       []byte
	scanner   *lex.Scanner
	lineStart []int // byte offsets of line starts
	newlines  newlineContext
	upper     cases.Caser
	sink      trace.Sink
	comments  bool
	err       error
}

// NewTokenizer creates a tokenizer for src.
func NewTokenizer(src string, opts ...Option) (*Tokenizer, error) {
	lexer, err := dslLexmachine()
	if err != nil {
		return nil, err
	}
	conf := makeConfig(opts)
	t := &Tokenizer{
		src:      []byte(src),
		upper:    cases.Upper(language.Und),
		sink:     conf.sink,
		comments: conf.comments,
	}
	if t.scanner, err = lexer.Scanner(t.src); err != nil {
		return nil, err
	}
	t.lineStart = []int{0}
	for i, b := range t.src {
		if b == '\n' {
			t.lineStart = append(t.lineStart, i+1)
		}
	}
	if conf.newlines == NewlinesLookback {
		t.newlines = newLookbackContext(t.sink)
	} else {
		t.newlines = newBraceContext()
	}
	return t, nil
}

// Next returns the next token. At the end of input it returns a token of
// kind EOF and io.EOF. After an error, every call returns the same error.
func (t *Tokenizer) Next() (Token, error) {
	for t.err == nil {
		tok, err, eos := t.scanner.Next()
		if eos {
			t.err = io.EOF
			break
		}
		if err != nil {
			t.err = t.lexError(err)
			t.sink.Record(trace.Event{Category: trace.Error, Detail: t.err.Error()})
			break
		}
		lt := tok.(*lex.Token)
		token := t.makeToken(TokType(lt.Type), lt)
		switch token.Kind {
		case NEWLINE:
			if !t.newlines.retain() {
				continue
			}
		case COMMENT:
			if !t.comments {
				continue
			}
			t.emit(token)
			return token, nil
		case IDENT:
			if kw, ok := Keyword(t.upper.String(token.Text)); ok {
				t.sink.Record(trace.Event{
					Category: trace.Lex,
					Line:     token.Line,
					Column:   token.Column,
					Detail:   fmt.Sprintf("converting keyword %q", token.Text),
				})
				token.Kind = kw
				token.Text = kw.String()
			}
		}
		before := t.newlines.retain()
		t.newlines.observe(token)
		if after := t.newlines.retain(); after != before {
			detail := "start generating NEWLINE tokens"
			if !after {
				detail = "stop generating NEWLINE tokens"
			}
			t.sink.Record(trace.Event{
				Category: trace.Lex,
				Line:     token.Line,
				Column:   token.Column,
				Detail:   detail,
			})
		}
		t.emit(token)
		return token, nil
	}
	if t.err == io.EOF {
		line, col := t.position(len(t.src))
		return Token{Kind: EOF, Line: line, Column: col}, io.EOF
	}
	return Token{}, t.err
}

func (t *Tokenizer) emit(token Token) {
	t.sink.Record(trace.Event{
		Category: trace.Token,
		Kind:     token.Kind.String(),
		Value:    token.Text,
		Line:     token.Line,
		Column:   token.Column,
	})
}

func (t *Tokenizer) makeToken(kind TokType, lt *lex.Token) Token {
	start := lt.TC
	end := start + len(lt.Lexeme)
	line, col := t.position(start)
	return Token{
		Kind:   kind,
		Text:   lt.Value.(string),
		Line:   line,
		Column: col,
		Span:   lr.Span{uint64(start), uint64(end)},
	}
}

// position returns the 1-based line and rune column of byte offset pos.
func (t *Tokenizer) position(pos int) (int, int) {
	i := sort.SearchInts(t.lineStart, pos+1) - 1
	return i + 1, utf8.RuneCount(t.src[t.lineStart[i]:pos]) + 1
}

func (t *Tokenizer) lexError(err error) error {
	var ui *machines.UnconsumedInput
	if errors.As(err, &ui) {
		r, _ := utf8.DecodeRune(t.src[ui.StartTC:])
		line, col := t.position(ui.StartTC)
		return &LexError{Char: r, Line: line, Column: col}
	}
	return err
}

// Tokenize returns all the tokens of src.
func Tokenize(src string, opts ...Option) ([]Token, error) {
	t, err := NewTokenizer(src, opts...)
	if err != nil {
		return nil, err
	}
	var tokens []Token
	for {
		token, err := t.Next()
		if err == io.EOF {
			return tokens, nil
		} else if err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}
}

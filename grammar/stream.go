package grammar

import (
	"fmt"

	"github.com/npillmayer/lumen/trace"
)

// cursor is a position within a shared token buffer. Comment tokens are
// invisible to the cursor.
type cursor struct {
	tokens []Token
	pos    int
	sink   trace.Sink
	rules  []string // active grammar rules, innermost last
}

func (c *cursor) skipComments() {
	for c.pos < len(c.tokens) && c.tokens[c.pos].Kind == COMMENT {
		c.pos++
	}
}

// peek returns the current token without consuming it.
func (c *cursor) peek() (Token, bool) {
	return c.peekAt(0)
}

// peekAt looks ahead n tokens from the current one.
func (c *cursor) peekAt(n int) (Token, bool) {
	c.skipComments()
	for i := c.pos; i < len(c.tokens); i++ {
		if c.tokens[i].Kind == COMMENT {
			continue
		}
		if n == 0 {
			return c.tokens[i], true
		}
		n--
	}
	return Token{}, false
}

func (c *cursor) at(kind TokType) bool {
	tok, ok := c.peek()
	return ok && tok.Kind == kind
}

func (c *cursor) atText(kind TokType, text string) bool {
	tok, ok := c.peek()
	return ok && tok.Is(kind, text)
}

// next consumes the current token, whatever it is.
func (c *cursor) next(expected string) (Token, error) {
	tok, ok := c.peek()
	if !ok {
		return tok, c.endOfInput(expected)
	}
	c.sink.Record(trace.Event{
		Category: trace.Consume,
		Rule:     c.rule(),
		Kind:     tok.Kind.String(),
		Value:    tok.Text,
		Pos:      c.pos,
		Line:     tok.Line,
		Column:   tok.Column,
	})
	c.pos++
	return tok, nil
}

// expect consumes a token of the given kind.
func (c *cursor) expect(kind TokType) (Token, error) {
	return c.expectText(kind, "")
}

// expectText consumes a token of the given kind and, if non-empty, text.
func (c *cursor) expectText(kind TokType, text string) (Token, error) {
	expected := kind.String()
	if text != "" {
		expected = fmt.Sprintf("'%s'", text)
	}
	tok, ok := c.peek()
	if !ok {
		return tok, c.endOfInput(expected)
	}
	if !tok.Is(kind, text) {
		return tok, c.unexpected(expected, tok)
	}
	return c.next(expected)
}

// accept consumes the current token if it is of the given kind and text.
func (c *cursor) accept(kind TokType, text string) bool {
	if c.atText(kind, text) {
		c.next("")
		return true
	}
	return false
}

func (c *cursor) enter(rule string) {
	c.rules = append(c.rules, rule)
	tok, _ := c.peek()
	c.sink.Record(trace.Event{
		Category: trace.Enter,
		Rule:     rule,
		Pos:      c.pos,
		Line:     tok.Line,
		Column:   tok.Column,
	})
}

func (c *cursor) exit(rule string, detail string) {
	if n := len(c.rules); n > 0 {
		c.rules = c.rules[:n-1]
	}
	c.sink.Record(trace.Event{
		Category: trace.Exit,
		Rule:     rule,
		Pos:      c.pos,
		Detail:   detail,
	})
}

func (c *cursor) rule() string {
	if n := len(c.rules); n > 0 {
		return c.rules[n-1]
	}
	return ""
}

func (c *cursor) unexpected(expected string, tok Token) error {
	found := tok
	return c.fail(&ParseError{
		Expected: expected,
		Found:    &found,
		Line:     tok.Line,
		Column:   tok.Column,
		Err:      ErrUnexpectedToken,
	})
}

func (c *cursor) endOfInput(expected string) error {
	e := &ParseError{Expected: expected, Err: ErrUnexpectedEnd}
	if n := len(c.tokens); n > 0 {
		e.Line, e.Column = c.tokens[n-1].Line, c.tokens[n-1].Column
	}
	return c.fail(e)
}

func (c *cursor) fail(err *ParseError) error {
	c.sink.Record(trace.Event{
		Category: trace.Error,
		Rule:     c.rule(),
		Pos:      c.pos,
		Line:     err.Line,
		Column:   err.Column,
		Detail:   err.Error(),
	})
	return err
}

// unquote strips the quotes of a string literal token.
func unquote(tok Token) string {
	if len(tok.Text) >= 2 && tok.Text[0] == '"' {
		return tok.Text[1 : len(tok.Text)-1]
	}
	return tok.Text
}

package grammar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/npillmayer/lumen/expr"
)

// CueParser parses a single cue definition.
//
//    cue        := "CUE" ( inline_body | named_body )
//    inline_body:= "{" block "}" "CUE" "END"
//    named_body := ID "START" block "CUE" "END"
//    block      := ( in_stmt | func_stmt | interval_stmt | class_block | NEWLINE )*
//
// A CueParser may start at an offset of a token buffer which it shares with
// a caller, see Consumed.
type CueParser struct {
	cursor
	start int
	depth int // number of rules entered by a calling parser
}

// NewCueParser creates a parser for a cue starting at the first token.
func NewCueParser(tokens []Token, opts ...Option) *CueParser {
	conf := makeConfig(opts)
	return &CueParser{cursor: cursor{tokens: tokens, sink: conf.sink}}
}

// subCueParser creates a parser for an inline cue starting at the current
// position of c.
func subCueParser(c *cursor) *CueParser {
	p := &CueParser{cursor: cursor{tokens: c.tokens, pos: c.pos, sink: c.sink}, start: c.pos}
	p.rules = append(p.rules, c.rules...)
	p.depth = len(p.rules)
	return p
}

// Consumed returns the number of tokens consumed by the last call of Parse.
func (p *CueParser) Consumed() int {
	return p.pos - p.start
}

// Parse parses a named cue, or an inline cue if inline is set.
// It stops after the closing "CUE END".
func (p *CueParser) Parse(inline bool) (*Cue, error) {
	p.pos, p.rules = p.start, p.rules[:p.depth]
	p.enter("cue")
	kw, err := p.expect(CUE)
	if err != nil {
		return nil, err
	}
	cue := &Cue{Inline: inline, Line: kw.Line, Column: kw.Column}
	if inline {
		if _, err = p.expect(LBRACE); err != nil {
			return nil, err
		}
	} else {
		name, err := p.expect(IDENT)
		if err != nil {
			return nil, err
		}
		cue.Name = name.Text
		if _, err = p.expect(START); err != nil {
			return nil, err
		}
	}
	if err = p.block(inline, &cue.Body); err != nil {
		return nil, err
	}
	if inline {
		if _, err = p.expect(RBRACE); err != nil {
			return nil, err
		}
	}
	if _, err = p.expect(CUE); err != nil {
		return nil, err
	}
	if _, err = p.expect(END); err != nil {
		return nil, err
	}
	p.exit("cue", cue.Name)
	return cue, nil
}

// block parses statements up to '}' (inline) or "CUE END".
func (p *CueParser) block(inline bool, body *CueBody) error {
	p.enter("block")
	funcs := linkedhashmap.New()
	for {
		tok, ok := p.peek()
		if !ok {
			break
		}
		if inline && tok.Kind == RBRACE {
			break
		}
		if tok.Kind == CUE {
			if la, ok := p.peekAt(1); ok && la.Kind == END {
				break
			}
		}
		var err error
		switch tok.Kind {
		case IN:
			body.In, err = p.in()
		case FUNC:
			var f FuncDef
			if f, err = p.funcDef(); err == nil {
				funcs.Put(f.Name, f)
			}
		case INTERVAL:
			body.Interval, err = p.intervalCount()
		case DIMMER, COLOR, STROBE:
			var cb *ClassBlock
			if cb, err = p.classBlock(tok.Kind); err == nil {
				switch tok.Kind {
				case DIMMER:
					body.Dimmer = cb
				case COLOR:
					body.Color = cb
				default:
					body.Strobe = cb
				}
			}
		case OTHERS:
			body.Others, err = p.othersBlock()
		case NEWLINE:
			_, err = p.next("")
		default:
			err = p.unexpected("cue statement", tok)
		}
		if err != nil {
			return err
		}
	}
	if funcs.Size() > 0 {
		body.Funcs = make([]FuncDef, 0, funcs.Size())
		for _, f := range funcs.Values() {
			body.Funcs = append(body.Funcs, f.(FuncDef))
		}
	}
	p.exit("block", "")
	return nil
}

// in_stmt := "IN" ID ("," ID)*
func (p *CueParser) in() ([]string, error) {
	p.enter("in")
	p.next("IN")
	var params []string
	for {
		id, err := p.expect(IDENT)
		if err != nil {
			return nil, err
		}
		params = append(params, id.Text)
		if !p.accept(COMMA, "") {
			break
		}
	}
	p.exit("in", strings.Join(params, ","))
	return params, nil
}

// func_stmt := "FUNC" ID "(" ID ")" "=" formula
//
// The formula extends up to the end of the line or to the next statement.
func (p *CueParser) funcDef() (FuncDef, error) {
	p.enter("func")
	var f FuncDef
	p.next("FUNC")
	name, err := p.expect(IDENT)
	if err != nil {
		return f, err
	}
	if _, err = p.expect(LPAREN); err != nil {
		return f, err
	}
	param, err := p.expect(IDENT)
	if err != nil {
		return f, err
	}
	if _, err = p.expect(RPAREN); err != nil {
		return f, err
	}
	eq, err := p.expectText(OP, "=")
	if err != nil {
		return f, err
	}
	var b strings.Builder
	for {
		tok, ok := p.peek()
		if !ok || endsFormula(tok.Kind) {
			break
		}
		p.next("")
		b.WriteString(tok.Text)
	}
	f.Name, f.Param, f.Source = name.Text, param.Text, b.String()
	if f.Fn, err = expr.Compile(f.Param, f.Source); err != nil {
		return f, p.formulaError(eq, err)
	}
	p.exit("func", fmt.Sprintf("%s: %s", f.Name, f.Fn.Program()))
	return f, nil
}

func endsFormula(t TokType) bool {
	switch t {
	case NEWLINE, RBRACE, DIMMER, COLOR, STROBE, OTHERS, IN, INTERVAL, CUE, FUNC:
		return true
	}
	return false
}

func (p *CueParser) formulaError(at Token, err error) error {
	var e *expr.Error
	if !errors.As(err, &e) {
		return err
	}
	return p.fail(&ParseError{Line: at.Line, Column: at.Column, Err: e})
}

// interval_stmt := "INTERVAL" NUMBER
func (p *CueParser) intervalCount() (int, error) {
	p.enter("interval")
	p.next("INTERVAL")
	n, err := p.integer()
	if err != nil {
		return 0, err
	}
	p.exit("interval", strconv.Itoa(n))
	return n, nil
}

// integer consumes a NUMBER token denoting an integer.
func (p *CueParser) integer() (int, error) {
	return integer(&p.cursor)
}

func integer(c *cursor) (int, error) {
	tok, err := c.expect(NUMBER)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(tok.Text)
	if err != nil {
		return 0, c.unexpected("integer", tok)
	}
	return n, nil
}

// class_block := ("DIMMER"|"COLOR"|"STROBE") "{" ( interval_range_block | NEWLINE )* "}"
func (p *CueParser) classBlock(kind TokType) (*ClassBlock, error) {
	class, _ := classOf(kind)
	p.enter(class.String())
	p.next(class.String())
	if _, err := p.expect(LBRACE); err != nil {
		return nil, err
	}
	intervals := linkedhashmap.New()
	for {
		tok, ok := p.peek()
		if !ok {
			return nil, p.endOfInput("'}'")
		}
		if tok.Kind == RBRACE {
			p.next("")
			break
		}
		switch tok.Kind {
		case NEWLINE:
			p.next("")
		case INTERVAL:
			ib, err := p.intervalBlock()
			if err != nil {
				return nil, err
			}
			intervals.Put(ib.Range.Key(), ib)
		default:
			return nil, p.unexpected("INTERVAL[..] block", tok)
		}
	}
	cb := &ClassBlock{Class: class}
	for _, ib := range intervals.Values() {
		cb.Intervals = append(cb.Intervals, ib.(IntervalBlock))
	}
	p.exit(class.String(), "")
	return cb, nil
}

// OTHERS blocks hold a single state line, e.g. OTHERS{bypass}. Interval
// blocks are accepted for symmetry with the other classes and dropped.
func (p *CueParser) othersBlock() (string, error) {
	p.enter("OTHERS")
	p.next("OTHERS")
	if _, err := p.expect(LBRACE); err != nil {
		return "", err
	}
	var state string
	haveState := false
	for {
		p.skipNewlines()
		tok, ok := p.peek()
		if !ok || tok.Kind == RBRACE {
			break
		}
		if tok.Kind == INTERVAL {
			if _, err := p.intervalBlock(); err != nil {
				return "", err
			}
			continue
		}
		if haveState {
			return "", p.unexpected("'}'", tok)
		}
		state, haveState = p.stateLine(), true
	}
	if _, err := p.expect(RBRACE); err != nil {
		return "", err
	}
	p.exit("OTHERS", state)
	return state, nil
}

// stateLine reads words up to the end of the line, a '}' or an interval block.
func (p *CueParser) stateLine() string {
	var words []string
	for {
		tok, ok := p.peek()
		if !ok || tok.Kind == NEWLINE || tok.Kind == RBRACE || tok.Kind == INTERVAL {
			break
		}
		p.next("")
		words = append(words, tok.Text)
	}
	return strings.Join(words, " ")
}

func (p *CueParser) skipNewlines() {
	for p.accept(NEWLINE, "") {
	}
}

// interval_range_block := "INTERVAL" "[" NUMBER ("-" NUMBER)? "]" "{" command_line* "}"
func (p *CueParser) intervalBlock() (IntervalBlock, error) {
	p.enter("interval_block")
	var ib IntervalBlock
	p.next("INTERVAL")
	if _, err := p.expect(LSQUARE); err != nil {
		return ib, err
	}
	var err error
	if ib.Range.Start, err = p.integer(); err != nil {
		return ib, err
	}
	ib.Range.End = ib.Range.Start
	if p.accept(OP, "-") {
		if ib.Range.End, err = p.integer(); err != nil {
			return ib, err
		}
	}
	if _, err = p.expect(RSQUARE); err != nil {
		return ib, err
	}
	if _, err = p.expect(LBRACE); err != nil {
		return ib, err
	}
	for {
		tok, ok := p.peek()
		if !ok {
			return ib, p.endOfInput("'}'")
		}
		if tok.Kind == RBRACE {
			p.next("")
			break
		}
		if tok.Kind == NEWLINE {
			p.next("")
			continue
		}
		ib.Commands = append(ib.Commands, p.commandLine())
	}
	p.exit("interval_block", ib.Range.Key())
	return ib, nil
}

// commandLine collects tokens up to, not including, the next NEWLINE or
// '}'. Commas are dropped.
func (p *CueParser) commandLine() Command {
	var cmd Command
	var items []string
	for {
		tok, ok := p.peek()
		if !ok || tok.Kind == NEWLINE || tok.Kind == RBRACE {
			break
		}
		p.next("")
		if len(items) == 0 && cmd.Line == 0 {
			cmd.Line, cmd.Column = tok.Line, tok.Column
		}
		if tok.Kind != COMMA {
			items = append(items, tok.Text)
		}
	}
	cmd.Text = strings.Join(items, " ")
	return cmd
}

package grammar

import (
	"strconv"
	"strings"
)

// ShowParser parses a show script:
//
//    script := ( "SETTING" STRING | "PLAYBACK" STRING | show )*
//    show   := "SHOW" NUMBER "START" ( cue_call | wait )* "SHOW" "END"
//    cue_call := "CUE" ID params? "CUE" "END" | inline cue
//    params := "(" ( param ("," param)* )? ")"
//    param  := value | path "=" value
//    value  := path | NUMBER | STRING
//    path   := ID ("." ID)*
//    wait   := "WAIT" NUMBER ID?
//
// Inline cues are parsed by a CueParser operating on the same tokens.
type ShowParser struct {
	cursor
}

// NewShowParser creates a parser for a show script.
func NewShowParser(tokens []Token, opts ...Option) *ShowParser {
	conf := makeConfig(opts)
	return &ShowParser{cursor: cursor{tokens: tokens, sink: conf.sink}}
}

// Parse parses all of the tokens. SETTING and PLAYBACK may be repeated,
// the last one wins.
func (p *ShowParser) Parse() (*Script, error) {
	p.pos, p.rules = 0, nil
	p.enter("script")
	script := &Script{}
	for {
		tok, ok := p.peek()
		if !ok {
			break
		}
		var err error
		switch tok.Kind {
		case SETTING, PLAYBACK:
			p.next(tok.Kind.String())
			var s Token
			if s, err = p.expect(STRING); err == nil {
				if tok.Kind == SETTING {
					script.Setting = unquote(s)
				} else {
					script.Playback = unquote(s)
				}
			}
		case SHOW:
			var show *Show
			if show, err = p.show(); err == nil {
				script.Shows = append(script.Shows, show)
			}
		case NEWLINE:
			p.next("")
		default:
			err = p.unexpected("SETTING, PLAYBACK or SHOW", tok)
		}
		if err != nil {
			return nil, err
		}
	}
	p.exit("script", "")
	return script, nil
}

func (p *ShowParser) show() (*Show, error) {
	p.enter("show")
	p.next("SHOW")
	n, err := integer(&p.cursor)
	if err != nil {
		return nil, err
	}
	show := &Show{Number: n}
	if _, err = p.expect(START); err != nil {
		return nil, err
	}
	for {
		tok, ok := p.peek()
		if !ok {
			break
		}
		if tok.Kind == SHOW {
			if la, ok := p.peekAt(1); ok && la.Kind == END {
				break
			}
		}
		var step Step
		switch tok.Kind {
		case CUE:
			step, err = p.cueCall()
		case WAIT:
			step, err = p.wait()
		case NEWLINE:
			p.next("")
			continue
		default:
			err = p.unexpected("CUE or WAIT", tok)
		}
		if err != nil {
			return nil, err
		}
		show.Steps = append(show.Steps, step)
	}
	if _, err = p.expect(SHOW); err != nil {
		return nil, err
	}
	if _, err = p.expect(END); err != nil {
		return nil, err
	}
	p.exit("show", strconv.Itoa(show.Number))
	return show, nil
}

func (p *ShowParser) cueCall() (Step, error) {
	if la, ok := p.peekAt(1); ok && la.Kind == LBRACE {
		sub := subCueParser(&p.cursor)
		cue, err := sub.Parse(true)
		if err != nil {
			return nil, err
		}
		p.pos += sub.Consumed()
		return &InlineCue{Cue: cue}, nil
	}
	p.enter("cue_call")
	kw, _ := p.next("CUE")
	name, err := p.expect(IDENT)
	if err != nil {
		return nil, err
	}
	call := &CueCall{Name: name.Text, Line: kw.Line, Column: kw.Column}
	if p.at(LPAREN) {
		if call.Params, err = p.params(); err != nil {
			return nil, err
		}
	}
	if _, err = p.expect(CUE); err != nil {
		return nil, err
	}
	if _, err = p.expect(END); err != nil {
		return nil, err
	}
	p.exit("cue_call", call.Name)
	return call, nil
}

func (p *ShowParser) params() ([]Param, error) {
	p.next("'('")
	params := []Param{}
	if p.accept(RPAREN, "") {
		return params, nil
	}
	for {
		tok, ok := p.peek()
		if !ok {
			return nil, p.endOfInput("parameter")
		}
		var param Param
		var err error
		switch tok.Kind {
		case IDENT:
			path, err := p.path()
			if err != nil {
				return nil, err
			}
			if p.accept(OP, "=") {
				param, err = p.value()
				if err != nil {
					return nil, err
				}
				param.Key = path
			} else {
				param = Param{Value: path, Kind: PathParam}
			}
		case NUMBER, STRING:
			param, err = p.value()
		default:
			err = p.unexpected("parameter", tok)
		}
		if err != nil {
			return nil, err
		}
		params = append(params, param)
		if !p.accept(COMMA, "") {
			break
		}
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *ShowParser) value() (Param, error) {
	tok, ok := p.peek()
	if !ok {
		return Param{}, p.endOfInput("parameter value")
	}
	switch tok.Kind {
	case IDENT:
		path, err := p.path()
		return Param{Value: path, Kind: PathParam}, err
	case NUMBER:
		p.next("")
		return Param{Value: tok.Text, Kind: NumberParam}, nil
	case STRING:
		p.next("")
		return Param{Value: unquote(tok), Kind: StringParam}, nil
	}
	return Param{}, p.unexpected("parameter value", tok)
}

// path parses identifiers joined by dots, e.g. LIGHT.L, into a single string.
func (p *ShowParser) path() (string, error) {
	id, err := p.expect(IDENT)
	if err != nil {
		return "", err
	}
	parts := []string{id.Text}
	for p.accept(DOT, "") {
		if id, err = p.expect(IDENT); err != nil {
			return "", err
		}
		parts = append(parts, id.Text)
	}
	return strings.Join(parts, "."), nil
}

func (p *ShowParser) wait() (*Wait, error) {
	p.enter("wait")
	p.next("WAIT")
	tok, err := p.expect(NUMBER)
	if err != nil {
		return nil, err
	}
	w := &Wait{Unit: "ms"}
	if w.Duration, err = strconv.ParseFloat(tok.Text, 64); err != nil {
		return nil, p.unexpected("number", tok)
	}
	if unit, ok := p.peek(); ok && unit.Kind == IDENT {
		p.next("")
		w.Unit = unit.Text
	}
	p.exit("wait", strconv.FormatFloat(w.Duration, 'g', -1, 64)+" "+w.Unit)
	return w, nil
}

package grammar

import (
	"strconv"
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// SettingParser parses a fixture configuration. Statements may appear in
// any order and may be repeated:
//
//    setting := ( libs | fixture | patch | group )*
//    libs    := "LIBS" "[" STRING ("," STRING)* "]"
//    fixture := "FIXTURE" ID NUMBER aliases?
//    patch   := "PATCH" "{" ( universe ","? )* "}"
//    group   := "GROUP" ( "<" ID ("," ID)* ">" )? ID aliases?
//    aliases := "[" STRING ("," STRING)* "]"
type SettingParser struct {
	cursor
}

// NewSettingParser creates a parser for a setting.
func NewSettingParser(tokens []Token, opts ...Option) *SettingParser {
	conf := makeConfig(opts)
	return &SettingParser{cursor: cursor{tokens: tokens, sink: conf.sink}}
}

// Parse parses all of the tokens.
func (p *SettingParser) Parse() (*Setting, error) {
	p.pos, p.rules = 0, nil
	p.enter("setting")
	s := &Setting{}
	for {
		tok, ok := p.peek()
		if !ok {
			break
		}
		switch tok.Kind {
		case LIBS:
			libs, err := p.libs()
			if err != nil {
				return nil, err
			}
			s.Libs = append(s.Libs, libs...)
		case FIXTURE:
			f, err := p.fixture()
			if err != nil {
				return nil, err
			}
			s.Fixtures = append(s.Fixtures, f)
		case PATCH:
			patches, err := p.patch()
			if err != nil {
				return nil, err
			}
			s.Patches = append(s.Patches, patches...)
		case GROUP:
			g, err := p.group()
			if err != nil {
				return nil, err
			}
			s.Groups = append(s.Groups, g)
		case NEWLINE:
			p.next("")
		default:
			return nil, p.unexpected("LIBS, FIXTURE, PATCH or GROUP", tok)
		}
	}
	p.exit("setting", "")
	return s, nil
}

func (p *SettingParser) libs() ([]string, error) {
	p.enter("libs")
	p.next("LIBS")
	libs, err := p.stringList()
	if err != nil {
		return nil, err
	}
	p.exit("libs", strings.Join(libs, ","))
	return libs, nil
}

// stringList parses "[" STRING ("," STRING)* "]".
func (p *SettingParser) stringList() ([]string, error) {
	if _, err := p.expect(LSQUARE); err != nil {
		return nil, err
	}
	var list []string
	for {
		s, err := p.expect(STRING)
		if err != nil {
			return nil, err
		}
		list = append(list, unquote(s))
		if !p.accept(COMMA, "") {
			break
		}
	}
	if _, err := p.expect(RSQUARE); err != nil {
		return nil, err
	}
	return list, nil
}

func (p *SettingParser) fixture() (Fixture, error) {
	p.enter("fixture")
	var f Fixture
	p.next("FIXTURE")
	typ, err := p.expect(IDENT)
	if err != nil {
		return f, err
	}
	f.Type = typ.Text
	if f.Number, err = integer(&p.cursor); err != nil {
		return f, err
	}
	if p.at(LSQUARE) {
		if f.Aliases, err = p.stringList(); err != nil {
			return f, err
		}
	}
	p.exit("fixture", f.Type)
	return f, nil
}

// patch parses a list of universe records:
//
//    { "UNIVERSE": STRING, "PATCHES": { STRING: NUMBER ,? ... } }
//
// The keys "UNIVERSE" and "PATCHES" are string literals.
func (p *SettingParser) patch() ([]Patch, error) {
	p.enter("patch")
	p.next("PATCH")
	if _, err := p.expect(LBRACE); err != nil {
		return nil, err
	}
	var patches []Patch
	for p.at(LBRACE) {
		patch, err := p.universe()
		if err != nil {
			return nil, err
		}
		patches = append(patches, patch)
		p.accept(COMMA, "")
	}
	if _, err := p.expect(RBRACE); err != nil {
		return nil, err
	}
	p.exit("patch", strconv.Itoa(len(patches)))
	return patches, nil
}

func (p *SettingParser) universe() (Patch, error) {
	var patch Patch
	p.next("'{'")
	if err := p.key("UNIVERSE"); err != nil {
		return patch, err
	}
	u, err := p.expect(STRING)
	if err != nil {
		return patch, err
	}
	patch.Universe = unquote(u)
	if _, err = p.expect(COMMA); err != nil {
		return patch, err
	}
	if err = p.key("PATCHES"); err != nil {
		return patch, err
	}
	if _, err = p.expect(LBRACE); err != nil {
		return patch, err
	}
	entries := linkedhashmap.New()
	for p.at(STRING) {
		alias, _ := p.next("")
		if _, err = p.expect(COLON); err != nil {
			return patch, err
		}
		addr, err := integer(&p.cursor)
		if err != nil {
			return patch, err
		}
		p.accept(COMMA, "")
		entries.Put(unquote(alias), addr)
	}
	it := entries.Iterator()
	for it.Next() {
		patch.Entries = append(patch.Entries, PatchEntry{Alias: it.Key().(string), Address: it.Value().(int)})
	}
	if _, err = p.expect(RBRACE); err != nil {
		return patch, err
	}
	if _, err = p.expect(RBRACE); err != nil {
		return patch, err
	}
	return patch, nil
}

// key consumes a string literal with the given content, followed by a colon.
func (p *SettingParser) key(name string) error {
	expected := strconv.Quote(name)
	tok, ok := p.peek()
	if !ok {
		return p.endOfInput(expected)
	}
	if tok.Kind != STRING || unquote(tok) != name {
		return p.unexpected(expected, tok)
	}
	p.next(expected)
	_, err := p.expect(COLON)
	return err
}

func (p *SettingParser) group() (Group, error) {
	p.enter("group")
	var g Group
	p.next("GROUP")
	if p.accept(OP, "<") {
		for {
			t, err := p.expect(IDENT)
			if err != nil {
				return g, err
			}
			g.Types = append(g.Types, t.Text)
			if !p.accept(COMMA, "") {
				break
			}
		}
		if _, err := p.expectText(OP, ">"); err != nil {
			return g, err
		}
	}
	name, err := p.expect(IDENT)
	if err != nil {
		return g, err
	}
	g.Name = name.Text
	if p.at(LSQUARE) {
		if g.Aliases, err = p.stringList(); err != nil {
			return g, err
		}
	}
	p.exit("group", g.Name)
	return g, nil
}

package expr

import (
	"fmt"
	"math"
	"strconv"

	"github.com/npillmayer/lumen/vm"
)

// aliases of builtin function names
var aliases = map[string]string{
	"abs": "Abs",
}

// Function is a compiled formula of one variable.
type Function struct {
	Variable string // name of the free variable
	Source   string // formula text
	program  *vm.Program
}

// Eval evaluates the function at x.
func (f *Function) Eval(x float64) float64 {
	return f.program.Run(x)
}

// Func returns f as a Go function value.
func (f *Function) Func() func(float64) float64 {
	return f.program.Run
}

// Program returns the compiled stack machine program.
func (f *Function) Program() *vm.Program {
	return f.program
}

func (f *Function) String() string {
	return fmt.Sprintf("%s ↦ %s", f.Variable, f.Source)
}

// Compile compiles formula as a function of variable.
// Errors are of type *Error.
func Compile(variable, formula string) (*Function, error) {
	tokens, err := scan(formula)
	if err != nil {
		return nil, err
	}
	c := &compiler{variable: variable, formula: formula, tokens: tokens}
	if err = c.expression(); err != nil {
		return nil, err
	}
	if tok := c.peek(); tok.kind != tokEOF {
		return nil, c.errorf(tok, ErrSyntax, "unexpected %s", describe(tok))
	}
	prog, err := vm.NewProgram(c.ops)
	if err != nil {
		return nil, &Error{Formula: formula, Detail: err.Error(), Err: ErrSyntax}
	}
	return &Function{Variable: variable, Source: formula, program: prog}, nil
}

// compiler is a recursive descent parser emitting postfix code.
//
//    expression := term { ('+'|'-') term }
//    term       := unary { ('*'|'/') unary }
//    unary      := ('+'|'-') unary | power
//    power      := primary [ '**' unary ]
//    primary    := number | name | name '(' expression { ',' expression } ')'
//                | '(' expression ')'
type compiler struct {
	variable string
	formula  string
	tokens   []token
	pos      int
	ops      []vm.Op
}

func (c *compiler) peek() token {
	return c.tokens[c.pos]
}

func (c *compiler) next() token {
	tok := c.tokens[c.pos]
	if tok.kind != tokEOF {
		c.pos++
	}
	return tok
}

func (c *compiler) expect(kind tokType) (token, error) {
	tok := c.next()
	if tok.kind != kind {
		return tok, c.errorf(tok, ErrSyntax, "expected %s, found %s", kind, describe(tok))
	}
	return tok, nil
}

func (c *compiler) emit(op vm.Op) {
	c.ops = append(c.ops, op)
}

func (c *compiler) expression() error {
	if err := c.term(); err != nil {
		return err
	}
	for {
		var code vm.OpCode
		switch c.peek().kind {
		case tokPlus:
			code = vm.OpAdd
		case tokMinus:
			code = vm.OpSub
		default:
			return nil
		}
		c.next()
		if err := c.term(); err != nil {
			return err
		}
		c.emit(vm.Op{Code: code})
	}
}

func (c *compiler) term() error {
	if err := c.unary(); err != nil {
		return err
	}
	for {
		var code vm.OpCode
		switch c.peek().kind {
		case tokStar:
			code = vm.OpMul
		case tokSlash:
			code = vm.OpDiv
		default:
			return nil
		}
		c.next()
		if err := c.unary(); err != nil {
			return err
		}
		c.emit(vm.Op{Code: code})
	}
}

func (c *compiler) unary() error {
	switch c.peek().kind {
	case tokPlus:
		c.next()
		return c.unary()
	case tokMinus:
		c.next()
		if err := c.unary(); err != nil {
			return err
		}
		c.emit(vm.Op{Code: vm.OpNeg})
		return nil
	}
	return c.power()
}

func (c *compiler) power() error {
	if err := c.primary(); err != nil {
		return err
	}
	if c.peek().kind == tokPow {
		c.next()
		if err := c.unary(); err != nil {
			return err
		}
		c.emit(vm.Op{Code: vm.OpPow})
	}
	return nil
}

func (c *compiler) primary() error {
	tok := c.next()
	switch tok.kind {
	case tokNumber:
		f, err := strconv.ParseFloat(tok.text, 64)
		if err != nil {
			return c.errorf(tok, ErrSyntax, "malformed number %s", tok.text)
		}
		c.emit(vm.Op{Code: vm.OpConst, F: f})
		return nil
	case tokLParen:
		if err := c.expression(); err != nil {
			return err
		}
		_, err := c.expect(tokRParen)
		return err
	case tokIdent:
		return c.name(tok)
	}
	return c.errorf(tok, ErrSyntax, "unexpected %s", describe(tok))
}

func (c *compiler) name(tok token) error {
	if c.peek().kind == tokLParen {
		return c.call(tok)
	}
	switch tok.text {
	case c.variable:
		c.emit(vm.Op{Code: vm.OpArg})
	case "pi":
		c.emit(vm.Op{Code: vm.OpConst, F: math.Pi})
	default:
		return c.errorf(tok, ErrUnknownName, "%s", tok.text)
	}
	return nil
}

func (c *compiler) call(tok token) error {
	name := tok.text
	if a, ok := aliases[name]; ok {
		name = a
	}
	fn, ok := vm.Builtins[name]
	if !ok {
		return c.errorf(tok, ErrUnknownName, "function %s", tok.text)
	}
	c.next() // '('
	n := 0
	if c.peek().kind != tokRParen {
		for {
			if err := c.expression(); err != nil {
				return err
			}
			n++
			if c.peek().kind != tokComma {
				break
			}
			c.next()
		}
	}
	if _, err := c.expect(tokRParen); err != nil {
		return err
	}
	if !fn.Accepts(n) {
		return c.errorf(tok, ErrArity, "%s called with %d argument(s)", tok.text, n)
	}
	c.emit(vm.Op{Code: vm.OpCall, Fn: fn, N: n})
	return nil
}

func (c *compiler) errorf(tok token, err error, format string, args ...interface{}) error {
	e := &Error{
		Formula: c.formula,
		Pos:     tok.pos,
		Detail:  fmt.Sprintf(format, args...),
		Err:     err,
	}
	return e
}

func describe(tok token) string {
	if tok.kind == tokEOF {
		return tok.kind.String()
	}
	return fmt.Sprintf("%s %q", tok.kind, tok.text)
}

package vm

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrEmptyProgram flags a program without instructions.
var ErrEmptyProgram error = errors.New("no program to execute")

// Program is a compiled formula of one argument.
type Program struct {
	ops   []Op
	depth int // maximum stack depth needed
}

// NewProgram checks a sequence of ops and wraps it into a Program.
// The ops must leave exactly one value on the stack and must never pop
// from an empty stack.
func NewProgram(ops []Op) (*Program, error) {
	if len(ops) == 0 {
		return nil, ErrEmptyProgram
	}
	depth, max := 0, 0
	for i, op := range ops {
		switch op.Code {
		case OpAdd, OpSub, OpMul, OpDiv, OpPow:
			if depth < 2 {
				return nil, fmt.Errorf("op #%d %s: stack underflow", i, op)
			}
		case OpNeg:
			if depth < 1 {
				return nil, fmt.Errorf("op #%d %s: stack underflow", i, op)
			}
		case OpCall:
			if op.Fn == nil || !op.Fn.Accepts(op.N) {
				return nil, fmt.Errorf("op #%d: invalid call", i)
			}
			if depth < op.N {
				return nil, fmt.Errorf("op #%d %s: stack underflow", i, op)
			}
		case OpConst, OpArg, OpNop:
		default:
			return nil, fmt.Errorf("op #%d: unknown opcode %d", i, op.Code)
		}
		depth += op.effect()
		if depth > max {
			max = depth
		}
	}
	if depth != 1 {
		return nil, fmt.Errorf("program leaves %d values on the stack", depth)
	}
	p := &Program{ops: make([]Op, len(ops)), depth: max}
	copy(p.ops, ops)
	return p, nil
}

// Run executes the program for argument x.
func (p *Program) Run(x float64) float64 {
	stack := make([]float64, 0, p.depth)
	for _, op := range p.ops {
		n := len(stack)
		switch op.Code {
		case OpConst:
			stack = append(stack, op.F)
		case OpArg:
			stack = append(stack, x)
		case OpAdd:
			stack[n-2] += stack[n-1]
			stack = stack[:n-1]
		case OpSub:
			stack[n-2] -= stack[n-1]
			stack = stack[:n-1]
		case OpMul:
			stack[n-2] *= stack[n-1]
			stack = stack[:n-1]
		case OpDiv:
			stack[n-2] /= stack[n-1]
			stack = stack[:n-1]
		case OpPow:
			stack[n-2] = math.Pow(stack[n-2], stack[n-1])
			stack = stack[:n-1]
		case OpNeg:
			stack[n-1] = -stack[n-1]
		case OpCall:
			args := make([]float64, op.N)
			copy(args, stack[n-op.N:])
			stack = append(stack[:n-op.N], op.Fn.Fn(args))
		}
	}
	return stack[0]
}

// String lists the program's instructions, separated by semicolons.
func (p *Program) String() string {
	var b strings.Builder
	for i, op := range p.ops {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(op.String())
	}
	return b.String()
}

package vm

import "fmt"

// OpCode is the operation part of an Op.
type OpCode uint16

//go:generate stringer -type OpCode
const (
	OpNop OpCode = iota

	OpConst // CONST ⟪f64⟫ : push a float constant onto the stack
	OpArg   // ARG : push the program's argument onto the stack
	OpAdd   // ADD : pop b, a; push a+b
	OpSub   // SUB : pop b, a; push a-b
	OpMul   // MUL : pop b, a; push a*b
	OpDiv   // DIV : pop b, a; push a/b
	OpPow   // POW : pop b, a; push a**b
	OpNeg   // NEG : pop a; push -a
	OpCall  // CALL ⟪builtin⟫ ⟪n⟫ : pop n arguments, push builtin(args)
)

var opNames = [...]string{
	OpNop:   "NOP",
	OpConst: "CONST",
	OpArg:   "ARG",
	OpAdd:   "ADD",
	OpSub:   "SUB",
	OpMul:   "MUL",
	OpDiv:   "DIV",
	OpPow:   "POW",
	OpNeg:   "NEG",
	OpCall:  "CALL",
}

func (c OpCode) String() string {
	if int(c) < len(opNames) {
		return opNames[c]
	}
	return fmt.Sprintf("OpCode(%d)", int(c))
}

// Op is a single instruction. F is the argument of OpConst, Fn and N are
// the arguments of OpCall.
type Op struct {
	Code OpCode
	F    float64
	Fn   *Builtin
	N    int
}

func (op Op) String() string {
	switch op.Code {
	case OpConst:
		return fmt.Sprintf("%s %g", op.Code, op.F)
	case OpCall:
		return fmt.Sprintf("%s %s/%d", op.Code, op.Fn.Name, op.N)
	}
	return op.Code.String()
}

// effect returns the net change of stack depth caused by op.
func (op Op) effect() int {
	switch op.Code {
	case OpConst, OpArg:
		return 1
	case OpAdd, OpSub, OpMul, OpDiv, OpPow:
		return -1
	case OpCall:
		return 1 - op.N
	}
	return 0
}

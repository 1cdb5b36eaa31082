package vm

import "math"

// Builtin is a numeric function callable from a Program.
// MaxArgs < 0 means the function is variadic.
type Builtin struct {
	Name    string
	MinArgs int
	MaxArgs int
	Fn      func(args []float64) float64
}

// Accepts checks if the builtin may be called with n arguments.
func (b *Builtin) Accepts(n int) bool {
	return n >= b.MinArgs && (b.MaxArgs < 0 || n <= b.MaxArgs)
}

func unary(name string, f func(float64) float64) *Builtin {
	return &Builtin{
		Name:    name,
		MinArgs: 1,
		MaxArgs: 1,
		Fn:      func(args []float64) float64 { return f(args[0]) },
	}
}

// Builtins is the table of functions a formula may call.
// Names are case-sensitive.
var Builtins = map[string]*Builtin{
	"sin":  unary("sin", math.Sin),
	"cos":  unary("cos", math.Cos),
	"tan":  unary("tan", math.Tan),
	"exp":  unary("exp", math.Exp),
	"sqrt": unary("sqrt", math.Sqrt),
	"Abs":  unary("Abs", math.Abs),
	"log": {
		Name:    "log",
		MinArgs: 1,
		MaxArgs: 2,
		Fn: func(args []float64) float64 {
			if len(args) == 2 {
				return math.Log(args[0]) / math.Log(args[1])
			}
			return math.Log(args[0])
		},
	},
	"Max": {
		Name:    "Max",
		MinArgs: 1,
		MaxArgs: -1,
		Fn: func(args []float64) float64 {
			m := args[0]
			for _, a := range args[1:] {
				m = math.Max(m, a)
			}
			return m
		},
	},
	"Min": {
		Name:    "Min",
		MinArgs: 1,
		MaxArgs: -1,
		Fn: func(args []float64) float64 {
			m := args[0]
			for _, a := range args[1:] {
				m = math.Min(m, a)
			}
			return m
		},
	},
}

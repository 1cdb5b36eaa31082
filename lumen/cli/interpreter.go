package cli

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/npillmayer/lumen"
	"github.com/npillmayer/lumen/expr"
	"github.com/npillmayer/lumen/grammar"
	"github.com/npillmayer/lumen/lumen/ui/termui"
)

var errUnknownStatement = errors.New("unknown statement")

// interpreter evaluates REPL statements. Functions defined with 'func'
// live for the session.
type interpreter struct {
	*termui.BaseREPL
	funcs     map[string]*expr.Function
	formatter termui.Formatter
}

func newInterpreter() *interpreter {
	return &interpreter{
		funcs:     make(map[string]*expr.Function),
		formatter: Formatter{},
	}
}

// InterpretCommand is called by the REPL for every statement line.
func (intp *interpreter) InterpretCommand(line string) {
	line = strings.Trim(line, "\x00")
	stdout, stderr := intp.Outputs()
	result, err := intp.eval(line)
	if err != nil {
		fmt.Fprintf(stderr, "interpreter error: %s\n", err.Error())
		return
	}
	if ok, err := intp.formatter.Format(result, stdout); !ok {
		tracer().Errorf("cannot display result: %v", err)
	}
}

func (intp *interpreter) eval(line string) (interface{}, error) {
	line = strings.TrimSpace(line)
	word, rest := line, ""
	if i := strings.IndexAny(line, " \t"); i > 0 {
		word, rest = line[:i], strings.TrimSpace(line[i+1:])
	}
	switch strings.ToLower(word) {
	case "tokens":
		return grammar.Tokenize(rest, options()...)
	case "parse":
		return lumen.Parse(rest, options()...)
	case "func":
		return intp.define(line)
	case "funcs":
		return intp.listFuncs(), nil
	case "wait":
		return waitMilliseconds(strings.Fields(rest))
	}
	return intp.call(line)
}

// define compiles a function definition by wrapping it into a cue.
func (intp *interpreter) define(line string) (*expr.Function, error) {
	cue, err := grammar.ParseCue("CUE repl START "+line+" CUE END", options()...)
	if err != nil {
		return nil, err
	}
	if len(cue.Body.Funcs) == 0 {
		return nil, errUnknownStatement
	}
	fd := cue.Body.Funcs[0]
	intp.funcs[fd.Name] = fd.Fn
	return fd.Fn, nil
}

func (intp *interpreter) listFuncs() table.Writer {
	names := make([]string, 0, len(intp.funcs))
	for name := range intp.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	tw := newTable("Functions")
	tw.AppendHeader(table.Row{"Name", "Variable", "Formula", "Code"})
	for _, name := range names {
		fn := intp.funcs[name]
		tw.AppendRow(table.Row{name, fn.Variable, fn.Source, fn.Program().String()})
	}
	return tw
}

// call evaluates 'name(number)' for a stored function.
func (intp *interpreter) call(line string) (float64, error) {
	tokens, err := grammar.Tokenize(line)
	if err != nil {
		return 0, err
	}
	neg := len(tokens) == 5 && tokens[2].Is(grammar.OP, "-")
	if neg {
		tokens = append(tokens[:2], tokens[3:]...)
	}
	if len(tokens) != 4 || tokens[0].Kind != grammar.IDENT || tokens[1].Kind != grammar.LPAREN ||
		tokens[2].Kind != grammar.NUMBER || tokens[3].Kind != grammar.RPAREN {
		return 0, errUnknownStatement
	}
	fn, ok := intp.funcs[tokens[0].Text]
	if !ok {
		return 0, fmt.Errorf("function %q is not defined", tokens[0].Text)
	}
	x, err := strconv.ParseFloat(tokens[2].Text, 64)
	if err != nil {
		return 0, err
	}
	if neg {
		x = -x
	}
	return fn.Eval(x), nil
}

// waitMilliseconds converts 'DURATION [UNIT] [bpm N]' to milliseconds.
func waitMilliseconds(args []string) (string, error) {
	if len(args) == 0 {
		return "", errors.New("wait needs a duration")
	}
	w := grammar.Wait{Unit: "ms"}
	var err error
	if w.Duration, err = strconv.ParseFloat(args[0], 64); err != nil {
		return "", fmt.Errorf("duration %q is not a number", args[0])
	}
	args = args[1:]
	if len(args) > 0 && args[0] != "bpm" {
		w.Unit, args = args[0], args[1:]
	}
	bpm := 0.0
	if len(args) == 2 && args[0] == "bpm" {
		if bpm, err = strconv.ParseFloat(args[1], 64); err != nil {
			return "", fmt.Errorf("tempo %q is not a number", args[1])
		}
	} else if len(args) > 0 {
		return "", errUnknownStatement
	}
	ms, err := w.Milliseconds(bpm)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%g %s = %g ms", w.Duration, w.Unit, ms), nil
}

package termui

// Utilities for interactive command line interfaces.
//
// License
//
// Governed by a 3-Clause BSD license. License file may be found in the root
// folder of this module.
//
// Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/chzyer/readline"
	prtxt "github.com/jedib0t/go-pretty/v6/text"
)

var welcomeMessage = "Welcome to %s [V%s]\n"
var stdprompt = prtxt.FgGreen.Sprint("%s> ")

// REPLCommandInterpreter is implemented by interpreters driven by a BaseREPL.
// Every line which is not an administrative command is handed to
// InterpretCommand.
type REPLCommandInterpreter interface {
	InterpretCommand(string)
}

// BaseREPL reads lines from a terminal and dispatches them either to
// administrative commands or to an interpreter.
// Concrete REPL implementations will usually embed it.
type BaseREPL struct {
	Interpreter REPLCommandInterpreter // the interpreter this REPL runs for
	Helper      func(io.Writer)        // print out help information on statements
	rl          *readline.Instance     // nil if not attached to a terminal
	stdout      io.Writer
	stderr      io.Writer
	toolname    string
	version     string
	editmode    string
	admin       map[string]adminCommand
}

// adminCommand executes an administrative command. args[0] is the command
// itself. If it returns true, the REPL terminates.
type adminCommand struct {
	usage string
	run   func(repl *BaseREPL, args []string, line string) bool
}

var adminCommands = map[string]adminCommand{
	"help":      {"print this message", (*BaseREPL).help},
	"bye":       {"quit the REPL", (*BaseREPL).bye},
	"mode":      {"[vi|emacs] display or set the editing mode", (*BaseREPL).mode},
	"setprompt": {"[prompt] set the prompt [to default]", (*BaseREPL).setPrompt},
}

// NewBaseREPL creates a REPL for an interpreter tool and a given version.
// Input history is kept in histfile, if not empty.
func NewBaseREPL(toolname, version, histfile string) (*BaseREPL, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:              fmt.Sprintf(stdprompt, toolname),
		HistoryFile:         histfile,
		AutoComplete:        replCompleter,
		InterruptPrompt:     "^C",
		EOFPrompt:           "exit",
		HistorySearchFold:   true,
		FuncFilterInputRune: filterReplInput,
	})
	if err != nil {
		return nil, err
	}
	repl := newREPL(toolname, version, rl.Stdout(), rl.Stderr())
	repl.rl = rl
	return repl, nil
}

func newREPL(toolname, version string, stdout, stderr io.Writer) *BaseREPL {
	return &BaseREPL{
		stdout:   stdout,
		stderr:   stderr,
		toolname: toolname,
		version:  version,
		editmode: "emacs",
		admin:    adminCommands,
	}
}

// Completer-tree for administrative commands and lumen statements
var replCompleter = readline.NewPrefixCompleter(
	readline.PcItem("tokens"),
	readline.PcItem("parse"),
	readline.PcItem("func"),
	readline.PcItem("funcs"),
	readline.PcItem("wait"),
	readline.PcItem("help"),
	readline.PcItem("bye"),
	readline.PcItem("mode",
		readline.PcItem("vi"),
		readline.PcItem("emacs"),
	),
	readline.PcItem("setprompt"),
)

// Outputs returns stdout and stderr of this REPL.
func (repl *BaseREPL) Outputs() (io.Writer, io.Writer) {
	return repl.stdout, repl.stderr
}

// Prompt reads and executes lines until the user says 'bye', input ends
// or ctx is cancelled.
func (repl *BaseREPL) Prompt(ctx context.Context) {
	defer repl.rl.Close()
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			repl.rl.Close() // unblocks Readline
		case <-stop:
		}
	}()
	fmt.Fprintf(repl.stderr, welcomeMessage, repl.toolname, repl.version)
	for ctx.Err() == nil {
		line, err := repl.rl.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err != nil {
			break
		}
		if repl.execute(line) {
			break
		}
	}
}

// execute dispatches a line either to an administrative command or to the
// interpreter. If it returns true, the REPL should terminate.
func (repl *BaseREPL) execute(line string) bool {
	line = strings.TrimSpace(line)
	words := strings.Fields(line)
	if len(words) == 0 {
		return false
	}
	if cmd, ok := repl.admin[words[0]]; ok {
		return cmd.run(repl, words, line)
	}
	tracer().Debugf("call interpreter on: '%s'", line)
	if repl.Interpreter != nil {
		repl.Interpreter.InterpretCommand(line)
	}
	return false
}

func (repl *BaseREPL) help(_ []string, _ string) bool {
	fmt.Fprintf(repl.stderr, welcomeMessage, repl.toolname, repl.version)
	io.WriteString(repl.stderr, "\nThe following commands are available:\n\n")
	names := make([]string, 0, len(repl.admin))
	for name := range repl.admin {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(repl.stderr, "  %-10s : %s\n", name, repl.admin[name].usage)
	}
	if repl.Helper != nil {
		repl.Helper(repl.stderr)
	}
	return false
}

func (repl *BaseREPL) bye(_ []string, _ string) bool {
	io.WriteString(repl.stderr, "> goodbye!\n")
	return true
}

func (repl *BaseREPL) mode(args []string, _ string) bool {
	if len(args) > 1 && (args[1] == "vi" || args[1] == "emacs") {
		repl.editmode = args[1]
		if repl.rl != nil {
			repl.rl.SetVimMode(args[1] == "vi")
		}
		return false
	}
	fmt.Fprintf(repl.stderr, "> current input mode: %s\n", repl.editmode)
	return false
}

func (repl *BaseREPL) setPrompt(args []string, line string) bool {
	prompt := fmt.Sprintf(stdprompt, repl.toolname)
	if len(args) > 1 {
		prompt = strings.TrimSpace(strings.TrimPrefix(line, args[0])) + " "
	}
	if repl.rl != nil {
		repl.rl.SetPrompt(prompt)
	}
	return false
}

// Input filter for REPL. Blocks ctrl-z.
func filterReplInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

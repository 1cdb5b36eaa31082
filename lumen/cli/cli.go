// Package cli implements the lumen command line interface.
//
// License
//
// Governed by a 3-Clause BSD license. License file may be found in the root
// folder of this module.
//
// Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
//
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/npillmayer/lumen"
	"github.com/npillmayer/lumen/expr"
	"github.com/npillmayer/lumen/grammar"
	"github.com/npillmayer/lumen/lumen/ui/termui"
	"github.com/spf13/cobra"
)

const version = "0.1 experimental"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lumen",
	Short: "Front end for a stage lighting control language",
	Long: `Welcome to lumen V0.1 (experimental)

lumen tokenizes and parses cue, setting and show documents of a stage
lighting control language, and compiles the intensity formulas of cues.

Without a sub-command lumen starts an interactive REPL.

`,
	SilenceUsage: true,
	Run:          runREPL,
}

var tokensCmd = &cobra.Command{
	Use:   "tokens FILE",
	Short: "Print the token stream of a document ('-' reads stdin)",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokens,
}

var parseCmd = &cobra.Command{
	Use:   "parse FILE",
	Short: "Parse a cue, setting or show document ('-' reads stdin)",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

var evalCmd = &cobra.Command{
	Use:   "eval FORMULA X...",
	Short: "Compile a formula and evaluate it at the given arguments",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runEval,
}

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start the interactive REPL",
	Args:  cobra.NoArgs,
	Run:   runREPL,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called exactly once by lumen.main().
func Execute() {
	if err := rootCmd.ExecuteContext(lumen.SignalContext); err != nil {
		lumen.Exit(2)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	// persistent flags which will be global for the application
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "configuration file (default is $CONFIG/lumen/config.yaml)")
	pf.String("trace", "", "trace level for tokenizer and parsers: off|error|info|debug")
	pf.String("tracefile", "", "write trace events to this file (relative to the log directory)")
	pf.String("newlines", "exact", "newline retention mode: exact|lookback")
	parseCmd.Flags().String("as", "", "document kind: cue|setting|show (default: detect)")
	parseCmd.Flags().Bool("json", false, "print the syntax tree as JSON")
	evalCmd.Flags().String("var", "x", "name of the formula variable")
	rootCmd.AddCommand(tokensCmd, parseCmd, evalCmd, replCmd)
}

func readSource(cmd *cobra.Command, name string) (string, error) {
	var src []byte
	var err error
	if name == "-" {
		src, err = io.ReadAll(cmd.InOrStdin())
	} else {
		src, err = os.ReadFile(name)
	}
	return string(src), err
}

func runTokens(cmd *cobra.Command, args []string) error {
	src, err := readSource(cmd, args[0])
	if err != nil {
		return err
	}
	tokens, err := grammar.Tokenize(src, options()...)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), tokenTable(tokens).Render())
	return nil
}

func runParse(cmd *cobra.Command, args []string) error {
	src, err := readSource(cmd, args[0])
	if err != nil {
		return err
	}
	kind := lumen.Unknown
	if as, _ := cmd.Flags().GetString("as"); as != "" {
		var ok bool
		if kind, ok = lumen.ParseKind(as); !ok {
			return fmt.Errorf("unknown document kind %q", as)
		}
	}
	doc, err := lumen.ParseAs(kind, src, options()...)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return writeJSON(out, doc)
	}
	for _, tw := range documentTables(doc) {
		fmt.Fprintln(out, tw.Render())
	}
	return nil
}

func writeJSON(w io.Writer, doc *lumen.Document) error {
	var tree interface{}
	switch doc.Kind {
	case lumen.CueDocument:
		tree = doc.Cue
	case lumen.SettingDocument:
		tree = doc.Setting
	default:
		tree = doc.Script
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]interface{}{
		"kind": doc.Kind.String(),
		"tree": tree,
	})
}

func runEval(cmd *cobra.Command, args []string) error {
	variable, _ := cmd.Flags().GetString("var")
	fn, err := expr.Compile(variable, args[0])
	if err != nil {
		return err
	}
	xs := make([]float64, 0, len(args)-1)
	for _, a := range args[1:] {
		x, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return fmt.Errorf("argument %q is not a number", a)
		}
		xs = append(xs, x)
	}
	fmt.Fprintln(cmd.OutOrStdout(), evalTable(fn, xs).Render())
	return nil
}

func runREPL(cmd *cobra.Command, args []string) {
	tracer().Infof("lumen interpreter called")
	histfile := lumenPaths().LogFile("repl-history")
	if err := os.MkdirAll(filepath.Dir(histfile), 0o755); err != nil {
		histfile = ""
	}
	repl, err := termui.NewBaseREPL("lumen", version, histfile)
	if err != nil {
		tracer().Errorf("cannot start REPL: %v", err)
		lumen.Exit(1)
	}
	intp := newInterpreter()
	intp.BaseREPL = repl
	intp.Interpreter = intp
	intp.Helper = func(w io.Writer) {
		io.WriteString(w, `
lumen will interpret the following statements:

  tokens <text>                      : print the tokens of a line of DSL text
  parse <text>                       : parse a one-line cue, setting or show document
  func <name>(<var>) = <formula>     : compile and store a function
  funcs                              : list stored functions
  <name>(<number>)                   : evaluate a stored function
  wait <duration> [<unit>] [bpm <n>] : convert a WAIT duration to milliseconds

`)
	}
	intp.Prompt(cmd.Context())
	lumen.Exit(0)
}

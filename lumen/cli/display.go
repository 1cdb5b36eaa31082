package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	prtxt "github.com/jedib0t/go-pretty/v6/text"
	"github.com/npillmayer/lumen"
	"github.com/npillmayer/lumen/expr"
	"github.com/npillmayer/lumen/grammar"
	"github.com/npillmayer/lumen/lumen/ui/termui"
)

// Formatter formats results of REPL statements. It knows about lumen
// documents and falls back to the default terminal formatter.
type Formatter struct {
	termui.DefaultFormatter
}

// Format writes item to w.
func (f Formatter) Format(item interface{}, w io.Writer) (bool, error) {
	switch t := item.(type) {
	case []grammar.Token:
		return f.DefaultFormatter.Format(tokenTable(t), w)
	case *lumen.Document:
		return f.DefaultFormatter.Format(documentTables(t), w)
	case *expr.Function:
		return f.DefaultFormatter.Format(t.String(), w)
	}
	return f.DefaultFormatter.Format(item, w)
}

func newTable(title string) table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	if title != "" {
		tw.SetTitle(title)
	}
	return tw
}

// tokenTable lists tokens with their positions.
func tokenTable(tokens []grammar.Token) table.Writer {
	tw := newTable("")
	tw.AppendHeader(table.Row{"#", "Line", "Col", "Bytes", "Kind", "Text"})
	for i, tok := range tokens {
		text := tok.Text
		if tok.Kind == grammar.NEWLINE {
			text = `\n`
		}
		tw.AppendRow(table.Row{i, tok.Line, tok.Column, tok.Span.String(), tok.Kind, text})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Kind", Colors: prtxt.Colors{prtxt.FgCyan}},
	})
	return tw
}

// documentTables summarizes a parsed document.
func documentTables(doc *lumen.Document) []table.Writer {
	switch doc.Kind {
	case lumen.CueDocument:
		return cueTables(doc.Cue)
	case lumen.SettingDocument:
		return settingTables(doc.Setting)
	case lumen.ShowDocument:
		return scriptTables(doc.Script)
	}
	return nil
}

func cueTables(cue *grammar.Cue) []table.Writer {
	title := "Cue " + cue.Name
	if cue.Inline {
		title = "Inline cue"
	}
	head := newTable(title)
	head.AppendRow(table.Row{"IN", strings.Join(cue.Body.In, ", ")})
	head.AppendRow(table.Row{"INTERVAL", cue.Body.Interval})
	for _, fd := range cue.Body.Funcs {
		head.AppendRow(table.Row{"FUNC", fmt.Sprintf("%s(%s) = %s", fd.Name, fd.Param, fd.Source)})
	}
	if cue.Body.Others != "" {
		head.AppendRow(table.Row{"OTHERS", cue.Body.Others})
	}
	tables := []table.Writer{head}
	for _, class := range []grammar.ChannelClass{grammar.DimmerClass, grammar.ColorClass, grammar.StrobeClass} {
		cb := cue.Body.Block(class)
		if cb == nil {
			continue
		}
		tw := newTable(class.String())
		tw.AppendHeader(table.Row{"Interval", "Line", "Command"})
		for _, ib := range cb.Intervals {
			for _, c := range ib.Commands {
				tw.AppendRow(table.Row{ib.Range.Key(), c.Line, c.Text})
			}
		}
		tw.SetColumnConfigs([]table.ColumnConfig{{Number: 1, AutoMerge: true}})
		tables = append(tables, tw)
	}
	return tables
}

func settingTables(s *grammar.Setting) []table.Writer {
	fixtures := newTable("Fixtures")
	fixtures.AppendHeader(table.Row{"Type", "Count", "Aliases"})
	for _, f := range s.Fixtures {
		fixtures.AppendRow(table.Row{f.Type, f.Number, strings.Join(f.Aliases, ", ")})
	}
	if len(s.Libs) > 0 {
		fixtures.SetCaption("libs: %s", strings.Join(s.Libs, ", "))
	}
	patches := newTable("Patches")
	patches.AppendHeader(table.Row{"Universe", "Alias", "Address"})
	for _, p := range s.Patches {
		for _, e := range p.Entries {
			patches.AppendRow(table.Row{p.Universe, e.Alias, e.Address})
		}
	}
	patches.SetColumnConfigs([]table.ColumnConfig{{Number: 1, AutoMerge: true}})
	groups := newTable("Groups")
	groups.AppendHeader(table.Row{"Name", "Types", "Aliases"})
	for _, g := range s.Groups {
		groups.AppendRow(table.Row{g.Name, strings.Join(g.Types, ", "), strings.Join(g.Aliases, ", ")})
	}
	return []table.Writer{fixtures, patches, groups}
}

func scriptTables(script *grammar.Script) []table.Writer {
	head := newTable("Script")
	head.AppendRow(table.Row{"SETTING", script.Setting})
	head.AppendRow(table.Row{"PLAYBACK", script.Playback})
	tables := []table.Writer{head}
	for _, show := range script.Shows {
		tw := newTable(fmt.Sprintf("Show %d", show.Number))
		tw.AppendHeader(table.Row{"#", "Step", "Detail"})
		for i, step := range show.Steps {
			kind, detail := describeStep(step)
			tw.AppendRow(table.Row{i + 1, kind, detail})
		}
		tables = append(tables, tw)
	}
	return tables
}

func describeStep(step grammar.Step) (string, string) {
	switch s := step.(type) {
	case *grammar.CueCall:
		if s.Params == nil {
			return "cue", s.Name
		}
		params := make([]string, len(s.Params))
		for i, p := range s.Params {
			params[i] = p.String()
		}
		return "cue", fmt.Sprintf("%s(%s)", s.Name, strings.Join(params, ", "))
	case *grammar.InlineCue:
		return "inline cue", fmt.Sprintf("%d function(s), interval %d", len(s.Cue.Body.Funcs), s.Cue.Body.Interval)
	case *grammar.Wait:
		return "wait", fmt.Sprintf("%g %s", s.Duration, s.Unit)
	}
	return "?", fmt.Sprintf("%T", step)
}

// evalTable tabulates f(x) for a list of arguments.
func evalTable(fn *expr.Function, xs []float64) table.Writer {
	tw := newTable(fn.String())
	tw.SetCaption("code: %s", fn.Program())
	tw.AppendHeader(table.Row{fn.Variable, "value"})
	for _, x := range xs {
		tw.AppendRow(table.Row{x, fn.Eval(x)})
	}
	return tw
}

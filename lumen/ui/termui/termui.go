// Package termui provides objects and methods for interactive UI in terminal windows.
//
// License
//
// Governed by a 3-Clause BSD license. License file may be found in the root
// folder of this module.
//
// Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
//
package termui

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	prtxt "github.com/jedib0t/go-pretty/v6/text"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lumen.termui'.
func tracer() tracing.Trace {
	return tracing.Select("lumen.termui")
}

// Formatter writes results of interpreted commands. It returns false if it
// does not know how to format item.
type Formatter interface {
	Format(interface{}, io.Writer) (bool, error)
}

// DefaultFormatter formats strings, numbers, errors and go-pretty tables.
type DefaultFormatter struct{}

func (df DefaultFormatter) Format(item interface{}, w io.Writer) (bool, error) {
	var err error
	switch t := item.(type) {
	case nil:
		return true, nil
	case string:
		_, err = fmt.Fprintf(w, "▶ %s\n", t)
	case float64:
		_, err = fmt.Fprintf(w, "▶ %g\n", t)
	case error:
		_, err = fmt.Fprintf(w, "%s %v\n", prtxt.FgRed.Sprint("✗"), t)
	case table.Writer:
		if t == nil {
			_, err = io.WriteString(w, "▶ (empty table)\n")
		} else {
			_, err = fmt.Fprintln(w, t.Render())
		}
	case []table.Writer:
		for _, tw := range t {
			if _, err = df.Format(tw, w); err != nil {
				break
			}
		}
	case fmt.Stringer:
		_, err = fmt.Fprintf(w, "▶ %s\n", t)
	default:
		_, err = fmt.Fprintf(w, "▶ object of type %T\n", t)
	}
	return err == nil, err
}

package trace

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/npillmayer/schuko/tracing"
)

// Category classifies trace events.
type Category int8

// Event categories. They follow the levels of detail a user wants to switch
// on separately: lexer decisions, generated tokens, consumed tokens and
// grammar rules.
const (
	Lex     Category = iota // lexer decisions, e.g. switching newline retention
	Token                   // a token has been generated by the tokenizer
	Consume                 // a parser consumed a token
	Enter                   // a parser entered a grammar rule
	Exit                    // a parser left a grammar rule
	Error                   // a tokenizer or parser failed
)

func (c Category) String() string {
	switch c {
	case Lex:
		return "LEXER"
	case Token:
		return "TOKEN"
	case Consume:
		return "CONSUME"
	case Enter:
		return "ENTER"
	case Exit:
		return "EXIT"
	case Error:
		return "ERROR"
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// Event is a single observation.
// Not every field is meaningful for every category: token events carry
// Kind, Value and Pos, rule events carry Rule and Detail.
type Event struct {
	Category Category
	Rule     string // grammar rule, for Enter/Exit/Consume
	Kind     string // token kind
	Value    string // token text
	Pos      int    // cursor position (index into the token sequence)
	Line     int
	Column   int
	Detail   string
}

func (e Event) String() string {
	var b strings.Builder
	b.WriteString(e.Category.String())
	switch e.Category {
	case Token, Consume:
		fmt.Fprintf(&b, " (%s,%q) at pos %d", e.Kind, e.Value, e.Pos)
		if e.Line > 0 {
			fmt.Fprintf(&b, ", line %d col %d", e.Line, e.Column)
		}
	}
	if e.Rule != "" {
		fmt.Fprintf(&b, " [%s]", e.Rule)
	}
	if e.Detail != "" {
		b.WriteString(" ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

// Sink receives trace events.
type Sink interface {
	Record(Event)
}

// SinkFunc adapts an ordinary function to a Sink.
type SinkFunc func(Event)

// Record calls f(e).
func (f SinkFunc) Record(e Event) {
	f(e)
}

type discard struct{}

func (discard) Record(Event) {}

// Discard is a Sink which drops all events.
var Discard Sink = discard{}

// OrDiscard returns s, or Discard if s is nil.
func OrDiscard(s Sink) Sink {
	if s == nil {
		return Discard
	}
	return s
}

// --- schuko ----------------------------------------------------------------

type tracer struct {
	t tracing.Trace
}

// Tracer returns a Sink forwarding to a schuko tracer. Token-level events
// are traced with Debugf, rule entry and exit with Infof and errors with
// Errorf, so the tracer's trace level selects the amount of detail.
func Tracer(t tracing.Trace) Sink {
	if t == nil {
		return Discard
	}
	return tracer{t: t}
}

func (tr tracer) Record(e Event) {
	switch e.Category {
	case Lex, Token, Consume:
		tr.t.Debugf("%s", e)
	case Enter, Exit:
		tr.t.Infof("%s", e)
	case Error:
		tr.t.Errorf("%s", e)
	}
}

// --- Recorder --------------------------------------------------------------

// Recorder is a Sink keeping all events in memory, optionally restricted
// to a set of categories. It is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []Event
	only   map[Category]bool
}

// NewRecorder creates a recorder. If categories are given, only events of
// these categories are kept.
func NewRecorder(categories ...Category) *Recorder {
	r := &Recorder{}
	if len(categories) > 0 {
		r.only = make(map[Category]bool, len(categories))
		for _, c := range categories {
			r.only[c] = true
		}
	}
	return r
}

// Record is part of interface Sink.
func (r *Recorder) Record(e Event) {
	if r.only != nil && !r.only[e.Category] {
		return
	}
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	ev := make([]Event, len(r.events))
	copy(ev, r.events)
	return ev
}

// Count returns the number of recorded events of category c.
func (r *Recorder) Count(c Category) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Category == c {
			n++
		}
	}
	return n
}

// Reset drops all recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = r.events[:0]
	r.mu.Unlock()
}

// --- Writer ----------------------------------------------------------------

type writer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriter returns a Sink writing one line per event to w.
// Write errors are ignored; tracing must never influence a parse.
func NewWriter(w io.Writer) Sink {
	if w == nil {
		return Discard
	}
	return &writer{w: w}
}

func (wr *writer) Record(e Event) {
	wr.mu.Lock()
	defer wr.mu.Unlock()
	fmt.Fprintf(wr.w, "%-8s %s\n", e.Category, strings.TrimPrefix(e.String(), e.Category.String()+" "))
}

// --- Tee -------------------------------------------------------------------

type tee []Sink

// Tee returns a Sink forwarding every event to all of sinks.
// Nil sinks are skipped.
func Tee(sinks ...Sink) Sink {
	var t tee
	for _, s := range sinks {
		if s != nil && s != Discard {
			t = append(t, s)
		}
	}
	switch len(t) {
	case 0:
		return Discard
	case 1:
		return t[0]
	}
	return t
}

func (t tee) Record(e Event) {
	for _, s := range t {
		s.Record(e)
	}
}

package grammar

import (
	"fmt"

	"github.com/npillmayer/lumen/expr"
)

// --- Cues ------------------------------------------------------------------

// Cue is a named or inline cue definition.
type Cue struct {
	Name   string // empty for inline cues
	Inline bool
	Body   CueBody
	Line   int
	Column int
}

// CueBody holds the statements of a cue. Interval is 0 if no interval
// count has been declared. Class blocks which are not present are nil.
type CueBody struct {
	In       []string
	Funcs    []FuncDef
	Interval int
	Dimmer   *ClassBlock
	Color    *ClassBlock
	Strobe   *ClassBlock
	Others   string
}

// Func returns the function definition with the given name.
func (b *CueBody) Func(name string) (*FuncDef, bool) {
	for i := range b.Funcs {
		if b.Funcs[i].Name == name {
			return &b.Funcs[i], true
		}
	}
	return nil, false
}

// Block returns the command block of a channel class.
func (b *CueBody) Block(class ChannelClass) *ClassBlock {
	switch class {
	case DimmerClass:
		return b.Dimmer
	case ColorClass:
		return b.Color
	case StrobeClass:
		return b.Strobe
	}
	return nil
}

// FuncDef is a FUNC statement with its compiled formula.
type FuncDef struct {
	Name   string
	Param  string
	Source string
	Fn     *expr.Function
}

// ChannelClass denotes the class of channels a command block addresses.
type ChannelClass int

// Channel classes
const (
	DimmerClass ChannelClass = iota
	ColorClass
	StrobeClass
	OthersClass
)

func (c ChannelClass) String() string {
	switch c {
	case DimmerClass:
		return "DIMMER"
	case ColorClass:
		return "COLOR"
	case StrobeClass:
		return "STROBE"
	}
	return "OTHERS"
}

func classOf(t TokType) (ChannelClass, bool) {
	switch t {
	case DIMMER:
		return DimmerClass, true
	case COLOR:
		return ColorClass, true
	case STROBE:
		return StrobeClass, true
	case OTHERS:
		return OthersClass, true
	}
	return OthersClass, false
}

// ClassBlock holds the interval blocks of a DIMMER, COLOR or STROBE block,
// in order of first appearance.
type ClassBlock struct {
	Class     ChannelClass
	Intervals []IntervalBlock
}

// Lookup finds the commands for an interval range key, e.g. "INTERVAL[1-4]".
func (cb *ClassBlock) Lookup(key string) ([]Command, bool) {
	for _, ib := range cb.Intervals {
		if ib.Range.Key() == key {
			return ib.Commands, true
		}
	}
	return nil, false
}

// IntervalRange is a range of interval indices. A single index n is the
// range n-n.
type IntervalRange struct {
	Start, End int
}

// Key returns the canonical key "INTERVAL[a-b]".
func (r IntervalRange) Key() string {
	return fmt.Sprintf("INTERVAL[%d-%d]", r.Start, r.End)
}

// IntervalBlock is an interval range with its command lines.
type IntervalBlock struct {
	Range    IntervalRange
	Commands []Command
}

// Command is a raw command line: its token texts joined by single spaces.
type Command struct {
	Text   string
	Line   int
	Column int
}

// --- Settings --------------------------------------------------------------

// Setting is a fixture configuration.
type Setting struct {
	Libs     []string
	Fixtures []Fixture
	Patches  []Patch
	Groups   []Group
}

// Fixture declares a number of fixtures of a type.
type Fixture struct {
	Type    string
	Number  int
	Aliases []string
}

// Patch maps fixture aliases to DMX addresses of a universe.
type Patch struct {
	Universe string
	Entries  []PatchEntry
}

// Address looks up the DMX address of an alias.
func (p *Patch) Address(alias string) (int, bool) {
	for _, e := range p.Entries {
		if e.Alias == alias {
			return e.Address, true
		}
	}
	return 0, false
}

// PatchEntry is a single alias → address mapping.
type PatchEntry struct {
	Alias   string
	Address int
}

// Group names a set of fixture aliases. Types holds the optional group
// type tags.
type Group struct {
	Types   []string
	Name    string
	Aliases []string
}

// --- Shows -----------------------------------------------------------------

// Script is the top level of a show file. Setting and Playback are empty
// if not present.
type Script struct {
	Setting  string
	Playback string
	Shows    []*Show
}

// Show is a numbered sequence of steps.
type Show struct {
	Number int
	Steps  []Step
}

// Step is one of *CueCall, *InlineCue or *Wait.
type Step interface {
	isStep()
}

// CueCall invokes a cue by name. Params is nil if the call has no
// parameter list, and empty for "()".
type CueCall struct {
	Name   string
	Params []Param
	Line   int
	Column int
}

// InlineCue is a cue defined within a show.
type InlineCue struct {
	Cue *Cue
}

// Wait pauses a show. Unit defaults to "ms".
type Wait struct {
	Duration float64
	Unit     string
}

func (*CueCall) isStep()   {}
func (*InlineCue) isStep() {}
func (*Wait) isStep()      {}

// ParamKind is the kind of a parameter value.
type ParamKind int

// Kinds of parameter values
const (
	PathParam   ParamKind = iota // identifier, possibly dotted: FACE.ALL
	NumberParam                  // numeric literal, as written
	StringParam                  // string literal, without quotes
)

// Param is a cue call parameter. Key is empty for positional parameters.
type Param struct {
	Key   string
	Value string
	Kind  ParamKind
}

func (p Param) String() string {
	if p.Key == "" {
		return p.Value
	}
	return fmt.Sprintf("(%s,%s)", p.Key, p.Value)
}

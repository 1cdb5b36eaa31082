package grammar

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/npillmayer/lumen/expr"
	"github.com/npillmayer/lumen/trace"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// compares compiled functions by their source
var cmpFunctions = cmp.Comparer(func(a, b *expr.Function) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Variable == b.Variable && a.Source == b.Source
})

var ignorePositions = cmpopts.IgnoreFields(Command{}, "Line", "Column")

func parseCue(t *testing.T, src string, opts ...Option) *Cue {
	t.Helper()
	cue, err := ParseCue(src, opts...)
	require.NoError(t, err)
	return cue
}

func TestCueRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lumen.grammar")
	defer teardown()
	//
	cue := parseCue(t, sampleCue)
	assert.Equal(t, "cross_back_01", cue.Name)
	assert.False(t, cue.Inline)
	assert.Equal(t, []string{"BPM", "RATE", "LIGHT"}, cue.Body.In)
	assert.Equal(t, 4, cue.Body.Interval)
	assert.Equal(t, "bypass", cue.Body.Others)
	//
	wave, ok := cue.Body.Func("wave")
	require.True(t, ok)
	assert.Equal(t, "x", wave.Param)
	assert.Equal(t, "sin(x)", wave.Source)
	assert.Equal(t, 0.0, wave.Fn.Eval(0))
	assert.InDelta(t, 1.0, wave.Fn.Eval(math.Pi/2), 1e-9)
	wave2, ok := cue.Body.Func("wave2")
	require.True(t, ok)
	assert.Equal(t, "1-sin(x)", wave2.Source)
	assert.InDelta(t, 0.0, wave2.Fn.Eval(math.Pi/2), 1e-9)
	//
	expected := &ClassBlock{
		Class: DimmerClass,
		Intervals: []IntervalBlock{{
			Range: IntervalRange{1, 4},
			Commands: []Command{
				{Text: "LIGHT . L DIMMER FUNC wave from 0 to PI"},
				{Text: "LIGHT . R DIMMER FUNC wave2 from 0 to PI"},
			},
		}},
	}
	if diff := cmp.Diff(expected, cue.Body.Dimmer, ignorePositions); diff != "" {
		t.Errorf("DIMMER block mismatch (-want +got):\n%s", diff)
	}
	require.NotNil(t, cue.Body.Color)
	cmds, ok := cue.Body.Color.Lookup("INTERVAL[1-1]")
	require.True(t, ok)
	require.Len(t, cmds, 2, "blank lines must not produce commands")
	assert.Equal(t, `LIGHT . R COLOR value "blue_a"`, cmds[1].Text)
	assert.Equal(t, 23, cmds[1].Line)
	require.NotNil(t, cue.Body.Strobe)
	assert.Equal(t, "INTERVAL[3-3]", cue.Body.Strobe.Intervals[0].Range.Key())
	assert.Same(t, cue.Body.Strobe, cue.Body.Block(StrobeClass))
}

func TestIntervalRanges(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lumen.grammar")
	defer teardown()
	//
	cue := parseCue(t, `CUE c START DIMMER{ INTERVAL[3-4]{ A } INTERVAL[3]{ B } } CUE END`)
	require.NotNil(t, cue.Body.Dimmer)
	ivs := cue.Body.Dimmer.Intervals
	require.Len(t, ivs, 2)
	assert.Equal(t, IntervalRange{3, 4}, ivs[0].Range)
	assert.Equal(t, IntervalRange{3, 3}, ivs[1].Range)
	assert.Equal(t, "INTERVAL[3-3]", ivs[1].Range.Key())
}

func TestRepeatedDefinitionsOverwrite(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lumen.grammar")
	defer teardown()
	//
	cue := parseCue(t, `CUE c START
		IN a
		FUNC f(x) = x
		FUNC g(x) = 2*x
		FUNC f(x) = 3*x
		IN b, c
		DIMMER{ INTERVAL[1]{ A } INTERVAL[2]{ B } INTERVAL[1]{ C } }
	CUE END`)
	assert.Equal(t, []string{"b", "c"}, cue.Body.In)
	require.Len(t, cue.Body.Funcs, 2)
	assert.Equal(t, "f", cue.Body.Funcs[0].Name)
	assert.Equal(t, "3*x", cue.Body.Funcs[0].Source)
	assert.Equal(t, "g", cue.Body.Funcs[1].Name)
	ivs := cue.Body.Dimmer.Intervals
	require.Len(t, ivs, 2)
	assert.Equal(t, "C", ivs[0].Commands[0].Text)
	assert.Equal(t, "B", ivs[1].Commands[0].Text)
}

func TestInlineCue(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lumen.grammar")
	defer teardown()
	//
	tokens, err := Tokenize(`CUE { FUNC f(x) = x/2 } CUE END WAIT 1`)
	require.NoError(t, err)
	p := NewCueParser(tokens)
	cue, err := p.Parse(true)
	require.NoError(t, err)
	assert.True(t, cue.Inline)
	assert.Equal(t, "", cue.Name)
	f, ok := cue.Body.Func("f")
	require.True(t, ok)
	assert.Equal(t, "x/2", f.Source)
	assert.Equal(t, 14, p.Consumed())
	assert.Equal(t, WAIT, tokens[p.Consumed()].Kind)
}

func TestCueErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lumen.grammar")
	defer teardown()
	//
	tests := []struct {
		src string
		err error
	}{
		{"CUE name START", ErrUnexpectedEnd},
		{"CUE name START IN a", ErrUnexpectedEnd},
		{"CUE name START DIMMER{ INTERVAL[1]{ A", ErrUnexpectedEnd},
		{"CUE", ErrUnexpectedEnd},
		{"CUE START", ErrUnexpectedToken},
		{"CUE name START WAIT 1 CUE END", ErrUnexpectedToken},
		{"CUE name START INTERVAL 2.5 CUE END", ErrUnexpectedToken},
		{"CUE name START DIMMER{ A } CUE END", ErrUnexpectedToken},
		{"CUE name START OTHERS{ bypass INTERVAL[1]{ A } off } CUE END", ErrUnexpectedToken},
		{"CUE name START OTHERS{ INTERVAL[1]{ A } CUE END", ErrUnexpectedEnd},
		{"CUE name START DIMMER{ INTERVAL[1 2]{ A } } CUE END", ErrUnexpectedToken},
		{"CUE name START FUNC f x = x CUE END", ErrUnexpectedToken},
		{"CUE name START CUE END CUE", ErrUnexpectedToken},
		{"CUE name START FUNC f(x) = foo(x) CUE END", expr.ErrUnknownName},
		{"CUE name START FUNC f(x) = CUE END", expr.ErrSyntax},
	}
	for _, test := range tests {
		_, err := ParseCue(test.src)
		if !errors.Is(err, test.err) {
			t.Errorf("%q: expected %v, have %v", test.src, test.err, err)
		}
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Errorf("%q: expected a ParseError, have %T", test.src, err)
		}
	}
}

func TestParseErrorPosition(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lumen.grammar")
	defer teardown()
	//
	_, err := ParseCue("CUE c START\n  IN a\n  WAIT 1\nCUE END")
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	require.NotNil(t, perr.Found)
	assert.Equal(t, WAIT, perr.Found.Kind)
	assert.Equal(t, 3, perr.Line)
	assert.Equal(t, 3, perr.Column)
	assert.Contains(t, perr.Error(), "line 3, column 3")
	//
	_, err = ParseCue("CUE c START\n  IN a")
	require.True(t, errors.As(err, &perr))
	assert.Nil(t, perr.Found)
	assert.Equal(t, 2, perr.Line)
}

func TestCueParseIdempotent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lumen.grammar")
	defer teardown()
	//
	c1 := parseCue(t, sampleCue)
	c2 := parseCue(t, sampleCue)
	if diff := cmp.Diff(c1, c2, cmpFunctions); diff != "" {
		t.Errorf("parsing twice differs:\n%s", diff)
	}
	tokens, err := Tokenize(sampleCue)
	require.NoError(t, err)
	p := NewCueParser(tokens)
	c3, err := p.Parse(false)
	require.NoError(t, err)
	c4, err := p.Parse(false)
	require.NoError(t, err)
	if diff := cmp.Diff(c3, c4, cmpFunctions); diff != "" {
		t.Errorf("re-using a parser differs:\n%s", diff)
	}
}

func TestTraceIsObservationOnly(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lumen.grammar")
	defer teardown()
	//
	rec := trace.NewRecorder()
	traced := parseCue(t, sampleCue, WithTrace(rec))
	plain := parseCue(t, sampleCue)
	if diff := cmp.Diff(plain, traced, cmpFunctions); diff != "" {
		t.Errorf("tracing changed the result:\n%s", diff)
	}
	assert.Greater(t, rec.Count(trace.Token), 0)
	assert.Greater(t, rec.Count(trace.Consume), 0)
	assert.Equal(t, rec.Count(trace.Enter), rec.Count(trace.Exit))
	assert.Equal(t, 0, rec.Count(trace.Error))
	tokens, _ := Tokenize(sampleCue)
	assert.Equal(t, len(tokens), rec.Count(trace.Consume), "every token is consumed exactly once")
}

func TestCommentTokensAreSkipped(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lumen.grammar")
	defer teardown()
	//
	with := parseCue(t, sampleCue, WithComments(true))
	without := parseCue(t, sampleCue)
	if diff := cmp.Diff(without, with, cmpFunctions); diff != "" {
		t.Errorf("comment tokens changed the result:\n%s", diff)
	}
}

func TestLookbackModeParses(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lumen.grammar")
	defer teardown()
	//
	exact := parseCue(t, sampleCue)
	lookback := parseCue(t, sampleCue, WithNewlineMode(NewlinesLookback))
	if diff := cmp.Diff(exact, lookback, cmpFunctions, ignorePositions); diff != "" {
		t.Errorf("newline modes differ:\n%s", diff)
	}
}

func TestOthersDropsIntervalBlocks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lumen.grammar")
	defer teardown()
	//
	for _, src := range []string{
		"CUE c START OTHERS{ INTERVAL[1]{ A\n} bypass } CUE END",
		"CUE c START OTHERS{\nbypass\nINTERVAL[1-2]{\nA\n}\n} CUE END",
		"CUE c START OTHERS{ bypass INTERVAL[3]{ A } } CUE END",
	} {
		cue := parseCue(t, src)
		assert.Equal(t, "bypass", cue.Body.Others, src)
		assert.Nil(t, cue.Body.Block(OthersClass), src)
	}
}

func TestFuncTraceShowsCode(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lumen.grammar")
	defer teardown()
	//
	rec := trace.NewRecorder(trace.Exit)
	parseCue(t, "CUE c START FUNC f(x) = 2*x CUE END", WithTrace(rec))
	var details []string
	for _, e := range rec.Events() {
		if e.Rule == "func" {
			details = append(details, e.Detail)
		}
	}
	assert.Equal(t, []string{"f: CONST 2; ARG; MUL"}, details)
}

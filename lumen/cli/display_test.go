package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/npillmayer/lumen"
	"github.com/npillmayer/lumen/expr"
	"github.com/npillmayer/lumen/grammar"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCue = `CUE pulse START
    IN BPM, LIGHT
    FUNC half(x) = x/2
    INTERVAL 2
    DIMMER{
        INTERVAL[1-2]{
            LIGHT.L DIMMER value 128
        }
    }
CUE END
`

const testSetting = `FIXTURE PAR 2 ["A","B"]
PATCH { { "UNIVERSE": "U1", "PATCHES": { "A": 1, "B": 5 } } }
GROUP FACE ["A","B"]
`

const testShow = `SETTING "s1"
PLAYBACK "p1"
SHOW 3 START
    CUE pulse() CUE END
    WAIT 2 s
SHOW END
`

func render(t *testing.T, item interface{}) string {
	t.Helper()
	var buf bytes.Buffer
	ok, err := Formatter{}.Format(item, &buf)
	require.NoError(t, err)
	require.True(t, ok)
	return buf.String()
}

func TestTokenTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lumen.cli")
	defer teardown()
	//
	tokens, err := grammar.Tokenize(`CUE x START CUE END`)
	require.NoError(t, err)
	out := render(t, tokens)
	assert.Contains(t, out, "START")
	assert.Contains(t, out, "Kind")
	assert.Equal(t, 4, strings.Count(out, "CUE"), "CUE appears as kind and as text")
	assert.Contains(t, out, "Bytes")
	assert.Contains(t, out, "(6…11)", "byte span of START")
}

func TestDocumentTables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lumen.cli")
	defer teardown()
	//
	for _, c := range []struct {
		src  string
		kind lumen.Kind
		want []string
	}{
		{testCue, lumen.CueDocument, []string{"Cue pulse", "half(x) = x/2", "INTERVAL[1-2]", "LIGHT . L DIMMER value 128"}},
		{testSetting, lumen.SettingDocument, []string{"Fixtures", "PAR", "U1", "FACE"}},
		{testShow, lumen.ShowDocument, []string{"Show 3", "pulse()", "2 s"}},
	} {
		doc, err := lumen.Parse(c.src)
		require.NoError(t, err)
		require.Equal(t, c.kind, doc.Kind)
		out := render(t, doc)
		for _, w := range c.want {
			assert.Contains(t, out, w, c.kind.String())
		}
	}
}

func TestWriteJSON(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lumen.cli")
	defer teardown()
	//
	doc, err := lumen.Parse(testShow)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, doc))
	assert.Contains(t, buf.String(), `"kind": "show"`)
	assert.Contains(t, buf.String(), `"Playback": "p1"`)
}

func TestEvalTable(t *testing.T) {
	fn, err := expr.Compile("x", "x/2")
	require.NoError(t, err)
	out := evalTable(fn, []float64{1, 4}).Render()
	assert.Contains(t, out, "0.5")
	assert.Contains(t, out, "code: ARG; CONST 2; DIV")
}

package termui

import (
	"bytes"
	"io"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

type recorder struct {
	lines []string
}

func (r *recorder) InterpretCommand(line string) {
	r.lines = append(r.lines, line)
}

func TestREPLDispatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lumen.termui")
	defer teardown()
	//
	var out, errout bytes.Buffer
	repl := newREPL("lumen", "test", &out, &errout)
	rec := &recorder{}
	repl.Interpreter = rec
	assert.False(t, repl.execute("   "))
	assert.False(t, repl.execute("  sq(2) "))
	assert.False(t, repl.execute("mode vi"))
	assert.Equal(t, "vi", repl.editmode)
	assert.False(t, repl.execute("setprompt >>"))
	assert.True(t, repl.execute("bye"))
	assert.Equal(t, []string{"sq(2)"}, rec.lines)
	assert.Contains(t, errout.String(), "goodbye")
}

func TestREPLHelp(t *testing.T) {
	var out, errout bytes.Buffer
	repl := newREPL("lumen", "0.1", &out, &errout)
	called := false
	repl.Helper = func(w io.Writer) { called = true }
	assert.False(t, repl.execute("help"))
	assert.True(t, called)
	assert.Contains(t, errout.String(), "Welcome to lumen [V0.1]")
	assert.Contains(t, errout.String(), "setprompt")
	assert.Empty(t, out.String())
}

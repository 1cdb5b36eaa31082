package grammar

import (
	"fmt"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/lumen/trace"
)

// newlineContext decides whether newline characters are emitted as tokens.
// observe is called for every emitted token except comments.
type newlineContext interface {
	retain() bool
	observe(Token)
}

// --- Exact brace stack -----------------------------------------------------

// Progress of matching an interval header INTERVAL [ n ( - m )? ].
const (
	hdrNone = iota
	hdrInterval
	hdrOpen
	hdrStart
	hdrDash
	hdrEnd
	hdrComplete
)

// braceContext remembers for every open brace whether it directly followed
// an interval header. Newlines are retained while the innermost open brace
// did.
type braceContext struct {
	braces *arraystack.Stack // of bool
	header int
}

func newBraceContext() *braceContext {
	return &braceContext{braces: arraystack.New()}
}

func (bc *braceContext) retain() bool {
	top, ok := bc.braces.Peek()
	return ok && top.(bool)
}

func (bc *braceContext) observe(tok Token) {
	switch tok.Kind {
	case NEWLINE:
		return
	case LBRACE:
		bc.braces.Push(bc.header == hdrComplete)
		bc.header = hdrNone
		return
	case RBRACE:
		bc.braces.Pop()
		bc.header = hdrNone
		return
	}
	bc.header = nextHeaderState(bc.header, tok)
}

func nextHeaderState(state int, tok Token) int {
	switch {
	case tok.Kind == INTERVAL:
		return hdrInterval
	case state == hdrInterval && tok.Kind == LSQUARE:
		return hdrOpen
	case state == hdrOpen && tok.Kind == NUMBER:
		return hdrStart
	case state == hdrStart && tok.Is(OP, "-"):
		return hdrDash
	case state == hdrDash && tok.Kind == NUMBER:
		return hdrEnd
	case (state == hdrStart || state == hdrEnd) && tok.Kind == RSQUARE:
		return hdrComplete
	}
	return hdrNone
}

// --- Bounded lookback ------------------------------------------------------

const (
	lookbackWindow = 10 // recent tokens remembered
	headerWindow   = 7  // recent tokens searched for an interval header
)

// lookbackContext approximates brace tracking by looking at a window of
// recent tokens. Retention switches on at a '{' preceded by an interval
// header within the header window, and off at a '}' when no '{' is left in
// the window.
type lookbackContext struct {
	recent *arraylist.List // of Token
	keep   bool
	sink   trace.Sink
}

func newLookbackContext(sink trace.Sink) *lookbackContext {
	return &lookbackContext{recent: arraylist.New(), sink: trace.OrDiscard(sink)}
}

func (lc *lookbackContext) retain() bool {
	return lc.keep
}

func (lc *lookbackContext) observe(tok Token) {
	lc.recent.Add(tok)
	if tok.Kind == NEWLINE {
		return
	}
	if lc.recent.Size() > lookbackWindow {
		lc.recent.Remove(0) // one token out per token in; retained newlines widen the window
	}
	switch tok.Kind {
	case LBRACE:
		if lc.looksLikeInterval() {
			lc.keep = true
		}
	case RBRACE:
		open := lc.recent.Any(func(_ int, v interface{}) bool {
			return v.(Token).Kind == LBRACE
		})
		if !open {
			lc.keep = false
		}
	}
}

func (lc *lookbackContext) looksLikeInterval() bool {
	n := lc.recent.Size()
	from := 0
	if n > headerWindow {
		from = n - headerWindow
	}
	last := make([]Token, 0, headerWindow)
	for i := from; i < n; i++ {
		v, _ := lc.recent.Get(i)
		last = append(last, v.(Token))
	}
	at := -1
	for i, t := range last {
		if t.Kind == INTERVAL {
			at = i
			break
		}
	}
	if at < 0 {
		return false
	}
	lc.note("found INTERVAL at window position %d", at)
	if len(last) < at+5 || last[at+1].Kind != LSQUARE || last[at+2].Kind != NUMBER {
		return false
	}
	if len(last) > at+5 && last[at+3].Is(OP, "-") {
		return len(last) >= at+7 && last[at+4].Kind == NUMBER && last[at+5].Kind == RSQUARE
	}
	return last[at+3].Kind == RSQUARE
}

func (lc *lookbackContext) note(format string, args ...interface{}) {
	lc.sink.Record(trace.Event{Category: trace.Lex, Detail: fmt.Sprintf(format, args...)})
}

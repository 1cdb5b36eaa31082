package grammar

import "github.com/npillmayer/lumen/trace"

// NewlineMode selects how the tokenizer decides about newline significance.
type NewlineMode int

const (
	// NewlinesExact keeps a stack of open braces, remembering for each one
	// whether it opened an INTERVAL[..] command block.
	NewlinesExact NewlineMode = iota
	// NewlinesLookback inspects a window of the 10 most recent tokens.
	// It may miss headers which do not fit into the window.
	NewlinesLookback
)

func (m NewlineMode) String() string {
	if m == NewlinesLookback {
		return "lookback"
	}
	return "exact"
}

// ParseNewlineMode reads "exact" or "lookback".
func ParseNewlineMode(s string) (NewlineMode, bool) {
	switch s {
	case "exact", "":
		return NewlinesExact, true
	case "lookback":
		return NewlinesLookback, true
	}
	return NewlinesExact, false
}

type config struct {
	sink     trace.Sink
	newlines NewlineMode
	comments bool
}

// Option configures tokenizers and parsers.
type Option func(*config)

// WithTrace sets a trace sink. A nil sink discards events.
func WithTrace(sink trace.Sink) Option {
	return func(c *config) {
		c.sink = trace.OrDiscard(sink)
	}
}

// WithNewlineMode selects the newline retention strategy of a tokenizer.
func WithNewlineMode(mode NewlineMode) Option {
	return func(c *config) {
		c.newlines = mode
	}
}

// WithComments makes a tokenizer emit COMMENT tokens. Parsers skip them.
func WithComments(b bool) Option {
	return func(c *config) {
		c.comments = b
	}
}

func makeConfig(opts []Option) config {
	c := config{sink: trace.Discard}
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	return c
}

/*
Package trace defines the observation boundary of the lumen front end.

Tokenizer and parsers report what they do to a Sink: tokens generated and
consumed, grammar rules entered and left, errors raised. A Sink is handed to
each tokenizer or parser as an option; nothing is kept in package state.
Tracing is pure observation: whether a sink is present or not never changes
the outcome of a tokenization or parse.

Sinks provided here:

	Discard        drops everything (the default)
	Tracer(t)      forwards to a schuko tracing.Trace
	NewRecorder()  keeps events in memory
	NewWriter(w)   writes one line per event
	Tee(s1, s2)    fans out to several sinks

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package trace

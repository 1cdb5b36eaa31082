/*
Package vm implements a small stack machine for numeric formulas.

Formulas of FUNC definitions are compiled (by package expr) into a Program,
a flat sequence of Ops. A Program is evaluated for a single argument value;
evaluation follows IEEE-754 double arithmetic, so division by zero yields
±Inf or NaN rather than an error.

Programs are immutable after construction and hold no evaluation state.
Each call to Run uses a fresh operand stack, so a Program may be shared
between goroutines.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package vm

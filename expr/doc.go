/*
Package expr compiles the arithmetic formulas of FUNC definitions.

A formula is a function of exactly one variable, e.g.

    FUNC wave(x) = 1-sin(x)/2

Formulas may use numeric literals, the variable, the operators
+ - * / and ** (power), parentheses, the constant pi and the functions

    sin cos tan exp sqrt Abs (alias abs) log Max Min

log takes an optional second argument, the base. Max and Min accept any
number of arguments. Any other name is an error.

Compile translates a formula into a program for package vm, which is then
wrapped as a Function. Evaluation follows IEEE-754 double arithmetic.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package expr

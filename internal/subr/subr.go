// Released under an MIT license. See LICENSE.

// Package subr provides the built-in primitive procedures. Each
// primitive declares a validation format string that the evaluator
// checks before the function runs; an empty format means the primitive
// validates for itself. Primitives signal recoverable failure by
// returning the Error sentinel.
package subr

import (
	"io"

	"github.com/moneytech/liblisp/internal/cell"
	"github.com/moneytech/liblisp/internal/lisp"
	"github.com/moneytech/liblisp/internal/port"
)

// Install registers every builtin primitive and constant with l.
func Install(l *lisp.T) {
	type def struct {
		name, format, doc string
		fn                lisp.Func
	}

	for _, d := range []def{
		{"+", "a a", "add two numbers", sum},
		{"-", "a a", "subtract two numbers", sub},
		{"*", "a a", "multiply two numbers", prod},
		{"/", "a a", "divide two numbers", div},
		{"%", "d d", "integer remainder", mod},
		{"&", "d d", "bitwise and", band},
		{"|", "d d", "bitwise or", bor},
		{"^", "d d", "bitwise exclusive or", bxor},
		{"~", "d", "bitwise invert", binv},
		{">", "A A", "greater than", greater},
		{"<", "A A", "less than", less},
		{"=", "A A", "equality", eq},
		{"eq", "A A", "equality", eq},
		{"not", "A", "logical not", not},
		{"and", "", "logical and of all arguments", and},
		{"or", "", "logical or of all arguments", or},

		{"cons", "A A", "allocate a new cons cell", consCell},
		{"car", "c", "head of a list", car},
		{"cdr", "c", "rest of a list", cdr},
		{"list", "", "make a list from the arguments", list},
		{"length", "A", "length of a list, string, or hash", length},
		{"reverse", "A", "reverse a list or string", reverse},
		{"assoc", "A L", "find a pair by key in an association list", assoc},
		{"set-car!", "c A", "replace the head of a cons cell", setCar},
		{"set-cdr!", "c A", "replace the rest of a cons cell", setCdr},

		{"scons", "Z Z", "concatenate two strings", scons},
		{"scar", "Z", "first character of a string", scar},
		{"scdr", "Z", "rest of a string", scdr},

		{"hash-create", "", "make a hash from key value pairs", hashCreate},
		{"hash-lookup", "h Z", "look a key up in a hash", hashLookup},
		{"hash-insert", "h Z A", "insert a key value pair into a hash", hashInsert},

		{"input?", "A", "is this an input port", inputp},
		{"output?", "A", "is this an output port", outputp},
		{"eof?", "P", "has this port seen end of file", eofp},
		{"get-char", "i", "read one character from a port", getChar},
		{"put-char", "o d", "write one character to a port", putChar},
		{"put", "o Z", "write a string to a port", put},
		{"open", "d Z", "open a port", open},
		{"close", "P", "close a port", closePort},
		{"flush", "", "flush an output port", flushPort},
		{"tell", "P", "stream position of a port", tell},
		{"seek", "P d d", "set the stream position of a port", seekPort},
		{"read", "I", "read an expression from a port or string", readExpr},
		{"print", "o A", "print an expression to a port", printExpr},

		{"getenv", "Z", "look an environment variable up", getEnv},
		{"time", "", "seconds since the epoch", now},
		{"date", "", "broken-down utc time", date},

		{"eval", "", "evaluate an expression", eval},
		{"timed-eval", "", "evaluate an expression, timing it", timedEval},
		{"gc", "", "control or force garbage collection", gc},
		{"type-of", "A", "type tag of an expression", typeOf},
		{"random", "", "next pseudo random number", random},
		{"seed", "d d", "seed the pseudo random number generator", seed},
	} {
		l.Register(d.name, d.format, d.doc, d.fn)
	}

	installRaise(l)

	for _, c := range []struct {
		name string
		val  int64
	}{
		{"*integer*", int64(cell.Integer)},
		{"*symbol*", int64(cell.Symbol)},
		{"*cons*", int64(cell.Cons)},
		{"*string*", int64(cell.String)},
		{"*hash*", int64(cell.Hash)},
		{"*io*", int64(cell.IO)},
		{"*float*", int64(cell.Float)},
		{"*procedure*", int64(cell.Proc)},
		{"*primitive*", int64(cell.Subr)},
		{"*f-procedure*", int64(cell.FProc)},
		{"*user-defined*", int64(cell.User)},
		{"*file-in*", int64(port.FileIn)},
		{"*file-out*", int64(port.FileOut)},
		{"*string-in*", int64(port.StrIn)},
		{"*string-out*", int64(port.StrOut)},
		{"*null-out*", int64(port.NullOut)},
		{"*seek-set*", int64(io.SeekStart)},
		{"*seek-cur*", int64(io.SeekCurrent)},
		{"*seek-end*", int64(io.SeekEnd)},
		{"*gc-on*", int64(lisp.GCOn)},
		{"*gc-postpone*", int64(lisp.GCPostpone)},
		{"*gc-off*", int64(lisp.GCOff)},
		{"*eof*", port.EOF},
	} {
		l.AddCell(c.name, l.Int(c.val))
	}
}

// tee converts a Go boolean to the canonical truth cells.
func tee(b bool) *cell.T {
	if b {
		return cell.Tee
	}

	return cell.Nil
}

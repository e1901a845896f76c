// Released under an MIT license. See LICENSE.

// Package validate checks a primitive's argument list against a format
// string before the primitive touches its arguments. One character per
// required argument, spaces ignored:
//
//	s symbol              d integer            c cons
//	L cons-or-nil         p procedure          r primitive
//	S string              P io-port            h hash
//	F f-expr              f float              u user-defined
//	b t-or-nil            i input-port         o output-port
//	Z symbol-or-string    a integer-or-float   x function
//	I input-port-or-string
//	l defined-procedure
//	C symbol-string-or-integer
//	A any-expression
package validate

import (
	"github.com/moneytech/liblisp/internal/cell"
)

type check struct {
	name string
	ok   func(*cell.T) bool
}

//nolint:gochecknoglobals
var checks = map[byte]check{
	's': {"symbol", cell.IsSym},
	'd': {"integer", cell.IsInt},
	'c': {"cons", cell.IsCons},
	'L': {"cons-or-nil", func(c *cell.T) bool { return cell.IsCons(c) || cell.IsNil(c) }},
	'p': {"procedure", cell.IsProc},
	'r': {"subroutine", cell.IsSubr},
	'S': {"string", cell.IsStr},
	'P': {"io-port", cell.IsIO},
	'h': {"hash", cell.IsHash},
	'F': {"f-expr", cell.IsFProc},
	'f': {"float", cell.IsFlt},
	'u': {"user-defined", cell.IsUser},
	'b': {"t-or-nil", func(c *cell.T) bool { return cell.IsNil(c) || c == cell.Tee }},
	'i': {"input-port", cell.IsIn},
	'o': {"output-port", cell.IsOut},
	'Z': {"symbol-or-string", cell.IsAsciiz},
	'a': {"integer-or-float", cell.IsArith},
	'x': {"function", cell.IsFunc},
	'I': {"input-port-or-string", func(c *cell.T) bool { return cell.IsIn(c) || cell.IsStr(c) }},
	'l': {"defined-procedure", func(c *cell.T) bool { return cell.IsProc(c) || cell.IsFProc(c) }},
	'C': {"symbol-string-or-integer", func(c *cell.T) bool { return cell.IsAsciiz(c) || cell.IsInt(c) }},
	'A': {"any-expression", func(*cell.T) bool { return true }},
}

// Diagnostic describes a validation failure: the format string, the
// declared length, the expected argument kinds, the offending argument
// list, and where the walk failed. Position is 1-based; zero means the
// argument count did not match the format.
type Diagnostic struct {
	Format    string
	Message   string
	Expected  int
	Kinds     []string
	Args      *cell.T
	Position  int
	BadFormat bool
}

// Count returns the number of specifiers in a format string.
func Count(format string) int {
	n := 0

	for i := 0; i < len(format); i++ {
		if format[i] != ' ' {
			n++
		}
	}

	return n
}

// Kinds expands a format string to its argument kind names. Unknown
// characters expand to "?".
func Kinds(format string) []string {
	kinds := []string{}

	for i := 0; i < len(format); i++ {
		c := format[i]
		if c == ' ' {
			continue
		}

		if k, ok := checks[c]; ok {
			kinds = append(kinds, k.name)
		} else {
			kinds = append(kinds, "?")
		}
	}

	return kinds
}

// Args walks format and args in lock step. It returns nil when every
// argument matches, and a Diagnostic describing the first failure
// otherwise. A closed (already released) argument never matches.
func Args(msg, format string, args *cell.T) *Diagnostic {
	expected := Count(format)

	diag := func(pos int, bad bool) *Diagnostic {
		return &Diagnostic{
			Format:    format,
			Message:   msg,
			Expected:  expected,
			Kinds:     Kinds(format),
			Args:      args,
			Position:  pos,
			BadFormat: bad,
		}
	}

	if cell.Count(args) != expected {
		return diag(0, false)
	}

	rest := args
	pos := 0

	for i := 0; i < len(format); i++ {
		c := format[i]
		if c == ' ' {
			continue
		}

		pos++

		k, ok := checks[c]
		if !ok {
			return diag(pos, true)
		}

		x := cell.Car(rest)
		if x.Closed() || !k.ok(x) {
			return diag(pos, false)
		}

		rest = cell.Cdr(rest)
	}

	return nil
}

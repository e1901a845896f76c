// Released under an MIT license. See LICENSE.

// Package print renders cell trees to an output port, in plain or
// indented ("pretty") form. The rendering round-trips through the reader
// for atoms and lists of atoms; strings are escaped with the same set the
// reader accepts. There is no cycle detection: a configured maximum depth
// aborts a runaway sub-object with an ellipsis instead.
package print

import (
	"strconv"
	"strings"

	"github.com/moneytech/liblisp/internal/cell"
	"github.com/moneytech/liblisp/internal/port"
)

// DefaultMax is the default recursion depth guard.
const DefaultMax = 2048

const (
	reset   = "\x1b[0m"
	red     = "\x1b[31m"
	yellow  = "\x1b[33m"
	magenta = "\x1b[35m"
	bold    = "\x1b[1m"
)

// T (printer) holds printing configuration.
type T struct {
	// Max is the recursion depth guard. Zero means DefaultMax.
	Max int

	// User prints a user-defined cell. It returns false if the cell's
	// type has no print hook, in which case an opaque form is used.
	User func(o *port.T, c *cell.T, depth int) bool
}

type printer = T

// Print renders c to o. It returns false once the port reports a failure.
func (p *printer) Print(o *port.T, c *cell.T, depth int) bool {
	max := p.Max
	if max == 0 {
		max = DefaultMax
	}

	if depth > max {
		o.Puts(" ...")

		return !o.Failed()
	}

	switch c.Tag() {
	case cell.Symbol:
		p.color(o, yellow)
		o.Puts(cell.Text(c))
		p.color(o, reset)
	case cell.Integer:
		p.color(o, magenta)
		o.Putd(cell.IntVal(c))
		p.color(o, reset)
	case cell.Float:
		p.color(o, magenta)
		o.Puts(flt(cell.FltVal(c)))
		p.color(o, reset)
	case cell.String:
		p.Str(o, cell.Text(c))
	case cell.Cons:
		p.list(o, c, depth)
	case cell.Proc:
		p.closure(o, "lambda", c, depth)
	case cell.FProc:
		p.closure(o, "flambda", c, depth)
	case cell.Subr:
		p.opaque(o, "subr")
	case cell.IO:
		if cell.IsIn(c) {
			p.opaque(o, "io:in")
		} else {
			p.opaque(o, "io:out")
		}
	case cell.Hash:
		p.hash(o, c, depth)
	case cell.User:
		if p.User == nil || !p.User(o, c, depth) {
			p.opaque(o, "user:"+strconv.Itoa(c.UserType()))
		}
	default:
		p.opaque(o, "invalid")
	}

	return !o.Failed()
}

func (p *printer) color(o *port.T, code string) {
	if o.Color() {
		o.Puts(code)
	}
}

func (p *printer) opaque(o *port.T, kind string) {
	p.color(o, bold)
	o.Puts("<" + kind + ">")
	p.color(o, reset)
}

func (p *printer) indent(o *port.T, depth int) {
	if !o.Pretty() {
		o.Putc(' ')

		return
	}

	o.Putc('\n')

	for i := 0; i < depth; i++ {
		o.Putc(' ')
	}
}

func (p *printer) list(o *port.T, c *cell.T, depth int) {
	o.Putc('(')

	for {
		p.Print(o, cell.Car(c), depth+1)

		rest := cell.Cdr(c)
		if rest == cell.Nil {
			break
		}

		if !cell.IsCons(rest) {
			// Dotted tail.
			o.Puts(" . ")
			p.Print(o, rest, depth+1)

			break
		}

		if cell.IsCons(cell.Car(rest)) {
			p.indent(o, depth+1)
		} else {
			o.Putc(' ')
		}

		c = rest
	}

	o.Putc(')')
}

func (p *printer) closure(o *port.T, kind string, c *cell.T, depth int) {
	o.Puts("(" + kind + " ")
	p.Print(o, cell.Formals(c), depth+1)

	for b := cell.Body(c); cell.IsCons(b); b = cell.Cdr(b) {
		o.Putc(' ')
		p.Print(o, cell.Car(b), depth+1)
	}

	o.Putc(')')
}

// hash prints a table as a (hash-create k1 v1 ...) form whose evaluation
// reproduces an equivalent table. This is a serialization convention, not
// a structural truth.
func (p *printer) hash(o *port.T, c *cell.T, depth int) {
	o.Puts("(hash-create")

	cell.HashVal(c).Foreach(func(k string, v any) any {
		o.Putc(' ')
		p.Str(o, k)
		o.Putc(' ')

		if vc, ok := v.(*cell.T); ok {
			o.Putc('\'')
			p.Print(o, vc, depth+1)
		} else {
			p.opaque(o, "opaque")
		}

		return nil
	})

	o.Putc(')')
}

// Str writes s as a quoted, escaped lisp string.
func (p *printer) Str(o *port.T, s string) {
	p.color(o, red)
	o.Putc('"')

	for i := 0; i < len(s); i++ {
		c := s[i]

		switch c {
		case '\\':
			o.Puts(`\\`)
		case '\n':
			o.Puts(`\n`)
		case '\t':
			o.Puts(`\t`)
		case '\r':
			o.Puts(`\r`)
		case '"':
			o.Puts(`\"`)
		default:
			if c < 32 || c > 126 {
				o.Putc('\\')
				o.Puts(octal(c))
			} else {
				o.Putc(c)
			}
		}
	}

	o.Putc('"')
	p.color(o, reset)
}

func octal(c byte) string {
	s := strconv.FormatUint(uint64(c), 8)

	return "000"[:3-len(s)] + s
}

// flt formats a float so it reads back as a float: a bare integer value
// gets a trailing ".0".
func flt(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)

	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}

	return s
}

// Text renders c to a fresh string using printer p.
func (p *printer) Text(c *cell.T) string {
	o := port.Sout()
	p.Print(o, c, 0)

	return o.String()
}

// Released under an MIT license. See LICENSE.

package lisp

import (
	"os"
	"sync/atomic"

	"github.com/moneytech/liblisp/internal/cell"
	"github.com/moneytech/liblisp/internal/validate"
)

// Kind classifies a condition.
type Kind uint8

// Condition kinds.
const (
	Thrown Kind = iota
	TypeMismatch
	ArityOrFormat
	UnboundSymbol
	RecursionLimitExceeded
	Interrupted
)

// Condition is the value thrown for failures that unwind to the nearest
// Protect. Reported is set once the diagnostic has been written to the
// logging port, so the REPL does not print it a second time.
type Condition struct {
	Kind     Kind
	Msg      string
	Form     *cell.T
	Reported bool
}

func (c *Condition) Error() string {
	return c.Msg
}

// Protect runs f and catches any condition raised during it. It is the
// recovery point evaluation unwinds to; a nested evaluation that wants
// its own recovery scope simply nests Protect, and the previous scope is
// restored on every exit path. The root stack is unwound to its height
// at entry when a condition is caught.
func (l *lisp) Protect(f func() *cell.T) (v *cell.T, err error) {
	fence := l.Fence()

	defer func() {
		r := recover()
		if r == nil {
			return
		}

		l.Restore(fence)

		switch c := r.(type) {
		case *Condition:
			err = c
		case *cell.Mismatch:
			err = &Condition{Kind: TypeMismatch, Msg: c.Error(), Form: c.Got}
		default:
			panic(r)
		}

		if l.errorsHalt {
			l.Report(err.Error(), nil)
			os.Exit(1)
		}
	}()

	return f(), nil
}

// Recover writes a structured (error ...) diagnostic to the logging port
// and unwinds to the nearest Protect.
func (l *lisp) Recover(kind Kind, msg string, form *cell.T) {
	l.Report(msg, form)
	panic(&Condition{Kind: kind, Msg: msg, Form: form, Reported: true})
}

// Report writes an (error "msg" 'form) diagnostic to the logging port.
func (l *lisp) Report(msg string, form *cell.T) {
	e := l.log
	p := &l.printer

	e.Puts("(error ")
	p.Str(e, msg)

	if form != nil {
		e.Puts(" '")
		p.Print(e, form, 1)
	}

	e.Puts(")\n")
}

// Validate checks args against a primitive's format string. On failure
// it writes the structured validation diagnostic and, when unwind is
// set, throws; otherwise it returns false and the caller is expected to
// produce the Error sentinel. An invalid format string always throws.
func (l *lisp) Validate(msg, format string, args *cell.T, unwind bool) bool {
	d := validate.Args(msg, format, args)
	if d == nil {
		return true
	}

	if d.BadFormat {
		l.Recover(ArityOrFormat, "invalid validation format", args)
	}

	l.reportValidation(d)

	if unwind {
		panic(&Condition{Kind: ArityOrFormat, Msg: "validation failed", Form: args, Reported: true})
	}

	return false
}

func (l *lisp) reportValidation(d *validate.Diagnostic) {
	e := l.log
	p := &l.printer

	e.Puts("(error 'validation ")
	p.Str(e, d.Message)

	e.Puts(" '(expected-length ")
	e.Putd(int64(d.Expected))
	e.Puts(")")

	e.Puts(" '(expected-arguments")

	for _, k := range d.Kinds {
		e.Puts(" " + k)
	}

	e.Puts(")")

	if d.Position > 0 {
		e.Puts(" '(position ")
		e.Putd(int64(d.Position))
		e.Puts(")")
	}

	e.Putc(' ')
	p.Print(e, d.Args, 1)
	e.Puts(")\n")
}

// Interrupt sets the interrupt flag. It is the one entry point that may
// be called from another goroutine (a signal handler); the evaluator
// observes the flag between steps and aborts the current top-level form.
func (l *lisp) Interrupt() {
	atomic.StoreInt32(&l.sig, 1)
}

func (l *lisp) interrupted() bool {
	return atomic.SwapInt32(&l.sig, 0) != 0
}

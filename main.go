// Released under an MIT license. See LICENSE.

// Liblisp is a small lisp interpreter. It reads forms from a script, an
// expression passed on the command line, or standard input, and prints
// the value of each one. When standard input is a terminal it offers a
// prompt and a line editor.
package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/moneytech/liblisp/internal/cell"
	"github.com/moneytech/liblisp/internal/lisp"
	"github.com/moneytech/liblisp/internal/options"
	"github.com/moneytech/liblisp/internal/port"
	"github.com/moneytech/liblisp/internal/read"
	"github.com/moneytech/liblisp/internal/subr"
	"github.com/moneytech/liblisp/internal/ui"
)

func main() {
	os.Exit(run())
}

func run() int {
	options.Parse()

	out := port.Fout(os.Stdout)
	out.SetColor(options.Color())
	out.SetPretty(options.Interactive())

	l, err := lisp.NewWith(port.Fin(os.Stdin), out, port.Fout(os.Stderr))
	if err != nil {
		fmt.Fprintln(os.Stderr, "liblisp:", err)

		return 1
	}
	defer l.Destroy()

	l.Logging().SetColor(options.Color())
	l.SetErrorsHalt(options.Halt())

	subr.Install(l)

	arguments(l)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, syscall.SIGINT)

	go func() {
		for range interrupt {
			l.Interrupt()
		}
	}()

	if e := options.Expression(); e != "" {
		return repl(l, port.Sin(e), false)
	}

	if s := options.Script(); s != "" {
		f, err := os.Open(s)
		if err != nil {
			fmt.Fprintln(os.Stderr, "liblisp:", err)

			return 1
		}
		defer f.Close()

		return repl(l, port.Fin(f), false)
	}

	if options.Interactive() {
		prompt := ""
		if options.Prompt() {
			prompt = "> "
		}

		u := ui.New(prompt)
		defer u.Close()

		return repl(l, port.Fin(u), true)
	}

	return repl(l, l.Input(), false)
}

// arguments binds *args* to the list of positional parameters.
func arguments(l *lisp.T) {
	fence := l.Fence()
	defer l.Restore(fence)

	args := options.Args()

	list := cell.Nil
	for i := len(args) - 1; i >= 0; i-- {
		list = l.Root(l.Cons(l.Root(l.Str(args[i])), list))
	}

	l.AddCell("*args*", list)
}

// repl reads forms from in and evaluates them until the stream is
// exhausted. A form that fails prints its diagnostic and the loop moves
// on to the next form. The exit status reflects whether any form failed.
func repl(l *lisp.T, in *port.T, interactive bool) int {
	r := read.New(l, in)
	o := l.Output()

	status := 0

	for {
		v, err := r.Read()
		if err == io.EOF {
			return status
		}

		if err != nil {
			l.Report(err.Error(), nil)

			status = 1

			continue
		}

		fence := l.Fence()
		l.Root(v)

		v, err = l.Protect(func() *cell.T {
			return l.Eval(v)
		})
		if err != nil {
			c, ok := err.(*lisp.Condition)
			if !ok || !c.Reported {
				l.Report(err.Error(), nil)
			}

			l.Restore(fence)

			status = 1

			continue
		}

		l.Root(v)
		l.Printer().Print(o, v, 0)
		o.Putc('\n')
		l.Restore(fence)

		if interactive {
			status = 0
		}
	}
}

// Released under an MIT license. See LICENSE.

package subr

import (
	"os"
	"time"

	"github.com/moneytech/liblisp/internal/cell"
	"github.com/moneytech/liblisp/internal/lisp"
)

// eval evaluates its first argument, optionally in a given environment.
// It installs its own recovery scope so a failure inside the nested
// evaluation produces the Error sentinel here instead of unwinding the
// enclosing evaluation; the previous scope is back in effect when this
// returns, success or failure.
func eval(l *lisp.T, args *cell.T) *cell.T {
	n := cell.Count(args)
	if n < 1 || n > 2 {
		l.Recover(lisp.ArityOrFormat, "(eval expr env?)", args)
	}

	env := l.TopEnv()

	if n == 2 {
		e := cell.Cadr(args)
		if !cell.IsCons(e) {
			return cell.Error
		}

		env = e
	}

	v, err := l.Protect(func() *cell.T {
		return l.EvalIn(cell.Car(args), env)
	})
	if err != nil {
		return cell.Error
	}

	return v
}

// timedEval is eval wrapped in a wall-clock timer; it returns
// (seconds . result).
func timedEval(l *lisp.T, args *cell.T) *cell.T {
	begin := time.Now()

	v := eval(l, args)

	fence := l.Fence()
	defer l.Restore(fence)

	l.Root(v)
	t := l.Root(l.Float(time.Since(begin).Seconds()))

	return l.Cons(t, v)
}

// gc with no arguments forces a collection; with one integer argument
// it sets the collection state. Turning collection off is permanent.
func gc(l *lisp.T, args *cell.T) *cell.T {
	if args == cell.Nil {
		l.Collect()

		return cell.Tee
	}

	if cell.Count(args) != 1 || !cell.IsInt(cell.Car(args)) {
		l.Recover(lisp.ArityOrFormat, "(gc state?)", args)
	}

	switch lisp.GCState(cell.IntVal(cell.Car(args))) {
	case lisp.GCOn:
		l.SetGC(lisp.GCOn)
	case lisp.GCPostpone:
		l.SetGC(lisp.GCPostpone)
	case lisp.GCOff:
		l.SetGC(lisp.GCOff)
	default:
		return cell.Error
	}

	return tee(l.GCStatus() != lisp.GCOff)
}

func getEnv(l *lisp.T, args *cell.T) *cell.T {
	v, ok := os.LookupEnv(cell.Text(cell.Car(args)))
	if !ok {
		return cell.Nil
	}

	return l.Str(v)
}

func now(l *lisp.T, args *cell.T) *cell.T {
	if args != cell.Nil {
		l.Recover(lisp.ArityOrFormat, "(time)", args)
	}

	return l.Int(time.Now().Unix())
}

// date returns the broken-down UTC time as (year month day hour minute
// second).
func date(l *lisp.T, args *cell.T) *cell.T {
	if args != cell.Nil {
		l.Recover(lisp.ArityOrFormat, "(date)", args)
	}

	fence := l.Fence()
	defer l.Restore(fence)

	u := time.Now().UTC()

	out := cell.Nil
	for _, v := range []int{u.Second(), u.Minute(), u.Hour(), u.Day(), int(u.Month()), u.Year()} {
		out = l.Root(l.Cons(l.Root(l.Int(int64(v))), out))
	}

	return out
}

func typeOf(l *lisp.T, args *cell.T) *cell.T {
	return l.Int(int64(cell.Car(args).Tag()))
}

func random(l *lisp.T, args *cell.T) *cell.T {
	if args != cell.Nil {
		l.Recover(lisp.ArityOrFormat, "(random)", args)
	}

	return l.Int(int64(l.Random() >> 1))
}

func seed(l *lisp.T, args *cell.T) *cell.T {
	l.Seed(uint64(cell.IntVal(cell.Car(args))), uint64(cell.IntVal(cell.Cadr(args))))

	return cell.Tee
}

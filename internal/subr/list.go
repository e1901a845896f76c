// Released under an MIT license. See LICENSE.

package subr

import (
	"github.com/moneytech/liblisp/internal/cell"
	"github.com/moneytech/liblisp/internal/lisp"
)

func consCell(l *lisp.T, args *cell.T) *cell.T {
	return l.Cons(cell.Car(args), cell.Cadr(args))
}

func car(l *lisp.T, args *cell.T) *cell.T {
	return cell.Car(cell.Car(args))
}

func cdr(l *lisp.T, args *cell.T) *cell.T {
	return cell.Cdr(cell.Car(args))
}

// list returns its already evaluated argument list.
func list(l *lisp.T, args *cell.T) *cell.T {
	return args
}

func length(l *lisp.T, args *cell.T) *cell.T {
	x := cell.Car(args)

	switch {
	case x == cell.Nil:
		return l.Int(0)
	case cell.IsCons(x):
		// The stored length, not a spine walk: set-cdr! can make the
		// spine cyclic and walking it would never terminate.
		return l.Int(int64(x.Length()))
	case cell.IsAsciiz(x):
		return l.Int(int64(len(cell.Text(x))))
	case cell.IsHash(x):
		return l.Int(int64(cell.HashVal(x).Size()))
	}

	return cell.Error
}

func reverse(l *lisp.T, args *cell.T) *cell.T {
	x := cell.Car(args)

	switch {
	case x == cell.Nil:
		return cell.Nil
	case cell.IsCons(x):
		fence := l.Fence()
		defer l.Restore(fence)

		out := cell.Nil
		for ; cell.IsCons(x); x = cell.Cdr(x) {
			out = l.Root(l.Cons(cell.Car(x), out))
		}

		return out
	case cell.IsAsciiz(x):
		s := []byte(cell.Text(x))
		for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
			s[i], s[j] = s[j], s[i]
		}

		return l.Str(string(s))
	}

	return cell.Error
}

func assoc(l *lisp.T, args *cell.T) *cell.T {
	key := cell.Car(args)

	for a := cell.Cadr(args); cell.IsCons(a); a = cell.Cdr(a) {
		p := cell.Car(a)
		if cell.IsCons(p) && cell.Eq(cell.Car(p), key) {
			return p
		}
	}

	return cell.Nil
}

func setCar(l *lisp.T, args *cell.T) *cell.T {
	cell.SetCar(cell.Car(args), cell.Cadr(args))

	return cell.Car(args)
}

func setCdr(l *lisp.T, args *cell.T) *cell.T {
	cell.SetCdr(cell.Car(args), cell.Cadr(args))

	return cell.Car(args)
}

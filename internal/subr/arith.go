// Released under an MIT license. See LICENSE.

package subr

import (
	"github.com/moneytech/liblisp/internal/cell"
	"github.com/moneytech/liblisp/internal/lisp"
)

// binop applies the matching operation to two numbers, promoting to
// float when either operand is a float.
func binop(l *lisp.T, args *cell.T, fi func(a, b int64) (int64, bool), ff func(a, b float64) (float64, bool)) *cell.T {
	x, y := cell.Car(args), cell.Cadr(args)

	if cell.IsInt(x) && cell.IsInt(y) {
		v, ok := fi(cell.IntVal(x), cell.IntVal(y))
		if !ok {
			return cell.Error
		}

		return l.Int(v)
	}

	v, ok := ff(fltval(x), fltval(y))
	if !ok {
		return cell.Error
	}

	return l.Float(v)
}

func fltval(c *cell.T) float64 {
	if cell.IsInt(c) {
		return float64(cell.IntVal(c))
	}

	return cell.FltVal(c)
}

func sum(l *lisp.T, args *cell.T) *cell.T {
	return binop(l, args,
		func(a, b int64) (int64, bool) { return a + b, true },
		func(a, b float64) (float64, bool) { return a + b, true })
}

func sub(l *lisp.T, args *cell.T) *cell.T {
	return binop(l, args,
		func(a, b int64) (int64, bool) { return a - b, true },
		func(a, b float64) (float64, bool) { return a - b, true })
}

func prod(l *lisp.T, args *cell.T) *cell.T {
	return binop(l, args,
		func(a, b int64) (int64, bool) { return a * b, true },
		func(a, b float64) (float64, bool) { return a * b, true })
}

// div returns the Error sentinel on division by zero.
func div(l *lisp.T, args *cell.T) *cell.T {
	return binop(l, args,
		func(a, b int64) (int64, bool) { return safeDiv(a, b) },
		func(a, b float64) (float64, bool) {
			if b == 0 {
				return 0, false
			}

			return a / b, true
		})
}

func safeDiv(a, b int64) (int64, bool) {
	if b == 0 {
		return 0, false
	}

	return a / b, true
}

func mod(l *lisp.T, args *cell.T) *cell.T {
	b := cell.IntVal(cell.Cadr(args))
	if b == 0 {
		return cell.Error
	}

	return l.Int(cell.IntVal(cell.Car(args)) % b)
}

func band(l *lisp.T, args *cell.T) *cell.T {
	return l.Int(cell.IntVal(cell.Car(args)) & cell.IntVal(cell.Cadr(args)))
}

func bor(l *lisp.T, args *cell.T) *cell.T {
	return l.Int(cell.IntVal(cell.Car(args)) | cell.IntVal(cell.Cadr(args)))
}

func bxor(l *lisp.T, args *cell.T) *cell.T {
	return l.Int(cell.IntVal(cell.Car(args)) ^ cell.IntVal(cell.Cadr(args)))
}

func binv(l *lisp.T, args *cell.T) *cell.T {
	return l.Int(^cell.IntVal(cell.Car(args)))
}

// compare orders numbers numerically and symbols or strings by text.
// Anything else is a recoverable failure.
func compare(args *cell.T) (int, bool) {
	x, y := cell.Car(args), cell.Cadr(args)

	switch {
	case cell.IsArith(x) && cell.IsArith(y):
		a, b := fltval(x), fltval(y)

		switch {
		case a < b:
			return -1, true
		case a > b:
			return 1, true
		}

		return 0, true
	case cell.IsAsciiz(x) && cell.IsAsciiz(y):
		a, b := cell.Text(x), cell.Text(y)

		switch {
		case a < b:
			return -1, true
		case a > b:
			return 1, true
		}

		return 0, true
	}

	return 0, false
}

func greater(l *lisp.T, args *cell.T) *cell.T {
	c, ok := compare(args)
	if !ok {
		return cell.Error
	}

	return tee(c > 0)
}

func less(l *lisp.T, args *cell.T) *cell.T {
	c, ok := compare(args)
	if !ok {
		return cell.Error
	}

	return tee(c < 0)
}

func eq(l *lisp.T, args *cell.T) *cell.T {
	x, y := cell.Car(args), cell.Cadr(args)

	if cell.IsUser(x) && cell.IsUser(y) {
		return tee(l.UserEqual(x, y))
	}

	return tee(cell.Eq(x, y))
}

func not(l *lisp.T, args *cell.T) *cell.T {
	return tee(cell.Car(args) == cell.Nil)
}

// and evaluates to t when no argument is nil. The argument list has
// already been evaluated by the time a primitive runs, so there is no
// short-circuiting.
func and(l *lisp.T, args *cell.T) *cell.T {
	for a := args; cell.IsCons(a); a = cell.Cdr(a) {
		if cell.Car(a) == cell.Nil {
			return cell.Nil
		}
	}

	return cell.Tee
}

// or evaluates to t when any argument is non-nil. Like and, it does not
// short-circuit.
func or(l *lisp.T, args *cell.T) *cell.T {
	for a := args; cell.IsCons(a); a = cell.Cdr(a) {
		if cell.Car(a) != cell.Nil {
			return cell.Tee
		}
	}

	return cell.Nil
}

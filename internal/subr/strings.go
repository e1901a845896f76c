// Released under an MIT license. See LICENSE.

package subr

import (
	"github.com/moneytech/liblisp/internal/cell"
	"github.com/moneytech/liblisp/internal/lisp"
)

func scons(l *lisp.T, args *cell.T) *cell.T {
	return l.Str(cell.Text(cell.Car(args)) + cell.Text(cell.Cadr(args)))
}

func scar(l *lisp.T, args *cell.T) *cell.T {
	s := cell.Text(cell.Car(args))
	if s == "" {
		return cell.Error
	}

	return l.Str(s[:1])
}

func scdr(l *lisp.T, args *cell.T) *cell.T {
	s := cell.Text(cell.Car(args))
	if s == "" {
		return cell.Error
	}

	return l.Str(s[1:])
}

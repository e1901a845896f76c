// Released under an MIT license. See LICENSE.

package subr

import (
	"github.com/moneytech/liblisp/internal/cell"
	"github.com/moneytech/liblisp/internal/hash"
	"github.com/moneytech/liblisp/internal/lisp"
)

const hashDefaultBins = 127

// hashCreate builds a table from alternating keys and values. Keys must
// be symbols or strings. This is also what the printer's serialized
// (hash-create ...) form evaluates back through.
func hashCreate(l *lisp.T, args *cell.T) *cell.T {
	if cell.Count(args)%2 != 0 {
		l.Recover(lisp.ArityOrFormat, "(hash-create key val ...)", args)
	}

	h := hash.Create(hashDefaultBins)

	for a := args; cell.IsCons(a); a = cell.Cddr(a) {
		k := cell.Car(a)
		if !cell.IsAsciiz(k) {
			l.Recover(lisp.TypeMismatch, "hash keys must be symbols or strings", k)
		}

		h.Insert(cell.Text(k), cell.Cadr(a))
	}

	return l.Table(h)
}

func hashLookup(l *lisp.T, args *cell.T) *cell.T {
	h := cell.HashVal(cell.Car(args))

	v, ok := h.Lookup(cell.Text(cell.Cadr(args)))
	if !ok {
		return cell.Nil
	}

	return v.(*cell.T)
}

func hashInsert(l *lisp.T, args *cell.T) *cell.T {
	x := cell.Car(args)
	cell.HashVal(x).Insert(cell.Text(cell.Cadr(args)), cell.Caddr(args))

	return x
}

// Released under an MIT license. See LICENSE.

//go:build !unix

package subr

import (
	"github.com/moneytech/liblisp/internal/cell"
	"github.com/moneytech/liblisp/internal/lisp"
)

func installRaise(l *lisp.T) {
	l.Register("raise", "d", "send a signal to this process", raise)
}

func raise(l *lisp.T, args *cell.T) *cell.T {
	return cell.Error
}

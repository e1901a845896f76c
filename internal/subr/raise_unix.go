// Released under an MIT license. See LICENSE.

//go:build unix

package subr

import (
	"golang.org/x/sys/unix"

	"github.com/moneytech/liblisp/internal/cell"
	"github.com/moneytech/liblisp/internal/lisp"
)

// installRaise registers the raise primitive and the signal constants.
func installRaise(l *lisp.T) {
	l.Register("raise", "d", "send a signal to this process", raise)

	for _, c := range []struct {
		name string
		sig  unix.Signal
	}{
		{"*sig-abrt*", unix.SIGABRT},
		{"*sig-fpe*", unix.SIGFPE},
		{"*sig-ill*", unix.SIGILL},
		{"*sig-int*", unix.SIGINT},
		{"*sig-segv*", unix.SIGSEGV},
		{"*sig-term*", unix.SIGTERM},
	} {
		l.AddCell(c.name, l.Int(int64(c.sig)))
	}
}

func raise(l *lisp.T, args *cell.T) *cell.T {
	sig := unix.Signal(cell.IntVal(cell.Car(args)))

	if unix.Kill(unix.Getpid(), sig) != nil {
		return cell.Error
	}

	return cell.Tee
}

// Released under an MIT license. See LICENSE.

package subr

import (
	"io"
	"os"

	"github.com/moneytech/liblisp/internal/cell"
	"github.com/moneytech/liblisp/internal/lisp"
	"github.com/moneytech/liblisp/internal/port"
	"github.com/moneytech/liblisp/internal/read"
)

func inputp(l *lisp.T, args *cell.T) *cell.T {
	return tee(cell.IsIn(cell.Car(args)))
}

func outputp(l *lisp.T, args *cell.T) *cell.T {
	return tee(cell.IsOut(cell.Car(args)))
}

func eofp(l *lisp.T, args *cell.T) *cell.T {
	return tee(cell.PortVal(cell.Car(args)).IsEOF())
}

func getChar(l *lisp.T, args *cell.T) *cell.T {
	return l.Int(int64(cell.PortVal(cell.Car(args)).Getc()))
}

func putChar(l *lisp.T, args *cell.T) *cell.T {
	p := cell.PortVal(cell.Car(args))

	if p.Putc(byte(cell.IntVal(cell.Cadr(args)))) == port.EOF {
		return cell.Error
	}

	return cell.Cadr(args)
}

func put(l *lisp.T, args *cell.T) *cell.T {
	p := cell.PortVal(cell.Car(args))

	if p.Puts(cell.Text(cell.Cadr(args))) == port.EOF {
		return cell.Error
	}

	return cell.Cadr(args)
}

// open makes a port: file input or output from a path, string input
// from the text itself, string or null output regardless of the text.
func open(l *lisp.T, args *cell.T) *cell.T {
	kind := port.Kind(cell.IntVal(cell.Car(args)))
	text := cell.Text(cell.Cadr(args))

	switch kind {
	case port.FileIn:
		f, err := os.Open(text)
		if err != nil {
			return cell.Error
		}

		return l.Port(port.Fin(f))
	case port.FileOut:
		f, err := os.Create(text)
		if err != nil {
			return cell.Error
		}

		return l.Port(port.Fout(f))
	case port.StrIn:
		return l.Port(port.Sin(text))
	case port.StrOut:
		return l.Port(port.Sout())
	case port.NullOut:
		return l.Port(port.Null())
	}

	return cell.Error
}

// flushPort with no arguments flushes the instance's output port; with
// one port argument it flushes that port. Success is t, failure nil.
func flushPort(l *lisp.T, args *cell.T) *cell.T {
	if args == cell.Nil {
		return tee(l.Output().Flush())
	}

	if cell.Count(args) != 1 || !cell.IsIO(cell.Car(args)) {
		l.Recover(lisp.ArityOrFormat, "(flush port?)", args)
	}

	return tee(cell.PortVal(cell.Car(args)).Flush())
}

func tell(l *lisp.T, args *cell.T) *cell.T {
	return l.Int(cell.PortVal(cell.Car(args)).Tell())
}

// seekPort moves a port's position and returns the new position, or -1
// when the port cannot seek there.
func seekPort(l *lisp.T, args *cell.T) *cell.T {
	whence := cell.IntVal(cell.Caddr(args))

	switch int(whence) {
	case io.SeekStart, io.SeekCurrent, io.SeekEnd:
	default:
		l.Recover(lisp.ArityOrFormat, "(seek port offset whence)", args)
	}

	p := cell.PortVal(cell.Car(args))

	return l.Int(p.Seek(cell.IntVal(cell.Cadr(args)), int(whence)))
}

func closePort(l *lisp.T, args *cell.T) *cell.T {
	if cell.PortVal(cell.Car(args)).Close() != nil {
		return cell.Error
	}

	return cell.Tee
}

// readExpr parses one expression from an input port or a string. End of
// stream and parse errors both produce the Error sentinel; the caller
// can distinguish them with eof? on a port.
func readExpr(l *lisp.T, args *cell.T) *cell.T {
	x := cell.Car(args)

	var r *read.T
	if cell.IsStr(x) {
		r = read.New(l, port.Sin(cell.Text(x)))
	} else {
		r = read.New(l, cell.PortVal(x))
	}

	v, err := r.Read()
	if err != nil {
		if err != io.EOF {
			l.Report(err.Error(), x)
		}

		return cell.Error
	}

	return v
}

func printExpr(l *lisp.T, args *cell.T) *cell.T {
	o := cell.PortVal(cell.Car(args))

	if !l.Printer().Print(o, cell.Cadr(args), 0) {
		return cell.Error
	}

	o.Putc('\n')

	return cell.Cadr(args)
}

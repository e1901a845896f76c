// Released under an MIT license. See LICENSE.

package lisp

import (
	"github.com/moneytech/liblisp/internal/cell"
)

// Eval evaluates exp in the global environment.
func (l *lisp) Eval(exp *cell.T) *cell.T {
	return l.eval(exp, 0, l.topEnv)
}

// EvalIn evaluates exp in the given environment.
func (l *lisp) EvalIn(exp, env *cell.T) *cell.T {
	return l.eval(exp, 0, env)
}

// eval walks the expression tree. Literals evaluate to themselves,
// symbols are looked up, and a cons either names a special form or is an
// application. Tail positions (if branches, final body forms) iterate
// instead of recursing so deep tail recursion does not consume depth.
//
// Rooting discipline: every temporary that must survive an allocating
// call is pushed on the root stack; the fence taken at entry is restored
// before each tail iteration (re-rooting the surviving expression and
// environment) and on return.
func (l *lisp) eval(exp *cell.T, depth int, env *cell.T) *cell.T {
	fence := l.Fence()
	defer l.Restore(fence)

	for {
		if depth > l.maxDepth {
			l.Recover(RecursionLimitExceeded, "recursion depth exceeded", exp)
		}

		if l.interrupted() {
			l.Recover(Interrupted, "interrupted", exp)
		}

		switch exp.Tag() {
		case cell.Integer, cell.Float, cell.String, cell.Subr,
			cell.Proc, cell.FProc, cell.IO, cell.Hash, cell.User:
			return exp
		case cell.Symbol:
			if exp == cell.Nil || exp == cell.Error {
				return exp
			}

			b := binding(env, exp)
			if b == nil {
				l.Recover(UnboundSymbol, "unbound symbol", exp)
			}

			return cell.Cdr(b)
		case cell.Cons:
		default:
			l.Recover(Thrown, "cannot evaluate", exp)
		}

		head := cell.Car(exp)
		args := cell.Cdr(exp)

		switch head {
		case cell.Quote:
			if cell.Count(args) != 1 {
				l.Recover(ArityOrFormat, "(quote expr)", exp)
			}

			return cell.Car(args)

		case cell.If:
			n := cell.Count(args)
			if n < 2 || n > 3 {
				l.Recover(ArityOrFormat, "(if test then else?)", exp)
			}

			taken := l.eval(cell.Car(args), depth+1, env)

			if taken != cell.Nil {
				exp = cell.Cadr(args)
			} else if n == 3 {
				exp = cell.Caddr(args)
			} else {
				return cell.Nil
			}

			exp, env = l.rewind(fence, exp, env)

			continue

		case cell.Lambda:
			if !cell.IsCons(args) {
				l.Recover(ArityOrFormat, "(lambda (formals...) body...)", exp)
			}

			l.checkFormals(cell.Car(args), exp)

			return l.Proc(cell.Car(args), cell.Cdr(args), env)

		case cell.FLambda:
			if !cell.IsCons(args) || cell.Count(cell.Car(args)) != 1 ||
				!cell.IsSym(cell.Car(cell.Car(args))) {
				l.Recover(ArityOrFormat, "(flambda (sym) body...)", exp)
			}

			return l.FProc(cell.Car(args), cell.Cdr(args), env)

		case cell.Define:
			if cell.Count(args) != 2 || !cell.IsSym(cell.Car(args)) {
				l.Recover(ArityOrFormat, "(define sym expr)", exp)
			}

			v := l.Root(l.eval(cell.Cadr(args), depth+1, env))

			return l.DefineTop(cell.Car(args), v)

		case cell.Set:
			if cell.Count(args) != 2 || !cell.IsSym(cell.Car(args)) {
				l.Recover(ArityOrFormat, "(set! sym expr)", exp)
			}

			b := binding(env, cell.Car(args))
			if b == nil {
				l.Recover(UnboundSymbol, "unbound symbol", cell.Car(args))
			}

			v := l.eval(cell.Cadr(args), depth+1, env)
			cell.SetCdr(b, v)

			return v

		case cell.Begin:
			if args == cell.Nil {
				return cell.Nil
			}

			for cell.IsCons(cell.Cdr(args)) {
				l.eval(cell.Car(args), depth+1, env)
				args = cell.Cdr(args)
			}

			exp = cell.Car(args)
			exp, env = l.rewind(fence, exp, env)

			continue

		case cell.Cond:
			exp = cell.Nil

			for cl := args; cell.IsCons(cl); cl = cell.Cdr(cl) {
				clause := cell.Car(cl)
				if !cell.IsCons(clause) {
					l.Recover(ArityOrFormat, "(cond (test expr...)...)", clause)
				}

				v := l.eval(cell.Car(clause), depth+1, env)
				if v == cell.Nil {
					continue
				}

				body := cell.Cdr(clause)
				if body == cell.Nil {
					return v
				}

				for cell.IsCons(cell.Cdr(body)) {
					l.eval(cell.Car(body), depth+1, env)
					body = cell.Cdr(body)
				}

				exp = cell.Car(body)

				break
			}

			if exp == cell.Nil {
				return cell.Nil
			}

			exp, env = l.rewind(fence, exp, env)

			continue
		}

		// Application.
		proc := l.Root(l.eval(head, depth+1, env))

		if !cell.IsFunc(proc) {
			l.Recover(TypeMismatch, "not applicable", proc)
		}

		if proc.Tag() == cell.FProc {
			// An f-expression receives its operands unevaluated.
			args = l.Root(args)
		} else {
			args = l.Root(l.evlis(args, depth+1, env))
		}

		if proc.Tag() == cell.Subr {
			if f := cell.Format(proc); f != "" {
				if !l.Validate(cell.Doc(proc), f, args, false) {
					return cell.Error
				}
			}

			fn := cell.Fn(proc).(Func)

			return fn(l, args)
		}

		frame, ok := l.bind(cell.Formals(proc), args, proc.Tag() == cell.FProc)
		if !ok {
			l.Recover(ArityOrFormat, "wrong number of arguments", args)
		}

		l.Root(frame)

		if l.dynamic {
			env = l.Cons(frame, env)
		} else {
			env = l.Cons(frame, cell.Scope(proc))
		}

		l.Root(env)

		body := cell.Body(proc)
		if body == cell.Nil {
			return cell.Nil
		}

		for cell.IsCons(cell.Cdr(body)) {
			l.eval(cell.Car(body), depth+1, env)
			body = cell.Cdr(body)
		}

		exp = cell.Car(body)
		exp, env = l.rewind(fence, exp, env)
	}
}

// rewind pops this call's roots before a tail iteration and re-roots the
// surviving expression and environment, so iterative tail calls run in
// constant root-stack space.
func (l *lisp) rewind(fence int, exp, env *cell.T) (*cell.T, *cell.T) {
	l.Restore(fence)
	l.Root(exp)
	l.Root(env)

	return exp, env
}

// evlis evaluates an argument list left to right, building a fresh list.
func (l *lisp) evlis(args *cell.T, depth int, env *cell.T) *cell.T {
	if args == cell.Nil {
		return cell.Nil
	}

	fence := l.Fence()
	defer l.Restore(fence)

	v := l.Root(l.eval(cell.Car(args), depth, env))
	head := l.Root(l.Cons(v, cell.Nil))
	tail := head

	for rest := cell.Cdr(args); cell.IsCons(rest); rest = cell.Cdr(rest) {
		v = l.Root(l.eval(cell.Car(rest), depth, env))
		n := l.Cons(v, cell.Nil)
		cell.SetCdr(tail, n)
		tail = n
	}

	return head
}

// bind pairs formals with arguments in a new frame. For an f-expression
// the single formal receives the whole (unevaluated) argument list.
func (l *lisp) bind(formals, args *cell.T, raw bool) (*cell.T, bool) {
	fence := l.Fence()
	defer l.Restore(fence)

	if raw {
		pair := l.Root(l.Cons(cell.Car(formals), args))

		return l.Cons(pair, cell.Nil), true
	}

	frame := cell.Nil

	f, a := formals, args
	for {
		if f == cell.Nil && a == cell.Nil {
			return frame, true
		}

		if !cell.IsCons(f) || !cell.IsCons(a) {
			return nil, false
		}

		pair := l.Root(l.Cons(cell.Car(f), cell.Car(a)))
		frame = l.Root(l.Cons(pair, frame))

		f, a = cell.Cdr(f), cell.Cdr(a)
	}
}

func (l *lisp) checkFormals(formals, exp *cell.T) {
	for f := formals; f != cell.Nil; f = cell.Cdr(f) {
		if !cell.IsCons(f) || !cell.IsSym(cell.Car(f)) {
			l.Recover(ArityOrFormat, "(lambda (formals...) body...)", exp)
		}
	}
}

// binding finds the (symbol . value) pair for s, walking the current
// frame and then the enclosing frames.
func binding(env, s *cell.T) *cell.T {
	for e := env; cell.IsCons(e); e = cell.Cdr(e) {
		for f := cell.Car(e); cell.IsCons(f); f = cell.Cdr(f) {
			p := cell.Car(f)
			if cell.IsCons(p) && cell.Car(p) == s {
				return p
			}
		}
	}

	return nil
}

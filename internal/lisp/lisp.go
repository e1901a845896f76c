// Released under an MIT license. See LICENSE.

// Package lisp provides the interpreter: per-instance state, allocation,
// garbage collection, environments, and evaluation. Everything here runs
// on a single goroutine; only the interrupt flag may be touched from
// another one.
package lisp

import (
	"errors"
	"math"
	"os"

	"github.com/moneytech/liblisp/internal/cell"
	"github.com/moneytech/liblisp/internal/hash"
	"github.com/moneytech/liblisp/internal/port"
	"github.com/moneytech/liblisp/internal/print"
	"github.com/moneytech/liblisp/internal/validate"
)

const (
	defaultLen      = 256
	largeLen        = 4096
	collectionPoint = 1 << 20
	maxUserTypes    = 256
)

// Func is the signature of a primitive. A primitive receives its already
// evaluated argument list and returns a cell; it signals recoverable
// failure by returning cell.Error and fatal failure by calling Recover.
type Func func(l *T, args *cell.T) *cell.T

// UserOps are the callbacks a user-defined type registers so the
// collector, printer, and equality primitive can cooperate with it.
type UserOps struct {
	Free  func(c *cell.T)
	Mark  func(c *cell.T, mark func(*cell.T))
	Equal func(a, b *cell.T) bool
	Print func(o *port.T, c *cell.T, depth int) bool
}

// T (lisp) is one interpreter instance.
type T struct {
	in, out, log *port.T

	symbols *hash.T // Interned symbols, name to cell.
	topEnv  *cell.T

	heap     []*cell.T // Every allocated cell; sole source of truth for sweep.
	gcStack  []*cell.T // Explicitly rooted temporaries.
	collectp int
	fuel     int // Allocations between collections.
	gcState  GCState

	maxDepth int
	printer  print.T

	random [2]uint64

	sig int32 // Interrupt flag; see Interrupt.

	dynamic    bool
	errorsHalt bool

	udf     [maxUserTypes]UserOps
	udfUsed int
}

type lisp = T

// New builds an interpreter bound to the process's standard streams.
func New() (*T, error) {
	return NewWith(port.Fin(os.Stdin), port.Fout(os.Stdout), port.Fout(os.Stderr))
}

// NewWith builds an interpreter with the given input, output, and logging
// ports. It either returns a fully initialized instance or an error; no
// partially initialized state escapes.
func NewWith(in, out, log *port.T) (*T, error) {
	if in == nil || !in.IsIn() {
		return nil, errors.New("lisp: input port required")
	}

	if out == nil || !out.IsOut() || log == nil || !log.IsOut() {
		return nil, errors.New("lisp: output ports required")
	}

	l := &lisp{
		in:      in,
		out:     out,
		log:     log,
		symbols: hash.Create(largeLen),
		fuel:    collectionPoint,
		gcState: GCOn,

		maxDepth: largeLen,
		random:   [2]uint64{0xCAFE, 0xBABE},
	}

	l.printer = print.T{Max: print.DefaultMax, User: l.printUser}

	// Discard the first stretch of PRNG output.
	for i := 0; i < defaultLen; i++ {
		l.Random()
	}

	for _, c := range cell.Permanent() {
		l.symbols.Insert(cell.Text(c), c)
	}

	l.topEnv = l.Cons(l.Cons(cell.Nil, cell.Nil), cell.Nil)

	l.DefineTop(cell.Tee, cell.Tee)
	l.AddCell("pi", l.Float(math.Pi))
	l.AddCell("e", l.Float(math.E))
	l.AddCell("*stdin*", l.Port(in))
	l.AddCell("*stdout*", l.Port(out))
	l.AddCell("*stderr*", l.Port(log))

	return l, nil
}

// Destroy tears the instance down, releasing every outstanding cell
// regardless of mark state. The instance must not be used afterwards.
func (l *lisp) Destroy() {
	for i, c := range l.heap {
		l.release(c)
		l.heap[i] = nil
	}

	l.heap = nil
	l.gcStack = nil
	l.gcState = GCOff
}

// alloc registers c on the heap, first running a collection if the
// allocation counter has crossed the collection point. Callers must keep
// every cell they still need reachable from a root across this call.
func (l *lisp) alloc(c *cell.T) *cell.T {
	if l.gcState == GCOn {
		l.collectp++
		if l.collectp > l.fuel {
			l.Collect()
		}
	}

	l.heap = append(l.heap, c)

	return c
}

// Int allocates an integer cell.
func (l *lisp) Int(i int64) *cell.T {
	return l.alloc(cell.NewInt(i))
}

// Float allocates a float cell.
func (l *lisp) Float(f float64) *cell.T {
	return l.alloc(cell.NewFlt(f))
}

// Str allocates a string cell.
func (l *lisp) Str(s string) *cell.T {
	return l.alloc(cell.NewStr(s))
}

// Cons allocates a cons cell.
func (l *lisp) Cons(car, cdr *cell.T) *cell.T {
	return l.alloc(cell.NewCons(car, cdr))
}

// Port allocates an I/O cell wrapping p.
func (l *lisp) Port(p *port.T) *cell.T {
	return l.alloc(cell.NewIO(p))
}

// Table allocates a hash cell wrapping h.
func (l *lisp) Table(h *hash.T) *cell.T {
	return l.alloc(cell.NewHash(h))
}

// Proc allocates a procedure capturing env.
func (l *lisp) Proc(formals, body, env *cell.T) *cell.T {
	return l.alloc(cell.NewProc(formals, body, env))
}

// FProc allocates an f-expression capturing env.
func (l *lisp) FProc(formals, body, env *cell.T) *cell.T {
	return l.alloc(cell.NewFProc(formals, body, env))
}

// Subr allocates a primitive cell.
func (l *lisp) Subr(fn Func, format, doc string) *cell.T {
	return l.alloc(cell.NewSubr(fn, format, doc, validate.Count(format)))
}

// User allocates a user-defined cell of registered type id.
func (l *lisp) User(id int, v any) *cell.T {
	return l.alloc(cell.NewUser(id, v))
}

// Intern returns the canonical symbol cell for name, creating and
// registering it on first use. Two reads of the same text always yield
// the same cell.
func (l *lisp) Intern(name string) *cell.T {
	if v, ok := l.symbols.Lookup(name); ok {
		return v.(*cell.T)
	}

	c := l.alloc(cell.NewSym(name))
	l.symbols.Insert(name, c)

	return c
}

// DefineTop binds sym to val in the global frame and returns val.
func (l *lisp) DefineTop(sym, val *cell.T) *cell.T {
	fence := l.Fence()
	defer l.Restore(fence)

	l.Root(sym)
	l.Root(val)

	pair := l.Root(l.Cons(sym, val))
	cell.SetCar(l.topEnv, l.Cons(pair, cell.Car(l.topEnv)))

	return val
}

// AddCell binds a value under name in the global frame.
func (l *lisp) AddCell(name string, val *cell.T) *cell.T {
	fence := l.Fence()
	defer l.Restore(fence)

	l.Root(val)

	return l.DefineTop(l.Intern(name), val)
}

// Register makes a native function available as a primitive. The format
// string declares the arguments the function will be validated against
// before it runs; an empty format means the primitive checks for itself.
func (l *lisp) Register(name, format, doc string, fn Func) *cell.T {
	return l.AddCell(name, l.Subr(fn, format, doc))
}

// RegisterType adds a user-defined payload type and returns its id.
// At most 256 types can be registered per instance.
func (l *lisp) RegisterType(ops UserOps) (int, error) {
	if l.udfUsed >= maxUserTypes {
		return -1, errors.New("lisp: user type table full")
	}

	id := l.udfUsed
	l.udf[id] = ops
	l.udfUsed++

	return id, nil
}

func (l *lisp) printUser(o *port.T, c *cell.T, depth int) bool {
	h := l.udf[c.UserType()].Print

	return h != nil && h(o, c, depth)
}

// UserEqual compares two user-defined cells with their type's hook.
func (l *lisp) UserEqual(a, b *cell.T) bool {
	if a.UserType() != b.UserType() {
		return false
	}

	h := l.udf[a.UserType()].Equal

	return h != nil && h(a, b)
}

// Input returns the instance's standard input port.
func (l *lisp) Input() *port.T {
	return l.in
}

// Output returns the instance's standard output port.
func (l *lisp) Output() *port.T {
	return l.out
}

// Logging returns the port diagnostics are written to.
func (l *lisp) Logging() *port.T {
	return l.log
}

// Printer returns the instance's printer, configured with its
// user-defined print hooks.
func (l *lisp) Printer() *print.T {
	return &l.printer
}

// TopEnv returns the global environment.
func (l *lisp) TopEnv() *cell.T {
	return l.topEnv
}

// MaxDepth returns the evaluator's recursion limit.
func (l *lisp) MaxDepth() int {
	return l.maxDepth
}

// SetMaxDepth adjusts the evaluator's recursion limit.
func (l *lisp) SetMaxDepth(n int) {
	if n > 0 {
		l.maxDepth = n
	}
}

// SetDynamic switches between lexical (default) and dynamic scoping.
func (l *lisp) SetDynamic(on bool) {
	l.dynamic = on
}

// SetErrorsHalt makes any evaluation error terminate the process.
func (l *lisp) SetErrorsHalt(on bool) {
	l.errorsHalt = on
}

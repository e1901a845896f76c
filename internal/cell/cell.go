// Released under an MIT license. See LICENSE.

// Package cell provides the tagged value shared by every lisp datum. A
// cell's tag never changes after creation. Accessors check the tag and
// panic with a *Mismatch, which unwinds to the nearest recovery point.
package cell

import (
	"github.com/moneytech/liblisp/internal/hash"
	"github.com/moneytech/liblisp/internal/port"
)

// Tag classifies a cell.
type Tag uint8

// Cell tags.
const (
	Invalid Tag = iota
	Symbol
	Integer
	Cons
	Proc
	Subr
	String
	IO
	Hash
	FProc
	Float
	User
)

var names = map[Tag]string{
	Invalid: "invalid",
	Symbol:  "symbol",
	Integer: "integer",
	Cons:    "cons",
	Proc:    "procedure",
	Subr:    "primitive",
	String:  "string",
	IO:      "io",
	Hash:    "hash",
	FProc:   "f-expr",
	Float:   "float",
	User:    "user-defined",
}

// Name returns the printable name of a tag.
func (t Tag) Name() string {
	return names[t]
}

// Mismatch is the panic value raised by an accessor applied to a cell of
// the wrong type.
type Mismatch struct {
	Want Tag
	Got  *T
}

func (m *Mismatch) Error() string {
	return "expected " + m.Want.Name() + ", got " + m.Got.Tag().Name()
}

// T (cell) is a tagged lisp value.
type T struct {
	tag    Tag
	udf    uint8 // Which user-defined type, when tag is User.
	mark   bool
	perm   bool // Uncollectable.
	closed bool // Payload already released; never dereference again.
	length int

	// Cons slots. Proc and FProc reuse car for the formal parameter
	// list, cdr for the body sequence, and env for the captured
	// environment.
	car, cdr, env *T

	i      int64
	f      float64
	s      string
	h      *hash.T
	p      *port.T
	v      any // Subr function or user payload.
	format string
	doc    string
}

type cell = T

// The shared immutable singletons. Nil terminates lists, Tee is the
// canonical non-false value, and Error is the sentinel primitives return
// on recoverable failure. The rest name the special forms, which the
// evaluator recognizes by cell identity.
//
//nolint:gochecknoglobals
var (
	Nil     = sym("nil")
	Tee     = sym("t")
	Error   = sym("error")
	Quote   = sym("quote")
	If      = sym("if")
	Lambda  = sym("lambda")
	FLambda = sym("flambda")
	Define  = sym("define")
	Set     = sym("set!")
	Begin   = sym("begin")
	Cond    = sym("cond")
)

func sym(s string) *T {
	return &cell{tag: Symbol, perm: true, s: s, length: len(s)}
}

// Permanent returns the shared singleton cells. They live outside every
// heap; the collector clears their mark bits after each sweep.
func Permanent() []*T {
	return []*T{Nil, Tee, Error, Quote, If, Lambda, FLambda, Define, Set, Begin, Cond}
}

// Constructors. These build raw cells; heap registration and collection
// accounting is the interpreter's job.

// NewSym makes a symbol cell. Interning is the caller's responsibility.
func NewSym(s string) *T {
	return &cell{tag: Symbol, s: s, length: len(s)}
}

// NewInt makes an integer cell.
func NewInt(i int64) *T {
	return &cell{tag: Integer, i: i}
}

// NewFlt makes a float cell.
func NewFlt(f float64) *T {
	return &cell{tag: Float, f: f}
}

// NewStr makes a string cell.
func NewStr(s string) *T {
	return &cell{tag: String, s: s, length: len(s)}
}

// NewCons makes a cons cell. The length field counts the chain when the
// tail is a proper list.
func NewCons(car, cdr *T) *T {
	n := 1
	if cdr != nil && cdr.tag == Cons {
		n = cdr.length + 1
	}

	return &cell{tag: Cons, car: car, cdr: cdr, length: n}
}

// NewIO makes an I/O port cell.
func NewIO(p *port.T) *T {
	return &cell{tag: IO, p: p}
}

// NewHash makes a hash cell.
func NewHash(h *hash.T) *T {
	return &cell{tag: Hash, h: h, length: h.Bins()}
}

// NewProc makes a procedure cell capturing env. The length is the arity.
func NewProc(formals, body, env *T) *T {
	return &cell{tag: Proc, car: formals, cdr: body, env: env, length: Count(formals)}
}

// NewFProc makes an f-expression cell capturing env.
func NewFProc(formals, body, env *T) *T {
	return &cell{tag: FProc, car: formals, cdr: body, env: env, length: Count(formals)}
}

// NewSubr makes a primitive cell. The fn payload is opaque to this
// package; the evaluator knows its true type.
func NewSubr(fn any, format, doc string, arity int) *T {
	return &cell{tag: Subr, v: fn, format: format, doc: doc, length: arity}
}

// NewUser makes a user-defined cell of type id with an opaque payload.
func NewUser(id int, v any) *T {
	return &cell{tag: User, udf: uint8(id), v: v}
}

// Tag returns the cell's tag.
func (c *cell) Tag() Tag {
	return c.tag
}

// Length returns the cell's length field: chain length for proper lists,
// byte length for strings and symbols, declared arity for callables.
func (c *cell) Length() int {
	return c.length
}

// UserType returns which user-defined type a User cell belongs to.
func (c *cell) UserType() int {
	return int(c.udf)
}

// GC bookkeeping.

// Marked returns the cell's reachability mark.
func (c *cell) Marked() bool {
	return c.mark
}

// SetMark sets or clears the reachability mark.
func (c *cell) SetMark(on bool) {
	c.mark = on
}

// Uncollectable returns true if the cell is permanently rooted.
func (c *cell) Uncollectable() bool {
	return c.perm
}

// SetUncollectable permanently roots the cell.
func (c *cell) SetUncollectable() {
	c.perm = true
}

// Closed returns true once the cell's payload has been released.
func (c *cell) Closed() bool {
	return c.closed
}

// Close releases the cell's payload. The tag survives so a zombie cell
// can still be named in diagnostics, but its data is gone.
func (c *cell) Close() {
	c.closed = true
	c.car = nil
	c.cdr = nil
	c.env = nil
	c.s = ""
	c.h = nil
	c.p = nil
	c.v = nil
}

func (c *cell) want(t Tag) {
	if c.tag != t || c.closed {
		panic(&Mismatch{Want: t, Got: c})
	}
}

// Accessors.

// Car returns the head of a cons cell.
func Car(c *T) *T {
	c.want(Cons)

	return c.car
}

// Cdr returns the tail of a cons cell.
func Cdr(c *T) *T {
	c.want(Cons)

	return c.cdr
}

// Cadr returns the second element of a list.
func Cadr(c *T) *T {
	return Car(Cdr(c))
}

// Cddr returns a list without its first two elements.
func Cddr(c *T) *T {
	return Cdr(Cdr(c))
}

// Caddr returns the third element of a list.
func Caddr(c *T) *T {
	return Car(Cddr(c))
}

// SetCar replaces the head of a cons cell.
func SetCar(c, v *T) {
	c.want(Cons)
	c.car = v
}

// SetCdr replaces the tail of a cons cell. The length field is not
// recomputed for the rest of the chain.
func SetCdr(c, v *T) {
	c.want(Cons)
	c.cdr = v

	if v != nil && v.tag == Cons {
		c.length = v.length + 1
	} else {
		c.length = 1
	}
}

// IntVal returns the value of an integer cell.
func IntVal(c *T) int64 {
	c.want(Integer)

	return c.i
}

// FltVal returns the value of a float cell.
func FltVal(c *T) float64 {
	c.want(Float)

	return c.f
}

// Text returns the text of a symbol or string cell.
func Text(c *T) string {
	if c.closed || (c.tag != Symbol && c.tag != String) {
		panic(&Mismatch{Want: String, Got: c})
	}

	return c.s
}

// HashVal returns the table owned by a hash cell.
func HashVal(c *T) *hash.T {
	c.want(Hash)

	return c.h
}

// PortVal returns the port owned by an I/O cell.
func PortVal(c *T) *port.T {
	c.want(IO)

	return c.p
}

// UserVal returns the opaque payload of a user-defined cell.
func UserVal(c *T) any {
	c.want(User)

	return c.v
}

// Formals returns the parameter list of a procedure or f-expression.
func Formals(c *T) *T {
	c.wantFunc()

	return c.car
}

// Body returns the body sequence of a procedure or f-expression.
func Body(c *T) *T {
	c.wantFunc()

	return c.cdr
}

// Scope returns the captured environment of a procedure or f-expression.
func Scope(c *T) *T {
	c.wantFunc()

	return c.env
}

// Fn returns the opaque function of a primitive cell.
func Fn(c *T) any {
	c.want(Subr)

	return c.v
}

// Format returns the validation format string of a callable, or "".
func Format(c *T) string {
	return c.format
}

// Doc returns the docstring of a callable, or "".
func Doc(c *T) string {
	return c.doc
}

func (c *cell) wantFunc() {
	if c.closed || (c.tag != Proc && c.tag != FProc) {
		panic(&Mismatch{Want: Proc, Got: c})
	}
}

// Predicates.

// IsNil returns true for the empty list.
func IsNil(c *T) bool { return c == Nil }

// IsSym returns true for symbols.
func IsSym(c *T) bool { return c.tag == Symbol }

// IsInt returns true for integers.
func IsInt(c *T) bool { return c.tag == Integer }

// IsCons returns true for cons cells.
func IsCons(c *T) bool { return c.tag == Cons }

// IsProc returns true for lambda procedures.
func IsProc(c *T) bool { return c.tag == Proc }

// IsSubr returns true for primitives.
func IsSubr(c *T) bool { return c.tag == Subr }

// IsStr returns true for strings.
func IsStr(c *T) bool { return c.tag == String }

// IsIO returns true for I/O ports.
func IsIO(c *T) bool { return c.tag == IO }

// IsHash returns true for hash tables.
func IsHash(c *T) bool { return c.tag == Hash }

// IsFProc returns true for f-expressions.
func IsFProc(c *T) bool { return c.tag == FProc }

// IsFlt returns true for floats.
func IsFlt(c *T) bool { return c.tag == Float }

// IsUser returns true for user-defined cells.
func IsUser(c *T) bool { return c.tag == User }

// IsAsciiz returns true for symbols and strings.
func IsAsciiz(c *T) bool { return c.tag == Symbol || c.tag == String }

// IsArith returns true for integers and floats.
func IsArith(c *T) bool { return c.tag == Integer || c.tag == Float }

// IsFunc returns true for anything applicable.
func IsFunc(c *T) bool { return c.tag == Proc || c.tag == FProc || c.tag == Subr }

// IsIn returns true for input ports.
func IsIn(c *T) bool { return c.tag == IO && !c.closed && c.p.IsIn() }

// IsOut returns true for output ports.
func IsOut(c *T) bool { return c.tag == IO && !c.closed && c.p.IsOut() }

// Count returns the number of elements in a proper list, 0 for Nil.
func Count(c *T) int {
	n := 0
	for c.tag == Cons {
		n++
		c = c.cdr
	}

	return n
}

// Eq compares two cells: by value for numbers, by text for strings, and
// by identity for everything else. Interning makes identity comparison
// correct for symbols.
func Eq(a, b *T) bool {
	if a == b {
		return true
	}

	switch {
	case a.tag == Integer && b.tag == Integer:
		return a.i == b.i
	case a.tag == Float && b.tag == Float:
		return a.f == b.f
	case a.tag == String && b.tag == String:
		return !a.closed && !b.closed && a.s == b.s
	}

	return false
}

// Released under an MIT license. See LICENSE.

package lisp

import (
	"github.com/moneytech/liblisp/internal/cell"
)

// GCState controls collection.
type GCState uint8

// Collection states. GCOff is terminal: once collection is permanently
// disabled it cannot be re-enabled for the life of the instance.
const (
	GCOn GCState = iota
	GCPostpone
	GCOff
)

// GCStatus returns the current collection state.
func (l *lisp) GCStatus() GCState {
	return l.gcState
}

// SetGC changes the collection state. Requests are ignored once the
// state is GCOff.
func (l *lisp) SetGC(s GCState) {
	if l.gcState == GCOff {
		return
	}

	l.gcState = s
}

// CollectAfter sets how many allocations may happen between automatic
// collections.
func (l *lisp) CollectAfter(n int) {
	if n > 0 {
		l.fuel = n
	}
}

// Root pushes c onto the root stack so it survives collections triggered
// by intervening allocations, and returns c. Callers pair Root with a
// Fence taken before and a Restore after the operation holding the
// temporary.
func (l *lisp) Root(c *cell.T) *cell.T {
	if c != nil {
		l.gcStack = append(l.gcStack, c)
	}

	return c
}

// Fence records the current height of the root stack.
func (l *lisp) Fence() int {
	return len(l.gcStack)
}

// Restore pops the root stack back to a previously recorded fence.
func (l *lisp) Restore(fence int) {
	for i := fence; i < len(l.gcStack); i++ {
		l.gcStack[i] = nil
	}

	l.gcStack = l.gcStack[:fence]
}

// Collect runs a full mark and sweep unless collection is off. It runs
// synchronously; no allocation happens until it completes.
func (l *lisp) Collect() {
	if l.gcState == GCOff {
		return
	}

	l.mark(l.topEnv)

	l.symbols.Foreach(func(_ string, v any) any {
		l.mark(v.(*cell.T))

		return nil
	})

	for _, c := range l.gcStack {
		l.mark(c)
	}

	l.sweep()

	for _, c := range cell.Permanent() {
		c.SetMark(false)
	}

	l.collectp = 0
}

// mark does a depth-first traversal setting the mark bit. Marking is
// idempotent: an already marked cell short-circuits, which is what makes
// cyclic structures safe.
func (l *lisp) mark(c *cell.T) {
	if c == nil || c.Marked() || c.Closed() {
		return
	}

	c.SetMark(true)

	switch c.Tag() {
	case cell.Cons:
		l.mark(cell.Car(c))
		l.mark(cell.Cdr(c))
	case cell.Proc, cell.FProc:
		l.mark(cell.Formals(c))
		l.mark(cell.Body(c))
		l.mark(cell.Scope(c))
	case cell.Hash:
		cell.HashVal(c).Foreach(func(_ string, v any) any {
			if vc, ok := v.(*cell.T); ok {
				l.mark(vc)
			}

			return nil
		})
	case cell.User:
		if h := l.udf[c.UserType()].Mark; h != nil {
			h(c, l.mark)
		}
	}
}

// sweep walks the heap once, releasing every unmarked collectable cell
// and clearing the mark on every survivor.
func (l *lisp) sweep() {
	live := l.heap[:0]

	for _, c := range l.heap {
		if c.Marked() || c.Uncollectable() {
			c.SetMark(false)
			live = append(live, c)

			continue
		}

		l.release(c)
	}

	for i := len(live); i < len(l.heap); i++ {
		l.heap[i] = nil
	}

	l.heap = live
}

// release frees a cell's owned payload: the user type's free hook runs,
// ports not owned by the instance are closed, and the cell is marked as
// a zombie so it is never dereferenced again.
func (l *lisp) release(c *cell.T) {
	if c.Closed() {
		return
	}

	switch c.Tag() {
	case cell.User:
		if h := l.udf[c.UserType()].Free; h != nil {
			h(c)
		}
	case cell.IO:
		if p := cell.PortVal(c); p != l.in && p != l.out && p != l.log {
			p.Close()
		}
	}

	c.Close()
}

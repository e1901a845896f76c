// Released under an MIT license. See LICENSE.

package lisp

import (
	"testing"

	"github.com/moneytech/liblisp/internal/cell"
	"github.com/moneytech/liblisp/internal/port"
)

func setup(t *testing.T) *lisp {
	t.Helper()

	l, err := NewWith(port.Sin(""), port.Null(), port.Null())
	if err != nil {
		t.Fatalf("new interpreter: %v", err)
	}

	return l
}

func TestRootedSurvives(t *testing.T) {
	l := setup(t)

	fence := l.Fence()
	v := l.Root(l.Str("keep"))

	l.Collect()

	if v.Closed() {
		t.Error("rooted cell was released")
	}

	l.Restore(fence)
}

func TestUnrootedCollected(t *testing.T) {
	l := setup(t)

	v := l.Str("drop")

	l.Collect()

	if !v.Closed() {
		t.Error("unreachable cell survived a collection")
	}
}

func TestRestoreUnroots(t *testing.T) {
	l := setup(t)

	fence := l.Fence()
	v := l.Root(l.Str("transient"))
	l.Restore(fence)

	l.Collect()

	if !v.Closed() {
		t.Error("cell survived after its fence was restored")
	}
}

func TestGlobalsSurvive(t *testing.T) {
	l := setup(t)

	l.AddCell("answer", l.Int(42))

	l.Collect()

	pair := binding(l.topEnv, l.Intern("answer"))
	if pair == nil {
		t.Fatal("global binding lost")
	}

	if v := cell.Cdr(pair); v.Closed() || cell.IntVal(v) != 42 {
		t.Error("global value released")
	}
}

func TestInternedSymbolsSurvive(t *testing.T) {
	l := setup(t)

	s := l.Intern("transient-name")

	l.Collect()

	if s.Closed() {
		t.Error("interned symbol was released")
	}

	if l.Intern("transient-name") != s {
		t.Error("interning is no longer canonical after a collection")
	}
}

func TestCycleSafe(t *testing.T) {
	l := setup(t)

	fence := l.Fence()

	c := l.Root(l.Cons(cell.Nil, cell.Nil))
	cell.SetCdr(c, c)

	l.Collect()
	l.Collect()

	if c.Closed() {
		t.Error("rooted cycle was released")
	}

	l.Restore(fence)
	l.Collect()

	if !c.Closed() {
		t.Error("unreachable cycle survived")
	}
}

func TestMarksCleared(t *testing.T) {
	l := setup(t)

	fence := l.Fence()
	l.Root(l.Cons(l.Root(l.Int(1)), l.Root(l.Int(2))))

	l.Collect()

	for _, c := range l.heap {
		if c.Marked() {
			t.Fatal("heap cell still marked after a collection")
		}
	}

	for _, c := range cell.Permanent() {
		if c.Marked() {
			t.Fatalf("%s still marked after a collection", cell.Text(c))
		}
	}

	l.Restore(fence)
}

func TestStructureSurvivesThroughRoot(t *testing.T) {
	l := setup(t)

	fence := l.Fence()

	// Only the spine is rooted; everything hanging off it must survive.
	inner := l.Cons(l.Int(1), l.Int(2))
	spine := l.Root(l.Cons(inner, cell.Nil))

	l.Collect()

	if inner.Closed() || cell.Car(inner).Closed() {
		t.Error("cells reachable from a root were released")
	}

	_ = spine

	l.Restore(fence)
}

func TestUserHooks(t *testing.T) {
	l := setup(t)

	freed := 0

	id, err := l.RegisterType(UserOps{
		Free: func(*cell.T) { freed++ },
		Mark: func(c *cell.T, mark func(*cell.T)) {
			mark(cell.UserVal(c).(*cell.T))
		},
	})
	if err != nil {
		t.Fatalf("register type: %v", err)
	}

	fence := l.Fence()

	held := l.Cons(cell.Nil, cell.Nil)
	u := l.Root(l.User(id, held))

	l.Collect()

	if held.Closed() {
		t.Error("cell held by a user cell was released")
	}

	if freed != 0 {
		t.Errorf("free hook ran %d times for a rooted cell", freed)
	}

	l.Restore(fence)
	l.Collect()

	if freed != 1 {
		t.Errorf("free hook ran %d times; want 1", freed)
	}

	if !u.Closed() || !held.Closed() {
		t.Error("user cell or its payload survived")
	}
}

func TestAutomaticCollection(t *testing.T) {
	l := setup(t)
	l.CollectAfter(8)

	early := l.Str("early")

	for i := 0; i < 64; i++ {
		l.Int(int64(i))
	}

	if !early.Closed() {
		t.Error("allocation pressure never triggered a collection")
	}
}

func TestPostpone(t *testing.T) {
	l := setup(t)
	l.CollectAfter(8)
	l.SetGC(GCPostpone)

	early := l.Str("early")

	for i := 0; i < 64; i++ {
		l.Int(int64(i))
	}

	if early.Closed() {
		t.Error("collection ran while postponed")
	}

	l.SetGC(GCOn)

	if l.GCStatus() != GCOn {
		t.Error("postpone could not be lifted")
	}
}

func TestOffIsTerminal(t *testing.T) {
	l := setup(t)
	l.SetGC(GCOff)
	l.SetGC(GCOn)

	if l.GCStatus() != GCOff {
		t.Error("collection came back after being permanently disabled")
	}

	v := l.Str("immortal")

	l.Collect()

	if v.Closed() {
		t.Error("collection ran while permanently disabled")
	}
}

func TestDestroy(t *testing.T) {
	l := setup(t)

	v := l.Str("gone")
	r := l.Root(l.Str("rooted but still gone"))

	l.Destroy()

	if !v.Closed() || !r.Closed() {
		t.Error("destroy left live cells behind")
	}
}

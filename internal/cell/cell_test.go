// Released under an MIT license. See LICENSE.

package cell

import "testing"

func TestPredicates(t *testing.T) {
	cases := []struct {
		c    *T
		name string
		ok   func(*T) bool
	}{
		{NewSym("x"), "symbol", IsSym},
		{NewInt(42), "integer", IsInt},
		{NewFlt(2.5), "float", IsFlt},
		{NewStr("hi"), "string", IsStr},
		{NewCons(Nil, Nil), "cons", IsCons},
		{NewProc(Nil, Nil, Nil), "proc", IsProc},
		{NewFProc(Nil, Nil, Nil), "fproc", IsFProc},
	}

	for _, v := range cases {
		if !v.ok(v.c) {
			t.Errorf("%s predicate failed for its own constructor", v.name)
		}
	}

	if !IsNil(Nil) || IsNil(NewSym("nil-like")) {
		t.Error("nil predicate wrong")
	}

	if !IsAsciiz(NewSym("s")) || !IsAsciiz(NewStr("s")) || IsAsciiz(NewInt(1)) {
		t.Error("asciiz predicate wrong")
	}

	if !IsArith(NewInt(1)) || !IsArith(NewFlt(1)) || IsArith(NewStr("1")) {
		t.Error("arith predicate wrong")
	}
}

func TestConsLength(t *testing.T) {
	l := NewCons(NewInt(1), NewCons(NewInt(2), NewCons(NewInt(3), Nil)))

	if l.Length() != 3 {
		t.Errorf("length = %d; want 3", l.Length())
	}

	if Count(l) != 3 {
		t.Errorf("count = %d; want 3", Count(l))
	}

	// A dotted pair still counts its cons spine.
	d := NewCons(NewInt(1), NewInt(2))
	if Count(d) != 1 {
		t.Errorf("count of dotted pair = %d; want 1", Count(d))
	}
}

func TestAccessors(t *testing.T) {
	l := NewCons(NewInt(1), NewCons(NewSym("two"), Nil))

	if IntVal(Car(l)) != 1 {
		t.Error("car wrong")
	}

	if Text(Cadr(l)) != "two" {
		t.Error("cadr wrong")
	}

	if Cddr(l) != Nil {
		t.Error("cddr wrong")
	}

	SetCar(l, NewInt(9))

	if IntVal(Car(l)) != 9 {
		t.Error("set-car! did not stick")
	}
}

func TestAccessorMismatch(t *testing.T) {
	defer func() {
		r := recover()

		m, ok := r.(*Mismatch)
		if !ok {
			t.Fatalf("recovered %v; want a mismatch", r)
		}

		if m.Want != Cons {
			t.Errorf("mismatch wants %s; want cons", m.Want.Name())
		}
	}()

	Car(NewInt(5))
}

func TestEq(t *testing.T) {
	if !Eq(NewInt(7), NewInt(7)) {
		t.Error("equal integers not eq")
	}

	if Eq(NewInt(7), NewInt(8)) {
		t.Error("unequal integers eq")
	}

	if !Eq(NewFlt(1.5), NewFlt(1.5)) {
		t.Error("equal floats not eq")
	}

	if !Eq(NewStr("abc"), NewStr("abc")) {
		t.Error("equal strings not eq")
	}

	if Eq(NewInt(1), NewFlt(1)) {
		t.Error("integer eq float")
	}

	a := NewCons(Nil, Nil)
	if !Eq(a, a) || Eq(a, NewCons(Nil, Nil)) {
		t.Error("cons eq is not identity")
	}
}

func TestClose(t *testing.T) {
	s := NewStr("text")

	s.Close()

	if !s.Closed() {
		t.Error("cell not closed")
	}

	if Eq(s, NewStr("text")) {
		t.Error("closed string still compares equal")
	}
}

func TestPermanent(t *testing.T) {
	for _, c := range Permanent() {
		if !c.Uncollectable() {
			t.Errorf("%s is collectable", Text(c))
		}

		if !IsSym(c) {
			t.Errorf("permanent cell %s is not a symbol", c.Tag().Name())
		}
	}
}

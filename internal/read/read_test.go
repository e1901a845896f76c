// Released under an MIT license. See LICENSE.

package read

import (
	"io"
	"testing"

	"github.com/moneytech/liblisp/internal/cell"
	"github.com/moneytech/liblisp/internal/lisp"
	"github.com/moneytech/liblisp/internal/port"
)

func setup(t *testing.T) *lisp.T {
	t.Helper()

	l, err := lisp.New()
	if err != nil {
		t.Fatalf("new interpreter: %v", err)
	}

	return l
}

func one(t *testing.T, l *lisp.T, s string) *cell.T {
	t.Helper()

	v, err := String(l, s)
	if err != nil {
		t.Fatalf("read %q: %v", s, err)
	}

	return v
}

func TestAtoms(t *testing.T) {
	l := setup(t)

	if v := one(t, l, "42"); !cell.IsInt(v) || cell.IntVal(v) != 42 {
		t.Error("42 did not read as the integer 42")
	}

	if v := one(t, l, "-7"); !cell.IsInt(v) || cell.IntVal(v) != -7 {
		t.Error("-7 did not read as the integer -7")
	}

	if v := one(t, l, "2.5"); !cell.IsFlt(v) || cell.FltVal(v) != 2.5 {
		t.Error("2.5 did not read as the float 2.5")
	}

	if v := one(t, l, "1e3"); !cell.IsFlt(v) || cell.FltVal(v) != 1000 {
		t.Error("1e3 did not read as the float 1000")
	}

	if v := one(t, l, "+"); !cell.IsSym(v) || cell.Text(v) != "+" {
		t.Error("+ did not read as a symbol")
	}

	if v := one(t, l, "nil"); v != cell.Nil {
		t.Error("nil did not read as the nil singleton")
	}
}

func TestStrings(t *testing.T) {
	l := setup(t)

	cases := []struct {
		in   string
		want string
	}{
		{`"hi"`, "hi"},
		{`""`, ""},
		{`"a\nb"`, "a\nb"},
		{`"a\tb"`, "a\tb"},
		{`"q\"q"`, `q"q`},
		{`"\\"`, `\`},
		{`"\101"`, "A"},
		{`"\x41"`, "A"},
		{`"\0071"`, "\a1"},
	}

	for _, v := range cases {
		c := one(t, l, v.in)
		if !cell.IsStr(c) || cell.Text(c) != v.want {
			t.Errorf("%s read as %q; want %q", v.in, cell.Text(c), v.want)
		}
	}
}

func TestLists(t *testing.T) {
	l := setup(t)

	v := one(t, l, "(+ 1 2)")

	if cell.Count(v) != 3 {
		t.Fatalf("list length = %d; want 3", cell.Count(v))
	}

	if cell.Text(cell.Car(v)) != "+" {
		t.Error("head is not +")
	}

	if cell.IntVal(cell.Cadr(v)) != 1 || cell.IntVal(cell.Caddr(v)) != 2 {
		t.Error("list elements wrong")
	}

	if v = one(t, l, "()"); v != cell.Nil {
		t.Error("() did not read as nil")
	}

	v = one(t, l, "(a (b c) d)")
	if cell.Count(v) != 3 || cell.Count(cell.Cadr(v)) != 2 {
		t.Error("nested list shape wrong")
	}
}

func TestDotted(t *testing.T) {
	l := setup(t)

	v := one(t, l, "(1 . 2)")

	if cell.IntVal(cell.Car(v)) != 1 || cell.IntVal(cell.Cdr(v)) != 2 {
		t.Error("dotted pair wrong")
	}

	v = one(t, l, "(1 2 . 3)")

	if cell.IntVal(cell.Cadr(v)) != 2 || cell.IntVal(cell.Cddr(v)) != 3 {
		t.Error("dotted tail wrong")
	}
}

func TestQuote(t *testing.T) {
	l := setup(t)

	v := one(t, l, "'x")

	if cell.Car(v) != cell.Quote {
		t.Fatal("quote shorthand did not expand to the quote form")
	}

	if !cell.IsSym(cell.Cadr(v)) || cell.Text(cell.Cadr(v)) != "x" {
		t.Error("quoted expression wrong")
	}

	if cell.Cddr(v) != cell.Nil {
		t.Error("quote form has extra elements")
	}

	v = one(t, l, "'(1 2)")
	if cell.Count(cell.Cadr(v)) != 2 {
		t.Error("quoted list wrong")
	}
}

func TestInterning(t *testing.T) {
	l := setup(t)

	a := one(t, l, "shared-symbol")
	b := one(t, l, "(shared-symbol)")

	if a != cell.Car(b) {
		t.Error("the same name read twice is not the same cell")
	}
}

func TestComments(t *testing.T) {
	l := setup(t)

	v := one(t, l, "; leading comment\n42 ; trailing")

	if !cell.IsInt(v) || cell.IntVal(v) != 42 {
		t.Error("comments were not skipped")
	}
}

func TestSequentialForms(t *testing.T) {
	l := setup(t)

	r := New(l, port.Sin("1 2 3"))

	for want := int64(1); want <= 3; want++ {
		v, err := r.Read()
		if err != nil {
			t.Fatalf("read form %d: %v", want, err)
		}

		if cell.IntVal(v) != want {
			t.Errorf("form = %d; want %d", cell.IntVal(v), want)
		}
	}

	if _, err := r.Read(); err != io.EOF {
		t.Errorf("read past the end = %v; want io.EOF", err)
	}
}

func TestEndOfStream(t *testing.T) {
	l := setup(t)

	for _, s := range []string{"", "   \n\t", "; only a comment\n"} {
		if _, err := String(l, s); err != io.EOF {
			t.Errorf("read %q = %v; want io.EOF", s, err)
		}
	}
}

func TestSyntaxErrors(t *testing.T) {
	l := setup(t)

	for _, s := range []string{")", ".", "(1 2", "(1 . )", "(. 1)", "(1 . 2 3)", `"open`, "'"} {
		_, err := String(l, s)

		if _, ok := err.(*SyntaxError); !ok {
			t.Errorf("read %q = %v; want a syntax error", s, err)
		}
	}
}
